package extractor

import (
	"time"

	"dwellscan/listingworker/helpers"
	"dwellscan/listingworker/internal/browser"
	"dwellscan/listingworker/internal/listing"
	apperr "dwellscan/listingworker/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// amenitiesSettleDelay lets the lazily-mounted amenity lists render after
// scrolling them into view
const amenitiesSettleDelay = 200 * time.Millisecond

// Section titles recognized on the page, matched case-insensitively
const (
	communityAmenitiesTitle = "Community Amenities"
	apartmentFeaturesTitle  = "Apartment Features"
)

// Amenities extracts the community and apartment amenity sections. A section
// whose title is not found on the page is omitted, not an error.
func Amenities(p browser.Page) (*listing.AmenitiesResult, error) {
	// The amenity lists mount lazily, so the section may not exist until
	// the page has been scrolled through
	if err := p.ScrollToBottom(); err != nil {
		return nil, apperr.NewSection("amenities", "scroll failed", err)
	}
	p.Settle(amenitiesSettleDelay)
	_ = p.WaitReady(selAmenitiesSection, 0)

	doc, err := p.Document()
	if err != nil {
		return nil, apperr.NewSection("amenities", "failed to read page", err)
	}

	result := &listing.AmenitiesResult{}
	doc.Find(selAmenitiesSection).Each(func(_ int, s *goquery.Selection) {
		// The canonical title is kept even when the page styles it differently
		title := cleanText(s, selAmenitiesTitle)
		switch {
		case helpers.EqualFold(title, communityAmenitiesTitle):
			if result.Community == nil {
				result.Community = parseAmenitySection(s, communityAmenitiesTitle)
			}
		case helpers.EqualFold(title, apartmentFeaturesTitle):
			if result.Apartment == nil {
				result.Apartment = parseAmenitySection(s, apartmentFeaturesTitle)
			}
		}
	})

	return result, nil
}

func parseAmenitySection(s *goquery.Selection, title string) *listing.AmenitySection {
	section := &listing.AmenitySection{Title: title}

	var icons []string
	s.Find(selAmenityIcon).Each(func(_ int, i *goquery.Selection) {
		if t := helpers.Clean(i.Text()); t != "" {
			icons = append(icons, t)
		}
	})
	if deduped := helpers.Dedupe(icons); len(deduped) > 0 {
		section.Icons = deduped
	}

	// Group items are deduplicated across the whole section, not per group
	seen := make(map[string]struct{})
	s.Find(selAmenityGroup).Each(func(_ int, g *goquery.Selection) {
		group := listing.AmenityGroup{Header: cleanText(g, selAmenityGroupHeader)}
		g.Find(selAmenityGroupItem).Each(func(_ int, li *goquery.Selection) {
			t := helpers.Clean(li.Text())
			if t == "" {
				return
			}
			if _, ok := seen[t]; ok {
				return
			}
			seen[t] = struct{}{}
			group.Items = append(group.Items, t)
		})
		if group.Header == "" && len(group.Items) == 0 {
			return
		}
		section.Groups = append(section.Groups, group)
	})

	return section
}
