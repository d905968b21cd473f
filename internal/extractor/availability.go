package extractor

import (
	"dwellscan/listingworker/helpers"
	"dwellscan/listingworker/internal/browser"
	"dwellscan/listingworker/internal/listing"
	apperr "dwellscan/listingworker/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// AvailabilityData carries the mandatory fields of a listing record
type AvailabilityData struct {
	PropertyName    string
	PropertyAddress string
	BedInfo         []listing.BedSummary
	Models          []listing.ModelCard
}

// Availability extracts the property header, the bed/rent summary strip and
// the floor-plan model grid. It is the one required extractor: an error here
// aborts the whole run.
func Availability(p browser.Page) (*AvailabilityData, error) {
	// The grid renders with the initial document; give it a bounded wait
	_ = p.WaitReady(selModelCard, 0)

	doc, err := p.Document()
	if err != nil {
		return nil, apperr.NewSection("availability", "failed to read page", err)
	}

	data := &AvailabilityData{
		PropertyName:    firstText(doc.Selection, selPropertyName, selPropertyNameAlt),
		PropertyAddress: cleanText(doc.Selection, selPropertyAddress),
	}

	doc.Find(selBedInfoItem).Each(func(_ int, s *goquery.Selection) {
		summary := listing.BedSummary{
			Label: cleanText(s, selBedInfoLabel),
			Value: cleanText(s, selBedInfoValue),
		}
		if summary.Label == "" && summary.Value == "" {
			return
		}
		data.BedInfo = append(data.BedInfo, summary)
	})

	doc.Find(selModelCard).Each(func(_ int, s *goquery.Selection) {
		if card := parseModelCard(s, data.PropertyAddress); card != nil {
			data.Models = append(data.Models, *card)
		}
	})

	// A page with neither a property name nor a single model card did not
	// render listing content at all
	if data.PropertyName == "" && len(data.Models) == 0 {
		return nil, apperr.NewSection("availability", "no listing content found", nil)
	}

	return data, nil
}

func parseModelCard(s *goquery.Selection, propertyAddress string) *listing.ModelCard {
	card := &listing.ModelCard{
		ModelName:       cleanText(s, selModelName),
		RentLabel:       cleanText(s, selModelRent),
		Availability:    cleanText(s, selModelAvailability),
		Image:           modelImage(s),
		PropertyAddress: propertyAddress,
	}

	s.Find(selModelDetail).Each(func(_ int, d *goquery.Selection) {
		if t := helpers.Clean(d.Text()); t != "" {
			card.Details = append(card.Details, t)
		}
	})

	s.Find(selUnitRow).Each(func(_ int, u *goquery.Selection) {
		card.Units = append(card.Units, listing.UnitRow{
			Unit:         cleanText(u, selUnitName),
			Price:        cleanText(u, selUnitPrice),
			Sqft:         cleanText(u, selUnitSqft),
			Availability: cleanText(u, selUnitAvailability),
		})
	})

	if card.ModelName == "" && card.RentLabel == "" && len(card.Units) == 0 {
		return nil
	}
	return card
}

// modelImage resolves the floor-plan image, preferring the inline
// background-image style over the data attribute
func modelImage(s *goquery.Selection) string {
	img := s.Find(selModelImage).First()
	if style, ok := img.Attr("style"); ok {
		if u := extractURLFromStyle(style); u != "" {
			return u
		}
	}
	attr, _ := img.Attr(attrModelImage)
	return helpers.Clean(attr)
}
