package extractor

import (
	"time"

	"dwellscan/listingworker/helpers"
	"dwellscan/listingworker/internal/browser"
	"dwellscan/listingworker/internal/listing"
	apperr "dwellscan/listingworker/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// contactSettleDelay lets the expanded hours block render after the
// view-all-hours click
const contactSettleDelay = 250 * time.Millisecond

// Contact extracts the contact section. A page without a contact root yields
// an empty result with a present, empty office-hours list.
func Contact(p browser.Page) (*listing.ContactInfo, error) {
	clicked, err := p.ClickIfPresent(selViewAllHours)
	if err != nil {
		return nil, apperr.NewSection("contact", "view-all-hours click failed", err)
	}
	if clicked {
		p.Settle(contactSettleDelay)
		_ = p.WaitReady(selOfficeHoursRow, 0)
	}

	doc, err := p.Document()
	if err != nil {
		return nil, apperr.NewSection("contact", "failed to read page", err)
	}

	info := &listing.ContactInfo{OfficeHours: []listing.OfficeHours{}}

	root := doc.Find(selContactRoot).First()
	if root.Length() == 0 {
		return info, nil
	}

	info.Phone = parsePhone(root)
	info.Website = parseWebsite(root)
	info.Language = cleanText(root, selLanguage)
	info.TodaysHours = cleanText(root, selTodaysHours)
	info.Logo = parseLogo(root)

	root.Find(selOfficeHoursRow).Each(func(_ int, s *goquery.Selection) {
		row := listing.OfficeHours{
			Days:  cleanText(s, selOfficeHoursDays),
			Hours: cleanText(s, selOfficeHoursHours),
		}
		if row.Days == "" && row.Hours == "" {
			return
		}
		info.OfficeHours = append(info.OfficeHours, row)
	})

	return info, nil
}

// parsePhone prefers the machine-readable digits attribute over the display
// text but keeps both when available
func parsePhone(root *goquery.Selection) *listing.Phone {
	sel := root.Find(selPhone).First()
	if sel.Length() == 0 {
		return nil
	}

	formatted := helpers.Clean(sel.Text())
	digits, _ := sel.Attr(attrPhoneDigits)
	digits = helpers.Clean(digits)
	if digits == "" {
		digits = digitsOf(formatted)
	}

	if formatted == "" && digits == "" {
		return nil
	}
	return &listing.Phone{Formatted: formatted, Digits: digits}
}

func parseWebsite(root *goquery.Selection) *listing.Website {
	sel := root.Find(selWebsite).First()
	href, _ := sel.Attr("href")
	href = helpers.Clean(href)
	if href == "" {
		return nil
	}
	return &listing.Website{URL: href, Label: helpers.Clean(sel.Text())}
}

func parseLogo(root *goquery.Selection) *listing.Logo {
	sel := root.Find(selLogo).First()
	src, _ := sel.Attr("src")
	src = helpers.Clean(src)
	if src == "" {
		return nil
	}
	alt, _ := sel.Attr("alt")
	width, _ := sel.Attr("width")
	height, _ := sel.Attr("height")
	return &listing.Logo{
		URL:    src,
		Alt:    helpers.Clean(alt),
		Width:  helpers.Clean(width),
		Height: helpers.Clean(height),
	}
}
