package extractor

import (
	"regexp"
	"strings"

	"dwellscan/listingworker/helpers"

	"github.com/PuerkitoBio/goquery"
)

// styleURLRegex pulls the URL out of an inline background-image declaration
var styleURLRegex = regexp.MustCompile(`url\((?:['"]?)(.*?)(?:['"]?)\)`)

// extractURLFromStyle returns the first url(...) reference in a style value
func extractURLFromStyle(style string) string {
	matches := styleURLRegex.FindStringSubmatch(style)
	if len(matches) < 2 {
		return ""
	}
	return helpers.Clean(matches[1])
}

// cleanText returns the normalized text of the first match of sel under s
func cleanText(s *goquery.Selection, sel string) string {
	return helpers.Clean(s.Find(sel).First().Text())
}

// cleanAttr returns the normalized attr value on the first match of sel
func cleanAttr(s *goquery.Selection, sel, attr string) string {
	v, _ := s.Find(sel).First().Attr(attr)
	return helpers.Clean(v)
}

// firstText returns the first non-empty normalized text among the selectors
func firstText(s *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if t := cleanText(s, sel); t != "" {
			return t
		}
	}
	return ""
}

// digitsOf strips everything but decimal digits from s
func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
