package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// StaticPage is a Page backed by a fixed HTML fixture. Interactions record
// themselves and resolve against the fixture tree, so extractor logic can be
// exercised without a browser.
type StaticPage struct {
	doc *goquery.Document

	// Clicked lists the selectors of elements that ClickIfPresent actually hit
	Clicked []string
}

var _ Page = (*StaticPage)(nil)

// NewStaticPage parses the given HTML into a fixture-backed page
func NewStaticPage(html string) (*StaticPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return &StaticPage{doc: doc}, nil
}

// MustStaticPage is NewStaticPage that panics on parse errors, for tests
func MustStaticPage(html string) *StaticPage {
	p, err := NewStaticPage(html)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *StaticPage) WaitReady(sel string, timeout time.Duration) error {
	if p.doc.Find(sel).Length() == 0 {
		return fmt.Errorf("selector %q not ready", sel)
	}
	return nil
}

func (p *StaticPage) ClickIfPresent(sel string) (bool, error) {
	if p.doc.Find(sel).Length() == 0 {
		return false, nil
	}
	p.Clicked = append(p.Clicked, sel)
	return true, nil
}

func (p *StaticPage) ScrollIntoView(sel string) error { return nil }

func (p *StaticPage) ScrollToBottom() error { return nil }

func (p *StaticPage) ForceVisible(sel string) error { return nil }

// Settle is a no-op; fixture trees are already rendered
func (p *StaticPage) Settle(d time.Duration) {}

func (p *StaticPage) Document() (*goquery.Document, error) {
	return p.doc, nil
}
