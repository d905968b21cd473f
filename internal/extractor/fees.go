package extractor

import (
	"fmt"
	"strings"
	"time"

	"dwellscan/listingworker/helpers"
	"dwellscan/listingworker/internal/browser"
	"dwellscan/listingworker/internal/listing"
	"dwellscan/listingworker/logger"
	apperr "dwellscan/listingworker/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// feesSettleDelay covers the re-render after the all-in pricing toggle,
// which swaps every fee figure on the section
const feesSettleDelay = 400 * time.Millisecond

// feesFixedPanels are the well-known panels looked up directly when the page
// carries no tab-button group
var feesFixedPanels = []struct {
	ID    string
	Label string
}{
	{"fees-policies-pets-tab", "Pets"},
	{"fees-policies-parking-tab", "Parking"},
	{"fees-policies-required-fees-tab", "Required Fees"},
	{"fees-policies-storage-tab", "Storage"},
}

// FeesPolicies extracts the fee tabs and the bulleted detail cards. Tab
// discovery runs a three-tier fallback: clickable tab buttons, then the
// fixed well-known panels, then a generic tab-panel scan.
func FeesPolicies(p browser.Page) (*listing.FeesPoliciesResult, error) {
	if err := p.ScrollIntoView(selFeesSection); err != nil {
		return nil, apperr.NewSection("fees", "scroll failed", err)
	}

	clicked, err := p.ClickIfPresent(selAllInPricingToggle)
	if err != nil {
		return nil, apperr.NewSection("fees", "pricing toggle click failed", err)
	}
	if clicked {
		p.Settle(feesSettleDelay)
	}

	tabs, err := feesTabsByButtons(p)
	if err != nil {
		return nil, err
	}

	doc, err := p.Document()
	if err != nil {
		return nil, apperr.NewSection("fees", "failed to read page", err)
	}
	if len(tabs) == 0 {
		logger.ForSection("fees").Debug().Msg("No tab buttons, trying fixed panels")
		tabs = feesTabsByFixedPanels(doc)
	}
	if len(tabs) == 0 {
		logger.ForSection("fees").Debug().Msg("No fixed panels, scanning for generic panels")
		tabs = feesTabsByGenericPanels(doc)
	}

	return &listing.FeesPoliciesResult{
		Tabs:    tabs,
		Details: feesDetails(doc),
	}, nil
}

// feesTabsByButtons clicks each button of the tab-button group to mount its
// panel, then parses the panel the button references
func feesTabsByButtons(p browser.Page) ([]listing.TabResult, error) {
	doc, err := p.Document()
	if err != nil {
		return nil, apperr.NewSection("fees", "failed to read page", err)
	}

	type tabButton struct {
		label    string
		panelID  string
		selector string
	}

	var buttons []tabButton
	doc.Find(selFeesTabButton).Each(func(_ int, s *goquery.Selection) {
		panelID, _ := s.Attr(attrTabPanelID)
		panelID = helpers.Clean(panelID)
		id, _ := s.Attr("id")
		id = helpers.Clean(id)

		label := helpers.Clean(s.Text())
		if label == "" {
			label = id
		}
		if label == "" {
			label = panelID
		}
		if label == "" {
			return
		}

		selector := selFeesTabButton
		if panelID != "" {
			selector = fmt.Sprintf("%s[%s=%q]", selFeesTabButton, attrTabPanelID, panelID)
		} else if id != "" {
			selector = "#" + id
		}
		buttons = append(buttons, tabButton{label: label, panelID: panelID, selector: selector})
	})

	if len(buttons) == 0 {
		return nil, nil
	}

	tabs := make([]listing.TabResult, 0, len(buttons))
	for _, b := range buttons {
		if _, err := p.ClickIfPresent(b.selector); err != nil {
			return nil, apperr.NewSection("fees", "tab click failed", err)
		}

		tab := listing.TabResult{Tab: b.label}
		if b.panelID != "" {
			panelSel := "#" + b.panelID
			_ = p.WaitReady(panelSel, 0)
			_ = p.ForceVisible(panelSel)

			pdoc, err := p.Document()
			if err != nil {
				return nil, apperr.NewSection("fees", "failed to read page", err)
			}
			tab.Cards = parseFeeCards(pdoc.Find(panelSel))
		}
		tabs = append(tabs, tab)
	}
	return tabs, nil
}

// feesTabsByFixedPanels includes only the well-known panels present on the page
func feesTabsByFixedPanels(doc *goquery.Document) []listing.TabResult {
	var tabs []listing.TabResult
	for _, panel := range feesFixedPanels {
		sel := doc.Find("#" + panel.ID)
		if sel.Length() == 0 {
			continue
		}
		tabs = append(tabs, listing.TabResult{
			Tab:   panel.Label,
			Cards: parseFeeCards(sel),
		})
	}
	return tabs
}

// feesTabsByGenericPanels scans for tab-panel elements and labels each from
// its referenced heading or its own identifier
func feesTabsByGenericPanels(doc *goquery.Document) []listing.TabResult {
	var tabs []listing.TabResult
	doc.Find(selFeesGenericPanel).Each(func(_ int, s *goquery.Selection) {
		var label string
		if labelledBy, ok := s.Attr(attrPanelLabelledBy); ok {
			label = cleanText(doc.Selection, "#"+helpers.Clean(labelledBy))
		}
		if label == "" {
			id, _ := s.Attr("id")
			label = helpers.Clean(id)
		}

		cards := parseFeeCards(s)
		if label == "" && len(cards) == 0 {
			return
		}
		tabs = append(tabs, listing.TabResult{Tab: label, Cards: cards})
	})
	return tabs
}

func parseFeeCards(container *goquery.Selection) []listing.Card {
	var cards []listing.Card
	container.Find(selFeeCard).Each(func(_ int, s *goquery.Selection) {
		if card := parseFeeCard(s); card != nil {
			cards = append(cards, *card)
		}
	})
	return cards
}

// parseFeeCard parses one fee card. The card is kept only if it has a
// header, at least one row, or non-empty comments.
func parseFeeCard(s *goquery.Selection) *listing.Card {
	card := &listing.Card{Header: firstText(s, selFeeCardHeader, selFeeCardHeaderAlt)}

	var comments []string
	s.Find(selFeeRow).Each(func(_ int, row *goquery.Selection) {
		switch {
		case row.HasClass(classFeeHeaderRow):
			// Column headers carry no fee data
		case row.HasClass(classFeeCommentRow):
			if t := helpers.Clean(row.Text()); t != "" {
				comments = append(comments, t)
			}
		default:
			if r := parseFeeRow(row); r != nil {
				card.Rows = append(card.Rows, *r)
			}
		}
	})
	card.Comments = strings.Join(comments, " ")

	if card.Header == "" && len(card.Rows) == 0 && card.Comments == "" {
		return nil
	}
	return card
}

func parseFeeRow(row *goquery.Selection) *listing.Row {
	tooltip := cleanText(row, selFeeTooltip)

	// Drop the nested tooltip node before reading the row name
	nameClone := row.Find(selFeeName).First().Clone()
	nameClone.Find(selFeeTooltip).Remove()

	r := &listing.Row{
		Name:    helpers.Clean(nameClone.Text()),
		Value:   cleanText(row, selFeeValue),
		Tooltip: tooltip,
	}
	if r.Name == "" && r.Value == "" {
		return nil
	}
	return r
}

// feesDetails parses the bulleted detail cards that live outside the tabs
func feesDetails(doc *goquery.Document) []listing.DetailsCard {
	var details []listing.DetailsCard
	doc.Find(selFeeDetailsCard).Each(func(_ int, s *goquery.Selection) {
		card := listing.DetailsCard{Header: cleanText(s, selFeeDetailsHeader)}
		s.Find(selFeeDetailsItem).Each(func(_ int, li *goquery.Selection) {
			if t := helpers.Clean(li.Text()); t != "" {
				card.Items = append(card.Items, t)
			}
		})
		if card.Header == "" && len(card.Items) == 0 {
			return
		}
		details = append(details, card)
	})
	return details
}
