package browser

import (
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Page is the capability handle handed to the section extractors. It exposes
// the interactions a section needs to make its content render, plus Document
// for structural queries over the current DOM. Extractors never talk to the
// browser directly, so the same extractor code runs against a live page and
// against fixture trees.
type Page interface {
	// WaitReady blocks until the selector matches a parsed element or the
	// timeout elapses. A timeout of zero uses the page default.
	WaitReady(sel string, timeout time.Duration) error

	// ClickIfPresent clicks the first element matching the selector and
	// reports whether anything was clicked. A missing element is not an
	// error.
	ClickIfPresent(sel string) (bool, error)

	// ScrollIntoView scrolls the first matching element into the viewport
	ScrollIntoView(sel string) error

	// ScrollToBottom scrolls to the end of the page to trigger lazy content
	ScrollToBottom() error

	// ForceVisible unhides the first matching element
	ForceVisible(sel string) error

	// Settle pauses for a fixed delay after an interaction whose re-render
	// has no distinct wait condition
	Settle(d time.Duration)

	// Document returns a snapshot of the current DOM for structural queries
	Document() (*goquery.Document, error)
}
