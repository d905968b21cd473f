package document

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"dwellscan/listingworker/helpers"
	"dwellscan/listingworker/logger"
	apperr "dwellscan/listingworker/pkg/errors"
)

// Merger concatenates a base document with an ordered list of attachments.
// An attachment that cannot be fetched or does not validate is logged and
// skipped; the merge proceeds with the documents that survived.
type Merger struct {
	fetch FetchFunc
	log   *logger.Logger
}

// NewMerger creates a merger. A nil fetch uses the default HTTP fetcher.
func NewMerger(fetch FetchFunc) *Merger {
	if fetch == nil {
		fetch = helpers.FetchAttachment
	}
	return &Merger{
		fetch: fetch,
		log:   logger.ForDocuments(),
	}
}

// Merge returns the base document's pages followed by each attachment's
// pages in input order
func (m *Merger) Merge(ctx context.Context, base []byte, attachments []Attachment) ([]byte, error) {
	if err := validatePDF(base); err != nil {
		return nil, apperr.NewDocument("base document is not a valid PDF", err)
	}

	readers := []io.ReadSeeker{bytes.NewReader(base)}
	for _, att := range attachments {
		data, err := m.loadAttachment(ctx, att)
		if err != nil {
			m.log.Warn().Err(err).Str("url", att.URL).Msg("Skipping attachment")
			continue
		}
		readers = append(readers, bytes.NewReader(data))
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, nil); err != nil {
		return nil, apperr.NewDocument("merge failed", err)
	}
	return buf.Bytes(), nil
}

// loadAttachment fetches and validates one attachment, stamping its label
// when one is configured
func (m *Merger) loadAttachment(ctx context.Context, att Attachment) ([]byte, error) {
	data, err := m.fetch(ctx, att.URL)
	if err != nil {
		return nil, err
	}
	if err := validatePDF(data); err != nil {
		return nil, err
	}

	if att.Label != "" {
		stamped, err := stampLabel(data, att.Label)
		if err != nil {
			// The unlabeled original is still mergeable
			m.log.Warn().Err(err).Str("label", att.Label).Msg("Label stamp failed")
		} else {
			data = stamped
		}
	}
	return data, nil
}

// validatePDF runs a structural validation over the document bytes
func validatePDF(data []byte) error {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return fmt.Errorf("missing PDF header")
	}
	return api.Validate(bytes.NewReader(data), nil)
}

// stampLabel prints the label across the top of the attachment's first page
func stampLabel(data []byte, label string) ([]byte, error) {
	wm, err := api.TextWatermark(label, "pos:tc, scale:0.9 abs, rot:0", true, false, types.POINTS)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(data), &buf, []string{"1"}, wm, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
