package document

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	apperr "dwellscan/listingworker/pkg/errors"
)

// Generator fills a document template with flat string fields through the
// external conversion service
type Generator struct {
	baseURL string
	client  *retryablehttp.Client
}

// NewGenerator creates a generator talking to the conversion service at baseURL
func NewGenerator(baseURL string) *Generator {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 60 * time.Second
	rc.Logger = nil

	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  rc,
	}
}

// Generate posts the field map and returns the produced document bytes
func (g *Generator) Generate(ctx context.Context, fields map[string]string) ([]byte, error) {
	payload, err := json.Marshal(map[string]interface{}{"fields": fields})
	if err != nil {
		return nil, apperr.NewDocument("failed to encode fields", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/documents/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, apperr.NewDocument("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, apperr.NewDocument("generation request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.NewDocument(fmt.Sprintf("generation service returned status %d", resp.StatusCode), nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.NewDocument("failed to read document body", err)
	}
	return data, nil
}
