// Package fhirclient is a thin read-only client for an external FHIR
// store. The resolver uses it opportunistically for fields that are not
// present in the local structured records.
package fhirclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// ErrNotFound is returned when the store has no resource with the
// requested type and id.
var ErrNotFound = errors.New("fhir resource not found")

// Client fetches FHIR resources over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// New builds a client for the given FHIR base URL. The timeout bounds
// each individual lookup.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "fhirclient").Logger(),
	}
}

// GetResource fetches one resource by type and id.
func (c *Client) GetResource(ctx context.Context, resourceType, id string) (Resource, error) {
	u := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(resourceType), url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build fhir request: %w", err)
	}
	req.Header.Set("Accept", "application/fhir+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fhir request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fhir request: unexpected status %d", resp.StatusCode)
	}

	var res Resource
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode fhir resource: %w", err)
	}
	c.logger.Debug().Str("resource_type", resourceType).Str("id", id).Msg("fetched fhir resource")
	return res, nil
}
