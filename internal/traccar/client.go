// Package traccar is the HTTP client for the external GPS-tracking
// provider's position-listing API.
package traccar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/PratikDhanave/fleet-telemetry-service/internal/apperror"
)

// PositionRecord is one raw device reading as the provider reports it.
// DeviceID maps to the internal vehicle reference, FixTime (RFC3339) to the
// internal recorded-at timestamp.
type PositionRecord struct {
	DeviceID  string   `json:"deviceId"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Speed     *float64 `json:"speed,omitempty"`
	FixTime   string   `json:"fixTime"`
}

// Client fetches the current device-position snapshot.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a provider client for the configured base URL and
// credential.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Positions fetches the provider's full position snapshot. Any transport
// failure or non-success status aborts the sync cycle as a single upstream
// error; nothing is retried or partially consumed.
func (c *Client) Positions(ctx context.Context) ([]PositionRecord, error) {
	url := c.baseURL + "/positions"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperror.Upstreamf(err, "build request for %s", url)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.Upstreamf(err, "fetch %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperror.Upstreamf(fmt.Errorf("HTTP %d from %s", resp.StatusCode, url), "provider returned %s", resp.Status)
	}

	var records []PositionRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, apperror.Upstreamf(err, "decode response from %s", url)
	}

	return records, nil
}
