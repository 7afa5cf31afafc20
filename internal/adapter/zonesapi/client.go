// Package zonesapi fetches fishery-management zone polygons from a remote
// GeoJSON endpoint. The endpoint serves one FeatureCollection per zone label
// at <base-url>/<label>.geojson.
package zonesapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client implements zones.Fetcher against an HTTP zone-polygon endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a zone polygon client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchZone retrieves the GeoJSON payload for one named zone subset.
func (c *Client) FetchZone(ctx context.Context, label string) ([]byte, error) {
	u := fmt.Sprintf("%s/%s.geojson", c.baseURL, url.PathEscape(label))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zone request %q: %w", label, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read zone payload %q: %w", label, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("zones API error: status %d: %s", resp.StatusCode, body)
	}

	c.logger.Debug("fetched zone payload", "label", label, "bytes", len(body))
	return body, nil
}
