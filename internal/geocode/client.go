// Package geocode resolves free-text listing locations to coordinates via
// the Nominatim search API. Lookups are best-effort: the location text is
// whatever the feed supplied, so many variants resolve to nothing, and
// that is expected rather than an error.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	nominatimBaseURL = "https://nominatim.openstreetmap.org/search"
	userAgent        = "jobs-scraper"
	httpTimeout      = 10 * time.Second
)

// Client queries Nominatim. The service is shared and rate-limited; the
// sweep layer is responsible for pacing requests.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: nominatimBaseURL,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

// nominatimResult mirrors one entry of the Nominatim search response.
// Coordinates come back as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Lookup geocodes one location. ok is false when the service has no match;
// that is not an error.
func (c *Client) Lookup(ctx context.Context, location string) (lat, lon float64, ok bool, err error) {
	params := url.Values{}
	params.Set("q", location)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, 0, false, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, 0, false, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, 0, false, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, 0, false, fmt.Errorf("nominatim returned %d: %s", resp.StatusCode, string(body))
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return 0, 0, false, fmt.Errorf("json unmarshal: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, false, nil
	}

	lat, err = strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("bad latitude %q: %w", results[0].Lat, err)
	}
	lon, err = strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("bad longitude %q: %w", results[0].Lon, err)
	}

	return Round5(lat), Round5(lon), true, nil
}

// Round5 rounds a coordinate to 5 decimal places, the precision stored in
// the coordinates table.
func Round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}
