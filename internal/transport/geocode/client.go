// Package geocode resolves free-text addresses against a Nominatim-style
// HTTP endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/greenplate/vendex/internal/domain"
	"github.com/greenplate/vendex/internal/domain/geo"
)

const defaultTimeout = 5 * time.Second

// Client calls an external geocoding service. The network round trip is
// the only latency-heavy call in a search, so every request carries a
// bounded timeout.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	timeout    time.Duration
}

// NewClient creates a geocoding client. timeout <= 0 selects the default.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// place is the subset of the provider response we consume.
type place struct {
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
	Address struct {
		Neighbourhood string `json:"neighbourhood"`
		Suburb        string `json:"suburb"`
	} `json:"address"`
}

// Resolve geocodes an address to a point and neighborhood name.
// Unresolvable addresses, transport failures and timeouts all surface as
// domain.ErrGeocodeFailed so callers treat them uniformly.
func (c *Client) Resolve(ctx context.Context, address string) (geo.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return geo.Location{}, fmt.Errorf("build geocode request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geo.Location{}, fmt.Errorf("%w: %w", domain.ErrGeocodeFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return geo.Location{}, fmt.Errorf("%w: provider returned %d", domain.ErrGeocodeFailed, resp.StatusCode)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return geo.Location{}, fmt.Errorf("%w: decode response: %w", domain.ErrGeocodeFailed, err)
	}
	if len(places) == 0 {
		return geo.Location{}, fmt.Errorf("%w: no match for %q", domain.ErrGeocodeFailed, address)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return geo.Location{}, fmt.Errorf("%w: bad latitude %q", domain.ErrGeocodeFailed, places[0].Lat)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return geo.Location{}, fmt.Errorf("%w: bad longitude %q", domain.ErrGeocodeFailed, places[0].Lon)
	}

	p := geo.Point{Lat: lat, Lon: lon}
	if !p.Valid() {
		return geo.Location{}, fmt.Errorf("%w: coordinates out of range", domain.ErrGeocodeFailed)
	}

	neighborhood := places[0].Address.Neighbourhood
	if neighborhood == "" {
		neighborhood = places[0].Address.Suburb
	}

	return geo.Location{Point: p, Neighborhood: neighborhood}, nil
}

// HealthCheck probes the provider with a status request.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return fmt.Errorf("build status request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geocoder unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoder returned %d", resp.StatusCode)
	}
	return nil
}
