// Package nominatim geocodes free-text addresses with OpenStreetMap Nominatim.
package nominatim

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"food_maps/internal/adapters/httpx"
	"food_maps/internal/domain"
)

const DefaultURL = "https://nominatim.openstreetmap.org"

type result struct {
	PlaceID     int64  `json:"place_id"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

type Client struct {
	base     string
	hc       *httpx.Client
	language string
}

// New builds a geocoder. Nominatim's usage policy asks for a real User-Agent
// and at most one request per second; both live on hc.
func New(base string, hc *httpx.Client, language string) *Client {
	if base == "" {
		base = DefaultURL
	}
	return &Client{base: base, hc: hc, language: language}
}

// Geocode returns the best match for query, or ErrNotFound.
func (c *Client) Geocode(ctx context.Context, query string) (domain.Location, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")
	if c.language != "" {
		params.Set("accept-language", c.language)
	}

	var results []result
	if err := c.hc.GetJSON(ctx, "search", c.base+"/search?"+params.Encode(), &results); err != nil {
		return domain.Location{}, fmt.Errorf("nominatim search: %w", err)
	}
	if len(results) == 0 {
		return domain.Location{}, fmt.Errorf("nominatim %q: %w", query, domain.ErrNotFound)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("%w: lat %q", domain.ErrMalformedResponse, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("%w: lon %q", domain.ErrMalformedResponse, results[0].Lon)
	}
	return domain.NewLocation(lat, lon)
}
