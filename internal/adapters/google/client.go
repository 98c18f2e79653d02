// Package google talks to the Google Maps Places and Geocoding web services.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"

	"food_maps/internal/adapters/httpx"
	"food_maps/internal/domain"
)

const DefaultBaseURL = "https://maps.googleapis.com/maps/api"

// Provider statuses, see the Places API docs.
const (
	statusOK             = "OK"
	statusZeroResults    = "ZERO_RESULTS"
	statusInvalidRequest = "INVALID_REQUEST"
	statusOverQueryLimit = "OVER_QUERY_LIMIT"
	statusUnknownError   = "UNKNOWN_ERROR"
)

// errZeroResults is the ZERO_RESULTS status. It matches domain.ErrNotFound;
// an HTTP 404 from a wrong endpoint does not match it.
var errZeroResults = fmt.Errorf("%w: %s", domain.ErrNotFound, statusZeroResults)

// placeTypes maps categories to Places API types. Google has no fast food
// type, so meal_takeaway stands in. It has no pub type either, and pubs are
// already returned under "bar", so pub is left out and yields an empty page.
var placeTypes = map[domain.Category]string{
	domain.CategoryCafe:       "cafe",
	domain.CategoryBar:        "bar",
	domain.CategoryRestaurant: "restaurant",
	domain.CategoryFastFood:   "meal_takeaway",
}

type Client struct {
	base  string
	key   string
	hc    *httpx.Client
	retry httpx.RetryPolicy
}

func New(base, key string, hc *httpx.Client, retry httpx.RetryPolicy) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{base: base, key: key, hc: hc, retry: retry}, nil
}

// Nearby runs one Nearby Search page ranked by distance. The radius is not
// sent: with rankby=distance Google ignores it, so callers cut results by
// distance themselves.
func (c *Client) Nearby(ctx context.Context, q domain.NearbyQuery, pageToken *string) (domain.PlacesPage, error) {
	if q.Category == domain.CategoryPub {
		log.Debug().Msg("google has no pub type, pubs are counted as bars")
		return domain.PlacesPage{RankedByDistance: true}, nil
	}
	placeType, ok := placeTypes[q.Category]
	if !ok {
		return domain.PlacesPage{}, fmt.Errorf("google: no place type for category %q", q.Category)
	}

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", q.Center.Latitude, q.Center.Longitude))
	params.Set("rankby", "distance")
	params.Set("type", placeType)
	if q.Language != "" {
		params.Set("language", q.Language)
	}
	if pageToken != nil {
		params.Set("pagetoken", *pageToken)
	}
	params.Set("key", c.key)
	reqURL := c.base + "/place/nearbysearch/json?" + params.Encode()

	var resp nearbyResponse
	err := c.retry.Do(ctx, "google.nearby", func(ctx context.Context) error {
		resp = nearbyResponse{}
		if err := c.hc.GetJSON(ctx, "nearbysearch", reqURL, &resp); err != nil {
			return err
		}
		return statusErr(resp.Status, resp.ErrorMessage)
	})
	if errors.Is(err, errZeroResults) {
		return domain.PlacesPage{RankedByDistance: true}, nil
	}
	if err != nil {
		return domain.PlacesPage{}, fmt.Errorf("google nearby search: %w", err)
	}

	page := domain.PlacesPage{RankedByDistance: true, Items: make([]domain.Place, 0, len(resp.Results))}
	for _, r := range resp.Results {
		if r.PlaceID == "" || r.Name == "" {
			continue
		}
		loc, err := domain.NewLocation(r.Geometry.Location.Lat, r.Geometry.Location.Lng)
		if err != nil {
			return domain.PlacesPage{}, err
		}
		page.Items = append(page.Items, domain.Place{ID: r.PlaceID, Name: r.Name, Category: q.Category, Location: loc})
	}
	if resp.NextPageToken != "" {
		tok := resp.NextPageToken
		page.NextToken = &tok
	}
	return page, nil
}

// Geocode resolves a free-text address. It is not retried.
func (c *Client) Geocode(ctx context.Context, address string) (domain.Location, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.key)

	var resp geocodeResponse
	if err := c.hc.GetJSON(ctx, "geocode", c.base+"/geocode/json?"+params.Encode(), &resp); err != nil {
		return domain.Location{}, fmt.Errorf("google geocode: %w", err)
	}
	if err := statusErr(resp.Status, resp.ErrorMessage); err != nil {
		return domain.Location{}, fmt.Errorf("google geocode %q: %w", address, err)
	}
	if len(resp.Results) == 0 {
		return domain.Location{}, fmt.Errorf("google geocode %q: %w", address, domain.ErrNotFound)
	}
	g := resp.Results[0].Geometry.Location
	return domain.NewLocation(g.Lat, g.Lng)
}

// statusErr maps provider statuses to domain errors. INVALID_REQUEST is
// transient because a fresh next_page_token is rejected until Google has
// finished preparing the page.
func statusErr(status, msg string) error {
	switch status {
	case statusOK:
		return nil
	case statusZeroResults:
		return errZeroResults
	case statusInvalidRequest, statusOverQueryLimit, statusUnknownError:
		return fmt.Errorf("%w: %s %s", domain.ErrProviderTransient, status, msg)
	default:
		return fmt.Errorf("provider status %s: %s", status, msg)
	}
}
