// Package overpass queries OpenStreetMap data through the Overpass API.
package overpass

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"food_maps/internal/adapters/httpx"
	"food_maps/internal/domain"
)

const DefaultURL = "https://overpass-api.de/api/interpreter"

type Client struct {
	url      string
	hc       *httpx.Client
	retry    httpx.RetryPolicy
	language string
}

// New builds a client. language selects a preferred "name:<lang>" tag.
func New(baseURL string, hc *httpx.Client, retry httpx.RetryPolicy, language string) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{url: baseURL, hc: hc, retry: retry, language: language}
}

// Nearby returns every named place of q.Category within q.RadiusMeters of
// q.Center. Overpass answers in a single page.
func (c *Client) Nearby(ctx context.Context, q domain.NearbyQuery, _ *string) (domain.PlacesPage, error) {
	elems, err := c.run(ctx, "nearby", nearbyQuery(q.Center, q.RadiusMeters, []domain.Category{q.Category}))
	if err != nil {
		return domain.PlacesPage{}, err
	}
	places, err := c.extractPlaces(elems)
	if err != nil {
		return domain.PlacesPage{}, err
	}
	return domain.PlacesPage{Items: places}, nil
}

func (c *Client) PlacesInArea(ctx context.Context, area string, categories []domain.Category) ([]domain.Place, error) {
	elems, err := c.run(ctx, "area", areaQuery(area, categories))
	if err != nil {
		return nil, err
	}
	return c.extractPlaces(elems)
}

// Boundary returns the outer ring of the boundary relation named area.
func (c *Client) Boundary(ctx context.Context, area string) (domain.Polygon, error) {
	elems, err := c.run(ctx, "boundary", boundaryQuery(area))
	if err != nil {
		return nil, err
	}
	rings, err := outerRings(elems)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("boundary %q: %w", area, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("boundary %q: %w", area, err)
	}
	if len(rings) == 0 {
		return nil, fmt.Errorf("boundary %q: %w: no closed ring", area, domain.ErrMalformedResponse)
	}
	return largest(rings), nil
}

func (c *Client) run(ctx context.Context, endpoint, query string) ([]rawElement, error) {
	form := url.Values{"data": {query}}.Encode()

	var resp response
	err := c.retry.Do(ctx, "overpass."+endpoint, func(ctx context.Context) error {
		resp = response{}
		if err := c.hc.PostForm(ctx, endpoint, c.url, form, &resp); err != nil {
			return err
		}
		// timeouts and memory exhaustion come back as 200 with a remark
		if strings.Contains(resp.Remark, "runtime error") {
			return fmt.Errorf("%w: %s", domain.ErrProviderTransient, resp.Remark)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("overpass %s: %w", endpoint, err)
	}
	return resp.Elements, nil
}

// extractPlaces decodes elements into places, skipping elements without a name.
func (c *Client) extractPlaces(elems []rawElement) ([]domain.Place, error) {
	places := make([]domain.Place, 0, len(elems))
	for _, raw := range elems {
		el, err := decodeElement(raw)
		if err != nil {
			return nil, err
		}
		name := c.name(el)
		if name == "" {
			continue
		}
		cat, err := domain.ParseCategory(el.Tags().Find("amenity"))
		if err != nil {
			log.Debug().Str("ref", el.Ref()).Msg("skipping element with unexpected amenity")
			continue
		}
		loc, err := el.Location()
		if err != nil {
			return nil, err
		}
		places = append(places, domain.Place{ID: el.Ref(), Name: name, Category: cat, Location: loc})
	}
	return places, nil
}

func (c *Client) name(el Element) string {
	if c.language != "" {
		if n := el.Tags().Find("name:" + c.language); n != "" {
			return n
		}
	}
	return el.Tags().Find("name")
}
