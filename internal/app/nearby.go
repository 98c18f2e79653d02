package app

import (
	"context"
	"fmt"

	"github.com/golang/geo/s2"
	"github.com/rs/zerolog/log"

	"food_maps/internal/adapters/observability"
	"food_maps/internal/domain"
)

// earthRadiusMeters is the mean Earth radius (IUGG).
const earthRadiusMeters = 6371008.8

type NearbyService struct {
	geocoder domain.Geocoder
	places   domain.PlacesProvider
	language string
}

func NewNearbyService(g domain.Geocoder, p domain.PlacesProvider, language string) *NearbyService {
	return &NearbyService{geocoder: g, places: p, language: language}
}

type NearbyResult struct {
	Center     domain.Location
	ByCategory map[domain.Category]int
	Places     []domain.Place
}

// FindNearby geocodes address and collects every place of the given
// categories within radius metres of it.
func (s *NearbyService) FindNearby(ctx context.Context, address string, radius float64, categories []domain.Category) (NearbyResult, error) {
	center, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return NearbyResult{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	log.Info().Str("address", address).Stringer("center", center).Msg("address geocoded")

	res := NearbyResult{Center: center, ByCategory: make(map[domain.Category]int, len(categories))}
	var all []domain.Place
	for _, cat := range categories {
		log.Info().Str("category", string(cat)).Float64("radius_m", radius).Msg("finding places")
		found, err := s.collect(ctx, domain.NearbyQuery{
			Center:       center,
			RadiusMeters: radius,
			Category:     cat,
			Language:     s.language,
		})
		if err != nil {
			return NearbyResult{}, fmt.Errorf("%s: %w", cat, err)
		}
		found, err = Dedupe(found)
		if err != nil {
			return NearbyResult{}, err
		}
		res.ByCategory[cat] = len(found)
		all = append(all, found...)
	}

	res.Places, err = Dedupe(all)
	if err != nil {
		return NearbyResult{}, err
	}
	observability.ObserveStage("nearby_places", len(res.Places))
	return res, nil
}

// collect follows the page chain one page at a time. When the provider ranks
// by distance the first result past the radius ends the chain.
func (s *NearbyService) collect(ctx context.Context, q domain.NearbyQuery) ([]domain.Place, error) {
	var (
		out   []domain.Place
		token *string
	)
	for {
		page, err := s.places.Nearby(ctx, q, token)
		if err != nil {
			return nil, err
		}
		for _, p := range page.Items {
			if Distance(q.Center, p.Location) <= q.RadiusMeters {
				out = append(out, p)
				continue
			}
			if page.RankedByDistance {
				return out, nil
			}
		}
		if page.NextToken == nil {
			return out, nil
		}
		token = page.NextToken
	}
}

// Distance is the great-circle distance in metres.
func Distance(a, b domain.Location) float64 {
	pa := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	pb := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return pa.Distance(pb).Radians() * earthRadiusMeters
}
