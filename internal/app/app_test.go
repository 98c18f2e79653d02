package app_test

import (
	"context"
	"errors"

	"food_maps/internal/domain"
)

// ---- fakes ----

type fakeGeocoder struct {
	loc domain.Location
	err error
}

func (g *fakeGeocoder) Geocode(ctx context.Context, q string) (domain.Location, error) {
	return g.loc, g.err
}

// fakePlaces serves pre-built page chains per category. Page tokens are the
// page index as a string.
type fakePlaces struct {
	pages map[domain.Category][]domain.PlacesPage
	calls int
	err   error
}

func (f *fakePlaces) Nearby(ctx context.Context, q domain.NearbyQuery, token *string) (domain.PlacesPage, error) {
	f.calls++
	if f.err != nil {
		return domain.PlacesPage{}, f.err
	}
	chain := f.pages[q.Category]
	i := 0
	if token != nil {
		i = int((*token)[0] - '0')
	}
	if i >= len(chain) {
		return domain.PlacesPage{}, errors.New("page out of range")
	}
	return chain[i], nil
}

type fakeArea struct {
	boundary domain.Polygon
	places   []domain.Place
}

func (f *fakeArea) Boundary(ctx context.Context, area string) (domain.Polygon, error) {
	if f.boundary == nil {
		return nil, domain.ErrNotFound
	}
	return f.boundary, nil
}

func (f *fakeArea) PlacesInArea(ctx context.Context, area string, cats []domain.Category) ([]domain.Place, error) {
	return f.places, nil
}

type fakeRenderer struct {
	got []domain.Heatmap
	err error
}

func (r *fakeRenderer) Render(ctx context.Context, h domain.Heatmap) error {
	r.got = append(r.got, h)
	return r.err
}

func ptr[T any](v T) *T { return &v }
