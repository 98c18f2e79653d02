package app_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"food_maps/internal/app"
	"food_maps/internal/domain"
)

var rabinSquare = domain.Location{Latitude: 32.0809, Longitude: 34.7806}

// north returns a location d metres north of l.
func north(l domain.Location, d float64) domain.Location {
	return domain.Location{Latitude: l.Latitude + d/111195.0, Longitude: l.Longitude}
}

func TestDistance(t *testing.T) {
	d := app.Distance(rabinSquare, north(rabinSquare, 100))
	if math.Abs(d-100) > 0.1 {
		t.Fatalf("distance = %f, want ~100", d)
	}
	if app.Distance(rabinSquare, rabinSquare) != 0 {
		t.Fatal("distance to self must be 0")
	}
}

func TestFindNearby_RankedPagesStopPastRadius(t *testing.T) {
	places := &fakePlaces{pages: map[domain.Category][]domain.PlacesPage{
		domain.CategoryCafe: {
			{RankedByDistance: true, NextToken: ptr("1"), Items: []domain.Place{
				{ID: "c1", Name: "Cafe 1", Category: domain.CategoryCafe, Location: north(rabinSquare, 10)},
				{ID: "c2", Name: "Cafe 2", Category: domain.CategoryCafe, Location: north(rabinSquare, 20)},
			}},
			{RankedByDistance: true, NextToken: ptr("2"), Items: []domain.Place{
				{ID: "c3", Name: "Cafe 3", Category: domain.CategoryCafe, Location: north(rabinSquare, 40)},
				{ID: "c4", Name: "Too far", Category: domain.CategoryCafe, Location: north(rabinSquare, 80)},
				{ID: "c5", Name: "Also far", Category: domain.CategoryCafe, Location: north(rabinSquare, 90)},
			}},
			{RankedByDistance: true, Items: []domain.Place{
				{ID: "never", Name: "Never fetched", Category: domain.CategoryCafe, Location: rabinSquare},
			}},
		},
		domain.CategoryBar: {
			{RankedByDistance: true, Items: []domain.Place{
				{ID: "b1", Name: "Bar", Category: domain.CategoryBar, Location: north(rabinSquare, 30)},
				{ID: "c1", Name: "Cafe 1 (bar)", Category: domain.CategoryBar, Location: north(rabinSquare, 10)},
			}},
		},
	}}
	svc := app.NewNearbyService(&fakeGeocoder{loc: rabinSquare}, places, "iw")

	res, err := svc.FindNearby(context.Background(), "כיכר רבין, תל אביב", 50, []domain.Category{domain.CategoryCafe, domain.CategoryBar})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Center != rabinSquare {
		t.Fatalf("center = %v", res.Center)
	}
	if places.calls != 3 {
		t.Fatalf("expected 3 page fetches, got %d", places.calls)
	}
	if res.ByCategory[domain.CategoryCafe] != 3 || res.ByCategory[domain.CategoryBar] != 2 {
		t.Fatalf("unexpected counts: %v", res.ByCategory)
	}

	var ids []string
	for _, p := range res.Places {
		ids = append(ids, p.ID)
	}
	want := []string{"c1", "c2", "c3", "b1"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
	// the later duplicate wins
	if res.Places[0].Name != "Cafe 1 (bar)" {
		t.Fatalf("expected last value for c1, got %q", res.Places[0].Name)
	}
}

func TestFindNearby_UnrankedPagesAreFiltered(t *testing.T) {
	places := &fakePlaces{pages: map[domain.Category][]domain.PlacesPage{
		domain.CategoryPub: {
			{Items: []domain.Place{
				{ID: "node/1", Name: "Far", Location: north(rabinSquare, 400)},
				{ID: "node/2", Name: "Near", Location: north(rabinSquare, 100)},
			}},
		},
	}}
	svc := app.NewNearbyService(&fakeGeocoder{loc: rabinSquare}, places, "")

	res, err := svc.FindNearby(context.Background(), "x", 300, []domain.Category{domain.CategoryPub})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Places) != 1 || res.Places[0].ID != "node/2" {
		t.Fatalf("unexpected places: %+v", res.Places)
	}
}

func TestFindNearby_FailsFast(t *testing.T) {
	svc := app.NewNearbyService(&fakeGeocoder{err: domain.ErrNotFound}, &fakePlaces{}, "")
	if _, err := svc.FindNearby(context.Background(), "nowhere", 300, domain.AllCategories); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	places := &fakePlaces{err: domain.ErrProviderTransient}
	svc = app.NewNearbyService(&fakeGeocoder{loc: rabinSquare}, places, "")
	if _, err := svc.FindNearby(context.Background(), "x", 300, domain.AllCategories); !errors.Is(err, domain.ErrProviderTransient) {
		t.Fatalf("expected ErrProviderTransient, got %v", err)
	}
	if places.calls != 1 {
		t.Fatalf("expected to stop after the first failure, got %d calls", places.calls)
	}
}

func TestFindNearby_MissingIdentity(t *testing.T) {
	places := &fakePlaces{pages: map[domain.Category][]domain.PlacesPage{
		domain.CategoryCafe: {{Items: []domain.Place{{Name: "no id", Location: rabinSquare}}}},
	}}
	svc := app.NewNearbyService(&fakeGeocoder{loc: rabinSquare}, places, "")
	if _, err := svc.FindNearby(context.Background(), "x", 300, []domain.Category{domain.CategoryCafe}); !errors.Is(err, domain.ErrMissingIdentity) {
		t.Fatalf("expected ErrMissingIdentity, got %v", err)
	}
}
