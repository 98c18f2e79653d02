package domain

import "context"

type Geocoder interface {
	// Geocode returns ErrNotFound when the provider has no match.
	Geocode(ctx context.Context, query string) (Location, error)
}

type PlacesProvider interface {
	// Nearby returns one page; pass the previous page's NextToken to continue.
	Nearby(ctx context.Context, q NearbyQuery, pageToken *string) (PlacesPage, error)
}

type AreaProvider interface {
	Boundary(ctx context.Context, area string) (Polygon, error)
	PlacesInArea(ctx context.Context, area string, categories []Category) ([]Place, error)
}

type Renderer interface {
	Render(ctx context.Context, h Heatmap) error
}
