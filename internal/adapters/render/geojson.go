package render

import (
	"context"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	"food_maps/internal/domain"
)

// GeoJSONRenderer writes the cells as a FeatureCollection of polygons with
// count and color properties.
type GeoJSONRenderer struct {
	Path string
}

func NewGeoJSONRenderer(path string) *GeoJSONRenderer {
	return &GeoJSONRenderer{Path: path}
}

func (r *GeoJSONRenderer) Render(_ context.Context, h domain.Heatmap) error {
	b, err := FeatureCollection(h).MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal geojson: %w", err)
	}
	if err := os.WriteFile(r.Path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", r.Path, err)
	}
	log.Info().Str("path", r.Path).Int("cells", len(h.Cells)).Msg("heatmap geojson written")
	return nil
}

func FeatureCollection(h domain.Heatmap) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, c := range h.Cells {
		sw := orb.Point{c.SouthWest.Longitude, c.SouthWest.Latitude}
		ne := orb.Point{c.NorthEast.Longitude, c.NorthEast.Latitude}
		poly := orb.Bound{Min: sw, Max: ne}.ToPolygon()

		f := geojson.NewFeature(poly)
		f.Properties["count"] = c.NearbyCount
		f.Properties["color"] = c.Color
		f.Properties["fill-opacity"] = FillOpacity
		fc.Append(f)
	}
	fc.ExtraMembers = geojson.Properties{
		"area":         h.Area,
		"cell_size_m":  h.CellSizeMeters,
		"radius_m":     h.RadiusMeters,
		"min_count":    h.MinCount,
		"max_count":    h.MaxCount,
		"places_count": h.PlacesCount,
	}
	return fc
}
