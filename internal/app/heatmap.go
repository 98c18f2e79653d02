package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"food_maps/internal/adapters/observability"
	"food_maps/internal/colors"
	"food_maps/internal/domain"
	"food_maps/internal/spatial"
)

type HeatmapRequest struct {
	Area           string
	CellSizeMeters float64
	RadiusMeters   float64
	Categories     []domain.Category
	Scale          colors.Scale
}

type HeatmapService struct {
	geocoder  domain.Geocoder
	areas     domain.AreaProvider
	renderers []domain.Renderer
	palette   colors.Palette
	progress  func(total int) spatial.Progress
}

type HeatmapOption func(*HeatmapService)

// WithCountProgress reports density counting progress to the Progress
// returned by newProgress for the number of grid points.
func WithCountProgress(newProgress func(total int) spatial.Progress) HeatmapOption {
	return func(s *HeatmapService) { s.progress = newProgress }
}

func WithPalette(p colors.Palette) HeatmapOption {
	return func(s *HeatmapService) { s.palette = p }
}

func NewHeatmapService(g domain.Geocoder, a domain.AreaProvider, renderers []domain.Renderer, opts ...HeatmapOption) *HeatmapService {
	s := &HeatmapService{geocoder: g, areas: a, renderers: renderers, palette: colors.CoolWarm}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build computes the density heatmap of req.Area.
func (s *HeatmapService) Build(ctx context.Context, req HeatmapRequest) (domain.Heatmap, error) {
	center, err := s.geocoder.Geocode(ctx, req.Area)
	if err != nil {
		return domain.Heatmap{}, fmt.Errorf("geocode %q: %w", req.Area, err)
	}

	log.Info().Str("area", req.Area).Msg("fetching area boundary")
	boundary, err := s.areas.Boundary(ctx, req.Area)
	if err != nil {
		return domain.Heatmap{}, fmt.Errorf("boundary %q: %w", req.Area, err)
	}
	boundary = boundary.Close()

	frame := spatial.FrameFor(boundary)
	log.Info().Float64("cell_m", req.CellSizeMeters).Msg("creating grid points")
	grid, err := spatial.Grid(frame.ProjectPolygon(boundary), req.CellSizeMeters)
	if err != nil {
		return domain.Heatmap{}, err
	}
	observability.ObserveStage("grid_points", len(grid))

	log.Info().Str("area", req.Area).Msg("finding places")
	found, err := s.areas.PlacesInArea(ctx, req.Area, req.Categories)
	if err != nil {
		return domain.Heatmap{}, fmt.Errorf("places in %q: %w", req.Area, err)
	}
	places, err := Dedupe(found)
	if err != nil {
		return domain.Heatmap{}, err
	}
	observability.ObserveStage("area_places", len(places))
	locs := make([]domain.Location, len(places))
	for i, p := range places {
		locs[i] = p.Location
	}

	log.Info().Int("grid_points", len(grid)).Int("places", len(places)).Msg("counting nearby places")
	var opts []spatial.CountOption
	if s.progress != nil {
		opts = append(opts, spatial.WithProgress(s.progress(len(grid))))
	}
	counts := spatial.CountNearby(grid, frame.ProjectAll(locs), req.RadiusMeters, opts...)

	h := domain.Heatmap{
		Area:           req.Area,
		Center:         center,
		CellSizeMeters: req.CellSizeMeters,
		RadiusMeters:   req.RadiusMeters,
		Cells:          make([]domain.HeatCell, len(grid)),
		PlacesCount:    len(places),
	}
	for i, n := range counts {
		if i == 0 || n < h.MinCount {
			h.MinCount = n
		}
		if i == 0 || n > h.MaxCount {
			h.MaxCount = n
		}
	}

	mapper := colors.NewMapper(req.Scale, h.MinCount, h.MaxCount, s.palette)
	for i, p := range grid {
		b := spatial.CellBounds(p, req.CellSizeMeters)
		h.Cells[i] = domain.HeatCell{
			GridPoint: domain.GridPoint{Location: frame.Unproject(p), NearbyCount: counts[i]},
			SouthWest: frame.Unproject(b.Min),
			NorthEast: frame.Unproject(b.Max),
			Color:     mapper.Color(counts[i]),
		}
	}
	return h, nil
}

// Render hands h to every configured renderer in order.
func (s *HeatmapService) Render(ctx context.Context, h domain.Heatmap) error {
	log.Info().Int("cells", len(h.Cells)).Int("renderers", len(s.renderers)).Msg("rendering heatmap")
	for _, r := range s.renderers {
		if err := r.Render(ctx, h); err != nil {
			return err
		}
	}
	return nil
}
