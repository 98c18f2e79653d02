package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/k0kubun/go-ansi"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"food_maps/internal/adapters/google"
	"food_maps/internal/adapters/httpx"
	"food_maps/internal/adapters/nominatim"
	"food_maps/internal/adapters/observability"
	"food_maps/internal/adapters/overpass"
	"food_maps/internal/adapters/render"
	"food_maps/internal/app"
	"food_maps/internal/colors"
	"food_maps/internal/domain"
	"food_maps/internal/shared"
	"food_maps/internal/spatial"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	log.Logger = observability.NewLogger(cfg.AppEnv)
	reg := observability.InitRegistry()
	defer observability.WriteTextfile(reg, cfg.MetricsFile)

	categories, err := domain.ParseCategories(cfg.Categories)
	if err != nil {
		log.Fatal().Err(err).Msg("bad CATEGORIES")
	}
	scale, err := colors.ParseScale(cfg.ColorScale)
	if err != nil {
		log.Fatal().Err(err).Msg("bad COLOR_SCALE")
	}
	retry := httpx.RetryPolicy{MaxAttempts: cfg.RetryMaxAttempts, Delay: cfg.RetryDelay, Jitter: cfg.RetryJitter}

	// area boundaries and area queries only exist on Overpass
	areas := overpass.New(cfg.OverpassURL, httpx.New("overpass", cfg.UserAgent, cfg.RequestsPerSecond), retry, cfg.Language)

	var geocoder domain.Geocoder
	if cfg.Geocoder == "google" {
		gc, err := google.New(cfg.GoogleBaseURL, cfg.GoogleAPIKey, httpx.New("google", cfg.UserAgent, cfg.RequestsPerSecond), retry)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Google client")
		}
		geocoder = gc
	} else {
		geocoder = nominatim.New(cfg.NominatimURL, httpx.New("nominatim", cfg.UserAgent, 1), cfg.Language)
	}

	renderers := []domain.Renderer{render.NewHTMLRenderer(cfg.HeatmapFile)}
	if cfg.GeoJSONFile != "" {
		renderers = append(renderers, render.NewGeoJSONRenderer(cfg.GeoJSONFile))
	}

	var opts []app.HeatmapOption
	if cfg.ShowProgress {
		opts = append(opts, app.WithCountProgress(newProgressBar))
	}
	svc := app.NewHeatmapService(geocoder, areas, renderers, opts...)

	log.Info().
		Str("area", cfg.AreaName).
		Float64("cell_m", cfg.GridCellSizeMeters).
		Float64("radius_m", cfg.NearbyPlaceRadiusMeters).
		Str("scale", scale.String()).
		Msg("heatmap starting")

	h, err := svc.Build(ctx, app.HeatmapRequest{
		Area:           cfg.AreaName,
		CellSizeMeters: cfg.GridCellSizeMeters,
		RadiusMeters:   cfg.NearbyPlaceRadiusMeters,
		Categories:     categories,
		Scale:          scale,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("heatmap failed")
	}
	if err := svc.Render(ctx, h); err != nil {
		log.Fatal().Err(err).Msg("render failed")
	}

	log.Info().
		Int("cells", len(h.Cells)).
		Int("places", h.PlacesCount).
		Int("min", h.MinCount).
		Int("max", h.MaxCount).
		Msg("heatmap completed")
}

func newProgressBar(total int) spatial.Progress {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("[cyan]counting nearby places[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
