package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"

	"food_maps/internal/adapters/google"
	"food_maps/internal/adapters/httpx"
	"food_maps/internal/adapters/nominatim"
	"food_maps/internal/adapters/observability"
	"food_maps/internal/adapters/overpass"
	"food_maps/internal/app"
	"food_maps/internal/domain"
	"food_maps/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)
	reg := observability.InitRegistry()

	categories, err := domain.ParseCategories(cfg.Categories)
	if err != nil {
		log.Fatal().Err(err).Msg("bad CATEGORIES")
	}
	retry := httpx.RetryPolicy{MaxAttempts: cfg.RetryMaxAttempts, Delay: cfg.RetryDelay, Jitter: cfg.RetryJitter}

	var geocoder domain.Geocoder
	var places domain.PlacesProvider
	var gc *google.Client
	if cfg.PlacesProvider == "google" || cfg.Geocoder == "google" {
		gc, err = google.New(cfg.GoogleBaseURL, cfg.GoogleAPIKey, httpx.New("google", cfg.UserAgent, cfg.RequestsPerSecond), retry)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Google client")
		}
	}
	switch cfg.PlacesProvider {
	case "google":
		places = gc
	default:
		places = overpass.New(cfg.OverpassURL, httpx.New("overpass", cfg.UserAgent, cfg.RequestsPerSecond), retry, cfg.Language)
	}
	switch cfg.Geocoder {
	case "google":
		geocoder = gc
	default:
		// Nominatim allows one request per second
		geocoder = nominatim.New(cfg.NominatimURL, httpx.New("nominatim", cfg.UserAgent, 1), cfg.Language)
	}

	log.Info().
		Str("provider", cfg.PlacesProvider).
		Str("geocoder", cfg.Geocoder).
		Str("address", cfg.Address).
		Float64("radius_m", cfg.SearchRadiusMeters).
		Msg("nearby search starting")

	svc := app.NewNearbyService(geocoder, places, cfg.Language)
	res, err := svc.FindNearby(ctx, cfg.Address, cfg.SearchRadiusMeters, categories)
	if err != nil {
		observability.WriteTextfile(reg, cfg.MetricsFile)
		log.Fatal().Err(err).Msg("nearby search failed")
	}

	fmt.Printf("%s %s\n", cfg.Address, res.Center)
	for _, c := range categories {
		fmt.Printf("Found %d %s places\n", res.ByCategory[c], c)
	}
	fmt.Printf("%d unique places:\n", len(res.Places))
	for _, p := range res.Places {
		fmt.Printf("  %-10s %s\n", p.Category, p.Name)
	}

	observability.WriteTextfile(reg, cfg.MetricsFile)
	log.Info().Int("places", len(res.Places)).Msg("nearby search completed")
}
