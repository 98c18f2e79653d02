package shared

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv string

	PlacesProvider string `validate:"oneof=overpass google"`
	Geocoder       string `validate:"oneof=nominatim google"`
	Language       string

	// nearby search
	Address            string  `validate:"required"`
	SearchRadiusMeters float64 `validate:"gt=0"`
	Categories         string

	// heatmap
	AreaName                string  `validate:"required"`
	GridCellSizeMeters      float64 `validate:"gt=0"`
	NearbyPlaceRadiusMeters float64 `validate:"gt=0"`
	ColorScale              string  `validate:"oneof=log linear"`
	HeatmapFile             string  `validate:"required"`
	GeoJSONFile             string

	// providers
	GoogleAPIKey      string
	GoogleBaseURL     string  `validate:"omitempty,url"`
	OverpassURL       string  `validate:"omitempty,url"`
	NominatimURL      string  `validate:"omitempty,url"`
	UserAgent         string  `validate:"required"`
	RequestsPerSecond float64 `validate:"gt=0"`

	RetryMaxAttempts int `validate:"gte=1"`
	RetryDelay       time.Duration
	RetryJitter      time.Duration

	MetricsFile  string
	ShowProgress bool
}

// Load reads the environment, after an optional .env file, and validates it.
func Load() (Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg(".env loaded")
	}

	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		PlacesProvider: strings.ToLower(env("PLACES_PROVIDER", "overpass")),
		Geocoder:       strings.ToLower(env("GEOCODER", "nominatim")),
		Language:       env("LANGUAGE", "iw"),

		Address:            env("ADDRESS", "כיכר רבין, תל אביב"),
		SearchRadiusMeters: atof("SEARCH_RADIUS_METERS", 300),
		Categories:         env("CATEGORIES", ""),

		AreaName:                env("AREA_NAME", "תל אביב-יפו"),
		GridCellSizeMeters:      atof("GRID_CELL_SIZE_METERS", 50),
		NearbyPlaceRadiusMeters: atof("NEARBY_PLACE_RADIUS_METERS", 800),
		ColorScale:              strings.ToLower(env("COLOR_SCALE", "log")),
		HeatmapFile:             env("HEATMAP_FILE", "heatmap_grid.html"),
		GeoJSONFile:             env("GEOJSON_FILE", ""),

		GoogleAPIKey:      env("GOOGLE_API_KEY", ""),
		GoogleBaseURL:     env("GOOGLE_BASE_URL", ""),
		OverpassURL:       env("OVERPASS_URL", ""),
		NominatimURL:      env("NOMINATIM_URL", ""),
		UserAgent:         env("USER_AGENT", "food_maps/1.0"),
		RequestsPerSecond: atof("REQUESTS_PER_SECOND", 1),

		RetryMaxAttempts: atoi("RETRY_MAX_ATTEMPTS", 10),
		RetryDelay:       dur("RETRY_DELAY", 5*time.Second),
		RetryJitter:      dur("RETRY_JITTER", 5*time.Second),

		MetricsFile:  env("METRICS_FILE", ""),
		ShowProgress: atob("SHOW_PROGRESS", false),
	}

	if err := validator.New().Struct(c); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if c.GoogleAPIKey == "" && (c.PlacesProvider == "google" || c.Geocoder == "google") {
		return Config{}, errors.New("invalid config: GOOGLE_API_KEY is required for the google provider")
	}
	return c, nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}

func atof(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not a number, using default")
	}
	return def
}

func atob(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// dur accepts Go durations ("1500ms") or plain seconds.
func dur(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	log.Warn().Str("key", k).Str("value", v).Msg("not a duration, using default")
	return def
}
