package observability

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var (
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "food_maps", Name: "external_requests_total", Help: "Outbound requests."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "food_maps", Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	Retries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "food_maps", Name: "retries_total", Help: "Retried provider calls."},
		[]string{"op", "error"},
	)
	PipelineItems = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: "food_maps", Name: "pipeline_items", Help: "Items produced by the last run, per stage."},
		[]string{"stage"}, // stage: nearby_places|grid_points|area_places
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(ExternalRequests, ExternalLatency, Retries, PipelineItems)
	return reg
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
// Batch runs have no scrape endpoint; an empty path disables it.
func WriteTextfile(reg *prometheus.Registry, path string) {
	if path == "" {
		return
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		log.Error().Err(err).Str("path", path).Msg("write metrics failed")
		return
	}
	log.Info().Str("path", path).Msg("metrics written")
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

// ObserveRetry counts one retry of op after err.
func ObserveRetry(op string, err error) { Retries.WithLabelValues(op, LabelErr(err)).Inc() }

func ObserveStage(stage string, n int) { PipelineItems.WithLabelValues(stage).Set(float64(n)) }

// LabelErr reduces err to a low-cardinality label: "http_<status>" for
// replies carrying an HTTP status, "timeout" for deadlines, "provider" otherwise.
func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return "http_" + strconv.Itoa(sc.StatusCode())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "provider"
}
