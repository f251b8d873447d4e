package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "stays", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stays", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	DBLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stays", Name: "db_query_duration_seconds",
			Help:    "Store operation duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
	BookingEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "stays", Name: "booking_events_total", Help: "Booking lifecycle outcomes."},
		[]string{"event"}, // event: created|conflict|cancelled|cancel_rejected
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "stays", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del|corrupt
	)
	SeedEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "stays", Name: "seed_events_total", Help: "Seeder outcomes per entity."},
		[]string{"entity", "result"},
	)
)

// Serve exposes reg on addr in the background. An empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, DBLatency, BookingEvents, CacheEvents, SeedEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveDB records the time since start; use as `defer observability.ObserveDB("op", time.Now())`.
func ObserveDB(op string, start time.Time) {
	DBLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func ObserveBooking(event string) { BookingEvents.WithLabelValues(event).Inc() }

func ObserveCache(cache, event string) { // event: hit|miss|set|del|corrupt
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveSeed(entity string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	SeedEvents.WithLabelValues(entity, result).Inc()
}
