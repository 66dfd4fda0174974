// Package metrics defines the Prometheus collectors for sift and the
// scrape endpoint that exposes them on a dedicated listener.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	SearchResults       prometheus.Histogram
	IndexDocuments      prometheus.Gauge
	IndexTerms          prometheus.Gauge
	IndexMutations      *prometheus.CounterVec
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sift_http_requests_total",
				Help: "HTTP requests by route and status.",
			},
			[]string{"route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sift_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"route"},
		),
		SearchResults: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sift_search_results",
				Help:    "Results returned per search after truncation.",
				Buckets: []float64{0, 1, 5, 10, 20},
			},
		),
		IndexDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sift_index_documents",
				Help: "Documents currently indexed.",
			},
		),
		IndexTerms: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sift_index_terms",
				Help: "Distinct terms currently indexed.",
			},
		),
		IndexMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sift_index_mutations_total",
				Help: "Index mutations by kind (created, updated, deleted).",
			},
			[]string{"op"},
		),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SearchResults,
		m.IndexDocuments,
		m.IndexTerms,
		m.IndexMutations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveSearch records the size of one search response.
func (m *Metrics) ObserveSearch(results int) {
	if m == nil {
		return
	}
	m.SearchResults.Observe(float64(results))
}

// ObserveMutation records one index mutation.
func (m *Metrics) ObserveMutation(op string) {
	if m == nil {
		return
	}
	m.IndexMutations.WithLabelValues(op).Inc()
}

// SetIndexSize publishes the latest index size snapshot.
func (m *Metrics) SetIndexSize(docs, terms int) {
	if m == nil {
		return
	}
	m.IndexDocuments.Set(float64(docs))
	m.IndexTerms.Set(float64(terms))
}

// Handler returns the scrape handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server listening", slog.String("address", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
