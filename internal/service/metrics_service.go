package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/spark-api/internal/models"
)

// Catalog query kinds used as metric labels.
const (
	QueryKindList        = "list"
	QueryKindSmartSearch = "smart_search"
	QueryKindExport      = "export"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry          *prometheus.Registry
	handler           http.Handler
	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	catalogQueries    *prometheus.CounterVec
	catalogResults    prometheus.Histogram
	parsedAxes        *prometheus.CounterVec
	bookmarkErrors    prometheus.Counter
	submissionsQueued prometheus.Counter
	submissionsStored *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	catalogQueryCount    uint64
	smartSearchCount     uint64
	bookmarkErrorCount   uint64
	submissionCount      uint64
}

// NewMetricsService registers the service collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	catalogQueries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spark_catalog_queries_total",
		Help: "Catalog filter evaluations by kind",
	}, []string{"kind"})

	catalogResults := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "spark_catalog_results",
		Help:    "Number of programs returned per catalog query",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
	})

	parsedAxes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spark_smart_search_detections_total",
		Help: "Smart-search detections by axis",
	}, []string{"axis"})

	bookmarkErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "spark_bookmark_store_errors_total",
		Help: "Bookmark store failures, including degraded catalog listings",
	})

	submissionsQueued := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "spark_submissions_queued_total",
		Help: "Program submissions accepted for background persistence",
	})

	submissionsStored := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spark_submissions_persisted_total",
		Help: "Program submission persistence attempts by result",
	}, []string{"result"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, catalogQueries, catalogResults, parsedAxes, bookmarkErrors, submissionsQueued, submissionsStored, goroutines)

	return &MetricsService{
		registry:          registry,
		handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		catalogQueries:    catalogQueries,
		catalogResults:    catalogResults,
		parsedAxes:        parsedAxes,
		bookmarkErrors:    bookmarkErrors,
		submissionsQueued: submissionsQueued,
		submissionsStored: submissionsStored,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveCatalogQuery records one filter evaluation and its result size.
func (m *MetricsService) ObserveCatalogQuery(kind string, results int) {
	if m == nil {
		return
	}
	m.catalogQueries.WithLabelValues(kind).Inc()
	m.catalogResults.Observe(float64(results))
	atomic.AddUint64(&m.catalogQueryCount, 1)
	if kind == QueryKindSmartSearch {
		atomic.AddUint64(&m.smartSearchCount, 1)
	}
}

// ObserveParsedQuery counts which axes a smart search detected.
func (m *MetricsService) ObserveParsedQuery(q models.ParsedQuery) {
	if m == nil {
		return
	}
	if q.State != "" {
		m.parsedAxes.WithLabelValues("state").Inc()
	}
	if len(q.Fields) > 0 {
		m.parsedAxes.WithLabelValues("field").Inc()
	}
	if q.Category != "" {
		m.parsedAxes.WithLabelValues("category").Inc()
	}
	if q.Grade != nil {
		m.parsedAxes.WithLabelValues("grade").Inc()
	}
}

// RecordBookmarkError counts a bookmark store failure.
func (m *MetricsService) RecordBookmarkError() {
	if m == nil {
		return
	}
	m.bookmarkErrors.Inc()
	atomic.AddUint64(&m.bookmarkErrorCount, 1)
}

// RecordSubmissionQueued counts a submission handed to the background queue.
func (m *MetricsService) RecordSubmissionQueued() {
	if m == nil {
		return
	}
	m.submissionsQueued.Inc()
	atomic.AddUint64(&m.submissionCount, 1)
}

// RecordSubmissionPersisted counts a persistence attempt.
func (m *MetricsService) RecordSubmissionPersisted(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.submissionsStored.WithLabelValues(result).Inc()
}

// Snapshot returns aggregated metrics suitable for the admin endpoint.
func (m *MetricsService) Snapshot() models.MetricsSnapshot {
	if m == nil {
		return models.MetricsSnapshot{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return models.MetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		CatalogQueries:           atomic.LoadUint64(&m.catalogQueryCount),
		SmartSearches:            atomic.LoadUint64(&m.smartSearchCount),
		BookmarkStoreErrors:      atomic.LoadUint64(&m.bookmarkErrorCount),
		SubmissionsQueued:        atomic.LoadUint64(&m.submissionCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
