package models

import "time"

// MetricsSnapshot is a small in-process summary of service activity.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	CatalogQueries           uint64    `json:"catalog_queries"`
	SmartSearches            uint64    `json:"smart_searches"`
	BookmarkStoreErrors      uint64    `json:"bookmark_store_errors"`
	SubmissionsQueued        uint64    `json:"submissions_queued"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
