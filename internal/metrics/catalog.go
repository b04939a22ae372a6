// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "statusbot_catalog_request_duration_seconds",
		Help:    "Catalog API request latency by operation and HTTP status",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "status"})

	catalogErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statusbot_catalog_errors_total",
		Help: "Catalog API failures by operation and error class",
	}, []string{"operation", "class"})

	listingCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statusbot_listing_cache_total",
		Help: "Product listing cache lookups",
	}, []string{"result"}) // result=hit|miss|error

	statusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statusbot_status_updates_total",
		Help: "Bulk status update calls by outcome",
	}, []string{"outcome", "color"})
)

// ObserveCatalogRequest records one catalog request. status 0 means no response.
func ObserveCatalogRequest(operation string, status int, elapsed time.Duration) {
	catalogRequestDuration.WithLabelValues(operation, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// IncCatalogError counts a failed catalog request.
func IncCatalogError(operation, class string) {
	catalogErrorsTotal.WithLabelValues(operation, class).Inc()
}

// RecordListingCache counts a listing cache lookup.
func RecordListingCache(result string) {
	listingCacheTotal.WithLabelValues(result).Inc()
}

// RecordStatusUpdate counts one status write.
func RecordStatusUpdate(outcome, color string) {
	statusUpdatesTotal.WithLabelValues(outcome, color).Inc()
}
