package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_queries_total",
			Help: "Total number of product queries by outcome",
		},
		[]string{"outcome"}, // "found" or "empty"
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_lookups_total",
			Help: "Resolved catalog cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss" or "error"
	)

	ResolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_resolve_duration_seconds",
			Help:    "Time spent resolving a query into a catalog",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		},
	)

	ProductsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_products_returned",
			Help:    "Number of products returned per query",
			Buckets: []float64{0, 1, 2, 5, 10, 15, 20, 26, 40},
		},
	)

	TemplatesLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_templates_loaded",
			Help: "Number of templates in the pool",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
