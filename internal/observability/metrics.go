package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the paper content service.
// Metrics are organized by subsystem: searches, downloads, extraction, and
// the content cache. All collectors are registered via promauto with the
// default Prometheus registry.
type Metrics struct {
	// SearchesTotal counts metadata searches, labeled by serving source
	// ("arxiv" for live results, "fallback" for catalog results).
	SearchesTotal *prometheus.CounterVec

	// SearchDuration observes metadata search duration in seconds,
	// labeled by serving source.
	SearchDuration *prometheus.HistogramVec

	// SearchPapersReturned observes the number of papers returned per search.
	SearchPapersReturned prometheus.Histogram

	// DownloadsTotal counts full-text download attempts, labeled by
	// outcome ("ok", "cached", "failed").
	DownloadsTotal *prometheus.CounterVec

	// ExtractionsFailed counts terminal extraction failures, labeled by reason.
	ExtractionsFailed *prometheus.CounterVec

	// ExtractionDuration observes download plus extraction duration in seconds.
	ExtractionDuration prometheus.Histogram

	// CacheHits counts content cache lookups that found an entry.
	CacheHits prometheus.Counter

	// CacheMisses counts content cache lookups that found nothing.
	CacheMisses prometheus.Counter

	// CachedPapers tracks the number of papers with cached full text.
	CachedPapers prometheus.Gauge

	// CachedBytes tracks the total size of cached text in bytes.
	CachedBytes prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SearchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of metadata searches by serving source",
		}, []string{"source"}),
		SearchDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Metadata search duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		SearchPapersReturned: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_papers_returned",
			Help:      "Number of papers returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		DownloadsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloads_total",
			Help:      "Total number of full-text download attempts by outcome",
		}, []string{"outcome"}),
		ExtractionsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_failed_total",
			Help:      "Total number of terminal extraction failures by reason",
		}, []string{"reason"}),
		ExtractionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Download and extraction duration in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of content cache hits",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of content cache misses",
		}),
		CachedPapers: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cached_papers",
			Help:      "Number of papers with cached full text",
		}),
		CachedBytes: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cached_bytes",
			Help:      "Total size of cached extracted text in bytes",
		}),
	}
}
