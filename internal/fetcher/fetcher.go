// Package fetcher coordinates metadata retrieval: the live arXiv API first,
// degrading silently to the built-in fallback catalog on any failure.
package fetcher

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/paperdash/content-service/internal/catalog"
	"github.com/paperdash/content-service/internal/domain"
	"github.com/paperdash/content-service/internal/observability"
)

// Serving source labels for logs and metrics.
const (
	SourceArXiv    = "arxiv"
	SourceFallback = "fallback"
)

// MetadataSource searches an external source for paper metadata.
// *arxiv.Client satisfies this interface.
type MetadataSource interface {
	Search(ctx context.Context, query string, maxResults int) ([]domain.PaperRecord, error)
}

// Fetcher resolves queries to paper metadata with graceful degradation.
type Fetcher struct {
	source  MetadataSource
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// New creates a Fetcher backed by the given metadata source.
// metrics may be nil when metrics are disabled.
func New(source MetadataSource, logger zerolog.Logger, metrics *observability.Metrics) *Fetcher {
	return &Fetcher{
		source:  source,
		logger:  logger.With().Str("component", "fetcher").Logger(),
		metrics: metrics,
	}
}

// Fetch returns up to maxResults paper records for the query. It never
// fails outward: network errors, non-success responses, malformed feeds,
// and empty result sets all degrade to the fallback catalog. Every returned
// record is tagged with the query as its category.
func (f *Fetcher) Fetch(ctx context.Context, query string, maxResults int) []domain.PaperRecord {
	if maxResults < 1 {
		maxResults = 1
	}

	start := time.Now()
	source := SourceArXiv

	records, err := f.source.Search(ctx, query, maxResults)
	if err != nil || len(records) == 0 {
		searchLogger := observability.WithSearchContext(f.logger, query, SourceArXiv)
		if err != nil {
			searchLogger.Warn().Err(err).Msg("metadata search degraded to fallback catalog")
		} else {
			searchLogger.Warn().Msg("metadata search returned no entries, using fallback catalog")
		}
		records = catalog.Filter(query, maxResults)
		source = SourceFallback
	} else {
		for i := range records {
			records[i].Category = query
		}
	}

	if f.metrics != nil {
		f.metrics.SearchesTotal.WithLabelValues(source).Inc()
		f.metrics.SearchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
		f.metrics.SearchPapersReturned.Observe(float64(len(records)))
	}

	f.logger.Info().
		Str("query", query).
		Str("source", source).
		Int("count", len(records)).
		Msg("metadata search served")

	return records
}
