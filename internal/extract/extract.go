// Package extract turns a downloadable document URI into plain text,
// trying extraction strategies in order behind a minimum-length quality gate.
package extract

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/paperdash/content-service/internal/domain"
)

// DefaultMinContentLength is the quality gate threshold: trimmed text
// shorter than this signals a scanned image, empty, or access-protected
// document.
const DefaultMinContentLength = 100

// Downloader fetches raw document bytes. *download.Downloader satisfies it.
type Downloader interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Extractor downloads documents and extracts their plain text.
type Extractor struct {
	downloader Downloader
	strategies []Strategy
	minLength  int
	logger     zerolog.Logger
}

// New creates an Extractor with the default strategy order.
// minLength of 0 means DefaultMinContentLength.
func New(downloader Downloader, minLength int, logger zerolog.Logger) *Extractor {
	return NewWithStrategies(downloader, DefaultStrategies(), minLength, logger)
}

// NewWithStrategies creates an Extractor with an explicit strategy order.
// This is useful for tests and for adding further strategies later.
func NewWithStrategies(downloader Downloader, strategies []Strategy, minLength int, logger zerolog.Logger) *Extractor {
	if minLength <= 0 {
		minLength = DefaultMinContentLength
	}
	return &Extractor{
		downloader: downloader,
		strategies: strategies,
		minLength:  minLength,
		logger:     logger.With().Str("component", "extractor").Logger(),
	}
}

// Extract downloads the document at uri and returns its plain text.
// It fails with a single terminal *domain.ExtractionError:
//
//   - download-failed when the bytes cannot be fetched,
//   - extraction-failed when the final strategy errors,
//   - content-too-short when the final strategy's output fails the gate.
//
// Strategies are attempted once each, in order. A strategy whose output
// fails the quality gate does not abort the sequence: a later strategy may
// still succeed where an earlier one produced near-empty output.
func (e *Extractor) Extract(ctx context.Context, uri string) (string, error) {
	data, err := e.downloader.Fetch(ctx, uri)
	if err != nil {
		return "", domain.NewExtractionError(domain.ReasonDownloadFailed, uri, err)
	}

	var lastErr error
	for _, strat := range e.strategies {
		text, err := strat.Extract(data)
		if err != nil {
			e.logger.Debug().
				Str("uri", uri).
				Str("strategy", strat.Name()).
				Err(err).
				Msg("extraction strategy errored")
			lastErr = err
			continue
		}
		lastErr = nil

		if e.passesGate(text) {
			e.logger.Info().
				Str("uri", uri).
				Str("strategy", strat.Name()).
				Int("length", len(text)).
				Msg("text extracted")
			return text, nil
		}

		e.logger.Debug().
			Str("uri", uri).
			Str("strategy", strat.Name()).
			Int("length", len(strings.TrimSpace(text))).
			Msg("extracted text below quality gate")
	}

	if lastErr != nil {
		return "", domain.NewExtractionError(domain.ReasonExtractionFailed, uri, lastErr)
	}
	return "", domain.NewExtractionError(domain.ReasonContentTooShort, uri, nil)
}

// passesGate applies the minimum-content-length quality gate.
func (e *Extractor) passesGate(text string) bool {
	return len(strings.TrimSpace(text)) >= e.minLength
}
