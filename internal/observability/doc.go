// Package observability provides structured logging, Prometheus metrics,
// and request-scoped context helpers for the paper content service.
//
// Logging uses zerolog with configurable level, format, and output.
// Metrics cover the fetch, extraction, and cache subsystems and are
// registered with the default Prometheus registry via promauto.
package observability
