// Package httpserver provides the HTTP REST API for the paper content service.
package httpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/paperdash/content-service/internal/cache"
	"github.com/paperdash/content-service/internal/domain"
	"github.com/paperdash/content-service/internal/observability"
	"github.com/paperdash/content-service/internal/qa"
)

// ServiceName and ServiceVersion identify the service in metadata responses.
const (
	ServiceName    = "paper-content-service"
	ServiceVersion = "1.0.0"
)

// MetadataFetcher returns paper records for a search query. It never fails:
// an unreachable metadata source degrades to the built-in catalog.
type MetadataFetcher interface {
	Fetch(ctx context.Context, query string, maxResults int) []domain.PaperRecord
}

// TextExtractor downloads a document and extracts its text.
type TextExtractor interface {
	Extract(ctx context.Context, uri string) (string, error)
}

// QuestionPreparer shapes cached text into a question payload.
type QuestionPreparer interface {
	PrepareForQuestion(id string, maxContentLength int) (qa.Prepared, error)
}

// Config holds HTTP server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// DefaultMaxResults is the search result count used when the caller
	// does not specify one.
	DefaultMaxResults int
	// MaxResults caps the per-request search result count.
	MaxResults int
	// PreviewLength is the default preview size in characters.
	PreviewLength int
	// MetricsPath exposes prometheus metrics when non-empty.
	MetricsPath string
}

// Server is the HTTP REST API server.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	cfg        Config

	fetcher   MetadataFetcher
	extractor TextExtractor
	store     cache.Store
	preparer  QuestionPreparer

	validate *validator.Validate
	logger   zerolog.Logger
	metrics  *observability.Metrics
}

// NewServer creates an HTTP server with all dependencies wired.
// metrics may be nil when metrics are disabled.
func NewServer(
	cfg Config,
	fetcher MetadataFetcher,
	extractor TextExtractor,
	store cache.Store,
	preparer QuestionPreparer,
	logger zerolog.Logger,
	metrics *observability.Metrics,
) *Server {
	if cfg.DefaultMaxResults <= 0 {
		cfg.DefaultMaxResults = 6
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 25
	}
	if cfg.PreviewLength <= 0 {
		cfg.PreviewLength = 1000
	}

	s := &Server{
		cfg:       cfg,
		fetcher:   fetcher,
		extractor: extractor,
		store:     store,
		preparer:  preparer,
		validate:  validator.New(),
		logger:    logger.With().Str("component", "http-server").Logger(),
		metrics:   metrics,
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Router exposes the configured handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(correlationIDMiddleware)
	r.Use(s.requestLoggingMiddleware)

	r.Get("/", s.serviceInfoHandler)
	r.Get("/healthz", s.healthHandler)

	if s.cfg.MetricsPath != "" {
		r.Handle(s.cfg.MetricsPath, promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", s.searchPapers)
		r.Post("/search", s.searchPapers)
		r.Get("/papers", s.listPapers)
		r.Post("/papers/{paperID}/download", s.downloadPaper)
		r.Get("/papers/{paperID}/preview", s.previewPaper)
		r.Post("/papers/{paperID}/question", s.questionPaper)
		r.Get("/cache/stats", s.cacheStats)
	})

	return r
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// serviceInfoHandler returns service metadata and the endpoint list.
func (s *Server) serviceInfoHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, serviceInfoResponse{
		Status:  "ok",
		Service: ServiceName,
		Version: ServiceVersion,
		Endpoints: []string{
			"GET /healthz",
			"GET|POST /api/v1/search",
			"GET /api/v1/papers",
			"POST /api/v1/papers/{paperID}/download",
			"GET /api/v1/papers/{paperID}/preview",
			"POST /api/v1/papers/{paperID}/question",
			"GET /api/v1/cache/stats",
		},
	})
}

// healthHandler returns basic liveness status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": ServiceName,
		"version": ServiceVersion,
	})
}
