package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/paperdash/content-service/internal/domain"
	"github.com/paperdash/content-service/internal/observability"
	"github.com/paperdash/content-service/internal/resolve"
)

const (
	defaultQuery       = "machine learning"
	maxRequestBodySize = 1 << 20 // 1 MB limit for request bodies
)

// searchRequest is the JSON request body for POST /search.
type searchRequest struct {
	Query      string `json:"query" validate:"omitempty,max=1000"`
	MaxResults int    `json:"max_results" validate:"omitempty,min=1,max=100"`
}

// downloadRequest is the JSON request body for downloading a paper.
type downloadRequest struct {
	Link string `json:"link" validate:"required,url"`
}

// questionRequest is the JSON request body for asking a question.
type questionRequest struct {
	Question         string `json:"question" validate:"required,min=1,max=2000"`
	MaxContentLength int    `json:"max_content_length" validate:"omitempty,min=200,max=100000"`
}

// searchPapers handles GET and POST /api/v1/search.
func (s *Server) searchPapers(w http.ResponseWriter, r *http.Request) {
	req, ok := s.parseSearchRequest(w, r)
	if !ok {
		return
	}

	papers := s.fetcher.Fetch(r.Context(), req.Query, req.MaxResults)
	s.markCachedFullText(papers)

	writeJSON(w, http.StatusOK, searchResponse{
		Success:   true,
		Query:     req.Query,
		Count:     len(papers),
		Papers:    papers,
		Timestamp: time.Now().UTC(),
	})
}

// listPapers handles GET /api/v1/papers, the legacy list form.
func (s *Server) listPapers(w http.ResponseWriter, r *http.Request) {
	req, ok := s.parseSearchRequest(w, r)
	if !ok {
		return
	}

	papers := s.fetcher.Fetch(r.Context(), req.Query, req.MaxResults)
	s.markCachedFullText(papers)

	writeJSON(w, http.StatusOK, listPapersResponse{Papers: papers})
}

// markCachedFullText sets each record's full-text flag from current cache
// membership. The cache is the only source of truth for it: metadata
// sources never know what has been downloaded.
func (s *Server) markCachedFullText(papers []domain.PaperRecord) {
	for i := range papers {
		papers[i].HasFullText = s.store.Has(papers[i].ID)
	}
}

// parseSearchRequest reads the query and result count from the query string,
// or from the JSON body for POST requests. Missing fields take defaults.
func (s *Server) parseSearchRequest(w http.ResponseWriter, r *http.Request) (searchRequest, bool) {
	req := searchRequest{}

	if r.Method == http.MethodPost {
		// An empty body is fine for search: everything has a default.
		defer r.Body.Close()
		body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read request body")
			return req, false
		}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid JSON request body")
				return req, false
			}
			if err := s.validate.Struct(&req); err != nil {
				writeError(w, http.StatusBadRequest, validationMessage(err))
				return req, false
			}
		}
	} else {
		req.Query = r.URL.Query().Get("query")
		if raw := r.URL.Query().Get("max_results"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "max_results must be an integer")
				return req, false
			}
			req.MaxResults = n
		}
		if err := s.validate.Struct(&req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return req, false
		}
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		req.Query = defaultQuery
	}
	if req.MaxResults <= 0 {
		req.MaxResults = s.cfg.DefaultMaxResults
	}
	if req.MaxResults > s.cfg.MaxResults {
		req.MaxResults = s.cfg.MaxResults
	}
	return req, true
}

// downloadPaper handles POST /api/v1/papers/{paperID}/download.
// Already-cached papers return immediately without any network I/O.
func (s *Server) downloadPaper(w http.ResponseWriter, r *http.Request) {
	paperID := chi.URLParam(r, "paperID")
	if paperID == "" {
		writeError(w, http.StatusBadRequest, "paper id is required")
		return
	}

	if s.store.Has(paperID) {
		text, err := s.store.Get(paperID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		s.countDownload("cached")
		writeJSON(w, http.StatusOK, downloadResponse{
			Success:       true,
			PaperID:       paperID,
			Message:       "paper already downloaded",
			ContentLength: len(text),
			Cached:        true,
		})
		return
	}

	var req downloadRequest
	if ok := s.decodeBody(w, r, &req); !ok {
		return
	}

	pdfURL := resolve.PDFURL(req.Link)

	start := time.Now()
	text, err := s.extractor.Extract(r.Context(), pdfURL)
	if err != nil {
		s.countDownload("failed")
		var extErr *domain.ExtractionError
		if s.metrics != nil && errors.As(err, &extErr) {
			s.metrics.ExtractionsFailed.WithLabelValues(string(extErr.Reason)).Inc()
		}
		paperLogger := observability.WithPaperContext(s.logger, paperID, req.Link)
		paperLogger.Warn().Err(err).
			Str("url", pdfURL).
			Msg("download failed")
		writeDomainError(w, err)
		return
	}

	s.store.Put(paperID, text)
	s.countDownload("ok")
	if s.metrics != nil {
		s.metrics.ExtractionDuration.Observe(time.Since(start).Seconds())
	}
	paperLogger := observability.WithPaperContext(s.logger, paperID, req.Link)
	paperLogger.Info().
		Int("length", len(text)).
		Msg("full text cached")

	writeJSON(w, http.StatusOK, downloadResponse{
		Success:       true,
		PaperID:       paperID,
		Message:       "paper downloaded and text extracted",
		ContentLength: len(text),
		Cached:        false,
	})
}

// previewPaper handles GET /api/v1/papers/{paperID}/preview.
func (s *Server) previewPaper(w http.ResponseWriter, r *http.Request) {
	paperID := chi.URLParam(r, "paperID")

	limit := s.cfg.PreviewLength
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	preview, totalLength, err := s.store.Preview(paperID, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, previewResponse{
		PaperID:     paperID,
		Preview:     preview,
		TotalLength: totalLength,
	})
}

// questionPaper handles POST /api/v1/papers/{paperID}/question.
func (s *Server) questionPaper(w http.ResponseWriter, r *http.Request) {
	paperID := chi.URLParam(r, "paperID")

	var req questionRequest
	if ok := s.decodeBody(w, r, &req); !ok {
		return
	}

	prepared, err := s.preparer.PrepareForQuestion(paperID, req.MaxContentLength)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, questionResponse{
		PaperID:       paperID,
		Question:      req.Question,
		Content:       prepared.Content,
		IsTruncated:   prepared.IsTruncated,
		ContentLength: len(prepared.Content),
	})
}

// cacheStats handles GET /api/v1/cache/stats.
func (s *Server) cacheStats(w http.ResponseWriter, r *http.Request) {
	stats := s.store.Stats()
	writeJSON(w, http.StatusOK, cacheStatsResponse{
		CachedPapers: len(stats),
		Papers:       stats,
	})
}

// decodeBody reads, unmarshals and validates a JSON request body. It writes
// a 400 response and returns false on any failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, "request body is required")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON request body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

// validationMessage turns a validator error into a short field-level message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", field)
		case "url":
			return fmt.Sprintf("%s must be a valid URL", field)
		case "min":
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		case "max":
			return fmt.Sprintf("%s must be at most %s", field, fe.Param())
		default:
			return fmt.Sprintf("%s is invalid", field)
		}
	}
	return "invalid input"
}

// writeDomainError maps domain errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	var extErr *domain.ExtractionError
	if errors.As(err, &extErr) {
		switch extErr.Reason {
		case domain.ReasonDownloadFailed:
			writeError(w, http.StatusBadGateway, "failed to download document")
		case domain.ReasonContentTooShort:
			writeError(w, http.StatusUnprocessableEntity, "document yielded too little text to be useful")
		default:
			writeError(w, http.StatusUnprocessableEntity, "document text could not be extracted")
		}
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		var nfe *domain.NotFoundError
		if errors.As(err, &nfe) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("%s not yet downloaded", nfe.Entity))
		} else {
			writeError(w, http.StatusNotFound, "resource not found")
		}
	case errors.Is(err, domain.ErrInvalidInput):
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
		} else {
			writeError(w, http.StatusBadRequest, "invalid input")
		}
	case errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (s *Server) countDownload(outcome string) {
	if s.metrics != nil {
		s.metrics.DownloadsTotal.WithLabelValues(outcome).Inc()
	}
}
