package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/paperdash/content-service/internal/cache"
	"github.com/paperdash/content-service/internal/domain"
)

type serviceInfoResponse struct {
	Status    string   `json:"status"`
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

type searchResponse struct {
	Success   bool                 `json:"success"`
	Query     string               `json:"query"`
	Count     int                  `json:"count"`
	Papers    []domain.PaperRecord `json:"papers"`
	Timestamp time.Time            `json:"timestamp"`
}

type listPapersResponse struct {
	Papers []domain.PaperRecord `json:"papers"`
}

type downloadResponse struct {
	Success       bool   `json:"success"`
	PaperID       string `json:"paper_id"`
	Message       string `json:"message"`
	ContentLength int    `json:"content_length"`
	Cached        bool   `json:"cached"`
}

type previewResponse struct {
	PaperID     string `json:"paper_id"`
	Preview     string `json:"preview"`
	TotalLength int    `json:"total_length"`
}

type questionResponse struct {
	PaperID       string `json:"paper_id"`
	Question      string `json:"question"`
	Content       string `json:"content"`
	IsTruncated   bool   `json:"is_truncated"`
	ContentLength int    `json:"content_length"`
}

type cacheStatsResponse struct {
	CachedPapers int                          `json:"cached_papers"`
	Papers       map[string]cache.EntryStats `json:"papers"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Best-effort; headers already sent.
		_ = err
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
