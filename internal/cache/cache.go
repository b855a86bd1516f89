// Package cache stores extracted paper text for the lifetime of the process.
//
// The backing store sits behind the Store interface so a multi-instance
// deployment can move it to an external key-value service without touching
// the rest of the pipeline.
package cache

import (
	"sync"
	"unicode/utf8"

	"github.com/paperdash/content-service/internal/domain"
	"github.com/paperdash/content-service/internal/observability"
)

// TruncationMarker is appended to previews cut short of the full text.
const TruncationMarker = "..."

// statsPreviewLength is the excerpt length used in Stats output.
const statsPreviewLength = 100

// EntryStats summarizes one cached entry for introspection.
type EntryStats struct {
	Length  int    `json:"length"`
	Preview string `json:"preview"`
}

// Store is the content cache contract: a process-scoped key-value store of
// extracted text keyed by paper id.
type Store interface {
	// Has reports whether text is cached for the id.
	Has(id string) bool

	// Put stores text under the id. Writes are idempotent: the system only
	// ever puts the same extraction result for a given id, so racing
	// writers are safe.
	Put(id, text string)

	// Get returns the full cached text, or domain.ErrNotFound.
	Get(id string) (string, error)

	// Preview returns the first limit characters of the cached text, with
	// TruncationMarker appended when the text exceeds limit, plus the full
	// text length in bytes. Returns domain.ErrNotFound when the id is
	// absent.
	Preview(id string, limit int) (string, int, error)

	// Stats returns a summary of every cached entry keyed by paper id.
	Stats() map[string]EntryStats
}

// InMemory is a mutex-guarded in-memory Store. Entries live until process
// teardown; there is no eviction.
type InMemory struct {
	mu      sync.RWMutex
	entries map[string]string
	metrics *observability.Metrics
}

var _ Store = (*InMemory)(nil)

// NewInMemory creates an empty in-memory content cache.
// metrics may be nil when metrics are disabled.
func NewInMemory(metrics *observability.Metrics) *InMemory {
	return &InMemory{
		entries: make(map[string]string),
		metrics: metrics,
	}
}

// Has reports whether text is cached for the id.
func (c *InMemory) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[id]
	return ok
}

// Put stores text under the id.
func (c *InMemory) Put(id, text string) {
	c.mu.Lock()
	prev, existed := c.entries[id]
	c.entries[id] = text
	c.mu.Unlock()

	if c.metrics != nil {
		if !existed {
			c.metrics.CachedPapers.Inc()
		}
		c.metrics.CachedBytes.Add(float64(len(text) - len(prev)))
	}
}

// Get returns the full cached text.
func (c *InMemory) Get(id string) (string, error) {
	c.mu.RLock()
	text, ok := c.entries[id]
	c.mu.RUnlock()

	if !ok {
		c.miss()
		return "", domain.NewNotFoundError("paper content", id)
	}
	c.hit()
	return text, nil
}

// Preview returns a truncated view of the cached text and its full length.
// One call counts as one cache lookup.
func (c *InMemory) Preview(id string, limit int) (string, int, error) {
	c.mu.RLock()
	text, ok := c.entries[id]
	c.mu.RUnlock()

	if !ok {
		c.miss()
		return "", 0, domain.NewNotFoundError("paper content", id)
	}
	c.hit()

	preview, cut := truncateRunes(text, limit)
	if cut {
		preview += TruncationMarker
	}
	return preview, len(text), nil
}

// Stats returns a summary of every cached entry.
func (c *InMemory) Stats() map[string]EntryStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := make(map[string]EntryStats, len(c.entries))
	for id, text := range c.entries {
		preview, cut := truncateRunes(text, statsPreviewLength)
		if cut {
			preview += TruncationMarker
		}
		stats[id] = EntryStats{
			Length:  len(text),
			Preview: preview,
		}
	}
	return stats
}

// truncateRunes cuts s to at most limit characters, never splitting a
// multibyte rune, and reports whether anything was cut. Extracted PDF text
// is full of ligatures and accented names, so byte slicing would emit
// invalid UTF-8.
func truncateRunes(s string, limit int) (string, bool) {
	if limit < 0 {
		limit = 0
	}
	if utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	runes := []rune(s)
	return string(runes[:limit]), true
}

func (c *InMemory) hit() {
	if c.metrics != nil {
		c.metrics.CacheHits.Inc()
	}
}

func (c *InMemory) miss() {
	if c.metrics != nil {
		c.metrics.CacheMisses.Inc()
	}
}
