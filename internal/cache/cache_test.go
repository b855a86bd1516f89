package cache

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperdash/content-service/internal/domain"
	"github.com/paperdash/content-service/internal/observability"
)

func TestInMemory_PutGet(t *testing.T) {
	c := NewInMemory(nil)

	assert.False(t, c.Has("arxiv-1706.03762"))

	c.Put("arxiv-1706.03762", "the attention mechanism in detail")

	assert.True(t, c.Has("arxiv-1706.03762"))

	text, err := c.Get("arxiv-1706.03762")
	require.NoError(t, err)
	assert.Equal(t, "the attention mechanism in detail", text)
}

func TestInMemory_GetMissing(t *testing.T) {
	c := NewInMemory(nil)

	_, err := c.Get("arxiv-0000.00000")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInMemory_PutIdempotent(t *testing.T) {
	c := NewInMemory(nil)

	c.Put("link-deadbeef", "extracted text")
	c.Put("link-deadbeef", "extracted text")

	text, err := c.Get("link-deadbeef")
	require.NoError(t, err)
	assert.Equal(t, "extracted text", text)
	assert.Len(t, c.Stats(), 1)
}

func TestInMemory_PreviewShortText(t *testing.T) {
	c := NewInMemory(nil)
	c.Put("p1", strings.Repeat("a", 500))

	preview, total, err := c.Preview("p1", 1000)
	require.NoError(t, err)
	assert.Len(t, preview, 500)
	assert.Equal(t, 500, total)
	assert.False(t, strings.HasSuffix(preview, TruncationMarker))
}

func TestInMemory_PreviewExactLimit(t *testing.T) {
	c := NewInMemory(nil)
	c.Put("p1", strings.Repeat("a", 1000))

	preview, total, err := c.Preview("p1", 1000)
	require.NoError(t, err)
	assert.Len(t, preview, 1000)
	assert.Equal(t, 1000, total)
	assert.False(t, strings.HasSuffix(preview, TruncationMarker))
}

func TestInMemory_PreviewTruncates(t *testing.T) {
	c := NewInMemory(nil)
	c.Put("p1", strings.Repeat("a", 2000))

	preview, total, err := c.Preview("p1", 1000)
	require.NoError(t, err)
	assert.Equal(t, 2000, total)
	require.True(t, strings.HasSuffix(preview, TruncationMarker))
	assert.Len(t, strings.TrimSuffix(preview, TruncationMarker), 1000)
}

func TestInMemory_PreviewMultibyteBoundary(t *testing.T) {
	c := NewInMemory(nil)
	// The 1000th character is two bytes wide; a byte slice at 1000 would
	// split it in half.
	text := strings.Repeat("a", 999) + strings.Repeat("é", 100)
	c.Put("p1", text)

	preview, total, err := c.Preview("p1", 1000)
	require.NoError(t, err)
	assert.Equal(t, len(text), total)
	assert.True(t, utf8.ValidString(preview))

	body := strings.TrimSuffix(preview, TruncationMarker)
	assert.Equal(t, 1000, utf8.RuneCountInString(body))
	assert.True(t, strings.HasSuffix(body, "é"))
}

func TestInMemory_PreviewMissing(t *testing.T) {
	c := NewInMemory(nil)

	_, _, err := c.Preview("nope", 1000)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInMemory_PreviewCountsOneLookup(t *testing.T) {
	metrics := observability.NewMetrics("cache_lookup_test")
	c := NewInMemory(metrics)
	c.Put("p1", strings.Repeat("a", 2000))

	before := testutil.ToFloat64(metrics.CacheHits)
	_, _, err := c.Preview("p1", 1000)
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CacheHits))
}

func TestInMemory_Stats(t *testing.T) {
	c := NewInMemory(nil)
	c.Put("short", "tiny")
	c.Put("long", strings.Repeat("b", 300))

	stats := c.Stats()
	require.Len(t, stats, 2)

	assert.Equal(t, 4, stats["short"].Length)
	assert.Equal(t, "tiny", stats["short"].Preview)

	assert.Equal(t, 300, stats["long"].Length)
	assert.True(t, strings.HasSuffix(stats["long"].Preview, TruncationMarker))
	assert.Len(t, strings.TrimSuffix(stats["long"].Preview, TruncationMarker), 100)
}

func TestInMemory_StatsMultibytePreview(t *testing.T) {
	c := NewInMemory(nil)
	c.Put("p1", strings.Repeat("ü", 300))

	stats := c.Stats()
	preview := stats["p1"].Preview
	assert.True(t, utf8.ValidString(preview))

	body := strings.TrimSuffix(preview, TruncationMarker)
	assert.Equal(t, 100, utf8.RuneCountInString(body))
}
