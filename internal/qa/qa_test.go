package qa

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperdash/content-service/internal/cache"
	"github.com/paperdash/content-service/internal/domain"
)

func newStore(t *testing.T) cache.Store {
	t.Helper()
	return cache.NewInMemory(nil)
}

func TestPrepareForQuestion_UnderBudget(t *testing.T) {
	store := newStore(t)
	store.Put("p1", "short document body")

	p := New(store, 0)

	prepared, err := p.PrepareForQuestion("p1", 1000)
	require.NoError(t, err)
	assert.Equal(t, "short document body", prepared.Content)
	assert.False(t, prepared.IsTruncated)
}

func TestPrepareForQuestion_ExactBudget(t *testing.T) {
	store := newStore(t)
	text := strings.Repeat("a", 15000)
	store.Put("p1", text)

	p := New(store, 0)

	prepared, err := p.PrepareForQuestion("p1", 0)
	require.NoError(t, err)
	assert.Equal(t, text, prepared.Content)
	assert.False(t, prepared.IsTruncated)
}

func TestPrepareForQuestion_TruncatesHeadAndTail(t *testing.T) {
	store := newStore(t)
	text := strings.Repeat("h", 10000) + strings.Repeat("t", 10000)
	store.Put("p1", text)

	p := New(store, 0)

	prepared, err := p.PrepareForQuestion("p1", 15000)
	require.NoError(t, err)
	assert.True(t, prepared.IsTruncated)

	assert.True(t, strings.HasPrefix(prepared.Content, strings.Repeat("h", 7500)))
	assert.True(t, strings.HasSuffix(prepared.Content, strings.Repeat("t", 7500)))
	assert.Contains(t, prepared.Content, truncationNotice)
	assert.Len(t, prepared.Content, 15000+len(truncationNotice))
}

func TestPrepareForQuestion_DefaultBudget(t *testing.T) {
	store := newStore(t)
	store.Put("p1", strings.Repeat("x", 20000))

	p := New(store, 0)

	prepared, err := p.PrepareForQuestion("p1", 0)
	require.NoError(t, err)
	assert.True(t, prepared.IsTruncated)
	assert.Len(t, prepared.Content, DefaultMaxContentLength+len(truncationNotice))
}

func TestPrepareForQuestion_ConfiguredDefaultBudget(t *testing.T) {
	store := newStore(t)
	store.Put("p1", strings.Repeat("x", 2000))

	p := New(store, 500)

	prepared, err := p.PrepareForQuestion("p1", 0)
	require.NoError(t, err)
	assert.True(t, prepared.IsTruncated)
	assert.Len(t, prepared.Content, 500+len(truncationNotice))

	// A per-request budget still wins over the configured default.
	prepared, err = p.PrepareForQuestion("p1", 3000)
	require.NoError(t, err)
	assert.False(t, prepared.IsTruncated)
}

func TestPrepareForQuestion_MultibyteBoundary(t *testing.T) {
	store := newStore(t)
	// Odd budget over two-byte runes: both split points land mid-rune
	// under byte slicing.
	store.Put("p1", strings.Repeat("é", 20000))

	p := New(store, 0)

	prepared, err := p.PrepareForQuestion("p1", 15001)
	require.NoError(t, err)
	assert.True(t, prepared.IsTruncated)
	assert.True(t, utf8.ValidString(prepared.Content))

	parts := strings.SplitN(prepared.Content, truncationNotice, 2)
	require.Len(t, parts, 2)
	assert.Equal(t, 7500, utf8.RuneCountInString(parts[0]))
	assert.Equal(t, 7500, utf8.RuneCountInString(parts[1]))
}

func TestPrepareForQuestion_NotCached(t *testing.T) {
	p := New(newStore(t), 0)

	_, err := p.PrepareForQuestion("missing", 1000)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
