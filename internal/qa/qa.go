// Package qa shapes cached paper text into a payload sized for a
// question-answering consumer.
package qa

import (
	"github.com/paperdash/content-service/internal/cache"
)

// DefaultMaxContentLength bounds the content handed to a downstream
// question-answering consumer when the caller does not pick a budget.
const DefaultMaxContentLength = 15000

// truncationNotice separates the head and tail of an over-length document.
const truncationNotice = "\n\n... [content truncated] ...\n\n"

// Prepared is the content payload for one question.
type Prepared struct {
	Content     string
	IsTruncated bool
}

// Preparer builds question payloads out of the content cache.
type Preparer struct {
	store      cache.Store
	defaultMax int
}

// New creates a Preparer backed by the given content store.
// defaultMaxContentLength is the budget applied when a request does not
// carry its own; non-positive means DefaultMaxContentLength.
func New(store cache.Store, defaultMaxContentLength int) *Preparer {
	if defaultMaxContentLength <= 0 {
		defaultMaxContentLength = DefaultMaxContentLength
	}
	return &Preparer{store: store, defaultMax: defaultMaxContentLength}
}

// PrepareForQuestion returns the cached text for the paper, shortened to
// maxContentLength characters when it exceeds the budget. Long documents
// keep their head and tail since abstracts and conclusions carry most
// answers; the middle is replaced with a truncation notice. A non-positive
// maxContentLength selects the Preparer's configured default. Returns
// domain.ErrNotFound when no content is cached for the id.
func (p *Preparer) PrepareForQuestion(id string, maxContentLength int) (Prepared, error) {
	text, err := p.store.Get(id)
	if err != nil {
		return Prepared{}, err
	}

	if maxContentLength <= 0 {
		maxContentLength = p.defaultMax
	}

	// Budget and split points are in characters so a boundary landing on
	// a multibyte rune cannot produce invalid UTF-8.
	runes := []rune(text)
	if len(runes) <= maxContentLength {
		return Prepared{Content: text, IsTruncated: false}, nil
	}

	half := maxContentLength / 2
	return Prepared{
		Content:     string(runes[:half]) + truncationNotice + string(runes[len(runes)-half:]),
		IsTruncated: true,
	}, nil
}
