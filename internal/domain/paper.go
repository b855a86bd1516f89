// Package domain defines the core types shared across the paper content service.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// UnknownAuthor is substituted when a source entry carries no parseable authors.
const UnknownAuthor = "Unknown Author"

// arxivAbsRegex extracts the arXiv ID from an abstract-page link.
// Matches "https://arxiv.org/abs/1706.03762" and versioned forms like
// "http://arxiv.org/abs/2301.12345v2".
var arxivAbsRegex = regexp.MustCompile(`arxiv\.org/abs/(.+?)(?:v\d+)?$`)

// PaperRecord is one paper's metadata as served to the dashboard.
// Records are value objects: freely copyable, no back-reference to cached
// content. The relation to extracted full text is external, by ID.
type PaperRecord struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Authors   []string `json:"authors"`
	Link      string   `json:"link"`
	Published string   `json:"published"`
	Category  string   `json:"category,omitempty"`

	// HasFullText is informational only. Content cache membership is the
	// authoritative signal of cached full text.
	HasFullText bool `json:"has_full_text"`
}

// RecordID derives a stable identifier from a paper's canonical link.
// arXiv abstract links map to "arxiv-<id>" with any version suffix stripped,
// so repeated fetches of the same paper always agree. Other links hash to a
// "link-" prefixed digest.
func RecordID(link string) string {
	link = strings.TrimSpace(link)
	if m := arxivAbsRegex.FindStringSubmatch(link); len(m) > 1 {
		return "arxiv-" + m[1]
	}
	sum := sha256.Sum256([]byte(link))
	return "link-" + hex.EncodeToString(sum[:8])
}

// NormalizeWhitespace collapses any run of whitespace characters to a single
// space and trims the ends. Idempotent: normalizing normalized text returns
// it unchanged.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
