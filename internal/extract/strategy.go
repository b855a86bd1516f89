package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Strategy extracts plain text from raw document bytes. Strategies are
// tried in order until one produces output passing the quality gate.
type Strategy interface {
	Name() string
	Extract(data []byte) (string, error)
}

// pagedStrategy is the primary strategy: page-by-page plain text with a
// 1-indexed "--- Page N ---" marker preceding each page.
type pagedStrategy struct{}

func (pagedStrategy) Name() string { return "paged" }

func (pagedStrategy) Extract(data []byte) (text string, err error) {
	// The underlying parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		fmt.Fprintf(&sb, "--- Page %d ---\n", i)
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// streamStrategy is the secondary strategy: the whole-document plain text
// stream, no page markers. It sometimes succeeds on files whose per-page
// content streams trip up the paged path.
type streamStrategy struct{}

func (streamStrategy) Name() string { return "stream" }

func (streamStrategy) Extract(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("plain text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, content); err != nil {
		return "", fmt.Errorf("read plain text: %w", err)
	}
	return sb.String(), nil
}

// DefaultStrategies returns the extraction strategies in attempt order.
func DefaultStrategies() []Strategy {
	return []Strategy{pagedStrategy{}, streamStrategy{}}
}
