package observability

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"FATAL", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestNewLoggerAppliesLevel(t *testing.T) {
	logger := NewLogger(LoggingConfig{Level: "warn", Format: "json", Output: "stderr"})
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestWithSearchContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	searchLogger := WithSearchContext(logger, "transformers", "arxiv")
	searchLogger.Info().Msg("served")

	assert.Contains(t, buf.String(), `"query":"transformers"`)
	assert.Contains(t, buf.String(), `"source":"arxiv"`)
}

func TestWithPaperContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	paperLogger := WithPaperContext(logger, "arxiv-1706.03762", "https://arxiv.org/abs/1706.03762")
	paperLogger.Info().Msg("cached")

	assert.Contains(t, buf.String(), `"paper_id":"arxiv-1706.03762"`)
	assert.Contains(t, buf.String(), `"link":"https://arxiv.org/abs/1706.03762"`)
}

func TestDefaultLoggingConfig(t *testing.T) {
	cfg := DefaultLoggingConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
}
