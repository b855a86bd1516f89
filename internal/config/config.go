// Package config provides configuration management for the paper content service.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the paper content service.
type Config struct {
	// Server contains HTTP server settings.
	Server ServerConfig `mapstructure:"server"`
	// Logging contains structured logging settings.
	Logging LoggingConfig `mapstructure:"logging"`
	// Metrics contains Prometheus metrics exposure settings.
	Metrics MetricsConfig `mapstructure:"metrics"`
	// ArXiv contains arXiv metadata API client settings.
	ArXiv ArXivConfig `mapstructure:"arxiv"`
	// PDF contains document download settings.
	PDF PDFConfig `mapstructure:"pdf"`
	// Extract contains text extraction settings.
	Extract ExtractConfig `mapstructure:"extract"`
	// QA contains question-answering content delivery settings.
	QA QAConfig `mapstructure:"qa"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	// Host is the address to bind the server to (default: 0.0.0.0).
	Host string `mapstructure:"host"`
	// Port is the HTTP server port (default: 8000).
	Port int `mapstructure:"port"`
	// ReadTimeout is the maximum duration for reading the request body.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the maximum duration for writing the response.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// IdleTimeout is the maximum duration to keep idle connections open.
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Address returns the host:port address to bind to.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level (trace, debug, info, warn, error, fatal, panic).
	Level string `mapstructure:"level"`
	// Format is the log format (json, console).
	Format string `mapstructure:"format"`
	// Output is the log output destination (stdout, stderr).
	Output string `mapstructure:"output"`
	// AddSource adds source file and line to log output.
	AddSource bool `mapstructure:"add_source"`
	// TimeFormat is the timestamp format.
	TimeFormat string `mapstructure:"time_format"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	// Enabled enables metrics collection and exposure.
	Enabled bool `mapstructure:"enabled"`
	// Path is the HTTP path for the metrics endpoint.
	Path string `mapstructure:"path"`
	// Namespace is the prefix for all metric names.
	Namespace string `mapstructure:"namespace"`
}

// ArXivConfig holds arXiv metadata API client configuration.
type ArXivConfig struct {
	// BaseURL is the arXiv API base URL.
	BaseURL string `mapstructure:"base_url"`
	// Timeout is the metadata request timeout (default: 10s).
	Timeout time.Duration `mapstructure:"timeout"`
	// RateLimit is the maximum requests per second to the arXiv API.
	RateLimit float64 `mapstructure:"rate_limit"`
	// BurstSize is the maximum burst of requests allowed.
	BurstSize int `mapstructure:"burst_size"`
	// MaxResults caps the number of results per search request.
	MaxResults int `mapstructure:"max_results"`
}

// PDFConfig holds document download configuration.
type PDFConfig struct {
	// Timeout is the document download timeout (default: 30s).
	Timeout time.Duration `mapstructure:"timeout"`
	// MaxSize is the maximum document size in bytes.
	MaxSize int64 `mapstructure:"max_size"`
	// UserAgent is the User-Agent header sent with document requests.
	// Some sources reject unidentified clients, so it defaults to a
	// browser-like string.
	UserAgent string `mapstructure:"user_agent"`
}

// ExtractConfig holds text extraction configuration.
type ExtractConfig struct {
	// MinContentLength is the quality gate: extracted text shorter than
	// this (after trimming) is rejected as unusable.
	MinContentLength int `mapstructure:"min_content_length"`
}

// QAConfig holds question-answering content delivery configuration.
type QAConfig struct {
	// MaxContentLength is the content budget for prepared answers (default: 15000).
	MaxContentLength int `mapstructure:"max_content_length"`
	// PreviewLength is the default preview length in characters.
	PreviewLength int `mapstructure:"preview_length"`
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("PAPERDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/paper-content-service")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use env vars and defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "30s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", "paperdash")

	// arXiv client defaults
	v.SetDefault("arxiv.base_url", "http://export.arxiv.org/api/query")
	v.SetDefault("arxiv.timeout", "10s")
	v.SetDefault("arxiv.rate_limit", 3.0)
	v.SetDefault("arxiv.burst_size", 3)
	v.SetDefault("arxiv.max_results", 25)

	// Document download defaults
	v.SetDefault("pdf.timeout", "30s")
	v.SetDefault("pdf.max_size", 50*1024*1024)
	v.SetDefault("pdf.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")

	// Extraction defaults
	v.SetDefault("extract.min_content_length", 100)

	// Q&A defaults
	v.SetDefault("qa.max_content_length", 15000)
	v.SetDefault("qa.preview_length", 1000)
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.ArXiv.BaseURL == "" {
		return errors.New("arxiv.base_url must not be empty")
	}
	if c.ArXiv.Timeout <= 0 {
		return errors.New("arxiv.timeout must be positive")
	}
	if c.ArXiv.MaxResults < 1 {
		return errors.New("arxiv.max_results must be at least 1")
	}
	if c.PDF.Timeout <= 0 {
		return errors.New("pdf.timeout must be positive")
	}
	if c.PDF.MaxSize < 1 {
		return errors.New("pdf.max_size must be positive")
	}
	if c.Extract.MinContentLength < 0 {
		return errors.New("extract.min_content_length must not be negative")
	}
	if c.QA.MaxContentLength < 2 {
		return errors.New("qa.max_content_length must be at least 2")
	}
	return nil
}
