// Package config provides configuration loading and validation for markboard.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Sumatoshi-tech/markboard/pkg/observability"
)

// Sentinel validation errors.
var (
	ErrInvalidPort        = errors.New("invalid server port")
	ErrInvalidTimeout     = errors.New("server timeouts must be positive")
	ErrInvalidTopN        = errors.New("render top_n must be positive")
	ErrInvalidBucketCount = errors.New("render bucket_count must be positive")
	ErrInvalidSearchLimit = errors.New("render search_limit must be positive")
	ErrInvalidTheme       = errors.New("unknown render theme")
	ErrInvalidLogLevel    = errors.New("unknown log level")
	ErrInvalidSampleRatio = errors.New("telemetry sample_ratio must be within [0, 1]")
)

const maxPort = 65535

// Config holds all configuration for markboard.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Render    RenderConfig    `mapstructure:"render"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Port            int           `mapstructure:"port"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`

	// PageCacheEntries bounds the rendered-page cache; zero disables it.
	PageCacheEntries int `mapstructure:"page_cache_entries"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatasetConfig points at the student score file.
type DatasetConfig struct {
	Path  string `mapstructure:"path"`
	Title string `mapstructure:"title"`
}

// RenderConfig controls page and report rendering.
type RenderConfig struct {
	Theme       string `mapstructure:"theme"`
	OutputDir   string `mapstructure:"output_dir"`
	TopN        int    `mapstructure:"top_n"`
	BucketCount int    `mapstructure:"bucket_count"`
	SearchLimit int    `mapstructure:"search_limit"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	Environment  string  `mapstructure:"environment"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > maxPort {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Render.TopN <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTopN, c.Render.TopN)
	}

	if c.Render.BucketCount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBucketCount, c.Render.BucketCount)
	}

	if c.Render.SearchLimit <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSearchLimit, c.Render.SearchLimit)
	}

	switch strings.ToLower(c.Render.Theme) {
	case "light", "dark":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTheme, c.Render.Theme)
	}

	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRatio, c.Telemetry.SampleRatio)
	}

	return nil
}

// ParseLevel maps a level name to an slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(strings.TrimSpace(name)))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}

	return level, nil
}

// Observability converts the logging and telemetry sections into an
// observability configuration for the given mode.
func (c *Config) Observability(mode observability.AppMode, version string) observability.Config {
	obs := observability.DefaultConfig()
	obs.Mode = mode
	obs.ServiceVersion = version
	obs.Environment = c.Telemetry.Environment
	obs.OTLPEndpoint = c.Telemetry.OTLPEndpoint
	obs.OTLPHeaders = observability.ParseOTLPHeaders(c.Telemetry.OTLPHeaders)
	obs.OTLPInsecure = c.Telemetry.OTLPInsecure
	obs.SampleRatio = c.Telemetry.SampleRatio
	obs.LogJSON = c.Logging.JSON

	if level, err := ParseLevel(c.Logging.Level); err == nil {
		obs.LogLevel = level
	}

	return obs
}
