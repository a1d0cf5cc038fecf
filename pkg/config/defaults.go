package config

import "time"

// Server defaults.
const (
	DefaultServerHost            = "0.0.0.0"
	DefaultServerPort            = 8080
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 30 * time.Second
	DefaultServerIdleTimeout     = 60 * time.Second
	DefaultServerShutdownTimeout = 10 * time.Second
	DefaultServerPageCache       = 64
)

// Dataset defaults.
const (
	DefaultDatasetPath  = "students.xlsx"
	DefaultDatasetTitle = ""
)

// Render defaults.
const (
	DefaultRenderTheme       = "light"
	DefaultRenderOutputDir   = "dist"
	DefaultRenderTopN        = 10
	DefaultRenderBucketCount = 10
	DefaultRenderSearchLimit = 20
)

// Logging defaults.
const (
	DefaultLoggingLevel = "info"
	DefaultLoggingJSON  = false
)

// Telemetry defaults.
const (
	DefaultTelemetryOTLPEndpoint = ""
	DefaultTelemetryOTLPInsecure = false
	DefaultTelemetrySampleRatio  = 0.0
)
