package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/markboard/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".markboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultServerHost, cfg.Server.Host)
	assert.Equal(t, config.DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, config.DefaultServerReadTimeout, cfg.Server.ReadTimeout)
	assert.Equal(t, config.DefaultServerShutdownTimeout, cfg.Server.ShutdownTimeout)
	assert.Equal(t, config.DefaultServerPageCache, cfg.Server.PageCacheEntries)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, config.DefaultDatasetPath, cfg.Dataset.Path)
	assert.Equal(t, config.DefaultRenderTheme, cfg.Render.Theme)
	assert.Equal(t, config.DefaultRenderOutputDir, cfg.Render.OutputDir)
	assert.Equal(t, config.DefaultRenderTopN, cfg.Render.TopN)
	assert.Equal(t, config.DefaultRenderBucketCount, cfg.Render.BucketCount)
	assert.Equal(t, config.DefaultRenderSearchLimit, cfg.Render.SearchLimit)
	assert.Equal(t, config.DefaultLoggingLevel, cfg.Logging.Level)
	assert.False(t, cfg.Logging.JSON)
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `server:
  host: "127.0.0.1"
  port: 9000
  read_timeout: 5s
dataset:
  path: data/cse-2024.xlsx
  title: CSE 2024
render:
  theme: dark
  top_n: 3
logging:
  level: debug
  json: true
telemetry:
  otlp_endpoint: collector:4317
  sample_ratio: 0.5
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, config.DefaultServerWriteTimeout, cfg.Server.WriteTimeout)
	assert.Equal(t, "data/cse-2024.xlsx", cfg.Dataset.Path)
	assert.Equal(t, "CSE 2024", cfg.Dataset.Title)
	assert.Equal(t, "dark", cfg.Render.Theme)
	assert.Equal(t, 3, cfg.Render.TopN)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.JSON)
	assert.Equal(t, "collector:4317", cfg.Telemetry.OTLPEndpoint)
	assert.InDelta(t, 0.5, cfg.Telemetry.SampleRatio, 1e-9)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "server:\n  port: 0\n"))
	require.ErrorIs(t, err, config.ErrInvalidPort)

	_, err = config.LoadConfig(writeConfig(t, "render:\n  theme: sepia\n"))
	require.ErrorIs(t, err, config.ErrInvalidTheme)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "server: [unterminated\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MARKBOARD_SERVER_PORT", "7070")
	t.Setenv("MARKBOARD_DATASET_TITLE", "ECE 2023")
	t.Setenv("MARKBOARD_RENDER_TOP_N", "4")

	cfg, err := config.LoadConfig(writeConfig(t, "server:\n  port: 9000\n"))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "ECE 2023", cfg.Dataset.Title)
	assert.Equal(t, 4, cfg.Render.TopN)
}
