package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".markboard"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for markboard settings.
const envPrefix = "MARKBOARD"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// dotenvFile is loaded into the process environment before viper reads it.
const dotenvFile = ".env"

// LoadConfig loads configuration from .env, file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	err := loadDotenv(dotenvFile)
	if err != nil {
		return nil, err
	}

	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, homeErr := os.UserHomeDir()
		if homeErr == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// loadDotenv populates unset environment variables from path.
// A missing file is ignored.
func loadDotenv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("server.host", DefaultServerHost)
	viperCfg.SetDefault("server.port", DefaultServerPort)
	viperCfg.SetDefault("server.read_timeout", DefaultServerReadTimeout)
	viperCfg.SetDefault("server.write_timeout", DefaultServerWriteTimeout)
	viperCfg.SetDefault("server.idle_timeout", DefaultServerIdleTimeout)
	viperCfg.SetDefault("server.shutdown_timeout", DefaultServerShutdownTimeout)
	viperCfg.SetDefault("server.cors_origins", []string{"*"})
	viperCfg.SetDefault("server.page_cache_entries", DefaultServerPageCache)

	viperCfg.SetDefault("dataset.path", DefaultDatasetPath)
	viperCfg.SetDefault("dataset.title", DefaultDatasetTitle)

	viperCfg.SetDefault("render.theme", DefaultRenderTheme)
	viperCfg.SetDefault("render.output_dir", DefaultRenderOutputDir)
	viperCfg.SetDefault("render.top_n", DefaultRenderTopN)
	viperCfg.SetDefault("render.bucket_count", DefaultRenderBucketCount)
	viperCfg.SetDefault("render.search_limit", DefaultRenderSearchLimit)

	viperCfg.SetDefault("logging.level", DefaultLoggingLevel)
	viperCfg.SetDefault("logging.json", DefaultLoggingJSON)

	viperCfg.SetDefault("telemetry.otlp_endpoint", DefaultTelemetryOTLPEndpoint)
	viperCfg.SetDefault("telemetry.otlp_headers", "")
	viperCfg.SetDefault("telemetry.environment", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", DefaultTelemetryOTLPInsecure)
	viperCfg.SetDefault("telemetry.sample_ratio", DefaultTelemetrySampleRatio)
}
