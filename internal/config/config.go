// Package config loads sheetchart configuration from the environment and an
// optional YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes every environment variable, e.g. SHEETCHART_LOGGING_LEVEL.
const EnvPrefix = "SHEETCHART"

// ConfigFileEnv names the variable that points at a YAML config file.
const ConfigFileEnv = EnvPrefix + "_CONFIG"

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Ingest  IngestConfig  `yaml:"ingest" envconfig:"INGEST"`
	Chart   ChartConfig   `yaml:"chart" envconfig:"CHART"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/sheetchart.log" validate:"required"`
}

// IngestConfig controls how uploads are decoded and serialized
type IngestConfig struct {
	Policy string `yaml:"policy" envconfig:"POLICY" default:"reject" validate:"oneof=reject queue"`
	Sheet  string `yaml:"sheet" envconfig:"SHEET"`
}

// ChartConfig contains chart defaults
type ChartConfig struct {
	Kind    string   `yaml:"kind" envconfig:"KIND" default:"bar" validate:"oneof=bar line pie"`
	Title   string   `yaml:"title" envconfig:"TITLE"`
	Palette []string `yaml:"palette" envconfig:"PALETTE" default:"#3B82F6,#10B981,#F59E0B,#EF4444,#8B5CF6" validate:"min=1,dive,hexcolor"`
}

// Load loads configuration from environment variables and, when path (or
// SHEETCHART_CONFIG) names a file, from YAML. Environment variables take
// precedence over the file; the file takes precedence over defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path != "" {
		fileConfig, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration with only defaults applied.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/sheetchart.log",
		},
		Ingest: IngestConfig{Policy: "reject"},
		Chart: ChartConfig{
			Kind:    "bar",
			Palette: []string{"#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6"},
		},
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence).
// A field set explicitly in the environment is kept; otherwise a non-empty
// file value replaces the default.
func mergeConfigs(fileConfig, envConfig Config) Config {
	mergeString(&envConfig.Logging.Level, fileConfig.Logging.Level, "LOGGING_LEVEL")
	mergeString(&envConfig.Logging.Format, fileConfig.Logging.Format, "LOGGING_FORMAT")
	mergeString(&envConfig.Logging.Output, fileConfig.Logging.Output, "LOGGING_OUTPUT")
	mergeString(&envConfig.Logging.FilePath, fileConfig.Logging.FilePath, "LOGGING_FILE_PATH")

	mergeString(&envConfig.Ingest.Policy, fileConfig.Ingest.Policy, "INGEST_POLICY")
	mergeString(&envConfig.Ingest.Sheet, fileConfig.Ingest.Sheet, "INGEST_SHEET")

	mergeString(&envConfig.Chart.Kind, fileConfig.Chart.Kind, "CHART_KIND")
	mergeString(&envConfig.Chart.Title, fileConfig.Chart.Title, "CHART_TITLE")
	if _, set := os.LookupEnv(EnvPrefix + "_CHART_PALETTE"); !set && len(fileConfig.Chart.Palette) > 0 {
		envConfig.Chart.Palette = fileConfig.Chart.Palette
	}

	return envConfig
}

func mergeString(dst *string, fileValue, key string) {
	if _, set := os.LookupEnv(EnvPrefix + "_" + key); set {
		return
	}
	if fileValue != "" {
		*dst = fileValue
	}
}
