// Package config provides Viper-based configuration loading for the
// world compiler.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// GeneratorConfig holds default compilation settings. Individual
// requests may override any of them.
type GeneratorConfig struct {
	// RoomCount is the default world size when a request leaves it unset.
	RoomCount int `mapstructure:"room_count"`
	// OutputDir is the default artifact destination.
	OutputDir string `mapstructure:"output_dir"`
	// ScriptDir is searched for Lua physics package definitions.
	ScriptDir string `mapstructure:"script_dir"`
}

// ImageServiceConfig holds the image backend endpoint. Host and port
// are deliberately separate fields; they are written to the artifact as
// separate keys and must never be collapsed into a URL.
type ImageServiceConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// EnrichmentConfig holds the optional language-model collaborator
// settings.
type EnrichmentConfig struct {
	// Enabled turns description enrichment on.
	Enabled bool `mapstructure:"enabled"`
	// APIKey authenticates against the Anthropic API. Empty disables
	// the provider even when Enabled is true.
	APIKey string `mapstructure:"api_key"`
	// Model selects the model; empty uses the package default.
	Model string `mapstructure:"model"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Generator    GeneratorConfig    `mapstructure:"generator"`
	ImageService ImageServiceConfig `mapstructure:"image_service"`
	Enrichment   EnrichmentConfig   `mapstructure:"enrichment"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGenerator(c.Generator); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateImageService(c.ImageService); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGenerator(g GeneratorConfig) error {
	var errs []string
	if g.RoomCount < 1 {
		errs = append(errs, fmt.Sprintf("generator.room_count must be >= 1, got %d", g.RoomCount))
	}
	if g.OutputDir == "" {
		errs = append(errs, "generator.output_dir must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateImageService(i ImageServiceConfig) error {
	var errs []string
	if i.Host == "" {
		errs = append(errs, "image_service.host must not be empty")
	}
	if i.Port < 1 || i.Port > 65535 {
		errs = append(errs, fmt.Sprintf("image_service.port must be 1-65535, got %d", i.Port))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with WORLDGEN_ prefix
	v.SetEnvPrefix("WORLDGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Default returns the built-in configuration used when no config file
// is given on the command line.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Unmarshalling pure defaults cannot fail.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("generator.room_count", 20)
	v.SetDefault("generator.output_dir", "./generated_world")
	v.SetDefault("generator.script_dir", "")

	v.SetDefault("image_service.host", "127.0.0.1")
	v.SetDefault("image_service.port", 7860)

	v.SetDefault("enrichment.enabled", false)
	v.SetDefault("enrichment.api_key", "")
	v.SetDefault("enrichment.model", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
