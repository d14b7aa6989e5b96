// Package config loads the file configuration for docform tooling: backend
// endpoint and credentials, schema fallbacks, and presentation choices. The
// values are injected explicitly into the transport and engine; nothing in
// the library reads configuration ambiently.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration parses Go duration strings ("15s", "1m30s") from YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std converts to the standard library duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Theme selects the visual theme for renderers that honor one.
type Theme struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
}

// Config is the top-level file configuration.
type Config struct {
	// BaseURL is the backend root, e.g. https://erp.example.com.
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	// Timeout bounds each backend request. Zero keeps the client default.
	Timeout Duration `yaml:"timeout"`
	// FallbackDocTypes serves document-type pickers when the live listing is
	// unavailable.
	FallbackDocTypes []string `yaml:"fallback_doctypes"`
	// PriceList names the selling price list for item rate lookups.
	PriceList string `yaml:"price_list"`
	Theme     Theme  `yaml:"theme"`
}

// Parse decodes and validates a YAML configuration payload.
func Parse(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a configuration file.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.BaseURL == "" {
		return errors.New("config: base_url is required")
	}
	if c.Timeout < 0 {
		return errors.New("config: timeout cannot be negative")
	}
	if (c.APIKey == "") != (c.APISecret == "") {
		return errors.New("config: api_key and api_secret must be set together")
	}
	return nil
}
