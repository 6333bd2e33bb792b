// Package config loads and validates module configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	pwa "github.com/remix-pwa/pwa-client"
)

// Config controls which entry points are exposed and how the module logs.
type Config struct {
	// Expose lists glob patterns over "service/operation" names. An entry
	// point is registered when it matches Expose and does not match Deny.
	Expose []string `yaml:"expose" json:"expose" validate:"dive,required"`
	Deny   []string `yaml:"deny" json:"deny" validate:"dive,required"`

	// Namespace is the global object the exports are attached to. Empty
	// means the global scope itself.
	Namespace string `yaml:"namespace" json:"namespace" validate:"omitempty,alphanum"`

	LogLevel string `yaml:"log_level" json:"log_level" validate:"omitempty,oneof=debug info warn error"`

	Geolocation GeolocationConfig `yaml:"geolocation" json:"geolocation"`
	Browser     BrowserConfig     `yaml:"browser" json:"browser"`
}

// GeolocationConfig configures the native geolocation provider.
type GeolocationConfig struct {
	APIKey string `yaml:"api_key" json:"api_key"`
}

// BrowserConfig configures the Playwright driven host.
type BrowserConfig struct {
	Headless bool   `yaml:"headless" json:"headless"`
	URL      string `yaml:"url" json:"url" validate:"omitempty,url"`
	// TimeoutMs bounds each browser evaluation.
	TimeoutMs int `yaml:"timeout_ms" json:"timeout_ms" validate:"gte=0"`
}

// Default returns a configuration exposing every entry point.
func Default() Config {
	return Config{
		Expose:   []string{"**"},
		LogLevel: "info",
		Browser: BrowserConfig{
			Headless:  true,
			URL:       "about:blank",
			TimeoutMs: 30000,
		},
	}
}

var validate = validator.New()

// Parse decodes YAML (or JSON, which is valid YAML) on top of Default and
// validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &pwa.ConfigError{Err: fmt.Errorf("failed to parse config: %w", err)}
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &pwa.ConfigError{Err: fmt.Errorf("failed to read config: %w", err)}
	}
	return Parse(data)
}

// Validate checks field constraints and reports the first failing field.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &pwa.ConfigError{
			Field: fe.Namespace(),
			Err:   fmt.Errorf("failed on the '%s' rule", fe.Tag()),
		}
	}
	return &pwa.ConfigError{Err: err}
}
