package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pwa "github.com/remix-pwa/pwa-client"
	"github.com/remix-pwa/pwa-client/application/config"
)

func TestParse(t *testing.T) {
	t.Run("empty input keeps defaults", func(t *testing.T) {
		cfg, err := config.Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("yaml", func(t *testing.T) {
		cfg, err := config.Parse([]byte(`
expose: ["clipboard/*", "language/**"]
deny: ["clipboard/copy_image_to_clipboard"]
namespace: pwaClient
log_level: debug
browser:
  headless: false
  url: https://example.com
`))
		require.NoError(t, err)
		assert.Equal(t, []string{"clipboard/*", "language/**"}, cfg.Expose)
		assert.Equal(t, []string{"clipboard/copy_image_to_clipboard"}, cfg.Deny)
		assert.Equal(t, "pwaClient", cfg.Namespace)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.False(t, cfg.Browser.Headless)
		assert.Equal(t, 30000, cfg.Browser.TimeoutMs)
	})

	t.Run("json", func(t *testing.T) {
		cfg, err := config.Parse([]byte(`{"log_level":"warn","geolocation":{"api_key":"k"}}`))
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "k", cfg.Geolocation.APIKey)
	})
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantField string
	}{
		{"bad log level", "log_level: loud\n", "Config.LogLevel"},
		{"bad namespace", "namespace: \"pwa client\"\n", "Config.Namespace"},
		{"empty pattern", "expose: [\"\"]\n", "Config.Expose[0]"},
		{"bad url", "browser:\n  url: not a url\n", "Config.Browser.URL"},
		{"negative timeout", "browser:\n  timeout_ms: -1\n", "Config.Browser.TimeoutMs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.input))
			var cfgErr *pwa.ConfigError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}

	t.Run("malformed", func(t *testing.T) {
		_, err := config.Parse([]byte("expose: ["))
		var cfgErr *pwa.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Empty(t, cfgErr.Field)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pwa.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: error\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
