package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	assert.Equal(t, "auto", cfg.UI.Theme)
	assert.False(t, cfg.Logging.Debug)
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("KARAT_API_URL", "")
	t.Setenv("KARAT_DEBUG", "")
	t.Setenv("KARAT_THEME", "")

	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://crm.example.in/api"
	cfg.UI.Theme = "dark"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://crm.example.in/api", loaded.API.BaseURL)
	assert.Equal(t, "dark", loaded.UI.Theme)
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("KARAT_API_URL", "")
	t.Setenv("KARAT_DEBUG", "")
	t.Setenv("KARAT_THEME", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().API.BaseURL, cfg.API.BaseURL)
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Run("KARAT_API_URL wins over file", func(t *testing.T) {
		t.Setenv("KARAT_API_URL", "http://staging:9000/api")

		path := filepath.Join(t.TempDir(), "config.yaml")
		cfg := DefaultConfig()
		cfg.API.BaseURL = "http://file:8000/api"
		require.NoError(t, cfg.Save(path))

		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://staging:9000/api", loaded.API.BaseURL)
	})

	t.Run("KARAT_DEBUG enables debug", func(t *testing.T) {
		t.Setenv("KARAT_DEBUG", "1")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.True(t, cfg.Logging.Debug)
	})

	t.Run("KARAT_DEBUG accepts true", func(t *testing.T) {
		t.Setenv("KARAT_DEBUG", "true")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.True(t, cfg.Logging.Debug)
	})
}

func TestConfig_APITimeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "30s", cfg.API.Timeout)

	cfg.API.Timeout = "2m"
	assert.Equal(t, float64(120), cfg.APITimeout().Seconds())

	cfg.API.Timeout = "junk"
	assert.Equal(t, float64(30), cfg.APITimeout().Seconds())
}

func TestHome_EnvOverride(t *testing.T) {
	t.Setenv("KARAT_HOME", "/tmp/karat-test-home")
	assert.Equal(t, "/tmp/karat-test-home", Home())
}
