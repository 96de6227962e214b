package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "movie-storefront", cfg.App.Name)
	assert.Equal(t, "http://localhost:8090", cfg.Catalog.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 2, cfg.Catalog.Retry.MaxAttempts)
	assert.Equal(t, uint32(3), cfg.Catalog.CB.MaxRequests)
	assert.Equal(t, "movies", cfg.Storefront.StartLocation)
	assert.Equal(t, 0, cfg.Storefront.SuggestionCacheSize)
	assert.Equal(t, ":8090", cfg.Mock.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Mock.SessionExpiration)
	assert.Empty(t, cfg.Mock.Redis.Host)
	assert.Equal(t, 6379, cfg.Mock.Redis.Port)
	assert.Equal(t, "storefront.log", cfg.Logger.Output)
	assert.False(t, cfg.Sentry.Enabled)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storefront.yaml")
	content := `
catalog:
  base_url: https://fabflix.example.com/movies
  timeout: 3s
storefront:
  start_location: "movies?genre=Drama"
logger:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://fabflix.example.com/movies", cfg.Catalog.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "movies?genre=Drama", cfg.Storefront.StartLocation)
	assert.Equal(t, "debug", cfg.Logger.Level)
	// untouched keys keep their defaults
	assert.Equal(t, 0.5, cfg.Catalog.CB.FailureRatio)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog:\n  base_url: http://from-file\n"), 0o600))

	t.Setenv("STOREFRONT_CATALOG_BASE_URL", "http://from-env")
	t.Setenv("STOREFRONT_STOREFRONT_SUGGESTION_CACHE_SIZE", "16")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env", cfg.Catalog.BaseURL)
	assert.Equal(t, 16, cfg.Storefront.SuggestionCacheSize)
}
