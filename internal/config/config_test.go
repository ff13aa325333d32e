package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "./data/movieshub.db", cfg.Database.Path)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, "https://image.tmdb.org/t/p", cfg.TMDB.ImageBaseURL)
	assert.Equal(t, 300, cfg.Import.DelayMS)
	assert.Equal(t, 60, cfg.Sitemap.CacheTTLMin)
	assert.Empty(t, cfg.Auth.AdminPassword)
	assert.Empty(t, cfg.TMDB.APIKey)
}

func TestLoad_FromFile(t *testing.T) {
	cfg, err := loadFromDir(t, `
server:
  port: 9090
tmdb:
  api_key: file-key
sitemap:
  base_url: https://movies.example.com
`)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "file-key", cfg.TMDB.APIKey)
	assert.Equal(t, "https://movies.example.com", cfg.Sitemap.BaseURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("MOVIESHUB_TMDB_API_KEY", "env-key")
	t.Setenv("MOVIESHUB_AUTH_ADMIN_PASSWORD", "env-password")
	t.Setenv("MOVIESHUB_SERVER_PORT", "7070")

	cfg, err := loadFromDir(t, `
tmdb:
  api_key: file-key
`)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.TMDB.APIKey)
	assert.Equal(t, "env-password", cfg.Auth.AdminPassword)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 8080}
	assert.Equal(t, "127.0.0.1:8080", cfg.Address())
}

func loadFromDir(t *testing.T, yaml string) (*Config, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	return Load(path)
}
