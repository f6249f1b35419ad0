package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears the variables Load reads so the host environment cannot leak in.
func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "DATABASE_DRIVER", "SERVER_ENV", "SERVER_PORT",
		"JWT_SECRET", "JWT_ISSUER", "JWT_AUDIENCE", "JWT_TTL_MINUTES",
		"REDIS_ADDR", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileWithEnvOverrides(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
server:
  port: 9000
  env: production
  allowed_origins: ["https://app.example.com"]
database:
  driver: sqlite
  url: file.db
jwt:
  secret: from-file
  ttl: 15
redis:
  addr: localhost:6379
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL())
	assert.Equal(t, time.Hour, cfg.CacheTTL())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, ":9000", cfg.Addr())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DATABASE_URL", "postgres://localhost/propmatch")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "propmatch", cfg.JWT.Issuer)
	assert.Equal(t, time.Hour, cfg.TokenTTL())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DATABASE_URL", "postgres://localhost/propmatch")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "jwt secret")

	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DATABASE_DRIVER", "mysql")
	_, err = Load()
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestLoad_BadYAML(t *testing.T) {
	isolate(t)
	t.Setenv("CONFIG_PATH", writeConfig(t, "server: [unterminated"))
	_, err := Load()
	assert.ErrorContains(t, err, "parse config file")
}
