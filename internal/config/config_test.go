package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every variable Load reads so the host environment cannot leak in.
func isolate(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, key := range []string{
		"APP_NAME", "APP_VERSION", "APP_PORT", "APP_ENV", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "STORE_BACKEND",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "DB_MAX_CONNS", "DB_MIN_CONNS",
		"JWT_SECRET_KEY", "JWT_ACCESS_EXPIRATION_TIME",
		"STORAGE_TYPE", "STORAGE_BASE_PATH", "STORAGE_BASE_URL",
		"S3_REGION", "S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET",
		"ATTENDANCE_SEED_INTERVAL", "SCHEDULER_ENABLED", "ATTENDANCE_TIMEZONE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DB_PASSWORD", "pw")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "postgres", cfg.App.StoreBackend)
	assert.Equal(t, time.Hour, cfg.JWT.AccessExpiration)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, time.UTC, cfg.Attendance.Location)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.AllowedOrigins)
	assert.Equal(t, "postgres://postgres:pw@localhost:5432/hris_recruitment?sslmode=disable", cfg.DatabaseURL())
}

func TestLoadOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("ATTENDANCE_TIMEZONE", "Asia/Jakarta")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Asia/Jakarta", cfg.Attendance.Location.String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"DB_PASSWORD": "pw"}},
		{"missing db password", map[string]string{"JWT_SECRET_KEY": "s"}},
		{"unknown backend", map[string]string{"JWT_SECRET_KEY": "s", "STORE_BACKEND": "redis"}},
		{"s3 without bucket", map[string]string{"JWT_SECRET_KEY": "s", "DB_PASSWORD": "pw", "STORAGE_TYPE": "s3"}},
		{"bad timezone", map[string]string{"JWT_SECRET_KEY": "s", "DB_PASSWORD": "pw", "ATTENDANCE_TIMEZONE": "Mars/Base"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			isolate(t)
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
