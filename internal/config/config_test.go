package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/courier/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("COURIER_ENV", "local")
	t.Setenv("COURIER_INTERVAL", "5m")
	t.Setenv("COURIER_PROVIDER_TYPE", "google")
	t.Setenv("COURIER_PROVIDER_KEY", "testAPIKey")
	t.Setenv("COURIER_SOURCE", "postgres")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "google", cfg.ProviderType)
	assert.Equal(t, "testAPIKey", cfg.APIKey)
	assert.Equal(t, config.SourcePostgres, cfg.Source)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
	assert.Equal(t, 5*time.Minute, cfg.Interval)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 4, cfg.Workers)
}

func Test_MustLoadDefaults(t *testing.T) {
	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "nominatim", cfg.ProviderType)
	assert.Equal(t, config.SourceHTML, cfg.Source)
	assert.Equal(t, "city-coordinates.html", cfg.CoordinatesFile)
	assert.Equal(t, "from-to.html", cfg.ConnectionsFile)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, 10*time.Minute, cfg.Interval)
}

func Test_MustLoadFromFile(t *testing.T) {
	defer filet.CleanUp(t)
	path := filepath.Join(filet.TmpDir(t, ""), "courier.yaml")
	filet.File(t, path, `
env: development
workers: 8
source: html
coordinates_file: /data/coords.html
db:
  host: filehost
`)
	t.Setenv("COURIER_CONFIG", path)
	t.Setenv("COURIER_WORKERS", "2")

	cfg := config.MustLoad()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 2, cfg.Workers, "environment overrides the file")
	assert.Equal(t, "/data/coords.html", cfg.CoordinatesFile)
	assert.Equal(t, "filehost", cfg.Database.Host)
}

func TestMustLoad_IntervalError(t *testing.T) {
	t.Setenv("COURIER_INTERVAL", "error_value")

	assert.PanicsWithValue(t, "failed to parse interval from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_PortError(t *testing.T) {
	t.Setenv("COURIER_HEALTH_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for monitoring server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_WorkersError(t *testing.T) {
	t.Setenv("COURIER_WORKERS", "0")

	assert.PanicsWithValue(t, "failed to parse workers from configuration, must be a positive integer", func() {
		config.MustLoad()
	})
}

func TestMustLoad_SourceError(t *testing.T) {
	t.Setenv("COURIER_SOURCE", "ftp")

	assert.PanicsWithValue(t, "unsupported source in configuration, must be html or postgres", func() {
		config.MustLoad()
	})
}
