package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10*time.Second, cfg.Probes.Timeout)
	assert.Equal(t, 30*24*time.Hour, cfg.Retention.DeliveryLogMaxAge)
	assert.Equal(t, "0 3 * * *", cfg.Retention.Schedule)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOOKLINE_SERVER_PORT", "9090")
	t.Setenv("HOOKLINE_DATABASE_NAME", "hookline_test")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "hookline_test", cfg.Database.Name)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "hookline",
		Password: "secret",
		Name:     "hookline",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=hookline password=secret dbname=hookline sslmode=require",
		cfg.DSN())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	require.Error(t, err)
}
