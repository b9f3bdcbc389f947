package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mediflow-api", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.True(t, cfg.Store.SeedDemoData)
	assert.Equal(t, "system", cfg.Store.SystemActor)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_ACCESS_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("STORE_SEED_DEMO_DATA", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Store.SeedDemoData)
}

func TestValidateProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_SEED_DEMO_DATA", "false")
	t.Setenv("JWT_SECRET", "a-secret-that-is-long-enough-for-prod")

	_, err := Load()
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "short")
	_, err = Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-secret-that-is-long-enough-for-prod")
	t.Setenv("DB_SSLMODE", "disable")
	_, err = Load()
	assert.ErrorContains(t, err, "DB_SSLMODE")

	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("STORE_SEED_DEMO_DATA", "true")
	_, err = Load()
	assert.ErrorContains(t, err, "STORE_SEED_DEMO_DATA")
}

func TestValidateRequiresSecretOutsideDev(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("STORE_SEED_DEMO_DATA", "false")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET is required")
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Name: "mediflow", User: "app", Password: "pw", SSLMode: "require"}
	assert.Equal(t, "host=db user=app password=pw dbname=mediflow port=5432 sslmode=require TimeZone=UTC", d.DSN())
}
