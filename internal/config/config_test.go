package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "APP_ENV", "APP_VERSION",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_MAX_CONNS", "DB_MIN_CONNS", "RUN_MIGRATIONS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.App.Addr())
	assert.True(t, cfg.App.Development())
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "cicd_app", cfg.DB.Name)
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.Equal(t, int32(2), cfg.DB.MinConns)
	assert.True(t, cfg.DB.RunMigrations)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "users_prod")
	t.Setenv("DB_MAX_CONNS", "50")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.App.Port)
	assert.False(t, cfg.App.Development())
	assert.Equal(t, int32(50), cfg.DB.MaxConns)
	assert.False(t, cfg.DB.RunMigrations)
	assert.Contains(t, cfg.DB.DSN(), "host=db.internal")
	assert.Contains(t, cfg.DB.DSN(), "dbname=users_prod")
}

func TestLoad_RejectsInvertedPoolBounds(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "10")

	_, err := Load()
	assert.Error(t, err)
}

func TestAdminDSN_TargetsMaintenanceDatabase(t *testing.T) {
	d := DBConfig{Host: "localhost", Port: "5432", Name: "cicd_app", User: "postgres", Password: "password"}
	assert.Contains(t, d.AdminDSN(), "dbname=postgres")
	assert.NotContains(t, d.AdminDSN(), "cicd_app")
}

func TestGetEnvAsInt_IgnoresGarbage(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
}
