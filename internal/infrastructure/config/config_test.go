package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "clinisupply", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CLINISUPPLY_APP_PORT", "9090")
	t.Setenv("CLINISUPPLY_DATABASE_HOST", "db.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestValidate(t *testing.T) {
	t.Run("production requires jwt secret", func(t *testing.T) {
		cfg := &Config{
			App:      AppConfig{Env: "production"},
			Database: DatabaseConfig{DBName: "clinisupply"},
		}
		assert.Error(t, cfg.Validate())

		cfg.JWT.Secret = "super-secret"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("dbname is required", func(t *testing.T) {
		cfg := &Config{App: AppConfig{Env: "development"}}
		assert.Error(t, cfg.Validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "app",
		Password: "pw", DBName: "clinisupply", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=app password=pw dbname=clinisupply sslmode=disable",
		d.DSN())
	assert.Equal(t,
		"postgres://app:pw@localhost:5432/clinisupply?sslmode=disable",
		d.URL())
}
