package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedEnvVars = []string{
	"PORT", "API_KEY", "TRUSTED_PROXIES", "LOG_LEVEL", "LOG_FORMAT", "LOG_DIR", "ENVIRONMENT",
	"SERVICE_NAME", "VERSION", "DB_DRIVER", "DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT",
	"DB_NAME", "DB_MAX_CONNS", "SQLITE_PATH", "TIMEZONE", "SEED_DEFAULT_ITEMS", "WORKER_COUNT",
	"WORKER_QUEUE_SIZE", "STATS_REFRESH_INTERVAL", "ENV_SCHEMA_VERSION",
}

// clearEnvVars blanks every variable Load reads; t.Setenv restores them afterwards
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range managedEnvVars {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("PORT", "8080")
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("TIMEZONE", "UTC")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, DriverPostgres, cfg.DBDriver)
		assert.True(t, cfg.SeedDefaultItems)
		assert.Equal(t, DefaultWorkerCount, cfg.WorkerCount)
		assert.Equal(t, DefaultWorkerQueueSize, cfg.WorkerQueueSize)
		assert.Equal(t, DefaultStatsRefreshInterval, cfg.StatsRefreshInterval)
		assert.Empty(t, cfg.TrustedProxies)
	})

	t.Run("custom values", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "custom")
		t.Setenv("PORT", "3000")
		t.Setenv("DB_DRIVER", "SQLite")
		t.Setenv("SQLITE_PATH", "/tmp/x.db")
		t.Setenv("TIMEZONE", "America/New_York")
		t.Setenv("SEED_DEFAULT_ITEMS", "false")
		t.Setenv("WORKER_COUNT", "8")
		t.Setenv("STATS_REFRESH_INTERVAL", "30s")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.1, ,10.0.0.2")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, DriverSQLite, cfg.DBDriver)
		assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
		assert.False(t, cfg.SeedDefaultItems)
		assert.Equal(t, 8, cfg.WorkerCount)
		assert.Equal(t, 30*time.Second, cfg.StatsRefreshInterval)
		assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)

		loc, err := cfg.Location()
		require.NoError(t, err)
		assert.Equal(t, "America/New_York", loc.String())
	})

	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing API_KEY", map[string]string{"PORT": "8080"}, "API_KEY"},
		{"invalid PORT", map[string]string{"API_KEY": "k", "PORT": "abc"}, "invalid PORT"},
		{"invalid driver", map[string]string{"API_KEY": "k", "PORT": "8080", "DB_DRIVER": "mysql"}, "invalid DB_DRIVER"},
		{"invalid timezone", map[string]string{"API_KEY": "k", "PORT": "8080", "DB_DRIVER": "sqlite", "TIMEZONE": "Mars/Base"}, "invalid TIMEZONE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadForTooling_NoAPIKey(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := LoadForTooling()
	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "db"}
	assert.Equal(t, "postgres://u:p@h:5432/db?sslmode=disable", cfg.GetDBConnString())
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT_VAR", "-10")
	assert.Equal(t, -10, getEnvAsInt("TEST_INT_VAR", 42))
	t.Setenv("TEST_INT_VAR", "42.5")
	assert.Equal(t, 7, getEnvAsInt("TEST_INT_VAR", 7))

	t.Setenv("TEST_BOOL_VAR", "nope")
	assert.True(t, getEnvAsBool("TEST_BOOL_VAR", true))
	t.Setenv("TEST_BOOL_VAR", "0")
	assert.False(t, getEnvAsBool("TEST_BOOL_VAR", true))

	t.Setenv("TEST_DURATION_VAR", "5m")
	assert.Equal(t, 5*time.Minute, getEnvAsDuration("TEST_DURATION_VAR", time.Second))
	t.Setenv("TEST_DURATION_VAR", "300")
	assert.Equal(t, time.Second, getEnvAsDuration("TEST_DURATION_VAR", time.Second))
}

func TestValidateEnv(t *testing.T) {
	t.Run("missing version", func(t *testing.T) {
		clearEnvVars(t)
		err := ValidateEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
	})

	t.Run("version mismatch", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("ENV_SCHEMA_VERSION", "0.9")
		err := ValidateEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
	})

	t.Run("postgres requires db vars", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
		t.Setenv("API_KEY", "k")
		t.Setenv("DB_DRIVER", "postgres")
		err := ValidateEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_HOST")
	})

	t.Run("sqlite needs no db vars", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
		t.Setenv("API_KEY", "k")
		t.Setenv("DB_DRIVER", "sqlite")
		assert.NoError(t, ValidateEnv())
	})

	t.Run("warnings for example values", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
		t.Setenv("API_KEY", "generate_with_openssl_rand_hex_32")
		t.Setenv("DB_DRIVER", "sqlite")
		warnings, err := ValidateEnvWithWarnings()
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "API_KEY")
	})
}
