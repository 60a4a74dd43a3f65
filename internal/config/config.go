package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string

	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	ServiceName string
	Version     string

	DBDriver   string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBMaxConns int
	SQLitePath string

	Timezone             string
	SeedDefaultItems     bool
	WorkerCount          int
	WorkerQueueSize      int
	StatsRefreshInterval time.Duration
}

// Load reads the configuration from the environment and an optional .env file
func Load() (*Config, error) {
	return load(true)
}

// LoadForTooling reads the same settings without requiring API_KEY.
// The local CLI and the migration tool never serve HTTP.
func LoadForTooling() (*Config, error) {
	return load(false)
}

func load(requireAPIKey bool) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", DefaultDBName),
		DBMaxConns: getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		SQLitePath: getEnv("SQLITE_PATH", DefaultSQLitePath),

		Timezone:             getEnv("TIMEZONE", DefaultTimezone),
		SeedDefaultItems:     getEnvAsBool("SEED_DEFAULT_ITEMS", true),
		WorkerCount:          getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize:      getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),
		StatsRefreshInterval: getEnvAsDuration("STATS_REFRESH_INTERVAL", DefaultStatsRefreshInterval),
	}

	port, err := strconv.Atoi(getEnv("PORT", DefaultPort))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if requireAPIKey && cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if cfg.DBDriver != DriverPostgres && cfg.DBDriver != DriverSQLite {
		return nil, fmt.Errorf("invalid DB_DRIVER %q: expected %s or %s", cfg.DBDriver, DriverPostgres, DriverSQLite)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = DefaultWorkerCount
	}
	if cfg.WorkerQueueSize < 1 {
		cfg.WorkerQueueSize = DefaultWorkerQueueSize
	}

	return cfg, nil
}

// Location resolves TIMEZONE, which defines reward day and week boundaries
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsDuration accepts Go durations ("90s", "5m")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
