package config

import "time"

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Defaults
const (
	DefaultPort                 = "8080"
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "text"
	DefaultLogDir               = "logs"
	DefaultEnvironment          = "dev"
	DefaultServiceName          = "tactasrng"
	DefaultVersion              = "dev"
	DefaultDBName               = "tactasrng"
	DefaultDBMaxConns           = 20
	DefaultSQLitePath           = "data/tactasrng.db"
	DefaultTimezone             = "UTC"
	DefaultWorkerCount          = 4
	DefaultWorkerQueueSize      = 256
	DefaultStatsRefreshInterval = time.Minute
)
