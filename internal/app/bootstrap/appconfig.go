// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (HTTP ports, TLS, logging, CORS, timeouts);
// AppConfig is everything specific to this service.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Remote user dataset
	SourceURL     string        // HTTP endpoint returning the JSON array of user records
	SourceTimeout time.Duration // Bound on the whole fetch request

	// Reconciliation
	SyncLeaseTTL time.Duration // How long a crashed run can block others before its lease is stealable
	SyncInterval time.Duration // Scheduled sync period; zero disables the background worker
}
