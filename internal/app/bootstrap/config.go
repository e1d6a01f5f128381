// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the sync service.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, source_url, etc.
//   - Environment variables: SYNCBOARD_MONGO_URI, SYNCBOARD_SOURCE_URL, etc.
//   - Command-line flags: --mongo_uri, --source_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "syncboard", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "source_url", Default: "https://jsonplaceholder.typicode.com/users", Desc: "Remote user dataset URL"},
	{Name: "source_timeout", Default: "30s", Desc: "Timeout for the whole source fetch (e.g., 30s, 1m)"},

	{Name: "sync_lease_ttl", Default: "2m", Desc: "Sync lease expiry; bounds how long a crashed run blocks others"},
	{Name: "sync_interval", Default: "0s", Desc: "Scheduled sync period (e.g., 15m); 0 disables the background worker"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have access
// to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SYNCBOARD", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SourceURL:     appValues.String("source_url"),
		SourceTimeout: appValues.Duration("source_timeout", 30*time.Second),

		SyncLeaseTTL: appValues.Duration("sync_lease_ttl", 2*time.Minute),
		SyncInterval: appValues.Duration("sync_interval", 0),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any backend
// connection is attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	u, err := url.Parse(appCfg.SourceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid source_url %q: must be an absolute http(s) URL", appCfg.SourceURL)
	}

	if appCfg.SyncLeaseTTL <= 0 {
		return fmt.Errorf("sync_lease_ttl must be positive, got %s", appCfg.SyncLeaseTTL)
	}

	return nil
}
