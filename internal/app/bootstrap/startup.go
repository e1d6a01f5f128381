// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/syncboard/syncboard/internal/app/reconcile"
	leasestore "github.com/syncboard/syncboard/internal/app/store/lease"
	synclogstore "github.com/syncboard/syncboard/internal/app/store/synclog"
	userstore "github.com/syncboard/syncboard/internal/app/store/users"
	"github.com/syncboard/syncboard/internal/app/system/timeouts"
	"github.com/syncboard/syncboard/internal/app/system/workers"
	"go.uber.org/zap"
)

// reconciler is the single reconciliation engine for the process, built here
// and shared by the sync endpoints and the optional scheduled worker.
var reconciler *reconcile.Reconciler

// syncWorker is the optional scheduled sync worker, started here and stopped
// in Shutdown.
var syncWorker *workers.SyncWorker

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	// The sync timeout bounds a whole fetch-and-reconcile run, so it must
	// cover at least the configured source fetch timeout.
	if appCfg.SourceTimeout > timeouts.Sync() {
		timeouts.Configure(timeouts.Config{Sync: appCfg.SourceTimeout * 2})
	}

	fetcher := reconcile.NewFetcher(appCfg.SourceURL, appCfg.SourceTimeout, logger)
	reconciler = reconcile.New(fetcher,
		userstore.New(deps.MongoDatabase),
		synclogstore.New(deps.MongoDatabase),
		leasestore.New(deps.MongoDatabase, appCfg.SyncLeaseTTL),
		logger)

	if appCfg.SyncInterval > 0 {
		syncWorker = workers.NewSyncWorker(reconciler, logger, appCfg.SyncInterval)
		syncWorker.Start()
	}

	logger.Info("syncboard starting",
		zap.String("source_url", appCfg.SourceURL),
		zap.Duration("source_timeout", appCfg.SourceTimeout),
		zap.Duration("sync_lease_ttl", appCfg.SyncLeaseTTL),
		zap.Duration("sync_interval", appCfg.SyncInterval))
	return nil
}
