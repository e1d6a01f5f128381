// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/syncboard/syncboard/internal/app/analytics"
	dashboardfeature "github.com/syncboard/syncboard/internal/app/features/dashboard"
	healthfeature "github.com/syncboard/syncboard/internal/app/features/health"
	syncfeature "github.com/syncboard/syncboard/internal/app/features/sync"
	usersfeature "github.com/syncboard/syncboard/internal/app/features/users"
	"github.com/syncboard/syncboard/internal/app/reconcile"
	synclogstore "github.com/syncboard/syncboard/internal/app/store/synclog"
	userstore "github.com/syncboard/syncboard/internal/app/store/users"
	"github.com/syncboard/syncboard/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// The API surface:
//   - GET  /                          service banner
//   - GET  /health                    liveness + MongoDB ping
//   - POST /api/data/sync             trigger a reconciliation run
//   - GET  /api/data/last-sync        latest sync status record
//   - GET  /api/dashboard/summary     user and category totals
//   - GET  /api/dashboard/pie-chart   category distribution
//   - GET  /api/dashboard/column-chart daily signup counts
//   - /api/users                      user CRUD
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	users := userstore.New(deps.MongoDatabase)
	logs := synclogstore.New(deps.MongoDatabase)

	// The reconciler itself is built once in Startup and shared with the
	// scheduled worker.
	status := reconcile.NewStatusReader(logs)
	agg := analytics.New(users)

	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		httpjson.OK(w, http.StatusOK, "User Sync API is running")
	})

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	syncHandler := syncfeature.NewHandler(reconciler, status, logger)
	r.Mount("/api/data", syncfeature.Routes(syncHandler))

	dashboardHandler := dashboardfeature.NewHandler(agg, logger)
	r.Mount("/api/dashboard", dashboardfeature.Routes(dashboardHandler))

	usersHandler := usersfeature.NewHandler(users, logger)
	r.Mount("/api/users", usersfeature.Routes(usersHandler))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httpjson.Fail(w, http.StatusNotFound, "Route not found")
	})

	return r, nil
}
