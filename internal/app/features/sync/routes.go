// internal/app/features/sync/routes.go
package sync

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the data sync endpoints, mounted under
// /api/data.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/sync", h.RunSync)
	r.Get("/last-sync", h.LastSync)
	return r
}
