// internal/app/features/dashboard/routes.go
package dashboard

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the dashboard endpoints, mounted under
// /api/dashboard.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/summary", h.Summary)
	r.Get("/pie-chart", h.PieChart)
	r.Get("/column-chart", h.ColumnChart)
	return r
}
