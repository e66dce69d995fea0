/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the dashboard frontend

SECURITY NOTE:
  No authentication middleware. The service is meant to run on an internal
  network behind whatever auth the deployment provides.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/status", h.GetStatus)
		r.Get("/audit", h.GetAudit)
		r.Get("/export", h.ExportCSV)
		r.Get("/cities", h.ListCities)
		r.Post("/refresh", h.Refresh)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/supervisors", h.GetSupervisorReports)
			r.Get("/cities", h.GetCityReports)
		})

		r.Route("/runs", func(r chi.Router) {
			r.Get("/", h.ListRuns)
			r.Get("/{id}/violations", h.GetRunViolations)
		})
	})

	// Landing page listing the API surface for anyone hitting the root.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Cronograma de Folgas</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Cronograma de Folgas API</h1>
<ul>
<li><a href="/api/status">/api/status</a> - Current team status</li>
<li><a href="/api/audit">/api/audit</a> - Leave interval audit</li>
<li><a href="/api/reports/supervisors">/api/reports/supervisors</a> - Supervisor report</li>
<li><a href="/api/reports/cities">/api/reports/cities</a> - City movement report</li>
<li><a href="/api/export">/api/export</a> - CSV export</li>
</ul>
</body>
</html>`))
	})

	return r
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
