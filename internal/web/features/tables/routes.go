package tables

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/rowboat-labs/rowboat/internal/gateway"
)

// SetupRoutes registers the per-database table browsing and editing routes.
func SetupRoutes(router chi.Router, introspector *gateway.Introspector, mutator *gateway.Mutator, logger *slog.Logger) {
	handlers := NewHandlers(introspector, mutator, logger)

	router.Route("/{dbID}", func(r chi.Router) {
		r.Get("/tables", handlers.Tables)
		r.Route("/tables/{table}", func(r chi.Router) {
			r.Get("/schema", handlers.Schema)
			r.Get("/data", handlers.Data)
			r.Post("/row", handlers.InsertRow)
			r.Put("/row", handlers.UpdateRow)
			r.Delete("/row", handlers.DeleteRow)
		})
	})
}
