package databases

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/rowboat-labs/rowboat/internal/gateway"
)

// SetupRoutes registers the database listing and reload routes.
func SetupRoutes(router chi.Router, registry *gateway.Registry, logger *slog.Logger) {
	handlers := NewHandlers(registry, logger)

	router.Get("/", handlers.List)
	router.Post("/reload", handlers.Reload)
}
