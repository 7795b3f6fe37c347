// Package router sets up HTTP routes for the gateway server.
package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/rowboat-labs/rowboat/internal/gateway"
	authFeature "github.com/rowboat-labs/rowboat/internal/web/features/auth"
	databasesFeature "github.com/rowboat-labs/rowboat/internal/web/features/databases"
	tablesFeature "github.com/rowboat-labs/rowboat/internal/web/features/tables"
)

// Deps carries everything the routes need.
type Deps struct {
	Registry     *gateway.Registry
	Introspector *gateway.Introspector
	Mutator      *gateway.Mutator
	SessionStore sessions.Store
	AuthUser     string
	AuthPassword string
	Logger       *slog.Logger
}

// SetupRoutes configures all routes for the gateway server. Everything but
// login/logout sits behind the session guard; the guard is a no-op when no
// credentials are configured.
func SetupRoutes(router chi.Router, deps Deps) {
	auth := authFeature.NewHandlers(deps.SessionStore, deps.AuthUser, deps.AuthPassword, deps.Logger)

	router.Post("/login", auth.Login)
	router.Post("/logout", auth.Logout)

	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware)

		databasesFeature.SetupRoutes(r, deps.Registry, deps.Logger)
		tablesFeature.SetupRoutes(r, deps.Introspector, deps.Mutator, deps.Logger)
	})
}
