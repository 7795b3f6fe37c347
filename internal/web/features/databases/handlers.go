// Package databases provides the registry listing and reload handlers.
package databases

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/rowboat-labs/rowboat/internal/gateway"
	"github.com/rowboat-labs/rowboat/internal/web/features/common"
)

// Handlers serves the registry projection and the reload command.
type Handlers struct {
	registry *gateway.Registry
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(registry *gateway.Registry, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handlers{registry: registry, logger: logger}
}

// List returns the credential-free projection of all registered databases.
func (h *Handlers) List(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, h.registry.List())
}

// Reload rebuilds the registry from the configuration source and returns
// the updated projection.
func (h *Handlers) Reload(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("registry reload requested")
	if err := h.registry.Reload(r.Context()); err != nil {
		common.Error(w, err)
		return
	}
	common.JSON(w, http.StatusOK, h.registry.List())
}
