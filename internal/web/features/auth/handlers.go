// Package auth provides single-user session authentication for the API.
package auth

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rowboat-labs/rowboat/internal/web/features/common"
)

// SessionName is the cookie name holding the login session.
const SessionName = "rowboat_session"

const sessionKeyAuthenticated = "authenticated"

// Handlers provides login/logout handlers and the guard middleware.
type Handlers struct {
	store    sessions.Store
	user     string
	password string
	logger   *slog.Logger
}

// NewHandlers creates authentication handlers. Empty credentials disable
// the login requirement entirely.
func NewHandlers(store sessions.Store, user, password string, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handlers{store: store, user: user, password: password, logger: logger}
}

// Enabled reports whether requests must carry an authenticated session.
func (h *Handlers) Enabled() bool {
	return h.user != "" && h.password != ""
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login validates the configured credentials and establishes a session.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if !h.Enabled() {
		common.JSON(w, http.StatusOK, map[string]string{"status": "authentication disabled"})
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid login payload"})
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.user)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) == 1
	if !userOK || !passOK {
		h.logger.Warn("login rejected", slog.String("username", req.Username))
		common.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	session, _ := h.store.Get(r, SessionName)
	session.Values[sessionKeyAuthenticated] = true
	if err := session.Save(r, w); err != nil {
		common.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save session"})
		return
	}
	common.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Logout clears the session. The authenticated flag is removed from the
// session value itself so a replayed pre-expiry cookie no longer decodes as
// authenticated.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.store.Get(r, SessionName)
	delete(session.Values, sessionKeyAuthenticated)
	session.Options.MaxAge = -1
	_ = session.Save(r, w)
	common.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Middleware rejects requests lacking an authenticated session. When
// authentication is disabled it passes everything through.
func (h *Handlers) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.Enabled() {
			next.ServeHTTP(w, r)
			return
		}
		session, _ := h.store.Get(r, SessionName)
		if ok, _ := session.Values[sessionKeyAuthenticated].(bool); !ok {
			common.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
