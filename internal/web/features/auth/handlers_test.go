package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers(user, password string) *Handlers {
	store := sessions.NewCookieStore([]byte("test-secret"))
	return NewHandlers(store, user, password, nil)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestEnabled(t *testing.T) {
	assert.True(t, newTestHandlers("admin", "secret").Enabled())
	assert.False(t, newTestHandlers("", "").Enabled())
	assert.False(t, newTestHandlers("admin", "").Enabled())
	assert.False(t, newTestHandlers("", "secret").Enabled())
}

func TestLogin(t *testing.T) {
	h := newTestHandlers("admin", "secret")

	t.Run("valid credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login",
			strings.NewReader(`{"username":"admin","password":"secret"}`))
		h.Login(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Set-Cookie"))
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login",
			strings.NewReader(`{"username":"admin","password":"nope"}`))
		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid payload", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{broken"))
		h.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("auth disabled", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{}`))
		newTestHandlers("", "").Login(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("disabled passes through", func(t *testing.T) {
		h := newTestHandlers("", "")
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		h.Middleware(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects anonymous request", func(t *testing.T) {
		h := newTestHandlers("admin", "secret")
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		h.Middleware(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("accepts authenticated session", func(t *testing.T) {
		h := newTestHandlers("admin", "secret")

		loginRec := httptest.NewRecorder()
		loginReq := httptest.NewRequest(http.MethodPost, "/login",
			strings.NewReader(`{"username":"admin","password":"secret"}`))
		h.Login(loginRec, loginReq)
		require.Equal(t, http.StatusOK, loginRec.Code)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range loginRec.Result().Cookies() {
			req.AddCookie(c)
		}
		h.Middleware(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("logout invalidates session", func(t *testing.T) {
		h := newTestHandlers("admin", "secret")

		loginRec := httptest.NewRecorder()
		loginReq := httptest.NewRequest(http.MethodPost, "/login",
			strings.NewReader(`{"username":"admin","password":"secret"}`))
		h.Login(loginRec, loginReq)

		logoutRec := httptest.NewRecorder()
		logoutReq := httptest.NewRequest(http.MethodPost, "/logout", nil)
		for _, c := range loginRec.Result().Cookies() {
			logoutReq.AddCookie(c)
		}
		h.Logout(logoutRec, logoutReq)
		assert.Equal(t, http.StatusOK, logoutRec.Code)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range logoutRec.Result().Cookies() {
			req.AddCookie(c)
		}
		h.Middleware(okHandler()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
