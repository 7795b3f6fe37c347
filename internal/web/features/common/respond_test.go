package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowboat-labs/rowboat/internal/gateway"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"ok": "yes"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":"yes"}`, rec.Body.String())
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "not found",
			err:        &gateway.NotFoundError{ID: "db9"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "not connected",
			err:        &gateway.NotConnectedError{ID: "db1", Reason: "refused"},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "bad request",
			err:        &gateway.BadRequestError{Reason: "missing key"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unsupported dialect",
			err:        &gateway.UnsupportedDialectError{Dialect: "oracle"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrapped gateway error",
			err:        &gateway.QueryFailedError{ID: "db1", Err: errors.New("syntax error")},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.err.Error(), body["error"])
		})
	}
}
