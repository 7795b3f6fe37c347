// Package common provides response helpers shared by the API features.
package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rowboat-labs/rowboat/internal/gateway"
)

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error maps a gateway error onto an HTTP status and writes it as
// {"error": message}. Messages are surfaced verbatim; stack traces never are.
func Error(w http.ResponseWriter, err error) {
	JSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	var (
		notFound     *gateway.NotFoundError
		notConnected *gateway.NotConnectedError
		badRequest   *gateway.BadRequestError
		unsupported  *gateway.UnsupportedDialectError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &notConnected):
		return http.StatusServiceUnavailable
	case errors.As(err, &badRequest), errors.As(err, &unsupported):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
