// Package errhttp maps sales sentinel errors to HTTP status codes.
package errhttp

import (
	"context"
	"errors"
	"net/http"

	"github.com/ghuser/retailseed/pkg/httpx"
	salesdomain "github.com/ghuser/retailseed/services/sales/domain"
)

// WriteError writes err as a JSON error with the status it maps to.
// With production set, 5xx messages are replaced by the status text.
func WriteError(w http.ResponseWriter, err error, production bool) {
	status := StatusFor(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, production))
}

// StatusFor matches err against the sales sentinels with errors.Is.
// Unrecognized errors are 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, salesdomain.ErrSeedRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, salesdomain.ErrSeedRunInProgress):
		return http.StatusConflict
	case errors.Is(err, salesdomain.ErrInvalidConfiguration),
		errors.Is(err, salesdomain.ErrInvalidProduct),
		errors.Is(err, salesdomain.ErrInvalidStore):
		return http.StatusUnprocessableEntity
	case errors.Is(err, salesdomain.ErrStoresUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
