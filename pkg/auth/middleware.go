package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/retailseed/pkg/httpx"
	"github.com/ghuser/retailseed/pkg/logger"
)

// RequireOperator rejects requests without an operator session with 401.
// Downstream handlers can call OperatorFromCtx.
func RequireOperator(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, SessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			operator, ok := session.Values[sessionOperatorKey].(string)
			if !ok || operator == "" {
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithOperator(r.Context(), operator)))
		})
	}
}

// TokenMatches compares the presented admin token in constant time.
func TokenMatches(presented, expected string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) == 1
}
