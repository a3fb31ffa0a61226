package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mindcredit/mindcredit-api/internal/api/shared"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	"github.com/mindcredit/mindcredit-api/internal/redact"
	"github.com/mindcredit/mindcredit-api/internal/service/auth"
)

// Realm is advertised in the WWW-Authenticate challenge.
const Realm = "mindcredit"

// AuthMiddleware enforces HTTP basic authentication.
type AuthMiddleware struct {
	authenticator auth.Authenticator
}

// NewAuthMiddleware creates an AuthMiddleware backed by authenticator.
func NewAuthMiddleware(authenticator auth.Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// Authenticate rejects requests without valid basic credentials. OPTIONS
// requests pass through so CORS preflight works.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		username, password, ok := r.BasicAuth()
		if !ok {
			Challenge(w, r, "Invalid credentials")
			return
		}

		if err := m.authenticator.Authenticate(username, password); err != nil {
			log := logger.FromContextOrDefault(r.Context(), slog.Default())
			if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrMissingCredentials) {
				log.WarnContext(r.Context(), "basic auth rejected", slog.String("path", r.URL.Path))
			} else {
				log.ErrorContext(r.Context(), "basic auth failed", slog.String("error", redact.Error(err)))
			}
			Challenge(w, r, "Invalid credentials")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Challenge writes a 401 response with a basic-auth challenge.
func Challenge(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="`+Realm+`"`)
	shared.RespondWithError(w, r, http.StatusUnauthorized, message)
}
