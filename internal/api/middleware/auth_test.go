package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mindcredit/mindcredit-api/internal/api/shared"
	"github.com/mindcredit/mindcredit-api/internal/config"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	"github.com/mindcredit/mindcredit-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthenticator(t *testing.T) auth.Authenticator {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	a, err := auth.NewBasicAuthenticator(config.AuthConfig{Username: "operator", PasswordHash: string(hash)}, nil)
	require.NoError(t, err)
	return a
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(newTestAuthenticator(t))

	tests := []struct {
		name       string
		method     string
		username   string
		password   string
		noAuth     bool
		wantStatus int
	}{
		{name: "valid credentials", method: "POST", username: "operator", password: "hunter22", wantStatus: http.StatusOK},
		{name: "missing header", method: "POST", noAuth: true, wantStatus: http.StatusUnauthorized},
		{name: "wrong password", method: "POST", username: "operator", password: "nope", wantStatus: http.StatusUnauthorized},
		{name: "wrong username", method: "PATCH", username: "admin", password: "hunter22", wantStatus: http.StatusUnauthorized},
		{name: "preflight bypasses auth", method: "OPTIONS", noAuth: true, wantStatus: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tc.method, "/api/credit-limit/calculate", nil)
			if !tc.noAuth {
				req.SetBasicAuth(tc.username, tc.password)
			}
			rec := httptest.NewRecorder()

			mw.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantStatus == http.StatusOK, called)
			if tc.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, `Basic realm="mindcredit"`, rec.Header().Get("WWW-Authenticate"))

				var body shared.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "Invalid credentials", body.Error)
			}
		})
	}
}

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	log, buf := logger.NewTestLogger()

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).InfoContext(r.Context(), "inside handler")
	})

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(shared.TraceIDHeader, "caller-trace-0001")
	rec := httptest.NewRecorder()
	TraceMiddleware(log)(next).ServeHTTP(rec, req)

	assert.Equal(t, "caller-trace-0001", seen)
	assert.Equal(t, "caller-trace-0001", rec.Header().Get(shared.TraceIDHeader))
	assert.Contains(t, buf.String(), `"trace_id":"caller-trace-0001"`)

	rec = httptest.NewRecorder()
	TraceMiddleware(log)(next).ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.NotEmpty(t, rec.Header().Get(shared.TraceIDHeader))
}
