package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/api/shared"
	"github.com/mindcredit/mindcredit-api/internal/breaker"
	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/mindcredit/mindcredit-api/internal/mocks"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	"github.com/mindcredit/mindcredit-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreditLimitRouter(t *testing.T) (*mocks.CreditLimitService, http.Handler) {
	t.Helper()
	svc := new(mocks.CreditLimitService)
	log, _ := logger.NewTestLogger()
	h := NewCreditLimitHandler(svc, log)

	r := chi.NewRouter()
	r.Post("/api/credit-limit/calculate", h.Calculate)
	r.Patch("/api/credit-limit/deploy", h.Deploy)
	r.Get("/api/users/{id}/credit-limits", h.ListForUser)
	return svc, r
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	svc, router := newCreditLimitRouter(t)
	userID := uuid.New()
	limit := domain.NewCreditLimit(userID, 810, 2200, 200)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	svc.On("Calculate", mock.Anything, service.CalculateParams{UserID: userID, Start: start, End: end}).
		Return(limit, nil).Once()

	body := fmt.Sprintf(`{"user_id":%q,"start":"2024-03-01T00:00:00","end":"2024-03-31T00:00:00Z"}`, userID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/credit-limit/calculate", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CreditLimitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, limit.ID, resp.ID)
	assert.Equal(t, int64(2200), resp.CreditLimit)
	assert.Equal(t, int64(200), resp.Increase)
	assert.Equal(t, 810, resp.RiskScore)
	svc.AssertExpectations(t)
}

func TestCalculateErrors(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	valid := fmt.Sprintf(`{"user_id":%q,"start":"2024-03-01T00:00:00Z","end":"2024-03-31T00:00:00Z"}`, userID)

	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantMsg    string
	}{
		{name: "malformed body", body: `{"user_id":`, wantStatus: http.StatusBadRequest, wantMsg: "Invalid request format"},
		{name: "missing user", body: `{"start":"2024-03-01T00:00:00Z","end":"2024-03-31T00:00:00Z"}`,
			wantStatus: http.StatusBadRequest, wantMsg: "Invalid user_id: required field"},
		{name: "missing window", body: fmt.Sprintf(`{"user_id":%q}`, userID), wantStatus: http.StatusBadRequest,
			wantMsg: "window start and end are required"},
		{name: "bad timestamp", body: fmt.Sprintf(`{"user_id":%q,"start":"soon","end":"later"}`, userID),
			wantStatus: http.StatusBadRequest, wantMsg: "Invalid request format"},
		{name: "user not found", body: valid, svcErr: service.ErrUserNotFound,
			wantStatus: http.StatusNotFound, wantMsg: "User not found"},
		{name: "invalid window", body: valid, svcErr: domain.ErrInvalidWindow,
			wantStatus: http.StatusBadRequest, wantMsg: "Window end must not precede start"},
		{name: "breaker open", body: valid, svcErr: fmt.Errorf("%w: %w", service.ErrServiceUnavailable, breaker.ErrOpen),
			wantStatus: http.StatusServiceUnavailable, wantMsg: "Risk scoring is temporarily unavailable, try again later"},
		{name: "unexpected", body: valid, svcErr: &service.ServiceError{Operation: "calculate", Message: "boom"},
			wantStatus: http.StatusInternalServerError, wantMsg: "Failed to calculate credit limit"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, router := newCreditLimitRouter(t)
			if tc.svcErr != nil {
				svc.On("Calculate", mock.Anything, mock.Anything).Return(nil, tc.svcErr).Once()
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/credit-limit/calculate", strings.NewReader(tc.body)))

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantMsg, decodeError(t, rec).Error)
			if tc.svcErr == nil {
				svc.AssertNotCalled(t, "Calculate", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestDeploy(t *testing.T) {
	t.Parallel()

	svc, router := newCreditLimitRouter(t)
	userID, limitID := uuid.New(), uuid.New()
	amount := int64(2200)
	token := "device-token"
	user := &domain.User{ID: userID, Name: "Ada", Email: "ada@example.com",
		CreditLimit: &amount, CreditLimitID: &limitID, DeviceToken: &token}

	svc.On("Deploy", mock.Anything, service.DeployParams{UserID: userID, CreditLimitID: limitID}).Return(user, nil).Once()

	body := fmt.Sprintf(`{"user_id":%q,"credit_limit_id":%q}`, userID, limitID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/credit-limit/deploy", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, userID, resp.ID)
	require.NotNil(t, resp.CreditLimitID)
	assert.Equal(t, limitID, *resp.CreditLimitID)
	assert.Equal(t, amount, *resp.CreditLimit)
	assert.NotContains(t, rec.Body.String(), "device-token")
}

func TestDeployErrors(t *testing.T) {
	t.Parallel()

	userID, limitID := uuid.New(), uuid.New()
	valid := fmt.Sprintf(`{"user_id":%q,"credit_limit_id":%q}`, userID, limitID)

	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{"missing credit limit id", fmt.Sprintf(`{"user_id":%q}`, userID), nil, http.StatusBadRequest},
		{"bad uuid", `{"user_id":"nope","credit_limit_id":"nope"}`, nil, http.StatusBadRequest},
		{"credit limit not found", valid, service.ErrCreditLimitNotFound, http.StatusNotFound},
		{"not owned", valid, service.ErrCreditLimitNotOwned, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, router := newCreditLimitRouter(t)
			if tc.svcErr != nil {
				svc.On("Deploy", mock.Anything, mock.Anything).Return(nil, tc.svcErr).Once()
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/credit-limit/deploy", strings.NewReader(tc.body)))
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestListForUser(t *testing.T) {
	t.Parallel()

	svc, router := newCreditLimitRouter(t)
	userID := uuid.New()
	limits := []*domain.CreditLimit{
		domain.NewCreditLimit(userID, 700, 1500, 0),
		domain.NewCreditLimit(userID, 300, 800, 0),
	}
	svc.On("ListCreditLimits", mock.Anything, userID).Return(limits, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/"+userID.String()+"/credit-limits", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []CreditLimitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, limits[1].ID, resp[1].ID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/not-a-uuid/credit-limits", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid ID", decodeError(t, rec).Error)
}
