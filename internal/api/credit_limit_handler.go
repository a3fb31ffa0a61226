package api

import (
	"log/slog"
	"net/http"

	"github.com/mindcredit/mindcredit-api/internal/api/shared"
	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	"github.com/mindcredit/mindcredit-api/internal/service"
)

// CreditLimitHandler serves credit-limit calculation and deployment.
type CreditLimitHandler struct {
	creditLimits service.CreditLimitService
	logger       *slog.Logger
}

// NewCreditLimitHandler creates a CreditLimitHandler.
func NewCreditLimitHandler(creditLimits service.CreditLimitService, log *slog.Logger) *CreditLimitHandler {
	if creditLimits == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("credit limit service cannot be nil for CreditLimitHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &CreditLimitHandler{
		creditLimits: creditLimits,
		logger:       log.With(slog.String("component", "credit_limit_handler")),
	}
}

// Calculate handles POST /api/credit-limit/calculate.
func (h *CreditLimitHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CalculateCreditLimitRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if req.Start.IsZero() || req.End.IsZero() {
		HandleAPIError(w, r, domain.NewValidationError("window", "start and end are required", nil), "")
		return
	}

	limit, err := h.creditLimits.Calculate(r.Context(), service.CalculateParams{
		UserID: req.UserID,
		Start:  req.Start.Time,
		End:    req.End.Time,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to calculate credit limit")
		return
	}

	log.DebugContext(r.Context(), "credit limit calculated",
		slog.String("user_id", req.UserID.String()),
		slog.String("credit_limit_id", limit.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, creditLimitToResponse(limit))
}

// Deploy handles PATCH /api/credit-limit/deploy.
func (h *CreditLimitHandler) Deploy(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req DeployCreditLimitRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.creditLimits.Deploy(r.Context(), service.DeployParams{
		UserID:        req.UserID,
		CreditLimitID: req.CreditLimitID,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to deploy credit limit")
		return
	}

	log.DebugContext(r.Context(), "credit limit deployed",
		slog.String("user_id", user.ID.String()),
		slog.String("credit_limit_id", req.CreditLimitID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// ListForUser handles GET /api/users/{id}/credit-limits.
func (h *CreditLimitHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	limits, err := h.creditLimits.ListCreditLimits(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list credit limits")
		return
	}

	resp := make([]CreditLimitResponse, 0, len(limits))
	for _, l := range limits {
		resp = append(resp, creditLimitToResponse(l))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
