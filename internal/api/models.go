package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/mindcredit/mindcredit-api/internal/ingest"
)

// CalculateCreditLimitRequest is the body of POST /api/credit-limit/calculate.
type CalculateCreditLimitRequest struct {
	UserID uuid.UUID        `json:"user_id" validate:"required"`
	Start  ingest.Timestamp `json:"start"`
	End    ingest.Timestamp `json:"end"`
}

// DeployCreditLimitRequest is the body of PATCH /api/credit-limit/deploy.
type DeployCreditLimitRequest struct {
	UserID        uuid.UUID `json:"user_id"         validate:"required"`
	CreditLimitID uuid.UUID `json:"credit_limit_id" validate:"required"`
}

// CreditLimitResponse is a computed credit limit.
type CreditLimitResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	RiskScore   int       `json:"risk_score"`
	CreditLimit int64     `json:"credit_limit"`
	Increase    int64     `json:"increase"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserResponse is a user after a deployment. Device tokens are not exposed.
type UserResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	CreditLimit   *int64     `json:"credit_limit"`
	CreditLimitID *uuid.UUID `json:"credit_limit_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// SignalAcceptedResponse acknowledges a published brain-data signal.
type SignalAcceptedResponse struct {
	EventID uuid.UUID `json:"event_id"`
	Type    string    `json:"type"`
}

func creditLimitToResponse(c *domain.CreditLimit) CreditLimitResponse {
	return CreditLimitResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		RiskScore:   c.RiskScore,
		CreditLimit: c.CreditLimit,
		Increase:    c.Increase,
		CreatedAt:   c.CreatedAt,
	}
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		CreditLimit:   u.CreditLimit,
		CreditLimitID: u.CreditLimitID,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
