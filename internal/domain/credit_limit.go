package domain

import (
	"time"

	"github.com/google/uuid"
)

// Scoring range accepted by the credit-limit engine.
const (
	MinRiskScore = 0
	MaxRiskScore = 850
)

// CreditLimit is the artifact produced by one credit-limit calculation.
// Records are created once and never mutated; a deployment only references them.
type CreditLimit struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	RiskScore   int       `json:"risk_score"`
	CreditLimit int64     `json:"credit_limit"`
	// Increase is the signed adjustment applied on top of the tier base limit.
	Increase  int64     `json:"increase"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCreditLimit creates a CreditLimit record with a generated ID.
func NewCreditLimit(userID uuid.UUID, riskScore int, limit, increase int64) *CreditLimit {
	return &CreditLimit{
		ID:          uuid.New(),
		UserID:      userID,
		RiskScore:   riskScore,
		CreditLimit: limit,
		Increase:    increase,
		CreatedAt:   time.Now().UTC(),
	}
}

// BaseLimit returns the tier base limit before the sentiment adjustment.
func (c *CreditLimit) BaseLimit() int64 {
	return c.CreditLimit - c.Increase
}
