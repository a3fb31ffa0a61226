package scoring

import (
	"context"

	"github.com/mindcredit/mindcredit-api/internal/domain"
)

// Scorer produces a risk score for a set of user signals.
//
// Scores are nominally in [domain.MinRiskScore, domain.MaxRiskScore]; the
// credit-limit engine rejects anything outside that range, so implementations
// are not required to clamp. Errors are returned unchanged to the caller,
// which decides whether they count against the circuit breaker.
type Scorer interface {
	Score(
		ctx context.Context,
		emotions []*domain.Emotion,
		thoughts []*domain.Thought,
		transactions []*domain.Transaction,
	) (int, error)
}

// ScorerFunc adapts an ordinary function to the Scorer interface.
type ScorerFunc func(
	ctx context.Context,
	emotions []*domain.Emotion,
	thoughts []*domain.Thought,
	transactions []*domain.Transaction,
) (int, error)

// Score calls f.
func (f ScorerFunc) Score(
	ctx context.Context,
	emotions []*domain.Emotion,
	thoughts []*domain.Thought,
	transactions []*domain.Transaction,
) (int, error) {
	return f(ctx, emotions, thoughts, transactions)
}
