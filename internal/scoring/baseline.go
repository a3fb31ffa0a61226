package scoring

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/mindcredit/mindcredit-api/internal/domain"
)

// BaselineScorer is the placeholder model: it draws a uniform random score
// from [min(signal count, 850), 850]. More signals raise the floor.
type BaselineScorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewBaselineScorer creates a BaselineScorer. A nil rng is replaced by one
// seeded from the current time.
func NewBaselineScorer(rng *rand.Rand) *BaselineScorer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &BaselineScorer{rng: rng}
}

// Score implements Scorer.
func (b *BaselineScorer) Score(
	ctx context.Context,
	emotions []*domain.Emotion,
	thoughts []*domain.Thought,
	transactions []*domain.Transaction,
) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	floor := len(emotions) + len(thoughts) + len(transactions)
	if floor > domain.MaxRiskScore {
		floor = domain.MaxRiskScore
	}

	// rand.Rand is not safe for concurrent use
	b.mu.Lock()
	score := floor + b.rng.Intn(domain.MaxRiskScore-floor+1)
	b.mu.Unlock()

	return score, nil
}
