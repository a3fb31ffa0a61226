package credit

import (
	"fmt"

	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/shopspring/decimal"
)

// TierForScore returns the band containing score.
//
// Bands are inclusive on both ends. A score outside [0, 850] yields
// domain.ErrInvalidRiskScore, which wraps domain.ErrInvalidValue.
func TierForScore(params *Params, score int) (TierBand, error) {
	if score < domain.MinRiskScore || score > domain.MaxRiskScore {
		return TierBand{}, fmt.Errorf("%w: %d", domain.ErrInvalidRiskScore, score)
	}
	for _, band := range params.Tiers {
		if score >= band.Min && score <= band.Max {
			return band, nil
		}
	}
	return TierBand{}, fmt.Errorf("%w: %d", domain.ErrInvalidRiskScore, score)
}

// BaseLimit scales the configured base limit by the tier factor.
// Halves round to even.
func BaseLimit(params *Params, band TierBand) int64 {
	return roundProduct(params.BaseLimit, band.Factor)
}

// DominantSentiment returns the sentiment with the highest count among thoughts.
// Ties resolve in the order positive, negative, neutral. No thoughts yields neutral.
func DominantSentiment(thoughts []*domain.Thought) domain.Sentiment {
	counts := make(map[domain.Sentiment]int, 3)
	for _, t := range thoughts {
		counts[t.Sentiment]++
	}

	dominant := domain.SentimentNeutral
	best := 0
	for _, s := range domain.Sentiments() {
		if counts[s] > best {
			dominant = s
			best = counts[s]
		}
	}
	return dominant
}

// AverageIntensity returns the mean intensity of emotions.
// The second return value is false when there are no emotions.
func AverageIntensity(emotions []*domain.Emotion) (float64, bool) {
	if len(emotions) == 0 {
		return 0, false
	}
	sum := 0
	for _, e := range emotions {
		sum += e.Intensity
	}
	return float64(sum) / float64(len(emotions)), true
}

// Adjustment computes the signed amount added to baseLimit.
//
// A positive dominant sentiment with a calm mean intensity raises the limit by
// IncreaseRatio; a negative dominant sentiment with an intense mean lowers it
// by DecreaseRatio. Everything else, including a window without emotions,
// leaves it unchanged.
func Adjustment(
	params *Params,
	baseLimit int64,
	emotions []*domain.Emotion,
	thoughts []*domain.Thought,
) int64 {
	avg, ok := AverageIntensity(emotions)
	if !ok {
		return 0
	}

	switch DominantSentiment(thoughts) {
	case domain.SentimentPositive:
		if avg <= params.PositiveIntensityCeiling {
			return roundProduct(baseLimit, params.IncreaseRatio)
		}
	case domain.SentimentNegative:
		if avg >= params.NegativeIntensityFloor {
			return -roundProduct(baseLimit, params.DecreaseRatio)
		}
	}
	return 0
}

// Result is the outcome of one credit-limit computation.
type Result struct {
	Tier      TierBand
	BaseLimit int64
	Increase  int64
	Limit     int64
}

// Compute runs the tier lookup, base-limit scaling and sentiment adjustment for a score.
func Compute(
	params *Params,
	score int,
	emotions []*domain.Emotion,
	thoughts []*domain.Thought,
) (Result, error) {
	band, err := TierForScore(params, score)
	if err != nil {
		return Result{}, err
	}

	base := BaseLimit(params, band)
	increase := Adjustment(params, base, emotions, thoughts)

	return Result{
		Tier:      band,
		BaseLimit: base,
		Increase:  increase,
		Limit:     base + increase,
	}, nil
}

func roundProduct(value int64, ratio float64) int64 {
	return decimal.NewFromInt(value).
		Mul(decimal.NewFromFloat(ratio)).
		RoundBank(0).
		IntPart()
}
