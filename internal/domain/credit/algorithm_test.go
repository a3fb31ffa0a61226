package credit

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emotionsWithIntensities(intensities ...int) []*domain.Emotion {
	userID := uuid.New()
	out := make([]*domain.Emotion, 0, len(intensities))
	for _, i := range intensities {
		out = append(out, &domain.Emotion{
			ID:          uuid.New(),
			UserID:      userID,
			EmotionType: domain.EmotionHappy,
			Intensity:   i,
		})
	}
	return out
}

func thoughtsWithSentiments(counts map[domain.Sentiment]int) []*domain.Thought {
	userID := uuid.New()
	var out []*domain.Thought
	for _, s := range domain.Sentiments() {
		for i := 0; i < counts[s]; i++ {
			out = append(out, &domain.Thought{
				ID:        uuid.New(),
				UserID:    userID,
				Content:   "thought",
				Sentiment: s,
			})
		}
	}
	return out
}

func TestTierForScore(t *testing.T) {
	t.Parallel()

	params := DefaultParams(1000)

	tests := []struct {
		score int
		want  RiskTier
	}{
		{0, TierVeryHighRisk},
		{450, TierVeryHighRisk},
		{499, TierVeryHighRisk},
		{500, TierHighRisk},
		{599, TierHighRisk},
		{600, TierModerateRisk},
		{699, TierModerateRisk},
		{700, TierLowRisk},
		{799, TierLowRisk},
		{800, TierVeryLowRisk},
		{810, TierVeryLowRisk},
		{850, TierVeryLowRisk},
	}

	for _, tc := range tests {
		band, err := TierForScore(params, tc.score)
		require.NoError(t, err, "score %d", tc.score)
		assert.Equal(t, tc.want, band.Tier, "score %d", tc.score)
	}
}

func TestTierForScore_OutOfRange(t *testing.T) {
	t.Parallel()

	params := DefaultParams(1000)

	for _, score := range []int{-1, 851, 10000} {
		_, err := TierForScore(params, score)
		assert.ErrorIs(t, err, domain.ErrInvalidRiskScore, "score %d", score)
		assert.ErrorIs(t, err, domain.ErrInvalidValue, "score %d", score)
	}
}

func TestBaseLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		base int64
		tier RiskTier
		want int64
	}{
		{name: "very low risk doubles", base: 1000, tier: TierVeryLowRisk, want: 2000},
		{name: "low risk", base: 1000, tier: TierLowRisk, want: 1500},
		{name: "moderate risk", base: 1000, tier: TierModerateRisk, want: 1200},
		{name: "high risk", base: 1000, tier: TierHighRisk, want: 800},
		{name: "very high risk halves", base: 1000, tier: TierVeryHighRisk, want: 500},
		{name: "half rounds down to even", base: 1005, tier: TierVeryHighRisk, want: 502},
		{name: "half rounds up to even", base: 1015, tier: TierVeryHighRisk, want: 508},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params := DefaultParams(tc.base)
			var band TierBand
			for _, b := range params.Tiers {
				if b.Tier == tc.tier {
					band = b
				}
			}
			assert.Equal(t, tc.want, BaseLimit(params, band))
		})
	}
}

func TestAverageIntensity(t *testing.T) {
	t.Parallel()

	avg, ok := AverageIntensity(emotionsWithIntensities(0, 1, 2, 3, 4, 5, 6, 7, 8, 9))
	assert.True(t, ok)
	assert.InDelta(t, 4.5, avg, 1e-9)

	avg, ok = AverageIntensity(nil)
	assert.False(t, ok)
	assert.Zero(t, avg)
}

func TestDominantSentiment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		counts map[domain.Sentiment]int
		want   domain.Sentiment
	}{
		{
			name:   "positive majority",
			counts: map[domain.Sentiment]int{domain.SentimentPositive: 7, domain.SentimentNegative: 4},
			want:   domain.SentimentPositive,
		},
		{
			name:   "negative majority",
			counts: map[domain.Sentiment]int{domain.SentimentPositive: 1, domain.SentimentNegative: 3, domain.SentimentNeutral: 2},
			want:   domain.SentimentNegative,
		},
		{
			name:   "positive wins tie with negative",
			counts: map[domain.Sentiment]int{domain.SentimentPositive: 3, domain.SentimentNegative: 3},
			want:   domain.SentimentPositive,
		},
		{
			name:   "negative wins tie with neutral",
			counts: map[domain.Sentiment]int{domain.SentimentNegative: 2, domain.SentimentNeutral: 2},
			want:   domain.SentimentNegative,
		},
		{
			name:   "three way tie",
			counts: map[domain.Sentiment]int{domain.SentimentPositive: 1, domain.SentimentNegative: 1, domain.SentimentNeutral: 1},
			want:   domain.SentimentPositive,
		},
		{
			name:   "no thoughts",
			counts: nil,
			want:   domain.SentimentNeutral,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DominantSentiment(thoughtsWithSentiments(tc.counts)))
		})
	}
}

func TestAdjustment(t *testing.T) {
	t.Parallel()

	params := DefaultParams(1000)
	positive := thoughtsWithSentiments(map[domain.Sentiment]int{domain.SentimentPositive: 7, domain.SentimentNegative: 4})
	negative := thoughtsWithSentiments(map[domain.Sentiment]int{domain.SentimentNegative: 5})

	tests := []struct {
		name     string
		base     int64
		emotions []*domain.Emotion
		thoughts []*domain.Thought
		want     int64
	}{
		{
			name:     "calm and positive increases",
			base:     1000,
			emotions: emotionsWithIntensities(0, 1, 2, 3, 4, 5, 6, 7, 8, 1),
			thoughts: positive,
			want:     100,
		},
		{
			name:     "positive at ceiling increases",
			base:     1000,
			emotions: emotionsWithIntensities(4, 4, 4),
			thoughts: positive,
			want:     100,
		},
		{
			name:     "positive but agitated is unchanged",
			base:     1000,
			emotions: emotionsWithIntensities(0, 1, 2, 3, 4, 5, 6, 7, 8, 9),
			thoughts: positive,
			want:     0,
		},
		{
			name:     "intense and negative decreases",
			base:     1000,
			emotions: emotionsWithIntensities(7, 8, 9, 10),
			thoughts: negative,
			want:     -150,
		},
		{
			name:     "negative at floor decreases",
			base:     1000,
			emotions: emotionsWithIntensities(7, 7),
			thoughts: negative,
			want:     -150,
		},
		{
			name:     "negative but calm is unchanged",
			base:     1000,
			emotions: emotionsWithIntensities(6, 6),
			thoughts: negative,
			want:     0,
		},
		{
			name:     "neutral is unchanged",
			base:     1000,
			emotions: emotionsWithIntensities(1),
			thoughts: thoughtsWithSentiments(map[domain.Sentiment]int{domain.SentimentNeutral: 3}),
			want:     0,
		},
		{
			name:     "no emotions is unchanged",
			base:     1000,
			emotions: nil,
			thoughts: positive,
			want:     0,
		},
		{
			name:     "increase rounds half to even",
			base:     1005,
			emotions: emotionsWithIntensities(1),
			thoughts: positive,
			want:     100,
		},
		{
			name:     "decrease rounds half to even",
			base:     1010,
			emotions: emotionsWithIntensities(9),
			thoughts: negative,
			want:     -152,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Adjustment(params, tc.base, tc.emotions, tc.thoughts))
		})
	}
}

func TestCompute(t *testing.T) {
	t.Parallel()

	params := DefaultParams(1000)

	t.Run("very low risk without trigger", func(t *testing.T) {
		result, err := Compute(
			params,
			810,
			emotionsWithIntensities(0, 1, 2, 3, 4, 5, 6, 7, 8, 9),
			thoughtsWithSentiments(map[domain.Sentiment]int{domain.SentimentPositive: 7, domain.SentimentNegative: 4}),
		)
		require.NoError(t, err)
		assert.Equal(t, TierVeryLowRisk, result.Tier.Tier)
		assert.Equal(t, int64(2000), result.BaseLimit)
		assert.Equal(t, int64(0), result.Increase)
		assert.Equal(t, int64(2000), result.Limit)
	})

	t.Run("moderate risk with decrease", func(t *testing.T) {
		result, err := Compute(
			params,
			650,
			emotionsWithIntensities(8, 9),
			thoughtsWithSentiments(map[domain.Sentiment]int{domain.SentimentNegative: 2}),
		)
		require.NoError(t, err)
		assert.Equal(t, int64(1200), result.BaseLimit)
		assert.Equal(t, int64(-180), result.Increase)
		assert.Equal(t, int64(1020), result.Limit)
	})

	t.Run("out of range score", func(t *testing.T) {
		_, err := Compute(params, 900, nil, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidValue)
	})
}
