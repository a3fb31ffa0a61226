package scoring

import (
	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Summary aggregates a signal set into the figures a model is prompted with.
type Summary struct {
	EmotionCount     int
	ThoughtCount     int
	TransactionCount int

	// MeanIntensity is zero when there are no emotions.
	MeanIntensity float64
	EmotionCounts map[domain.EmotionType]int

	SentimentCounts map[domain.Sentiment]int

	TotalSpend  decimal.Decimal
	SpendByType map[domain.TransactionType]decimal.Decimal
}

// SignalCount is the total number of signals summarized.
func (s Summary) SignalCount() int {
	return s.EmotionCount + s.ThoughtCount + s.TransactionCount
}

// Summarize builds a Summary. Nil slices are treated as empty.
func Summarize(
	emotions []*domain.Emotion,
	thoughts []*domain.Thought,
	transactions []*domain.Transaction,
) Summary {
	s := Summary{
		EmotionCount:     len(emotions),
		ThoughtCount:     len(thoughts),
		TransactionCount: len(transactions),
		EmotionCounts:    make(map[domain.EmotionType]int),
		SentimentCounts:  make(map[domain.Sentiment]int),
		TotalSpend:       decimal.Zero,
		SpendByType:      make(map[domain.TransactionType]decimal.Decimal),
	}

	total := 0
	for _, e := range emotions {
		total += e.Intensity
		s.EmotionCounts[e.EmotionType]++
	}
	if len(emotions) > 0 {
		s.MeanIntensity = float64(total) / float64(len(emotions))
	}

	for _, t := range thoughts {
		s.SentimentCounts[t.Sentiment]++
	}

	for _, tx := range transactions {
		s.TotalSpend = s.TotalSpend.Add(tx.Amount)
		current, ok := s.SpendByType[tx.TransactionType]
		if !ok {
			current = decimal.Zero
		}
		s.SpendByType[tx.TransactionType] = current.Add(tx.Amount)
	}

	return s
}
