package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentiment is the polarity of a recorded thought.
type Sentiment string

// Known sentiments.
const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Common validation errors for Thought
var (
	ErrEmptyThoughtUserID  = errors.New("thought user ID cannot be empty")
	ErrEmptyThoughtContent = errors.New("thought content cannot be empty")
	ErrInvalidSentiment    = errors.New("invalid sentiment")
)

// Thought is an immutable free-text observation with a sentiment label.
type Thought struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	Sentiment Sentiment `json:"sentiment"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks if the Thought has valid data.
func (t *Thought) Validate() error {
	if t.UserID == uuid.Nil {
		return ErrEmptyThoughtUserID
	}
	if t.Content == "" {
		return ErrEmptyThoughtContent
	}
	if !t.Sentiment.Valid() {
		return ErrInvalidSentiment
	}
	return nil
}

// Valid reports whether s is a known sentiment.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	default:
		return false
	}
}

// Sentiments returns all known sentiments in tie-break priority order.
func Sentiments() []Sentiment {
	return []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral}
}
