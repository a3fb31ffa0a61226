package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// EmotionType is the category of an observed emotion.
type EmotionType string

// Known emotion types.
const (
	EmotionHappy    EmotionType = "happy"
	EmotionSad      EmotionType = "sad"
	EmotionStressed EmotionType = "stressed"
	EmotionAnxious  EmotionType = "anxious"
)

// Intensity bounds for recorded emotions.
const (
	MinEmotionIntensity = 1
	MaxEmotionIntensity = 10
)

// Common validation errors for Emotion
var (
	ErrEmptyEmotionUserID      = errors.New("emotion user ID cannot be empty")
	ErrInvalidEmotionType      = errors.New("invalid emotion type")
	ErrInvalidEmotionIntensity = errors.New("emotion intensity must be between 1 and 10")
)

// Emotion is an immutable observation of a user's emotional state.
type Emotion struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	EmotionType EmotionType `json:"emotion_type"`
	Intensity   int         `json:"intensity"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Validate checks if the Emotion has valid data.
func (e *Emotion) Validate() error {
	if e.UserID == uuid.Nil {
		return ErrEmptyEmotionUserID
	}
	if !e.EmotionType.Valid() {
		return ErrInvalidEmotionType
	}
	if e.Intensity < MinEmotionIntensity || e.Intensity > MaxEmotionIntensity {
		return ErrInvalidEmotionIntensity
	}
	return nil
}

// Valid reports whether t is a known emotion type.
func (t EmotionType) Valid() bool {
	switch t {
	case EmotionHappy, EmotionSad, EmotionStressed, EmotionAnxious:
		return true
	default:
		return false
	}
}

// EmotionTypes returns all known emotion types.
func EmotionTypes() []EmotionType {
	return []EmotionType{EmotionHappy, EmotionSad, EmotionStressed, EmotionAnxious}
}
