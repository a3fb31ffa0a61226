package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/domain"
)

// Signal type keys. They are the broker message key and the brain-data path segment.
const (
	SignalTypeEmotion = "emotion"
	SignalTypeThought = "thought"
)

var (
	// ErrUnknownSignalType is returned for a signal type with no handler.
	ErrUnknownSignalType = fmt.Errorf("%w: unknown signal type", domain.ErrValidation)

	// ErrInvalidPayload is returned when a payload cannot be decoded or fails validation.
	ErrInvalidPayload = fmt.Errorf("%w: invalid signal payload", domain.ErrValidation)
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// EmotionPayload is the wire form of an emotion signal.
type EmotionPayload struct {
	ID          uuid.UUID          `json:"id"`
	UserID      uuid.UUID          `json:"user_id" validate:"required"`
	EmotionType domain.EmotionType `json:"emotion_type" validate:"required,oneof=happy sad stressed anxious"`
	Intensity   int                `json:"intensity" validate:"min=1,max=10"`
	CreatedAt   Timestamp          `json:"created_at"`
}

// Emotion converts the payload to a domain entity.
func (p *EmotionPayload) Emotion() *domain.Emotion {
	return &domain.Emotion{
		ID:          p.ID,
		UserID:      p.UserID,
		EmotionType: p.EmotionType,
		Intensity:   p.Intensity,
		CreatedAt:   p.CreatedAt.Time,
	}
}

// ThoughtPayload is the wire form of a thought signal.
type ThoughtPayload struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id" validate:"required"`
	Content   string           `json:"content" validate:"required"`
	Sentiment domain.Sentiment `json:"sentiment" validate:"required,oneof=positive negative neutral"`
	CreatedAt Timestamp        `json:"created_at"`
}

// Thought converts the payload to a domain entity.
func (p *ThoughtPayload) Thought() *domain.Thought {
	return &domain.Thought{
		ID:        p.ID,
		UserID:    p.UserID,
		Content:   p.Content,
		Sentiment: p.Sentiment,
		CreatedAt: p.CreatedAt.Time,
	}
}

// ParseEmotion decodes and validates an emotion payload. A missing id gets a
// new UUID and a missing created_at becomes the current time.
func ParseEmotion(data []byte) (*EmotionPayload, error) {
	var p EmotionPayload
	if err := decode(data, &p); err != nil {
		return nil, err
	}
	p.ID, p.CreatedAt = fillDefaults(p.ID, p.CreatedAt)
	return &p, nil
}

// ParseThought decodes and validates a thought payload with the same
// defaults as ParseEmotion.
func ParseThought(data []byte) (*ThoughtPayload, error) {
	var p ThoughtPayload
	if err := decode(data, &p); err != nil {
		return nil, err
	}
	p.ID, p.CreatedAt = fillDefaults(p.ID, p.CreatedAt)
	return &p, nil
}

// Parse decodes a payload of the given signal type. The result is an
// *EmotionPayload or a *ThoughtPayload.
func Parse(signalType string, data []byte) (any, error) {
	switch signalType {
	case SignalTypeEmotion:
		return ParseEmotion(data)
	case SignalTypeThought:
		return ParseThought(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSignalType, signalType)
	}
}

func decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %s validation", ErrInvalidPayload, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

func fillDefaults(id uuid.UUID, createdAt Timestamp) (uuid.UUID, Timestamp) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	if createdAt.IsZero() {
		createdAt = Timestamp{Time: time.Now().UTC()}
	}
	return id, createdAt
}
