package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrContentBlocked is returned when the model refuses the prompt on safety grounds.
	ErrContentBlocked = errors.New("content blocked by model safety filters")
)
