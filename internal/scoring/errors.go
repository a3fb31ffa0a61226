package scoring

import "errors"

// Common errors returned by scorers.
var (
	// ErrScoringFailed is returned when a score cannot be produced for any general reason.
	ErrScoringFailed = errors.New("failed to compute risk score")

	// ErrInvalidResponse is returned when a model response cannot be parsed or is malformed.
	ErrInvalidResponse = errors.New("invalid response from risk model")

	// ErrInvalidConfig is returned when the scorer configuration is invalid.
	ErrInvalidConfig = errors.New("invalid scorer configuration")
)
