package gemini

import "github.com/mindcredit/mindcredit-api/internal/scoring"

// promptData represents the data passed to the prompt template
type promptData struct {
	scoring.Summary
	MinScore int
	MaxScore int
}

// ResponseSchema is the JSON payload the model is instructed to return.
type ResponseSchema struct {
	// RiskScore is nil when the field is missing from the response.
	RiskScore *int `json:"risk_score"`
}
