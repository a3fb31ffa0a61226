// Package gemini provides an implementation of the scoring.Scorer interface
// that asks Google's Gemini API for a risk score.
//
// This package is an infrastructure adapter: it translates a user's signals
// into a prompt, sends it to Gemini with a JSON response type, and parses the
// returned score. It does not retry and does not clamp. Failures are returned
// to the caller unchanged so the circuit breaker around the scorer can count
// them.
//
// Key components:
//
// 1. RiskScorer:
//   - Implements scoring.Scorer
//   - Applies a per-call timeout
//
// 2. Prompt Management:
//   - The prompt template is embedded in the binary
//   - The template is rendered from a scoring.Summary of the signals
//
// 3. Response Processing:
//   - Expects {"risk_score": n}
//   - Tolerates a fenced ```json block around the payload
package gemini
