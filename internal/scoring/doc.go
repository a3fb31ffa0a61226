// Package scoring defines the boundary between the credit-limit engine and
// the risk-scoring model. A Scorer turns a user's signals inside a window
// into a risk score on the 0-850 scale. Implementations live here (the
// baseline model) and in internal/platform (external LLM-backed models), so
// the service layer never couples to a specific provider.
package scoring
