// Package breaker provides a circuit breaker that guards a single unreliable
// dependency, fails fast after repeated failures and probes for recovery after
// a cooldown.
//
// A CircuitBreaker is an explicitly owned value: construct one per guarded
// dependency and pass it to the components that call that dependency.
package breaker
