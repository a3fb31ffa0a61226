package breaker

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrOpen is returned when the breaker refuses a call without attempting it.
var ErrOpen = errors.New("circuit breaker is open")

// State is the breaker's position in its state machine.
type State int

// Breaker states.
const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// Default configuration values.
const (
	DefaultFailureThreshold = 3
	DefaultRecoveryTimeout  = 5 * time.Second
	DefaultMaxAttempts      = 1
)

// Config holds breaker thresholds. Zero values fall back to the defaults.
type Config struct {
	FailureThreshold int           `mapstructure:"failure_threshold" validate:"gte=0"`
	RecoveryTimeout  time.Duration `mapstructure:"recovery_timeout" validate:"gte=0"`
	MaxAttempts      int           `mapstructure:"max_attempts" validate:"gte=0"`
}

func (c Config) withDefaults() Config {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = DefaultFailureThreshold
	}
	if c.RecoveryTimeout <= 0 {
		c.RecoveryTimeout = DefaultRecoveryTimeout
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	return c
}

// Option configures a CircuitBreaker.
type Option func(*CircuitBreaker)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(cb *CircuitBreaker) {
		cb.now = now
	}
}

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(cb *CircuitBreaker) {
		cb.logger = logger
	}
}

// WithName labels the breaker in log output.
func WithName(name string) Option {
	return func(cb *CircuitBreaker) {
		cb.name = name
	}
}

// CircuitBreaker guards calls to a dependency. It is safe for concurrent use;
// all callers share the same failure counter and state.
type CircuitBreaker struct {
	cfg    Config
	name   string
	now    func() time.Time
	logger *slog.Logger

	mu          sync.Mutex
	state       State
	failures    int
	lastFailure time.Time
}

// New creates a closed CircuitBreaker.
func New(cfg Config, opts ...Option) *CircuitBreaker {
	cb := &CircuitBreaker{
		cfg:    cfg.withDefaults(),
		name:   "default",
		now:    time.Now,
		logger: slog.Default(),
		state:  StateClosed,
	}
	for _, opt := range opts {
		opt(cb)
	}
	cb.logger = cb.logger.With("component", "circuit_breaker", "breaker", cb.name)
	return cb
}

// State returns the current state. An open breaker whose recovery timeout has
// elapsed still reports OPEN until the next call moves it to HALF_OPEN.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Failures returns the current failure count.
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failures
}

// Execute runs fn unless the breaker is open.
//
// On success the failure count resets and the breaker closes. On failure the
// count grows and the breaker opens once it reaches the threshold; fn's error
// is returned unchanged. When the breaker is open and the recovery timeout has
// not elapsed, Execute returns ErrOpen without calling fn.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	var err error
	for attempt := 1; attempt <= cb.cfg.MaxAttempts; attempt++ {
		if err = cb.allow(); err != nil {
			return err
		}

		err = fn()
		if err == nil {
			cb.onSuccess()
			return nil
		}

		if opened := cb.onFailure(err); opened {
			return err
		}
	}
	return err
}

// Call runs fn through cb and returns its result.
func Call[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(func() error {
		var err error
		result, err = fn()
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

func (cb *CircuitBreaker) allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return nil
	}
	if cb.now().Sub(cb.lastFailure) < cb.cfg.RecoveryTimeout {
		return ErrOpen
	}

	cb.setState(StateHalfOpen)
	return nil
}

func (cb *CircuitBreaker) onSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures = 0
	cb.lastFailure = time.Time{}
	if cb.state != StateClosed {
		cb.setState(StateClosed)
	}
}

// onFailure records a failure and reports whether the breaker is now open.
func (cb *CircuitBreaker) onFailure(err error) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailure = cb.now()

	if cb.failures >= cb.cfg.FailureThreshold {
		if cb.state != StateOpen {
			cb.logger.Warn("circuit breaker opened",
				"failures", cb.failures,
				"threshold", cb.cfg.FailureThreshold,
				"error", err)
		}
		cb.state = StateOpen
		return true
	}

	cb.logger.Debug("guarded call failed",
		"failures", cb.failures,
		"threshold", cb.cfg.FailureThreshold)
	return false
}

// setState must be called with mu held.
func (cb *CircuitBreaker) setState(next State) {
	prev := cb.state
	cb.state = next
	cb.logger.Info("circuit breaker state changed",
		"from", prev.String(),
		"to", next.String())
}
