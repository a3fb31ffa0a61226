package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"regexp"
	"strconv"
	"time"
)

// ContextKey is the type of context keys set by the api packages.
type ContextKey string

const (
	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"

	// TraceIDHeader carries the trace ID on requests and responses.
	TraceIDHeader = "X-Trace-ID"

	// TraceIDLength is the number of random bytes in a generated trace ID.
	TraceIDLength = 16
)

var validTraceID = regexp.MustCompile(`^[A-Za-z0-9-]{8,64}$`)

// WithTraceID stores traceID in the context. An empty or malformed
// traceID is replaced by a generated one.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	if !validTraceID.MatchString(traceID) {
		traceID = generateTraceID()
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context, or "" if none is set.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// generateTraceID returns 32 hex characters. If the random source fails it
// falls back to the current time in nanoseconds.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if _, err := rand.Read(b); err != nil {
		slog.Error("failed to generate random trace ID", slog.String("error", err.Error()))
		return strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return hex.EncodeToString(b)
}
