package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"
)

// ContextKey is the type for context values set by this package.
type ContextKey string

// TraceIDKey is the key for the trace ID in the request context.
const TraceIDKey ContextKey = "traceID"

// traceIDLength is the number of random bytes in a trace ID (32 hex chars).
const traceIDLength = 16

// SetTraceID adds a fresh trace ID to the context, used to correlate log
// lines and error responses belonging to one request.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID creates a random trace ID. If crypto/rand fails it falls
// back to a timestamp-derived value rather than ever returning a constant.
func generateTraceID() string {
	b := make([]byte, traceIDLength)
	if n, err := rand.Read(b); err != nil || n != traceIDLength {
		binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
		binary.BigEndian.PutUint64(b[8:], uint64(time.Now().Unix()))
	}
	return hex.EncodeToString(b)
}
