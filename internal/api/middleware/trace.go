package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/nahiid-dev/VoyageCraft/internal/api/shared"
)

// Trace adds a trace ID to the request context and logs request start and
// completion. Apply it early in the chain so every handler and error
// response can carry the trace ID.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		log := slog.With(slog.String("trace_id", shared.GetTraceID(ctx)))

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))

		log.Debug("request finished",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)))
	})
}
