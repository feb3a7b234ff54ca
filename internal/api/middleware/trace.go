package middleware

import (
	"log/slog"
	"net/http"

	"github.com/matveyg/eisenhower-api/internal/api/shared"
)

// TraceMiddleware stamps each request context with a trace ID. It must sit
// early in the chain so every downstream handler and error response carries
// the same ID.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
