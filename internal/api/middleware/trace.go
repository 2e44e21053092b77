// Package middleware holds the chi-compatible HTTP middleware applied
// outside the pipeline.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/user-api/internal/api/shared"
)

// Trace attaches a trace ID to the request context and logs the request
// start. Apply it early in the chain so every later log line can carry the
// ID.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		slog.Debug("request started",
			slog.String("trace_id", shared.GetTraceID(ctx)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
