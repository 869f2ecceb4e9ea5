package middleware

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
)

// TraceIDHeader carries the trace ID back to the client.
const TraceIDHeader = "X-Trace-ID"

// TraceMiddleware adds a trace ID to the request context and attaches a
// request-scoped logger carrying it. Apply it before any handler that logs.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			if reqID := middleware.GetReqID(ctx); reqID != "" {
				log = log.With(slog.String("request_id", reqID))
				ctx = logger.WithRequestID(ctx, reqID)
			}
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(TraceIDHeader, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
