// Package middleware provides HTTP middleware for the job search server.
package middleware

import (
	"net/http"
	"time"

	"github.com/JonMunkholm/techjobs/internal/logging"
	"github.com/go-chi/chi/v5/middleware"
)

// Logger logs one structured entry per request at a level chosen by the
// response status. The request ID is attached by logging.FromContext.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			ctx := r.Context()
			logging.FromContext(ctx).Log(ctx, logLevelFor(status), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"ip", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
