package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/scrollplot/pkg/observability"
)

// requestLogger logs one line per request and reports it to the HTTP hooks.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			hooks := observability.HTTP()
			hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			d := time.Since(start)
			hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, d)

			kv := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", d,
				"id", middleware.GetReqID(r.Context()),
			}
			if status >= http.StatusInternalServerError {
				logger.Error("request", kv...)
				return
			}
			logger.Debug("request", kv...)
		})
	}
}
