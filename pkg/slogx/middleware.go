package slogx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Kareem09qyu/Okta/pkg/idx"
)

const RequestIDHeader = "X-Request-ID"

// HTTPMiddleware gives every request a logger tagged with its request id and
// writes one http_request line when the handler returns. Server errors are
// logged at warn level so they stand out from normal traffic.
func HTTPMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			reqID := idx.FromHeader(r.Header.Get(RequestIDHeader))
			rec.Header().Set(RequestIDHeader, reqID.String())

			logger := base.With(
				"req_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
			)

			attrs := &requestAttrs{}
			ctx := context.WithValue(r.Context(), attrsKey{}, attrs)
			next.ServeHTTP(rec, r.WithContext(WithContext(ctx, logger)))

			level := slog.LevelInfo
			if rec.status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}

			args := append(attrs.snapshot(),
				"status", rec.status,
				"bytes", rec.bytes,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
			logger.Log(r.Context(), level, "http_request", args...)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter

	status      int
	bytes       int
	wroteHeader bool
}

func (rec *statusRecorder) WriteHeader(code int) {
	if !rec.wroteHeader {
		rec.status = code
		rec.wroteHeader = true
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	rec.wroteHeader = true
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}
