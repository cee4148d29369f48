package slogx

import (
	"context"
	"log/slog"
	"sync"
)

type (
	loggerKey struct{}
	attrsKey  struct{}
)

// requestAttrs collects attributes discovered while a request is handled so
// the access log line written by HTTPMiddleware can carry them.
type requestAttrs struct {
	mu   sync.Mutex
	args []any
}

func (a *requestAttrs) add(args ...any) {
	a.mu.Lock()
	a.args = append(a.args, args...)
	a.mu.Unlock()
}

func (a *requestAttrs) snapshot() []any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]any(nil), a.args...)
}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the request logger, or the default logger outside a request.
func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// With returns ctx carrying a logger enriched with args. Inside HTTPMiddleware
// the args also end up on the request's access log line.
func With(ctx context.Context, args ...any) context.Context {
	if attrs, ok := ctx.Value(attrsKey{}).(*requestAttrs); ok {
		attrs.add(args...)
	}
	return WithContext(ctx, FromContext(ctx).With(args...))
}
