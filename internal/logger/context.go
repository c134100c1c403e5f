package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

var requestIDKey ctxKey

// WithRequestID stores the request id for FromCtx to pick up.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFrom returns the request id carried by ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// FromCtx returns the global logger, tagged with the request id when the
// context carries one.
func FromCtx(ctx context.Context) *zap.Logger {
	id := RequestIDFrom(ctx)
	if id == "" {
		return L()
	}
	return L().With(zap.String("request_id", id))
}
