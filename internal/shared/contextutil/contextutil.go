// Package contextutil carries request-scoped values (request id, user id,
// logger) through context.Context so the service and repository layers stay
// free of gin imports.
package contextutil

import (
	"context"

	"go.uber.org/zap"
)

// ctxKey is an unexported type so keys cannot collide with other packages.
type ctxKey int

const (
	requestIDKey ctxKey = iota
	userIDKey
	loggerKey
)

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey, uid)
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

func GetUserID(ctx context.Context) string {
	return stringValue(ctx, userIDKey)
}

// GetLogger returns the request-scoped logger when one was attached,
// otherwise defaultLogger, otherwise a nop logger. Callers never get nil.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	if defaultLogger != nil {
		return defaultLogger
	}
	return zap.NewNop()
}

func stringValue(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}
	s, _ := ctx.Value(key).(string)
	return s
}
