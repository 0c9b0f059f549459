package logging

import (
	"context"

	"go.uber.org/zap"
)

type requestCtxKey struct{}
type userCtxKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestCtxKey{}, id)
}

func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userCtxKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestCtxKey{}).(string)
	return id
}

// ContextFields extracts correlation data from ctx.
func ContextFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	fields := make([]zap.Field, 0, 2)
	if id := RequestIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("request.id", id))
	}
	if id, _ := ctx.Value(userCtxKey{}).(string); id != "" {
		fields = append(fields, zap.String("user.id", id))
	}
	return fields
}
