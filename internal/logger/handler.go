package logger

import (
	"context"
	"log/slog"
)

type key int

const operationKey key = 0

// WithOperation labels everything logged under ctx with an operation name.
// The label travels as a context value, so concurrent workers each carry
// their own without sharing mutable state.
func WithOperation(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operationKey, name)
}

func Operation(ctx context.Context) string {
	if name, ok := ctx.Value(operationKey).(string); ok {
		return name
	}
	return ""
}

// ContextHandler decorates an slog.Handler, stamping each record with the
// operation name carried by the context.
type ContextHandler struct {
	slog.Handler
}

func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{Handler: h}
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if name, ok := ctx.Value(operationKey).(string); ok && name != "" {
		r.AddAttrs(slog.String("operation", name))
	}
	return h.Handler.Handle(ctx, r)
}
