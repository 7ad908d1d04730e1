// Package retry runs an operation with bounded retries and a fixed delay
// between attempts. The operation name is passed per call and travels on the
// context, so concurrent call sites never share label state.
package retry

import (
	"context"
	"log/slog"
	"time"

	"paperquery/internal/logger"
)

type Config struct {
	MaxRetries int
	Delay      time.Duration
}

// Do invokes fn up to MaxRetries+1 times, sleeping Delay between attempts.
// On exhaustion the last error is returned.
func Do[T any](ctx context.Context, operation string, cfg Config, fn func(context.Context) (T, error)) (T, error) {
	ctx = logger.WithOperation(ctx, operation)

	var zero T
	var lastErr error
	attempts := cfg.MaxRetries + 1

	for attempt := 1; attempt <= attempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if attempt == attempts {
			slog.ErrorContext(ctx, "max retries reached", "attempts", attempts, "error", err)
			break
		}

		slog.WarnContext(ctx, "attempt failed, retrying",
			"attempt", attempt, "max_retries", cfg.MaxRetries, "error", err)

		select {
		case <-time.After(cfg.Delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, lastErr
}
