package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"paperquery/internal/logger"
	"paperquery/internal/retry"
)

func TestDo_AttemptBound(t *testing.T) {
	attempts := 0
	boom := errors.New("boom")

	_, err := retry.Do(context.Background(), "always-fails", retry.Config{MaxRetries: 3},
		func(ctx context.Context) (int, error) {
			attempts++
			return 0, boom
		})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 4, attempts, "maxRetries+1 total attempts")
}

func TestDo_SucceedsMidway(t *testing.T) {
	attempts := 0

	v, err := retry.Do(context.Background(), "flaky", retry.Config{MaxRetries: 3},
		func(ctx context.Context) (string, error) {
			attempts++
			if attempts < 3 {
				return "", errors.New("transient")
			}
			return "done", nil
		})

	assert.NoError(t, err)
	assert.Equal(t, "done", v)
	assert.Equal(t, 3, attempts)
}

func TestDo_FirstAttemptSuccess(t *testing.T) {
	v, err := retry.Do(context.Background(), "steady", retry.Config{MaxRetries: 3},
		func(ctx context.Context) (int, error) {
			return 7, nil
		})

	assert.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestDo_OperationOnContext(t *testing.T) {
	var seen string
	_, _ = retry.Do(context.Background(), "labelled-op", retry.Config{MaxRetries: 0},
		func(ctx context.Context) (int, error) {
			seen = logger.Operation(ctx)
			return 0, nil
		})

	assert.Equal(t, "labelled-op", seen)
}

func TestDo_ContextCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := retry.Do(ctx, "cancelled", retry.Config{MaxRetries: 5, Delay: time.Minute},
			func(ctx context.Context) (int, error) {
				attempts++
				return 0, errors.New("transient")
			})
		assert.ErrorIs(t, err, context.Canceled)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("retry did not observe cancellation")
	}
	assert.Equal(t, 1, attempts)
}
