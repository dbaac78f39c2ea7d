package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_Success(t *testing.T) {
	t.Parallel()
	attempts := 0

	err := Do(context.Background(), func(_ context.Context, _ int) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	var seen []int

	err := Do(context.Background(), func(_ context.Context, attempt int) error {
		seen = append(seen, attempt)
		if attempt < 3 {
			return errors.New("temporary error")
		}
		return nil
	}, WithInitialDelay(5*time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestDo_MaxRetries(t *testing.T) {
	t.Parallel()
	attempts := 0

	err := Do(context.Background(), func(_ context.Context, _ int) error {
		attempts++
		return errors.New("persistent error")
	}, WithMaxRetries(3), WithInitialDelay(5*time.Millisecond))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 4 attempts")
	assert.Contains(t, err.Error(), "persistent error")
	assert.Equal(t, 4, attempts)
}

func TestDo_NoRetries(t *testing.T) {
	t.Parallel()
	sentinel := errors.New("boom")
	attempts := 0

	err := Do(context.Background(), func(_ context.Context, _ int) error {
		attempts++
		return sentinel
	}, WithMaxRetries(0))

	assert.Same(t, sentinel, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_ContextCancellation(t *testing.T) {
	t.Parallel()
	attempts := 0
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, func(_ context.Context, _ int) error {
		attempts++
		return errors.New("error")
	}, WithInitialDelay(10*time.Millisecond))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestDo_FatalError(t *testing.T) {
	t.Parallel()
	attempts := 0

	err := Do(context.Background(), func(_ context.Context, _ int) error {
		attempts++
		return Fatal(errors.New("fatal error"))
	}, WithInitialDelay(5*time.Millisecond))

	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.Equal(t, 1, attempts)
}

func TestDo_OnRetry(t *testing.T) {
	t.Parallel()
	var delays []time.Duration

	_ = Do(context.Background(), func(_ context.Context, _ int) error {
		return errors.New("error")
	},
		WithMaxRetries(3),
		WithInitialDelay(time.Millisecond),
		WithMaxDelay(3*time.Millisecond),
		WithOnRetry(func(_ int, _ error, d time.Duration) { delays = append(delays, d) }),
	)

	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond}, delays)
}

func TestFatal(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Fatal(nil))

	sentinel := errors.New("sentinel error")
	wrapped := fmt.Errorf("context: %w", Fatal(sentinel))
	assert.True(t, IsFatal(wrapped))
	assert.ErrorIs(t, wrapped, sentinel)
	assert.False(t, IsFatal(errors.New("regular error")))
}
