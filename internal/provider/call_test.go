package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCall(t *testing.T) {
	t.Run("returns the function's value", func(t *testing.T) {
		got, err := Call(context.Background(), func() (int, error) {
			return 42, nil
		})
		require.NoError(t, err)
		require.Equal(t, 42, got)
	})

	t.Run("returns the function's error", func(t *testing.T) {
		wantErr := errors.New("upstream said no")
		_, err := Call(context.Background(), func() (string, error) {
			return "", wantErr
		})
		require.ErrorIs(t, err, wantErr)
	})

	t.Run("deadline cuts off a hung call", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		block := make(chan struct{})
		defer close(block)

		started := time.Now()
		_, err := Call(ctx, func() (int, error) {
			<-block
			return 0, nil
		})
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.Less(t, time.Since(started), 2*time.Second)
	})

	t.Run("cancellation cuts off a hung call", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		block := make(chan struct{})
		defer close(block)

		_, err := Call(ctx, func() (int, error) {
			<-block
			return 0, nil
		})
		require.ErrorIs(t, err, context.Canceled)
	})
}
