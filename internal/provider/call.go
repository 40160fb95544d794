package provider

import "context"

// Call runs fn on its own goroutine and returns early when ctx expires. The
// finance-go package takes no context, so without this wrapper a stalled
// upstream exchange would ignore the per-call deadline entirely. The goroutine
// is left to finish on its own; the buffered channel keeps it from leaking.
func Call[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type outcome struct {
		val T
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		v, err := fn()
		ch <- outcome{val: v, err: err}
	}()

	select {
	case out := <-ch:
		return out.val, out.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
