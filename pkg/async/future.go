package async

import "context"

// Future holds the result of a function running in its own goroutine.
type Future[T any] struct {
	result T
	err    error
	done   chan struct{}
}

// Go runs fn in a new goroutine and returns a Future for its result.
// If ctx is already cancelled fn is not called and the Future resolves with ctx.Err().
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.result, f.err = fn(ctx)
	}()

	return f
}

// Await blocks until the function finishes or ctx is done, whichever comes first.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed once the function has returned.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// WaitAll waits for every future and returns their results in order.
// All futures are awaited even when one fails; the first error is returned.
func WaitAll[T any](ctx context.Context, futures ...*Future[T]) ([]T, error) {
	if len(futures) == 0 {
		return nil, ErrNoFutures
	}

	results := make([]T, len(futures))
	var firstErr error
	for i, f := range futures {
		res, err := f.Await(ctx)
		results[i] = res
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return results, firstErr
}
