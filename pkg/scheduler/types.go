package scheduler

import (
	"context"
)

type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

type Future[T any] struct {
	input  chan T
	cancel context.CancelFunc
}

func NewFuture[T any](input chan T, cancel context.CancelFunc) *Future[T] {
	f := &Future[T]{
		input:  input,
		cancel: cancel,
	}

	return f
}

func (f *Future[T]) C() chan T {
	return f.input
}

func (f *Future[T]) Stop() {
	f.cancel()
}

// Wait blocks until the future delivers its result or ctx is done. In the latter case the
// work is stopped and the result carries ctx's error.
func Wait[T any](ctx context.Context, f *Future[Result[T]]) Result[T] {
	select {
	case r := <-f.C():
		return r
	case <-ctx.Done():
		f.Stop()
		return Result[T]{Err: ctx.Err()}
	}
}
