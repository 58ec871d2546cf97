// Package asset loads textures and models off the frame loop and hands them to
// it without blocking.
package asset

import (
	"context"
	"sync"
)

// Future is a value that becomes available once. The frame loop polls it;
// tools and tests may block on Wait.
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

// NewFuture returns an unresolved future and the function that resolves it.
// Only the first call to resolve has any effect.
func NewFuture[T any]() (*Future[T], func(T, error)) {
	f := &Future[T]{done: make(chan struct{})}
	return f, f.resolve
}

// Go runs fn in a new goroutine and resolves the future with its result.
func Go[T any](fn func() (T, error)) *Future[T] {
	f, resolve := NewFuture[T]()
	go func() {
		resolve(fn())
	}()
	return f
}

// Resolved returns a future that already holds value and err.
func Resolved[T any](value T, err error) *Future[T] {
	f, resolve := NewFuture[T]()
	resolve(value, err)
	return f
}

func (f *Future[T]) resolve(value T, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// Poll returns the result without blocking. ok is false while the future is
// unresolved.
func (f *Future[T]) Poll() (value T, ok bool, err error) {
	select {
	case <-f.done:
		return f.value, true, f.err
	default:
		return value, false, nil
	}
}

// Wait blocks until the future resolves or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed when the future resolves.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}
