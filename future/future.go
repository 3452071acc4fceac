// MIT License
//
// Copyright (c) 2024-2026 Troupe Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package future provides a single-assignment value container and an
// abortable handle to already-running background work.
package future

import (
	"context"
	"sync"
)

// Future represents a value which may or may not currently be
// available, but will be available at some point, or an error if that
// value could not be made available.
type Future[T any] interface {
	// Await blocks until the Future is completed or context is canceled
	// and returns either a result or an error.
	Await(context.Context) (T, error)
}

// future implements the Future interface.
type future[T any] struct {
	acceptOnce   sync.Once
	completeOnce sync.Once
	done         chan any
	value        T
	err          error
}

// Verify future satisfies the Future interface.
var _ Future[int] = (*future[int])(nil)

// newFuture returns an incomplete future.
func newFuture[T any]() *future[T] {
	return &future[T]{
		done: make(chan any, 1),
	}
}

// wait blocks once, until the result is available or until the context
// is canceled.
func (x *future[T]) wait(ctx context.Context) {
	x.acceptOnce.Do(func() {
		select {
		case result := <-x.done:
			x.setResult(result)
		case <-ctx.Done():
			x.err = ctx.Err()
		}
	})
}

// setResult assigns a value to the future instance.
func (x *future[T]) setResult(result any) {
	switch value := result.(type) {
	case error:
		x.err = value
	default:
		x.value = value.(T)
	}
}

// Await blocks until the Future is completed or context is canceled and
// returns either a result or an error.
func (x *future[T]) Await(ctx context.Context) (T, error) {
	x.wait(ctx)
	return x.value, x.err
}

// complete completes the future with either a value or an error.
// Subsequent completions are ignored.
func (x *future[T]) complete(value T, err error) {
	x.completeOnce.Do(func() {
		if err != nil {
			x.done <- err
		} else {
			x.done <- value
		}
	})
}
