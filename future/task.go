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

package future

import (
	"context"
)

// Task is a handle to already-running background work. The caller may
// Await the result, Abort the work, or drop the handle to let the work
// run detached.
type Task[T any] struct {
	fut    *future[T]
	cancel context.CancelFunc
}

// Go runs fn in a new goroutine and returns a Task tracking its
// completion. The context handed to fn is canceled when Abort is
// called or when the parent context is canceled.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	taskCtx, cancel := context.WithCancel(ctx)
	task := &Task[T]{
		fut:    newFuture[T](),
		cancel: cancel,
	}
	go func() {
		defer cancel()
		value, err := fn(taskCtx)
		task.fut.complete(value, err)
	}()
	return task
}

// Await blocks until the task completes or the given context is
// canceled, and returns the task's result.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	return t.fut.Await(ctx)
}

// Abort cancels the task's context. The task result becomes whatever fn
// returns after observing the cancellation; aborting an already
// completed task is a no-op.
func (t *Task[T]) Abort() {
	t.cancel()
}
