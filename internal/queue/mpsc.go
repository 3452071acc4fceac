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

package queue

import (
	"sync/atomic"
)

// mpscNode is a single link of the MPSC queue.
type mpscNode[T any] struct {
	next  atomic.Pointer[mpscNode[T]]
	value T
}

// MPSC is an unbounded Multi-Producer-Single-Consumer FIFO queue.
//
// Any number of goroutines may call Push concurrently; exactly one
// goroutine may call Pop. Push never blocks and never fails. The queue
// starts with a stub node so producers append by swapping the head and
// linking through the previous node.
//
// reference: https://concurrencyfreaks.blogspot.com/2014/04/multi-producer-single-consumer-queue.html
type MPSC[T any] struct {
	head   atomic.Pointer[mpscNode[T]] // producers
	tail   atomic.Pointer[mpscNode[T]] // consumer only
	length atomic.Int64
}

// NewMPSC creates an empty MPSC queue.
func NewMPSC[T any]() *MPSC[T] {
	stub := new(mpscNode[T])
	q := new(MPSC[T])
	q.head.Store(stub)
	q.tail.Store(stub)
	return q
}

// Push appends value to the queue. Safe for concurrent producers,
// never blocks.
func (q *MPSC[T]) Push(value T) {
	n := &mpscNode[T]{value: value}
	prev := q.head.Swap(n)
	prev.next.Store(n)
	q.length.Add(1)
}

// Pop removes the oldest value from the queue. It returns false when the
// queue is empty. Must be called from the single consumer goroutine.
func (q *MPSC[T]) Pop() (T, bool) {
	var zero T
	tail := q.tail.Load()
	next := tail.next.Load()
	if next == nil {
		return zero, false
	}

	q.tail.Store(next)
	value := next.value
	next.value = zero
	q.length.Add(-1)
	return value, true
}

// Len returns the number of values currently queued. The value is a
// snapshot and may be stale under concurrent producers.
func (q *MPSC[T]) Len() int64 {
	return q.length.Load()
}

// IsEmpty reports whether the queue has no values. Must be called from
// the consumer goroutine.
func (q *MPSC[T]) IsEmpty() bool {
	return q.tail.Load().next.Load() == nil
}
