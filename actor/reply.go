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

package actor

import (
	"sync"

	"github.com/troupekit/troupe/errors"
)

// ReplyPort is the single-use response channel of a call. The handler
// side sends at most one value; the caller side awaits it with a
// deadline. Exactly one of Send and abandon wins: a late Send after
// the caller gave up returns ErrReplyClosed instead of panicking.
type ReplyPort[T any] struct {
	once *sync.Once
	ch   chan T
}

// newReplyPort creates a reply port ready for exactly one Send.
func newReplyPort[T any]() *ReplyPort[T] {
	return &ReplyPort[T]{
		once: new(sync.Once),
		ch:   make(chan T, 1),
	}
}

// Send completes the port with value. The first call wins; every
// subsequent call, and any call after the port was abandoned, returns
// ErrReplyClosed. Send never blocks.
func (r *ReplyPort[T]) Send(value T) error {
	sent := false
	r.once.Do(func() {
		r.ch <- value
		close(r.ch)
		sent = true
	})
	if !sent {
		return errors.ErrReplyClosed
	}
	return nil
}

// abandon closes the port without a value. The awaiting caller
// observes a closed channel and reports no reply.
func (r *ReplyPort[T]) abandon() {
	r.once.Do(func() {
		close(r.ch)
	})
}

// recv exposes the receive side to the caller.
func (r *ReplyPort[T]) recv() <-chan T {
	return r.ch
}

// replyAbandoner lets the runtime abandon a pending reply without
// knowing its concrete type parameter.
type replyAbandoner interface {
	abandon()
}

var _ replyAbandoner = (*ReplyPort[any])(nil)
