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
	gods "github.com/Workiva/go-datastructures/queue"
	"go.uber.org/atomic"

	"github.com/troupekit/troupe/errors"
	"github.com/troupekit/troupe/internal/queue"
	"github.com/troupekit/troupe/internal/types"
)

// signalPortCapacity bounds the signal port. The small capacity is the
// priority mechanism: a full queue means the actor is already being
// told to die, so further signals are dropped instead of blocking the
// sender.
const signalPortCapacity = 2

// signalPort is the bounded, high-priority control channel of an
// actor's inbox. Sends fail fast; they never block.
type signalPort struct {
	buffer *gods.RingBuffer
	wakeup chan types.Unit
}

func newSignalPort() *signalPort {
	return &signalPort{
		buffer: gods.NewRingBuffer(signalPortCapacity),
		wakeup: make(chan types.Unit, 1),
	}
}

// send offers sig to the port. It returns ErrSignalQueueFull when the
// port is at capacity and ErrDead when the port has been disposed.
func (p *signalPort) send(sig signal) error {
	ok, err := p.buffer.Offer(sig)
	if err != nil {
		return errors.ErrDead
	}
	if !ok {
		return errors.ErrSignalQueueFull
	}
	p.wake()
	return nil
}

// tryRecv removes the next signal without blocking. Single consumer.
func (p *signalPort) tryRecv() (signal, bool) {
	if p.buffer.Len() > 0 {
		item, err := p.buffer.Get()
		if err != nil {
			return signal{}, false
		}
		return item.(signal), true
	}
	return signal{}, false
}

func (p *signalPort) wake() {
	select {
	case p.wakeup <- types.Unit{}:
	default:
	}
}

func (p *signalPort) dispose() {
	p.buffer.Dispose()
}

// port is an unbounded inbox channel. Producers never block; the
// single consumer polls tryRecv and parks on wakeup when empty.
type port[T any] struct {
	queue  *queue.MPSC[T]
	wakeup chan types.Unit
	closed *atomic.Bool
}

func newPort[T any]() *port[T] {
	return &port[T]{
		queue:  queue.NewMPSC[T](),
		wakeup: make(chan types.Unit, 1),
		closed: atomic.NewBool(false),
	}
}

// send enqueues item. It returns ErrDead once the port is closed. The
// closed flag is re-checked after the enqueue: a sender racing with
// close must never report success for an item the consumer may no
// longer drain, though the final drain can still pick it up.
func (p *port[T]) send(item T) error {
	if p.closed.Load() {
		return errors.ErrDead
	}
	p.queue.Push(item)
	if p.closed.Load() {
		return errors.ErrDead
	}
	p.wake()
	return nil
}

// tryRecv removes the next item without blocking. Single consumer.
func (p *port[T]) tryRecv() (T, bool) {
	return p.queue.Pop()
}

func (p *port[T]) wake() {
	select {
	case p.wakeup <- types.Unit{}:
	default:
	}
}

// close marks the port dead. Items still queued can be drained by the
// consumer; new sends fail with ErrDead.
func (p *port[T]) close() {
	p.closed.Store(true)
}

// portSet bundles the receiving ends of an actor's three inbox
// channels. It is created once per actor and handed, once, to the
// actor's execution loop. The sending ends live on the ActorCell.
type portSet struct {
	signals     *signalPort
	supervision *port[SupervisionEvent]
	messages    *port[*Envelope]
}

// dispose closes every port. Messages left on the message port are
// drained by the loop for deadletter reporting before dispose.
func (ps *portSet) dispose() {
	ps.signals.dispose()
	ps.supervision.close()
	ps.messages.close()
}
