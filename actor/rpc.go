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
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/troupekit/troupe/future"
)

// CallStatus is the outcome class of a call.
type CallStatus int

const (
	// CallSuccess means the callee replied within the deadline.
	CallSuccess CallStatus = iota
	// CallNoReply means the callee handled the message but never wrote
	// to the reply port.
	CallNoReply
	// CallTimeout means the deadline elapsed before a reply arrived.
	CallTimeout
)

// String implements fmt.Stringer.
func (s CallStatus) String() string {
	switch s {
	case CallSuccess:
		return "Success"
	case CallNoReply:
		return "NoReply"
	case CallTimeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// CallResult is the outcome of a call. Timeout and no-reply are
// ordinary outcomes of a distributed-style conversation, not errors:
// errors are reserved for messages that could not be delivered at all.
type CallResult[R any] struct {
	status CallStatus
	value  R
}

// Status returns the outcome class.
func (r *CallResult[R]) Status() CallStatus {
	return r.status
}

// Success reports whether the callee replied in time.
func (r *CallResult[R]) Success() bool {
	return r.status == CallSuccess
}

// Value returns the reply. It is the zero value unless Success.
func (r *CallResult[R]) Value() R {
	return r.value
}

// Cast sends message to cell without waiting for anything: delivery is
// fire-and-forget and ordered with respect to other casts from the
// same sender. The message must be assignable to the actor's accepted
// message type.
func Cast(cell *ActorCell, message any) error {
	return cell.sendEnvelope(&Envelope{payload: message})
}

// Call sends a request to cell and awaits one typed reply. makeMessage
// receives the single-use reply port and folds it into the outgoing
// message, so the callee can answer. Delivery failures come back as
// errors; once the message is delivered the result is always a
// CallResult, with timeout and no-reply as ordinary outcomes. A
// timeout of zero or less means wait indefinitely, bounded only by
// ctx.
func Call[R any](
	ctx context.Context,
	cell *ActorCell,
	makeMessage func(*ReplyPort[R]) any,
	timeout time.Duration,
) (*CallResult[R], error) {
	reply := newReplyPort[R]()
	envelope := &Envelope{payload: makeMessage(reply), reply: reply}
	if err := cell.sendEnvelope(envelope); err != nil {
		return nil, err
	}

	// a nil timer channel blocks forever
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case value, ok := <-reply.recv():
		if !ok {
			return &CallResult[R]{status: CallNoReply}, nil
		}
		return &CallResult[R]{status: CallSuccess, value: value}, nil
	case <-deadline:
		// a reply racing past this point loses; the callee's late Send
		// returns ErrReplyClosed instead of panicking
		reply.abandon()
		return &CallResult[R]{status: CallTimeout}, nil
	case <-ctx.Done():
		reply.abandon()
		return nil, ctx.Err()
	}
}

// CallAndForward calls cell and, on success, casts the mapped reply to
// forwardTo. The whole conversation runs on its own goroutine; the
// returned task resolves to the call outcome, carrying any delivery
// failure from either leg.
func CallAndForward[R any](
	ctx context.Context,
	cell *ActorCell,
	makeMessage func(*ReplyPort[R]) any,
	timeout time.Duration,
	forwardTo *ActorCell,
	forward func(R) any,
) *future.Task[*CallResult[R]] {
	return future.Go(ctx, func(ctx context.Context) (*CallResult[R], error) {
		result, err := Call(ctx, cell, makeMessage, timeout)
		if err != nil {
			return nil, err
		}
		if result.Success() {
			if err := Cast(forwardTo, forward(result.Value())); err != nil {
				return result, err
			}
		}
		return result, nil
	})
}

// MultiCall sends the same request to every cell concurrently and
// collects the outcomes in input order. The first delivery failure
// cancels the remaining calls and is returned; per-callee timeouts and
// no-replies land in their slots as ordinary outcomes.
func MultiCall[R any](
	ctx context.Context,
	cells []*ActorCell,
	makeMessage func(*ReplyPort[R]) any,
	timeout time.Duration,
) ([]*CallResult[R], error) {
	results := make([]*CallResult[R], len(cells))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, cell := range cells {
		i, cell := i, cell
		eg.Go(func() error {
			result, err := Call(egCtx, cell, makeMessage, timeout)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
