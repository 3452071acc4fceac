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

// Envelope carries one message through an actor's message port together
// with its optional reply port. Casts travel with a nil reply.
type Envelope struct {
	payload any
	reply   replyAbandoner
}

// Message returns the payload carried by the envelope.
func (e *Envelope) Message() any {
	return e.payload
}

// abandonReply closes the envelope's reply port, if any, so an awaiting
// caller observes no-reply instead of hanging. Safe to call on casts.
func (e *Envelope) abandonReply() {
	if e.reply != nil {
		e.reply.abandon()
	}
}

// SupervisionEvent is a lifecycle notification delivered on the
// supervision port of a linked actor. The set of events is closed:
// ActorStarted, ActorStopped and ActorFailed.
type SupervisionEvent interface {
	supervisionEvent()
	// Cell returns the handle of the actor the event is about.
	Cell() *ActorCell
}

// ActorStarted reports that a supervised actor completed its PreStart
// hook and entered the Running status.
type ActorStarted struct {
	cell *ActorCell
}

// ActorStopped reports that a supervised actor terminated. Exactly one
// ActorStopped is delivered to each supervisor per terminated child.
type ActorStopped struct {
	cell   *ActorCell
	reason string
}

// ActorFailed reports that a supervised actor panicked while handling
// a message or a lifecycle hook.
type ActorFailed struct {
	cell *ActorCell
	err  error
}

// enforce compilation error
var (
	_ SupervisionEvent = (*ActorStarted)(nil)
	_ SupervisionEvent = (*ActorStopped)(nil)
	_ SupervisionEvent = (*ActorFailed)(nil)
)

func (*ActorStarted) supervisionEvent() {}
func (*ActorStopped) supervisionEvent() {}
func (*ActorFailed) supervisionEvent()  {}

// Cell returns the handle of the started actor.
func (e *ActorStarted) Cell() *ActorCell { return e.cell }

// Cell returns the handle of the stopped actor.
func (e *ActorStopped) Cell() *ActorCell { return e.cell }

// Reason returns the termination reason, when one was supplied.
func (e *ActorStopped) Reason() string { return e.reason }

// Cell returns the handle of the failed actor.
func (e *ActorFailed) Cell() *ActorCell { return e.cell }

// Err returns the failure cause.
func (e *ActorFailed) Err() error { return e.err }
