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
	"reflect"

	"go.uber.org/atomic"

	"github.com/troupekit/troupe/errors"
	"github.com/troupekit/troupe/internal/types"
)

// ActorCell is the shareable handle of a live actor. It owns the
// sending ends of the actor's three inbox ports, its status register
// and its position in the supervision graph. Cells are cheap to copy
// around by pointer; every holder talks to the same actor.
//
// All cell operations are safe for concurrent use. None of them block:
// sends enqueue, signals fail fast when the bounded signal port is
// full, and termination is fire-and-forget.
type ActorCell struct {
	id      ActorID
	name    string
	status  *atomic.Uint32
	accepts reflect.Type
	ports   *portSet
	tree    *supervisionTree
	stopped chan types.Unit
}

// newActorCell creates a cell with fresh ports in the Unstarted status.
// The returned portSet is the receiving side; it is handed exactly once
// to the actor's execution loop.
func newActorCell(name string, accepts reflect.Type) (*ActorCell, *portSet) {
	ports := &portSet{
		signals:     newSignalPort(),
		supervision: newPort[SupervisionEvent](),
		messages:    newPort[*Envelope](),
	}
	cell := &ActorCell{
		id:      nextActorID(),
		name:    name,
		status:  atomic.NewUint32(uint32(StatusUnstarted)),
		accepts: accepts,
		ports:   ports,
		tree:    newSupervisionTree(),
		stopped: make(chan types.Unit),
	}
	return cell, ports
}

// ID returns the actor's process-unique identifier.
func (c *ActorCell) ID() ActorID {
	return c.id
}

// Name returns the actor's name. Names are informational and need not
// be unique.
func (c *ActorCell) Name() string {
	return c.name
}

// Status returns the actor's current lifecycle status.
func (c *ActorCell) Status() ActorStatus {
	return ActorStatus(c.status.Load())
}

// setStatus publishes a new lifecycle status.
func (c *ActorCell) setStatus(status ActorStatus) {
	c.status.Store(uint32(status))
}

// IsActive reports whether the actor still accepts interaction.
func (c *ActorCell) IsActive() bool {
	return c.Status().Active()
}

// Equals reports whether both handles refer to the same actor.
func (c *ActorCell) Equals(other *ActorCell) bool {
	return other != nil && c.id == other.id
}

// Done returns a channel closed when the actor has fully stopped. It is
// the blocking companion of the fire-and-forget Stop and Kill.
func (c *ActorCell) Done() <-chan types.Unit {
	return c.stopped
}

// Stop asks the actor to shut down gracefully: finish the in-flight
// message, run PostStop, then report termination. Fire-and-forget; a
// full signal queue means a stop is already on its way and counts as
// success. Stopping a dead actor is a no-op.
func (c *ActorCell) Stop(reason string) {
	c.sendSignal(signal{kind: signalExit, reason: reason})
}

// Kill terminates the actor immediately after the in-flight message,
// skipping PostStop. Fire-and-forget, same delivery semantics as Stop.
func (c *ActorCell) Kill() {
	c.sendSignal(signal{kind: signalKill, reason: "killed"})
}

func (c *ActorCell) sendSignal(sig signal) {
	// ErrSignalQueueFull and ErrDead both mean the actor is already on
	// its way out, which is the outcome the caller asked for.
	_ = c.ports.signals.send(sig)
}

// Terminate stops this actor and cascades the termination request to
// every actor below it in the supervision tree. Each descendant gets a
// graceful Exit signal and runs its PostStop hook; the request is only
// injected, never awaited. A visited set keyed by actor id guards
// against cycles in the graph.
func (c *ActorCell) Terminate(reason string) {
	c.terminate(reason, map[ActorID]types.Unit{})
}

func (c *ActorCell) terminate(reason string, visited map[ActorID]types.Unit) {
	if _, seen := visited[c.id]; seen {
		return
	}
	visited[c.id] = types.Unit{}

	// Only actors that have not begun stopping get the signal; the
	// cascade still walks through them either way so a dying parent
	// cannot shield a living subtree.
	if c.Status() <= StatusUpgrading {
		c.Stop(reason)
	}
	c.terminateChildren(visited)
}

// terminateChildren cascades a kill through the supervision subtree.
func (c *ActorCell) terminateChildren(visited map[ActorID]types.Unit) {
	for _, child := range c.tree.childrenSlice() {
		child.terminate("parent terminated", visited)
	}
}

// Link places c under supervisor: the supervisor will receive the
// lifecycle events of c, and terminating the supervisor cascades to c.
// Both directions of the edge are recorded. Linking an already linked
// pair is a no-op.
func (c *ActorCell) Link(supervisor *ActorCell) {
	if supervisor == nil || c.Equals(supervisor) {
		return
	}
	supervisor.tree.insertChild(c)
	c.tree.insertParent(supervisor)
}

// Unlink removes the supervision edge between c and supervisor. Both
// directions are removed; unlinking a pair that was never linked is a
// no-op.
func (c *ActorCell) Unlink(supervisor *ActorCell) {
	if supervisor == nil {
		return
	}
	supervisor.tree.removeChild(c)
	c.tree.removeParent(supervisor)
}

// Parents snapshots the supervisors currently watching this actor.
func (c *ActorCell) Parents() []*ActorCell {
	return c.tree.parentsSlice()
}

// Children snapshots the actors this actor currently supervises.
func (c *ActorCell) Children() []*ActorCell {
	return c.tree.childrenSlice()
}

// sendEnvelope validates the payload against the actor's accepted
// message type and enqueues it on the message port.
func (c *ActorCell) sendEnvelope(envelope *Envelope) error {
	if !c.IsActive() && c.Status() != StatusUnstarted {
		return errors.ErrDead
	}
	if err := c.checkAccepts(envelope.payload); err != nil {
		return err
	}
	return c.ports.messages.send(envelope)
}

func (c *ActorCell) checkAccepts(payload any) error {
	payloadType := reflect.TypeOf(payload)
	if payloadType == nil {
		// untyped nil only fits an interface-typed inbox
		if c.accepts.Kind() == reflect.Interface {
			return nil
		}
		return errors.ErrInvalidMessage
	}
	if !payloadType.AssignableTo(c.accepts) {
		return errors.ErrInvalidMessage
	}
	return nil
}

// SendSupervisionEvent delivers a lifecycle event to this actor's
// supervision port. Delivery fails with ErrDead once the actor's loop
// has exited.
func (c *ActorCell) SendSupervisionEvent(event SupervisionEvent) error {
	return c.ports.supervision.send(event)
}

// NotifySupervisors fans event out to every current parent. Delivery
// failures are ignored: a dead supervisor has nothing left to do with
// the news.
func (c *ActorCell) NotifySupervisors(event SupervisionEvent) {
	for _, parent := range c.tree.parentsSlice() {
		_ = parent.SendSupervisionEvent(event)
	}
}

// unlinkFromParents removes this actor from the supervision graph on
// its way out, after the final ActorStopped has been dispatched.
func (c *ActorCell) unlinkFromParents() {
	for _, parent := range c.tree.parentsSlice() {
		c.Unlink(parent)
	}
}
