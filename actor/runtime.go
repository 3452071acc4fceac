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
	"fmt"
	"reflect"
	"time"

	"github.com/flowchartsman/retry"

	"github.com/troupekit/troupe/errors"
)

// Spawn starts an actor for behavior and returns its handle. PreStart
// runs synchronously, with retries, before Spawn returns: a returned
// cell is always a running actor. The actor only accepts messages
// assignable to M; everything else is rejected at the sender with
// ErrInvalidMessage.
func Spawn[M any](ctx context.Context, behavior Actor[M], opts ...SpawnOption) (*ActorCell, error) {
	cfg := newSpawnConfig(opts...)
	accepts := reflect.TypeOf((*M)(nil)).Elem()
	cell, ports := newActorCell(cfg.name, accepts)

	if cfg.supervisor != nil {
		cell.Link(cfg.supervisor)
	}

	// the loop outlives the spawn context
	loopCtx, cancel := context.WithCancel(context.Background())
	actorCtx := &Context{ctx: loopCtx, self: cell, logger: cfg.logger}

	cell.setStatus(StatusStarting)
	if err := runPreStart(ctx, actorCtx, behavior, cfg); err != nil {
		cell.setStatus(StatusStopped)
		cell.unlinkFromParents()
		ports.dispose()
		cancel()
		close(cell.stopped)
		return nil, errors.NewSpawnError(errors.NewErrInitFailure(err))
	}

	cell.setStatus(StatusRunning)
	started := &ActorStarted{cell: cell}
	cell.NotifySupervisors(started)
	cfg.publish(LifecycleTopic, started)
	runtimeMetrics.addSpawned(ctx)

	go runLoop(loopCtx, cancel, cell, ports, behavior, cfg, actorCtx)
	return cell, nil
}

// runPreStart attempts the PreStart hook up to the configured number
// of times inside the configured time box.
func runPreStart[M any](ctx context.Context, actorCtx *Context, behavior Actor[M], cfg *spawnConfig) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, cfg.initTimeout)
	defer cancel()

	retrier := retry.NewRetrier(cfg.initMaxRetries, 100*time.Millisecond, cfg.initTimeout)
	return retrier.RunContext(timeoutCtx, func(context.Context) error {
		return safeHook(actorCtx, behavior.PreStart)
	})
}

// runLoop is the actor's execution loop. It is the sole consumer of
// the actor's ports and drains them in strict priority order: signals
// first, then supervision events, then ordinary messages. The loop
// parks on the wakeup channels when all ports are empty.
func runLoop[M any](
	ctx context.Context,
	cancel context.CancelFunc,
	cell *ActorCell,
	ports *portSet,
	behavior Actor[M],
	cfg *spawnConfig,
	actorCtx *Context,
) {
	var (
		killed  bool
		reason  string
		failure error
	)
	supervisionHandler, _ := any(behavior).(SupervisionHandler)

loop:
	for {
		if sig, ok := ports.signals.tryRecv(); ok {
			killed = sig.kind == signalKill
			reason = sig.reason
			break loop
		}
		if event, ok := ports.supervision.tryRecv(); ok {
			handleSupervision(actorCtx, supervisionHandler, event)
			continue
		}
		if envelope, ok := ports.messages.tryRecv(); ok {
			if err := handleMessage(actorCtx, behavior, envelope); err != nil {
				killed = true
				reason = err.Error()
				failure = err
				break loop
			}
			runtimeMetrics.addReceived(ctx)
			continue
		}
		select {
		case <-ctx.Done():
			reason = ctx.Err().Error()
			break loop
		case <-ports.signals.wakeup:
		case <-ports.supervision.wakeup:
		case <-ports.messages.wakeup:
		}
	}

	shutdown(ctx, cancel, cell, ports, behavior, cfg, actorCtx, killed, reason, failure)
}

// shutdown runs the actor's teardown sequence: cascade termination to
// the subtree, run PostStop when stopping gracefully, deadletter the
// leftover inbox, then report exactly one ActorStopped to each
// supervisor before leaving the supervision graph.
func shutdown[M any](
	ctx context.Context,
	cancel context.CancelFunc,
	cell *ActorCell,
	ports *portSet,
	behavior Actor[M],
	cfg *spawnConfig,
	actorCtx *Context,
	killed bool,
	reason string,
	failure error,
) {
	cell.setStatus(StatusStopping)
	cell.Terminate(reason)

	if failure != nil {
		failed := &ActorFailed{cell: cell, err: failure}
		cell.NotifySupervisors(failed)
		cfg.publish(LifecycleTopic, failed)
		runtimeMetrics.addFailed(ctx)
		cfg.logger.Errorf("actor=(%s/%d) failed: %v", cell.Name(), cell.ID(), failure)
	}

	if !killed {
		if err := safeHook(actorCtx, behavior.PostStop); err != nil {
			cfg.logger.Errorf("actor=(%s/%d) postStop failed: %v", cell.Name(), cell.ID(), err)
		}
	}

	// Ports are closed before the drain so a sender racing past the
	// status check either fails its send or lands in the queue while we
	// are still emptying it. Nothing can be queued and left behind.
	ports.dispose()
	for {
		envelope, ok := ports.messages.tryRecv()
		if !ok {
			break
		}
		envelope.abandonReply()
		cfg.publish(DeadlettersTopic, &Deadletter{
			Cell:    cell,
			Message: envelope.Message(),
			Reason:  reason,
		})
		runtimeMetrics.addDeadletters(ctx)
	}

	cell.setStatus(StatusStopped)
	cancel()
	close(cell.stopped)

	stopped := &ActorStopped{cell: cell, reason: reason}
	cell.NotifySupervisors(stopped)
	cfg.publish(LifecycleTopic, stopped)
	runtimeMetrics.addStopped(ctx)

	cell.unlinkFromParents()
}

// handleMessage runs Receive for one envelope with panic isolation.
// The reply port, if any, is abandoned once the handler returns so an
// unanswered caller observes no-reply instead of hanging.
func handleMessage[M any](actorCtx *Context, behavior Actor[M], envelope *Envelope) (err error) {
	defer envelope.abandonReply()
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewPanicError(fmt.Errorf("%v", r))
		}
	}()
	return behavior.Receive(actorCtx, envelope.payload.(M))
}

// handleSupervision dispatches one lifecycle event from a linked child.
func handleSupervision(actorCtx *Context, handler SupervisionHandler, event SupervisionEvent) {
	if handler == nil {
		actorCtx.Logger().Debugf("actor=(%s/%d) unhandled supervision event %T from actor=(%s/%d)",
			actorCtx.Self().Name(), actorCtx.Self().ID(),
			event, event.Cell().Name(), event.Cell().ID())
		return
	}
	defer func() {
		if r := recover(); r != nil {
			actorCtx.Logger().Errorf("actor=(%s/%d) supervision handler panicked: %v",
				actorCtx.Self().Name(), actorCtx.Self().ID(), r)
		}
	}()
	handler.HandleSupervision(actorCtx, event)
}

// safeHook runs a lifecycle hook with panic isolation.
func safeHook(actorCtx *Context, hook func(*Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewPanicError(fmt.Errorf("%v", r))
		}
	}()
	return hook(actorCtx)
}
