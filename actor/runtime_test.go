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
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/troupekit/troupe/errors"
	"github.com/troupekit/troupe/eventstream"
)

func TestSpawn(t *testing.T) {
	ctx := context.TODO()

	t.Run("With a running actor", func(t *testing.T) {
		cell, err := Spawn(ctx, new(echoActor), WithName("echo"), WithLogger(testLogger()))
		require.NoError(t, err)
		require.NotNil(t, cell)
		assert.Equal(t, StatusRunning, cell.Status())
		assert.Equal(t, "echo", cell.Name())

		require.NoError(t, Cast(cell, &echoRequest{text: "hello"}))

		cell.Stop("test over")
		waitForStop(t, cell)
		assert.Equal(t, StatusStopped, cell.Status())
	})

	t.Run("With sends rejected after stop", func(t *testing.T) {
		cell, err := Spawn(ctx, new(echoActor), WithLogger(testLogger()))
		require.NoError(t, err)
		cell.Stop("test over")
		waitForStop(t, cell)

		err = Cast(cell, &echoRequest{text: "too late"})
		assert.ErrorIs(t, err, errors.ErrDead)
	})

	t.Run("With failing PreStart", func(t *testing.T) {
		boom := stderrors.New("boom")
		attempts := atomic.NewInt32(0)
		behavior := NewFuncActor(
			func(*Context, any) error { return nil },
			WithPreStartFunc[any](func(*Context) error {
				attempts.Inc()
				return boom
			}),
		)

		cell, err := Spawn(ctx, behavior,
			WithLogger(testLogger()),
			WithInitMaxRetries(2),
			WithInitTimeout(time.Second))
		require.Error(t, err)
		assert.Nil(t, cell)
		assert.ErrorIs(t, err, errors.ErrInitFailure)
		assert.ErrorIs(t, err, boom)
		assert.GreaterOrEqual(t, attempts.Load(), int32(2))
	})

	t.Run("With panicking PreStart", func(t *testing.T) {
		behavior := NewFuncActor(
			func(*Context, any) error { return nil },
			WithPreStartFunc[any](func(*Context) error { panic("startup fire") }),
		)

		cell, err := Spawn(ctx, behavior,
			WithLogger(testLogger()),
			WithInitMaxRetries(1),
			WithInitTimeout(time.Second))
		require.Error(t, err)
		assert.Nil(t, cell)
		assert.ErrorIs(t, err, errors.ErrInitFailure)
	})
}

func TestStopRunsPostStop(t *testing.T) {
	ctx := context.TODO()
	ran := atomic.NewBool(false)
	behavior := NewFuncActor(
		func(*Context, any) error { return nil },
		WithPostStopFunc[any](func(*Context) error {
			ran.Store(true)
			return nil
		}),
	)

	cell, err := Spawn(ctx, behavior, WithLogger(testLogger()))
	require.NoError(t, err)
	cell.Stop("graceful")
	waitForStop(t, cell)
	assert.True(t, ran.Load())
}

func TestKillSkipsPostStop(t *testing.T) {
	ctx := context.TODO()
	ran := atomic.NewBool(false)
	behavior := NewFuncActor(
		func(*Context, any) error { return nil },
		WithPostStopFunc[any](func(*Context) error {
			ran.Store(true)
			return nil
		}),
	)

	cell, err := Spawn(ctx, behavior, WithLogger(testLogger()))
	require.NoError(t, err)
	cell.Kill()
	waitForStop(t, cell)
	assert.False(t, ran.Load())
}

func TestSupervisionEvents(t *testing.T) {
	ctx := context.TODO()

	t.Run("With started and stopped reported once", func(t *testing.T) {
		watcher := newWatcherActor()
		supervisor, err := Spawn(ctx, watcher, WithName("supervisor"), WithLogger(testLogger()))
		require.NoError(t, err)

		child, err := Spawn(ctx, new(echoActor),
			WithName("child"),
			WithLogger(testLogger()),
			WithSupervisor(supervisor))
		require.NoError(t, err)

		started := waitForEvent(t, watcher.events)
		require.IsType(t, (*ActorStarted)(nil), started)
		assert.True(t, started.Cell().Equals(child))

		child.Stop("done")
		waitForStop(t, child)

		stopped := waitForEvent(t, watcher.events)
		require.IsType(t, (*ActorStopped)(nil), stopped)
		assert.True(t, stopped.Cell().Equals(child))
		assert.Equal(t, "done", stopped.(*ActorStopped).Reason())

		// exactly one ActorStopped per termination
		select {
		case extra := <-watcher.events:
			t.Fatalf("unexpected extra supervision event %T", extra)
		case <-time.After(100 * time.Millisecond):
		}

		supervisor.Stop("done")
		waitForStop(t, supervisor)
	})

	t.Run("With panicking child reported as failed", func(t *testing.T) {
		watcher := newWatcherActor()
		supervisor, err := Spawn(ctx, watcher, WithLogger(testLogger()))
		require.NoError(t, err)

		ran := atomic.NewBool(false)
		child, err := Spawn(ctx, NewFuncActor(
			func(*Context, any) error { panic("handler fire") },
			WithPostStopFunc[any](func(*Context) error {
				ran.Store(true)
				return nil
			}),
		), WithLogger(testLogger()), WithSupervisor(supervisor))
		require.NoError(t, err)

		started := waitForEvent(t, watcher.events)
		require.IsType(t, (*ActorStarted)(nil), started)

		require.NoError(t, Cast(child, "trigger"))
		waitForStop(t, child)

		failed := waitForEvent(t, watcher.events)
		require.IsType(t, (*ActorFailed)(nil), failed)
		var panicErr *errors.PanicError
		assert.ErrorAs(t, failed.(*ActorFailed).Err(), &panicErr)

		stopped := waitForEvent(t, watcher.events)
		require.IsType(t, (*ActorStopped)(nil), stopped)

		// a failed actor is treated as killed
		assert.False(t, ran.Load())

		supervisor.Stop("done")
		waitForStop(t, supervisor)
	})

	t.Run("With receive error reported as failed", func(t *testing.T) {
		watcher := newWatcherActor()
		supervisor, err := Spawn(ctx, watcher, WithLogger(testLogger()))
		require.NoError(t, err)

		handlerErr := stderrors.New("cannot handle")
		child, err := Spawn(ctx, NewFuncActor(
			func(*Context, any) error { return handlerErr },
		), WithLogger(testLogger()), WithSupervisor(supervisor))
		require.NoError(t, err)

		started := waitForEvent(t, watcher.events)
		require.IsType(t, (*ActorStarted)(nil), started)

		require.NoError(t, Cast(child, "trigger"))
		waitForStop(t, child)

		failed := waitForEvent(t, watcher.events)
		require.IsType(t, (*ActorFailed)(nil), failed)
		assert.ErrorIs(t, failed.(*ActorFailed).Err(), handlerErr)

		supervisor.Stop("done")
		waitForStop(t, supervisor)
	})
}

func TestTerminateSubtree(t *testing.T) {
	ctx := context.TODO()

	parent, err := Spawn(ctx, newWatcherActor(), WithName("parent"), WithLogger(testLogger()))
	require.NoError(t, err)
	child, err := Spawn(ctx, new(echoActor),
		WithName("child"),
		WithLogger(testLogger()),
		WithSupervisor(parent))
	require.NoError(t, err)
	grandchild, err := Spawn(ctx, new(echoActor),
		WithName("grandchild"),
		WithLogger(testLogger()),
		WithSupervisor(child))
	require.NoError(t, err)

	parent.Stop("shutdown")
	waitForStop(t, parent)
	waitForStop(t, child)
	waitForStop(t, grandchild)

	assert.Equal(t, StatusStopped, parent.Status())
	assert.Equal(t, StatusStopped, child.Status())
	assert.Equal(t, StatusStopped, grandchild.Status())
}

// blockerActor parks on release after reporting that the first message
// arrived. It lets tests pin messages in the inbox.
type blockerActor struct {
	started chan struct{}
	release chan struct{}
}

var _ Actor[string] = (*blockerActor)(nil)

func (b *blockerActor) PreStart(*Context) error { return nil }
func (b *blockerActor) PostStop(*Context) error { return nil }

func (b *blockerActor) Receive(*Context, string) error {
	select {
	case b.started <- struct{}{}:
	default:
	}
	<-b.release
	return nil
}

func TestDeadletters(t *testing.T) {
	ctx := context.TODO()

	stream := eventstream.New()
	defer stream.Close()
	sub := stream.AddSubscriber()
	stream.Subscribe(sub, DeadlettersTopic)

	blocker := &blockerActor{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	cell, err := Spawn(ctx, blocker,
		WithName("blocker"),
		WithLogger(testLogger()),
		WithEventStream(stream))
	require.NoError(t, err)

	require.NoError(t, Cast(cell, "in flight"))
	<-blocker.started
	require.NoError(t, Cast(cell, "queued one"))
	require.NoError(t, Cast(cell, "queued two"))

	cell.Stop("draining")
	close(blocker.release)
	waitForStop(t, cell)

	var dead []*Deadletter
	for message := range sub.Iterator() {
		letter, ok := message.Payload().(*Deadletter)
		require.True(t, ok)
		dead = append(dead, letter)
	}
	require.Len(t, dead, 2)
	assert.Equal(t, "queued one", dead[0].Message)
	assert.Equal(t, "queued two", dead[1].Message)
	assert.Equal(t, "draining", dead[0].Reason)
	assert.True(t, dead[0].Cell.Equals(cell))
}

func TestLifecycleEventsPublished(t *testing.T) {
	ctx := context.TODO()

	stream := eventstream.New()
	defer stream.Close()
	sub := stream.AddSubscriber()
	stream.Subscribe(sub, LifecycleTopic)

	cell, err := Spawn(ctx, new(echoActor),
		WithLogger(testLogger()),
		WithEventStream(stream))
	require.NoError(t, err)
	cell.Stop("done")
	waitForStop(t, cell)

	var kinds []string
	for message := range sub.Iterator() {
		switch message.Payload().(type) {
		case *ActorStarted:
			kinds = append(kinds, "started")
		case *ActorStopped:
			kinds = append(kinds, "stopped")
		default:
			t.Fatalf("unexpected lifecycle payload %T", message.Payload())
		}
	}
	assert.Equal(t, []string{"started", "stopped"}, kinds)
}
