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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troupekit/troupe/errors"
)

func spawnEcho(t *testing.T, name string) *ActorCell {
	t.Helper()
	cell, err := Spawn(context.TODO(), new(echoActor), WithName(name), WithLogger(testLogger()))
	require.NoError(t, err)
	t.Cleanup(func() {
		cell.Stop("test over")
		waitForStop(t, cell)
	})
	return cell
}

func TestCast(t *testing.T) {
	ctx := context.TODO()

	t.Run("With messages delivered in order", func(t *testing.T) {
		received := make(chan string, 10)
		cell, err := Spawn(ctx, NewFuncActor(
			func(_ *Context, message string) error {
				received <- message
				return nil
			},
		), WithLogger(testLogger()))
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			require.NoError(t, Cast(cell, fmt.Sprintf("message-%d", i)))
		}
		for i := 0; i < 5; i++ {
			assert.Equal(t, fmt.Sprintf("message-%d", i), <-received)
		}

		cell.Stop("test over")
		waitForStop(t, cell)
	})

	t.Run("With mismatched message rejected", func(t *testing.T) {
		cell := spawnEcho(t, "typed")
		err := Cast(cell, 42)
		assert.ErrorIs(t, err, errors.ErrInvalidMessage)
	})
}

func TestCall(t *testing.T) {
	ctx := context.TODO()

	t.Run("With a successful reply", func(t *testing.T) {
		cell := spawnEcho(t, "echo")
		result, err := Call(ctx, cell, func(reply *ReplyPort[string]) any {
			return &echoRequest{text: "ping", reply: reply}
		}, replyTimeout)
		require.NoError(t, err)
		assert.Equal(t, CallSuccess, result.Status())
		assert.True(t, result.Success())
		assert.Equal(t, "ping", result.Value())
	})

	t.Run("With no reply written by the handler", func(t *testing.T) {
		cell := spawnEcho(t, "silent")
		// a request without its reply wired in: the handler leaves the
		// port untouched and the runtime abandons it
		result, err := Call(ctx, cell, func(*ReplyPort[string]) any {
			return &echoRequest{text: "ignored"}
		}, replyTimeout)
		require.NoError(t, err)
		assert.Equal(t, CallNoReply, result.Status())
		assert.False(t, result.Success())
		assert.Empty(t, result.Value())
	})

	t.Run("With a slow handler timing out", func(t *testing.T) {
		release := make(chan struct{})
		sendErrs := make(chan error, 1)
		cell, err := Spawn(ctx, NewFuncActor(
			func(_ *Context, message *echoRequest) error {
				<-release
				sendErrs <- message.reply.Send(message.text)
				return nil
			},
		), WithLogger(testLogger()))
		require.NoError(t, err)

		result, err := Call(ctx, cell, func(reply *ReplyPort[string]) any {
			return &echoRequest{text: "slow", reply: reply}
		}, 50*time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, CallTimeout, result.Status())

		// the late reply must fail cleanly, never panic
		close(release)
		assert.ErrorIs(t, <-sendErrs, errors.ErrReplyClosed)

		cell.Stop("test over")
		waitForStop(t, cell)
	})

	t.Run("With zero timeout waiting for a delayed reply", func(t *testing.T) {
		cell, err := Spawn(ctx, NewFuncActor(
			func(_ *Context, message *echoRequest) error {
				time.Sleep(100 * time.Millisecond)
				return message.reply.Send(message.text)
			},
		), WithLogger(testLogger()))
		require.NoError(t, err)

		// no deadline: the call must outwait the slow handler
		result, err := Call(ctx, cell, func(reply *ReplyPort[string]) any {
			return &echoRequest{text: "pong", reply: reply}
		}, 0)
		require.NoError(t, err)
		assert.Equal(t, CallSuccess, result.Status())
		assert.Equal(t, "pong", result.Value())

		cell.Stop("test over")
		waitForStop(t, cell)
	})

	t.Run("With negative timeout treated as no deadline", func(t *testing.T) {
		cell := spawnEcho(t, "patient")
		result, err := Call(ctx, cell, func(reply *ReplyPort[string]) any {
			return &echoRequest{text: "ping", reply: reply}
		}, -time.Second)
		require.NoError(t, err)
		assert.True(t, result.Success())
		assert.Equal(t, "ping", result.Value())
	})

	t.Run("With a dead callee", func(t *testing.T) {
		cell, err := Spawn(ctx, new(echoActor), WithLogger(testLogger()))
		require.NoError(t, err)
		cell.Stop("test over")
		waitForStop(t, cell)

		_, err = Call(ctx, cell, func(reply *ReplyPort[string]) any {
			return &echoRequest{text: "ping", reply: reply}
		}, replyTimeout)
		assert.ErrorIs(t, err, errors.ErrDead)
	})

	t.Run("With a canceled context", func(t *testing.T) {
		release := make(chan struct{})
		cell, err := Spawn(ctx, NewFuncActor(
			func(_ *Context, _ *echoRequest) error {
				<-release
				return nil
			},
		), WithLogger(testLogger()))
		require.NoError(t, err)

		callCtx, cancel := context.WithCancel(ctx)
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()
		_, err = Call(callCtx, cell, func(reply *ReplyPort[string]) any {
			return &echoRequest{text: "ping", reply: reply}
		}, time.Minute)
		assert.ErrorIs(t, err, context.Canceled)

		close(release)
		cell.Stop("test over")
		waitForStop(t, cell)
	})
}

func TestMultiCall(t *testing.T) {
	ctx := context.TODO()

	cells := []*ActorCell{
		spawnEcho(t, "echo-0"),
		spawnEcho(t, "echo-1"),
		spawnEcho(t, "echo-2"),
	}

	results, err := MultiCall(ctx, cells, func(reply *ReplyPort[string]) any {
		return &echoRequest{text: "fanout", reply: reply}
	}, replyTimeout)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, result := range results {
		assert.True(t, result.Success())
		assert.Equal(t, "fanout", result.Value())
	}
}

func TestCallAndForward(t *testing.T) {
	ctx := context.TODO()

	echo := spawnEcho(t, "echo")
	forwarded := make(chan string, 1)
	collector, err := Spawn(ctx, NewFuncActor(
		func(_ *Context, message string) error {
			forwarded <- message
			return nil
		},
	), WithLogger(testLogger()))
	require.NoError(t, err)

	task := CallAndForward(ctx, echo, func(reply *ReplyPort[string]) any {
		return &echoRequest{text: "relayed", reply: reply}
	}, replyTimeout, collector, func(reply string) any {
		return reply
	})

	result, err := task.Await(ctx)
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, "relayed", <-forwarded)

	collector.Stop("test over")
	waitForStop(t, collector)
}
