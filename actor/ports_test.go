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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/troupekit/troupe/errors"
)

func TestSignalPort(t *testing.T) {
	t.Run("With bounded capacity", func(t *testing.T) {
		sp := newSignalPort()
		require.NoError(t, sp.send(signal{kind: signalExit, reason: "one"}))
		require.NoError(t, sp.send(signal{kind: signalExit, reason: "two"}))
		assert.ErrorIs(t, sp.send(signal{kind: signalExit, reason: "three"}), errors.ErrSignalQueueFull)

		sig, ok := sp.tryRecv()
		require.True(t, ok)
		assert.Equal(t, "one", sig.reason)
		require.NoError(t, sp.send(signal{kind: signalExit, reason: "four"}))
	})
	t.Run("With empty receive not blocking", func(t *testing.T) {
		sp := newSignalPort()
		_, ok := sp.tryRecv()
		assert.False(t, ok)
	})
	t.Run("With sends failing after dispose", func(t *testing.T) {
		sp := newSignalPort()
		sp.dispose()
		assert.ErrorIs(t, sp.send(signal{kind: signalKill}), errors.ErrDead)
	})
	t.Run("With wakeup notified", func(t *testing.T) {
		sp := newSignalPort()
		require.NoError(t, sp.send(signal{kind: signalExit}))
		select {
		case <-sp.wakeup:
		default:
			t.Fatal("expected a wakeup notification")
		}
	})
}

func TestPort(t *testing.T) {
	t.Run("With FIFO delivery", func(t *testing.T) {
		p := newPort[int]()
		for i := 0; i < 10; i++ {
			require.NoError(t, p.send(i))
		}
		for i := 0; i < 10; i++ {
			value, ok := p.tryRecv()
			require.True(t, ok)
			assert.Equal(t, i, value)
		}
		_, ok := p.tryRecv()
		assert.False(t, ok)
	})
	t.Run("With sends failing after close", func(t *testing.T) {
		p := newPort[int]()
		require.NoError(t, p.send(1))
		p.close()
		assert.ErrorIs(t, p.send(2), errors.ErrDead)

		// enqueued items remain drainable
		value, ok := p.tryRecv()
		require.True(t, ok)
		assert.Equal(t, 1, value)
	})
	t.Run("With successful sends always drainable after close", func(t *testing.T) {
		p := newPort[int]()
		accepted := atomic.NewInt64(0)
		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; ; i++ {
				if err := p.send(i); err != nil {
					return
				}
				accepted.Inc()
			}
		}()

		time.Sleep(10 * time.Millisecond)
		p.close()
		<-done

		drained := int64(0)
		for {
			if _, ok := p.tryRecv(); !ok {
				break
			}
			drained++
		}
		// every send that reported success must be drainable after the
		// close, plus at most the one item whose send raced the close
		// and reported failure
		assert.GreaterOrEqual(t, drained, accepted.Load())
		assert.LessOrEqual(t, drained, accepted.Load()+1)
	})
	t.Run("With repeated sends never blocking on wakeup", func(t *testing.T) {
		p := newPort[int]()
		// the wakeup channel has capacity one; extra notifications coalesce
		for i := 0; i < 100; i++ {
			require.NoError(t, p.send(i))
		}
		assert.EqualValues(t, 100, p.queue.Len())
	})
}

func TestReplyPort(t *testing.T) {
	t.Run("With first send winning", func(t *testing.T) {
		reply := newReplyPort[string]()
		require.NoError(t, reply.Send("first"))
		assert.ErrorIs(t, reply.Send("second"), errors.ErrReplyClosed)

		value, ok := <-reply.recv()
		require.True(t, ok)
		assert.Equal(t, "first", value)
	})
	t.Run("With abandon closing without a value", func(t *testing.T) {
		reply := newReplyPort[string]()
		reply.abandon()
		_, ok := <-reply.recv()
		assert.False(t, ok)
		assert.ErrorIs(t, reply.Send("late"), errors.ErrReplyClosed)
	})
	t.Run("With abandon after send being a no-op", func(t *testing.T) {
		reply := newReplyPort[string]()
		require.NoError(t, reply.Send("kept"))
		reply.abandon()
		value, ok := <-reply.recv()
		require.True(t, ok)
		assert.Equal(t, "kept", value)
	})
}
