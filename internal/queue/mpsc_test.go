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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMPSC(t *testing.T) {
	t.Run("With FIFO ordering", func(t *testing.T) {
		q := NewMPSC[int]()
		assert.True(t, q.IsEmpty())
		for i := 0; i < 100; i++ {
			q.Push(i)
		}
		assert.EqualValues(t, 100, q.Len())
		for i := 0; i < 100; i++ {
			value, ok := q.Pop()
			require.True(t, ok)
			assert.Equal(t, i, value)
		}
		_, ok := q.Pop()
		assert.False(t, ok)
		assert.True(t, q.IsEmpty())
	})
	t.Run("With concurrent producers", func(t *testing.T) {
		q := NewMPSC[int]()
		producers := 8
		perProducer := 1000

		var wg sync.WaitGroup
		wg.Add(producers)
		for p := 0; p < producers; p++ {
			go func() {
				defer wg.Done()
				for i := 0; i < perProducer; i++ {
					q.Push(i)
				}
			}()
		}
		wg.Wait()

		count := 0
		for {
			if _, ok := q.Pop(); !ok {
				break
			}
			count++
		}
		assert.Equal(t, producers*perProducer, count)
	})
}

func TestQueue(t *testing.T) {
	q := NewQueue[string]()
	assert.Zero(t, q.Length())
	q.Enqueue("a")
	q.Enqueue("b")
	assert.Equal(t, 2, q.Length())

	item, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "a", item)

	item, ok = q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "b", item)

	_, ok = q.Dequeue()
	assert.False(t, ok)
}
