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

package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrInvalidMessage(t *testing.T) {
	cause := errors.New("expected string, got int")
	err := NewErrInvalidMessage(cause)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMessage)
	assert.ErrorIs(t, err, cause)
}

func TestNewErrInitFailure(t *testing.T) {
	cause := errors.New("boom")
	err := NewErrInitFailure(cause)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInitFailure)
	assert.ErrorIs(t, err, cause)
}

func TestPanicError(t *testing.T) {
	cause := errors.New("index out of range")
	err := NewPanicError(cause)
	require.Error(t, err)
	assert.Equal(t, "panic: index out of range", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestSpawnError(t *testing.T) {
	cause := errors.New("preStart failed")
	err := NewSpawnError(cause)
	require.Error(t, err)
	assert.Equal(t, "spawn error: preStart failed", err.Error())
	assert.ErrorIs(t, err, cause)
}
