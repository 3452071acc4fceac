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

// Package errors defines the error taxonomy of the runtime. Messaging
// errors are always recoverable by the caller; they are never escalated
// into panics or process aborts.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrDead indicates that a send failed because the receiving actor's
	// ports have been disposed: its execution loop has exited.
	ErrDead = errors.New("actor is not alive")

	// ErrSignalQueueFull indicates that the bounded signal port was full.
	// A full signal queue means the actor is already being told to die,
	// so termination senders treat this as success and move on.
	ErrSignalQueueFull = errors.New("signal queue is full")

	// ErrInvalidMessage is returned when a message does not match the
	// receiving actor's accepted message type. The message is rejected,
	// never coerced.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrReplyClosed is returned when writing to a reply port that has
	// already been completed or abandoned. A late reply after a call
	// timeout surfaces this error instead of panicking.
	ErrReplyClosed = errors.New("reply port already completed or abandoned")

	// ErrInitFailure is returned when the actor's PreStart hook fails
	// after exhausting its retries.
	ErrInitFailure = errors.New("preStart failed")

	// ErrInvalidTimeout is returned when a scheduling delay or interval
	// is invalid: a negative delay, or an interval of zero or less.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrSchedulerNotStarted is returned when attempting to use the
	// scheduler before it has started.
	ErrSchedulerNotStarted = errors.New("scheduler has not started")

	// ErrScheduledReferenceNotFound is returned when a reference to a
	// scheduled job cannot be found.
	ErrScheduledReferenceNotFound = errors.New("scheduled reference not found")
)

// NewErrInvalidMessage wraps a base error with ErrInvalidMessage for
// additional context.
func NewErrInvalidMessage(err error) error {
	return errors.Join(ErrInvalidMessage, err)
}

// NewErrInitFailure wraps a base error with ErrInitFailure to indicate
// a startup failure.
func NewErrInitFailure(err error) error {
	return errors.Join(ErrInitFailure, err)
}

// PanicError wraps a value recovered from a panicking message handler.
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}

// SpawnError defines an error when creating an actor
type SpawnError struct {
	err error
}

var _ error = (*SpawnError)(nil)

// NewSpawnError returns an instance of SpawnError
func NewSpawnError(err error) *SpawnError {
	return &SpawnError{
		err: fmt.Errorf("spawn error: %w", err),
	}
}

// Error implements the standard error interface
func (s *SpawnError) Error() string {
	return s.err.Error()
}

func (s *SpawnError) Unwrap() error {
	return s.err
}
