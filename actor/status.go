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

// ActorStatus represents the lifecycle stage of an actor. Statuses are
// totally ordered by their numeric rank; transitions toward
// StatusStopping/StatusStopped are one-way.
type ActorStatus uint32

const (
	// StatusUnstarted means the actor is created but not yet started.
	StatusUnstarted ActorStatus = iota
	// StatusStarting means the actor is running its PreStart hook.
	StatusStarting
	// StatusRunning means the actor is executing or waiting on messages.
	StatusRunning
	// StatusUpgrading means the actor is swapping its behavior in place.
	StatusUpgrading
	// StatusStopping means the actor is shutting down.
	StatusStopping
	// StatusStopped means the actor is dead. This status is terminal.
	StatusStopped
)

// String implements fmt.Stringer.
func (s ActorStatus) String() string {
	switch s {
	case StatusUnstarted:
		return "Unstarted"
	case StatusStarting:
		return "Starting"
	case StatusRunning:
		return "Running"
	case StatusUpgrading:
		return "Upgrading"
	case StatusStopping:
		return "Stopping"
	case StatusStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Active reports whether operations can continue to interact with the
// actor. The active statuses are Starting, Running and Upgrading.
func (s ActorStatus) Active() bool {
	return s >= StatusStarting && s <= StatusUpgrading
}
