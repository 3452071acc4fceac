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

// Event stream topics published by the runtime.
const (
	// DeadlettersTopic carries Deadletter records for messages that were
	// queued on an actor that stopped before handling them.
	DeadlettersTopic = "troupe.deadletters"
	// LifecycleTopic carries SupervisionEvent records for every actor,
	// linked or not.
	LifecycleTopic = "troupe.lifecycle"
)

// Deadletter records a message that could not be handled because its
// target actor terminated first.
type Deadletter struct {
	// Cell is the handle of the actor that stopped.
	Cell *ActorCell
	// Message is the undelivered payload.
	Message any
	// Reason is the stop reason of the actor, when one was supplied.
	Reason string
}
