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

// Package actor implements an in-process actor runtime: reference
// counted actor handles, a three-port inbox with signal priority, a
// bidirectional supervision tree with cascading termination, and
// cast/call messaging with single-use reply ports.
package actor

import (
	"context"

	"github.com/troupekit/troupe/log"
)

// Actor is the behavior contract of an actor accepting messages of
// type M. Each actor processes one message at a time on its own
// goroutine; implementations never need internal locking for state
// touched only from the hooks.
type Actor[M any] interface {
	// PreStart runs before the actor accepts its first message. An error
	// aborts the spawn after the configured retries are exhausted.
	PreStart(ctx *Context) error
	// Receive handles one message. Returning an error fails the actor:
	// supervisors are notified and the actor terminates.
	Receive(ctx *Context, message M) error
	// PostStop runs during a graceful shutdown, after the last message.
	// A killed actor skips this hook.
	PostStop(ctx *Context) error
}

// SupervisionHandler is an optional extension of Actor. When the
// spawned behavior implements it, lifecycle events from linked
// children are dispatched here; otherwise they are logged and dropped.
type SupervisionHandler interface {
	HandleSupervision(ctx *Context, event SupervisionEvent)
}

// Context carries the ambient state handed to every actor hook.
type Context struct {
	ctx    context.Context
	self   *ActorCell
	logger log.Logger
}

// Context returns the context bound to the actor's execution loop. It
// is canceled when the loop exits.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Self returns the handle of the running actor.
func (c *Context) Self() *ActorCell {
	return c.self
}

// Logger returns the actor's logger.
func (c *Context) Logger() log.Logger {
	return c.logger
}
