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

// FuncActor adapts plain functions into an Actor. Useful for small
// actors and tests where a full receiver type is overkill.
type FuncActor[M any] struct {
	preStart func(ctx *Context) error
	receive  func(ctx *Context, message M) error
	postStop func(ctx *Context) error
}

// enforce compilation error
var _ Actor[any] = (*FuncActor[any])(nil)

// NewFuncActor creates a FuncActor from a receive function.
func NewFuncActor[M any](receive func(ctx *Context, message M) error, opts ...FuncOption[M]) *FuncActor[M] {
	fn := &FuncActor[M]{receive: receive}
	for _, opt := range opts {
		opt(fn)
	}
	return fn
}

// FuncOption configures a FuncActor.
type FuncOption[M any] func(*FuncActor[M])

// WithPreStartFunc sets the PreStart hook.
func WithPreStartFunc[M any](hook func(ctx *Context) error) FuncOption[M] {
	return func(fn *FuncActor[M]) {
		fn.preStart = hook
	}
}

// WithPostStopFunc sets the PostStop hook.
func WithPostStopFunc[M any](hook func(ctx *Context) error) FuncOption[M] {
	return func(fn *FuncActor[M]) {
		fn.postStop = hook
	}
}

// PreStart implements Actor.
func (f *FuncActor[M]) PreStart(ctx *Context) error {
	if f.preStart != nil {
		return f.preStart(ctx)
	}
	return nil
}

// Receive implements Actor.
func (f *FuncActor[M]) Receive(ctx *Context, message M) error {
	return f.receive(ctx, message)
}

// PostStop implements Actor.
func (f *FuncActor[M]) PostStop(ctx *Context) error {
	if f.postStop != nil {
		return f.postStop(ctx)
	}
	return nil
}
