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
	"time"

	"github.com/troupekit/troupe/eventstream"
	"github.com/troupekit/troupe/log"
)

const (
	// DefaultInitMaxRetries is the default number of PreStart attempts.
	DefaultInitMaxRetries = 5
	// DefaultInitTimeout is the default time box for all PreStart attempts.
	DefaultInitTimeout = time.Second
)

// spawnConfig collects the per-actor settings applied at spawn time.
type spawnConfig struct {
	name           string
	logger         log.Logger
	supervisor     *ActorCell
	initMaxRetries int
	initTimeout    time.Duration
	eventsStream   eventstream.Stream
}

func newSpawnConfig(opts ...SpawnOption) *spawnConfig {
	cfg := &spawnConfig{
		logger:         log.DefaultLogger,
		initMaxRetries: DefaultInitMaxRetries,
		initTimeout:    DefaultInitTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// publish sends payload to the configured event stream, when one is set.
func (cfg *spawnConfig) publish(topic string, payload any) {
	if cfg.eventsStream != nil {
		cfg.eventsStream.Publish(topic, payload)
	}
}

// SpawnOption configures an actor at spawn time.
type SpawnOption func(*spawnConfig)

// WithName sets the actor's name. Names are informational; uniqueness
// is not enforced.
func WithName(name string) SpawnOption {
	return func(cfg *spawnConfig) {
		cfg.name = name
	}
}

// WithLogger sets the actor's logger.
func WithLogger(logger log.Logger) SpawnOption {
	return func(cfg *spawnConfig) {
		cfg.logger = logger
	}
}

// WithSupervisor links the new actor under supervisor before it
// starts, so not even the ActorStarted event is missed.
func WithSupervisor(supervisor *ActorCell) SpawnOption {
	return func(cfg *spawnConfig) {
		cfg.supervisor = supervisor
	}
}

// WithInitMaxRetries sets how many times PreStart is attempted before
// the spawn is abandoned.
func WithInitMaxRetries(max int) SpawnOption {
	return func(cfg *spawnConfig) {
		cfg.initMaxRetries = max
	}
}

// WithInitTimeout bounds the total time granted to PreStart across
// all of its retries.
func WithInitTimeout(timeout time.Duration) SpawnOption {
	return func(cfg *spawnConfig) {
		cfg.initTimeout = timeout
	}
}

// WithEventStream sets the stream undeliverable messages and lifecycle
// events are published to.
func WithEventStream(stream eventstream.Stream) SpawnOption {
	return func(cfg *spawnConfig) {
		cfg.eventsStream = stream
	}
}
