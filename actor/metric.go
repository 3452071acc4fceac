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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/troupekit/troupe/actor"

// metrics holds the runtime's instrument set. Instruments come from
// the globally registered meter provider; with no provider installed
// they are no-ops.
type metrics struct {
	spawned     metric.Int64Counter
	stopped     metric.Int64Counter
	failed      metric.Int64Counter
	received    metric.Int64Counter
	deadletters metric.Int64Counter
}

var runtimeMetrics = newMetrics()

func newMetrics() *metrics {
	meter := otel.Meter(instrumentationName)
	spawned, _ := meter.Int64Counter("troupe.actors.spawned",
		metric.WithDescription("Total number of actors spawned"))
	stopped, _ := meter.Int64Counter("troupe.actors.stopped",
		metric.WithDescription("Total number of actors stopped"))
	failed, _ := meter.Int64Counter("troupe.actors.failed",
		metric.WithDescription("Total number of actor failures"))
	received, _ := meter.Int64Counter("troupe.messages.received",
		metric.WithDescription("Total number of messages handled"))
	deadletters, _ := meter.Int64Counter("troupe.messages.deadlettered",
		metric.WithDescription("Total number of messages dropped at actor shutdown"))
	return &metrics{
		spawned:     spawned,
		stopped:     stopped,
		failed:      failed,
		received:    received,
		deadletters: deadletters,
	}
}

func (m *metrics) addSpawned(ctx context.Context)     { m.spawned.Add(ctx, 1) }
func (m *metrics) addStopped(ctx context.Context)     { m.stopped.Add(ctx, 1) }
func (m *metrics) addFailed(ctx context.Context)      { m.failed.Add(ctx, 1) }
func (m *metrics) addReceived(ctx context.Context)    { m.received.Add(ctx, 1) }
func (m *metrics) addDeadletters(ctx context.Context) { m.deadletters.Add(ctx, 1) }
