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

// Package scheduler delivers messages and termination signals to
// actors on a timetable: one-shot delays, fixed intervals and cron
// expressions.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	"github.com/troupekit/troupe/actor"
	"github.com/troupekit/troupe/errors"
	"github.com/troupekit/troupe/log"
)

// Scheduler schedules message deliveries against actor handles. Every
// schedule call returns an opaque reference that cancels the delivery
// via Cancel. Recurring deliveries cancel themselves once their target
// actor is dead.
type Scheduler struct {
	mu              sync.Mutex
	quartzScheduler quartz.Scheduler
	started         *atomic.Bool
	logger          log.Logger
	keys            map[string]*quartz.JobKey
}

// Option configures the Scheduler.
type Option func(*Scheduler)

// WithLogger sets the scheduler's logger.
func WithLogger(l log.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// New creates a Scheduler. Call Start before scheduling anything.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		started: atomic.NewBool(false),
		logger:  log.DefaultLogger,
		keys:    make(map[string]*quartz.JobKey),
	}
	for _, opt := range opts {
		opt(s)
	}
	quartzScheduler, _ := quartz.NewStdScheduler(
		quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)),
	)
	s.quartzScheduler = quartzScheduler
	return s
}

// Start starts the scheduling engine. Starting a started scheduler is
// a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started.Load() {
		return
	}
	s.quartzScheduler.Start(ctx)
	s.started.Store(s.quartzScheduler.IsStarted())
}

// Stop stops the engine and waits for in-flight jobs, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started.Load() {
		return
	}
	s.keys = make(map[string]*quartz.JobKey)
	_ = s.quartzScheduler.Clear()
	s.quartzScheduler.Stop()
	s.started.Store(s.quartzScheduler.IsStarted())
	s.quartzScheduler.Wait(ctx)
}

// ScheduleOnce delivers message to cell once, after delay.
func (s *Scheduler) ScheduleOnce(cell *actor.ActorCell, message any, delay time.Duration) (string, error) {
	if delay < 0 {
		return "", errors.ErrInvalidTimeout
	}
	sendJob := job.NewFunctionJob[bool](func(context.Context) (bool, error) {
		if err := actor.Cast(cell, message); err != nil {
			return false, err
		}
		return true, nil
	})
	return s.scheduleJob(sendJob, quartz.NewRunOnceTrigger(delay))
}

// Schedule delivers message to cell every interval until canceled or
// until the actor dies. The first delivery happens after one interval.
func (s *Scheduler) Schedule(cell *actor.ActorCell, message any, interval time.Duration) (string, error) {
	if interval <= 0 {
		return "", errors.ErrInvalidTimeout
	}
	reference := uuid.NewString()
	sendJob := job.NewFunctionJob[bool](func(context.Context) (bool, error) {
		if err := actor.Cast(cell, message); err != nil {
			// dead target, retire the schedule
			s.cancelSilently(reference)
			return false, err
		}
		return true, nil
	})
	if err := s.scheduleJobWithReference(reference, sendJob, quartz.NewSimpleTrigger(interval)); err != nil {
		return "", err
	}
	return reference, nil
}

// ScheduleWithCron delivers message to cell on the schedule described
// by the cron expression, evaluated in UTC.
func (s *Scheduler) ScheduleWithCron(cell *actor.ActorCell, message any, cronExpression string) (string, error) {
	trigger, err := quartz.NewCronTriggerWithLoc(cronExpression, time.UTC)
	if err != nil {
		return "", err
	}
	reference := uuid.NewString()
	sendJob := job.NewFunctionJob[bool](func(context.Context) (bool, error) {
		if err := actor.Cast(cell, message); err != nil {
			s.cancelSilently(reference)
			return false, err
		}
		return true, nil
	})
	if err := s.scheduleJobWithReference(reference, sendJob, trigger); err != nil {
		return "", err
	}
	return reference, nil
}

// StopAfter asks cell to stop gracefully after delay.
func (s *Scheduler) StopAfter(cell *actor.ActorCell, delay time.Duration) (string, error) {
	if delay < 0 {
		return "", errors.ErrInvalidTimeout
	}
	stopJob := job.NewFunctionJob[bool](func(context.Context) (bool, error) {
		cell.Stop("stop scheduled")
		return true, nil
	})
	return s.scheduleJob(stopJob, quartz.NewRunOnceTrigger(delay))
}

// KillAfter kills cell after delay, skipping its PostStop hook.
func (s *Scheduler) KillAfter(cell *actor.ActorCell, delay time.Duration) (string, error) {
	if delay < 0 {
		return "", errors.ErrInvalidTimeout
	}
	killJob := job.NewFunctionJob[bool](func(context.Context) (bool, error) {
		cell.Kill()
		return true, nil
	})
	return s.scheduleJob(killJob, quartz.NewRunOnceTrigger(delay))
}

// Cancel removes a scheduled delivery. Canceling a reference that
// already fired, or was never issued, returns
// ErrScheduledReferenceNotFound.
func (s *Scheduler) Cancel(reference string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started.Load() {
		return errors.ErrSchedulerNotStarted
	}
	key, ok := s.keys[reference]
	if !ok {
		return errors.ErrScheduledReferenceNotFound
	}
	delete(s.keys, reference)
	if err := s.quartzScheduler.DeleteJob(key); err != nil {
		return errors.ErrScheduledReferenceNotFound
	}
	return nil
}

func (s *Scheduler) scheduleJob(functionJob quartz.Job, trigger quartz.Trigger) (string, error) {
	reference := uuid.NewString()
	if err := s.scheduleJobWithReference(reference, functionJob, trigger); err != nil {
		return "", err
	}
	return reference, nil
}

func (s *Scheduler) scheduleJobWithReference(reference string, functionJob quartz.Job, trigger quartz.Trigger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started.Load() {
		return errors.ErrSchedulerNotStarted
	}
	key := quartz.NewJobKey(reference)
	detail := quartz.NewJobDetail(functionJob, key)
	if err := s.quartzScheduler.ScheduleJob(detail, trigger); err != nil {
		return err
	}
	s.keys[reference] = key
	return nil
}

// cancelSilently retires a schedule from inside its own job.
func (s *Scheduler) cancelSilently(reference string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok := s.keys[reference]
	if !ok {
		return
	}
	delete(s.keys, reference)
	if err := s.quartzScheduler.DeleteJob(key); err != nil {
		s.logger.Debugf("failed to retire schedule %s: %v", reference, err)
	}
}
