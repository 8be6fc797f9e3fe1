/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package sched

import (
	"time"

	"github.com/named-data/ndnfw/std/types/priority_queue"
)

// Scheduler runs callbacks at deadlines on the goroutine that calls RunDue.
// It is not safe for concurrent use; the forwarder owns it.
type Scheduler struct {
	clock Clock
	queue priority_queue.Queue[*EventID, int64]
}

// EventID is a handle to a scheduled callback.
type EventID struct {
	sched *Scheduler
	item  *priority_queue.Item[*EventID, int64]
	when  time.Time
	f     func()
}

// New creates a scheduler driven by clock. A nil clock means the system clock.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = RealClock{}
	}
	return &Scheduler{
		clock: clock,
		queue: priority_queue.New[*EventID, int64](),
	}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Schedule arranges for f to run after d. A negative d is a programming error.
func (s *Scheduler) Schedule(d time.Duration, f func()) *EventID {
	if d < 0 {
		panic("sched: negative duration")
	}
	if f == nil {
		panic("sched: nil callback")
	}
	e := &EventID{
		sched: s,
		when:  s.clock.Now().Add(d),
		f:     f,
	}
	e.item = s.queue.Push(e, e.when.UnixNano())
	return e
}

// Cancel prevents the event from firing. It is safe to call on a nil,
// fired, or already cancelled event.
func (e *EventID) Cancel() {
	if e == nil || e.f == nil {
		return
	}
	e.f = nil
	e.sched.queue.Remove(e.item)
}

// Pending returns true if the event has neither fired nor been cancelled.
func (e *EventID) Pending() bool {
	return e != nil && e.f != nil
}

// When returns the deadline of the event.
func (e *EventID) When() time.Time {
	return e.when
}

// Len returns the number of pending events.
func (s *Scheduler) Len() int {
	return s.queue.Len()
}

// NextDeadline returns the earliest pending deadline.
func (s *Scheduler) NextDeadline() (time.Time, bool) {
	if s.queue.Len() == 0 {
		return time.Time{}, false
	}
	return s.queue.Peek().when, true
}

// RunDue fires every event whose deadline is not after now, including
// events scheduled by the callbacks themselves, and returns the number fired.
func (s *Scheduler) RunDue() int {
	fired := 0
	for s.queue.Len() > 0 {
		now := s.clock.Now().UnixNano()
		if s.queue.PeekPriority() > now {
			break
		}
		e := s.queue.Pop()
		f := e.f
		e.f = nil
		f()
		fired++
	}
	return fired
}
