/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"sort"
	"sync"

	"github.com/named-data/ndnfw/fw/defn"
)

// Signal is a list of observers of one kind of event.
type Signal[T any] struct {
	lock   sync.Mutex
	nextID uint64
	slots  map[uint64]func(T)
}

// Subscription is a handle to a connected observer.
type Subscription struct {
	cancel func()
}

// Cancel disconnects the observer. It is safe to call more than once.
func (s *Subscription) Cancel() {
	if s != nil && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Connect registers an observer.
func (s *Signal[T]) Connect(fn func(T)) *Subscription {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.slots == nil {
		s.slots = make(map[uint64]func(T))
	}
	id := s.nextID
	s.nextID++
	s.slots[id] = fn
	return &Subscription{cancel: func() {
		s.lock.Lock()
		defer s.lock.Unlock()
		delete(s.slots, id)
	}}
}

// Emit calls every observer in connection order.
func (s *Signal[T]) Emit(v T) {
	s.lock.Lock()
	ids := make([]uint64, 0, len(s.slots))
	for id := range s.slots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(T), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.slots[id])
	}
	s.lock.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Len returns the number of connected observers.
func (s *Signal[T]) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.slots)
}

// InterestEvent is an Interest received or dropped on a face.
type InterestEvent struct {
	Interest *defn.Interest
	Endpoint uint64
}

// DataEvent is a Data received on a face.
type DataEvent struct {
	Data     *defn.Data
	Endpoint uint64
}

// NackEvent is a Nack received on a face.
type NackEvent struct {
	Nack     *defn.Nack
	Endpoint uint64
}

// Events are the notifications a face emits towards the forwarder.
type Events struct {
	Interest        Signal[InterestEvent]
	Data            Signal[DataEvent]
	Nack            Signal[NackEvent]
	DroppedInterest Signal[InterestEvent]
}
