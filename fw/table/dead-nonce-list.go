/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash"
	"github.com/named-data/ndnfw/fw/sched"
	enc "github.com/named-data/ndnfw/std/encoding"
	"github.com/named-data/ndnfw/std/types/priority_queue"
)

// DeadNonceList remembers recently forwarded (name, nonce) pairs after their PIT entries are gone.
// Membership is by hash, so false positives are possible but false negatives within the lifetime are not.
type DeadNonceList struct {
	clock    sched.Clock
	lifetime time.Duration
	capacity int

	list map[uint64]*priority_queue.Item[uint64, int64]
	// ordered by insertion time
	queue priority_queue.Queue[uint64, int64]
}

// NewDeadNonceList creates a Dead Nonce List.
func NewDeadNonceList(clock sched.Clock, lifetime time.Duration, capacity int) *DeadNonceList {
	if clock == nil {
		clock = sched.RealClock{}
	}
	return &DeadNonceList{
		clock:    clock,
		lifetime: lifetime,
		capacity: max(capacity, 1),
		list:     make(map[uint64]*priority_queue.Item[uint64, int64]),
		queue:    priority_queue.New[uint64, int64](),
	}
}

func (d *DeadNonceList) String() string {
	return "dead-nonce-list"
}

func dnlKey(name enc.Name, nonce uint32) uint64 {
	var buf [12]byte
	binary.BigEndian.PutUint64(buf[:8], name.Hash())
	binary.BigEndian.PutUint32(buf[8:], nonce)
	return xxhash.Sum64(buf[:])
}

// Lifetime returns the configured entry lifetime.
func (d *DeadNonceList) Lifetime() time.Duration {
	return d.lifetime
}

// Len returns the number of stored entries, including expired ones not yet removed.
func (d *DeadNonceList) Len() int {
	return len(d.list)
}

// Has returns whether the name and nonce combination was inserted within the lifetime.
func (d *DeadNonceList) Has(name enc.Name, nonce uint32) bool {
	item, ok := d.list[dnlKey(name, nonce)]
	if !ok {
		return false
	}
	return d.clock.Now().UnixNano() < item.Priority()+d.lifetime.Nanoseconds()
}

// Add inserts the name and nonce combination, refreshing its insertion time if present.
// When the list is full the oldest entry is evicted.
func (d *DeadNonceList) Add(name enc.Name, nonce uint32) {
	key := dnlKey(name, nonce)
	now := d.clock.Now().UnixNano()

	if item, ok := d.list[key]; ok {
		d.queue.UpdatePriority(item, now)
		return
	}

	for d.queue.Len() >= d.capacity {
		delete(d.list, d.queue.Pop())
	}
	d.list[key] = d.queue.Push(key, now)
}

// RemoveExpiredEntries removes entries older than the lifetime and returns how many were removed.
func (d *DeadNonceList) RemoveExpiredEntries() int {
	cutoff := d.clock.Now().UnixNano() - d.lifetime.Nanoseconds()
	evicted := 0
	for d.queue.Len() > 0 && d.queue.PeekPriority() <= cutoff {
		delete(d.list, d.queue.Pop())
		evicted++
	}
	return evicted
}
