/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/named-data/ndnfw/fw/defn"
	"github.com/named-data/ndnfw/fw/sched"
	enc "github.com/named-data/ndnfw/std/encoding"
)

// CsEntry is a cached Data packet.
type CsEntry struct {
	data        *defn.Data
	staleTime   time.Time
	unsolicited bool
	node        *nameTreeNode[*CsEntry]
}

func (e *CsEntry) Data() *defn.Data {
	return e.data
}

// StaleTime returns the instant after which the Data no longer satisfies MustBeFresh.
func (e *CsEntry) StaleTime() time.Time {
	return e.staleTime
}

// IsUnsolicited returns true if the Data was only ever admitted as unsolicited.
func (e *CsEntry) IsUnsolicited() bool {
	return e.unsolicited
}

// ContentStore is a name-indexed Data cache.
// It must only be used from the forwarding goroutine.
type ContentStore struct {
	root     *nameTreeNode[*CsEntry]
	clock    sched.Clock
	policy   CsReplacementPolicy
	capacity int
	admit    bool
	serve    bool
	size     int
}

// NewContentStore creates a content store with an LRU replacement policy.
func NewContentStore(clock sched.Clock, capacity int) *ContentStore {
	if clock == nil {
		clock = sched.RealClock{}
	}
	cs := &ContentStore{
		root:     newNameTreeRoot[*CsEntry](),
		clock:    clock,
		capacity: max(capacity, 0),
		admit:    true,
		serve:    true,
	}
	cs.policy = NewCsLRU(cs)
	return cs
}

func (cs *ContentStore) String() string {
	return "content-store"
}

// Size returns the number of cached Data.
func (cs *ContentStore) Size() int {
	return cs.size
}

func (cs *ContentStore) Capacity() int {
	return cs.capacity
}

// SetCapacity changes the capacity, evicting entries if needed.
func (cs *ContentStore) SetCapacity(capacity int) {
	cs.capacity = max(capacity, 0)
	cs.policy.EvictEntries()
}

func (cs *ContentStore) IsAdmitting() bool {
	return cs.admit
}

func (cs *ContentStore) SetAdmit(admit bool) {
	cs.admit = admit
}

func (cs *ContentStore) IsServing() bool {
	return cs.serve
}

func (cs *ContentStore) SetServe(serve bool) {
	cs.serve = serve
}

// Find looks up Data for the Interest and calls exactly one of hit or miss.
func (cs *ContentStore) Find(interest *defn.Interest, hit func(*defn.Data), miss func()) {
	if !cs.serve {
		miss()
		return
	}

	entry := cs.match(interest)
	if entry == nil {
		miss()
		return
	}
	cs.policy.BeforeUse(entry)
	hit(entry.data)
}

func (cs *ContentStore) match(interest *defn.Interest) *CsEntry {
	node := cs.root.exact(interest.Name)
	if node == nil {
		return nil
	}

	now := cs.clock.Now()
	usable := func(e *CsEntry) bool {
		return e != nil && (!interest.MustBeFresh || now.Before(e.staleTime))
	}

	if !interest.CanBePrefix {
		if usable(node.value) {
			return node.value
		}
		return nil
	}

	var found *CsEntry
	node.walk(func(n *nameTreeNode[*CsEntry]) bool {
		if usable(n.value) {
			found = n.value
			return false
		}
		return true
	})
	return found
}

// Insert caches data. An unsolicited insertion never downgrades a solicited entry.
func (cs *ContentStore) Insert(data *defn.Data, unsolicited bool) {
	if !cs.admit || cs.capacity == 0 {
		return
	}

	node := cs.root.fill(data.Name)
	staleTime := cs.clock.Now().Add(data.FreshnessPeriod)

	if entry := node.value; entry != nil {
		wasUnsolicited := entry.unsolicited
		entry.data = data
		entry.staleTime = staleTime
		entry.unsolicited = wasUnsolicited && unsolicited
		cs.policy.AfterRefresh(entry, wasUnsolicited)
		return
	}

	entry := &CsEntry{
		data:        data,
		staleTime:   staleTime,
		unsolicited: unsolicited,
		node:        node,
	}
	node.value = entry
	cs.size++
	cs.policy.AfterInsert(entry)
	cs.policy.EvictEntries()
}

// Erase removes up to limit entries under prefix and returns how many were removed.
// A negative limit means no limit.
func (cs *ContentStore) Erase(prefix enc.Name, limit int) int {
	node := cs.root.exact(prefix)
	if node == nil {
		return 0
	}

	victims := make([]*CsEntry, 0)
	node.walk(func(n *nameTreeNode[*CsEntry]) bool {
		if limit >= 0 && len(victims) >= limit {
			return false
		}
		if n.value != nil {
			victims = append(victims, n.value)
		}
		return true
	})
	for _, e := range victims {
		cs.erase(e)
	}
	return len(victims)
}

func (cs *ContentStore) erase(entry *CsEntry) {
	if entry.node == nil {
		return
	}
	cs.policy.BeforeErase(entry)
	node := entry.node
	node.value = nil
	entry.node = nil
	cs.size--
	node.pruneIfEmpty(func(n *nameTreeNode[*CsEntry]) bool { return n.value == nil })
}
