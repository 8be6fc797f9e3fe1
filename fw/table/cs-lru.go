/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"container/list"
)

// CsReplacementPolicy decides which entries leave a full content store.
type CsReplacementPolicy interface {
	AfterInsert(entry *CsEntry)
	AfterRefresh(entry *CsEntry, wasUnsolicited bool)
	BeforeErase(entry *CsEntry)
	BeforeUse(entry *CsEntry)
	EvictEntries()
}

// CsLRU evicts unsolicited entries first, then the least recently used.
type CsLRU struct {
	cs          *ContentStore
	queue       *list.List
	unsolicited *list.List
	locations   map[*CsEntry]*list.Element
}

// NewCsLRU creates an LRU policy for cs.
func NewCsLRU(cs *ContentStore) *CsLRU {
	return &CsLRU{
		cs:          cs,
		queue:       list.New(),
		unsolicited: list.New(),
		locations:   make(map[*CsEntry]*list.Element),
	}
}

func (l *CsLRU) listOf(unsolicited bool) *list.List {
	if unsolicited {
		return l.unsolicited
	}
	return l.queue
}

func (l *CsLRU) AfterInsert(entry *CsEntry) {
	l.locations[entry] = l.listOf(entry.unsolicited).PushBack(entry)
}

func (l *CsLRU) AfterRefresh(entry *CsEntry, wasUnsolicited bool) {
	if location, ok := l.locations[entry]; ok {
		l.listOf(wasUnsolicited).Remove(location)
	}
	l.locations[entry] = l.listOf(entry.unsolicited).PushBack(entry)
}

func (l *CsLRU) BeforeErase(entry *CsEntry) {
	if location, ok := l.locations[entry]; ok {
		l.listOf(entry.unsolicited).Remove(location)
		delete(l.locations, entry)
	}
}

func (l *CsLRU) BeforeUse(entry *CsEntry) {
	if location, ok := l.locations[entry]; ok {
		l.listOf(entry.unsolicited).MoveToBack(location)
	}
}

func (l *CsLRU) EvictEntries() {
	for l.cs.size > l.cs.capacity {
		victims := l.unsolicited
		if victims.Len() == 0 {
			victims = l.queue
		}
		if victims.Len() == 0 {
			return
		}
		l.cs.erase(victims.Front().Value.(*CsEntry))
	}
}
