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
)

// Pit is the Pending Interest Table. It owns its entries and their expiry timers.
// It must only be used from the forwarding goroutine.
type Pit struct {
	root     *nameTreeNode[[]*PitEntry]
	sched    *sched.Scheduler
	onExpiry func(*PitEntry)
	size     int
}

// NewPit creates a PIT whose entries call onExpiry when their expiry timer fires.
func NewPit(s *sched.Scheduler, onExpiry func(*PitEntry)) *Pit {
	return &Pit{
		root:     newNameTreeRoot[[]*PitEntry](),
		sched:    s,
		onExpiry: onExpiry,
	}
}

func (p *Pit) String() string {
	return "pit"
}

// Size returns the number of entries.
func (p *Pit) Size() int {
	return p.size
}

// Insert finds the entry the Interest aggregates into, creating it if needed.
// The second return value is true if the entry was created.
func (p *Pit) Insert(interest *defn.Interest) (*PitEntry, bool) {
	node := p.root.fill(interest.Name)
	for _, entry := range node.value {
		if entry.CanMatch(interest) {
			return entry, false
		}
	}

	entry := &PitEntry{
		interest:    interest,
		name:        node.name,
		canBePrefix: interest.CanBePrefix,
		mustBeFresh: interest.MustBeFresh,
		node:        node,
	}
	node.value = append(node.value, entry)
	p.size++
	return entry, true
}

// Find returns the entry the Interest would aggregate into, or nil.
func (p *Pit) Find(interest *defn.Interest) *PitEntry {
	node := p.root.exact(interest.Name)
	if node == nil {
		return nil
	}
	for _, entry := range node.value {
		if entry.CanMatch(interest) {
			return entry
		}
	}
	return nil
}

// FindAllDataMatches returns every entry that the Data satisfies, longest name first.
func (p *Pit) FindAllDataMatches(data *defn.Data) []*PitEntry {
	matches := make([]*PitEntry, 0)
	for node := p.root.longestPrefix(data.Name); node != nil; node = node.parent {
		for _, entry := range node.value {
			if entry.interest.MatchesData(data) {
				matches = append(matches, entry)
			}
		}
	}
	return matches
}

// Contains returns true if entry is still in the table.
func (p *Pit) Contains(entry *PitEntry) bool {
	return entry != nil && entry.node != nil
}

// SetExpiryTimer replaces the entry's expiry timer so that it fires after d.
// A nil entry or negative duration is a programming error.
func (p *Pit) SetExpiryTimer(entry *PitEntry, d time.Duration) {
	if entry == nil {
		panic("pit: expiry timer set on nil entry")
	}
	if d < 0 {
		panic("pit: negative expiry duration")
	}

	entry.expiryTimer.Cancel()
	entry.expiryTime = p.sched.Now().Add(d)
	entry.expiryTimer = p.sched.Schedule(d, func() {
		entry.expiryTimer = nil
		if p.Contains(entry) && p.onExpiry != nil {
			p.onExpiry(entry)
		}
	})
}

// Erase cancels the entry's expiry timer and removes it from the table.
// Erasing an entry twice is a no-op.
func (p *Pit) Erase(entry *PitEntry) {
	if !p.Contains(entry) {
		return
	}
	entry.expiryTimer.Cancel()
	entry.expiryTimer = nil

	node := entry.node
	for i, e := range node.value {
		if e == entry {
			node.value = append(node.value[:i], node.value[i+1:]...)
			break
		}
	}
	entry.node = nil
	p.size--
	node.pruneIfEmpty(func(n *nameTreeNode[[]*PitEntry]) bool { return len(n.value) == 0 })
}

// Entries returns all entries in canonical name order.
func (p *Pit) Entries() []*PitEntry {
	ret := make([]*PitEntry, 0, p.size)
	p.root.walk(func(n *nameTreeNode[[]*PitEntry]) bool {
		ret = append(ret, n.value...)
		return true
	})
	return ret
}

// RemoveFace deletes every record of faceID and erases the entries left empty.
// It returns the number of erased entries.
func (p *Pit) RemoveFace(faceID uint64) int {
	erased := 0
	for _, entry := range p.Entries() {
		if entry.deleteFace(faceID) {
			p.Erase(entry)
			erased++
		}
	}
	return erased
}
