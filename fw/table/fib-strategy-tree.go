/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"sync"

	enc "github.com/named-data/ndnfw/std/encoding"
)

// FibNextHopEntry is a nexthop of a FIB entry.
type FibNextHopEntry struct {
	Nexthop uint64
	Cost    uint64
}

// FibEntry is a snapshot of a FIB entry.
type FibEntry struct {
	Name     enc.Name
	NextHops []FibNextHopEntry
}

// StrategyChoiceEntry is a snapshot of a strategy choice.
type StrategyChoiceEntry struct {
	Name     enc.Name
	Strategy enc.Name
}

type fibStrategyData struct {
	nexthops []*FibNextHopEntry
	strategy enc.Name
}

func fibStrategyEmpty(n *nameTreeNode[fibStrategyData]) bool {
	return len(n.value.nexthops) == 0 && n.value.strategy == nil
}

// FibStrategyTree is the FIB combined with the strategy choice table.
// The root always carries a strategy.
type FibStrategyTree struct {
	root  *nameTreeNode[fibStrategyData]
	mutex sync.RWMutex
}

// NewFibStrategyTree creates a tree whose root uses defaultStrategy.
func NewFibStrategyTree(defaultStrategy enc.Name) *FibStrategyTree {
	f := &FibStrategyTree{root: newNameTreeRoot[fibStrategyData]()}
	f.root.value.strategy = defaultStrategy.Clone()
	return f
}

func (f *FibStrategyTree) String() string {
	return "fib-strategy-table"
}

// FindNextHops returns the nexthops of the longest prefix of name that has any.
func (f *FibStrategyTree) FindNextHops(name enc.Name) []*FibNextHopEntry {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	for node := f.root.longestPrefix(name); node != nil; node = node.parent {
		if len(node.value.nexthops) > 0 {
			ret := make([]*FibNextHopEntry, len(node.value.nexthops))
			for i, nh := range node.value.nexthops {
				copied := *nh
				ret[i] = &copied
			}
			return ret
		}
	}
	return []*FibNextHopEntry{}
}

// FindStrategy returns the strategy of the longest prefix of name that has one.
func (f *FibStrategyTree) FindStrategy(name enc.Name) enc.Name {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	for node := f.root.longestPrefix(name); node != nil; node = node.parent {
		if node.value.strategy != nil {
			return node.value.strategy
		}
	}
	return nil
}

// InsertNextHop adds or updates a nexthop on the entry for name.
func (f *FibStrategyTree) InsertNextHop(name enc.Name, nexthop uint64, cost uint64) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	node := f.root.fill(name)
	for _, nh := range node.value.nexthops {
		if nh.Nexthop == nexthop {
			nh.Cost = cost
			return
		}
	}
	node.value.nexthops = append(node.value.nexthops, &FibNextHopEntry{
		Nexthop: nexthop,
		Cost:    cost,
	})
}

// ClearNextHops removes all nexthops of the entry for name.
func (f *FibStrategyTree) ClearNextHops(name enc.Name) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if node := f.root.exact(name); node != nil {
		node.value.nexthops = nil
		node.pruneIfEmpty(fibStrategyEmpty)
	}
}

// RemoveNextHop removes one nexthop of the entry for name.
func (f *FibStrategyTree) RemoveNextHop(name enc.Name, nexthop uint64) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if node := f.root.exact(name); node != nil {
		node.value.nexthops = removeNextHop(node.value.nexthops, nexthop)
		node.pruneIfEmpty(fibStrategyEmpty)
	}
}

// RemoveFace removes nexthop from every entry.
func (f *FibStrategyTree) RemoveFace(nexthop uint64) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	touched := make([]*nameTreeNode[fibStrategyData], 0)
	f.root.walk(func(n *nameTreeNode[fibStrategyData]) bool {
		before := len(n.value.nexthops)
		n.value.nexthops = removeNextHop(n.value.nexthops, nexthop)
		if len(n.value.nexthops) != before {
			touched = append(touched, n)
		}
		return true
	})
	for _, n := range touched {
		n.pruneIfEmpty(fibStrategyEmpty)
	}
}

func removeNextHop(nexthops []*FibNextHopEntry, nexthop uint64) []*FibNextHopEntry {
	for i, nh := range nexthops {
		if nh.Nexthop == nexthop {
			return append(nexthops[:i], nexthops[i+1:]...)
		}
	}
	return nexthops
}

// GetAllFIBEntries returns all entries with nexthops in canonical name order.
func (f *FibStrategyTree) GetAllFIBEntries() []FibEntry {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	entries := make([]FibEntry, 0)
	f.root.walk(func(n *nameTreeNode[fibStrategyData]) bool {
		if len(n.value.nexthops) > 0 {
			e := FibEntry{Name: n.name, NextHops: make([]FibNextHopEntry, 0, len(n.value.nexthops))}
			for _, nh := range n.value.nexthops {
				e.NextHops = append(e.NextHops, *nh)
			}
			entries = append(entries, e)
		}
		return true
	})
	return entries
}

// SetStrategy selects strategy for the namespace name.
func (f *FibStrategyTree) SetStrategy(name enc.Name, strategy enc.Name) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	node := f.root.fill(name)
	node.value.strategy = strategy.Clone()
}

// UnSetStrategy removes the strategy choice for name. The root choice cannot be removed.
func (f *FibStrategyTree) UnSetStrategy(name enc.Name) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	node := f.root.exact(name)
	if node != nil && node != f.root {
		node.value.strategy = nil
		node.pruneIfEmpty(fibStrategyEmpty)
	}
}

// GetAllForwardingStrategies returns all strategy choices in canonical name order.
func (f *FibStrategyTree) GetAllForwardingStrategies() []StrategyChoiceEntry {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	entries := make([]StrategyChoiceEntry, 0)
	f.root.walk(func(n *nameTreeNode[fibStrategyData]) bool {
		if n.value.strategy != nil {
			entries = append(entries, StrategyChoiceEntry{Name: n.name, Strategy: n.value.strategy})
		}
		return true
	})
	return entries
}
