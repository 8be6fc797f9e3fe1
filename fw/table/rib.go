/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"sort"
	"sync"
	"time"

	enc "github.com/named-data/ndnfw/std/encoding"
)

// Route flags.
const (
	RouteFlagChildInherit uint64 = 1
	RouteFlagCapture      uint64 = 2
)

// Route is a single route of a RIB entry.
type Route struct {
	FaceID           uint64
	Origin           uint64
	Cost             uint64
	Flags            uint64
	ExpirationPeriod *time.Duration
}

func (r *Route) HasCaptureFlag() bool {
	return r.Flags&RouteFlagCapture != 0
}

func (r *Route) HasChildInheritFlag() bool {
	return r.Flags&RouteFlagChildInherit != 0
}

// RibEntry is a snapshot of the routes of one name.
type RibEntry struct {
	Name   enc.Name
	Routes []Route
}

// RibTable holds routes per name and flattens them into the FIB.
type RibTable struct {
	root  *nameTreeNode[[]*Route]
	fib   *FibStrategyTree
	mutex sync.RWMutex
}

// NewRibTable creates an empty RIB that maintains the nexthops of fib.
func NewRibTable(fib *FibStrategyTree) *RibTable {
	return &RibTable{
		root: newNameTreeRoot[[]*Route](),
		fib:  fib,
	}
}

func (r *RibTable) String() string {
	return "rib"
}

func ribEmpty(n *nameTreeNode[[]*Route]) bool {
	return len(n.value) == 0
}

func hasCaptureRoute(n *nameTreeNode[[]*Route]) bool {
	for _, route := range n.value {
		if route.HasCaptureFlag() {
			return true
		}
	}
	return false
}

// updateNexthops recomputes the FIB nexthops of node and its descendants.
func (r *RibTable) updateNexthops(node *nameTreeNode[[]*Route]) {
	r.fib.ClearNextHops(node.name)

	if len(node.value) > 0 {
		routes := append([]*Route{}, node.value...)
		if !hasCaptureRoute(node) {
			for p := node.parent; p != nil; p = p.parent {
				for _, route := range p.value {
					if route.HasChildInheritFlag() {
						routes = append(routes, route)
					}
				}
				if hasCaptureRoute(p) {
					break
				}
			}
		}

		minCost := make(map[uint64]uint64) // FaceID -> Cost
		for _, route := range routes {
			if cost, ok := minCost[route.FaceID]; !ok || route.Cost < cost {
				minCost[route.FaceID] = route.Cost
			}
		}
		faces := make([]uint64, 0, len(minCost))
		for faceID := range minCost {
			faces = append(faces, faceID)
		}
		sort.Slice(faces, func(i, j int) bool { return faces[i] < faces[j] })
		for _, faceID := range faces {
			r.fib.InsertNextHop(node.name, faceID, minCost[faceID])
		}
	}

	for _, child := range node.sortedChildren() {
		r.updateNexthops(child)
	}
}

// AddRoute adds a route, or updates the route with the same face and origin.
// It returns true if the route is new.
func (r *RibTable) AddRoute(name enc.Name, route *Route) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	node := r.root.fill(name)
	defer r.updateNexthops(node)

	for _, existing := range node.value {
		if existing.FaceID == route.FaceID && existing.Origin == route.Origin {
			existing.Cost = route.Cost
			existing.Flags = route.Flags
			existing.ExpirationPeriod = route.ExpirationPeriod
			return false
		}
	}

	copied := *route
	node.value = append(node.value, &copied)
	return true
}

// RemoveRoute removes the route with the given face and origin.
// It returns true if a route was removed.
func (r *RibTable) RemoveRoute(name enc.Name, faceID uint64, origin uint64) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	node := r.root.exact(name)
	if node == nil {
		return false
	}

	removed := false
	for i, route := range node.value {
		if route.FaceID == faceID && route.Origin == origin {
			node.value = append(node.value[:i], node.value[i+1:]...)
			removed = true
			break
		}
	}
	if removed {
		r.updateNexthops(node)
		node.pruneIfEmpty(ribEmpty)
	}
	return removed
}

// HasFaceID returns true if the entry for name has a route via faceID.
func (r *RibTable) HasFaceID(name enc.Name, faceID uint64) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	node := r.root.exact(name)
	if node == nil {
		return false
	}
	for _, route := range node.value {
		if route.FaceID == faceID {
			return true
		}
	}
	return false
}

// CleanUpFace removes every route via faceID.
func (r *RibTable) CleanUpFace(faceID uint64) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	touched := make([]*nameTreeNode[[]*Route], 0)
	r.root.walk(func(n *nameTreeNode[[]*Route]) bool {
		kept := n.value[:0]
		for _, route := range n.value {
			if route.FaceID != faceID {
				kept = append(kept, route)
			}
		}
		if len(kept) != len(n.value) {
			n.value = kept
			touched = append(touched, n)
		}
		return true
	})

	for _, n := range touched {
		r.updateNexthops(n)
	}
	for _, n := range touched {
		n.pruneIfEmpty(ribEmpty)
	}
}

// GetAllEntries returns all entries with routes in canonical name order.
func (r *RibTable) GetAllEntries() []RibEntry {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	entries := make([]RibEntry, 0)
	r.root.walk(func(n *nameTreeNode[[]*Route]) bool {
		if len(n.value) > 0 {
			e := RibEntry{Name: n.name, Routes: make([]Route, 0, len(n.value))}
			for _, route := range n.value {
				e.Routes = append(e.Routes, *route)
			}
			entries = append(entries, e)
		}
		return true
	})
	return entries
}
