/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"sort"

	enc "github.com/named-data/ndnfw/std/encoding"
)

// nameTreeNode is a node of a name tree. Children are indexed by component hash.
type nameTreeNode[T any] struct {
	name      enc.Name
	component enc.Component
	depth     int
	parent    *nameTreeNode[T]
	children  map[uint64][]*nameTreeNode[T]
	nchildren int

	value T
}

func newNameTreeRoot[T any]() *nameTreeNode[T] {
	return &nameTreeNode[T]{name: enc.Name{}}
}

// child returns the direct child holding component c, or nil.
func (n *nameTreeNode[T]) child(c enc.Component) *nameTreeNode[T] {
	for _, child := range n.children[c.Hash()] {
		if child.component.Equal(c) {
			return child
		}
	}
	return nil
}

func (n *nameTreeNode[T]) addChild(c enc.Component) *nameTreeNode[T] {
	c = c.Clone()
	child := &nameTreeNode[T]{
		name:      n.name.Append(c),
		component: c,
		depth:     n.depth + 1,
		parent:    n,
	}
	if n.children == nil {
		n.children = make(map[uint64][]*nameTreeNode[T])
	}
	h := c.Hash()
	n.children[h] = append(n.children[h], child)
	n.nchildren++
	return child
}

func (n *nameTreeNode[T]) removeChild(child *nameTreeNode[T]) {
	h := child.component.Hash()
	bucket := n.children[h]
	for i, c := range bucket {
		if c == child {
			bucket = append(bucket[:i], bucket[i+1:]...)
			n.nchildren--
			break
		}
	}
	if len(bucket) == 0 {
		delete(n.children, h)
	} else {
		n.children[h] = bucket
	}
}

// longestPrefix returns the deepest existing node whose name is a prefix of name.
func (n *nameTreeNode[T]) longestPrefix(name enc.Name) *nameTreeNode[T] {
	node := n
	for node.depth < len(name) {
		next := node.child(name[node.depth])
		if next == nil {
			break
		}
		node = next
	}
	return node
}

// exact returns the node for name, or nil if absent.
func (n *nameTreeNode[T]) exact(name enc.Name) *nameTreeNode[T] {
	node := n.longestPrefix(name)
	if node.depth == len(name) {
		return node
	}
	return nil
}

// fill creates the nodes needed to reach name and returns the last one.
func (n *nameTreeNode[T]) fill(name enc.Name) *nameTreeNode[T] {
	node := n.longestPrefix(name)
	for node.depth < len(name) {
		node = node.addChild(name[node.depth])
	}
	return node
}

// pruneIfEmpty removes the node and its ancestors while they hold no children and isEmpty holds.
func (n *nameTreeNode[T]) pruneIfEmpty(isEmpty func(*nameTreeNode[T]) bool) {
	for node := n; node.parent != nil && node.nchildren == 0 && isEmpty(node); node = node.parent {
		node.parent.removeChild(node)
	}
}

// sortedChildren returns the children in canonical name order.
func (n *nameTreeNode[T]) sortedChildren() []*nameTreeNode[T] {
	ret := make([]*nameTreeNode[T], 0, n.nchildren)
	for _, bucket := range n.children {
		ret = append(ret, bucket...)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].component.Compare(ret[j].component) < 0
	})
	return ret
}

// walk visits the node and all descendants in canonical pre-order.
// Returning false from fn stops the walk.
func (n *nameTreeNode[T]) walk(fn func(*nameTreeNode[T]) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.sortedChildren() {
		if !child.walk(fn) {
			return false
		}
	}
	return true
}
