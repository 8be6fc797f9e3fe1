/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"fmt"
	"sort"
	"sync"

	"github.com/named-data/ndnfw/fw/core"
	"github.com/named-data/ndnfw/fw/defn"
)

// Table holds all faces used by the forwarder.
type Table struct {
	lock       sync.RWMutex
	faces      map[uint64]Face
	nextFaceID uint64

	afterAdd     Signal[Face]
	beforeRemove Signal[Face]
}

// NewTable creates an empty face table. Ordinary faces are numbered after the reserved range.
func NewTable() *Table {
	return &Table{
		faces:      make(map[uint64]Face),
		nextFaceID: defn.ReservedMaxFaceID + 1,
	}
}

func (t *Table) String() string {
	return "face-table"
}

// Add assigns the next free face ID to face and registers it.
func (t *Table) Add(face Face) uint64 {
	t.lock.Lock()
	faceID := t.nextFaceID
	t.nextFaceID++
	face.SetFaceID(faceID)
	t.faces[faceID] = face
	t.lock.Unlock()

	core.Log.Debug(t, "Registered face", "faceid", faceID)
	t.afterAdd.Emit(face)
	return faceID
}

// AddReserved registers face under a reserved face ID.
func (t *Table) AddReserved(face Face, faceID uint64) error {
	if faceID == defn.InvalidFaceID || faceID > defn.ReservedMaxFaceID {
		return fmt.Errorf("face ID %d is not in the reserved range", faceID)
	}

	t.lock.Lock()
	if _, ok := t.faces[faceID]; ok {
		t.lock.Unlock()
		return fmt.Errorf("face ID %d is already in use", faceID)
	}
	face.SetFaceID(faceID)
	t.faces[faceID] = face
	t.lock.Unlock()

	core.Log.Debug(t, "Registered reserved face", "faceid", faceID)
	t.afterAdd.Emit(face)
	return nil
}

// Get gets the face with the specified ID (if any) from the face table.
func (t *Table) Get(id uint64) Face {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.faces[id]
}

// GetAll returns all faces ordered by face ID.
func (t *Table) GetAll() []Face {
	t.lock.RLock()
	faces := make([]Face, 0, len(t.faces))
	for _, face := range t.faces {
		faces = append(faces, face)
	}
	t.lock.RUnlock()

	sort.Slice(faces, func(i, j int) bool { return faces[i].FaceID() < faces[j].FaceID() })
	return faces
}

// Remove removes a face from the face table. Observers run before the face disappears.
func (t *Table) Remove(id uint64) {
	face := t.Get(id)
	if face == nil {
		return
	}
	t.beforeRemove.Emit(face)

	t.lock.Lock()
	delete(t.faces, id)
	t.lock.Unlock()
	core.Log.Info(t, "Unregistered face", "faceid", id)
}

// Len returns the number of registered faces.
func (t *Table) Len() int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return len(t.faces)
}

// AfterAdd registers an observer called after a face is added.
func (t *Table) AfterAdd(fn func(Face)) *Subscription {
	return t.afterAdd.Connect(fn)
}

// BeforeRemove registers an observer called before a face is removed.
func (t *Table) BeforeRemove(fn func(Face)) *Subscription {
	return t.beforeRemove.Connect(fn)
}
