/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"fmt"
	"sync/atomic"

	"github.com/named-data/ndnfw/fw/defn"
)

// Face is a network or application endpoint attached to the forwarder.
// Sends must not block.
type Face interface {
	String() string

	FaceID() uint64
	SetFaceID(faceID uint64)
	Scope() defn.Scope
	LinkType() defn.LinkType

	SendInterest(interest *defn.Interest, endpoint uint64)
	SendData(data *defn.Data, endpoint uint64)
	SendNack(nack *defn.Nack, endpoint uint64)

	Events() *Events
	Close()
}

// faceBase holds the fields shared by all faces.
type faceBase struct {
	faceID   atomic.Uint64
	scope    defn.Scope
	linkType defn.LinkType
	events   Events
	closed   atomic.Bool
}

func (f *faceBase) init(scope defn.Scope, linkType defn.LinkType) {
	f.scope = scope
	f.linkType = linkType
}

func (f *faceBase) FaceID() uint64 {
	return f.faceID.Load()
}

func (f *faceBase) SetFaceID(faceID uint64) {
	f.faceID.Store(faceID)
}

func (f *faceBase) Scope() defn.Scope {
	return f.scope
}

func (f *faceBase) LinkType() defn.LinkType {
	return f.linkType
}

func (f *faceBase) Events() *Events {
	return &f.events
}

func (f *faceBase) Close() {
	f.closed.Store(true)
}

// IsClosed returns true once Close has been called.
func (f *faceBase) IsClosed() bool {
	return f.closed.Load()
}

func (f *faceBase) describe(kind string) string {
	return fmt.Sprintf("%s (faceid=%d scope=%s link=%s)", kind, f.FaceID(), f.scope, f.linkType)
}
