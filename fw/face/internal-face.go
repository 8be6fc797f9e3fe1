/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"github.com/named-data/ndnfw/fw/defn"
)

// InternalHandler receives packets the forwarder sends to an in-process application.
type InternalHandler struct {
	OnInterest func(interest *defn.Interest)
	OnData     func(data *defn.Data)
	OnNack     func(nack *defn.Nack)
}

// InternalFace connects an in-process application to the forwarder.
type InternalFace struct {
	faceBase
	handler InternalHandler
}

// NewInternalFace makes a local point-to-point face delivering to handler.
func NewInternalFace(handler InternalHandler) *InternalFace {
	f := &InternalFace{handler: handler}
	f.init(defn.Local, defn.PointToPoint)
	return f
}

func (f *InternalFace) String() string {
	return f.describe("internal-face")
}

func (f *InternalFace) SendInterest(interest *defn.Interest, _ uint64) {
	if f.handler.OnInterest != nil && !f.IsClosed() {
		f.handler.OnInterest(interest)
	}
}

func (f *InternalFace) SendData(data *defn.Data, _ uint64) {
	if f.handler.OnData != nil && !f.IsClosed() {
		f.handler.OnData(data)
	}
}

func (f *InternalFace) SendNack(nack *defn.Nack, _ uint64) {
	if f.handler.OnNack != nil && !f.IsClosed() {
		f.handler.OnNack(nack)
	}
}

// ExpressInterest hands an Interest from the application to the forwarder.
func (f *InternalFace) ExpressInterest(interest *defn.Interest) {
	f.events.Interest.Emit(InterestEvent{Interest: interest})
}

// PutData hands a Data from the application to the forwarder.
func (f *InternalFace) PutData(data *defn.Data) {
	f.events.Data.Emit(DataEvent{Data: data})
}

// PutNack hands a Nack from the application to the forwarder.
func (f *InternalFace) PutNack(nack *defn.Nack) {
	f.events.Nack.Emit(NackEvent{Nack: nack})
}
