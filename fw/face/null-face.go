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

// NullFace is a face that drops all packets.
type NullFace struct {
	faceBase
}

// NewNullFace makes a NullFace.
func NewNullFace() *NullFace {
	f := &NullFace{}
	f.init(defn.NonLocal, defn.PointToPoint)
	return f
}

func (f *NullFace) String() string {
	return f.describe("null-face")
}

func (f *NullFace) SendInterest(*defn.Interest, uint64) {}

func (f *NullFace) SendData(*defn.Data, uint64) {}

func (f *NullFace) SendNack(*defn.Nack, uint64) {}
