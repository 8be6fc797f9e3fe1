/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"github.com/named-data/ndnfw/fw/core"
	"github.com/named-data/ndnfw/fw/defn"
	"github.com/named-data/ndnfw/fw/table"
)

// StartProcessNack is the entry point of a received Nack.
func (f *Forwarder) StartProcessNack(ingress FaceEndpoint, nack *defn.Nack) {
	if nack == nil || nack.Interest == nil {
		panic("StartProcessNack called with nil Nack")
	}
	if !f.isRegistered(ingress) {
		core.Log.Warn(f, "Nack has non-existent incoming face - DROP", "name", nack.Interest.Name)
		return
	}
	f.onIncomingNack(ingress, nack)
}

func (f *Forwarder) onIncomingNack(ingress FaceEndpoint, nack *defn.Nack) {
	name := nack.Interest.Name
	faceID := ingress.Face.FaceID()
	nack.SetTag(defn.TagIncomingFaceID, faceID)
	f.counters.NInNacks++

	if ingress.Face.LinkType() != defn.PointToPoint {
		core.Log.Debug(f, "Nack on non point-to-point face - DROP", "name", name, "faceid", faceID, "reason", nack.Reason())
		return
	}

	entry := f.pit.Find(nack.Interest)
	if entry == nil {
		core.Log.Debug(f, "Nack has no PIT entry - DROP", "name", name, "faceid", faceID, "reason", nack.Reason())
		return
	}

	out := entry.OutRecord(faceID, ingress.Endpoint)
	if out == nil {
		core.Log.Debug(f, "Nack has no out-record - DROP", "name", name, "faceid", faceID, "reason", nack.Reason())
		return
	}

	// Nack for an Interest that has since been retransmitted
	if out.LastNonce != nack.Interest.Nonce {
		core.Log.Debug(f, "Nack has wrong nonce - DROP", "name", name, "faceid", faceID,
			"nonce", nack.Interest.Nonce, "expected", out.LastNonce)
		return
	}

	core.Log.Trace(f, "OnIncomingNack", "name", name, "faceid", faceID, "reason", nack.Reason())

	header := nack.Header
	out.IncomingNack = &header

	if !hasPendingOutRecords(entry, f.sched.Now()) {
		f.setExpiryTimer(entry, 0)
	}

	f.effectiveStrategy(entry.Name()).AfterReceiveNack(ingress, nack, entry)
}

func (f *Forwarder) onOutgoingNack(entry *table.PitEntry, egress FaceEndpoint, header defn.NackHeader) {
	if egress.Face == nil || egress.Face.FaceID() == defn.InvalidFaceID {
		core.Log.Warn(f, "Outgoing Nack to invalid face - DROP", "name", entry.Name(), "reason", header.Reason)
		return
	}
	faceID := egress.Face.FaceID()

	in := entry.InRecord(faceID, egress.Endpoint)
	if in == nil {
		core.Log.Debug(f, "Outgoing Nack has no in-record - DROP", "name", entry.Name(), "faceid", faceID, "reason", header.Reason)
		return
	}

	if egress.Face.LinkType() != defn.PointToPoint {
		core.Log.Debug(f, "Outgoing Nack on non point-to-point face - DROP", "name", entry.Name(), "faceid", faceID, "reason", header.Reason)
		return
	}

	core.Log.Trace(f, "OnOutgoingNack", "name", entry.Name(), "faceid", faceID, "reason", header.Reason)

	nack := &defn.Nack{
		Interest: in.Interest,
		Header:   header,
	}
	entry.DeleteInRecord(faceID, egress.Endpoint)

	f.counters.NOutNacks++
	egress.Face.SendNack(nack, egress.Endpoint)
}
