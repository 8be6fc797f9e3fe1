/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"sort"

	"github.com/named-data/ndnfw/fw/core"
	"github.com/named-data/ndnfw/fw/defn"
)

// StartProcessData is the entry point of a received Data.
func (f *Forwarder) StartProcessData(ingress FaceEndpoint, data *defn.Data) {
	if data == nil {
		panic("StartProcessData called with nil Data")
	}
	if !f.isRegistered(ingress) {
		core.Log.Warn(f, "Data has non-existent incoming face - DROP", "name", data.Name)
		return
	}
	f.onIncomingData(ingress, data)
}

func (f *Forwarder) onIncomingData(ingress FaceEndpoint, data *defn.Data) {
	core.Log.Trace(f, "OnIncomingData", "name", data.Name, "faceid", ingress.Face.FaceID())
	data.SetTag(defn.TagIncomingFaceID, ingress.Face.FaceID())
	f.counters.NInData++

	// /localhost scope control
	if ingress.Face.Scope() == defn.NonLocal && defn.IsLocalhost(data.Name) {
		core.Log.Debug(f, "Data from non-local face violates /localhost scope - DROP",
			"name", data.Name, "faceid", ingress.Face.FaceID())
		return
	}

	entries := f.pit.FindAllDataMatches(data)
	if len(entries) == 0 {
		f.onDataUnsolicited(ingress, data)
		return
	}

	f.cs.Insert(data, false)

	ingressID := ingress.Face.FaceID()

	if len(entries) == 1 {
		entry := entries[0]
		core.Log.Trace(f, "Data matches PIT entry", "name", data.Name, "entry", entry)

		f.setExpiryTimer(entry, 0)
		f.effectiveStrategy(entry.Name()).AfterReceiveData(entry, ingress, data)

		entry.SetSatisfied(data.FreshnessPeriod)
		f.insertDeadNonceList(entry, &ingressID)
		entry.DeleteOutRecord(ingressID, ingress.Endpoint)
		return
	}

	// Several entries match: notify every pending downstream once, without the strategy choosing
	type downstream struct {
		faceID   uint64
		endpoint uint64
	}
	pending := make(map[downstream]struct{})
	now := f.sched.Now()

	for _, entry := range entries {
		core.Log.Trace(f, "Data matches PIT entry", "name", data.Name, "entry", entry)

		for _, in := range entry.InRecords() {
			if in.Expiry.After(now) {
				pending[downstream{in.FaceID, in.Endpoint}] = struct{}{}
			}
		}

		f.setExpiryTimer(entry, 0)
		f.effectiveStrategy(entry.Name()).BeforeSatisfyInterest(entry, ingress, data)

		entry.SetSatisfied(data.FreshnessPeriod)
		f.insertDeadNonceList(entry, &ingressID)
		entry.ClearInRecords()
		entry.DeleteOutRecord(ingressID, ingress.Endpoint)
	}

	downstreams := make([]downstream, 0, len(pending))
	for ds := range pending {
		downstreams = append(downstreams, ds)
	}
	sort.Slice(downstreams, func(i, j int) bool {
		if downstreams[i].faceID != downstreams[j].faceID {
			return downstreams[i].faceID < downstreams[j].faceID
		}
		return downstreams[i].endpoint < downstreams[j].endpoint
	})

	for _, ds := range downstreams {
		if ds.faceID == ingressID && ds.endpoint == ingress.Endpoint &&
			ingress.Face.LinkType() != defn.AdHoc {
			continue
		}
		egress := f.faces.Get(ds.faceID)
		if egress == nil {
			core.Log.Debug(f, "Pending downstream face is gone - DROP", "name", data.Name, "faceid", ds.faceID)
			continue
		}
		f.onOutgoingData(data, FaceEndpoint{egress, ds.endpoint})
	}
}

func (f *Forwarder) onDataUnsolicited(ingress FaceEndpoint, data *defn.Data) {
	decision := f.unsolicited.Decide(ingress.Face, data)
	if decision == UnsolicitedDataCache {
		f.cs.Insert(data, true)
	}
	core.Log.Debug(f, "Unsolicited Data", "name", data.Name, "faceid", ingress.Face.FaceID(), "decision", decision)
}

func (f *Forwarder) onOutgoingData(data *defn.Data, egress FaceEndpoint) {
	if egress.Face == nil || egress.Face.FaceID() == defn.InvalidFaceID {
		core.Log.Warn(f, "Outgoing Data to invalid face - DROP", "name", data.Name)
		return
	}
	core.Log.Trace(f, "OnOutgoingData", "name", data.Name, "faceid", egress.Face.FaceID())

	// /localhost scope control
	if egress.Face.Scope() == defn.NonLocal && defn.IsLocalhost(data.Name) {
		core.Log.Debug(f, "Data cannot be sent to non-local face since violates /localhost scope - DROP",
			"name", data.Name, "faceid", egress.Face.FaceID())
		return
	}

	f.counters.NOutData++
	egress.Face.SendData(data, egress.Endpoint)
}
