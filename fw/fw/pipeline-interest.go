/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"time"

	"github.com/named-data/ndnfw/fw/core"
	"github.com/named-data/ndnfw/fw/defn"
	"github.com/named-data/ndnfw/fw/table"
)

// StartProcessInterest is the entry point of a received Interest.
func (f *Forwarder) StartProcessInterest(ingress FaceEndpoint, interest *defn.Interest) {
	if interest == nil {
		panic("StartProcessInterest called with nil Interest")
	}
	if !f.isRegistered(ingress) {
		core.Log.Warn(f, "Interest has non-existent incoming face - DROP", "name", interest.Name)
		return
	}
	f.onIncomingInterest(ingress, interest)
}

func (f *Forwarder) onIncomingInterest(ingress FaceEndpoint, interest *defn.Interest) {
	core.Log.Trace(f, "OnIncomingInterest", "name", interest.Name, "faceid", ingress.Face.FaceID(), "nonce", interest.Nonce)
	interest.SetTag(defn.TagIncomingFaceID, ingress.Face.FaceID())
	f.counters.NInInterests++

	// /localhost scope control
	if ingress.Face.Scope() == defn.NonLocal && defn.IsLocalhost(interest.Name) {
		core.Log.Debug(f, "Interest from non-local face violates /localhost scope - DROP",
			"name", interest.Name, "faceid", ingress.Face.FaceID())
		return
	}

	if interest.HopLimit != nil && *interest.HopLimit == 0 && ingress.Face.Scope() == defn.NonLocal {
		core.Log.Debug(f, "Interest HopLimit is zero - DROP", "name", interest.Name, "faceid", ingress.Face.FaceID())
		return
	}

	// Loop across PIT entry lifetimes
	if f.dnl.Has(interest.Name, interest.Nonce) {
		core.Log.Debug(f, "Interest is looping (DNL)", "name", interest.Name, "nonce", interest.Nonce)
		f.onInterestLoop(ingress, interest)
		return
	}

	// Loop Nacks carry the Interest as received, everything else works on a copy
	received := interest
	interest = interest.Clone()

	// Strip forwarding hint once the producer region is reached
	if len(interest.ForwardingHint) > 0 && f.regions.IsInProducerRegion(interest.ForwardingHint) {
		core.Log.Debug(f, "Interest reached producer region", "name", interest.Name)
		interest.ForwardingHint = nil
	}

	entry, _ := f.pit.Insert(interest)

	// Loop within the PIT entry
	dup := findDuplicateNonce(entry, interest.Nonce, ingress.Face.FaceID())
	if ingress.Face.LinkType() == defn.PointToPoint {
		// retransmission from the same face is not a loop
		if dup&DuplicateNonceInSame != 0 {
			dup = DuplicateNonceNone
		}
	}
	if dup != DuplicateNonceNone {
		core.Log.Debug(f, "Interest is looping (PIT)", "name", interest.Name, "nonce", interest.Nonce, "dup", dup)
		f.onInterestLoop(ingress, received)
		return
	}

	if interest.HopLimit != nil && *interest.HopLimit > 0 {
		*interest.HopLimit--
	}

	// Only the first requester consults the Content Store
	if !entry.HasInRecords() {
		f.cs.Find(interest,
			func(data *defn.Data) { f.onContentStoreHit(ingress, entry, interest, data) },
			func() { f.onContentStoreMiss(ingress, entry, interest) })
	} else {
		f.onContentStoreMiss(ingress, entry, interest)
	}
}

func (f *Forwarder) onInterestLoop(ingress FaceEndpoint, interest *defn.Interest) {
	if ingress.Face.LinkType() != defn.PointToPoint {
		core.Log.Debug(f, "Looping Interest on non point-to-point face - DROP",
			"name", interest.Name, "faceid", ingress.Face.FaceID())
		return
	}

	// The outgoing Nack pipeline needs an in-record, which a looping Interest never gets.
	core.Log.Debug(f, "Sending Nack for looping Interest", "name", interest.Name, "faceid", ingress.Face.FaceID())
	nack := &defn.Nack{
		Interest: interest,
		Header:   defn.NackHeader{Reason: defn.NackReasonDuplicate},
	}
	ingress.Face.SendNack(nack, ingress.Endpoint)
}

func (f *Forwarder) onContentStoreMiss(ingress FaceEndpoint, entry *table.PitEntry, interest *defn.Interest) {
	core.Log.Trace(f, "OnContentStoreMiss", "name", interest.Name)
	f.counters.NCsMisses++

	now := f.sched.Now()
	entry.InsertOrUpdateInRecord(ingress.Face.FaceID(), ingress.Endpoint, interest, now)

	// Keep the entry until the last in-record expires
	f.setExpiryTimer(entry, max(entry.LatestInRecordExpiry().Sub(now), 0))

	if nextHop, ok := interest.Tag(defn.TagNextHopFaceID); ok {
		if egress := f.faces.Get(nextHop); egress != nil {
			core.Log.Trace(f, "NextHopFaceId is set for Interest", "name", interest.Name, "faceid", nextHop)
			f.onOutgoingInterest(entry, FaceEndpoint{egress, 0}, interest)
		} else {
			core.Log.Debug(f, "Non-existent face specified in NextHopFaceId - DROP", "name", interest.Name, "faceid", nextHop)
		}
		return
	}

	f.effectiveStrategy(entry.Name()).AfterReceiveInterest(ingress, interest, entry)
}

func (f *Forwarder) onContentStoreHit(ingress FaceEndpoint, entry *table.PitEntry, interest *defn.Interest, data *defn.Data) {
	core.Log.Trace(f, "OnContentStoreHit", "name", interest.Name)
	f.counters.NCsHits++

	data.SetTag(defn.TagIncomingFaceID, defn.ContentStoreFaceID)

	entry.SetSatisfied(data.FreshnessPeriod)
	f.setExpiryTimer(entry, 0)

	f.effectiveStrategy(entry.Name()).AfterContentStoreHit(entry, ingress, data)
}

// onOutgoingInterest sends interest to egress and records the out-record.
// It returns false if the Interest was not sent.
func (f *Forwarder) onOutgoingInterest(entry *table.PitEntry, egress FaceEndpoint, interest *defn.Interest) bool {
	if egress.Face == nil || egress.Face.FaceID() == defn.InvalidFaceID {
		core.Log.Warn(f, "Outgoing Interest to invalid face - DROP", "name", interest.Name)
		return false
	}
	core.Log.Trace(f, "OnOutgoingInterest", "name", interest.Name, "faceid", egress.Face.FaceID())

	if interest.HopLimit != nil && *interest.HopLimit == 0 && egress.Face.Scope() == defn.NonLocal {
		core.Log.Debug(f, "Prevent send Interest with HopLimit=0 to non-local face - DROP",
			"name", interest.Name, "faceid", egress.Face.FaceID())
		return false
	}

	entry.InsertOrUpdateOutRecord(egress.Face.FaceID(), egress.Endpoint, interest, f.sched.Now())

	f.counters.NOutInterests++
	egress.Face.SendInterest(interest, egress.Endpoint)
	return true
}

func (f *Forwarder) onInterestFinalize(entry *table.PitEntry) {
	core.Log.Trace(f, "OnInterestFinalize", "name", entry.Name(), "satisfied", entry.Satisfied())

	f.insertDeadNonceList(entry, nil)

	if entry.Satisfied() {
		f.counters.NSatisfiedInterests++
	} else {
		f.counters.NUnsatisfiedInterests++
	}

	// Erase also cancels the expiry timer
	f.pit.Erase(entry)
}

func (f *Forwarder) onDroppedInterest(egress FaceEndpoint, interest *defn.Interest) {
	core.Log.Trace(f, "OnDroppedInterest", "name", interest.Name, "faceid", egress.Face.FaceID())
	f.effectiveStrategy(interest.Name).OnDroppedInterest(egress, interest)
}

// setExpiryTimer replaces the expiry timer of entry so it finalizes after d.
func (f *Forwarder) setExpiryTimer(entry *table.PitEntry, d time.Duration) {
	f.pit.SetExpiryTimer(entry, d)
}

// insertDeadNonceList records the nonces of entry that may still be looping.
// With a nil upstream every out-record is recorded, otherwise only those towards upstream.
func (f *Forwarder) insertDeadNonceList(entry *table.PitEntry, upstream *uint64) {
	if entry.Satisfied() {
		// Data that outlives the list needs no loop protection
		needed := entry.MustBeFresh() && entry.DataFreshnessPeriod() < f.dnl.Lifetime()
		if !needed {
			return
		}
	}

	for _, out := range entry.OutRecords() {
		if upstream == nil || out.FaceID == *upstream {
			f.dnl.Add(entry.Name(), out.LastNonce)
		}
	}
}

// isRegistered returns true if the face of fe is the one registered under its ID.
func (f *Forwarder) isRegistered(fe FaceEndpoint) bool {
	return fe.Face != nil && f.faces.Get(fe.Face.FaceID()) == fe.Face
}
