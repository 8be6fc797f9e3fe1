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
	"github.com/named-data/ndnfw/fw/face"
	"github.com/named-data/ndnfw/fw/table"
)

// BestRouteSuppressionTime is the time to suppress retransmissions of the same Interest.
const BestRouteSuppressionTime = 400 * time.Millisecond

// BestRoute is a forwarding strategy that forwards Interests
// to the nexthop with the lowest cost.
type BestRoute struct {
	StrategyBase
	retx RetxSuppressionFixed
}

func init() {
	strategyInit = append(strategyInit, func() Strategy { return &BestRoute{} })
	StrategyVersions["best-route"] = []uint64{1}
}

func (s *BestRoute) Instantiate(fw *Forwarder) {
	s.NewStrategyBase(fw, "best-route", 1)
	s.retx = RetxSuppressionFixed{Interval: BestRouteSuppressionTime}
}

func (s *BestRoute) AfterReceiveInterest(
	ingress FaceEndpoint,
	interest *defn.Interest,
	entry *table.PitEntry,
) {
	now := s.Now()
	suppression := s.retx.DecidePerPitEntry(entry, now)
	if suppression == RetxSuppress {
		core.Log.Debug(s, "Suppressed Interest - DROP", "name", interest.Name)
		return
	}

	nexthops := s.LookupFib(interest)

	if suppression == RetxNew {
		for _, nh := range nexthops {
			if outFace := s.eligible(ingress, interest, entry, nh, false, now); outFace != nil {
				core.Log.Trace(s, "Forwarding Interest", "name", interest.Name, "faceid", nh.Nexthop)
				s.SendInterest(entry, FaceEndpoint{outFace, 0}, interest)
				return
			}
		}

		core.Log.Debug(s, "No usable nexthop for Interest - NACK", "name", interest.Name)
		s.SendNack(entry, ingress, defn.NackHeader{Reason: defn.NackReasonNoRoute})
		s.RejectPendingInterest(entry)
		return
	}

	// Retransmission: prefer an unused upstream
	for _, nh := range nexthops {
		if outFace := s.eligible(ingress, interest, entry, nh, true, now); outFace != nil {
			core.Log.Trace(s, "Retransmitting Interest to unused nexthop", "name", interest.Name, "faceid", nh.Nexthop)
			s.SendInterest(entry, FaceEndpoint{outFace, 0}, interest)
			return
		}
	}

	// Otherwise the upstream that was used earliest
	var earliestFace face.Face
	var earliest time.Time
	for _, nh := range nexthops {
		outFace := s.eligible(ingress, interest, entry, nh, false, now)
		if outFace == nil {
			continue
		}
		out := entry.OutRecord(nh.Nexthop, 0)
		if out == nil {
			continue
		}
		if earliestFace == nil || out.LastRenewed.Before(earliest) {
			earliestFace = outFace
			earliest = out.LastRenewed
		}
	}
	if earliestFace == nil {
		core.Log.Debug(s, "No nexthop for retransmitted Interest - DROP", "name", interest.Name)
		return
	}
	core.Log.Trace(s, "Retransmitting Interest to earliest used nexthop", "name", interest.Name, "faceid", earliestFace.FaceID())
	s.SendInterest(entry, FaceEndpoint{earliestFace, 0}, interest)
}

func (s *BestRoute) AfterReceiveNack(ingress FaceEndpoint, nack *defn.Nack, entry *table.PitEntry) {
	core.Log.Trace(s, "AfterReceiveNack", "name", nack.Interest.Name, "faceid", ingress.Face.FaceID(), "reason", nack.Reason())
	s.ProcessNack(entry)
}

// eligible returns the face of nh if the Interest may be forwarded there.
// With wantUnused, a face with an unexpired out-record is not eligible.
func (s *BestRoute) eligible(
	ingress FaceEndpoint,
	interest *defn.Interest,
	entry *table.PitEntry,
	nh *table.FibNextHopEntry,
	wantUnused bool,
	now time.Time,
) face.Face {
	outFace := s.Face(nh.Nexthop)
	if outFace == nil {
		return nil
	}
	// do not forward back to the same face, unless it is ad hoc
	if outFace.FaceID() == ingress.Face.FaceID() && outFace.LinkType() != defn.AdHoc {
		return nil
	}
	if wouldViolateScope(ingress.Face, interest, outFace) {
		return nil
	}
	if wantUnused {
		if out := entry.OutRecord(nh.Nexthop, 0); out != nil && out.Expiry.After(now) {
			return nil
		}
	}
	return outFace
}
