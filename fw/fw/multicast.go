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

const MulticastSuppressionTime = 500 * time.Millisecond

// Multicast is a forwarding strategy that forwards Interests to all nexthop faces.
type Multicast struct {
	StrategyBase
	retx RetxSuppressionFixed
}

func init() {
	strategyInit = append(strategyInit, func() Strategy { return &Multicast{} })
	StrategyVersions["multicast"] = []uint64{1}
}

func (s *Multicast) Instantiate(fw *Forwarder) {
	s.NewStrategyBase(fw, "multicast", 1)
	s.retx = RetxSuppressionFixed{Interval: MulticastSuppressionTime}
}

func (s *Multicast) AfterReceiveInterest(
	ingress FaceEndpoint,
	interest *defn.Interest,
	entry *table.PitEntry,
) {
	now := s.Now()
	sent := 0
	suppressed := false

	for _, nh := range s.LookupFib(interest) {
		if s.retx.DecidePerUpstream(entry, nh.Nexthop, now) == RetxSuppress {
			suppressed = true
			continue
		}

		outFace := s.Face(nh.Nexthop)
		if outFace == nil {
			continue
		}
		if outFace.FaceID() == ingress.Face.FaceID() && outFace.LinkType() != defn.AdHoc {
			continue
		}
		if wouldViolateScope(ingress.Face, interest, outFace) {
			continue
		}

		core.Log.Trace(s, "Forwarding Interest", "name", interest.Name, "faceid", nh.Nexthop)
		if s.SendInterest(entry, FaceEndpoint{outFace, 0}, interest) {
			sent++
		}
	}

	if sent == 0 && !suppressed {
		core.Log.Debug(s, "No usable nexthop for Interest - NACK", "name", interest.Name)
		s.SendNack(entry, ingress, defn.NackHeader{Reason: defn.NackReasonNoRoute})
		s.RejectPendingInterest(entry)
	} else if sent == 0 {
		core.Log.Debug(s, "Suppressed Interest - DROP", "name", interest.Name)
	}
}

func (s *Multicast) AfterReceiveNack(ingress FaceEndpoint, nack *defn.Nack, entry *table.PitEntry) {
	core.Log.Trace(s, "AfterReceiveNack", "name", nack.Interest.Name, "faceid", ingress.Face.FaceID(), "reason", nack.Reason())
	s.ProcessNack(entry)
}
