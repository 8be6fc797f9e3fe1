/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"fmt"
	"sort"
	"time"

	"github.com/named-data/ndnfw/fw/core"
	"github.com/named-data/ndnfw/fw/defn"
	"github.com/named-data/ndnfw/fw/face"
	"github.com/named-data/ndnfw/fw/table"
	enc "github.com/named-data/ndnfw/std/encoding"
)

// Strategy represents a forwarding strategy.
// Callbacks run on the forwarding goroutine and forward packets through StrategyBase.
type Strategy interface {
	Instantiate(fw *Forwarder)
	String() string
	GetName() enc.Name

	AfterReceiveInterest(
		ingress FaceEndpoint,
		interest *defn.Interest,
		entry *table.PitEntry)
	AfterContentStoreHit(
		entry *table.PitEntry,
		ingress FaceEndpoint,
		data *defn.Data)
	BeforeSatisfyInterest(
		entry *table.PitEntry,
		ingress FaceEndpoint,
		data *defn.Data)
	AfterReceiveData(
		entry *table.PitEntry,
		ingress FaceEndpoint,
		data *defn.Data)
	AfterReceiveNack(
		ingress FaceEndpoint,
		nack *defn.Nack,
		entry *table.PitEntry)
	OnDroppedInterest(
		egress FaceEndpoint,
		interest *defn.Interest)
}

// StrategyBase provides common helper methods and default callbacks for forwarding strategies.
type StrategyBase struct {
	fw      *Forwarder
	name    enc.Name
	version uint64
	logName string
}

// NewStrategyBase is a helper that allows specific strategies to initialize the base.
func (s *StrategyBase) NewStrategyBase(fw *Forwarder, name string, version uint64) {
	s.fw = fw
	s.name = defn.STRATEGY_PREFIX.Append(
		enc.NewGenericComponent(name),
		enc.NewVersionComponent(version))
	s.version = version
	s.logName = name
}

func (s *StrategyBase) String() string {
	return fmt.Sprintf("%s (v=%d)", s.logName, s.version)
}

// GetName returns the name of strategy, including version information.
func (s *StrategyBase) GetName() enc.Name {
	return s.name
}

// AfterContentStoreHit sends the cached Data back to the requester.
func (s *StrategyBase) AfterContentStoreHit(entry *table.PitEntry, ingress FaceEndpoint, data *defn.Data) {
	core.Log.Trace(s, "AfterContentStoreHit", "name", data.Name, "faceid", ingress.Face.FaceID())
	s.SendData(entry, ingress, data)
}

func (s *StrategyBase) BeforeSatisfyInterest(*table.PitEntry, FaceEndpoint, *defn.Data) {}

// AfterReceiveData sends the Data to every pending downstream.
func (s *StrategyBase) AfterReceiveData(entry *table.PitEntry, ingress FaceEndpoint, data *defn.Data) {
	core.Log.Trace(s, "AfterReceiveData", "name", data.Name, "inrecords", len(entry.InRecords()))
	s.SendDataToAll(entry, ingress, data)
}

func (s *StrategyBase) AfterReceiveNack(FaceEndpoint, *defn.Nack, *table.PitEntry) {}

func (s *StrategyBase) OnDroppedInterest(FaceEndpoint, *defn.Interest) {}

// Now returns the forwarder's current time.
func (s *StrategyBase) Now() time.Time {
	return s.fw.sched.Now()
}

// Face returns the face with the given ID, or nil.
func (s *StrategyBase) Face(faceID uint64) face.Face {
	return s.fw.faces.Get(faceID)
}

// LookupFib returns the nexthops for interest ordered by cost.
// When the Interest carries a forwarding hint, the first delegation with nexthops is used.
func (s *StrategyBase) LookupFib(interest *defn.Interest) []*table.FibNextHopEntry {
	var nexthops []*table.FibNextHopEntry
	if len(interest.ForwardingHint) == 0 {
		nexthops = s.fw.fib.FindNextHops(interest.Name)
	} else {
		for _, delegation := range interest.ForwardingHint {
			if nexthops = s.fw.fib.FindNextHops(delegation); len(nexthops) > 0 {
				break
			}
		}
	}

	sort.SliceStable(nexthops, func(i, j int) bool {
		return nexthops[i].Cost < nexthops[j].Cost
	})
	return nexthops
}

// SendInterest sends interest to egress. It returns false if the Interest was not sent.
func (s *StrategyBase) SendInterest(entry *table.PitEntry, egress FaceEndpoint, interest *defn.Interest) bool {
	return s.fw.onOutgoingInterest(entry, egress, interest)
}

// SendData sends data to egress and removes its in-record.
func (s *StrategyBase) SendData(entry *table.PitEntry, egress FaceEndpoint, data *defn.Data) {
	entry.DeleteInRecord(egress.Face.FaceID(), egress.Endpoint)
	s.fw.onOutgoingData(data, egress)
}

// SendDataToAll sends data to every unexpired downstream except ingress, unless ingress is ad hoc.
func (s *StrategyBase) SendDataToAll(entry *table.PitEntry, ingress FaceEndpoint, data *defn.Data) {
	now := s.Now()
	for _, ds := range s.downstreams(entry) {
		in := entry.InRecord(ds.Face.FaceID(), ds.Endpoint)
		if in == nil || !in.Expiry.After(now) {
			continue
		}
		if ds.Face.FaceID() == ingress.Face.FaceID() && ds.Endpoint == ingress.Endpoint &&
			ds.Face.LinkType() != defn.AdHoc {
			continue
		}
		s.SendData(entry, ds, data)
	}
}

// SendNack sends a Nack to egress, which must have an in-record.
func (s *StrategyBase) SendNack(entry *table.PitEntry, egress FaceEndpoint, header defn.NackHeader) {
	s.fw.onOutgoingNack(entry, egress, header)
}

// SendNacks sends a Nack to every downstream except those in exceptFaces.
func (s *StrategyBase) SendNacks(entry *table.PitEntry, header defn.NackHeader, exceptFaces ...uint64) {
	for _, ds := range s.downstreams(entry) {
		skip := false
		for _, except := range exceptFaces {
			if ds.Face.FaceID() == except {
				skip = true
				break
			}
		}
		if !skip {
			s.SendNack(entry, ds, header)
		}
	}
}

// RejectPendingInterest finalizes the entry immediately without sending anything.
func (s *StrategyBase) RejectPendingInterest(entry *table.PitEntry) {
	s.fw.setExpiryTimer(entry, 0)
}

// ProcessNack Nacks the downstreams once every upstream has Nacked,
// using the least severe reason received.
func (s *StrategyBase) ProcessNack(entry *table.PitEntry) {
	notNacked := 0
	var lastNotNacked *table.PitRecord
	leastSevere := defn.NackReasonNone
	for _, out := range entry.OutRecords() {
		if out.IncomingNack == nil {
			notNacked++
			lastNotNacked = out
			continue
		}
		if out.IncomingNack.Reason.LessSevere(leastSevere) {
			leastSevere = out.IncomingNack.Reason
		}
	}
	header := defn.NackHeader{Reason: leastSevere}

	if notNacked == 1 {
		// the one upstream still pending is also a downstream: it cannot answer itself
		if entry.InRecord(lastNotNacked.FaceID, lastNotNacked.Endpoint) != nil {
			if egress := s.Face(lastNotNacked.FaceID); egress != nil {
				core.Log.Debug(s, "Nack to downstream that is the last pending upstream", "name", entry.Name(), "faceid", egress.FaceID())
				s.SendNack(entry, FaceEndpoint{egress, lastNotNacked.Endpoint}, header)
			}
		}
	}
	if notNacked > 0 {
		return
	}

	core.Log.Debug(s, "All upstreams Nacked", "name", entry.Name(), "reason", header.Reason)
	s.SendNacks(entry, header)
}

// downstreams returns the in-record faces that still exist, in record order.
func (s *StrategyBase) downstreams(entry *table.PitEntry) []FaceEndpoint {
	ret := make([]FaceEndpoint, 0, len(entry.InRecords()))
	for _, in := range entry.InRecords() {
		if fc := s.Face(in.FaceID); fc != nil {
			ret = append(ret, FaceEndpoint{fc, in.Endpoint})
		}
	}
	return ret
}
