/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/named-data/ndnfw/fw/defn"
	"github.com/named-data/ndnfw/fw/sched"
	enc "github.com/named-data/ndnfw/std/encoding"
)

// PitRecord is a downstream (in-record) or upstream (out-record) of a PIT entry.
type PitRecord struct {
	FaceID      uint64
	Endpoint    uint64
	LastNonce   uint32
	LastRenewed time.Time
	Expiry      time.Time
	// Interest most recently received from (in-record) or sent to (out-record) this face.
	Interest *defn.Interest
	// Nack received for the last nonce, if any.
	IncomingNack *defn.NackHeader
}

func (r *PitRecord) matches(faceID uint64, endpoint uint64) bool {
	return r.FaceID == faceID && r.Endpoint == endpoint
}

func (r *PitRecord) update(interest *defn.Interest, now time.Time) {
	r.LastNonce = interest.Nonce
	r.LastRenewed = now
	r.Expiry = now.Add(interest.LifetimeOrDefault())
	r.Interest = interest
	r.IncomingNack = nil
}

// PitEntry is the state of one pending (name, selectors) tuple.
type PitEntry struct {
	interest    *defn.Interest
	name        enc.Name
	canBePrefix bool
	mustBeFresh bool

	inRecords  []*PitRecord
	outRecords []*PitRecord

	satisfied           bool
	dataFreshnessPeriod time.Duration

	expiryTimer *sched.EventID
	expiryTime  time.Time

	node *nameTreeNode[[]*PitEntry]
}

func (e *PitEntry) String() string {
	return e.name.String()
}

// Interest returns the Interest that created the entry.
func (e *PitEntry) Interest() *defn.Interest {
	return e.interest
}

func (e *PitEntry) Name() enc.Name {
	return e.name
}

func (e *PitEntry) CanBePrefix() bool {
	return e.canBePrefix
}

func (e *PitEntry) MustBeFresh() bool {
	return e.mustBeFresh
}

// CanMatch returns true if the Interest would be aggregated into this entry.
func (e *PitEntry) CanMatch(interest *defn.Interest) bool {
	return e.canBePrefix == interest.CanBePrefix &&
		e.mustBeFresh == interest.MustBeFresh &&
		e.name.Equal(interest.Name)
}

// Satisfied returns true once the entry has been satisfied by Data.
func (e *PitEntry) Satisfied() bool {
	return e.satisfied
}

// SetSatisfied marks the entry as satisfied by Data with the given freshness.
// There is no way to unset it.
func (e *PitEntry) SetSatisfied(freshness time.Duration) {
	e.satisfied = true
	e.dataFreshnessPeriod = freshness
}

// DataFreshnessPeriod returns the freshness of the satisfying Data.
func (e *PitEntry) DataFreshnessPeriod() time.Duration {
	return e.dataFreshnessPeriod
}

// ExpiryTime returns the instant the expiry timer is set to fire.
// It is zero while no timer is set.
func (e *PitEntry) ExpiryTime() time.Time {
	return e.expiryTime
}

// HasExpiryTimer returns true while a finalize is scheduled.
func (e *PitEntry) HasExpiryTimer() bool {
	return e.expiryTimer.Pending()
}

// InRecords returns the downstream records.
func (e *PitEntry) InRecords() []*PitRecord {
	return e.inRecords
}

// HasInRecords returns true if any downstream is pending.
func (e *PitEntry) HasInRecords() bool {
	return len(e.inRecords) > 0
}

// InRecord returns the in-record for (faceID, endpoint), or nil.
func (e *PitEntry) InRecord(faceID uint64, endpoint uint64) *PitRecord {
	for _, r := range e.inRecords {
		if r.matches(faceID, endpoint) {
			return r
		}
	}
	return nil
}

// InsertOrUpdateInRecord records interest as the latest from (faceID, endpoint).
// There is at most one in-record per (faceID, endpoint).
func (e *PitEntry) InsertOrUpdateInRecord(faceID uint64, endpoint uint64, interest *defn.Interest, now time.Time) *PitRecord {
	r := e.InRecord(faceID, endpoint)
	if r == nil {
		r = &PitRecord{FaceID: faceID, Endpoint: endpoint}
		e.inRecords = append(e.inRecords, r)
	}
	r.update(interest, now)
	return r
}

// DeleteInRecord removes the in-record for (faceID, endpoint).
func (e *PitEntry) DeleteInRecord(faceID uint64, endpoint uint64) {
	e.inRecords = deleteRecord(e.inRecords, func(r *PitRecord) bool { return r.matches(faceID, endpoint) })
}

// ClearInRecords removes all in-records.
func (e *PitEntry) ClearInRecords() {
	e.inRecords = nil
}

// LatestInRecordExpiry returns the latest expiry among in-records.
func (e *PitEntry) LatestInRecordExpiry() time.Time {
	var latest time.Time
	for _, r := range e.inRecords {
		if r.Expiry.After(latest) {
			latest = r.Expiry
		}
	}
	return latest
}

// OutRecords returns the upstream records.
func (e *PitEntry) OutRecords() []*PitRecord {
	return e.outRecords
}

// OutRecord returns the out-record for (faceID, endpoint), or nil.
func (e *PitEntry) OutRecord(faceID uint64, endpoint uint64) *PitRecord {
	for _, r := range e.outRecords {
		if r.matches(faceID, endpoint) {
			return r
		}
	}
	return nil
}

// InsertOrUpdateOutRecord records interest as the latest sent to (faceID, endpoint).
func (e *PitEntry) InsertOrUpdateOutRecord(faceID uint64, endpoint uint64, interest *defn.Interest, now time.Time) *PitRecord {
	r := e.OutRecord(faceID, endpoint)
	if r == nil {
		r = &PitRecord{FaceID: faceID, Endpoint: endpoint}
		e.outRecords = append(e.outRecords, r)
	}
	r.update(interest, now)
	return r
}

// DeleteOutRecord removes the out-record for (faceID, endpoint).
func (e *PitEntry) DeleteOutRecord(faceID uint64, endpoint uint64) {
	e.outRecords = deleteRecord(e.outRecords, func(r *PitRecord) bool { return r.matches(faceID, endpoint) })
}

// deleteFace removes every record of faceID. It returns true if a record was
// removed and the entry is left with no records.
func (e *PitEntry) deleteFace(faceID uint64) bool {
	before := len(e.inRecords) + len(e.outRecords)
	byFace := func(r *PitRecord) bool { return r.FaceID == faceID }
	e.inRecords = deleteRecords(e.inRecords, byFace)
	e.outRecords = deleteRecords(e.outRecords, byFace)
	after := len(e.inRecords) + len(e.outRecords)
	return after < before && after == 0
}

func deleteRecord(records []*PitRecord, pred func(*PitRecord) bool) []*PitRecord {
	for i, r := range records {
		if pred(r) {
			copy(records[i:], records[i+1:])
			records[len(records)-1] = nil
			return records[:len(records)-1]
		}
	}
	return records
}

// deleteRecords removes all records matching pred.
func deleteRecords(records []*PitRecord, pred func(*PitRecord) bool) []*PitRecord {
	ret := records[:0]
	for _, r := range records {
		if !pred(r) {
			ret = append(ret, r)
		}
	}
	for i := len(ret); i < len(records); i++ {
		records[i] = nil
	}
	return ret
}
