/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/named-data/ndnfw/fw/core"
	"github.com/named-data/ndnfw/fw/defn"
	"github.com/named-data/ndnfw/fw/face"
	"github.com/named-data/ndnfw/fw/sched"
	"github.com/named-data/ndnfw/fw/table"
	enc "github.com/named-data/ndnfw/std/encoding"
)

// ErrInlineDispatch is returned by Run when the forwarder has no event queue.
var ErrInlineDispatch = errors.New("forwarder runs pipelines inline and cannot be run")

// FaceEndpoint is a face together with an endpoint on that face.
// Endpoint 0 is used by point-to-point faces.
type FaceEndpoint struct {
	Face     face.Face
	Endpoint uint64
}

func (fe FaceEndpoint) String() string {
	return fmt.Sprintf("%d:%d", fe.Face.FaceID(), fe.Endpoint)
}

// Forwarder runs the forwarding pipelines. All pipelines and timers run on a
// single goroutine, so the tables it owns need no locking.
type Forwarder struct {
	config *core.Config
	faces  *face.Table
	sched  *sched.Scheduler

	pit     *table.Pit
	cs      *table.ContentStore
	fib     *table.FibStrategyTree
	rib     *table.RibTable
	dnl     *table.DeadNonceList
	regions *table.NetworkRegionTable

	strategies      map[uint64]Strategy
	defaultStrategy Strategy
	unsolicited     UnsolicitedDataPolicy

	counters defn.FwCounters

	// nil when pipelines run inline on the caller, which then owns the tables and timers
	queue chan func()

	subsLock  sync.Mutex
	faceSubs  map[uint64][]*face.Subscription
	tableSubs []*face.Subscription
}

// New creates a forwarder attached to faces. A nil clock means the system clock.
func New(config *core.Config, faces *face.Table, clock sched.Clock) (*Forwarder, error) {
	if config == nil {
		config = core.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	defaultStrategyName, err := enc.NameFromStr(config.Fw.DefaultStrategy)
	if err != nil {
		return nil, fmt.Errorf("invalid default strategy: %w", err)
	}

	f := &Forwarder{
		config:   config,
		faces:    faces,
		sched:    sched.New(clock),
		regions:  &table.NetworkRegionTable{},
		faceSubs: make(map[uint64][]*face.Subscription),
	}
	if config.Fw.QueueSize > 0 {
		f.queue = make(chan func(), config.Fw.QueueSize)
	}

	f.pit = table.NewPit(f.sched, f.onInterestFinalize)
	f.cs = table.NewContentStore(clock, config.Tables.ContentStore.Capacity)
	f.cs.SetAdmit(config.Tables.ContentStore.Admit)
	f.cs.SetServe(config.Tables.ContentStore.Serve)
	f.dnl = table.NewDeadNonceList(clock,
		time.Duration(config.Tables.DeadNonceList.Lifetime)*time.Millisecond,
		config.Tables.DeadNonceList.Capacity)

	f.strategies = InstantiateStrategies(f)
	f.defaultStrategy = f.strategyByName(defaultStrategyName)
	if f.defaultStrategy == nil {
		return nil, fmt.Errorf("unknown default strategy: %s", defaultStrategyName)
	}
	f.fib = table.NewFibStrategyTree(f.defaultStrategy.GetName())
	f.rib = table.NewRibTable(f.fib)

	if f.unsolicited, err = NewUnsolicitedDataPolicy(config.Fw.UnsolicitedDataPolicy); err != nil {
		return nil, err
	}

	for _, region := range config.Tables.NetworkRegion.Regions {
		f.regions.Add(enc.NameFromStrMust(region))
	}
	for _, sc := range config.Tables.StrategyChoice {
		if err := f.SetStrategy(enc.NameFromStrMust(sc.Prefix), enc.NameFromStrMust(sc.Strategy)); err != nil {
			return nil, err
		}
	}

	f.tableSubs = []*face.Subscription{
		faces.AfterAdd(f.attachFace),
		faces.BeforeRemove(f.detachFace),
	}
	for _, fc := range faces.GetAll() {
		f.attachFace(fc)
	}

	return f, nil
}

func (f *Forwarder) String() string {
	return "fw"
}

// Config returns the configuration the forwarder was built with.
func (f *Forwarder) Config() *core.Config {
	return f.config
}

// Faces returns the face table.
func (f *Forwarder) Faces() *face.Table {
	return f.faces
}

// Scheduler returns the scheduler driving PIT expiry.
// With inline dispatch the caller is responsible for calling RunDue.
func (f *Forwarder) Scheduler() *sched.Scheduler {
	return f.sched
}

func (f *Forwarder) Pit() *table.Pit {
	return f.pit
}

func (f *Forwarder) ContentStore() *table.ContentStore {
	return f.cs
}

func (f *Forwarder) Fib() *table.FibStrategyTree {
	return f.fib
}

func (f *Forwarder) Rib() *table.RibTable {
	return f.rib
}

func (f *Forwarder) DeadNonceList() *table.DeadNonceList {
	return f.dnl
}

func (f *Forwarder) NetworkRegion() *table.NetworkRegionTable {
	return f.regions
}

// Counters returns a snapshot of the forwarder counters.
func (f *Forwarder) Counters() defn.FwCounters {
	c := f.counters
	c.NPitEntries = f.pit.Size()
	c.NCsEntries = f.cs.Size()
	return c
}

// SetUnsolicitedDataPolicy replaces the unsolicited Data policy.
func (f *Forwarder) SetUnsolicitedDataPolicy(policy UnsolicitedDataPolicy) {
	f.unsolicited = policy
}

// SetStrategy selects a strategy for a namespace. The strategy name may omit the version,
// in which case the latest registered version is used.
func (f *Forwarder) SetStrategy(prefix enc.Name, strategyName enc.Name) error {
	strategy := f.strategyByName(strategyName)
	if strategy == nil {
		return fmt.Errorf("unknown strategy: %s", strategyName)
	}
	f.fib.SetStrategy(prefix, strategy.GetName())
	core.Log.Info(f, "Set strategy", "prefix", prefix, "strategy", strategy.GetName())
	return nil
}

// effectiveStrategy returns the strategy chosen for name.
func (f *Forwarder) effectiveStrategy(name enc.Name) Strategy {
	if s, ok := f.strategies[f.fib.FindStrategy(name).Hash()]; ok {
		return s
	}
	return f.defaultStrategy
}

// Close detaches the forwarder from the face table and all faces.
func (f *Forwarder) Close() {
	f.subsLock.Lock()
	defer f.subsLock.Unlock()
	for _, sub := range f.tableSubs {
		sub.Cancel()
	}
	f.tableSubs = nil
	for faceID, subs := range f.faceSubs {
		for _, sub := range subs {
			sub.Cancel()
		}
		delete(f.faceSubs, faceID)
	}
}

func (f *Forwarder) attachFace(fc face.Face) {
	ev := fc.Events()
	subs := []*face.Subscription{
		ev.Interest.Connect(func(e face.InterestEvent) {
			f.post("Interest", func() { f.StartProcessInterest(FaceEndpoint{fc, e.Endpoint}, e.Interest) })
		}),
		ev.Data.Connect(func(e face.DataEvent) {
			f.post("Data", func() { f.StartProcessData(FaceEndpoint{fc, e.Endpoint}, e.Data) })
		}),
		ev.Nack.Connect(func(e face.NackEvent) {
			f.post("Nack", func() { f.StartProcessNack(FaceEndpoint{fc, e.Endpoint}, e.Nack) })
		}),
		ev.DroppedInterest.Connect(func(e face.InterestEvent) {
			f.post("dropped Interest", func() { f.onDroppedInterest(FaceEndpoint{fc, e.Endpoint}, e.Interest) })
		}),
	}

	f.subsLock.Lock()
	defer f.subsLock.Unlock()
	f.faceSubs[fc.FaceID()] = subs
	core.Log.Debug(f, "Attached face", "faceid", fc.FaceID())
}

func (f *Forwarder) detachFace(fc face.Face) {
	faceID := fc.FaceID()

	f.subsLock.Lock()
	for _, sub := range f.faceSubs[faceID] {
		sub.Cancel()
	}
	delete(f.faceSubs, faceID)
	f.subsLock.Unlock()

	f.post("face removal", func() { f.cleanupOnFaceRemoval(faceID) })
}

// cleanupOnFaceRemoval removes all table state referring to faceID.
func (f *Forwarder) cleanupOnFaceRemoval(faceID uint64) {
	erased := f.pit.RemoveFace(faceID)
	f.rib.CleanUpFace(faceID)
	f.fib.RemoveFace(faceID)
	core.Log.Debug(f, "Cleaned up face", "faceid", faceID, "pit-erased", erased)
}

// post runs fn on the forwarding goroutine, or inline if there is no queue.
// Inline dispatch is only safe while Run is not used.
func (f *Forwarder) post(kind string, fn func()) {
	if f.queue == nil {
		fn()
		return
	}
	select {
	case f.queue <- fn:
	default:
		core.Log.Error(f, "Event dropped due to full queue", "kind", kind)
	}
}

// Run processes queued events and timers until ctx is cancelled.
// A forwarder configured with queue_size 0 cannot be run.
func (f *Forwarder) Run(ctx context.Context) error {
	if f.queue == nil {
		return ErrInlineDispatch
	}
	if f.config.Fw.LockThreadsToCores {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}

	dnlTicker := time.NewTicker(f.dnl.Lifetime())
	defer dnlTicker.Stop()

	var statusC <-chan time.Time
	if f.config.Fw.StatusInterval > 0 {
		statusTicker := time.NewTicker(time.Duration(f.config.Fw.StatusInterval) * time.Millisecond)
		defer statusTicker.Stop()
		statusC = statusTicker.C
	}

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	core.Log.Info(f, "Forwarder started")
	for {
		f.resetTimer(timer)

		select {
		case <-ctx.Done():
			core.Log.Info(f, "Forwarder stopped")
			return nil
		case fn := <-f.queue:
			fn()
		case <-timer.C:
		case <-dnlTicker.C:
			if n := f.dnl.RemoveExpiredEntries(); n > 0 {
				core.Log.Trace(f, "Removed expired dead nonces", "count", n)
			}
		case <-statusC:
			f.logStatus()
		}

		f.sched.RunDue()
	}
}

func (f *Forwarder) resetTimer(timer *time.Timer) {
	d := time.Hour
	if deadline, ok := f.sched.NextDeadline(); ok {
		d = max(deadline.Sub(f.sched.Now()), 0)
	}
	timer.Reset(d)
}

func (f *Forwarder) logStatus() {
	args := make([]any, 0, 24)
	f.Counters().Each(func(name string, value uint64) {
		args = append(args, name, value)
	})
	core.Log.Info(f, "Forwarder status", args...)
}
