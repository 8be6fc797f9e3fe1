/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/named-data/ndnfw/fw/core"
	"github.com/named-data/ndnfw/fw/defn"
	"github.com/named-data/ndnfw/fw/face"
	"github.com/named-data/ndnfw/fw/fw"
	"github.com/named-data/ndnfw/fw/table"
	enc "github.com/named-data/ndnfw/std/encoding"
	"github.com/named-data/ndnfw/std/utils/toolutils"
)

// StatusPrefix is served by the internal face with the forwarder status.
var StatusPrefix = defn.LOCAL_PREFIX.Append(enc.NewGenericComponent("status"))

// StatusDataset is the content of a status Data packet.
type StatusDataset struct {
	Version   string          `json:"version"`
	StartTime time.Time       `json:"start_time"`
	Counters  defn.FwCounters `json:"counters"`
}

// Daemon is the forwarder together with its reserved faces and static routes.
// Note: only one instance should be running at a time.
type Daemon struct {
	config   *core.Config
	profiler *Profiler

	faces    *face.Table
	internal *face.InternalFace
	fw       *fw.Forwarder

	cancel context.CancelFunc
	done   chan struct{}
}

// NewDaemon creates the face table and forwarder and installs the static routes.
func NewDaemon(config *core.Config) (*Daemon, error) {
	if config.Fw.QueueSize <= 0 {
		return nil, fmt.Errorf("daemon requires a positive queue size, got %d", config.Fw.QueueSize)
	}

	d := &Daemon{
		config:   config,
		profiler: NewProfiler(config),
		faces:    face.NewTable(),
	}

	if err := d.faces.AddReserved(face.NewNullFace(), defn.NullFaceID); err != nil {
		return nil, err
	}
	d.internal = face.NewInternalFace(face.InternalHandler{OnInterest: d.onInternalInterest})
	if err := d.faces.AddReserved(d.internal, defn.InternalFaceID); err != nil {
		return nil, err
	}

	var err error
	if d.fw, err = fw.New(config, d.faces, nil); err != nil {
		return nil, err
	}

	d.fw.Rib().AddRoute(defn.LOCAL_PREFIX, &table.Route{FaceID: defn.InternalFaceID})
	for _, r := range config.Tables.Rib.Routes {
		prefix, err := enc.NameFromStr(r.Prefix)
		if err != nil {
			return nil, fmt.Errorf("invalid route prefix %q: %w", r.Prefix, err)
		}
		route := &table.Route{FaceID: r.FaceID, Origin: r.Origin, Cost: r.Cost}
		if r.ChildInherit {
			route.Flags |= table.RouteFlagChildInherit
		}
		if r.Capture {
			route.Flags |= table.RouteFlagCapture
		}
		d.fw.Rib().AddRoute(prefix, route)
		core.Log.Info(d, "Added static route", "prefix", prefix, "faceid", r.FaceID, "cost", r.Cost)
	}

	return d, nil
}

func (d *Daemon) String() string {
	return "daemon"
}

// Faces returns the face table of the forwarder.
func (d *Daemon) Faces() *face.Table {
	return d.faces
}

// Forwarder returns the forwarder. Its tables must not be used while it runs.
func (d *Daemon) Forwarder() *fw.Forwarder {
	return d.fw
}

// Start runs the forwarder on its own goroutine. It does not block.
func (d *Daemon) Start() error {
	core.StartTimestamp = time.Now()
	core.Log.Info(d, "Starting NDN forwarder", "version", core.Version)

	if err := d.profiler.Start(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.done = make(chan struct{})
	go func() {
		defer close(d.done)
		if err := d.fw.Run(ctx); err != nil {
			core.Log.Error(d, "Forwarder failed", "err", err)
		}
	}()
	return nil
}

// Stop shuts the forwarder down and returns its final counters.
func (d *Daemon) Stop() defn.FwCounters {
	core.Log.Info(d, "Stopping NDN forwarder")
	defer core.Log.Info(d, "Stopped NDN forwarder")

	if d.cancel != nil {
		d.cancel()
		<-d.done
		d.cancel = nil
	}
	d.profiler.Stop()

	for _, fc := range d.faces.GetAll() {
		fc.Close()
	}
	d.fw.Close()

	return d.fw.Counters()
}

// onInternalInterest answers Interests forwarded to the internal face.
// It runs on the forwarding goroutine.
func (d *Daemon) onInternalInterest(interest *defn.Interest) {
	if !StatusPrefix.IsPrefix(interest.Name) {
		core.Log.Debug(d, "No handler for internal Interest", "name", interest.Name)
		d.internal.PutNack(&defn.Nack{
			Interest: interest,
			Header:   defn.NackHeader{Reason: defn.NackReasonNoRoute},
		})
		return
	}

	status := StatusDataset{
		Version:   core.Version,
		StartTime: core.StartTimestamp,
		Counters:  d.fw.Counters(),
	}
	buf := &bytes.Buffer{}
	if err := toolutils.WriteYaml(buf, status); err != nil {
		core.Log.Error(d, "Unable to encode status", "err", err)
		return
	}

	d.internal.PutData(&defn.Data{
		Name:            interest.Name,
		FreshnessPeriod: time.Second,
		Content:         buf.Bytes(),
	})
}
