/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import (
	"fmt"
	"path/filepath"

	enc "github.com/named-data/ndnfw/std/encoding"
	"github.com/named-data/ndnfw/std/log"
)

// Global initial configuration of the forwarder.
// This configuration is IMMUTABLE once the forwarder starts.
var C = DefaultConfig()

// Config represents the configuration of the forwarder.
type Config struct {
	Core struct {
		// Logging level
		LogLevel string `json:"log_level"`
		// Output log to file
		LogFile string `json:"log_file"`
		// Log format: text or json
		LogFormat string `json:"log_format"`

		// Config file base dir
		BaseDir string `json:"-"`
		// Enable CPU profiling
		CpuProfile string `json:"-"`
		// Enable memory profiling
		MemProfile string `json:"-"`
		// Enable block profiling
		BlockProfile string `json:"-"`
	} `json:"core"`

	Fw struct {
		// Size of the forwarder event queue. Zero runs pipelines inline on the caller.
		QueueSize int `json:"queue_size"`
		// If true, the forwarding goroutine will be locked to an OS thread
		LockThreadsToCores bool `json:"lock_threads_to_cores"`
		// Strategy used for namespaces without an explicit choice
		DefaultStrategy string `json:"default_strategy"`
		// Policy for Data that matches no PIT entry
		// Allowed options: drop-all, admit-local, admit-network, admit-all
		UnsolicitedDataPolicy string `json:"unsolicited_data_policy"`
		// Interval for logging forwarder counters (milliseconds, 0 to disable)
		StatusInterval int `json:"status_interval"`
	} `json:"fw"`

	Tables struct {
		ContentStore struct {
			// Capacity of the content store (in number of Data packets)
			Capacity int `json:"capacity"`
			// Whether contents will be admitted to the Content Store.
			Admit bool `json:"admit"`
			// Whether contents will be served from the Content Store.
			Serve bool `json:"serve"`
			// Cache replacement policy. Only "lru" is supported.
			ReplacementPolicy string `json:"replacement_policy"`
		} `json:"content_store"`

		DeadNonceList struct {
			// Lifetime of entries in the Dead Nonce List (milliseconds)
			Lifetime int `json:"lifetime"`
			// Maximum number of entries
			Capacity int `json:"capacity"`
		} `json:"dead_nonce_list"`

		NetworkRegion struct {
			// List of prefixes that the forwarder is in the producer region for
			Regions []string `json:"regions"`
		} `json:"network_region"`

		// Per-namespace strategy choices
		StrategyChoice []StrategyChoiceConfig `json:"strategy_choice"`

		Rib struct {
			// Static routes installed at startup
			Routes []RouteConfig `json:"routes"`
		} `json:"rib"`
	} `json:"tables"`
}

// StrategyChoiceConfig selects a strategy for a namespace.
type StrategyChoiceConfig struct {
	Prefix   string `json:"prefix"`
	Strategy string `json:"strategy"`
}

// RouteConfig is a static route.
type RouteConfig struct {
	Prefix       string `json:"prefix"`
	FaceID       uint64 `json:"face_id"`
	Origin       uint64 `json:"origin"`
	Cost         uint64 `json:"cost"`
	ChildInherit bool   `json:"child_inherit"`
	Capture      bool   `json:"capture"`
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() *Config {
	c := &Config{}
	c.Core.LogLevel = "INFO"
	c.Core.LogFile = ""
	c.Core.LogFormat = "text"

	c.Fw.QueueSize = 1024
	c.Fw.LockThreadsToCores = false
	c.Fw.DefaultStrategy = "/localhost/nfd/strategy/best-route/v=1"
	c.Fw.UnsolicitedDataPolicy = "drop-all"
	c.Fw.StatusInterval = 0

	c.Tables.ContentStore.Capacity = 1024
	c.Tables.ContentStore.Admit = true
	c.Tables.ContentStore.Serve = true
	c.Tables.ContentStore.ReplacementPolicy = "lru"

	c.Tables.DeadNonceList.Lifetime = 6000
	c.Tables.DeadNonceList.Capacity = 1 << 16

	c.Tables.NetworkRegion.Regions = []string{}
	c.Tables.StrategyChoice = []StrategyChoiceConfig{}
	c.Tables.Rib.Routes = []RouteConfig{}
	return c
}

// Validate checks values that cannot be checked by the decoder.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Core.LogLevel); err != nil {
		return err
	}
	switch c.Core.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format: %q", c.Core.LogFormat)
	}
	if c.Fw.QueueSize < 0 {
		return fmt.Errorf("invalid queue size: %d", c.Fw.QueueSize)
	}
	if _, err := enc.NameFromStr(c.Fw.DefaultStrategy); err != nil {
		return fmt.Errorf("invalid default strategy: %w", err)
	}
	if c.Tables.ContentStore.Capacity < 0 {
		return fmt.Errorf("invalid content store capacity: %d", c.Tables.ContentStore.Capacity)
	}
	if p := c.Tables.ContentStore.ReplacementPolicy; p != "" && p != "lru" {
		return fmt.Errorf("unknown replacement policy: %q", p)
	}
	if c.Tables.DeadNonceList.Lifetime <= 0 {
		return fmt.Errorf("invalid dead nonce list lifetime: %d", c.Tables.DeadNonceList.Lifetime)
	}
	if c.Tables.DeadNonceList.Capacity <= 0 {
		return fmt.Errorf("invalid dead nonce list capacity: %d", c.Tables.DeadNonceList.Capacity)
	}
	for _, region := range c.Tables.NetworkRegion.Regions {
		if _, err := enc.NameFromStr(region); err != nil {
			return fmt.Errorf("invalid network region %q: %w", region, err)
		}
	}
	for _, sc := range c.Tables.StrategyChoice {
		if _, err := enc.NameFromStr(sc.Prefix); err != nil {
			return fmt.Errorf("invalid strategy choice prefix %q: %w", sc.Prefix, err)
		}
		if _, err := enc.NameFromStr(sc.Strategy); err != nil {
			return fmt.Errorf("invalid strategy name %q: %w", sc.Strategy, err)
		}
	}
	for _, r := range c.Tables.Rib.Routes {
		if _, err := enc.NameFromStr(r.Prefix); err != nil {
			return fmt.Errorf("invalid route prefix %q: %w", r.Prefix, err)
		}
	}
	return nil
}

// ResolveRelPath resolves a possibly relative path based on config file path.
func (c *Config) ResolveRelPath(target string) string {
	if target == "" || filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(c.Core.BaseDir, target)
}
