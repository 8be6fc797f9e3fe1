/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	enc "github.com/named-data/ndnfw/std/encoding"
)

// NetworkRegionTable contains producer region names for this forwarder.
type NetworkRegionTable struct {
	regions []enc.Name
}

// Add adds a name to the network region table.
func (n *NetworkRegionTable) Add(name enc.Name) {
	for _, region := range n.regions {
		if region.Equal(name) {
			return
		}
	}
	n.regions = append(n.regions, name.Clone())
}

// Regions returns the configured region names.
func (n *NetworkRegionTable) Regions() []enc.Name {
	return n.regions
}

// IsInProducerRegion returns true if a name of the forwarding hint is a prefix of some region,
// meaning the Interest has reached the producer region the hint points to.
func (n *NetworkRegionTable) IsInProducerRegion(hint []enc.Name) bool {
	for _, region := range n.regions {
		for _, delegation := range hint {
			if delegation.IsPrefix(region) {
				return true
			}
		}
	}
	return false
}
