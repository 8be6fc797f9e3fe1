/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"github.com/named-data/ndnfw/fw/core"
	"github.com/named-data/ndnfw/fw/defn"
	enc "github.com/named-data/ndnfw/std/encoding"
)

// Strategy implementations should register the instantiation function using init().
// Each forwarder has a separate instance of each strategy.
var strategyInit []func() Strategy

// StrategyVersions contains a list of strategies mapping to a list of their versions
var StrategyVersions = make(map[string][]uint64)

// InstantiateStrategies instantiates all strategies for a forwarder, keyed by name hash.
func InstantiateStrategies(fw *Forwarder) map[uint64]Strategy {
	strategies := make(map[uint64]Strategy, len(strategyInit))

	for _, initFun := range strategyInit {
		strategy := initFun()
		strategy.Instantiate(fw)
		strategies[strategy.GetName().Hash()] = strategy
		core.Log.Debug(fw, "Instantiated strategy", "strategy", strategy.GetName())
	}

	return strategies
}

// strategyByName finds an instantiated strategy. A name without a version
// component selects the latest registered version.
func (f *Forwarder) strategyByName(name enc.Name) Strategy {
	if s, ok := f.strategies[name.Hash()]; ok {
		return s
	}

	if len(name) != len(defn.STRATEGY_PREFIX)+1 || !defn.STRATEGY_PREFIX.IsPrefix(name) {
		return nil
	}
	versions := StrategyVersions[string(name[len(name)-1].Val)]
	if len(versions) == 0 {
		return nil
	}
	latest := versions[0]
	for _, v := range versions[1:] {
		latest = max(latest, v)
	}
	return f.strategies[name.Append(enc.NewVersionComponent(latest)).Hash()]
}
