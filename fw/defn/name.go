package defn

import enc "github.com/named-data/ndnfw/std/encoding"

var LOCALHOST = enc.NewGenericComponent("localhost")
var LOCALHOP = enc.NewGenericComponent("localhop")

// Localhost prefix for the forwarder
var LOCAL_PREFIX = enc.Name{LOCALHOST, enc.NewGenericComponent("nfd")}

// Prefix for all strategies
var STRATEGY_PREFIX = LOCAL_PREFIX.Append(enc.NewGenericComponent("strategy"))

// Default forwarding strategy name
var DEFAULT_STRATEGY = STRATEGY_PREFIX.Append(
	enc.NewGenericComponent("best-route"),
	enc.NewVersionComponent(1))

// IsLocalhost returns true if the name is under /localhost.
func IsLocalhost(name enc.Name) bool {
	return len(name) > 0 && name[0].Equal(LOCALHOST)
}

// IsLocalhop returns true if the name is under /localhop.
func IsLocalhop(name enc.Name) bool {
	return len(name) > 0 && name[0].Equal(LOCALHOP)
}
