package fw

import (
	"fmt"

	"github.com/named-data/ndnfw/fw/defn"
	"github.com/named-data/ndnfw/fw/face"
)

// UnsolicitedDataDecision says what to do with Data that matches no PIT entry.
type UnsolicitedDataDecision int

const (
	UnsolicitedDataDrop UnsolicitedDataDecision = iota
	UnsolicitedDataCache
)

func (d UnsolicitedDataDecision) String() string {
	switch d {
	case UnsolicitedDataDrop:
		return "drop"
	case UnsolicitedDataCache:
		return "cache"
	default:
		return "unknown"
	}
}

// UnsolicitedDataPolicy decides whether unsolicited Data is cached.
type UnsolicitedDataPolicy interface {
	String() string
	Decide(inFace face.Face, data *defn.Data) UnsolicitedDataDecision
}

// DropAllUnsolicitedDataPolicy drops all unsolicited Data.
type DropAllUnsolicitedDataPolicy struct{}

func (DropAllUnsolicitedDataPolicy) String() string { return "drop-all" }

func (DropAllUnsolicitedDataPolicy) Decide(face.Face, *defn.Data) UnsolicitedDataDecision {
	return UnsolicitedDataDrop
}

// AdmitLocalUnsolicitedDataPolicy caches unsolicited Data from local faces.
type AdmitLocalUnsolicitedDataPolicy struct{}

func (AdmitLocalUnsolicitedDataPolicy) String() string { return "admit-local" }

func (AdmitLocalUnsolicitedDataPolicy) Decide(inFace face.Face, _ *defn.Data) UnsolicitedDataDecision {
	if inFace.Scope() == defn.Local {
		return UnsolicitedDataCache
	}
	return UnsolicitedDataDrop
}

// AdmitNetworkUnsolicitedDataPolicy caches unsolicited Data from non-local faces.
type AdmitNetworkUnsolicitedDataPolicy struct{}

func (AdmitNetworkUnsolicitedDataPolicy) String() string { return "admit-network" }

func (AdmitNetworkUnsolicitedDataPolicy) Decide(inFace face.Face, _ *defn.Data) UnsolicitedDataDecision {
	if inFace.Scope() == defn.NonLocal {
		return UnsolicitedDataCache
	}
	return UnsolicitedDataDrop
}

// AdmitAllUnsolicitedDataPolicy caches all unsolicited Data.
type AdmitAllUnsolicitedDataPolicy struct{}

func (AdmitAllUnsolicitedDataPolicy) String() string { return "admit-all" }

func (AdmitAllUnsolicitedDataPolicy) Decide(face.Face, *defn.Data) UnsolicitedDataDecision {
	return UnsolicitedDataCache
}

var unsolicitedDataPolicies = map[string]func() UnsolicitedDataPolicy{
	"drop-all":      func() UnsolicitedDataPolicy { return DropAllUnsolicitedDataPolicy{} },
	"admit-local":   func() UnsolicitedDataPolicy { return AdmitLocalUnsolicitedDataPolicy{} },
	"admit-network": func() UnsolicitedDataPolicy { return AdmitNetworkUnsolicitedDataPolicy{} },
	"admit-all":     func() UnsolicitedDataPolicy { return AdmitAllUnsolicitedDataPolicy{} },
}

// NewUnsolicitedDataPolicy creates a policy by name. An empty name means drop-all.
func NewUnsolicitedDataPolicy(name string) (UnsolicitedDataPolicy, error) {
	if name == "" {
		return DropAllUnsolicitedDataPolicy{}, nil
	}
	if newPolicy, ok := unsolicitedDataPolicies[name]; ok {
		return newPolicy(), nil
	}
	return nil, fmt.Errorf("unknown unsolicited data policy: %q", name)
}
