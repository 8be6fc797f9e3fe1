package defn

import (
	"time"

	enc "github.com/named-data/ndnfw/std/encoding"
)

// DefaultInterestLifetime applies when an Interest carries no lifetime.
const DefaultInterestLifetime = 4 * time.Second

// Interest is a decoded Interest packet.
type Interest struct {
	Tags

	Name           enc.Name
	CanBePrefix    bool
	MustBeFresh    bool
	ForwardingHint []enc.Name
	Nonce          uint32
	// Zero means DefaultInterestLifetime.
	Lifetime time.Duration
	HopLimit *byte
}

// LifetimeOrDefault returns the effective lifetime of the Interest.
func (i *Interest) LifetimeOrDefault() time.Duration {
	if i.Lifetime <= 0 {
		return DefaultInterestLifetime
	}
	return i.Lifetime
}

// MatchesData returns true if data satisfies the name requirements of the Interest.
func (i *Interest) MatchesData(data *Data) bool {
	if i.CanBePrefix {
		return i.Name.IsPrefix(data.Name)
	}
	return i.Name.Equal(data.Name)
}

// Clone returns a copy of the Interest with its own tags.
func (i *Interest) Clone() *Interest {
	ret := *i
	ret.Tags = Tags{}
	for t, v := range i.tags {
		ret.SetTag(t, v)
	}
	if i.HopLimit != nil {
		hl := *i.HopLimit
		ret.HopLimit = &hl
	}
	if i.ForwardingHint != nil {
		ret.ForwardingHint = append([]enc.Name(nil), i.ForwardingHint...)
	}
	return &ret
}

func (i *Interest) String() string {
	return i.Name.String()
}

// Data is a decoded Data packet.
type Data struct {
	Tags

	Name            enc.Name
	FreshnessPeriod time.Duration
	Content         []byte
}

func (d *Data) String() string {
	return d.Name.String()
}

// NackReason is the reason code of a Nack.
type NackReason uint64

const (
	NackReasonNone       NackReason = 0
	NackReasonCongestion NackReason = 50
	NackReasonDuplicate  NackReason = 100
	NackReasonNoRoute    NackReason = 150
)

func (r NackReason) String() string {
	switch r {
	case NackReasonNone:
		return "None"
	case NackReasonCongestion:
		return "Congestion"
	case NackReasonDuplicate:
		return "Duplicate"
	case NackReasonNoRoute:
		return "NoRoute"
	default:
		return "Unknown"
	}
}

// LessSevere returns true if r is less severe than other.
// Unknown reasons are treated as the most severe.
func (r NackReason) LessSevere(other NackReason) bool {
	rank := func(x NackReason) int {
		switch x {
		case NackReasonCongestion:
			return 0
		case NackReasonDuplicate:
			return 1
		case NackReasonNoRoute:
			return 2
		default:
			return 3
		}
	}
	return rank(r) < rank(other)
}

// NackHeader is the link-layer header of a Nack.
type NackHeader struct {
	Reason NackReason
}

// Nack is a negative acknowledgement of an Interest.
type Nack struct {
	Tags

	Interest *Interest
	Header   NackHeader
}

// Reason returns the Nack reason.
func (n *Nack) Reason() NackReason {
	return n.Header.Reason
}

func (n *Nack) String() string {
	return n.Interest.Name.String() + "~" + n.Header.Reason.String()
}
