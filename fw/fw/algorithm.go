package fw

import (
	"strings"
	"time"

	"github.com/named-data/ndnfw/fw/defn"
	"github.com/named-data/ndnfw/fw/face"
	"github.com/named-data/ndnfw/fw/table"
)

// DuplicateNonce is a bit set describing where a nonce was already seen in a PIT entry.
type DuplicateNonce int

const (
	DuplicateNonceNone DuplicateNonce = 0
	// in-record of the same face
	DuplicateNonceInSame DuplicateNonce = 1 << (iota - 1)
	// in-record of another face
	DuplicateNonceInOther
	// out-record of the same face
	DuplicateNonceOutSame
	// out-record of another face
	DuplicateNonceOutOther
)

func (d DuplicateNonce) String() string {
	if d == DuplicateNonceNone {
		return "none"
	}
	parts := make([]string, 0, 4)
	if d&DuplicateNonceInSame != 0 {
		parts = append(parts, "in-same")
	}
	if d&DuplicateNonceInOther != 0 {
		parts = append(parts, "in-other")
	}
	if d&DuplicateNonceOutSame != 0 {
		parts = append(parts, "out-same")
	}
	if d&DuplicateNonceOutOther != 0 {
		parts = append(parts, "out-other")
	}
	return strings.Join(parts, "|")
}

// findDuplicateNonce reports where nonce appears among the records of entry, relative to faceID.
func findDuplicateNonce(entry *table.PitEntry, nonce uint32, faceID uint64) DuplicateNonce {
	dup := DuplicateNonceNone
	for _, in := range entry.InRecords() {
		if in.LastNonce == nonce {
			if in.FaceID == faceID {
				dup |= DuplicateNonceInSame
			} else {
				dup |= DuplicateNonceInOther
			}
		}
	}
	for _, out := range entry.OutRecords() {
		if out.LastNonce == nonce {
			if out.FaceID == faceID {
				dup |= DuplicateNonceOutSame
			} else {
				dup |= DuplicateNonceOutOther
			}
		}
	}
	return dup
}

// hasPendingOutRecords returns true if some upstream has neither expired nor Nacked.
func hasPendingOutRecords(entry *table.PitEntry, now time.Time) bool {
	for _, out := range entry.OutRecords() {
		if !out.Expiry.Before(now) && out.IncomingNack == nil {
			return true
		}
	}
	return false
}

// wouldViolateScope returns true if forwarding interest from inFace to outFace
// would break /localhost or /localhop scope.
func wouldViolateScope(inFace face.Face, interest *defn.Interest, outFace face.Face) bool {
	if outFace.Scope() == defn.Local {
		return false
	}
	if defn.IsLocalhost(interest.Name) {
		return true
	}
	if defn.IsLocalhop(interest.Name) {
		return inFace.Scope() != defn.Local
	}
	return false
}
