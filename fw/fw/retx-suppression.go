package fw

import (
	"time"

	"github.com/named-data/ndnfw/fw/table"
)

// RetxSuppressionResult is the verdict on an Interest that may be a retransmission.
type RetxSuppressionResult int

const (
	// RetxNew means the Interest is not a retransmission
	RetxNew RetxSuppressionResult = iota
	// RetxForward means the retransmission should be forwarded
	RetxForward
	// RetxSuppress means the retransmission should be dropped
	RetxSuppress
)

func (r RetxSuppressionResult) String() string {
	switch r {
	case RetxNew:
		return "new"
	case RetxForward:
		return "forward"
	case RetxSuppress:
		return "suppress"
	default:
		return "unknown"
	}
}

// RetxSuppressionFixed suppresses retransmissions within a fixed interval of the last forward.
type RetxSuppressionFixed struct {
	Interval time.Duration
}

// DecidePerPitEntry looks at the most recent forward to any upstream.
func (r RetxSuppressionFixed) DecidePerPitEntry(entry *table.PitEntry, now time.Time) RetxSuppressionResult {
	outs := entry.OutRecords()
	if len(outs) == 0 {
		return RetxNew
	}
	var last time.Time
	for _, out := range outs {
		if out.LastRenewed.After(last) {
			last = out.LastRenewed
		}
	}
	if now.Sub(last) < r.Interval {
		return RetxSuppress
	}
	return RetxForward
}

// DecidePerUpstream looks at the last forward to one upstream face.
func (r RetxSuppressionFixed) DecidePerUpstream(entry *table.PitEntry, faceID uint64, now time.Time) RetxSuppressionResult {
	var out *table.PitRecord
	for _, o := range entry.OutRecords() {
		if o.FaceID == faceID {
			out = o
			break
		}
	}
	if out == nil {
		return RetxNew
	}
	if now.Sub(out.LastRenewed) < r.Interval {
		return RetxSuppress
	}
	return RetxForward
}
