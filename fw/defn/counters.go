package defn

// FwCounters are forwarder totals. They are observation-only.
type FwCounters struct {
	NPitEntries           int    `json:"n_pit_entries"`
	NCsEntries            int    `json:"n_cs_entries"`
	NInInterests          uint64 `json:"n_in_interests"`
	NInData               uint64 `json:"n_in_data"`
	NInNacks              uint64 `json:"n_in_nacks"`
	NOutInterests         uint64 `json:"n_out_interests"`
	NOutData              uint64 `json:"n_out_data"`
	NOutNacks             uint64 `json:"n_out_nacks"`
	NSatisfiedInterests   uint64 `json:"n_satisfied_interests"`
	NUnsatisfiedInterests uint64 `json:"n_unsatisfied_interests"`
	NCsHits               uint64 `json:"n_cs_hits"`
	NCsMisses             uint64 `json:"n_cs_misses"`
}

// Each calls fn for every counter in a fixed order.
func (c FwCounters) Each(fn func(name string, value uint64)) {
	fn("nPitEntries", uint64(c.NPitEntries))
	fn("nCsEntries", uint64(c.NCsEntries))
	fn("nInInterests", c.NInInterests)
	fn("nInData", c.NInData)
	fn("nInNacks", c.NInNacks)
	fn("nOutInterests", c.NOutInterests)
	fn("nOutData", c.NOutData)
	fn("nOutNacks", c.NOutNacks)
	fn("nSatisfiedInterests", c.NSatisfiedInterests)
	fn("nUnsatisfiedInterests", c.NUnsatisfiedInterests)
	fn("nCsHits", c.NCsHits)
	fn("nCsMisses", c.NCsMisses)
}
