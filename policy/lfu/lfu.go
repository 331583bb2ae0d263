// Package lfu implements the Least-Frequently-Used sub-policy: among a
// random sample, the entry with the fewest recorded hits is the first
// candidate for eviction. Ties break on LastAccessSequence ascending, so
// LFU degrades gracefully to LRU among equally-cold entries.
package lfu

import (
	"sort"

	"github.com/rocksdb/blockcachesim/policy"
)

// Policy is the LFU SubPolicy. The zero value is ready to use.
type Policy struct {
	policy.EvictedSet
}

// New constructs an LFU sub-policy.
func New() *Policy { return &Policy{} }

// Prioritize orders samples ascending by NumHits, tie-broken by
// LastAccessSequence ascending.
func (p *Policy) Prioritize(samples []policy.Sample, _ policy.Context) []policy.Sample {
	out := make([]policy.Sample, len(samples))
	copy(out, samples)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].NumHits != out[j].NumHits {
			return out[i].NumHits < out[j].NumHits
		}
		return out[i].LastAccessSequence < out[j].LastAccessSequence
	})
	return out
}

// Name returns "lfu".
func (p *Policy) Name() string { return "lfu" }
