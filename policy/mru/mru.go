// Package mru implements the Most-Recently-Used sub-policy: among a
// random sample, the entry with the largest LastAccessSequence is the
// first candidate for eviction.
package mru

import (
	"sort"

	"github.com/rocksdb/blockcachesim/policy"
)

// Policy is the MRU SubPolicy. The zero value is ready to use.
type Policy struct {
	policy.EvictedSet
}

// New constructs an MRU sub-policy.
func New() *Policy { return &Policy{} }

// Prioritize orders samples descending by LastAccessSequence, so the
// most-recently-used entry sorts first (evict-first).
func (p *Policy) Prioritize(samples []policy.Sample, _ policy.Context) []policy.Sample {
	out := make([]policy.Sample, len(samples))
	copy(out, samples)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastAccessSequence > out[j].LastAccessSequence
	})
	return out
}

// Name returns "mru".
func (p *Policy) Name() string { return "mru" }
