// Package lru implements the Least-Recently-Used sub-policy: among a
// random sample, the entry with the smallest LastAccessSequence is the
// first candidate for eviction.
package lru

import (
	"sort"

	"github.com/rocksdb/blockcachesim/policy"
)

// Policy is the LRU SubPolicy. The zero value is ready to use.
type Policy struct {
	policy.EvictedSet
}

// New constructs an LRU sub-policy.
func New() *Policy { return &Policy{} }

// Prioritize orders samples ascending by LastAccessSequence, so the
// least-recently-used entry sorts first (evict-first).
func (p *Policy) Prioritize(samples []policy.Sample, _ policy.Context) []policy.Sample {
	out := make([]policy.Sample, len(samples))
	copy(out, samples)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastAccessSequence < out[j].LastAccessSequence
	})
	return out
}

// Name returns "lru".
func (p *Policy) Name() string { return "lru" }
