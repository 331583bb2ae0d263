// Package hyperbolic implements the Hyperbolic caching sub-policy
// (Blankstein, Sen & Freedman): among a random sample, the entry with
// the smallest num_hits / (age_seconds * size) is the first candidate
// for eviction, since that ratio falls as an entry ages without being
// re-referenced.
package hyperbolic

import (
	"sort"

	"github.com/rocksdb/blockcachesim/policy"
)

// Policy is the Hyperbolic SubPolicy. The zero value is ready to use.
type Policy struct {
	policy.EvictedSet
}

// New constructs a Hyperbolic sub-policy.
func New() *Policy { return &Policy{} }

// Prioritize orders samples ascending by priority = num_hits /
// (age_seconds * size), where age_seconds = max(0, (now-insertion)/1e6).
// An entry whose age or size is zero has undefined priority and sorts
// first (evict-first), ahead of any entry with a computable ratio. Ties
// among priority-less or equal-priority entries break by NumHits
// ascending.
func (p *Policy) Prioritize(samples []policy.Sample, ctx policy.Context) []policy.Sample {
	type scored struct {
		s        policy.Sample
		priority float64
		zero     bool
	}
	scoredSamples := make([]scored, len(samples))
	for i, s := range samples {
		ageUs := ctx.NowUs - s.InsertionTimeUs
		if ageUs < 0 {
			ageUs = 0
		}
		ageSeconds := float64(ageUs) / 1e6
		if ageSeconds == 0 || s.ValueSize == 0 {
			scoredSamples[i] = scored{s: s, zero: true}
			continue
		}
		scoredSamples[i] = scored{
			s:        s,
			priority: float64(s.NumHits) / (ageSeconds * float64(s.ValueSize)),
		}
	}
	sort.SliceStable(scoredSamples, func(i, j int) bool {
		a, b := scoredSamples[i], scoredSamples[j]
		if a.zero != b.zero {
			return a.zero
		}
		if a.zero && b.zero {
			return a.s.NumHits < b.s.NumHits
		}
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		return a.s.NumHits < b.s.NumHits
	})
	out := make([]policy.Sample, len(scoredSamples))
	for i, sc := range scoredSamples {
		out[i] = sc.s
	}
	return out
}

// Name returns "hb".
func (p *Policy) Name() string { return "hb" }
