package hyperbolic

import (
	"testing"

	"github.com/rocksdb/blockcachesim/policy"
)

func TestPolicy_Prioritize_LowestRatioFirst(t *testing.T) {
	t.Parallel()

	p := New()
	ctx := policy.Context{NowUs: 10_000_000}
	samples := []policy.Sample{
		// age = 9s, ratio = 9/(9*1) = 1.0
		{Key: "hot", NumHits: 9, ValueSize: 1, InsertionTimeUs: 1_000_000},
		// age = 9s, ratio = 1/(9*1) ~= 0.111
		{Key: "cold", NumHits: 1, ValueSize: 1, InsertionTimeUs: 1_000_000},
	}

	out := p.Prioritize(samples, ctx)

	if out[0].Key != "cold" || out[1].Key != "hot" {
		t.Fatalf("expected cold then hot, got %v,%v", out[0].Key, out[1].Key)
	}
}

func TestPolicy_Prioritize_ZeroAgeOrSizeSortsFirst(t *testing.T) {
	t.Parallel()

	p := New()
	ctx := policy.Context{NowUs: 1_000_000}
	samples := []policy.Sample{
		{Key: "established", NumHits: 5, ValueSize: 1, InsertionTimeUs: 0},
		{Key: "brandnew", NumHits: 5, ValueSize: 1, InsertionTimeUs: 1_000_000},
	}

	out := p.Prioritize(samples, ctx)

	if out[0].Key != "brandnew" {
		t.Fatalf("expected zero-age entry first, got %v", out[0].Key)
	}
}

func TestPolicy_Name(t *testing.T) {
	t.Parallel()
	if New().Name() != "hb" {
		t.Fatalf("Name() != hb")
	}
}
