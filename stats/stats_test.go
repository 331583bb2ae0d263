package stats

import "testing"

func TestMissRatioStats_Update(t *testing.T) {
	t.Parallel()

	s := NewMissRatioStats(SecondsInMinute)
	s.Update(0, true)
	s.Update(30_000_000, false)
	s.Update(61_000_000, false)

	if s.NumAccesses() != 3 {
		t.Fatalf("NumAccesses = %d, want 3", s.NumAccesses())
	}
	if s.NumMisses() != 2 {
		t.Fatalf("NumMisses = %d, want 2", s.NumMisses())
	}
	if got := s.OverallMissRatio(); got < 66.0 || got > 67.0 {
		t.Fatalf("OverallMissRatio = %v, want ~66.67", got)
	}
	if s.BucketAccesses(0) != 2 {
		t.Fatalf("bucket 0 accesses = %d, want 2", s.BucketAccesses(0))
	}
	if s.BucketAccesses(1) != 1 {
		t.Fatalf("bucket 1 accesses = %d, want 1", s.BucketAccesses(1))
	}
	if s.BucketMissRatio(0) != 50.0 {
		t.Fatalf("bucket 0 miss ratio = %v, want 50", s.BucketMissRatio(0))
	}
}

func TestMissRatioStats_ResetCounters(t *testing.T) {
	t.Parallel()

	s := NewMissRatioStats(SecondsInMinute)
	s.Update(0, false)
	s.ResetCounters()
	if s.NumAccesses() != 0 || s.NumMisses() != 0 {
		t.Fatalf("ResetCounters did not clear running totals")
	}
	if s.BucketAccesses(0) != 1 {
		t.Fatalf("ResetCounters must not clear bucket timelines")
	}
}

func TestPolicyStats_Update(t *testing.T) {
	t.Parallel()

	s := NewPolicyStats(SecondsInMinute, []string{"lru", "mru"})
	s.Update(0, "lru")
	s.Update(1_000_000, "lru")
	s.Update(2_000_000, "mru")

	if s.BucketAccesses(0) != 3 {
		t.Fatalf("bucket 0 accesses = %d, want 3", s.BucketAccesses(0))
	}
	if s.BucketSelected(0, "lru") != 2 {
		t.Fatalf("lru selected = %d, want 2", s.BucketSelected(0, "lru"))
	}
	if got := s.BucketSelectedRatio(0, "mru"); got < 33.0 || got > 34.0 {
		t.Fatalf("mru ratio = %v, want ~33.33", got)
	}
}
