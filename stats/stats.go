// Package stats implements the time-bucketed accounting every Cache
// reports through: a plain miss-ratio histogram (MissRatioStats) and a
// per-sub-policy selection histogram (PolicyStats), each bucketed at
// both minute and hour granularity (§4.9).
package stats

const (
	// SecondsInMinute is the minute bucket width.
	SecondsInMinute int64 = 60
	// SecondsInHour is the hour bucket width.
	SecondsInHour int64 = 3600
	// microsInSecond converts access_time_us to seconds before bucketing.
	microsInSecond int64 = 1_000_000
)

// MissRatioStats is a time-bucketed hit/miss histogram.
type MissRatioStats struct {
	bucketWidthSecs int64
	numAccesses     int64
	numMisses       int64
	accesses        map[int64]int64
	misses          map[int64]int64
}

// NewMissRatioStats constructs an empty histogram bucketed at
// bucketWidthSecs-second granularity.
func NewMissRatioStats(bucketWidthSecs int64) *MissRatioStats {
	return &MissRatioStats{
		bucketWidthSecs: bucketWidthSecs,
		accesses:        make(map[int64]int64),
		misses:          make(map[int64]int64),
	}
}

// Bucket maps an access_time_us value to its bucket index.
func (s *MissRatioStats) Bucket(accessTimeUs int64) int64 {
	return accessTimeUs / (microsInSecond * s.bucketWidthSecs)
}

// Update records one access at accessTimeUs, hit or miss.
func (s *MissRatioStats) Update(accessTimeUs int64, isHit bool) {
	b := s.Bucket(accessTimeUs)
	s.numAccesses++
	s.accesses[b]++
	if !isHit {
		s.numMisses++
		s.misses[b]++
	}
}

// ResetCounters zeroes the running totals used by OverallMissRatio,
// matching the original's warmup-boundary reset_counter (the simulator
// calls this once warmup ends so steady-state stats aren't polluted by
// cold-start misses). Per-bucket timelines are left intact.
func (s *MissRatioStats) ResetCounters() {
	s.numAccesses = 0
	s.numMisses = 0
}

// OverallMissRatio reports 100*misses/accesses across the whole run (or
// since the last ResetCounters), or 0 if there have been no accesses.
func (s *MissRatioStats) OverallMissRatio() float64 {
	if s.numAccesses == 0 {
		return 0
	}
	return float64(s.numMisses) * 100.0 / float64(s.numAccesses)
}

// NumAccesses reports the running access count.
func (s *MissRatioStats) NumAccesses() int64 { return s.numAccesses }

// NumMisses reports the running miss count.
func (s *MissRatioStats) NumMisses() int64 { return s.numMisses }

// BucketWidthSecs reports this histogram's bucket width.
func (s *MissRatioStats) BucketWidthSecs() int64 { return s.bucketWidthSecs }

// BucketAccesses reports the access count in bucket b.
func (s *MissRatioStats) BucketAccesses(b int64) int64 { return s.accesses[b] }

// BucketMisses reports the miss count in bucket b.
func (s *MissRatioStats) BucketMisses(b int64) int64 { return s.misses[b] }

// BucketMissRatio reports 100*misses/accesses for bucket b, or 0 if the
// bucket saw no accesses.
func (s *MissRatioStats) BucketMissRatio(b int64) float64 {
	n := s.accesses[b]
	if n == 0 {
		return 0
	}
	return float64(s.misses[b]) * 100.0 / float64(n)
}

// PolicyStats is a time-bucketed histogram of which sub-policy an ML
// cache selected on each eviction, alongside the total selection count
// per bucket across all sub-policies (needed to compute a selection
// ratio).
type PolicyStats struct {
	bucketWidthSecs int64
	policyNames     []string
	accesses        map[int64]int64
	selected        map[int64]map[string]int64
}

// NewPolicyStats constructs an empty histogram for the given sub-policy
// names, bucketed at bucketWidthSecs-second granularity.
func NewPolicyStats(bucketWidthSecs int64, policyNames []string) *PolicyStats {
	names := make([]string, len(policyNames))
	copy(names, policyNames)
	return &PolicyStats{
		bucketWidthSecs: bucketWidthSecs,
		policyNames:     names,
		accesses:        make(map[int64]int64),
		selected:        make(map[int64]map[string]int64),
	}
}

// Bucket maps an access_time_us value to its bucket index.
func (s *PolicyStats) Bucket(accessTimeUs int64) int64 {
	return accessTimeUs / (microsInSecond * s.bucketWidthSecs)
}

// Update records that policyName was the sub-policy chosen for the
// eviction driven by an access at accessTimeUs.
func (s *PolicyStats) Update(accessTimeUs int64, policyName string) {
	b := s.Bucket(accessTimeUs)
	s.accesses[b]++
	m, ok := s.selected[b]
	if !ok {
		m = make(map[string]int64)
		s.selected[b] = m
	}
	m[policyName]++
}

// PolicyNames reports the sub-policy names this histogram tracks, in a
// stable order (the order used for WritePolicyTimeline rows).
func (s *PolicyStats) PolicyNames() []string { return s.policyNames }

// BucketWidthSecs reports this histogram's bucket width.
func (s *PolicyStats) BucketWidthSecs() int64 { return s.bucketWidthSecs }

// BucketAccesses reports the total eviction count in bucket b, across
// all sub-policies.
func (s *PolicyStats) BucketAccesses(b int64) int64 { return s.accesses[b] }

// BucketSelected reports how many times policyName was selected in
// bucket b.
func (s *PolicyStats) BucketSelected(b int64, policyName string) int64 {
	return s.selected[b][policyName]
}

// BucketSelectedRatio reports 100*selected/accesses for policyName in
// bucket b, or 0 if the bucket saw no evictions.
func (s *PolicyStats) BucketSelectedRatio(b int64, policyName string) float64 {
	n := s.accesses[b]
	if n == 0 {
		return 0
	}
	return float64(s.selected[b][policyName]) * 100.0 / float64(n)
}
