// Package sim drives a trace file through a cache.Cache record by
// record, with the two-pass preprocessing OPT needs to see the future
// (§5) and the warmup/column-family-filter/access-cap policy the CLI
// exposes (§4.11).
package sim

import (
	"errors"
	"io"
	"log"
	"os"
	"time"

	"github.com/rocksdb/blockcachesim/cache"
	"github.com/rocksdb/blockcachesim/trace"
)

// NoAccessLimit disables Simulator.MaxAccesses (process the whole
// trace), matching the original's max_accesses_to_process == -1.
const NoAccessLimit = -1

// AllColumnFamilies matches every record regardless of cf_name,
// matching the original's target_cf_name == "all".
const AllColumnFamilies = "all"

// Simulator replays one trace file through one Cache.
type Simulator struct {
	TraceFilePath string
	Cache         cache.Cache
	WarmupSeconds int64
	MaxAccesses   int64
	TargetCF      string

	// ProgressEvery checks progress every ProgressEvery records and logs
	// throughput via the stdlib logger when more than 10 seconds have
	// passed since the last progress line (0 disables progress logging).
	ProgressEvery int64
}

// Result reports the trace's observed time span, needed to size every
// report.Reporter timeline table.
type Result struct {
	TraceStartTimeUs int64
	TraceEndTimeUs   int64
}

func (s *Simulator) targetCF() string {
	if s.TargetCF == "" {
		return AllColumnFamilies
	}
	return s.TargetCF
}

func (s *Simulator) isTargetCF(cf string) bool {
	t := s.targetCF()
	return t == AllColumnFamilies || t == cf
}

// Run replays the trace. When the cache reports its name as "opt" it
// first makes a preprocessing pass building each block's access
// timeline, so OPT can always evict the key whose next access is
// furthest in the future (§5, Open Question resolution: timelines are
// fully materialized rather than streamed, trading memory for a single
// straightforward pass).
func (s *Simulator) Run() (*Result, error) {
	isOPT := s.Cache.CacheName() == "opt"

	var timelines map[uint64]*blockAccessTimeline
	if isOPT {
		var err error
		timelines, err = s.preprocess()
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(s.TraceFilePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := trace.NewReader(f)

	var accessSeqNo int64
	var traceStartTime, traceDuration int64
	sawFirstRecord := false
	warmupComplete := s.WarmupSeconds <= 0

	start := time.Now()
	lastReport := start

	for {
		if s.MaxAccesses != NoAccessLimit && accessSeqNo >= s.MaxAccesses {
			break
		}
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if !s.isTargetCF(rec.CFName) {
			continue
		}
		if !sawFirstRecord {
			traceStartTime = rec.AccessTimeUs
			sawFirstRecord = true
		}
		traceDuration = rec.AccessTimeUs - traceStartTime

		if !warmupComplete && traceDuration > s.WarmupSeconds*1_000_000 {
			s.Cache.MissRatioStats().ResetCounters()
			warmupComplete = true
		}

		if isOPT {
			rec.NextAccessSeqNo = timelines[rec.BlockID].nextAccess()
		}

		s.Cache.Access(rec)
		accessSeqNo++

		if s.ProgressEvery > 0 && accessSeqNo%s.ProgressEvery == 0 {
			now := time.Now()
			if now.Sub(lastReport) > 10*time.Second {
				log.Printf(
					"processed %d records (trace duration %ds), %.1f records/sec, miss ratio %.2f%%",
					accessSeqNo, traceDuration/1_000_000,
					float64(accessSeqNo)/now.Sub(start).Seconds(),
					s.Cache.MissRatioStats().OverallMissRatio(),
				)
				lastReport = now
			}
		}
	}

	return &Result{
		TraceStartTimeUs: traceStartTime,
		TraceEndTimeUs:   traceStartTime + traceDuration,
	}, nil
}

// preprocess makes the first pass OPT needs: every block's full
// sequence of access indices, in trace order, restricted to the same
// column-family filter and access cap the main pass applies.
func (s *Simulator) preprocess() (map[uint64]*blockAccessTimeline, error) {
	f, err := os.Open(s.TraceFilePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	log.Printf("preprocessing block traces for OPT")
	reader := trace.NewReader(f)
	timelines := make(map[uint64]*blockAccessTimeline)

	var accessSeqNo int64
	for {
		if s.MaxAccesses != NoAccessLimit && accessSeqNo >= s.MaxAccesses {
			break
		}
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if !s.isTargetCF(rec.CFName) {
			continue
		}
		t, ok := timelines[rec.BlockID]
		if !ok {
			t = newBlockAccessTimeline()
			timelines[rec.BlockID] = t
		}
		t.accesses = append(t.accesses, accessSeqNo)
		accessSeqNo++
	}
	log.Printf("preprocessed %d blocks, %d accesses", len(timelines), accessSeqNo)
	return timelines, nil
}

// blockAccessTimeline stores one block's access sequence numbers in
// trace order and hands them out one at a time as the main pass
// revisits that block, mirroring the original BlockAccessTimeline.
type blockAccessTimeline struct {
	accesses []int64
	cursor   int
}

func newBlockAccessTimeline() *blockAccessTimeline {
	return &blockAccessTimeline{cursor: 1}
}

// nextAccess returns the sequence number of this block's next access
// after the one that produced the timeline's current cursor position,
// or trace.NeverAgain if there isn't one.
func (t *blockAccessTimeline) nextAccess() int64 {
	if t.cursor >= len(t.accesses) {
		return trace.NeverAgain
	}
	v := t.accesses[t.cursor]
	t.cursor++
	return v
}
