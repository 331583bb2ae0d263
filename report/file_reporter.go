package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rocksdb/blockcachesim/stats"
)

// FileReporter is the concrete Reporter that writes the original's
// eight-file-per-run CSV layout into a result directory: a header file
// per table (written once, skipped if already present) and a data file
// per table (always overwritten), named
// "{header|data}-ml-{metric}-{time_unit}-{cache_type}-{cache_size}-{cf}".
type FileReporter struct {
	ResultDir string
}

// NewFileReporter constructs a FileReporter writing into dir.
func NewFileReporter(dir string) *FileReporter {
	return &FileReporter{ResultDir: dir}
}

func (f *FileReporter) path(prefix, metric string, unit TimeUnit, cacheType, cacheSize, cf string) string {
	return filepath.Join(f.ResultDir, fmt.Sprintf("%s-ml-%s-%d-%s-%s-%s", prefix, metric, int64(unit), cacheType, cacheSize, cf))
}

// writeHeaderOnce writes a "time,<start>,<start+1>,...,<end-1>" header
// row the first time this table is requested for this cache/cf/unit
// combination; later calls are no-ops, matching the original's
// path.exists guard.
func (f *FileReporter) writeHeaderOnce(metric string, unit TimeUnit, cacheType, cacheSize, cf string, start, end int64) error {
	p := f.path("header", metric, unit, cacheType, cacheSize, cf)
	if _, err := os.Stat(p); err == nil {
		return nil
	}
	row := "time"
	for t := start; t < end; t++ {
		row += fmt.Sprintf(",%d", t)
	}
	return os.WriteFile(p, []byte(row+"\n"), 0o644)
}

// WriteMissRatioSummary writes the single overall-miss-ratio line for
// this cache run (the original's data-ml-mrc-<cache_label> file).
func (f *FileReporter) WriteMissRatioSummary(cacheType, cacheSize, cf string, mrs *stats.MissRatioStats) error {
	label := fmt.Sprintf("%s-%s-%s", cacheType, cacheSize, cf)
	p := filepath.Join(f.ResultDir, "data-ml-mrc-"+label)
	row := fmt.Sprintf("%s,0,0,%s,%.6f,%d\n", cacheType, cacheSize, mrs.OverallMissRatio(), mrs.NumAccesses())
	return os.WriteFile(p, []byte(row), 0o644)
}

// WriteMissTimeline writes the per-bucket miss-count row for one
// cache/time-unit combination.
func (f *FileReporter) WriteMissTimeline(cacheType, cacheSize, cf string, unit TimeUnit, mrs *stats.MissRatioStats, start, end int64) error {
	bw := mrs.BucketWidthSecs()
	bStart, bEnd := start/(microsPerSecond*bw), end/(microsPerSecond*bw)
	if err := f.writeHeaderOnce("miss-timeline", unit, cacheType, cacheSize, cf, bStart, bEnd); err != nil {
		return err
	}
	row := cacheType
	for b := bStart; b < bEnd; b++ {
		row += fmt.Sprintf(",%d", mrs.BucketMisses(b))
	}
	p := f.path("data", "miss-timeline", unit, cacheType, cacheSize, cf)
	return os.WriteFile(p, []byte(row+"\n"), 0o644)
}

// WriteMissRatioTimeline writes the per-bucket miss-ratio row.
func (f *FileReporter) WriteMissRatioTimeline(cacheType, cacheSize, cf string, unit TimeUnit, mrs *stats.MissRatioStats, start, end int64) error {
	bw := mrs.BucketWidthSecs()
	bStart, bEnd := start/(microsPerSecond*bw), end/(microsPerSecond*bw)
	if err := f.writeHeaderOnce("miss-ratio-timeline", unit, cacheType, cacheSize, cf, bStart, bEnd); err != nil {
		return err
	}
	row := cacheType
	for b := bStart; b < bEnd; b++ {
		row += fmt.Sprintf(",%.2f", mrs.BucketMissRatio(b))
	}
	p := f.path("data", "miss-ratio-timeline", unit, cacheType, cacheSize, cf)
	return os.WriteFile(p, []byte(row+"\n"), 0o644)
}

// WritePolicyTimeline writes one row per tracked sub-policy, each the
// per-bucket selection count for that sub-policy.
func (f *FileReporter) WritePolicyTimeline(cacheType, cacheSize, cf string, unit TimeUnit, ps *stats.PolicyStats, start, end int64) error {
	bw := ps.BucketWidthSecs()
	bStart, bEnd := start/(microsPerSecond*bw), end/(microsPerSecond*bw)
	if err := f.writeHeaderOnce("policy-timeline", unit, cacheType, cacheSize, cf, bStart, bEnd); err != nil {
		return err
	}
	var out string
	for _, name := range ps.PolicyNames() {
		row := fmt.Sprintf("%s-%s", cacheType, name)
		for b := bStart; b < bEnd; b++ {
			row += fmt.Sprintf(",%d", ps.BucketSelected(b, name))
		}
		out += row + "\n"
	}
	p := f.path("data", "policy-timeline", unit, cacheType, cacheSize, cf)
	return os.WriteFile(p, []byte(out), 0o644)
}

// WritePolicyRatioTimeline writes one row per tracked sub-policy, each
// the per-bucket selection ratio for that sub-policy.
func (f *FileReporter) WritePolicyRatioTimeline(cacheType, cacheSize, cf string, unit TimeUnit, ps *stats.PolicyStats, start, end int64) error {
	bw := ps.BucketWidthSecs()
	bStart, bEnd := start/(microsPerSecond*bw), end/(microsPerSecond*bw)
	if err := f.writeHeaderOnce("policy-ratio-timeline", unit, cacheType, cacheSize, cf, bStart, bEnd); err != nil {
		return err
	}
	var out string
	for _, name := range ps.PolicyNames() {
		row := fmt.Sprintf("%s-%s", cacheType, name)
		for b := bStart; b < bEnd; b++ {
			row += fmt.Sprintf(",%.2f", ps.BucketSelectedRatio(b, name))
		}
		out += row + "\n"
	}
	p := f.path("data", "policy-ratio-timeline", unit, cacheType, cacheSize, cf)
	return os.WriteFile(p, []byte(out), 0o644)
}

const microsPerSecond int64 = 1_000_000

var _ Reporter = (*FileReporter)(nil)
