// Package report implements the result-writing seam a Simulator run
// drives at the end of trace replay (§4.10): a miss-ratio summary line
// plus the four per-cache timeline tables (miss counts, miss ratios,
// policy-selection counts, policy-selection ratios), at both minute and
// hour granularity.
package report

import (
	"fmt"

	"github.com/rocksdb/blockcachesim/stats"
)

// TimeUnit names a MissRatioStats/PolicyStats bucket width for the
// purpose of labeling output files, mirroring the original's time_unit
// value embedded directly into every header/data file name.
type TimeUnit int64

const (
	Minute TimeUnit = TimeUnit(stats.SecondsInMinute)
	Hour   TimeUnit = TimeUnit(stats.SecondsInHour)
)

// Reporter is the seam a Simulator drives once a run completes. It
// takes *stats.MissRatioStats/*stats.PolicyStats directly rather than a
// separate snapshot type: the histograms are already immutable from the
// reporter's point of view once the run has stopped driving Access, so
// an extra copy would buy nothing.
type Reporter interface {
	// WriteMissRatioSummary writes the single overall-miss-ratio line
	// for one cache run (the original's "mrc" file).
	WriteMissRatioSummary(cacheType, cacheSize, cf string, mrs *stats.MissRatioStats) error

	WriteMissTimeline(cacheType, cacheSize, cf string, unit TimeUnit, mrs *stats.MissRatioStats, start, end int64) error
	WriteMissRatioTimeline(cacheType, cacheSize, cf string, unit TimeUnit, mrs *stats.MissRatioStats, start, end int64) error
	WritePolicyTimeline(cacheType, cacheSize, cf string, unit TimeUnit, ps *stats.PolicyStats, start, end int64) error
	WritePolicyRatioTimeline(cacheType, cacheSize, cf string, unit TimeUnit, ps *stats.PolicyStats, start, end int64) error
}

// WriteAll drives every Reporter method for one completed cache run, at
// both minute and hour granularity, matching report_stats in the
// original: a single mrc summary line, then four timeline tables at
// minute granularity and the same four at hour granularity.
func WriteAll(
	rep Reporter,
	cacheType, cacheSize, cf string,
	minuteMiss, hourMiss *stats.MissRatioStats,
	minutePolicy, hourPolicy *stats.PolicyStats,
	traceStart, traceEnd int64,
) error {
	if err := rep.WriteMissRatioSummary(cacheType, cacheSize, cf, minuteMiss); err != nil {
		return fmt.Errorf("report: miss ratio summary: %w", err)
	}
	if err := rep.WritePolicyTimeline(cacheType, cacheSize, cf, Minute, minutePolicy, traceStart, traceEnd); err != nil {
		return fmt.Errorf("report: policy timeline: %w", err)
	}
	if err := rep.WritePolicyRatioTimeline(cacheType, cacheSize, cf, Minute, minutePolicy, traceStart, traceEnd); err != nil {
		return fmt.Errorf("report: policy ratio timeline: %w", err)
	}
	if err := rep.WriteMissTimeline(cacheType, cacheSize, cf, Minute, minuteMiss, traceStart, traceEnd); err != nil {
		return fmt.Errorf("report: miss timeline: %w", err)
	}
	if err := rep.WriteMissRatioTimeline(cacheType, cacheSize, cf, Minute, minuteMiss, traceStart, traceEnd); err != nil {
		return fmt.Errorf("report: miss ratio timeline: %w", err)
	}
	if err := rep.WritePolicyTimeline(cacheType, cacheSize, cf, Hour, hourPolicy, traceStart, traceEnd); err != nil {
		return fmt.Errorf("report: hourly policy timeline: %w", err)
	}
	if err := rep.WritePolicyRatioTimeline(cacheType, cacheSize, cf, Hour, hourPolicy, traceStart, traceEnd); err != nil {
		return fmt.Errorf("report: hourly policy ratio timeline: %w", err)
	}
	if err := rep.WriteMissTimeline(cacheType, cacheSize, cf, Hour, hourMiss, traceStart, traceEnd); err != nil {
		return fmt.Errorf("report: hourly miss timeline: %w", err)
	}
	if err := rep.WriteMissRatioTimeline(cacheType, cacheSize, cf, Hour, hourMiss, traceStart, traceEnd); err != nil {
		return fmt.Errorf("report: hourly miss ratio timeline: %w", err)
	}
	return nil
}
