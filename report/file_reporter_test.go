package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rocksdb/blockcachesim/stats"
)

func TestFileReporterWriteAll(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	rep := NewFileReporter(dir)

	minuteMiss := stats.NewMissRatioStats(stats.SecondsInMinute)
	hourMiss := stats.NewMissRatioStats(stats.SecondsInHour)
	minutePolicy := stats.NewPolicyStats(stats.SecondsInMinute, []string{"lru", "lfu"})
	hourPolicy := stats.NewPolicyStats(stats.SecondsInHour, []string{"lru", "lfu"})

	for i := int64(0); i < 5; i++ {
		accessTimeUs := i * 1_000_000
		isHit := i%2 == 0
		minuteMiss.Update(accessTimeUs, isHit)
		hourMiss.Update(accessTimeUs, isHit)
		if !isHit {
			name := "lru"
			if i%3 == 0 {
				name = "lfu"
			}
			minutePolicy.Update(accessTimeUs, name)
			hourPolicy.Update(accessTimeUs, name)
		}
	}

	if err := WriteAll(rep, "lru", "1024", "all", minuteMiss, hourMiss, minutePolicy, hourPolicy, 0, 5_000_000); err != nil {
		t.Fatalf("WriteAll error: %v", err)
	}

	wantFiles := []string{
		"data-ml-mrc-lru-1024-all",
		"data-ml-miss-timeline-60-lru-1024-all",
		"header-ml-miss-timeline-60-lru-1024-all",
		"data-ml-miss-ratio-timeline-60-lru-1024-all",
		"header-ml-miss-ratio-timeline-60-lru-1024-all",
		"data-ml-policy-timeline-60-lru-1024-all",
		"header-ml-policy-timeline-60-lru-1024-all",
		"data-ml-policy-ratio-timeline-60-lru-1024-all",
		"header-ml-policy-ratio-timeline-60-lru-1024-all",
		"data-ml-miss-timeline-3600-lru-1024-all",
		"data-ml-policy-timeline-3600-lru-1024-all",
	}
	for _, name := range wantFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected file %q to exist: %v", name, err)
		}
	}

	summary, err := os.ReadFile(filepath.Join(dir, "data-ml-mrc-lru-1024-all"))
	if err != nil {
		t.Fatalf("reading mrc summary: %v", err)
	}
	fields := strings.Split(strings.TrimSpace(string(summary)), ",")
	if fields[0] != "lru" {
		t.Fatalf("mrc summary cache type = %q, want lru", fields[0])
	}

	policyTimeline, err := os.ReadFile(filepath.Join(dir, "data-ml-policy-timeline-60-lru-1024-all"))
	if err != nil {
		t.Fatalf("reading policy timeline: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(policyTimeline), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("policy timeline has %d rows, want 2 (one per sub-policy)", len(lines))
	}
}

func TestFileReporterHeaderWrittenOnce(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	rep := NewFileReporter(dir)
	mrs := stats.NewMissRatioStats(stats.SecondsInMinute)
	mrs.Update(0, false)

	if err := rep.WriteMissTimeline("lru", "1024", "all", Minute, mrs, 0, 1_000_000); err != nil {
		t.Fatalf("first WriteMissTimeline error: %v", err)
	}
	headerPath := filepath.Join(dir, "header-ml-miss-timeline-60-lru-1024-all")
	first, err := os.ReadFile(headerPath)
	if err != nil {
		t.Fatalf("reading header: %v", err)
	}

	// A second call with a different range must not rewrite the header.
	if err := rep.WriteMissTimeline("lru", "1024", "all", Minute, mrs, 0, 5_000_000); err != nil {
		t.Fatalf("second WriteMissTimeline error: %v", err)
	}
	second, err := os.ReadFile(headerPath)
	if err != nil {
		t.Fatalf("re-reading header: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("header file changed on second write: %q -> %q", first, second)
	}
}
