package cache

import (
	"testing"

	"github.com/rocksdb/blockcachesim/trace"
)

// TestGDSizeCache_S3SizeSensitivity mirrors scenario S3: size 10,
// insert X(size=8) then Y(size=2), then a miss on Z(size=5) evicts Y
// (priority 2) then X (priority 8), raising L to 8 and leaving {Z}.
func TestGDSizeCache_S3SizeSensitivity(t *testing.T) {
	t.Parallel()

	c := NewGDSizeCache(10)
	c.Access(&trace.Record{AccessTimeUs: 0, BlockID: 1, BlockSize: 8}) // X
	c.Access(&trace.Record{AccessTimeUs: 1, BlockID: 2, BlockSize: 2}) // Y
	c.Access(&trace.Record{AccessTimeUs: 2, BlockID: 3, BlockSize: 5}) // Z

	if c.inflation != 8 {
		t.Fatalf("inflation L = %v, want 8", c.inflation)
	}
	if c.UsedSize() != 5 {
		t.Fatalf("UsedSize = %d, want 5", c.UsedSize())
	}
	if _, ok := c.entries[(&trace.Record{BlockID: 3}).BlockKey()]; !ok {
		t.Fatalf("Z should be resident")
	}
	if _, ok := c.entries[(&trace.Record{BlockID: 1}).BlockKey()]; ok {
		t.Fatalf("X should have been evicted")
	}
	if _, ok := c.entries[(&trace.Record{BlockID: 2}).BlockKey()]; ok {
		t.Fatalf("Y should have been evicted")
	}
}
