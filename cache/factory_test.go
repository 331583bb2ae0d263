package cache

import (
	"math/rand"
	"testing"
)

func TestParseCacheSize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int64
	}{
		{"4M", 4 * 1 << 20},
		{"2G", 2 * 1 << 30},
		{"1T", 1 << 40},
		{"1024", 1024},
	}
	for _, tc := range cases {
		got, err := ParseCacheSize(tc.in)
		if err != nil {
			t.Fatalf("ParseCacheSize(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseCacheSize(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseCacheSize_Invalid(t *testing.T) {
	t.Parallel()
	if _, err := ParseCacheSize(""); err == nil {
		t.Fatalf("expected error for empty input")
	}
	if _, err := ParseCacheSize("abc"); err == nil {
		t.Fatalf("expected error for non-numeric input")
	}
}

func TestCreate_AllCacheTypes(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	types := []string{
		"ts", "linucb", "pylru", "pymru", "pylfu", "pyhb",
		"opt", "lru", "arc", "gdsize", "ts_hybrid", "linucb_hybrid",
	}
	for _, ct := range types {
		c, err := Create(ct, 1024, 1, rng)
		if err != nil {
			t.Fatalf("Create(%q) error: %v", ct, err)
		}
		if c.CacheSize() != 1024 {
			t.Fatalf("Create(%q) cache size = %d, want 1024", ct, c.CacheSize())
		}
	}
}

func TestCreate_UnknownType(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))
	if _, err := Create("not-a-real-type", 1024, 1, rng); err == nil {
		t.Fatalf("expected error for unknown cache type")
	}
}

func TestCreate_DownsampleDivision(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))
	c, err := Create("lru", 4096, 4, rng)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if c.CacheSize() != 1024 {
		t.Fatalf("CacheSize() = %d, want 1024", c.CacheSize())
	}
}
