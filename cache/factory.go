package cache

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rocksdb/blockcachesim/policy"
	"github.com/rocksdb/blockcachesim/policy/hyperbolic"
	"github.com/rocksdb/blockcachesim/policy/lfu"
	"github.com/rocksdb/blockcachesim/policy/lru"
	"github.com/rocksdb/blockcachesim/policy/mru"
)

// hybridSuffix marks a cache_type as enabling row-key coalescing for a
// sample-based cache (§6).
const hybridSuffix = "_hybrid"

// Create builds the Cache named by cacheType (mirroring the original
// create_cache), at capacity cacheSize/downsampleSize bytes. rng is the
// single seeded generator threaded through every source of randomness
// the cache needs (§9): hash-table sampling, Thompson beta draws,
// LinUCB jitter.
func Create(cacheType string, cacheSize, downsampleSize int64, rng *rand.Rand) (Cache, error) {
	if downsampleSize <= 0 {
		return nil, fmt.Errorf("cache: downsample_size must be positive, got %d", downsampleSize)
	}
	effectiveSize := cacheSize / downsampleSize

	enableRowKey := false
	t := cacheType
	if strings.HasSuffix(t, hybridSuffix) {
		enableRowKey = true
		t = strings.TrimSuffix(t, hybridSuffix)
	}

	switch t {
	case "ts":
		return NewThompsonSamplingCache(effectiveSize, enableRowKey, fullSubPolicySet(), rng), nil
	case "linucb":
		return NewLinUCBCache(effectiveSize, enableRowKey, fullSubPolicySet(), rng), nil
	case "pylru":
		return NewThompsonSamplingCache(effectiveSize, enableRowKey, []policy.SubPolicy{lru.New()}, rng), nil
	case "pymru":
		return NewThompsonSamplingCache(effectiveSize, enableRowKey, []policy.SubPolicy{mru.New()}, rng), nil
	case "pylfu":
		return NewThompsonSamplingCache(effectiveSize, enableRowKey, []policy.SubPolicy{lfu.New()}, rng), nil
	case "pyhb":
		return NewThompsonSamplingCache(effectiveSize, enableRowKey, []policy.SubPolicy{hyperbolic.New()}, rng), nil
	case "opt":
		return NewOPTCache(effectiveSize), nil
	case "lru":
		return NewLRUCache(effectiveSize), nil
	case "arc":
		return NewARCCache(effectiveSize), nil
	case "gdsize":
		return NewGDSizeCache(effectiveSize), nil
	default:
		return nil, fmt.Errorf("cache: unknown cache type %q", cacheType)
	}
}

// fullSubPolicySet is the sub-policy roster the ts/linucb meta-caches
// choose among (§6): LRU, LFU, Hyperbolic. MRU only ever appears alone,
// behind the pymru single-policy wrapper.
func fullSubPolicySet() []policy.SubPolicy {
	return []policy.SubPolicy{lru.New(), lfu.New(), hyperbolic.New()}
}

// ParseCacheSize parses a byte count with an optional M|G|T power-of-two
// suffix (§6, §8 property 7): parse("4M") = 4*2^20, parse("2G") = 2*2^30,
// parse("1T") = 2^40, parse("1024") = 1024.
func ParseCacheSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("cache: empty cache size")
	}
	suffix := s[len(s)-1]
	var mul int64 = 1
	numeric := s
	switch suffix {
	case 'M':
		mul = 1 << 20
		numeric = s[:len(s)-1]
	case 'G':
		mul = 1 << 30
		numeric = s[:len(s)-1]
	case 'T':
		mul = 1 << 40
		numeric = s[:len(s)-1]
	}
	var n int64
	if _, err := fmt.Sscanf(numeric, "%d", &n); err != nil {
		return 0, fmt.Errorf("cache: invalid cache size %q: %w", s, err)
	}
	return n * mul, nil
}
