package cache

import (
	"math/rand"

	"github.com/rocksdb/blockcachesim/internal/htable"
	"github.com/rocksdb/blockcachesim/policy"
	"github.com/rocksdb/blockcachesim/trace"
)

// kSampleSize is the number of candidates drawn from the hash table on
// each eviction round (§4.5).
const kSampleSize = 64

// policySelector is the one method ThompsonSamplingCache and
// LinUCBCache each implement differently: choose which sub-policy
// governs this eviction, and feed back the reward for the incoming key
// before returning. This plays the role MLCache._select_policy plays in
// the original, generalized into a small interface so SamplingCache can
// stay policy-agnostic.
type policySelector interface {
	selectPolicy(rec *trace.Record, key string, policies []policy.SubPolicy) int
}

// SamplingCache is the shared base for the sample-based ML meta-caches
// (§4.5): lookup/evict/insert/should-admit are identical across
// ThompsonSampling and LinUCB, differing only in how the sub-policy is
// chosen per eviction, which is delegated to sel.
type SamplingCache struct {
	*base
	table     *htable.Table[CacheEntry]
	policies  []policy.SubPolicy
	rng       *rand.Rand
	sel       policySelector
	accessSeq int64
}

// newSamplingCache wires the shared plumbing; rng is also the source of
// randomness for the hash table's RandomSample bucket selection (§9).
func newSamplingCache(name string, cacheSize int64, enableRowKey bool, policies []policy.SubPolicy, rng *rand.Rand, sel policySelector) *SamplingCache {
	names := make([]string, len(policies))
	for i, p := range policies {
		names[i] = p.Name()
	}
	sc := &SamplingCache{
		table:    htable.New[CacheEntry](func() uint64 { return rng.Uint64() }),
		policies: policies,
		rng:      rng,
		sel:      sel,
	}
	sc.base = newBase(name, cacheSize, enableRowKey, names, sc)
	return sc
}

func (c *SamplingCache) lookup(rec *trace.Record, key string, hash uint64) bool {
	v, ok := c.table.Lookup(key, hash)
	if !ok {
		return false
	}
	c.accessSeq++
	v.NumHits++
	v.LastAccessSequence = c.accessSeq
	v.LastAccessTimeUs = rec.AccessTimeUs
	c.table.Insert(key, hash, v)
	return true
}

// evict selects a sub-policy, un-records key from its evicted-set (it
// is about to be re-admitted), then repeatedly samples kSampleSize
// candidates and evicts worst-first until there is room (§4.5, §4.6).
func (c *SamplingCache) evict(rec *trace.Record, key string, _ uint64, valueSize int64) {
	idx := c.sel.selectPolicy(rec, key, c.policies)
	c.policies[idx].Delete(key)
	c.recordPolicySelection(rec.AccessTimeUs, c.policies[idx].Name())

	for c.usedSize+valueSize > c.cacheSize {
		raw := c.table.RandomSample(kSampleSize)
		if len(raw) == 0 {
			return
		}
		hashOf := make(map[string]uint64, len(raw))
		samples := make([]policy.Sample, len(raw))
		for i, e := range raw {
			hashOf[e.Key] = e.Hash
			samples[i] = policy.Sample{
				Key:                e.Key,
				ValueSize:          e.Value.ValueSize,
				LastAccessSequence: e.Value.LastAccessSequence,
				NumHits:            e.Value.NumHits,
				InsertionTimeUs:    e.Value.InsertionTimeUs,
			}
		}
		ordered := c.policies[idx].Prioritize(samples, policy.Context{NowUs: rec.AccessTimeUs})
		for _, s := range ordered {
			v, ok := c.table.Delete(s.Key, hashOf[s.Key])
			if !ok {
				continue
			}
			c.usedSize -= v.ValueSize
			c.policies[idx].Evict(s.Key)
			if c.metrics != nil {
				c.metrics.Evict(EvictPolicy)
			}
			if c.usedSize+valueSize <= c.cacheSize {
				break
			}
		}
	}
}

func (c *SamplingCache) entryCount() int { return c.table.Len() }

func (c *SamplingCache) shouldAdmit(*trace.Record, string, uint64, int64) bool { return true }

func (c *SamplingCache) insert(rec *trace.Record, key string, hash uint64, valueSize int64) {
	c.accessSeq++
	c.table.Insert(key, hash, CacheEntry{
		ValueSize:          valueSize,
		CFID:               rec.CFID,
		Level:              rec.Level,
		BlockType:          rec.BlockType,
		LastAccessSequence: c.accessSeq,
		LastAccessTimeUs:   rec.AccessTimeUs,
		InsertionTimeUs:    rec.AccessTimeUs,
	})
}
