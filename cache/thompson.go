package cache

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rocksdb/blockcachesim/policy"
	"github.com/rocksdb/blockcachesim/trace"
)

// ThompsonSamplingCache selects among sub-policies with a Bernoulli
// Thompson Sampling bandit (§4.7): each sub-policy carries a Beta(a,b)
// posterior over "did this policy not recently evict what we now
// need", sampled fresh on every eviction.
type ThompsonSamplingCache struct {
	*SamplingCache
	a, b []float64
}

// NewThompsonSamplingCache constructs a ThompsonSamplingCache over
// subPolicies, with every posterior initialized Beta(1,1).
func NewThompsonSamplingCache(cacheSize int64, enableRowKey bool, subPolicies []policy.SubPolicy, rng *rand.Rand) *ThompsonSamplingCache {
	n := len(subPolicies)
	tc := &ThompsonSamplingCache{
		a: onesOf(n),
		b: onesOf(n),
	}
	name := "ts"
	if enableRowKey {
		name = "ts_hybrid"
	}
	tc.SamplingCache = newSamplingCache(name, cacheSize, enableRowKey, subPolicies, rng, tc)
	return tc
}

func onesOf(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// selectPolicy draws theta_i ~ Beta(a_i,b_i) for every sub-policy, picks
// the argmax, updates that sub-policy's posterior from the reward for
// the incoming key, and returns its index.
func (tc *ThompsonSamplingCache) selectPolicy(_ *trace.Record, key string, policies []policy.SubPolicy) int {
	best := 0
	bestTheta := -1.0
	for i := range policies {
		beta := distuv.Beta{Alpha: tc.a[i], Beta: tc.b[i], Src: tc.rng}
		theta := beta.Rand()
		if theta > bestTheta {
			bestTheta = theta
			best = i
		}
	}
	reward := float64(policies[best].Reward(key))
	tc.a[best] += reward
	tc.b[best] += 1 - reward
	return best
}
