package cache

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/rocksdb/blockcachesim/policy"
	"github.com/rocksdb/blockcachesim/trace"
)

// linUCBFeatures is the dimensionality of LinUCB's context vector:
// block_type, level, cf_id (§4.8).
const linUCBFeatures = 3

// linUCBAlpha scales the upper-confidence-bound term.
const linUCBAlpha = 0.2

// linUCBJitter is the magnitude of the tie-breaking jitter added to
// every score before argmax.
const linUCBJitter = 1e-6

// LinUCBCache selects among sub-policies with a disjoint per-policy
// linear UCB bandit (§4.8): each sub-policy i keeps A_i (d x d), b_i
// (d), and re-derives theta_hat_i = A_i^-1 b_i and its upper confidence
// bound from the current context every eviction.
type LinUCBCache struct {
	*SamplingCache
	a    []*mat.Dense // A_i, d x d
	ainv []*mat.Dense // cached inverse of A_i
	b    []*mat.VecDense
}

// NewLinUCBCache constructs a LinUCBCache over subPolicies, with every
// A_i initialized to the identity and b_i to zero.
func NewLinUCBCache(cacheSize int64, enableRowKey bool, subPolicies []policy.SubPolicy, rng *rand.Rand) *LinUCBCache {
	n := len(subPolicies)
	lc := &LinUCBCache{
		a:    make([]*mat.Dense, n),
		ainv: make([]*mat.Dense, n),
		b:    make([]*mat.VecDense, n),
	}
	for i := 0; i < n; i++ {
		ident := identity(linUCBFeatures)
		lc.a[i] = ident
		invCopy := mat.NewDense(linUCBFeatures, linUCBFeatures, nil)
		invCopy.CloneFrom(ident)
		lc.ainv[i] = invCopy
		lc.b[i] = mat.NewVecDense(linUCBFeatures, nil)
	}
	name := "linucb"
	if enableRowKey {
		name = "linucb_hybrid"
	}
	lc.SamplingCache = newSamplingCache(name, cacheSize, enableRowKey, subPolicies, rng, lc)
	return lc
}

func identity(d int) *mat.Dense {
	m := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// selectPolicy scores every sub-policy by mean reward plus a confidence
// bound on the current context, breaks ties with a tiny uniform jitter,
// updates the winner's linear model from the reward for the incoming
// key, and returns its index.
func (lc *LinUCBCache) selectPolicy(rec *trace.Record, key string, policies []policy.SubPolicy) int {
	x := mat.NewVecDense(linUCBFeatures, []float64{
		float64(rec.BlockType),
		float64(rec.Level),
		float64(rec.CFID),
	})

	best := 0
	bestScore := math.Inf(-1)
	for i := range policies {
		var thetaHat mat.VecDense
		thetaHat.MulVec(lc.ainv[i], lc.b[i])
		mean := mat.Dot(&thetaHat, x)

		var av mat.VecDense
		av.MulVec(lc.ainv[i], x)
		ta := mat.Dot(x, &av)
		if ta < 0 {
			ta = 0
		}
		upperCI := linUCBAlpha * math.Sqrt(ta)

		score := mean + upperCI + lc.rng.Float64()*linUCBJitter
		if score > bestScore {
			bestScore = score
			best = i
		}
	}

	reward := float64(policies[best].Reward(key))

	var outer mat.Dense
	outer.Outer(1, x, x)
	lc.a[best].Add(lc.a[best], &outer)

	var scaled mat.VecDense
	scaled.ScaleVec(reward, x)
	lc.b[best].AddVec(lc.b[best], &scaled)

	var inv mat.Dense
	if err := inv.Inverse(lc.a[best]); err == nil {
		lc.ainv[best] = &inv
	}

	return best
}
