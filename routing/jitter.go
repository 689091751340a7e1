package routing

import (
	"math"

	"github.com/cespare/xxhash/v2"
)

// jitterBuckets controls the resolution of the seeded jitter. The hash
// is reduced modulo this many buckets and normalized into [0, 1).
const jitterBuckets = 10000

// seededJitter derives a deterministic pseudo-random value in
// [min, max] from a seed string. Identical seeds always produce the
// same value; different token/strategy/amount seeds spread well thanks
// to the 64-bit mix.
func seededJitter(seed string, min, max float64) float64 {
	if seed == "" {
		seed = "seed"
	}
	normalized := float64(xxhash.Sum64String(seed)%jitterBuckets) / jitterBuckets
	return round6(min + (max-min)*normalized)
}

func round6(value float64) float64 {
	return math.Round(value*1e6) / 1e6
}

func clamp(value, min, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}
