package physics

import (
	"math"
	"math/rand"
)

// maxNormalRetries bounds the rejection loop in ClampedNormalRandom.
// With sane parameters the loop exits after a handful of draws.
const maxNormalRetries = 1000

// NormalRandom draws a sample from N(mean, stdDev) using the Box-Muller transform.
func NormalRandom(rng *rand.Rand, mean, stdDev float64) float64 {
	// 1-Float64() is in (0, 1], keeping Log finite.
	u1 := 1 - rng.Float64()
	u2 := rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + z*stdDev
}

// ClampedNormalRandom draws from N(mean, stdDev) and redraws until the value
// falls within [min, max]. Degenerate parameters fall back to clamping mean.
func ClampedNormalRandom(rng *rand.Rand, mean, stdDev, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}
	if stdDev <= 0 {
		return Clamp(mean, min, max)
	}
	for range maxNormalRetries {
		v := NormalRandom(rng, mean, stdDev)
		if v >= min && v <= max {
			return v
		}
	}
	return Clamp(mean, min, max)
}
