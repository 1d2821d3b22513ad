package spawn

import (
	"math"

	"github.com/tomz197/skyfighter/internal/object"
	"github.com/tomz197/skyfighter/internal/tuning"
)

// AsteroidSpawner drops asteroids with a fixed chance per reference frame.
type AsteroidSpawner struct {
	chance float64
}

// NewAsteroidSpawner creates a spawner. A negative chance disables it.
func NewAsteroidSpawner(chance float64) *AsteroidSpawner {
	if chance < 0 {
		chance = 0
	}
	return &AsteroidSpawner{chance: min(chance, 1)}
}

// Update runs one Bernoulli trial scaled to the tick length and spawns a
// random asteroid at the top edge on success.
func (s *AsteroidSpawner) Update(ctx Context) bool {
	if s.chance == 0 {
		return false
	}
	frames := float64(ctx.Delta) / float64(tuning.ReferenceFrame)
	p := 1 - math.Pow(1-s.chance, frames)
	if ctx.Rand.Float64() >= p {
		return false
	}
	ctx.Spawner.SpawnAsteroid(object.NewAsteroidAtTop(ctx.Field, ctx.Rand))
	return true
}
