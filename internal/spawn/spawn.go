// Package spawn creates enemies and asteroids for the running level.
package spawn

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tomz197/skyfighter/internal/level"
	"github.com/tomz197/skyfighter/internal/object"
	"github.com/tomz197/skyfighter/internal/physics"
)

// Placement selects how the horizontal spawn position is drawn.
type Placement int

const (
	PlaceCentered Placement = iota // Gaussian around the field center
	PlaceUniform                   // Uniform across the field width
)

// ParsePlacement converts a settings value to a Placement.
func ParsePlacement(s string) (Placement, error) {
	switch s {
	case "centered", "":
		return PlaceCentered, nil
	case "uniform":
		return PlaceUniform, nil
	default:
		return 0, fmt.Errorf("unknown placement %q", s)
	}
}

// Context carries what a strategy needs for one update.
type Context struct {
	Delta     time.Duration
	Level     level.Config
	Field     object.Playfield
	Rand      *rand.Rand
	Spawner   object.Spawner
	Open      bool // The completion policy still allows new enemies
	Placement Placement
}

// Strategy produces enemies for a level.
type Strategy interface {
	// Reset clears all progress for a new level.
	Reset()
	// Update advances spawn timers and spawns enemies.
	Update(ctx Context)
	// Settle is called after combat with the number of live enemies.
	Settle(active int)
	// Wave returns the number of waves started this level.
	Wave() int
	// WavesCleared returns the number of fully drained waves.
	WavesCleared() int
	// Queued returns the number of enemies waiting for release.
	Queued() int
}

// Mode names accepted by New.
const (
	ModeWaves = "waves"
	ModeTimer = "timer"
)

// New returns the strategy for a settings mode.
func New(mode string) (Strategy, error) {
	switch mode {
	case ModeWaves, "":
		return &WaveStrategy{}, nil
	case ModeTimer:
		return &TimerStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown spawn mode %q", mode)
	}
}

// placeX draws the left edge for an entity of width w.
func placeX(ctx Context, w float64) float64 {
	hi := max(ctx.Field.Width-w, 0)
	if ctx.Placement == PlaceUniform {
		return ctx.Rand.Float64() * hi
	}
	return physics.ClampedNormalRandom(ctx.Rand, ctx.Field.Width/2-w/2, ctx.Field.Width/4, 0, hi)
}

// newEnemy creates an enemy of a random roster class. ok is false when the
// level has no usable roster.
func newEnemy(ctx Context) (*object.Enemy, bool) {
	if len(ctx.Level.Roster) == 0 {
		return nil, false
	}
	class := ctx.Level.Roster[ctx.Rand.Intn(len(ctx.Level.Roster))]
	return object.NewEnemy(class, ctx.Level.EnemyModifiers())
}

// TimerStrategy spawns one enemy every level spawn interval.
type TimerStrategy struct {
	elapsed time.Duration
}

var _ Strategy = (*TimerStrategy)(nil)

func (s *TimerStrategy) Reset() { s.elapsed = 0 }

// Update spawns an enemy once the accumulated time reaches the level's spawn
// interval. The accumulator restarts from zero.
func (s *TimerStrategy) Update(ctx Context) {
	if !ctx.Open || ctx.Level.SpawnInterval <= 0 {
		return
	}
	s.elapsed += ctx.Delta
	if s.elapsed < ctx.Level.SpawnInterval {
		return
	}
	s.elapsed = 0

	e, ok := newEnemy(ctx)
	if !ok {
		return
	}
	e.X = placeX(ctx, e.Width)
	e.SetPattern(object.RandomPattern(ctx.Rand), ctx.Rand)
	ctx.Spawner.SpawnEnemy(e)
}

func (s *TimerStrategy) Settle(int)        {}
func (s *TimerStrategy) Wave() int         { return 0 }
func (s *TimerStrategy) WavesCleared() int { return 0 }
func (s *TimerStrategy) Queued() int       { return 0 }
