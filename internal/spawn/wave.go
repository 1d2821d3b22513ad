package spawn

import (
	"time"

	"github.com/tomz197/skyfighter/internal/object"
	"github.com/tomz197/skyfighter/internal/physics"
	"github.com/tomz197/skyfighter/internal/tuning"
)

// Wave defaults for levels that leave them unset.
const (
	defaultWaveSize        = 10
	defaultReleaseInterval = 400 * time.Millisecond
)

// WaveStrategy generates each wave up front as a set of formations and
// releases the queued enemies one at a time.
type WaveStrategy struct {
	wave    int
	cleared int
	inWave  bool

	queue      []*object.Enemy
	sinceDrop  time.Duration // Time since the last release
	lastLayout []Formation   // Formations of the current wave
}

var _ Strategy = (*WaveStrategy)(nil)

// Reset clears wave counters and the release queue.
func (s *WaveStrategy) Reset() {
	*s = WaveStrategy{}
}

// Update starts a new wave when none is running and spawning is open, then
// releases queued enemies in FIFO order.
func (s *WaveStrategy) Update(ctx Context) {
	interval := ctx.Level.ReleaseInterval
	if interval <= 0 {
		interval = defaultReleaseInterval
	}

	if s.inWave {
		s.sinceDrop += ctx.Delta
	} else {
		if !ctx.Open {
			return
		}
		s.start(ctx)
		// The first enemy drops as soon as the wave starts.
		s.sinceDrop = interval
	}

	for len(s.queue) > 0 && s.sinceDrop >= interval {
		s.sinceDrop -= interval
		e := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		ctx.Spawner.SpawnEnemy(e)
	}
}

// Settle closes the current wave once every enemy has been released and no
// enemy is left alive.
func (s *WaveStrategy) Settle(active int) {
	if s.WaveComplete(active) {
		s.cleared++
		s.inWave = false
	}
}

// WaveComplete reports whether the running wave is fully released and drained.
func (s *WaveStrategy) WaveComplete(active int) bool {
	return s.inWave && len(s.queue) == 0 && active == 0
}

func (s *WaveStrategy) Wave() int         { return s.wave }
func (s *WaveStrategy) WavesCleared() int { return s.cleared }
func (s *WaveStrategy) Queued() int       { return len(s.queue) }

// Formations returns the formations used by the current wave.
func (s *WaveStrategy) Formations() []Formation { return s.lastLayout }

// start generates the next wave.
func (s *WaveStrategy) start(ctx Context) {
	s.wave++
	s.inWave = true
	s.queue = s.queue[:0]
	s.lastLayout = s.lastLayout[:0]

	cfg := ctx.Level
	total := cfg.WaveSize
	if total <= 0 {
		total = defaultWaveSize
	}
	for _, n := range formationSizes(total, cfg.Formations) {
		f := Formation(ctx.Rand.Intn(int(formationCount)))
		s.queue = append(s.queue, s.formation(ctx, f, n)...)
		s.lastLayout = append(s.lastLayout, f)
	}

	if cfg.HasBoss && s.wave == cfg.WavesRequired {
		if class, ok := cfg.BossClass(); ok {
			if boss, ok := object.NewEnemy(class, cfg.EnemyModifiers()); ok {
				boss.MakeBoss()
				boss.X = ctx.Field.Width/2 - boss.Width/2
				boss.SetPattern(object.PatternStraight, ctx.Rand)
				s.queue = append(s.queue, boss)
			}
		}
	}
}

// formationSizes splits total enemies into groups of ceil(total/groups),
// the last group taking what remains of the quota.
func formationSizes(total, groups int) []int {
	groups = max(groups, 1)
	per := (total + groups - 1) / groups
	var sizes []int
	for remaining := total; remaining > 0; remaining -= per {
		sizes = append(sizes, min(per, remaining))
	}
	return sizes
}

// formation builds n enemies laid out in f, placed just above the field.
func (s *WaveStrategy) formation(ctx Context, f Formation, n int) []*object.Enemy {
	offsets := f.Offsets(n, ctx.Rand)

	margin := tuning.FormationRadius
	var cx float64
	if ctx.Placement == PlaceUniform {
		cx = margin + ctx.Rand.Float64()*max(ctx.Field.Width-2*margin, 0)
	} else {
		cx = physics.ClampedNormalRandom(ctx.Rand, ctx.Field.Width/2, ctx.Field.Width/4, margin, ctx.Field.Width-margin)
	}

	maxY := 0.0
	for _, o := range offsets {
		maxY = max(maxY, o.Y)
	}

	out := make([]*object.Enemy, 0, n)
	for _, o := range offsets {
		e, ok := newEnemy(ctx)
		if !ok {
			continue
		}
		e.X = physics.Clamp(cx+o.X-e.Width/2, 0, max(ctx.Field.Width-e.Width, 0))
		e.Y = o.Y - maxY - e.Height
		e.SetPattern(object.RandomPattern(ctx.Rand), ctx.Rand)
		out = append(out, e)
	}
	return out
}
