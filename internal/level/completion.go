package level

import (
	"errors"
	"fmt"
	"time"
)

// Progress is the level state a completion policy decides on.
type Progress struct {
	Kills        int           // Enemies destroyed this level
	Elapsed      time.Duration // Time spent playing this level
	Remaining    int           // Enemies alive or still queued for release
	WavesStarted int
	WavesCleared int
}

// Completion decides when a level is finished and whether new enemies may
// still appear.
type Completion interface {
	// Complete reports whether the level is finished.
	Complete(p Progress) bool
	// SpawningOpen reports whether the spawner may start new enemies or waves.
	SpawningOpen(p Progress) bool
	String() string
}

// KillCount completes the level once enough enemies are destroyed.
type KillCount struct {
	Required int
}

func (c KillCount) Complete(p Progress) bool     { return p.Kills >= c.Required }
func (c KillCount) SpawningOpen(p Progress) bool { return p.Kills < c.Required }
func (c KillCount) String() string               { return fmt.Sprintf("kills(%d)", c.Required) }

// TimedClear completes the level when the duration has elapsed and no enemies
// remain. Spawning stops once the duration has passed.
type TimedClear struct {
	Duration time.Duration
}

func (c TimedClear) Complete(p Progress) bool {
	return p.Elapsed >= c.Duration && p.Remaining == 0
}
func (c TimedClear) SpawningOpen(p Progress) bool { return p.Elapsed < c.Duration }
func (c TimedClear) String() string               { return fmt.Sprintf("timed(%s)", c.Duration) }

// WaveCount completes the level once the required number of waves has been
// cleared and the current wave is drained. No wave starts after the last
// required one.
type WaveCount struct {
	Required int
}

func (c WaveCount) Complete(p Progress) bool {
	return p.WavesCleared >= c.Required && p.Remaining == 0
}
func (c WaveCount) SpawningOpen(p Progress) bool { return p.WavesStarted < c.Required }
func (c WaveCount) String() string               { return fmt.Sprintf("waves(%d)", c.Required) }

// Completion policy names accepted by ParseCompletion.
const (
	CompletionKills = "kills"
	CompletionTimed = "timed"
	CompletionWaves = "waves"
)

// ErrUnknownCompletion is returned for an unrecognized policy name.
var ErrUnknownCompletion = errors.New("unknown completion policy")

// ParseCompletion builds the named policy from the level's thresholds.
func ParseCompletion(kind string, cfg Config) (Completion, error) {
	switch kind {
	case CompletionKills:
		return KillCount{Required: cfg.KillsRequired}, nil
	case CompletionTimed:
		return TimedClear{Duration: cfg.Duration}, nil
	case CompletionWaves:
		return WaveCount{Required: cfg.WavesRequired}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompletion, kind)
	}
}
