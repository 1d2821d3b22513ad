// Package level holds the per-level configuration table and level
// completion policies.
package level

import (
	"fmt"
	"time"

	"github.com/tomz197/skyfighter/internal/object"
	"github.com/tomz197/skyfighter/internal/tuning"
)

// Config describes one level.
type Config struct {
	Number      int
	Name        string
	Description string

	Roster           []object.EnemyClass // Classes the spawner may draw from
	SpawnInterval    time.Duration       // Timer strategy cadence
	SpeedMultiplier  float64
	HealthBonus      int
	FireRateOverride time.Duration // 0 keeps each class's own fire rate
	PowerUpChance    float64
	HasBoss          bool

	WaveSize        int           // Enemies per wave
	Formations      int           // Formations per wave
	ReleaseInterval time.Duration // Time between releases from the wave queue

	WavesRequired int
	KillsRequired int
	Duration      time.Duration

	Completion Completion
}

// EnemyModifiers returns the level-scoped adjustments for new enemies.
func (c Config) EnemyModifiers() object.EnemyModifiers {
	return object.EnemyModifiers{
		HealthBonus:     c.HealthBonus,
		SpeedMultiplier: c.SpeedMultiplier,
		FireRate:        c.FireRateOverride,
	}
}

// BossClass is the class used for the boss enemy: the strongest on the roster.
func (c Config) BossClass() (object.EnemyClass, bool) {
	if len(c.Roster) == 0 {
		return 0, false
	}
	best := c.Roster[0]
	for _, cl := range c.Roster[1:] {
		if cl > best {
			best = cl
		}
	}
	return best, true
}

type levelInfo struct {
	name, description string
	waves             int
	speed             float64
	powerUpChance     float64
	boss              bool
}

var levelInfos = [tuning.LastLevel]levelInfo{
	{"Basic Training", "Learn the controls", 2, 0.8, 0.3, false},
	{"Basic Combat", "More enemies incoming", 3, 0.9, 0.3, false},
	{"Airborne Threat", "Enemies start flying in formation", 3, 1.0, 0.25, false},
	{"Dense Assault", "The numbers keep growing", 4, 1.1, 0.25, false},
	{"Elite Raid", "Boss fight!", 4, 1.2, 0.2, true},
	{"Sky Fortress", "Heavy ships appear", 5, 1.3, 0.2, false},
	{"Fleet Muster", "Large formations", 5, 1.4, 0.15, false},
	{"Ultimate Threat", "The strongest enemies", 6, 1.5, 0.15, false},
	{"Last Line", "Push past the limit", 6, 1.6, 0.1, false},
	{"Final Showdown", "Final boss fight!", 7, 1.7, 0.1, true},
}

// bossFireRate replaces class fire rates on boss levels.
const bossFireRate = 1000 * time.Millisecond

// Table is the ordered set of level configurations, indexed from level 1.
type Table struct {
	levels []Config
}

// Default returns the built-in ten level table using wave-count completion.
func Default() *Table {
	t := &Table{levels: make([]Config, 0, tuning.LastLevel)}
	for i, info := range levelInfos {
		n := i + 1
		cfg := Config{
			Number:          n,
			Name:            info.name,
			Description:     info.description,
			Roster:          roster(n),
			SpawnInterval:   max(1500*time.Millisecond-time.Duration(n-1)*100*time.Millisecond, 600*time.Millisecond),
			SpeedMultiplier: info.speed,
			HealthBonus:     (n - 1) * tuning.HealthPerLevel,
			PowerUpChance:   info.powerUpChance,
			HasBoss:         info.boss,
			WaveSize:        8 + 2*n,
			Formations:      2 + n/3,
			ReleaseInterval: 400 * time.Millisecond,
			WavesRequired:   info.waves,
			KillsRequired:   tuning.DefaultKills + 5*(n-1),
			Duration:        tuning.DefaultLevelLength + time.Duration(n-1)*10*time.Second,
		}
		if info.boss {
			cfg.FireRateOverride = bossFireRate
		}
		cfg.Completion = WaveCount{Required: cfg.WavesRequired}
		t.levels = append(t.levels, cfg)
	}
	return t
}

// roster unlocks one more ship class per level.
func roster(n int) []object.EnemyClass {
	k := min(n+1, object.EnemyClassCount)
	r := make([]object.EnemyClass, k)
	for i := range r {
		r[i] = object.EnemyClass(i)
	}
	return r
}

// Len returns the number of configured levels.
func (t *Table) Len() int { return len(t.levels) }

// Last reports whether n is the final level.
func (t *Table) Last(n int) bool { return n >= len(t.levels) }

// Lookup returns the configuration of level n. ok is false when the level is
// not configured.
func (t *Table) Lookup(n int) (cfg Config, ok bool) {
	if t == nil || n < 1 || n > len(t.levels) {
		return Config{}, false
	}
	return t.levels[n-1], true
}

// SetCompletion applies the named policy to every level.
func (t *Table) SetCompletion(kind string) error {
	for i := range t.levels {
		c, err := ParseCompletion(kind, t.levels[i])
		if err != nil {
			return err
		}
		t.levels[i].Completion = c
	}
	return nil
}

// Override replaces the completion policy of level n. Zero thresholds keep
// the level's defaults.
func (t *Table) Override(n int, kind string, kills, waves int, duration time.Duration) error {
	if n < 1 || n > len(t.levels) {
		return fmt.Errorf("level %d: out of range", n)
	}
	cfg := &t.levels[n-1]
	if kills > 0 {
		cfg.KillsRequired = kills
	}
	if waves > 0 {
		cfg.WavesRequired = waves
	}
	if duration > 0 {
		cfg.Duration = duration
	}
	if kind == "" {
		kind = kindOf(cfg.Completion)
	}
	c, err := ParseCompletion(kind, *cfg)
	if err != nil {
		return fmt.Errorf("level %d: %w", n, err)
	}
	cfg.Completion = c
	return nil
}

func kindOf(c Completion) string {
	switch c.(type) {
	case KillCount:
		return CompletionKills
	case TimedClear:
		return CompletionTimed
	default:
		return CompletionWaves
	}
}
