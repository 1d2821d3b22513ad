package loop

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/tomz197/skyfighter/internal/combat"
	"github.com/tomz197/skyfighter/internal/config"
	"github.com/tomz197/skyfighter/internal/game"
	"github.com/tomz197/skyfighter/internal/level"
	"github.com/tomz197/skyfighter/internal/object"
	"github.com/tomz197/skyfighter/internal/spawn"
	"github.com/tomz197/skyfighter/internal/tuning"
)

// SessionOptions translates runtime settings into session options. Collaborators
// (reporter, logger, listeners, random source) are left for the caller.
func SessionOptions(s config.Settings) (game.Options, error) {
	var opts game.Options

	strategy, err := spawn.New(s.Spawn.Mode)
	if err != nil {
		return opts, err
	}
	placement, err := spawn.ParsePlacement(s.Spawn.Placement)
	if err != nil {
		return opts, err
	}
	policy, err := combat.ParseHitPolicy(s.Combat.HitPolicy)
	if err != nil {
		return opts, err
	}
	levels, err := levelTable(s)
	if err != nil {
		return opts, err
	}

	drops := combat.Drops{Chance: tuning.DropChance, HealthShare: s.Combat.HealthShare}
	if s.Combat.DropChance != nil {
		drops.Chance = *s.Combat.DropChance
	}

	opts = game.Options{
		Field:          object.Playfield{Width: s.Playfield.Width, Height: s.Playfield.Height},
		Levels:         levels,
		Strategy:       strategy,
		Placement:      placement,
		HitPolicy:      policy,
		Drops:          drops,
		LevelDrops:     s.Combat.DropChance == nil,
		AsteroidChance: tuning.AsteroidSpawnChance,
	}
	return opts, nil
}

// levelTable builds the level table with the global completion policy and
// the per-level overrides applied in level order.
func levelTable(s config.Settings) (*level.Table, error) {
	t := level.Default()
	if err := t.SetCompletion(s.Game.Completion); err != nil {
		return nil, fmt.Errorf("game.completion: %w", err)
	}

	keys := make([]string, 0, len(s.Game.Levels))
	for k := range s.Game.Levels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("%w: game.levels key %q is not a level number", config.ErrInvalidSetting, k)
		}
		o := s.Game.Levels[k]
		kind := o.Completion
		// The timer spawner never produces waves.
		if s.Spawn.Mode == spawn.ModeTimer && kind == level.CompletionWaves {
			kind = level.CompletionKills
		}
		if err := t.Override(n, kind, o.Kills, o.Waves, o.Duration); err != nil {
			return nil, fmt.Errorf("game.levels: %w", err)
		}
	}
	return t, nil
}
