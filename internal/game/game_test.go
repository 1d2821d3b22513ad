package game

import (
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/skyfighter/internal/combat"
	"github.com/tomz197/skyfighter/internal/event"
	"github.com/tomz197/skyfighter/internal/input"
	"github.com/tomz197/skyfighter/internal/level"
	"github.com/tomz197/skyfighter/internal/object"
	"github.com/tomz197/skyfighter/internal/spawn"
	"github.com/tomz197/skyfighter/internal/tuning"
)

// idle is a strategy that never spawns, so tests control every enemy.
type idle struct{}

func (idle) Reset()               {}
func (idle) Update(spawn.Context) {}
func (idle) Settle(int)           {}
func (idle) Wave() int            { return 0 }
func (idle) WavesCleared() int    { return 0 }
func (idle) Queued() int          { return 0 }

type reporter struct {
	calls [][2]int
}

func (r *reporter) ReportScore(score, levelReached int) {
	r.calls = append(r.calls, [2]int{score, levelReached})
}

const tick = 10 * time.Millisecond

func newSession(t *testing.T, opts Options) (*Session, *reporter) {
	t.Helper()
	rep := &reporter{}
	if opts.Strategy == nil {
		opts.Strategy = idle{}
	}
	opts.Rand = rand.New(rand.NewSource(1))
	opts.Reporter = rep
	opts.Logger = log.New(io.Discard)
	return NewSession(opts), rep
}

// placeFighter puts a harmless fighter in the upper half of the field.
func placeFighter(t *testing.T, s *Session) *object.Enemy {
	t.Helper()
	e, ok := object.NewEnemy(object.Fighter, object.EnemyModifiers{FireRate: time.Hour})
	require.True(t, ok)
	e.X, e.Y = 300, 100
	s.World().Enemies = append(s.World().Enemies, e)
	return e
}

func shootAt(s *Session, e *object.Enemy, damage int) {
	b := object.NewBullet(e.X+e.Width/2-2, e.Y+5, tuning.BulletWidth, tuning.BulletHeight, tuning.BulletSpeed, damage, false)
	s.World().Bullets = append(s.World().Bullets, b)
}

func TestFighterKill_EndToEnd(t *testing.T) {
	s, _ := newSession(t, Options{})
	require.NoError(t, s.StartGame())
	s.DrainEvents()

	e := placeFighter(t, s)
	shootAt(s, e, 20)
	s.Tick(tick, input.Intent{})

	assert.Equal(t, StatePlaying, s.State())
	assert.Equal(t, 10, s.Score())
	assert.Equal(t, 1, s.Kills())
	assert.Equal(t, tuning.InitialLives, s.World().Player.Lives)
	assert.Empty(t, s.World().Enemies)

	require.Len(t, s.World().Explosions, 1)
	cx, cy := e.Center()
	assert.Equal(t, cx, s.World().Explosions[0].X)
	assert.Equal(t, cy, s.World().Explosions[0].Y)

	var destroyed []event.Event
	for _, ev := range s.DrainEvents() {
		if ev.Type == event.EnemyDestroyed {
			destroyed = append(destroyed, ev)
		}
	}
	require.Len(t, destroyed, 1)
	assert.Equal(t, 10, destroyed[0].Score)
	assert.Equal(t, 1, destroyed[0].Level)
}

func TestDropChance(t *testing.T) {
	t.Run("configured zero never drops", func(t *testing.T) {
		s, _ := newSession(t, Options{Drops: combat.Drops{Chance: 0}})
		require.NoError(t, s.StartGame())
		assert.Zero(t, s.resolver.Drops.Chance)

		for i := 0; i < 20; i++ {
			e := placeFighter(t, s)
			shootAt(s, e, 100)
			s.Tick(tick, input.Intent{})
		}
		s.Tick(tick, input.Intent{})
		assert.Equal(t, 20, s.Kills())
		assert.Empty(t, s.World().PowerUps)
	})

	t.Run("configured always drops", func(t *testing.T) {
		s, _ := newSession(t, Options{Drops: combat.Drops{Chance: 1}})
		require.NoError(t, s.StartGame())

		e := placeFighter(t, s)
		shootAt(s, e, 100)
		s.Tick(tick, input.Intent{})
		s.Tick(tick, input.Intent{}) // drops join the world on the next flush
		assert.Len(t, s.World().PowerUps, 1)
	})

	t.Run("level chance", func(t *testing.T) {
		s, _ := newSession(t, Options{Drops: combat.Drops{Chance: 1}, LevelDrops: true})
		require.NoError(t, s.StartGame())
		cfg, ok := level.Default().Lookup(1)
		require.True(t, ok)
		assert.Equal(t, cfg.PowerUpChance, s.resolver.Drops.Chance)
	})
}

func TestGameOver_ReportsScore(t *testing.T) {
	s, rep := newSession(t, Options{})
	require.NoError(t, s.StartGame())

	e := placeFighter(t, s)
	shootAt(s, e, 20)
	s.Tick(tick, input.Intent{})
	require.Equal(t, 10, s.Score())

	p := s.World().Player
	p.Lives = 1
	b := object.NewEnemyBullet(p.X+p.Width/2, p.Y+p.Height/2)
	b.Damage = 250
	s.World().EnemyBullets = append(s.World().EnemyBullets, b)
	s.Tick(tick, input.Intent{})

	assert.Equal(t, 0, p.Lives)
	assert.Equal(t, StateGameOver, s.State())
	assert.Equal(t, [][2]int{{10, 1}}, rep.calls)

	s.Tick(tick, input.Intent{})
	assert.Len(t, rep.calls, 1, "ticks after the game ended are ignored")
}

func TestAllLevels_GameComplete(t *testing.T) {
	tbl := level.Default()
	require.NoError(t, tbl.SetCompletion(level.CompletionKills))
	for n := 1; n <= tbl.Len(); n++ {
		require.NoError(t, tbl.Override(n, "", 1, 0, 0))
	}

	s, rep := newSession(t, Options{Levels: tbl})
	require.NoError(t, s.StartGame())

	for n := 1; n <= tbl.Len(); n++ {
		require.Equal(t, n, s.Level())
		require.Equal(t, StatePlaying, s.State())

		e := placeFighter(t, s)
		shootAt(s, e, 100)
		s.Tick(tick, input.Intent{})

		if n < tbl.Len() {
			require.Equal(t, StateLevelComplete, s.State(), "level %d", n)
			require.NoError(t, s.NextLevel())
			assert.Zero(t, s.Kills(), "kill counter resets per level")
			assert.Empty(t, s.World().Explosions, "transient entities are cleared")
		}
	}

	assert.Equal(t, StateGameComplete, s.State())
	require.Len(t, rep.calls, 1)
	assert.Equal(t, 10, rep.calls[0][1])
	assert.Equal(t, s.Score(), rep.calls[0][0])
}

func TestNextLevel_CarriesProgress(t *testing.T) {
	tbl := level.Default()
	require.NoError(t, tbl.Override(1, level.CompletionKills, 1, 0, 0))

	s, _ := newSession(t, Options{Levels: tbl})
	require.NoError(t, s.StartGame())
	s.World().Player.PowerLevel = 3
	s.World().Player.Lives = 5

	e := placeFighter(t, s)
	shootAt(s, e, 20)
	s.Tick(tick, input.Intent{})
	require.Equal(t, StateLevelComplete, s.State())
	score := s.Score()

	require.NoError(t, s.NextLevel())
	assert.Equal(t, 2, s.Level())
	assert.Equal(t, 3, s.World().Player.PowerLevel)
	assert.Equal(t, 5, s.World().Player.Lives)
	assert.Equal(t, s.World().Player.MaxHealth, s.World().Player.Health)
	assert.Equal(t, score, s.Score())

	events := s.DrainEvents()
	last := events[len(events)-1]
	assert.Equal(t, event.LevelStarted, last.Type)
	assert.Equal(t, "Basic Combat", last.Name)
}

func TestRestart_ResetsRun(t *testing.T) {
	s, _ := newSession(t, Options{})
	require.NoError(t, s.StartGame())
	e := placeFighter(t, s)
	shootAt(s, e, 20)
	s.Tick(tick, input.Intent{})
	s.World().Player.PowerLevel = 4

	require.NoError(t, s.Pause())
	require.NoError(t, s.Restart())
	assert.Equal(t, StatePlaying, s.State())
	assert.Zero(t, s.Score())
	assert.Equal(t, 1, s.Level())
	assert.Equal(t, tuning.InitialPowerLevel, s.World().Player.PowerLevel)
	assert.Equal(t, tuning.InitialLives, s.World().Player.Lives)
}

func TestTimedCompletion(t *testing.T) {
	tbl := level.Default()
	require.NoError(t, tbl.Override(1, level.CompletionTimed, 0, 0, time.Second))

	s, _ := newSession(t, Options{Levels: tbl, Strategy: &spawn.TimerStrategy{}})
	require.NoError(t, s.StartGame())

	for range 99 {
		s.Tick(tick, input.Intent{})
	}
	assert.Equal(t, StatePlaying, s.State())
	s.Tick(tick, input.Intent{})
	assert.Equal(t, StateLevelComplete, s.State())
}

func TestWaveMode_StartsWaves(t *testing.T) {
	s, _ := newSession(t, Options{Strategy: &spawn.WaveStrategy{}})
	require.NoError(t, s.StartGame())
	s.DrainEvents()

	s.Tick(tick, input.Intent{})
	events := s.DrainEvents()
	require.NotEmpty(t, events)
	assert.Equal(t, event.WaveStarted, events[0].Type)
	assert.Equal(t, 1, events[0].Wave)
	assert.Equal(t, 1, s.HUD().Wave)
	assert.Len(t, s.World().Enemies, 1)
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateStart, StatePlaying, true},
		{StateStart, StateGameOver, false},
		{StatePlaying, StatePaused, true},
		{StatePlaying, StateLevelComplete, true},
		{StatePlaying, StateGameOver, true},
		{StatePlaying, StateGameComplete, true},
		{StatePlaying, StateStart, false},
		{StatePaused, StatePlaying, true},
		{StatePaused, StateGameOver, false},
		{StateLevelComplete, StatePlaying, true},
		{StateLevelComplete, StateGameComplete, false},
		{StateGameOver, StatePlaying, true},
		{StateGameComplete, StatePlaying, true},
		{StateGameComplete, StateStart, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestInvalidOperations(t *testing.T) {
	s, _ := newSession(t, Options{})

	assert.ErrorIs(t, s.NextLevel(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Restart(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Pause(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Resume(), ErrInvalidTransition)

	require.NoError(t, s.StartGame())
	assert.ErrorIs(t, s.StartGame(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Restart(), ErrInvalidTransition)
	assert.ErrorIs(t, s.NextLevel(), ErrInvalidTransition)
	assert.Equal(t, "unknown", State(42).String())
}

func TestHandleMenu(t *testing.T) {
	s, _ := newSession(t, Options{})

	assert.False(t, s.HandleMenu(input.Intent{Cancel: true}), "cancel does nothing on the title screen")
	assert.True(t, s.HandleMenu(input.Intent{Alt: true}))
	assert.Equal(t, event.ShowLeaderboard, s.DrainEvents()[0].Type)
	assert.Equal(t, StateStart, s.State())

	assert.True(t, s.HandleMenu(input.Intent{Confirm: true}))
	assert.Equal(t, StatePlaying, s.State())

	assert.False(t, s.HandleMenu(input.Intent{Confirm: true}), "confirm is ignored while playing")
	assert.True(t, s.HandleMenu(input.Intent{Pause: true}))
	assert.Equal(t, StatePaused, s.State())

	x := s.World().Player.X
	s.Tick(tick, input.Intent{MoveX: 1})
	assert.Equal(t, x, s.World().Player.X, "paused sessions do not tick")

	assert.True(t, s.HandleMenu(input.Intent{Confirm: true}))
	assert.Equal(t, StatePlaying, s.State())

	s.World().Player.Lives = 1
	s.World().Player.LoseLife()
	s.Tick(tick, input.Intent{})
	require.Equal(t, StateGameOver, s.State())

	assert.True(t, s.HandleMenu(input.Intent{Cancel: true}))
	assert.Equal(t, StatePlaying, s.State())
	assert.Equal(t, tuning.InitialLives, s.World().Player.Lives)
}

func TestHeldSpecial_KeepsEndScreens(t *testing.T) {
	held := input.Keys{Special: true}
	t0 := time.Unix(1000, 0)

	holdThrough := func(s *Session) {
		d := input.NewDebouncer(tuning.MenuDebounce)
		for i := 0; i < 10; i++ {
			in := d.Filter(held.Intent(), t0.Add(time.Duration(i)*100*time.Millisecond))
			s.HandleMenu(in)
		}
	}

	t.Run("game over", func(t *testing.T) {
		s, _ := newSession(t, Options{})
		require.NoError(t, s.StartGame())
		s.World().Player.Lives = 1
		s.World().Player.LoseLife()
		s.Tick(tick, held.Intent())
		require.Equal(t, StateGameOver, s.State())

		holdThrough(s)
		assert.Equal(t, StateGameOver, s.State())
	})

	t.Run("level complete", func(t *testing.T) {
		tbl := level.Default()
		require.NoError(t, tbl.Override(1, level.CompletionKills, 1, 0, 0))
		s, _ := newSession(t, Options{Levels: tbl})
		require.NoError(t, s.StartGame())

		e := placeFighter(t, s)
		shootAt(s, e, 100)
		s.Tick(tick, held.Intent())
		require.Equal(t, StateLevelComplete, s.State())

		holdThrough(s)
		assert.Equal(t, StateLevelComplete, s.State())
	})
}

func TestSnapshot_IsACopy(t *testing.T) {
	s, _ := newSession(t, Options{})
	require.NoError(t, s.StartGame())
	e := placeFighter(t, s)

	first := s.Snapshot()
	require.Len(t, first.Enemies, 1)
	require.True(t, first.HasPlayer)
	y := first.Enemies[0].Y

	e.Y += 100
	s.World().Player.Health = 1
	assert.Equal(t, y, first.Enemies[0].Y)
	assert.Equal(t, tuning.PlayerHealth, first.Player.Health)

	second := s.Snapshot()
	assert.NotSame(t, first, second)
	assert.Equal(t, 1, second.Health)
	assert.Equal(t, e.Y, second.Enemies[0].Y)

	e.MarkDestroyed()
	third := s.Snapshot()
	assert.Same(t, first, third, "buffers alternate")
	assert.Empty(t, third.Enemies)
}

type recorder struct{ got []event.Type }

func (r *recorder) OnEvent(e event.Event) { r.got = append(r.got, e.Type) }

func TestListeners(t *testing.T) {
	rec := &recorder{}
	s, _ := newSession(t, Options{Listeners: []event.Listener{rec}})
	require.NoError(t, s.StartGame())
	require.NoError(t, s.Pause())
	require.NoError(t, s.Resume())
	assert.Equal(t, []event.Type{event.LevelStarted, event.Paused, event.Resumed}, rec.got)
}
