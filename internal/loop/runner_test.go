package loop

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/skyfighter/internal/combat"
	"github.com/tomz197/skyfighter/internal/config"
	"github.com/tomz197/skyfighter/internal/game"
	"github.com/tomz197/skyfighter/internal/input"
	"github.com/tomz197/skyfighter/internal/leaderboard"
	"github.com/tomz197/skyfighter/internal/level"
	"github.com/tomz197/skyfighter/internal/lobby"
	"github.com/tomz197/skyfighter/internal/spawn"
	"github.com/tomz197/skyfighter/internal/tuning"
)

func testSettings(t *testing.T) config.Settings {
	t.Helper()
	t.Cleanup(viper.Reset)
	require.NoError(t, config.Load(t.TempDir()))
	s, err := config.Current()
	require.NoError(t, err)
	return s
}

func fixedTerm() (int, int, error) { return 100, 40, nil }

// newTestRunner creates a runner whose input never ends.
func newTestRunner(t *testing.T, opts Options) (*Runner, *bytes.Buffer) {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	var out bytes.Buffer
	opts.TermSize = fixedTerm
	opts.Logger = log.New(io.Discard)
	opts.Rand = rand.New(rand.NewSource(12345))
	r, err := NewRunner(bufio.NewReader(pr), &out, opts)
	require.NoError(t, err)
	return r, &out
}

func TestSessionOptions_Defaults(t *testing.T) {
	opts, err := SessionOptions(testSettings(t))
	require.NoError(t, err)

	assert.IsType(t, &spawn.WaveStrategy{}, opts.Strategy)
	assert.Equal(t, spawn.PlaceCentered, opts.Placement)
	assert.Equal(t, combat.HitAllOverlapping, opts.HitPolicy)
	assert.Equal(t, combat.Drops{Chance: 0.25, HealthShare: 0.3}, opts.Drops)
	assert.True(t, opts.LevelDrops, "unset drop chance defers to the level table")
	assert.Equal(t, tuning.AsteroidSpawnChance, opts.AsteroidChance)
	assert.Equal(t, 800.0, opts.Field.Width)

	cfg, ok := opts.Levels.Lookup(1)
	require.True(t, ok)
	assert.IsType(t, level.WaveCount{}, cfg.Completion)
}

func TestSessionOptions_TimerModeOverrides(t *testing.T) {
	s := testSettings(t)
	s.Spawn.Mode = "timer"
	s.Spawn.Placement = "uniform"
	s.Combat.HitPolicy = "first"
	s.Game.Completion = "kills"
	s.Game.Levels = map[string]config.LevelOverride{
		"2": {Completion: "timed", Duration: 45 * time.Second},
		"3": {Completion: "waves", Kills: 7},
	}

	opts, err := SessionOptions(s)
	require.NoError(t, err)
	assert.IsType(t, &spawn.TimerStrategy{}, opts.Strategy)
	assert.Equal(t, spawn.PlaceUniform, opts.Placement)
	assert.Equal(t, combat.HitFirstOnly, opts.HitPolicy)

	two, _ := opts.Levels.Lookup(2)
	assert.Equal(t, level.TimedClear{Duration: 45 * time.Second}, two.Completion)

	three, _ := opts.Levels.Lookup(3)
	assert.Equal(t, level.KillCount{Required: 7}, three.Completion, "wave completion falls back to kills under the timer spawner")

	one, _ := opts.Levels.Lookup(1)
	assert.IsType(t, level.KillCount{}, one.Completion)
}

func TestSessionOptions_ConfiguredDropChance(t *testing.T) {
	s := testSettings(t)
	none := 0.0
	s.Combat.DropChance = &none

	opts, err := SessionOptions(s)
	require.NoError(t, err)
	assert.Zero(t, opts.Drops.Chance)
	assert.False(t, opts.LevelDrops)
}

func TestSessionOptions_BadLevelKey(t *testing.T) {
	s := testSettings(t)
	s.Game.Levels = map[string]config.LevelOverride{"boss": {Kills: 3}}
	_, err := SessionOptions(s)
	assert.ErrorIs(t, err, config.ErrInvalidSetting)

	s.Game.Levels = map[string]config.LevelOverride{"11": {Kills: 3}}
	_, err = SessionOptions(s)
	assert.Error(t, err)
}

func TestHealthBar(t *testing.T) {
	tests := []struct {
		hp, max int
		want    string
	}{
		{200, 200, "HP [##########] 200"},
		{100, 200, "HP [#####-----] 100"},
		{0, 200, "HP [----------]   0"},
		{-15, 200, "HP [----------]   0"},
		{10, 0, "HP [----------]  10"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, healthBar(tt.hp, tt.max, 10))
	}
}

func TestRun_StartsAndStopsOnEOF(t *testing.T) {
	var out bytes.Buffer
	r, err := NewRunner(bufio.NewReader(strings.NewReader("\r")), &out, Options{
		Settings: testSettings(t),
		TermSize: fixedTerm,
		Logger:   log.New(io.Discard),
		Rand:     rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, r.Run(ctx))

	assert.Equal(t, game.StatePlaying, r.Session().State())
	assert.True(t, strings.HasPrefix(out.String(), "\033[?25l"))
	assert.True(t, strings.HasSuffix(out.String(), "\033[?25h\033[0m"))
}

func TestRun_ContextCancelLeavesLobby(t *testing.T) {
	l := lobby.New(log.New(io.Discard), nil)
	r, _ := newTestRunner(t, Options{Settings: testSettings(t), Lobby: l, Username: "ada"})
	assert.Equal(t, 1, l.Count())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, r.Run(ctx))
	assert.Zero(t, l.Count())
}

func TestRunner_PlayingFrame(t *testing.T) {
	r, out := newTestRunner(t, Options{Settings: testSettings(t)})

	r.delta = tuning.ReferenceFrame
	r.update(input.Intent{Confirm: true})
	require.Equal(t, game.StatePlaying, r.session.State())
	r.processEvents(context.Background())

	cfg, _ := level.Default().Lookup(1)
	require.NotEmpty(t, r.banner)
	assert.Equal(t, levelTitle(1, cfg.Name), r.banner[0])

	for range 30 {
		r.update(input.Intent{MoveX: 1})
		r.processEvents(context.Background())
	}
	require.NoError(t, r.drawFrame())
	assert.Contains(t, out.String(), "Score:")
	assert.Contains(t, out.String(), "HP [")
}

func TestRunner_PauseAndResume(t *testing.T) {
	r, out := newTestRunner(t, Options{Settings: testSettings(t)})
	r.update(input.Intent{Confirm: true})

	r.update(input.Intent{Pause: true})
	assert.Equal(t, game.StatePaused, r.session.State())
	require.NoError(t, r.drawFrame())
	assert.Contains(t, out.String(), "P A U S E D")

	r.update(input.Intent{Confirm: true})
	assert.Equal(t, game.StatePlaying, r.session.State())
}

func TestRunner_LeaderboardOverlay(t *testing.T) {
	store, err := leaderboard.Open(filepath.Join(t.TempDir(), "board.db"), 10)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Add(context.Background(), leaderboard.Entry{Name: "grace", Score: 1234, Level: 4}))

	r, out := newTestRunner(t, Options{Settings: testSettings(t), Store: store})

	r.update(input.Intent{Alt: true})
	r.processEvents(context.Background())
	require.Equal(t, overlayLeaderboard, r.overlay)
	require.Len(t, r.entries, 1)

	require.NoError(t, r.drawFrame())
	assert.Contains(t, out.String(), "H I G H   S C O R E S")
	assert.Contains(t, out.String(), "grace")

	r.update(input.Intent{Confirm: true})
	assert.Equal(t, overlayNone, r.overlay)
	assert.Equal(t, game.StateStart, r.session.State(), "leaving the board does not start a game")
}

func TestRunner_ShutdownNotice(t *testing.T) {
	l := lobby.New(log.New(io.Discard), nil)
	r, out := newTestRunner(t, Options{Settings: testSettings(t), Lobby: l})
	r.update(input.Intent{Confirm: true})

	assert.False(t, l.Shutdown(0))
	r.processNotices()
	require.Equal(t, overlayShutdown, r.overlay)
	assert.Equal(t, game.StatePaused, r.session.State())

	require.NoError(t, r.drawFrame())
	assert.Contains(t, out.String(), "SERVER SHUTTING DOWN")

	r.delta = time.Duration(tuning.ShutdownDisplaySeconds*float64(time.Second)) + time.Millisecond
	r.update(input.Intent{})
	assert.False(t, r.running)
}

func TestRunner_Inactivity(t *testing.T) {
	r, _ := newTestRunner(t, Options{Settings: testSettings(t)})
	now := time.Now()

	r.lastInput = now.Add(-(tuning.InactivityWarnUser + 1) * time.Second)
	r.processInput(now)
	assert.True(t, r.inactive)
	assert.True(t, r.running)

	r.lastInput = now.Add(-(tuning.InactivityDisconnectUser + 1) * time.Second)
	r.processInput(now)
	assert.False(t, r.running)
}
