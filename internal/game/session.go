// Package game runs a single-player session: the tick pipeline, level
// progression and the session state machine.
package game

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyfighter/internal/combat"
	"github.com/tomz197/skyfighter/internal/event"
	"github.com/tomz197/skyfighter/internal/input"
	"github.com/tomz197/skyfighter/internal/level"
	"github.com/tomz197/skyfighter/internal/object"
	"github.com/tomz197/skyfighter/internal/spawn"
	"github.com/tomz197/skyfighter/internal/tuning"
)

// ScoreReporter receives the result of every finished game.
type ScoreReporter interface {
	ReportScore(score, levelReached int)
}

// Options configures a Session. Zero values select the defaults.
type Options struct {
	Field          object.Playfield
	Levels         *level.Table
	Strategy       spawn.Strategy
	Placement      spawn.Placement
	HitPolicy      combat.HitPolicy
	Drops          combat.Drops
	LevelDrops     bool    // Each level's PowerUpChance replaces Drops.Chance
	AsteroidChance float64 // Per reference frame; 0 disables asteroids
	Rand           *rand.Rand
	Reporter       ScoreReporter
	Logger         *log.Logger
	Listeners      []event.Listener
}

// Session is one player's game. It is not safe for concurrent use; the owner
// ticks and reads snapshots from a single goroutine.
type Session struct {
	field     object.Playfield
	levels    *level.Table
	strategy  spawn.Strategy
	placement spawn.Placement
	asteroids *spawn.AsteroidSpawner
	resolver  *combat.Resolver
	drops     combat.Drops
	lvlDrops  bool
	rng       *rand.Rand
	reporter  ScoreReporter
	log       *log.Logger
	listeners []event.Listener

	state     State
	world     *object.World
	levelNum  int
	cfg       level.Config
	haveLevel bool // False when the level table has no entry for levelNum
	score     int
	kills     int
	elapsed   time.Duration

	events event.Queue
	snaps  [2]Snapshot
	front  int
}

// NewSession creates a session on the title screen.
func NewSession(opts Options) *Session {
	if opts.Field.Width <= 0 || opts.Field.Height <= 0 {
		opts.Field = object.Playfield{Width: tuning.PlayfieldWidth, Height: tuning.PlayfieldHeight}
	}
	if opts.Levels == nil {
		opts.Levels = level.Default()
	}
	if opts.Strategy == nil {
		opts.Strategy = &spawn.WaveStrategy{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &Session{
		field:     opts.Field,
		levels:    opts.Levels,
		strategy:  opts.Strategy,
		placement: opts.Placement,
		asteroids: spawn.NewAsteroidSpawner(opts.AsteroidChance),
		resolver:  combat.NewResolver(opts.HitPolicy, opts.Drops, opts.Rand),
		drops:     opts.Drops,
		lvlDrops:  opts.LevelDrops,
		rng:       opts.Rand,
		reporter:  opts.Reporter,
		log:       opts.Logger,
		listeners: opts.Listeners,
		state:     StateStart,
		world:     object.NewWorld(opts.Field),
	}
}

// State returns the current session state.
func (s *Session) State() State { return s.state }

// World exposes the live world. Callers must not keep references across ticks.
func (s *Session) World() *object.World { return s.world }

// Level returns the current level number.
func (s *Session) Level() int { return s.levelNum }

// Score returns the session score.
func (s *Session) Score() int { return s.score }

// Kills returns the number of enemies destroyed in the current level.
func (s *Session) Kills() int { return s.kills }

// AddListener registers a listener for future events.
func (s *Session) AddListener(l event.Listener) {
	s.listeners = append(s.listeners, l)
}

// StartGame leaves the title screen and starts level 1.
func (s *Session) StartGame() error {
	if s.state != StateStart {
		return transitionError("start game", s.state, StatePlaying)
	}
	s.startRun()
	return nil
}

// NextLevel continues from a completed level with the player's lives and
// power carried over.
func (s *Session) NextLevel() error {
	if s.state != StateLevelComplete {
		return transitionError("next level", s.state, StatePlaying)
	}
	p := s.world.Player
	s.beginLevel(s.levelNum+1, p.Lives, p.PowerLevel)
	return nil
}

// Restart starts a fresh run from level 1.
func (s *Session) Restart() error {
	if s.state == StateStart || !CanTransition(s.state, StatePlaying) {
		return transitionError("restart", s.state, StatePlaying)
	}
	s.startRun()
	return nil
}

// Pause freezes a running level.
func (s *Session) Pause() error {
	if !CanTransition(s.state, StatePaused) {
		return transitionError("pause", s.state, StatePaused)
	}
	s.setState(StatePaused)
	s.emit(event.Event{Type: event.Paused})
	return nil
}

// Resume continues a paused level.
func (s *Session) Resume() error {
	if s.state != StatePaused {
		return transitionError("resume", s.state, StatePlaying)
	}
	s.setState(StatePlaying)
	s.emit(event.Event{Type: event.Resumed})
	return nil
}

func (s *Session) startRun() {
	s.score = 0
	s.beginLevel(1, tuning.InitialLives, tuning.InitialPowerLevel)
}

// beginLevel resets every per-level counter and transient entity, then
// recreates the player with the given run progress.
func (s *Session) beginLevel(n, lives, power int) {
	s.levelNum = n
	s.cfg, s.haveLevel = s.levels.Lookup(n)
	if !s.haveLevel {
		s.log.Warn("level not configured", "level", n)
	}

	s.world.Clear()
	s.world.Player = object.NewPlayer(s.field, lives, power)
	s.kills = 0
	s.elapsed = 0
	s.strategy.Reset()

	s.resolver.Drops = s.drops
	if s.lvlDrops && s.haveLevel {
		s.resolver.Drops.Chance = s.cfg.PowerUpChance
	}

	s.setState(StatePlaying)
	s.emit(event.Event{Type: event.LevelStarted, Name: s.cfg.Name, Description: s.cfg.Description})
}

func (s *Session) setState(to State) {
	s.log.Debug("state change", "from", s.state, "to", to, "level", s.levelNum)
	s.state = to
}

// Tick advances the simulation by dt. It is a no-op outside StatePlaying.
// Deltas above tuning.MaxTickDelta are clamped.
func (s *Session) Tick(dt time.Duration, intent input.Intent) {
	if s.state != StatePlaying || dt <= 0 {
		return
	}
	dt = min(dt, tuning.MaxTickDelta)
	s.elapsed += dt

	w := s.world
	ctx := object.UpdateContext{Delta: dt, Intent: intent, Field: s.field, Spawner: w}

	// Player
	w.Player.Update(ctx)

	// Spawning and enemy movement
	if s.haveLevel {
		wave := s.strategy.Wave()
		s.strategy.Update(s.spawnContext(dt))
		if s.strategy.Wave() > wave {
			s.emit(event.Event{Type: event.WaveStarted, Wave: s.strategy.Wave()})
		}
	}
	s.asteroids.Update(s.spawnContext(dt))
	w.Enemies = object.UpdateAll(w.Enemies, ctx)
	w.Asteroids = object.UpdateAll(w.Asteroids, ctx)

	// Projectiles
	w.Bullets = object.UpdateAll(w.Bullets, ctx)
	w.EnemyBullets = object.UpdateAll(w.EnemyBullets, ctx)

	// Effects and pickups
	w.Explosions = object.UpdateAll(w.Explosions, ctx)
	w.PowerUps = object.UpdateAll(w.PowerUps, ctx)

	w.FlushSpawned()

	s.resolver.Resolve(w, ledger{s})
	s.strategy.Settle(w.ActiveEnemies())

	if !w.Player.Alive() {
		s.endGame(StateGameOver, event.GameOver)
		return
	}
	if s.levelDone() {
		s.completeLevel()
	}
}

func (s *Session) spawnContext(dt time.Duration) spawn.Context {
	return spawn.Context{
		Delta:     dt,
		Level:     s.cfg,
		Field:     s.field,
		Rand:      s.rng,
		Spawner:   s.world,
		Open:      s.haveLevel && (s.cfg.Completion == nil || s.cfg.Completion.SpawningOpen(s.progress())),
		Placement: s.placement,
	}
}

func (s *Session) progress() level.Progress {
	return level.Progress{
		Kills:        s.kills,
		Elapsed:      s.elapsed,
		Remaining:    s.world.ActiveEnemies() + s.strategy.Queued(),
		WavesStarted: s.strategy.Wave(),
		WavesCleared: s.strategy.WavesCleared(),
	}
}

// levelDone evaluates the level's completion policy. Levels without
// configuration never complete.
func (s *Session) levelDone() bool {
	if !s.haveLevel || s.cfg.Completion == nil {
		return false
	}
	return s.cfg.Completion.Complete(s.progress())
}

func (s *Session) completeLevel() {
	if s.levels.Last(s.levelNum) {
		s.endGame(StateGameComplete, event.GameCompleted)
		return
	}
	s.setState(StateLevelComplete)
	s.emit(event.Event{Type: event.LevelCompleted, Name: s.cfg.Name})
}

// endGame moves to a terminal state and reports the final score once.
func (s *Session) endGame(to State, t event.Type) {
	s.setState(to)
	s.emit(event.Event{Type: t})
	s.log.Info("game ended", "state", to, "score", s.score, "level", s.levelNum)
	if s.reporter != nil {
		s.reporter.ReportScore(s.score, s.levelNum)
	}
}

// emit stamps the event with the session's level and score, buffers it for
// DrainEvents and notifies listeners.
func (s *Session) emit(e event.Event) {
	e.Level = s.levelNum
	e.Score = s.score
	s.events.Push(e)
	for _, l := range s.listeners {
		l.OnEvent(e)
	}
}

// DrainEvents returns the events emitted since the last call.
func (s *Session) DrainEvents() []event.Event {
	return s.events.Drain()
}

// ledger adapts the session to combat.Ledger.
type ledger struct {
	s *Session
}

var _ combat.Ledger = ledger{}

func (l ledger) AddScore(points int) {
	if points > 0 {
		l.s.score += points
	}
}

func (l ledger) AddKill()           { l.s.kills++ }
func (l ledger) Emit(e event.Event) { l.s.emit(e) }
