package game

import (
	"time"

	"github.com/tomz197/skyfighter/internal/object"
)

// HUD holds the scalar values shown around the playfield.
type HUD struct {
	State      State
	Score      int
	Level      int
	LevelName  string
	Lives      int
	Health     int
	MaxHealth  int
	PowerLevel int
	Wave       int
	Kills      int
	Elapsed    time.Duration
}

// Snapshot is a read-only copy of the world after a tick.
type Snapshot struct {
	HUD
	Field        object.Playfield
	HasPlayer    bool
	Player       object.Player
	Enemies      []object.Enemy
	Bullets      []object.Bullet
	EnemyBullets []object.EnemyBullet
	PowerUps     []object.PowerUp
	Asteroids    []object.Asteroid
	Explosions   []object.Explosion
}

// HUD returns the current UI scalars.
func (s *Session) HUD() HUD {
	h := HUD{
		State:     s.state,
		Score:     s.score,
		Level:     s.levelNum,
		LevelName: s.cfg.Name,
		Wave:      s.strategy.Wave(),
		Kills:     s.kills,
		Elapsed:   s.elapsed,
	}
	if p := s.world.Player; p != nil {
		h.Lives = p.Lives
		h.Health = p.Health
		h.MaxHealth = p.MaxHealth
		h.PowerLevel = p.PowerLevel
	}
	return h
}

// Snapshot copies every live entity into one of two alternating buffers and
// returns it. The returned snapshot stays valid until the next-but-one call.
func (s *Session) Snapshot() *Snapshot {
	snap := &s.snaps[s.front]
	s.front ^= 1

	w := s.world
	snap.HUD = s.HUD()
	snap.Field = s.field
	snap.HasPlayer = w.Player != nil
	if snap.HasPlayer {
		snap.Player = *w.Player
	}
	snap.Enemies = copyLive(snap.Enemies, w.Enemies)
	snap.Bullets = copyLive(snap.Bullets, w.Bullets)
	snap.EnemyBullets = copyLive(snap.EnemyBullets, w.EnemyBullets)
	snap.PowerUps = copyLive(snap.PowerUps, w.PowerUps)
	snap.Asteroids = copyLive(snap.Asteroids, w.Asteroids)
	snap.Explosions = copyLive(snap.Explosions, w.Explosions)
	return snap
}

// copyLive copies the values of non-destroyed entities into dst, reusing
// its backing array.
func copyLive[T any, P interface {
	*T
	object.Destructible
}](dst []T, src []P) []T {
	dst = dst[:0]
	for _, p := range src {
		if !p.IsDestroyed() {
			dst = append(dst, *p)
		}
	}
	return dst
}
