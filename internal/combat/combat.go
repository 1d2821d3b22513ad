// Package combat resolves collisions between the entities of a world.
package combat

import (
	"fmt"
	"math/rand"

	"github.com/tomz197/skyfighter/internal/event"
	"github.com/tomz197/skyfighter/internal/object"
	"github.com/tomz197/skyfighter/internal/physics"
	"github.com/tomz197/skyfighter/internal/tuning"
)

// HitPolicy controls how many bullets an enemy can absorb in a single tick.
type HitPolicy int

const (
	HitAllOverlapping HitPolicy = iota // Every overlapping bullet applies damage
	HitFirstOnly                       // At most one bullet per target per tick
)

func (p HitPolicy) String() string {
	if p == HitFirstOnly {
		return "first"
	}
	return "all"
}

// ParseHitPolicy converts a settings value to a HitPolicy.
func ParseHitPolicy(s string) (HitPolicy, error) {
	switch s {
	case "all", "":
		return HitAllOverlapping, nil
	case "first":
		return HitFirstOnly, nil
	default:
		return 0, fmt.Errorf("unknown hit policy %q", s)
	}
}

// Drops configures power-up drops from destroyed enemies.
type Drops struct {
	Chance      float64 // Probability of any drop
	HealthShare float64 // Share of drops that restore health instead of power
}

// Ledger records the outcome of combat.
type Ledger interface {
	// AddScore adds points to the session score.
	AddScore(points int)
	// AddKill counts an enemy kill towards the level.
	AddKill()
	// Emit publishes a combat event.
	Emit(e event.Event)
}

// Resolver sweeps all collision pairs once per tick in a fixed order:
// bullet x enemy, enemy bullet x player, player x enemy, player x power-up,
// bullet x asteroid, player x asteroid.
type Resolver struct {
	Policy HitPolicy
	Drops  Drops
	Rand   *rand.Rand

	struck map[any]struct{} // Targets hit this tick under HitFirstOnly
}

// NewResolver creates a resolver.
func NewResolver(policy HitPolicy, drops Drops, rng *rand.Rand) *Resolver {
	return &Resolver{
		Policy: policy,
		Drops:  drops,
		Rand:   rng,
		struck: make(map[any]struct{}),
	}
}

// Resolve runs all collision phases against w. Destroyed entities are
// tombstoned during the sweep and compacted at the end; entities spawned by
// the sweep are flushed into the world.
func (r *Resolver) Resolve(w *object.World, l Ledger) {
	if r.struck == nil {
		r.struck = make(map[any]struct{})
	}
	clear(r.struck)

	r.bulletsVsEnemies(w, l)
	if w.Player != nil {
		r.enemyBulletsVsPlayer(w, l)
		r.enemiesVsPlayer(w, l)
		r.powerUpsVsPlayer(w, l)
	}
	r.bulletsVsAsteroids(w, l)
	if w.Player != nil {
		r.asteroidsVsPlayer(w, l)
	}

	w.Compact()
	w.FlushSpawned()
}

// absorbed reports whether target already took its one hit this tick.
func (r *Resolver) absorbed(target any) bool {
	if r.Policy != HitFirstOnly {
		return false
	}
	_, ok := r.struck[target]
	return ok
}

func (r *Resolver) strike(target any) {
	if r.Policy == HitFirstOnly {
		r.struck[target] = struct{}{}
	}
}

func bulletDamage(d int) int {
	if d <= 0 {
		return tuning.DefaultBulletDamage
	}
	return d
}

func (r *Resolver) bulletsVsEnemies(w *object.World, l Ledger) {
	for i := len(w.Bullets) - 1; i >= 0; i-- {
		b := w.Bullets[i]
		if b.IsDestroyed() {
			continue
		}
		for j := len(w.Enemies) - 1; j >= 0; j-- {
			e := w.Enemies[j]
			if e.IsDestroyed() || r.absorbed(e) {
				continue
			}
			if !physics.RectOverlap(b.Bounds(), e.Bounds()) {
				continue
			}

			b.MarkDestroyed()
			r.strike(e)
			if e.TakeDamage(bulletDamage(b.Damage)) {
				r.killEnemy(w, e, l)
			}
			break
		}
	}
}

func (r *Resolver) killEnemy(w *object.World, e *object.Enemy, l Ledger) {
	e.MarkDestroyed()
	cx, cy := e.Center()

	l.AddScore(e.Points)
	l.AddKill()
	w.SpawnExplosion(object.NewExplosion(cx, cy, max(e.Width, e.Height)/2, tuning.ExplosionLife))
	l.Emit(event.Event{Type: event.EnemyDestroyed, Name: e.Class.String(), Points: e.Points, X: cx, Y: cy})

	if r.Rand == nil || r.Rand.Float64() >= r.Drops.Chance {
		return
	}
	kind := object.PowerUpPower
	if r.Rand.Float64() < r.Drops.HealthShare {
		kind = object.PowerUpHealth
	}
	w.SpawnPowerUp(object.NewPowerUp(cx, cy, kind))
}

func (r *Resolver) enemyBulletsVsPlayer(w *object.World, l Ledger) {
	p := w.Player
	for i := len(w.EnemyBullets) - 1; i >= 0 && p.Alive(); i-- {
		b := w.EnemyBullets[i]
		if b.IsDestroyed() || !physics.RectOverlap(b.Bounds(), p.Bounds()) {
			continue
		}
		b.MarkDestroyed()
		damage := bulletDamage(b.Damage)
		lost := p.TakeDamage(damage)
		l.Emit(event.Event{Type: event.PlayerHit, Damage: damage, X: b.X, Y: b.Y})
		if lost {
			l.Emit(event.Event{Type: event.LifeLost})
		}
	}
}

func (r *Resolver) enemiesVsPlayer(w *object.World, l Ledger) {
	p := w.Player
	for i := len(w.Enemies) - 1; i >= 0 && p.Alive(); i-- {
		e := w.Enemies[i]
		if e.IsDestroyed() || !physics.RectOverlap(p.Bounds(), e.Bounds()) {
			continue
		}
		e.MarkDestroyed()
		cx, cy := e.Center()
		w.SpawnExplosion(object.NewExplosion(cx, cy, max(e.Width, e.Height)/2, tuning.ExplosionLife))
		p.LoseLife()
		l.Emit(event.Event{Type: event.LifeLost, Name: e.Class.String(), X: cx, Y: cy})
	}
}

func (r *Resolver) powerUpsVsPlayer(w *object.World, l Ledger) {
	p := w.Player
	if !p.Alive() {
		return
	}
	for i := len(w.PowerUps) - 1; i >= 0; i-- {
		pu := w.PowerUps[i]
		if pu.IsDestroyed() || !physics.RectOverlap(p.Bounds(), pu.Bounds()) {
			continue
		}
		pu.MarkDestroyed()
		pu.Apply(p)
		l.Emit(event.Event{Type: event.PowerUpCollected, Name: pu.Kind.String()})
	}
}

// asteroidReach is the center distance at which a box touches an asteroid.
func asteroidReach(a *object.Asteroid, b object.Box) float64 {
	return a.Size + max(b.Width, b.Height)/2
}

func (r *Resolver) bulletsVsAsteroids(w *object.World, l Ledger) {
	for i := len(w.Bullets) - 1; i >= 0; i-- {
		b := w.Bullets[i]
		if b.IsDestroyed() {
			continue
		}
		bx, by := b.Center()
		for j := len(w.Asteroids) - 1; j >= 0; j-- {
			a := w.Asteroids[j]
			if a.IsDestroyed() || r.absorbed(a) {
				continue
			}
			if physics.Distance(bx, by, a.X, a.Y) >= asteroidReach(a, b.Box) {
				continue
			}

			b.MarkDestroyed()
			r.strike(a)
			if a.TakeDamage(bulletDamage(b.Damage)) {
				a.MarkDestroyed()
				a.Explode(w)
				l.AddScore(a.Points)
				l.Emit(event.Event{Type: event.AsteroidDestroyed, Name: a.Kind.String(), Points: a.Points, X: a.X, Y: a.Y})
			}
			break
		}
	}
}

func (r *Resolver) asteroidsVsPlayer(w *object.World, l Ledger) {
	p := w.Player
	px, py := p.Center()
	for i := len(w.Asteroids) - 1; i >= 0 && p.Alive(); i-- {
		a := w.Asteroids[i]
		if a.IsDestroyed() || physics.Distance(px, py, a.X, a.Y) >= asteroidReach(a, p.Box) {
			continue
		}
		a.MarkDestroyed()
		a.Explode(w)
		lost := p.TakeDamage(a.Damage)
		l.Emit(event.Event{Type: event.PlayerHit, Damage: a.Damage, X: a.X, Y: a.Y})
		if lost {
			l.Emit(event.Event{Type: event.LifeLost})
		}
	}
}
