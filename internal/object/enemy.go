package object

import (
	"time"

	"github.com/tomz197/skyfighter/internal/tuning"
)

// EnemyClass identifies an enemy ship class. Classes are ordered by strength.
type EnemyClass int

const (
	Fighter EnemyClass = iota
	Scout
	Interceptor
	Bomber
	Gunship
	Destroyer
	Carrier
	Battleship
	Dreadnought
	Titan
)

// ClassStats are the base stats of an enemy class before level modifiers.
type ClassStats struct {
	Name     string
	Width    float64
	Height   float64
	Health   int
	Speed    float64
	Points   int
	FireRate time.Duration // Time between shots
	Color    string
}

// enemyClasses is indexed by EnemyClass. Size, health and points rise strictly
// with the class; the fire interval shrinks.
var enemyClasses = [...]ClassStats{
	Fighter:     {"fighter", 25, 20, 15, 1.8, 10, 2600 * time.Millisecond, "#ff6b6b"},
	Scout:       {"scout", 28, 22, 20, 1.7, 12, 2400 * time.Millisecond, "#ffa5a5"},
	Interceptor: {"interceptor", 30, 25, 25, 1.5, 15, 2200 * time.Millisecond, "#ffb5b5"},
	Bomber:      {"bomber", 34, 28, 30, 1.2, 20, 2000 * time.Millisecond, "#ff8e8e"},
	Gunship:     {"gunship", 40, 32, 40, 1.0, 25, 1800 * time.Millisecond, "#ffc5c5"},
	Destroyer:   {"destroyer", 48, 38, 50, 0.9, 35, 1600 * time.Millisecond, "#ffd5d5"},
	Carrier:     {"carrier", 56, 44, 65, 0.8, 50, 1500 * time.Millisecond, "#ffe5e5"},
	Battleship:  {"battleship", 66, 50, 80, 0.7, 80, 1400 * time.Millisecond, "#ffaaa5"},
	Dreadnought: {"dreadnought", 78, 58, 100, 0.6, 120, 1300 * time.Millisecond, "#ff8b94"},
	Titan:       {"titan", 90, 65, 150, 0.5, 200, 1200 * time.Millisecond, "#ff6b9d"},
}

// EnemyClassCount is the number of enemy classes.
const EnemyClassCount = len(enemyClasses)

// LookupClass returns the base stats of a class. ok is false for unknown classes.
func LookupClass(c EnemyClass) (stats ClassStats, ok bool) {
	if c < 0 || int(c) >= len(enemyClasses) {
		return ClassStats{}, false
	}
	return enemyClasses[c], true
}

func (c EnemyClass) String() string {
	if s, ok := LookupClass(c); ok {
		return s.Name
	}
	return "unknown"
}

// EnemyModifiers are level-scoped adjustments applied at creation.
type EnemyModifiers struct {
	HealthBonus     int
	SpeedMultiplier float64       // 0 keeps the class speed
	FireRate        time.Duration // 0 keeps the class fire rate
}

// Enemy is a hostile ship.
type Enemy struct {
	Box
	Tombstone
	Class     EnemyClass
	Health    int
	MaxHealth int
	Speed     float64
	FireRate  time.Duration
	Points    int
	Color     string
	Boss      bool
	Pattern   Pattern
	Motion    Motion

	fireCooldown time.Duration
	entered      bool // Has been inside the field at least once
}

// NewEnemy creates an enemy of the given class just above the field.
// ok is false when the class is unknown.
func NewEnemy(class EnemyClass, mods EnemyModifiers) (e *Enemy, ok bool) {
	stats, ok := LookupClass(class)
	if !ok {
		return nil, false
	}

	speed := stats.Speed
	if mods.SpeedMultiplier > 0 {
		speed *= mods.SpeedMultiplier
	}
	fireRate := stats.FireRate
	if mods.FireRate > 0 {
		fireRate = mods.FireRate
	}
	health := stats.Health + mods.HealthBonus

	return &Enemy{
		Box:       Box{X: 0, Y: -stats.Height, Width: stats.Width, Height: stats.Height},
		Class:     class,
		Health:    health,
		MaxHealth: health,
		Speed:     speed,
		FireRate:  fireRate,
		Points:    stats.Points,
		Color:     stats.Color,

		fireCooldown: fireRate,
	}, true
}

// MakeBoss turns the enemy into a boss with multiplied health and points.
func (e *Enemy) MakeBoss() {
	e.Boss = true
	e.Health *= tuning.BossHealthFactor
	e.MaxHealth = e.Health
	e.Points *= tuning.BossHealthFactor
}

// Update moves the enemy along its pattern and fires when its cooldown
// expires. Returns true once the enemy has left the field.
func (e *Enemy) Update(ctx UpdateContext) bool {
	e.move(ctx.Field, ctx.Frames())

	e.fireCooldown -= ctx.Delta
	if e.fireCooldown <= 0 && e.FireRate > 0 {
		e.Fire(ctx.Spawner)
	}

	if !e.entered && e.Y+e.Height > 0 {
		e.entered = true
	}
	return e.outOfBounds(ctx.Field)
}

// Fire spawns a bullet from the bottom center of the ship and restarts the cooldown.
func (e *Enemy) Fire(s Spawner) {
	s.SpawnEnemyBullet(NewEnemyBullet(e.X+e.Width/2-tuning.EnemyBulletWidth/2, e.Y+e.Height))
	e.fireCooldown = e.FireRate
}

// TakeDamage subtracts damage from health. Health is clamped at 0 and true is
// returned when the enemy dies.
func (e *Enemy) TakeDamage(damage int) bool {
	e.Health -= damage
	if e.Health <= 0 {
		e.Health = 0
		return true
	}
	return false
}

// outOfBounds reports whether the enemy has drifted beyond the cull margin.
// Enemies queued above the field are kept until they have entered it once.
func (e *Enemy) outOfBounds(f Playfield) bool {
	m := float64(tuning.EnemyCullMargin)
	if e.Y > f.Height+m || e.X+e.Width < -m || e.X > f.Width+m {
		return true
	}
	return e.entered && e.Y+e.Height < -m
}
