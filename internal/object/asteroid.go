package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/skyfighter/internal/tuning"
)

// AsteroidSize represents the size category of an asteroid.
type AsteroidSize int

const (
	AsteroidSmall AsteroidSize = iota
	AsteroidMedium
	AsteroidLarge
	asteroidSizeCount
)

// asteroidKind holds the fixed properties of a size class.
type asteroidKind struct {
	name   string
	size   float64 // Radius-like extent around the center
	health int
	speed  float64
	points int
	damage int
	color  string
}

var asteroidKinds = [...]asteroidKind{
	AsteroidSmall:  {"small", 15, 20, 0.8, 50, 10, "#8b7355"},
	AsteroidMedium: {"medium", 25, 35, 0.6, 100, 15, "#a0826d"},
	AsteroidLarge:  {"large", 35, 50, 0.4, 200, 20, "#6b5b45"},
}

func (s AsteroidSize) String() string {
	if s < 0 || s >= asteroidSizeCount {
		return "unknown"
	}
	return asteroidKinds[s].name
}

// Asteroid is a destructible rock drifting down the field.
type Asteroid struct {
	Tombstone
	X, Y          float64 // Position (center)
	Kind          AsteroidSize
	Size          float64 // Collision radius
	Health        int
	MaxHealth     int
	Speed         float64
	Damage        int
	Points        int
	Color         string
	Direction     float64 // -1, 0 or +1 horizontal drift
	Rotation      float64 // Current rotation angle
	RotationSpeed float64 // Radians per reference frame
	Vertices      []float64
}

// NewAsteroid creates an asteroid of the given size centered at (x, y).
func NewAsteroid(x, y float64, kind AsteroidSize, direction float64, rng *rand.Rand) *Asteroid {
	if kind < 0 || kind >= asteroidSizeCount {
		kind = AsteroidSmall
	}
	k := asteroidKinds[kind]

	// Irregular outline, radius varied by up to 30%.
	verts := make([]float64, 8+rng.Intn(5))
	for i := range verts {
		verts[i] = k.size * (0.7 + rng.Float64()*0.6)
	}

	return &Asteroid{
		X:             x,
		Y:             y,
		Kind:          kind,
		Size:          k.size,
		Health:        k.health,
		MaxHealth:     k.health,
		Speed:         k.speed,
		Damage:        k.damage,
		Points:        k.points,
		Color:         k.color,
		Direction:     direction,
		Rotation:      rng.Float64() * 2 * math.Pi,
		RotationSpeed: (rng.Float64()*2 - 1) * tuning.AsteroidMaxSpin,
		Vertices:      verts,
	}
}

// NewAsteroidAtTop creates an asteroid of a random size at a random x just
// above the field, moving straight down or diagonally.
func NewAsteroidAtTop(field Playfield, rng *rand.Rand) *Asteroid {
	kind := AsteroidSize(rng.Intn(int(asteroidSizeCount)))
	size := asteroidKinds[kind].size
	x := size + rng.Float64()*math.Max(field.Width-2*size, 0)
	direction := 0.0
	if rng.Float64() < tuning.AsteroidDiagonalChance {
		direction = 1
		if rng.Intn(2) == 0 {
			direction = -1
		}
	}
	return NewAsteroid(x, -size, kind, direction, rng)
}

// Update moves and rotates the asteroid. Diagonal asteroids bounce off the
// side margins. Returns true once the asteroid has fallen below the field.
func (a *Asteroid) Update(ctx UpdateContext) bool {
	frames := ctx.Frames()
	a.Y += a.Speed * frames
	a.Rotation += a.RotationSpeed * frames

	if a.Direction != 0 {
		a.X += a.Speed * 0.5 * a.Direction * frames
		if a.X < a.Size {
			a.X = a.Size
			a.Direction = 1
		} else if a.X > ctx.Field.Width-a.Size {
			a.X = ctx.Field.Width - a.Size
			a.Direction = -1
		}
	}

	return a.Y-a.Size > ctx.Field.Height
}

// TakeDamage subtracts damage from health. Returns true when the asteroid breaks.
func (a *Asteroid) TakeDamage(damage int) bool {
	a.Health -= damage
	if a.Health <= 0 {
		a.Health = 0
		return true
	}
	return false
}

// Explode spawns the debris explosion for the asteroid.
func (a *Asteroid) Explode(s Spawner) {
	s.SpawnExplosion(NewExplosion(a.X, a.Y, a.Size, tuning.AsteroidExplosionLife))
}
