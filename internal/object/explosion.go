package object

import "time"

// Explosion is a short-lived visual effect. The simulation only ages and
// removes it; renderers use Progress to animate it.
type Explosion struct {
	Tombstone
	X, Y    float64 // Center
	Radius  float64
	Life    time.Duration
	MaxLife time.Duration
}

// NewExplosion creates an explosion centered at (x, y).
func NewExplosion(x, y, radius float64, life time.Duration) *Explosion {
	return &Explosion{X: x, Y: y, Radius: radius, Life: life, MaxLife: life}
}

// Update ages the explosion. Returns true when it has burned out.
func (e *Explosion) Update(ctx UpdateContext) bool {
	e.Life -= ctx.Delta
	return e.Life <= 0
}

// Progress returns how far the explosion has burned, from 0 (fresh) to 1 (gone).
func (e *Explosion) Progress() float64 {
	if e.MaxLife <= 0 {
		return 1
	}
	p := 1 - float64(e.Life)/float64(e.MaxLife)
	return min(max(p, 0), 1)
}
