// Package object defines the simulation entities and the world that holds them.
package object

import (
	"time"

	"github.com/tomz197/skyfighter/internal/input"
	"github.com/tomz197/skyfighter/internal/physics"
	"github.com/tomz197/skyfighter/internal/tuning"
)

// Intent is an alias for the input package's Intent type.
type Intent = input.Intent

// Playfield is the visible simulation area in pixels.
type Playfield struct {
	Width  float64
	Height float64
}

// Spawner allows entities to spawn new entities during update.
// Spawned entities become visible after the world flushes its queue.
type Spawner interface {
	SpawnBullet(b *Bullet)
	SpawnEnemyBullet(b *EnemyBullet)
	SpawnEnemy(e *Enemy)
	SpawnAsteroid(a *Asteroid)
	SpawnPowerUp(p *PowerUp)
	SpawnExplosion(x *Explosion)
}

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Intent  Intent
	Field   Playfield
	Spawner Spawner
}

// Frames returns the tick delta measured in reference frames.
func (ctx UpdateContext) Frames() float64 {
	return float64(ctx.Delta) / float64(tuning.ReferenceFrame)
}

// Object is an updatable entity.
type Object interface {
	// Update advances the entity by ctx.Delta. Returns true if the entity should be removed.
	Update(ctx UpdateContext) (remove bool)
}

// Destructible is implemented by entities that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the entity for removal at the next compaction.
	MarkDestroyed()
	// IsDestroyed returns true if the entity is marked for destruction.
	IsDestroyed() bool
}

// Tombstone implements Destructible. Embedded by every entity kind.
type Tombstone struct {
	destroyed bool
}

// MarkDestroyed marks the entity for removal.
func (t *Tombstone) MarkDestroyed() { t.destroyed = true }

// IsDestroyed returns true if the entity is marked for removal.
func (t *Tombstone) IsDestroyed() bool { return t.destroyed }

// Box is the top-left anchored bounding box of rectangular entities.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// Bounds returns the box as a collision rectangle.
func (b Box) Bounds() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// Center returns the center point of the box.
func (b Box) Center() (x, y float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// offField reports whether the box lies entirely outside the playfield.
func (b Box) offField(f Playfield) bool {
	return b.Y+b.Height <= 0 || b.Y >= f.Height || b.X+b.Width <= 0 || b.X >= f.Width
}

// Live is the constraint for entities stored in the world's collections.
type Live interface {
	Object
	Destructible
}

// UpdateAll updates every live entity and compacts the slice in place,
// dropping entities that asked to be removed or were already destroyed.
func UpdateAll[T Live](items []T, ctx UpdateContext) []T {
	kept := items[:0]
	for _, it := range items {
		if it.IsDestroyed() {
			continue
		}
		if it.Update(ctx) {
			it.MarkDestroyed()
			continue
		}
		kept = append(kept, it)
	}
	clear(items[len(kept):])
	return kept
}

// Compact removes destroyed entities from the slice in place.
func Compact[T Destructible](items []T) []T {
	kept := items[:0]
	for _, it := range items {
		if !it.IsDestroyed() {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}
