package object

import "github.com/tomz197/skyfighter/internal/tuning"

// Bullet is a player projectile travelling up the field.
type Bullet struct {
	Box
	Tombstone
	Speed   float64
	Damage  int
	Color   string
	Special bool // Fired by the special weapon
}

// NewBullet creates a player bullet with its top-left corner at (x, y).
func NewBullet(x, y, w, h, speed float64, damage int, special bool) *Bullet {
	color := tuning.BulletColor
	if special {
		color = tuning.SpecialBulletColor
	}
	return &Bullet{
		Box:     Box{X: x, Y: y, Width: w, Height: h},
		Speed:   speed,
		Damage:  damage,
		Color:   color,
		Special: special,
	}
}

// Update moves the bullet upward. Returns true once it has left the field.
func (b *Bullet) Update(ctx UpdateContext) bool {
	b.Y -= b.Speed * ctx.Frames()
	return b.offField(ctx.Field)
}

// EnemyBullet is an enemy projectile travelling down the field.
type EnemyBullet struct {
	Box
	Tombstone
	Speed  float64
	Damage int
}

// NewEnemyBullet creates an enemy bullet with its top-left corner at (x, y).
func NewEnemyBullet(x, y float64) *EnemyBullet {
	return &EnemyBullet{
		Box:    Box{X: x, Y: y, Width: tuning.EnemyBulletWidth, Height: tuning.EnemyBulletHeight},
		Speed:  tuning.EnemyBulletSpeed,
		Damage: tuning.EnemyBulletDamage,
	}
}

// Update moves the bullet downward. Returns true once it has left the field.
func (b *EnemyBullet) Update(ctx UpdateContext) bool {
	b.Y += b.Speed * ctx.Frames()
	return b.offField(ctx.Field)
}
