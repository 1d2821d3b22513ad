package object

import (
	"time"

	"github.com/tomz197/skyfighter/internal/physics"
	"github.com/tomz197/skyfighter/internal/tuning"
)

// Player is the ship controlled by the user.
type Player struct {
	Box
	Speed      float64
	Health     int
	MaxHealth  int
	Lives      int
	PowerLevel int

	shotCooldown    time.Duration // Remaining time before the next auto-fire
	specialCooldown time.Duration // Remaining time before the next special shot
}

// NewPlayer creates a ship at the bottom center of the field carrying the
// given run progress.
func NewPlayer(field Playfield, lives, powerLevel int) *Player {
	if powerLevel < 1 {
		powerLevel = 1
	}
	if lives < 0 {
		lives = 0
	}
	return &Player{
		Box: Box{
			X:      field.Width/2 - tuning.PlayerWidth/2,
			Y:      field.Height - tuning.PlayerHeight - tuning.PlayerBottomGap,
			Width:  tuning.PlayerWidth,
			Height: tuning.PlayerHeight,
		},
		Speed:      tuning.PlayerSpeed,
		Health:     tuning.PlayerHealth,
		MaxHealth:  tuning.PlayerHealth,
		Lives:      lives,
		PowerLevel: powerLevel,
	}
}

// Update moves the ship within the field and fires when cooldowns allow.
// The player is never removed by its own update.
func (p *Player) Update(ctx UpdateContext) bool {
	step := p.Speed * ctx.Frames()
	p.X = physics.Clamp(p.X+ctx.Intent.MoveX*step, 0, ctx.Field.Width-p.Width)
	p.Y = physics.Clamp(p.Y+ctx.Intent.MoveY*step, 0, ctx.Field.Height-p.Height)

	p.shotCooldown -= ctx.Delta
	p.specialCooldown -= ctx.Delta

	if p.shotCooldown <= 0 {
		p.Shoot(ctx.Spawner)
	}
	if ctx.Intent.Special && p.specialCooldown <= 0 {
		p.SpecialShot(ctx.Spawner)
	}
	return false
}

// ShotInterval returns the auto-fire cooldown for the current power level.
func (p *Player) ShotInterval() time.Duration {
	d := tuning.ShotCooldown - time.Duration(p.PowerLevel-1)*tuning.ShotCooldownStep
	return max(d, tuning.MinShotCooldown)
}

// Shoot fires the auto-fire pattern for the current power level and restarts
// the cooldown. Returns the number of bullets fired.
func (p *Player) Shoot(s Spawner) int {
	damage := tuning.BulletDamage + (p.PowerLevel-1)*tuning.BulletDamageStep
	cx := p.X + p.Width/2 - tuning.BulletWidth/2

	fire := func(x, y float64) {
		s.SpawnBullet(NewBullet(x, y, tuning.BulletWidth, tuning.BulletHeight, tuning.BulletSpeed, damage, false))
	}

	n := 0
	switch {
	case p.PowerLevel <= 1:
		fire(cx, p.Y)
		n = 1
	case p.PowerLevel == 2:
		fire(cx-tuning.TwinOffset, p.Y)
		fire(cx+tuning.TwinOffset, p.Y)
		n = 2
	default:
		fire(cx, p.Y)
		fire(cx-tuning.SpreadOffset, p.Y+tuning.SpreadDrop)
		fire(cx+tuning.SpreadOffset, p.Y+tuning.SpreadDrop)
		n = 3
	}

	p.shotCooldown = p.ShotInterval()
	return n
}

// SpecialShot fires min(power*2, 8) heavy bullets fanned around the ship
// center and restarts the special cooldown. Returns the number of bullets fired.
func (p *Player) SpecialShot(s Spawner) int {
	n := min(p.PowerLevel*2, tuning.MaxSpecialBullets)
	damage := tuning.SpecialDamage + (p.PowerLevel-1)*tuning.SpecialDamageStep
	spread := float64(n-1) * tuning.SpecialSpreadStep
	cx := p.X + p.Width/2 - tuning.SpecialWidth/2.0

	for i := range n {
		offset := (float64(i) - float64(n-1)/2) * spread
		s.SpawnBullet(NewBullet(cx+offset, p.Y, tuning.SpecialWidth, tuning.SpecialHeight, tuning.SpecialSpeed, damage, true))
	}

	p.specialCooldown = tuning.SpecialCooldown
	return n
}

// SpecialReady reports whether the special weapon is off cooldown.
func (p *Player) SpecialReady() bool {
	return p.specialCooldown <= 0
}

// TakeDamage subtracts damage from health. When health is exhausted a life is
// lost and health refills. Returns true if a life was lost.
func (p *Player) TakeDamage(damage int) bool {
	if p.Lives <= 0 || damage <= 0 {
		return false
	}
	p.Health -= damage
	if p.Health > 0 {
		return false
	}
	p.Health = 0
	p.LoseLife()
	return true
}

// LoseLife removes one life and refills health while lives remain.
func (p *Player) LoseLife() {
	if p.Lives <= 0 {
		return
	}
	p.Lives--
	if p.Lives > 0 {
		p.Health = p.MaxHealth
	} else {
		p.Health = 0
	}
}

// Heal restores health up to the maximum.
func (p *Player) Heal(amount int) {
	p.Health = min(p.Health+amount, p.MaxHealth)
}

// Alive reports whether the player has lives left.
func (p *Player) Alive() bool {
	return p.Lives > 0
}
