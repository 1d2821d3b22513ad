package object

import "github.com/tomz197/skyfighter/internal/tuning"

// PowerUpKind identifies what a power-up grants.
type PowerUpKind int

const (
	PowerUpPower  PowerUpKind = iota // Raises the weapon power level
	PowerUpHealth                    // Restores health
)

func (k PowerUpKind) String() string {
	if k == PowerUpHealth {
		return "health"
	}
	return "power"
}

// PowerUp is a pickup dropped by destroyed enemies.
type PowerUp struct {
	Box
	Tombstone
	Kind  PowerUpKind
	Speed float64
}

// NewPowerUp creates a power-up centered horizontally on cx with its top at cy.
func NewPowerUp(cx, cy float64, kind PowerUpKind) *PowerUp {
	return &PowerUp{
		Box: Box{
			X:      cx - tuning.PowerUpSize/2,
			Y:      cy,
			Width:  tuning.PowerUpSize,
			Height: tuning.PowerUpSize,
		},
		Kind:  kind,
		Speed: tuning.PowerUpSpeed,
	}
}

// Update lets the power-up fall. Returns true once it has left the bottom.
func (p *PowerUp) Update(ctx UpdateContext) bool {
	p.Y += p.Speed * ctx.Frames()
	return p.Y >= ctx.Field.Height
}

// Apply grants the power-up's effect to the player.
func (p *PowerUp) Apply(pl *Player) {
	switch p.Kind {
	case PowerUpHealth:
		pl.Heal(tuning.HealAmount)
	default:
		pl.PowerLevel++
	}
}
