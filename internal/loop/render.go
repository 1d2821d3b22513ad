package loop

import (
	"math"

	"github.com/tomz197/skyfighter/internal/draw"
	"github.com/tomz197/skyfighter/internal/game"
	"github.com/tomz197/skyfighter/internal/object"
	"github.com/tomz197/skyfighter/internal/tuning"
)

var (
	playerColor      = draw.Hex("#4ecdc4")
	enemyBulletColor = draw.Hex(tuning.EnemyBulletColor)
	explosionColor   = draw.Hex("#ff9f43")
	powerColor       = draw.Hex("#ffd700")
	healthColor      = draw.Hex("#ff69b4")
	bossColor        = draw.Hex("#b967ff")
	starColor        = draw.RGB(70, 70, 90)
)

// drawFrame renders the world and the UI for the current state.
func (r *Runner) drawFrame() error {
	state := r.session.State()
	if state != r.prevState || r.overlay != r.prevOverlay || r.inactive != r.wasInactive {
		r.cw.WriteString("\033[H\033[2J")
		r.canvas.ForceRedraw()
		r.prevState = state
		r.prevOverlay = r.overlay
		r.wasInactive = r.inactive
	}

	r.canvas.Clear()
	snap := r.session.Snapshot()
	if state != game.StateStart && r.overlay == overlayNone && !r.inactive {
		r.drawWorld(snap)
	}

	if err := r.canvas.Render(r.cw); err != nil {
		return err
	}
	if err := r.canvas.RenderBorder(r.cw); err != nil {
		return err
	}
	r.drawUI(snap)
	return r.cw.Flush()
}

// drawWorld draws every entity of the snapshot onto the canvas.
func (r *Runner) drawWorld(snap *game.Snapshot) {
	c := r.canvas
	r.drawStars(snap.Field)

	for i := range snap.Asteroids {
		a := &snap.Asteroids[i]
		pts := draw.Rock(c.BorrowPoints(len(a.Vertices)), a.X, a.Y, a.Rotation, a.Vertices)
		c.DrawPolygon(pts, draw.Hex(a.Color), true)
	}

	for i := range snap.Enemies {
		e := &snap.Enemies[i]
		col := draw.Hex(e.Color)
		if e.Boss {
			col = bossColor
		}
		c.DrawPolygon(draw.EnemyShip(c.BorrowPoints(5), e.Bounds()), col, true)
	}

	for i := range snap.PowerUps {
		p := &snap.PowerUps[i]
		col := powerColor
		if p.Kind == object.PowerUpHealth {
			col = healthColor
		}
		cx, cy := p.Center()
		c.FillCircle(cx, cy, p.Width/2, col)
	}

	if snap.HasPlayer {
		c.DrawPolygon(draw.PlayerShip(c.BorrowPoints(4), snap.Player.Bounds()), playerColor, true)
	}

	for i := range snap.Bullets {
		b := &snap.Bullets[i]
		c.FillRect(b.Bounds(), draw.Hex(b.Color))
	}
	for i := range snap.EnemyBullets {
		c.FillRect(snap.EnemyBullets[i].Bounds(), enemyBulletColor)
	}

	for i := range snap.Explosions {
		x := &snap.Explosions[i]
		p := x.Progress()
		c.FillCircle(x.X, x.Y, x.Radius*(0.4+0.6*p), explosionColor.Scale(1-p))
	}
}

// drawStars scrolls a sparse star field with the level clock.
func (r *Runner) drawStars(f object.Playfield) {
	const stars = 40
	offset := r.session.HUD().Elapsed.Seconds() * 30
	for i := range stars {
		// Fixed pseudo-random layout from multiplicative hashing.
		x := float64((i*7919)%997) / 997 * f.Width
		y := float64((i*104729)%991)/991*f.Height + offset*float64(1+i%3)
		y = math.Mod(y, f.Height)
		r.canvas.Set(x, y, starColor)
	}
}
