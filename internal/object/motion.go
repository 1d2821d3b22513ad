package object

import (
	"math"
	"math/rand"
)

// Pattern is an enemy movement pattern.
type Pattern int

const (
	PatternStraight      Pattern = iota // Straight down
	PatternDriftRight                   // Down while sliding left to right
	PatternDriftLeft                    // Down while sliding right to left
	PatternDiagonalRight                // 45 degrees, reflecting off the side edges
	PatternDiagonalLeft                 // 45 degrees the other way
	PatternCircular                     // Orbit around a descending center
	PatternUTurn                        // Descend, then climb back out
	PatternZigzag                       // Sine sway driven by a phase accumulator
	PatternSpiral                       // Orbit whose radius shrinks with descent
	PatternWave                         // Sine of height with per-instance frequency
	patternCount
)

var patternNames = [...]string{
	"straight", "driftRight", "driftLeft", "diagonalRight", "diagonalLeft",
	"circular", "uTurn", "zigzag", "spiral", "wave",
}

// PatternCount is the number of movement patterns.
const PatternCount = int(patternCount)

func (p Pattern) String() string {
	if p < 0 || p >= patternCount {
		return "unknown"
	}
	return patternNames[p]
}

// RandomPattern picks a movement pattern uniformly.
func RandomPattern(rng *rand.Rand) Pattern {
	return Pattern(rng.Intn(PatternCount))
}

// Motion is the private movement state of one enemy. Each pattern reads only
// the fields it needs.
type Motion struct {
	Angle         float64
	Radius        float64
	InitialRadius float64
	CenterX       float64
	CenterY       float64
	Direction     float64 // +1 or -1
	Amplitude     float64
	Frequency     float64
	Phase         float64
	BaseX         float64
	TurnAt        float64 // Fraction of field height where a U-turn starts
	Ascending     bool
}

// Pattern tuning.
const (
	driftFactor    = 0.3
	diagonalFactor = 0.7
	orbitStep      = 0.05
	spiralStep     = 0.08
	zigzagStep     = 0.05
	zigzagSway     = 60.0
	centerDescent  = 0.5
)

// SetPattern assigns a movement pattern and initializes its motion state from
// the enemy's current position.
func (e *Enemy) SetPattern(p Pattern, rng *rand.Rand) {
	cx, cy := e.Center()
	m := Motion{Direction: 1}
	if rng.Intn(2) == 0 {
		m.Direction = -1
	}

	switch p {
	case PatternCircular, PatternSpiral:
		m.Radius = 30 + rng.Float64()*40
		m.InitialRadius = m.Radius
		// Start the orbit at angle 0 on the current position.
		m.CenterX = cx - m.Radius
		m.CenterY = cy
	case PatternUTurn:
		m.TurnAt = 0.4 + rng.Float64()*0.3
	case PatternZigzag:
		m.BaseX = e.X
		m.Amplitude = zigzagSway
	case PatternWave:
		m.BaseX = e.X
		m.Amplitude = 30 + rng.Float64()*50
		m.Frequency = 0.01 + rng.Float64()*0.02
		m.Phase = rng.Float64() * 2 * math.Pi
	}

	e.Pattern = p
	e.Motion = m
}

// move advances the enemy by frames reference frames along its pattern.
func (e *Enemy) move(f Playfield, frames float64) {
	m := &e.Motion
	step := e.Speed * frames

	switch e.Pattern {
	case PatternDriftRight:
		e.Y += step
		e.X += step * driftFactor
	case PatternDriftLeft:
		e.Y += step
		e.X -= step * driftFactor
	case PatternDiagonalRight, PatternDiagonalLeft:
		dir := m.Direction
		if e.Pattern == PatternDiagonalLeft {
			dir = -math.Abs(dir)
		} else {
			dir = math.Abs(dir)
		}
		e.Y += step * diagonalFactor
		e.X += step * diagonalFactor * dir
		if e.X <= 0 || e.X+e.Width >= f.Width {
			e.X = math.Max(0, math.Min(e.X, f.Width-e.Width))
			e.reverse()
		}
	case PatternCircular:
		m.CenterY += step * centerDescent
		m.Angle += orbitStep * frames * m.Direction
		e.X = m.CenterX + math.Cos(m.Angle)*m.Radius - e.Width/2
		e.Y = m.CenterY + math.Sin(m.Angle)*m.Radius - e.Height/2
	case PatternSpiral:
		m.CenterY += step
		m.Angle += spiralStep * frames * m.Direction
		progress := math.Max(0, math.Min(1, m.CenterY/f.Height))
		m.Radius = m.InitialRadius * (1 - progress)
		e.X = m.CenterX + math.Cos(m.Angle)*m.Radius - e.Width/2
		e.Y = m.CenterY + math.Sin(m.Angle)*m.Radius - e.Height/2
	case PatternUTurn:
		if !m.Ascending && f.Height > 0 && (e.Y+e.Height)/f.Height >= m.TurnAt {
			m.Ascending = true
		}
		if m.Ascending {
			e.Y -= step
			e.X += step * driftFactor * m.Direction
		} else {
			e.Y += step
		}
	case PatternZigzag:
		e.Y += step
		m.Phase += zigzagStep * frames
		e.X = m.BaseX + math.Sin(m.Phase)*m.Amplitude
	case PatternWave:
		e.Y += step
		e.X = m.BaseX + math.Sin(e.Y*m.Frequency+m.Phase)*m.Amplitude
	default:
		e.Y += step
	}
}

// reverse flips the horizontal direction of diagonal movement.
func (e *Enemy) reverse() {
	switch e.Pattern {
	case PatternDiagonalRight:
		e.Pattern = PatternDiagonalLeft
	case PatternDiagonalLeft:
		e.Pattern = PatternDiagonalRight
	}
	e.Motion.Direction = -e.Motion.Direction
}
