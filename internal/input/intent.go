package input

import (
	"math"

	"github.com/tomz197/skyfighter/internal/tuning"
)

// Intent is the normalized input the simulation consumes each tick.
type Intent struct {
	MoveX, MoveY float64 // Each in [-1, 1]
	Special      bool    // Special weapon trigger (held)

	// Menu intents, debounced by the caller.
	Confirm bool
	Cancel  bool
	Alt     bool // Menu special action (leaderboard from the title screen)
	Pause   bool
	Quit    bool
}

// Pad is the state of an analog controller.
type Pad struct {
	AxisX, AxisY float64 // Stick, each in [-1, 1]
	DPadLeft     bool
	DPadRight    bool
	DPadUp       bool
	DPadDown     bool
	Shoulder     bool // Special shot
	Start        bool
	Back         bool
	Y            bool
}

// Deadzone zeroes stick values below the deadzone threshold and scales the rest.
func Deadzone(v float64) float64 {
	if math.Abs(v) < tuning.StickDeadzone {
		return 0
	}
	return v * tuning.StickScale
}

// Intent builds the intent for the keyboard state alone.
func (k Keys) Intent() Intent {
	return Merge(k, Pad{})
}

// Merge combines keyboard and controller state. Movement sources are additive
// and the sum is clamped to [-1, 1]; buttons are OR-ed.
func Merge(k Keys, p Pad) Intent {
	x := axis(k.Left, k.Right) + axis(p.DPadLeft, p.DPadRight) + Deadzone(p.AxisX)
	y := axis(k.Up, k.Down) + axis(p.DPadUp, p.DPadDown) + Deadzone(p.AxisY)

	return Intent{
		MoveX:   clampUnit(x),
		MoveY:   clampUnit(y),
		Special: k.Special || p.Shoulder,
		Confirm: k.Enter || p.Start,
		Cancel:  k.Escape || p.Back,
		Alt:     k.Board || p.Y,
		Pause:   k.Pause,
		Quit:    k.Quit,
	}
}

func axis(neg, pos bool) float64 {
	v := 0.0
	if neg {
		v--
	}
	if pos {
		v++
	}
	return v
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
