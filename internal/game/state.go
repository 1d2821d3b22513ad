package game

import (
	"errors"
	"fmt"
)

// State is the phase of a game session.
type State int

const (
	StateStart         State = iota // Title screen
	StatePlaying                    // Simulation running
	StatePaused                     // Simulation frozen, entities kept
	StateLevelComplete              // Waiting for the player to continue
	StateGameOver                   // No lives left
	StateGameComplete               // Final level cleared
)

var stateNames = [...]string{
	StateStart:         "start",
	StatePlaying:       "playing",
	StatePaused:        "paused",
	StateLevelComplete: "levelComplete",
	StateGameOver:      "gameOver",
	StateGameComplete:  "gameComplete",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// transitions lists the legal target states of every state.
var transitions = map[State][]State{
	StateStart:         {StatePlaying},
	StatePlaying:       {StatePaused, StateLevelComplete, StateGameOver, StateGameComplete},
	StatePaused:        {StatePlaying},
	StateLevelComplete: {StatePlaying},
	StateGameOver:      {StatePlaying},
	StateGameComplete:  {StatePlaying},
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ErrInvalidTransition is returned when an operation is not allowed in the
// current state.
var ErrInvalidTransition = errors.New("invalid state transition")

func transitionError(op string, from, to State) error {
	return fmt.Errorf("%s: %w: %s -> %s", op, ErrInvalidTransition, from, to)
}
