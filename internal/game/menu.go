package game

import (
	"github.com/tomz197/skyfighter/internal/event"
	"github.com/tomz197/skyfighter/internal/input"
)

// HandleMenu applies a debounced menu intent to the state machine. It
// returns true if the intent caused a transition or a request event.
func (s *Session) HandleMenu(in input.Intent) bool {
	switch s.state {
	case StateStart:
		if in.Confirm {
			return s.StartGame() == nil
		}
		if in.Alt {
			s.emit(event.Event{Type: event.ShowLeaderboard})
			return true
		}
		return false
	case StatePlaying:
		if in.Pause {
			return s.Pause() == nil
		}
		return false
	case StatePaused:
		if in.Pause || in.Confirm {
			return s.Resume() == nil
		}
	case StateLevelComplete:
		if in.Confirm {
			return s.NextLevel() == nil
		}
	case StateGameOver, StateGameComplete:
		if in.Confirm {
			return s.Restart() == nil
		}
	}

	if in.Cancel {
		return s.Restart() == nil
	}
	return false
}
