// Package input turns raw terminal bytes into a normalized per-tick intent.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report key repeats, so a held key shows up as a byte burst.
const keyHoldDuration = 60 * time.Millisecond

// Keys represents the keyboard state for the current frame.
type Keys struct {
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Special bool // Space: special shot; ignored by menus
	Enter   bool
	Escape  bool
	Pause   bool
	Board   bool // Leaderboard
	Pressed []byte
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit    time.Time
	left    time.Time
	right   time.Time
	up      time.Time
	down    time.Time
	special time.Time
	enter   time.Time
	escape  time.Time
	pause   time.Time
	board   time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadKeys drains all available bytes from the stream (non-blocking) and
// returns the keys held at now.
func ReadKeys(s *Stream, now time.Time) Keys {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return parseKeys(&s.state, buf, now)
}

// ResetKeys forgets held keys, so a key used to leave a menu does not leak
// into the next screen.
func ResetKeys(s *Stream) {
	s.state = keyState{}
}

// parseKeys updates key timestamps from buf and builds the held-key set.
func parseKeys(state *keyState, buf []byte, now time.Time) Keys {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				state.up = now
				i += 2
				continue
			case 'B':
				state.down = now
				i += 2
				continue
			case 'C':
				state.right = now
				i += 2
				continue
			case 'D':
				state.left = now
				i += 2
				continue
			}
		}

		applyByteToState(state, b, now)
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	return Keys{
		Quit:    held(state.quit),
		Left:    held(state.left),
		Right:   held(state.right),
		Up:      held(state.up),
		Down:    held(state.down),
		Special: held(state.special),
		Enter:   held(state.enter),
		Escape:  held(state.escape),
		Pause:   held(state.pause),
		Board:   held(state.board),
		Pressed: buf,
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q':
		state.quit = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case ' ', 'x', 'X':
		state.special = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	case 'p', 'P':
		state.pause = now
	case 'b', 'B', '\t':
		state.board = now
	}
}
