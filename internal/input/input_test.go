package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeys(t *testing.T) {
	now := time.Unix(1000, 0)

	tests := []struct {
		name  string
		bytes string
		check func(t *testing.T, k Keys)
	}{
		{"arrow keys", "\x1b[A\x1b[D", func(t *testing.T, k Keys) {
			assert.True(t, k.Up)
			assert.True(t, k.Left)
			assert.False(t, k.Escape, "CSI prefix is not a bare escape")
		}},
		{"wasd", "sd", func(t *testing.T, k Keys) {
			assert.True(t, k.Down)
			assert.True(t, k.Right)
		}},
		{"menu keys", "\rp\t", func(t *testing.T, k Keys) {
			assert.True(t, k.Enter)
			assert.True(t, k.Pause)
			assert.True(t, k.Board)
		}},
		{"bare escape", "\x1b", func(t *testing.T, k Keys) {
			assert.True(t, k.Escape)
		}},
		{"special and quit", " q", func(t *testing.T, k Keys) {
			assert.True(t, k.Special)
			assert.True(t, k.Quit)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st keyState
			k := parseKeys(&st, []byte(tt.bytes), now)
			tt.check(t, k)
		})
	}
}

func TestParseKeys_HoldExpires(t *testing.T) {
	var st keyState
	start := time.Unix(1000, 0)

	k := parseKeys(&st, []byte("a"), start)
	require.True(t, k.Left)

	k = parseKeys(&st, nil, start.Add(keyHoldDuration/2))
	assert.True(t, k.Left, "key is still held within the hold window")

	k = parseKeys(&st, nil, start.Add(keyHoldDuration))
	assert.False(t, k.Left)
}

func TestReadKeys_ClosedStream(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("d")))

	deadline := time.Now().Add(time.Second)
	var sawRight bool
	for !s.Closed() && time.Now().Before(deadline) {
		if ReadKeys(s, time.Now()).Right {
			sawRight = true
		}
		time.Sleep(time.Millisecond)
	}

	assert.True(t, s.Closed())
	assert.True(t, sawRight)
}

func TestMerge(t *testing.T) {
	t.Run("keyboard only", func(t *testing.T) {
		in := Keys{Left: true, Down: true, Special: true}.Intent()
		assert.Equal(t, -1.0, in.MoveX)
		assert.Equal(t, 1.0, in.MoveY)
		assert.True(t, in.Special)
		assert.False(t, in.Confirm, "the special key never confirms a menu")
	})

	t.Run("opposite keys cancel", func(t *testing.T) {
		in := Keys{Left: true, Right: true}.Intent()
		assert.Equal(t, 0.0, in.MoveX)
	})

	t.Run("stick inside deadzone", func(t *testing.T) {
		in := Merge(Keys{}, Pad{AxisX: 0.09, AxisY: -0.05})
		assert.Equal(t, 0.0, in.MoveX)
		assert.Equal(t, 0.0, in.MoveY)
	})

	t.Run("stick scaled", func(t *testing.T) {
		in := Merge(Keys{}, Pad{AxisX: 0.5})
		assert.InDelta(t, 0.4, in.MoveX, 1e-9)
	})

	t.Run("sources add and clamp", func(t *testing.T) {
		in := Merge(Keys{Right: true}, Pad{AxisX: 1, DPadRight: true})
		assert.Equal(t, 1.0, in.MoveX)
	})

	t.Run("buttons", func(t *testing.T) {
		in := Merge(Keys{}, Pad{Shoulder: true, Start: true, Back: true, Y: true})
		assert.True(t, in.Special)
		assert.True(t, in.Confirm)
		assert.True(t, in.Cancel)
		assert.True(t, in.Alt)
	})
}

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(300 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	in := d.Filter(Intent{Confirm: true, MoveX: 1, Special: true}, t0)
	assert.True(t, in.Confirm)
	assert.Equal(t, 1.0, in.MoveX)

	in = d.Filter(Intent{Confirm: true, MoveX: 1, Special: true}, t0.Add(100*time.Millisecond))
	assert.False(t, in.Confirm, "held button must not re-trigger")
	assert.Equal(t, 1.0, in.MoveX, "movement is never debounced")
	assert.True(t, in.Special, "special trigger is never debounced")

	in = d.Filter(Intent{Cancel: true}, t0.Add(100*time.Millisecond))
	assert.True(t, in.Cancel, "each intent has its own window")

	in = d.Filter(Intent{Confirm: true}, t0.Add(300*time.Millisecond))
	assert.True(t, in.Confirm)
}
