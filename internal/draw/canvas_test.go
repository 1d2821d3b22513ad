package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/skyfighter/internal/physics"
)

func TestHex(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
	}{
		{"#ff6b6b", 0xff, 0x6b, 0x6b},
		{"00ffff", 0, 0xff, 0xff},
		{"#zzzzzz", 255, 255, 255},
		{"#fff", 255, 255, 255},
		{"#0f0", 0, 255, 0},
		{"#12", 255, 255, 255},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := Hex(tt.in)
			assert.NotZero(t, c)
			r, g, b := c.RGB()
			assert.Equal(t, [3]uint8{tt.r, tt.g, tt.b}, [3]uint8{r, g, b})
		})
	}
}

func TestBlackIsDrawn(t *testing.T) {
	assert.NotZero(t, RGB(0, 0, 0), "black must differ from the empty color")
}

func TestFillRect_Scales(t *testing.T) {
	// 800x600 logical onto 80x30 cells: 10 logical px per column, 10 per sub-pixel row.
	c := NewCanvas(80, 30, 800, 600)
	red := RGB(255, 0, 0)
	c.FillRect(physics.Rect{X: 100, Y: 100, W: 20, H: 20}, red)

	assert.Equal(t, red, c.Pixel(10, 10))
	assert.Equal(t, red, c.Pixel(11, 11))
	assert.Zero(t, c.Pixel(12, 10))
	assert.Zero(t, c.Pixel(9, 10))
}

func TestFillRect_TinyStillVisible(t *testing.T) {
	c := NewCanvas(80, 30, 800, 600)
	c.FillRect(physics.Rect{X: 400, Y: 300, W: 3, H: 3}, White)
	assert.Equal(t, White, c.Pixel(40, 30))
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(80, 30, 800, 600)
	c.FillCircle(400, 300, 50, White)
	assert.Equal(t, White, c.Pixel(40, 30))
	assert.Zero(t, c.Pixel(40, 37))
	assert.Zero(t, c.Pixel(47, 30))
}

func TestRender_OnlyChangedCells(t *testing.T) {
	c := NewCanvas(10, 5, 10, 10)
	c.Set(2, 2, White)

	var first bytes.Buffer
	require.NoError(t, c.Render(&first))
	assert.Contains(t, first.String(), string(BlockUpperHalf))

	var second bytes.Buffer
	require.NoError(t, c.Render(&second))
	assert.Empty(t, second.String(), "unchanged frame writes nothing")

	c.MarkTextDirty(1, 1, 3)
	var third bytes.Buffer
	require.NoError(t, c.Render(&third))
	assert.Equal(t, 1, strings.Count(third.String(), "\033[1;1H"), "dirty run starts with one cursor move")

	c.Clear()
	var fourth bytes.Buffer
	require.NoError(t, c.Render(&fourth))
	assert.NotEmpty(t, fourth.String(), "erased pixel is repainted blank")
}

func TestRender_HalfBlocks(t *testing.T) {
	c := NewCanvas(3, 1, 3, 2)
	c.Set(0, 0, White)
	c.Set(1, 1, White)
	c.Set(2, 0, White)
	c.Set(2, 1, White)

	var out bytes.Buffer
	require.NoError(t, c.Render(&out))
	s := out.String()
	assert.Contains(t, s, string(BlockUpperHalf))
	assert.Contains(t, s, string(BlockLowerHalf))
	assert.Contains(t, s, string(BlockFull))
}

func TestResize_ForcesRedraw(t *testing.T) {
	c := NewCanvas(10, 5, 10, 10)
	var out bytes.Buffer
	require.NoError(t, c.Render(&out))

	c.Resize(12, 6)
	out.Reset()
	require.NoError(t, c.Render(&out))
	assert.NotEmpty(t, out.String())
	assert.Equal(t, 12, c.TerminalWidth())
	assert.Equal(t, 6, c.TerminalHeight())
}

func TestFitArea(t *testing.T) {
	w, h, col, row := FitArea(200, 60, 160, 50)
	assert.Equal(t, []int{160, 50, 20, 5}, []int{w, h, col, row})

	w, h, col, row = FitArea(80, 24, 160, 50)
	assert.Equal(t, []int{80, 24, 0, 0}, []int{w, h, col, row})
}

func TestShapesStayInBounds(t *testing.T) {
	r := physics.Rect{X: 10, Y: 20, W: 40, H: 30}
	buf := make([]Point, 8)
	for _, pts := range [][]Point{PlayerShip(buf, r), EnemyShip(buf, r)} {
		for _, p := range pts {
			assert.GreaterOrEqual(t, p.X, r.X)
			assert.LessOrEqual(t, p.X, r.X+r.W)
			assert.GreaterOrEqual(t, p.Y, r.Y)
			assert.LessOrEqual(t, p.Y, r.Y+r.H)
		}
	}

	rock := Rock(buf, 0, 0, 0, []float64{10, 10, 10, 10})
	require.Len(t, rock, 4)
	assert.InDelta(t, 10, rock[0].X, 1e-9)
	assert.InDelta(t, 10, rock[1].Y, 1e-9)
}

func TestChunkWriter(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)
	cw.WriteAt(1, 1, "hi")
	start := cw.WriteCentered(10, 2, "abcd")
	assert.Equal(t, 8, start)
	cw.WriteString(strings.Repeat("x", 3000))
	require.NoError(t, cw.Flush())

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "\033[4;3Hhi"))
	assert.Contains(t, s, "\033[5;10Habcd")
	assert.Zero(t, cw.Len())
}
