package draw

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB color. The zero value means "nothing drawn".
type Color uint32

const (
	colorSet Color = 1 << 24
	dirty    Color = 1 << 25 // Sentinel that never equals a drawn color

	resetColor = "\033[0m"
)

// Common colors.
var (
	White = RGB(255, 255, 255)
	Gray  = RGB(128, 128, 128)
)

// RGB builds a color from its components.
func RGB(r, g, b uint8) Color {
	return colorSet | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// Hex parses "#rrggbb" or "#rgb" (the leading # is optional). Malformed
// input yields White.
func Hex(s string) Color {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return White
	}
	return RGB(c.RGB255())
}

// RGB returns the color components.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Scale darkens the color by f in [0, 1].
func (c Color) Scale(f float64) Color {
	f = min(max(f, 0), 1)
	r, g, b := c.RGB()
	return RGB(uint8(float64(r)*f), uint8(float64(g)*f), uint8(float64(b)*f))
}

func (c Color) fg() string { return c.sgr(38) }

func (c Color) bg() string { return c.sgr(48) }

func (c Color) sgr(layer int) string {
	r, g, b := c.RGB()
	return "\033[" + strconv.Itoa(layer) + ";2;" +
		strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b)) + "m"
}
