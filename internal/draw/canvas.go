package draw

import (
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/tomz197/skyfighter/internal/physics"
)

// cell is one terminal character: two stacked sub-pixels.
type cell struct {
	top, bottom Color
}

// Canvas is a color drawing buffer with 2x vertical resolution using
// half-block characters. Drawing happens in logical playfield coordinates
// that are scaled to the terminal.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int     // termHeight * 2
	pixels         []Color // [y * termWidth + x]
	prev           []cell  // Cells as last written to the terminal
	force          bool    // Rewrite every cell on the next Render

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64
	scaleY        float64

	// 0-based terminal offsets of the render area.
	offsetCol int
	offsetRow int

	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewCanvas creates a canvas mapping a logicalWidth x logicalHeight space
// onto termWidth x termHeight terminal cells.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the
// logical size. A changed size forces a full redraw.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Color, c.subPixelHeight*termWidth)
		c.prev = make([]cell, termHeight*termWidth)
		c.force = true
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the 0-based column and row where the render area starts.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.force = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset of the render area.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset of the render area.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the render area width in columns.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the render area height in rows.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// ForceRedraw makes the next Render rewrite every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.force = true
}

// MarkTextDirty records that text was written over n cells starting at the
// 1-based (col, row) so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	y := row - 1
	if y < 0 || y >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+n, c.termWidth); x++ {
		c.prev[y*c.termWidth+x] = cell{top: dirty, bottom: dirty}
	}
}

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// Pixel returns the color at sub-pixel (x, y). Out-of-range reads are empty.
func (c *Canvas) Pixel(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return 0
	}
	return c.pixels[y*c.termWidth+x]
}

func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Round(x * c.scaleX)), int(math.Round(y * c.scaleY))
}

// Set sets the pixel under the logical point (x, y).
func (c *Canvas) Set(x, y float64, col Color) {
	px, py := c.toPixel(x, y)
	c.setPixel(px, py, col)
}

// FillRect fills a logical rectangle. Rectangles smaller than a sub-pixel
// still cover one.
func (c *Canvas) FillRect(r physics.Rect, col Color) {
	x0, y0 := c.toPixel(r.X, r.Y)
	x1, y1 := c.toPixel(r.X+r.W, r.Y+r.H)
	x1 = max(x1, x0+1)
	y1 = max(y1, y0+1)
	for y := max(y0, 0); y < min(y1, c.subPixelHeight); y++ {
		for x := max(x0, 0); x < min(x1, c.termWidth); x++ {
			c.pixels[y*c.termWidth+x] = col
		}
	}
}

// DrawLine draws a line between logical points using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	x1, y1 := c.toPixel(p1.X, p1.Y)
	x2, y2 := c.toPixel(p2.X, p2.Y)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		c.setPixel(x1, y1, col)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a closed polygon in logical coordinates, optionally
// filling its interior.
func (c *Canvas) DrawPolygon(points []Point, col Color, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points, col)
	}
	n := len(points)
	for i := range n {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// fillPolygon scanline-fills a polygon in pixel space.
func (c *Canvas) fillPolygon(points []Point, col Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)
	n := len(scaled)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		for i := range n {
			p1, p2 := scaled[i], scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = xs
		slices.Sort(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// FillCircle fills a logical circle. Vertical scaling is applied separately
// so circles stay round on non-square cells.
func (c *Canvas) FillCircle(cx, cy, radius float64, col Color) {
	pcx, pcy := cx*c.scaleX, cy*c.scaleY
	rx, ry := radius*c.scaleX, radius*c.scaleY
	if rx <= 0 || ry <= 0 {
		c.Set(cx, cy, col)
		return
	}
	for y := max(int(math.Floor(pcy-ry)), 0); y <= min(int(math.Ceil(pcy+ry)), c.subPixelHeight-1); y++ {
		dy := (float64(y) + 0.5 - pcy) / ry
		if dy*dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		for x := int(math.Ceil(pcx - half)); x <= int(math.Floor(pcx+half)); x++ {
			c.setPixel(x, y, col)
		}
	}
}

// BorrowPoints returns a reusable slice of n points, valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal
// position inside the render area.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return px + 1, py/2 + 1
}

// Render writes the cells that changed since the previous Render.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	var pen cell
	penSet := false
	lastIdx := -2

	for row := range c.termHeight {
		top := row * 2 * c.termWidth
		bottom := top + c.termWidth
		for col := range c.termWidth {
			cur := cell{top: c.pixels[top+col], bottom: c.pixels[bottom+col]}
			idx := row*c.termWidth + col
			if !c.force && c.prev[idx] == cur {
				continue
			}
			c.prev[idx] = cur

			if idx != lastIdx+1 || col == 0 {
				c.moveTo(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			lastIdx = idx

			if !penSet || pen != cur {
				c.renderBuf.WriteString(sgr(cur))
				pen, penSet = cur, true
			}
			c.renderBuf.WriteRune(glyph(cur))
		}
	}
	c.force = false

	if c.renderBuf.Len() == 0 {
		return nil
	}
	c.renderBuf.WriteString(resetColor)
	_, err := io.WriteString(w, c.renderBuf.String())
	return err
}

func (c *Canvas) moveTo(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// glyph picks the half-block character for a cell. The foreground carries the
// upper sub-pixel unless only the lower one is set.
func glyph(c cell) rune {
	switch {
	case c.top == 0 && c.bottom == 0:
		return ' '
	case c.top == c.bottom:
		return BlockFull
	case c.top == 0:
		return BlockLowerHalf
	default:
		return BlockUpperHalf
	}
}

// sgr returns the color escape for a cell as rendered by glyph.
func sgr(c cell) string {
	switch {
	case c.top == 0 && c.bottom == 0:
		return resetColor
	case c.top == c.bottom:
		return resetColor + c.top.fg()
	case c.top == 0:
		return resetColor + c.bottom.fg()
	case c.bottom == 0:
		return resetColor + c.top.fg()
	default:
		return c.top.fg() + c.bottom.bg()
	}
}

// RenderBorder draws a frame around the render area when the terminal has
// room for it.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1
	if !hasH && !hasV {
		return nil
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var b strings.Builder
	moveTo := func(col, row int) {
		b.WriteString("\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H")
	}
	if hasV {
		if hasH {
			moveTo(left, top)
			b.WriteString("┌" + line + "┐")
			moveTo(left, bottom)
			b.WriteString("└" + line + "┘")
		} else {
			moveTo(left+1, top)
			b.WriteString(line)
			moveTo(left+1, bottom)
			b.WriteString(line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			moveTo(left, row)
			b.WriteString("│")
			moveTo(right, row)
			b.WriteString("│")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
