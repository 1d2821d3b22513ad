package draw

import (
	"math"

	"github.com/tomz197/skyfighter/internal/physics"
)

// Point is a 2D coordinate in logical space.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// PlayerShip writes the outline of a ship pointing up inside r into dst.
// dst must hold at least 4 points.
func PlayerShip(dst []Point, r physics.Rect) []Point {
	cx := r.CenterX()
	bottom := r.Y + r.H
	dst = dst[:4]
	dst[0] = Point{cx, r.Y}
	dst[1] = Point{r.X + r.W, bottom}
	dst[2] = Point{cx, bottom - r.H*0.3}
	dst[3] = Point{r.X, bottom}
	return dst
}

// EnemyShip writes the outline of a ship pointing down inside r into dst.
// dst must hold at least 5 points.
func EnemyShip(dst []Point, r physics.Rect) []Point {
	mid := r.Y + r.H*0.45
	dst = dst[:5]
	dst[0] = Point{r.X, r.Y}
	dst[1] = Point{r.X + r.W, r.Y}
	dst[2] = Point{r.X + r.W*0.8, mid}
	dst[3] = Point{r.CenterX(), r.Y + r.H}
	dst[4] = Point{r.X + r.W*0.2, mid}
	return dst
}

// Rock writes an irregular polygon around (cx, cy) with one vertex per radius,
// evenly spaced and rotated by rotation radians.
func Rock(dst []Point, cx, cy, rotation float64, radii []float64) []Point {
	dst = dst[:len(radii)]
	step := 2 * math.Pi / float64(len(radii))
	for i, r := range radii {
		a := rotation + float64(i)*step
		dst[i] = Point{cx + math.Cos(a)*r, cy + math.Sin(a)*r}
	}
	return dst
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
