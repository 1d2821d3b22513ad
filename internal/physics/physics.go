// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 {
	return r.X + r.W/2
}

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 {
	return r.Y + r.H/2
}

// RectOverlap reports whether two rectangles overlap.
// Comparisons are strict, so rectangles sharing only an edge do not overlap.
func RectOverlap(a, b Rect) bool {
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap checks if two circles overlap (center distance < r1+r2).
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
