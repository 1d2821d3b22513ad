package spawn

import (
	"math"
	"math/rand"

	"github.com/tomz197/skyfighter/internal/physics"
	"github.com/tomz197/skyfighter/internal/tuning"
)

// Formation is the layout of a group of enemies within a wave.
type Formation int

const (
	FormationLine     Formation = iota // Evenly spaced horizontal row
	FormationV                         // Leader in front, wings trailing on both sides
	FormationDiamond                   // Four fixed points around the center
	FormationCircle                    // Evenly spaced on a ring
	FormationSquare                    // Grid of ceil(sqrt(n)) columns
	FormationTriangle                  // Rows growing by one member
	FormationScatter                   // Gaussian jitter around the center
	formationCount
)

var formationNames = [...]string{"line", "v", "diamond", "circle", "square", "triangle", "scatter"}

func (f Formation) String() string {
	if f < 0 || f >= formationCount {
		return "unknown"
	}
	return formationNames[f]
}

// Offset is a member position relative to the formation center. Larger Y is
// further down the field.
type Offset struct {
	X, Y float64
}

var diamondPoints = [4]Offset{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Offsets lays out n members.
func (f Formation) Offsets(n int, rng *rand.Rand) []Offset {
	s := tuning.FormationSpacing
	out := make([]Offset, n)

	switch f {
	case FormationLine:
		for i := range out {
			out[i] = Offset{X: (float64(i) - float64(n-1)/2) * s}
		}
	case FormationV:
		for i := 1; i < n; i++ {
			pair := float64((i + 1) / 2)
			side := 1.0
			if i%2 == 1 {
				side = -1
			}
			out[i] = Offset{X: side * pair * s, Y: -pair * s * 0.6}
		}
	case FormationDiamond:
		for i := range out {
			// Extra members repeat the diamond on a wider ring.
			ring := float64(i/4 + 1)
			p := diamondPoints[i%4]
			out[i] = Offset{X: p.X * s * ring, Y: p.Y * s * ring}
		}
	case FormationCircle:
		for i := range out {
			a := 2 * math.Pi * float64(i) / float64(n)
			out[i] = Offset{X: math.Cos(a) * tuning.FormationRadius, Y: math.Sin(a) * tuning.FormationRadius}
		}
	case FormationSquare:
		cols := int(math.Ceil(math.Sqrt(float64(n))))
		for i := range out {
			out[i] = Offset{
				X: (float64(i%cols) - float64(cols-1)/2) * s,
				Y: float64(i/cols) * s,
			}
		}
	case FormationTriangle:
		row, col := 0, 0
		for i := range out {
			out[i] = Offset{X: (float64(col) - float64(row)/2) * s, Y: float64(row) * s}
			col++
			if col > row {
				row++
				col = 0
			}
		}
	default:
		r := 2 * tuning.FormationRadius
		for i := range out {
			out[i] = Offset{
				X: physics.ClampedNormalRandom(rng, 0, s, -r, r),
				Y: physics.ClampedNormalRandom(rng, 0, s/2, -r/2, r/2),
			}
		}
	}
	return out
}
