package physics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"shared vertical edge", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, false},
		{"shared horizontal edge", Rect{0, 0, 10, 10}, Rect{0, 10, 10, 10}, false},
		{"shared corner", Rect{0, 0, 10, 10}, Rect{10, 10, 10, 10}, false},
		{"partial overlap", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, true},
		{"contained", Rect{0, 0, 100, 100}, Rect{40, 40, 4, 18}, true},
		{"apart", Rect{0, 0, 10, 10}, Rect{30, 30, 5, 5}, false},
		{"sub-pixel overlap", Rect{0, 0, 10, 10}, Rect{9.999, 0, 10, 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RectOverlap(tt.a, tt.b))
		})
	}
}

func TestRectOverlap_Symmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for i := 0; i < 5000; i++ {
		a := Rect{rng.Float64() * 100, rng.Float64() * 100, rng.Float64() * 40, rng.Float64() * 40}
		b := Rect{rng.Float64() * 100, rng.Float64() * 100, rng.Float64() * 40, rng.Float64() * 40}
		assert.Equal(t, RectOverlap(a, b), RectOverlap(b, a), "a=%+v b=%+v", a, b)
	}
}

func TestCirclesOverlap(t *testing.T) {
	assert.True(t, CirclesOverlap(0, 0, 5, 9, 0, 5))
	assert.False(t, CirclesOverlap(0, 0, 5, 10, 0, 5), "touching circles do not overlap")
	assert.False(t, CirclesOverlap(0, 0, 1, 3, 4, 1))
}

func TestRectCenter(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}
	assert.Equal(t, 25.0, r.CenterX())
	assert.Equal(t, 40.0, r.CenterY())
}

func TestClampedNormalRandom_StaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tests := []struct {
		name                string
		mean, std, min, max float64
	}{
		{"centered", 400, 200, 0, 800},
		{"narrow window", 400, 200, 395, 405},
		{"mean outside range", -50, 10, 0, 20},
		{"zero std", 10, 0, 0, 5},
		{"inverted bounds", 50, 20, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.min, tt.max
			if lo > hi {
				lo, hi = hi, lo
			}
			for i := 0; i < 10000; i++ {
				v := ClampedNormalRandom(rng, tt.mean, tt.std, tt.min, tt.max)
				if v < lo || v > hi {
					t.Fatalf("trial %d: %v outside [%v, %v]", i, v, lo, hi)
				}
			}
		})
	}
}

func TestNormalRandom_Moments(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n = 20000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		v := NormalRandom(rng, 100, 15)
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	assert.InDelta(t, 100, mean, 1.0)
	assert.InDelta(t, 225, variance, 15)
}
