package scene

import (
	"math"
	"math/rand"
)

// Star is a fixed background point.
type Star struct {
	X, Y, Z    float64
	Brightness float64
}

// NewStars scatters n stars on a spherical shell between inner and outer.
// Azimuth and polar angle are drawn uniformly, which clusters stars toward
// the poles; brightness is uniform in [0.5, 1].
func NewStars(rng *rand.Rand, n int, inner, outer float64) []Star {
	if n <= 0 {
		return nil
	}
	stars := make([]Star, n)
	for i := range stars {
		theta := rng.Float64() * 2 * math.Pi
		phi := rng.Float64() * math.Pi
		d := inner + rng.Float64()*(outer-inner)
		stars[i] = Star{
			X:          d * math.Sin(phi) * math.Cos(theta),
			Y:          d * math.Cos(phi),
			Z:          d * math.Sin(phi) * math.Sin(theta),
			Brightness: 0.5 + rng.Float64()*0.5,
		}
	}
	return stars
}
