package shading

import "math"

// Range is a closed interval used to clamp derived factors.
type Range struct {
	Lo, Hi float64
}

// Clamp restricts x to [r.Lo, r.Hi]. NaN maps to r.Lo.
func (r Range) Clamp(x float64) float64 {
	switch {
	case x < r.Lo || math.IsNaN(x):
		return r.Lo
	case x > r.Hi:
		return r.Hi
	default:
		return x
	}
}

// Empirical Doppler clamps. Disk material uses the wider range; lensed
// images of the far side of the disk use the narrower one.
var (
	DiskRange   = Range{Lo: 0.4, Hi: 1.8}
	LensedRange = Range{Lo: 0.6, Hi: 1.5}
)

// Epsilon softens the Doppler denominator as β·cosθ approaches 1.
const Epsilon = 0.01

// LensedBeta is the orbital speed fraction used for lensed ring images.
const LensedBeta = 0.25

// innerBeta is the speed fraction at the inner disk edge.
const innerBeta = 0.4

// Doppler returns the relativistic Doppler factor
//
//	D = sqrt((1 + β·cosθ) / (1 - β·cosθ + ε))
//
// clamped to r. cosTheta is the cosine of the angle between the emitter's
// velocity and the line of sight; positive values approach the observer.
// The result is always finite.
func Doppler(beta, cosTheta float64, r Range) float64 {
	bc := beta * cosTheta
	num := 1 + bc
	den := 1 - bc + Epsilon
	if den <= 0 {
		return r.Hi
	}
	if num <= 0 {
		return r.Lo
	}
	return r.Clamp(math.Sqrt(num / den))
}

// OrbitalBeta returns the dimensionless orbital speed β of material at
// radius, falling off as 1/sqrt(radius) from its value at the inner edge.
func OrbitalBeta(radius, inner float64) float64 {
	if radius <= 0 || inner <= 0 {
		return 0
	}
	return innerBeta / math.Sqrt(radius/inner)
}
