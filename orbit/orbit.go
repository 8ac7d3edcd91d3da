// Package orbit holds the kinematic state of orbiting disk material.
//
// Each Element circles the black hole in the equatorial plane at a fixed
// radius with Keplerian angular speed k/sqrt(radius). Advance moves every
// element independently, so a slice may be split across goroutines freely.
package orbit

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// TwoPi is one full revolution in radians.
const TwoPi = 2 * math.Pi

// ErrInvalidDisk is returned by NewDisk for impossible disk geometry.
var ErrInvalidDisk = errors.New("orbit: invalid disk parameters")

// Element is one orbiting particle or ring sample.
type Element struct {
	// Angle is the orbital phase in [0, 2π).
	Angle float64
	// Radius is the orbital distance from the center. Fixed at creation.
	Radius float64
	// Speed is the angular speed in radians per second.
	Speed float64
	// YOffset is a small vertical jitter giving the disk visual thickness.
	YOffset float64
}

// DiskParams describes how NewDisk populates a disk.
type DiskParams struct {
	Count  int
	Inner  float64
	Outer  float64
	K      float64 // Keplerian constant in AngularSpeed
	Jitter float64 // maximum |YOffset|
}

// DefaultDisk returns the parameters of the default accretion disk. The inner
// edge sits at 2.5 Schwarzschild radii, just inside the innermost stable
// circular orbit of 3.
func DefaultDisk() DiskParams {
	return DiskParams{Count: 2000, Inner: 2.5, Outer: 9.0, K: 2.0, Jitter: 0.05}
}

// Validate reports whether p describes a usable disk.
func (p DiskParams) Validate() error {
	switch {
	case p.Count < 0:
		return fmt.Errorf("%w: count %d", ErrInvalidDisk, p.Count)
	case !(p.Inner > 0):
		return fmt.Errorf("%w: inner radius %v must be positive", ErrInvalidDisk, p.Inner)
	case !(p.Inner < p.Outer) || math.IsInf(p.Outer, 0):
		return fmt.Errorf("%w: inner radius %v must be below outer radius %v", ErrInvalidDisk, p.Inner, p.Outer)
	case math.IsNaN(p.K) || math.IsInf(p.K, 0):
		return fmt.Errorf("%w: Keplerian constant %v", ErrInvalidDisk, p.K)
	case !(p.Jitter >= 0):
		return fmt.Errorf("%w: jitter %v", ErrInvalidDisk, p.Jitter)
	}
	return nil
}

// AngularSpeed returns the Keplerian angular speed k/sqrt(radius).
func AngularSpeed(k, radius float64) float64 {
	return k / math.Sqrt(radius)
}

// NewDisk creates p.Count elements. Radii are drawn as inner + u²·(outer-inner)
// for uniform u, which crowds material toward the inner edge where it piles up
// before plunging in.
func NewDisk(rng *rand.Rand, p DiskParams) ([]Element, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	elems := make([]Element, p.Count)
	for i := range elems {
		u := rng.Float64()
		r := p.Inner + u*u*(p.Outer-p.Inner)
		elems[i] = Element{
			Angle:   rng.Float64() * TwoPi,
			Radius:  r,
			Speed:   AngularSpeed(p.K, r),
			YOffset: (rng.Float64()*2 - 1) * p.Jitter,
		}
	}
	return elems, nil
}

// Advance moves every element forward by dt seconds and wraps its angle into
// [0, 2π). A negative dt runs the orbit backwards. dt == 0 leaves the slice
// untouched. Advance does not allocate.
func Advance(elems []Element, dt float64) {
	if dt == 0 {
		return
	}
	for i := range elems {
		e := &elems[i]
		e.Angle = Wrap(e.Angle + e.Speed*dt)
	}
}

// Wrap maps an angle into [0, 2π).
func Wrap(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	if a >= TwoPi {
		// a was a tiny negative number and a+2π rounded up.
		a = 0
	}
	return a
}

// Position returns the element's world position. The disk lies in the XZ
// plane with Y up.
func (e Element) Position() (x, y, z float64) {
	s, c := math.Sincos(e.Angle)
	return c * e.Radius, e.YOffset, s * e.Radius
}

// T returns the element's normalized radius within [inner, outer], the ramp
// parameter used for shading.
func (e Element) T(inner, outer float64) float64 {
	return (e.Radius - inner) / (outer - inner)
}
