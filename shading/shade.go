package shading

import (
	"image/color"
	"math"
)

// Shift holds the magnitudes of the approximate chromatic Doppler shift, in
// 0..255 channel units per unit of shift. Approach and Recede scale the raw
// |doppler-1| before it is applied.
type Shift struct {
	// Blueshift, doppler > 1.
	BlueGain, GreenGain, RedLoss, Approach float64
	// Redshift, doppler < 1.
	RedGain, GreenLoss, BlueLoss, Recede float64
}

// DefaultShift is the tuned chromatic shift.
var DefaultShift = Shift{
	BlueGain: 60, GreenGain: 30, RedLoss: 20, Approach: 0.8,
	RedGain: 40, GreenLoss: 30, BlueLoss: 60, Recede: 1.2,
}

// Beaming bounds the relativistic intensity factor doppler³.
var Beaming = Range{Lo: 0.3, Hi: 2.5}

// Model combines a temperature ramp with Doppler beaming and shift.
// The zero value is not usable; start from DefaultModel.
type Model struct {
	Ramp  Ramp
	Shift Shift
	Beam  Range
}

// DefaultModel returns the model used when nothing is overridden.
func DefaultModel() Model {
	return Model{Ramp: DefaultRamp, Shift: DefaultShift, Beam: Beaming}
}

// Shade colors disk material at normalized radius t seen with Doppler
// factor doppler, using DefaultModel.
func Shade(t, doppler float64) color.NRGBA {
	m := DefaultModel()
	return m.Shade(t, doppler)
}

// Shade colors disk material at normalized radius t seen with Doppler
// factor doppler.
//
// The base color comes from the ramp. Approaching material (doppler > 1)
// shifts toward blue and receding material toward red, each channel clamped
// to [0, 255]. The result is then scaled by the beaming intensity doppler³,
// clamped to m.Beam, and clamped again. Shade is pure.
func (m *Model) Shade(t, doppler float64) color.NRGBA {
	base := m.Ramp.At(t)
	r, g, b := base.R*255, base.G*255, base.B*255

	intensity := m.Beam.Clamp(doppler * doppler * doppler)

	if doppler > 1 {
		s := (doppler - 1) * m.Shift.Approach
		b = clamp255(b + m.Shift.BlueGain*s)
		g = clamp255(g + m.Shift.GreenGain*s)
		r = clamp255(r - m.Shift.RedLoss*s)
	} else {
		s := (1 - doppler) * m.Shift.Recede
		r = clamp255(r + m.Shift.RedGain*s)
		g = clamp255(g - m.Shift.GreenLoss*s)
		b = clamp255(b - m.Shift.BlueLoss*s)
	}

	return color.NRGBA{
		R: round8(r * intensity),
		G: round8(g * intensity),
		B: round8(b * intensity),
		A: 255,
	}
}

func clamp255(x float64) float64 {
	switch {
	case x < 0 || math.IsNaN(x):
		return 0
	case x > 255:
		return 255
	default:
		return x
	}
}

func round8(x float64) uint8 {
	return uint8(math.Round(clamp255(x)))
}
