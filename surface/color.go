package surface

import (
	"image/color"
	"math"
)

// Color is a floating-point RGBA color.
//
// Channels are nominally in [0, 1]. Post-process stages may push RGB above 1
// (bloom, glow) before tone mapping brings them back into range, so Color
// does not clamp on arithmetic. Alpha is carried through untouched.
type Color struct {
	R, G, B, A float64
}

// Rec. 601 luma weights, the ones used by FXAA.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Transparent = Color{}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Gray creates an opaque gray of intensity v.
func Gray(v float64) Color {
	return Color{R: v, G: v, B: v, A: 1}
}

// FromNRGBA converts an 8-bit straight-alpha color.
func FromNRGBA(c color.NRGBA) Color {
	return Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// NRGBA converts to an 8-bit straight-alpha color, clamping and rounding
// each channel.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Add returns the channel-wise sum of the RGB components. Alpha is kept from c.
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B, A: c.A}
}

// Scale multiplies the RGB components by k.
func (c Color) Scale(k float64) Color {
	return Color{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A}
}

// Mul returns the channel-wise product of the RGB components.
func (c Color) Mul(o Color) Color {
	return Color{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B, A: c.A}
}

// Map applies fn to each RGB component.
func (c Color) Map(fn func(float64) float64) Color {
	return Color{R: fn(c.R), G: fn(c.G), B: fn(c.B), A: c.A}
}

// Lerp performs linear interpolation between two colors.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Luminance returns the perceptual brightness of the RGB components.
func (c Color) Luminance() float64 {
	return c.R*lumaR + c.G*lumaG + c.B*lumaB
}

// Clamp restricts every channel to [0, 1].
func (c Color) Clamp() Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

// IsBlack reports whether all RGB components are exactly zero.
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

func clamp01(x float64) float64 {
	switch {
	case x < 0 || math.IsNaN(x):
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

func to8(x float64) uint8 {
	return uint8(math.Round(clamp01(x) * 255))
}
