package lens

import (
	"math"

	"github.com/gogpu/gargantua/surface"
)

// Sampler is a read-only view of the offscreen color buffer.
// *surface.Pixmap satisfies it.
type Sampler interface {
	// Sample returns the filtered color at normalized coordinates (u, v).
	Sample(u, v float64) surface.Color
	// TexelSize returns the size of one texel in normalized coordinates.
	TexelSize() (du, dv float64)
}

var opaqueBlack = surface.Color{A: 1}

// Shade computes the final color of the output pixel at uv. It distorts uv,
// then applies anti-aliasing, bloom, the horizon shadow, the inner glow,
// the hard floor, chromatic aberration, local contrast, tone mapping and
// gamma, in that order. Distances are measured from the undistorted uv so
// the shadow stays circular on screen. The result is opaque and clamped
// to [0,1].
func Shade(uv Vec2, src Sampler, st State, aspect float64, cfg *Config) surface.Color {
	r := st.Radius
	d := Dist(uv, st.Center, aspect)

	// Below the floor nothing upstream can matter.
	if d < cfg.FloorScale*r {
		return opaqueBlack
	}

	suv := Distort(uv, st.Center, r, aspect, cfg)
	c := FXAA(src, suv, cfg)
	c = c.Add(Bloom(src, suv, aspect, cfg))

	shadow := ShadowFactor(d, r, cfg)
	c = c.Scale(shadow)
	c = c.Add(Glow(d, r, cfg).Scale(shadow))

	c = Aberrate(c, d, r, cfg)
	c = Contrast(c, d, cfg)
	c = c.Map(Reinhard)
	c = c.Map(func(v float64) float64 { return GammaCorrect(v, cfg) })

	c = c.Clamp()
	c.A = 1
	return c
}

// Bloom returns the light scattered onto suv from bright samples on a ring
// of cfg.BloomRadius around it. Each sample brighter than the threshold
// contributes sample·(lum-threshold)·gain; the sum is averaged over the
// whole ring. The X offset is divided by aspect so the ring is circular.
func Bloom(src Sampler, suv Vec2, aspect float64, cfg *Config) surface.Color {
	n := cfg.BloomSamples
	if n <= 0 {
		return surface.Transparent
	}
	if aspect <= 0 {
		aspect = 1
	}

	var acc surface.Color
	for i := 0; i < n; i++ {
		a := TwoPi * float64(i) / float64(n)
		s := src.Sample(suv.X+math.Cos(a)*cfg.BloomRadius/aspect, suv.Y+math.Sin(a)*cfg.BloomRadius)
		if lum := s.Luminance(); lum > cfg.BloomThreshold {
			acc = acc.Add(s.Scale((lum - cfg.BloomThreshold) * cfg.BloomGain))
		}
	}
	return acc.Scale(1 / float64(n))
}

// ShadowFactor is the light transmitted at distance d: 0 inside the event
// horizon (HorizonScale·r), rising along a squared smoothstep to 1 at
// ShadowEdge times the horizon.
func ShadowFactor(d, r float64, cfg *Config) float64 {
	eh := cfg.HorizonScale * r
	if d < eh {
		return 0
	}
	s := Smoothstep(eh, eh*cfg.ShadowEdge, d)
	return s * s
}

// Glow is the warm halo just outside the horizon, before shadow scaling.
func Glow(d, r float64, cfg *Config) surface.Color {
	if d <= r || d >= cfg.GlowOuter*r {
		return surface.Transparent
	}
	k := math.Exp(-(d-r)*cfg.GlowFalloff) * cfg.GlowGain
	return cfg.GlowColor.Scale(k)
}

// Aberrate pushes red up and blue down inside the aberration band. The
// shift fades from AberrationStrength at the inner edge to nothing at the
// outer edge.
func Aberrate(c surface.Color, d, r float64, cfg *Config) surface.Color {
	lo, hi := cfg.AberrationInner*r, cfg.AberrationOuter*r
	if d <= lo || d >= hi {
		return c
	}
	f := (1 - Smoothstep(lo, hi, d)) * cfg.AberrationStrength
	c.R *= 1 + f
	c.B *= 1 - f
	return c
}

// Contrast raises each channel to 1/(1+gain·exp(-falloff·d)), which
// steepens the response close to the center.
func Contrast(c surface.Color, d float64, cfg *Config) surface.Color {
	e := 1 / (1 + cfg.ContrastGain*math.Exp(-cfg.ContrastFalloff*d))
	return c.Map(func(v float64) float64 {
		if !(v > 0) {
			return 0
		}
		return math.Pow(v, e)
	})
}

// Reinhard maps [0, +Inf) onto [0, 1) with v/(v+1). Inputs large enough
// for the quotient to round to 1, +Inf included, saturate at the largest
// float64 below 1. Negative and NaN inputs map to 0.
func Reinhard(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if t := v / (v + 1); t < 1 {
		return t
	}
	return reinhardMax
}

var reinhardMax = math.Nextafter(1, 0)

// GammaCorrect encodes a tone-mapped value for display:
// pow(v, 1/Gamma)·Exposure. The result is not clamped.
func GammaCorrect(v float64, cfg *Config) float64 {
	if !(v > 0) {
		return 0
	}
	return math.Pow(v, 1/cfg.Gamma) * cfg.Exposure
}

// Smoothstep is the cubic Hermite step between edge0 and edge1. When the
// edges are equal or inverted it degrades to a hard step at edge0.
func Smoothstep(edge0, edge1, x float64) float64 {
	if !(edge1 > edge0) {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	t = math.Max(0, math.Min(1, t))
	return t * t * (3 - 2*t)
}

// TwoPi is 2π.
const TwoPi = 2 * math.Pi
