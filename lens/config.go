package lens

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gargantua/surface"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("lens: invalid config")

// Config holds every tuning constant of the lens pass. All radii are
// multiples of the black hole's apparent radius. The values encode visual
// design choices rather than physical law, so they are exposed for tuning;
// a Config is read-only while a pass runs.
type Config struct {
	// SkipFactor: pixels closer than SkipFactor·r are not deflected.
	SkipFactor float64
	// Softening keeps the r²/(d²+Softening·r) deflection finite.
	Softening float64
	// PhotonSphere is the center of the strong-field wrap bump.
	PhotonSphere float64
	// WrapOuter bounds the strong-field region (r, WrapOuter·r).
	WrapOuter float64
	// WrapGain and WrapFalloff shape 1 + WrapGain·exp(-(d-PhotonSphere·r)·WrapFalloff).
	WrapGain    float64
	WrapFalloff float64
	// Strength scales the final deflection.
	Strength float64

	// FXAA edge-search tuning, in texels.
	FXAASpanMax   float64
	FXAAReduceMul float64
	FXAAReduceMin float64

	// Bloom samples a ring of BloomSamples points BloomRadius (normalized
	// height units) around the sampling point.
	BloomSamples   int
	BloomRadius    float64
	BloomThreshold float64
	BloomGain      float64

	// HorizonScale·r is the event-horizon shadow radius; the shadow fades
	// out by ShadowEdge times that.
	HorizonScale float64
	ShadowEdge   float64

	// Warm glow just outside the horizon, for d in (r, GlowOuter·r).
	GlowOuter   float64
	GlowFalloff float64
	GlowGain    float64
	GlowColor   surface.Color

	// FloorScale·r is forced to pure black.
	FloorScale float64

	// Chromatic aberration band (AberrationInner·r, AberrationOuter·r).
	AberrationInner    float64
	AberrationOuter    float64
	AberrationStrength float64

	// Local contrast exponent 1/(1+ContrastGain·exp(-ContrastFalloff·d)).
	ContrastGain    float64
	ContrastFalloff float64

	// Display encoding: pow(c, 1/Gamma)·Exposure.
	Gamma    float64
	Exposure float64
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		SkipFactor:   0.1,
		Softening:    0.1,
		PhotonSphere: 1.5,
		WrapOuter:    3.0,
		WrapGain:     0.5,
		WrapFalloff:  5,
		Strength:     1.5,

		FXAASpanMax:   8,
		FXAAReduceMul: 1.0 / 8,
		FXAAReduceMin: 1.0 / 128,

		BloomSamples:   12,
		BloomRadius:    0.004,
		BloomThreshold: 0.4,
		BloomGain:      0.5,

		HorizonScale: 0.9,
		ShadowEdge:   1.3,

		GlowOuter:   2.5,
		GlowFalloff: 4,
		GlowGain:    0.2,
		GlowColor:   surface.RGB(1.0, 0.6, 0.3),

		FloorScale: 0.9,

		AberrationInner:    0.9,
		AberrationOuter:    1.5,
		AberrationStrength: 0.15,

		ContrastGain:    0.3,
		ContrastFalloff: 5,

		Gamma:    2.2,
		Exposure: 1.2,
	}
}

// Validate reports the first value that would make the pass produce
// non-finite output.
func (c *Config) Validate() error {
	finite := []struct {
		name string
		v    float64
	}{
		{"SkipFactor", c.SkipFactor},
		{"Softening", c.Softening},
		{"PhotonSphere", c.PhotonSphere},
		{"WrapOuter", c.WrapOuter},
		{"WrapGain", c.WrapGain},
		{"WrapFalloff", c.WrapFalloff},
		{"Strength", c.Strength},
		{"FXAASpanMax", c.FXAASpanMax},
		{"FXAAReduceMul", c.FXAAReduceMul},
		{"BloomRadius", c.BloomRadius},
		{"BloomThreshold", c.BloomThreshold},
		{"BloomGain", c.BloomGain},
		{"HorizonScale", c.HorizonScale},
		{"GlowOuter", c.GlowOuter},
		{"GlowFalloff", c.GlowFalloff},
		{"GlowGain", c.GlowGain},
		{"FloorScale", c.FloorScale},
		{"AberrationInner", c.AberrationInner},
		{"AberrationOuter", c.AberrationOuter},
		{"AberrationStrength", c.AberrationStrength},
		{"ContrastGain", c.ContrastGain},
		{"ContrastFalloff", c.ContrastFalloff},
		{"Exposure", c.Exposure},
	}
	for _, f := range finite {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return fmt.Errorf("%w: %s = %v must be finite and non-negative", ErrInvalidConfig, f.name, f.v)
		}
	}

	switch {
	case !(c.Softening > 0):
		return fmt.Errorf("%w: Softening must be positive", ErrInvalidConfig)
	case !(c.FXAAReduceMin > 0) || math.IsInf(c.FXAAReduceMin, 0):
		return fmt.Errorf("%w: FXAAReduceMin must be positive", ErrInvalidConfig)
	case c.BloomSamples < 0:
		return fmt.Errorf("%w: BloomSamples = %d", ErrInvalidConfig, c.BloomSamples)
	case !(c.ShadowEdge >= 1) || math.IsInf(c.ShadowEdge, 0):
		return fmt.Errorf("%w: ShadowEdge = %v must be at least 1", ErrInvalidConfig, c.ShadowEdge)
	case c.AberrationOuter < c.AberrationInner:
		return fmt.Errorf("%w: aberration band is inverted", ErrInvalidConfig)
	case !(c.Gamma > 0) || math.IsInf(c.Gamma, 0):
		return fmt.Errorf("%w: Gamma = %v must be positive", ErrInvalidConfig, c.Gamma)
	}
	return nil
}
