package shading

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Ramp is a three-anchor temperature gradient keyed by the normalized disk
// radius t: 0 is the innermost, hottest edge and 1 the outermost, coolest.
// Two linear segments meet at Break.
type Ramp struct {
	Hot   colorful.Color
	Mid   colorful.Color
	Cold  colorful.Color
	Break float64
}

// Anchor colors of the default ramp. They follow a blackbody sequence from
// roughly 10,000K through solar temperature down to a red-dwarf glow.
const (
	HotHex  = "#fffff0"
	MidHex  = "#ffc864"
	ColdHex = "#c8501e"
)

// DefaultBreak is the t at which the hot-to-mid segment hands over to the
// mid-to-cold segment.
const DefaultBreak = 0.3

// DefaultRamp is the process-wide default gradient.
var DefaultRamp = Ramp{
	Hot:   colorful.Color{R: 255.0 / 255, G: 255.0 / 255, B: 240.0 / 255},
	Mid:   colorful.Color{R: 255.0 / 255, G: 200.0 / 255, B: 100.0 / 255},
	Cold:  colorful.Color{R: 200.0 / 255, G: 80.0 / 255, B: 30.0 / 255},
	Break: DefaultBreak,
}

// NewRamp builds a ramp from three hex color strings using DefaultBreak.
func NewRamp(hot, mid, cold string) (Ramp, error) {
	h, err := colorful.Hex(hot)
	if err != nil {
		return Ramp{}, fmt.Errorf("shading: hot anchor %q: %w", hot, err)
	}
	m, err := colorful.Hex(mid)
	if err != nil {
		return Ramp{}, fmt.Errorf("shading: mid anchor %q: %w", mid, err)
	}
	c, err := colorful.Hex(cold)
	if err != nil {
		return Ramp{}, fmt.Errorf("shading: cold anchor %q: %w", cold, err)
	}
	return Ramp{Hot: h, Mid: m, Cold: c, Break: DefaultBreak}, nil
}

// At returns the undistorted ramp color at t. t is clamped to [0, 1].
func (r Ramp) At(t float64) colorful.Color {
	switch {
	case t <= 0:
		return r.Hot
	case t >= 1:
		return r.Cold
	case t < r.Break:
		return r.Hot.BlendRgb(r.Mid, t/r.Break)
	default:
		span := 1 - r.Break
		return r.Mid.BlendRgb(r.Cold, (t-r.Break)/span)
	}
}
