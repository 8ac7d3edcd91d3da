package lens

import (
	"math"

	"github.com/gogpu/gargantua/surface"
)

// FXAA samples src at suv with fast approximate anti-aliasing.
//
// The four diagonal neighbors and the center give a luminance gradient; the
// edge runs perpendicular to it. Two blends are taken along the edge, a
// narrow one from the inner thirds and a wide one that also reaches the
// span ends. The wide blend is kept only when its luminance stays inside
// the range of the five taps, so sharp edges left by the distortion are not
// smeared a second time.
func FXAA(src Sampler, suv Vec2, cfg *Config) surface.Color {
	du, dv := src.TexelSize()

	nw := src.Sample(suv.X-du, suv.Y-dv)
	ne := src.Sample(suv.X+du, suv.Y-dv)
	sw := src.Sample(suv.X-du, suv.Y+dv)
	se := src.Sample(suv.X+du, suv.Y+dv)
	m := src.Sample(suv.X, suv.Y)

	lNW, lNE, lSW, lSE, lM := nw.Luminance(), ne.Luminance(), sw.Luminance(), se.Luminance(), m.Luminance()
	lMin := math.Min(lM, math.Min(math.Min(lNW, lNE), math.Min(lSW, lSE)))
	lMax := math.Max(lM, math.Max(math.Max(lNW, lNE), math.Max(lSW, lSE)))

	dirX := -((lNW + lNE) - (lSW + lSE))
	dirY := (lNW + lSW) - (lNE + lSE)
	if dirX == 0 && dirY == 0 {
		return m
	}

	reduce := math.Max((lNW+lNE+lSW+lSE)*0.25*cfg.FXAAReduceMul, cfg.FXAAReduceMin)
	rcpMin := 1 / (math.Min(math.Abs(dirX), math.Abs(dirY)) + reduce)
	dirX = clampSpan(dirX*rcpMin, cfg.FXAASpanMax) * du
	dirY = clampSpan(dirY*rcpMin, cfg.FXAASpanMax) * dv

	at := func(k float64) surface.Color {
		return src.Sample(suv.X+dirX*k, suv.Y+dirY*k)
	}
	narrow := at(1.0/3 - 0.5).Add(at(2.0/3 - 0.5)).Scale(0.5)
	wide := narrow.Scale(0.5).Add(at(-0.5).Add(at(0.5)).Scale(0.25))

	if l := wide.Luminance(); l < lMin || l > lMax {
		return narrow
	}
	return wide
}

func clampSpan(v, span float64) float64 {
	return math.Max(-span, math.Min(span, v))
}
