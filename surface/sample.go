package surface

import "math"

// TexelSize returns the size of one pixel in normalized coordinates.
func (p *Pixmap) TexelSize() (du, dv float64) {
	if p.width == 0 || p.height == 0 {
		return 0, 0
	}
	return 1 / float64(p.width), 1 / float64(p.height)
}

// Sample performs bilinear interpolation at normalized coordinates (u, v).
// u and v are in the range [0.0, 1.0] where (0,0) is top-left and (1,1) is
// bottom-right. Out-of-bounds coordinates are clamped to the edge, which
// matches a clamp-to-edge texture with linear filtering.
func (p *Pixmap) Sample(u, v float64) Color {
	w, h := p.width, p.height
	if w == 0 || h == 0 {
		return Transparent
	}
	if math.IsNaN(u) || math.IsNaN(v) {
		return Transparent
	}

	// Continuous pixel coordinates with texel centers at +0.5.
	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5

	// Far out-of-range coordinates collapse onto the edge texel.
	fx = math.Max(-1, math.Min(fx, float64(w)))
	fy = math.Max(-1, math.Min(fy, float64(h)))

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := clamp(x0+1, 0, w-1)
	y1 := clamp(y0+1, 0, h-1)
	x0 = clamp(x0, 0, w-1)
	y0 = clamp(y0, 0, h-1)

	i00 := (y0*w + x0) * 4
	i10 := (y0*w + x1) * 4
	i01 := (y1*w + x0) * 4
	i11 := (y1*w + x1) * 4

	d := p.data
	ch := func(o int) float64 {
		return lerp2D(float64(d[i00+o]), float64(d[i10+o]), float64(d[i01+o]), float64(d[i11+o]), tx, ty) / 255
	}
	return Color{R: ch(0), G: ch(1), B: ch(2), A: ch(3)}
}

// lerp2D performs bilinear interpolation between 4 values.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	top := v00 + (v10-v00)*tx
	bottom := v01 + (v11-v01)*tx
	return top + (bottom-top)*ty
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
