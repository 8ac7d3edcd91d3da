package raster

import "image/color"

// maxSpan bounds the major-axis length handled in one pass; longer lines
// are split so the 16.16 accumulator keeps its precision.
const maxSpan = FDot6(511 << fdot6Shift)

// hairline draws an anti-aliased line between two 26.6 endpoints.
func (c *Canvas) hairline(x0, y0, x1, y1 FDot6, col color.NRGBA) {
	dx := abs6(x1 - x0)
	dy := abs6(y1 - y0)
	if dx > maxSpan || dy > maxSpan {
		hx := (x0 >> 1) + (x1 >> 1)
		hy := (y0 >> 1) + (y1 >> 1)
		c.hairline(x0, y0, hx, hy, col)
		c.hairline(hx, hy, x1, y1, col)
		return
	}

	switch {
	case dx > dy:
		c.horish(x0, y0, x1, y1, col)
	case dy > 0:
		c.vertish(x0, y0, x1, y1, col)
	default:
		// Zero length: a single dot.
		c.Blend(fdot6Floor(x0), fdot6Floor(y0), col, 255)
	}
}

// horish walks x and splits coverage between two vertically adjacent
// pixels by the fractional y of the line.
func (c *Canvas) horish(x0, y0, x1, y1 FDot6, col color.NRGBA) {
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	istart := fdot6Floor(x0)
	istop := fdot6Ceil(x1)

	slope := fdot16Div(y1-y0, x1-x0)
	fy := fdot6ToFDot16(y0)
	fy += FDot16((int32(32-(x0&fdot6Mask)) * int32(slope)) >> fdot6Shift)
	fy += fdot16Half

	scaleStart, scaleStop := endScales(x0, x1, istart, istop)

	if scaleStart < fdot6One && istart < istop {
		c.pixelY(istart, fy, smallScale(255, scaleStart), col)
		fy += slope
		istart++
	}
	full := istop - istart
	if scaleStop > 0 {
		full--
	}
	for x := istart; x < istart+full; x++ {
		c.pixelY(x, fy, 255, col)
		fy += slope
	}
	if scaleStop > 0 && istart+full < istop {
		c.pixelY(istop-1, fy, smallScale(255, scaleStop), col)
	}
}

// vertish walks y and splits coverage between two horizontally adjacent
// pixels by the fractional x of the line.
func (c *Canvas) vertish(x0, y0, x1, y1 FDot6, col color.NRGBA) {
	if y0 > y1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	istart := fdot6Floor(y0)
	istop := fdot6Ceil(y1)

	slope := fdot16Div(x1-x0, y1-y0)
	fx := fdot6ToFDot16(x0)
	fx += FDot16((int32(32-(y0&fdot6Mask)) * int32(slope)) >> fdot6Shift)
	fx += fdot16Half

	scaleStart, scaleStop := endScales(y0, y1, istart, istop)

	if scaleStart < fdot6One && istart < istop {
		c.pixelX(fx, istart, smallScale(255, scaleStart), col)
		fx += slope
		istart++
	}
	full := istop - istart
	if scaleStop > 0 {
		full--
	}
	for y := istart; y < istart+full; y++ {
		c.pixelX(fx, y, 255, col)
		fx += slope
	}
	if scaleStop > 0 && istart+full < istop {
		c.pixelX(fx, istop-1, smallScale(255, scaleStop), col)
	}
}

// endScales returns the partial coverage of the first and last pixel along
// the major axis.
func endScales(a0, a1 FDot6, istart, istop int) (start, stop FDot6) {
	if istop-istart == 1 {
		return a1 - a0, 0
	}
	return fdot6One - (a0 & fdot6Mask), a1 & fdot6Mask
}

func (c *Canvas) pixelY(x int, fy FDot16, alpha uint8, col color.NRGBA) {
	if alpha == 0 {
		return
	}
	y := fdot16Floor(fy)
	frac := fracAlpha(fy)
	c.blitAntiV2(x, y-1, mulDiv255(alpha, 255-frac), mulDiv255(alpha, frac), col)
}

func (c *Canvas) pixelX(fx FDot16, y int, alpha uint8, col color.NRGBA) {
	if alpha == 0 {
		return
	}
	x := fdot16Floor(fx)
	frac := fracAlpha(fx)
	c.blitAntiH2(x-1, y, mulDiv255(alpha, 255-frac), mulDiv255(alpha, frac), col)
}
