package raster

import (
	"image/color"
	"math"

	"github.com/gogpu/gargantua/surface"
)

// Canvas draws into the memory of a surface.Pixmap.
// A Canvas is not safe for concurrent use.
type Canvas struct {
	data   []uint8
	width  int
	height int
}

// NewCanvas wraps p. Drawing writes straight into p.
func NewCanvas(p *surface.Pixmap) *Canvas {
	return &Canvas{data: p.Data(), width: p.Width(), height: p.Height()}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Point blends a one-pixel dot whose center is nearest (x, y).
func (c *Canvas) Point(x, y float64, col color.NRGBA) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	c.Blend(int(math.Floor(x)), int(math.Floor(y)), col, 255)
}

// Line draws an anti-aliased one-pixel line from (x0, y0) to (x1, y1).
// The color's alpha scales the line's coverage. Pixel centers sit at
// half-integer coordinates.
func (c *Canvas) Line(x0, y0, x1, y1 float64, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	x0, y0, x1, y1, ok := clipLine(x0, y0, x1, y1,
		-1, -1, float64(c.width)+1, float64(c.height)+1)
	if !ok {
		return
	}
	c.hairline(FloatToFDot6(x0), FloatToFDot6(y0), FloatToFDot6(x1), FloatToFDot6(y1), col)
}

// Blend composites col over the pixel at (x, y), scaled by coverage.
// Out-of-bounds pixels are ignored.
func (c *Canvas) Blend(x, y int, col color.NRGBA, coverage uint8) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	sa := mulDiv255(col.A, coverage)
	if sa == 0 {
		return
	}
	i := (y*c.width + x) * 4
	d := c.data[i : i+4 : i+4]

	if sa == 255 {
		d[0], d[1], d[2], d[3] = col.R, col.G, col.B, 255
		return
	}

	inv := 255 - sa
	da := d[3]
	if da == 255 {
		d[0] = mulDiv255(col.R, sa) + mulDiv255(d[0], inv)
		d[1] = mulDiv255(col.G, sa) + mulDiv255(d[1], inv)
		d[2] = mulDiv255(col.B, sa) + mulDiv255(d[2], inv)
		return
	}

	// General straight-alpha source-over.
	dw := uint32(mulDiv255(da, inv))
	oa := uint32(sa) + dw
	if oa == 0 {
		return
	}
	mix := func(s, dc uint8) uint8 {
		return uint8((uint32(s)*uint32(sa) + uint32(dc)*dw + oa/2) / oa)
	}
	d[0] = mix(col.R, d[0])
	d[1] = mix(col.G, d[1])
	d[2] = mix(col.B, d[2])
	d[3] = uint8(oa)
}

func (c *Canvas) blitAntiV2(x, y int, upper, lower uint8, col color.NRGBA) {
	c.Blend(x, y, col, upper)
	c.Blend(x, y+1, col, lower)
}

func (c *Canvas) blitAntiH2(x, y int, left, right uint8, col color.NRGBA) {
	c.Blend(x, y, col, left)
	c.Blend(x+1, y, col, right)
}
