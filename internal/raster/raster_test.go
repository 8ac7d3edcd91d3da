package raster

import (
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gargantua/surface"
)

var white = color.NRGBA{255, 255, 255, 255}

func blackPixmap(w, h int) *surface.Pixmap {
	p := surface.NewPixmap(w, h)
	p.Clear(surface.Black)
	return p
}

func red(p *surface.Pixmap, x, y int) uint8 {
	return p.NRGBA().NRGBAAt(x, y).R
}

// =============================================================================
// Fixed point
// =============================================================================

func TestFixedPoint(t *testing.T) {
	if got := FloatToFDot6(1.5); got != 96 {
		t.Errorf("FloatToFDot6(1.5) = %d, want 96", got)
	}
	if got := FDot6ToFloat(96); got != 1.5 {
		t.Errorf("FDot6ToFloat(96) = %v, want 1.5", got)
	}
	if got := fdot6Ceil(65); got != 2 {
		t.Errorf("fdot6Ceil(65) = %d, want 2", got)
	}
	if got := fdot16Floor(-1); got != -1 {
		t.Errorf("fdot16Floor(-1) = %d, want -1", got)
	}
	if got := fdot16Div(32, 64); got != fdot16Half {
		t.Errorf("fdot16Div(32, 64) = %d, want %d", got, fdot16Half)
	}
}

func TestMulDiv255(t *testing.T) {
	tests := []struct {
		a, b, want uint8
	}{
		{0, 255, 0},
		{255, 255, 255},
		{255, 128, 128},
		{128, 128, 64},
	}
	for _, tt := range tests {
		if got := mulDiv255(tt.a, tt.b); got != tt.want {
			t.Errorf("mulDiv255(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

// =============================================================================
// Lines
// =============================================================================

func TestLine_HorizontalThroughCenters(t *testing.T) {
	p := blackPixmap(32, 32)
	NewCanvas(p).Line(0.5, 10.5, 20.5, 10.5, white)

	for x := 1; x < 20; x++ {
		if got := red(p, x, 10); got != 255 {
			t.Errorf("pixel (%d,10) = %d, want 255", x, got)
		}
		if got := red(p, x, 9) | red(p, x, 11); got != 0 {
			t.Errorf("neighbors of (%d,10) touched: %d", x, got)
		}
	}
	if got := red(p, 0, 10); got == 0 || got == 255 {
		t.Errorf("start pixel = %d, want partial coverage", got)
	}
	if got := red(p, 25, 10); got != 0 {
		t.Errorf("pixel past the end = %d, want 0", got)
	}
}

func TestLine_VerticalThroughCenters(t *testing.T) {
	p := blackPixmap(16, 16)
	NewCanvas(p).Line(7.5, 2.5, 7.5, 12.5, white)

	for y := 3; y < 12; y++ {
		if got := red(p, 7, y); got != 255 {
			t.Errorf("pixel (7,%d) = %d, want 255", y, got)
		}
		if got := red(p, 6, y) | red(p, 8, y); got != 0 {
			t.Errorf("neighbors of (7,%d) touched: %d", y, got)
		}
	}
}

func TestLine_SplitsBetweenRows(t *testing.T) {
	p := blackPixmap(16, 16)
	NewCanvas(p).Line(0.5, 8, 15.5, 8, white)

	for x := 2; x < 14; x++ {
		a, b := int(red(p, x, 7)), int(red(p, x, 8))
		if a == 0 || b == 0 {
			t.Errorf("column %d = (%d, %d), want both rows lit", x, a, b)
		}
		if d := a - b; d < -2 || d > 2 {
			t.Errorf("column %d = (%d, %d), want an even split", x, a, b)
		}
	}
}

func TestLine_Diagonal(t *testing.T) {
	p := blackPixmap(32, 32)
	NewCanvas(p).Line(2, 3, 28, 20, white)

	for x := 4; x < 26; x++ {
		// Brightest pixel in the column must be near the ideal line.
		best, bestY := uint8(0), -1
		for y := 0; y < 32; y++ {
			if v := red(p, x, y); v > best {
				best, bestY = v, y
			}
		}
		ideal := 3 + (float64(x)+0.5-2)*17/26
		if best == 0 || math.Abs(float64(bestY)+0.5-ideal) > 1.01 {
			t.Errorf("column %d brightest at y=%d (%d), want near %.2f", x, bestY, best, ideal)
		}
	}
	if got := red(p, 30, 2); got != 0 {
		t.Errorf("far pixel = %d, want 0", got)
	}
}

func TestLine_Clipped(t *testing.T) {
	p := blackPixmap(8, 8)
	c := NewCanvas(p)
	// Extends far past the canvas on both sides.
	c.Line(-1e6, 4.5, 1e6, 4.5, white)
	for x := 0; x < 8; x++ {
		if got := red(p, x, 4); got != 255 {
			t.Errorf("pixel (%d,4) = %d, want 255", x, got)
		}
	}
	// Entirely outside, and non-finite input, draw nothing.
	before := append([]uint8(nil), p.Data()...)
	c.Line(-10, -10, -5, -20, white)
	c.Line(math.NaN(), 1, 3, 3, white)
	c.Line(1, 1, math.Inf(1), 3, white)
	for i, v := range p.Data() {
		if v != before[i] {
			t.Fatalf("byte %d changed to %d by an invisible line", i, v)
		}
	}
}

func TestLine_TransparentIsNoop(t *testing.T) {
	p := blackPixmap(8, 8)
	NewCanvas(p).Line(0, 0, 8, 8, color.NRGBA{255, 255, 255, 0})
	for i, v := range p.Data() {
		if i%4 != 3 && v != 0 {
			t.Fatalf("byte %d = %d, want 0", i, v)
		}
	}
}

// =============================================================================
// Points and blending
// =============================================================================

func TestPoint(t *testing.T) {
	p := blackPixmap(8, 8)
	c := NewCanvas(p)
	c.Point(3.7, 4.2, color.NRGBA{200, 100, 50, 255})
	if got := p.NRGBA().NRGBAAt(3, 4); got != (color.NRGBA{200, 100, 50, 255}) {
		t.Errorf("pixel (3,4) = %v, want {200 100 50 255}", got)
	}
	c.Point(-1, 2, white)
	c.Point(8, 2, white)
	c.Point(math.NaN(), 2, white)
}

func TestBlend(t *testing.T) {
	tests := []struct {
		name string
		dst  color.NRGBA
		src  color.NRGBA
		cov  uint8
		want color.NRGBA
	}{
		{"opaque replaces", color.NRGBA{10, 20, 30, 255}, color.NRGBA{200, 100, 50, 255}, 255, color.NRGBA{200, 100, 50, 255}},
		{"half over black", color.NRGBA{0, 0, 0, 255}, color.NRGBA{255, 0, 0, 128}, 255, color.NRGBA{128, 0, 0, 255}},
		{"coverage scales alpha", color.NRGBA{0, 0, 0, 255}, color.NRGBA{255, 255, 255, 255}, 128, color.NRGBA{128, 128, 128, 255}},
		{"zero coverage", color.NRGBA{1, 2, 3, 255}, white, 0, color.NRGBA{1, 2, 3, 255}},
		{"over transparent", color.NRGBA{0, 0, 0, 0}, color.NRGBA{200, 100, 50, 128}, 255, color.NRGBA{200, 100, 50, 128}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := surface.NewPixmap(1, 1)
			p.SetNRGBA(0, 0, tt.dst)
			NewCanvas(p).Blend(0, 0, tt.src, tt.cov)
			if got := p.NRGBA().NRGBAAt(0, 0); got != tt.want {
				t.Errorf("Blend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClipLine(t *testing.T) {
	x0, y0, x1, y1, ok := clipLine(-5, 5, 15, 5, 0, 0, 10, 10)
	if !ok || x0 != 0 || x1 != 10 || y0 != 5 || y1 != 5 {
		t.Errorf("clipLine(crossing) = (%v,%v)-(%v,%v) %v, want (0,5)-(10,5) true", x0, y0, x1, y1, ok)
	}
	if _, _, _, _, ok := clipLine(-5, -5, -1, 20, 0, 0, 10, 10); ok {
		t.Error("clipLine(outside) ok = true, want false")
	}
	x0, y0, x1, y1, ok = clipLine(2, 3, 4, 5, 0, 0, 10, 10)
	if !ok || x0 != 2 || y0 != 3 || x1 != 4 || y1 != 5 {
		t.Errorf("clipLine(inside) = (%v,%v)-(%v,%v) %v, want unchanged", x0, y0, x1, y1, ok)
	}
}
