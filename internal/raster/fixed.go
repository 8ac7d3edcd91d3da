// Package raster draws anti-aliased hairlines and points into a pixmap.
//
// Lines use the fixed-point hairline algorithm from Skia: endpoints are
// converted to 26.6 fixed point (64 subpixel positions), the slope is
// carried in 16.16, and each step along the major axis splits its coverage
// between the two pixels straddling the line. Pixels are composited with
// source-over on straight-alpha RGBA8.
package raster

// FDot6 is a 26.6 fixed-point pixel coordinate.
type FDot6 int32

// FDot16 is a 16.16 fixed-point value used for slopes and interpolation.
type FDot16 int32

const (
	fdot6Shift = 6
	fdot6One   = FDot6(1) << fdot6Shift
	fdot6Mask  = fdot6One - 1

	fdot16Shift = 16
	fdot16One   = FDot16(1) << fdot16Shift
	fdot16Half  = fdot16One / 2
)

// FloatToFDot6 converts a pixel coordinate to 26.6 fixed point.
func FloatToFDot6(f float64) FDot6 {
	return FDot6(f * float64(fdot6One))
}

// FDot6ToFloat converts back to float64.
func FDot6ToFloat(f FDot6) float64 {
	return float64(f) / float64(fdot6One)
}

func fdot6Floor(f FDot6) int { return int(f >> fdot6Shift) }

func fdot6Ceil(f FDot6) int { return int((f + fdot6Mask) >> fdot6Shift) }

func fdot6ToFDot16(f FDot6) FDot16 { return FDot16(f) << (fdot16Shift - fdot6Shift) }

func fdot16Floor(f FDot16) int { return int(f >> fdot16Shift) }

// fdot16Div computes (a << 16) / b. b must be non-zero.
func fdot16Div(a, b FDot6) FDot16 {
	if b == 0 {
		return 0
	}
	return FDot16((int64(a) << fdot16Shift) / int64(b))
}

// smallScale scales an 8-bit value by a 26.6 fraction in [0, 64].
//
//nolint:gosec // (255 * 64) >> 6 = 255
func smallScale(v uint8, dot6 FDot6) uint8 {
	return uint8((int32(v) * int32(dot6)) >> fdot6Shift)
}

// fracAlpha extracts the 8 most significant fraction bits of a 16.16 value.
//
//nolint:gosec // masked to 8 bits
func fracAlpha(f FDot16) uint8 {
	return uint8((f >> 8) & 0xFF)
}

func abs6(f FDot6) FDot6 {
	if f < 0 {
		return -f
	}
	return f
}

// mulDiv255 returns a·b/255 rounded, for bytes.
func mulDiv255(a, b uint8) uint8 {
	v := uint32(a)*uint32(b) + 128
	return uint8((v + (v >> 8)) >> 8)
}
