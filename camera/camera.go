// Package camera places an orbiting perspective camera around the origin
// and projects world points into top-left pixel coordinates.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Clip planes.
const (
	Near = 0.01
	Far  = 1000.0
)

// Orbit describes a camera on a flattened sphere around the origin.
type Orbit struct {
	// Angle is the azimuth in radians.
	Angle float64
	// Elevation is the polar lift in radians.
	Elevation float64
	// Distance is the orbit radius in world units.
	Distance float64
	// FovY is the vertical field of view in degrees.
	FovY float64
}

// DefaultOrbit returns the starting view.
func DefaultOrbit() Orbit {
	return Orbit{Angle: 0, Elevation: 0.2, Distance: 16, FovY: 50}
}

// Eye returns the world position of the camera. The vertical component is
// compressed to 0.4 and lifted by 1.5 so the disk is seen slightly from
// above at every elevation.
func (o Orbit) Eye() mgl64.Vec3 {
	ce := math.Cos(o.Elevation)
	return mgl64.Vec3{
		math.Cos(o.Angle) * o.Distance * ce,
		math.Sin(o.Elevation)*o.Distance*0.4 + 1.5,
		math.Sin(o.Angle) * o.Distance * ce,
	}
}

// Camera is an immutable view-projection for one frame.
type Camera struct {
	orbit  Orbit
	eye    mgl64.Vec3
	right  mgl64.Vec3
	vp     mgl64.Mat4
	width  float64
	height float64
}

// New builds the camera for o looking at the origin, for a viewport of
// width×height pixels.
func New(o Orbit, width, height int) *Camera {
	w, h := float64(max(width, 1)), float64(max(height, 1))
	eye := o.Eye()
	target := mgl64.Vec3{0, 0, 0}
	up := mgl64.Vec3{0, 1, 0}

	view := mgl64.LookAtV(eye, target, up)
	proj := mgl64.Perspective(mgl64.DegToRad(o.FovY), w/h, Near, Far)

	forward := target.Sub(eye).Normalize()
	right := forward.Cross(up).Normalize()

	return &Camera{
		orbit:  o,
		eye:    eye,
		right:  right,
		vp:     proj.Mul4(view),
		width:  w,
		height: h,
	}
}

// Orbit returns the orbit the camera was built from.
func (c *Camera) Orbit() Orbit { return c.orbit }

// Eye returns the camera position.
func (c *Camera) Eye() mgl64.Vec3 { return c.eye }

// Right returns the unit vector that maps to screen-right.
func (c *Camera) Right() mgl64.Vec3 { return c.right }

// Size returns the viewport size in pixels.
func (c *Camera) Size() (width, height float64) { return c.width, c.height }

// Project maps a world point to pixel coordinates with the origin at the
// top-left. ok is false when the point lies behind the near plane.
func (c *Camera) Project(x, y, z float64) (sx, sy float64, ok bool) {
	clip := c.vp.Mul4x1(mgl64.Vec4{x, y, z, 1})
	w := clip.W()
	if w < Near {
		return 0, 0, false
	}
	nx, ny := clip.X()/w, clip.Y()/w
	sx = (nx + 1) * 0.5 * c.width
	sy = (1 - ny) * 0.5 * c.height
	return sx, sy, true
}

// BlackHole returns the screen position of the origin normalized to [0,1]²
// and the apparent radius of a sphere of worldRadius, in units of viewport
// height. The radius is measured along the camera's right vector so it does
// not shrink when the world X axis points at the viewer.
func (c *Camera) BlackHole(worldRadius float64) (cx, cy, radius float64, ok bool) {
	sx, sy, ok := c.Project(0, 0, 0)
	if !ok {
		return 0, 0, 0, false
	}
	edge := c.right.Mul(worldRadius)
	ex, ey, ok := c.Project(edge.X(), edge.Y(), edge.Z())
	if !ok {
		return 0, 0, 0, false
	}
	return sx / c.width, sy / c.height, math.Hypot(ex-sx, ey-sy) / c.height, true
}
