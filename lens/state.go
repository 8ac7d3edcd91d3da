package lens

import "math"

// Vec2 is a point or offset in normalized screen coordinates.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v·k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// State is the per-frame view of the black hole the lens pass needs.
// It is recomputed every frame from the camera and never persisted.
type State struct {
	// Center is the screen position, normalized to [0,1]² with the origin
	// at the top-left.
	Center Vec2
	// Radius is the apparent event-horizon radius in normalized height
	// units. Strictly positive and well below 1 for an on-screen object.
	Radius float64
	// Time is the simulation time in seconds.
	Time float64
}

// Delta returns uv - center with the X component scaled by aspect, so that
// lengths are circular on screen rather than stretched by the viewport.
func Delta(uv, center Vec2, aspect float64) Vec2 {
	return Vec2{X: (uv.X - center.X) * aspect, Y: uv.Y - center.Y}
}

// Dist is the aspect-corrected distance between uv and center.
func Dist(uv, center Vec2, aspect float64) float64 {
	return Delta(uv, center, aspect).Len()
}
