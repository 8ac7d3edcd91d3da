package camera

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Control rates per second of key hold, and the orbit limits.
const (
	AutoRate    = 0.12
	RotateRate  = 1.0
	ElevateRate = 0.5
	ZoomRate    = 4.0

	MinElevation = -0.3
	MaxElevation = 1.2
	MinDistance  = 6.0
	MaxDistance  = 30.0
)

// Spring tuning. A damping ratio of 1 is critically damped: the camera
// settles on the target without overshoot.
const (
	SpringFrequency = 6.0
	SpringDamping   = 1.0
)

// Controller turns discrete input into a smoothly moving Orbit. Input moves
// a target orbit; Update pulls the current orbit toward it with one
// harmonica spring per axis.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	target  Orbit
	current Orbit
	vel     [3]float64
	auto    bool

	spring harmonica.Spring
	step   float64
}

// NewController starts at o with auto-rotation enabled.
func NewController(o Orbit) *Controller {
	o.Elevation = clamp(o.Elevation, MinElevation, MaxElevation)
	o.Distance = clamp(o.Distance, MinDistance, MaxDistance)
	return &Controller{target: o, current: o, auto: true}
}

// Rotate moves the target azimuth by held seconds of rotation. Negative
// values turn the other way.
func (c *Controller) Rotate(held float64) {
	c.target.Angle += held * RotateRate
}

// Elevate raises (held > 0) or lowers the target elevation.
func (c *Controller) Elevate(held float64) {
	c.target.Elevation = clamp(c.target.Elevation+held*ElevateRate, MinElevation, MaxElevation)
}

// Zoom moves the camera out (held > 0) or in.
func (c *Controller) Zoom(held float64) {
	c.target.Distance = clamp(c.target.Distance+held*ZoomRate, MinDistance, MaxDistance)
}

// ToggleAuto flips auto-rotation and reports the new setting.
func (c *Controller) ToggleAuto() bool {
	c.auto = !c.auto
	return c.auto
}

// Auto reports whether auto-rotation is on.
func (c *Controller) Auto() bool { return c.auto }

// Target returns the orbit the camera is moving toward.
func (c *Controller) Target() Orbit { return c.target }

// Current returns the smoothed orbit.
func (c *Controller) Current() Orbit { return c.current }

// Update advances the controller by dt seconds and returns the smoothed
// orbit. A non-positive dt leaves everything unchanged.
func (c *Controller) Update(dt float64) Orbit {
	if !(dt > 0) {
		return c.current
	}
	if c.auto {
		c.target.Angle += AutoRate * dt
	}
	if dt != c.step {
		c.spring = harmonica.NewSpring(dt, SpringFrequency, SpringDamping)
		c.step = dt
	}

	c.current.Angle, c.vel[0] = c.spring.Update(c.current.Angle, c.vel[0], c.target.Angle)
	c.current.Elevation, c.vel[1] = c.spring.Update(c.current.Elevation, c.vel[1], c.target.Elevation)
	c.current.Distance, c.vel[2] = c.spring.Update(c.current.Distance, c.vel[2], c.target.Distance)
	c.current.FovY = c.target.FovY
	return c.current
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
