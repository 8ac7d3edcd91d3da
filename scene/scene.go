// Package scene builds and draws the geometry around the black hole: a star
// field, the accretion disk, its lensed Einstein arcs, the photon sphere
// and an inner glow.
//
// Everything is drawn as hairlines and points into the offscreen buffer
// that the lens pass later bends. World units are Schwarzschild radii; the
// disk lies in the y = 0 plane.
package scene

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/gogpu/gargantua/internal/raster"
	"github.com/gogpu/gargantua/orbit"
	"github.com/gogpu/gargantua/shading"
	"github.com/gogpu/gargantua/surface"
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("scene: invalid params")

// Projector maps world points to top-left pixel coordinates.
// *camera.Camera satisfies it.
type Projector interface {
	Project(x, y, z float64) (sx, sy float64, ok bool)
}

// Params sizes the scene.
type Params struct {
	// Stars is the number of background stars.
	Stars int
	// StarInner and StarOuter bound the star shell radius.
	StarInner, StarOuter float64
	// Disk configures the orbiting particles and the ring radii.
	Disk orbit.DiskParams
	// HoleRadius is the Schwarzschild radius in world units.
	HoleRadius float64

	Rings        int
	RingSegments int
	ArcLayers    int
	ArcSegments  int
	PhotonLayers int
	GlowLayers   int
	GlowSegments int
}

// DefaultParams returns the standard scene.
func DefaultParams() Params {
	return Params{
		Stars:        2500,
		StarInner:    50,
		StarOuter:    100,
		Disk:         orbit.DefaultDisk(),
		HoleRadius:   1,
		Rings:        30,
		RingSegments: 100,
		ArcLayers:    20,
		ArcSegments:  120,
		PhotonLayers: 8,
		GlowLayers:   4,
		GlowSegments: 60,
	}
}

// Validate checks counts and radii.
func (p Params) Validate() error {
	if err := p.Disk.Validate(); err != nil {
		return err
	}
	switch {
	case p.Stars < 0:
		return fmt.Errorf("%w: Stars = %d", ErrInvalidParams, p.Stars)
	case !(p.StarInner > 0) || p.StarOuter < p.StarInner:
		return fmt.Errorf("%w: star shell [%v, %v]", ErrInvalidParams, p.StarInner, p.StarOuter)
	case !(p.HoleRadius > 0):
		return fmt.Errorf("%w: HoleRadius = %v", ErrInvalidParams, p.HoleRadius)
	}
	for _, n := range []int{p.Rings, p.RingSegments, p.ArcLayers, p.ArcSegments, p.PhotonLayers, p.GlowLayers, p.GlowSegments} {
		if n < 0 {
			return fmt.Errorf("%w: negative count %d", ErrInvalidParams, n)
		}
	}
	return nil
}

// Scene holds the static star field and the live disk particles.
type Scene struct {
	params     Params
	model      shading.Model
	stars      []Star
	particles  []orbit.Element
	background surface.Color
}

// New creates a scene from rng. The same seed yields the same scene.
func New(rng *rand.Rand, p Params, model shading.Model) (*Scene, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	stars := NewStars(rng, p.Stars, p.StarInner, p.StarOuter)
	particles, err := orbit.NewDisk(rng, p.Disk)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return &Scene{
		params:     p,
		model:      model,
		stars:      stars,
		particles:  particles,
		background: surface.Black,
	}, nil
}

// Params returns the scene parameters.
func (s *Scene) Params() Params { return s.params }

// Stars returns the star field. The slice must not be modified.
func (s *Scene) Stars() []Star { return s.stars }

// Particles returns the disk particles. Callers advance them in place
// between draws.
func (s *Scene) Particles() []orbit.Element { return s.particles }

// Draw clears dst and draws the whole scene as seen through proj. time
// animates the photon sphere.
func (s *Scene) Draw(dst *surface.Pixmap, proj Projector, time float64) {
	dst.Clear(s.background)
	c := raster.NewCanvas(dst)

	s.drawStars(c, proj)
	s.drawRings(c, proj)
	s.drawArcs(c, proj)
	s.drawParticles(c, proj)
	s.drawPhotonSphere(c, proj, time)
	s.drawGlow(c, proj)
}

func (s *Scene) drawStars(c *raster.Canvas, proj Projector) {
	for _, st := range s.stars {
		sx, sy, ok := proj.Project(st.X, st.Y, st.Z)
		if !ok {
			continue
		}
		v := uint8(255 * st.Brightness)
		c.Point(sx, sy, color.NRGBA{v, v, v, 255})
	}
}

// drawRings draws concentric disk rings shaded by radius and by the
// Doppler factor of their orbital motion.
func (s *Scene) drawRings(c *raster.Canvas, proj Projector) {
	d := s.params.Disk
	n := s.params.Rings
	for ring := 0; ring < n; ring++ {
		t := float64(ring) / float64(n)
		r := d.Inner + t*(d.Outer-d.Inner)
		beta := shading.OrbitalBeta(r, d.Inner)
		alpha := uint8(220 - t*100)

		segs := s.params.RingSegments
		for i := 0; i < segs; i++ {
			a1 := orbit.TwoPi * float64(i) / float64(segs)
			a2 := orbit.TwoPi * float64(i+1) / float64(segs)
			dop := shading.Doppler(beta, math.Cos(a1), shading.DiskRange)
			col := s.model.Shade(t, dop)
			col.A = alpha
			line(c, proj,
				math.Cos(a1)*r, 0, math.Sin(a1)*r,
				math.Cos(a2)*r, 0, math.Sin(a2)*r, col)
		}
	}
}

// drawArcs draws the lensed image of the far side of the disk: layered
// rings bent over (and under) the hole and compressed in depth.
func (s *Scene) drawArcs(c *raster.Canvas, proj Projector) {
	layers := s.params.ArcLayers
	segs := s.params.ArcSegments
	for side := 0; side < 2; side++ {
		dir := 1.0
		if side == 1 {
			dir = -1
		}
		for l := 0; l < layers; l++ {
			lt := float64(l) / float64(layers)
			r := s.params.HoleRadius * (2.2 + lt*1.8)
			height := (1.5 - lt*0.3) * dir
			zc := 0.15 + lt*0.05
			alpha := uint8((1 - lt*0.6) * 255)

			for i := 0; i < segs; i++ {
				a1 := orbit.TwoPi * float64(i) / float64(segs)
				a2 := orbit.TwoPi * float64(i+1) / float64(segs)
				dop := shading.Doppler(shading.LensedBeta, math.Cos(a1), shading.LensedRange)
				col := s.model.Shade(lt*0.4, dop)
				col.A = alpha
				line(c, proj,
					math.Cos(a1)*r, math.Abs(math.Sin(a1))*height, math.Sin(a1)*r*zc,
					math.Cos(a2)*r, math.Abs(math.Sin(a2))*height, math.Sin(a2)*r*zc, col)
			}
		}
	}
}

func (s *Scene) drawParticles(c *raster.Canvas, proj Projector) {
	for _, p := range s.particles {
		x, y, z := p.Position()
		sx, sy, ok := proj.Project(x, y, z)
		if !ok {
			continue
		}
		c.Point(sx, sy, s.particleColor(p))
	}
}

// particleColor shades a particle by its radius and the Doppler factor of
// its current position on the orbit.
func (s *Scene) particleColor(p orbit.Element) color.NRGBA {
	d := s.params.Disk
	beta := shading.OrbitalBeta(p.Radius, d.Inner)
	dop := shading.Doppler(beta, math.Cos(p.Angle), shading.DiskRange)
	return s.model.Shade(p.T(d.Inner, d.Outer), dop)
}

// drawPhotonSphere draws thin flickering rings just outside 1.5 Rs.
func (s *Scene) drawPhotonSphere(c *raster.Canvas, proj Projector, time float64) {
	const segs = 120
	for l := 0; l < s.params.PhotonLayers; l++ {
		r := s.params.HoleRadius*1.5 + float64(l)*0.03
		alpha := 1 - float64(l)*0.1
		for i := 0; i < segs; i++ {
			a1 := orbit.TwoPi * float64(i) / segs
			a2 := orbit.TwoPi * float64(i+1) / segs
			flicker := 0.9 + 0.1*math.Sin(a1*3+time*2)
			v := clampByte(255 * alpha * flicker)
			col := color.NRGBA{v, uint8(float64(v) * 0.9), uint8(float64(v) * 0.7), 255}
			line(c, proj,
				math.Cos(a1)*r, 0, math.Sin(a1)*r,
				math.Cos(a2)*r, 0, math.Sin(a2)*r, col)
		}
	}
}

// drawGlow draws faint warm rings hugging the horizon.
func (s *Scene) drawGlow(c *raster.Canvas, proj Projector) {
	segs := s.params.GlowSegments
	for l := 0; l < s.params.GlowLayers; l++ {
		r := s.params.HoleRadius * (1.1 + float64(l)*0.08)
		alpha := 0.4 - float64(l)*0.08
		if alpha <= 0 {
			break
		}
		v := clampByte(255 * alpha)
		col := color.NRGBA{v, uint8(float64(v) * 0.8), uint8(float64(v) * 0.5), v}
		for i := 0; i < segs; i++ {
			a1 := orbit.TwoPi * float64(i) / float64(segs)
			a2 := orbit.TwoPi * float64(i+1) / float64(segs)
			line(c, proj,
				math.Cos(a1)*r, 0, math.Sin(a1)*r,
				math.Cos(a2)*r, 0, math.Sin(a2)*r, col)
		}
	}
}

// line projects a world segment and draws it when both ends are in front
// of the camera.
func line(c *raster.Canvas, proj Projector, x0, y0, z0, x1, y1, z1 float64, col color.NRGBA) {
	sx0, sy0, ok0 := proj.Project(x0, y0, z0)
	sx1, sy1, ok1 := proj.Project(x1, y1, z1)
	if !ok0 || !ok1 {
		return
	}
	c.Line(sx0, sy0, sx1, sy1, col)
}

func clampByte(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v)))
}
