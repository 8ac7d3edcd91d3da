package gargantua

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gogpu/gargantua/camera"
	"github.com/gogpu/gargantua/internal/hud"
	"github.com/gogpu/gargantua/internal/parallel"
	"github.com/gogpu/gargantua/lens"
	"github.com/gogpu/gargantua/orbit"
	"github.com/gogpu/gargantua/scene"
	"github.com/gogpu/gargantua/surface"
)

// Errors returned by the Renderer.
var (
	ErrInvalidSize  = errors.New("gargantua: invalid frame size")
	ErrNegativeStep = errors.New("gargantua: negative or non-finite time step")
	ErrClosed       = errors.New("gargantua: renderer closed")
)

// RadiusInflation scales the projected hole radius before it reaches the
// lens pass, so the shadow covers the drawn photon sphere.
const RadiusInflation = 1.5

// Frame stages reported to a StageObserver.
const (
	StageAdvance = "advance"
	StageScene   = "scene"
	StageLens    = "lens"
	StageHUD     = "hud"
)

// fpsSmoothing is the weight of the previous estimate in the FPS counter.
const fpsSmoothing = 0.9

// Renderer produces lensed frames of the black hole scene.
//
// The offscreen and output pixmaps are reused between frames: the pixmap
// returned by Frame is overwritten by the next call.
type Renderer struct {
	opts   options
	width  int
	height int

	pool    *parallel.WorkerPool
	scene   *scene.Scene
	ctrl    *camera.Controller
	cam     *camera.Camera
	pass    *lens.Pass
	overlay *hud.Overlay

	offscreen *surface.Pixmap
	output    *surface.Pixmap

	state  lens.State
	time   float64
	frames int

	last time.Time
	fps  float64

	closed bool
}

// NewRenderer creates a renderer for width×height frames.
func NewRenderer(width, height int, opts ...Option) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.lens.Validate(); err != nil {
		return nil, fmt.Errorf("gargantua: %w", err)
	}
	sc, err := scene.New(rand.New(rand.NewSource(o.seed)), o.scene, o.model)
	if err != nil {
		return nil, fmt.Errorf("gargantua: %w", err)
	}

	r := &Renderer{
		opts:      o,
		width:     width,
		height:    height,
		scene:     sc,
		ctrl:      camera.NewController(o.orbit),
		offscreen: surface.NewPixmap(width, height),
		output:    surface.NewPixmap(width, height),
	}
	if o.hud {
		if r.overlay, err = hud.New(); err != nil {
			return nil, fmt.Errorf("gargantua: %w", err)
		}
	}

	r.pool = parallel.NewWorkerPool(o.workers)
	if r.pass, err = lens.NewPass(r.pool, o.lens); err != nil {
		r.pool.Close()
		return nil, fmt.Errorf("gargantua: %w", err)
	}

	r.cam = camera.New(r.ctrl.Current(), width, height)
	r.state = lens.State{Center: lens.Vec2{X: 0.5, Y: 0.5}}
	r.updateState()

	Logger().Info("gargantua: renderer created",
		"width", width, "height", height,
		"workers", r.pool.Workers(),
		"particles", len(sc.Particles()),
		"stars", len(sc.Stars()),
		"seed", o.seed)
	return r, nil
}

// Frame advances the simulation by dt seconds and renders one frame.
// dt == 0 renders the current state again.
func (r *Renderer) Frame(dt float64) (*surface.Pixmap, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if !(dt >= 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("%w: %v", ErrNegativeStep, dt)
	}

	start := time.Now()
	r.time += dt
	r.cam = camera.New(r.ctrl.Update(dt), r.width, r.height)
	particles := r.scene.Particles()
	parallel.For(r.pool, len(particles), parallel.ChunkSize(len(particles), r.pool.Workers()), func(s parallel.Span) {
		orbit.Advance(particles[s.Lo:s.Hi], dt)
	})
	r.updateState()
	t := r.observe(StageAdvance, start)

	r.scene.Draw(r.offscreen, r.cam, r.time)
	t = r.observe(StageScene, t)

	if err := r.pass.Run(r.output, r.offscreen, r.state); err != nil {
		return nil, fmt.Errorf("gargantua: frame %d: %w", r.frames, err)
	}
	t = r.observe(StageLens, t)

	r.tickFPS(start, dt)
	if r.overlay != nil {
		r.overlay.Draw(r.output, r.fps)
		r.observe(StageHUD, t)
	}

	r.frames++
	Logger().Debug("gargantua: frame",
		"n", r.frames, "time", r.time,
		"center", r.state.Center, "radius", r.state.Radius,
		"elapsed", time.Since(start))
	return r.output, nil
}

// updateState projects the hole with the current camera. When the hole is
// behind the camera the previous state is kept.
func (r *Renderer) updateState() {
	cx, cy, radius, ok := r.cam.BlackHole(r.scene.Params().HoleRadius)
	if !ok {
		Logger().Warn("gargantua: black hole not in front of the camera", "time", r.time)
		r.state.Time = r.time
		return
	}
	r.state = lens.State{
		Center: lens.Vec2{X: cx, Y: cy},
		Radius: radius * RadiusInflation,
		Time:   r.time,
	}
}

func (r *Renderer) observe(stage string, since time.Time) time.Time {
	now := time.Now()
	if r.opts.observer != nil {
		r.opts.observer(stage, now.Sub(since))
	}
	return now
}

// tickFPS updates the counter from the wall time between frames. The first
// frame falls back to the simulation rate.
func (r *Renderer) tickFPS(now time.Time, dt float64) {
	var inst float64
	if !r.last.IsZero() {
		if e := now.Sub(r.last).Seconds(); e > 0 {
			inst = 1 / e
		}
	} else if dt > 0 {
		inst = 1 / dt
	}
	r.last = now
	if r.fps == 0 {
		r.fps = inst
		return
	}
	r.fps = fpsSmoothing*r.fps + (1-fpsSmoothing)*inst
}

// Size returns the frame dimensions.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// Camera returns the camera of the last frame.
func (r *Renderer) Camera() *camera.Camera { return r.cam }

// Controller returns the orbit controller. Input applied to it takes effect
// on the next Frame.
func (r *Renderer) Controller() *camera.Controller { return r.ctrl }

// Scene returns the scene drawn by the first pass.
func (r *Renderer) Scene() *scene.Scene { return r.scene }

// State returns the lens state of the last frame.
func (r *Renderer) State() lens.State { return r.state }

// Offscreen returns the unlensed scene of the last frame.
func (r *Renderer) Offscreen() *surface.Pixmap { return r.offscreen }

// Time returns the simulation time in seconds.
func (r *Renderer) Time() float64 { return r.time }

// Frames returns the number of frames rendered.
func (r *Renderer) Frames() int { return r.frames }

// Workers returns the size of the worker pool.
func (r *Renderer) Workers() int { return r.pool.Workers() }

// FPS returns the smoothed frame rate shown by the overlay.
func (r *Renderer) FPS() float64 { return r.fps }

// Close stops the worker pool and releases the overlay fonts.
// Close is safe to call multiple times.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.pool.Close()
	if r.overlay != nil {
		_ = r.overlay.Close()
	}
	Logger().Info("gargantua: renderer closed", "frames", r.frames)
	return nil
}
