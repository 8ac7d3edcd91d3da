package gargantua

import (
	"time"

	"github.com/gogpu/gargantua/camera"
	"github.com/gogpu/gargantua/lens"
	"github.com/gogpu/gargantua/orbit"
	"github.com/gogpu/gargantua/scene"
	"github.com/gogpu/gargantua/shading"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	// Defaults: 2500 stars, 2000 disk particles, GOMAXPROCS workers
//	r, err := gargantua.NewRenderer(1280, 720)
//
//	// Reproducible run on four workers with a stronger lens
//	cfg := lens.DefaultConfig()
//	cfg.Strength = 1.5
//	r, err := gargantua.NewRenderer(1280, 720,
//		gargantua.WithSeed(42),
//		gargantua.WithWorkers(4),
//		gargantua.WithLensConfig(cfg),
//	)
type Option func(*options)

// StageObserver receives the wall time spent in one stage of a frame.
type StageObserver func(stage string, d time.Duration)

// options holds optional configuration for Renderer creation.
type options struct {
	seed     int64
	workers  int
	lens     lens.Config
	model    shading.Model
	scene    scene.Params
	orbit    camera.Orbit
	hud      bool
	observer StageObserver
}

// DefaultSeed seeds the scene when WithSeed is not given.
const DefaultSeed = 1

func defaultOptions() options {
	return options{
		seed:  DefaultSeed,
		lens:  lens.DefaultConfig(),
		model: shading.DefaultModel(),
		scene: scene.DefaultParams(),
		orbit: camera.DefaultOrbit(),
	}
}

// WithSeed sets the seed of the scene generator. Equal seeds give equal
// star fields and disks.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithWorkers sets the worker pool size. Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLensConfig replaces the lens pass configuration.
// It is validated by NewRenderer.
func WithLensConfig(cfg lens.Config) Option {
	return func(o *options) {
		o.lens = cfg
	}
}

// WithRamp sets the temperature ramp used for disk rings, arcs and
// particles.
func WithRamp(r shading.Ramp) Option {
	return func(o *options) {
		o.model.Ramp = r
	}
}

// WithDisk sets the accretion disk parameters.
func WithDisk(p orbit.DiskParams) Option {
	return func(o *options) {
		o.scene.Disk = p
	}
}

// WithStars sets the number of background stars.
func WithStars(n int) Option {
	return func(o *options) {
		o.scene.Stars = n
	}
}

// WithCamera sets the starting camera orbit.
func WithCamera(orb camera.Orbit) Option {
	return func(o *options) {
		o.orbit = orb
	}
}

// WithHUD enables the text overlay.
func WithHUD(on bool) Option {
	return func(o *options) {
		o.hud = on
	}
}

// WithObserver installs a callback that receives per-stage frame timings.
// The callback runs on the goroutine calling Frame.
func WithObserver(fn StageObserver) Option {
	return func(o *options) {
		o.observer = fn
	}
}
