// Package config loads the JSON run file of the gargantua command.
//
// Every field is optional. Absent fields keep the renderer defaults, so a
// file only needs to name what it changes:
//
//	{
//	  "width": 1920, "height": 1080, "frames": 120,
//	  "ramp": {"hot": "#fffff0", "mid": "#ffc864", "cold": "#c8501e"},
//	  "lens": {"strength": 2, "glowColor": "#ff9a4d"}
//	}
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/gargantua"
	"github.com/gogpu/gargantua/camera"
	"github.com/gogpu/gargantua/lens"
	"github.com/gogpu/gargantua/orbit"
	"github.com/gogpu/gargantua/shading"
	"github.com/gogpu/gargantua/surface"
)

// ErrInvalid is returned for files that parse but describe an unusable run.
var ErrInvalid = errors.New("config: invalid")

// File is the run configuration.
type File struct {
	Width       int     `json:"width,omitempty"`
	Height      int     `json:"height,omitempty"`
	Frames      int     `json:"frames,omitempty"`
	FPS         float64 `json:"fps,omitempty"`
	Seed        *int64  `json:"seed,omitempty"`
	Workers     int     `json:"workers,omitempty"`
	Out         string  `json:"out,omitempty"`
	HUD         bool    `json:"hud,omitempty"`
	MetricsAddr string  `json:"metricsAddr,omitempty"`
	Stars       *int    `json:"stars,omitempty"`

	Ramp   *Ramp   `json:"ramp,omitempty"`
	Camera *Camera `json:"camera,omitempty"`
	Disk   *Disk   `json:"disk,omitempty"`
	Lens   *Lens   `json:"lens,omitempty"`
}

// Ramp overrides the disk temperature colors, as hex strings.
type Ramp struct {
	Hot  string `json:"hot"`
	Mid  string `json:"mid"`
	Cold string `json:"cold"`
}

// Camera overrides the starting orbit. Angles are in radians.
type Camera struct {
	Angle     *float64 `json:"angle,omitempty"`
	Elevation *float64 `json:"elevation,omitempty"`
	Distance  *float64 `json:"distance,omitempty"`
	FovY      *float64 `json:"fovY,omitempty"`
}

// Disk overrides the particle disk.
type Disk struct {
	Count  *int     `json:"count,omitempty"`
	Inner  *float64 `json:"inner,omitempty"`
	Outer  *float64 `json:"outer,omitempty"`
	K      *float64 `json:"k,omitempty"`
	Jitter *float64 `json:"jitter,omitempty"`
}

// Lens overrides the commonly tuned lens values.
type Lens struct {
	Strength           *float64 `json:"strength,omitempty"`
	BloomSamples       *int     `json:"bloomSamples,omitempty"`
	BloomRadius        *float64 `json:"bloomRadius,omitempty"`
	BloomThreshold     *float64 `json:"bloomThreshold,omitempty"`
	BloomGain          *float64 `json:"bloomGain,omitempty"`
	HorizonScale       *float64 `json:"horizonScale,omitempty"`
	ShadowEdge         *float64 `json:"shadowEdge,omitempty"`
	GlowGain           *float64 `json:"glowGain,omitempty"`
	GlowColor          string   `json:"glowColor,omitempty"`
	AberrationStrength *float64 `json:"aberrationStrength,omitempty"`
	ContrastGain       *float64 `json:"contrastGain,omitempty"`
	Gamma              *float64 `json:"gamma,omitempty"`
	Exposure           *float64 `json:"exposure,omitempty"`
}

// Load reads and validates the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return f, nil
}

// Parse decodes and validates a run file. Unknown fields are rejected so
// typos do not pass silently.
func Parse(data []byte) (*File, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the values that can be checked without building a
// renderer.
func (f *File) Validate() error {
	switch {
	case f.Width < 0 || f.Height < 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, f.Width, f.Height)
	case f.Frames < 0:
		return fmt.Errorf("%w: frames %d", ErrInvalid, f.Frames)
	case f.FPS < 0:
		return fmt.Errorf("%w: fps %v", ErrInvalid, f.FPS)
	case f.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalid, f.Workers)
	case f.Stars != nil && *f.Stars < 0:
		return fmt.Errorf("%w: stars %d", ErrInvalid, *f.Stars)
	}
	if _, err := f.RampValue(); err != nil {
		return err
	}
	if _, err := f.LensConfig(lens.DefaultConfig()); err != nil {
		return err
	}
	if err := f.DiskParams(orbit.DefaultDisk()).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// RampValue returns the configured ramp, or shading.DefaultRamp.
func (f *File) RampValue() (shading.Ramp, error) {
	if f.Ramp == nil {
		return shading.DefaultRamp, nil
	}
	r, err := shading.NewRamp(f.Ramp.Hot, f.Ramp.Mid, f.Ramp.Cold)
	if err != nil {
		return shading.Ramp{}, fmt.Errorf("%w: ramp: %w", ErrInvalid, err)
	}
	return r, nil
}

// LensConfig applies the lens overrides to base.
func (f *File) LensConfig(base lens.Config) (lens.Config, error) {
	l := f.Lens
	if l == nil {
		return base, nil
	}
	setF(&base.Strength, l.Strength)
	setI(&base.BloomSamples, l.BloomSamples)
	setF(&base.BloomRadius, l.BloomRadius)
	setF(&base.BloomThreshold, l.BloomThreshold)
	setF(&base.BloomGain, l.BloomGain)
	setF(&base.HorizonScale, l.HorizonScale)
	setF(&base.ShadowEdge, l.ShadowEdge)
	setF(&base.GlowGain, l.GlowGain)
	setF(&base.AberrationStrength, l.AberrationStrength)
	setF(&base.ContrastGain, l.ContrastGain)
	setF(&base.Gamma, l.Gamma)
	setF(&base.Exposure, l.Exposure)
	if l.GlowColor != "" {
		c, err := ParseColor(l.GlowColor)
		if err != nil {
			return lens.Config{}, fmt.Errorf("%w: glowColor: %w", ErrInvalid, err)
		}
		base.GlowColor = c
	}
	if err := base.Validate(); err != nil {
		return lens.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return base, nil
}

// CameraOrbit applies the camera overrides to base.
func (f *File) CameraOrbit(base camera.Orbit) camera.Orbit {
	if c := f.Camera; c != nil {
		setF(&base.Angle, c.Angle)
		setF(&base.Elevation, c.Elevation)
		setF(&base.Distance, c.Distance)
		setF(&base.FovY, c.FovY)
	}
	return base
}

// DiskParams applies the disk overrides to base.
func (f *File) DiskParams(base orbit.DiskParams) orbit.DiskParams {
	if d := f.Disk; d != nil {
		setI(&base.Count, d.Count)
		setF(&base.Inner, d.Inner)
		setF(&base.Outer, d.Outer)
		setF(&base.K, d.K)
		setF(&base.Jitter, d.Jitter)
	}
	return base
}

// Options translates the file into renderer options.
func (f *File) Options() ([]gargantua.Option, error) {
	ramp, err := f.RampValue()
	if err != nil {
		return nil, err
	}
	lc, err := f.LensConfig(lens.DefaultConfig())
	if err != nil {
		return nil, err
	}
	opts := []gargantua.Option{
		gargantua.WithRamp(ramp),
		gargantua.WithLensConfig(lc),
		gargantua.WithDisk(f.DiskParams(orbit.DefaultDisk())),
		gargantua.WithCamera(f.CameraOrbit(camera.DefaultOrbit())),
		gargantua.WithHUD(f.HUD),
	}
	if f.Seed != nil {
		opts = append(opts, gargantua.WithSeed(*f.Seed))
	}
	if f.Workers > 0 {
		opts = append(opts, gargantua.WithWorkers(f.Workers))
	}
	if f.Stars != nil {
		opts = append(opts, gargantua.WithStars(*f.Stars))
	}
	return opts, nil
}

// ParseColor parses a #rrggbb or #rgb hex color.
func ParseColor(s string) (surface.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return surface.Color{}, err
	}
	return surface.RGB(c.R, c.G, c.B), nil
}

func setF(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setI(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
