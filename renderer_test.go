package gargantua

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gogpu/gargantua/camera"
	"github.com/gogpu/gargantua/lens"
	"github.com/gogpu/gargantua/orbit"
)

func newRenderer(t *testing.T, w, h int, opts ...Option) *Renderer {
	t.Helper()
	r, err := NewRenderer(w, h, opts...)
	if err != nil {
		t.Fatalf("NewRenderer(%d, %d) error = %v", w, h, err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

// ===== Construction =====

func TestNewRenderer_Errors(t *testing.T) {
	badLens := lens.DefaultConfig()
	badLens.Gamma = 0
	badDisk := orbit.DefaultDisk()
	badDisk.Inner, badDisk.Outer = 9, 2

	tests := []struct {
		name string
		w, h int
		opts []Option
		want error
	}{
		{"zero width", 0, 10, nil, ErrInvalidSize},
		{"negative height", 10, -1, nil, ErrInvalidSize},
		{"bad lens", 10, 10, []Option{WithLensConfig(badLens)}, lens.ErrInvalidConfig},
		{"bad disk", 10, 10, []Option{WithDisk(badDisk)}, orbit.ErrInvalidDisk},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRenderer(tt.w, tt.h, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewRenderer() error = %v, want %v", err, tt.want)
			}
			if r != nil {
				t.Errorf("NewRenderer() = %v, want nil on error", r)
			}
		})
	}
}

func TestNewRenderer_State(t *testing.T) {
	r := newRenderer(t, 160, 90)

	st := r.State()
	if math.Abs(st.Center.X-0.5) > 1e-6 || math.Abs(st.Center.Y-0.5) > 1e-6 {
		t.Errorf("State().Center = %+v, want (0.5, 0.5)", st.Center)
	}
	// 1.5 x the projected radius of the unit hole from 16 units away.
	if st.Radius < 0.095 || st.Radius > 0.107 {
		t.Errorf("State().Radius = %v, want about 0.101", st.Radius)
	}
	if w, h := r.Size(); w != 160 || h != 90 {
		t.Errorf("Size() = %dx%d, want 160x90", w, h)
	}
}

func TestOptions(t *testing.T) {
	disk := orbit.DefaultDisk()
	disk.Count = 10
	orb := camera.DefaultOrbit()
	orb.Distance = 20

	r := newRenderer(t, 40, 30, WithStars(3), WithDisk(disk), WithCamera(orb), WithSeed(5), WithWorkers(3))
	if got := len(r.Scene().Stars()); got != 3 {
		t.Errorf("len(Stars()) = %d, want 3", got)
	}
	if got := len(r.Scene().Particles()); got != 10 {
		t.Errorf("len(Particles()) = %d, want 10", got)
	}
	if got := r.Controller().Target().Distance; got != 20 {
		t.Errorf("Controller().Target().Distance = %v, want 20", got)
	}

	other := newRenderer(t, 40, 30, WithStars(3), WithSeed(6))
	if r.Scene().Stars()[0] == other.Scene().Stars()[0] {
		t.Error("different seeds produced the same first star")
	}
}

// ===== Frames =====

func TestFrame(t *testing.T) {
	r := newRenderer(t, 160, 90, WithWorkers(4))
	frame, err := r.Frame(0)
	if err != nil {
		t.Fatalf("Frame(0) error = %v", err)
	}
	if frame.Width() != 160 || frame.Height() != 90 {
		t.Fatalf("Frame() size = %dx%d, want 160x90", frame.Width(), frame.Height())
	}

	img := frame.NRGBA()
	for y := 0; y < 90; y++ {
		for x := 0; x < 160; x++ {
			if a := img.NRGBAAt(x, y).A; a != 255 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want 255", x, y, a)
			}
		}
	}
	if c := img.NRGBAAt(80, 45); c.R|c.G|c.B != 0 {
		t.Errorf("center pixel = %v, want black", c)
	}

	lit := 0
	for i := 0; i < len(r.Offscreen().Data()); i += 4 {
		d := r.Offscreen().Data()
		if d[i]|d[i+1]|d[i+2] != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("Offscreen() is empty after a frame")
	}
}

func TestFrame_AdvancesTime(t *testing.T) {
	r := newRenderer(t, 32, 18)
	before := r.Scene().Particles()[0].Angle
	for range 2 {
		if _, err := r.Frame(0.5); err != nil {
			t.Fatalf("Frame() error = %v", err)
		}
	}
	if r.Time() != 1 {
		t.Errorf("Time() = %v, want 1", r.Time())
	}
	if r.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", r.Frames())
	}
	if r.State().Time != 1 {
		t.Errorf("State().Time = %v, want 1", r.State().Time)
	}
	if r.Scene().Particles()[0].Angle == before {
		t.Error("particles did not move")
	}
	if r.Camera().Orbit().Angle <= 0 {
		t.Errorf("Camera().Orbit().Angle = %v, want auto-rotation", r.Camera().Orbit().Angle)
	}
}

func TestFrame_InvalidStep(t *testing.T) {
	r := newRenderer(t, 16, 16)
	for _, dt := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		if _, err := r.Frame(dt); !errors.Is(err, ErrNegativeStep) {
			t.Errorf("Frame(%v) error = %v, want ErrNegativeStep", dt, err)
		}
	}
	if r.Time() != 0 {
		t.Errorf("Time() = %v after rejected steps, want 0", r.Time())
	}
}

func TestFrame_Deterministic(t *testing.T) {
	a := newRenderer(t, 96, 54, WithSeed(11), WithWorkers(4))
	b := newRenderer(t, 96, 54, WithSeed(11), WithWorkers(1))
	for range 3 {
		fa, err := a.Frame(1.0 / 30)
		if err != nil {
			t.Fatal(err)
		}
		fb, err := b.Frame(1.0 / 30)
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range fa.Data() {
			if fb.Data()[i] != v {
				t.Fatalf("byte %d differs between equal seeds", i)
			}
		}
	}
}

func TestFrame_Zoom(t *testing.T) {
	r := newRenderer(t, 32, 18)
	r0 := r.State().Radius
	r.Controller().Zoom(1)
	for range 30 {
		if _, err := r.Frame(0.1); err != nil {
			t.Fatal(err)
		}
	}
	if d := r.Camera().Orbit().Distance; d <= camera.DefaultOrbit().Distance {
		t.Errorf("Distance = %v after zooming out, want > %v", d, camera.DefaultOrbit().Distance)
	}
	if r.State().Radius >= r0 {
		t.Errorf("State().Radius = %v after zooming out, want < %v", r.State().Radius, r0)
	}
}

func TestFrame_Observer(t *testing.T) {
	tests := []struct {
		name string
		hud  bool
		want []string
	}{
		{"plain", false, []string{StageAdvance, StageScene, StageLens}},
		{"hud", true, []string{StageAdvance, StageScene, StageLens, StageHUD}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			obs := func(stage string, d time.Duration) {
				if d < 0 {
					t.Errorf("stage %s duration %v, want >= 0", stage, d)
				}
				got = append(got, stage)
			}
			r := newRenderer(t, 200, 120, WithHUD(tt.hud), WithObserver(obs))
			if _, err := r.Frame(1.0 / 60); err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("stages = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("stage %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFPS(t *testing.T) {
	r := newRenderer(t, 16, 16)
	if _, err := r.Frame(0.05); err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.FPS()-20) > 1e-9 {
		t.Errorf("FPS() after first frame = %v, want 20", r.FPS())
	}
	if _, err := r.Frame(0.05); err != nil {
		t.Fatal(err)
	}
	if !(r.FPS() > 0) {
		t.Errorf("FPS() = %v, want > 0", r.FPS())
	}
}

func TestClose(t *testing.T) {
	r, err := NewRenderer(16, 16, WithHUD(true))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if _, err := r.Frame(0); !errors.Is(err, ErrClosed) {
		t.Errorf("Frame() after Close error = %v, want ErrClosed", err)
	}
}

func BenchmarkFrame(b *testing.B) {
	r, err := NewRenderer(640, 360)
	if err != nil {
		b.Fatal(err)
	}
	defer r.Close()
	b.ReportAllocs()
	for b.Loop() {
		if _, err := r.Frame(1.0 / 60); err != nil {
			b.Fatal(err)
		}
	}
}
