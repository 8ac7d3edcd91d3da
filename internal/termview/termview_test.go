package termview

import (
	"image"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/gargantua/camera"
	"github.com/gogpu/gargantua/surface"
)

func newView(t *testing.T, cols, rows int) (*View, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	v, err := New(sim)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sim.SetSize(cols, rows)
	return v, sim
}

// ===== Keys =====

func TestKeyAction(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want Action
	}{
		{tcell.KeyRune, 'a', ActionRotateLeft},
		{tcell.KeyRune, 'D', ActionRotateRight},
		{tcell.KeyRune, 'w', ActionRaise},
		{tcell.KeyRune, 's', ActionLower},
		{tcell.KeyRune, 'q', ActionZoomIn},
		{tcell.KeyRune, 'e', ActionZoomOut},
		{tcell.KeyRune, ' ', ActionToggleAuto},
		{tcell.KeyRune, 'z', ActionNone},
		{tcell.KeyEscape, 0, ActionQuit},
		{tcell.KeyCtrlC, 0, ActionQuit},
		{tcell.KeyLeft, 0, ActionRotateLeft},
		{tcell.KeyUp, 0, ActionRaise},
		{tcell.KeyEnter, 0, ActionNone},
	}
	for _, tt := range tests {
		ev := tcell.NewEventKey(tt.key, tt.r, tcell.ModNone)
		if got := KeyAction(ev); got != tt.want {
			t.Errorf("KeyAction(%v %q) = %v, want %v", tt.key, tt.r, got, tt.want)
		}
	}
}

func TestApply(t *testing.T) {
	ctrl := camera.NewController(camera.DefaultOrbit())
	start := ctrl.Target()

	if !Apply(ctrl, ActionZoomOut, 1) {
		t.Fatal("Apply(ZoomOut) = false, want true")
	}
	if got, want := ctrl.Target().Distance, start.Distance+camera.ZoomRate; got != want {
		t.Errorf("Distance = %v, want %v", got, want)
	}
	Apply(ctrl, ActionRotateLeft, 0.5)
	if got, want := ctrl.Target().Angle, start.Angle-0.5*camera.RotateRate; got != want {
		t.Errorf("Angle = %v, want %v", got, want)
	}
	auto := ctrl.Auto()
	Apply(ctrl, ActionToggleAuto, KeyHold)
	if ctrl.Auto() == auto {
		t.Error("ToggleAuto did not flip auto-rotation")
	}
	if Apply(ctrl, ActionQuit, KeyHold) {
		t.Error("Apply(Quit) = true, want false")
	}
}

func TestAction_String(t *testing.T) {
	if got := ActionZoomIn.String(); got != "zoom-in" {
		t.Errorf("String() = %q, want zoom-in", got)
	}
	if got := Action(99).String(); got != "Action(99)" {
		t.Errorf("String() = %q, want Action(99)", got)
	}
}

// ===== Layout =====

func TestFit(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		area image.Point
		want image.Rectangle
	}{
		{"exact", 20, 18, image.Pt(20, 18), image.Rect(0, 0, 20, 18)},
		{"wide frame", 160, 90, image.Pt(80, 80), image.Rect(0, 17, 80, 62)},
		{"tall frame", 50, 100, image.Pt(80, 40), image.Rect(30, 0, 50, 40)},
		{"empty area", 10, 10, image.Pt(0, 5), image.Rectangle{}},
		{"empty frame", 0, 10, image.Pt(5, 5), image.Rectangle{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fit(tt.w, tt.h, tt.area); got != tt.want {
				t.Errorf("Fit() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ===== Screen =====

func TestPresent(t *testing.T) {
	v, sim := newView(t, 20, 10)
	defer v.Close()

	if w, h := v.ImageSize(); w != 20 || h != 18 {
		t.Fatalf("ImageSize() = %dx%d, want 20x18", w, h)
	}

	frame := surface.NewPixmap(20, 18)
	red, blue := surface.RGB(1, 0, 0), surface.RGB(0, 0, 1)
	for y := 0; y < 18; y++ {
		for x := 0; x < 20; x++ {
			if y < 9 {
				frame.SetPixel(x, y, red)
			} else {
				frame.SetPixel(x, y, blue)
			}
		}
	}
	v.Present(frame, Status(60, true))

	tRed, tBlue := tcell.NewRGBColor(255, 0, 0), tcell.NewRGBColor(0, 0, 255)
	tests := []struct {
		row    int
		fg, bg tcell.Color
	}{
		{0, tRed, tRed},
		{4, tRed, tBlue},
		{8, tBlue, tBlue},
	}
	for _, tt := range tests {
		r, _, style, _ := sim.GetContent(3, tt.row)
		if r != HalfBlock {
			t.Errorf("row %d rune = %q, want %q", tt.row, r, HalfBlock)
		}
		fg, bg, _ := style.Decompose()
		if fg != tt.fg || bg != tt.bg {
			t.Errorf("row %d colors = %v/%v, want %v/%v", tt.row, fg, bg, tt.fg, tt.bg)
		}
	}

	if r, _, _, _ := sim.GetContent(0, 9); r != 'G' {
		t.Errorf("status line starts with %q, want 'G'", r)
	}
}

func TestStatus(t *testing.T) {
	s := Status(59.7, false)
	for _, want := range []string{"GARGANTUA", "60 FPS", "manual", "[ESC] Quit"} {
		if !strings.Contains(s, want) {
			t.Errorf("Status() = %q, missing %q", s, want)
		}
	}
}

func TestEvents(t *testing.T) {
	v, sim := newView(t, 20, 10)
	events := v.Events()
	sim.InjectKey(tcell.KeyRune, 'e', tcell.ModNone)

	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if key, ok := ev.(*tcell.EventKey); ok {
				if got := KeyAction(key); got != ActionZoomOut {
					t.Errorf("KeyAction() = %v, want zoom-out", got)
				}
				v.Close()
				return
			}
		case <-timeout:
			v.Close()
			t.Fatal("no key event received")
		}
	}
}

func TestClose_StopsUnreadEvents(t *testing.T) {
	v, sim := newView(t, 20, 10)
	v.backlog = 1
	v.Events()
	for i := 0; i < 5; i++ {
		sim.InjectKey(tcell.KeyRune, 'e', tcell.ModNone)
	}
	time.Sleep(50 * time.Millisecond)

	v.Close()
	v.Close()
	select {
	case <-v.pumped:
	case <-time.After(2 * time.Second):
		t.Fatal("event goroutine still running after Close")
	}
}
