// Package termview shows rendered frames in a terminal.
//
// Each character cell carries two pixels: the upper half block '▀' takes the
// top pixel as its foreground and the bottom pixel as its background. The
// last row holds a status line.
package termview

import (
	"fmt"
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"github.com/gogpu/gargantua/camera"
	"github.com/gogpu/gargantua/internal/hud"
	"github.com/gogpu/gargantua/surface"
)

// HalfBlock is the rune drawn in every image cell.
const HalfBlock = '▀'

// KeyHold is how long, in seconds, one key event counts as held down.
// Terminals report presses and auto-repeats but never releases.
const KeyHold = 0.1

// Action is a user command decoded from a key.
type Action int

// Actions.
const (
	ActionNone Action = iota
	ActionRotateLeft
	ActionRotateRight
	ActionRaise
	ActionLower
	ActionZoomIn
	ActionZoomOut
	ActionToggleAuto
	ActionQuit
)

var actionNames = [...]string{"none", "rotate-left", "rotate-right", "raise", "lower", "zoom-in", "zoom-out", "toggle-auto", "quit"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// KeyAction maps a key event to its action. Letters are case-insensitive;
// arrow keys mirror WASD.
func KeyAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyLeft:
		return ActionRotateLeft
	case tcell.KeyRight:
		return ActionRotateRight
	case tcell.KeyUp:
		return ActionRaise
	case tcell.KeyDown:
		return ActionLower
	case tcell.KeyRune:
	default:
		return ActionNone
	}
	switch ev.Rune() {
	case 'a', 'A':
		return ActionRotateLeft
	case 'd', 'D':
		return ActionRotateRight
	case 'w', 'W':
		return ActionRaise
	case 's', 'S':
		return ActionLower
	case 'q', 'Q':
		return ActionZoomIn
	case 'e', 'E':
		return ActionZoomOut
	case ' ':
		return ActionToggleAuto
	}
	return ActionNone
}

// Apply feeds a to the controller with held seconds of input. It reports
// false for ActionQuit.
func Apply(ctrl *camera.Controller, a Action, held float64) bool {
	switch a {
	case ActionRotateLeft:
		ctrl.Rotate(-held)
	case ActionRotateRight:
		ctrl.Rotate(held)
	case ActionRaise:
		ctrl.Elevate(held)
	case ActionLower:
		ctrl.Elevate(-held)
	case ActionZoomIn:
		ctrl.Zoom(-held)
	case ActionZoomOut:
		ctrl.Zoom(held)
	case ActionToggleAuto:
		ctrl.ToggleAuto()
	case ActionQuit:
		return false
	}
	return true
}

// View draws frames onto a tcell screen.
type View struct {
	screen tcell.Screen
	scaled *image.NRGBA

	once    sync.Once
	events  chan tcell.Event
	backlog int

	closeOnce sync.Once
	done      chan struct{}
	pumped    chan struct{}
}

// New initializes screen and wraps it.
func New(screen tcell.Screen) (*View, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("termview: %w", err)
	}
	screen.HideCursor()
	screen.Clear()
	return &View{
		screen:  screen,
		backlog: 100,
		done:    make(chan struct{}),
		pumped:  make(chan struct{}),
	}, nil
}

// Open creates a view on the controlling terminal.
func Open() (*View, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("termview: %w", err)
	}
	return New(screen)
}

// Screen returns the underlying screen.
func (v *View) Screen() tcell.Screen { return v.screen }

// ImageSize returns the pixel size the image area can show: one column and
// two rows per cell, minus the status line.
func (v *View) ImageSize() (width, height int) {
	cols, rows := v.screen.Size()
	return cols, max(rows-1, 0) * 2
}

// Fit returns the largest rectangle with the aspect of a w×h frame centered
// in area.
func Fit(w, h int, area image.Point) image.Rectangle {
	if w <= 0 || h <= 0 || area.X <= 0 || area.Y <= 0 {
		return image.Rectangle{}
	}
	fw, fh := area.X, area.X*h/w
	if fh > area.Y {
		fw, fh = area.Y*w/h, area.Y
	}
	fw, fh = max(fw, 1), max(fh, 1)
	off := image.Pt((area.X-fw)/2, (area.Y-fh)/2)
	return image.Rectangle{Min: off, Max: off.Add(image.Pt(fw, fh))}
}

// Present scales frame into the terminal, writes the status line and shows
// the screen.
func (v *View) Present(frame *surface.Pixmap, status string) {
	cols, rows := v.screen.Size()
	iw, ih := v.ImageSize()
	if v.scaled == nil || v.scaled.Rect.Dx() != iw || v.scaled.Rect.Dy() != ih {
		v.scaled = image.NewNRGBA(image.Rect(0, 0, iw, ih))
	} else {
		clear(v.scaled.Pix)
	}
	if r := Fit(frame.Width(), frame.Height(), image.Pt(iw, ih)); !r.Empty() {
		draw.ApproxBiLinear.Scale(v.scaled, r, frame.NRGBA(), frame.Bounds(), draw.Src, nil)
	}

	for cy := 0; cy < ih/2; cy++ {
		for cx := 0; cx < iw; cx++ {
			top := v.scaled.NRGBAAt(cx, 2*cy)
			bot := v.scaled.NRGBAAt(cx, 2*cy+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			v.screen.SetContent(cx, cy, HalfBlock, nil, style)
		}
	}
	if rows > 0 {
		v.drawStatus(rows-1, cols, status)
	}
	v.screen.Show()
}

func (v *View) drawStatus(y, cols int, s string) {
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(
		int32(hud.TextColor.R), int32(hud.TextColor.G), int32(hud.TextColor.B)))
	x := 0
	for _, r := range s {
		if x >= cols {
			break
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		v.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

// Status formats the status line.
func Status(fps float64, auto bool) string {
	mode := "manual"
	if auto {
		mode = "auto"
	}
	return fmt.Sprintf("%s  %s  %s  %s  [ESC] Quit", hud.Title, hud.FormatFPS(fps), mode, hud.Controls)
}

// Events returns the screen's event stream. The channel is closed once the
// screen is finalized.
func (v *View) Events() <-chan tcell.Event {
	v.once.Do(func() {
		v.events = make(chan tcell.Event, v.backlog)
		go func() {
			defer close(v.pumped)
			defer close(v.events)
			for {
				ev := v.screen.PollEvent()
				if ev == nil {
					return
				}
				select {
				case v.events <- ev:
				case <-v.done:
					return
				}
			}
		}()
	})
	return v.events
}

// Close restores the terminal and stops the event goroutine, even when
// nobody is reading Events. It is safe to call more than once.
func (v *View) Close() {
	v.closeOnce.Do(func() {
		close(v.done)
		v.screen.Fini()
	})
}
