// Package hud draws the text overlay on top of the lensed frame.
package hud

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/gargantua/surface"
)

// Overlay text.
const (
	Title    = "GARGANTUA"
	Subtitle = "Gravitational Lensing"
	Controls = "[WASD] Orbit  [QE] Zoom  [SPACE] Auto"
)

// Font sizes in pixels.
const (
	TitleSize    = 30
	SubtitleSize = 16
	ControlsSize = 14
	FPSSize      = 20
)

// Colors.
var (
	TitleColor = color.NRGBA{255, 255, 255, 255}
	TextColor  = color.NRGBA{130, 130, 130, 255}
	FPSColor   = color.NRGBA{0, 228, 48, 255}
)

// Overlay holds the parsed font faces. font.Face is not safe for
// concurrent use, so neither is an Overlay.
type Overlay struct {
	title    font.Face
	subtitle font.Face
	controls font.Face
	fps      font.Face
}

// New parses the embedded Go Regular font and prepares the faces.
func New() (*Overlay, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("hud: parse font: %w", err)
	}

	o := &Overlay{}
	faces := []struct {
		dst  *font.Face
		size float64
	}{
		{&o.title, TitleSize},
		{&o.subtitle, SubtitleSize},
		{&o.controls, ControlsSize},
		{&o.fps, FPSSize},
	}
	for _, fc := range faces {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    fc.size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			_ = o.Close()
			return nil, fmt.Errorf("hud: face %vpx: %w", fc.size, err)
		}
		*fc.dst = face
	}
	return o, nil
}

// Draw writes the title, subtitle, controls hint and frame rate into dst.
// Text positions are the top-left corner of each line.
func (o *Overlay) Draw(dst *surface.Pixmap, fps float64) {
	img := dst.NRGBA()
	h := dst.Height()
	w := dst.Width()

	drawText(img, o.title, Title, 10, 10, TitleColor)
	drawText(img, o.subtitle, Subtitle, 10, 45, TextColor)
	drawText(img, o.controls, Controls, 10, h-25, TextColor)
	drawText(img, o.fps, FormatFPS(fps), w-80, 10, FPSColor)
}

// Close releases the font faces.
func (o *Overlay) Close() error {
	for _, f := range []font.Face{o.title, o.subtitle, o.controls, o.fps} {
		if f != nil {
			_ = f.Close()
		}
	}
	return nil
}

// FormatFPS renders a frame rate the way the counter shows it.
func FormatFPS(fps float64) string {
	if math.IsNaN(fps) || math.IsInf(fps, 0) || fps < 0 {
		fps = 0
	}
	return fmt.Sprintf("%d FPS", int(math.Round(fps)))
}

// Width returns the advance of s in the controls face, in pixels.
func (o *Overlay) Width(s string) int {
	return font.MeasureString(o.controls, s).Round()
}

func drawText(dst *image.NRGBA, face font.Face, s string, x, y int, col color.NRGBA) {
	ascent := face.Metrics().Ascent
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + ascent},
	}
	d.DrawString(s)
}
