// Package output writes rendered frames to disk.
//
// The format follows the path:
//
//	out.gif      one animated GIF
//	out.png      a single frame, or out_0000.png, out_0001.png, ... for runs
//	frames/      frame_0000.png, frame_0001.png, ... inside the directory
package output

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/gogpu/gargantua/surface"
)

// ErrUnknownFormat is returned for paths with an extension other than
// .png or .gif.
var ErrUnknownFormat = errors.New("output: unknown format")

// Sink consumes frames. The pixmap passed to Write may be reused by the
// caller once Write returns.
type Sink interface {
	Write(frame *surface.Pixmap) error
	Close() error
}

// New returns the sink for path. frames is the expected number of frames
// and fps the playback rate of animated formats.
func New(path string, frames int, fps float64) (Sink, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gif":
		return NewGIF(path, fps), nil
	case ".png":
		if frames <= 1 {
			return &pngSink{prefix: path, single: true}, nil
		}
		stem := strings.TrimSuffix(path, filepath.Ext(path))
		return &pngSink{prefix: stem + "_"}, nil
	case "":
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("output: %w", err)
		}
		return &pngSink{prefix: filepath.Join(path, "frame_")}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// pngSink writes prefix + a four digit frame number, or prefix alone when
// single.
type pngSink struct {
	prefix string
	single bool
	n      int
}

// Name returns the file name of frame n.
func (s *pngSink) Name(n int) string {
	if s.single {
		return s.prefix
	}
	return s.prefix + fmt.Sprintf("%04d.png", n)
}

func (s *pngSink) Write(frame *surface.Pixmap) error {
	if err := frame.SavePNG(s.Name(s.n)); err != nil {
		return fmt.Errorf("output: frame %d: %w", s.n, err)
	}
	s.n++
	return nil
}

func (s *pngSink) Close() error { return nil }

// GIF collects frames and encodes them as one looping animation on Close.
type GIF struct {
	path  string
	delay int
	anim  gif.GIF
}

// NewGIF creates a GIF sink. fps sets the frame delay, which GIF stores in
// hundredths of a second.
func NewGIF(path string, fps float64) *GIF {
	delay := 4
	if fps > 0 && !math.IsInf(fps, 0) {
		delay = max(int(math.Round(100/fps)), 1)
	}
	return &GIF{path: path, delay: delay}
}

// Delay returns the per-frame delay in hundredths of a second.
func (g *GIF) Delay() int { return g.delay }

// Len returns the number of frames collected so far.
func (g *GIF) Len() int { return len(g.anim.Image) }

// Write quantizes frame to the Plan 9 palette with Floyd-Steinberg
// dithering.
func (g *GIF) Write(frame *surface.Pixmap) error {
	src := frame.NRGBA()
	dst := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), src, image.Point{})
	g.anim.Image = append(g.anim.Image, dst)
	g.anim.Delay = append(g.anim.Delay, g.delay)
	return nil
}

// Close encodes the collected frames. A GIF with no frames is not written.
func (g *GIF) Close() error {
	if len(g.anim.Image) == 0 {
		return nil
	}
	f, err := os.Create(filepath.Clean(g.path))
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := gif.EncodeAll(f, &g.anim); err != nil {
		_ = f.Close()
		return fmt.Errorf("output: encode GIF: %w", err)
	}
	return f.Close()
}
