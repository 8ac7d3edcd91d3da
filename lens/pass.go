package lens

import (
	"errors"
	"fmt"

	"github.com/gogpu/gargantua/internal/parallel"
	"github.com/gogpu/gargantua/surface"
)

// ErrSizeMismatch is returned when the output and offscreen buffers differ
// in size.
var ErrSizeMismatch = errors.New("lens: destination and source sizes differ")

// ErrSameBuffer is returned when the output and offscreen buffers are the
// same pixmap.
var ErrSameBuffer = errors.New("lens: destination is the source buffer")

// Pass evaluates Shade for every pixel of an output buffer. Rows are split
// into bands of parallel.BandHeight and run on the worker pool; pixels
// share no state, so bands never synchronize.
type Pass struct {
	pool *parallel.WorkerPool
	cfg  Config
	band int
}

// NewPass creates a pass that runs on pool. A nil pool runs sequentially.
// cfg is copied.
func NewPass(pool *parallel.WorkerPool, cfg Config) (*Pass, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pass{pool: pool, cfg: cfg, band: parallel.BandHeight}, nil
}

// Config returns a copy of the pass configuration.
func (p *Pass) Config() Config {
	return p.cfg
}

// Run writes the lensed image of src into dst. dst and src must be
// distinct buffers of the same size; src is only read.
func (p *Pass) Run(dst, src *surface.Pixmap, st State) error {
	if dst == nil || src == nil {
		return fmt.Errorf("lens: run: %w", ErrSizeMismatch)
	}
	if dst == src {
		return fmt.Errorf("lens: run: %w", ErrSameBuffer)
	}
	if !dst.SameSize(src) {
		return fmt.Errorf("lens: run: dst %dx%d, src %dx%d: %w",
			dst.Width(), dst.Height(), src.Width(), src.Height(), ErrSizeMismatch)
	}

	w, h := dst.Width(), dst.Height()
	aspect := dst.Aspect()
	cfg := &p.cfg
	parallel.For(p.pool, h, p.band, func(s parallel.Span) {
		for y := s.Lo; y < s.Hi; y++ {
			for x := 0; x < w; x++ {
				dst.SetPixel(x, y, Shade(PixelUV(x, y, w, h), src, st, aspect, cfg))
			}
		}
	})
	return nil
}

// PixelUV returns the normalized coordinate of the center of pixel (x, y)
// in a w×h buffer.
func PixelUV(x, y, w, h int) Vec2 {
	return Vec2{
		X: (float64(x) + 0.5) / float64(w),
		Y: (float64(y) + 0.5) / float64(h),
	}
}
