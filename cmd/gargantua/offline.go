package main

import (
	"context"
	"fmt"
	"time"

	"github.com/guptarohit/asciigraph"

	"github.com/gogpu/gargantua"
	"github.com/gogpu/gargantua/internal/metrics"
	"github.com/gogpu/gargantua/internal/output"
)

// runOffline renders frames at a fixed step and writes them to out. It
// returns the wall time of each frame in milliseconds.
func runOffline(ctx context.Context, r *gargantua.Renderer, frames int, fps float64, out string) ([]float64, error) {
	sink, err := output.New(out, frames, fps)
	if err != nil {
		return nil, err
	}

	dt := 1 / fps
	times := make([]float64, 0, frames)
	for i := range frames {
		if err := ctx.Err(); err != nil {
			_ = sink.Close()
			return times, fmt.Errorf("interrupted after %d frames: %w", i, err)
		}
		start := time.Now()
		frame, err := r.Frame(dt)
		if err != nil {
			_ = sink.Close()
			return times, err
		}
		if err := sink.Write(frame); err != nil {
			_ = sink.Close()
			return times, err
		}
		elapsed := time.Since(start)
		metrics.ObserveFrame(elapsed)
		times = append(times, float64(elapsed)/float64(time.Millisecond))
	}
	if err := sink.Close(); err != nil {
		return times, err
	}
	gargantua.Logger().Info("render done", "frames", frames, "out", out, "simTime", r.Time())
	return times, nil
}

// plotFrameTimes draws the frame times as an ASCII chart.
func plotFrameTimes(ms []float64) string {
	if len(ms) < 2 {
		return ""
	}
	var sum float64
	for _, v := range ms {
		sum += v
	}
	caption := fmt.Sprintf("frame time (ms), mean %.1f over %d frames", sum/float64(len(ms)), len(ms))
	return asciigraph.Plot(ms,
		asciigraph.Height(8),
		asciigraph.Width(min(len(ms), 60)),
		asciigraph.Caption(caption))
}
