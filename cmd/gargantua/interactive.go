package main

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/gargantua"
	"github.com/gogpu/gargantua/internal/metrics"
	"github.com/gogpu/gargantua/internal/termview"
)

// runInteractive renders into the terminal until ESC or ctx is done.
func runInteractive(ctx context.Context, r *gargantua.Renderer, fps float64) error {
	v, err := termview.Open()
	if err != nil {
		return err
	}
	defer v.Close()

	step := time.Duration(float64(time.Second) / fps)
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	events := v.Events()
	ctrl := r.Controller()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !termview.Apply(ctrl, termview.KeyAction(ev), termview.KeyHold) {
					return nil
				}
			case *tcell.EventResize:
				v.Screen().Sync()
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			frame, err := r.Frame(dt)
			if err != nil {
				return err
			}
			metrics.ObserveFrame(time.Since(now))
			v.Present(frame, termview.Status(r.FPS(), ctrl.Auto()))
		}
	}
}
