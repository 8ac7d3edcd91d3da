// Command gargantua renders a gravitationally lensed black hole.
//
// Offline runs write PNG or GIF frames and print a plot of frame times:
//
//	gargantua -frames 120 -out frames/ -seed 7
//	gargantua -frames 90 -fps 30 -width 480 -height 270 -out orbit.gif
//
// With -interactive the frames are drawn in the terminal and the camera
// follows the keyboard: A/D orbit, W/S elevation, Q/E zoom, SPACE toggles
// auto-rotation and ESC quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gogpu/gargantua"
	"github.com/gogpu/gargantua/internal/config"
	"github.com/gogpu/gargantua/internal/metrics"
)

// settings is the resolved run configuration.
type settings struct {
	configPath  string
	width       int
	height      int
	frames      int
	fps         float64
	out         string
	interactive bool
	metricsAddr string
	workers     int
	seed        int64
	hud         bool
	verbose     bool

	// set records the flags given on the command line.
	set map[string]bool
	// file is the parsed -config file, if any.
	file *config.File
}

func main() {
	s, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	if err := run(s); err != nil {
		fmt.Fprintln(os.Stderr, "gargantua:", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, errOut io.Writer) (*settings, error) {
	fs := flag.NewFlagSet("gargantua", flag.ContinueOnError)
	fs.SetOutput(errOut)

	s := &settings{}
	fs.StringVar(&s.configPath, "config", "", "JSON run configuration")
	fs.IntVar(&s.width, "width", 1280, "render width")
	fs.IntVar(&s.height, "height", 720, "render height")
	fs.IntVar(&s.frames, "frames", 1, "number of frames to render")
	fs.Float64Var(&s.fps, "fps", 60, "simulation rate; each frame advances 1/fps seconds")
	fs.StringVar(&s.out, "out", "gargantua.png", "output: file.png, file.gif or a directory for a PNG sequence")
	fs.BoolVar(&s.interactive, "interactive", false, "render in the terminal with orbit controls")
	fs.StringVar(&s.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.IntVar(&s.workers, "workers", 0, "worker pool size (0 = GOMAXPROCS)")
	fs.Int64Var(&s.seed, "seed", gargantua.DefaultSeed, "scene seed")
	fs.BoolVar(&s.hud, "hud", false, "draw the text overlay")
	fs.BoolVar(&s.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	s.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { s.set[f.Name] = true })

	if s.configPath != "" {
		f, err := config.Load(s.configPath)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return nil, err
		}
		s.merge(f)
	}
	if err := s.validate(); err != nil {
		fmt.Fprintln(errOut, err)
		return nil, err
	}
	return s, nil
}

// merge takes values from f for every flag not given on the command line.
func (s *settings) merge(f *config.File) {
	s.file = f
	if !s.set["width"] && f.Width > 0 {
		s.width = f.Width
	}
	if !s.set["height"] && f.Height > 0 {
		s.height = f.Height
	}
	if !s.set["frames"] && f.Frames > 0 {
		s.frames = f.Frames
	}
	if !s.set["fps"] && f.FPS > 0 {
		s.fps = f.FPS
	}
	if !s.set["out"] && f.Out != "" {
		s.out = f.Out
	}
	if !s.set["metrics-addr"] && f.MetricsAddr != "" {
		s.metricsAddr = f.MetricsAddr
	}
	if !s.set["workers"] && f.Workers > 0 {
		s.workers = f.Workers
	}
	if !s.set["seed"] && f.Seed != nil {
		s.seed = *f.Seed
	}
	if !s.set["hud"] && f.HUD {
		s.hud = true
	}
}

func (s *settings) validate() error {
	switch {
	case s.width <= 0 || s.height <= 0:
		return fmt.Errorf("invalid size %dx%d", s.width, s.height)
	case s.frames <= 0:
		return fmt.Errorf("invalid frame count %d", s.frames)
	case !(s.fps > 0):
		return fmt.Errorf("invalid fps %v", s.fps)
	}
	return nil
}

// options builds the renderer options. Command-line values come last so
// they win over the file.
func (s *settings) options() ([]gargantua.Option, error) {
	var opts []gargantua.Option
	if s.file != nil {
		fo, err := s.file.Options()
		if err != nil {
			return nil, err
		}
		opts = append(opts, fo...)
	}
	opts = append(opts,
		gargantua.WithSeed(s.seed),
		gargantua.WithWorkers(s.workers),
		gargantua.WithHUD(s.hud),
	)
	if s.metricsAddr != "" {
		opts = append(opts, gargantua.WithObserver(metrics.ObserveStage))
	}
	return opts, nil
}

func run(s *settings) error {
	level := slog.LevelInfo
	if s.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if s.interactive {
		// The terminal belongs to the view.
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	gargantua.SetLogger(logger)

	opts, err := s.options()
	if err != nil {
		return err
	}
	r, err := gargantua.NewRenderer(s.width, s.height, opts...)
	if err != nil {
		return err
	}
	defer r.Close()

	if s.metricsAddr != "" {
		srv := serveMetrics(s.metricsAddr, r.Workers())
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if s.interactive {
		return runInteractive(ctx, r, s.fps)
	}
	times, err := runOffline(ctx, r, s.frames, s.fps, s.out)
	if err != nil {
		return err
	}
	if s.frames > 1 {
		fmt.Println(plotFrameTimes(times))
	}
	return nil
}

func serveMetrics(addr string, workers int) *http.Server {
	metrics.SetWorkers(workers)
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			gargantua.Logger().Error("metrics server", "addr", addr, "err", err)
		}
	}()
	gargantua.Logger().Info("serving metrics", "addr", addr)
	return srv
}
