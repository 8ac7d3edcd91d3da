// Package metrics exposes renderer timings in the Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Frame stages take from well under a millisecond (advance) to tens of
// milliseconds (lens pass at 1080p).
var stageBuckets = prometheus.ExponentialBuckets(0.0001, 2, 14)

var (
	framesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gargantua_frames_total",
			Help: "Total number of rendered frames.",
		},
	)

	frameSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gargantua_frame_seconds",
			Help:    "Wall time per rendered frame in seconds.",
			Buckets: stageBuckets,
		},
	)

	stageSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gargantua_stage_seconds",
			Help:    "Wall time per frame stage in seconds.",
			Buckets: stageBuckets,
		},
		[]string{"stage"},
	)

	workers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gargantua_workers",
			Help: "Size of the render worker pool.",
		},
	)

	scrapesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gargantua_http_requests_total",
			Help: "Total number of HTTP requests to the metrics server.",
		},
		[]string{"path", "code"},
	)
)

func init() {
	prometheus.MustRegister(framesTotal)
	prometheus.MustRegister(frameSeconds)
	prometheus.MustRegister(stageSeconds)
	prometheus.MustRegister(workers)
	prometheus.MustRegister(scrapesTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return Middleware(promhttp.Handler())
}

// ObserveStage records the duration of one frame stage. Its signature
// matches gargantua.StageObserver.
func ObserveStage(stage string, d time.Duration) {
	stageSeconds.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveFrame counts a frame and records its total duration.
func ObserveFrame(d time.Duration) {
	framesTotal.Inc()
	frameSeconds.Observe(d.Seconds())
}

// SetWorkers records the worker pool size.
func SetWorkers(n int) {
	workers.Set(float64(n))
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware counts requests by path and status code.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		scrapesTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rw.statusCode)).Inc()
	})
}
