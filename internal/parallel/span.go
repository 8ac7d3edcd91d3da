// Package parallel runs the renderer's embarrassingly parallel stages.
//
// Two stages fan out per frame: the kinematic update, split across disk
// elements, and the lens pass, split into bands of output rows. Neither
// shares mutable state between items, so work is cut into contiguous spans
// and handed to a work-stealing WorkerPool.
package parallel

// BandHeight is the default number of output rows per lens-pass work item.
// 64 rows keeps a 1280-wide band near the 64x64-tile working set while
// leaving enough items to balance across workers.
const BandHeight = 64

// Span is a half-open index range [Lo, Hi).
type Span struct {
	Lo, Hi int
}

// Len returns the number of indices in the span.
func (s Span) Len() int {
	return s.Hi - s.Lo
}

// Split cuts [0, n) into consecutive spans of at most size indices.
// It returns nil when n <= 0. A non-positive size yields one span.
func Split(n, size int) []Span {
	if n <= 0 {
		return nil
	}
	if size <= 0 || size >= n {
		return []Span{{Lo: 0, Hi: n}}
	}
	spans := make([]Span, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		spans = append(spans, Span{Lo: lo, Hi: min(lo+size, n)})
	}
	return spans
}

// For runs fn over [0, n) in spans of at most size indices. With a nil or
// closed pool the spans run sequentially on the calling goroutine, so callers
// never lose work.
func For(p *WorkerPool, n, size int, fn func(Span)) {
	spans := Split(n, size)
	if len(spans) == 0 {
		return
	}
	if p == nil || len(spans) == 1 || !p.IsRunning() {
		for _, s := range spans {
			fn(s)
		}
		return
	}

	work := make([]func(), len(spans))
	for i, s := range spans {
		work[i] = func() { fn(s) }
	}
	if !p.ExecuteAll(work) {
		for _, s := range spans {
			fn(s)
		}
	}
}

// ChunkSize picks a span size that gives each worker a few items.
func ChunkSize(n, workers int) int {
	if workers <= 0 {
		workers = 1
	}
	return max((n+workers*4-1)/(workers*4), 1)
}
