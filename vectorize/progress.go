package vectorize

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports how many lemmas have been vectorized. It is safe for
// use by concurrent batch workers.
type ProgressTracker struct {
	mu       sync.Mutex
	writer   io.Writer
	total    int
	done     int
	interval int
	reported int
	start    time.Time
	running  bool
}

// NewProgressTracker creates a tracker over total lemmas that prints a line
// every interval lemmas.
func NewProgressTracker(writer io.Writer, total, interval int) *ProgressTracker {
	if writer == nil {
		writer = io.Discard
	}
	return &ProgressTracker{
		writer:   writer,
		total:    total,
		interval: interval,
	}
}

// Start resets the counters and the clock.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.start = time.Now()
	p.running = true
	p.done = 0
	p.reported = 0
}

// Add records n more vectorized lemmas.
func (p *ProgressTracker) Add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.done = min(p.done+n, p.total)
	if p.done-p.reported >= p.interval {
		p.report()
		p.reported = p.done
	}
}

// Finish prints the final line and stops the tracker.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.done = p.total
	p.report()
	fmt.Fprintln(p.writer)
	p.running = false
}

// Done returns the number of lemmas recorded so far.
func (p *ProgressTracker) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Elapsed returns the time since Start.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.start.IsZero() {
		return 0
	}
	return time.Since(p.start)
}

// report must be called with the lock held.
func (p *ProgressTracker) report() {
	rate := 0.0
	if secs := time.Since(p.start).Seconds(); secs > 0 {
		rate = float64(p.done) / secs
	}
	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.done) / float64(p.total) * 100
	}
	fmt.Fprintf(p.writer, "\rVectorized: %d/%d (%.1f%%) - %.1f lemmas/s",
		p.done, p.total, percentage, rate)
}
