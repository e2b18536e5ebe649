// Package stats accumulates per-frame timing and interaction latency and
// emits aggregated snapshots once per wall-clock window.
package stats

import (
	"time"

	"github.com/benbjohnson/clock"
)

const (
	// frameTimeWindow is the sliding-window capacity for frame durations.
	frameTimeWindow = 60
	// latencyWindow is the sliding-window capacity for interaction
	// latency samples.
	latencyWindow = 30
)

// Snapshot is one aggregated measurement window.
type Snapshot struct {
	FPS              int     // frames * 1000 / elapsed ms
	AvgFrameTime     float64 // ms, mean of the frame-time window
	DroppedFrames    int     // frames over the target duration this window
	MaxDelay         float64 // ms, slowest frame this window
	InteractionDelay float64 // ms, mean of the latency window
}

// Config holds aggregator settings.
type Config struct {
	Window      time.Duration // snapshot emission interval
	TargetFrame time.Duration // frames slower than this count as dropped
}

// DefaultConfig returns the 60 Hz defaults: 1 s windows, 16.67 ms target.
func DefaultConfig() Config {
	return Config{
		Window:      time.Second,
		TargetFrame: 16670 * time.Microsecond,
	}
}

// Aggregator collects frame and latency samples. Not safe for concurrent
// use; it belongs to a single frame loop.
type Aggregator struct {
	clk clock.Clock
	cfg Config

	frameTimes *ring
	latency    *ring

	// Per-window accumulators, reset on every snapshot.
	frames   int
	dropped  int
	maxDelay float64

	windowStart time.Time

	pending   bool
	pendingAt time.Time
}

// New creates an aggregator. The injected clock owns all wall-time reads.
func New(clk clock.Clock, cfg Config) *Aggregator {
	if cfg.Window <= 0 {
		cfg.Window = time.Second
	}
	if cfg.TargetFrame <= 0 {
		cfg.TargetFrame = 16670 * time.Microsecond
	}
	return &Aggregator{
		clk:         clk,
		cfg:         cfg,
		frameTimes:  newRing(frameTimeWindow),
		latency:     newRing(latencyWindow),
		windowStart: clk.Now(),
	}
}

// MarkInteraction seeds a pending latency sample from an interaction
// event's shared-clock timestamp. A newer event replaces an unsampled
// older one.
func (a *Aggregator) MarkInteraction(at time.Time) {
	a.pending = true
	a.pendingAt = at
}

// SampleLatency resolves the pending interaction timestamp, if any, into
// a latency sample against the current clock reading.
func (a *Aggregator) SampleLatency() {
	if !a.pending {
		return
	}
	a.latency.Push(float64(a.clk.Now().Sub(a.pendingAt)) / float64(time.Millisecond))
	a.pending = false
}

// RecordFrame records one frame's duration.
func (a *Aggregator) RecordFrame(d time.Duration) {
	ms := float64(d) / float64(time.Millisecond)
	a.frameTimes.Push(ms)
	a.frames++
	if d > a.cfg.TargetFrame {
		a.dropped++
	}
	if ms > a.maxDelay {
		a.maxDelay = ms
	}
}

// MaybeSnapshot emits a snapshot once the window has elapsed. The
// per-window counters reset; the sliding frame-time and latency windows
// do not.
func (a *Aggregator) MaybeSnapshot() (Snapshot, bool) {
	now := a.clk.Now()
	elapsed := now.Sub(a.windowStart)
	if elapsed < a.cfg.Window {
		return Snapshot{}, false
	}

	elapsedMs := float64(elapsed) / float64(time.Millisecond)
	snap := Snapshot{
		FPS:              int(float64(a.frames) * 1000 / elapsedMs),
		AvgFrameTime:     a.frameTimes.Mean(),
		DroppedFrames:    a.dropped,
		MaxDelay:         a.maxDelay,
		InteractionDelay: a.latency.Mean(),
	}

	a.frames = 0
	a.dropped = 0
	a.maxDelay = 0
	a.windowStart = now

	return snap, true
}

// LatencySamples returns the number of latency samples currently held.
func (a *Aggregator) LatencySamples() int {
	return a.latency.Len()
}
