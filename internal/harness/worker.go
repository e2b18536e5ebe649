package harness

import (
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/Faultbox/renderbench/internal/engine/renderer"
	"github.com/Faultbox/renderbench/internal/logger"
	"github.com/Faultbox/renderbench/internal/relay"
	"github.com/Faultbox/renderbench/internal/stats"
)

// workersAlive counts live workers across the process, so tests and the
// lifecycle manager can assert that mode switches never leak one.
var workersAlive atomic.Int64

// WorkersAlive returns the number of currently live workers.
func WorkersAlive() int {
	return int(workersAlive.Load())
}

// Worker state machine. A disposed worker can never run again; the
// lifecycle manager constructs a fresh one per offscreen activation.
const (
	workerUninitialized int32 = iota
	workerRunning
	workerDisposed
)

// Worker owns the offscreen render path: its own scene, camera,
// rasterizer and frame driver, fed by a FIFO message channel. It mirrors
// a web worker with a transferred canvas: nothing is shared with the
// foreground, and termination discards whatever is still queued.
type Worker struct {
	loop   *Loop
	rend   *renderer.Software
	driver FrameDriver

	msgs   chan relay.Message
	stats  chan relay.Stats
	frames chan *image.RGBA
	pool   sync.Pool

	state atomic.Int32

	pendingSnap *stats.Snapshot
}

// StartWorker constructs a worker from an init message and starts its
// frame loop immediately.
func StartWorker(clk clock.Clock, init relay.Message, cfg LoopConfig, refreshHz int) *Worker {
	w := &Worker{
		msgs:   make(chan relay.Message, 64),
		stats:  make(chan relay.Stats, 4),
		frames: make(chan *image.RGBA, 1),
	}

	cfg.ObjectCount = init.ObjectCount
	w.rend = renderer.NewSoftware(init.Width, init.Height, init.PixelRatio)
	w.loop = NewLoop(clk, w.rend, cfg, w.stashSnapshot)
	w.driver = NewTickerDriver(clk, refreshHz)

	workersAlive.Add(1)
	w.state.Store(workerRunning)
	w.driver.Start(w.frame)

	logger.Debug("offscreen worker started",
		zap.Int("width", init.Width),
		zap.Int("height", init.Height),
		zap.Int("objects", init.ObjectCount),
	)

	return w
}

// Send forwards a message to the worker. It never blocks: the channel is
// FIFO with no backpressure, and a terminated or saturated worker simply
// loses the message.
func (w *Worker) Send(msg relay.Message) {
	if w.state.Load() != workerRunning {
		return
	}
	select {
	case w.msgs <- msg:
	default:
	}
}

// Stats returns the channel carrying one formatted stats message per
// completed measurement window.
func (w *Worker) Stats() <-chan relay.Stats {
	return w.stats
}

// Frames returns the channel carrying rendered frames. The foreground
// must hand each frame back via Release once presented.
func (w *Worker) Frames() <-chan *image.RGBA {
	return w.frames
}

// Release returns a presented frame buffer to the worker's pool.
func (w *Worker) Release(fb *image.RGBA) {
	if fb != nil {
		w.pool.Put(fb)
	}
}

// Terminate stops the frame driver and discards in-flight messages.
// Safe to call repeatedly; only the first call tears down.
func (w *Worker) Terminate() {
	if !w.state.CompareAndSwap(workerRunning, workerDisposed) {
		return
	}
	w.driver.Stop()
	workersAlive.Add(-1)
	logger.Debug("offscreen worker terminated")
}

// frame is the worker's per-frame callback. It drains whatever messages
// accumulated since the previous frame, steps the loop, then publishes
// the frame and any completed snapshot.
func (w *Worker) frame(now time.Time) {
	for draining := true; draining; {
		select {
		case msg := <-w.msgs:
			w.loop.Apply(msg)
		default:
			draining = false
		}
	}

	w.loop.Step(now)
	w.publishFrame()

	if w.pendingSnap != nil {
		select {
		case w.stats <- relay.NewStats(*w.pendingSnap):
		default:
			// Foreground not keeping up; the snapshot is disposable.
		}
		w.pendingSnap = nil
	}
}

// stashSnapshot runs inline from Loop.Step.
func (w *Worker) stashSnapshot(s stats.Snapshot) {
	w.pendingSnap = &s
}

// publishFrame copies the rasterizer output into a pooled buffer and
// offers it to the foreground, dropping the frame when the previous one
// has not been consumed yet.
func (w *Worker) publishFrame() {
	src := w.rend.Framebuffer()

	buf, _ := w.pool.Get().(*image.RGBA)
	if buf == nil || buf.Bounds() != src.Bounds() {
		buf = image.NewRGBA(src.Bounds())
	}
	copy(buf.Pix, src.Pix)

	select {
	case w.frames <- buf:
	default:
		w.pool.Put(buf)
	}
}
