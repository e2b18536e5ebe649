// Package harness runs the same animated scene in one of two render
// modes and measures it: on the caller's thread with input applied
// directly to the camera, or on an offscreen worker fed by serialized
// interaction messages and reporting aggregated statistics back.
package harness

import (
	"image"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/Faultbox/renderbench/internal/config"
	"github.com/Faultbox/renderbench/internal/engine/camera"
	"github.com/Faultbox/renderbench/internal/engine/renderer"
	"github.com/Faultbox/renderbench/internal/logger"
	"github.com/Faultbox/renderbench/internal/relay"
	"github.com/Faultbox/renderbench/internal/stats"
)

// Mode selects which render path is active.
type Mode string

const (
	ModeNone      Mode = "none"
	ModeMain      Mode = "main"
	ModeOffscreen Mode = "offscreen"
)

// Options holds harness construction parameters.
type Options struct {
	Width       int
	Height      int
	PixelRatio  float64
	RefreshHz   int
	ObjectCount int
	Bounds      float32
	Seed        int64
	Camera      camera.Config
	Stats       stats.Config
}

// OptionsFromConfig maps the application config onto harness options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Width:       cfg.Graphics.Width,
		Height:      cfg.Graphics.Height,
		PixelRatio:  cfg.Graphics.PixelRatio,
		RefreshHz:   cfg.Graphics.RefreshHz,
		ObjectCount: cfg.Scene.ObjectCount,
		Bounds:      cfg.Scene.Bounds,
		Seed:        cfg.Scene.Seed,
		Camera: camera.Config{
			Damping:         cfg.Camera.Damping,
			DragSensitivity: cfg.Camera.DragSensitivity,
			ZoomSensitivity: cfg.Camera.ZoomSensitivity,
			MinDistance:     cfg.Camera.MinDistance,
			MaxDistance:     cfg.Camera.MaxDistance,
			StartDistance:   cfg.Camera.StartDistance,
		},
		Stats: stats.Config{
			Window:      time.Duration(cfg.Stats.WindowMs) * time.Millisecond,
			TargetFrame: time.Duration(cfg.Stats.TargetFrameMs * float64(time.Millisecond)),
		},
	}
}

// Harness is the foreground side: it owns the active mode's resources
// and relays interaction into whichever path currently renders. Not safe
// for concurrent use; it belongs to the UI loop.
type Harness struct {
	clk     clock.Clock
	opts    Options
	onStats func(relay.Stats)

	mode Mode

	// Main-thread mode resources.
	mainLoop *Loop
	mainRend *renderer.Software

	// Offscreen mode resources.
	worker *Worker
	held   *image.RGBA // latest worker frame being presented

	// Interaction relay bookkeeping.
	dragging     bool
	lastX, lastY int
	objectCount  int
}

// New creates a harness in ModeNone. onStats receives every completed
// stats window from the active mode; it may be nil.
func New(clk clock.Clock, opts Options, onStats func(relay.Stats)) *Harness {
	return &Harness{
		clk:         clk,
		opts:        opts,
		onStats:     onStats,
		mode:        ModeNone,
		objectCount: opts.ObjectCount,
	}
}

// Mode returns the active render mode.
func (h *Harness) Mode() Mode {
	return h.mode
}

// SetMode switches render modes. The previous mode's resources are fully
// torn down before the next mode's are constructed; after the switch
// exactly one path owns a scene, camera and render surface.
func (h *Harness) SetMode(mode Mode) {
	if mode == h.mode {
		return
	}

	h.teardown()

	switch mode {
	case ModeMain:
		h.mainRend = renderer.NewSoftware(h.opts.Width, h.opts.Height, h.opts.PixelRatio)
		h.mainLoop = NewLoop(h.clk, h.mainRend, h.loopConfig(), h.mainSnapshot)

	case ModeOffscreen:
		pw, ph := h.physicalSize()
		h.worker = StartWorker(h.clk,
			relay.Init(pw, ph, h.opts.PixelRatio, h.objectCount),
			h.loopConfig(), h.opts.RefreshHz)

	case ModeNone:
		// teardown already left us here
	}

	h.mode = mode
	logger.Info("render mode switched", zap.String("mode", string(mode)))
}

// Close tears down whichever mode is active.
func (h *Harness) Close() {
	h.teardown()
}

// teardown disposes the current mode's resources. Every guard is a nil
// check so a partially constructed mode can be discarded safely.
func (h *Harness) teardown() {
	if h.worker != nil {
		h.worker.Terminate()
		h.worker = nil
	}
	h.held = nil
	h.mainLoop = nil
	h.mainRend = nil
	h.mode = ModeNone
}

func (h *Harness) loopConfig() LoopConfig {
	return LoopConfig{
		ObjectCount: h.objectCount,
		Bounds:      h.opts.Bounds,
		Seed:        h.opts.Seed,
		Camera:      h.opts.Camera,
		Stats:       h.opts.Stats,
	}
}

func (h *Harness) physicalSize() (int, int) {
	return int(float64(h.opts.Width) * h.opts.PixelRatio),
		int(float64(h.opts.Height) * h.opts.PixelRatio)
}

// mainSnapshot delivers main-thread snapshots through the same formatted
// message type the worker uses.
func (h *Harness) mainSnapshot(s stats.Snapshot) {
	if h.onStats != nil {
		h.onStats(relay.NewStats(s))
	}
}

// Frame produces the framebuffer to present for this display refresh.
// In main mode it steps the loop synchronously; in offscreen mode it
// picks up the worker's most recent frame and pending stats. Returns nil
// when nothing renders.
func (h *Harness) Frame(now time.Time) *image.RGBA {
	switch h.mode {
	case ModeMain:
		h.mainLoop.Step(now)
		return h.mainRend.Framebuffer()

	case ModeOffscreen:
		select {
		case fb := <-h.worker.Frames():
			if h.held != nil {
				h.worker.Release(h.held)
			}
			h.held = fb
		default:
		}

		select {
		case s := <-h.worker.Stats():
			if h.onStats != nil {
				h.onStats(s)
			}
		default:
		}

		return h.held
	}
	return nil
}

// Worker exposes the offscreen worker, for frontends that consume its
// stats and frame channels outside the windowed Frame path. Nil unless
// ModeOffscreen is active.
func (h *Harness) Worker() *Worker {
	return h.worker
}

// PointerDown begins a drag at the given pointer position.
func (h *Harness) PointerDown(x, y int) {
	h.dragging = true
	h.lastX, h.lastY = x, y

	switch h.mode {
	case ModeMain:
		h.mainLoop.Camera().StartDrag()
	case ModeOffscreen:
		h.worker.Send(relay.Start(h.clk.Now()))
	}
}

// PointerMove relays a drag delta computed from consecutive positions.
func (h *Harness) PointerMove(x, y int) {
	if !h.dragging {
		return
	}
	dx := float32(x - h.lastX)
	dy := float32(y - h.lastY)
	h.lastX, h.lastY = x, y

	switch h.mode {
	case ModeMain:
		h.mainLoop.Camera().Rotate(dx, dy)
	case ModeOffscreen:
		h.worker.Send(relay.Rotate(dx, dy))
	}
}

// PointerUp ends the drag.
func (h *Harness) PointerUp() {
	h.dragging = false

	switch h.mode {
	case ModeMain:
		h.mainLoop.Camera().EndDrag()
	case ModeOffscreen:
		h.worker.Send(relay.End())
	}
}

// Wheel relays a zoom delta.
func (h *Harness) Wheel(delta float32) {
	switch h.mode {
	case ModeMain:
		h.mainLoop.Camera().Zoom(delta)
	case ModeOffscreen:
		h.worker.Send(relay.Zoom(delta, h.clk.Now()))
	}
}

// Resize propagates a new surface size to the active render path.
func (h *Harness) Resize(width, height int) {
	h.opts.Width = width
	h.opts.Height = height
	pw, ph := h.physicalSize()

	switch h.mode {
	case ModeMain:
		h.mainRend.Resize(pw, ph)
	case ModeOffscreen:
		h.worker.Send(relay.Resize(pw, ph))
	}
}

// SetObjectCount rebuilds the active scene with n objects.
func (h *Harness) SetObjectCount(n int) {
	if n < 1 {
		n = 1
	}
	h.objectCount = n

	switch h.mode {
	case ModeMain:
		h.mainLoop.SetObjectCount(n)
	case ModeOffscreen:
		h.worker.Send(relay.UpdateCount(n))
	}
	logger.Debug("object count changed", zap.Int("count", n))
}

// ObjectCount returns the requested object count.
func (h *Harness) ObjectCount() int {
	return h.objectCount
}
