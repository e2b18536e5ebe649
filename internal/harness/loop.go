package harness

import (
	"math/rand"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/Faultbox/renderbench/internal/engine/camera"
	"github.com/Faultbox/renderbench/internal/relay"
	"github.com/Faultbox/renderbench/internal/sim"
	"github.com/Faultbox/renderbench/internal/stats"
)

// renderTarget is the slice of the renderer interface the loop needs.
type renderTarget interface {
	Resize(width, height int)
	Render(objects []sim.Object, cam *camera.Orbit)
}

// Loop is one render mode's per-frame state: scene objects, camera and
// stats accumulation. The identical Step runs on the main thread and on
// the offscreen worker, each against its own Loop instance, so the two
// paths cannot drift apart.
type Loop struct {
	clk  clock.Clock
	rend renderTarget
	cam  *camera.Orbit
	agg  *stats.Aggregator

	objects []sim.Object
	bounds  float32
	rng     *rand.Rand

	lastStep   time.Time
	onSnapshot func(stats.Snapshot)
}

// LoopConfig holds frame loop construction parameters.
type LoopConfig struct {
	ObjectCount int
	Bounds      float32
	Seed        int64 // 0 means derive from the clock
	Camera      camera.Config
	Stats       stats.Config
}

// NewLoop builds a loop with a fresh scene and camera. onSnapshot is
// invoked inline from Step whenever a stats window completes; it may be
// nil.
func NewLoop(clk clock.Clock, rend renderTarget, cfg LoopConfig, onSnapshot func(stats.Snapshot)) *Loop {
	seed := cfg.Seed
	if seed == 0 {
		seed = clk.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	return &Loop{
		clk:        clk,
		rend:       rend,
		cam:        camera.New(cfg.Camera),
		agg:        stats.New(clk, cfg.Stats),
		objects:    sim.NewObjects(cfg.ObjectCount, cfg.Bounds, rng),
		bounds:     cfg.Bounds,
		rng:        rng,
		onSnapshot: onSnapshot,
	}
}

// Step runs one frame: camera damping, latency sampling, object advance,
// render, frame-time bookkeeping, and possibly a snapshot emission. All
// work is synchronous within the call.
func (l *Loop) Step(now time.Time) {
	l.cam.Damp()
	l.agg.SampleLatency()
	sim.Advance(l.objects, l.bounds)
	l.rend.Render(l.objects, l.cam)

	// Frame duration is the gap between consecutive step invocations;
	// the first frame has no predecessor to measure against.
	if !l.lastStep.IsZero() {
		l.agg.RecordFrame(now.Sub(l.lastStep))
	}
	l.lastStep = now

	if snap, ok := l.agg.MaybeSnapshot(); ok && l.onSnapshot != nil {
		l.onSnapshot(snap)
	}
}

// Apply consumes one relayed message. Interaction deltas accumulate
// additively; several queued rotations simply move the target further.
func (l *Loop) Apply(msg relay.Message) {
	switch msg.Type {
	case "resize":
		l.rend.Resize(msg.Width, msg.Height)

	case "updateCount":
		l.objects = sim.NewObjects(msg.Count, l.bounds, l.rng)

	case "interaction":
		switch msg.Action {
		case relay.ActionStart:
			l.cam.StartDrag()
			if at, ok := msg.EventTime(); ok {
				l.agg.MarkInteraction(at)
			}
		case relay.ActionRotate:
			l.cam.Rotate(msg.DeltaX, msg.DeltaY)
		case relay.ActionEnd:
			l.cam.EndDrag()
		case relay.ActionZoom:
			l.cam.Zoom(msg.Delta)
			if at, ok := msg.EventTime(); ok {
				l.agg.MarkInteraction(at)
			}
		}
	}
}

// Camera exposes the loop's camera for direct (same-thread) interaction.
func (l *Loop) Camera() *camera.Orbit {
	return l.cam
}

// SetObjectCount rebuilds the scene wholesale with n objects.
func (l *Loop) SetObjectCount(n int) {
	l.objects = sim.NewObjects(n, l.bounds, l.rng)
}

// ObjectCount returns the current object count.
func (l *Loop) ObjectCount() int {
	return len(l.objects)
}
