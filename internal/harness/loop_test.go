package harness

import (
	"testing"
	"time"

	"github.com/Faultbox/renderbench/internal/engine/camera"
	"github.com/Faultbox/renderbench/internal/relay"
	"github.com/Faultbox/renderbench/internal/sim"
	"github.com/Faultbox/renderbench/internal/stats"
)

// stubRenderer records calls without rasterizing anything.
type stubRenderer struct {
	renders int
	resizes [][2]int
}

func (s *stubRenderer) Resize(w, h int) { s.resizes = append(s.resizes, [2]int{w, h}) }
func (s *stubRenderer) Render([]sim.Object, *camera.Orbit) {
	s.renders++
}

func testLoopConfig() LoopConfig {
	return LoopConfig{
		ObjectCount: 10,
		Bounds:      25,
		Seed:        1,
		Camera:      camera.DefaultConfig(),
		Stats:       stats.DefaultConfig(),
	}
}

func TestLoopStepRendersAndAdvances(t *testing.T) {
	mock := testClock()
	rend := &stubRenderer{}
	l := NewLoop(mock, rend, testLoopConfig(), nil)

	before := make([]sim.Object, len(l.objects))
	copy(before, l.objects)

	l.Step(mock.Now())

	if rend.renders != 1 {
		t.Fatalf("renders = %d, want 1", rend.renders)
	}
	moved := false
	for i := range l.objects {
		if l.objects[i].Position != before[i].Position {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("Step must advance object positions")
	}
}

func TestLoopStepDampsCameraWithoutInput(t *testing.T) {
	mock := testClock()
	l := NewLoop(mock, &stubRenderer{}, testLoopConfig(), nil)

	l.cam.TargetYaw = 1
	l.Step(mock.Now())

	if l.cam.Yaw == 0 {
		t.Error("Step must damp the camera even with no interaction")
	}
}

func TestLoopApplyRotate(t *testing.T) {
	mock := testClock()
	l := NewLoop(mock, &stubRenderer{}, testLoopConfig(), nil)

	l.Apply(relay.Rotate(10, 5))
	l.Apply(relay.Rotate(10, 5))

	// Deltas accumulate additively across queued messages.
	want := float32(20) * l.cam.DragSensitivity
	if l.cam.TargetYaw != want {
		t.Errorf("target yaw = %f, want %f", l.cam.TargetYaw, want)
	}
}

func TestLoopApplyDragFlag(t *testing.T) {
	mock := testClock()
	l := NewLoop(mock, &stubRenderer{}, testLoopConfig(), nil)

	l.Apply(relay.Start(mock.Now()))
	if !l.cam.Dragging {
		t.Error("start must set the dragging flag")
	}
	l.Apply(relay.End())
	if l.cam.Dragging {
		t.Error("end must clear the dragging flag")
	}
}

func TestLoopApplyZoomSeedsLatency(t *testing.T) {
	mock := testClock()
	l := NewLoop(mock, &stubRenderer{}, testLoopConfig(), nil)

	l.Apply(relay.Zoom(100, mock.Now()))
	mock.Add(20 * time.Millisecond)
	l.Step(mock.Now())

	if l.agg.LatencySamples() != 1 {
		t.Errorf("latency samples = %d, want 1", l.agg.LatencySamples())
	}
}

func TestLoopApplyRotateCarriesNoLatency(t *testing.T) {
	mock := testClock()
	l := NewLoop(mock, &stubRenderer{}, testLoopConfig(), nil)

	l.Apply(relay.Rotate(5, 5))
	l.Step(mock.Now())

	if l.agg.LatencySamples() != 0 {
		t.Error("rotate messages must not seed latency samples")
	}
}

func TestLoopApplyUpdateCountRebuildsScene(t *testing.T) {
	mock := testClock()
	l := NewLoop(mock, &stubRenderer{}, testLoopConfig(), nil)

	l.Apply(relay.UpdateCount(37))
	if l.ObjectCount() != 37 {
		t.Errorf("object count = %d, want 37", l.ObjectCount())
	}
}

func TestLoopApplyResize(t *testing.T) {
	mock := testClock()
	rend := &stubRenderer{}
	l := NewLoop(mock, rend, testLoopConfig(), nil)

	l.Apply(relay.Resize(320, 240))
	if len(rend.resizes) != 1 || rend.resizes[0] != [2]int{320, 240} {
		t.Errorf("resizes = %v, want [[320 240]]", rend.resizes)
	}
}

func TestLoopEmitsSnapshotAfterWindow(t *testing.T) {
	mock := testClock()
	var got []stats.Snapshot
	l := NewLoop(mock, &stubRenderer{}, testLoopConfig(), func(s stats.Snapshot) {
		got = append(got, s)
	})

	// 60 frames, 16 ms apart crosses the 1 s window on frame 63.
	for i := 0; i < 70; i++ {
		mock.Add(16 * time.Millisecond)
		l.Step(mock.Now())
	}

	if len(got) != 1 {
		t.Fatalf("snapshots = %d, want 1", len(got))
	}
	if got[0].FPS < 55 || got[0].FPS > 65 {
		t.Errorf("fps = %d, want ~60", got[0].FPS)
	}
	if got[0].DroppedFrames != 0 {
		t.Errorf("dropped = %d, want 0 at 16 ms frames", got[0].DroppedFrames)
	}
}

func TestLoopCountsDroppedFrames(t *testing.T) {
	mock := testClock()
	var got []stats.Snapshot
	l := NewLoop(mock, &stubRenderer{}, testLoopConfig(), func(s stats.Snapshot) {
		got = append(got, s)
	})

	l.Step(mock.Now())
	// Three slow frames, then fast ones until the window closes.
	for i := 0; i < 3; i++ {
		mock.Add(40 * time.Millisecond)
		l.Step(mock.Now())
	}
	for len(got) == 0 {
		mock.Add(10 * time.Millisecond)
		l.Step(mock.Now())
	}

	if got[0].DroppedFrames != 3 {
		t.Errorf("dropped = %d, want 3", got[0].DroppedFrames)
	}
	if got[0].MaxDelay != 40 {
		t.Errorf("max delay = %f, want 40", got[0].MaxDelay)
	}
}
