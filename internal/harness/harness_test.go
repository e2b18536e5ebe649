package harness

import (
	"testing"
	"time"

	"github.com/Faultbox/renderbench/internal/config"
	"github.com/Faultbox/renderbench/internal/relay"
)

func testOptions() Options {
	o := OptionsFromConfig(config.Default())
	o.Width = 64
	o.Height = 48
	o.ObjectCount = 20
	o.Seed = 1
	return o
}

func TestModeSwitchWorkerLifecycle(t *testing.T) {
	mock := testClock()
	base := WorkersAlive()

	h := New(mock, testOptions(), nil)
	defer h.Close()

	// offscreen -> main -> offscreen never leaves more than one worker
	// alive, and teardown leaves zero.
	h.SetMode(ModeOffscreen)
	if got := WorkersAlive(); got != base+1 {
		t.Fatalf("alive in offscreen = %d, want %d", got, base+1)
	}

	h.SetMode(ModeMain)
	if got := WorkersAlive(); got != base {
		t.Fatalf("alive in main = %d, want %d", got, base)
	}
	if h.mainLoop == nil || h.mainRend == nil {
		t.Fatal("main mode resources not constructed")
	}
	if h.worker != nil {
		t.Fatal("worker resource survived the mode switch")
	}

	h.SetMode(ModeOffscreen)
	if got := WorkersAlive(); got != base+1 {
		t.Fatalf("alive after reactivation = %d, want %d", got, base+1)
	}
	if h.mainLoop != nil || h.mainRend != nil {
		t.Fatal("main mode resources survived the mode switch")
	}

	h.Close()
	if got := WorkersAlive(); got != base {
		t.Fatalf("alive after close = %d, want %d", got, base)
	}
}

func TestSetModeSameModeIsNoop(t *testing.T) {
	mock := testClock()
	h := New(mock, testOptions(), nil)
	defer h.Close()

	h.SetMode(ModeMain)
	loop := h.mainLoop
	h.SetMode(ModeMain)
	if h.mainLoop != loop {
		t.Error("re-selecting the active mode must not rebuild it")
	}
}

func TestCloseOnFreshHarness(t *testing.T) {
	h := New(testClock(), testOptions(), nil)
	h.Close() // nil-guarded teardown of a never-started harness
	h.Close()
}

func TestFrameInModeNone(t *testing.T) {
	mock := testClock()
	h := New(mock, testOptions(), nil)
	defer h.Close()

	if fb := h.Frame(mock.Now()); fb != nil {
		t.Error("ModeNone must render nothing")
	}
}

func TestMainModeFrame(t *testing.T) {
	mock := testClock()
	h := New(mock, testOptions(), nil)
	defer h.Close()

	h.SetMode(ModeMain)
	fb := h.Frame(mock.Now())
	if fb == nil {
		t.Fatal("main mode must return a framebuffer")
	}
	if fb.Bounds().Dx() != 64 || fb.Bounds().Dy() != 48 {
		t.Errorf("framebuffer bounds = %v, want 64x48", fb.Bounds())
	}
}

func TestMainModeDirectInteraction(t *testing.T) {
	mock := testClock()
	h := New(mock, testOptions(), nil)
	defer h.Close()
	h.SetMode(ModeMain)

	cam := h.mainLoop.Camera()

	h.PointerDown(100, 100)
	if !cam.Dragging {
		t.Error("pointer down must start the drag directly")
	}

	h.PointerMove(110, 105)
	if cam.TargetYaw == 0 || cam.TargetPitch == cam.Pitch {
		t.Error("pointer move must rotate the camera target")
	}

	h.PointerUp()
	if cam.Dragging {
		t.Error("pointer up must end the drag")
	}

	before := cam.TargetDistance
	h.Wheel(100)
	if cam.TargetDistance == before {
		t.Error("wheel must zoom the camera target")
	}

	// Same-thread interaction does no latency bookkeeping.
	if h.mainLoop.agg.LatencySamples() != 0 {
		t.Error("main mode must not record interaction latency")
	}
}

func TestMainModeSnapshotDelivery(t *testing.T) {
	mock := testClock()
	var got []relay.Stats
	h := New(mock, testOptions(), func(s relay.Stats) { got = append(got, s) })
	defer h.Close()
	h.SetMode(ModeMain)

	for i := 0; i < 70; i++ {
		mock.Add(16 * time.Millisecond)
		h.Frame(mock.Now())
	}

	if len(got) != 1 {
		t.Fatalf("stats deliveries = %d, want 1", len(got))
	}
	if got[0].FPS < 55 || got[0].FPS > 65 {
		t.Errorf("fps = %d, want ~60", got[0].FPS)
	}
	if got[0].InteractionDelay != "0.00" {
		t.Errorf("interaction delay = %q, want 0.00 in main mode", got[0].InteractionDelay)
	}
}

func TestOffscreenModeFrameAndStats(t *testing.T) {
	mock := testClock()
	var got []relay.Stats
	h := New(mock, testOptions(), func(s relay.Stats) { got = append(got, s) })
	defer h.Close()
	h.SetMode(ModeOffscreen)

	h.Wheel(100)

	waitFor(t, "an offscreen frame and stats", func() bool {
		mock.Add(50 * time.Millisecond)
		h.Frame(mock.Now())
		return h.held != nil && len(got) > 0
	})

	if got[0].FPS <= 0 {
		t.Errorf("fps = %d, want > 0", got[0].FPS)
	}
}

func TestSetObjectCountMainMode(t *testing.T) {
	mock := testClock()
	h := New(mock, testOptions(), nil)
	defer h.Close()
	h.SetMode(ModeMain)

	h.SetObjectCount(123)
	if h.mainLoop.ObjectCount() != 123 {
		t.Errorf("scene size = %d, want 123", h.mainLoop.ObjectCount())
	}

	// Count floor keeps the scene non-empty.
	h.SetObjectCount(0)
	if h.mainLoop.ObjectCount() != 1 {
		t.Errorf("scene size = %d, want 1", h.mainLoop.ObjectCount())
	}
}

func TestObjectCountSurvivesModeSwitch(t *testing.T) {
	mock := testClock()
	h := New(mock, testOptions(), nil)
	defer h.Close()

	h.SetMode(ModeMain)
	h.SetObjectCount(77)
	h.SetMode(ModeOffscreen)
	h.SetMode(ModeMain)

	if h.mainLoop.ObjectCount() != 77 {
		t.Errorf("scene size after switches = %d, want 77", h.mainLoop.ObjectCount())
	}
}

func TestResizeMainMode(t *testing.T) {
	mock := testClock()
	h := New(mock, testOptions(), nil)
	defer h.Close()
	h.SetMode(ModeMain)

	h.Resize(32, 16)
	fb := h.Frame(mock.Now())
	if fb.Bounds().Dx() != 32 || fb.Bounds().Dy() != 16 {
		t.Errorf("framebuffer after resize = %v, want 32x16", fb.Bounds())
	}
}
