package harness

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// FrameDriver schedules a per-frame callback. Implementations invoke the
// callback from a single goroutine; Stop cancels any pending invocation
// and must be safe to call more than once.
type FrameDriver interface {
	Start(cb func(now time.Time))
	Stop()
}

// TickerDriver drives frames at a fixed nominal refresh rate. It stands
// in for a display's vsync callback when rendering offscreen.
type TickerDriver struct {
	clk      clock.Clock
	interval time.Duration

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	started  bool
}

// NewTickerDriver creates a driver firing at the given refresh rate.
func NewTickerDriver(clk clock.Clock, refreshHz int) *TickerDriver {
	if refreshHz <= 0 {
		refreshHz = 60
	}
	return &TickerDriver{
		clk:      clk,
		interval: time.Second / time.Duration(refreshHz),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins invoking cb once per interval on the driver's goroutine.
func (d *TickerDriver) Start(cb func(now time.Time)) {
	d.started = true
	// The ticker exists before Start returns so no tick can be missed
	// between Start and the goroutine coming up.
	ticker := d.clk.Ticker(d.interval)
	go func() {
		defer close(d.done)
		defer ticker.Stop()

		for {
			select {
			case <-d.stop:
				return
			case now := <-ticker.C:
				cb(now)
			}
		}
	}()
}

// Stop cancels the pending callback and waits for the driver goroutine
// to exit. No callback runs after Stop returns. Safe to call on a driver
// that never started.
func (d *TickerDriver) Stop() {
	d.stopOnce.Do(func() {
		close(d.stop)
	})
	if d.started {
		<-d.done
	}
}
