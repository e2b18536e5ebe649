// Package app implements the windowed application loop.
package app

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/renderbench/internal/config"
	"github.com/Faultbox/renderbench/internal/engine/input"
	"github.com/Faultbox/renderbench/internal/engine/renderer"
	"github.com/Faultbox/renderbench/internal/engine/window"
	"github.com/Faultbox/renderbench/internal/harness"
	"github.com/Faultbox/renderbench/internal/logger"
	"github.com/Faultbox/renderbench/internal/relay"
)

const baseTitle = "renderbench"

// App is the windowed harness frontend.
type App struct {
	cfg       *config.Config
	running   bool
	window    *window.Window
	presenter *renderer.Presenter
	input     *input.Input
	harness   *harness.Harness

	latest *relay.Stats
}

// New creates the window, GL presenter and harness.
func New(cfg *config.Config, initialMode harness.Mode) (*App, error) {
	logger.Info("initializing app",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("mode", string(initialMode)),
	)

	a := &App{
		cfg:     cfg,
		running: false,
	}

	// Window first; the GL context must exist before the presenter.
	var err error
	a.window, err = window.New(window.Config{
		Title:      baseTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.presenter, err = renderer.NewPresenter()
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}

	a.input = input.New()
	a.harness = harness.New(clock.New(), harness.OptionsFromConfig(cfg), a.onStats)
	a.harness.SetMode(initialMode)

	return a, nil
}

// Run drives the harness until quit. The vsync'd swap is the main mode's
// frame pacing; the offscreen worker paces itself.
func (a *App) Run() error {
	a.running = true

	logger.Info("starting app loop")

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}

		for _, event := range a.input.Events() {
			a.handleEvent(event)
		}

		if fb := a.harness.Frame(time.Now()); fb != nil {
			a.presenter.Present(fb)
		}
		a.window.SwapBuffers()
	}

	return nil
}

// Close cleans up app resources.
func (a *App) Close() {
	logger.Info("closing app")

	if a.harness != nil {
		a.harness.Close()
	}
	if a.presenter != nil {
		a.presenter.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handleEvent(event input.Event) {
	switch event.Type {
	case input.EventQuit:
		a.running = false

	case input.EventWindowResize:
		a.presenter.Resize(event.Width, event.Height)
		a.harness.Resize(event.Width, event.Height)

	case input.EventKeyDown:
		a.handleKey(event.Key)

	case input.EventPointerDown:
		a.harness.PointerDown(event.X, event.Y)

	case input.EventPointerUp:
		a.harness.PointerUp()

	case input.EventPointerMove:
		a.harness.PointerMove(event.X, event.Y)

	case input.EventWheel:
		a.harness.Wheel(event.Wheel)
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false

	case sdl.SCANCODE_TAB:
		a.toggleMode()

	case sdl.SCANCODE_EQUALS:
		a.harness.SetObjectCount(a.harness.ObjectCount() * 2)
		a.refreshTitle()

	case sdl.SCANCODE_MINUS:
		a.harness.SetObjectCount(a.harness.ObjectCount() / 2)
		a.refreshTitle()
	}
}

func (a *App) toggleMode() {
	switch a.harness.Mode() {
	case harness.ModeOffscreen:
		a.harness.SetMode(harness.ModeMain)
	default:
		a.harness.SetMode(harness.ModeOffscreen)
	}
	a.latest = nil
	a.refreshTitle()
}

// onStats runs inline from Frame whenever a measurement window completes.
func (a *App) onStats(s relay.Stats) {
	a.latest = &s
	a.refreshTitle()

	logger.Debug("stats",
		zap.Int("fps", s.FPS),
		zap.String("avgFrameTime", s.AvgFrameTime),
		zap.Int("droppedFrames", s.DroppedFrames),
		zap.String("maxDelay", s.MaxDelay),
		zap.String("interactionDelay", s.InteractionDelay),
	)
}

func (a *App) refreshTitle() {
	title := fmt.Sprintf("%s [%s] %d objects",
		baseTitle, a.harness.Mode(), a.harness.ObjectCount())
	if a.latest != nil {
		title += fmt.Sprintf(" | %d fps, %s ms avg, %d dropped, %s ms input",
			a.latest.FPS, a.latest.AvgFrameTime,
			a.latest.DroppedFrames, a.latest.InteractionDelay)
	}
	a.window.SetTitle(title)
}
