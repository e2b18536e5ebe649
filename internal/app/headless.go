package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/Faultbox/renderbench/internal/config"
	"github.com/Faultbox/renderbench/internal/harness"
	"github.com/Faultbox/renderbench/internal/logger"
)

// RunHeadless runs the offscreen worker without any window, logging each
// stats window. Frames render into the worker's framebuffer and are
// dropped unconsumed; the measurement pipeline runs in full.
func RunHeadless(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := harness.New(clock.New(), harness.OptionsFromConfig(cfg), nil)
	defer h.Close()
	h.SetMode(harness.ModeOffscreen)

	logger.Info("headless worker running",
		zap.Int("objects", cfg.Scene.ObjectCount),
		zap.Int("refreshHz", cfg.Graphics.RefreshHz),
	)

	worker := h.Worker()
	for {
		select {
		case <-ctx.Done():
			logger.Info("headless run interrupted")
			return nil
		case s := <-worker.Stats():
			logger.Info("stats",
				zap.Int("fps", s.FPS),
				zap.String("avgFrameTime", s.AvgFrameTime),
				zap.Int("droppedFrames", s.DroppedFrames),
				zap.String("maxDelay", s.MaxDelay),
				zap.String("interactionDelay", s.InteractionDelay),
			)
		case fb := <-worker.Frames():
			worker.Release(fb)
		}
	}
}
