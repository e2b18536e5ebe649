// Package main is the entry point for the renderbench harness.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/renderbench/internal/app"
	"github.com/Faultbox/renderbench/internal/config"
	"github.com/Faultbox/renderbench/internal/harness"
	"github.com/Faultbox/renderbench/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== renderbench ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.Headless() {
		if err := app.RunHeadless(context.Background(), cfg); err != nil {
			logger.Error("headless run error", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	mode := harness.ModeOffscreen
	switch config.Mode() {
	case "main":
		mode = harness.ModeMain
	case "offscreen", "":
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode %q (want main or offscreen)\n", config.Mode())
		os.Exit(1)
	}

	a, err := app.New(cfg, mode)
	if err != nil {
		logger.Error("failed to create app", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("app error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("closed normally")
}
