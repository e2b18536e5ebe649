package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagMode     = flag.String("mode", "", "Initial render mode: main or offscreen")
	flagHeadless = flag.Bool("headless", false, "Run the offscreen worker without a window")
	flagCount    = flag.Int("count", 0, "Animated object count")
	flagWidth    = flag.Int("width", 0, "Window width")
	flagHeight   = flag.Int("height", 0, "Window height")
	flagSeed     = flag.Int64("seed", 0, "Scene random seed (0 = time-based)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Mode returns the initial render mode requested via --mode, if any.
func Mode() string {
	return *flagMode
}

// Headless reports whether --headless was requested.
func Headless() bool {
	return *flagHeadless
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagCount > 0 {
		cfg.Scene.ObjectCount = *flagCount
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagSeed != 0 {
		cfg.Scene.Seed = *flagSeed
	}
}
