// Package config handles harness configuration loading and management.
package config

// Config holds all harness settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Camera   CameraConfig   `yaml:"camera"`
	Stats    StatsConfig    `yaml:"stats"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	PixelRatio float64 `yaml:"pixel_ratio"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	RefreshHz  int     `yaml:"refresh_hz"` // nominal refresh rate for the frame driver
}

// SceneConfig holds animated-scene settings.
type SceneConfig struct {
	ObjectCount int     `yaml:"object_count"`
	Bounds      float32 `yaml:"bounds"` // objects bounce when |component| exceeds this
	Seed        int64   `yaml:"seed"`   // 0 means time-based
}

// CameraConfig holds orbit camera settings.
type CameraConfig struct {
	Damping         float32 `yaml:"damping"`
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
	MinDistance     float32 `yaml:"min_distance"`
	MaxDistance     float32 `yaml:"max_distance"`
	StartDistance   float32 `yaml:"start_distance"`
}

// StatsConfig holds performance measurement settings.
type StatsConfig struct {
	WindowMs      int     `yaml:"window_ms"`       // snapshot emission interval
	TargetFrameMs float64 `yaml:"target_frame_ms"` // frames slower than this count as dropped
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			PixelRatio: 1.0,
			Fullscreen: false,
			VSync:      true,
			RefreshHz:  60,
		},
		Scene: SceneConfig{
			ObjectCount: 2000,
			Bounds:      25,
			Seed:        0,
		},
		Camera: CameraConfig{
			Damping:         0.1,
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.01,
			MinDistance:     10,
			MaxDistance:     100,
			StartDistance:   50,
		},
		Stats: StatsConfig{
			WindowMs:      1000,
			TargetFrameMs: 16.67,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
