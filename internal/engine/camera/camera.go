// Package camera provides the damped orbit camera used by both render modes.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/renderbench/pkg/math"
)

// Orbit orbits the scene origin. Interaction mutates only the target
// values; Damp pulls the current values toward them once per frame.
type Orbit struct {
	// Current spherical coordinates
	Yaw      float32 // horizontal angle, radians
	Pitch    float32 // vertical angle, radians
	Distance float32

	// Targets the current values are damped toward
	TargetYaw      float32
	TargetPitch    float32
	TargetDistance float32

	// Constraints
	MinDistance float32
	MaxDistance float32

	// Tuning
	Damping         float32 // per-frame interpolation factor in (0,1]
	DragSensitivity float32
	ZoomSensitivity float32

	// Dragging is toggled by start/end interaction events.
	Dragging bool
}

// Config holds orbit camera construction parameters.
type Config struct {
	Damping         float32
	DragSensitivity float32
	ZoomSensitivity float32
	MinDistance     float32
	MaxDistance     float32
	StartDistance   float32
}

// DefaultConfig returns the demo's stock camera tuning.
func DefaultConfig() Config {
	return Config{
		Damping:         0.1,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.01,
		MinDistance:     10,
		MaxDistance:     100,
		StartDistance:   50,
	}
}

// New creates an orbit camera with current values already at their targets.
func New(cfg Config) *Orbit {
	return &Orbit{
		Pitch:           0.3,
		Distance:        cfg.StartDistance,
		TargetPitch:     0.3,
		TargetDistance:  cfg.StartDistance,
		MinDistance:     cfg.MinDistance,
		MaxDistance:     cfg.MaxDistance,
		Damping:         cfg.Damping,
		DragSensitivity: cfg.DragSensitivity,
		ZoomSensitivity: cfg.ZoomSensitivity,
	}
}

// StartDrag marks the camera as dragging.
func (c *Orbit) StartDrag() {
	c.Dragging = true
}

// EndDrag clears the dragging flag.
func (c *Orbit) EndDrag() {
	c.Dragging = false
}

// Rotate updates target yaw/pitch from a pointer drag delta.
// Pitch target is clamped to [-pi/2, pi/2].
func (c *Orbit) Rotate(deltaX, deltaY float32) {
	c.TargetYaw += deltaX * c.DragSensitivity
	c.TargetPitch += deltaY * c.DragSensitivity

	const halfPi = math32.Pi / 2
	if c.TargetPitch < -halfPi {
		c.TargetPitch = -halfPi
	}
	if c.TargetPitch > halfPi {
		c.TargetPitch = halfPi
	}
}

// Zoom updates target distance from a wheel delta, clamped to
// [MinDistance, MaxDistance].
func (c *Orbit) Zoom(delta float32) {
	c.TargetDistance += delta * c.ZoomSensitivity
	if c.TargetDistance < c.MinDistance {
		c.TargetDistance = c.MinDistance
	}
	if c.TargetDistance > c.MaxDistance {
		c.TargetDistance = c.MaxDistance
	}
}

// Damp moves current values toward targets by the fixed damping factor.
// Runs every frame whether or not new input arrived. The factor is
// per-frame, not per-elapsed-time, so visual speed tracks the frame rate;
// that matches the demo this measures, so it stays uncorrected.
func (c *Orbit) Damp() {
	c.Yaw += (c.TargetYaw - c.Yaw) * c.Damping
	c.Pitch += (c.TargetPitch - c.Pitch) * c.Damping
	c.Distance += (c.TargetDistance - c.Distance) * c.Damping
}

// Position returns the camera position in world space, derived from the
// current spherical coordinates around the origin.
func (c *Orbit) Position() math.Vec3 {
	return math.Vec3{
		X: c.Distance * math32.Sin(c.Yaw) * math32.Cos(c.Pitch),
		Y: c.Distance * math32.Sin(c.Pitch),
		Z: c.Distance * math32.Cos(c.Yaw) * math32.Cos(c.Pitch),
	}
}

// ViewMatrix returns the view matrix aiming at the origin.
func (c *Orbit) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), math.Vec3{}, math.Vec3{Y: 1})
}
