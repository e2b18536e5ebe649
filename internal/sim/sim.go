// Package sim holds the animated scene state and its per-frame update.
//
// Both render modes use the same Advance function on their own object
// slice, so main-thread and offscreen rendering cannot drift apart.
package sim

import (
	"math/rand"

	"github.com/Faultbox/renderbench/pkg/math"
)

// Object is one animated cube.
type Object struct {
	Position math.Vec3
	Rotation math.Vec3 // Euler angles, radians
	Velocity math.Vec3 // linear units per frame
	Spin     math.Vec3 // angular radians per frame
}

// NewObjects builds n objects with randomized position, velocity and spin.
// Positions start inside the bounce bounds so the first frames are stable.
func NewObjects(n int, bounds float32, rng *rand.Rand) []Object {
	objects := make([]Object, n)
	for i := range objects {
		objects[i] = Object{
			Position: math.Vec3{
				X: symmetric(rng, bounds*0.8),
				Y: symmetric(rng, bounds*0.8),
				Z: symmetric(rng, bounds*0.8),
			},
			Rotation: math.Vec3{
				X: symmetric(rng, 3.14),
				Y: symmetric(rng, 3.14),
				Z: symmetric(rng, 3.14),
			},
			Velocity: math.Vec3{
				X: symmetric(rng, 0.1),
				Y: symmetric(rng, 0.1),
				Z: symmetric(rng, 0.1),
			},
			Spin: math.Vec3{
				X: symmetric(rng, 0.02),
				Y: symmetric(rng, 0.02),
				Z: symmetric(rng, 0.02),
			},
		}
	}
	return objects
}

// symmetric returns a uniform random value in [-limit, limit).
func symmetric(rng *rand.Rand, limit float32) float32 {
	return (rng.Float32()*2 - 1) * limit
}

// Advance moves every object by its velocity and spin for one frame.
// A position component whose magnitude exceeds bounds flips that velocity
// component's sign on the same frame, so the next frame moves the object
// back toward the bound.
func Advance(objects []Object, bounds float32) {
	for i := range objects {
		o := &objects[i]

		o.Position = o.Position.Add(o.Velocity)
		o.Rotation = o.Rotation.Add(o.Spin)

		if o.Position.X > bounds || o.Position.X < -bounds {
			o.Velocity.X = -o.Velocity.X
		}
		if o.Position.Y > bounds || o.Position.Y < -bounds {
			o.Velocity.Y = -o.Velocity.Y
		}
		if o.Position.Z > bounds || o.Position.Z < -bounds {
			o.Velocity.Z = -o.Velocity.Z
		}
	}
}
