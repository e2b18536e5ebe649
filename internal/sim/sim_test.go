package sim

import (
	"math/rand"
	"testing"

	"github.com/Faultbox/renderbench/pkg/math"
)

func TestNewObjectsCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	objects := NewObjects(100, 25, rng)
	if len(objects) != 100 {
		t.Fatalf("expected 100 objects, got %d", len(objects))
	}
}

func TestNewObjectsInsideBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	objects := NewObjects(1000, 25, rng)
	for i, o := range objects {
		for axis, v := range [3]float32{o.Position.X, o.Position.Y, o.Position.Z} {
			if v > 25 || v < -25 {
				t.Fatalf("object %d axis %d starts out of bounds: %f", i, axis, v)
			}
		}
	}
}

func TestNewObjectsDeterministicForSeed(t *testing.T) {
	a := NewObjects(10, 25, rand.New(rand.NewSource(7)))
	b := NewObjects(10, 25, rand.New(rand.NewSource(7)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("object %d differs for identical seeds: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestAdvanceMovesByVelocity(t *testing.T) {
	objects := []Object{{
		Position: math.Vec3{X: 1, Y: 2, Z: 3},
		Velocity: math.Vec3{X: 0.5, Y: -0.25, Z: 0},
		Spin:     math.Vec3{X: 0.1, Y: 0, Z: -0.1},
	}}

	Advance(objects, 25)

	want := math.Vec3{X: 1.5, Y: 1.75, Z: 3}
	if objects[0].Position != want {
		t.Errorf("position = %v, want %v", objects[0].Position, want)
	}
	wantRot := math.Vec3{X: 0.1, Y: 0, Z: -0.1}
	if objects[0].Rotation != wantRot {
		t.Errorf("rotation = %v, want %v", objects[0].Rotation, wantRot)
	}
}

func TestAdvanceBouncesSameFrame(t *testing.T) {
	objects := []Object{{
		Position: math.Vec3{X: 24.9},
		Velocity: math.Vec3{X: 0.5},
	}}

	// Crossing the bound flips the velocity sign on that same frame.
	Advance(objects, 25)
	if objects[0].Position.X <= 25 {
		t.Fatalf("expected position past bound, got %f", objects[0].Position.X)
	}
	if objects[0].Velocity.X != -0.5 {
		t.Errorf("velocity = %f, want -0.5", objects[0].Velocity.X)
	}

	// The next frame moves back toward the bound.
	before := objects[0].Position.X
	Advance(objects, 25)
	if objects[0].Position.X >= before {
		t.Errorf("expected position to move back inside, got %f -> %f", before, objects[0].Position.X)
	}
}

func TestAdvanceBouncesNegativeBound(t *testing.T) {
	objects := []Object{{
		Position: math.Vec3{Y: -24.9},
		Velocity: math.Vec3{Y: -0.5},
	}}

	Advance(objects, 25)
	if objects[0].Velocity.Y != 0.5 {
		t.Errorf("velocity = %f, want 0.5", objects[0].Velocity.Y)
	}
}

func TestAdvanceLargeSceneStaysNearBounds(t *testing.T) {
	// Object count 20000, bounds 25: after many frames every component
	// stays within bounds plus one frame's worth of velocity.
	rng := rand.New(rand.NewSource(99))
	objects := NewObjects(20000, 25, rng)

	for frame := 0; frame < 300; frame++ {
		Advance(objects, 25)
	}

	const slack = 0.2 // max |velocity| component per frame is 0.1
	for i, o := range objects {
		for _, v := range [3]float32{o.Position.X, o.Position.Y, o.Position.Z} {
			if v > 25+slack || v < -25-slack {
				t.Fatalf("object %d escaped bounds: %v", i, o.Position)
			}
		}
	}
}
