// Package renderer rasterizes the animated scene.
//
// Both render modes draw through the software rasterizer into an
// in-memory framebuffer; windowed mode then hands the framebuffer to the
// OpenGL presenter. The offscreen worker owns its rasterizer outright
// and never touches GL.
package renderer

import (
	"image"

	"github.com/Faultbox/renderbench/internal/engine/camera"
	"github.com/Faultbox/renderbench/internal/sim"
)

// Renderer draws one frame of the scene as seen by the camera.
type Renderer interface {
	// Resize changes the framebuffer dimensions.
	Resize(width, height int)

	// Render draws the objects into the framebuffer.
	Render(objects []sim.Object, cam *camera.Orbit)

	// Framebuffer returns the most recently rendered image.
	Framebuffer() *image.RGBA
}
