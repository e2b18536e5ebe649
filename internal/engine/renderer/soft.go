package renderer

import (
	"image"
	"image/color"

	"github.com/Faultbox/renderbench/internal/engine/camera"
	"github.com/Faultbox/renderbench/internal/sim"
	"github.com/Faultbox/renderbench/pkg/math"
)

const (
	fovY     = 1.0471976 // 60 degrees
	nearClip = 0.1
	farClip  = 500.0
	cubeHalf = 0.5

	maxScreenCoord = 8192
)

// cubeCorners are the 8 corners of a unit cube centered on the origin.
var cubeCorners = [8]math.Vec3{
	{X: -cubeHalf, Y: -cubeHalf, Z: -cubeHalf},
	{X: cubeHalf, Y: -cubeHalf, Z: -cubeHalf},
	{X: cubeHalf, Y: cubeHalf, Z: -cubeHalf},
	{X: -cubeHalf, Y: cubeHalf, Z: -cubeHalf},
	{X: -cubeHalf, Y: -cubeHalf, Z: cubeHalf},
	{X: cubeHalf, Y: -cubeHalf, Z: cubeHalf},
	{X: cubeHalf, Y: cubeHalf, Z: cubeHalf},
	{X: -cubeHalf, Y: cubeHalf, Z: cubeHalf},
}

// cubeEdges index pairs into cubeCorners for the 12 wireframe edges.
var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

var background = color.RGBA{R: 26, G: 26, B: 38, A: 255} // dark blue-gray

// Software is a CPU wireframe rasterizer drawing into an image.RGBA.
type Software struct {
	width  int
	height int
	fb     *image.RGBA
}

// NewSoftware creates a software rasterizer with the given framebuffer
// size. pixelRatio scales the logical size to physical pixels.
func NewSoftware(width, height int, pixelRatio float64) *Software {
	s := &Software{}
	s.Resize(int(float64(width)*pixelRatio), int(float64(height)*pixelRatio))
	return s
}

// Resize reallocates the framebuffer.
func (s *Software) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s.width = width
	s.height = height
	s.fb = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Framebuffer returns the most recently rendered image.
func (s *Software) Framebuffer() *image.RGBA {
	return s.fb
}

// Render clears the framebuffer and draws every object as a projected
// cube wireframe.
func (s *Software) Render(objects []sim.Object, cam *camera.Orbit) {
	s.clear()

	aspect := float32(s.width) / float32(s.height)
	viewProj := math.Perspective(fovY, aspect, nearClip, farClip).Mul(cam.ViewMatrix())

	for i := range objects {
		s.drawCube(&objects[i], viewProj, objectColor(i))
	}
}

func (s *Software) clear() {
	pix := s.fb.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = background.R
		pix[i+1] = background.G
		pix[i+2] = background.B
		pix[i+3] = background.A
	}
}

func (s *Software) drawCube(o *sim.Object, viewProj math.Mat4, col color.RGBA) {
	model := math.Translate(o.Position.X, o.Position.Y, o.Position.Z).
		Mul(math.RotateY(o.Rotation.Y)).
		Mul(math.RotateX(o.Rotation.X)).
		Mul(math.RotateZ(o.Rotation.Z))
	mvp := viewProj.Mul(model)

	var clip [8]math.Vec4
	for i, corner := range cubeCorners {
		clip[i] = mvp.MulVec4(math.Vec4{X: corner.X, Y: corner.Y, Z: corner.Z, W: 1})
	}

	for _, edge := range cubeEdges {
		a, b := clip[edge[0]], clip[edge[1]]
		// Reject edges touching the near plane rather than clipping;
		// a missing edge on a cube already behind the viewer is fine
		// for a measurement scene.
		if a.W < nearClip || b.W < nearClip {
			continue
		}
		x0, y0 := s.toScreen(a)
		x1, y1 := s.toScreen(b)
		// Endpoints blow up near the clip plane; cap them so Bresenham
		// never walks an absurd span.
		if abs(x0) > maxScreenCoord || abs(y0) > maxScreenCoord ||
			abs(x1) > maxScreenCoord || abs(y1) > maxScreenCoord {
			continue
		}
		s.line(x0, y0, x1, y1, col)
	}
}

func (s *Software) toScreen(v math.Vec4) (int, int) {
	x := v.X / v.W
	y := v.Y / v.W
	return int((x + 1) * 0.5 * float32(s.width)),
		int((1 - y) * 0.5 * float32(s.height))
}

// line draws with Bresenham, skipping out-of-bounds pixels.
func (s *Software) line(x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		s.setPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (s *Software) setPixel(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	i := s.fb.PixOffset(x, y)
	s.fb.Pix[i] = col.R
	s.fb.Pix[i+1] = col.G
	s.fb.Pix[i+2] = col.B
	s.fb.Pix[i+3] = col.A
}

// objectColor derives a stable bright color from the object index.
func objectColor(i int) color.RGBA {
	h := uint32(i) * 2654435761 // Knuth multiplicative hash
	return color.RGBA{
		R: uint8(96 + (h>>0)&127),
		G: uint8(96 + (h>>8)&127),
		B: uint8(96 + (h>>16)&127),
		A: 255,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
