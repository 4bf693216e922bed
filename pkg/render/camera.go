package render

import (
	"github.com/chewxy/math32"

	"github.com/taigrr/meshkit/pkg/math3d"
)

// Camera is a perspective camera looking from Position at Target with +Y up.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3

	FOV         float32 // vertical, radians
	AspectRatio float32 // width / height
	Near        float32
	Far         float32
}

// NewCamera creates a camera three units back from the origin.
func NewCamera() *Camera {
	return &Camera{
		Position:    math3d.V3(0, 0, 3),
		FOV:         math32.Pi / 3,
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         100,
	}
}

// ViewMatrix returns the world to camera transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	f := c.Target.Sub(c.Position).Normalize()
	s := f.Cross(math3d.V3(0, 1, 0))
	if s.Len() < 1e-6 {
		// Looking straight up or down.
		s = math3d.V3(1, 0, 0)
	}
	s = s.Normalize()
	u := s.Cross(f)
	e := c.Position

	return math3d.Mat4{
		AxisX:       math3d.V4(s.X, u.X, -f.X, 0),
		AxisY:       math3d.V4(s.Y, u.Y, -f.Y, 0),
		AxisZ:       math3d.V4(s.Z, u.Z, -f.Z, 0),
		Translation: math3d.V4(-s.Dot(e), -u.Dot(e), f.Dot(e), 1),
	}
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
}

// ViewProjectionMatrix returns projection * view.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// Frame aims the camera at the box [lo, hi] from +Z and backs off until
// the box's bounding sphere fits the vertical field of view.
func (c *Camera) Frame(lo, hi math3d.Vec3) {
	center := lo.Add(hi).Scale(0.5)
	radius := hi.Sub(lo).Len() * 0.5
	if radius == 0 {
		radius = 1
	}

	dist := radius / math32.Sin(c.FOV*0.5)
	c.Target = center
	c.Position = center.Add(math3d.V3(0, 0, dist))
	c.Near = dist * 0.01
	c.Far = dist + radius*4
}

// WorldToScreen projects a world point to pixel coordinates. visible is
// false when the point lies outside the view volume.
func (c *Camera) WorldToScreen(p math3d.Vec3, width, height int) (x, y, depth float32, visible bool) {
	clip := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(p, 1))
	if !insideClip(clip) {
		return 0, 0, 0, false
	}
	x, y, depth = toScreen(clip, width, height)
	return x, y, depth, true
}

// toScreen performs the perspective divide and maps NDC to pixels with Y
// pointing down.
func toScreen(clip math3d.Vec4, width, height int) (x, y, depth float32) {
	ndc := clip.Div(clip.W)
	x = (ndc.X + 1) * 0.5 * float32(width)
	y = (1 - ndc.Y) * 0.5 * float32(height)
	return x, y, ndc.Z
}
