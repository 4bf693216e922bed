package render

import (
	"github.com/taigrr/meshkit/pkg/math3d"
)

// MeshSource is the triangle-list view of a mesh the renderers draw from.
// *models.Mesh satisfies it.
type MeshSource interface {
	TriangleCount() int
	GetFace(i int) [3]uint32
	GetVertex(i int) (pos, normal math3d.Vec4, uv math3d.Vec2)
}

// Wireframe draws triangle edges as clipped lines.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// drawClipLine clips a clip-space segment and rasterizes what remains.
func (w *Wireframe) drawClipLine(a, b math3d.Vec4, color Color) {
	a, b, ok := clipLine(a, b)
	if !ok {
		return
	}
	x0, y0, _ := toScreen(a, w.fb.Width, w.fb.Height)
	x1, y1, _ := toScreen(b, w.fb.Width, w.fb.Height)
	w.fb.DrawLine(int(x0), int(y0), int(x1), int(y1), color)
}

// DrawLine3D draws a world-space line.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	vp := w.camera.ViewProjectionMatrix()
	w.drawClipLine(vp.MulVec4(math3d.V4FromV3(p1, 1)), vp.MulVec4(math3d.V4FromV3(p2, 1)), color)
}

// DrawMesh draws every triangle edge of mesh placed by the model matrix.
func (w *Wireframe) DrawMesh(mesh MeshSource, model math3d.Mat4, color Color) {
	mvp := w.camera.ViewProjectionMatrix().Mul(model)

	for i := range mesh.TriangleCount() {
		face := mesh.GetFace(i)
		var clip [3]math3d.Vec4
		for j, idx := range face {
			pos, _, _ := mesh.GetVertex(int(idx))
			clip[j] = mvp.MulVec4(pos)
		}
		w.drawClipLine(clip[0], clip[1], color)
		w.drawClipLine(clip[1], clip[2], color)
		w.drawClipLine(clip[2], clip[0], color)
	}
}

// DrawBounds draws the box [lo, hi] placed by the model matrix.
func (w *Wireframe) DrawBounds(lo, hi math3d.Vec3, model math3d.Mat4, color Color) {
	corners := [8]math3d.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}

	mvp := w.camera.ViewProjectionMatrix().Mul(model)
	var clip [8]math3d.Vec4
	for i, c := range corners {
		clip[i] = mvp.MulVec4(math3d.V4FromV3(c, 1))
	}

	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	for _, e := range edges {
		w.drawClipLine(clip[e[0]], clip[e[1]], color)
	}
}

// DrawAxes draws the world axes from the origin.
func (w *Wireframe) DrawAxes(length float32) {
	origin := math3d.Vec3{}
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)
	w.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen)
	w.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)
}
