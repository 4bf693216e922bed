package render

import (
	"github.com/chewxy/math32"

	"github.com/taigrr/meshkit/pkg/math3d"
)

// Ambient is the light level of faces turned away from the light.
const Ambient = 0.2

// Rasterizer fills mesh triangles with Gouraud shading and a depth buffer.
type Rasterizer struct {
	camera                 *Camera
	fb                     *Framebuffer
	zbuffer                []float32
	CullingStats           CullingStats
	DisableBackfaceCulling bool
}

// CullingStats counts per-frame mesh culling decisions.
type CullingStats struct {
	MeshesTested int
	MeshesCulled int
	MeshesDrawn  int
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		camera: camera,
		fb:     fb,
	}
	r.Resize()
	return r
}

// Resize resizes the depth buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	r.zbuffer = make([]float32, r.fb.Width*r.fb.Height)
	r.ClearDepth()
}

// ClearDepth resets the depth buffer. Call before each frame.
func (r *Rasterizer) ClearDepth() {
	if len(r.zbuffer) != r.fb.Width*r.fb.Height {
		r.zbuffer = make([]float32, r.fb.Width*r.fb.Height)
	}
	inf := math32.Inf(1)
	for i := range r.zbuffer {
		r.zbuffer[i] = inf
	}
}

// ResetCullingStats clears the culling counters.
func (r *Rasterizer) ResetCullingStats() {
	r.CullingStats = CullingStats{}
}

// BoundedMeshSource is a MeshSource that also reports its bounding box.
type BoundedMeshSource interface {
	MeshSource
	GetBounds() (min, max math3d.Vec3)
}

// culled reports whether every corner of the mesh's bounds lies outside
// the same view volume plane.
func (r *Rasterizer) culled(mesh MeshSource, mvp math3d.Mat4) bool {
	bounded, ok := mesh.(BoundedMeshSource)
	if !ok {
		return false
	}
	r.CullingStats.MeshesTested++

	lo, hi := bounded.GetBounds()
	var outside [6]int
	for i := range 8 {
		c := lo
		if i&1 != 0 {
			c.X = hi.X
		}
		if i&2 != 0 {
			c.Y = hi.Y
		}
		if i&4 != 0 {
			c.Z = hi.Z
		}
		for p, d := range clipDistances(mvp.MulVec4(math3d.V4FromV3(c, 1))) {
			if d < 0 {
				outside[p]++
			}
		}
	}

	for _, n := range outside {
		if n == 8 {
			r.CullingStats.MeshesCulled++
			return true
		}
	}
	r.CullingStats.MeshesDrawn++
	return false
}

type screenVertex struct {
	X, Y, Z   float32
	Intensity float32
}

// DrawMesh fills every triangle of mesh placed by the model matrix.
// lightDir is the direction the light travels. Vertices without a normal
// use their face normal.
func (r *Rasterizer) DrawMesh(mesh MeshSource, model math3d.Mat4, color Color, lightDir math3d.Vec3) {
	mvp := r.camera.ViewProjectionMatrix().Mul(model)
	if r.culled(mesh, mvp) {
		return
	}
	toLight := lightDir.Negate().Normalize()

	for i := range mesh.TriangleCount() {
		face := mesh.GetFace(i)

		var world [3]math3d.Vec3
		var normals [3]math3d.Vec3
		var sv [3]screenVertex
		visible := true
		for j, idx := range face {
			pos, n, _ := mesh.GetVertex(int(idx))
			world[j] = model.MulVec4(pos).Vec3()
			n.W = 0
			normals[j] = model.MulVec4(n).Vec3()

			clip := mvp.MulVec4(pos)
			if clip.W <= 0 || clip.W+clip.Z < 0 {
				visible = false
				break
			}
			sv[j].X, sv[j].Y, sv[j].Z = toScreen(clip, r.fb.Width, r.fb.Height)
		}
		if !visible {
			continue
		}

		faceNormal := world[1].Sub(world[0]).Cross(world[2].Sub(world[0]))
		for j := range sv {
			n := normals[j]
			if n.Len() == 0 {
				n = faceNormal
			}
			if n.Len() == 0 {
				sv[j].Intensity = Ambient
				continue
			}
			sv[j].Intensity = Ambient + (1-Ambient)*max(0, n.Normalize().Dot(toLight))
		}

		r.fillTriangle(sv, color)
	}
}

func (r *Rasterizer) fillTriangle(sv [3]screenVertex, color Color) {
	// Counter-clockwise faces in NDC are clockwise once Y points down.
	cross := (sv[1].X-sv[0].X)*(sv[2].Y-sv[0].Y) - (sv[1].Y-sv[0].Y)*(sv[2].X-sv[0].X)
	if cross == 0 || (cross > 0 && !r.DisableBackfaceCulling) {
		return
	}

	minX := max(0, int(math32.Floor(min(sv[0].X, sv[1].X, sv[2].X))))
	maxX := min(r.fb.Width-1, int(math32.Ceil(max(sv[0].X, sv[1].X, sv[2].X))))
	minY := max(0, int(math32.Floor(min(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := min(r.fb.Height-1, int(math32.Ceil(max(sv[0].Y, sv[1].Y, sv[2].Y))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float32(x)+0.5, float32(y)+0.5

			bc := barycentric(
				sv[0].X, sv[0].Y,
				sv[1].X, sv[1].Y,
				sv[2].X, sv[2].Y,
				px, py,
			)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			z := bc.X*sv[0].Z + bc.Y*sv[1].Z + bc.Z*sv[2].Z
			i := y*r.fb.Width + x
			if z >= r.zbuffer[i] {
				continue
			}

			intensity := bc.X*sv[0].Intensity + bc.Y*sv[1].Intensity + bc.Z*sv[2].Intensity
			r.zbuffer[i] = z
			r.fb.SetPixel(x, y, Shade(color, intensity))
		}
	}
}

// barycentric calculates barycentric coordinates for point (px, py) in triangle.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float32) math3d.Vec3 {
	v0x, v0y := x2-x0, y2-y0
	v1x, v1y := x1-x0, y1-y0
	v2x, v2y := px-x0, py-y0

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	invDenom := 1 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return math3d.V3(1-u-v, v, u)
}
