// Package models turns Wavefront OBJ and glTF sources into flattened meshes
// whose attribute arrays can be uploaded to GPU buffers as-is.
package models

import (
	"github.com/taigrr/meshkit/pkg/math3d"
)

// Mesh is a flattened triangle list. Vertices, Normals and UVs are parallel
// arrays of equal length and Indices is 0..len(Vertices)-1, one entry per
// triangle corner.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec4 // W is 1 unless the source gave a weight
	Normals  []math3d.Vec4 // W is 1; zero when the source had no normals
	UVs      []math3d.Vec2
	Indices  []uint32

	HasNormals bool
	HasUVs     bool

	// Bounding box (calculated on build)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Vec3()
	m.BoundsMax = m.Vertices[0].Vec3()

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Vec3())
		m.BoundsMax = m.BoundsMax.Max(v.Vec3())
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// VertexCount returns the number of flattened vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// CalculateNormals assigns each triangle's face normal to its three corners.
// Flattened meshes share no vertices, so this is exact flat shading.
// Degenerate triangles get NaN normals.
func (m *Mesh) CalculateNormals() {
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		v0 := m.Vertices[i0].Vec3()
		v1 := m.Vertices[i1].Vec3()
		v2 := m.Vertices[i2].Vec3()

		n := math3d.V4FromV3(v1.Sub(v0).Cross(v2.Sub(v0)).Normalize(), 1)
		m.Normals[i0] = n
		m.Normals[i1] = n
		m.Normals[i2] = n
	}
	m.HasNormals = true
}

// Transform applies a transformation matrix to all vertices and normals.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec4(m.Vertices[i])
	}
	if m.HasNormals {
		// Normals are directions: drop translation, renormalise, restore W.
		for i := range m.Normals {
			n := m.Normals[i]
			n.W = 0
			n = mat.MulVec4(n)
			m.Normals[i] = math3d.V4FromV3(n.Vec3().Normalize(), 1)
		}
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := *m
	clone.Vertices = append([]math3d.Vec4(nil), m.Vertices...)
	clone.Normals = append([]math3d.Vec4(nil), m.Normals...)
	clone.UVs = append([]math3d.Vec2(nil), m.UVs...)
	clone.Indices = append([]uint32(nil), m.Indices...)
	return &clone
}

// GetVertex returns the position, normal, and UV for vertex i.
func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec4, uv math3d.Vec2) {
	return m.Vertices[i], m.Normals[i], m.UVs[i]
}

// GetFace returns the vertex indices for triangle i.
func (m *Mesh) GetFace(i int) [3]uint32 {
	return [3]uint32{m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]}
}

// GetBounds returns the axis-aligned bounding box.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}
