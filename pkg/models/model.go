package models

import "github.com/taigrr/meshkit/pkg/math3d"

// Model is the ordered list of meshes parsed from one document.
// Treat it as read-only once returned by a loader.
type Model struct {
	Name   string
	Meshes []*Mesh
}

// Len returns the number of meshes.
func (m *Model) Len() int {
	return len(m.Meshes)
}

// Mesh returns the mesh at index i, or nil if i is out of range.
func (m *Model) Mesh(i int) *Mesh {
	if i < 0 || i >= len(m.Meshes) {
		return nil
	}
	return m.Meshes[i]
}

// VertexCount returns the flattened vertex total over all meshes.
func (m *Model) VertexCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += mesh.VertexCount()
	}
	return n
}

// TriangleCount returns the triangle total over all meshes.
func (m *Model) TriangleCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += mesh.TriangleCount()
	}
	return n
}

// Bounds returns the box enclosing every non-empty mesh. ok is false when
// the model has no vertices.
func (m *Model) Bounds() (lo, hi math3d.Vec3, ok bool) {
	for _, mesh := range m.Meshes {
		if mesh.VertexCount() == 0 {
			continue
		}
		if !ok {
			lo, hi, ok = mesh.BoundsMin, mesh.BoundsMax, true
			continue
		}
		lo = lo.Min(mesh.BoundsMin)
		hi = hi.Max(mesh.BoundsMax)
	}
	return lo, hi, ok
}
