package models

import (
	"fmt"

	"github.com/taigrr/meshkit/pkg/math3d"
)

// MeshBuilder accumulates raw attribute pools and per-corner index streams
// for one object, then flattens them into a Mesh.
//
// Indices are 0-based. Each face corner appends one entry to each index
// stream it carries, so for well-formed triangle input the three streams
// stay in lock-step.
type MeshBuilder struct {
	Name string

	Vertices []math3d.Vec4
	Normals  []math3d.Vec4
	UVs      []math3d.Vec2

	VertexIndices []uint32
	NormalIndices []uint32
	UVIndices     []uint32
}

// IsEmpty reports whether nothing has been accumulated.
func (b *MeshBuilder) IsEmpty() bool {
	return len(b.Vertices) == 0 && len(b.VertexIndices) == 0 &&
		len(b.Normals) == 0 && len(b.NormalIndices) == 0 &&
		len(b.UVs) == 0 && len(b.UVIndices) == 0
}

// HasFaces reports whether at least one corner has been recorded.
func (b *MeshBuilder) HasFaces() bool {
	return len(b.VertexIndices) > 0
}

// Reset clears the builder. With keepPools set the raw attribute pools
// survive and only the name and index streams are cleared.
func (b *MeshBuilder) Reset(keepPools bool) {
	b.Name = ""
	b.VertexIndices = nil
	b.NormalIndices = nil
	b.UVIndices = nil
	if keepPools {
		return
	}
	b.Vertices = nil
	b.Normals = nil
	b.UVs = nil
}

// Build flattens the indexed attributes into parallel per-corner arrays.
// Every corner becomes its own vertex; no vertices are shared, and the
// resulting index buffer is 0..N-1 where N is the corner count.
//
// An index that does not address its pool fails with ErrIndexOutOfRange.
func (b *MeshBuilder) Build() (*Mesh, error) {
	n := len(b.VertexIndices)

	vertices, err := remap(b.Vertices, b.VertexIndices, n, "vertex")
	if err != nil {
		return nil, err
	}
	normals, err := remap(b.Normals, b.NormalIndices, n, "normal")
	if err != nil {
		return nil, err
	}
	uvs, err := remap(b.UVs, b.UVIndices, n, "uv")
	if err != nil {
		return nil, err
	}

	indices := make([]uint32, n)
	for i := range indices {
		indices[i] = uint32(i)
	}

	mesh := &Mesh{
		Name:       b.Name,
		Vertices:   vertices,
		Normals:    normals,
		UVs:        uvs,
		Indices:    indices,
		HasNormals: len(b.NormalIndices) > 0,
		HasUVs:     len(b.UVIndices) > 0,
	}
	mesh.CalculateBounds()
	return mesh, nil
}

// remap writes pool[indices[i]] into slot i of an n-sized array. Slots past
// len(indices) keep the zero value.
func remap[T any](pool []T, indices []uint32, n int, what string) ([]T, error) {
	out := make([]T, n)
	for i, idx := range indices {
		if i >= n {
			return nil, fmt.Errorf("%s stream has %d entries for %d corners: %w",
				what, len(indices), n, ErrIndexOutOfRange)
		}
		if int(idx) >= len(pool) {
			return nil, fmt.Errorf("%s index %d with %d defined: %w",
				what, idx+1, len(pool), ErrIndexOutOfRange)
		}
		out[i] = pool[idx]
	}
	return out, nil
}
