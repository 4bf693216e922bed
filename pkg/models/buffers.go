package models

import (
	"encoding/binary"
	"math"
)

// Component counts per vertex in the flat buffers.
const (
	VertexComponents = 4
	NormalComponents = 4
	UVComponents     = 2
)

// VertexData flattens positions as x, y, z, w per vertex.
func (m *Mesh) VertexData() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexComponents)
	for _, v := range m.Vertices {
		out = append(out, v.X, v.Y, v.Z, v.W)
	}
	return out
}

// NormalData flattens normals as x, y, z, w per vertex.
func (m *Mesh) NormalData() []float32 {
	out := make([]float32, 0, len(m.Normals)*NormalComponents)
	for _, n := range m.Normals {
		out = append(out, n.X, n.Y, n.Z, n.W)
	}
	return out
}

// UVData flattens texture coordinates as u, v per vertex.
func (m *Mesh) UVData() []float32 {
	out := make([]float32, 0, len(m.UVs)*UVComponents)
	for _, uv := range m.UVs {
		out = append(out, uv.X, uv.Y)
	}
	return out
}

// IndexData returns a copy of the triangle-list index buffer.
func (m *Mesh) IndexData() []uint32 {
	return append([]uint32(nil), m.Indices...)
}

// Float32Bytes encodes data little-endian, the byte order GPU buffer
// uploads expect.
func Float32Bytes(data []float32) []byte {
	out := make([]byte, len(data)*4)
	for i, f := range data {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

// Uint32Bytes encodes data little-endian.
func Uint32Bytes(data []uint32) []byte {
	out := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return out
}
