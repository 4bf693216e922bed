package models

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestMeshBufferLayout(t *testing.T) {
	mesh := unitTriangle(t)

	verts := mesh.VertexData()
	if len(verts) != 3*VertexComponents {
		t.Fatalf("Expected %d floats, got %d", 3*VertexComponents, len(verts))
	}
	if verts[4] != 1 || verts[7] != 1 {
		t.Errorf("Second vertex should be (1,0,0,1), got %v", verts[4:8])
	}

	if got := len(mesh.NormalData()); got != 3*NormalComponents {
		t.Errorf("Expected %d normal floats, got %d", 3*NormalComponents, got)
	}

	uvs := mesh.UVData()
	if len(uvs) != 3*UVComponents || uvs[5] != 1 {
		t.Errorf("Unexpected uv data %v", uvs)
	}

	idx := mesh.IndexData()
	idx[0] = 9
	if mesh.Indices[0] != 0 {
		t.Error("IndexData should return a copy")
	}
}

func TestFloat32Bytes(t *testing.T) {
	b := Float32Bytes([]float32{1, -2.5})
	if len(b) != 8 {
		t.Fatalf("Expected 8 bytes, got %d", len(b))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(b[4:])); got != -2.5 {
		t.Errorf("Expected -2.5, got %v", got)
	}
}

func TestUint32Bytes(t *testing.T) {
	b := Uint32Bytes([]uint32{0x01020304})
	if b[0] != 0x04 || b[3] != 0x01 {
		t.Errorf("Expected little-endian bytes, got %v", b)
	}
}
