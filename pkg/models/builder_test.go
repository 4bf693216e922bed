package models

import (
	"errors"
	"testing"

	"github.com/taigrr/meshkit/pkg/math3d"
)

func TestMeshBuilderIsEmpty(t *testing.T) {
	var b MeshBuilder
	if !b.IsEmpty() {
		t.Error("New builder should be empty")
	}

	b.UVs = append(b.UVs, math3d.V2(0, 0))
	if b.IsEmpty() {
		t.Error("Builder with a uv should not be empty")
	}

	b.Reset(false)
	if !b.IsEmpty() {
		t.Error("Reset builder should be empty")
	}
}

func TestMeshBuilderResetKeepPools(t *testing.T) {
	b := MeshBuilder{
		Name:          "keep",
		Vertices:      []math3d.Vec4{{W: 1}},
		VertexIndices: []uint32{0},
	}
	b.Reset(true)
	if len(b.Vertices) != 1 {
		t.Errorf("Expected pools kept, got %d vertices", len(b.Vertices))
	}
	if b.HasFaces() || b.Name != "" {
		t.Error("Expected index streams and name cleared")
	}
}

func TestMeshBuilderBuildRemaps(t *testing.T) {
	b := MeshBuilder{
		Vertices:      []math3d.Vec4{math3d.V4(0, 0, 0, 1), math3d.V4(1, 0, 0, 1), math3d.V4(0, 1, 0, 1)},
		Normals:       []math3d.Vec4{math3d.V4(0, 0, 1, 1), math3d.V4(0, 0, -1, 1)},
		UVs:           []math3d.Vec2{math3d.V2(0.5, 0.5)},
		VertexIndices: []uint32{2, 1, 0},
		NormalIndices: []uint32{1, 1, 0},
		UVIndices:     []uint32{0, 0, 0},
	}

	mesh, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if mesh.Vertices[0] != b.Vertices[2] || mesh.Vertices[2] != b.Vertices[0] {
		t.Errorf("Vertices not remapped: %v", mesh.Vertices)
	}
	if mesh.Normals[0] != b.Normals[1] || mesh.Normals[2] != b.Normals[0] {
		t.Errorf("Normals not remapped: %v", mesh.Normals)
	}
	if mesh.UVs[1] != b.UVs[0] {
		t.Errorf("UVs not remapped: %v", mesh.UVs)
	}
	if mesh.BoundsMax != math3d.V3(1, 1, 0) {
		t.Errorf("Expected bounds max (1,1,0), got %v", mesh.BoundsMax)
	}
}

func TestMeshBuilderMissingStreamsStayZero(t *testing.T) {
	b := MeshBuilder{
		Vertices:      []math3d.Vec4{math3d.V4(1, 2, 3, 1)},
		VertexIndices: []uint32{0, 0, 0},
	}

	mesh, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(mesh.Normals) != 3 || len(mesh.UVs) != 3 {
		t.Fatalf("Expected 3 zero normals and uvs, got %d and %d", len(mesh.Normals), len(mesh.UVs))
	}
	if mesh.Normals[1] != (math3d.Vec4{}) || mesh.HasNormals || mesh.HasUVs {
		t.Errorf("Expected zero normals and no attribute flags, got %+v", mesh)
	}
}

func TestMeshBuilderOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		b    MeshBuilder
	}{
		{"vertex", MeshBuilder{VertexIndices: []uint32{0}}},
		{"normal", MeshBuilder{
			Vertices:      []math3d.Vec4{{}},
			VertexIndices: []uint32{0},
			NormalIndices: []uint32{3},
		}},
		{"uv", MeshBuilder{
			Vertices:      []math3d.Vec4{{}},
			VertexIndices: []uint32{0},
			UVIndices:     []uint32{1},
		}},
		{"stream longer than corners", MeshBuilder{
			Vertices:      []math3d.Vec4{{}},
			UVs:           []math3d.Vec2{{}},
			VertexIndices: []uint32{0},
			UVIndices:     []uint32{0, 0},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.b.Build()
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
			}
		})
	}
}
