package models

import (
	"math"
	"testing"

	"github.com/taigrr/meshkit/pkg/math3d"
)

func unitTriangle(t *testing.T) *Mesh {
	t.Helper()
	model, err := ParseOBJ(triangleOBJ)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	return model.Mesh(0)
}

func TestMeshBounds(t *testing.T) {
	mesh := unitTriangle(t)

	lo, hi := mesh.GetBounds()
	if lo != math3d.V3(0, 0, 0) || hi != math3d.V3(1, 1, 0) {
		t.Errorf("Unexpected bounds %v %v", lo, hi)
	}
	if mesh.Center() != math3d.V3(0.5, 0.5, 0) {
		t.Errorf("Unexpected center %v", mesh.Center())
	}
	if mesh.Size() != math3d.V3(1, 1, 0) {
		t.Errorf("Unexpected size %v", mesh.Size())
	}
}

func TestMeshTransform(t *testing.T) {
	mesh := unitTriangle(t)

	tr := math3d.NewTransform()
	tr.Position = math3d.V4(0, 0, -2, 1)
	tr.Rotation = math3d.QuatFromAxisAngle(math3d.UnitY(), math.Pi)
	mesh.Transform(tr.Matrix())

	v := mesh.Vertices[1]
	if math.Abs(float64(v.X+1)) > 1e-5 || math.Abs(float64(v.Z+2)) > 1e-5 || v.W != 1 {
		t.Errorf("Expected vertex near (-1,0,-2,1), got %v", v)
	}

	n := mesh.Normals[0]
	if math.Abs(float64(n.Z+1)) > 1e-5 || n.W != 1 {
		t.Errorf("Expected normal near (0,0,-1,1), got %v", n)
	}
	if mesh.BoundsMin.Z > -1.99 {
		t.Errorf("Bounds should follow the transform, got %v", mesh.BoundsMin)
	}
}

func TestMeshClone(t *testing.T) {
	mesh := unitTriangle(t)
	clone := mesh.Clone()

	clone.Vertices[0].X = 42
	clone.Indices[0] = 7
	if mesh.Vertices[0].X == 42 || mesh.Indices[0] == 7 {
		t.Error("Clone should have independent buffers")
	}
	if clone.Name != mesh.Name || clone.HasUVs != mesh.HasUVs {
		t.Error("Clone should preserve metadata")
	}
}

func TestMeshGetFace(t *testing.T) {
	mesh := unitTriangle(t)
	if mesh.GetFace(0) != [3]uint32{0, 1, 2} {
		t.Errorf("Unexpected face %v", mesh.GetFace(0))
	}

	pos, normal, uv := mesh.GetVertex(1)
	if pos != math3d.V4(1, 0, 0, 1) || normal.Z != 1 || uv != math3d.V2(1, 0) {
		t.Errorf("Unexpected vertex %v %v %v", pos, normal, uv)
	}
}

func TestModelTotals(t *testing.T) {
	a := unitTriangle(t)
	b := a.Clone()
	b.Transform(math3d.FromRotationTranslation(math3d.QuatIdentity(), math3d.V4(0, 0, 5, 1)))

	model := &Model{Meshes: []*Mesh{a, b, {}}}
	if model.VertexCount() != 6 || model.TriangleCount() != 2 {
		t.Errorf("Expected 6 vertices and 2 triangles, got %d and %d", model.VertexCount(), model.TriangleCount())
	}

	lo, hi, ok := model.Bounds()
	if !ok || lo != math3d.V3(0, 0, 0) || hi != math3d.V3(1, 1, 5) {
		t.Errorf("Unexpected model bounds %v %v %v", lo, hi, ok)
	}

	if model.Mesh(3) != nil || model.Mesh(-1) != nil {
		t.Error("Out of range Mesh lookups should return nil")
	}

	if _, _, ok := (&Model{}).Bounds(); ok {
		t.Error("Empty model should have no bounds")
	}
}
