package math3d

import (
	"math"
	"testing"
)

func sampleMatrix() Mat4 {
	return NewMat4(
		V4(1, 2, 3, 4),
		V4(5, 6, 7, 8),
		V4(9, 10, 11, 12),
		V4(13, 14, 15, 16),
	)
}

func TestIdentityMulVec4(t *testing.T) {
	for _, v := range []Vec4{V4(1, 2, 3, 1), V4(-4, 0.5, 9, 0), V4(7, 7, 7, 3)} {
		if got := Identity().MulVec4(v); got != v {
			t.Errorf("I * v: got %v, want %v", got, v)
		}
	}
}

func TestIdentityMulMatrix(t *testing.T) {
	m := sampleMatrix()
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * M should equal M, got %+v", got)
	}
	if got := m.Mul(Identity()); got != m {
		t.Errorf("M * I should equal M, got %+v", got)
	}
}

func TestMulVec4Translation(t *testing.T) {
	m := FromRotationTranslation(QuatIdentity(), V4(10, 20, 30, 1))

	point := m.MulVec4(V4(1, 2, 3, 1))
	if point != V4(11, 22, 33, 1) {
		t.Errorf("Point should be translated, got %v", point)
	}

	dir := m.MulVec4(V4(1, 2, 3, 0))
	if dir != V4(1, 2, 3, 0) {
		t.Errorf("Direction should ignore translation, got %v", dir)
	}
}

func TestMulOrder(t *testing.T) {
	rot := FromRotation(QuatFromAxisAngle(UnitZ(), math.Pi/2))
	move := FromRotationTranslation(QuatIdentity(), V4(1, 0, 0, 1))

	// Rotate first, then translate.
	got := move.Mul(rot).MulVec4(V4(1, 0, 0, 1))
	if !approxVec4(got, V4(1, 1, 0, 1)) {
		t.Errorf("Expected (1,1,0,1), got %v", got)
	}

	// Translate first, then rotate.
	got = rot.Mul(move).MulVec4(V4(1, 0, 0, 1))
	if !approxVec4(got, V4(0, 2, 0, 1)) {
		t.Errorf("Expected (0,2,0,1), got %v", got)
	}
}

func TestFromRotationAboutY(t *testing.T) {
	m := FromRotation(QuatFromAxisAngle(UnitY(), math.Pi/2))
	got := m.MulVec4(V4(1, 0, 0, 0))
	if !approxVec4(got, V4(0, 0, -1, 0)) {
		t.Errorf("Rotating +X by 90deg about Y should give -Z, got %v", got)
	}
}

func TestTranspose(t *testing.T) {
	m := sampleMatrix()
	tr := m.Transpose()
	if tr.AxisX != V4(1, 5, 9, 13) || tr.Translation != V4(4, 8, 12, 16) {
		t.Errorf("Unexpected transpose %+v", tr)
	}
	if tr.Transpose() != m {
		t.Error("Transposing twice should give the original matrix")
	}
}

func TestArrayColumnMajor(t *testing.T) {
	a := sampleMatrix().Array()
	for i := range 16 {
		if a[i] != float32(i+1) {
			t.Errorf("element %d: got %v, want %v", i, a[i], i+1)
		}
	}
	if got := sampleMatrix().Get(0, 3); got != 13 {
		t.Errorf("Get(0,3) should be translation X 13, got %v", got)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(math.Pi/2, 2, 1, 3)
	if !approx(m.AxisY.Y, 1) || !approx(m.AxisX.X, 0.5) {
		t.Errorf("Unexpected focal scales %v %v", m.AxisX.X, m.AxisY.Y)
	}
	if m.AxisZ.W != -1 {
		t.Errorf("Expected AxisZ.W -1, got %v", m.AxisZ.W)
	}

	// A point on the near plane maps to NDC depth -1.
	clip := m.MulVec4(V4(0, 0, -1, 1))
	if !approx(clip.Z/clip.W, -1) {
		t.Errorf("Near plane depth should be -1, got %v", clip.Z/clip.W)
	}
}

func TestTransformMatrix(t *testing.T) {
	tr := NewTransform()
	tr.Position = V4(0, 0, -5, 1)
	tr.Scale = V4(2, 2, 2, 1)
	tr.Rotate(QuatFromAxisAngle(UnitY(), math.Pi/2))

	got := tr.Matrix().MulVec4(V4(1, 0, 0, 1))
	if !approxVec4(got, V4(0, 0, -7, 1)) {
		t.Errorf("Expected (0,0,-7,1), got %v", got)
	}

	if NewTransform().Matrix() != Identity() {
		t.Error("Default transform should produce the identity matrix")
	}
}

func TestTransformRotateStaysUnit(t *testing.T) {
	tr := NewTransform()
	step := QuatFromAxisAngle(UnitY(), 0.0137)
	for range 200000 {
		tr.Rotate(step)
	}

	if n := tr.Rotation.Components().Len(); !approx(n, 1) {
		t.Errorf("Expected unit rotation after repeated spins, got length %v", n)
	}
	if l := tr.Matrix().AxisX.Len(); !approx(l, 1) {
		t.Errorf("Expected model matrix to keep unit scale, got axis length %v", l)
	}
}
