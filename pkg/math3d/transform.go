package math3d

// Transform is the per-instance placement of a mesh: where it is, how big it
// is and how it is oriented.
type Transform struct {
	Position Vec4 // W should be 1
	Scale    Vec4
	Rotation Quat
}

// NewTransform returns a transform at the origin with unit scale and no rotation.
func NewTransform() Transform {
	return Transform{
		Position: UnitW(),
		Scale:    V4(1, 1, 1, 1),
		Rotation: QuatIdentity(),
	}
}

// Rotate appends q to the current rotation (Rotation = Rotation * q).
// The product is renormalised so repeated small rotations do not drift.
func (t *Transform) Rotate(q Quat) {
	t.Rotation = t.Rotation.Mul(q).Normalize()
}

// Matrix composes translation * rotation * scale, so the mesh is scaled in
// its own space, then rotated, then moved to Position.
func (t Transform) Matrix() Mat4 {
	return FromRotationTranslation(t.Rotation, t.Position).
		Mul(ScaleTranslation(t.Scale, UnitW()))
}
