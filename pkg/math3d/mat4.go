package math3d

import "github.com/chewxy/math32"

// Mat4 is an affine 4x4 matrix stored as four column vectors.
//
// | AxisX.X AxisY.X AxisZ.X Translation.X |
// | AxisX.Y AxisY.Y AxisZ.Y Translation.Y |
// | AxisX.Z AxisY.Z AxisZ.Z Translation.Z |
// | AxisX.W AxisY.W AxisZ.W Translation.W |
//
// Vectors are columns: m.MulVec4(v) computes M·v.
type Mat4 struct {
	AxisX       Vec4
	AxisY       Vec4
	AxisZ       Vec4
	Translation Vec4
}

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		AxisX:       UnitX(),
		AxisY:       UnitY(),
		AxisZ:       UnitZ(),
		Translation: UnitW(),
	}
}

// NewMat4 creates a matrix from its four columns.
func NewMat4(axisX, axisY, axisZ, translation Vec4) Mat4 {
	return Mat4{axisX, axisY, axisZ, translation}
}

// FromRotation creates a rotation matrix with no translation.
func FromRotation(q Quat) Mat4 {
	return FromRotationTranslation(q, UnitW())
}

// FromRotationTranslation expands q into the basis columns and places
// translation in the fourth column. translation.W should be 1.
func FromRotationTranslation(q Quat, translation Vec4) Mat4 {
	c := q.Components()
	xq := c.Scale(q.A * 2)
	yq := c.Scale(q.B * 2)
	zq := c.Scale(q.C * 2)

	return Mat4{
		AxisX:       Vec4{1 - yq.Y - zq.Z, xq.Y + zq.W, xq.Z - yq.W, 0},
		AxisY:       Vec4{xq.Y - zq.W, 1 - xq.X - zq.Z, yq.Z + xq.W, 0},
		AxisZ:       Vec4{xq.Z + yq.W, yq.Z - xq.W, 1 - xq.X - yq.Y, 0},
		Translation: translation,
	}
}

// ScaleTranslation creates a matrix whose basis is scaled by the X, Y and Z
// lanes of scale, with translation in the fourth column.
func ScaleTranslation(scale, translation Vec4) Mat4 {
	return Mat4{
		AxisX:       scale.XVec(),
		AxisY:       scale.YVec(),
		AxisZ:       scale.ZVec(),
		Translation: translation,
	}
}

// Perspective creates a right-handed perspective projection.
// fovy is the vertical field of view in radians, aspect is width/height.
func Perspective(fovy, aspect, near, far float32) Mat4 {
	ys := 1 / math32.Tan(fovy*0.5)
	xs := ys / aspect
	zs := -(far + near) / (far - near)
	zss := -(2 * far * near) / (far - near)

	return Mat4{
		AxisX:       Vec4{xs, 0, 0, 0},
		AxisY:       Vec4{0, ys, 0, 0},
		AxisZ:       Vec4{0, 0, zs, -1},
		Translation: Vec4{0, 0, zss, 0},
	}
}

// MulVec4 transforms v. W selects whether translation applies:
// 1 for points, 0 for directions.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return m.AxisX.Scale(v.X).
		Add(m.AxisY.Scale(v.Y)).
		Add(m.AxisZ.Scale(v.Z)).
		Add(m.Translation.Scale(v.W))
}

// Mul multiplies two matrices: a * b. The columns of b, translation
// included, are transformed by a.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	return Mat4{
		AxisX:       a.MulVec4(b.AxisX),
		AxisY:       a.MulVec4(b.AxisY),
		AxisZ:       a.MulVec4(b.AxisZ),
		Translation: a.MulVec4(b.Translation),
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		AxisX:       Vec4{m.AxisX.X, m.AxisY.X, m.AxisZ.X, m.Translation.X},
		AxisY:       Vec4{m.AxisX.Y, m.AxisY.Y, m.AxisZ.Y, m.Translation.Y},
		AxisZ:       Vec4{m.AxisX.Z, m.AxisY.Z, m.AxisZ.Z, m.Translation.Z},
		Translation: Vec4{m.AxisX.W, m.AxisY.W, m.AxisZ.W, m.Translation.W},
	}
}

// Array flattens the matrix column by column, the layout GPU uniform
// buffers expect.
func (m Mat4) Array() [16]float32 {
	return [16]float32{
		m.AxisX.X, m.AxisX.Y, m.AxisX.Z, m.AxisX.W,
		m.AxisY.X, m.AxisY.Y, m.AxisY.Z, m.AxisY.W,
		m.AxisZ.X, m.AxisZ.Y, m.AxisZ.Z, m.AxisZ.W,
		m.Translation.X, m.Translation.Y, m.Translation.Z, m.Translation.W,
	}
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float32 {
	return m.Array()[row+col*4]
}
