package math3d

import "github.com/chewxy/math32"

// Quat is a rotation quaternion with components (A, B, C, D).
// A, B, C form the vector part and D is the scalar part.
type Quat struct {
	A, B, C, D float32
}

// Q creates a quaternion from raw components.
func Q(a, b, c, d float32) Quat {
	return Quat{a, b, c, d}
}

// QuatIdentity returns the identity rotation (0, 0, 0, 1).
func QuatIdentity() Quat {
	return Quat{D: 1}
}

// QuatFromComponents creates a quaternion from a Vec4 laid out as (A, B, C, D).
func QuatFromComponents(v Vec4) Quat {
	return Quat{v.X, v.Y, v.Z, v.W}
}

// QuatFromAxisAngle creates a rotation of radians around axis.
// Only the X, Y and Z lanes of axis are used and they are normalised first,
// so the axis length does not affect the angle. A zero axis yields NaN.
func QuatFromAxisAngle(axis Vec4, radians float32) Quat {
	half := radians * 0.5

	v := V4FromV3(axis.Vec3().Normalize(), 0).Scale(math32.Sin(half))
	v.W = math32.Cos(half)

	return QuatFromComponents(v.Normalize())
}

// Components returns the quaternion as a Vec4 (A, B, C, D).
func (q Quat) Components() Vec4 {
	return Vec4{q.A, q.B, q.C, q.D}
}

// Mul returns the Hamilton product a * b. Operand order matters.
//
//nolint:st1016 // a*b naming convention is clearer for quaternion products
func (a Quat) Mul(b Quat) Quat {
	return Quat{
		A: a.A*b.D + a.B*b.C - a.C*b.B + a.D*b.A,
		B: a.B*b.D - a.A*b.C + a.C*b.A + a.D*b.B,
		C: a.C*b.D + a.A*b.B - a.B*b.A + a.D*b.C,
		D: a.D*b.D - a.A*b.A - a.B*b.B - a.C*b.C,
	}
}

// Scale multiplies every component by s.
func (q Quat) Scale(s float32) Quat {
	return QuatFromComponents(q.Components().Scale(s))
}

// Dot returns the four-lane dot product.
func (q Quat) Dot(r Quat) float32 {
	return q.Components().Dot(r.Components())
}

// Normalize returns the unit quaternion. A zero quaternion yields NaN.
func (q Quat) Normalize() Quat {
	return QuatFromComponents(q.Components().Normalize())
}
