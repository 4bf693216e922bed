package math3d

import "github.com/chewxy/math32"

// Vec4 represents a 4D vector or a homogeneous 3D point.
// W is 1 for points and 0 for directions.
type Vec4 struct {
	X, Y, Z, W float32
}

// V4 creates a new Vec4.
func V4(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

// V4FromV3 creates a Vec4 from Vec3 with specified W.
func V4FromV3(v Vec3, w float32) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// UnitX returns (1, 0, 0, 0).
func UnitX() Vec4 { return Vec4{X: 1} }

// UnitY returns (0, 1, 0, 0).
func UnitY() Vec4 { return Vec4{Y: 1} }

// UnitZ returns (0, 0, 1, 0).
func UnitZ() Vec4 { return Vec4{Z: 1} }

// UnitW returns (0, 0, 0, 1).
func UnitW() Vec4 { return Vec4{W: 1} }

// Vec3 returns the Vec3 portion (ignoring W).
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// XVec keeps only the X lane.
func (v Vec4) XVec() Vec4 { return Vec4{X: v.X} }

// YVec keeps only the Y lane.
func (v Vec4) YVec() Vec4 { return Vec4{Y: v.Y} }

// ZVec keeps only the Z lane.
func (v Vec4) ZVec() Vec4 { return Vec4{Z: v.Z} }

// WVec keeps only the W lane.
func (v Vec4) WVec() Vec4 { return Vec4{W: v.W} }

// Add returns the vector sum.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns the vector difference.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// Mul returns the component-wise product.
//
//nolint:st1016 // a*b naming convention is clearer for vector operations
func (a Vec4) Mul(b Vec4) Vec4 {
	return Vec4{a.X * b.X, a.Y * b.Y, a.Z * b.Z, a.W * b.W}
}

// Scale returns the scalar product.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Div returns the scalar division.
func (v Vec4) Div(s float32) Vec4 {
	return Vec4{v.X / s, v.Y / s, v.Z / s, v.W / s}
}

// Dot returns the dot product over all four lanes.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Vec4) Dot(b Vec4) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// Len returns the length.
func (v Vec4) Len() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns v / Len(v). A zero vector yields NaN components.
func (v Vec4) Normalize() Vec4 {
	return v.Div(v.Len())
}
