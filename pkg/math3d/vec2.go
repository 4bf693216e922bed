package math3d

import "github.com/chewxy/math32"

// Vec2 represents a 2D vector, used for texture coordinates.
type Vec2 struct {
	X, Y float32
}

// V2 creates a new Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{x, y}
}

// Add returns the vector sum.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Mul returns the component-wise product.
func (a Vec2) Mul(b Vec2) Vec2 {
	return Vec2{a.X * b.X, a.Y * b.Y}
}

// Scale returns the scalar product.
func (a Vec2) Scale(s float32) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// Div returns the scalar division.
func (a Vec2) Div(s float32) Vec2 {
	return Vec2{a.X / s, a.Y / s}
}

// Dot returns the dot product.
func (a Vec2) Dot(b Vec2) float32 {
	return a.X*b.X + a.Y*b.Y
}

// Len returns the length.
func (a Vec2) Len() float32 {
	return math32.Sqrt(a.Dot(a))
}

// Normalize returns a / Len(a). A zero vector yields NaN components.
func (a Vec2) Normalize() Vec2 {
	return a.Div(a.Len())
}
