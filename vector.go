package impulse

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector2 is a 2D vector. Arithmetic methods are value-style and return new
// vectors; Set and Normalize mutate in place.
type Vector2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func Vec2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the scalar z-component of the 3D cross product.
func (v Vector2) Cross(o Vector2) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vector2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vector2) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vector2) Distance(o Vector2) float64 {
	return v.Sub(o).Len()
}

func (v Vector2) DistanceSqr(o Vector2) float64 {
	return v.Sub(o).LenSqr()
}

// Normalized returns the unit vector in the direction of v. The zero vector
// normalizes to the zero vector, never NaN.
func (v Vector2) Normalized() Vector2 {
	l := v.Len()
	if l == 0 {
		return Vector2{}
	}
	inv := 1.0 / l
	return Vector2{X: v.X * inv, Y: v.Y * inv}
}

// Normalize normalizes v in place and reports whether v was non-zero.
func (v *Vector2) Normalize() bool {
	l := v.Len()
	if l == 0 {
		v.X, v.Y = 0, 0
		return false
	}
	inv := 1.0 / l
	v.X *= inv
	v.Y *= inv
	return true
}

func (v *Vector2) Set(x, y float64) {
	v.X = x
	v.Y = y
}

// Perp returns v rotated 90 degrees counter-clockwise.
func (v Vector2) Perp() Vector2 {
	return Vector2{X: -v.Y, Y: v.X}
}

// Rotate returns v rotated by angle radians about the origin.
func (v Vector2) Rotate(angle float64) Vector2 {
	r := mgl64.Rotate2D(angle).Mul2x1(mgl64.Vec2{v.X, v.Y})
	return Vector2{X: r.X(), Y: r.Y()}
}

func (v Vector2) Lerp(o Vector2, t float64) Vector2 {
	return Vector2{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
	}
}

// Mul returns the component-wise product.
func (v Vector2) Mul(o Vector2) Vector2 {
	return Vector2{X: v.X * o.X, Y: v.Y * o.Y}
}

func (v Vector2) Abs() Vector2 {
	return Vector2{X: math.Abs(v.X), Y: math.Abs(v.Y)}
}
