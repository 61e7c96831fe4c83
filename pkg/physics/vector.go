// pkg/physics/vector.go
package physics

import (
	"errors"
	"math"
)

// ErrZeroVector is the panic value raised when a zero-length vector is normalized.
var ErrZeroVector = errors.New("physics: cannot normalize a zero-length vector")

// Vector2 is a 2D vector or point in table coordinates
type Vector2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Zero is the zero vector
var Zero = Vector2{}

// Vec is shorthand for constructing a Vector2
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2) Scale(k float64) Vector2 {
	return Vector2{
		X: v.X * k,
		Y: v.Y * k,
	}
}

// Magnitude returns the Euclidean norm of the vector
func (v Vector2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalized returns a unit vector in the same direction.
// The receiver must not be the zero vector; doing so panics with ErrZeroVector.
func (v Vector2) Normalized() Vector2 {
	m := v.Magnitude()
	if m == 0 {
		panic(ErrZeroVector)
	}
	return Vector2{
		X: v.X / m,
		Y: v.Y / m,
	}
}

// Dot returns the scalar product of two vectors
func (v Vector2) Dot(other Vector2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Distance returns the distance between two points
func (v Vector2) Distance(other Vector2) float64 {
	return v.Sub(other).Magnitude()
}

// ReflectX mirrors the horizontal component, as in a bounce off a vertical wall
func (v Vector2) ReflectX() Vector2 {
	return Vector2{X: -v.X, Y: v.Y}
}

// ReflectY mirrors the vertical component, as in a bounce off a horizontal wall
func (v Vector2) ReflectY() Vector2 {
	return Vector2{X: v.X, Y: -v.Y}
}

// IsZero reports whether both components are zero
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// IncreaseBy adds delta to the vector in place
func (v *Vector2) IncreaseBy(delta Vector2) {
	v.X += delta.X
	v.Y += delta.Y
}

// DecreaseBy subtracts delta from the vector in place
func (v *Vector2) DecreaseBy(delta Vector2) {
	v.X -= delta.X
	v.Y -= delta.Y
}

// Mirror returns the point reflected through center
func (v Vector2) Mirror(center Vector2) Vector2 {
	return center.Scale(2).Sub(v)
}
