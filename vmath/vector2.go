package vmath

import "math"

// Vector2 is a float64 2D point or offset
// Treated as a value; Set is the only in-place mutation
type Vector2 struct {
	X, Y float64
}

// V2 is shorthand for Vector2{x, y}
func V2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Set replaces both components from other
func (v *Vector2) Set(other Vector2) {
	v.X = other.X
	v.Y = other.Y
}

// UpdateValue is an alias of Set
func (v *Vector2) UpdateValue(other Vector2) {
	v.Set(other)
}

func (v Vector2) Add(w Vector2) Vector2 {
	return Vector2{v.X + w.X, v.Y + w.Y}
}

// Rotate rotates v by angle radians around the origin
// Positive angles turn +X towards +Y (clockwise on a y-down screen)
func (v Vector2) Rotate(angle float64) Vector2 {
	sin, cos := math.Sincos(angle)
	return Vector2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// ApproxEqual compares component-wise within epsilon
func (v Vector2) ApproxEqual(w Vector2, epsilon float64) bool {
	return ApproxEqual(v.X, w.X, epsilon) && ApproxEqual(v.Y, w.Y, epsilon)
}
