package geom

import "math"

// Vec2 is a 2D vector with float64 components.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns the component-wise difference of v and o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale returns v multiplied by the scalar s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Magnitude returns the Euclidean length of v.
func (v Vec2) Magnitude() float64 { return math.Hypot(v.X, v.Y) }

// Normalized returns v scaled to unit length. The zero vector normalizes to
// itself.
func (v Vec2) Normalized() Vec2 {
	mag := v.Magnitude()
	if mag == 0 {
		return Vec2{}
	}
	return v.Scale(1 / mag)
}
