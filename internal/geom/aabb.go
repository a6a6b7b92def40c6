package geom

// AABB is an axis-aligned bounding box described by its min and max corners.
type AABB struct {
	Min Vec2
	Max Vec2
}

// NewAABB constructs a box from two corners.
func NewAABB(min, max Vec2) AABB { return AABB{Min: min, Max: max} }

// Width returns the horizontal extent of the box.
func (b AABB) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent of the box.
func (b AABB) Height() float64 { return b.Max.Y - b.Min.Y }

// Mid returns the center point of the box.
func (b AABB) Mid() Vec2 {
	return Vec2{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Contains reports whether p lies inside the box using the half-open
// convention min <= p < max on both axes.
func (b AABB) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X < b.Max.X && p.Y >= b.Min.Y && p.Y < b.Max.Y
}

// ContainsClosed reports whether p lies inside the box including all edges.
func (b AABB) ContainsClosed(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Overlaps reports whether b and o share any area, treating boxes as
// half-open so that edge-adjacent boxes do not overlap.
func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X && b.Min.Y < o.Max.Y && o.Min.Y < b.Max.Y
}
