package world

import (
	"image/color"

	"tiledworld/internal/geom"
)

// Type tags a cell with its terrain kind.
type Type uint8

const (
	TypeFree Type = iota
	TypeObstructed
	TypeUndesirable
	TypeDesirable
)

// String returns the display name of the type tag.
func (t Type) String() string {
	switch t {
	case TypeFree:
		return "Free"
	case TypeObstructed:
		return "Obstructed"
	case TypeUndesirable:
		return "Undesirable"
	case TypeDesirable:
		return "Desirable"
	default:
		return "Unknown"
	}
}

// Cell is one unit of the generated grid. Cells are owned by the World in a
// flat slice; the spatial index and query results refer to them by index or
// pointer without taking ownership.
type Cell struct {
	Pos      geom.Vec2
	Type     Type
	Strength float64
	Range    float64
	Color    color.NRGBA

	// Field is the accumulated 2D field vector, recomputed each pass.
	Field geom.Vec2
}
