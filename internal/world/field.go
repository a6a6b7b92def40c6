package world

import (
	"tiledworld/internal/geom"
	"tiledworld/internal/quadtree"
)

// Falloff computes the directional contribution an emitter adds to a
// receiver, given the emitter's strength and range and the receiver's
// displacement from the emitter.
type Falloff func(strength, reach float64, offset geom.Vec2) geom.Vec2

// LinearFalloff scales the emitter's strength linearly down to zero at its
// range. Positive strength pushes the receiver away from the emitter,
// negative strength pulls it closer. Coincident positions and receivers
// beyond the range contribute nothing.
func LinearFalloff(strength, reach float64, offset geom.Vec2) geom.Vec2 {
	dist := offset.Magnitude()
	if dist == 0 || reach <= 0 || dist > reach {
		return geom.Vec2{}
	}
	return offset.Scale(1 / dist).Scale(strength * (1 - dist/reach))
}

// SetFalloff replaces the falloff policy. Takes effect on the next pass.
func (w *World) SetFalloff(f Falloff) {
	if f != nil {
		w.falloff = f
	}
}

// CalculateField rebuilds the spatial index over the current cell set and
// accumulates each cell's field from its leaf-local candidate neighbors.
//
// Obstructed cells are inert: their field stays zero and they contribute
// nothing to others. The candidate set is only the leaf containing the
// cell's own position, so influence reaching across a partition boundary
// from an adjacent leaf is not seen.
func (w *World) CalculateField() {
	w.maxField = 0
	cells := w.cells
	w.tree = quadtree.New(w.Bounds(),
		func(id int) geom.Vec2 { return cells[id].Pos },
		quadtree.WithSplitThreshold(w.cfg.Params.SplitThreshold),
		quadtree.WithMinNodeSize(w.cfg.Params.MinNodeSize),
	)
	for id := range cells {
		w.tree.Add(id)
	}

	for i := range cells {
		cell := &cells[i]
		cell.Field = geom.Vec2{}
		if cell.Type == TypeObstructed {
			continue
		}
		for _, id := range w.tree.Find(cell.Pos) {
			if id == i {
				continue
			}
			other := &cells[id]
			if other.Type == TypeObstructed {
				continue
			}
			contribution := w.falloff(other.Strength, other.Range, cell.Pos.Sub(other.Pos))
			cell.Field = cell.Field.Add(contribution)
		}
		if mag := cell.Field.Magnitude(); mag > w.maxField {
			w.maxField = mag
		}
	}
}

// MaxFieldMagnitude returns the largest field magnitude observed during the
// most recent pass, for consumers that normalize for display.
func (w *World) MaxFieldMagnitude() float64 { return w.maxField }

// TilesAt returns the cells the spatial index considers relevant at p: the
// contents of the leaf containing p. Points outside the world bounds, or
// calls before any field pass, return nil.
func (w *World) TilesAt(p geom.Vec2) []*Cell {
	if w.tree == nil {
		return nil
	}
	return w.resolve(w.tree.Find(p))
}

// CellsWithin returns the cells whose positions fall inside box, gathered
// across every overlapping leaf. Unlike TilesAt it is not leaf-local.
func (w *World) CellsWithin(box geom.AABB) []*Cell {
	if w.tree == nil {
		return nil
	}
	return w.resolve(w.tree.FindInBox(box))
}

func (w *World) resolve(ids []int) []*Cell {
	if len(ids) == 0 {
		return nil
	}
	out := make([]*Cell, len(ids))
	for i, id := range ids {
		out[i] = &w.cells[id]
	}
	return out
}

// FieldVectorAt samples the accumulated field of the cell containing the
// given world coordinates. Out-of-bounds coordinates sample as zero.
func (w *World) FieldVectorAt(x, y float64) (float64, float64) {
	if x < 0 || y < 0 {
		return 0, 0
	}
	cx := int(x)
	cy := int(y)
	if cx >= w.w || cy >= w.h {
		return 0, 0
	}
	idx := cy*w.w + cx
	if idx >= len(w.cells) {
		return 0, 0
	}
	f := w.cells[idx].Field
	return f.X, f.Y
}

// VisitLeaves walks the leaves of the most recent spatial index. No-op
// before the first pass.
func (w *World) VisitLeaves(fn func(box geom.AABB, depth, count int)) {
	if w.tree == nil {
		return
	}
	w.tree.VisitLeaves(fn)
}
