package world

import (
	"math"
	"testing"

	"tiledworld/internal/geom"
)

func TestLinearFalloff(t *testing.T) {
	if got := LinearFalloff(10, 4, geom.Vec2{}); got != (geom.Vec2{}) {
		t.Fatalf("coincident positions must contribute nothing, got %+v", got)
	}
	if got := LinearFalloff(10, 4, geom.Vec2{X: 5}); got != (geom.Vec2{}) {
		t.Fatalf("out-of-range offset must contribute nothing, got %+v", got)
	}

	got := LinearFalloff(10, 4, geom.Vec2{X: 2})
	if math.Abs(got.X-5) > 1e-12 || got.Y != 0 {
		t.Fatalf("repulsive contribution = %+v, want (5,0)", got)
	}

	got = LinearFalloff(-10, 4, geom.Vec2{X: 2})
	if math.Abs(got.X+5) > 1e-12 || got.Y != 0 {
		t.Fatalf("attractive contribution = %+v, want (-5,0)", got)
	}
}

func TestLoneCellHasZeroField(t *testing.T) {
	w := New(8, 8)
	w.cells = []Cell{
		{Pos: geom.Vec2{X: 3, Y: 3}, Type: TypeDesirable, Strength: -10, Range: 60},
	}
	w.CalculateField()

	if w.cells[0].Field != (geom.Vec2{}) {
		t.Fatalf("lone cell accumulated %+v", w.cells[0].Field)
	}
	if w.MaxFieldMagnitude() != 0 {
		t.Fatalf("max magnitude %f, want 0", w.MaxFieldMagnitude())
	}
}

func TestObstructedCellsAreInert(t *testing.T) {
	w := New(8, 8)
	w.cells = []Cell{
		{Pos: geom.Vec2{X: 1, Y: 1}, Type: TypeFree, Strength: 5, Range: 10},
		{Pos: geom.Vec2{X: 2, Y: 1}, Type: TypeObstructed, Strength: 4, Range: 5},
		{Pos: geom.Vec2{X: 1, Y: 2}, Type: TypeFree},
	}
	w.CalculateField()

	if w.cells[1].Field != (geom.Vec2{}) {
		t.Fatalf("obstructed cell accumulated %+v", w.cells[1].Field)
	}

	// The free receiver sees the free emitter but not the obstructed cell.
	got := w.cells[2].Field
	if got.X != 0 || got.Y <= 0 {
		t.Fatalf("free receiver accumulated %+v, want a +Y push from the emitter below it", got)
	}

	// The emitter itself receives nothing: the obstructed cell does not
	// emit and the other free cell has zero strength.
	if w.cells[0].Field != (geom.Vec2{}) {
		t.Fatalf("emitter accumulated %+v", w.cells[0].Field)
	}
}

func TestMaxFieldMagnitudeTracksLargest(t *testing.T) {
	w := New(8, 8)
	w.cells = []Cell{
		{Pos: geom.Vec2{X: 1, Y: 1}, Type: TypeUndesirable, Strength: 5, Range: 10},
		{Pos: geom.Vec2{X: 1, Y: 2}, Type: TypeFree},
		{Pos: geom.Vec2{X: 1, Y: 3}, Type: TypeFree},
	}
	w.CalculateField()

	near := w.cells[1].Field.Magnitude()
	far := w.cells[2].Field.Magnitude()
	if math.Abs(near-4.5) > 1e-9 {
		t.Fatalf("near receiver magnitude %f, want 4.5", near)
	}
	if math.Abs(far-4) > 1e-9 {
		t.Fatalf("far receiver magnitude %f, want 4", far)
	}
	if math.Abs(w.MaxFieldMagnitude()-near) > 1e-12 {
		t.Fatalf("max magnitude %f, want %f", w.MaxFieldMagnitude(), near)
	}
}

// boundaryWorld builds a split index where cell 0 sits alone in a leaf while
// an in-range emitter occupies the neighboring quadrant.
func boundaryWorld() *World {
	w := New(8, 8)
	w.cells = []Cell{
		{Pos: geom.Vec2{X: 3.5, Y: 3.5}, Type: TypeFree},
		{Pos: geom.Vec2{X: 0.5, Y: 0.5}, Type: TypeUndesirable, Strength: 3, Range: 10},
		{Pos: geom.Vec2{X: 1.5, Y: 0.5}, Type: TypeUndesirable, Strength: 3, Range: 10},
		{Pos: geom.Vec2{X: 0.5, Y: 1.5}, Type: TypeUndesirable, Strength: 3, Range: 10},
		{Pos: geom.Vec2{X: 1.5, Y: 1.5}, Type: TypeUndesirable, Strength: 3, Range: 10},
		{Pos: geom.Vec2{X: 4.5, Y: 4.5}, Type: TypeUndesirable, Strength: 3, Range: 10},
	}
	w.CalculateField()
	return w
}

func TestLeafLocalQueryMissesNeighborsAcrossBoundary(t *testing.T) {
	w := boundaryWorld()

	// The emitter at (4.5,4.5) is well within range of the receiver at
	// (3.5,3.5) but lives in a different leaf: the leaf-local pass must
	// not see it.
	if w.cells[0].Field != (geom.Vec2{}) {
		t.Fatalf("receiver accumulated %+v from a disjoint leaf", w.cells[0].Field)
	}

	// A full range query does surface it.
	half := geom.Vec2{X: 10, Y: 10}
	box := geom.NewAABB(w.cells[0].Pos.Sub(half), w.cells[0].Pos.Add(half))
	found := false
	for _, c := range w.CellsWithin(box) {
		if c == &w.cells[5] {
			found = true
		}
	}
	if !found {
		t.Fatal("range query must include the in-range emitter the leaf query misses")
	}
}

func TestTilesAtReturnsLeafContents(t *testing.T) {
	w := boundaryWorld()

	got := w.TilesAt(geom.Vec2{X: 3.5, Y: 3.5})
	if len(got) != 1 || got[0] != &w.cells[0] {
		t.Fatalf("receiver leaf returned %d cells", len(got))
	}

	got = w.TilesAt(geom.Vec2{X: 0.5, Y: 0.5})
	if len(got) != 4 {
		t.Fatalf("dense leaf returned %d cells, want 4", len(got))
	}

	if got := w.TilesAt(geom.Vec2{X: -1, Y: 0}); got != nil {
		t.Fatalf("out-of-bounds query returned %v", got)
	}
}

func TestTilesAtBeforeAnyPass(t *testing.T) {
	w := New(4, 4)
	if got := w.TilesAt(geom.Vec2{X: 1, Y: 1}); got != nil {
		t.Fatalf("query before a pass returned %v", got)
	}
	if got := w.CellsWithin(w.Bounds()); got != nil {
		t.Fatalf("range query before a pass returned %v", got)
	}
}

func TestFieldVectorAt(t *testing.T) {
	w := New(4, 4)
	w.Reset(5)

	cells := w.Cells()
	fx, fy := w.FieldVectorAt(2.7, 1.2)
	want := cells[1*4+2].Field
	if fx != want.X || fy != want.Y {
		t.Fatalf("sample (%f,%f), want %+v", fx, fy, want)
	}

	if fx, fy := w.FieldVectorAt(-1, 0); fx != 0 || fy != 0 {
		t.Fatal("out-of-bounds sample must be zero")
	}
	if fx, fy := w.FieldVectorAt(0, 99); fx != 0 || fy != 0 {
		t.Fatal("out-of-bounds sample must be zero")
	}

	// Fractional coordinates just outside the grid must not truncate onto
	// the edge cells.
	w.cells[0].Field = geom.Vec2{X: 1}
	if fx, fy := w.FieldVectorAt(-0.5, 0.5); fx != 0 || fy != 0 {
		t.Fatal("coordinates left of the grid must not sample column zero")
	}
	if fx, fy := w.FieldVectorAt(0.5, -0.5); fx != 0 || fy != 0 {
		t.Fatal("coordinates above the grid must not sample row zero")
	}
}

func TestFieldViewDisplay(t *testing.T) {
	w := New(4, 4)
	w.cells = []Cell{
		{Pos: geom.Vec2{X: 0, Y: 0}, Type: TypeUndesirable, Strength: 3, Range: 10},
		{Pos: geom.Vec2{X: 1, Y: 0}, Type: TypeFree},
	}
	w.CalculateField()
	w.rebuildDisplay()

	base := w.Colors()[1]
	w.SetFieldView(true)
	got := w.Colors()[1]
	if got == base {
		t.Fatal("field view must repaint the display buffer")
	}
	// The receiver's field points +X: red saturates, green stays centered.
	if got.R != 255 || got.G != 128 {
		t.Fatalf("field view color %+v, want direction packed as R=255 G=128", got)
	}

	w.SetFieldView(false)
	if w.Colors()[1] != base {
		t.Fatal("disabling field view must restore base colors")
	}
}
