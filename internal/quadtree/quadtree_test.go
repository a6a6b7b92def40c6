package quadtree

import (
	"math/rand/v2"
	"slices"
	"testing"

	"tiledworld/internal/geom"
)

func buildTree(points []geom.Vec2, bounds geom.AABB, opts ...Option) *Tree {
	t := New(bounds, func(id int) geom.Vec2 { return points[id] }, opts...)
	for id := range points {
		t.Add(id)
	}
	return t
}

func randomPoints(n int, w, h float64) []geom.Vec2 {
	rng := rand.New(rand.NewPCG(42, 0))
	points := make([]geom.Vec2, n)
	for i := range points {
		points[i] = geom.Vec2{X: rng.Float64() * w, Y: rng.Float64() * h}
	}
	return points
}

func TestEmptyTree(t *testing.T) {
	bounds := geom.NewAABB(geom.Vec2{}, geom.Vec2{X: 8, Y: 8})
	tree := New(bounds, func(int) geom.Vec2 { return geom.Vec2{} })

	if tree.Bounds() != bounds {
		t.Fatalf("Bounds = %+v, want %+v", tree.Bounds(), bounds)
	}
	if tree.root.children != nil {
		t.Fatal("empty tree must have a single leaf root")
	}
	if got := tree.Find(geom.Vec2{X: 3, Y: 3}); len(got) != 0 {
		t.Fatalf("empty tree query returned %v", got)
	}
}

func TestNoSplitAtOrBelowThreshold(t *testing.T) {
	points := []geom.Vec2{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}, {X: 1, Y: 3}}
	tree := buildTree(points, geom.NewAABB(geom.Vec2{}, geom.Vec2{X: 8, Y: 8}))

	if tree.root.children != nil {
		t.Fatal("node at the split threshold must not have children")
	}
	if len(tree.root.items) != len(points) {
		t.Fatalf("root holds %d items, want %d", len(tree.root.items), len(points))
	}
}

func TestSplitOnceScenario(t *testing.T) {
	// Five cells inside the (0,0)-(2,2) quadrant of a 4x4 world. The root
	// must split exactly once: the dense quadrant cannot split further
	// because its halves would not exceed the minimum node size.
	points := []geom.Vec2{
		{X: 0.5, Y: 0.5},
		{X: 1, Y: 1},
		{X: 1.5, Y: 1.5},
		{X: 0.5, Y: 1.5},
		{X: 1.5, Y: 0.5},
	}
	tree := buildTree(points, geom.NewAABB(geom.Vec2{}, geom.Vec2{X: 4, Y: 4}))

	if tree.root.children == nil {
		t.Fatal("root must split after exceeding the threshold")
	}
	if len(tree.root.items) != 0 {
		t.Fatalf("split root still holds %d items", len(tree.root.items))
	}

	dense := tree.root.children[0]
	if dense.box != geom.NewAABB(geom.Vec2{}, geom.Vec2{X: 2, Y: 2}) {
		t.Fatalf("unexpected first quadrant box %+v", dense.box)
	}
	if dense.children != nil {
		t.Fatal("dense quadrant must stay a leaf (minimum size check)")
	}
	if len(dense.items) != 5 {
		t.Fatalf("dense quadrant holds %d items, want 5", len(dense.items))
	}
	for _, child := range tree.root.children[1:] {
		if child.children != nil || len(child.items) != 0 {
			t.Fatalf("sparse quadrant %+v is not an empty leaf", child.box)
		}
	}
}

func TestSplitInvariants(t *testing.T) {
	points := randomPoints(300, 64, 64)
	tree := buildTree(points, geom.NewAABB(geom.Vec2{}, geom.Vec2{X: 64, Y: 64}))

	var walk func(n *Node)
	walk = func(n *Node) {
		if n.children == nil {
			return
		}
		if len(n.items) != 0 {
			t.Fatalf("split node %+v still holds %d items", n.box, len(n.items))
		}
		if len(n.children) != 4 {
			t.Fatalf("split node has %d children", len(n.children))
		}
		for _, child := range n.children {
			if child.parent != n {
				t.Fatal("child parent reference broken")
			}
			if child.depth != n.depth+1 {
				t.Fatalf("child depth %d under parent depth %d", child.depth, n.depth)
			}
			if child.box.Width() != n.box.Width()/2 || child.box.Height() != n.box.Height()/2 {
				t.Fatalf("child box %+v does not quarter parent %+v", child.box, n.box)
			}
			if !n.box.ContainsClosed(child.box.Min) || !n.box.ContainsClosed(child.box.Max) {
				t.Fatalf("child box %+v escapes parent %+v", child.box, n.box)
			}
			walk(child)
		}
	}
	walk(tree.root)
}

func TestFindReturnsOnlyLeafMates(t *testing.T) {
	points := randomPoints(200, 32, 32)
	tree := buildTree(points, geom.NewAABB(geom.Vec2{}, geom.Vec2{X: 32, Y: 32}))

	inserted := map[int]struct{}{}
	for id := range points {
		inserted[id] = struct{}{}
	}

	for id, p := range points {
		got := tree.Find(p)
		found := false
		for _, other := range got {
			if _, ok := inserted[other]; !ok {
				t.Fatalf("query fabricated id %d", other)
			}
			if other == id {
				found = true
			}
		}
		if !found {
			t.Fatalf("item %d not found at its own position %+v", id, p)
		}
		// All results share one leaf, so they share its box.
		var leafBox geom.AABB
		tree.VisitLeaves(func(box geom.AABB, _, _ int) {
			if tree.contains(box, p) {
				leafBox = box
			}
		})
		for _, other := range got {
			if !tree.contains(leafBox, points[other]) {
				t.Fatalf("item %d at %+v returned for disjoint leaf %+v", other, points[other], leafBox)
			}
		}
	}
}

func TestEachItemStoredInExactlyOneLeaf(t *testing.T) {
	points := randomPoints(150, 48, 48)
	tree := buildTree(points, geom.NewAABB(geom.Vec2{}, geom.Vec2{X: 48, Y: 48}))

	counts := make(map[int]int)
	total := 0
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.children == nil {
			for _, id := range n.items {
				counts[id]++
				total++
			}
			return
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(tree.root)

	if total != len(points) {
		t.Fatalf("leaves hold %d item references, want %d", total, len(points))
	}
	for id := range points {
		if counts[id] != 1 {
			t.Fatalf("item %d stored in %d leaves", id, counts[id])
		}
	}
}

func TestRebuildDeterminism(t *testing.T) {
	points := randomPoints(250, 40, 40)
	bounds := geom.NewAABB(geom.Vec2{}, geom.Vec2{X: 40, Y: 40})
	a := buildTree(points, bounds)
	b := buildTree(points, bounds)

	for x := 0.0; x < 40; x += 2.5 {
		for y := 0.0; y < 40; y += 2.5 {
			p := geom.Vec2{X: x, Y: y}
			got := append([]int(nil), a.Find(p)...)
			want := append([]int(nil), b.Find(p)...)
			slices.Sort(got)
			slices.Sort(want)
			if !slices.Equal(got, want) {
				t.Fatalf("rebuild not deterministic at %+v: %v vs %v", p, got, want)
			}
		}
	}
}

func TestMinNodeSizeBoundsRecursion(t *testing.T) {
	// Many items sharing one location can never be separated by further
	// splits; the minimum size check must stop the recursion.
	points := make([]geom.Vec2, 64)
	for i := range points {
		points[i] = geom.Vec2{X: 0.5, Y: 0.5}
	}
	tree := buildTree(points, geom.NewAABB(geom.Vec2{}, geom.Vec2{X: 4, Y: 4}))

	maxDepth := 0
	carried := 0
	tree.VisitLeaves(func(_ geom.AABB, depth, count int) {
		if depth > maxDepth {
			maxDepth = depth
		}
		carried += count
	})
	if carried != len(points) {
		t.Fatalf("leaves carry %d items, want %d", carried, len(points))
	}
	if maxDepth > 2 {
		t.Fatalf("recursion reached depth %d despite the minimum size check", maxDepth)
	}
	if got := tree.Find(geom.Vec2{X: 0.5, Y: 0.5}); len(got) != len(points) {
		t.Fatalf("query returned %d items, want %d", len(got), len(points))
	}
}

func TestOutOfBoundsQuery(t *testing.T) {
	points := randomPoints(20, 8, 8)
	tree := buildTree(points, geom.NewAABB(geom.Vec2{}, geom.Vec2{X: 8, Y: 8}))

	for _, p := range []geom.Vec2{
		{X: -0.1, Y: 4},
		{X: 4, Y: -0.1},
		{X: 8.1, Y: 4},
		{X: 4, Y: 8.1},
	} {
		if got := tree.Find(p); got != nil {
			t.Fatalf("out-of-bounds query at %+v returned %v", p, got)
		}
	}
}

func TestWorldEdgeIsClosed(t *testing.T) {
	// The outer max corner belongs to the world even though interior boxes
	// are half-open, both during insertion and during queries.
	points := []geom.Vec2{
		{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 3},
		{X: 16, Y: 16},
	}
	tree := buildTree(points, geom.NewAABB(geom.Vec2{}, geom.Vec2{X: 16, Y: 16}))

	if tree.root.children == nil {
		t.Fatal("root must have split")
	}
	got := tree.Find(geom.Vec2{X: 16, Y: 16})
	if !slices.Contains(got, 5) {
		t.Fatalf("corner item missing from corner query, got %v", got)
	}
}

func TestFindInBox(t *testing.T) {
	points := randomPoints(200, 32, 32)
	tree := buildTree(points, geom.NewAABB(geom.Vec2{}, geom.Vec2{X: 32, Y: 32}))

	box := geom.NewAABB(geom.Vec2{X: 8, Y: 8}, geom.Vec2{X: 24, Y: 24})
	got := tree.FindInBox(box)

	want := 0
	for _, p := range points {
		if box.Contains(p) {
			want++
		}
	}
	if len(got) != want {
		t.Fatalf("FindInBox returned %d items, want %d", len(got), want)
	}
	seen := map[int]struct{}{}
	for _, id := range got {
		if !box.Contains(points[id]) {
			t.Fatalf("item %d at %+v outside the query box", id, points[id])
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("item %d returned twice", id)
		}
		seen[id] = struct{}{}
	}
}
