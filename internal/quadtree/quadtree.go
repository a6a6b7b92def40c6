// Package quadtree implements a region quadtree over lightweight item ids.
// Items are points; the tree resolves an id to its position through a lookup
// function so that the caller keeps ownership of the underlying data.
//
// Containment is half-open (min <= p < max) on both axes, except on the
// outer edges of the tree bounds, which are closed. Items are stored on leaf
// nodes only: once a node splits, its contents are redistributed to the four
// children and the node itself stays empty.
package quadtree

import "tiledworld/internal/geom"

const (
	// DefaultSplitThreshold is the leaf occupancy above which a node splits.
	DefaultSplitThreshold = 4
	// DefaultMinNodeSize blocks splits that would create quadrants no larger
	// than this extent, bounding recursion depth when items share a location.
	DefaultMinNodeSize = 1.0
)

// PositionFunc resolves an item id to its location.
type PositionFunc func(id int) geom.Vec2

// Option adjusts tree construction policy.
type Option func(*Tree)

// WithSplitThreshold overrides the leaf occupancy split threshold.
func WithSplitThreshold(n int) Option {
	return func(t *Tree) {
		if n > 0 {
			t.threshold = n
		}
	}
}

// WithMinNodeSize overrides the minimum quadrant extent.
func WithMinNodeSize(size float64) Option {
	return func(t *Tree) {
		if size > 0 {
			t.minSize = size
		}
	}
}

// Tree is a region quadtree. It is built once per computation pass and is
// not safe for concurrent mutation; queries are read-only once all items
// have been added.
type Tree struct {
	root      *Node
	pos       PositionFunc
	threshold int
	minSize   float64
}

// Node covers an axis-aligned quadrant of its parent. Children are owned
// top-down; the parent reference exists for upward traversal only.
type Node struct {
	box      geom.AABB
	depth    int
	parent   *Node
	children []*Node
	items    []int
}

// New constructs a tree whose root leaf covers bounds.
func New(bounds geom.AABB, pos PositionFunc, opts ...Option) *Tree {
	t := &Tree{
		pos:       pos,
		threshold: DefaultSplitThreshold,
		minSize:   DefaultMinNodeSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.root = &Node{box: bounds}
	return t
}

// Bounds returns the box covered by the root node.
func (t *Tree) Bounds() geom.AABB { return t.root.box }

// Add inserts an item id, splitting leaves that exceed the occupancy
// threshold while their quadrants stay above the minimum size.
func (t *Tree) Add(id int) {
	t.root.add(t, id)
}

// Find returns the item ids stored in the leaf containing p. The result
// aliases the leaf's backing slice and must not be mutated. Points outside
// the tree bounds return nil.
func (t *Tree) Find(p geom.Vec2) []int {
	if !t.contains(t.root.box, p) {
		return nil
	}
	return t.root.find(t, p)
}

// FindInBox returns the ids of all items whose position falls within box,
// gathered from every overlapping leaf. Unlike Find it is not leaf-local.
func (t *Tree) FindInBox(box geom.AABB) []int {
	var out []int
	seen := map[int]struct{}{}
	t.root.collectInBox(t, box, seen, &out)
	return out
}

// VisitLeaves calls fn for every leaf node with its box, depth and item
// count, in child order from the root.
func (t *Tree) VisitLeaves(fn func(box geom.AABB, depth, count int)) {
	t.root.visitLeaves(fn)
}

// contains applies the tree's containment convention: half-open per axis,
// closed where the box edge coincides with the outer tree bounds.
func (t *Tree) contains(box geom.AABB, p geom.Vec2) bool {
	if p.X < box.Min.X || p.Y < box.Min.Y {
		return false
	}
	if p.X > box.Max.X || (p.X == box.Max.X && box.Max.X != t.root.box.Max.X) {
		return false
	}
	if p.Y > box.Max.Y || (p.Y == box.Max.Y && box.Max.Y != t.root.box.Max.Y) {
		return false
	}
	return true
}

func (n *Node) add(t *Tree, id int) {
	if n.children != nil {
		// Insert into every child whose quadrant contains the item. With
		// point items and half-open boxes exactly one child matches.
		p := t.pos(id)
		for _, child := range n.children {
			if t.contains(child.box, p) {
				child.add(t, id)
			}
		}
		return
	}
	n.items = append(n.items, id)
	if len(n.items) > t.threshold && n.canSplit(t) {
		n.split(t)
	}
}

// canSplit reports whether halving this node still yields quadrants larger
// than the minimum size. A node at or below that size never splits, which
// guarantees termination even when every item shares one location.
func (n *Node) canSplit(t *Tree) bool {
	return n.box.Width()/2 > t.minSize && n.box.Height()/2 > t.minSize
}

func (n *Node) split(t *Tree) {
	mid := n.box.Mid()
	min := n.box.Min
	max := n.box.Max
	n.children = []*Node{
		{box: geom.NewAABB(min, mid), depth: n.depth + 1, parent: n},
		{box: geom.NewAABB(geom.Vec2{X: mid.X, Y: min.Y}, geom.Vec2{X: max.X, Y: mid.Y}), depth: n.depth + 1, parent: n},
		{box: geom.NewAABB(geom.Vec2{X: min.X, Y: mid.Y}, geom.Vec2{X: mid.X, Y: max.Y}), depth: n.depth + 1, parent: n},
		{box: geom.NewAABB(mid, max), depth: n.depth + 1, parent: n},
	}
	items := n.items
	n.items = nil
	for _, id := range items {
		n.add(t, id)
	}
}

func (n *Node) find(t *Tree, p geom.Vec2) []int {
	if n.children == nil {
		return n.items
	}
	for _, child := range n.children {
		if t.contains(child.box, p) {
			return child.find(t, p)
		}
	}
	return nil
}

func (n *Node) collectInBox(t *Tree, box geom.AABB, seen map[int]struct{}, out *[]int) {
	if !n.box.Overlaps(box) {
		return
	}
	if n.children == nil {
		for _, id := range n.items {
			if !box.Contains(t.pos(id)) {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			*out = append(*out, id)
		}
		return
	}
	for _, child := range n.children {
		child.collectInBox(t, box, seen, out)
	}
}

func (n *Node) visitLeaves(fn func(box geom.AABB, depth, count int)) {
	if n.children == nil {
		fn(n.box, n.depth, len(n.items))
		return
	}
	for _, child := range n.children {
		child.visitLeaves(fn)
	}
}
