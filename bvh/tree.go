package bvh

// Range identifies a contiguous run of the tree's reordered element
// buffer.
type Range struct {
	Offset int32
	Count  int32
}

// TreeStats summarizes the shape of a built tree.
type TreeStats struct {
	InternalNodes int
	Leafs         int
	MaxDepth      int
}

// Tree is an immutable bounding volume hierarchy over a set of
// elements. Once returned by Build a tree never changes, so any number
// of concurrent queries may run against it without synchronization.
type Tree[V Volume[V], E any] struct {
	nodes    []node[V]
	root     int32
	elements []E
	mode     Mode
	stats    TreeStats
}

// Elements returns the tree's element buffer: a permutation of the
// input elements. The Offset/Count of reported ranges index into this
// buffer, not into the caller's original sequence.
func (t *Tree[V, E]) Elements() []E {
	return t.elements
}

// Len returns the number of indexed elements.
func (t *Tree[V, E]) Len() int {
	return len(t.elements)
}

// Mode returns the split mode the tree was built with.
func (t *Tree[V, E]) Mode() Mode {
	return t.mode
}

// Stats returns shape statistics recorded during the build.
func (t *Tree[V, E]) Stats() TreeStats {
	return t.stats
}

// Query returns the leaf ranges whose bounds intersect the query
// volume. Subtrees whose bounds miss the volume are pruned without
// descent; surviving leaves are reported whole, without re-testing the
// elements inside them. The query is therefore a broad phase: every
// element whose volume intersects the query volume lands in some
// reported range, but a range may also contain elements that do not;
// callers needing exact results must re-test the candidates. No
// ordering is guaranteed across ranges.
func (t *Tree[V, E]) Query(volume V) []Range {
	if t.root < 0 {
		return nil
	}

	var ranges []Range
	stack := make([]int32, 1, 64)
	stack[0] = t.root
	for len(stack) > 0 {
		n := &t.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		if !n.bounds.Intersects(volume) {
			continue
		}
		if n.isLeaf() {
			ranges = append(ranges, Range{Offset: n.offset, Count: n.count})
			continue
		}
		stack = append(stack, n.left, n.right)
	}
	return ranges
}
