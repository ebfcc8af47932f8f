package bvh

// arena is a fixed-capacity bump allocator for tree nodes. A binary
// tree built by recursive bisection of N leaves has at most 2N-1 nodes,
// so the builder sizes the arena to 2N slots up front and never grows
// it; child links stay valid across the whole build because the backing
// array never moves. Slots are only reclaimed in bulk when the tree is
// garbage collected.
type arena[V any] struct {
	nodes []node[V]
}

func newArena[V any](maxNodes int) *arena[V] {
	return &arena[V]{
		nodes: make([]node[V], 0, maxNodes),
	}
}

// allocate reserves a zeroed node slot and returns its index. Running
// past the derived capacity bound indicates a builder defect.
func (a *arena[V]) allocate() int32 {
	if len(a.nodes) == cap(a.nodes) {
		panic("bvh: node arena capacity exceeded; the 2N node bound was violated")
	}
	a.nodes = append(a.nodes, node[V]{})
	return int32(len(a.nodes) - 1)
}
