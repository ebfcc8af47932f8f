package bvh

// A node is either a leaf covering a contiguous run of the tree's
// reordered element buffer or an internal node referencing two child
// nodes by arena index. Leaves carry -1 in both child indices.
type node[V any] struct {
	bounds V

	left  int32
	right int32

	// The axis the builder split this node on. Informational; queries
	// do not consult it.
	axis int32

	offset int32
	count  int32
}

func (n *node[V]) isLeaf() bool {
	return n.left < 0
}
