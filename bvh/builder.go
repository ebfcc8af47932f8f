package bvh

import (
	"fmt"
	"time"

	"github.com/achilleasa/spatial/log"
)

const (
	// Number of candidate buckets evaluated by the surface area
	// heuristic along the split axis.
	sahBuckets = 12

	// Relative cost of descending one internal node vs testing one
	// element during traversal.
	sahTravelCost float32 = 0.125
	sahTestCost   float32 = 1
)

// elementInfo pairs an input volume with the position of its element in
// the caller's sequence. The infos buffer is reordered in place while
// partitioning; the element index survives the shuffling so the output
// permutation can be emitted in traversal order.
type elementInfo[V any] struct {
	bounds V
	index  int32
}

type buildStats struct {
	nodes    int
	leafs    int
	maxDepth int
}

type builder[V Volume[V], E any] struct {
	logger log.Logger

	arena *arena[V]
	infos []elementInfo[V]

	// The caller's elements, truncated to the shorter of the two input
	// sequences.
	elements []E

	// The output permutation. Leaf offsets index into this buffer.
	order []E

	mode         Mode
	maxLeafItems int

	stats buildStats
}

// Build constructs a tree over min(len(volumes), len(elements))
// elements using the selected split mode. The two sequences are
// parallel: volumes[i] bounds elements[i]. A non-positive maxLeafItems
// selects DefaultMaxLeafItems; the cap is consumed by the surface area
// heuristic only. Requesting an unknown mode panics before any
// allocation takes place. An empty input yields an empty tree whose
// queries report no ranges.
func Build[V Volume[V], E any](volumes []V, elements []E, mode Mode, maxLeafItems int) *Tree[V, E] {
	switch mode {
	case Middle, EqualCounts, SurfaceAreaHeuristic:
	default:
		panic(fmt.Sprintf("bvh: unsupported build mode %d", uint8(mode)))
	}
	if maxLeafItems <= 0 {
		maxLeafItems = DefaultMaxLeafItems
	}

	count := len(volumes)
	if len(elements) < count {
		count = len(elements)
	}
	if count == 0 {
		return &Tree[V, E]{root: -1, mode: mode}
	}

	b := &builder[V, E]{
		logger:       log.New("bvh builder"),
		arena:        newArena[V](2 * count),
		infos:        make([]elementInfo[V], count),
		elements:     elements[:count],
		order:        make([]E, 0, count),
		mode:         mode,
		maxLeafItems: maxLeafItems,
	}
	for i := 0; i < count; i++ {
		b.infos[i] = elementInfo[V]{bounds: volumes[i], index: int32(i)}
	}

	start := time.Now()
	root := b.build(0, count, 0)
	b.logger.Debugf(
		"tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e6,
		b.stats.maxDepth, b.stats.nodes, b.stats.leafs,
	)

	return &Tree[V, E]{
		nodes:    b.arena.nodes,
		root:     root,
		elements: b.order,
		mode:     mode,
		stats: TreeStats{
			InternalNodes: b.stats.nodes,
			Leafs:         b.stats.leafs,
			MaxDepth:      b.stats.maxDepth,
		},
	}
}

// build partitions infos[start:end) and returns the arena index of the
// subtree covering it.
func (b *builder[V, E]) build(start, end, depth int) int32 {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	nodeIndex := b.arena.allocate()

	bounds := b.infos[start].bounds
	for i := start + 1; i < end; i++ {
		bounds = bounds.Merge(b.infos[i].bounds)
	}

	if end-start == 1 {
		b.setLeaf(nodeIndex, bounds, start, end)
		return nodeIndex
	}

	centroidBounds := b.infos[start].bounds.CentroidBounds()
	for i := start + 1; i < end; i++ {
		centroidBounds = centroidBounds.Merge(b.infos[i].bounds.CentroidBounds())
	}
	axis := centroidBounds.MaxExtentAxis()

	// All centroids coincide along the widest axis; no split can
	// separate the elements.
	if centroidBounds.AxisMin(axis) == centroidBounds.AxisMax(axis) {
		b.setLeaf(nodeIndex, bounds, start, end)
		return nodeIndex
	}

	mid := b.split(centroidBounds, axis, start, end)
	if mid == start || mid == end {
		b.setLeaf(nodeIndex, bounds, start, end)
		return nodeIndex
	}

	left := b.build(start, mid, depth+1)
	right := b.build(mid, end, depth+1)
	b.setInternal(nodeIndex, axis, left, right)
	return nodeIndex
}

// setLeaf initializes a leaf over infos[start:end) and appends the
// covered elements to the output permutation.
func (b *builder[V, E]) setLeaf(nodeIndex int32, bounds V, start, end int) {
	b.arena.nodes[nodeIndex] = node[V]{
		bounds: bounds,
		left:   -1,
		right:  -1,
		offset: int32(len(b.order)),
		count:  int32(end - start),
	}
	for i := start; i < end; i++ {
		b.order = append(b.order, b.elements[b.infos[i].index])
	}
	b.stats.leafs++
}

// setInternal initializes an internal node; bounds and count derive
// from the already-built children.
func (b *builder[V, E]) setInternal(nodeIndex int32, axis int, left, right int32) {
	l := &b.arena.nodes[left]
	r := &b.arena.nodes[right]
	b.arena.nodes[nodeIndex] = node[V]{
		bounds: l.bounds.Merge(r.bounds),
		left:   left,
		right:  right,
		axis:   int32(axis),
		count:  l.count + r.count,
	}
	b.stats.nodes++
}

func (b *builder[V, E]) split(centroidBounds V, axis, start, end int) int {
	switch b.mode {
	case Middle:
		return b.splitMiddle(centroidBounds, axis, start, end)
	case EqualCounts:
		return b.splitEqualCounts(axis, start, end)
	default:
		return b.splitSAH(centroidBounds, axis, start, end)
	}
}

// splitMiddle partitions around the spatial midpoint of the centroid
// bounds, falling back to an equal-counts split when every centroid
// lands on one side.
func (b *builder[V, E]) splitMiddle(centroidBounds V, axis, start, end int) int {
	midPosition := (centroidBounds.AxisMin(axis) + centroidBounds.AxisMax(axis)) / 2

	mid := b.partition(start, end, func(info *elementInfo[V]) bool {
		return info.bounds.AxisCentroid(axis) < midPosition
	})
	if mid == start || mid == end {
		return b.splitEqualCounts(axis, start, end)
	}
	return mid
}

// splitEqualCounts partially orders the range so the lower half holds
// the elements with smaller centroids on the split axis. Always yields
// two non-empty partitions when the range holds two or more elements.
func (b *builder[V, E]) splitEqualCounts(axis, start, end int) int {
	mid := (start + end) / 2
	b.selectNth(start, end, mid, axis)
	return mid
}

// splitSAH buckets the range along the split axis and picks the bucket
// boundary with the lowest estimated traversal cost. Returns start,
// meaning "keep as a leaf", when no boundary beats the cost of testing
// every element and the range fits under the leaf cap.
func (b *builder[V, E]) splitSAH(centroidBounds V, axis, start, end int) int {
	if end-start <= 4 {
		return b.splitEqualCounts(axis, start, end)
	}

	axisMin := centroidBounds.AxisMin(axis)
	extent := centroidBounds.AxisMax(axis) - axisMin

	bucketFor := func(info *elementInfo[V]) int {
		location := int(float32(sahBuckets) * (info.bounds.AxisCentroid(axis) - axisMin) / extent)
		if location < 0 {
			location = 0
		}
		if location >= sahBuckets {
			location = sahBuckets - 1
		}
		return location
	}

	var buckets [sahBuckets]bucketInfo[V]
	for i := start; i < end; i++ {
		buckets[bucketFor(&b.infos[i])].add(b.infos[i].bounds)
	}

	minCost := splitCost(&buckets, centroidBounds, 0)
	minCostLocation := 0
	for i := 1; i < sahBuckets-1; i++ {
		cost := splitCost(&buckets, centroidBounds, i)
		if cost < minCost {
			minCost = cost
			minCostLocation = i
		}
	}

	leafCost := float32(end - start)
	if minCost < leafCost || end-start > b.maxLeafItems {
		return b.partition(start, end, func(info *elementInfo[V]) bool {
			return bucketFor(info) <= minCostLocation
		})
	}
	return start
}

// bucketInfo accumulates the element count and merged bounds of one SAH
// bucket. The bounds are unset until the first add.
type bucketInfo[V Volume[V]] struct {
	count  int
	bounds V
}

func (bi *bucketInfo[V]) add(bounds V) {
	if bi.count == 0 {
		bi.bounds = bounds
	} else {
		bi.bounds = bi.bounds.Merge(bounds)
	}
	bi.count++
}

func (bi *bucketInfo[V]) merge(other *bucketInfo[V]) {
	if other.count == 0 {
		return
	}
	if bi.count == 0 {
		bi.bounds = other.bounds
	} else {
		bi.bounds = bi.bounds.Merge(other.bounds)
	}
	bi.count += other.count
}

// splitCost estimates the traversal cost of splitting after the given
// bucket boundary: one traversal step plus the surface-area weighted
// element tests on each side, normalized by the parent surface area.
func splitCost[V Volume[V]](buckets *[sahBuckets]bucketInfo[V], centroidBounds V, location int) float32 {
	var left, right bucketInfo[V]
	for i := 0; i <= location; i++ {
		left.merge(&buckets[i])
	}
	for i := location + 1; i < sahBuckets; i++ {
		right.merge(&buckets[i])
	}

	var leftArea, rightArea float32
	if left.count > 0 {
		leftArea = left.bounds.SurfaceArea()
	}
	if right.count > 0 {
		rightArea = right.bounds.SurfaceArea()
	}

	return sahTravelCost +
		(float32(left.count)*leftArea+float32(right.count)*rightArea)/
			centroidBounds.SurfaceArea()*sahTestCost
}

// partition reorders infos[start:end) so elements satisfying pred
// precede those that do not, returning the index of the first element
// of the second group. Relative order within each group is unspecified.
func (b *builder[V, E]) partition(start, end int, pred func(*elementInfo[V]) bool) int {
	first := start
	for first < end && pred(&b.infos[first]) {
		first++
	}
	for i := first + 1; i < end; i++ {
		if pred(&b.infos[i]) {
			b.infos[first], b.infos[i] = b.infos[i], b.infos[first]
			first++
		}
	}
	return first
}

// selectNth partially orders infos[start:end) by centroid on the given
// axis so the element at nth is the one a full sort would place there,
// with no larger centroids before it and no smaller centroids after it.
func (b *builder[V, E]) selectNth(start, end, nth, axis int) {
	for end-start > 1 {
		pivot := b.infos[(start+end)/2].bounds.AxisCentroid(axis)
		lo, hi := start, end-1
		for lo <= hi {
			for b.infos[lo].bounds.AxisCentroid(axis) < pivot {
				lo++
			}
			for b.infos[hi].bounds.AxisCentroid(axis) > pivot {
				hi--
			}
			if lo <= hi {
				b.infos[lo], b.infos[hi] = b.infos[hi], b.infos[lo]
				lo++
				hi--
			}
		}
		if nth <= hi {
			end = hi + 1
		} else if nth >= lo {
			start = lo
		} else {
			return
		}
	}
}
