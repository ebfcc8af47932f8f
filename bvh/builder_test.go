package bvh

import (
	"math/rand"
	"testing"

	"github.com/achilleasa/spatial/types"
)

func makeBound(x0, y0, x1, y1 float32) types.Bound2 {
	return types.NewBound2(types.XY(x0, y0), types.XY(x1, y1))
}

func randomBounds(rng *rand.Rand, count int) []types.Bound2 {
	bounds := make([]types.Bound2, count)
	for i := range bounds {
		origin := types.XY(rng.Float32()*100.0, rng.Float32()*100.0)
		end := origin.Add(types.XY((rng.Float32()*2-1)*5.0, (rng.Float32()*2-1)*5.0))
		bounds[i] = types.NewBound2(origin, end)
	}
	return bounds
}

func elementIndices(count int) []int32 {
	indices := make([]int32, count)
	for i := range indices {
		indices[i] = int32(i)
	}
	return indices
}

// checkInvariants walks the tree verifying that the element buffer is a
// permutation of the input, that leaf ranges partition it exactly once,
// and that every node's bounds and count derive from its members.
func checkInvariants(t *testing.T, tree *Tree[types.Bound2, int32], bounds []types.Bound2) {
	t.Helper()

	elements := tree.Elements()
	if len(elements) != len(bounds) {
		t.Fatalf("expected element buffer to hold %d elements; got %d", len(bounds), len(elements))
	}

	seen := make([]int, len(bounds))
	for _, e := range elements {
		if e < 0 || int(e) >= len(bounds) {
			t.Fatalf("element buffer holds out-of-range element %d", e)
		}
		seen[e]++
	}
	for i, c := range seen {
		if c != 1 {
			t.Fatalf("expected element %d to appear exactly once in the element buffer; appeared %d times", i, c)
		}
	}

	covered := make([]int, len(bounds))
	var walk func(idx int32) (types.Bound2, int32)
	walk = func(idx int32) (types.Bound2, int32) {
		n := &tree.nodes[idx]
		if n.isLeaf() {
			if n.count < 1 {
				t.Fatalf("leaf at node %d has count %d", idx, n.count)
			}
			if int(n.offset+n.count) > len(elements) {
				t.Fatalf("leaf range [%d, %d) exceeds element buffer length %d", n.offset, n.offset+n.count, len(elements))
			}
			merged := bounds[elements[n.offset]]
			covered[n.offset]++
			for i := n.offset + 1; i < n.offset+n.count; i++ {
				covered[i]++
				merged = merged.Merge(bounds[elements[i]])
			}
			if merged != n.bounds {
				t.Fatalf("leaf at node %d has bounds %v; merging its members gives %v", idx, n.bounds, merged)
			}
			return n.bounds, n.count
		}

		leftBounds, leftCount := walk(n.left)
		rightBounds, rightCount := walk(n.right)
		if leftBounds.Merge(rightBounds) != n.bounds {
			t.Fatalf("internal node %d has bounds %v; merging its children gives %v", idx, n.bounds, leftBounds.Merge(rightBounds))
		}
		if leftCount+rightCount != n.count {
			t.Fatalf("internal node %d has count %d; its children sum to %d", idx, n.count, leftCount+rightCount)
		}
		return n.bounds, n.count
	}

	if tree.root >= 0 {
		walk(tree.root)
	}
	for i, c := range covered {
		if c != 1 {
			t.Fatalf("expected element buffer slot %d to be covered by exactly one leaf range; covered %d times", i, c)
		}
	}
}

func TestBuildInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	bounds := randomBounds(rng, 200)

	for _, mode := range []Mode{Middle, EqualCounts, SurfaceAreaHeuristic} {
		tree := Build(bounds, elementIndices(len(bounds)), mode, 0)
		if tree.Mode() != mode {
			t.Fatalf("expected tree mode %s; got %s", mode, tree.Mode())
		}
		checkInvariants(t, tree, bounds)
	}
}

func TestBuildSingleElement(t *testing.T) {
	bounds := []types.Bound2{makeBound(0, 0, 1, 1)}

	for _, mode := range []Mode{Middle, EqualCounts, SurfaceAreaHeuristic} {
		tree := Build(bounds, elementIndices(1), mode, 0)
		stats := tree.Stats()
		if stats.Leafs != 1 || stats.InternalNodes != 0 {
			t.Fatalf("%s: expected a single leaf for one element; got %d leafs and %d internal nodes",
				mode, stats.Leafs, stats.InternalNodes)
		}
		checkInvariants(t, tree, bounds)
	}
}

func TestBuildCoincidentCentroids(t *testing.T) {
	// Identical volumes share a centroid, so no split can separate
	// them; every mode must produce a single leaf.
	bounds := make([]types.Bound2, 16)
	for i := range bounds {
		bounds[i] = makeBound(3, 4, 5, 6)
	}

	for _, mode := range []Mode{Middle, EqualCounts, SurfaceAreaHeuristic} {
		tree := Build(bounds, elementIndices(len(bounds)), mode, 0)
		stats := tree.Stats()
		if stats.Leafs != 1 || stats.InternalNodes != 0 {
			t.Fatalf("%s: expected a single leaf for coincident centroids; got %d leafs and %d internal nodes",
				mode, stats.Leafs, stats.InternalNodes)
		}
		checkInvariants(t, tree, bounds)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	tree := Build([]types.Bound2{}, []int32{}, SurfaceAreaHeuristic, 0)
	if tree.Len() != 0 {
		t.Fatalf("expected empty tree; got %d elements", tree.Len())
	}
	if ranges := tree.Query(makeBound(-1000, -1000, 1000, 1000)); len(ranges) != 0 {
		t.Fatalf("expected no ranges from an empty tree; got %d", len(ranges))
	}
}

func TestBuildTruncatesToShorterInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	bounds := randomBounds(rng, 50)

	tree := Build(bounds, elementIndices(30), EqualCounts, 0)
	if tree.Len() != 30 {
		t.Fatalf("expected tree over 30 elements; got %d", tree.Len())
	}
	checkInvariants(t, tree, bounds[:30])
}

func TestBuildUnknownModePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Build to panic for an unknown mode")
		}
	}()
	Build([]types.Bound2{makeBound(0, 0, 1, 1)}, []int32{0}, Mode(42), 0)
}

func TestLeafItemCap(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	bounds := randomBounds(rng, 300)

	tree := Build(bounds, elementIndices(len(bounds)), SurfaceAreaHeuristic, 8)
	checkInvariants(t, tree, bounds)

	for idx := range tree.nodes {
		n := &tree.nodes[idx]
		if n.isLeaf() && n.count > 8 {
			t.Fatalf("expected every leaf to hold at most 8 elements; leaf at node %d holds %d", idx, n.count)
		}
	}
}

func TestSelectNth(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	bounds := randomBounds(rng, 101)

	b := &builder[types.Bound2, int32]{infos: make([]elementInfo[types.Bound2], len(bounds))}
	for i := range bounds {
		b.infos[i] = elementInfo[types.Bound2]{bounds: bounds[i], index: int32(i)}
	}

	nth := len(bounds) / 2
	b.selectNth(0, len(bounds), nth, 0)

	pivot := b.infos[nth].bounds.AxisCentroid(0)
	for i := 0; i < nth; i++ {
		if b.infos[i].bounds.AxisCentroid(0) > pivot {
			t.Fatalf("expected infos[%d] centroid <= median %f; got %f", i, pivot, b.infos[i].bounds.AxisCentroid(0))
		}
	}
	for i := nth + 1; i < len(bounds); i++ {
		if b.infos[i].bounds.AxisCentroid(0) < pivot {
			t.Fatalf("expected infos[%d] centroid >= median %f; got %f", i, pivot, b.infos[i].bounds.AxisCentroid(0))
		}
	}
}
