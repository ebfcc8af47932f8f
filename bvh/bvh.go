// Package bvh implements a bounding volume hierarchy: a binary tree
// over a set of elements with mergeable bounding volumes that
// accelerates volume-overlap queries. Trees are built once and are
// immutable afterwards.
package bvh

import "fmt"

// Volume is implemented by bounding volume types that can be indexed by
// the builder. Volumes are immutable values; Merge stands in for both
// the merge and expand operations of a mutable volume API and
// CentroidBounds renders the centroid as a zero-extent volume so that
// centroid points can be folded with Merge as well.
type Volume[V any] interface {
	// Merge returns the smallest volume enclosing both volumes.
	Merge(other V) V

	// CentroidBounds returns a zero-extent volume at the centroid.
	CentroidBounds() V

	// MaxExtentAxis returns the axis along which the volume is widest.
	MaxExtentAxis() int

	// AxisMin and AxisMax return the volume extents on an axis.
	AxisMin(axis int) float32
	AxisMax(axis int) float32

	// AxisCentroid returns the centroid coordinate on an axis.
	AxisCentroid(axis int) float32

	// SurfaceArea returns the measure used by the SAH cost model.
	SurfaceArea() float32

	// Intersects reports whether the two volumes overlap.
	Intersects(other V) bool
}

// Mode selects the split strategy used while partitioning elements.
type Mode uint8

const (
	// Middle partitions at the spatial midpoint of the centroid bounds.
	Middle Mode = iota

	// EqualCounts partitions at the median centroid.
	EqualCounts

	// SurfaceAreaHeuristic partitions at the bucket boundary with the
	// lowest estimated traversal cost. This is the default mode.
	SurfaceAreaHeuristic
)

// DefaultMaxLeafItems caps the number of elements the surface area
// heuristic will keep in a single leaf before forcing a split.
const DefaultMaxLeafItems = 255

func (m Mode) String() string {
	switch m {
	case Middle:
		return "middle"
	case EqualCounts:
		return "equal-counts"
	case SurfaceAreaHeuristic:
		return "surface-area-heuristic"
	}
	return fmt.Sprintf("unknown mode (%d)", uint8(m))
}

// ParseMode maps a mode name to its Mode value.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "middle":
		return Middle, nil
	case "equal-counts":
		return EqualCounts, nil
	case "sah", "surface-area-heuristic":
		return SurfaceAreaHeuristic, nil
	}
	return 0, fmt.Errorf("unsupported build mode %q", name)
}
