package types

// Bound2 is an axis-aligned 2D bounding box. The zero value is not a
// valid bound; use NewBound2 or Bound2FromPoint to construct one.
type Bound2 struct {
	Min Vec2
	Max Vec2
}

// NewBound2 creates a bound from two corner points. The corners may be
// given in any order.
func NewBound2(p0, p1 Vec2) Bound2 {
	return Bound2{
		Min: MinVec2(p0, p1),
		Max: MaxVec2(p0, p1),
	}
}

// Bound2FromPoint creates a zero-extent bound at the given point.
func Bound2FromPoint(p Vec2) Bound2 {
	return Bound2{Min: p, Max: p}
}

// Merge returns the smallest bound enclosing both b and other.
func (b Bound2) Merge(other Bound2) Bound2 {
	return Bound2{
		Min: MinVec2(b.Min, other.Min),
		Max: MaxVec2(b.Max, other.Max),
	}
}

// ExpandPoint returns the smallest bound enclosing b and the point p.
func (b Bound2) ExpandPoint(p Vec2) Bound2 {
	return Bound2{
		Min: MinVec2(b.Min, p),
		Max: MaxVec2(b.Max, p),
	}
}

// Centroid returns the center point of the bound.
func (b Bound2) Centroid() Vec2 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// CentroidBounds returns a zero-extent bound at the centroid.
func (b Bound2) CentroidBounds() Bound2 {
	return Bound2FromPoint(b.Centroid())
}

// MaxExtentAxis returns the axis along which the bound is widest.
func (b Bound2) MaxExtentAxis() int {
	if b.Max[0]-b.Min[0] > b.Max[1]-b.Min[1] {
		return 0
	}
	return 1
}

// AxisMin returns the lower bound coordinate on the given axis.
func (b Bound2) AxisMin(axis int) float32 {
	return b.Min[axis]
}

// AxisMax returns the upper bound coordinate on the given axis.
func (b Bound2) AxisMax(axis int) float32 {
	return b.Max[axis]
}

// AxisCentroid returns the centroid coordinate on the given axis.
func (b Bound2) AxisCentroid(axis int) float32 {
	return (b.Min[axis] + b.Max[axis]) * 0.5
}

// SurfaceArea returns the area enclosed by the bound.
func (b Bound2) SurfaceArea() float32 {
	side := b.Max.Sub(b.Min)
	return side[0] * side[1]
}

// Intersects reports whether the two bounds overlap. Touching edges
// count as an intersection.
func (b Bound2) Intersects(other Bound2) bool {
	if b.Min[0] > other.Max[0] || b.Max[0] < other.Min[0] {
		return false
	}
	if b.Min[1] > other.Max[1] || b.Max[1] < other.Min[1] {
		return false
	}
	return true
}

// Contains reports whether the point lies inside or on the bound.
func (b Bound2) Contains(p Vec2) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1]
}
