package bvh

import "math"

// Axis names one of the three coordinate axes, used for longest-axis
// decisions and SAH/Median splits.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// AABB is an axis-aligned bounding box: Min.k <= Max.k must hold for every
// axis k. A box with Min.k > Max.k on any axis is empty.
type AABB struct {
	Min, Max Vector3
}

// NewAABB builds an AABB from two corner points, normalizing components
// so that Min.k <= Max.k on every axis (§7: malformed AABBs are
// normalized, never rejected, so a single bad payload can't panic an
// embedding real-time system).
func NewAABB(a, b Vector3) AABB {
	return AABB{Min: minVec(a, b), Max: maxVec(a, b)}
}

// NewAABBFromPoints returns the smallest AABB enclosing every point.
// Grounded on bounding_volumes.go's NewAABBFromPoints.
func NewAABBFromPoints(points []Vector3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = minVec(box.Min, p)
		box.Max = maxVec(box.Max, p)
	}
	return box
}

// isEmpty reports whether the box has min.k > max.k on any axis.
func (a AABB) isEmpty() bool {
	return a.Min.X > a.Max.X || a.Min.Y > a.Max.Y || a.Min.Z > a.Max.Z
}

// Union returns the smallest AABB enclosing both a and b.
func Union(a, b AABB) AABB {
	return AABB{Min: minVec(a.Min, b.Min), Max: maxVec(a.Max, b.Max)}
}

// Union returns the smallest AABB enclosing a and b.
func (a AABB) Union(b AABB) AABB {
	return Union(a, b)
}

// Intersects reports whether two AABBs overlap, including touching
// faces.
func Intersects(a, b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Intersects reports whether a and b overlap.
func (a AABB) Intersects(b AABB) bool {
	return Intersects(a, b)
}

// ContainsPoint reports whether p lies within (or on the boundary of) a.
func (a AABB) ContainsPoint(p Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// Center returns (Min+Max)/2.
func (a AABB) Center() Vector3 {
	return Vector3{
		X: (a.Min.X + a.Max.X) / 2,
		Y: (a.Min.Y + a.Max.Y) / 2,
		Z: (a.Min.Z + a.Max.Z) / 2,
	}
}

// Extent returns Max-Min.
func (a AABB) Extent() Vector3 {
	return a.Max.sub(a.Min)
}

// SurfaceArea returns 2*(ex*ey + ex*ez + ey*ez).
func (a AABB) SurfaceArea() float64 {
	e := a.Extent()
	return 2.0 * (e.X*e.Y + e.X*e.Z + e.Y*e.Z)
}

// Volume returns ex*ey*ez.
func (a AABB) Volume() float64 {
	e := a.Extent()
	return e.X * e.Y * e.Z
}

// LongestAxis returns the axis with the largest extent.
func (a AABB) LongestAxis() Axis {
	e := a.Extent()
	axis := AxisX
	longest := e.X
	if e.Y > longest {
		axis, longest = AxisY, e.Y
	}
	if e.Z > longest {
		axis = AxisZ
	}
	return axis
}

// component returns v's coordinate along axis.
func (axis Axis) component(v Vector3) float64 {
	switch axis {
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	default:
		return v.X
	}
}

// ClosestPoint returns the point on (or in) a nearest to p.
func (a AABB) ClosestPoint(p Vector3) Vector3 {
	return Vector3{
		X: clampF(p.X, a.Min.X, a.Max.X),
		Y: clampF(p.Y, a.Min.Y, a.Max.Y),
		Z: clampF(p.Z, a.Min.Z, a.Max.Z),
	}
}

// DistanceSq returns the squared distance from p to the closest point on
// a. Zero if p is inside a.
func (a AABB) DistanceSq(p Vector3) float64 {
	c := a.ClosestPoint(p)
	return c.sub(p).lengthSq()
}

// IntersectsSphere reports whether a sphere of the given center and
// radius overlaps a. Grounded on bounding_volumes.go's
// AABB.IntersectsSphere.
func (a AABB) IntersectsSphere(center Vector3, radius float64) bool {
	return a.DistanceSq(center) <= radius*radius
}

const rayEpsilon = 1e-10

// RayIntersect performs the standard slab test and returns the entry
// distance of the nearest intersection along dir from origin, or
// (0, false) on a miss. dir is assumed normalized (§4.5's ray-direction
// contract). For each axis with |dir.k| < epsilon, the ray is treated as
// parallel to that pair of slabs: if origin.k falls outside [Min.k,
// Max.k] the ray misses outright, otherwise that axis contributes no
// constraint.
func (a AABB) RayIntersect(origin, dir Vector3) (float64, bool) {
	tMin, tMax := math.Inf(-1), math.Inf(1)

	axes := [3]struct{ o, d, lo, hi float64 }{
		{origin.X, dir.X, a.Min.X, a.Max.X},
		{origin.Y, dir.Y, a.Min.Y, a.Max.Y},
		{origin.Z, dir.Z, a.Min.Z, a.Max.Z},
	}

	for _, ax := range axes {
		if math.Abs(ax.d) < rayEpsilon {
			if ax.o < ax.lo || ax.o > ax.hi {
				return 0, false
			}
			continue
		}
		inv := 1.0 / ax.d
		t0 := (ax.lo - ax.o) * inv
		t1 := (ax.hi - ax.o) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = maxF(tMin, t0)
		tMax = minF(tMax, t1)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 {
		return 0, false
	}
	if tMin < 0 {
		return 0, true
	}
	return tMin, true
}

// Expand returns a copy of a grown by amount on every face.
func (a AABB) Expand(amount float64) AABB {
	d := Vector3{amount, amount, amount}
	return AABB{Min: a.Min.sub(d), Max: a.Max.add(d)}
}

// enlargementCost is SA(Union(a,b)) - SA(a), the cost of growing a to
// also enclose b. Used by insertion to pick the cheaper child.
func enlargementCost(a, b AABB) float64 {
	return Union(a, b).SurfaceArea() - a.SurfaceArea()
}
