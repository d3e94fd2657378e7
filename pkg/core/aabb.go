package core

import (
	"math"

	"github.com/df07/go-accel-tracer/pkg/vecmath"
)

// Vec3 is re-exported for callers that only import pkg/core.
type Vec3 = vecmath.Vec3

// Ray is re-exported for callers that only import pkg/core.
type Ray = vecmath.Ray

// NewRay and NewRayInterval are re-exported so callers outside pkg/vecmath
// never need to import it directly.
func NewRay(origin, direction Vec3) Ray {
	return vecmath.NewRay(origin, direction)
}

// NewRayInterval re-exports vecmath.NewRayInterval.
func NewRayInterval(origin, direction Vec3, tMin, tMax float64) Ray {
	return vecmath.NewRayInterval(origin, direction, tMin, tMax)
}

// dirEpsilon clamps a near-zero ray direction component so the slab test's
// division never produces Inf/NaN from an actually-zero direction, while
// still treating the axis as "nearly parallel" rather than special-casing it.
const dirEpsilon = 1e-8

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// NewAABB builds an AABB from explicit min/max corners.
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints builds the tightest AABB enclosing the given points.
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	min := points[0]
	max := points[0]
	for _, p := range points[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		min.Z = math.Min(min.Z, p.Z)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
		max.Z = math.Max(max.Z, p.Z)
	}
	return AABB{Min: min, Max: max}
}

// clampedInvDir returns 1/direction with the denominator ε-clamped away
// from zero, per §4.2: a near-parallel ray is handled by clamping, not by
// a separate parallel-ray branch.
func clampedInvDir(direction float64) float64 {
	if math.Abs(direction) < dirEpsilon {
		if direction < 0 {
			return 1.0 / -dirEpsilon
		}
		return 1.0 / dirEpsilon
	}
	return 1.0 / direction
}

// ClampedInvDir exposes the ε-clamped reciprocal direction used by the
// slab test, for accelerators (the KD-tree) that need to recompute
// per-axis entry/exit/split parametric values outside of AABB.Hit.
func ClampedInvDir(direction float64) float64 {
	return clampedInvDir(direction)
}

// Hit reports whether the ray intersects the box within [tMin, tMax], using
// the branchless running-min/max slab test from §4.2. It does not report
// the entry distance; use HitInterval for that.
func (b AABB) Hit(ray Ray, tMin, tMax float64) bool {
	ok, _, _ := b.HitInterval(ray, tMin, tMax)
	return ok
}

// HitInterval runs the slab test and also returns the entry/exit
// parametric distances, clipped to [tMin, tMax]. Used by the uniform grid
// traversal, which needs the entry point on the box.
//
// A contact where entry equals exit is a grazing miss, except on a box with
// zero extent on exactly one axis (the bound of an axis-aligned planar
// mesh), where every hit has entry equal to exit.
func (b AABB) HitInterval(ray Ray, tMin, tMax float64) (hit bool, tEnter, tExit float64) {
	origins := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	dirs := [3]float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}
	mins := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	maxs := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	zeroAxes := 0
	for axis := 0; axis < 3; axis++ {
		if mins[axis] == maxs[axis] {
			zeroAxes++
		}
	}
	planar := zeroAxes == 1

	for axis := 0; axis < 3; axis++ {
		invDir := clampedInvDir(dirs[axis])
		t0 := (mins[axis] - origins[axis]) * invDir
		t1 := (maxs[axis] - origins[axis]) * invDir
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if tMax < tMin || (tMax == tMin && !planar) {
			return false, 0, 0
		}
	}
	return true, tMin, tMax
}

// Union returns the AABB enclosing both b and other.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: vecmath.NewVec3(math.Min(b.Min.X, other.Min.X), math.Min(b.Min.Y, other.Min.Y), math.Min(b.Min.Z, other.Min.Z)),
		Max: vecmath.NewVec3(math.Max(b.Max.X, other.Max.X), math.Max(b.Max.Y, other.Max.Y), math.Max(b.Max.Z, other.Max.Z)),
	}
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// Size returns the per-axis extent of the box.
func (b AABB) Size() Vec3 {
	return b.Max.Subtract(b.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the largest extent.
// Ties are broken toward the lowest axis index, per §4.3.
func (b AABB) LongestAxis() int {
	size := b.Size()
	if size.X >= size.Y && size.X >= size.Z {
		return 0
	}
	if size.Y >= size.Z {
		return 1
	}
	return 2
}

// Expand returns a box padded by amount on every side.
func (b AABB) Expand(amount float64) AABB {
	pad := vecmath.NewVec3(amount, amount, amount)
	return AABB{Min: b.Min.Subtract(pad), Max: b.Max.Add(pad)}
}
