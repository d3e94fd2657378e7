package vecmath

import "math"

// Ray is an origin, a (not necessarily unit-length) direction, and an
// inclusive parametric interval [TMin, TMax] over which hits are considered
// valid. Rays are created and read, never mutated in place — callers that
// need a narrower interval build a new Ray or track bounds locally (see
// BruteForceAccelerator.Hit in pkg/core, which must not alias a shared Ray
// across meshes).
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
}

// NewRay creates a ray with the default primary-ray interval [0.1, +Inf).
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: 0.1, TMax: math.Inf(1)}
}

// NewRayInterval creates a ray with an explicit [tMin, tMax] interval, used
// for shadow rays and recursive rays spawned with a small epsilon offset
// rather than a raised TMin.
func NewRayInterval(origin, direction Vec3, tMin, tMax float64) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: tMin, TMax: tMax}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
