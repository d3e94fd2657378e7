package core

import (
	"fmt"

	"github.com/df07/go-accel-tracer/pkg/vecmath"
)

// triangleEpsilon is the Möller–Trumbore determinant threshold from §4.1.
const triangleEpsilon = 1e-8

// Triangle is a single triangle with a precomputed unit normal and a
// material handle. NewTriangle panics if asked to build a degenerate
// (zero-area) triangle, per §7's "fatal at build time" taxonomy. The OBJ
// and glTF loaders do not check faces before construction, so a
// degenerate face in a scene file panics during loading.
type Triangle struct {
	V0, V1, V2 Vec3
	UnitNorm   Vec3
	Material   *Material
	bbox       AABB
}

// NewTriangle builds a triangle and precomputes its unit normal and AABB.
func NewTriangle(v0, v1, v2 Vec3, material *Material) *Triangle {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	normal := edge1.Cross(edge2)
	if normal.Length() == 0 {
		panic(fmt.Sprintf("core: degenerate triangle (zero-area normal) at %v,%v,%v", v0, v1, v2))
	}
	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		UnitNorm: normal.Normalize(),
		Material: material,
		bbox:     NewAABBFromPoints(v0, v1, v2),
	}
}

// BoundingBox returns the triangle's cached AABB.
func (t *Triangle) BoundingBox() AABB {
	return t.bbox
}

// Hit runs Möller–Trumbore against the ray and returns the parametric
// distance, the hit point, and the triangle itself. Per §4.1 the returned
// t is NOT filtered against the ray's [TMin, TMax] — callers must clamp.
func (t *Triangle) Hit(ray Ray) (hitT float64, point Vec3, ok bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -triangleEpsilon && a < triangleEpsilon {
		return 0, vecmath.Vec3{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, vecmath.Vec3{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, vecmath.Vec3{}, false
	}

	hitT = f * edge2.Dot(q)
	if hitT <= triangleEpsilon {
		return 0, vecmath.Vec3{}, false
	}

	return hitT, ray.At(hitT), true
}
