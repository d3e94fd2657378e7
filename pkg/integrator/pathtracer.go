package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-accel-tracer/pkg/core"
	"github.com/df07/go-accel-tracer/pkg/scene"
)

// PathTracer implements the Monte-Carlo get_color_pathtrace integrator
// (§4.9.2): diffuse hemisphere bounces, mirror recursion, and emissive
// pickup, with fixed-depth termination instead of Russian roulette.
type PathTracer struct {
	Scene    *scene.Scene
	MaxDepth int
}

// NewPathTracer builds a PathTracer over the given scene. maxDepth <= 0
// uses the reference default of 7.
func NewPathTracer(s *scene.Scene, maxDepth int) *PathTracer {
	if maxDepth <= 0 {
		maxDepth = 7
	}
	return &PathTracer{Scene: s, MaxDepth: maxDepth}
}

// Color implements camera.Integrator.
func (pt *PathTracer) Color(ray core.Ray, depth int, rng *rand.Rand) core.Vec3 {
	if depth >= pt.MaxDepth {
		return Sky(ray)
	}

	hit, ok := pt.Scene.Hit(ray, ray.TMin, ray.TMax)
	if !ok {
		return Sky(ray)
	}

	tri := hit.Triangle
	p := hit.Point
	mat := tri.Material

	// Two-sided surfaces: flip the normal to face the incoming ray.
	n := tri.UnitNorm
	if ray.Direction.Dot(n) > 0 {
		n = n.Negate()
	}

	if mat.Kind() == core.KindMirror {
		reflectDir := ray.Direction.Reflect(n)
		reflectOrigin := p.Add(n.Multiply(1e-4))
		reflectRay := core.NewRayInterval(reflectOrigin, reflectDir, 0, math.Inf(1))
		recursive := pt.Color(reflectRay, depth+1, rng)
		return recursive.MultiplyVec(mat.Diffuse)
	}

	bounceDir := randomHemisphereDirection(n, rng)
	bounceOrigin := p.Add(n.Multiply(1e-4))
	bounceRay := core.NewRayInterval(bounceOrigin, bounceDir, 0, math.Inf(1))
	recursive := pt.Color(bounceRay, depth+1, rng)

	return mat.Diffuse.MultiplyVec(recursive).Add(mat.Emissive)
}
