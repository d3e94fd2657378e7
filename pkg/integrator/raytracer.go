package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-accel-tracer/pkg/core"
	"github.com/df07/go-accel-tracer/pkg/scene"
)

// RayTracer implements the Whitted-style get_color integrator (§4.9.1).
type RayTracer struct {
	Scene    *scene.Scene
	MaxDepth int
}

// NewRayTracer builds a RayTracer over the given scene. maxDepth <= 0 uses
// the reference default of 5.
func NewRayTracer(s *scene.Scene, maxDepth int) *RayTracer {
	if maxDepth <= 0 {
		maxDepth = 5
	}
	return &RayTracer{Scene: s, MaxDepth: maxDepth}
}

// Color implements camera.Integrator.
func (rt *RayTracer) Color(ray core.Ray, depth int, rng *rand.Rand) core.Vec3 {
	if depth > rt.MaxDepth {
		return core.Vec3{}
	}

	hit, ok := rt.Scene.Hit(ray, ray.TMin, ray.TMax)
	if !ok {
		return Sky(ray)
	}

	tri := hit.Triangle
	p := hit.Point
	n := tri.UnitNorm
	mat := tri.Material

	switch mat.Kind() {
	case core.KindDiffuse:
		return rt.shadeDiffuse(ray, tri, p, n)
	case core.KindMirror:
		return rt.shadeMirror(ray, tri, p, n, depth, rng)
	default: // core.KindDielectric
		return rt.shadeDielectric(ray, tri, p, n, depth, rng)
	}
}

// shadeDiffuse implements illum=2: ambient plus, for each unshadowed
// light, the Phong term — overwriting rather than accumulating across
// lights, a reference quirk preserved per §9 open question 1.
func (rt *RayTracer) shadeDiffuse(ray core.Ray, tri *core.Triangle, p, n core.Vec3) core.Vec3 {
	out := tri.Material.Ambient.Multiply(rt.Scene.Ambient)

	shadowOrigin := p.Add(n.Multiply(1e-3))
	for _, light := range rt.Scene.Lights {
		toLight := light.Position.Subtract(shadowOrigin)
		shadowRay := core.NewRayInterval(shadowOrigin, toLight, 1e-4, 1.0)

		if _, occluded := rt.Scene.Hit(shadowRay, 1e-4, 1.0); occluded {
			continue
		}

		// TODO(illum2): this overwrites rather than adds, so only the last
		// unoccluded light survives — matches the reference, not fixed.
		out = Phong(tri, light, p, ray.Origin, rt.Scene.Ambient)
	}

	return out
}

// shadeMirror implements illum=3: Phong against the first light mixed
// 0.3/0.7 with the reflected ray's color.
func (rt *RayTracer) shadeMirror(ray core.Ray, tri *core.Triangle, p, n core.Vec3, depth int, rng *rand.Rand) core.Vec3 {
	var phong core.Vec3
	if len(rt.Scene.Lights) > 0 {
		phong = Phong(tri, rt.Scene.Lights[0], p, ray.Origin, rt.Scene.Ambient)
	}

	reflectDir := ray.Direction.Normalize().Reflect(n)
	reflectRay := core.NewRayInterval(p, reflectDir, 1e-6, math.Inf(1))
	reflectColor := rt.Color(reflectRay, depth+1, rng)

	return phong.Multiply(0.3).Add(reflectColor.Multiply(0.7))
}

// shadeDielectric implements illum=4/5: Schlick-weighted probabilistic
// reflect/refract. The Schlick cosine is the signed dot against the
// surface normal, not the flipped normal — applied identically whether
// the ray enters or exits, per §9 open question 3.
func (rt *RayTracer) shadeDielectric(ray core.Ray, tri *core.Triangle, p, n core.Vec3, depth int, rng *rand.Rand) core.Vec3 {
	ni := tri.Material.OpticalDensity
	r0 := math.Pow((1-ni)/(1+ni), 2)

	d := ray.Direction.Normalize()
	cosTheta := d.Dot(n)
	pr := r0 + (1-r0)*math.Pow(1-cosTheta, 5)

	reflect := func() core.Vec3 {
		reflectDir := d.Reflect(n)
		reflectRay := core.NewRayInterval(p, reflectDir, 1e-6, math.Inf(1))
		return rt.Color(reflectRay, depth+1, rng)
	}

	if rng.Float64() < pr {
		return reflect()
	}

	eta := 1.0 / ni
	cosI := -cosTheta
	sin2t := eta * eta * (1 - cosI*cosI)
	if sin2t > 1 {
		// Total internal reflection falls back to reflection at the same
		// depth level (§4.9.1, §7 taxonomy 4).
		reflectDir := d.Reflect(n)
		reflectRay := core.NewRayInterval(p, reflectDir, 1e-6, math.Inf(1))
		return rt.Color(reflectRay, depth, rng)
	}

	cosT := math.Sqrt(1 - sin2t)
	refractDir := d.Multiply(eta).Add(n.Multiply(eta*cosI - cosT))
	refractOrigin := p.Add(refractDir.Normalize().Multiply(1e-3))
	refractRay := core.NewRayInterval(refractOrigin, refractDir, 0, math.Inf(1))
	return rt.Color(refractRay, depth+1, rng)
}
