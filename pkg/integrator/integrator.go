// Package integrator implements the recursive shading kernels that turn a
// primary ray into a color: Whitted-style ray tracing and Monte-Carlo path
// tracing, both driven by the same scene hit interface.
package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-accel-tracer/pkg/core"
)

// Sky returns the miss color: a vertical lerp between white and pale blue
// by the ray's (normalized) Y direction component (§4.9.1).
func Sky(ray core.Ray) core.Vec3 {
	d := ray.Direction.Normalize()
	a := 0.5 * (d.Y + 1)
	white := core.Vec3{X: 1, Y: 1, Z: 1}
	paleBlue := core.Vec3{X: 0.5, Y: 0.7, Z: 1.0}
	return white.Multiply(1 - a).Add(paleBlue.Multiply(a))
}

// Phong evaluates the local shading term for one light at one hit point
// (§4.9.1's Phong definition).
func Phong(tri *core.Triangle, light core.Light, point, viewOrigin core.Vec3, ambientLight float64) core.Vec3 {
	n := tri.UnitNorm
	mat := tri.Material

	l := light.Position.Subtract(point).Normalize()
	r := n.Multiply(2 * n.Dot(l)).Subtract(l).Normalize()
	v := viewOrigin.Subtract(point).Normalize()

	diffuseTerm := math.Max(0, l.Dot(n))
	specularTerm := math.Pow(math.Max(0, r.Dot(v)), mat.Shininess)

	local := mat.Diffuse.Multiply(diffuseTerm).Add(mat.Specular.Multiply(specularTerm))
	lit := light.Color.MultiplyVec(local).Multiply(light.Intensity)
	ambient := mat.Ambient.Multiply(ambientLight)

	return ambient.Add(lit)
}

// randomInUnitSphere rejection-samples a point inside the unit ball.
func randomInUnitSphere(rng *rand.Rand) core.Vec3 {
	for {
		p := core.Vec3{
			X: rng.Float64()*2 - 1,
			Y: rng.Float64()*2 - 1,
			Z: rng.Float64()*2 - 1,
		}
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// randomHemisphereDirection draws a direction uniform in the hemisphere
// about n, per §4.9.2's diffuse bounce.
func randomHemisphereDirection(n core.Vec3, rng *rand.Rand) core.Vec3 {
	d := randomInUnitSphere(rng).Normalize()
	if d.Dot(n) < 0 {
		d = d.Negate()
	}
	return d
}
