package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-accel-tracer/pkg/core"
	"github.com/df07/go-accel-tracer/pkg/scene"
)

// buildTestScene builds a single-triangle scene (the brute-force "none"
// accelerator is enough for these unit tests) with one light.
func buildTestScene(t *testing.T, mat core.Material) *scene.Scene {
	t.Helper()
	tri := core.NewTriangle(
		core.Vec3{X: -5, Y: -1, Z: 0}, core.Vec3{X: 5, Y: -1, Z: 0}, core.Vec3{X: 0, Y: 5, Z: 0}, &mat,
	)
	mesh := core.NewMesh("tri", []*core.Triangle{tri})
	lights := []core.Light{core.NewPointLight(core.Vec3{X: 0, Y: 5, Z: 5}, 1)}

	s, err := scene.Build([]*core.Mesh{mesh}, lights, 0.1, scene.AccelNone)
	if err != nil {
		t.Fatalf("scene.Build: %v", err)
	}
	return s
}

func TestSkyMonotonicInterpolation(t *testing.T) {
	straightUp := core.NewRay(core.Vec3{}, core.Vec3{X: 0, Y: 1, Z: 0})
	straightDown := core.NewRay(core.Vec3{}, core.Vec3{X: 0, Y: -1, Z: 0})
	horizon := core.NewRay(core.Vec3{}, core.Vec3{X: 1, Y: 0, Z: 0})

	up := Sky(straightUp)
	down := Sky(straightDown)
	mid := Sky(horizon)

	// Going from straight down (a=0, pure white) to straight up (a=1, pure
	// pale blue), the green channel should strictly decrease and stay
	// bounded between the two extremes at the horizon.
	if !(down.Y >= mid.Y && mid.Y >= up.Y) {
		t.Errorf("sky green channel not monotonic: down=%v mid=%v up=%v", down.Y, mid.Y, up.Y)
	}
	if down != (core.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("straight-down sky = %v, want pure white", down)
	}
}

func TestPhongZeroIntensityGivesAmbientOnly(t *testing.T) {
	mat := core.NewDiffuseMaterial(core.Vec3{X: 0.1, Y: 0.1, Z: 0.1}, core.Vec3{X: 1, Y: 1, Z: 1}, core.Vec3{}, 10)
	tri := core.NewTriangle(
		core.Vec3{X: -1, Y: 0, Z: 0}, core.Vec3{X: 1, Y: 0, Z: 0}, core.Vec3{X: 0, Y: 1, Z: 0}, &mat,
	)
	light := core.Light{Position: core.Vec3{X: 0, Y: 5, Z: 5}, Intensity: 0, Color: core.Vec3{X: 1, Y: 1, Z: 1}}

	got := Phong(tri, light, core.Vec3{X: 0, Y: 0.3, Z: 0}, core.Vec3{X: 0, Y: 0, Z: 5}, 1.0)
	want := mat.Ambient
	if math.Abs(got.X-want.X) > 1e-9 {
		t.Errorf("Phong with zero-intensity light = %v, want ambient-only %v", got, want)
	}
}

func TestRayTracerMissReturnsSky(t *testing.T) {
	s := buildTestScene(t, core.NewDiffuseMaterial(core.Vec3{}, core.Vec3{X: 1, Y: 1, Z: 1}, core.Vec3{}, 10))
	rt := NewRayTracer(s, 5)

	ray := core.NewRayInterval(core.Vec3{X: 100, Y: 100, Z: 100}, core.Vec3{X: 0, Y: 1, Z: 0}, 0, 1000)
	rng := rand.New(rand.NewSource(1))
	got := rt.Color(ray, 0, rng)
	want := Sky(ray)
	if got != want {
		t.Errorf("miss color = %v, want sky %v", got, want)
	}
}

func TestRayTracerDepthCutoffReturnsBlack(t *testing.T) {
	mat := core.NewMirrorMaterial(core.Vec3{}, core.Vec3{X: 1, Y: 1, Z: 1}, core.Vec3{}, 10)
	s := buildTestScene(t, mat)
	rt := NewRayTracer(s, 2)

	ray := core.NewRayInterval(core.Vec3{X: 0, Y: -0.3, Z: 5}, core.Vec3{X: 0, Y: 0, Z: -1}, 0, 1000)
	rng := rand.New(rand.NewSource(1))
	got := rt.Color(ray, 3, rng)
	if got != (core.Vec3{}) {
		t.Errorf("depth beyond MaxDepth = %v, want black", got)
	}
}

func TestPathTracerEmissiveSurfaceContributesDirectly(t *testing.T) {
	mat := core.NewDiffuseMaterial(core.Vec3{}, core.Vec3{}, core.Vec3{}, 0)
	mat.Emissive = core.Vec3{X: 2, Y: 2, Z: 2}
	s := buildTestScene(t, mat)
	pt := NewPathTracer(s, 4)

	ray := core.NewRayInterval(core.Vec3{X: 0, Y: -0.3, Z: 5}, core.Vec3{X: 0, Y: 0, Z: -1}, 0, 1000)
	rng := rand.New(rand.NewSource(3))
	got := pt.Color(ray, 0, rng)

	// Diffuse is zero so the bounce contributes nothing; only emissive
	// should show up in the result.
	if got.X != mat.Emissive.X || got.Y != mat.Emissive.Y || got.Z != mat.Emissive.Z {
		t.Errorf("Color = %v, want emissive-only %v", got, mat.Emissive)
	}
}

func TestPathTracerMaxDepthReturnsSkyNotBlack(t *testing.T) {
	mat := core.NewDiffuseMaterial(core.Vec3{}, core.Vec3{X: 1, Y: 1, Z: 1}, core.Vec3{}, 0)
	s := buildTestScene(t, mat)
	pt := NewPathTracer(s, 3)

	ray := core.NewRayInterval(core.Vec3{X: 0, Y: 0, Z: 0}, core.Vec3{X: 0, Y: 1, Z: 0}, 0, 1000)
	rng := rand.New(rand.NewSource(4))
	got := pt.Color(ray, 3, rng)
	if got != Sky(ray) {
		t.Errorf("Color at MaxDepth = %v, want Sky(ray)", got)
	}
}
