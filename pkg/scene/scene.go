// Package scene owns the mesh/light/ambient state of a render and
// dispatches hit-testing to whichever spatial accelerator was selected for
// the run.
package scene

import (
	"fmt"

	"github.com/df07/go-accel-tracer/pkg/accel"
	"github.com/df07/go-accel-tracer/pkg/core"
)

// AccelKind names the selectable acceleration structure choices from §4.7
// and §6's CLI surface.
type AccelKind string

const (
	AccelBVH     AccelKind = "bvh"
	AccelMeshBVH AccelKind = "mesh_bvh"
	AccelKDTree  AccelKind = "kd-tree"
	AccelGrid    AccelKind = "grid"
	AccelNone    AccelKind = "none"
)

// Scene owns the mesh list, the chosen accelerator, the lights, and the
// ambient light multiplier (§3).
type Scene struct {
	Meshes  []*core.Mesh
	Lights  []core.Light
	Ambient float64

	accelKind AccelKind
	accel     core.Accelerator
}

// Build constructs a Scene backed by the requested accelerator kind. An
// unrecognized kind is an error; every other combination — including zero
// meshes — succeeds with a benign always-miss structure (§7, taxonomy 2).
func Build(meshes []*core.Mesh, lights []core.Light, ambient float64, kind AccelKind) (*Scene, error) {
	var accelerator core.Accelerator

	switch kind {
	case AccelBVH:
		accelerator = accel.NewTriangleBVH(flattenTriangles(meshes), accel.DefaultTriangleLeafSize)
	case AccelMeshBVH:
		accelerator = accel.NewMeshBVH(meshes)
	case AccelKDTree:
		accelerator = accel.NewKDTree(flattenTriangles(meshes), accel.DefaultKDMaxDepth)
	case AccelGrid:
		accelerator = accel.NewUniformGrid(flattenTriangles(meshes), accel.DefaultGridResolution)
	case AccelNone:
		accelerator = core.NewBruteForceAccelerator(meshes)
	default:
		return nil, fmt.Errorf("scene: unknown acceleration structure %q", kind)
	}

	return &Scene{
		Meshes:    meshes,
		Lights:    lights,
		Ambient:   ambient,
		accelKind: kind,
		accel:     accelerator,
	}, nil
}

func flattenTriangles(meshes []*core.Mesh) []*core.Triangle {
	var tris []*core.Triangle
	for _, m := range meshes {
		tris = append(tris, m.Faces...)
	}
	return tris
}

// AccelKind reports which accelerator this scene was built with, for the
// benchmark harness's results-file naming (§6).
func (s *Scene) AccelKind() AccelKind {
	return s.accelKind
}

// Hit dispatches to the selected accelerator (§4.7). The ray is never
// mutated; callers pass bounds explicitly and read the hit distance T
// from the HitResult.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (core.HitResult, bool) {
	return s.accel.Hit(ray, tMin, tMax)
}
