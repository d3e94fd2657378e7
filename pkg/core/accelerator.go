package core

// HitResult is the outcome of a successful accelerator query: the
// parametric distance, the world-space hit point, and the triangle that
// was hit.
type HitResult struct {
	T        float64
	Point    Vec3
	Triangle *Triangle
}

// Accelerator is satisfied by every spatial structure the scene can
// dispatch to: the triangle BVH, the mesh BVH, the KD-tree, the uniform
// grid, and the brute-force "none" fallback below. All of them are built
// once and are immutable (and therefore safely shared) thereafter.
type Accelerator interface {
	Hit(ray Ray, tMin, tMax float64) (HitResult, bool)
}

// BruteForceAccelerator is the "none" accelerator choice from §4.7: it
// walks every mesh, AABB-tests the mesh itself, and only then brute-forces
// its triangles, keeping the closest hit across all meshes.
//
// The reference implementation mutates the ray's TMin/TMax between meshes
// as it narrows the search; per §5 and §9 that aliasing is a hazard under
// parallel rendering, so this implementation tracks the shrinking bound in
// a local variable instead and leaves the caller's Ray untouched.
type BruteForceAccelerator struct {
	Meshes []*Mesh
}

// NewBruteForceAccelerator builds the "none" accelerator over a mesh list.
// An empty mesh list is a valid, always-miss accelerator (§7, taxonomy 2).
func NewBruteForceAccelerator(meshes []*Mesh) *BruteForceAccelerator {
	return &BruteForceAccelerator{Meshes: meshes}
}

// Hit implements Accelerator.
func (b *BruteForceAccelerator) Hit(ray Ray, tMin, tMax float64) (HitResult, bool) {
	closest := tMax
	var best HitResult
	found := false

	for _, mesh := range b.Meshes {
		meshBox := mesh.BoundingBox()
		if !meshBox.Hit(ray, tMin, closest) {
			continue
		}
		for _, tri := range mesh.Faces {
			t, point, ok := tri.Hit(ray)
			if !ok || t < tMin || t > closest {
				continue
			}
			closest = t
			best = HitResult{T: t, Point: point, Triangle: tri}
			found = true
		}
	}

	return best, found
}
