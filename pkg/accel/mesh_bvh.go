package accel

import (
	"sort"

	"github.com/df07/go-accel-tracer/pkg/core"
)

// meshBVHNode mirrors triangleBVHNode but holds meshes rather than
// triangles; leaves terminate at a single mesh (§4.4).
type meshBVHNode struct {
	box    core.AABB
	left   *meshBVHNode
	right  *meshBVHNode
	meshes []*core.Mesh // non-nil only on leaves
}

// MeshBVH is a bounding volume hierarchy built over whole meshes rather
// than individual triangles. At a leaf it re-tests each mesh's own AABB
// before falling through to its triangles, preserving per-mesh locality.
type MeshBVH struct {
	root *meshBVHNode
}

// NewMeshBVH builds a mesh BVH over the given meshes.
func NewMeshBVH(meshes []*core.Mesh) *MeshBVH {
	ms := make([]*core.Mesh, len(meshes))
	copy(ms, meshes)
	return &MeshBVH{root: buildMeshBVH(ms)}
}

func meshListBox(meshes []*core.Mesh) core.AABB {
	box := meshes[0].BoundingBox()
	for _, m := range meshes[1:] {
		box = box.Union(m.BoundingBox())
	}
	return box
}

func buildMeshBVH(meshes []*core.Mesh) *meshBVHNode {
	if len(meshes) == 0 {
		return &meshBVHNode{meshes: meshes}
	}

	box := meshListBox(meshes)

	// Leaf termination: |meshes| <= 1 (§4.4).
	if len(meshes) <= 1 {
		return &meshBVHNode{box: box, meshes: meshes}
	}

	axis := box.LongestAxis()

	sort.SliceStable(meshes, func(i, j int) bool {
		ci := (meshes[i].BBoxMin.Component(axis) + meshes[i].BBoxMax.Component(axis)) * 0.5
		cj := (meshes[j].BBoxMin.Component(axis) + meshes[j].BBoxMax.Component(axis)) * 0.5
		return ci < cj
	})

	mid := len(meshes) / 2
	left := buildMeshBVH(meshes[:mid])
	right := buildMeshBVH(meshes[mid:])

	return &meshBVHNode{box: box, left: left, right: right}
}

// Hit implements core.Accelerator.
func (b *MeshBVH) Hit(ray core.Ray, tMin, tMax float64) (core.HitResult, bool) {
	if b.root == nil {
		return core.HitResult{}, false
	}
	return hitMeshNode(b.root, ray, tMin, tMax)
}

func hitMeshNode(node *meshBVHNode, ray core.Ray, tMin, tMax float64) (core.HitResult, bool) {
	if !node.box.Hit(ray, tMin, tMax) {
		return core.HitResult{}, false
	}

	if node.meshes != nil {
		return hitMeshLeaf(node.meshes, ray, tMin, tMax)
	}

	closest := tMax
	var best core.HitResult
	found := false

	if node.left != nil {
		if hit, ok := hitMeshNode(node.left, ray, tMin, closest); ok {
			closest = hit.T
			best = hit
			found = true
		}
	}
	if node.right != nil {
		if hit, ok := hitMeshNode(node.right, ray, tMin, closest); ok {
			best = hit
			found = true
		}
	}

	return best, found
}

// hitMeshLeaf tests each mesh's own AABB first, only then its triangles
// (§4.4's two-level structure).
func hitMeshLeaf(meshes []*core.Mesh, ray core.Ray, tMin, tMax float64) (core.HitResult, bool) {
	closest := tMax
	var best core.HitResult
	found := false

	for _, mesh := range meshes {
		if !mesh.BoundingBox().Hit(ray, tMin, closest) {
			continue
		}
		for _, tri := range mesh.Faces {
			t, point, ok := tri.Hit(ray)
			if !ok || t < tMin || t > closest {
				continue
			}
			closest = t
			best = core.HitResult{T: t, Point: point, Triangle: tri}
			found = true
		}
	}

	return best, found
}
