// Package accel implements the four interchangeable spatial acceleration
// structures over triangles and meshes: a triangle BVH, a mesh-level BVH,
// a KD-tree with Ingo Wald ordered traversal, and a uniform grid with
// Amanatides-Woo 3-D DDA traversal. Each satisfies core.Accelerator.
package accel

import (
	"sort"

	"github.com/df07/go-accel-tracer/pkg/core"
)

// DefaultTriangleLeafSize is the default max_leaf_size from §4.3.
const DefaultTriangleLeafSize = 4

// triangleBVHNode is a node in the triangle BVH: either a leaf holding
// triangles, or an internal node owning exactly two children. A node's box
// always encloses the union of its children's (or leaf triangles') boxes.
type triangleBVHNode struct {
	box       core.AABB
	left      *triangleBVHNode
	right     *triangleBVHNode
	triangles []*core.Triangle // non-nil only on leaves
}

// TriangleBVH is a bounding volume hierarchy built directly over triangles.
type TriangleBVH struct {
	root        *triangleBVHNode
	maxLeafSize int
}

// NewTriangleBVH builds a triangle BVH using median-split-on-widest-axis,
// per §4.3. maxLeafSize <= 0 uses DefaultTriangleLeafSize.
func NewTriangleBVH(triangles []*core.Triangle, maxLeafSize int) *TriangleBVH {
	if maxLeafSize <= 0 {
		maxLeafSize = DefaultTriangleLeafSize
	}
	tris := make([]*core.Triangle, len(triangles))
	copy(tris, triangles)
	return &TriangleBVH{
		root:        buildTriangleBVH(tris, maxLeafSize),
		maxLeafSize: maxLeafSize,
	}
}

func triangleListBox(tris []*core.Triangle) core.AABB {
	box := tris[0].BoundingBox()
	for _, t := range tris[1:] {
		box = box.Union(t.BoundingBox())
	}
	return box
}

func buildTriangleBVH(tris []*core.Triangle, maxLeafSize int) *triangleBVHNode {
	if len(tris) == 0 {
		return &triangleBVHNode{triangles: tris}
	}

	box := triangleListBox(tris)

	if len(tris) <= maxLeafSize {
		return &triangleBVHNode{box: box, triangles: tris}
	}

	axis := box.LongestAxis()

	// Stable sort by centroid along the widest axis; ties keep their
	// original relative order (§4.3).
	sort.SliceStable(tris, func(i, j int) bool {
		ci := tris[i].BoundingBox().Center().Component(axis)
		cj := tris[j].BoundingBox().Center().Component(axis)
		return ci < cj
	})

	mid := len(tris) / 2
	left := buildTriangleBVH(tris[:mid], maxLeafSize)
	right := buildTriangleBVH(tris[mid:], maxLeafSize)

	return &triangleBVHNode{box: box, left: left, right: right}
}

// Hit implements core.Accelerator.
func (b *TriangleBVH) Hit(ray core.Ray, tMin, tMax float64) (core.HitResult, bool) {
	if b.root == nil {
		return core.HitResult{}, false
	}
	return hitTriangleNode(b.root, ray, tMin, tMax)
}

func hitTriangleNode(node *triangleBVHNode, ray core.Ray, tMin, tMax float64) (core.HitResult, bool) {
	if !node.box.Hit(ray, tMin, tMax) {
		return core.HitResult{}, false
	}

	if node.triangles != nil {
		return hitTriangleList(node.triangles, ray, tMin, tMax)
	}

	// Internal node: both children are always visited if the box passes —
	// there is no front/back ordering at this level (§4.3).
	closest := tMax
	var best core.HitResult
	found := false

	if node.left != nil {
		if hit, ok := hitTriangleNode(node.left, ray, tMin, closest); ok {
			closest = hit.T
			best = hit
			found = true
		}
	}
	if node.right != nil {
		if hit, ok := hitTriangleNode(node.right, ray, tMin, closest); ok {
			best = hit
			found = true
		}
	}

	return best, found
}

// hitTriangleList brute-forces a leaf's triangles, keeping the smallest t
// with tMin <= t <= tMax.
func hitTriangleList(triangles []*core.Triangle, ray core.Ray, tMin, tMax float64) (core.HitResult, bool) {
	closest := tMax
	var best core.HitResult
	found := false

	for _, tri := range triangles {
		t, point, ok := tri.Hit(ray)
		if !ok || t < tMin || t > closest {
			continue
		}
		closest = t
		best = core.HitResult{T: t, Point: point, Triangle: tri}
		found = true
	}

	return best, found
}
