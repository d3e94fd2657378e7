package accel

import (
	"math"
	"sort"

	"github.com/df07/go-accel-tracer/pkg/core"
)

// DefaultKDMaxDepth is the max depth from §4.5.
const DefaultKDMaxDepth = 16

// kdNode is a KD-tree node. Internal nodes carry a split axis/position;
// leaf nodes carry triangles (which may be duplicated across both children
// of an ancestor — this is the spatial, not strict-partition, variant).
type kdNode struct {
	bbox      core.AABB
	depth     int
	axis      int
	splitPos  float64
	left      *kdNode
	right     *kdNode
	triangles []*core.Triangle // non-nil only on leaves
}

// KDTree is a KD-tree over triangles with Ingo Wald ordered traversal.
type KDTree struct {
	root     *kdNode
	maxDepth int
}

// NewKDTree builds a KD-tree over the given triangles. maxDepth <= 0 uses
// DefaultKDMaxDepth.
func NewKDTree(triangles []*core.Triangle, maxDepth int) *KDTree {
	if maxDepth <= 0 {
		maxDepth = DefaultKDMaxDepth
	}
	tris := make([]*core.Triangle, len(triangles))
	copy(tris, triangles)

	var bbox core.AABB
	if len(tris) > 0 {
		bbox = triangleListBox(tris)
	}

	return &KDTree{root: buildKDNode(tris, bbox, 0, maxDepth), maxDepth: maxDepth}
}

func buildKDNode(triangles []*core.Triangle, bbox core.AABB, depth, maxDepth int) *kdNode {
	// Splittable iff more than one primitive remains and the depth budget
	// isn't exhausted (§4.5).
	if len(triangles) <= 1 || depth >= maxDepth {
		return &kdNode{bbox: bbox, depth: depth, triangles: triangles}
	}

	axis := bbox.LongestAxis()
	median := triangleVertexMedian(triangles, axis)

	leftBox := bbox
	leftBox.Max = leftBox.Max.WithComponent(axis, median)
	rightBox := bbox
	rightBox.Min = rightBox.Min.WithComponent(axis, median)

	var left, right []*core.Triangle
	for _, tri := range triangles {
		v0 := tri.V0.Component(axis)
		v1 := tri.V1.Component(axis)
		v2 := tri.V2.Component(axis)
		if v0 <= median || v1 <= median || v2 <= median {
			left = append(left, tri)
		}
		if v0 >= median || v1 >= median || v2 >= median {
			right = append(right, tri)
		}
	}

	// A degenerate split (every triangle landed in both children) can't
	// make progress; stop splitting rather than recurse forever.
	if len(left) == len(triangles) && len(right) == len(triangles) {
		return &kdNode{bbox: bbox, depth: depth, triangles: triangles}
	}

	return &kdNode{
		bbox:     bbox,
		depth:    depth,
		axis:     axis,
		splitPos: median,
		left:     buildKDNode(left, leftBox, depth+1, maxDepth),
		right:    buildKDNode(right, rightBox, depth+1, maxDepth),
	}
}

// triangleVertexMedian computes the statistical median of every vertex
// coordinate (three per triangle) along the given axis (§4.5).
func triangleVertexMedian(triangles []*core.Triangle, axis int) float64 {
	coords := make([]float64, 0, len(triangles)*3)
	for _, tri := range triangles {
		coords = append(coords, tri.V0.Component(axis), tri.V1.Component(axis), tri.V2.Component(axis))
	}
	sort.Float64s(coords)
	n := len(coords)
	if n%2 == 1 {
		return coords[n/2]
	}
	return (coords[n/2-1] + coords[n/2]) / 2.0
}

// Hit implements core.Accelerator.
func (k *KDTree) Hit(ray core.Ray, tMin, tMax float64) (core.HitResult, bool) {
	if k.root == nil {
		return core.HitResult{}, false
	}
	return hitKDNode(k.root, ray, tMin, tMax)
}

func hitKDNode(node *kdNode, ray core.Ray, tMin, tMax float64) (core.HitResult, bool) {
	if !node.bbox.Hit(ray, tMin, tMax) {
		return core.HitResult{}, false
	}

	if node.triangles != nil {
		return hitTriangleList(node.triangles, ray, tMin, tMax)
	}

	originAxis := ray.Origin.Component(node.axis)
	dirAxis := ray.Direction.Component(node.axis)
	invDir := core.ClampedInvDir(dirAxis)

	tEnter := (node.bbox.Min.Component(node.axis) - originAxis) * invDir
	tLeave := (node.bbox.Max.Component(node.axis) - originAxis) * invDir
	tSplit := (node.splitPos - originAxis) * invDir

	// Ingo Wald ordered traversal (§4.5): determine which child(ren) the
	// ray can actually reach from the unsigned relations between
	// tEnter, tLeave, and tSplit, and in what order.
	var only, first, second *kdNode

	if tEnter < tLeave {
		// Ray enters the min-side (left) first.
		switch {
		case tSplit <= tEnter:
			only = node.right
		case tSplit >= tLeave:
			only = node.left
		default:
			first, second = node.left, node.right
		}
	} else {
		// Ray enters the max-side (right) first.
		switch {
		case tSplit <= tLeave:
			only = node.left
		case tSplit >= tEnter:
			only = node.right
		default:
			first, second = node.right, node.left
		}
	}

	if only != nil {
		return hitKDNode(only, ray, tMin, tMax)
	}
	if first == nil {
		return core.HitResult{}, false
	}
	// The near child is searched only up to the split plane: a straddling
	// triangle hit beyond the plane is also listed in the far child, where
	// it competes with the far child's closer hits.
	if hit, ok := hitKDNode(first, ray, tMin, math.Min(tMax, tSplit)); ok {
		return hit, true
	}
	if second == nil {
		return core.HitResult{}, false
	}
	return hitKDNode(second, ray, tMin, tMax)
}
