package accel

import (
	"math"

	"github.com/df07/go-accel-tracer/pkg/core"
	"github.com/df07/go-accel-tracer/pkg/vecmath"
)

// DefaultGridResolution is the desired resolution R from §4.6: the axis
// with the largest extent gets this many cells; the others scale down
// proportionally.
const DefaultGridResolution = 20

// gridCellKey indexes the sparse cell map.
type gridCellKey struct{ ix, iy, iz int }

// UniformGrid is a uniform spatial grid over triangles, traversed with the
// Amanatides-Woo 3-D DDA.
type UniformGrid struct {
	bboxMin, bboxMax core.Vec3
	nx, ny, nz       int
	cellSize         core.Vec3
	cells            map[gridCellKey][]*core.Triangle
}

// NewUniformGrid builds a uniform grid over the given triangles. An empty
// triangle list yields a grid with no cells, which always misses
// (§7, taxonomy 2). resolution <= 0 uses DefaultGridResolution.
func NewUniformGrid(triangles []*core.Triangle, resolution int) *UniformGrid {
	if resolution <= 0 {
		resolution = DefaultGridResolution
	}
	if len(triangles) == 0 {
		return &UniformGrid{nx: 1, ny: 1, nz: 1, cells: map[gridCellKey][]*core.Triangle{}}
	}

	box := triangleListBox(triangles).Expand(1e-3)
	size := box.Size()

	nx, ny, nz := gridResolution(size, resolution)
	cellSize := vecmath.NewVec3(size.X/float64(nx), size.Y/float64(ny), size.Z/float64(nz))

	g := &UniformGrid{
		bboxMin:  box.Min,
		bboxMax:  box.Max,
		nx:       nx,
		ny:       ny,
		nz:       nz,
		cellSize: cellSize,
		cells:    make(map[gridCellKey][]*core.Triangle),
	}

	for _, tri := range triangles {
		triBox := tri.BoundingBox()
		minIx, minIy, minIz := g.indexOf(triBox.Min)
		maxIx, maxIy, maxIz := g.indexOf(triBox.Max)
		for ix := minIx; ix <= maxIx; ix++ {
			for iy := minIy; iy <= maxIy; iy++ {
				for iz := minIz; iz <= maxIz; iz++ {
					key := gridCellKey{ix, iy, iz}
					g.cells[key] = append(g.cells[key], tri)
				}
			}
		}
	}

	return g
}

// gridResolution implements §4.6's adaptive resolution: the axis of
// max_dim gets R cells, the others scale proportionally (floored, minimum
// 1).
func gridResolution(size core.Vec3, desired int) (nx, ny, nz int) {
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim <= 0 {
		return 1, 1, 1
	}
	scale := func(extent float64) int {
		n := int(math.Floor(float64(desired) * extent / maxDim))
		if n < 1 {
			n = 1
		}
		return n
	}
	return scale(size.X), scale(size.Y), scale(size.Z)
}

// indexOf maps a world point to clamped integer cell coordinates.
func (g *UniformGrid) indexOf(p core.Vec3) (ix, iy, iz int) {
	clampIndex := func(v float64, n int) int {
		i := int(math.Floor(v))
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}
	ix = clampIndex((p.X-g.bboxMin.X)/g.cellSize.X, g.nx)
	iy = clampIndex((p.Y-g.bboxMin.Y)/g.cellSize.Y, g.ny)
	iz = clampIndex((p.Z-g.bboxMin.Z)/g.cellSize.Z, g.nz)
	return ix, iy, iz
}

// boundingBox returns the grid's overall AABB.
func (g *UniformGrid) boundingBox() core.AABB {
	return core.NewAABB(g.bboxMin, g.bboxMax)
}

// Hit implements core.Accelerator using Amanatides-Woo 3-D DDA traversal.
func (g *UniformGrid) Hit(ray core.Ray, tMin, tMax float64) (core.HitResult, bool) {
	gridBox := g.boundingBox()
	ok, tEnter, tExit := gridBox.HitInterval(ray, tMin, tMax)
	if !ok {
		return core.HitResult{}, false
	}

	entryPoint := ray.At(tEnter)
	ix, iy, iz := g.indexOf(entryPoint)

	stepX, tNextX, dtX := ddaAxis(ray.Direction.X, ray.Origin.X, g.bboxMin.X, g.cellSize.X, ix)
	stepY, tNextY, dtY := ddaAxis(ray.Direction.Y, ray.Origin.Y, g.bboxMin.Y, g.cellSize.Y, iy)
	stepZ, tNextZ, dtZ := ddaAxis(ray.Direction.Z, ray.Origin.Z, g.bboxMin.Z, g.cellSize.Z, iz)

	// Warm-up: advance each axis's next-boundary time forward until it is
	// at least tEnter, accommodating rays whose first boundary on some
	// axis lies behind the grid-entry point (§4.6).
	for tNextX < tEnter {
		tNextX += dtX
	}
	for tNextY < tEnter {
		tNextY += dtY
	}
	for tNextZ < tEnter {
		tNextZ += dtZ
	}

	closest := tMax
	var best core.HitResult
	found := false

	for {
		if ix < 0 || ix >= g.nx || iy < 0 || iy >= g.ny || iz < 0 || iz >= g.nz {
			break
		}

		currentT := math.Min(tNextX, math.Min(tNextY, tNextZ))

		if cell, okCell := g.cells[gridCellKey{ix, iy, iz}]; okCell {
			if hit, hitOK := hitTriangleList(cell, ray, tMin, closest); hitOK {
				closest = hit.T
				best = hit
				found = true
			}
		}

		if currentT > tExit {
			break
		}
		if found && currentT > closest {
			break
		}

		switch {
		case tNextX <= tNextY && tNextX <= tNextZ:
			ix += stepX
			tNextX += dtX
		case tNextY <= tNextZ:
			iy += stepY
			tNextY += dtY
		default:
			iz += stepZ
			tNextZ += dtZ
		}
	}

	return best, found
}

// ddaAxis computes the per-axis step direction, the parametric distance to
// the next grid line, and the per-cell parametric increment, per §4.6.
func ddaAxis(dir, origin, boxMin, cellSize float64, cellIndex int) (step int, tNext, dt float64) {
	if math.Abs(dir) < 1e-9 {
		return 0, math.Inf(1), math.Inf(1)
	}
	if dir > 0 {
		step = 1
		nextBoundary := boxMin + float64(cellIndex+1)*cellSize
		tNext = (nextBoundary - origin) / dir
	} else {
		step = -1
		boundary := boxMin + float64(cellIndex)*cellSize
		tNext = (boundary - origin) / dir
	}
	dt = cellSize / math.Abs(dir)
	return step, tNext, dt
}
