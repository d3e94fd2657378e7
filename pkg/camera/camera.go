// Package camera builds the ortho-normal viewing basis, generates jittered
// primary rays, and drives the per-pixel integration loop that fills the
// output pixel buffer.
package camera

import (
	"math"
	"math/rand"

	"github.com/df07/go-accel-tracer/pkg/core"
)

// TraceAlgorithm selects which integrator mode the render loop drives.
type TraceAlgorithm string

const (
	Raytracing  TraceAlgorithm = "raytracing"
	Pathtracing TraceAlgorithm = "pathtracing"
)

// DefaultMaxDepth returns the reference max_depth for a trace algorithm
// (§3: 5 for raytracing, 7 for pathtracing).
func DefaultMaxDepth(algo TraceAlgorithm) int {
	if algo == Pathtracing {
		return 7
	}
	return 5
}

// Integrator is the recursive shading kernel the camera drives per sample.
// pkg/integrator's RayTracer and PathTracer both satisfy this.
type Integrator interface {
	Color(ray core.Ray, depth int, rng *rand.Rand) core.Vec3
}

// Camera owns the ortho-normal basis and per-pixel jittered ray generation
// described in §4.8.
type Camera struct {
	ImgWidth, ImgHeight int
	Origin              core.Vec3

	pixel00      core.Vec3
	pixelDeltaU  core.Vec3
	pixelDeltaV  core.Vec3

	SamplesPerPixel int
	MaxDepth        int
	Algorithm       TraceAlgorithm
}

// New builds a Camera from origin/lookAt/up and a horizontal field of view
// in radians (it sets the viewport width; the height follows from the
// image aspect ratio), per §4.8's initialization.
func New(origin, lookAt, up core.Vec3, fovRadians float64, imgWidth, imgHeight, samplesPerPixel int, algo TraceAlgorithm) *Camera {
	w := origin.Subtract(lookAt).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	viewportWidth := 2 * math.Tan(fovRadians/2)
	viewportHeight := viewportWidth * float64(imgHeight) / float64(imgWidth)

	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Multiply(-viewportHeight) // negated: v screen axis runs top-to-bottom

	pixelDeltaU := viewportU.Multiply(1.0 / float64(imgWidth))
	pixelDeltaV := viewportV.Multiply(1.0 / float64(imgHeight))

	pixel00 := origin.
		Subtract(w).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5)).
		Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	maxDepth := DefaultMaxDepth(algo)

	return &Camera{
		ImgWidth:        imgWidth,
		ImgHeight:       imgHeight,
		Origin:          origin,
		pixel00:         pixel00,
		pixelDeltaU:     pixelDeltaU,
		pixelDeltaV:     pixelDeltaV,
		SamplesPerPixel: samplesPerPixel,
		MaxDepth:        maxDepth,
		Algorithm:       algo,
	}
}

// GetRay draws one jittered sample ray through pixel (i,j). Offsets are
// drawn in [0,1) and shifted to [-1,0), not the usual [-0.5,0.5) — this is
// the reference's jitter bias, preserved per §9 open question 2.
func (c *Camera) GetRay(i, j int, rng *rand.Rand) core.Ray {
	ox := rng.Float64() - 1
	oy := rng.Float64() - 1

	sample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + ox)).
		Add(c.pixelDeltaV.Multiply(float64(j) + oy))

	direction := sample.Subtract(c.Origin)
	return core.NewRay(c.Origin, direction)
}

// rowTask is one row's worth of rendering work, mirroring the teacher's
// tile-task worker-pool shape but partitioned by row instead of tile —
// rows are position-disjoint, so writes to the shared buffer need no
// further synchronization (§5).
type rowTask struct {
	row int
}

// Render fills an img_height x img_width x 3 byte buffer by driving
// Integrator.Color over SamplesPerPixel jittered samples per pixel,
// parallelized across numWorkers goroutines (a permitted implementation
// liberty; the reference is single-threaded — §1).
func (c *Camera) Render(integrator Integrator, seed int64, numWorkers int) []byte {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	buf := make([]byte, c.ImgHeight*c.ImgWidth*3)

	tasks := make(chan rowTask, c.ImgHeight)
	for j := 0; j < c.ImgHeight; j++ {
		tasks <- rowTask{row: j}
	}
	close(tasks)

	done := make(chan struct{})
	for w := 0; w < numWorkers; w++ {
		go func() {
			for task := range tasks {
				c.renderRow(task.row, integrator, seed, buf)
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < numWorkers; w++ {
		<-done
	}

	return buf
}

// renderRow accumulates SamplesPerPixel samples for every pixel in row j
// and writes the averaged, clamped byte result into buf.
func (c *Camera) renderRow(j int, integrator Integrator, seed int64, buf []byte) {
	for i := 0; i < c.ImgWidth; i++ {
		// Per-pixel sub-stream: deterministic given (seed, i, j), enabling
		// reproducible results under row-level parallelism (§5).
		rng := rand.New(rand.NewSource(seed ^ int64(j)<<32 ^ int64(i)))

		var accum core.Vec3
		for s := 0; s < c.SamplesPerPixel; s++ {
			ray := c.GetRay(i, j, rng)
			accum = accum.Add(integrator.Color(ray, 0, rng))
		}

		idx := (j*c.ImgWidth + i) * 3
		buf[idx+0] = toByte(accum.X, c.SamplesPerPixel)
		buf[idx+1] = toByte(accum.Y, c.SamplesPerPixel)
		buf[idx+2] = toByte(accum.Z, c.SamplesPerPixel)
	}
}

// toByte converts an accumulated linear channel value to a clamped byte,
// per §4.8's render-loop formula.
func toByte(accum float64, samples int) byte {
	v := accum * 255.0 / float64(samples)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return byte(v)
}
