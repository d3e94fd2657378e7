// Command raytracer renders a scene with the selected acceleration
// structure and trace algorithm, appending a benchmark results file under
// Efficiency_results/ (§6) and, with --show, presenting the output on a
// pixel surface.
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/df07/go-accel-tracer/pkg/bench"
	"github.com/df07/go-accel-tracer/pkg/camera"
	"github.com/df07/go-accel-tracer/pkg/core"
	"github.com/df07/go-accel-tracer/pkg/integrator"
	"github.com/df07/go-accel-tracer/pkg/loaders"
	"github.com/df07/go-accel-tracer/pkg/scene"

	"github.com/df07/go-accel-tracer/internal/display"
)

func init() {
	// glfw/gl require their calls to stay on the thread that created the
	// window (§6's display collaborator).
	runtime.LockOSThread()
}

type cliOptions struct {
	accelStructure string
	scenePath      string
	sceneConfig    string
	width          int
	height         int
	fov            float64
	traceAlgorithm string
	show           bool
}

func main() {
	opts := &cliOptions{}
	logger := bench.NewDefaultLogger()

	root := &cobra.Command{
		Use:   "raytracer",
		Short: "Render a scene with a selected acceleration structure",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, logger)
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.accelStructure, "acceleration-structure", "bvh", "bvh|grid|kd-tree|mesh_bvh|no-structure")
	flags.StringVar(&opts.scenePath, "scene", "", "path to the scene file (.obj, or .gltf/.glb)")
	flags.StringVar(&opts.sceneConfig, "scene-config", "", "path to the JSON lighting config")
	flags.IntVar(&opts.width, "width", 800, "image width in pixels")
	flags.IntVar(&opts.height, "height", 600, "image height in pixels")
	flags.Float64Var(&opts.fov, "fov", 60, "horizontal field of view in degrees")
	flags.StringVar(&opts.traceAlgorithm, "trace-algorithm", "raytracing", "raytracing|pathtracing")
	flags.BoolVar(&opts.show, "show", false, "present the rendered image in a window")

	if err := root.Execute(); err != nil {
		logger.Printf("fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts *cliOptions, logger core.Logger) error {
	if opts.scenePath == "" || opts.sceneConfig == "" {
		return fmt.Errorf("--scene and --scene-config are required")
	}

	logger.Printf("loading scene %q\n", opts.scenePath)
	meshes, err := loadScene(opts.scenePath)
	if err != nil {
		return err
	}

	cfg, err := loaders.LoadSceneConfig(opts.sceneConfig)
	if err != nil {
		return err
	}

	preset, err := loaders.LoadScenePreset(loaders.PresetPathForConfig(opts.sceneConfig))
	if err != nil {
		return err
	}
	applyPreset(cmd, opts, preset, logger)

	accelKind, err := parseAccelKind(opts.accelStructure)
	if err != nil {
		return err
	}

	builtScene, err := scene.Build(meshes, cfg.Lights, cfg.AmbientLight, accelKind)
	if err != nil {
		return err
	}

	algo := camera.Raytracing
	if opts.traceAlgorithm == string(camera.Pathtracing) {
		algo = camera.Pathtracing
	}

	origin := core.Vec3{X: 0, Y: 0, Z: 0}
	lookAt := core.Vec3{X: 0, Y: 0, Z: -1}
	up := core.Vec3{X: 0, Y: 1, Z: 0}
	fovRadians := opts.fov * math.Pi / 180

	cam := camera.New(origin, lookAt, up, fovRadians, opts.width, opts.height, 5, algo)

	var engine camera.Integrator
	if algo == camera.Pathtracing {
		engine = integrator.NewPathTracer(builtScene, cam.MaxDepth)
	} else {
		engine = integrator.NewRayTracer(builtScene, cam.MaxDepth)
	}

	logger.Printf("rendering %dx%d with %s/%s\n", opts.width, opts.height, accelKind, algo)
	timer := bench.StartTimer()
	pixels := cam.Render(engine, 1, 0)
	stats := timer.Stop(opts.width * opts.height)

	if err := bench.WriteResults("Efficiency_results", opts.traceAlgorithm, string(accelKind), stats); err != nil {
		return err
	}

	logger.Printf("done: %s\n", filepath.Join("Efficiency_results", fmt.Sprintf("%s_%s_efficiency.txt", opts.traceAlgorithm, accelKind)))

	if opts.show {
		return presentPixels(pixels, opts.width, opts.height)
	}
	return nil
}

// presentPixels opens a window and blocks until the user closes it,
// continuously redrawing the finished frame (§6's display collaborator).
func presentPixels(pixels []byte, width, height int) error {
	surface, err := display.Open(width, height, "raytracer")
	if err != nil {
		return err
	}
	defer surface.Close()

	for !surface.ShouldClose() {
		surface.Present(pixels, width, height)
	}
	return nil
}

// applyPreset fills in any flag the caller left at its default from a
// scene's optional YAML preset (SUPPLEMENTED FEATURES: console.py's saved
// per-scene defaults). Explicit flags always win over the preset.
func applyPreset(cmd *cobra.Command, opts *cliOptions, preset *loaders.ScenePreset, logger core.Logger) {
	if preset == nil {
		return
	}
	logger.Printf("applying scene preset %s\n", loaders.PresetPathForConfig(opts.sceneConfig))

	flags := cmd.Flags()
	if preset.Width > 0 && !flags.Changed("width") {
		opts.width = preset.Width
	}
	if preset.Height > 0 && !flags.Changed("height") {
		opts.height = preset.Height
	}
	if preset.FOVDegrees > 0 && !flags.Changed("fov") {
		opts.fov = preset.FOVDegrees
	}
	if preset.TraceAlgorithm != "" && !flags.Changed("trace-algorithm") {
		opts.traceAlgorithm = preset.TraceAlgorithm
	}
	if preset.AccelerationStruct != "" && !flags.Changed("acceleration-structure") {
		opts.accelStructure = preset.AccelerationStruct
	}
}

// loadScene dispatches on the scene file's extension: ".gltf"/".glb" go
// through the glTF decoder, everything else is read as OBJ+MTL.
func loadScene(path string) ([]*core.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return loaders.LoadGLTF(path)
	default:
		return loaders.LoadOBJ(path)
	}
}

func parseAccelKind(flag string) (scene.AccelKind, error) {
	switch strings.ToLower(flag) {
	case "bvh":
		return scene.AccelBVH, nil
	case "mesh_bvh":
		return scene.AccelMeshBVH, nil
	case "kd-tree":
		return scene.AccelKDTree, nil
	case "grid":
		return scene.AccelGrid, nil
	case "no-structure":
		return scene.AccelNone, nil
	default:
		return "", fmt.Errorf("unrecognized --acceleration-structure %q", flag)
	}
}
