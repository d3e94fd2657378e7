// Package loaders implements the external collaborators §6 assigns outside
// the tracer core: Wavefront OBJ/MTL mesh loading, the JSON scene lighting
// config, and (as a supplemental mesh format exercising the wider example
// pack's dependency surface) a glTF loader.
package loaders

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-accel-tracer/pkg/core"
)

// LoadOBJ parses a Wavefront OBJ file (and its referenced MTL library) into
// meshes of triangles with per-face materials, satisfying §6's loader
// contract. Vertex normals, if present, are parsed but unused — the core
// recomputes face normals (§6).
func LoadOBJ(path string) ([]*core.Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loaders: open obj %q: %w", path, err)
	}
	defer file.Close()

	var vertices []core.Vec3
	materials := map[string]*core.Material{}
	currentMaterial := defaultMaterial()

	type meshBuild struct {
		name  string
		faces []*core.Triangle
	}
	var meshes []*meshBuild
	current := &meshBuild{name: "default"}
	meshes = append(meshes, current)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "mtllib":
			if len(fields) < 2 {
				continue
			}
			mtlPath := filepath.Join(filepath.Dir(path), fields[1])
			loaded, err := loadMTL(mtlPath)
			if err != nil {
				return nil, fmt.Errorf("loaders: %q line %d: %w", path, lineNo, err)
			}
			for name, mat := range loaded {
				materials[name] = mat
			}

		case "usemtl":
			if len(fields) < 2 {
				continue
			}
			mat, ok := materials[fields[1]]
			if !ok {
				return nil, fmt.Errorf("loaders: %q line %d: unknown material %q", path, lineNo, fields[1])
			}
			currentMaterial = mat

		case "o", "g":
			if len(current.faces) > 0 || current.name != "default" {
				current = &meshBuild{name: nameOrDefault(fields)}
				meshes = append(meshes, current)
			} else {
				current.name = nameOrDefault(fields)
			}

		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("loaders: %q line %d: %w", path, lineNo, err)
			}
			vertices = append(vertices, v)

		case "vn":
			// Parsed and discarded: the core recomputes face normals (§6).

		case "f":
			idx, err := parseFaceIndices(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("loaders: %q line %d: %w", path, lineNo, err)
			}
			tris, err := triangulateFace(idx, vertices, currentMaterial)
			if err != nil {
				return nil, fmt.Errorf("loaders: %q line %d: %w", path, lineNo, err)
			}
			current.faces = append(current.faces, tris...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loaders: read obj %q: %w", path, err)
	}

	var result []*core.Mesh
	for _, m := range meshes {
		if len(m.faces) == 0 {
			continue
		}
		result = append(result, core.NewMesh(m.name, m.faces))
	}
	return result, nil
}

func nameOrDefault(fields []string) string {
	if len(fields) < 2 {
		return "default"
	}
	return fields[1]
}

func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.Vec3{X: x, Y: y, Z: z}, nil
}

// parseFaceIndices parses "v", "v/vt", "v/vt/vn", or "v//vn" vertex refs,
// returning the 1-based vertex indices only (texcoord/normal indices are
// discarded — unused by the core).
func parseFaceIndices(fields []string) ([]int, error) {
	indices := make([]int, 0, len(fields))
	for _, f := range fields {
		parts := strings.Split(f, "/")
		v, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("malformed face vertex ref %q: %w", f, err)
		}
		indices = append(indices, v)
	}
	return indices, nil
}

// triangulateFace fan-triangulates a (possibly non-triangular) face.
func triangulateFace(indices []int, vertices []core.Vec3, material *core.Material) ([]*core.Triangle, error) {
	if len(indices) < 3 {
		return nil, fmt.Errorf("face has fewer than 3 vertices")
	}
	resolve := func(i int) (core.Vec3, error) {
		idx := i
		if idx < 0 {
			idx = len(vertices) + idx + 1
		}
		if idx < 1 || idx > len(vertices) {
			return core.Vec3{}, fmt.Errorf("vertex index %d out of range", i)
		}
		return vertices[idx-1], nil
	}

	v0, err := resolve(indices[0])
	if err != nil {
		return nil, err
	}

	var tris []*core.Triangle
	for i := 1; i+1 < len(indices); i++ {
		v1, err := resolve(indices[i])
		if err != nil {
			return nil, err
		}
		v2, err := resolve(indices[i+1])
		if err != nil {
			return nil, err
		}
		tris = append(tris, core.NewTriangle(v0, v1, v2, material))
	}
	return tris, nil
}

func defaultMaterial() *core.Material {
	mat := core.NewDiffuseMaterial(
		core.Vec3{X: 0.1, Y: 0.1, Z: 0.1},
		core.Vec3{X: 0.8, Y: 0.8, Z: 0.8},
		core.Vec3{X: 0, Y: 0, Z: 0},
		1,
	)
	return &mat
}
