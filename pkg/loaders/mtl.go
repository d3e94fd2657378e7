package loaders

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-accel-tracer/pkg/core"
)

// loadMTL parses a Wavefront MTL library into named materials, populating
// the fields §3 names: ambient (Ka), diffuse (Kd), specular (Ks), emissive
// (Ke), shininess (Ns), optical density (Ni), transparency (d), and the
// raw illumination model (illum).
func loadMTL(path string) (map[string]*core.Material, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mtl %q: %w", path, err)
	}
	defer file.Close()

	materials := map[string]*core.Material{}
	var name string
	var mat core.Material

	flush := func() {
		if name != "" {
			m := mat
			materials[name] = &m
		}
	}

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
		case "newmtl":
			flush()
			name = nameOrDefault(fields)
			mat = core.Material{Transparency: 1.0}

		case "Ka":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("mtl %q line %d: %w", path, lineNo, err)
			}
			mat.Ambient = v

		case "Kd":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("mtl %q line %d: %w", path, lineNo, err)
			}
			mat.Diffuse = v

		case "Ks":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("mtl %q line %d: %w", path, lineNo, err)
			}
			mat.Specular = v

		case "Ke":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("mtl %q line %d: %w", path, lineNo, err)
			}
			mat.Emissive = v

		case "Ns":
			v, err := parseScalar(fields)
			if err != nil {
				return nil, fmt.Errorf("mtl %q line %d: %w", path, lineNo, err)
			}
			mat.Shininess = v

		case "Ni":
			v, err := parseScalar(fields)
			if err != nil {
				return nil, fmt.Errorf("mtl %q line %d: %w", path, lineNo, err)
			}
			mat.OpticalDensity = v

		case "d":
			v, err := parseScalar(fields)
			if err != nil {
				return nil, fmt.Errorf("mtl %q line %d: %w", path, lineNo, err)
			}
			mat.Transparency = v

		case "illum":
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("mtl %q line %d: %w", path, lineNo, err)
			}
			mat.IlluminationModel = v
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read mtl %q: %w", path, err)
	}
	return materials, nil
}

func parseScalar(fields []string) (float64, error) {
	if len(fields) < 2 {
		return 0, fmt.Errorf("expected a scalar value")
	}
	return strconv.ParseFloat(fields[1], 64)
}
