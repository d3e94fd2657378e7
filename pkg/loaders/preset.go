package loaders

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ScenePreset is an optional human-authored sibling of a scene's JSON
// lighting config: render defaults (resolution, field of view, trace
// algorithm, acceleration structure) bundled with the scene so a launcher
// or CLI invocation doesn't have to repeat them on every run. It is purely
// additive — a scene with no preset file still renders from explicit
// flags and the mandatory JSON lighting config alone.
type ScenePreset struct {
	Width              int     `yaml:"width"`
	Height             int     `yaml:"height"`
	FOVDegrees         float64 `yaml:"fov_degrees"`
	TraceAlgorithm     string  `yaml:"trace_algorithm"`
	AccelerationStruct string  `yaml:"acceleration_structure"`
}

// LoadScenePreset decodes a YAML preset file. A missing file is not an
// error: callers should treat it as "no preset" and fall back to their own
// defaults or explicit flags.
func LoadScenePreset(path string) (*ScenePreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("loaders: read scene preset %q: %w", path, err)
	}

	var preset ScenePreset
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return nil, fmt.Errorf("loaders: parse scene preset %q: %w", path, err)
	}
	return &preset, nil
}

// PresetPathForConfig derives the conventional preset path from a scene
// config path by swapping its extension for ".yaml", mirroring the way
// §6's scene config sits alongside the OBJ it lights.
func PresetPathForConfig(configPath string) string {
	if idx := strings.LastIndex(configPath, "."); idx >= 0 {
		return configPath[:idx] + ".yaml"
	}
	return configPath + ".yaml"
}
