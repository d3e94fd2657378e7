package loaders

import (
	"path/filepath"
	"testing"
)

func TestLoadScenePresetParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "scene.yaml", `
width: 1024
height: 768
fov_degrees: 75
trace_algorithm: pathtracing
acceleration_structure: kd-tree
`)

	preset, err := LoadScenePreset(path)
	if err != nil {
		t.Fatalf("LoadScenePreset: %v", err)
	}
	if preset.Width != 1024 || preset.Height != 768 {
		t.Errorf("size = %dx%d, want 1024x768", preset.Width, preset.Height)
	}
	if preset.TraceAlgorithm != "pathtracing" {
		t.Errorf("TraceAlgorithm = %q, want pathtracing", preset.TraceAlgorithm)
	}
	if preset.AccelerationStruct != "kd-tree" {
		t.Errorf("AccelerationStruct = %q, want kd-tree", preset.AccelerationStruct)
	}
}

func TestLoadScenePresetMissingFileReturnsNilNotError(t *testing.T) {
	preset, err := LoadScenePreset(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("expected no error for a missing preset, got %v", err)
	}
	if preset != nil {
		t.Errorf("expected nil preset, got %+v", preset)
	}
}

func TestPresetPathForConfigSwapsExtension(t *testing.T) {
	got := PresetPathForConfig("scenes/living_room/scene_config.json")
	want := "scenes/living_room/scene_config.yaml"
	if got != want {
		t.Errorf("PresetPathForConfig = %q, want %q", got, want)
	}
}
