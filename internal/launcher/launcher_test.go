package launcher

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultsToRaytracingAndBVH(t *testing.T) {
	s := New("raytracer")
	if !s.algoButtons[0].selected {
		t.Error("expected Raytracing selected by default")
	}
	if s.selectedAccel() != "BVH" {
		t.Errorf("selectedAccel = %q, want BVH", s.selectedAccel())
	}
}

func TestHandleClickTogglesExclusiveGroup(t *testing.T) {
	s := New("raytracer")
	kd := s.accelButtons[1] // "KD-Tree"

	mid := kd.rect.Min.Add(kd.rect.Max).Div(2)
	s.HandleClick(mid.X, mid.Y)

	if !kd.selected {
		t.Fatal("expected KD-Tree to become selected after a click inside its rect")
	}
	if s.accelButtons[0].selected {
		t.Error("expected BVH to be deselected once KD-Tree was chosen")
	}
	if s.selectedAccel() != "KD-Tree" {
		t.Errorf("selectedAccel = %q, want KD-Tree", s.selectedAccel())
	}
}

func TestHandleClickFocusesField(t *testing.T) {
	s := New("raytracer")
	field := s.fields[0]
	mid := field.rect.Min.Add(field.rect.Max).Div(2)

	s.HandleClick(mid.X, mid.Y)
	if s.focused != field {
		t.Fatal("expected clicking inside a field's rect to focus it")
	}

	s.TypeRune('a')
	s.TypeRune('.')
	s.TypeRune('o')
	s.TypeRune('b')
	s.TypeRune('j')
	if field.value != "a.obj" {
		t.Errorf("field value = %q, want %q", field.value, "a.obj")
	}

	s.Backspace()
	if field.value != "a.ob" {
		t.Errorf("field value after backspace = %q, want %q", field.value, "a.ob")
	}
}

func TestLaunchRequiresSceneAndConfig(t *testing.T) {
	s := New("raytracer")
	if err := s.Launch(); err == nil {
		t.Fatal("expected an error when scene/scene-config fields are empty")
	}
}

func TestAccelFlagValueMapping(t *testing.T) {
	cases := map[string]string{
		"BVH":          "bvh",
		"KD-Tree":      "kd-tree",
		"Uniform Grid": "grid",
		"Mesh-BVH":     "mesh_bvh",
		"No-Structure": "no-structure",
	}
	for label, want := range cases {
		if got := accelFlagValue(label); got != want {
			t.Errorf("accelFlagValue(%q) = %q, want %q", label, got, want)
		}
	}
}

func TestResultFilesAndDeleteResults(t *testing.T) {
	dir := t.TempDir()
	resultsDir := filepath.Join(dir, "Efficiency_results")
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"raytracing_bvh_efficiency.txt", "pathtracing_grid_efficiency.txt", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(resultsDir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	names, err := ResultFiles(resultsDir)
	if err != nil {
		t.Fatalf("ResultFiles: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("len(names) = %d, want 2 (non-efficiency files excluded)", len(names))
	}

	if err := DeleteResults(resultsDir); err != nil {
		t.Fatalf("DeleteResults: %v", err)
	}
	remaining, err := ResultFiles(resultsDir)
	if err != nil {
		t.Fatalf("ResultFiles after delete: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("len(remaining) = %d, want 0", len(remaining))
	}
}

func TestResultFilesMissingDirectoryIsNotAnError(t *testing.T) {
	names, err := ResultFiles(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("expected no error for a missing directory, got %v", err)
	}
	if names != nil {
		t.Errorf("names = %v, want nil", names)
	}
}

func TestRenderProducesFullSizedRGBBuffer(t *testing.T) {
	s := New("raytracer")
	buf := s.Render()
	if len(buf) != screenWidth*screenHeight*3 {
		t.Errorf("len(buf) = %d, want %d", len(buf), screenWidth*screenHeight*3)
	}
}
