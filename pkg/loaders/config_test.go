package loaders

import "testing"

func TestLoadSceneConfigParsesLights(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "scene_config.json", `{
		"ambient_light": 0.2,
		"lights": {
			"key": { "type": "point", "position": [0, 5, 0], "intensity": 1.5 },
			"fill": { "type": "point", "position": [-3, 2, 1], "intensity": 0.5, "color": [0.8, 0.8, 1.0] }
		}
	}`)

	cfg, err := LoadSceneConfig(path)
	if err != nil {
		t.Fatalf("LoadSceneConfig: %v", err)
	}
	if cfg.AmbientLight != 0.2 {
		t.Errorf("AmbientLight = %v, want 0.2", cfg.AmbientLight)
	}
	if len(cfg.Lights) != 2 {
		t.Fatalf("len(Lights) = %d, want 2", len(cfg.Lights))
	}
	// "fill" sorts before "key"; intensity is the easiest field to tell them
	// apart by.
	if cfg.Lights[0].Intensity != 0.5 || cfg.Lights[1].Intensity != 1.5 {
		t.Errorf("lights = %v, want fill (0.5) before key (1.5)", cfg.Lights)
	}
}

func TestLoadSceneConfigOrderIsDeterministicAcrossLoads(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "scene_config.json", `{
		"ambient_light": 0.2,
		"lights": {
			"zeta": { "type": "point", "position": [0, 0, 0], "intensity": 1 },
			"alpha": { "type": "point", "position": [1, 1, 1], "intensity": 2 },
			"mu": { "type": "point", "position": [2, 2, 2], "intensity": 3 }
		}
	}`)

	first, err := LoadSceneConfig(path)
	if err != nil {
		t.Fatalf("LoadSceneConfig: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := LoadSceneConfig(path)
		if err != nil {
			t.Fatalf("LoadSceneConfig: %v", err)
		}
		for j := range first.Lights {
			if first.Lights[j].Intensity != again.Lights[j].Intensity {
				t.Fatalf("light order changed across reloads: %v vs %v", first.Lights, again.Lights)
			}
		}
	}
}

func TestLoadSceneConfigUnrecognizedTypeErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "bad_config.json", `{
		"ambient_light": 0.1,
		"lights": {
			"spot1": { "type": "spot", "position": [0, 0, 0], "intensity": 1 }
		}
	}`)

	if _, err := LoadSceneConfig(path); err == nil {
		t.Fatal("expected an error for an unrecognized light type")
	}
}

func TestLoadSceneConfigDefaultsColorToWhite(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "config.json", `{
		"ambient_light": 0.0,
		"lights": {
			"key": { "type": "point", "position": [1, 2, 3], "intensity": 1 }
		}
	}`)

	cfg, err := LoadSceneConfig(path)
	if err != nil {
		t.Fatalf("LoadSceneConfig: %v", err)
	}
	light := cfg.Lights[0]
	if light.Color.X != 1 || light.Color.Y != 1 || light.Color.Z != 1 {
		t.Errorf("default light color = %v, want white", light.Color)
	}
}
