package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Particles.Count != 16000 {
		t.Errorf("particles.count = %d, want 16000", cfg.Particles.Count)
	}
	if len(cfg.Particles.Palette) == 0 {
		t.Error("default palette is empty")
	}
	if cfg.Wind.Gain != 15 || cfg.Wind.Smoothing != 0.05 {
		t.Errorf("wind = %+v, want gain 15 smoothing 0.05", cfg.Wind)
	}
	if cfg.Interaction.BaseRadius != 4 || cfg.Interaction.RadiusPerSpeed != 10 {
		t.Errorf("interaction = %+v", cfg.Interaction)
	}
	if !cfg.Derived.Sequential {
		t.Error("default accumulation should be sequential")
	}
	if cfg.Derived.StatsWindowFrm != 600 {
		t.Errorf("stats window frames = %d, want 600", cfg.Derived.StatsWindowFrm)
	}
}

func TestLoadOverridesOnlyPresentKeys(t *testing.T) {
	path := writeConfig(t, "particles:\n  count: 3\nwind:\n  gain: 7\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Particles.Count != 3 {
		t.Errorf("count = %d, want 3", cfg.Particles.Count)
	}
	if cfg.Wind.Gain != 7 {
		t.Errorf("gain = %v, want 7", cfg.Wind.Gain)
	}
	// Untouched keys keep their defaults
	if cfg.Wind.Smoothing != 0.05 {
		t.Errorf("smoothing = %v, want default 0.05", cfg.Wind.Smoothing)
	}
	if cfg.Particles.MaxRadius != 22 {
		t.Errorf("max_radius = %v, want default 22", cfg.Particles.MaxRadius)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero count", "particles:\n  count: 0\n", "count"},
		{"empty palette", "particles:\n  palette: []\n", "palette"},
		{"inverted radius", "particles:\n  min_radius: 5\n  max_radius: 1\n", "radius"},
		{"inverted size", "particles:\n  size_range: [3, 1]\n", "size_range"},
		{"unknown accumulate", "interaction:\n  accumulate: sideways\n", "accumulate"},
		{"unknown gesture", "gesture:\n  source: webcam\n", "gesture"},
		{"smoothing above one", "wind:\n  smoothing: 1.5\n", "smoothing"},
		{"zero falloff", "wind:\n  falloff: 0\n", "falloff"},
		{"negative falloff", "wind:\n  falloff: -20\n", "falloff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSimultaneousDerived(t *testing.T) {
	cfg, err := Load(writeConfig(t, "interaction:\n  accumulate: simultaneous\nmotion:\n  workers: 0\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Derived.Sequential {
		t.Error("expected simultaneous accumulation")
	}
	if cfg.Motion.Workers != 1 {
		t.Errorf("workers = %d, want clamp to 1", cfg.Motion.Workers)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Particles.Count = 42

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if back.Particles.Count != 42 {
		t.Errorf("count after reload = %d, want 42", back.Particles.Count)
	}
	if len(back.Particles.Palette) != len(cfg.Particles.Palette) {
		t.Errorf("palette length %d, want %d", len(back.Particles.Palette), len(cfg.Particles.Palette))
	}
}
