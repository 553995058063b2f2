package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.FrameRate != Default().FrameRate {
		t.Errorf("got frame rate %d, want default %d", cfg.FrameRate, Default().FrameRate)
	}
}

func TestLoadFile_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
frame_rate = 60

[sim]
max_steps = 120
repel_strength = 2000.0

[export]
width = 800
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FrameRate != 60 {
		t.Errorf("frame_rate = %d, want 60", cfg.FrameRate)
	}
	if cfg.Sim.MaxSteps != 120 || cfg.Sim.RepelStrength != 2000 {
		t.Errorf("sim overrides not applied: %+v", cfg.Sim)
	}
	if cfg.Export.Width != 800 {
		t.Errorf("export width = %d, want 800", cfg.Export.Width)
	}
	// Unset export height falls back to the default.
	if cfg.Export.Height != Default().Export.Height {
		t.Errorf("export height = %d, want default", cfg.Export.Height)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("frame_rate = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}
