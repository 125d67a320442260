package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "viewport:\n  limit: 10\nrender:\n  epoch_cap: 50\ndata:\n  manifest: eeg.yaml\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected config to load, got %v", err)
	}
	if cfg.Viewport.Limit != 10 || cfg.Render.EpochCap != 50 || cfg.Data.Manifest != "eeg.yaml" {
		t.Errorf("expected overrides, got %+v", cfg)
	}
	if cfg.Viewport.InitialFraction != [2]float64{0.25, 0.75} || cfg.Render.XTicks != 10 {
		t.Errorf("expected untouched fields to keep defaults, got %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	for _, doc := range []string{
		"viewport:\n  limit: 0\n",
		"viewport:\n  initial_fraction: [0.8, 0.2]\n",
		"viewport:\n  zoom_step: 0.5\n",
		"render:\n  epoch_opacity: 2\n",
	} {
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); !errors.Is(err, ErrInvalid) {
			t.Errorf("%q: expected ErrInvalid, got %v", doc, err)
		}
	}
	if err := os.WriteFile(path, []byte("viewport: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("expected malformed YAML to fail")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil || cfg.Viewport.Limit != 6 {
		t.Errorf("expected defaults for a missing file, got %+v %v", cfg, err)
	}
	cfg, err = LoadOrDefault("")
	if err != nil || cfg == nil {
		t.Errorf("expected defaults for no path, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Cache.Capacity = 17
	if err := cfg.Save(path); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("expected saved config to load, got %v", err)
	}
	if loaded.Cache.Capacity != 17 {
		t.Errorf("expected capacity 17, got %d", loaded.Cache.Capacity)
	}
}
