package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig() failed validation: %v", err)
	}
}

func TestValidate_RClose(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Clustering.RClose = cfg.Clustering.RCanopy
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when r_close <= r_canopy")
	}
}

func TestValidate_RMerge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Clustering.RMerge = cfg.Clustering.RCanopy + 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when r_merge > r_canopy")
	}
}

func TestValidate_RStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Clustering.RStep = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when r_step <= 0")
	}
}

func TestValidate_Workers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Clustering.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when workers <= 0")
	}
}

func TestValidate_OutputFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error on invalid output format")
	}
}

func TestSaveAndLoadConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "canopy.yaml")

	cfg := DefaultConfig()
	cfg.Clustering.Workers = 8
	cfg.Output.Format = "json"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if loaded.Clustering.Workers != 8 {
		t.Fatalf("Workers = %d, want 8", loaded.Clustering.Workers)
	}
	if loaded.Output.Format != "json" {
		t.Fatalf("Format = %q, want json", loaded.Output.Format)
	}
}

func TestLoadConfig_MissingPathReturnsDefault(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if cfg.Clustering.RCanopy != DefaultConfig().Clustering.RCanopy {
		t.Fatal("expected default config when no path is given")
	}
}

func TestSearchConfigInDirectory_FindsCandidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "canopy.yaml")
	if err := os.WriteFile(path, []byte("clustering:\n  r_canopy: 0.1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	found := searchConfigInDirectory(dir, []string{"canopy.yaml", "canopy.yml"})
	if found != path {
		t.Fatalf("searchConfigInDirectory() = %q, want %q", found, path)
	}
}
