package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitCommand_BasicConfigCreation(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "canopy-init-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "canopy.yaml")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	contentStr := string(content)
	expectedSections := []string{
		"clustering",
		"filters",
		"output",
		"check",
		"r_canopy",
		"r_close",
		"workers",
	}

	for _, section := range expectedSections {
		if !strings.Contains(contentStr, section) {
			t.Errorf("Config file missing expected section: %s", section)
		}
	}
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "canopy-init-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "canopy.yaml")

	if err := os.WriteFile(configPath, []byte("existing: true\n"), 0644); err != nil {
		t.Fatalf("Failed to create existing file: %v", err)
	}

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err == nil {
		t.Fatal("Expected error when config file already exists without --force")
	}

	cmd = initCmd()
	cmd.SetArgs([]string{"--config", configPath, "--force"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	if strings.Contains(string(content), "existing: true") {
		t.Fatal("Force overwrite did not replace existing content")
	}
}

func TestInitCommand_MinimalConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "canopy-init-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "canopy.yaml")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath, "--minimal"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init --minimal failed: %v", err)
	}

	fullCmd := initCmd()
	fullConfigPath := filepath.Join(tmpDir, "canopy-full.yaml")
	fullCmd.SetArgs([]string{"--config", fullConfigPath})
	if err := fullCmd.Execute(); err != nil {
		t.Fatalf("init full failed: %v", err)
	}

	minimal, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read minimal config: %v", err)
	}
	full, err := os.ReadFile(fullConfigPath)
	if err != nil {
		t.Fatalf("Failed to read full config: %v", err)
	}

	if len(minimal) >= len(full) {
		t.Errorf("Expected minimal config (%d bytes) to be smaller than full config (%d bytes)", len(minimal), len(full))
	}
}

func TestInitCommand_MissingDirectoryError(t *testing.T) {
	cmd := initCmd()
	cmd.SetArgs([]string{"--config", filepath.Join("does", "not", "exist", "canopy.yaml")})
	if err := cmd.Execute(); err == nil {
		t.Fatal("Expected error when target directory does not exist")
	}
}
