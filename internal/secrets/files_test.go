package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/envault/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestScanFolder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "prod.yml"), "")
	writeFile(t, filepath.Join(dir, "DEV.YML"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	writeFile(t, filepath.Join(dir, "other.yaml"), "")
	if err := os.MkdirAll(filepath.Join(dir, "nested.yml"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	files, err := ScanFolder(dir)
	if err != nil {
		t.Fatalf("ScanFolder failed: %v", err)
	}

	want := []string{filepath.Join(dir, "DEV.YML"), filepath.Join(dir, "prod.yml")}
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Errorf("ScanFolder = %v, want %v", files, want)
	}
}

func TestScanWorkspace(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	third := t.TempDir()

	writeFile(t, filepath.Join(first, ConfigFolder, "dev.yml"), "")
	writeFile(t, filepath.Join(second, ConfigFolder, "ci.yml"), "")
	// A plain file called envault is not a config folder.
	writeFile(t, filepath.Join(third, ConfigFolder), "")

	files, err := ScanWorkspace([]string{first, second, third})
	if err != nil {
		t.Fatalf("ScanWorkspace failed: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("Expected 2 configs, got %v", files)
	}
	if files[0] != filepath.Join(first, ConfigFolder, "dev.yml") {
		t.Errorf("Unexpected first config %q", files[0])
	}
	if files[1] != filepath.Join(second, ConfigFolder, "ci.yml") {
		t.Errorf("Unexpected second config %q", files[1])
	}
}

func TestValidConfigName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"dev", true},
		{"dev.yml", true},
		{"my config", true},
		{"", false},
		{"   ", false},
		{"a/b", false},
		{`a\b`, false},
		{"what?", false},
		{"star*", false},
		{"pipe|", false},
		{"c:", false},
		{`"quoted"`, false},
		{"<x>", false},
	}
	for _, tc := range tests {
		if got := ValidConfigName(tc.name); got != tc.valid {
			t.Errorf("ValidConfigName(%q) = %t, want %t", tc.name, got, tc.valid)
		}
	}
}

func TestConfigPath(t *testing.T) {
	folder := filepath.Join(string(filepath.Separator), "work")
	tests := []struct {
		name string
		want string
	}{
		{"dev", filepath.Join(folder, "envault", "dev.yml")},
		{"dev.yml", filepath.Join(folder, "envault", "dev.yml")},
		{"dev.yaml", filepath.Join(folder, "envault", "dev.yml")},
		{" staging ", filepath.Join(folder, "envault", "staging.yml")},
	}
	for _, tc := range tests {
		if got := ConfigPath(folder, tc.name); got != tc.want {
			t.Errorf("ConfigPath(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCreateConfig(t *testing.T) {
	dir := t.TempDir()
	path := ConfigPath(dir, "dev")

	if err := CreateConfig(path, "MY_KEY", "http://localhost:8787/", false); err != nil {
		t.Fatalf("CreateConfig failed: %v", err)
	}

	cfg, err := LoadIfExists(path)
	if err != nil {
		t.Fatalf("Created config does not load: %v", err)
	}
	if cfg.APIKeyName != "MY_KEY" || cfg.URL != "http://localhost:8787/" || len(cfg.Vars) != 0 {
		t.Errorf("Unexpected config %+v", cfg)
	}

	err = CreateConfig(path, "OTHER", "http://other/", false)
	if !errors.Is(err, kerrors.ErrConfigExists) {
		t.Errorf("Expected ErrConfigExists, got %v", err)
	}

	if err := CreateConfig(path, "OTHER", "http://other/", true); err != nil {
		t.Fatalf("CreateConfig with force failed: %v", err)
	}
	cfg, err = LoadIfExists(path)
	if err != nil {
		t.Fatalf("Overwritten config does not load: %v", err)
	}
	if cfg.APIKeyName != "OTHER" {
		t.Errorf("Expected overwritten apiKeyName, got %q", cfg.APIKeyName)
	}
}
