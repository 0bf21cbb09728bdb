package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/envault/internal/errors"
)

func TestParseConfigValid(t *testing.T) {
	data := []byte(`
apiKeyName: ENVAULT_KEY
url: https://vault.example.com/
extra: ignored
vars:
  - app/dev
  - shared
`)

	cfg, err := ParseConfig("dev.yml", data)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if cfg.APIKeyName != "ENVAULT_KEY" {
		t.Errorf("Expected apiKeyName ENVAULT_KEY, got %q", cfg.APIKeyName)
	}
	if cfg.URL != "https://vault.example.com/" {
		t.Errorf("Unexpected url %q", cfg.URL)
	}
	if strings.Join(cfg.Vars, ",") != "app/dev,shared" {
		t.Errorf("Unexpected vars %v", cfg.Vars)
	}
}

func TestParseConfigEmptyVarsIsValid(t *testing.T) {
	cfg, err := ParseConfig("dev.yml", []byte("apiKeyName: K\nurl: http://x/\nvars: []\n"))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if len(cfg.Vars) != 0 {
		t.Errorf("Expected no vars, got %v", cfg.Vars)
	}
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"MissingAPIKeyName", "url: http://x/\nvars: []\n", "apiKeyName"},
		{"APIKeyNameNotString", "apiKeyName: 42\nurl: http://x/\nvars: []\n", "apiKeyName"},
		{"MissingURL", "apiKeyName: K\nvars: []\n", "url"},
		{"URLNotString", "apiKeyName: K\nurl: [a, b]\nvars: []\n", "url"},
		{"MissingVars", "apiKeyName: K\nurl: http://x/\n", "vars"},
		{"VarsNotList", "apiKeyName: K\nurl: http://x/\nvars: app\n", "vars"},
		{"VarsWithNonString", "apiKeyName: K\nurl: http://x/\nvars: [app, 3]\n", "vars"},
		{"NotAMapping", "- apiKeyName\n- url\n", "mapping"},
		{"EmptyDocument", "", "mapping"},
		{"BrokenYAML", "apiKeyName: [unclosed\n", "dev.yml"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig("dev.yml", []byte(tc.content))
			if err == nil {
				t.Fatalf("Expected ParseConfig to reject %q", tc.content)
			}
			if !errors.Is(err, kerrors.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("Expected error to mention %q, got %v", tc.wantMsg, err)
			}
		})
	}
}

func TestLoadIfExists(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing", func(t *testing.T) {
		_, err := LoadIfExists(filepath.Join(dir, "missing.yml"))
		if !errors.Is(err, kerrors.ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("Valid", func(t *testing.T) {
		path := filepath.Join(dir, "dev.yml")
		if err := os.WriteFile(path, []byte(RenderTemplate("ENVAULT_KEY", "http://localhost:8787/")), 0600); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		cfg, err := LoadIfExists(path)
		if err != nil {
			t.Fatalf("LoadIfExists failed: %v", err)
		}
		if cfg.APIKeyName != "ENVAULT_KEY" || cfg.URL != "http://localhost:8787/" {
			t.Errorf("Unexpected config %+v", cfg)
		}
	})
}
