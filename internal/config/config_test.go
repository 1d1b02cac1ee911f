package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Target != "js" || cfg.MaxErrors != 25 {
		t.Fatalf("expected default config, got %+v", cfg)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFilename)
	text := "target: wat\nmax_errors: 10\nsearch_paths:\n  - vendor/lumina\n"
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Target != "wat" {
		t.Fatalf("Target = %q, want wat", cfg.Target)
	}
	if cfg.MaxErrors != 10 {
		t.Fatalf("MaxErrors = %d, want 10", cfg.MaxErrors)
	}
	if len(cfg.SearchPaths) != 1 || cfg.SearchPaths[0] != "vendor/lumina" {
		t.Fatalf("SearchPaths = %v", cfg.SearchPaths)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFilename)
	if err := os.WriteFile(path, []byte("target: [unterminated"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
