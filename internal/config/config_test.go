package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".vulnsweep.yml")
	body := `
include: "src/**"
threads: 8
fail_on: "CRITICAL"
no_color: true
safe_patterns:
  - "reviewed-by-security"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Include == nil || *cfg.Include != "src/**" {
		t.Fatalf("include = %v", cfg.Include)
	}
	if cfg.Threads == nil || *cfg.Threads != 8 {
		t.Fatalf("threads = %v", cfg.Threads)
	}
	if cfg.FailOn == nil || *cfg.FailOn != "CRITICAL" {
		t.Fatalf("fail_on = %v", cfg.FailOn)
	}
	if cfg.NoColor == nil || !*cfg.NoColor {
		t.Fatalf("no_color = %v", cfg.NoColor)
	}
	if len(cfg.SafePatterns) != 1 || cfg.SafePatterns[0] != "reviewed-by-security" {
		t.Fatalf("safe_patterns = %v", cfg.SafePatterns)
	}
	// unset fields stay nil so precedence resolution can tell them apart
	if cfg.Exclude != nil || cfg.Rules != nil || cfg.DefaultExcludes != nil {
		t.Fatal("unset fields must remain nil")
	}
}

func TestLoadLocalSearchOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "vulnsweep.yml"), []byte("threads: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".vulnsweep.yml"), []byte("threads: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 4 {
		t.Fatalf("dotted file must win, got %v", cfg.Threads)
	}
}

func TestLoadLocalMissing(t *testing.T) {
	if _, err := LoadLocal(t.TempDir()); err == nil {
		t.Fatal("expected error for missing local config")
	}
}

func TestLoadGlobalXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	if err := os.MkdirAll(filepath.Join(base, "vulnsweep"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(base, "vulnsweep", "config.yml"), []byte("format: json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.Format == nil || *cfg.Format != "json" {
		t.Fatalf("format = %v", cfg.Format)
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("threads: [not an int\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected decode error")
	}
}
