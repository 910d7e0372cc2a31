package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/eduhub/pkg/store"
)

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := []byte("path: " + filepath.Join(dir, "db") + "\nbackend: sqlite\nlog:\n  level: debug\nupload:\n  min-delay: 10ms\n  jitter: 0s\n")
	if err := os.WriteFile(filepath.Join(dir, ".eduhub.yaml"), data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(EnvConfigPath, dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BasePath() != filepath.Join(dir, "db") {
		t.Fatalf("unexpected path %q", cfg.BasePath())
	}
	if cfg.Backend() != store.BackendSQLite {
		t.Fatalf("expected sqlite backend, got %s", cfg.Backend())
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug level, got %s", cfg.LogLevel)
	}
	if cfg.UploadMinDelay != 10*time.Millisecond {
		t.Fatalf("expected 10ms min delay, got %v", cfg.UploadMinDelay)
	}
	if cfg.UploadJitter != 0 {
		t.Fatalf("expected zero jitter, got %v", cfg.UploadJitter)
	}
}
