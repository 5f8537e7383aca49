package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".config", "remmux")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server != DefaultServer {
		t.Errorf("Server = %q, want %q", cfg.Server, DefaultServer)
	}
	if cfg.Scrollback != DefaultScrollback {
		t.Errorf("Scrollback = %d, want %d", cfg.Scrollback, DefaultScrollback)
	}
	if cfg.HistoryLimit != DefaultHistoryLimit {
		t.Errorf("HistoryLimit = %d, want %d", cfg.HistoryLimit, DefaultHistoryLimit)
	}
}

func TestLoadFromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, "server: 10.0.0.5:9000\nscrollback: 200\nhistory_limit: 50\nlog_path: /tmp/remmux.log\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server != "10.0.0.5:9000" {
		t.Errorf("Server = %q", cfg.Server)
	}
	if cfg.Scrollback != 200 {
		t.Errorf("Scrollback = %d", cfg.Scrollback)
	}
	if cfg.HistoryLimit != 50 {
		t.Errorf("HistoryLimit = %d", cfg.HistoryLimit)
	}
	if cfg.LogPath != "/tmp/remmux.log" {
		t.Errorf("LogPath = %q", cfg.LogPath)
	}
}

func TestLoadBackfillsZeroValues(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, "server: 10.0.0.5:9000\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server != "10.0.0.5:9000" {
		t.Errorf("Server = %q", cfg.Server)
	}
	if cfg.Scrollback != DefaultScrollback || cfg.HistoryLimit != DefaultHistoryLimit {
		t.Errorf("defaults not backfilled: %+v", cfg)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, "server: [unclosed\n")

	if _, err := Load(); err == nil {
		t.Error("Load accepted malformed YAML")
	}
}
