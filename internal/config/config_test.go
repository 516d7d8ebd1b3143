package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PageSize != 25 || cfg.Player != "" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if want := filepath.Join(home, ".config", "ttsb", "reviews.db"); cfg.ReviewDB != want {
		t.Fatalf("review db = %q, want %q", cfg.ReviewDB, want)
	}
}

func TestLoadFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := Dir(home)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "page_size = 10\nplayer = \"mpv\"\nlog_file = \"~/logs/ttsb.log\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PageSize != 10 || cfg.Player != "mpv" {
		t.Fatalf("config file not applied: %+v", cfg)
	}
	if want := filepath.Join(home, "logs", "ttsb.log"); cfg.LogFile != want {
		t.Fatalf("log file = %q, want %q", cfg.LogFile, want)
	}
}

func TestLoadRejectsBadPageSize(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := Dir(home)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("page_size = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("expected error for page_size = 0")
	}
}

func TestLoadTrimsBlankPlayer(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := Dir(home)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("player = \"  \"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Player != "" {
		t.Fatalf("player = %q, want auto-detect", cfg.Player)
	}
}
