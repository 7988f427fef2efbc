package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	DirOverride = t.TempDir()
	defer func() { DirOverride = "" }()

	conf, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !conf.UI.ConfirmQuit {
		t.Error("expected ConfirmQuit default true")
	}
	if conf.UI.CacheSize != 100 {
		t.Errorf("expected CacheSize default 100, got %d", conf.UI.CacheSize)
	}
	if len(conf.Tasks) == 0 {
		t.Error("expected built-in demo tasks")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	DirOverride = t.TempDir()
	defer func() { DirOverride = "" }()

	conf := Default()
	conf.UI.Borders = false
	conf.UI.CacheSize = 7
	conf.Tasks = []TaskConfig{{Name: "hello", Command: "echo", Args: []string{"hi"}}}

	if err := Save(conf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.UI.Borders {
		t.Error("expected Borders false")
	}
	if loaded.UI.CacheSize != 7 {
		t.Errorf("expected CacheSize 7, got %d", loaded.UI.CacheSize)
	}
	if len(loaded.Tasks) != 1 || loaded.Tasks[0].Command != "echo" {
		t.Errorf("unexpected tasks: %+v", loaded.Tasks)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	DirOverride = t.TempDir()
	defer func() { DirOverride = "" }()

	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(FilePath(), []byte("ui = not toml ["), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestNegativeCacheSizeClamped(t *testing.T) {
	DirOverride = t.TempDir()
	defer func() { DirOverride = "" }()

	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		t.Fatal(err)
	}
	data := "[ui]\ncache_size = -5\n"
	if err := os.WriteFile(filepath.Join(Dir(), filepath.Base(FilePath())), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	conf, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if conf.UI.CacheSize != 0 {
		t.Errorf("expected clamp to 0 (unbounded), got %d", conf.UI.CacheSize)
	}
}
