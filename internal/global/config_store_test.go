package global

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigStore_LoadOrInit_CreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	store := NewConfigStore(dir)

	cfg, err := store.LoadOrInit()
	if err != nil {
		t.Fatalf("LoadOrInit failed: %v", err)
	}
	if cfg.LocalPort != 3000 {
		t.Fatalf("expected default local port 3000, got %d", cfg.LocalPort)
	}
	if cfg.Store.Backend != StoreJSON {
		t.Fatalf("expected json backend, got %q", cfg.Store.Backend)
	}

	b, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatalf("read config.toml failed: %v", err)
	}
	text := string(b)
	if !strings.Contains(text, "local_port = 3000") {
		t.Fatalf("expected local_port in toml, got: %s", text)
	}
	if !strings.Contains(text, "[store]") {
		t.Fatalf("expected store table in toml, got: %s", text)
	}
	if !strings.Contains(text, "backend = 'json'") && !strings.Contains(text, "backend = \"json\"") {
		t.Fatalf("expected store.backend in toml, got: %s", text)
	}
}

func TestConfigStore_SaveNormalizesAndRoundTrips(t *testing.T) {
	dir := t.TempDir()
	store := NewConfigStore(dir)

	in := GlobalConfig{
		LocalHost: " 0.0.0.0 ",
		LocalPort: 4700,
		LogLevel:  "DEBUG",
		Store:     StoreConfig{Backend: "SQLite", SQLitePath: " /tmp/t.db "},
		AI:        AIConfig{Model: "gemini-2.0-flash"},
	}
	if err := store.Save(in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := store.LoadOrInit()
	if err != nil {
		t.Fatalf("LoadOrInit failed: %v", err)
	}
	if got.LocalHost != "0.0.0.0" || got.LocalPort != 4700 || got.LogLevel != "debug" {
		t.Fatalf("unexpected server fields: %+v", got)
	}
	if got.Store.Backend != StoreSQLite || got.Store.SQLitePath != "/tmp/t.db" {
		t.Fatalf("unexpected store config: %+v", got.Store)
	}
	if got.AI.Model != "gemini-2.0-flash" {
		t.Fatalf("unexpected ai model: %q", got.AI.Model)
	}
}

func TestConfigStore_UnknownBackendFallsBackToJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("local_port = -1\n[store]\nbackend = 'redis'\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	got, err := NewConfigStore(dir).LoadOrInit()
	if err != nil {
		t.Fatalf("LoadOrInit failed: %v", err)
	}
	if got.Store.Backend != StoreJSON || got.LocalPort != 3000 {
		t.Fatalf("expected normalized config, got %+v", got)
	}
}

func TestConfigStore_InvalidTOMLFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("local_port = = ="), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := NewConfigStore(dir).LoadOrInit(); err == nil {
		t.Fatal("expected parse error")
	}
}
