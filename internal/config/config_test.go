package config

import (
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func parse(t *testing.T, args ...string) *Flags {
	t.Helper()
	f := &Flags{}
	if _, err := f.ParseFlags(flag.NewFlagSet("test", flag.ContinueOnError), args); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	return f
}

func TestDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != "file" || cfg.Storage.Key != "editorContent" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.Storage.Path == "" {
		t.Error("file backend got no default path")
	}
	if cfg.Editor.HistorySize != DefaultHistorySize || !cfg.Editor.SystemClipboard {
		t.Errorf("Editor = %+v", cfg.Editor)
	}
	if cfg.Logger.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.Logger.LogLevel)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[logger]
log_level = "debug"
enabled_tags = ["trigger"]

[editor]
history_size = 20
theme = "Paper"
themes_dir = "/tmp/themes"
theme_file = "/tmp/dark.toml"

[storage]
backend = "SQLite"
key = "notes"

[unused]
x = 1
`)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logger.LogLevel != "debug" || !reflect.DeepEqual(cfg.Logger.EnabledTags, []string{"trigger"}) {
		t.Errorf("Logger = %+v", cfg.Logger)
	}
	if cfg.Editor.HistorySize != 20 || cfg.Editor.ThemeFile != "/tmp/dark.toml" ||
		cfg.Editor.Theme != "Paper" || cfg.Editor.ThemesDir != "/tmp/themes" {
		t.Errorf("Editor = %+v", cfg.Editor)
	}
	if !cfg.Editor.SystemClipboard {
		t.Error("unset system_clipboard lost its default")
	}
	if cfg.Storage.Backend != "sqlite" || cfg.Storage.Key != "notes" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if filepath.Base(cfg.Storage.Path) != SQLiteFileName {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if len(cfg.Unrecognized) == 0 {
		t.Error("unknown [unused] table not reported")
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
editor:
  system_clipboard: false
  scroll_off: 0
storage:
  backend: memory
`)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Editor.SystemClipboard || cfg.Editor.ScrollOff != 0 {
		t.Errorf("Editor = %+v", cfg.Editor)
	}
	if cfg.Storage.Backend != "memory" || cfg.Storage.Path != "" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
}

func TestBadFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, "config.toml", "[editor\nhistory_size = ")
	cfg, err := Load(path, parse(t, "-key", "other"))
	if err == nil {
		t.Fatal("Load() error = nil for malformed file")
	}
	if cfg.Editor.HistorySize != DefaultHistorySize || cfg.Storage.Key != "other" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestFlagOverrides(t *testing.T) {
	path := writeFile(t, "config.toml", "[storage]\nbackend = \"sqlite\"\npath = \"/data/x.db\"\n")
	flags := parse(t,
		"-storage", "file",
		"-storage-path", "/tmp/docs",
		"-loglevel", "warn",
		"-log-tags", "store, persist",
		"-history", "-3",
		"-system-clipboard=false",
		"-theme-name", "Paper",
	)
	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Backend != "file" || cfg.Storage.Path != "/tmp/docs" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.Logger.LogLevel != "warn" || !reflect.DeepEqual(cfg.Logger.EnabledTags, []string{"store", "persist"}) {
		t.Errorf("Logger = %+v", cfg.Logger)
	}
	if cfg.Editor.HistorySize != DefaultHistorySize {
		t.Errorf("negative -history applied: %d", cfg.Editor.HistorySize)
	}
	if cfg.Editor.SystemClipboard {
		t.Error("-system-clipboard=false ignored")
	}
	if cfg.Editor.Theme != "Paper" {
		t.Errorf("-theme-name ignored: %q", cfg.Editor.Theme)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Editor: EditorConfig{HistorySize: -1, ScrollOff: -5}}
	cfg.validate()
	if cfg.Editor.HistorySize != DefaultHistorySize || cfg.Editor.ScrollOff != DefaultScrollOff {
		t.Errorf("Editor = %+v", cfg.Editor)
	}
	if cfg.Storage.Backend != DefaultBackend || cfg.Storage.Key != DefaultDocumentKey {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
}

func TestSplitCommaList(t *testing.T) {
	if got := splitCommaList(" a, ,b "); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("splitCommaList() = %v", got)
	}
	if got := splitCommaList(""); got != nil {
		t.Errorf("splitCommaList(\"\") = %v", got)
	}
}
