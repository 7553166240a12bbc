package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/document"
	"github.com/gdamore/tcell/v2"
)

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Storage.Backend = "memory"
	cfg.Editor.SystemClipboard = false

	screen := tcell.NewSimulationScreen("UTF-8")
	a, err := NewAppWithScreen(cfg, screen)
	if err != nil {
		t.Fatalf("NewAppWithScreen() error = %v", err)
	}
	screen.SetSize(40, 5)
	return a, screen
}

func runUntilQuit(t *testing.T, a *App, screen tcell.SimulationScreen, keys func()) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	keys()
	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after Ctrl+Q")
	}
}

func TestRunAppliesTypedTrigger(t *testing.T) {
	a, screen := newTestApp(t)
	runUntilQuit(t, a, screen, func() {
		screen.InjectKey(tcell.KeyRune, '#', tcell.ModNone)
		screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	})

	b := a.Editor().Snapshot().BlockAt(0)
	if b.Type() != document.HeaderOne || b.Text() != "#" {
		t.Errorf("block = %q/%q, want header-one with marker kept", b.Text(), b.Type())
	}
}

func TestStatusBarShowsLocationAndCaret(t *testing.T) {
	a, _ := newTestApp(t)
	defer a.close()

	if err := a.editor.InsertText("ab"); err != nil {
		t.Fatalf("InsertText() error = %v", err)
	}
	a.statusBar.ResetTemporaryMessage()
	a.updateStatusBarContent()

	text, style := a.statusBar.Text()
	if !strings.HasPrefix(text, "memory:editorContent") {
		t.Errorf("status = %q", text)
	}
	if !strings.Contains(text, "Block: 1/1, Col: 3") {
		t.Errorf("status = %q", text)
	}
	if style != "StatusBar" {
		t.Errorf("style = %q", style)
	}
}

func TestSaveFailureFlagsStatusBar(t *testing.T) {
	a, _ := newTestApp(t)
	defer a.tuiManager.Close()

	a.kv.Close()
	if err := a.editor.InsertText("x"); err == nil {
		t.Fatal("InsertText() on closed storage returned nil error")
	}
	if text, style := a.statusBar.Text(); !strings.HasPrefix(text, "Save failed") || style != "StatusBar.Error" {
		t.Errorf("status = %q %q", text, style)
	}
	if got := a.editor.Snapshot().PlainText(); got != "x" {
		t.Errorf("edit rolled back: %q", got)
	}

	a.statusBar.ResetTemporaryMessage()
	a.updateStatusBarContent()
	if text, style := a.statusBar.Text(); !strings.Contains(text, "[Not Saved]") || style != "StatusBar.Modified" {
		t.Errorf("status = %q %q", text, style)
	}
}

func TestUnknownBackendFails(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Storage.Backend = "floppy"
	if _, err := NewAppWithScreen(cfg, tcell.NewSimulationScreen("UTF-8")); err == nil {
		t.Error("NewAppWithScreen() with unknown backend returned nil error")
	}
}

func TestThemeSelectedByName(t *testing.T) {
	dir := t.TempDir()
	paper := "name = \"Paper\"\n[styles.RED_COLOR]\nfg = \"#aa0000\"\n"
	if err := os.WriteFile(filepath.Join(dir, "paper.toml"), []byte(paper), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		theme string
		want  string
	}{
		{"named theme", "paper", "Paper"},
		{"unknown name keeps built-in", "missing", "Tidemark Dark"},
		{"no name keeps built-in", "", "Tidemark Dark"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newThemeManager(config.EditorConfig{ThemesDir: dir, Theme: tt.theme})
			if got := m.Current().Name; got != tt.want {
				t.Errorf("Current().Name = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppUsesConfiguredTheme(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "paper.toml"), []byte("name = \"Paper\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.NewDefaultConfig()
	cfg.Storage.Backend = "memory"
	cfg.Editor.SystemClipboard = false
	cfg.Editor.ThemesDir = dir
	cfg.Editor.Theme = "Paper"

	a, err := NewAppWithScreen(cfg, tcell.NewSimulationScreen("UTF-8"))
	if err != nil {
		t.Fatalf("NewAppWithScreen() error = %v", err)
	}
	defer a.close()
	if got := a.themeManager.Current().Name; got != "Paper" {
		t.Errorf("active theme = %q, want Paper", got)
	}
}
