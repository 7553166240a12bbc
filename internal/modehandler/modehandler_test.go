package modehandler

import (
	"strings"
	"testing"

	"github.com/bethropolis/tidemark/internal/core"
	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/persist"
	"github.com/bethropolis/tidemark/internal/statusbar"
	"github.com/bethropolis/tidemark/internal/storage"
	"github.com/bethropolis/tidemark/internal/store"
	"github.com/gdamore/tcell/v2"
)

type harness struct {
	mh     *ModeHandler
	editor *core.Editor
	kv     *storage.MemoryStore
	bar    *statusbar.StatusBar
	quit   chan struct{}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	events := event.NewManager()
	kv := storage.NewMemoryStore()
	st := store.New(persist.NewAdapter(kv, persist.DefaultKey), store.WithEvents(events))
	editor := core.NewEditor(st, core.Config{})
	editor.SetEventManager(events)
	h := &harness{
		editor: editor,
		kv:     kv,
		bar:    statusbar.New(statusbar.DefaultConfig()),
		quit:   make(chan struct{}),
	}
	h.mh = New(Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   events,
		StatusBar:      h.bar,
		QuitSignal:     h.quit,
	})
	return h
}

func (h *harness) typeRunes(s string) {
	for _, r := range s {
		h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (h *harness) key(k tcell.Key) bool {
	return h.mh.HandleKeyEvent(tcell.NewEventKey(k, 0, tcell.ModCtrl))
}

func (h *harness) quitting() bool {
	select {
	case <-h.quit:
		return true
	default:
		return false
	}
}

func TestTypingTriggersFormatting(t *testing.T) {
	h := newHarness(t)
	h.typeRunes("# ")
	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	h.typeRunes("*** done")

	s := h.editor.Snapshot()
	if s.BlockAt(0).Type() != document.HeaderOne {
		t.Errorf("block 0 type = %q", s.BlockAt(0).Type())
	}
	b := s.BlockAt(1)
	if b.Text() != "***done" || !b.HasStyle(document.Underline, document.Range{Start: 0, End: 7}) {
		t.Errorf("block 1 = %q %v", b.Text(), b.Spans())
	}
}

func TestUndoKey(t *testing.T) {
	h := newHarness(t)
	h.typeRunes("# ")
	h.key(tcell.KeyCtrlZ)
	if b := h.editor.Snapshot().BlockAt(0); b.Type() != document.Unstyled || b.Text() != "#" {
		t.Errorf("after Ctrl+Z block = %q/%q", b.Text(), b.Type())
	}
	h.key(tcell.KeyCtrlY)
	if b := h.editor.Snapshot().BlockAt(0); b.Type() != document.HeaderOne {
		t.Errorf("after Ctrl+Y type = %q", b.Type())
	}
}

func TestSaveKey(t *testing.T) {
	h := newHarness(t)
	h.typeRunes("hi")
	before := h.kv.Writes()
	if !h.key(tcell.KeyCtrlS) {
		t.Error("save did not request redraw")
	}
	if h.kv.Writes() != before+1 {
		t.Errorf("Writes() = %d, want %d", h.kv.Writes(), before+1)
	}
	if text, style := h.bar.Text(); text != "Saved 1 block(s)" || style != "StatusBar.Saved" {
		t.Errorf("status = %q %q", text, style)
	}
}

func TestQuitAsksAgainAfterFailedSave(t *testing.T) {
	h := newHarness(t)
	h.kv.Close()
	h.typeRunes("x")
	if text, _ := h.bar.Text(); !strings.HasPrefix(text, "Save failed") {
		t.Errorf("status = %q", text)
	}

	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if h.quitting() {
		t.Fatal("quit without confirmation while unsaved")
	}
	if h.mh.GetCurrentMode() != ModeQuitPending {
		t.Errorf("mode = %s", h.mh.GetCurrentModeString())
	}
	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if !h.quitting() {
		t.Error("second ESC did not quit")
	}
	// A third quit must not panic on the closed channel.
	h.key(tcell.KeyCtrlQ)
}

func TestQuitImmediatelyWhenSaved(t *testing.T) {
	h := newHarness(t)
	h.typeRunes("x")
	h.key(tcell.KeyCtrlQ)
	if !h.quitting() {
		t.Error("Ctrl+Q did not quit")
	}
}

func TestOtherKeyCancelsQuitPrompt(t *testing.T) {
	h := newHarness(t)
	h.kv.Close()
	h.typeRunes("x")
	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if h.mh.GetCurrentMode() != ModeNormal {
		t.Errorf("mode = %s", h.mh.GetCurrentModeString())
	}
}

func TestUnknownKeyNeedsNoRedraw(t *testing.T) {
	h := newHarness(t)
	if h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)) {
		t.Error("unknown key requested redraw")
	}
}
