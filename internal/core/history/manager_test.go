package history

import (
	"testing"

	"github.com/bethropolis/tidemark/internal/document"
)

func snap(text string) document.Snapshot {
	b := document.NewBlock("k", document.Unstyled, text)
	return document.New([]document.Block{b}, document.Caret("k", b.Len()))
}

func TestUndoRedo(t *testing.T) {
	m := NewManager(10)
	a, b, c := snap("a"), snap("ab"), snap("abc")

	m.Record(a)
	m.Record(b)
	cur := c

	cur, ok := m.Undo(cur)
	if !ok || cur.PlainText() != "ab" {
		t.Fatalf("Undo() = %q, %v", cur.PlainText(), ok)
	}
	cur, _ = m.Undo(cur)
	if cur.PlainText() != "a" {
		t.Fatalf("second Undo() = %q", cur.PlainText())
	}
	if _, ok := m.Undo(cur); ok {
		t.Error("Undo() on empty stack reported ok")
	}

	cur, ok = m.Redo(cur)
	if !ok || cur.PlainText() != "ab" {
		t.Errorf("Redo() = %q, %v", cur.PlainText(), ok)
	}
	cur, _ = m.Redo(cur)
	if cur.PlainText() != "abc" {
		t.Errorf("second Redo() = %q", cur.PlainText())
	}
	if m.CanRedo() {
		t.Error("CanRedo() = true after redoing everything")
	}
}

func TestRecordClearsRedo(t *testing.T) {
	m := NewManager(10)
	m.Record(snap("a"))
	m.Undo(snap("b"))
	if !m.CanRedo() {
		t.Fatal("expected redo step")
	}
	m.Record(snap("a"))
	if m.CanRedo() {
		t.Error("Record() kept redo history")
	}
}

func TestMaxHistory(t *testing.T) {
	m := NewManager(2)
	for _, s := range []string{"1", "2", "3"} {
		m.Record(snap(s))
	}
	cur := snap("4")
	var seen []string
	for {
		var ok bool
		cur, ok = m.Undo(cur)
		if !ok {
			break
		}
		seen = append(seen, cur.PlainText())
	}
	if len(seen) != 2 || seen[0] != "3" || seen[1] != "2" {
		t.Errorf("undo sequence = %v, want [3 2]", seen)
	}
}

func TestClearAndDefaults(t *testing.T) {
	m := NewManager(0)
	if m.maxHistory != DefaultMaxHistory {
		t.Errorf("maxHistory = %d", m.maxHistory)
	}
	m.Record(snap("x"))
	m.Clear()
	if m.CanUndo() || m.CanRedo() {
		t.Error("Clear() left history behind")
	}
}
