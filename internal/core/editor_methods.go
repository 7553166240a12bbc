package core

import (
	"errors"
	"fmt"

	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/format"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/trigger"
)

// HandleBeforeInput runs before text is committed. It returns true when text
// was a formatting trigger and has been consumed; the caller must then not
// insert it.
func (e *Editor) HandleBeforeInput(text string) bool {
	cur := e.store.Current()
	d := trigger.Evaluate(text, cur)
	if !d.Fired {
		return false
	}
	logger.DebugTagf("trigger", "Trigger %s", d)

	next, err := format.Apply(cur, d)
	if err != nil {
		if errors.Is(err, format.ErrNotFound) {
			logger.Errorf("Editor: trigger/format key mismatch, ignoring: %v", err)
		} else {
			logger.Errorf("Editor: applying trigger failed: %v", err)
		}
		return true
	}

	if err := e.commit(next); err != nil {
		logger.Warnf("Editor: formatted snapshot not saved: %v", err)
	}
	e.eventManager.Dispatch(event.TypeTriggerFired, event.TriggerFiredData{
		Marker:   d.Rule.Marker,
		BlockKey: d.BlockKey,
	})
	return true
}

// InsertText inserts text at the caret unless it fires a trigger.
func (e *Editor) InsertText(text string) error {
	if text == "" || e.HandleBeforeInput(text) {
		return nil
	}
	return e.commit(document.InsertText(e.store.Current(), text))
}

func (e *Editor) InsertRune(r rune) error {
	return e.InsertText(string(r))
}

// InsertNewLine splits the caret block.
func (e *Editor) InsertNewLine() error {
	return e.commit(document.SplitBlock(e.store.Current()))
}

func (e *Editor) DeleteBackward() error {
	return e.commit(document.Backspace(e.store.Current()))
}

func (e *Editor) DeleteForward() error {
	return e.commit(document.Delete(e.store.Current()))
}

// SetSelection replaces the selection, keeping the content.
func (e *Editor) SetSelection(sel document.Selection) error {
	return e.commit(e.store.Current().WithSelection(sel))
}

func (e *Editor) move(fn func(document.Snapshot) document.Snapshot) error {
	return e.commit(fn(e.store.Current()))
}

func (e *Editor) MoveLeft() error  { return e.move(document.MoveLeft) }
func (e *Editor) MoveRight() error { return e.move(document.MoveRight) }
func (e *Editor) MoveUp() error    { return e.move(document.MoveUp) }
func (e *Editor) MoveDown() error  { return e.move(document.MoveDown) }
func (e *Editor) MoveHome() error  { return e.move(document.MoveHome) }
func (e *Editor) MoveEnd() error   { return e.move(document.MoveEnd) }

// Undo reverts the last content change. It returns false when there was
// nothing to undo.
func (e *Editor) Undo() (bool, error) {
	prev, ok := e.historyManager.Undo(e.store.Current())
	if !ok {
		return false, nil
	}
	return true, e.restore(prev)
}

// Redo reapplies the last undone change.
func (e *Editor) Redo() (bool, error) {
	next, ok := e.historyManager.Redo(e.store.Current())
	if !ok {
		return false, nil
	}
	return true, e.restore(next)
}

// Save persists the current document on demand.
func (e *Editor) Save() error {
	return e.store.Save()
}

// CopyBlock copies the caret block's text. It returns false when the block
// is empty.
func (e *Editor) CopyBlock() (bool, error) {
	b, ok := e.store.Current().CaretBlock()
	if !ok || b.Text() == "" {
		return false, nil
	}
	if err := e.clipboardManager.Copy(b.Text()); err != nil {
		return true, fmt.Errorf("copy block: %w", err)
	}
	return true, nil
}

// Paste inserts clipboard text at the caret. Pasted text never fires a
// trigger, even a lone space.
func (e *Editor) Paste() (bool, error) {
	text := e.clipboardManager.Paste()
	if text == "" {
		return false, nil
	}
	return true, e.commit(document.InsertText(e.store.Current(), text))
}
