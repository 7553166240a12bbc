package core

import (
	"github.com/bethropolis/tidemark/internal/core/clipboard"
	"github.com/bethropolis/tidemark/internal/core/history"
	"github.com/bethropolis/tidemark/internal/core/viewport"
	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/store"
)

// Config holds the editor's tunables.
type Config struct {
	HistorySize     int
	ScrollOff       int
	SystemClipboard bool
}

// Editor turns key-level editing requests into snapshot replacements on the
// store. Every accepted change goes through commit, so each one is saved once.
type Editor struct {
	store *store.Store

	historyManager   *history.Manager
	clipboardManager *clipboard.Manager
	viewport         *viewport.Manager
	eventManager     *event.Manager
}

// NewEditor creates an editor over st.
func NewEditor(st *store.Store, cfg Config) *Editor {
	return &Editor{
		store:            st,
		historyManager:   history.NewManager(cfg.HistorySize),
		clipboardManager: clipboard.NewManager(cfg.SystemClipboard),
		viewport:         viewport.NewManager(cfg.ScrollOff),
	}
}

// SetEventManager sets the event manager for dispatching events.
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

func (e *Editor) GetClipboardManager() *clipboard.Manager { return e.clipboardManager }

func (e *Editor) Viewport() *viewport.Manager { return e.viewport }

// Snapshot returns the document as the store currently holds it.
func (e *Editor) Snapshot() document.Snapshot {
	return e.store.Current()
}

// SetViewSize updates the rows available to the text area.
func (e *Editor) SetViewSize(height int) {
	e.viewport.SetHeight(height)
}

// commit adopts next. Content changes become undo steps; selection-only
// changes do not.
func (e *Editor) commit(next document.Snapshot) error {
	cur := e.store.Current()
	if next.Equal(cur) {
		return nil
	}
	if !next.ContentEqual(cur) {
		e.historyManager.Record(cur)
	}
	return e.store.Replace(next)
}

// restore adopts a snapshot from history without recording a new step.
func (e *Editor) restore(s document.Snapshot) error {
	logger.DebugTagf("history", "Restoring snapshot with %d block(s)", s.Len())
	return e.store.Replace(s)
}
