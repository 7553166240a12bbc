// Package modehandler turns decoded key actions into editor operations and
// status messages.
package modehandler

import (
	"github.com/bethropolis/tidemark/internal/core"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal      InputMode = iota
	ModeQuitPending           // quit requested while the document is not saved
)

func (m InputMode) String() string {
	if m == ModeQuitPending {
		return "QUIT?"
	}
	return "EDIT"
}

// ModeHandler executes key actions against the editor.
type ModeHandler struct {
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}

	currentMode InputMode
	saveFailed  bool
	quitClosed  bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{} // Write-only channel to signal quit
}

// New creates a new ModeHandler and subscribes it to save results.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	mh := &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
	}
	mh.eventManager.Subscribe(event.TypeSaveFailed, func(event.Event) bool {
		mh.saveFailed = true
		return false
	})
	mh.eventManager.Subscribe(event.TypeDocumentSaved, func(event.Event) bool {
		mh.saveFailed = false
		return false
	})
	return mh
}

func (mh *ModeHandler) GetCurrentMode() InputMode { return mh.currentMode }

func (mh *ModeHandler) GetCurrentModeString() string { return mh.currentMode.String() }

// HandleKeyEvent runs the action bound to ev.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	actionEvent := mh.inputProcessor.ProcessEvent(ev)
	logger.DebugTagf("input", "Key %s -> %s", ev.Name(), actionEvent.Action)

	if actionEvent.Action != input.ActionQuit && mh.currentMode == ModeQuitPending {
		mh.currentMode = ModeNormal
		mh.statusBar.ResetTemporaryMessage()
	}
	return mh.executeAction(actionEvent)
}

func (mh *ModeHandler) executeAction(actionEvent input.ActionEvent) bool {
	var err error
	switch actionEvent.Action {
	case input.ActionQuit:
		if mh.saveFailed && mh.currentMode != ModeQuitPending {
			mh.currentMode = ModeQuitPending
			mh.statusBar.SetMessage(statusbar.KindError, "Document not saved! Press ESC again to quit, Ctrl+S to retry.")
			return true
		}
		mh.quit()
		return false

	case input.ActionSave:
		if err := mh.editor.Save(); err != nil {
			mh.statusBar.SetMessage(statusbar.KindError, "Save failed: %v", err)
		} else {
			mh.statusBar.SetMessage(statusbar.KindSaved, "Saved %d block(s)", mh.editor.Snapshot().Len())
		}
		return true

	case input.ActionMoveUp:
		err = mh.editor.MoveUp()
	case input.ActionMoveDown:
		err = mh.editor.MoveDown()
	case input.ActionMoveLeft:
		err = mh.editor.MoveLeft()
	case input.ActionMoveRight:
		err = mh.editor.MoveRight()
	case input.ActionMoveHome:
		err = mh.editor.MoveHome()
	case input.ActionMoveEnd:
		err = mh.editor.MoveEnd()

	case input.ActionInsertRune:
		err = mh.editor.InsertRune(actionEvent.Rune)
	case input.ActionInsertNewLine:
		err = mh.editor.InsertNewLine()
	case input.ActionDeleteCharBackward:
		err = mh.editor.DeleteBackward()
	case input.ActionDeleteCharForward:
		err = mh.editor.DeleteForward()

	case input.ActionUndo:
		var undone bool
		undone, err = mh.editor.Undo()
		if !undone {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		var redone bool
		redone, err = mh.editor.Redo()
		if !redone {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}

	case input.ActionCopyBlock:
		copied, copyErr := mh.editor.CopyBlock()
		switch {
		case copyErr != nil:
			mh.statusBar.SetMessage(statusbar.KindError, "Copy failed: %v", copyErr)
		case copied:
			mh.statusBar.SetTemporaryMessage("Block copied")
		default:
			mh.statusBar.SetTemporaryMessage("Nothing to copy")
		}
		return true
	case input.ActionPaste:
		var pasted bool
		pasted, err = mh.editor.Paste()
		if !pasted && err == nil {
			mh.statusBar.SetTemporaryMessage("Clipboard empty")
		}

	default:
		return false
	}

	if err != nil {
		// The edit stands; only persisting it failed.
		logger.Warnf("ModeHandler: %s: %v", actionEvent.Action, err)
		mh.statusBar.SetMessage(statusbar.KindError, "Save failed: %v", err)
	}
	return true
}

func (mh *ModeHandler) quit() {
	if mh.quitClosed {
		return
	}
	mh.quitClosed = true
	close(mh.quitSignal)
}
