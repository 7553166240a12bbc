package app

import (
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/tui"
)

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	a.updateStatusBarContent()

	activeTheme := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	logger.DebugTagf("draw", "drawEditor: Screen Size (%d x %d)", width, height)

	a.tuiManager.Clear()
	tui.DrawDocument(a.tuiManager, a.editor, activeTheme)
	a.statusBar.Draw(screen, width, height, activeTheme)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent() {
	snap := a.editor.Snapshot()
	focus := snap.Selection().Focus
	blockType := ""
	if b, ok := snap.CaretBlock(); ok {
		blockType = string(b.Type())
	}
	a.statusBar.SetLocation(a.location)
	a.statusBar.SetCaretInfo(blockType, snap.IndexOf(focus.Key), snap.Len(), focus.Offset)
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}
