package tui

import (
	"github.com/bethropolis/tidemark/internal/core"
	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/render"
	"github.com/bethropolis/tidemark/internal/theme"
)

// StatusBarHeight is the number of rows reserved under the text area.
const StatusBarHeight = 1

func styleNames(styles []document.Style) []string {
	if len(styles) == 0 {
		return nil
	}
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = string(s)
	}
	return names
}

// DrawDocument draws the visible rows of the editor's snapshot and places the
// terminal cursor on the caret. The viewport is scrolled to keep it visible.
func DrawDocument(tuiManager *TUI, editor *core.Editor, activeTheme *theme.Theme) {
	if activeTheme == nil {
		activeTheme = theme.TidemarkDark
	}
	screen := tuiManager.screen
	width, height := tuiManager.Size()
	viewHeight := height - StatusBarHeight
	if viewHeight <= 0 || width <= 0 {
		screen.HideCursor()
		return
	}

	defaultStyle := activeTheme.GetStyle("Default")
	selectionStyle := activeTheme.GetStyle("Selection")

	snap := editor.Snapshot()
	rows := render.Layout(snap, width)
	caretRow, caretCol := render.Caret(rows, snap)

	editor.SetViewSize(viewHeight)
	top := editor.Viewport().Follow(caretRow)
	selStart, selEnd, selectionActive := render.SelectionRange(snap)

	for screenY := 0; screenY < viewHeight; screenY++ {
		for fillX := 0; fillX < width; fillX++ {
			screen.SetContent(fillX, screenY, ' ', nil, defaultStyle)
		}

		rowIdx := top + screenY
		if rowIdx >= len(rows) {
			continue
		}
		row := rows[rowIdx]
		block := snap.BlockAt(row.Block)
		blockType := string(block.Type())

		for _, c := range row.Clusters {
			style := activeTheme.TextStyle(blockType, styleNames(block.StylesAt(c.Offset)))
			if selectionActive && render.IsPositionWithin(render.Pos{Block: row.Block, Offset: c.Offset}, selStart, selEnd) {
				style = selectionStyle
			}

			if c.Runes[0] == '\t' {
				for i := 0; i < c.Width && c.Col+i < width; i++ {
					screen.SetContent(c.Col+i, screenY, ' ', nil, style)
				}
				continue
			}
			screen.SetContent(c.Col, screenY, c.Runes[0], c.Runes[1:], style)
			// Fill remaining cells for wide characters
			for cw := 1; cw < c.Width && c.Col+cw < width; cw++ {
				screen.SetContent(c.Col+cw, screenY, ' ', nil, style)
			}
		}
	}

	screenY := caretRow - top
	if caretCol >= width {
		caretCol = width - 1
	}
	if screenY < 0 || screenY >= viewHeight {
		screen.HideCursor()
	} else {
		screen.ShowCursor(caretCol, screenY)
	}
}
