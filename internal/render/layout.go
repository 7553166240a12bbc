// Package render lays out a document snapshot as terminal rows. It knows
// nothing about screens; tui draws what Layout computes.
package render

import (
	"github.com/bethropolis/tidemark/internal/document"
	"github.com/rivo/uniseg"
)

// TabWidth is the distance between tab stops.
const TabWidth = 4

// Cluster is one grapheme cluster placed on a row.
type Cluster struct {
	Runes  []rune
	Offset int // rune offset of the cluster in its block
	Col    int // first screen column
	Width  int // cells taken
}

// Row is one screen row: a slice [Start, End) of a block's runes.
type Row struct {
	Block    int // index in the snapshot
	Start    int
	End      int
	Clusters []Cluster
}

// Layout wraps every block to width columns. Empty blocks still take a row.
// Clusters wider than the whole row are placed on a row of their own. A soft
// line break inside a block ends its row and is not drawn.
func Layout(snap document.Snapshot, width int) []Row {
	if width <= 0 {
		return nil
	}
	var rows []Row
	for i, b := range snap.Blocks() {
		row := Row{Block: i}
		col, offset := 0, 0

		gr := uniseg.NewGraphemes(b.Text())
		for gr.Next() {
			runes := gr.Runes()
			if isLineBreak(runes[0]) {
				offset += len(runes)
				row.End = offset
				rows = append(rows, row)
				row = Row{Block: i, Start: offset}
				col = 0
				continue
			}
			w := gr.Width()
			if runes[0] == '\t' {
				w = TabWidth - col%TabWidth
			}
			if col > 0 && col+w > width {
				row.End = offset
				rows = append(rows, row)
				row = Row{Block: i, Start: offset}
				col = 0
				if runes[0] == '\t' {
					w = TabWidth
				}
			}
			row.Clusters = append(row.Clusters, Cluster{Runes: runes, Offset: offset, Col: col, Width: w})
			col += w
			offset += len(runes)
		}
		row.End = offset
		rows = append(rows, row)
	}
	return rows
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\u2028', '\u2029':
		return true
	}
	return false
}

// Caret returns the row and column of the selection focus. At a wrap point
// the caret belongs to the start of the following row.
func Caret(rows []Row, snap document.Snapshot) (row, col int) {
	focus := snap.Selection().Focus
	block := snap.IndexOf(focus.Key)
	if block < 0 {
		return 0, 0
	}
	for r, rw := range rows {
		if rw.Block != block {
			continue
		}
		last := r+1 >= len(rows) || rows[r+1].Block != block
		if focus.Offset < rw.End || last {
			return r, columnOf(rw, focus.Offset)
		}
	}
	return 0, 0
}

func columnOf(rw Row, offset int) int {
	col := 0
	for _, c := range rw.Clusters {
		if c.Offset >= offset {
			return c.Col
		}
		col = c.Col + c.Width
	}
	return col
}

// Pos orders positions across blocks.
type Pos struct {
	Block  int
	Offset int
}

func (p Pos) before(o Pos) bool {
	return p.Block < o.Block || (p.Block == o.Block && p.Offset < o.Offset)
}

// SelectionRange returns the selection as an ordered [start, end) pair.
// ok is false for a collapsed selection or one naming unknown blocks.
func SelectionRange(snap document.Snapshot) (start, end Pos, ok bool) {
	sel := snap.Selection()
	if sel.IsCollapsed() {
		return Pos{}, Pos{}, false
	}
	a := Pos{Block: snap.IndexOf(sel.Anchor.Key), Offset: sel.Anchor.Offset}
	f := Pos{Block: snap.IndexOf(sel.Focus.Key), Offset: sel.Focus.Offset}
	if a.Block < 0 || f.Block < 0 {
		return Pos{}, Pos{}, false
	}
	if f.before(a) {
		a, f = f, a
	}
	return a, f, true
}

// IsPositionWithin reports whether pos lies in [start, end).
func IsPositionWithin(pos, start, end Pos) bool {
	return !pos.before(start) && pos.before(end)
}
