package render

import (
	"testing"

	"github.com/bethropolis/tidemark/internal/document"
)

func snapOf(caretBlock, caretOffset int, texts ...string) document.Snapshot {
	blocks := make([]document.Block, len(texts))
	for i, text := range texts {
		blocks[i] = document.NewBlock(string(rune('a'+i)), document.Unstyled, text)
	}
	return document.New(blocks, document.Caret(blocks[caretBlock].Key(), caretOffset))
}

func rowSpans(rows []Row) [][3]int {
	out := make([][3]int, len(rows))
	for i, r := range rows {
		out[i] = [3]int{r.Block, r.Start, r.End}
	}
	return out
}

func TestLayoutWraps(t *testing.T) {
	rows := Layout(snapOf(0, 0, "abcdefg", "", "hi"), 3)
	want := [][3]int{{0, 0, 3}, {0, 3, 6}, {0, 6, 7}, {1, 0, 0}, {2, 0, 2}}
	got := rowSpans(rows)
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLayoutWideAndCombining(t *testing.T) {
	// "世" takes two cells, "e\u0301" is one cluster of two runes.
	rows := Layout(snapOf(0, 0, "a世e\u0301b"), 3)
	if len(rows) != 2 {
		t.Fatalf("rows = %v", rowSpans(rows))
	}
	if rows[0].End != 2 || len(rows[1].Clusters) != 2 {
		t.Errorf("rows = %v", rowSpans(rows))
	}
	if c := rows[1].Clusters[0]; len(c.Runes) != 2 || c.Offset != 2 || c.Col != 0 {
		t.Errorf("combining cluster = %+v", c)
	}
}

func TestLayoutZeroWidth(t *testing.T) {
	if rows := Layout(snapOf(0, 0, "x"), 0); rows != nil {
		t.Errorf("Layout(width 0) = %v", rows)
	}
}

func TestCaret(t *testing.T) {
	tests := []struct {
		name             string
		block, offset    int
		wantRow, wantCol int
	}{
		{"start", 0, 0, 0, 0},
		{"mid first row", 0, 2, 0, 2},
		{"wrap point goes to next row", 0, 3, 1, 0},
		{"end of block", 0, 7, 2, 1},
		{"empty block", 1, 0, 3, 0},
		{"last block end", 2, 2, 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapOf(tt.block, tt.offset, "abcdefg", "", "hi")
			row, col := Caret(Layout(snap, 3), snap)
			if row != tt.wantRow || col != tt.wantCol {
				t.Errorf("Caret() = (%d, %d), want (%d, %d)", row, col, tt.wantRow, tt.wantCol)
			}
		})
	}
}

func TestSelectionRange(t *testing.T) {
	snap := snapOf(0, 0, "abc", "def")
	if _, _, ok := SelectionRange(snap); ok {
		t.Error("collapsed selection reported a range")
	}
	sel := document.Selection{
		Anchor: document.Position{Key: "b", Offset: 1},
		Focus:  document.Position{Key: "a", Offset: 2},
	}
	start, end, ok := SelectionRange(snap.WithSelection(sel))
	if !ok || start != (Pos{0, 2}) || end != (Pos{1, 1}) {
		t.Fatalf("SelectionRange() = %v %v %v", start, end, ok)
	}
	for _, tt := range []struct {
		pos  Pos
		want bool
	}{
		{Pos{0, 1}, false},
		{Pos{0, 2}, true},
		{Pos{1, 0}, true},
		{Pos{1, 1}, false},
	} {
		if got := IsPositionWithin(tt.pos, start, end); got != tt.want {
			t.Errorf("IsPositionWithin(%v) = %v", tt.pos, got)
		}
	}
}

func TestLayoutTabStops(t *testing.T) {
	rows := Layout(snapOf(0, 0, "a\tb"), 10)
	c := rows[0].Clusters
	if c[1].Col != 1 || c[1].Width != 3 || c[2].Col != 4 {
		t.Errorf("clusters = %+v", c)
	}
}

func TestLayoutSoftLineBreak(t *testing.T) {
	snap := snapOf(0, 3, "ab\ncd", "x\r\n")
	rows := Layout(snap, 10)
	want := [][3]int{{0, 0, 3}, {0, 3, 5}, {1, 0, 3}, {1, 3, 3}}
	got := rowSpans(rows)
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %v, want %v", i, got[i], want[i])
		}
	}
	for _, r := range rows {
		for _, c := range r.Clusters {
			if isLineBreak(c.Runes[0]) {
				t.Errorf("line break placed as a cluster in row %v", r)
			}
		}
	}
	if row, col := Caret(rows, snap); row != 1 || col != 0 {
		t.Errorf("Caret() = (%d, %d), want (1, 0)", row, col)
	}
	if row, col := Caret(rows, snap.WithSelection(document.Caret("a", 2))); row != 0 || col != 2 {
		t.Errorf("Caret() before break = (%d, %d), want (0, 2)", row, col)
	}
}
