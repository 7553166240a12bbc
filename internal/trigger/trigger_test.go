package trigger

import (
	"testing"

	"github.com/bethropolis/tidemark/internal/document"
)

func snapshotWithText(text string) document.Snapshot {
	b := document.NewBlock("k1", document.Unstyled, text)
	return document.New([]document.Block{b}, document.Caret("k1", b.Len()))
}

func TestNonSpaceInsertionsPass(t *testing.T) {
	for _, text := range []string{"#", "*", "**", "***"} {
		for _, inserted := range []string{"a", "#", "*", "  ", "\t", "", "\u3000", " x"} {
			if d := Evaluate(inserted, snapshotWithText(text)); d.Fired {
				t.Errorf("Evaluate(%q) on %q = %v, want Pass", inserted, text, d)
			}
		}
	}
}

func TestNonMarkerTextPasses(t *testing.T) {
	for _, text := range []string{"", "# ", " #", "a#", "##", "****", "* ", "**a", "#\u200b", "hello"} {
		if d := Evaluate(" ", snapshotWithText(text)); d.Fired {
			t.Errorf("Evaluate on %q = %v, want Pass", text, d)
		}
	}
}

func TestNonCollapsedSelectionPasses(t *testing.T) {
	b := document.NewBlock("k1", document.Unstyled, "#")
	sel := document.Selection{
		Anchor: document.Position{Key: "k1", Offset: 0},
		Focus:  document.Position{Key: "k1", Offset: 1},
	}
	snap := document.New([]document.Block{b}, sel)
	if d := Evaluate(" ", snap); d.Fired {
		t.Errorf("Evaluate = %v, want Pass", d)
	}
}

func TestMarkersFire(t *testing.T) {
	tests := []struct {
		text      string
		op        Op
		blockType document.BlockType
		style     document.Style
	}{
		{"#", OpToggleBlockType, document.HeaderOne, ""},
		{"*", OpToggleInlineStyle, "", document.Bold},
		{"**", OpApplyInlineStyle, "", document.RedColor},
		{"***", OpApplyInlineStyle, "", document.Underline},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d := Evaluate(" ", snapshotWithText(tt.text))
			if !d.Fired {
				t.Fatalf("Evaluate = Pass, want Fire")
			}
			if d.Rule.Op != tt.op || d.Rule.BlockType != tt.blockType || d.Rule.Style != tt.style {
				t.Errorf("rule = %+v", d.Rule)
			}
			if d.BlockKey != "k1" {
				t.Errorf("BlockKey = %q", d.BlockKey)
			}
			want := document.Range{Start: 0, End: len(tt.text)}
			if d.Range != want {
				t.Errorf("Range = %+v, want %+v", d.Range, want)
			}
		})
	}
}

func TestOnlyCaretBlockIsInspected(t *testing.T) {
	blocks := []document.Block{
		document.NewBlock("a", document.Unstyled, "#"),
		document.NewBlock("b", document.Unstyled, "text"),
	}
	snap := document.New(blocks, document.Caret("b", 4))
	if d := Evaluate(" ", snap); d.Fired {
		t.Errorf("Evaluate = %v, want Pass", d)
	}
	if d := Evaluate(" ", snap.WithSelection(document.Caret("a", 1))); !d.Fired || d.BlockKey != "a" {
		t.Errorf("Evaluate = %v, want Fire on a", d)
	}
}

func TestDecisionString(t *testing.T) {
	if got := Pass.String(); got != "Pass" {
		t.Errorf("Pass.String() = %q", got)
	}
	d := Evaluate(" ", snapshotWithText("#"))
	if got, want := d.String(), "Fire(toggleBlockType, header-one) on k1[0,1)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
