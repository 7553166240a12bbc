// Package trigger decides whether a pending insertion is a formatting trigger.
//
// A trigger is a fixed marker ("#", "*", "**", "***") that makes up the whole
// text of the caret block when a space is typed. Evaluate is pure: it reads a
// snapshot and returns a Decision, leaving it to the caller to apply it.
package trigger

import (
	"fmt"

	"github.com/bethropolis/tidemark/internal/document"
)

// Op names the transformation a fired trigger asks for.
type Op int

const (
	OpNone Op = iota
	OpToggleBlockType
	OpToggleInlineStyle
	OpApplyInlineStyle
)

func (o Op) String() string {
	switch o {
	case OpToggleBlockType:
		return "toggleBlockType"
	case OpToggleInlineStyle:
		return "toggleInlineStyle"
	case OpApplyInlineStyle:
		return "applyInlineStyle"
	default:
		return "none"
	}
}

// Key is the only inserted text that can fire a trigger.
const Key = " "

// Rule is one row of the trigger table.
type Rule struct {
	Marker    string
	Op        Op
	BlockType document.BlockType // for OpToggleBlockType
	Style     document.Style     // for the inline style ops
}

// Rules is the fixed trigger table, matched by exact block text.
var Rules = []Rule{
	{Marker: "#", Op: OpToggleBlockType, BlockType: document.HeaderOne},
	{Marker: "*", Op: OpToggleInlineStyle, Style: document.Bold},
	{Marker: "**", Op: OpApplyInlineStyle, Style: document.RedColor},
	{Marker: "***", Op: OpApplyInlineStyle, Style: document.Underline},
}

var byMarker = func() map[string]Rule {
	m := make(map[string]Rule, len(Rules))
	for _, r := range Rules {
		m[r.Marker] = r
	}
	return m
}()

// Decision is the outcome of Evaluate: either Pass (the host inserts the text
// itself) or a fired Rule with the block and range it applies to.
type Decision struct {
	Fired    bool
	Rule     Rule
	BlockKey string
	// Range is [0, caret offset) in the caret block: the marker text itself,
	// not including the space that was never inserted.
	Range document.Range
}

// Pass is the not-handled decision.
var Pass = Decision{}

func (d Decision) String() string {
	if !d.Fired {
		return "Pass"
	}
	arg := string(d.Rule.Style)
	if d.Rule.Op == OpToggleBlockType {
		arg = string(d.Rule.BlockType)
	}
	return fmt.Sprintf("Fire(%s, %s) on %s[%d,%d)", d.Rule.Op, arg, d.BlockKey, d.Range.Start, d.Range.End)
}

// Evaluate inspects the snapshot as it is before inserted is committed.
func Evaluate(inserted string, snap document.Snapshot) Decision {
	sel := snap.Selection()
	if !sel.IsCollapsed() {
		return Pass
	}
	if inserted != Key {
		return Pass
	}
	block, ok := snap.CaretBlock()
	if !ok {
		return Pass
	}
	rule, ok := byMarker[block.Text()]
	if !ok {
		return Pass
	}
	return Decision{
		Fired:    true,
		Rule:     rule,
		BlockKey: block.Key(),
		Range:    document.Range{Start: 0, End: sel.Focus.Offset},
	}
}
