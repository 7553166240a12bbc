// Package document holds the immutable document model: a Snapshot is an
// ordered list of Blocks plus a Selection. Replacing one Snapshot with
// another is the only way state changes; nothing here mutates in place.
package document

import "strings"

// Position addresses a rune offset inside the block with the given key.
type Position struct {
	Key    string
	Offset int
}

// Selection is an anchor/focus pair. When both are equal it is a caret.
type Selection struct {
	Anchor Position
	Focus  Position
}

// Caret returns a collapsed selection.
func Caret(key string, offset int) Selection {
	p := Position{Key: key, Offset: offset}
	return Selection{Anchor: p, Focus: p}
}

// IsCollapsed reports whether anchor and focus coincide.
func (s Selection) IsCollapsed() bool {
	return s.Anchor == s.Focus
}

// Snapshot is the whole document at one point in time.
type Snapshot struct {
	blocks    []Block
	selection Selection
}

// Empty returns a document with a single empty paragraph and the caret in it.
func Empty() Snapshot {
	b := NewBlock("", Unstyled, "")
	return Snapshot{blocks: []Block{b}, selection: Caret(b.key, 0)}
}

// New builds a snapshot from blocks. A document always has at least one block;
// a repeated block key is replaced by a fresh one; a selection pointing at a
// missing block is moved to the start of the first block and offsets are
// clamped to the block length.
func New(blocks []Block, sel Selection) Snapshot {
	if len(blocks) == 0 {
		return Empty()
	}
	s := Snapshot{blocks: make([]Block, len(blocks))}
	seen := make(map[string]bool, len(blocks))
	for i, b := range blocks {
		if seen[b.key] {
			b.key = NewKey()
		}
		seen[b.key] = true
		s.blocks[i] = b
	}
	s.selection = s.clampSelection(sel)
	return s
}

func (s Snapshot) clampSelection(sel Selection) Selection {
	clampPos := func(p Position) Position {
		b, ok := s.Block(p.Key)
		if !ok {
			first := s.blocks[0]
			return Position{Key: first.key, Offset: 0}
		}
		return Position{Key: p.Key, Offset: clampInt(p.Offset, 0, b.Len())}
	}
	return Selection{Anchor: clampPos(sel.Anchor), Focus: clampPos(sel.Focus)}
}

// orEmpty lets the zero Snapshot behave like Empty.
func (s Snapshot) orEmpty() Snapshot {
	if len(s.blocks) == 0 {
		return Empty()
	}
	return s
}

// Blocks returns a copy of the block list.
func (s Snapshot) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Len returns the number of blocks.
func (s Snapshot) Len() int { return len(s.blocks) }

// BlockAt returns the i-th block.
func (s Snapshot) BlockAt(i int) Block { return s.blocks[i] }

// IndexOf returns the position of the block with key, or -1.
func (s Snapshot) IndexOf(key string) int {
	for i, b := range s.blocks {
		if b.key == key {
			return i
		}
	}
	return -1
}

// Block looks a block up by key.
func (s Snapshot) Block(key string) (Block, bool) {
	if i := s.IndexOf(key); i >= 0 {
		return s.blocks[i], true
	}
	return Block{}, false
}

// Selection returns the current selection.
func (s Snapshot) Selection() Selection { return s.selection }

// CaretBlock returns the block holding the selection focus.
func (s Snapshot) CaretBlock() (Block, bool) {
	return s.Block(s.selection.Focus.Key)
}

// WithSelection returns a copy with sel (clamped) as selection.
func (s Snapshot) WithSelection(sel Selection) Snapshot {
	s = s.orEmpty()
	return Snapshot{blocks: s.blocks, selection: s.clampSelection(sel)}
}

// WithBlock returns a copy where the block sharing b's key is replaced by b.
// ok is false, and s returned unchanged, when no such block exists.
func (s Snapshot) WithBlock(b Block) (Snapshot, bool) {
	i := s.IndexOf(b.key)
	if i < 0 {
		return s, false
	}
	blocks := s.Blocks()
	blocks[i] = b
	return Snapshot{blocks: blocks, selection: s.clampSelection(s.selection)}, true
}

// ContentEqual compares blocks only.
func (s Snapshot) ContentEqual(o Snapshot) bool {
	if len(s.blocks) != len(o.blocks) {
		return false
	}
	for i := range s.blocks {
		if !s.blocks[i].Equal(o.blocks[i]) {
			return false
		}
	}
	return true
}

// Equal compares blocks and selection.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.selection == o.selection && s.ContentEqual(o)
}

// PlainText joins the block texts with newlines.
func (s Snapshot) PlainText() string {
	texts := make([]string, len(s.blocks))
	for i, b := range s.blocks {
		texts[i] = b.text
	}
	return strings.Join(texts, "\n")
}
