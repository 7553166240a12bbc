package document

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// The functions below are the host editing primitives: what a keystroke does
// when no formatting trigger intercepts it. Each takes a snapshot and returns
// a new one with the caret collapsed at the resulting position. A non-collapsed
// selection is first collapsed onto its focus.

func (s Snapshot) caret() (int, Block, int) {
	s = s.orEmpty()
	focus := s.selection.Focus
	i := s.IndexOf(focus.Key)
	if i < 0 {
		return 0, s.blocks[0], 0
	}
	b := s.blocks[i]
	return i, b, clampInt(focus.Offset, 0, b.Len())
}

func (s Snapshot) replaceAt(i int, b Block, caretKey string, offset int) Snapshot {
	blocks := s.Blocks()
	blocks[i] = b
	return Snapshot{blocks: blocks, selection: Caret(caretKey, offset)}
}

// InsertText inserts text at the caret. Newlines split the block.
func InsertText(s Snapshot, text string) Snapshot {
	s = s.orEmpty()
	text = strings.ToValidUTF8(strings.ReplaceAll(text, "\r\n", "\n"), string(utf8.RuneError))
	lines := strings.Split(text, "\n")
	for n, line := range lines {
		if n > 0 {
			s = SplitBlock(s)
		}
		if line == "" {
			continue
		}
		i, b, offset := s.caret()
		b = b.insert(offset, line)
		s = s.replaceAt(i, b, b.key, offset+len([]rune(line)))
	}
	return s
}

// SplitBlock breaks the caret block in two at the caret. The new block gets a
// fresh key; it keeps the block type unless the caret was at the end of a
// header, in which case the new line is a plain paragraph.
func SplitBlock(s Snapshot) Snapshot {
	s = s.orEmpty()
	i, b, offset := s.caret()
	tailType := b.Type()
	if offset == b.Len() && b.Type() != Unstyled {
		tailType = Unstyled
	}
	head, tail := b.split(offset, NewKey(), tailType)

	blocks := make([]Block, 0, len(s.blocks)+1)
	blocks = append(blocks, s.blocks[:i]...)
	blocks = append(blocks, head, tail)
	blocks = append(blocks, s.blocks[i+1:]...)
	return Snapshot{blocks: blocks, selection: Caret(tail.key, 0)}
}

// Backspace deletes the grapheme before the caret. At the start of a styled
// block it first resets the block type; at the start of a plain block it
// merges the block into the previous one.
func Backspace(s Snapshot) Snapshot {
	s = s.orEmpty()
	i, b, offset := s.caret()
	if offset > 0 {
		prev := prevBoundary(b.text, offset)
		b = b.remove(Range{Start: prev, End: offset})
		return s.replaceAt(i, b, b.key, prev)
	}
	if b.Type() != Unstyled {
		return s.replaceAt(i, b.WithType(Unstyled), b.key, 0)
	}
	if i == 0 {
		return s.WithSelection(Caret(b.key, 0))
	}
	return joinBlocks(s, i-1)
}

// Delete deletes the grapheme after the caret, or joins the next block.
func Delete(s Snapshot) Snapshot {
	s = s.orEmpty()
	i, b, offset := s.caret()
	if offset < b.Len() {
		next := nextBoundary(b.text, offset)
		b = b.remove(Range{Start: offset, End: next})
		return s.replaceAt(i, b, b.key, offset)
	}
	if i == len(s.blocks)-1 {
		return s.WithSelection(Caret(b.key, offset))
	}
	return joinBlocks(s, i)
}

// joinBlocks merges block i+1 into block i and places the caret at the seam.
func joinBlocks(s Snapshot, i int) Snapshot {
	first := s.blocks[i]
	seam := first.Len()
	merged := first.join(s.blocks[i+1])

	blocks := make([]Block, 0, len(s.blocks)-1)
	blocks = append(blocks, s.blocks[:i]...)
	blocks = append(blocks, merged)
	blocks = append(blocks, s.blocks[i+2:]...)
	return Snapshot{blocks: blocks, selection: Caret(merged.key, seam)}
}

// MoveLeft moves the caret one grapheme left, wrapping to the previous block.
func MoveLeft(s Snapshot) Snapshot {
	s = s.orEmpty()
	i, b, offset := s.caret()
	switch {
	case offset > 0:
		return s.WithSelection(Caret(b.key, prevBoundary(b.text, offset)))
	case i > 0:
		prev := s.blocks[i-1]
		return s.WithSelection(Caret(prev.key, prev.Len()))
	}
	return s.WithSelection(Caret(b.key, 0))
}

// MoveRight moves the caret one grapheme right, wrapping to the next block.
func MoveRight(s Snapshot) Snapshot {
	s = s.orEmpty()
	i, b, offset := s.caret()
	switch {
	case offset < b.Len():
		return s.WithSelection(Caret(b.key, nextBoundary(b.text, offset)))
	case i < len(s.blocks)-1:
		return s.WithSelection(Caret(s.blocks[i+1].key, 0))
	}
	return s.WithSelection(Caret(b.key, offset))
}

// MoveUp moves the caret to the previous block, keeping the offset when possible.
func MoveUp(s Snapshot) Snapshot {
	s = s.orEmpty()
	i, b, offset := s.caret()
	if i == 0 {
		return s.WithSelection(Caret(b.key, 0))
	}
	prev := s.blocks[i-1]
	return s.WithSelection(Caret(prev.key, min(offset, prev.Len())))
}

// MoveDown moves the caret to the next block, keeping the offset when possible.
func MoveDown(s Snapshot) Snapshot {
	s = s.orEmpty()
	i, b, offset := s.caret()
	if i == len(s.blocks)-1 {
		return s.WithSelection(Caret(b.key, b.Len()))
	}
	next := s.blocks[i+1]
	return s.WithSelection(Caret(next.key, min(offset, next.Len())))
}

// MoveHome puts the caret at the start of its block.
func MoveHome(s Snapshot) Snapshot {
	_, b, _ := s.caret()
	return s.orEmpty().WithSelection(Caret(b.key, 0))
}

// MoveEnd puts the caret at the end of its block.
func MoveEnd(s Snapshot) Snapshot {
	_, b, _ := s.caret()
	return s.orEmpty().WithSelection(Caret(b.key, b.Len()))
}

// graphemeBoundaries lists the rune offsets at which grapheme clusters start,
// plus the final offset.
func graphemeBoundaries(text string) []int {
	bounds := []int{0}
	offset := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		offset += len(gr.Runes())
		bounds = append(bounds, offset)
	}
	return bounds
}

func prevBoundary(text string, offset int) int {
	prev := 0
	for _, b := range graphemeBoundaries(text) {
		if b >= offset {
			break
		}
		prev = b
	}
	return prev
}

func nextBoundary(text string, offset int) int {
	bounds := graphemeBoundaries(text)
	for _, b := range bounds {
		if b > offset {
			return b
		}
	}
	return bounds[len(bounds)-1]
}
