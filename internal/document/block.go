package document

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// BlockType tags a block for structural rendering.
type BlockType string

// Block types known to the editor. Any other non-empty tag is preserved as-is.
const (
	Unstyled  BlockType = "unstyled"
	HeaderOne BlockType = "header-one"
)

// NewKey generates a fresh block key.
func NewKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Block is one line of the document. It is immutable: every With* method
// returns a modified copy.
type Block struct {
	key   string
	typ   BlockType
	text  string
	spans []StyleSpan
}

// NewBlock builds a block. An empty key is replaced by NewKey, an empty type
// by Unstyled; invalid UTF-8 becomes U+FFFD; spans are clamped to the text and
// normalized.
func NewBlock(key string, typ BlockType, text string, spans ...StyleSpan) Block {
	text = strings.ToValidUTF8(text, string(utf8.RuneError))
	if key == "" {
		key = NewKey()
	}
	if typ == "" {
		typ = Unstyled
	}
	n := utf8.RuneCountInString(text)
	clamped := make([]StyleSpan, 0, len(spans))
	for _, s := range spans {
		r := s.Range().clamp(n)
		clamped = append(clamped, StyleSpan{Style: s.Style, Start: r.Start, End: r.End})
	}
	return Block{key: key, typ: typ, text: text, spans: normalizeSpans(clamped)}
}

// Key returns the stable identity of the block.
func (b Block) Key() string { return b.key }

// Type returns the block type tag.
func (b Block) Type() BlockType {
	if b.typ == "" {
		return Unstyled
	}
	return b.typ
}

// Text returns the plain text content.
func (b Block) Text() string { return b.text }

// Len returns the text length in runes.
func (b Block) Len() int { return utf8.RuneCountInString(b.text) }

// Spans returns a copy of the normalized style spans.
func (b Block) Spans() []StyleSpan {
	if len(b.spans) == 0 {
		return nil
	}
	out := make([]StyleSpan, len(b.spans))
	copy(out, b.spans)
	return out
}

// StylesAt returns the styles applied to the rune at offset.
func (b Block) StylesAt(offset int) []Style {
	return stylesAt(b.spans, offset)
}

// HasStyle reports whether every rune in r carries style.
func (b Block) HasStyle(style Style, r Range) bool {
	return coversStyle(b.spans, style, r.clamp(b.Len()))
}

// WithType returns a copy with the type replaced.
func (b Block) WithType(typ BlockType) Block {
	if typ == "" {
		typ = Unstyled
	}
	b.typ = typ
	b.spans = b.Spans()
	return b
}

// WithStyle returns a copy with style applied over r.
func (b Block) WithStyle(style Style, r Range) Block {
	b.spans = addStyle(b.spans, style, r.clamp(b.Len()))
	return b
}

// WithoutStyle returns a copy with style removed over r.
func (b Block) WithoutStyle(style Style, r Range) Block {
	b.spans = removeStyle(b.spans, style, r.clamp(b.Len()))
	return b
}

// Equal reports structural equality.
func (b Block) Equal(o Block) bool {
	if b.key != o.key || b.Type() != o.Type() || b.text != o.text || len(b.spans) != len(o.spans) {
		return false
	}
	for i := range b.spans {
		if b.spans[i] != o.spans[i] {
			return false
		}
	}
	return true
}

// insert returns a copy with text inserted at offset; new runes inherit the
// styles of the rune before offset.
func (b Block) insert(offset int, text string) Block {
	text = strings.ToValidUTF8(text, string(utf8.RuneError))
	runes := []rune(b.text)
	offset = clampInt(offset, 0, len(runes))
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return b
	}
	var inherit []Style
	if offset > 0 {
		inherit = stylesAt(b.spans, offset-1)
	}
	b.text = string(runes[:offset]) + text + string(runes[offset:])
	b.spans = insertSpans(b.spans, offset, n, inherit)
	return b
}

// remove returns a copy with the runes in r deleted.
func (b Block) remove(r Range) Block {
	runes := []rune(b.text)
	r = r.clamp(len(runes))
	if r.Empty() {
		return b
	}
	b.text = string(runes[:r.Start]) + string(runes[r.End:])
	b.spans = deleteSpans(b.spans, r)
	return b
}

// split cuts the block at offset. The head keeps the key and type.
func (b Block) split(offset int, tailKey string, tailType BlockType) (Block, Block) {
	runes := []rune(b.text)
	offset = clampInt(offset, 0, len(runes))
	head := Block{
		key:   b.key,
		typ:   b.Type(),
		text:  string(runes[:offset]),
		spans: sliceSpans(b.spans, Range{Start: 0, End: offset}),
	}
	tail := Block{
		key:   tailKey,
		typ:   tailType,
		text:  string(runes[offset:]),
		spans: sliceSpans(b.spans, Range{Start: offset, End: len(runes)}),
	}
	return head, tail
}

// join appends next to b, keeping b's key and type.
func (b Block) join(next Block) Block {
	n := b.Len()
	spans := make([]StyleSpan, 0, len(b.spans)+len(next.spans))
	spans = append(spans, b.spans...)
	spans = append(spans, shiftSpans(next.spans, n)...)
	b.text += next.text
	b.spans = normalizeSpans(spans)
	return b
}
