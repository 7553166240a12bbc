package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/tidwall/gjson"
)

// ErrDecode is returned for stored values that are not a raw document.
var ErrDecode = errors.New("cannot decode stored document")

// The raw form mirrors Draft.js convertToRaw output so documents can be moved
// between tidemark and browser editors. Field order here is the wire order.
type rawDocument struct {
	Blocks    []rawBlock          `json:"blocks"`
	EntityMap map[string]struct{} `json:"entityMap"`
}

type rawBlock struct {
	Key               string                 `json:"key"`
	Text              string                 `json:"text"`
	Type              string                 `json:"type"`
	Depth             int                    `json:"depth"`
	InlineStyleRanges []rawStyleRange        `json:"inlineStyleRanges"`
	EntityRanges      []struct{}             `json:"entityRanges"`
	Data              map[string]interface{} `json:"data"`
}

type rawStyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

// Marshal encodes the content of s (not its selection) canonically: blocks in
// document order, style ranges ordered by offset then style name.
func Marshal(s document.Snapshot) ([]byte, error) {
	doc := rawDocument{
		Blocks:    make([]rawBlock, 0, s.Len()),
		EntityMap: map[string]struct{}{},
	}
	for _, b := range s.Blocks() {
		rb := rawBlock{
			Key:               b.Key(),
			Text:              b.Text(),
			Type:              string(b.Type()),
			InlineStyleRanges: make([]rawStyleRange, 0, len(b.Spans())),
			EntityRanges:      []struct{}{},
			Data:              map[string]interface{}{},
		}
		for _, span := range b.Spans() {
			rb.InlineStyleRanges = append(rb.InlineStyleRanges, rawStyleRange{
				Offset: span.Start,
				Length: span.End - span.Start,
				Style:  string(span.Style),
			})
		}
		doc.Blocks = append(doc.Blocks, rb)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a raw document. It is lenient about what it accepts:
// unknown fields are ignored, a missing type means unstyled and a missing or
// duplicate key is replaced by a fresh one. The caret is placed at the start
// of the first block.
func Unmarshal(data []byte) (document.Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return document.Empty(), fmt.Errorf("invalid JSON: %w", ErrDecode)
	}
	blocksField := gjson.GetBytes(data, "blocks")
	if !blocksField.IsArray() {
		return document.Empty(), fmt.Errorf("missing blocks array: %w", ErrDecode)
	}

	var blocks []document.Block
	seen := make(map[string]bool)
	blocksField.ForEach(func(_, rb gjson.Result) bool {
		key := rb.Get("key").String()
		if key == "" || seen[key] {
			if key != "" {
				logger.Warnf("Persist: duplicate block key %q in stored document, assigning a new one", key)
			}
			key = document.NewKey()
		}
		seen[key] = true

		var spans []document.StyleSpan
		rb.Get("inlineStyleRanges").ForEach(func(_, r gjson.Result) bool {
			offset, length := int(r.Get("offset").Int()), int(r.Get("length").Int())
			style := r.Get("style").String()
			if length > 0 && style != "" {
				spans = append(spans, document.StyleSpan{
					Style: document.Style(style),
					Start: offset,
					End:   offset + length,
				})
			}
			return true
		})

		blocks = append(blocks, document.NewBlock(
			key,
			document.BlockType(rb.Get("type").String()),
			rb.Get("text").String(),
			spans...,
		))
		return true
	})

	if len(blocks) == 0 {
		return document.Empty(), nil
	}
	return document.New(blocks, document.Caret(blocks[0].Key(), 0)), nil
}
