// Package format applies formatting transformations to document snapshots.
// Every function is snapshot in, snapshot out; on error the input snapshot is
// returned untouched.
package format

import (
	"errors"
	"fmt"

	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/trigger"
)

// ErrNotFound is returned when the target block key is not in the snapshot.
var ErrNotFound = errors.New("block not found")

// ErrUnsupported is returned by Apply for a decision that carries no operation.
var ErrUnsupported = errors.New("unsupported formatting operation")

func lookup(s document.Snapshot, key string) (document.Block, error) {
	b, ok := s.Block(key)
	if !ok {
		return document.Block{}, fmt.Errorf("block %q: %w", key, ErrNotFound)
	}
	return b, nil
}

func replace(s document.Snapshot, b document.Block) (document.Snapshot, error) {
	next, ok := s.WithBlock(b)
	if !ok {
		return s, fmt.Errorf("block %q: %w", b.Key(), ErrNotFound)
	}
	return next, nil
}

// ToggleBlockType sets the block to typ, or back to unstyled if it already is typ.
func ToggleBlockType(s document.Snapshot, key string, typ document.BlockType) (document.Snapshot, error) {
	b, err := lookup(s, key)
	if err != nil {
		return s, err
	}
	if b.Type() == typ {
		return replace(s, b.WithType(document.Unstyled))
	}
	return replace(s, b.WithType(typ))
}

// ApplyInlineStyle adds style over r. Reapplying is a no-op.
func ApplyInlineStyle(s document.Snapshot, key string, r document.Range, style document.Style) (document.Snapshot, error) {
	b, err := lookup(s, key)
	if err != nil {
		return s, err
	}
	return replace(s, b.WithStyle(style, r))
}

// ToggleInlineStyle removes style from r when every rune in r already has it,
// and applies it otherwise.
func ToggleInlineStyle(s document.Snapshot, key string, r document.Range, style document.Style) (document.Snapshot, error) {
	b, err := lookup(s, key)
	if err != nil {
		return s, err
	}
	if b.HasStyle(style, r) {
		return replace(s, b.WithoutStyle(style, r))
	}
	return replace(s, b.WithStyle(style, r))
}

// Apply performs the transformation named by a fired trigger decision.
func Apply(s document.Snapshot, d trigger.Decision) (document.Snapshot, error) {
	switch d.Rule.Op {
	case trigger.OpToggleBlockType:
		return ToggleBlockType(s, d.BlockKey, d.Rule.BlockType)
	case trigger.OpToggleInlineStyle:
		return ToggleInlineStyle(s, d.BlockKey, d.Range, d.Rule.Style)
	case trigger.OpApplyInlineStyle:
		return ApplyInlineStyle(s, d.BlockKey, d.Range, d.Rule.Style)
	default:
		return s, fmt.Errorf("%v: %w", d.Rule.Op, ErrUnsupported)
	}
}
