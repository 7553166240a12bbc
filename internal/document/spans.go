package document

import "sort"

// Style is a named inline style, e.g. BOLD.
type Style string

// Inline styles produced by the formatting triggers.
const (
	Bold      Style = "BOLD"
	RedColor  Style = "RED_COLOR"
	Underline Style = "UNDERLINE"
)

// Range is a half-open rune offset range [Start, End) within one block.
type Range struct {
	Start int
	End   int
}

// Len returns the number of runes covered.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Empty reports whether the range covers nothing.
func (r Range) Empty() bool { return r.Len() == 0 }

// clamp restricts r to [0, n].
func (r Range) clamp(n int) Range {
	r.Start = clampInt(r.Start, 0, n)
	r.End = clampInt(r.End, 0, n)
	if r.End < r.Start {
		r.End = r.Start
	}
	return r
}

// StyleSpan assigns Style to the runes in [Start, End).
type StyleSpan struct {
	Style Style
	Start int
	End   int
}

// Range returns the offsets covered by the span.
func (s StyleSpan) Range() Range { return Range{Start: s.Start, End: s.End} }

// normalizeSpans merges overlapping and adjacent spans of the same style,
// drops empty ones and sorts by (Start, Style). The input is not modified.
func normalizeSpans(spans []StyleSpan) []StyleSpan {
	if len(spans) == 0 {
		return nil
	}
	sorted := make([]StyleSpan, 0, len(spans))
	for _, s := range spans {
		if s.End > s.Start && s.Style != "" {
			sorted = append(sorted, s)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Style != sorted[j].Style {
			return sorted[i].Style < sorted[j].Style
		}
		return sorted[i].Start < sorted[j].Start
	})

	merged := make([]StyleSpan, 0, len(sorted))
	for _, s := range sorted {
		if n := len(merged); n > 0 && merged[n-1].Style == s.Style && s.Start <= merged[n-1].End {
			if s.End > merged[n-1].End {
				merged[n-1].End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Start != merged[j].Start {
			return merged[i].Start < merged[j].Start
		}
		return merged[i].Style < merged[j].Style
	})
	if len(merged) == 0 {
		return nil
	}
	return merged
}

// addStyle returns spans with style applied over r.
func addStyle(spans []StyleSpan, style Style, r Range) []StyleSpan {
	if r.Empty() {
		return normalizeSpans(spans)
	}
	out := make([]StyleSpan, 0, len(spans)+1)
	out = append(out, spans...)
	out = append(out, StyleSpan{Style: style, Start: r.Start, End: r.End})
	return normalizeSpans(out)
}

// removeStyle returns spans with style cleared over r.
func removeStyle(spans []StyleSpan, style Style, r Range) []StyleSpan {
	out := make([]StyleSpan, 0, len(spans)+1)
	for _, s := range spans {
		if s.Style != style || s.End <= r.Start || s.Start >= r.End {
			out = append(out, s)
			continue
		}
		if s.Start < r.Start {
			out = append(out, StyleSpan{Style: style, Start: s.Start, End: r.Start})
		}
		if s.End > r.End {
			out = append(out, StyleSpan{Style: style, Start: r.End, End: s.End})
		}
	}
	return normalizeSpans(out)
}

// coversStyle reports whether every rune in r carries style. Spans must be normalized.
func coversStyle(spans []StyleSpan, style Style, r Range) bool {
	if r.Empty() {
		return false
	}
	for _, s := range spans {
		if s.Style == style && s.Start <= r.Start && s.End >= r.End {
			return true
		}
	}
	return false
}

// stylesAt returns the sorted set of styles applied to the rune at offset.
func stylesAt(spans []StyleSpan, offset int) []Style {
	var styles []Style
	for _, s := range spans {
		if offset >= s.Start && offset < s.End {
			styles = append(styles, s.Style)
		}
	}
	sort.Slice(styles, func(i, j int) bool { return styles[i] < styles[j] })
	return styles
}

// insertSpans opens a gap of n runes at offset and styles the gap with inherit.
func insertSpans(spans []StyleSpan, offset, n int, inherit []Style) []StyleSpan {
	out := make([]StyleSpan, 0, len(spans)+len(inherit)+1)
	for _, s := range spans {
		switch {
		case s.Start >= offset:
			out = append(out, StyleSpan{Style: s.Style, Start: s.Start + n, End: s.End + n})
		case s.End > offset:
			out = append(out,
				StyleSpan{Style: s.Style, Start: s.Start, End: offset},
				StyleSpan{Style: s.Style, Start: offset + n, End: s.End + n})
		default:
			out = append(out, s)
		}
	}
	for _, style := range inherit {
		out = append(out, StyleSpan{Style: style, Start: offset, End: offset + n})
	}
	return normalizeSpans(out)
}

// deleteSpans collapses r out of the offset space.
func deleteSpans(spans []StyleSpan, r Range) []StyleSpan {
	n := r.Len()
	mapPos := func(p int) int {
		switch {
		case p <= r.Start:
			return p
		case p < r.End:
			return r.Start
		default:
			return p - n
		}
	}
	out := make([]StyleSpan, 0, len(spans))
	for _, s := range spans {
		out = append(out, StyleSpan{Style: s.Style, Start: mapPos(s.Start), End: mapPos(s.End)})
	}
	return normalizeSpans(out)
}

// sliceSpans returns the spans inside r, rebased to r.Start.
func sliceSpans(spans []StyleSpan, r Range) []StyleSpan {
	out := make([]StyleSpan, 0, len(spans))
	for _, s := range spans {
		start, end := max(s.Start, r.Start), min(s.End, r.End)
		if end > start {
			out = append(out, StyleSpan{Style: s.Style, Start: start - r.Start, End: end - r.Start})
		}
	}
	return normalizeSpans(out)
}

// shiftSpans moves every span right by delta.
func shiftSpans(spans []StyleSpan, delta int) []StyleSpan {
	out := make([]StyleSpan, len(spans))
	for i, s := range spans {
		out[i] = StyleSpan{Style: s.Style, Start: s.Start + delta, End: s.End + delta}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
