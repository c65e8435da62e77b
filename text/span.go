// Copyright © 2024 The ELPS authors

// Package text provides the offset-level vocabulary shared by every other
// package: half-open spans, a line table over source text, and text edits.
package text

import "fmt"

// Span is a half-open range [Start, End) of byte offsets into source text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewSpan returns the span starting at start with the given length.
func NewSpan(start, length int) Span {
	return Span{Start: start, End: start + length}
}

// FromBounds returns the span [start, end).
func FromBounds(start, end int) Span {
	return Span{Start: start, End: end}
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int { return s.End - s.Start }

// IsEmpty reports whether s covers no bytes (a caret position).
func (s Span) IsEmpty() bool { return s.End <= s.Start }

// Contains reports whether pos lies inside s.
func (s Span) Contains(pos int) bool {
	return s.Start <= pos && pos < s.End
}

// ContainsSpan reports whether o lies entirely inside s.
func (s Span) ContainsSpan(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// OverlapsWith reports whether s and o share at least one byte.
func (s Span) OverlapsWith(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// IntersectsWith reports whether s and o overlap or touch.
func (s Span) IntersectsWith(o Span) bool {
	return o.Start <= s.End && s.Start <= o.End
}

// Cover returns the smallest span containing both s and o.
func (s Span) Cover(o Span) Span {
	out := s
	if o.Start < out.Start {
		out.Start = o.Start
	}
	if o.End > out.End {
		out.End = o.End
	}
	return out
}

// String returns the span in [start..end) form.
func (s Span) String() string {
	return fmt.Sprintf("[%d..%d)", s.Start, s.End)
}
