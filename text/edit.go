// Copyright © 2024 The ELPS authors

package text

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrOverlappingEdits is returned by ApplyEdits when two edits touch the same
// bytes.
var ErrOverlappingEdits = errors.New("overlapping edits")

// Edit replaces the bytes in Span with NewText.
type Edit struct {
	Span    Span
	NewText string
}

// Insert returns an edit that inserts s at pos.
func Insert(pos int, s string) Edit {
	return Edit{Span: Span{Start: pos, End: pos}, NewText: s}
}

// Delete returns an edit that removes span.
func Delete(span Span) Edit {
	return Edit{Span: span}
}

// ApplyEdits applies edits to src. Edits may be given in any order; two
// insertions at the same position are applied in the order given.
func ApplyEdits(src string, edits []Edit) (string, error) {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Span.Start < sorted[j].Span.Start
	})
	var b strings.Builder
	b.Grow(len(src))
	last := 0
	for i, e := range sorted {
		if e.Span.Start < last || e.Span.End < e.Span.Start || e.Span.End > len(src) {
			if i > 0 && e.Span.Start < last {
				return "", fmt.Errorf("%w: %s and %s", ErrOverlappingEdits, sorted[i-1].Span, e.Span)
			}
			return "", fmt.Errorf("edit %s out of range for text of length %d", e.Span, len(src))
		}
		b.WriteString(src[last:e.Span.Start])
		b.WriteString(e.NewText)
		last = e.Span.End
	}
	b.WriteString(src[last:])
	return b.String(), nil
}
