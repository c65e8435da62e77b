// Copyright © 2024 The ELPS authors

// Package selection scopes refactorings to the contiguous run of sibling
// statements or source lines that a user selected.
package selection

import (
	"errors"
	"fmt"

	"github.com/luthersystems/fixkit/text"
)

var (
	// ErrEmpty is returned when the span selects no element.
	ErrEmpty = errors.New("selection: span selects nothing")
	// ErrCount is returned when the number of selected elements is outside
	// the requested bounds.
	ErrCount = errors.New("selection: element count out of bounds")
)

// Unbounded is the maximum count that places no upper limit.
const Unbounded = 0

// Range is a contiguous run of elements First..Last (inclusive) selected by
// Span.
type Range struct {
	First int
	Last  int
	Span  text.Span
}

// Len returns the number of selected elements.
func (r Range) Len() int { return r.Last - r.First + 1 }

func (r Range) String() string {
	return fmt.Sprintf("[%d..%d] of %s", r.First, r.Last, r.Span)
}

// Select returns the elements of items whose spans intersect span. An
// element partially inside span is included. An empty span is a caret and
// selects the one element containing it; a caret between elements or at
// the end of the last one selects nothing.
//
// The selection must contain at least min and, unless max is Unbounded, at
// most max elements. A min below 1 is treated as 1.
func Select[T any](items []T, spanOf func(T) text.Span, span text.Span, min, max int) (Range, error) {
	if min < 1 {
		min = 1
	}
	first, last := -1, -1
	if span.IsEmpty() {
		first = caret(items, spanOf, span.Start)
		last = first
	} else {
		for i, it := range items {
			if !spanOf(it).OverlapsWith(span) {
				if first >= 0 {
					break
				}
				continue
			}
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return Range{}, ErrEmpty
	}
	r := Range{First: first, Last: last, Span: span}
	if n := r.Len(); n < min || (max != Unbounded && n > max) {
		return Range{}, fmt.Errorf("%w: %d selected, want %d..%s", ErrCount, n, min, bound(max))
	}
	return r, nil
}

func caret[T any](items []T, spanOf func(T) text.Span, pos int) int {
	for i, it := range items {
		if spanOf(it).Contains(pos) {
			return i
		}
	}
	return -1
}

func bound(max int) string {
	if max == Unbounded {
		return "∞"
	}
	return fmt.Sprint(max)
}
