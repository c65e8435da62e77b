// Copyright © 2024 The ELPS authors

package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpan(t *testing.T) {
	s := FromBounds(2, 6)
	assert.Equal(t, 4, s.Len())
	assert.False(t, s.IsEmpty())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(6))
	assert.True(t, s.OverlapsWith(FromBounds(5, 9)))
	assert.False(t, s.OverlapsWith(FromBounds(6, 9)))
	assert.True(t, s.IntersectsWith(FromBounds(6, 9)))
	assert.Equal(t, FromBounds(0, 6), s.Cover(NewSpan(0, 1)))
	assert.Equal(t, "[2..6)", s.String())
}

func TestLines(t *testing.T) {
	ls := NewLines("ab\r\ncd\nef")
	require.Equal(t, 3, ls.Len())
	assert.Equal(t, "ab", ls.Text(ls.At(0)))
	assert.Equal(t, "\r\n", ls.BreakText(ls.At(0)))
	assert.Equal(t, "\n", ls.BreakText(ls.At(1)))
	assert.Equal(t, "", ls.BreakText(ls.At(2)))
	assert.Equal(t, FromBounds(4, 7), ls.At(1).SpanIncludingBreak())

	line, col := ls.Position(5)
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)
	assert.Equal(t, 2, ls.LineAt(100).Number)
	assert.True(t, ls.IsSingleLine(FromBounds(4, 7)))
	assert.False(t, ls.IsSingleLine(FromBounds(1, 5)))
}

func TestLines_TrailingBreak(t *testing.T) {
	ls := NewLines("a\n")
	require.Equal(t, 2, ls.Len())
	assert.Equal(t, 1, ls.LineAt(2).Number)
	assert.Equal(t, "  ", NewLines("  x").Indentation(NewLines("  x").At(0)))
}

func TestApplyEdits(t *testing.T) {
	out, err := ApplyEdits("hello world", []Edit{
		{Span: FromBounds(6, 11), NewText: "there"},
		Insert(0, ">> "),
		Delete(FromBounds(5, 6)),
	})
	require.NoError(t, err)
	assert.Equal(t, ">> hellothere", out)

	_, err = ApplyEdits("hello", []Edit{
		{Span: FromBounds(0, 3), NewText: "x"},
		{Span: FromBounds(2, 4), NewText: "y"},
	})
	assert.ErrorIs(t, err, ErrOverlappingEdits)

	_, err = ApplyEdits("hi", []Edit{{Span: FromBounds(1, 5)}})
	assert.Error(t, err)
}
