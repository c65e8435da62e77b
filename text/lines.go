// Copyright © 2024 The ELPS authors

package text

import (
	"sort"
	"strings"
)

// Line is one line of source text.
type Line struct {
	Number int  // 0-based line number
	Span   Span // excludes the line break
	Break  Span // the line break itself; empty on the last line
}

// SpanIncludingBreak returns the line's span including its line break.
func (l Line) SpanIncludingBreak() Span {
	if l.Break.IsEmpty() {
		return l.Span
	}
	return Span{Start: l.Span.Start, End: l.Break.End}
}

// Lines is an immutable line table for a piece of source text. Recognized
// line breaks are "\r\n", "\n" and a lone "\r".
type Lines struct {
	src   string
	lines []Line
}

// NewLines splits src into lines.
func NewLines(src string) *Lines {
	ls := &Lines{src: src}
	start := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			ls.add(start, i, i+1)
			start = i + 1
		case '\r':
			end := i + 1
			if end < len(src) && src[end] == '\n' {
				end++
			}
			ls.add(start, i, end)
			start = end
			i = end - 1
		}
	}
	ls.lines = append(ls.lines, Line{
		Number: len(ls.lines),
		Span:   Span{Start: start, End: len(src)},
		Break:  Span{Start: len(src), End: len(src)},
	})
	return ls
}

func (ls *Lines) add(start, breakStart, breakEnd int) {
	ls.lines = append(ls.lines, Line{
		Number: len(ls.lines),
		Span:   Span{Start: start, End: breakStart},
		Break:  Span{Start: breakStart, End: breakEnd},
	})
}

// Len returns the number of lines. Text that ends with a line break has a
// final empty line.
func (ls *Lines) Len() int { return len(ls.lines) }

// At returns line i.
func (ls *Lines) At(i int) Line { return ls.lines[i] }

// All returns the lines in order. The slice must not be modified.
func (ls *Lines) All() []Line { return ls.lines }

// Text returns the text of line l without its break.
func (ls *Lines) Text(l Line) string {
	return ls.src[l.Span.Start:l.Span.End]
}

// BreakText returns the line break of line l ("" on the last line).
func (ls *Lines) BreakText(l Line) string {
	return ls.src[l.Break.Start:l.Break.End]
}

// LineAt returns the line containing pos. Positions past the end of the
// text map to the last line.
func (ls *Lines) LineAt(pos int) Line {
	i := sort.Search(len(ls.lines), func(i int) bool {
		return ls.lines[i].Break.End > pos
	})
	if i >= len(ls.lines) {
		i = len(ls.lines) - 1
	}
	return ls.lines[i]
}

// Position returns the 1-based line and column of pos.
func (ls *Lines) Position(pos int) (line, col int) {
	l := ls.LineAt(pos)
	return l.Number + 1, pos - l.Span.Start + 1
}

// IsSingleLine reports whether span s does not cross a line break.
func (ls *Lines) IsSingleLine(s Span) bool {
	end := s.End
	if end > s.Start {
		end--
	}
	return ls.LineAt(s.Start).Number == ls.LineAt(end).Number
}

// Indentation returns the leading whitespace of line l.
func (ls *Lines) Indentation(l Line) string {
	t := ls.Text(l)
	return t[:len(t)-len(strings.TrimLeft(t, " \t"))]
}
