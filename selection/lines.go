// Copyright © 2024 The ELPS authors

package selection

import "github.com/luthersystems/fixkit/text"

// Lines is a selection of whole source lines.
type Lines struct {
	Range
	Table *text.Lines
}

// Selected returns the selected lines.
func (l Lines) Selected() []text.Line {
	return l.Table.All()[l.First : l.Last+1]
}

// FullSpan returns the span from the start of the first selected line to
// the end of the last one, including its line break.
func (l Lines) FullSpan() text.Span {
	all := l.Table.All()
	return all[l.First].Span.Cover(all[l.Last].SpanIncludingBreak())
}

// SelectLines selects the lines of table that span touches. A line is
// compared by its span including the line break, so a selection ending
// right after a line break does not select the next line.
func SelectLines(table *text.Lines, span text.Span, min, max int) (Lines, error) {
	r, err := Select(table.All(), text.Line.SpanIncludingBreak, span, min, max)
	if err != nil {
		return Lines{}, err
	}
	return Lines{Range: r, Table: table}, nil
}
