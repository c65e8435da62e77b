// Copyright © 2024 The ELPS authors

package refactor

import (
	"strings"

	"github.com/luthersystems/fixkit/rewrite"
	"github.com/luthersystems/fixkit/selection"
	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/text"
)

// DefaultCondition is the symbol tested by wrap-in-condition when the
// request names none.
const DefaultCondition = "DEBUG"

// WrapInRegion surrounds the selected lines with #region and #endregion.
var WrapInRegion = &Refactoring{
	Name:  "wrap-in-region",
	Title: "Wrap in #region",
	Doc:   "Wrap the selected lines in #region and #endregion.\n\nThe directives take the indentation of the first selected line. A name given with --symbol follows #region.",
	apply: func(req *Request) (*Result, error) {
		open := "#region"
		if req.Name != "" {
			open += " " + req.Name
		}
		return wrapLines(req, open, "#endregion")
	},
}

// WrapInCondition surrounds the selected lines with #if and #endif.
var WrapInCondition = &Refactoring{
	Name:  "wrap-in-condition",
	Title: "Wrap in #if",
	Doc:   "Wrap the selected lines in #if and #endif.\n\nThe condition is the symbol given with --symbol, DEBUG by default.",
	apply: func(req *Request) (*Result, error) {
		cond := req.Name
		if cond == "" {
			cond = DefaultCondition
		}
		return wrapLines(req, "#if "+cond, "#endif")
	},
}

// wrapLines inserts the open directive before the selected lines and the
// close directive after them, each on a line of its own.
func wrapLines(req *Request, open, close string) (*Result, error) {
	src := req.Root.FullText()
	table := text.NewLines(src)
	sel, err := selection.SelectLines(table, req.Span, 1, selection.Unbounded)
	if err != nil {
		return nil, err
	}
	lines := sel.Selected()
	first, last := lines[0], lines[len(lines)-1]
	blank := true
	for _, l := range lines {
		if strings.TrimSpace(table.Text(l)) != "" {
			blank = false
			break
		}
	}
	if blank {
		return nil, ErrNotApplicable
	}
	end := last.SpanIncludingBreak().End
	if splitsText(req.Root, first.Span.Start) || splitsText(req.Root, end) {
		return nil, ErrNotApplicable
	}
	if err := rewrite.CheckSpan(req.Root, sel.FullSpan()); err != nil {
		return nil, err
	}

	indent := table.Indentation(first)
	newline := table.BreakText(first)
	if newline == "" {
		newline = "\n"
	}
	edits := []text.Edit{text.Insert(first.Span.Start, indent+open+newline)}
	if last.Break.IsEmpty() {
		edits = append(edits, text.Insert(end, newline+indent+close))
	} else {
		edits = append(edits, text.Insert(end, indent+close+newline))
	}
	return &Result{Edits: edits, source: src}, nil
}

// splitsText reports whether pos falls strictly inside a token or inside a
// trivia piece other than whitespace, where a directive line cannot start.
func splitsText(root *syntax.Node, pos int) bool {
	if tok := root.FindToken(pos); tok != nil {
		if s := tok.Span(); s.Start < pos && pos < s.End {
			return true
		}
	}
	split := false
	root.EachTrivia(func(t syntax.Trivia, span text.Span) {
		if span.Start < pos && pos < span.End && t.Kind != syntax.WhitespaceTrivia {
			split = true
		}
	})
	return split
}
