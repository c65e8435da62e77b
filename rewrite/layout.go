// Copyright © 2024 The ELPS authors

package rewrite

import (
	"github.com/luthersystems/fixkit/astutil"
	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/text"
)

// The builders in this file only move whitespace and line breaks between
// tokens. They never go through the formatter.

// TriviaChange sets the trivia of one token.
type TriviaChange struct {
	Token    *syntax.Node
	Leading  []syntax.Trivia
	Trailing []syntax.Trivia
}

// SetTrivia returns the root of the tree in which every token named by
// changes carries the given trivia. The tokens must share one tree.
func SetTrivia(changes ...TriviaChange) *syntax.Node {
	if len(changes) == 0 {
		return nil
	}
	return syntax.RewriteTokens(changes[0].Token, func(tok *syntax.Node) *syntax.Node {
		for _, c := range changes {
			if c.Token.SameNode(tok) {
				return tok.WithTokenTrivia(c.Leading, c.Trailing)
			}
		}
		return tok
	})
}

// AddEmptyLineAfter doubles the first line break in the trailing trivia of
// stmt.
func AddEmptyLineAfter(stmt *syntax.Node) (*syntax.Node, error) {
	last := stmt.LastToken()
	trail := last.TrailingTrivia()
	i := firstEndOfLine(trail)
	if i < 0 {
		return nil, ErrNoMatch
	}
	out := make([]syntax.Trivia, 0, len(trail)+1)
	out = append(out, trail[:i+1]...)
	out = append(out, syntax.EndOfLine(trail[i].Text))
	out = append(out, trail[i+1:]...)
	return SetTrivia(TriviaChange{Token: last, Leading: last.LeadingTrivia(), Trailing: out}), nil
}

// SeparateStatement moves stmt, which starts on the line its predecessor
// ends on, to a line of its own with the indentation of the predecessor.
func SeparateStatement(stmt *syntax.Node) (*syntax.Node, error) {
	first := stmt.FirstToken()
	prev := first.PreviousToken()
	if prev == nil {
		return nil, ErrNoMatch
	}
	between := append(append([]syntax.Trivia(nil), prev.TrailingTrivia()...), first.LeadingTrivia()...)
	for _, t := range between {
		switch {
		case t.Kind == syntax.EndOfLineTrivia:
			return nil, ErrNoMatch
		case t.Kind.IsDirective():
			return nil, ErrDirective
		}
	}
	start := statementStart(prev)
	if ps := astutil.PreviousStatement(stmt); ps != nil {
		start = ps.FirstToken()
	}
	indent, newline := LineOf(start)
	trail := trimWhitespace(prev.TrailingTrivia())
	trail = append(trail, syntax.EndOfLine(newline))
	var lead []syntax.Trivia
	if indent != "" {
		lead = append(lead, syntax.Whitespace(indent))
	}
	lead = append(lead, trimLeadingWhitespace(first.LeadingTrivia())...)
	return SetTrivia(
		TriviaChange{Token: prev, Leading: prev.LeadingTrivia(), Trailing: trail},
		TriviaChange{Token: first, Leading: lead, Trailing: first.TrailingTrivia()},
	), nil
}

// BracesOnSeparateLines puts the braces of an empty type declaration on
// lines of their own, indented like the declaration.
func BracesOnSeparateLines(decl *syntax.Node) (*syntax.Node, error) {
	lbrace, rbrace := decl.OpenBrace(), decl.CloseBrace()
	if lbrace == nil || rbrace == nil || len(decl.Members().Children()) != 0 {
		return nil, ErrNoMatch
	}
	prev := lbrace.PreviousToken()
	if prev == nil {
		return nil, ErrNoMatch
	}
	for _, ts := range [][]syntax.Trivia{prev.TrailingTrivia(), lbrace.LeadingTrivia(), lbrace.TrailingTrivia(), rbrace.LeadingTrivia()} {
		if !onlyWhitespace(ts, true) {
			return nil, ErrUnsupported
		}
	}
	indent, newline := LineOf(decl.FirstToken())
	var lead []syntax.Trivia
	if indent != "" {
		lead = append(lead, syntax.Whitespace(indent))
	}
	eol := []syntax.Trivia{syntax.EndOfLine(newline)}
	return SetTrivia(
		TriviaChange{Token: prev, Leading: prev.LeadingTrivia(), Trailing: eol},
		TriviaChange{Token: lbrace, Leading: lead, Trailing: eol},
		TriviaChange{Token: rbrace, Leading: lead, Trailing: rbrace.TrailingTrivia()},
	), nil
}

// statementStart returns the first token of the statement tok ends.
func statementStart(tok *syntax.Node) *syntax.Node {
	for n := tok.Parent(); n != nil; n = n.Parent() {
		if n.Kind().IsStatement() {
			return n.FirstToken()
		}
	}
	return tok
}

// OperatorAtLineEnd reports whether the operator of binary ends a line,
// with only whitespace around it and a single line break after it.
func OperatorAtLineEnd(binary *syntax.Node) bool {
	op := binary.OperatorTok()
	if op == nil {
		return false
	}
	left := binary.Left().LastToken()
	right := binary.Right().FirstToken()
	if left == nil || right == nil || !onlyWhitespace(left.TrailingTrivia(), false) ||
		!onlyWhitespace(op.LeadingTrivia(), false) || !onlyWhitespace(right.LeadingTrivia(), false) {
		return false
	}
	trail := op.TrailingTrivia()
	return firstEndOfLine(trail) >= 0 && onlyWhitespace(trail, true)
}

// OperatorToNextLine rewrites
//
//	a &&
//	    b
//
// as
//
//	a
//	    && b
//
// The operator must satisfy OperatorAtLineEnd.
func OperatorToNextLine(binary *syntax.Node) (*syntax.Node, error) {
	if !OperatorAtLineEnd(binary) {
		return nil, ErrNoMatch
	}
	op := binary.OperatorTok()
	left := binary.Left().LastToken()
	right := binary.Right().FirstToken()
	trail := op.TrailingTrivia()
	i := firstEndOfLine(trail)
	return SetTrivia(
		TriviaChange{Token: left, Leading: left.LeadingTrivia(), Trailing: trail[i:]},
		TriviaChange{Token: op, Leading: right.LeadingTrivia(), Trailing: []syntax.Trivia{syntax.Space()}},
		TriviaChange{Token: right, Leading: nil, Trailing: right.TrailingTrivia()},
	), nil
}

// ReplaceEndOfLine returns the root of the tree in which the line break
// trivia starting at pos is replaced by newline.
func ReplaceEndOfLine(root *syntax.Node, pos int, newline string) (*syntax.Node, error) {
	tok := root.FindToken(pos)
	if tok == nil {
		return nil, ErrNoMatch
	}
	lead, ok1 := replaceBreak(tok.LeadingTrivia(), tok.FullSpan().Start, pos, newline)
	trail, ok2 := replaceBreak(tok.TrailingTrivia(), tok.Span().End, pos, newline)
	if !ok1 && !ok2 {
		return nil, ErrNoMatch
	}
	return SetTrivia(TriviaChange{Token: tok, Leading: lead, Trailing: trail}), nil
}

func replaceBreak(ts []syntax.Trivia, start, pos int, newline string) ([]syntax.Trivia, bool) {
	out := append([]syntax.Trivia(nil), ts...)
	for i, t := range ts {
		span := text.NewSpan(start, len(t.Text))
		start = span.End
		if span.Start == pos && t.Kind == syntax.EndOfLineTrivia {
			out[i] = syntax.EndOfLine(newline)
			return out, true
		}
	}
	return out, false
}

func firstEndOfLine(ts []syntax.Trivia) int {
	for i, t := range ts {
		if t.Kind == syntax.EndOfLineTrivia {
			return i
		}
	}
	return -1
}

// onlyWhitespace reports whether ts holds only whitespace, and line
// breaks when breaks is set.
func onlyWhitespace(ts []syntax.Trivia, breaks bool) bool {
	for _, t := range ts {
		if t.Kind == syntax.WhitespaceTrivia || breaks && t.Kind == syntax.EndOfLineTrivia {
			continue
		}
		return false
	}
	return true
}

// trimWhitespace drops trailing whitespace and line breaks.
func trimWhitespace(ts []syntax.Trivia) []syntax.Trivia {
	n := len(ts)
	for n > 0 && ts[n-1].Kind.IsWhitespace() {
		n--
	}
	return append([]syntax.Trivia(nil), ts[:n]...)
}

func trimLeadingWhitespace(ts []syntax.Trivia) []syntax.Trivia {
	i := 0
	for i < len(ts) && ts[i].Kind == syntax.WhitespaceTrivia {
		i++
	}
	return append([]syntax.Trivia(nil), ts[i:]...)
}
