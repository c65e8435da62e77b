// Copyright © 2024 The ELPS authors

// Package trivia classifies the whitespace, comments and preprocessor
// directives inside a source range.
//
// Rewrites consult a Classification before discarding or moving trivia. A
// range containing a directive must never be rewritten; a range containing
// comments may be rewritten only when the comments are relocated.
package trivia

import (
	"strings"

	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/text"
)

// Classification summarizes the trivia of a range. The zero value is not
// meaningful; an empty range classifies as WhitespaceOnly.
type Classification struct {
	WhitespaceOnly    bool
	ContainsComment   bool
	ContainsDirective bool
}

// Veto reports whether a rewrite touching the range must abstain.
func (c Classification) Veto() bool { return c.ContainsDirective }

// CanDiscard reports whether the range may be dropped without losing
// anything but whitespace.
func (c Classification) CanDiscard() bool { return c.WhitespaceOnly }

func (c Classification) String() string {
	switch {
	case c.ContainsDirective:
		return "directive"
	case c.ContainsComment:
		return "comment"
	case c.WhitespaceOnly:
		return "whitespace"
	}
	return "other"
}

type classifier struct {
	c Classification
}

func newClassifier() *classifier {
	return &classifier{c: Classification{WhitespaceOnly: true}}
}

func (cl *classifier) add(t syntax.Trivia) {
	switch {
	case t.Kind.IsWhitespace():
	case t.Kind.IsDirective():
		cl.c.WhitespaceOnly = false
		cl.c.ContainsDirective = true
	case t.Kind.IsComment():
		cl.c.WhitespaceOnly = false
		cl.c.ContainsComment = true
	default:
		cl.c.WhitespaceOnly = false
	}
}

// ClassifyTrivia classifies a list of trivia pieces.
func ClassifyTrivia(ts ...[]syntax.Trivia) Classification {
	cl := newClassifier()
	for _, list := range ts {
		for _, t := range list {
			cl.add(t)
		}
	}
	return cl.c
}

// Classify classifies the trivia inside n, excluding the leading trivia of
// its first token and the trailing trivia of its last token.
func Classify(n *syntax.Node) Classification {
	if n == nil {
		return ClassifyTrivia()
	}
	return ClassifySpan(n, n.Span())
}

// ClassifyFull classifies every trivia piece of n, including its outer
// trivia.
func ClassifyFull(n *syntax.Node) Classification {
	cl := newClassifier()
	n.EachTrivia(func(t syntax.Trivia, _ text.Span) { cl.add(t) })
	return cl.c
}

// ClassifyBetween classifies the trivia between the end of token first and
// the start of token last. Both tokens must belong to the same tree.
func ClassifyBetween(first, last *syntax.Node) Classification {
	if first == nil || last == nil {
		return ClassifyTrivia()
	}
	start, end := first.Span().End, last.Span().Start
	if end <= start {
		return ClassifyTrivia()
	}
	return ClassifySpan(first.Root(), text.FromBounds(start, end))
}

// ClassifySpan classifies the trivia pieces under root that overlap span.
func ClassifySpan(root *syntax.Node, span text.Span) Classification {
	cl := newClassifier()
	if span.IsEmpty() {
		return cl.c
	}
	root.Walk(func(n *syntax.Node) bool {
		if !n.FullSpan().OverlapsWith(span) {
			return false
		}
		if n.IsToken() {
			n.EachTrivia(func(t syntax.Trivia, sp text.Span) {
				if sp.OverlapsWith(span) {
					cl.add(t)
				}
			})
		}
		return true
	})
	return cl.c
}

// ClassifyText classifies raw trivia text. Text that does not lex as
// trivia is never whitespace only, and any of its lines starting with # is
// still treated as a directive.
func ClassifyText(s string) Classification {
	ts, err := syntax.ParseTrivia(s)
	if err == nil {
		return ClassifyTrivia(ts)
	}
	c := Classification{}
	for _, line := range text.NewLines(s).All() {
		l := strings.TrimLeft(s[line.Span.Start:line.Span.End], " \t")
		switch {
		case strings.HasPrefix(l, "#"):
			c.ContainsDirective = true
		case strings.Contains(l, "//") || strings.Contains(l, "/*"):
			c.ContainsComment = true
		}
	}
	return c
}
