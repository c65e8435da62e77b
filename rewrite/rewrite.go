// Copyright © 2024 The ELPS authors

// Package rewrite builds replacement subtrees for matched shapes and splices
// them into the tree.
//
// Every splice goes through Replace, ReplaceStatements or Remove. They
// refuse to touch a region whose trivia holds a preprocessor directive,
// move the outer trivia of the replaced region onto the replacement, keep
// comments that the replacement would otherwise drop, and mark the
// replacement with syntax.FormatterAnnotation so that the formatter lays it
// out afterwards. Builders only care about structure.
package rewrite

import (
	"errors"
	"strings"

	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/text"
	"github.com/luthersystems/fixkit/trivia"
)

var (
	// ErrDirective is returned when the rewritten region contains a
	// preprocessor directive.
	ErrDirective = errors.New("rewrite: region contains a directive")

	// ErrNoMatch is returned when a node no longer has the shape a fix was
	// computed for.
	ErrNoMatch = errors.New("rewrite: node no longer matches")

	// ErrUnsupported is returned by builders for shapes they do not rewrite.
	ErrUnsupported = errors.New("rewrite: unsupported shape")
)

// Check returns ErrDirective if the trivia inside any of nodes contains a
// directive. The outer trivia of a node is not inspected: splices keep it.
func Check(nodes ...*syntax.Node) error {
	for _, n := range nodes {
		if n.ContainsDirectives() && trivia.Classify(n).Veto() {
			return ErrDirective
		}
	}
	return nil
}

// CheckSpan returns ErrDirective if a trivia piece of root overlapping span
// is a directive.
func CheckSpan(root *syntax.Node, span text.Span) error {
	if trivia.ClassifySpan(root, span).Veto() {
		return ErrDirective
	}
	return nil
}

// Annotate marks n for the formatter.
func Annotate(n *syntax.Node) *syntax.Node {
	return n.WithAnnotations(syntax.FormatterAnnotation)
}

// Find returns the node of root with the span and kind of n. It locates a
// node of an earlier version of the tree after edits that left its region
// alone.
func Find(root, n *syntax.Node) *syntax.Node {
	if n == nil {
		return nil
	}
	return root.FindNode(n.Span(), n.Kind())
}

// Replace returns the root of the tree in which old is replaced by repl.
func Replace(old, repl *syntax.Node) (*syntax.Node, error) {
	if err := Check(old); err != nil {
		return nil, err
	}
	lost := missing(comments([]*syntax.Node{old}), comments([]*syntax.Node{repl}))
	indent, newline := LineOf(old.FirstToken())
	repl = repl.WithTriviaFrom(old)
	repl = Relocate(repl, lost, indent, newline)
	return syntax.ReplaceNode(old, Annotate(repl)), nil
}

// ReplaceStatements replaces count consecutive elements of a statement or
// member List, starting at first, with repl. The first replacement takes the
// leading trivia of first and the last one the trailing trivia of the last
// replaced statement. Replacements without trivia between them are put on
// separate lines.
func ReplaceStatements(first *syntax.Node, count int, repl ...*syntax.Node) (*syntax.Node, error) {
	list := first.Parent()
	if list.Kind() != syntax.List || count < 1 || len(repl) == 0 {
		return nil, ErrUnsupported
	}
	all := list.Children()
	i := first.Index()
	if i+count > len(all) {
		return nil, ErrUnsupported
	}
	olds := all[i : i+count]
	last := olds[len(olds)-1]
	if err := CheckSpan(list, text.FromBounds(first.SpanStart(), last.Span().End)); err != nil {
		return nil, err
	}
	lost := missing(comments(olds), comments(repl))
	out := make([]*syntax.Node, len(repl))
	copy(out, repl)
	out[0] = out[0].WithLeadingTrivia(first.LeadingTrivia()...)
	n := len(out) - 1
	out[n] = out[n].WithTrailingTrivia(last.TrailingTrivia()...)
	indent, newline := LineOf(first.FirstToken())
	out[0] = Relocate(out[0], lost, indent, newline)
	// Replacements without trivia between them go on lines of their own.
	for j := 1; j < len(out); j++ {
		if !out[j-1].HasTrailingTrivia() && !out[j].HasLeadingTrivia() {
			out[j-1] = out[j-1].WithTrailingTrivia(syntax.EndOfLine(newline))
			if indent != "" {
				out[j] = out[j].WithLeadingTrivia(syntax.Whitespace(indent))
			}
		}
	}
	for j := range out {
		out[j] = Annotate(out[j])
	}
	return syntax.ReplaceRange(first, count, out...), nil
}

// Remove removes n from its parent. Comments in the trivia of n move to the
// token that follows it.
func Remove(n *syntax.Node) (*syntax.Node, error) {
	full := trivia.ClassifyFull(n)
	if full.Veto() {
		return nil, ErrDirective
	}
	if !full.ContainsComment {
		return syntax.RemoveNode(n), nil
	}
	var cs []syntax.Trivia
	n.EachTrivia(func(t syntax.Trivia, _ text.Span) {
		if t.Kind.IsComment() {
			cs = append(cs, t)
		}
	})
	next := n.LastToken().NextToken()
	if next == nil {
		return nil, ErrUnsupported
	}
	indent, newline := LineOf(next)
	moved := next.WithTokenTrivia(relocated(next.LeadingTrivia(), cs, indent, newline), next.TrailingTrivia())
	root := syntax.ReplaceNode(next, moved)
	return syntax.RemoveNode(Find(root, n)), nil
}

// Relocate returns n with comments appended to its leading trivia. A
// single-line comment is followed by a line break so that it cannot
// swallow code. indent is written after each such line break.
func Relocate(n *syntax.Node, comments []syntax.Trivia, indent, newline string) *syntax.Node {
	if len(comments) == 0 {
		return n
	}
	return n.WithLeadingTrivia(relocated(n.LeadingTrivia(), comments, indent, newline)...)
}

func relocated(lead, comments []syntax.Trivia, indent, newline string) []syntax.Trivia {
	out := append([]syntax.Trivia(nil), lead...)
	for _, c := range comments {
		out = append(out, c)
		if c.Kind == syntax.MultiLineCommentTrivia {
			out = append(out, syntax.Space())
			continue
		}
		out = append(out, syntax.EndOfLine(newline))
		if indent != "" {
			out = append(out, syntax.Whitespace(indent))
		}
	}
	return out
}

// LineOf returns the indentation of the line tok starts and the line break
// used around it. A token in the middle of a line has no indentation.
func LineOf(tok *syntax.Node) (indent, newline string) {
	lead := tok.LeadingTrivia()
	if i := lastEndOfLine(lead); i >= 0 {
		return whitespace(lead[i+1:]), lead[i].Text
	}
	prev := tok.PreviousToken()
	if prev == nil {
		return whitespace(lead), "\n"
	}
	trail := prev.TrailingTrivia()
	if i := lastEndOfLine(trail); i >= 0 {
		return whitespace(lead), trail[i].Text
	}
	return "", "\n"
}

func lastEndOfLine(ts []syntax.Trivia) int {
	for i := len(ts) - 1; i >= 0; i-- {
		if ts[i].Kind == syntax.EndOfLineTrivia {
			return i
		}
	}
	return -1
}

func whitespace(ts []syntax.Trivia) string {
	var sb strings.Builder
	for _, t := range ts {
		if t.Kind != syntax.WhitespaceTrivia {
			break
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// comments returns the comments between the first and the last token of
// the sequence nodes.
func comments(nodes []*syntax.Node) []syntax.Trivia {
	var toks []*syntax.Node
	for _, n := range nodes {
		toks = append(toks, n.Tokens()...)
	}
	var out []syntax.Trivia
	for i, tok := range toks {
		if i > 0 {
			out = appendComments(out, tok.LeadingTrivia())
		}
		if i < len(toks)-1 {
			out = appendComments(out, tok.TrailingTrivia())
		}
	}
	return out
}

func appendComments(out, ts []syntax.Trivia) []syntax.Trivia {
	for _, t := range ts {
		if t.Kind.IsComment() {
			out = append(out, t)
		}
	}
	return out
}

// missing returns the comments of old that kept does not account for.
func missing(old, kept []syntax.Trivia) []syntax.Trivia {
	count := make(map[string]int, len(kept))
	for _, t := range kept {
		count[t.Text]++
	}
	var out []syntax.Trivia
	for _, t := range old {
		if count[t.Text] > 0 {
			count[t.Text]--
			continue
		}
		out = append(out, t)
	}
	return out
}

// replaceWithin returns a detached copy of outer in which inner, a node of
// outer's subtree, is replaced by repl.
func replaceWithin(outer, inner, repl *syntax.Node) *syntax.Node {
	if inner.SameNode(outer) {
		return repl.Detach()
	}
	det := outer.Detach()
	off := outer.FullSpan().Start
	span := inner.Span()
	target := det.FindNode(text.NewSpan(span.Start-off, span.Len()), inner.Kind())
	return syntax.ReplaceNode(target, repl)
}

// Remaining returns the nodes of root's tree with one of kinds for which
// matches still reports true. A rewrite is idempotent when nothing it
// targeted remains after it is applied.
func Remaining(root *syntax.Node, kinds []syntax.Kind, matches func(*syntax.Node) bool) []*syntax.Node {
	var out []*syntax.Node
	for _, n := range root.Root().DescendantsOfKind(kinds...) {
		if matches(n) {
			out = append(out, n)
		}
	}
	return out
}
