// Copyright © 2024 The ELPS authors

// Package syntax models the host's immutable syntax tree.
//
// A tree has two layers. The green layer holds kinds, token text, trivia and
// widths; it is immutable and shared between every tree derived from the
// same source. The red layer (Node) adds parent links and absolute
// positions. Edits never modify a tree: ReplaceNode and friends copy the
// green path from the edited node to the root and return a new root, so
// trees may be read concurrently without locks.
//
// Nodes and tokens share the Node type. Accessors are nil-safe and return
// nil (or None) when a slot does not apply to the receiver's kind, which lets
// matchers chain structural checks without guarding every step.
package syntax

import (
	"strings"

	"github.com/luthersystems/fixkit/text"
)

// Node is a node or token positioned in a tree.
type Node struct {
	g      *green
	parent *Node
	pos    int
	index  int
	slots  []*Node
}

func newRed(g *green, parent *Node, pos, index int) *Node {
	n := &Node{g: g, parent: parent, pos: pos, index: index}
	if len(g.slots) > 0 {
		n.slots = make([]*Node, len(g.slots))
		p := pos
		for i, c := range g.slots {
			if c == nil {
				continue
			}
			n.slots[i] = newRed(c, n, p, i)
			p += c.width
		}
	}
	return n
}

func rootOf(g *green) *Node { return newRed(g, nil, 0, 0) }

// Kind returns the kind of n, or None for a nil node.
func (n *Node) Kind() Kind {
	if n == nil {
		return None
	}
	return n.g.kind
}

// Is reports whether n has one of the given kinds.
func (n *Node) Is(kinds ...Kind) bool {
	k := n.Kind()
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// IsToken reports whether n is a token.
func (n *Node) IsToken() bool { return n != nil && n.g.isToken() }

// IsMissing reports whether n is a token the host parser inserted to
// recover from a syntax error.
func (n *Node) IsMissing() bool { return n != nil && n.g.flags&flagMissing != 0 }

// Parent returns the parent of n, or nil for a root.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Index returns the slot index of n within its parent.
func (n *Node) Index() int { return n.index }

// SlotCount returns the number of child slots of n.
func (n *Node) SlotCount() int {
	if n == nil {
		return 0
	}
	return len(n.slots)
}

// Child returns the child in slot i, or nil when the slot is empty or out of
// range.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.slots) {
		return nil
	}
	return n.slots[i]
}

// Children returns the non-empty child slots of n in order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.slots))
	for _, c := range n.slots {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Root returns the root of the tree containing n.
func (n *Node) Root() *Node {
	for n != nil && n.parent != nil {
		n = n.parent
	}
	return n
}

// FullSpan returns the span of n including all trivia.
func (n *Node) FullSpan() text.Span {
	if n == nil {
		return text.Span{}
	}
	return text.NewSpan(n.pos, n.g.width)
}

// Span returns the span of n excluding the leading trivia of its first token
// and the trailing trivia of its last token.
func (n *Node) Span() text.Span {
	if n == nil {
		return text.Span{}
	}
	full := n.FullSpan()
	first, last := n.g.edgeToken(true), n.g.edgeToken(false)
	if first == nil {
		return full
	}
	start := full.Start + triviaWidth(first.leading)
	end := full.End - triviaWidth(last.trailing)
	if end < start {
		end = start
	}
	return text.FromBounds(start, end)
}

// SpanStart returns Span().Start.
func (n *Node) SpanStart() int { return n.Span().Start }

// Text returns the source text of n without its outer trivia. For a token it
// is the token text.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	if n.g.isToken() {
		return n.g.text
	}
	var b strings.Builder
	toks := n.Tokens()
	for i, t := range toks {
		if i > 0 {
			b.WriteString(TriviaText(t.g.leading))
		}
		b.WriteString(t.g.text)
		if i < len(toks)-1 {
			b.WriteString(TriviaText(t.g.trailing))
		}
	}
	return b.String()
}

// FullText returns the source text of n including all trivia.
func (n *Node) FullText() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.Grow(n.g.width)
	writeGreen(&b, n.g)
	return b.String()
}

func writeGreen(b *strings.Builder, g *green) {
	if g.isToken() {
		for _, t := range g.leading {
			b.WriteString(t.Text)
		}
		b.WriteString(g.text)
		for _, t := range g.trailing {
			b.WriteString(t.Text)
		}
		return
	}
	for _, c := range g.slots {
		if c != nil {
			writeGreen(b, c)
		}
	}
}

// String returns Text().
func (n *Node) String() string { return n.Text() }

// LeadingTrivia returns the leading trivia of the first token of n.
func (n *Node) LeadingTrivia() []Trivia {
	if n == nil {
		return nil
	}
	if t := n.g.edgeToken(true); t != nil {
		return t.leading
	}
	return nil
}

// TrailingTrivia returns the trailing trivia of the last token of n.
func (n *Node) TrailingTrivia() []Trivia {
	if n == nil {
		return nil
	}
	if t := n.g.edgeToken(false); t != nil {
		return t.trailing
	}
	return nil
}

// HasLeadingTrivia reports whether n has any leading trivia.
func (n *Node) HasLeadingTrivia() bool { return len(n.LeadingTrivia()) > 0 }

// HasTrailingTrivia reports whether n has any trailing trivia.
func (n *Node) HasTrailingTrivia() bool { return len(n.TrailingTrivia()) > 0 }

// FirstToken returns the first token of n, or nil when n contains none.
func (n *Node) FirstToken() *Node {
	for n != nil && !n.IsToken() {
		var next *Node
		for _, c := range n.slots {
			if c != nil && c.g.hasToken() {
				next = c
				break
			}
		}
		n = next
	}
	return n
}

// LastToken returns the last token of n, or nil when n contains none.
func (n *Node) LastToken() *Node {
	for n != nil && !n.IsToken() {
		var next *Node
		for i := len(n.slots) - 1; i >= 0; i-- {
			if c := n.slots[i]; c != nil && c.g.hasToken() {
				next = c
				break
			}
		}
		n = next
	}
	return n
}

// Tokens returns every token of n in source order.
func (n *Node) Tokens() []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.IsToken() {
			out = append(out, c)
		}
		return true
	})
	return out
}

// NextToken returns the token following n in the tree, or nil.
func (n *Node) NextToken() *Node {
	for c := n; c != nil && c.parent != nil; c = c.parent {
		p := c.parent
		for i := c.index + 1; i < len(p.slots); i++ {
			if t := p.slots[i].FirstToken(); t != nil {
				return t
			}
		}
	}
	return nil
}

// PreviousToken returns the token preceding n in the tree, or nil.
func (n *Node) PreviousToken() *Node {
	for c := n; c != nil && c.parent != nil; c = c.parent {
		p := c.parent
		for i := c.index - 1; i >= 0; i-- {
			if t := p.slots[i].LastToken(); t != nil {
				return t
			}
		}
	}
	return nil
}

// Walk calls fn for n and its descendants in pre-order. When fn returns
// false the children of that node are skipped.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.slots {
		if c != nil {
			c.Walk(fn)
		}
	}
}

// Descendants returns all nodes (not tokens) below n in pre-order.
func (n *Node) Descendants() []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c != n && !c.IsToken() {
			out = append(out, c)
		}
		return true
	})
	return out
}

// DescendantsOfKind returns the nodes below n with one of the given kinds.
func (n *Node) DescendantsOfKind(kinds ...Kind) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c != n && c.Is(kinds...) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// FirstDescendant returns the first node below n with the given kind.
func (n *Node) FirstDescendant(kind Kind) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c != n && c.Kind() == kind {
			found = c
			return false
		}
		return true
	})
	return found
}

// Ancestors returns the parents of n from the nearest to the root.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.Parent(); p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// FirstAncestor returns the nearest ancestor of n with one of the given
// kinds.
func (n *Node) FirstAncestor(kinds ...Kind) *Node {
	for p := n.Parent(); p != nil; p = p.parent {
		if p.Is(kinds...) {
			return p
		}
	}
	return nil
}

// EachTrivia calls fn for every trivia piece within n with its absolute span.
func (n *Node) EachTrivia(fn func(t Trivia, span text.Span)) {
	for _, tok := range n.Tokens() {
		pos := tok.pos
		for _, t := range tok.g.leading {
			fn(t, text.NewSpan(pos, len(t.Text)))
			pos += len(t.Text)
		}
		pos += len(tok.g.text)
		for _, t := range tok.g.trailing {
			fn(t, text.NewSpan(pos, len(t.Text)))
			pos += len(t.Text)
		}
	}
}

// HasError reports whether n itself was marked malformed by WithError.
func (n *Node) HasError() bool { return n != nil && n.g.err }

// ContainsDiagnostics reports whether n or any descendant is malformed.
func (n *Node) ContainsDiagnostics() bool {
	return n != nil && n.g.flags&flagDiagnostics != 0
}

// ContainsDirectives reports whether any trivia within n, including its
// outer trivia, is a preprocessor directive.
func (n *Node) ContainsDirectives() bool {
	return n != nil && n.g.flags&flagDirectives != 0
}

// ContainsComments reports whether any trivia within n is a comment.
func (n *Node) ContainsComments() bool {
	return n != nil && n.g.flags&flagComments != 0
}

// ContainsAnnotations reports whether n or a descendant carries an
// annotation.
func (n *Node) ContainsAnnotations() bool {
	return n != nil && n.g.flags&flagAnnotations != 0
}

// Annotations returns the annotations attached directly to n.
func (n *Node) Annotations() []Annotation {
	if n == nil {
		return nil
	}
	return n.g.annots
}

// HasAnnotation reports whether a is attached directly to n.
func (n *Node) HasAnnotation(a Annotation) bool {
	for _, x := range n.Annotations() {
		if x == a {
			return true
		}
	}
	return false
}

// IsEquivalentTo reports whether n and o have the same structure and token
// text, ignoring trivia and position.
func (n *Node) IsEquivalentTo(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	return n.g.equivalent(o.g)
}

// SameNode reports whether n and o denote the same node of structurally
// identical trees: the same green value at the same position.
func (n *Node) SameNode(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	return n.g == o.g && n.pos == o.pos
}

// FindToken returns the token whose full span contains pos. A position at
// the end of the tree returns the last token.
func (n *Node) FindToken(pos int) *Node {
	if n == nil || !n.FullSpan().Contains(pos) {
		if n != nil && pos == n.FullSpan().End {
			return n.LastToken()
		}
		return nil
	}
	for !n.IsToken() {
		var next *Node
		for _, c := range n.slots {
			if c != nil && c.FullSpan().Contains(pos) {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		n = next
	}
	return n
}

// FindNode returns the outermost node below or at n whose span equals span
// and whose kind is kind.
func (n *Node) FindNode(span text.Span, kind Kind) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		full := c.FullSpan()
		if !(full.Start <= span.Start && span.End <= full.End) {
			return false
		}
		if c.Kind() == kind && c.Span() == span {
			found = c
			return false
		}
		return true
	})
	return found
}

// CoveringNode returns the innermost node (not token) whose span contains
// span.
func (n *Node) CoveringNode(span text.Span) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if c.IsToken() || !c.Span().ContainsSpan(span) {
			return false
		}
		found = c
		return true
	})
	return found
}
