// Copyright © 2024 The ELPS authors

package syntax

import "fmt"

// detached returns a new root wrapping g.
func detached(g *green) *Node { return rootOf(g) }

// green path copy: replace the green of n and rebuild every ancestor.
func (n *Node) replaceGreen(g *green) *Node {
	for c := n; c.parent != nil; c = c.parent {
		g = c.parent.g.withSlot(c.index, g)
	}
	return rootOf(g)
}

func greenOf(n *Node) *green {
	if n == nil {
		return nil
	}
	return n.g
}

// ReplaceNode returns the root of a new tree in which old has been replaced
// by repl. repl may come from any tree; only its green value is used. A nil
// repl empties the slot, which is only valid for optional children.
func ReplaceNode(old, repl *Node) *Node {
	if old == nil {
		panic("syntax: ReplaceNode of nil node")
	}
	return old.replaceGreen(greenOf(repl))
}

// ReplaceRange replaces count consecutive elements of a List, starting at
// first, with repl. It returns the new root.
func ReplaceRange(first *Node, count int, repl ...*Node) *Node {
	list := first.Parent()
	if list.Kind() != List {
		panic(fmt.Sprintf("syntax: ReplaceRange on child of %s", list.Kind()))
	}
	i := first.index
	if i+count > len(list.slots) {
		panic("syntax: ReplaceRange past end of list")
	}
	slots := make([]*green, 0, len(list.slots)-count+len(repl))
	slots = append(slots, list.g.slots[:i]...)
	for _, r := range repl {
		slots = append(slots, r.g)
	}
	slots = append(slots, list.g.slots[i+count:]...)
	return list.replaceGreen(list.g.withSlots(slots))
}

// InsertBefore inserts nodes into n's List before n.
func InsertBefore(n *Node, nodes ...*Node) *Node {
	return ReplaceRange(n, 1, append(append([]*Node(nil), nodes...), n)...)
}

// InsertAfter inserts nodes into n's List after n.
func InsertAfter(n *Node, nodes ...*Node) *Node {
	return ReplaceRange(n, 1, append([]*Node{n}, nodes...)...)
}

// RemoveNode removes n from its parent and returns the new root. Elements of
// a SeparatedList take one adjacent separator with them; other nodes must
// be list elements or optional children.
func RemoveNode(n *Node) *Node {
	p := n.Parent()
	switch p.Kind() {
	case List:
		return ReplaceRange(n, 1)
	case SeparatedList:
		i := n.index
		lo, hi := i, i+1
		switch {
		case i+1 < len(p.slots):
			hi = i + 2
		case i > 0:
			lo = i - 1
		}
		slots := make([]*green, 0, len(p.slots))
		slots = append(slots, p.g.slots[:lo]...)
		slots = append(slots, p.g.slots[hi:]...)
		return p.replaceGreen(p.g.withSlots(slots))
	case None:
		panic("syntax: RemoveNode of root")
	}
	return ReplaceNode(n, nil)
}

// RewriteTokens returns the root of a new tree in which every token t of n's
// tree has been replaced by fn(t). fn returns t itself to keep a token.
func RewriteTokens(n *Node, fn func(tok *Node) *Node) *Node {
	root := n.Root()
	g, changed := rewriteTokens(root, fn)
	if !changed {
		return root
	}
	return rootOf(g)
}

func rewriteTokens(n *Node, fn func(*Node) *Node) (*green, bool) {
	if n.IsToken() {
		r := fn(n)
		if r == nil || r.g == n.g {
			return n.g, false
		}
		return r.g, true
	}
	var slots []*green
	for i, c := range n.slots {
		if c == nil {
			continue
		}
		g, changed := rewriteTokens(c, fn)
		if !changed {
			continue
		}
		if slots == nil {
			slots = append([]*green(nil), n.g.slots...)
		}
		slots[i] = g
	}
	if slots == nil {
		return n.g, false
	}
	return n.g.withSlots(slots), true
}

// Detach returns a copy of n that is the root of its own tree.
func (n *Node) Detach() *Node { return detached(n.g) }

// WithLeadingTrivia returns a detached copy of n whose first token has the
// given leading trivia.
func (n *Node) WithLeadingTrivia(ts ...Trivia) *Node {
	return detached(n.g.withEdgeTrivia(true, ts))
}

// WithTrailingTrivia returns a detached copy of n whose last token has the
// given trailing trivia.
func (n *Node) WithTrailingTrivia(ts ...Trivia) *Node {
	return detached(n.g.withEdgeTrivia(false, ts))
}

// WithTriviaFrom returns a detached copy of n carrying the leading trivia of
// o's first token and the trailing trivia of o's last token.
func (n *Node) WithTriviaFrom(o *Node) *Node {
	g := n.g.withEdgeTrivia(true, o.LeadingTrivia())
	return detached(g.withEdgeTrivia(false, o.TrailingTrivia()))
}

// WithoutTrivia returns a detached copy of n without outer trivia.
func (n *Node) WithoutTrivia() *Node {
	return detached(n.g.withEdgeTrivia(true, nil).withEdgeTrivia(false, nil))
}

// WithTokenTrivia returns a detached copy of token n with the given trivia.
func (n *Node) WithTokenTrivia(leading, trailing []Trivia) *Node {
	if !n.IsToken() {
		panic("syntax: WithTokenTrivia on " + n.Kind().String())
	}
	return detached(n.g.withTokenTrivia(leading, trailing))
}

// WithAnnotations returns a detached copy of n carrying annots in addition
// to its existing annotations.
func (n *Node) WithAnnotations(annots ...Annotation) *Node {
	all := append(append([]Annotation(nil), n.g.annots...), annots...)
	return detached(n.g.withAnnotations(all))
}

// WithoutAnnotations returns a detached copy of n without annotations of
// the given kind anywhere in its subtree.
func (n *Node) WithoutAnnotations(a Annotation) *Node {
	return detached(stripAnnotation(n.g, a))
}

func stripAnnotation(g *green, a Annotation) *green {
	if g == nil || g.flags&flagAnnotations == 0 {
		return g
	}
	var kept []Annotation
	for _, x := range g.annots {
		if x != a {
			kept = append(kept, x)
		}
	}
	c := g.clone()
	c.annots = kept
	for i, s := range c.slots {
		c.slots[i] = stripAnnotation(s, a)
	}
	if c.isToken() {
		if len(kept) == 0 {
			c.flags &^= flagAnnotations
		}
		return c
	}
	c.computeFlags()
	return c
}

// WithChild returns a detached copy of n with slot i replaced by c.
func (n *Node) WithChild(i int, c *Node) *Node {
	return detached(n.g.withSlot(i, greenOf(c)))
}

// WithError returns a detached copy of n marked as malformed.
func (n *Node) WithError() *Node {
	return detached(n.g.withError())
}

// WithText returns a detached copy of token n with new text and the same
// trivia.
func (n *Node) WithText(s string) *Node {
	if !n.IsToken() {
		panic("syntax: WithText on " + n.Kind().String())
	}
	t := newGreenToken(n.g.kind, s, n.g.leading, n.g.trailing, false)
	t.annots = n.g.annots
	if len(t.annots) > 0 {
		t.flags |= flagAnnotations
	}
	return detached(t)
}

// WithKind returns a detached copy of n with a different kind and the same
// children. It is used to swap operators and statement keywords.
func (n *Node) WithKind(k Kind) *Node {
	c := n.g.clone()
	c.kind = k
	return detached(c)
}
