// Copyright © 2024 The ELPS authors

package syntax

// Annotation marks a node for later processing. Annotations survive tree
// rewrites of unrelated nodes and are compared by value.
type Annotation struct {
	Kind string
	Data string
}

// FormatterAnnotation marks nodes whose whitespace the formatter should
// normalize.
var FormatterAnnotation = Annotation{Kind: "Formatter"}

type greenFlags uint8

const (
	flagMissing greenFlags = 1 << iota
	flagDiagnostics
	flagDirectives
	flagComments
	flagAnnotations
)

const inheritedFlags = flagDiagnostics | flagDirectives | flagComments | flagAnnotations

// green is the immutable, position-independent part of a node or token.
// Green values are shared freely between trees.
type green struct {
	kind     Kind
	text     string
	leading  []Trivia
	trailing []Trivia
	slots    []*green
	width    int
	flags    greenFlags
	err      bool
	annots   []Annotation
}

func newGreenToken(kind Kind, text string, leading, trailing []Trivia, missing bool) *green {
	g := &green{
		kind:     kind,
		text:     text,
		leading:  leading,
		trailing: trailing,
		width:    triviaWidth(leading) + len(text) + triviaWidth(trailing),
	}
	if missing {
		g.flags |= flagMissing | flagDiagnostics
	}
	for _, ts := range [][]Trivia{leading, trailing} {
		for _, t := range ts {
			switch {
			case t.Kind.IsDirective():
				g.flags |= flagDirectives
			case t.Kind.IsComment():
				g.flags |= flagComments
			}
		}
	}
	return g
}

func newGreenNode(kind Kind, slots []*green) *green {
	g := &green{kind: kind, slots: slots}
	g.computeFlags()
	return g
}

func (g *green) computeFlags() {
	g.width = 0
	g.flags = 0
	if g.err {
		g.flags |= flagDiagnostics
	}
	if len(g.annots) > 0 {
		g.flags |= flagAnnotations
	}
	for _, c := range g.slots {
		if c == nil {
			continue
		}
		g.width += c.width
		g.flags |= c.flags & inheritedFlags
	}
}

func (g *green) isToken() bool { return g.kind.IsToken() }

// clone returns a shallow copy that may be modified before it is shared.
func (g *green) clone() *green {
	c := *g
	if g.slots != nil {
		c.slots = append([]*green(nil), g.slots...)
	}
	return &c
}

func (g *green) withSlot(i int, child *green) *green {
	c := g.clone()
	c.slots[i] = child
	c.computeFlags()
	return c
}

func (g *green) withSlots(slots []*green) *green {
	c := g.clone()
	c.slots = slots
	c.computeFlags()
	return c
}

func (g *green) withAnnotations(annots []Annotation) *green {
	c := g.clone()
	c.annots = annots
	if c.isToken() {
		if len(annots) > 0 {
			c.flags |= flagAnnotations
		} else {
			c.flags &^= flagAnnotations
		}
		return c
	}
	c.computeFlags()
	return c
}

func (g *green) withError() *green {
	c := g.clone()
	c.err = true
	if c.isToken() {
		c.flags |= flagDiagnostics
		return c
	}
	c.computeFlags()
	return c
}

func (g *green) withTokenTrivia(leading, trailing []Trivia) *green {
	t := newGreenToken(g.kind, g.text, leading, trailing, g.flags&flagMissing != 0)
	t.annots = g.annots
	t.err = g.err
	if len(t.annots) > 0 {
		t.flags |= flagAnnotations
	}
	if t.err {
		t.flags |= flagDiagnostics
	}
	return t
}

// withEdgeTrivia replaces the leading trivia of the first token (first ==
// true) or the trailing trivia of the last token.
func (g *green) withEdgeTrivia(first bool, ts []Trivia) *green {
	if g.isToken() {
		if first {
			return g.withTokenTrivia(ts, g.trailing)
		}
		return g.withTokenTrivia(g.leading, ts)
	}
	idx := g.edgeSlot(first)
	if idx < 0 {
		return g
	}
	return g.withSlot(idx, g.slots[idx].withEdgeTrivia(first, ts))
}

// edgeSlot returns the index of the first (or last) slot that contains a
// token, or -1.
func (g *green) edgeSlot(first bool) int {
	n := len(g.slots)
	for k := 0; k < n; k++ {
		i := k
		if !first {
			i = n - 1 - k
		}
		if c := g.slots[i]; c != nil && c.hasToken() {
			return i
		}
	}
	return -1
}

func (g *green) hasToken() bool {
	if g.isToken() {
		return true
	}
	for _, c := range g.slots {
		if c != nil && c.hasToken() {
			return true
		}
	}
	return false
}

func (g *green) edgeToken(first bool) *green {
	for !g.isToken() {
		i := g.edgeSlot(first)
		if i < 0 {
			return nil
		}
		g = g.slots[i]
	}
	return g
}

func (g *green) equivalent(o *green) bool {
	if g == o {
		return true
	}
	if g == nil || o == nil || g.kind != o.kind {
		return false
	}
	if g.isToken() {
		return g.text == o.text && g.flags&flagMissing == o.flags&flagMissing
	}
	if len(g.slots) != len(o.slots) {
		return false
	}
	for i := range g.slots {
		if !g.slots[i].equivalent(o.slots[i]) {
			return false
		}
	}
	return true
}
