// Copyright © 2024 The ELPS authors

package selection

import (
	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/text"
)

// Statements is a selection of sibling statements in a block or switch
// section.
type Statements struct {
	Range
	// List is the statement list the range indexes.
	List *syntax.Node
}

// Nodes returns the selected statements.
func (s Statements) Nodes() []*syntax.Node {
	return s.List.Children()[s.First : s.Last+1]
}

// FirstNode returns the first selected statement.
func (s Statements) FirstNode() *syntax.Node { return s.List.Child(s.First) }

// LastNode returns the last selected statement.
func (s Statements) LastNode() *syntax.Node { return s.List.Child(s.Last) }

// SelectStatements selects statements of the block or switch section that
// span starts in. Statements are compared by their span without trivia.
func SelectStatements(root *syntax.Node, span text.Span, min, max int) (Statements, error) {
	list := statementListAt(root, span)
	if list == nil {
		return Statements{}, ErrEmpty
	}
	r, err := Select(list.Children(), (*syntax.Node).Span, span, min, max)
	if err != nil {
		return Statements{}, err
	}
	return Statements{Range: r, List: list}, nil
}

// SelectStatementsIn selects statements of one given statement list.
func SelectStatementsIn(list *syntax.Node, span text.Span, min, max int) (Statements, error) {
	r, err := Select(list.Children(), (*syntax.Node).Span, span, min, max)
	if err != nil {
		return Statements{}, err
	}
	return Statements{Range: r, List: list}, nil
}

// statementListAt returns the statement list of the innermost block or
// switch section whose span contains span.
func statementListAt(root *syntax.Node, span text.Span) *syntax.Node {
	for n := root.FindToken(span.Start); n != nil; n = n.Parent() {
		if n.Is(syntax.Block, syntax.SwitchSection) && n.Span().ContainsSpan(span) {
			return n.Child(1)
		}
	}
	return nil
}
