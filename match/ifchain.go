// Copyright © 2024 The ELPS authors

package match

import (
	"github.com/luthersystems/fixkit/astutil"
	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/trivia"
)

// IfChain is an if statement with its else-if and else branches.
type IfChain struct {
	If *syntax.Node
	// Statements holds the statement of each branch in source order.
	Statements []*syntax.Node
	// HasElse is set when the chain ends with a plain else.
	HasElse bool
}

// IfChainOf matches the topmost if of an else-if chain. An if that is the
// statement of an else clause does not match on its own.
func IfChainOf(ifStmt *syntax.Node) (IfChain, bool) {
	if ifStmt.Kind() != syntax.IfStatement || ifStmt.Parent().Kind() == syntax.ElseClause || !valid(ifStmt) {
		return IfChain{}, false
	}
	c := IfChain{If: ifStmt}
	for n := ifStmt; ; {
		c.Statements = append(c.Statements, n.Statement())
		e := n.Else()
		if e == nil {
			break
		}
		if next := e.Statement(); next.Kind() == syntax.IfStatement {
			n = next
			continue
		}
		c.Statements = append(c.Statements, e.Statement())
		c.HasElse = true
		break
	}
	return c, true
}

// Blocks returns the branch statements that are blocks.
func (c IfChain) Blocks() []*syntax.Node {
	var out []*syntax.Node
	for _, s := range c.Statements {
		if s.Kind() == syntax.Block {
			out = append(out, s)
		}
	}
	return out
}

// CanRemoveBraces reports whether every branch of a chain with an else is
// a block holding one single-line statement whose braces carry only
// whitespace, so that unwrapping the blocks keeps the meaning and the
// comments of the chain. A nested if is refused: dropping the braces around
// it would let the following else bind to it.
func (c IfChain) CanRemoveBraces() bool {
	if c.If.Else() == nil {
		return false
	}
	for _, s := range c.Statements {
		if s.Kind() != syntax.Block {
			return false
		}
		inner, ok := astutil.SingleStatement(s)
		if !ok {
			return false
		}
		switch inner.Kind() {
		case syntax.Block, syntax.IfStatement, syntax.LocalDeclarationStatement:
			return false
		}
		if !astutil.IsSingleLine(inner) {
			return false
		}
		braces := trivia.ClassifyTrivia(
			s.OpenBrace().TrailingTrivia(),
			s.CloseBrace().LeadingTrivia(),
			inner.LeadingTrivia(),
			inner.TrailingTrivia(),
		)
		if !braces.CanDiscard() {
			return false
		}
	}
	return true
}
