// Copyright © 2024 The ELPS authors

// Package match recognizes syntax shapes that rules and fixes are built
// from.
//
// Every matcher has the form
//
//	func X(n *syntax.Node, ...) (Record, bool)
//
// and returns the zero Record with ok == false when n does not have the
// shape. On success every node referenced by the record is non-nil and lies
// in the subtree of n (or, for statement pairs, of n's statement list).
//
// Matchers check structure first, cheapest test first, and consult the
// semantic model last. A nil model skips semantic validation; each matcher
// documents what it accepts in that case. Nodes containing syntax errors
// never match.
package match

import (
	"github.com/luthersystems/fixkit/astutil"
	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/trivia"
)

// valid reports whether n is present, not a missing token, and free of
// syntax errors.
func valid(n *syntax.Node) bool {
	return n != nil && !n.IsMissing() && !n.ContainsDiagnostics()
}

// spanHasDirective reports whether a directive appears inside n, not
// counting its outer trivia.
func spanHasDirective(n *syntax.Node) bool {
	return n.ContainsDirectives() && trivia.Classify(n).Veto()
}

// unparen strips parentheses around expr.
func unparen(expr *syntax.Node) *syntax.Node {
	return astutil.WalkDownParentheses(expr)
}

// singleNonBlockStatement returns the only statement embedded in stmt,
// looking through a block of exactly one statement.
func singleNonBlockStatement(stmt *syntax.Node) *syntax.Node {
	s, ok := astutil.SingleStatement(stmt)
	if !ok || s.Kind() == syntax.Block {
		return nil
	}
	return s
}

// isSimpleIf reports whether ifStmt has no else clause and is not itself
// the if of an else-if.
func isSimpleIf(ifStmt *syntax.Node) bool {
	return ifStmt.Kind() == syntax.IfStatement &&
		ifStmt.Else() == nil &&
		ifStmt.Parent().Kind() != syntax.ElseClause
}
