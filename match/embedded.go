// Copyright © 2024 The ELPS authors

package match

import (
	"github.com/luthersystems/fixkit/syntax"
)

// EmbeddedStatement is a statement embedded without braces in an if,
// else, for, foreach, while, do, using, lock or fixed statement.
type EmbeddedStatement struct {
	// Owner is the statement or else clause holding Statement.
	Owner     *syntax.Node
	Statement *syntax.Node
}

// EmbeddedStatementOf matches owner when its embedded statement is not a
// block. An else followed by if is an else-if, not an embedded statement,
// and a using statement nested directly in a using is the stacked using
// idiom and does not match.
func EmbeddedStatementOf(owner *syntax.Node) (EmbeddedStatement, bool) {
	switch owner.Kind() {
	case syntax.IfStatement, syntax.ElseClause, syntax.ForStatement, syntax.ForEachStatement,
		syntax.WhileStatement, syntax.DoStatement, syntax.UsingStatement, syntax.LockStatement,
		syntax.FixedStatement:
	default:
		return EmbeddedStatement{}, false
	}
	stmt := owner.Statement()
	if !valid(stmt) {
		return EmbeddedStatement{}, false
	}
	switch {
	case stmt.Kind() == syntax.Block:
		return EmbeddedStatement{}, false
	case owner.Kind() == syntax.ElseClause && stmt.Kind() == syntax.IfStatement:
		return EmbeddedStatement{}, false
	case owner.Kind() == syntax.UsingStatement && stmt.Kind() == syntax.UsingStatement:
		return EmbeddedStatement{}, false
	}
	return EmbeddedStatement{Owner: owner, Statement: stmt}, true
}

// EmbeddedOwners lists the kinds EmbeddedStatementOf accepts.
var EmbeddedOwners = []syntax.Kind{
	syntax.IfStatement, syntax.ElseClause, syntax.ForStatement, syntax.ForEachStatement,
	syntax.WhileStatement, syntax.DoStatement, syntax.UsingStatement, syntax.LockStatement,
	syntax.FixedStatement,
}
