// Copyright © 2024 The ELPS authors

// Package astutil provides shared tree walking and navigation utilities.
//
// These helpers are used by the match, lint, rewrite and refactor packages
// for traversing syntax trees. They never modify a tree.
package astutil

import (
	"strings"

	"github.com/luthersystems/fixkit/syntax"
)

// Walk calls fn for every node (not token) in the tree, depth-first.
// parent is nil for the root.
func Walk(root *syntax.Node, fn func(node, parent *syntax.Node, depth int)) {
	walkNode(root, nil, 0, fn)
}

func walkNode(node, parent *syntax.Node, depth int, fn func(*syntax.Node, *syntax.Node, int)) {
	if node == nil || node.IsToken() {
		return
	}
	fn(node, parent, depth)
	for _, child := range node.Children() {
		walkNode(child, node, depth+1, fn)
	}
}

// WalkStatements calls fn for every statement in the tree.
func WalkStatements(root *syntax.Node, fn func(stmt *syntax.Node)) {
	Walk(root, func(node, _ *syntax.Node, _ int) {
		if node.Kind().IsStatement() {
			fn(node)
		}
	})
}

// WalkDownParentheses returns the innermost expression of a chain of
// parenthesized expressions.
func WalkDownParentheses(expr *syntax.Node) *syntax.Node {
	for expr.Kind() == syntax.ParenthesizedExpression {
		expr = expr.Expression()
	}
	return expr
}

// WalkUpParentheses returns the outermost parenthesized expression that
// wraps expr, or expr itself.
func WalkUpParentheses(expr *syntax.Node) *syntax.Node {
	for expr.Parent().Kind() == syntax.ParenthesizedExpression {
		expr = expr.Parent()
	}
	return expr
}

// EmbeddedStatement returns the statement embedded in an if, else, while,
// do, for, foreach, using, lock or fixed statement.
func EmbeddedStatement(n *syntax.Node) *syntax.Node {
	return n.Statement()
}

// IsEmbeddedStatement reports whether stmt is the embedded statement of its
// parent and not a block. An if statement directly after else is part of an
// else-if chain and is not embedded.
func IsEmbeddedStatement(stmt *syntax.Node) bool {
	if stmt == nil || stmt.Kind() == syntax.Block || !stmt.Kind().IsStatement() {
		return false
	}
	p := stmt.Parent()
	if p.Statement() == nil || !p.Statement().SameNode(stmt) {
		return false
	}
	if p.Kind() == syntax.ElseClause && stmt.Kind() == syntax.IfStatement {
		return false
	}
	return true
}

// StatementList returns the List holding stmt when stmt sits directly in a
// block or switch section, or nil.
func StatementList(stmt *syntax.Node) *syntax.Node {
	list := stmt.Parent()
	if list.Kind() != syntax.List {
		return nil
	}
	switch list.Parent().Kind() {
	case syntax.Block, syntax.SwitchSection:
		if list.Index() == 1 {
			return list
		}
	}
	return nil
}

// NextStatement returns the statement following stmt in its statement
// list, or nil.
func NextStatement(stmt *syntax.Node) *syntax.Node {
	list := StatementList(stmt)
	if list == nil {
		return nil
	}
	return list.Child(stmt.Index() + 1)
}

// PreviousStatement returns the statement preceding stmt in its statement
// list, or nil.
func PreviousStatement(stmt *syntax.Node) *syntax.Node {
	list := StatementList(stmt)
	if list == nil {
		return nil
	}
	return list.Child(stmt.Index() - 1)
}

// SingleStatement returns the only statement of a block, or the statement
// itself when it is not a block.
func SingleStatement(stmt *syntax.Node) (*syntax.Node, bool) {
	if stmt.Kind() != syntax.Block {
		return stmt, stmt != nil
	}
	stmts := stmt.Statements().Children()
	if len(stmts) != 1 {
		return nil, false
	}
	return stmts[0], true
}

// IsJumpStatement reports whether stmt unconditionally leaves the current
// statement list.
func IsJumpStatement(stmt *syntax.Node) bool {
	switch stmt.Kind() {
	case syntax.ReturnStatement, syntax.ThrowStatement, syntax.BreakStatement, syntax.ContinueStatement:
		return true
	}
	return false
}

// EndsWithJump reports whether control never falls through stmt: stmt is a
// jump, a block ending with one, or an if whose branches both end with one.
func EndsWithJump(stmt *syntax.Node) bool {
	switch stmt.Kind() {
	case syntax.Block:
		stmts := stmt.Statements().Children()
		return len(stmts) > 0 && EndsWithJump(stmts[len(stmts)-1])
	case syntax.IfStatement:
		e := stmt.Else()
		return e != nil && EndsWithJump(stmt.Statement()) && EndsWithJump(e.Statement())
	}
	return IsJumpStatement(stmt)
}

// TopmostIf returns the first if statement of the else-if chain containing
// ifStmt.
func TopmostIf(ifStmt *syntax.Node) *syntax.Node {
	for {
		p := ifStmt.Parent()
		if p.Kind() != syntax.ElseClause || p.Parent().Kind() != syntax.IfStatement {
			return ifStmt
		}
		ifStmt = p.Parent()
	}
}

// ContainingMember returns the nearest method or constructor around n.
func ContainingMember(n *syntax.Node) *syntax.Node {
	return n.FirstAncestor(syntax.MethodDeclaration, syntax.ConstructorDeclaration)
}

// IsSingleLine reports whether the text of n, without outer trivia, spans a
// single line.
func IsSingleLine(n *syntax.Node) bool {
	return !strings.ContainsAny(n.Text(), "\r\n")
}

// IsSimpleName reports whether n is an identifier name with the given text.
func IsSimpleName(n *syntax.Node, name string) bool {
	return n.Kind() == syntax.IdentifierName && n.Identifier().Text() == name
}

// UserDefined returns the set of names declared by locals, parameters and
// foreach variables under root.
func UserDefined(root *syntax.Node) map[string]bool {
	defs := make(map[string]bool)
	Walk(root, func(node, _ *syntax.Node, _ int) {
		switch node.Kind() {
		case syntax.VariableDeclarator, syntax.Parameter, syntax.ForEachStatement:
			if id := node.Identifier(); id != nil {
				defs[id.Text()] = true
			}
		}
	})
	return defs
}
