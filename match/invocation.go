// Copyright © 2024 The ELPS authors

package match

import (
	"github.com/luthersystems/fixkit/syntax"
)

// MemberInvocation is an invocation of a named member on a receiver,
// x.M(args).
type MemberInvocation struct {
	// Statement is the expression statement holding the invocation, if any.
	Statement    *syntax.Node
	Invocation   *syntax.Node
	MemberAccess *syntax.Node
	// Expression is the receiver x.
	Expression   *syntax.Node
	Name         *syntax.Node
	ArgumentList *syntax.Node
}

// NameText returns the invoked member name.
func (m MemberInvocation) NameText() string { return m.Name.Identifier().Text() }

// MemberInvocationExpression matches x.M(args).
func MemberInvocationExpression(inv *syntax.Node) (MemberInvocation, bool) {
	if inv.Kind() != syntax.InvocationExpression || !valid(inv) {
		return MemberInvocation{}, false
	}
	access := inv.Expression()
	if access.Kind() != syntax.SimpleMemberAccessExpression {
		return MemberInvocation{}, false
	}
	expr := access.Expression()
	if !valid(expr) || access.Name().Kind() != syntax.IdentifierName {
		return MemberInvocation{}, false
	}
	m := MemberInvocation{
		Invocation:   inv,
		MemberAccess: access,
		Expression:   expr,
		Name:         access.Name(),
		ArgumentList: inv.ArgumentList(),
	}
	if p := inv.Parent(); p.Kind() == syntax.ExpressionStatement {
		m.Statement = p
	}
	return m, true
}

// MemberInvocationStatement matches the expression statement x.M(args);.
func MemberInvocationStatement(stmt *syntax.Node) (MemberInvocation, bool) {
	if stmt.Kind() != syntax.ExpressionStatement || !valid(stmt) {
		return MemberInvocation{}, false
	}
	return MemberInvocationExpression(stmt.Expression())
}
