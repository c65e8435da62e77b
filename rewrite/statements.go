// Copyright © 2024 The ELPS authors

package rewrite

import (
	"github.com/luthersystems/fixkit/match"
	"github.com/luthersystems/fixkit/syntax"
)

// WhileTrueToFor rewrites while (true) s as for (;;) s.
func WhileTrueToFor(while *syntax.Node) (*syntax.Node, error) {
	if while.Kind() != syntax.WhileStatement || while.Condition().Kind() != syntax.TrueLiteralExpression {
		return nil, ErrNoMatch
	}
	return Replace(while, syntax.For(nil, nil, nil, while.Statement().WithoutTrivia()))
}

// DoToWhile rewrites do s while (c); as while (c) s.
func DoToWhile(do *syntax.Node) (*syntax.Node, error) {
	if do.Kind() != syntax.DoStatement {
		return nil, ErrNoMatch
	}
	return Replace(do, syntax.While(do.Condition().WithoutTrivia(), do.Statement().WithoutTrivia()))
}

// AppendToString rewrites expr as expr.ToString().
func AppendToString(expr *syntax.Node) (*syntax.Node, error) {
	call := syntax.Invocation(syntax.MemberAccess(primary(expr.WithoutTrivia()), "ToString"))
	return Replace(expr, call)
}

// ElementAccessForLast rewrites xs.Last() as xs[xs.Count - 1], where count
// names the count property of the receiver type.
func ElementAccessForLast(m match.MemberInvocation, count string) (*syntax.Node, error) {
	if len(m.Invocation.Arguments()) != 0 {
		return nil, ErrNoMatch
	}
	recv := primary(m.Expression.WithoutTrivia())
	index := syntax.Binary(syntax.SubtractExpression, syntax.MemberAccess(recv, count), syntax.NumericLiteral("1"))
	return Replace(m.Invocation, syntax.ElementAccess(recv, index))
}

// ConcatForJoin rewrites string.Join("", a, b) as string.Concat(a, b).
func ConcatForJoin(m match.MemberInvocation) (*syntax.Node, error) {
	args := m.Invocation.Arguments()
	if len(args) < 2 {
		return nil, ErrNoMatch
	}
	rest := make([]*syntax.Node, 0, len(args)-1)
	for _, a := range args[1:] {
		rest = append(rest, a.WithoutTrivia())
	}
	call := syntax.Invocation(syntax.MemberAccess(m.Expression.WithoutTrivia(), "Concat"), rest...)
	return Replace(m.Invocation, call)
}

// SimplifyWhereChain rewrites xs.Where(p).M() as xs.M(p).
func SimplifyWhereChain(w match.WhereChain) (*syntax.Node, error) {
	call := syntax.Invocation(
		syntax.MemberAccess(w.Where.Expression.WithoutTrivia(), w.Outer.NameText()),
		w.Predicate.WithoutTrivia())
	return Replace(w.Outer.Invocation, call)
}

// ThenByForOrderBy rewrites xs.OrderBy(a).OrderBy(b) as
// xs.OrderBy(a).ThenBy(b).
func ThenByForOrderBy(c match.OrderByChain) (*syntax.Node, error) {
	return Replace(c.Outer.Name, syntax.IdentifierNameOf(c.ThenByName()))
}

// primary parenthesizes expr unless it can be the receiver of a member
// access as it is.
func primary(expr *syntax.Node) *syntax.Node {
	switch expr.Kind() {
	case syntax.IdentifierName, syntax.QualifiedName, syntax.PredefinedType,
		syntax.SimpleMemberAccessExpression, syntax.InvocationExpression,
		syntax.ElementAccessExpression, syntax.ParenthesizedExpression,
		syntax.ThisExpression, syntax.BaseExpression, syntax.ObjectCreationExpression,
		syntax.StringLiteralExpression, syntax.CharacterLiteralExpression,
		syntax.NumericLiteralExpression, syntax.TrueLiteralExpression,
		syntax.FalseLiteralExpression, syntax.InterpolatedStringExpression:
		return expr
	}
	return syntax.Parenthesized(expr)
}
