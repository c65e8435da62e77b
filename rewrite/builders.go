// Copyright © 2024 The ELPS authors

package rewrite

import (
	"github.com/luthersystems/fixkit/match"
	"github.com/luthersystems/fixkit/syntax"
)

// RemoveRedundantAssignment rewrites
//
//	x = Compute();
//	return x;
//
// as return Compute();.
func RemoveRedundantAssignment(m match.RedundantAssignment) (*syntax.Node, error) {
	ret := syntax.Return(m.Right.WithoutTrivia())
	return ReplaceStatements(m.Statement, 2, ret)
}

// UseConditionalAccess rewrites if (x != null) x.M(args); as x?.M(args);.
func UseConditionalAccess(m match.ConditionalAccessIf) (*syntax.Node, error) {
	inv := m.Invocation
	call := syntax.NewNode(syntax.InvocationExpression, syntax.MemberBinding(inv.NameText()), inv.ArgumentList)
	access := syntax.ConditionalAccess(m.NullCheck.Expression.WithoutTrivia(), call)
	return Replace(m.If, syntax.ExpressionStatementOf(access))
}

// UseConditionalAccessAnd rewrites x != null && x.P.M() > 0 as
// x?.P.M() > 0. A chain used directly as a condition yields a nullable
// bool, so x != null && x.M() becomes x?.M() == true and
// x != null && !x.M() becomes x?.M() == false.
func UseConditionalAccessAnd(m match.ConditionalAccessAnd) (*syntax.Node, error) {
	access := m.Target.Parent()
	// The access chain starting at the target becomes the part after ?.
	top, depth := access, 0
	for p := top.Parent(); p != nil && p.Is(syntax.SimpleMemberAccessExpression,
		syntax.InvocationExpression, syntax.ElementAccessExpression) && p.Expression().SameNode(top); p = p.Parent() {
		top = p
		depth++
	}
	chain := top.Detach()
	inner := chain
	for i := 0; i < depth; i++ {
		inner = inner.Expression()
	}
	chain = syntax.ReplaceNode(inner, syntax.MemberBinding(access.Name().Identifier().Text()))
	ca := syntax.ConditionalAccess(m.Target.WithoutTrivia(), chain.WithoutTrivia())
	replaced, repl := top, ca
	switch p := top.Parent(); {
	case p.Kind() == syntax.LogicalNotExpression:
		replaced, repl = p, syntax.Binary(syntax.EqualsExpression, ca, syntax.False())
	case top.SameNode(m.Right) || p.Kind() == syntax.LogicalAndExpression:
		repl = syntax.Binary(syntax.EqualsExpression, ca, syntax.True())
	}
	right := replaceWithin(m.Right, replaced, repl)
	return Replace(m.And, right.WithoutTrivia())
}

// SimplifyBooleanComparison rewrites x == true as x and x == false as !x.
func SimplifyBooleanComparison(m match.BooleanComparison) (*syntax.Node, error) {
	other := m.Other.WithoutTrivia()
	if m.Negate {
		other = syntax.LogicalNot(Parenthesize(other))
	}
	return Replace(m.Expression, other)
}

// CoalesceIf folds the null check into the preceding initialization:
//
//	var x = a;                x = a;
//	if (x == null) x = b;     if (x == null) x = b;
//
// become var x = a ?? b; and x = a ?? b;.
func CoalesceIf(m match.CoalesceIf) (*syntax.Node, error) {
	coalesce := syntax.Binary(syntax.CoalesceExpression,
		Parenthesize(m.Value.WithoutTrivia()),
		Parenthesize(m.Assignment.Right.WithoutTrivia()))
	prev := replaceWithin(m.Previous, m.Value, coalesce)
	return ReplaceStatements(m.Previous, 2, prev.WithoutTrivia())
}

// CoalesceConditional rewrites x != null ? x : y as x ?? y.
func CoalesceConditional(m match.CoalesceConditional) (*syntax.Node, error) {
	coalesce := syntax.Binary(syntax.CoalesceExpression,
		Parenthesize(m.Expression.WithoutTrivia()),
		Parenthesize(m.Alternative.WithoutTrivia()))
	return Replace(m.Conditional, coalesce)
}

// AddBraces wraps an embedded statement in a block. The owning statement is
// laid out again so that the braces line up with it.
func AddBraces(m match.EmbeddedStatement) (*syntax.Node, error) {
	block := syntax.BlockOf(m.Statement.WithoutTrivia())
	owner := replaceWithin(m.Owner, m.Statement, block)
	return Replace(m.Owner, owner.WithoutTrivia())
}

// RemoveBraces unwraps the single-statement blocks of an if-else chain.
func RemoveBraces(c match.IfChain) (*syntax.Node, error) {
	if !c.CanRemoveBraces() {
		return nil, ErrNoMatch
	}
	blocks := c.Blocks()
	det := c.If.Detach()
	off := c.If.FullSpan().Start
	// Later blocks first: earlier offsets stay valid.
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		inner, _ := singleStatement(b)
		span := b.Span()
		span.Start -= off
		span.End -= off
		target := det.FindNode(span, syntax.Block)
		if target == nil {
			return nil, ErrNoMatch
		}
		det = syntax.ReplaceNode(target, inner.WithoutTrivia())
	}
	return Replace(c.If, det.WithoutTrivia())
}

func singleStatement(block *syntax.Node) (*syntax.Node, bool) {
	stmts := block.Statements().Children()
	if len(stmts) != 1 {
		return nil, false
	}
	return stmts[0], true
}

// Parenthesize wraps expr in parentheses when it would bind more loosely
// than an operand of a binary or unary operator.
func Parenthesize(expr *syntax.Node) *syntax.Node {
	k := expr.Kind()
	if k.IsBinaryExpression() || k.IsAssignmentExpression() ||
		k == syntax.ConditionalExpression || k == syntax.IsPatternExpression {
		return syntax.Parenthesized(expr)
	}
	return expr
}
