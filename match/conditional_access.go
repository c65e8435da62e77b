// Copyright © 2024 The ELPS authors

package match

import (
	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
)

// ConditionalAccessIf is a null check guarding a single invocation on the
// checked expression:
//
//	if (x != null) x.M();
type ConditionalAccessIf struct {
	If         *syntax.Node
	NullCheck  NullCheck
	Invocation MemberInvocation
}

// ConditionalAccessIfStatement matches an if statement without else whose
// condition is x != null and whose only statement invokes a member of an
// expression equivalent to x.
func ConditionalAccessIfStatement(ifStmt *syntax.Node) (ConditionalAccessIf, bool) {
	if !isSimpleIf(ifStmt) || !valid(ifStmt) || spanHasDirective(ifStmt) {
		return ConditionalAccessIf{}, false
	}
	nc, ok := NullCheckOf(ifStmt.Condition(), NotEqualsToNull)
	if !ok {
		return ConditionalAccessIf{}, false
	}
	inv, ok := MemberInvocationStatement(singleNonBlockStatement(ifStmt.Statement()))
	if !ok || !nc.Expression.IsEquivalentTo(inv.Expression) {
		return ConditionalAccessIf{}, false
	}
	return ConditionalAccessIf{If: ifStmt, NullCheck: nc, Invocation: inv}, true
}

// ConditionalAccessAnd is a null check joined by && to an expression that
// accesses the checked expression:
//
//	x != null && x.M()
type ConditionalAccessAnd struct {
	And       *syntax.Node
	NullCheck NullCheck
	// Right is the right operand of && without parentheses.
	Right *syntax.Node
	// Target is the occurrence of the checked expression in Right that
	// becomes the receiver of the conditional access.
	Target *syntax.Node
}

// ConditionalAccessLogicalAnd matches x != null && right where right starts
// with a member access on x and its value does not change
// meaning when x?. yields null. With a model the checked expression must
// have a reference type; without one its type is not checked.
func ConditionalAccessLogicalAnd(and *syntax.Node, model semantic.Model) (ConditionalAccessAnd, bool) {
	if and.Kind() != syntax.LogicalAndExpression || !valid(and) {
		return ConditionalAccessAnd{}, false
	}
	nc, ok := NullCheckOf(and.Left(), NotEqualsToNull)
	if !ok {
		return ConditionalAccessAnd{}, false
	}
	if model != nil && !model.TypeOf(nc.Expression).IsReferenceType() {
		return ConditionalAccessAnd{}, false
	}
	right := unparen(and.Right())
	if !valid(right) || !conditionalRight(right, model) || containsOutArgument(right) {
		return ConditionalAccessAnd{}, false
	}
	target := ConditionallyAccessed(nc.Expression, right)
	if target == nil || spanHasDirective(target) {
		return ConditionalAccessAnd{}, false
	}
	return ConditionalAccessAnd{And: and, NullCheck: nc, Right: right, Target: target}, true
}

// ConditionallyAccessed returns the leftmost expression of expr (looking
// through one logical not) that is equivalent to find and is the receiver
// of a member access.
func ConditionallyAccessed(find, expr *syntax.Node) *syntax.Node {
	if expr.Kind() == syntax.LogicalNotExpression {
		expr = expr.Operand()
	}
	first := expr.FirstToken()
	if first == nil {
		return nil
	}
	start := first.SpanStart()
	for n := first.Parent(); n != nil && n.SpanStart() == start; n = n.Parent() {
		if n.Kind() == find.Kind() &&
			n.Parent().Kind() == syntax.SimpleMemberAccessExpression &&
			n.Parent().Expression().SameNode(n) &&
			n.IsEquivalentTo(find) {
			return n
		}
		if n.SameNode(expr) {
			break
		}
	}
	return nil
}

// conditionalRight reports whether right keeps its meaning when its
// receiver is conditionally accessed: a null result must make the whole
// expression false, as x != null did.
func conditionalRight(right *syntax.Node, model semantic.Model) bool {
	switch right.Kind() {
	case syntax.LessThanExpression, syntax.GreaterThanExpression,
		syntax.LessThanOrEqualExpression, syntax.GreaterThanOrEqualExpression,
		syntax.EqualsExpression:
		return constantNonNull(unparen(right.Right()), model)
	case syntax.NotEqualsExpression:
		return unparen(right.Right()).Kind() == syntax.NullLiteralExpression
	case syntax.SimpleMemberAccessExpression, syntax.InvocationExpression,
		syntax.ElementAccessExpression, syntax.LogicalNotExpression,
		syntax.IsPatternExpression, syntax.LogicalAndExpression:
		return true
	}
	return false
}

func constantNonNull(expr *syntax.Node, model semantic.Model) bool {
	var v any
	var ok bool
	if model != nil {
		v, ok = model.ConstantValue(expr)
	} else {
		v, ok = semantic.LiteralValue(expr)
	}
	return ok && v != nil
}

func containsOutArgument(n *syntax.Node) bool {
	for _, arg := range n.DescendantsOfKind(syntax.Argument) {
		if arg.RefKind().Kind() == syntax.OutKeyword {
			return true
		}
	}
	return false
}
