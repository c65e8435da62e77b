// Copyright © 2024 The ELPS authors

package match

import (
	"github.com/luthersystems/fixkit/predicate"
	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
)

// BooleanComparison is an equality comparison of a boolean expression with
// a boolean literal: x == true, false != x and so on.
type BooleanComparison struct {
	Expression *syntax.Node
	// Literal is the true or false literal operand.
	Literal *syntax.Node
	// Other is the remaining operand.
	Other *syntax.Node
	// Negate is set when the comparison is equivalent to !Other.
	Negate bool
}

// LiteralOnLeft reports whether the literal is the left operand.
func (b BooleanComparison) LiteralOnLeft() bool {
	return b.Expression.Left().SameNode(b.Literal)
}

// BooleanComparisonOf matches == and != with exactly one boolean literal
// operand. With a model the other operand must have type bool; without one
// it is accepted when it is not itself a literal. A conditional access
// yields a nullable bool and never matches.
func BooleanComparisonOf(binary *syntax.Node, model semantic.Model) (BooleanComparison, bool) {
	if !binary.Is(syntax.EqualsExpression, syntax.NotEqualsExpression) || !valid(binary) {
		return BooleanComparison{}, false
	}
	left, right := binary.Left(), binary.Right()
	var lit, other *syntax.Node
	switch {
	case isBoolLiteral(left) && !isBoolLiteral(right):
		lit, other = left, right
	case isBoolLiteral(right) && !isBoolLiteral(left):
		lit, other = right, left
	default:
		return BooleanComparison{}, false
	}
	if unparen(other).Kind() == syntax.ConditionalAccessExpression {
		return BooleanComparison{}, false
	}
	if model != nil {
		if !predicate.IsBoolean(model.TypeOf(other)) {
			return BooleanComparison{}, false
		}
	} else if other.Kind().IsLiteralExpression() {
		return BooleanComparison{}, false
	}
	isTrue := lit.Kind() == syntax.TrueLiteralExpression
	negate := isTrue == (binary.Kind() == syntax.NotEqualsExpression)
	return BooleanComparison{Expression: binary, Literal: lit, Other: other, Negate: negate}, true
}

func isBoolLiteral(n *syntax.Node) bool {
	return n.Is(syntax.TrueLiteralExpression, syntax.FalseLiteralExpression)
}
