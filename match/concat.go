// Copyright © 2024 The ELPS authors

package match

import (
	"github.com/luthersystems/fixkit/predicate"
	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
)

// StringConcatenation is a left-associated chain of string + operators,
// a + b + c, with its operands in source order.
type StringConcatenation struct {
	Expression *syntax.Node
	Operands   []*syntax.Node

	// ContainsNonSpecificExpression is set when an operand is neither a
	// string literal nor an interpolated string.
	ContainsNonSpecificExpression bool
	ContainsRegularLiteral        bool
	ContainsVerbatimLiteral       bool
	ContainsRegularInterpolated   bool
	ContainsVerbatimInterpolated  bool
}

// Equal reports whether c and o match the same expression.
func (c StringConcatenation) Equal(o StringConcatenation) bool {
	return c.Expression.SameNode(o.Expression)
}

// ContainsLiteral reports whether an operand is a string literal.
func (c StringConcatenation) ContainsLiteral() bool {
	return c.ContainsRegularLiteral || c.ContainsVerbatimLiteral
}

// ContainsInterpolated reports whether an operand is an interpolated
// string.
func (c StringConcatenation) ContainsInterpolated() bool {
	return c.ContainsRegularInterpolated || c.ContainsVerbatimInterpolated
}

// ContainsNonLiteral reports whether an operand is anything but a string
// literal.
func (c StringConcatenation) ContainsNonLiteral() bool {
	return c.ContainsInterpolated() || c.ContainsNonSpecificExpression
}

// ContainsRegular reports whether a literal or interpolated operand is not
// verbatim.
func (c StringConcatenation) ContainsRegular() bool {
	return c.ContainsRegularLiteral || c.ContainsRegularInterpolated
}

// ContainsVerbatim reports whether a literal or interpolated operand is
// verbatim.
func (c StringConcatenation) ContainsVerbatim() bool {
	return c.ContainsVerbatimLiteral || c.ContainsVerbatimInterpolated
}

// CanJoin reports whether the chain can become a single string: every
// operand is a literal, or every operand is an interpolated string, and
// the operands are all verbatim or all regular. Mixed chains are left
// alone.
func (c StringConcatenation) CanJoin() bool {
	return !c.ContainsNonSpecificExpression &&
		c.ContainsLiteral() != c.ContainsInterpolated() &&
		c.ContainsRegular() != c.ContainsVerbatim()
}

// StringConcatenationOf matches the chain rooted at add, walking the left
// operands while each + resolves to the built-in string concatenation.
// Without a model, a chain matches only when every operand is a string
// literal or an interpolated string.
func StringConcatenationOf(add *syntax.Node, model semantic.Model) (StringConcatenation, bool) {
	if add.Kind() != syntax.AddExpression || !valid(add) {
		return StringConcatenation{}, false
	}
	var rev []*syntax.Node
	n := add
	for {
		if model != nil && !predicate.IsBuiltinStringConcatOperator(model.SymbolOf(n)) {
			return StringConcatenation{}, false
		}
		rev = append(rev, n.Right())
		left := n.Left()
		if left.Kind() != syntax.AddExpression {
			rev = append(rev, left)
			break
		}
		n = left
	}
	c := StringConcatenation{Expression: add, Operands: make([]*syntax.Node, len(rev))}
	for i, op := range rev {
		c.Operands[len(rev)-1-i] = op
	}
	for _, op := range c.Operands {
		switch op.Kind() {
		case syntax.StringLiteralExpression:
			if !syntax.WellFormedLiteral(syntax.StringLiteralToken, op.Token().Text()) {
				return StringConcatenation{}, false
			}
			if semantic.IsVerbatimString(op.Token().Text()) {
				c.ContainsVerbatimLiteral = true
			} else {
				c.ContainsRegularLiteral = true
			}
		case syntax.InterpolatedStringExpression:
			if IsVerbatimInterpolated(op) {
				c.ContainsVerbatimInterpolated = true
			} else {
				c.ContainsRegularInterpolated = true
			}
		default:
			c.ContainsNonSpecificExpression = true
		}
	}
	if model == nil && c.ContainsNonSpecificExpression {
		return StringConcatenation{}, false
	}
	return c, true
}

// IsVerbatimInterpolated reports whether an interpolated string starts with
// $@ or @$.
func IsVerbatimInterpolated(n *syntax.Node) bool {
	s := n.StartToken().Text()
	return s == `$@"` || s == `@$"`
}
