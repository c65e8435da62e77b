// Copyright © 2024 The ELPS authors

package match

import (
	"strings"

	"github.com/luthersystems/fixkit/syntax"
)

// NullCheckStyle is a set of null check forms.
type NullCheckStyle uint8

const (
	// EqualsToNull is x == null.
	EqualsToNull NullCheckStyle = 1 << iota
	// NotEqualsToNull is x != null.
	NotEqualsToNull
	// IsNull is x is null.
	IsNull
	// NotIsNull is !(x is null).
	NotIsNull
	// IsNotNull is x is not null.
	IsNotNull

	ComparisonToNull = EqualsToNull | NotEqualsToNull
	IsPatternNull    = IsNull | NotIsNull | IsNotNull
	CheckingNull     = EqualsToNull | IsNull
	CheckingNotNull  = NotEqualsToNull | NotIsNull | IsNotNull
	AllNullChecks    = CheckingNull | CheckingNotNull
)

var nullCheckNames = []string{"==null", "!=null", "is-null", "!is-null", "is-not-null"}

func (s NullCheckStyle) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	for i, name := range nullCheckNames {
		if s&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// NullCheck is a comparison of an expression against null.
type NullCheck struct {
	// Node is the whole check, without enclosing parentheses.
	Node *syntax.Node
	// Expression is the checked expression.
	Expression *syntax.Node
	Style      NullCheckStyle
}

// IsCheckingNull reports whether the check is true when the expression is
// null.
func (c NullCheck) IsCheckingNull() bool { return c.Style&CheckingNull != 0 }

// IsCheckingNotNull reports whether the check is true when the expression
// is not null.
func (c NullCheck) IsCheckingNotNull() bool { return c.Style&CheckingNotNull != 0 }

// NullCheckOf matches cond against the allowed null check styles. null may
// appear on either side of == and !=.
func NullCheckOf(cond *syntax.Node, allowed NullCheckStyle) (NullCheck, bool) {
	n := unparen(cond)
	if !valid(n) {
		return NullCheck{}, false
	}
	var expr *syntax.Node
	var style NullCheckStyle
	switch n.Kind() {
	case syntax.EqualsExpression, syntax.NotEqualsExpression:
		expr = nullComparand(n.Left(), n.Right())
		style = EqualsToNull
		if n.Kind() == syntax.NotEqualsExpression {
			style = NotEqualsToNull
		}
	case syntax.IsPatternExpression:
		switch p := n.Pattern(); {
		case isNullPattern(p):
			expr, style = n.Expression(), IsNull
		case p.Kind() == syntax.NotPattern && isNullPattern(p.Pattern()):
			expr, style = n.Expression(), IsNotNull
		}
	case syntax.LogicalNotExpression:
		inner := unparen(n.Operand())
		if inner.Kind() == syntax.IsPatternExpression && isNullPattern(inner.Pattern()) {
			expr, style = inner.Expression(), NotIsNull
		}
	}
	if expr == nil || allowed&style == 0 {
		return NullCheck{}, false
	}
	expr = unparen(expr)
	if !valid(expr) {
		return NullCheck{}, false
	}
	return NullCheck{Node: n, Expression: expr, Style: style}, true
}

// nullComparand returns the operand compared against null.
func nullComparand(left, right *syntax.Node) *syntax.Node {
	l, r := unparen(left), unparen(right)
	switch {
	case r.Kind() == syntax.NullLiteralExpression && l.Kind() != syntax.NullLiteralExpression:
		return left
	case l.Kind() == syntax.NullLiteralExpression && r.Kind() != syntax.NullLiteralExpression:
		return right
	}
	return nil
}

func isNullPattern(p *syntax.Node) bool {
	return p.Kind() == syntax.ConstantPattern && unparen(p.Expression()).Kind() == syntax.NullLiteralExpression
}
