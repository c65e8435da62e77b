// Copyright © 2024 The ELPS authors

package match

import (
	"testing"

	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(name string) *syntax.Node { return syntax.IdentifierNameOf(name) }

func assign(left, right *syntax.Node) *syntax.Node {
	return syntax.ExpressionStatementOf(syntax.Assignment(syntax.SimpleAssignmentExpression, left, right))
}

func call(recv, name string, args ...*syntax.Node) *syntax.Node {
	return syntax.Invocation(syntax.MemberAccess(id(recv), name), args...)
}

func eq(k syntax.Kind, l, r *syntax.Node) *syntax.Node { return syntax.Binary(k, l, r) }

// inMethod returns the statements of "int M(params) { stmts }" declared in
// class C.
func inMethod(params []*syntax.Node, stmts ...*syntax.Node) []*syntax.Node {
	m := syntax.Method(nil, syntax.TypeOf("int"), "M", params, syntax.BlockOf(stmts...))
	root := syntax.Class(nil, "C", nil, m)
	return root.Members().Child(0).Body().Statements().Children()
}

func stdTable() *semantic.Table {
	t := semantic.NewTable()
	t.AddStandardLibrary()
	return t
}

func withDirective(n *syntax.Node) *syntax.Node {
	return n.WithLeadingTrivia(syntax.Directive("#if DEBUG"), syntax.EndOfLine("\n"))
}

func TestNullCheckOf(t *testing.T) {
	isNull := syntax.IsPattern(id("x"), syntax.ConstantPatternOf(syntax.Null()))
	tests := []struct {
		name    string
		cond    *syntax.Node
		allowed NullCheckStyle
		style   NullCheckStyle
		ok      bool
	}{
		{"equals", eq(syntax.EqualsExpression, id("x"), syntax.Null()), AllNullChecks, EqualsToNull, true},
		{"null on left", eq(syntax.NotEqualsExpression, syntax.Null(), id("x")), AllNullChecks, NotEqualsToNull, true},
		{"is null", isNull, AllNullChecks, IsNull, true},
		{"is not null", syntax.IsPattern(id("x"), syntax.NotPatternOf(syntax.ConstantPatternOf(syntax.Null()))), AllNullChecks, IsNotNull, true},
		{"not is null", syntax.LogicalNot(syntax.Parenthesized(isNull)), AllNullChecks, NotIsNull, true},
		{"parenthesized", syntax.Parenthesized(eq(syntax.NotEqualsExpression, id("x"), syntax.Null())), CheckingNotNull, NotEqualsToNull, true},
		{"null both sides", eq(syntax.EqualsExpression, syntax.Null(), syntax.Null()), AllNullChecks, 0, false},
		{"not null literal", eq(syntax.EqualsExpression, id("x"), syntax.NumericLiteral("0")), AllNullChecks, 0, false},
		{"style not allowed", eq(syntax.EqualsExpression, id("x"), syntax.Null()), CheckingNotNull, 0, false},
		{"syntax error", eq(syntax.EqualsExpression, id("x").WithError(), syntax.Null()), AllNullChecks, 0, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			nc, ok := NullCheckOf(test.cond, test.allowed)
			require.Equal(t, test.ok, ok)
			if !ok {
				assert.Equal(t, NullCheck{}, nc)
				return
			}
			assert.Equal(t, test.style, nc.Style)
			assert.Equal(t, "x", nc.Expression.Text())
		})
	}
	assert.Equal(t, "==null|!=null", ComparisonToNull.String())
	assert.Equal(t, "none", NullCheckStyle(0).String())
}

func TestConditionalAccessIf(t *testing.T) {
	notNull := eq(syntax.NotEqualsExpression, id("obj"), syntax.Null())
	tests := []struct {
		name string
		stmt *syntax.Node
		ok   bool
	}{
		{"plain", syntax.If(notNull, syntax.ExpressionStatementOf(call("obj", "Method")), nil), true},
		{"block", syntax.If(notNull, syntax.BlockOf(syntax.ExpressionStatementOf(call("obj", "Method"))), nil), true},
		{"other receiver", syntax.If(notNull, syntax.ExpressionStatementOf(call("other", "Method")), nil), false},
		{"equals null", syntax.If(eq(syntax.EqualsExpression, id("obj"), syntax.Null()),
			syntax.ExpressionStatementOf(call("obj", "Method")), nil), false},
		{"else", syntax.If(notNull, syntax.ExpressionStatementOf(call("obj", "Method")), syntax.Else(syntax.Empty())), false},
		{"two statements", syntax.If(notNull, syntax.BlockOf(
			syntax.ExpressionStatementOf(call("obj", "Method")),
			syntax.ExpressionStatementOf(call("obj", "Method")),
		), nil), false},
		{"directive inside", syntax.If(notNull, withDirective(syntax.ExpressionStatementOf(call("obj", "Method"))), nil), false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m, ok := ConditionalAccessIfStatement(test.stmt)
			require.Equal(t, test.ok, ok)
			if ok {
				assert.Equal(t, "Method", m.Invocation.NameText())
				assert.Equal(t, "obj", m.NullCheck.Expression.Text())
			}
		})
	}
}

func TestConditionalAccessLogicalAnd(t *testing.T) {
	notNull := func() *syntax.Node { return eq(syntax.NotEqualsExpression, id("s"), syntax.Null()) }
	length := func() *syntax.Node { return syntax.MemberAccess(id("s"), "Length") }
	tests := []struct {
		name  string
		right *syntax.Node
		ok    bool
	}{
		{"comparison with constant", eq(syntax.GreaterThanExpression, length(), syntax.NumericLiteral("0")), true},
		{"invocation", call("s", "StartsWith", syntax.StringLiteral(`"a"`)), true},
		{"negated", syntax.LogicalNot(call("s", "Any")), true},
		{"compared to null", eq(syntax.EqualsExpression, length(), syntax.Null()), false},
		{"not equal to value", eq(syntax.NotEqualsExpression, length(), syntax.NumericLiteral("0")), false},
		{"out argument", syntax.Invocation(syntax.MemberAccess(id("s"), "TryGet"),
			syntax.RefArgument(syntax.OutKeyword, id("v"))), false},
		{"other receiver", call("t", "Any"), false},
		{"receiver not leftmost", eq(syntax.GreaterThanExpression, syntax.NumericLiteral("0"), length()), false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			and := syntax.Binary(syntax.LogicalAndExpression, notNull(), test.right)
			m, ok := ConditionalAccessLogicalAnd(and, nil)
			require.Equal(t, test.ok, ok)
			if ok {
				assert.Equal(t, "s", m.Target.Text())
				assert.Equal(t, syntax.SimpleMemberAccessExpression, m.Target.Parent().Kind())
			}
		})
	}

	tbl := stdTable()
	tbl.AddSymbol(&semantic.Symbol{Name: "s", Kind: semantic.SymLocal, Type: tbl.Special(semantic.SpecialString)})
	and := syntax.Binary(syntax.LogicalAndExpression, notNull(), eq(syntax.GreaterThanExpression, length(), syntax.NumericLiteral("0")))
	_, ok := ConditionalAccessLogicalAnd(and, tbl)
	assert.True(t, ok)

	tbl = stdTable()
	tbl.AddSymbol(&semantic.Symbol{Name: "s", Kind: semantic.SymLocal, Type: tbl.Special(semantic.SpecialInt32)})
	_, ok = ConditionalAccessLogicalAnd(and, tbl)
	assert.False(t, ok, "value types cannot be conditionally accessed")
}

func TestRedundantAssignmentReturn(t *testing.T) {
	body := func(params []*syntax.Node, decl bool) []*syntax.Node {
		stmts := []*syntax.Node{
			assign(id("x"), syntax.Invocation(id("Compute"))),
			syntax.Return(id("x")),
		}
		if decl {
			stmts = append([]*syntax.Node{syntax.LocalDeclaration(syntax.TypeOf("int"), "x", nil)}, stmts...)
		}
		return inMethod(params, stmts...)
	}
	refParam := []*syntax.Node{syntax.Param([]syntax.Kind{syntax.RefKeyword}, syntax.TypeOf("int"), "x")}
	byValue := []*syntax.Node{syntax.Param(nil, syntax.TypeOf("int"), "x")}

	stmts := body(nil, true)
	m, ok := RedundantAssignmentReturn(stmts[1].Expression(), nil)
	require.True(t, ok)
	assert.Equal(t, "x", m.Name.Text())
	assert.Equal(t, "Compute()", m.Right.Text())
	assert.True(t, m.Return.SameNode(stmts[2]))

	stmts = body(byValue, false)
	_, ok = RedundantAssignmentReturn(stmts[0].Expression(), nil)
	assert.True(t, ok, "by-value parameter")

	stmts = body(refParam, false)
	_, ok = RedundantAssignmentReturn(stmts[0].Expression(), nil)
	assert.False(t, ok, "ref parameter")

	stmts = body(nil, false)
	_, ok = RedundantAssignmentReturn(stmts[0].Expression(), nil)
	assert.False(t, ok, "undeclared name is a field")

	tbl := stdTable()
	tbl.AddSymbol(&semantic.Symbol{Name: "x", Kind: semantic.SymLocal, Type: tbl.Special(semantic.SpecialInt32)})
	stmts = body(nil, true)
	_, ok = RedundantAssignmentReturn(stmts[1].Expression(), tbl)
	assert.True(t, ok)

	tbl = stdTable()
	tbl.AddSymbol(&semantic.Symbol{Name: "x", Kind: semantic.SymParameter, RefKind: semantic.RefRef})
	stmts = body(refParam, false)
	_, ok = RedundantAssignmentReturn(stmts[0].Expression(), tbl)
	assert.False(t, ok)

	stmts = inMethod(nil,
		syntax.LocalDeclaration(syntax.TypeOf("int"), "x", nil),
		assign(id("x"), syntax.Invocation(id("Compute"))),
		withDirective(syntax.Return(id("x"))),
	)
	_, ok = RedundantAssignmentReturn(stmts[1].Expression(), nil)
	assert.False(t, ok, "directive before return")

	stmts = inMethod(nil,
		syntax.LocalDeclaration(syntax.TypeOf("int"), "x", nil),
		assign(id("x"), syntax.Invocation(id("Compute"))),
		syntax.Return(id("y")),
	)
	_, ok = RedundantAssignmentReturn(stmts[1].Expression(), nil)
	assert.False(t, ok, "returns another name")
}

func TestStringConcatenation(t *testing.T) {
	lit := func(s string) *syntax.Node { return syntax.StringLiteral(s) }
	add := func(ops ...*syntax.Node) *syntax.Node {
		n := ops[0]
		for _, op := range ops[1:] {
			n = syntax.Binary(syntax.AddExpression, n, op)
		}
		return n
	}
	tbl := stdTable()
	tbl.AddSymbol(&semantic.Symbol{Name: "x", Kind: semantic.SymLocal, Type: tbl.Special(semantic.SpecialString)})

	mixed := add(lit(`"a"`), lit(`"b"`), id("x"), lit(`"c"`))
	c, ok := StringConcatenationOf(mixed, tbl)
	require.True(t, ok)
	assert.Len(t, c.Operands, 4)
	assert.Equal(t, "x", c.Operands[2].Text())
	assert.True(t, c.ContainsNonSpecificExpression)
	assert.True(t, c.ContainsRegularLiteral)
	assert.False(t, c.CanJoin())

	_, ok = StringConcatenationOf(mixed, nil)
	assert.False(t, ok, "non-literal operands need a model")

	c, ok = StringConcatenationOf(add(lit(`"a"`), lit(`"b"`), lit(`"c"`)), nil)
	require.True(t, ok)
	assert.True(t, c.CanJoin())

	c, ok = StringConcatenationOf(add(lit(`"a"`), lit(`@"b"`)), nil)
	require.True(t, ok)
	assert.True(t, c.ContainsVerbatimLiteral)
	assert.False(t, c.CanJoin(), "regular and verbatim literals")

	interp := syntax.InterpolatedString(false, syntax.InterpolatedText("a"), syntax.InterpolationOf(id("x")))
	c, ok = StringConcatenationOf(add(lit(`"a"`), interp), tbl)
	require.True(t, ok)
	assert.True(t, c.ContainsRegularInterpolated)
	assert.False(t, c.CanJoin(), "literal and interpolated")
	assert.True(t, IsVerbatimInterpolated(syntax.InterpolatedString(true)))

	ints := add(syntax.NumericLiteral("1"), syntax.NumericLiteral("2"))
	_, ok = StringConcatenationOf(ints, tbl)
	assert.False(t, ok)

	bad := add(lit(`"a"`), syntax.NewNode(syntax.StringLiteralExpression,
		syntax.TokenWithText(syntax.StringLiteralToken, "x", nil, nil)))
	_, ok = StringConcatenationOf(bad, nil)
	assert.False(t, ok, "operand without quotes")
}

func TestStringConcatenationEqual(t *testing.T) {
	chain := syntax.Binary(syntax.AddExpression, syntax.StringLiteral(`"a"`), syntax.StringLiteral(`"b"`))
	other := syntax.Binary(syntax.AddExpression, syntax.StringLiteral(`"a"`), syntax.StringLiteral(`"b"`))

	c1, ok := StringConcatenationOf(chain, nil)
	require.True(t, ok)
	c2, ok := StringConcatenationOf(chain, nil)
	require.True(t, ok)
	c3, ok := StringConcatenationOf(other, nil)
	require.True(t, ok)

	assert.True(t, c1.Equal(c2))
	assert.False(t, c1.Equal(c3), "equivalent text, different node")
	assert.False(t, c1.Equal(StringConcatenation{}))
}

func TestBooleanComparison(t *testing.T) {
	tests := []struct {
		name   string
		expr   *syntax.Node
		negate bool
		left   bool
		ok     bool
	}{
		{"x == true", eq(syntax.EqualsExpression, id("x"), syntax.True()), false, false, true},
		{"x != true", eq(syntax.NotEqualsExpression, id("x"), syntax.True()), true, false, true},
		{"x == false", eq(syntax.EqualsExpression, id("x"), syntax.False()), true, false, true},
		{"false != x", eq(syntax.NotEqualsExpression, syntax.False(), id("x")), false, true, true},
		{"true == false", eq(syntax.EqualsExpression, syntax.True(), syntax.False()), false, false, false},
		{"x == 1", eq(syntax.EqualsExpression, id("x"), syntax.NumericLiteral("1")), false, false, false},
		{"null == true", eq(syntax.EqualsExpression, syntax.Null(), syntax.True()), false, false, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, ok := BooleanComparisonOf(test.expr, nil)
			require.Equal(t, test.ok, ok)
			if ok {
				assert.Equal(t, test.negate, b.Negate)
				assert.Equal(t, test.left, b.LiteralOnLeft())
				assert.Equal(t, "x", b.Other.Text())
			}
		})
	}

	tbl := stdTable()
	tbl.AddSymbol(&semantic.Symbol{Name: "x", Kind: semantic.SymLocal, Type: tbl.Special(semantic.SpecialBoolean)})
	tbl.AddSymbol(&semantic.Symbol{Name: "n", Kind: semantic.SymLocal})
	_, ok := BooleanComparisonOf(eq(syntax.EqualsExpression, id("x"), syntax.True()), tbl)
	assert.True(t, ok)
	_, ok = BooleanComparisonOf(eq(syntax.EqualsExpression, id("n"), syntax.True()), tbl)
	assert.False(t, ok, "nullable or unknown operand")
}

func TestEmbeddedStatement(t *testing.T) {
	stmt := func() *syntax.Node { return syntax.ExpressionStatementOf(call("a", "M")) }
	tests := []struct {
		name  string
		owner *syntax.Node
		ok    bool
	}{
		{"if", syntax.If(id("c"), stmt(), nil), true},
		{"while", syntax.While(id("c"), stmt()), true},
		{"foreach", syntax.ForEach(syntax.TypeOf("var"), "i", id("xs"), stmt()), true},
		{"else", syntax.Else(stmt()), true},
		{"block", syntax.If(id("c"), syntax.BlockOf(stmt()), nil), false},
		{"else if", syntax.Else(syntax.If(id("c"), stmt(), nil)), false},
		{"stacked using", syntax.Using(id("a"), syntax.Using(id("b"), syntax.BlockOf())), false},
		{"using", syntax.Using(id("a"), stmt()), true},
		{"not an owner", stmt(), false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			e, ok := EmbeddedStatementOf(test.owner)
			require.Equal(t, test.ok, ok)
			if ok {
				assert.True(t, e.Statement.SameNode(test.owner.Statement()))
				assert.Contains(t, EmbeddedOwners, test.owner.Kind())
			}
		})
	}
}

func TestIfChain(t *testing.T) {
	stmt := func(name string) *syntax.Node { return syntax.ExpressionStatementOf(call(name, "M")) }
	chain := syntax.If(id("a"), syntax.BlockOf(stmt("x")),
		syntax.Else(syntax.If(id("b"), syntax.BlockOf(stmt("y")),
			syntax.Else(syntax.BlockOf(stmt("z"))))))

	c, ok := IfChainOf(chain)
	require.True(t, ok)
	assert.Len(t, c.Statements, 3)
	assert.True(t, c.HasElse)
	assert.Len(t, c.Blocks(), 3)
	assert.True(t, c.CanRemoveBraces())

	inner := chain.Else().Statement()
	_, ok = IfChainOf(inner)
	assert.False(t, ok, "else-if is part of the topmost chain")

	noElse, ok := IfChainOf(syntax.If(id("a"), syntax.BlockOf(stmt("x")), nil))
	require.True(t, ok)
	assert.False(t, noElse.HasElse)
	assert.False(t, noElse.CanRemoveBraces())

	nested, ok := IfChainOf(syntax.If(id("a"),
		syntax.BlockOf(syntax.If(id("b"), stmt("x"), nil)),
		syntax.Else(syntax.BlockOf(stmt("y")))))
	require.True(t, ok)
	assert.False(t, nested.CanRemoveBraces(), "dangling else")

	comment := syntax.ExpressionStatementOf(call("x", "M")).WithLeadingTrivia(syntax.Comment("// keep"), syntax.EndOfLine("\n"))
	commented, ok := IfChainOf(syntax.If(id("a"), syntax.BlockOf(comment), syntax.Else(syntax.BlockOf(stmt("y")))))
	require.True(t, ok)
	assert.False(t, commented.CanRemoveBraces())
}

func TestCoalesceIf(t *testing.T) {
	check := func() *syntax.Node { return eq(syntax.EqualsExpression, id("x"), syntax.Null()) }
	fallback := func() *syntax.Node { return assign(id("x"), syntax.StringLiteral(`""`)) }
	use := syntax.ExpressionStatementOf(syntax.Invocation(id("Use"), id("x")))

	stmts := inMethod(nil,
		syntax.LocalDeclaration(syntax.TypeOf("string"), "x", syntax.Invocation(id("F"))),
		syntax.If(check(), fallback(), nil),
		use,
	)
	m, ok := CoalesceIfStatement(stmts[1], nil)
	require.True(t, ok)
	assert.Equal(t, "F()", m.Value.Text())
	assert.True(t, m.Previous.SameNode(stmts[0]))
	assert.Equal(t, `""`, m.Assignment.Right.Text())

	stmts = inMethod(nil,
		assign(id("x"), syntax.Invocation(id("F"))),
		syntax.If(check(), syntax.BlockOf(fallback()), nil),
		use,
	)
	m, ok = CoalesceIfStatement(stmts[1], nil)
	require.True(t, ok, "assignment form")
	assert.Equal(t, "F()", m.Value.Text())

	stmts = inMethod(nil,
		syntax.LocalDeclaration(syntax.TypeOf("string"), "y", syntax.Invocation(id("F"))),
		syntax.If(check(), fallback(), nil),
		use,
	)
	_, ok = CoalesceIfStatement(stmts[1], nil)
	assert.False(t, ok, "different variable")

	stmts = inMethod(nil,
		syntax.LocalDeclaration(syntax.TypeOf("string"), "x", syntax.Invocation(id("F"))),
		withDirective(syntax.If(check(), fallback(), nil)),
		use,
	)
	_, ok = CoalesceIfStatement(stmts[1], nil)
	assert.False(t, ok, "directive between value and if")

	stmts = inMethod(nil,
		syntax.LocalDeclaration(syntax.TypeOf("string"), "x", syntax.Invocation(id("F"))),
		syntax.If(eq(syntax.NotEqualsExpression, id("x"), syntax.Null()), fallback(), nil),
		use,
	)
	_, ok = CoalesceIfStatement(stmts[1], nil)
	assert.False(t, ok, "not a null check")

	tbl := stdTable()
	tbl.AddSymbol(&semantic.Symbol{Name: "x", Kind: semantic.SymLocal, Type: tbl.Special(semantic.SpecialInt32)})
	stmts = inMethod(nil,
		syntax.LocalDeclaration(syntax.TypeOf("int"), "x", syntax.Invocation(id("F"))),
		syntax.If(check(), fallback(), nil),
		use,
	)
	_, ok = CoalesceIfStatement(stmts[1], tbl)
	assert.False(t, ok, "value type")
}

func TestCoalesceConditional(t *testing.T) {
	notNull := syntax.Conditional(eq(syntax.NotEqualsExpression, id("x"), syntax.Null()), id("x"), id("y"))
	c, ok := CoalesceConditionalOf(notNull)
	require.True(t, ok)
	assert.Equal(t, "x", c.Expression.Text())
	assert.Equal(t, "y", c.Alternative.Text())

	isNull := syntax.Conditional(eq(syntax.EqualsExpression, id("x"), syntax.Null()), id("y"), id("x"))
	c, ok = CoalesceConditionalOf(isNull)
	require.True(t, ok)
	assert.Equal(t, "y", c.Alternative.Text())

	wrong := syntax.Conditional(eq(syntax.NotEqualsExpression, id("x"), syntax.Null()), id("y"), id("x"))
	_, ok = CoalesceConditionalOf(wrong)
	assert.False(t, ok)
}

func TestWhereChain(t *testing.T) {
	chain := func(recv, outer string) *syntax.Node {
		return syntax.Invocation(syntax.MemberAccess(call(recv, "Where", id("p")), outer))
	}
	m, ok := WhereChainOf(chain("xs", "Any"), nil, semantic.WellKnown{})
	require.True(t, ok)
	assert.Equal(t, "p", m.Predicate.Text())
	assert.Equal(t, "Any", m.Outer.NameText())
	assert.Equal(t, "Where", m.Where.NameText())

	_, ok = WhereChainOf(chain("xs", "ToList"), nil, semantic.WellKnown{})
	assert.False(t, ok)

	tbl := stdTable()
	wk := tbl.WellKnown()
	tbl.AddSymbol(&semantic.Symbol{Name: "xs", Kind: semantic.SymLocal, Type: tbl.LookupType("List")})
	query := tbl.AddType(&semantic.Type{Name: "Query", Kind: semantic.TypeClass})
	tbl.AddMember(query, &semantic.Symbol{Name: "Where", Kind: semantic.SymMethod, Type: query,
		Parameters: []*semantic.Symbol{{Name: "p", Kind: semantic.SymParameter}}})
	tbl.AddMember(query, &semantic.Symbol{Name: "First", Kind: semantic.SymMethod, Type: query})
	tbl.AddSymbol(&semantic.Symbol{Name: "q", Kind: semantic.SymLocal, Type: query})

	_, ok = WhereChainOf(chain("xs", "First"), tbl, wk)
	assert.True(t, ok)
	_, ok = WhereChainOf(chain("q", "First"), tbl, wk)
	assert.False(t, ok, "user-defined Where")
}
