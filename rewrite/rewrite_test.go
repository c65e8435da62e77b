// Copyright © 2024 The ELPS authors

package rewrite

import (
	"testing"

	"github.com/luthersystems/fixkit/formatter"
	"github.com/luthersystems/fixkit/match"
	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(name string) *syntax.Node { return syntax.IdentifierNameOf(name) }

func callStmt(name string, args ...*syntax.Node) *syntax.Node {
	return syntax.ExpressionStatementOf(syntax.Invocation(id(name), args...))
}

func assignStmt(left, right *syntax.Node) *syntax.Node {
	return syntax.ExpressionStatementOf(syntax.Assignment(syntax.SimpleAssignmentExpression, left, right))
}

// block returns a formatted block holding stmts.
func block(stmts ...*syntax.Node) *syntax.Node {
	return formatter.Format(syntax.BlockOf(stmts...), nil)
}

func first(root *syntax.Node, k syntax.Kind) *syntax.Node {
	ns := root.DescendantsOfKind(k)
	if len(ns) == 0 {
		return nil
	}
	return ns[0]
}

func formatted(root *syntax.Node) string {
	return formatter.FormatAnnotated(root, nil).FullText()
}

func TestRemoveRedundantAssignment(t *testing.T) {
	cls := formatter.Format(syntax.Class(nil, "C", nil,
		syntax.Method(nil, syntax.TypeOf("int"), "M", nil, syntax.BlockOf(
			syntax.LocalDeclaration(syntax.TypeOf("int"), "x", nil),
			assignStmt(id("x"), syntax.Invocation(id("Compute"))).
				WithTrailingTrivia(syntax.Space(), syntax.Comment("// keep"), syntax.EndOfLine("\n")),
			syntax.Return(id("x")),
		))), nil)

	m, ok := match.RedundantAssignmentReturn(first(cls, syntax.SimpleAssignmentExpression), nil)
	require.True(t, ok)
	root, err := RemoveRedundantAssignment(m)
	require.NoError(t, err)
	assert.Equal(t, "class C\n{\n    int M()\n    {\n        int x;\n        // keep\n        return Compute();\n    }\n}",
		formatted(root))

	left := Remaining(root, []syntax.Kind{syntax.SimpleAssignmentExpression}, func(n *syntax.Node) bool {
		_, ok := match.RedundantAssignmentReturn(n, nil)
		return ok
	})
	assert.Empty(t, left)
}

func TestUseConditionalAccess(t *testing.T) {
	b := block(syntax.If(
		syntax.Binary(syntax.NotEqualsExpression, id("x"), syntax.Null()),
		syntax.ExpressionStatementOf(syntax.Invocation(syntax.MemberAccess(id("x"), "M"), syntax.NumericLiteral("1"))),
		nil))
	require.Equal(t, "{\n    if (x != null)\n        x.M(1);\n}", b.FullText())

	m, ok := match.ConditionalAccessIfStatement(first(b, syntax.IfStatement))
	require.True(t, ok)
	root, err := UseConditionalAccess(m)
	require.NoError(t, err)
	out := formatter.FormatAnnotated(root, nil)
	assert.Equal(t, "{\n    x?.M(1);\n}", out.FullText())
	assert.Empty(t, Remaining(out, []syntax.Kind{syntax.IfStatement}, func(n *syntax.Node) bool {
		_, ok := match.ConditionalAccessIfStatement(n)
		return ok
	}))
}

func TestUseConditionalAccessAnd(t *testing.T) {
	notNull := func() *syntax.Node { return syntax.Binary(syntax.NotEqualsExpression, id("x"), syntax.Null()) }
	tests := []struct {
		name     string
		right    *syntax.Node
		expected string
	}{
		{
			name:     "comparison",
			right:    syntax.Binary(syntax.GreaterThanExpression, syntax.MemberAccess(syntax.MemberAccess(id("x"), "P"), "Length"), syntax.NumericLiteral("0")),
			expected: "x?.P.Length > 0",
		},
		{
			name:     "bool invocation",
			right:    syntax.Invocation(syntax.MemberAccess(id("x"), "Any")),
			expected: "x?.Any() == true",
		},
		{
			name:     "negated",
			right:    syntax.LogicalNot(syntax.Invocation(syntax.MemberAccess(id("x"), "Any"))),
			expected: "x?.Any() == false",
		},
		{
			name:     "not null",
			right:    syntax.Binary(syntax.NotEqualsExpression, syntax.MemberAccess(id("x"), "P"), syntax.Null()),
			expected: "x?.P != null",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := block(syntax.Return(syntax.Binary(syntax.LogicalAndExpression, notNull(), tt.right)))
			m, ok := match.ConditionalAccessLogicalAnd(first(b, syntax.LogicalAndExpression), nil)
			require.True(t, ok)
			root, err := UseConditionalAccessAnd(m)
			require.NoError(t, err)
			assert.Equal(t, "{\n    return "+tt.expected+";\n}", formatted(root))
		})
	}
}

func TestSimplifyBooleanComparison(t *testing.T) {
	tests := []struct {
		name     string
		cond     *syntax.Node
		expected string
	}{
		{"equals true", syntax.Binary(syntax.EqualsExpression, id("a"), syntax.True()), "a"},
		{"literal on left", syntax.Binary(syntax.EqualsExpression, syntax.True(), syntax.MemberAccess(id("a"), "B")), "a.B"},
		{"equals false", syntax.Binary(syntax.EqualsExpression, id("a"), syntax.False()), "!a"},
		{"not equals true", syntax.Binary(syntax.NotEqualsExpression, id("a"), syntax.True()), "!a"},
		{"not equals false", syntax.Binary(syntax.NotEqualsExpression, id("a"), syntax.False()), "a"},
		{"binary operand", syntax.Binary(syntax.EqualsExpression,
			syntax.Binary(syntax.LessThanExpression, id("a"), id("b")), syntax.False()), "!(a < b)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := block(syntax.If(tt.cond, syntax.Return(nil), nil))
			cmp := b.Statements().Child(0).Condition()
			m, ok := match.BooleanComparisonOf(cmp, nil)
			require.True(t, ok)
			root, err := SimplifyBooleanComparison(m)
			require.NoError(t, err)
			assert.Equal(t, "{\n    if ("+tt.expected+")\n        return;\n}", formatted(root))
		})
	}
}

func TestCoalesceIf(t *testing.T) {
	x := func() *syntax.Node { return id("x") }
	check := syntax.If(syntax.Binary(syntax.EqualsExpression, x(), syntax.Null()),
		assignStmt(x(), syntax.StringLiteral(`""`)), nil)

	t.Run("declaration", func(t *testing.T) {
		b := block(
			syntax.LocalDeclaration(syntax.TypeOf("string"), "x", syntax.Invocation(id("A"))),
			check,
			syntax.Return(x()))
		m, ok := match.CoalesceIfStatement(first(b, syntax.IfStatement), nil)
		require.True(t, ok)
		root, err := CoalesceIf(m)
		require.NoError(t, err)
		assert.Equal(t, "{\n    string x = A() ?? \"\";\n    return x;\n}", formatted(root))
	})

	t.Run("assignment of conditional", func(t *testing.T) {
		b := block(
			assignStmt(x(), syntax.Conditional(id("c"), id("a"), id("b"))),
			check,
			syntax.Return(x()))
		m, ok := match.CoalesceIfStatement(first(b, syntax.IfStatement), nil)
		require.True(t, ok)
		root, err := CoalesceIf(m)
		require.NoError(t, err)
		assert.Equal(t, "{\n    x = (c ? a : b) ?? \"\";\n    return x;\n}", formatted(root))
	})
}

func TestCoalesceConditional(t *testing.T) {
	b := block(assignStmt(id("y"), syntax.Conditional(
		syntax.Binary(syntax.NotEqualsExpression, id("x"), syntax.Null()), id("x"), id("z"))))
	m, ok := match.CoalesceConditionalOf(first(b, syntax.ConditionalExpression))
	require.True(t, ok)
	root, err := CoalesceConditional(m)
	require.NoError(t, err)
	assert.Equal(t, "{\n    y = x ?? z;\n}", formatted(root))
}

func TestBraces(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		b := block(syntax.If(id("a"), callStmt("A"), nil))
		m, ok := match.EmbeddedStatementOf(first(b, syntax.IfStatement))
		require.True(t, ok)
		root, err := AddBraces(m)
		require.NoError(t, err)
		out := formatter.FormatAnnotated(root, nil)
		assert.Equal(t, "{\n    if (a)\n    {\n        A();\n    }\n}", out.FullText())
		_, ok = match.EmbeddedStatementOf(first(out, syntax.IfStatement))
		assert.False(t, ok)
	})

	t.Run("remove", func(t *testing.T) {
		b := block(syntax.If(id("a"), syntax.BlockOf(callStmt("A")), syntax.Else(syntax.BlockOf(callStmt("B")))))
		require.Equal(t, "{\n    if (a)\n    {\n        A();\n    }\n    else\n    {\n        B();\n    }\n}", b.FullText())
		c, ok := match.IfChainOf(first(b, syntax.IfStatement))
		require.True(t, ok)
		root, err := RemoveBraces(c)
		require.NoError(t, err)
		out := formatter.FormatAnnotated(root, nil)
		assert.Equal(t, "{\n    if (a)\n        A();\n    else\n        B();\n}", out.FullText())
		c, ok = match.IfChainOf(first(out, syntax.IfStatement))
		require.True(t, ok)
		assert.Empty(t, c.Blocks())
	})
}

func concatOf(ops ...*syntax.Node) *syntax.Node {
	n := ops[0]
	for _, op := range ops[1:] {
		n = syntax.Binary(syntax.AddExpression, n, op)
	}
	return n
}

func TestJoinStrings(t *testing.T) {
	model := semantic.NewTable()
	model.AddStandardLibrary()

	tests := []struct {
		name     string
		expr     *syntax.Node
		model    semantic.Model
		expected string
	}{
		{
			name:     "literals",
			expr:     concatOf(syntax.StringLiteral(`"a"`), syntax.StringLiteral(`"b"`), syntax.StringLiteral(`"c"`)),
			expected: `s = "abc";`,
		},
		{
			name:     "verbatim literals",
			expr:     concatOf(syntax.StringLiteral(`@"a\"`), syntax.StringLiteral(`@"b"`)),
			expected: `s = @"a\b";`,
		},
		{
			name: "interpolated",
			expr: concatOf(
				syntax.InterpolatedString(false, syntax.InterpolatedText("a"), syntax.InterpolationOf(id("x"))),
				syntax.InterpolatedString(false, syntax.InterpolatedText("b"))),
			expected: `s = $"a{x}b";`,
		},
		{
			name:     "expression",
			expr:     concatOf(syntax.StringLiteral(`"a"`), id("x"), syntax.StringLiteral(`"{b}"`)),
			model:    model,
			expected: `s = $"a{x}{{b}}";`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := formatter.Format(assignStmt(id("s"), tt.expr), nil)
			m, ok := match.StringConcatenationOf(stmt.Expression().Right(), tt.model)
			require.True(t, ok)
			root, err := JoinStrings(m, false)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, formatted(root))
		})
	}

	// Unformatted on purpose: the line break inside the chain must survive.
	lines := assignStmt(id("s"), concatOf(
		syntax.StringLiteral(`"a\n"`),
		syntax.StringLiteral(`"b"`).WithLeadingTrivia(syntax.EndOfLine("\n"))))
	m, ok := match.StringConcatenationOf(lines.Expression().Right(), nil)
	require.True(t, ok)
	root, err := JoinStrings(m, true)
	require.NoError(t, err)
	assert.Equal(t, "s=@\"a\nb\";", formatted(root))

	mixed := assignStmt(id("s"), concatOf(syntax.StringLiteral(`@"a"`), syntax.StringLiteral(`"b"`)))
	m, ok = match.StringConcatenationOf(mixed.Expression().Right(), nil)
	require.True(t, ok)
	_, err = JoinStrings(m, false)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestDirectiveVeto(t *testing.T) {
	b := syntax.BlockOf(callStmt("A").WithLeadingTrivia(syntax.Directive("#if X"), syntax.EndOfLine("\n")))
	_, err := Replace(b, syntax.BlockOf())
	assert.ErrorIs(t, err, ErrDirective)

	list := syntax.BlockOf(callStmt("A"), callStmt("B").WithLeadingTrivia(syntax.Directive("#endif"), syntax.EndOfLine("\n")))
	_, err = ReplaceStatements(list.Statements().Child(0), 2, syntax.Empty())
	assert.ErrorIs(t, err, ErrDirective)

	// A directive before the replaced node is outside of it and kept.
	root, err := Replace(b.Statements().Child(0).Expression(), id("B"))
	require.NoError(t, err)
	assert.Equal(t, "{#if X\nB;}", root.FullText())
}

func TestRelocateAndRemove(t *testing.T) {
	b := syntax.BlockOf(callStmt("A"), callStmt("B").WithLeadingTrivia(syntax.Comment("/* b */"), syntax.Space()), callStmt("C"))
	root, err := Remove(b.Statements().Child(1))
	require.NoError(t, err)
	assert.Equal(t, "{A();/* b */ C();}", root.FullText())

	// Comments dropped by a replacement reach its leading trivia.
	call := syntax.Invocation(id("F"), id("a").WithTrailingTrivia(syntax.Space(), syntax.Comment("// a"), syntax.EndOfLine("\n")))
	stmt := syntax.ExpressionStatementOf(call).WithLeadingTrivia(syntax.EndOfLine("\n"), syntax.Whitespace("  "))
	root, err = Replace(stmt.Expression(), id("G"))
	require.NoError(t, err)
	assert.Equal(t, "\n  // a\n  G;", root.FullText())
}
