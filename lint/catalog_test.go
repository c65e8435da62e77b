// Copyright © 2024 The ELPS authors

package lint_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luthersystems/fixkit/fixtest"
	"github.com/luthersystems/fixkit/lint"
	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
)

func id(name string) *syntax.Node { return syntax.IdentifierNameOf(name) }

func callStmt(name string) *syntax.Node {
	return syntax.ExpressionStatementOf(syntax.Invocation(id(name)))
}

func TestCatalogAvoidWhileTrue(t *testing.T) {
	r := &fixtest.Runner{Analyzer: lint.AnalyzerAvoidWhileTrue}
	r.Run(t, []fixtest.Case{
		{
			Name:       "while true",
			Root:       fixtest.Block(syntax.While(syntax.True(), syntax.BlockOf(syntax.Break()))),
			Want:       []string{"Use 'for (;;)' instead of 'while (true)'"},
			Fixed:      "{\n    for (;;)\n    {\n        break;\n    }\n}",
			Idempotent: true,
		},
		{
			Name: "condition",
			Root: fixtest.Block(syntax.While(id("ok"), syntax.BlockOf(syntax.Break()))),
		},
	})
}

func TestCatalogAddBraces(t *testing.T) {
	r := &fixtest.Runner{Analyzer: lint.AnalyzerAddBraces}
	embedded := fixtest.Block(syntax.If(id("a"), callStmt("A"), nil))
	r.Run(t, []fixtest.Case{
		{
			Name:       "if",
			Root:       embedded,
			Want:       []string{"Add braces"},
			Fixed:      "{\n    if (a)\n    {\n        A();\n    }\n}",
			Idempotent: true,
		},
		{
			Name:    "multiline only",
			Root:    embedded,
			Options: lint.Options{"multiline-only": true},
		},
	})

	diags := r.Lint(t, embedded, nil, nil)
	fixtest.AssertOnLine(t, diags, 3, "Add braces")
	fixtest.AssertSpanText(t, embedded, diags[0], "A();")
}

func TestCatalogSimplifyBooleanComparison(t *testing.T) {
	r := &fixtest.Runner{Analyzer: lint.AnalyzerSimplifyBooleanComparison}
	tbl := fixtest.Table()
	tbl.AddSymbol(&semantic.Symbol{Name: "a", Kind: semantic.SymLocal, Type: tbl.Special(semantic.SpecialBoolean)})
	nullable := fixtest.Table()
	nullable.AddSymbol(&semantic.Symbol{Name: "a", Kind: semantic.SymLocal, Type: nullable.Special(semantic.SpecialObject)})
	cmp := fixtest.Block(syntax.If(syntax.Binary(syntax.EqualsExpression, id("a"), syntax.False()), syntax.Return(nil), nil))
	r.Run(t, []fixtest.Case{
		{
			Name:       "equals false",
			Root:       cmp,
			Model:      tbl,
			Want:       []string{"Simplify boolean comparison"},
			Fixed:      "{\n    if (!a)\n        return;\n}",
			Idempotent: true,
		},
		{
			Name: "no model",
			Root: cmp,
			Want: []string{"Simplify boolean comparison"},
		},
		{
			Name:  "not boolean",
			Root:  cmp,
			Model: nullable,
		},
		{
			Name:  "two variables",
			Root:  fixtest.Block(syntax.If(syntax.Binary(syntax.EqualsExpression, id("a"), id("b")), syntax.Return(nil), nil)),
			Model: tbl,
		},
	})
}

func TestCatalogCallThenByInsteadOfOrderBy(t *testing.T) {
	r := &fixtest.Runner{Analyzer: lint.AnalyzerCallThenByInsteadOfOrderBy}
	call := func(recv *syntax.Node, method, arg string) *syntax.Node {
		return syntax.Invocation(syntax.MemberAccess(recv, method), id(arg))
	}
	assign := func(expr *syntax.Node) *syntax.Node {
		return fixtest.Block(syntax.ExpressionStatementOf(
			syntax.Assignment(syntax.SimpleAssignmentExpression, id("y"), expr)))
	}
	r.Run(t, []fixtest.Case{
		{
			Name:       "order by twice",
			Root:       assign(call(call(id("xs"), "OrderBy", "a"), "OrderBy", "b")),
			Want:       []string{"Call 'ThenBy' instead of 'OrderBy'"},
			Fixed:      "{\n    y = xs.OrderBy(a).ThenBy(b);\n}",
			Idempotent: true,
		},
		{
			Name:       "descending after then by",
			Root:       assign(call(call(call(id("xs"), "OrderBy", "a"), "ThenBy", "b"), "OrderByDescending", "c")),
			Want:       []string{"Call 'ThenByDescending' instead of 'OrderByDescending'"},
			Fixed:      "{\n    y = xs.OrderBy(a).ThenBy(b).ThenByDescending(c);\n}",
			Idempotent: true,
		},
		{
			Name: "single order by",
			Root: assign(call(id("xs"), "OrderBy", "a")),
		},
		{
			Name: "after where",
			Root: assign(call(call(id("xs"), "Where", "p"), "OrderBy", "a")),
		},
		{
			Name:  "not enumerable",
			Root:  assign(call(call(id("xs"), "OrderBy", "a"), "OrderBy", "b")),
			Model: fixtest.Table(),
		},
	})
}

func TestCatalogAddStaticModifierToAllPartialClassDeclarations(t *testing.T) {
	r := &fixtest.Runner{Analyzer: lint.AnalyzerAddStaticModifierToAllPartialClassDeclarations}
	part := func(mods ...syntax.Kind) *syntax.Node { return syntax.Class(mods, "C", nil) }
	static := fixtest.Table()
	static.AddType(&semantic.Type{Name: "C", IsStatic: true})
	r.Run(t, []fixtest.Case{
		{
			Name:       "marked static by the model",
			Root:       fixtest.Format(part(syntax.PartialKeyword)),
			Model:      static,
			Want:       []string{"Add 'static' modifier to all partial class declarations"},
			Fixed:      "static partial class C\n{\n}",
			Idempotent: true,
		},
		{
			Name: "no static part",
			Root: fixtest.Format(syntax.Namespace("N",
				part(syntax.PartialKeyword), part(syntax.PublicKeyword, syntax.PartialKeyword))),
		},
		{
			Name: "not partial",
			Root: fixtest.Format(part(syntax.PublicKeyword)),
		},
	})

	unit := fixtest.Format(syntax.Namespace("N",
		part(syntax.PublicKeyword, syntax.StaticKeyword, syntax.PartialKeyword),
		part(syntax.PublicKeyword, syntax.PartialKeyword),
		syntax.Class([]syntax.Kind{syntax.PartialKeyword}, "D", nil)))
	diags := r.Lint(t, unit, nil, nil)
	fixtest.AssertMessages(t, diags, "Add 'static' modifier")
	fixtest.AssertSpanText(t, unit, diags[0], "C")
	fixed := fixtest.Fix(t, unit, diags).FullText()
	assert.Equal(t, 2, strings.Count(fixed, "public static partial class C\n"), fixed)
	assert.Contains(t, fixed, "    partial class D\n")
}

func TestCatalogFormatDeclarationBraces(t *testing.T) {
	r := &fixtest.Runner{Analyzer: lint.AnalyzerFormatDeclarationBraces}
	oneLine := func(inside ...syntax.Trivia) *syntax.Node {
		return syntax.NewNode(syntax.ClassDeclaration, syntax.NewList(), syntax.NewList(),
			syntax.Token(syntax.ClassKeyword).WithTrailingTrivia(syntax.Space()),
			syntax.Identifier("C").WithTrailingTrivia(syntax.Space()), nil,
			syntax.Token(syntax.OpenBraceToken).WithTrailingTrivia(inside...),
			syntax.NewList(), syntax.Token(syntax.CloseBraceToken))
	}
	r.Run(t, []fixtest.Case{
		{
			Name:       "one line",
			Root:       oneLine(syntax.Space()),
			Want:       []string{"Format declaration braces"},
			Fixed:      "class C\n{\n}",
			Idempotent: true,
		},
		{
			Name: "separate lines",
			Root: fixtest.Format(syntax.Class(nil, "C", nil)),
		},
		{
			Name: "comment between braces",
			Root: oneLine(syntax.Space(), syntax.Comment("/* empty */"), syntax.Space()),
		},
	})
}
