// Copyright © 2024 The ELPS authors

package formatter

import (
	"testing"

	"github.com/luthersystems/fixkit/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(name string) *syntax.Node { return syntax.IdentifierNameOf(name) }

func callStmt(name string) *syntax.Node {
	return syntax.ExpressionStatementOf(syntax.Invocation(id(name)))
}

type formatTest struct {
	name     string
	input    *syntax.Node
	expected string
	config   *Config
}

func runFormatTests(t *testing.T, tests []formatTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.input, tt.config)
			assert.Equal(t, tt.expected, got.FullText(), "formatted output mismatch")
			assert.False(t, got.ContainsAnnotations())

			// Idempotency: formatting the output again should produce identical output
			again := Format(got, tt.config)
			assert.Equal(t, got.FullText(), again.FullText(), "not idempotent")
			assert.True(t, got.IsEquivalentTo(tt.input), "formatting changed structure")
		})
	}
}

// --- inline spacing ---

func TestFormatExpressions(t *testing.T) {
	runFormatTests(t, []formatTest{
		{"binary", syntax.Binary(syntax.AddExpression, id("a"), syntax.NumericLiteral("1")), "a + 1", nil},
		{"conditional access", syntax.ConditionalAccess(id("x"), syntax.Invocation(syntax.MemberBinding("M"))), "x?.M()", nil},
		{"conditional", syntax.Conditional(id("c"), id("a"), id("b")), "c ? a : b", nil},
		{"not", syntax.LogicalNot(syntax.Parenthesized(syntax.Binary(syntax.EqualsExpression, id("a"), id("b")))), "!(a == b)", nil},
		{"unary minus", syntax.UnaryMinus(syntax.NumericLiteral("1")), "-1", nil},
		{"element access", syntax.ElementAccess(id("xs"), syntax.NumericLiteral("0")), "xs[0]", nil},
		{"static call", syntax.Invocation(syntax.MemberAccess(syntax.PredefinedTypeOf(syntax.StringKeyword), "Join"),
			syntax.StringLiteral(`""`), id("xs")), `string.Join("", xs)`, nil},
		{"object creation", syntax.ObjectCreation(syntax.TypeOf("Exception"), id("m")), "new Exception(m)", nil},
		{"interpolated", syntax.InterpolatedString(false,
			syntax.InterpolatedText("a "),
			syntax.InterpolationOf(syntax.Binary(syntax.AddExpression, id("x"), syntax.NumericLiteral("1"))),
			syntax.InterpolatedText("!")), `$"a {x + 1}!"`, nil},
		{"coalesce", syntax.Binary(syntax.CoalesceExpression, id("a"), id("b")), "a ?? b", nil},
		{"out argument", syntax.Invocation(id("F"), syntax.RefArgument(syntax.OutKeyword, id("v"))), "F(out v)", nil},
	})
}

// --- statements and declarations ---

func TestFormatStatements(t *testing.T) {
	runFormatTests(t, []formatTest{
		{
			name: "if else",
			input: syntax.Method(nil, syntax.TypeOf("void"), "M", nil, syntax.BlockOf(
				syntax.If(syntax.Binary(syntax.EqualsExpression, id("x"), syntax.Null()),
					syntax.ExpressionStatementOf(syntax.Assignment(syntax.SimpleAssignmentExpression, id("x"), syntax.NumericLiteral("1"))),
					syntax.Else(syntax.BlockOf(syntax.Return(nil)))),
			)),
			expected: "void M()\n{\n    if (x == null)\n        x = 1;\n    else\n    {\n        return;\n    }\n}",
		},
		{
			name:     "else if",
			input:    syntax.If(id("a"), callStmt("A"), syntax.Else(syntax.If(id("b"), callStmt("B"), nil))),
			expected: "if (a)\n    A();\nelse if (b)\n    B();",
		},
		{
			name:     "for ever",
			input:    syntax.For(nil, nil, nil, syntax.BlockOf()),
			expected: "for (;;)\n{\n}",
		},
		{
			name:     "do while",
			input:    syntax.Do(syntax.BlockOf(syntax.Break()), syntax.True()),
			expected: "do\n{\n    break;\n} while (true);",
		},
		{
			name:     "embedded while",
			input:    syntax.While(syntax.True(), syntax.Break()),
			expected: "while (true)\n    break;",
		},
		{
			name: "switch",
			input: syntax.Switch(id("x"),
				syntax.Section([]*syntax.Node{syntax.CaseLabel(syntax.NumericLiteral("1"))}, syntax.Break()),
				syntax.Section([]*syntax.Node{syntax.DefaultLabel()}, syntax.Return(nil))),
			expected: "switch (x)\n{\n    case 1:\n        break;\n    default:\n        return;\n}",
		},
		{
			name: "flags enum",
			input: syntax.Enum([]*syntax.Node{syntax.AttributeListOf(syntax.AttributeOf("Flags"))}, []syntax.Kind{syntax.PublicKeyword}, "E", nil,
				syntax.EnumMember("A", syntax.NumericLiteral("1")),
				syntax.EnumMember("B", nil)),
			expected: "[Flags]\npublic enum E\n{\n    A = 1,\n    B\n}",
		},
		{
			name: "tabs",
			input: syntax.Class(nil, "C", nil,
				syntax.Method(nil, syntax.TypeOf("void"), "M", nil, syntax.BlockOf(callStmt("A")))),
			expected: "class C\n{\n\tvoid M()\n\t{\n\t\tA();\n\t}\n}",
			config:   &Config{UseTabs: true},
		},
		{
			name:     "compilation unit ends with newline",
			input:    syntax.Compilation(syntax.Class(nil, "C", nil)),
			expected: "class C\n{\n}\n",
		},
	})
}

// --- trivia ---

func TestFormatKeepsComments(t *testing.T) {
	m := syntax.Method(nil, syntax.TypeOf("void"), "M", nil, syntax.BlockOf(
		callStmt("A").WithLeadingTrivia(syntax.EndOfLine("\n"), syntax.Comment("// first"), syntax.EndOfLine("\n")),
		callStmt("B").WithLeadingTrivia(syntax.EndOfLine("\n"), syntax.EndOfLine("\n"), syntax.EndOfLine("\n")),
	))
	got := FormatText(m, nil)
	assert.Equal(t, "void M()\n{\n    // first\n    A();\n\n    B();\n}", got)
	assert.Equal(t, got, FormatText(Format(m, nil), nil))

	trailing := syntax.BlockOf(callStmt("A").WithTrailingTrivia(syntax.Space(), syntax.Comment("// why"), syntax.EndOfLine("\n")))
	assert.Equal(t, "{\n    A(); // why\n}", FormatText(trailing, nil))
}

func TestFormatKeepsDirectiveGap(t *testing.T) {
	b := syntax.BlockOf(callStmt("A").WithLeadingTrivia(syntax.EndOfLine("\n"), syntax.Directive("#if X"), syntax.EndOfLine("\n")))
	assert.Equal(t, "{\n#if X\nA();\n}", FormatText(b, nil))
}

func TestFormatAnnotatedOnly(t *testing.T) {
	cls := Format(syntax.Class(nil, "C", nil,
		syntax.Method(nil, syntax.TypeOf("void"), "M", nil, syntax.BlockOf(callStmt("A"), callStmt("B")))), nil)
	before := cls.FullText()
	require.Equal(t, "class C\n{\n    void M()\n    {\n        A();\n        B();\n    }\n}", before)

	b := cls.Members().Child(0).Body().Statements().Child(1)
	repl := syntax.Return(syntax.Binary(syntax.AddExpression, id("a"), syntax.NumericLiteral("1"))).
		WithTriviaFrom(b).
		WithAnnotations(syntax.FormatterAnnotation)
	root := syntax.ReplaceNode(b, repl)
	assert.Equal(t, "        returna+1;\n", root.Members().Child(0).Body().Statements().Child(1).FullText())

	out := FormatAnnotated(root, nil)
	assert.Equal(t, "class C\n{\n    void M()\n    {\n        A();\n        return a + 1;\n    }\n}", out.FullText())
	assert.False(t, out.ContainsAnnotations())

	// Nothing annotated: the tree is returned untouched.
	assert.Same(t, cls, FormatAnnotated(cls, nil))
}
