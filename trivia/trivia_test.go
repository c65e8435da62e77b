// Copyright © 2024 The ELPS authors

package trivia

import (
	"testing"

	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/text"
	"github.com/stretchr/testify/assert"
)

func TestClassifyTrivia(t *testing.T) {
	tests := []struct {
		name string
		ts   []syntax.Trivia
		want Classification
	}{
		{"empty", nil, Classification{WhitespaceOnly: true}},
		{"spaces", []syntax.Trivia{syntax.Space(), syntax.EndOfLine("\n")}, Classification{WhitespaceOnly: true}},
		{"comment", []syntax.Trivia{syntax.Space(), syntax.Comment("// x")}, Classification{ContainsComment: true}},
		{"directive", []syntax.Trivia{syntax.Directive("#if X")}, Classification{ContainsDirective: true}},
		{"both", []syntax.Trivia{syntax.Comment("/* a */"), syntax.Directive("#endregion")},
			Classification{ContainsComment: true, ContainsDirective: true}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ClassifyTrivia(test.ts)
			assert.Equal(t, test.want, got)
			assert.Equal(t, test.want.ContainsDirective, got.Veto())
		})
	}
}

// stmts builds "{a;\n#if X\nb;}" with the directive before b.
func stmts() *syntax.Node {
	a := syntax.ExpressionStatementOf(syntax.IdentifierNameOf("a")).
		WithTrailingTrivia(syntax.EndOfLine("\n"))
	b := syntax.ExpressionStatementOf(syntax.IdentifierNameOf("b")).
		WithLeadingTrivia(syntax.Directive("#if X"), syntax.EndOfLine("\n"))
	return syntax.BlockOf(a, b)
}

func TestClassifyNode(t *testing.T) {
	block := stmts()
	assert.Equal(t, "{a;\n#if X\nb;}", block.FullText())
	assert.True(t, Classify(block).ContainsDirective)

	list := block.Statements().Children()
	assert.True(t, Classify(list[0]).WhitespaceOnly, "outer trivia is excluded")
	assert.True(t, Classify(list[1]).WhitespaceOnly)
	assert.True(t, ClassifyFull(list[1]).ContainsDirective)

	between := ClassifyBetween(list[0].LastToken(), list[1].FirstToken())
	assert.True(t, between.ContainsDirective)
	between = ClassifyBetween(list[0].FirstToken(), list[0].LastToken())
	assert.True(t, between.WhitespaceOnly)

	assert.True(t, ClassifySpan(block, text.FromBounds(4, 9)).ContainsDirective)
	assert.True(t, ClassifySpan(block, text.FromBounds(0, 3)).WhitespaceOnly)
	assert.True(t, ClassifySpan(block, text.NewSpan(5, 0)).WhitespaceOnly)
	assert.True(t, Classify(nil).WhitespaceOnly)
}

func TestClassifyText(t *testing.T) {
	assert.Equal(t, Classification{WhitespaceOnly: true}, ClassifyText(" \t\r\n"))
	assert.Equal(t, Classification{ContainsComment: true}, ClassifyText("  // note\n"))
	assert.True(t, ClassifyText("\n#region R\n").ContainsDirective)
	assert.Equal(t, Classification{ContainsDirective: true}, ClassifyText("#if DEBUG\n"))
	assert.True(t, ClassifyText("#if false\n    break;\n#endif\n").ContainsDirective)

	c := ClassifyText("x = 1;\n  #pragma warning disable\n")
	assert.False(t, c.WhitespaceOnly)
	assert.True(t, c.ContainsDirective)
	assert.Equal(t, "directive", c.String())
}
