// Copyright © 2024 The ELPS authors

package lint

import (
	"github.com/luthersystems/fixkit/astutil"
	"github.com/luthersystems/fixkit/match"
	"github.com/luthersystems/fixkit/rewrite"
	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/text"
	"github.com/luthersystems/fixkit/trivia"
)

// AnalyzerAddBraces reports embedded statements that are not blocks.
var AnalyzerAddBraces = &Analyzer{
	Name:    "add-braces",
	Doc:     "Add braces to an embedded statement.\n\nThe statement of an if, else, loop, using, lock or fixed statement is wrapped in a block. With the multiline-only option, statements that fit on one line are left alone. Else-if chains and stacked using statements are not reported.",
	Kinds:   match.EmbeddedOwners,
	Options: Options{"multiline-only": false},
	Visit: func(pass *Pass, n *syntax.Node) {
		m, ok := match.EmbeddedStatementOf(n)
		if !ok {
			return
		}
		if pass.Options.Bool("multiline-only") && pass.File.Lines().IsSingleLine(m.Statement.Span()) {
			return
		}
		pass.ReportNode(m.Statement, "Add braces", offer(nodeFix("Add braces", region(n), n,
			func(cur *syntax.Node) (*syntax.Node, error) {
				m, ok := match.EmbeddedStatementOf(cur)
				if !ok {
					return nil, rewrite.ErrNoMatch
				}
				return rewrite.AddBraces(m)
			}), n))
	},
}

// AnalyzerRemoveBracesFromIfElse reports else-if chains whose every branch
// is a block holding one statement.
var AnalyzerRemoveBracesFromIfElse = &Analyzer{
	Name:     "remove-braces-from-if-else",
	Doc:      "Remove braces from an if-else chain.\n\nEvery block of the chain must hold a single statement that is not a declaration, and the chain must stay unambiguous without braces. Disabled by default.",
	Kinds:    []syntax.Kind{syntax.IfStatement},
	Disabled: true,
	Visit: func(pass *Pass, n *syntax.Node) {
		c, ok := match.IfChainOf(n)
		if !ok || !c.CanRemoveBraces() {
			return
		}
		var fade []*syntax.Node
		for _, b := range c.Blocks() {
			fade = append(fade, b.OpenBrace(), b.CloseBrace())
		}
		fix := offer(nodeFix("Remove braces", region(n), n, func(cur *syntax.Node) (*syntax.Node, error) {
			c, ok := match.IfChainOf(cur)
			if !ok || !c.CanRemoveBraces() {
				return nil, rewrite.ErrNoMatch
			}
			return rewrite.RemoveBraces(c)
		}), n)
		pass.ReportFadeOut(n.Keyword(), fade, "Remove braces from if-else", fix)
	},
}

// AnalyzerAddEmptyLineAfterEmbeddedStatement reports an embedded statement
// directly followed by the next statement of the enclosing list.
var AnalyzerAddEmptyLineAfterEmbeddedStatement = &Analyzer{
	Name: "add-empty-line-after-embedded-statement",
	Doc:  "Add an empty line after an embedded statement.\n\nAn embedded statement on a line of its own, without braces, reads as part of the statement that follows it unless an empty line separates them.",
	Kinds: []syntax.Kind{
		syntax.IfStatement, syntax.ElseClause, syntax.ForEachStatement, syntax.ForStatement,
		syntax.UsingStatement, syntax.WhileStatement, syntax.LockStatement, syntax.FixedStatement,
	},
	Visit: func(pass *Pass, n *syntax.Node) {
		stmt, header, container := embeddedLayout(n)
		if stmt == nil || stmt.Is(syntax.Block, syntax.EmptyStatement) {
			return
		}
		lines := pass.File.Lines()
		stmtLine, _ := lines.Position(stmt.SpanStart())
		headerLine, _ := lines.Position(header.Span().End)
		if stmtLine == headerLine {
			return
		}
		next := astutil.NextStatement(container)
		if next == nil {
			return
		}
		endLine, _ := lines.Position(stmt.Span().End)
		nextLine, _ := lines.Position(next.SpanStart())
		if nextLine != endLine+1 {
			return
		}
		last := stmt.LastToken()
		pos := last.Span().End
		for _, t := range last.TrailingTrivia() {
			if t.Kind == syntax.EndOfLineTrivia {
				span := text.NewSpan(pos, len(t.Text))
				pass.ReportSpan(span, "Add empty line after embedded statement",
					nodeFix("Add empty line", last.FullSpan(), stmt, rewrite.AddEmptyLineAfter))
				return
			}
			pos += len(t.Text)
		}
	},
}

// embeddedLayout returns the embedded statement of n, the token that ends
// the header of n and the statement whose successor follows the embedded
// statement. An if with an else and an else followed by if have no such
// statement.
func embeddedLayout(n *syntax.Node) (stmt, header, container *syntax.Node) {
	switch n.Kind() {
	case syntax.IfStatement:
		if n.Else() != nil {
			return nil, nil, nil
		}
		return n.Statement(), n.CloseParen(), astutil.TopmostIf(n)
	case syntax.ElseClause:
		if n.Statement().Kind() == syntax.IfStatement {
			return nil, nil, nil
		}
		return n.Statement(), n.Keyword(), astutil.TopmostIf(n.Parent())
	default:
		return n.Statement(), n.CloseParen(), n
	}
}

// AnalyzerFormatEachStatementOnSeparateLine reports statements that start
// on the line their predecessor ends on.
var AnalyzerFormatEachStatementOnSeparateLine = &Analyzer{
	Name:  "format-each-statement-on-separate-line",
	Doc:   "Format each statement on a separate line.\n\n`A(); B();` becomes two lines, the second indented like the first.",
	Kinds: []syntax.Kind{syntax.Block, syntax.SwitchSection},
	Visit: func(pass *Pass, n *syntax.Node) {
		list := n.Statements()
		if list == nil {
			return
		}
		lines := pass.File.Lines()
		stmts := list.Children()
		for i := 1; i < len(stmts); i++ {
			prev, stmt := stmts[i-1], stmts[i]
			prevLine, _ := lines.Position(prev.Span().End)
			line, _ := lines.Position(stmt.SpanStart())
			if line != prevLine {
				continue
			}
			if trivia.ClassifyBetween(prev.LastToken(), stmt.FirstToken()).Veto() {
				continue
			}
			pass.ReportNode(stmt, "Format each statement on a separate line",
				nodeFix("Move statement to a new line", region(prev.LastToken(), stmt.FirstToken()), stmt, rewrite.SeparateStatement))
		}
	},
}

var binaryKinds = []syntax.Kind{
	syntax.AddExpression, syntax.SubtractExpression, syntax.MultiplyExpression, syntax.DivideExpression,
	syntax.ModuloExpression, syntax.EqualsExpression, syntax.NotEqualsExpression, syntax.LessThanExpression,
	syntax.LessThanOrEqualExpression, syntax.GreaterThanExpression, syntax.GreaterThanOrEqualExpression,
	syntax.LogicalAndExpression, syntax.LogicalOrExpression, syntax.BitwiseAndExpression,
	syntax.BitwiseOrExpression, syntax.ExclusiveOrExpression, syntax.CoalesceExpression,
}

// AnalyzerFormatBinaryOperatorOnNextLine reports binary operators that end
// a line.
var AnalyzerFormatBinaryOperatorOnNextLine = &Analyzer{
	Name:  "format-binary-operator-on-next-line",
	Doc:   "Format a binary operator on the next line.\n\n`a &&` followed by `b` on the next line becomes `a` followed by `&& b`, so that a wrapped condition reads from its operators.",
	Kinds: binaryKinds,
	Visit: func(pass *Pass, n *syntax.Node) {
		if !rewrite.OperatorAtLineEnd(n) {
			return
		}
		op := n.OperatorTok()
		reg := region(n.Left().LastToken(), n.Right().FirstToken())
		pass.ReportNode(op, "Format binary operator on next line",
			nodeFix("Move operator to the next line", reg, n, rewrite.OperatorToNextLine))
	},
}

// AnalyzerFormatDeclarationBraces reports empty type declarations whose
// braces share a line.
var AnalyzerFormatDeclarationBraces = &Analyzer{
	Name:  "format-declaration-braces",
	Doc:   "Format declaration braces.\n\n`class C { }` becomes `class C` followed by an opening and a closing brace on lines of their own. Applies to empty classes, structs and interfaces.",
	Kinds: []syntax.Kind{syntax.ClassDeclaration, syntax.StructDeclaration, syntax.InterfaceDeclaration},
	Visit: func(pass *Pass, n *syntax.Node) {
		lbrace, rbrace := n.OpenBrace(), n.CloseBrace()
		if lbrace == nil || rbrace == nil || lbrace.IsMissing() || rbrace.IsMissing() || len(n.Members().Children()) != 0 {
			return
		}
		lines := pass.File.Lines()
		openLine, _ := lines.Position(lbrace.SpanStart())
		closeLine, _ := lines.Position(rbrace.SpanStart())
		if openLine != closeLine {
			return
		}
		prev := lbrace.PreviousToken()
		if !trivia.ClassifyBetween(prev, rbrace).CanDiscard() {
			return
		}
		pass.ReportNode(lbrace, "Format declaration braces",
			nodeFix("Put braces on separate lines", region(prev, rbrace), n, rewrite.BracesOnSeparateLines))
	},
}

// AnalyzerAvoidWhileTrue reports while (true) loops.
var AnalyzerAvoidWhileTrue = &Analyzer{
	Name:  "avoid-while-true",
	Doc:   "Use for (;;) instead of while (true).",
	Kinds: []syntax.Kind{syntax.WhileStatement},
	Visit: func(pass *Pass, n *syntax.Node) {
		cond := n.Condition()
		if cond == nil || cond.Kind() != syntax.TrueLiteralExpression {
			return
		}
		if !trivia.ClassifyBetween(n.FirstToken(), n.CloseParen()).CanDiscard() {
			return
		}
		pass.ReportNode(n.Keyword(), "Use 'for (;;)' instead of 'while (true)'",
			offer(nodeFix("Use 'for (;;)'", region(n), n, rewrite.WhileTrueToFor), n))
	},
}

// AnalyzerReplaceDoWithWhile reports do-while loops whose condition is
// always true.
var AnalyzerReplaceDoWithWhile = &Analyzer{
	Name:  "replace-do-with-while",
	Doc:   "Replace do statement with while statement.\n\n`do { ... } while (true);` becomes `while (true) { ... }`.",
	Kinds: []syntax.Kind{syntax.DoStatement},
	Visit: func(pass *Pass, n *syntax.Node) {
		cond := n.Condition()
		if cond == nil || cond.Kind() != syntax.TrueLiteralExpression {
			return
		}
		pass.ReportNode(n.Keyword(), "Replace 'do' statement with 'while' statement",
			offer(nodeFix("Use 'while'", region(n), n, rewrite.DoToWhile), n))
	},
}

// AnalyzerUseCRLFNewline reports line breaks that differ from the
// configured newline.
var AnalyzerUseCRLFNewline = &Analyzer{
	Name:     "use-crlf-newline",
	Doc:      "Use a consistent newline.\n\nEvery line break between tokens must match the newline option, crlf or lf. Line breaks inside tokens such as verbatim strings are not reported. Disabled by default.",
	Options:  Options{"newline": "crlf"},
	Disabled: true,
	Run: func(pass *Pass) error {
		want, msg := "\r\n", "Use CR LF newline"
		if pass.Options.String("newline") == "lf" {
			want, msg = "\n", "Use LF newline"
		}
		pass.File.Root.EachTrivia(func(t syntax.Trivia, span text.Span) {
			if t.Kind != syntax.EndOfLineTrivia || t.Text == want {
				return
			}
			start := span.Start
			pass.ReportSpan(span, msg, &Fix{
				Title: msg,
				Span:  span,
				Apply: func(root *syntax.Node) (*syntax.Node, error) {
					return rewrite.ReplaceEndOfLine(root, start, want)
				},
			})
		})
		return pass.Context().Err()
	},
}
