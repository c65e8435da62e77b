// Copyright © 2024 The ELPS authors

package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/luthersystems/fixkit/astutil"
	"github.com/luthersystems/fixkit/match"
	"github.com/luthersystems/fixkit/predicate"
	"github.com/luthersystems/fixkit/rewrite"
	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/text"
	"github.com/luthersystems/fixkit/trivia"
)

// AnalyzerRemoveRedundantAssignment reports an assignment to a local that
// is immediately returned.
var AnalyzerRemoveRedundantAssignment = &Analyzer{
	Name:  "remove-redundant-assignment",
	Doc:   "Remove an assignment whose value is returned right away.\n\n`x = Compute(); return x;` where x is a local or a by-value parameter becomes `return Compute();`. Locals captured or declared by reference are left alone.",
	Kinds: []syntax.Kind{syntax.SimpleAssignmentExpression},
	Visit: func(pass *Pass, n *syntax.Node) {
		m, ok := match.RedundantAssignmentReturn(n, pass.Model())
		if !ok {
			return
		}
		model := pass.Model()
		fix := offer(nodeFix("Remove redundant assignment", region(m.Statement, m.Return), n,
			func(cur *syntax.Node) (*syntax.Node, error) {
				m, ok := match.RedundantAssignmentReturn(cur, model)
				if !ok {
					return nil, rewrite.ErrNoMatch
				}
				return rewrite.RemoveRedundantAssignment(m)
			}), m.Statement, m.Return)
		pass.ReportNode(m.Statement, "Remove redundant assignment", fix)
	},
}

// AnalyzerUseConditionalAccess reports null checks guarding a single member
// access of the checked expression.
var AnalyzerUseConditionalAccess = &Analyzer{
	Name:  "use-conditional-access",
	Doc:   "Use ?. instead of a null check followed by a member access.\n\n`if (x != null) x.M();` becomes `x?.M();` and `x != null && x.P > 0` becomes `x?.P > 0`. A condition that would yield a nullable bool is compared with true or false.",
	Kinds: []syntax.Kind{syntax.IfStatement, syntax.LogicalAndExpression},
	Visit: func(pass *Pass, n *syntax.Node) {
		const msg = "Use conditional access"
		model := pass.Model()
		switch n.Kind() {
		case syntax.IfStatement:
			m, ok := match.ConditionalAccessIfStatement(n)
			if !ok {
				return
			}
			pass.ReportNode(m.If, msg, offer(nodeFix(msg, region(n), n, func(cur *syntax.Node) (*syntax.Node, error) {
				m, ok := match.ConditionalAccessIfStatement(cur)
				if !ok {
					return nil, rewrite.ErrNoMatch
				}
				return rewrite.UseConditionalAccess(m)
			}), n))
		case syntax.LogicalAndExpression:
			m, ok := match.ConditionalAccessLogicalAnd(n, model)
			if !ok {
				return
			}
			pass.ReportNode(m.And, msg, offer(nodeFix(msg, region(n), n, func(cur *syntax.Node) (*syntax.Node, error) {
				m, ok := match.ConditionalAccessLogicalAnd(cur, model)
				if !ok {
					return nil, rewrite.ErrNoMatch
				}
				return rewrite.UseConditionalAccessAnd(m)
			}), n))
		}
	},
}

// AnalyzerUseCoalesceExpression reports null checks that ?? expresses.
var AnalyzerUseCoalesceExpression = &Analyzer{
	Name:  "use-coalesce-expression",
	Doc:   "Use ?? instead of a null check.\n\nAn initialization followed by `if (x == null) x = y;` folds into `x = a ?? y;`, and `x != null ? x : y` becomes `x ?? y`.",
	Kinds: []syntax.Kind{syntax.IfStatement, syntax.ConditionalExpression},
	Visit: func(pass *Pass, n *syntax.Node) {
		const msg = "Use coalesce expression"
		model := pass.Model()
		switch n.Kind() {
		case syntax.IfStatement:
			m, ok := match.CoalesceIfStatement(n, model)
			if !ok {
				return
			}
			pass.ReportNode(m.If, msg, offer(nodeFix(msg, region(m.Previous, m.If), n, func(cur *syntax.Node) (*syntax.Node, error) {
				m, ok := match.CoalesceIfStatement(cur, model)
				if !ok {
					return nil, rewrite.ErrNoMatch
				}
				return rewrite.CoalesceIf(m)
			}), m.Previous, m.If))
		case syntax.ConditionalExpression:
			m, ok := match.CoalesceConditionalOf(n)
			if !ok {
				return
			}
			if model != nil && model.TypeOf(m.Expression).IsValueType() {
				return
			}
			pass.ReportNode(n, msg, offer(nodeFix(msg, region(n), n, func(cur *syntax.Node) (*syntax.Node, error) {
				m, ok := match.CoalesceConditionalOf(cur)
				if !ok {
					return nil, rewrite.ErrNoMatch
				}
				return rewrite.CoalesceConditional(m)
			}), n))
		}
	},
}

// AnalyzerJoinStringExpressions reports concatenations of literals or of
// interpolated strings that can be written as one string.
var AnalyzerJoinStringExpressions = &Analyzer{
	Name:    "join-string-expressions",
	Doc:     "Join string expressions.\n\n`\"a\" + \"b\"` becomes `\"ab\"` and `$\"{x}\" + $\"{y}\"` becomes `$\"{x}{y}\"`. Verbatim and regular strings are never mixed. A chain of regular literals spread over several lines is only reported with the multiline option, which turns it into a verbatim literal with real line breaks.",
	Kinds:   []syntax.Kind{syntax.AddExpression},
	Options: Options{"multiline": false},
	Visit: func(pass *Pass, n *syntax.Node) {
		if !joinable(pass, n) {
			return
		}
		// Only the outermost chain is reported.
		if p := n.Parent(); p.Kind() == syntax.AddExpression && p.Left().SameNode(n) {
			if joinable(pass, p) {
				return
			}
		}
		model := pass.Model()
		multiline := pass.Options.Bool("multiline")
		pass.ReportNode(n, "Join string expressions", nodeFix("Join string expressions", region(n), n,
			func(cur *syntax.Node) (*syntax.Node, error) {
				m, ok := match.StringConcatenationOf(cur, model)
				if !ok {
					return nil, rewrite.ErrNoMatch
				}
				return rewrite.JoinStrings(m, multiline)
			}))
	},
}

func joinable(pass *Pass, n *syntax.Node) bool {
	m, ok := match.StringConcatenationOf(n, pass.Model())
	if !ok || !m.CanJoin() || trivia.Classify(n).Veto() {
		return false
	}
	if m.ContainsVerbatim() || pass.File.Lines().IsSingleLine(n.Span()) {
		return true
	}
	return pass.Options.Bool("multiline") && !m.ContainsInterpolated()
}

// AnalyzerAvoidBoxingOfValueType reports value-typed operands of string
// concatenation and interpolation.
var AnalyzerAvoidBoxingOfValueType = &Analyzer{
	Name:  "avoid-boxing-of-value-type",
	Doc:   "Avoid boxing of a value type.\n\nA value-typed operand of a string concatenation or interpolation is boxed before it is converted to a string. Calling ToString avoids the allocation. Requires semantic information.",
	Kinds: []syntax.Kind{syntax.AddExpression, syntax.Interpolation},
	Visit: func(pass *Pass, n *syntax.Node) {
		model := pass.Model()
		if model == nil {
			return
		}
		var operands []*syntax.Node
		switch n.Kind() {
		case syntax.AddExpression:
			if !predicate.IsBuiltinStringConcatOperator(model.SymbolOf(n)) {
				return
			}
			operands = []*syntax.Node{n.Left(), n.Right()}
		case syntax.Interpolation:
			operands = []*syntax.Node{n.Expression()}
		}
		for _, op := range operands {
			inner := astutil.WalkDownParentheses(op)
			if inner == nil || predicate.IsBuiltinStringConcatOperator(model.SymbolOf(inner)) {
				continue
			}
			if !predicate.IsValueTypeOperand(model, inner) {
				continue
			}
			pass.ReportNode(op, "Avoid boxing of value type", offer(nodeFix("Call 'ToString'", region(op), op,
				func(cur *syntax.Node) (*syntax.Node, error) {
					return rewrite.AppendToString(cur)
				}), op))
		}
	},
}

// AnalyzerSimplifyBooleanComparison reports comparisons with a boolean
// literal.
var AnalyzerSimplifyBooleanComparison = &Analyzer{
	Name:  "simplify-boolean-comparison",
	Doc:   "Simplify a comparison with true or false.\n\n`x == true` and `x != false` become `x`, while `x == false` and `x != true` become `!x`. Nullable operands are left alone when semantic information says so.",
	Kinds: []syntax.Kind{syntax.EqualsExpression, syntax.NotEqualsExpression},
	Visit: func(pass *Pass, n *syntax.Node) {
		model := pass.Model()
		m, ok := match.BooleanComparisonOf(n, model)
		if !ok {
			return
		}
		fix := offer(nodeFix("Simplify boolean comparison", region(n), n, func(cur *syntax.Node) (*syntax.Node, error) {
			m, ok := match.BooleanComparisonOf(cur, model)
			if !ok {
				return nil, rewrite.ErrNoMatch
			}
			return rewrite.SimplifyBooleanComparison(m)
		}), n)
		pass.ReportFadeOut(n, []*syntax.Node{n.OperatorTok(), m.Literal}, "Simplify boolean comparison", fix)
	},
}

// AnalyzerUseElementAccessInsteadOfLast reports Enumerable.Last() on an
// indexable receiver.
var AnalyzerUseElementAccessInsteadOfLast = &Analyzer{
	Name:  "use-element-access-instead-of-last",
	Doc:   "Use element access instead of Enumerable.Last.\n\n`xs.Last()` on a list, array or string becomes `xs[xs.Count - 1]`. Only receivers without side effects are reported. Requires semantic information.",
	Kinds: []syntax.Kind{syntax.InvocationExpression},
	Visit: func(pass *Pass, n *syntax.Node) {
		model := pass.Model()
		if model == nil {
			return
		}
		m, ok := match.MemberInvocationExpression(n)
		if !ok || m.NameText() != "Last" || len(n.Arguments()) != 0 || !pureReceiver(m.Expression) {
			return
		}
		if !predicate.IsEnumerableMethod(model.SymbolOf(n), pass.WellKnown(), "Last") {
			return
		}
		count := predicate.CountProperty(model.TypeOf(m.Expression))
		if count == "" {
			return
		}
		span := text.FromBounds(m.Name.SpanStart(), n.Span().End)
		pass.ReportSpan(span, "Use element access instead of 'Last'", offer(nodeFix("Use element access", region(n), n,
			func(cur *syntax.Node) (*syntax.Node, error) {
				m, ok := match.MemberInvocationExpression(cur)
				if !ok {
					return nil, rewrite.ErrNoMatch
				}
				return rewrite.ElementAccessForLast(m, count)
			}), n))
	},
}

// pureReceiver reports whether n is a name or a chain of member accesses
// on a name, this or base.
func pureReceiver(n *syntax.Node) bool {
	for {
		switch n.Kind() {
		case syntax.IdentifierName, syntax.ThisExpression, syntax.BaseExpression:
			return true
		case syntax.SimpleMemberAccessExpression, syntax.ParenthesizedExpression:
			n = n.Expression()
		default:
			return false
		}
	}
}

// AnalyzerCallStringConcatInsteadOfStringJoin reports string.Join with an
// empty separator.
var AnalyzerCallStringConcatInsteadOfStringJoin = &Analyzer{
	Name:  "call-string-concat-instead-of-string-join",
	Doc:   "Call string.Concat instead of string.Join with an empty separator.\n\n`string.Join(\"\", a, b)` becomes `string.Concat(a, b)`.",
	Kinds: []syntax.Kind{syntax.InvocationExpression},
	Visit: func(pass *Pass, n *syntax.Node) {
		model := pass.Model()
		m, ok := match.MemberInvocationExpression(n)
		if !ok || m.NameText() != "Join" {
			return
		}
		args := n.Arguments()
		if len(args) < 2 {
			return
		}
		for _, a := range args {
			if a.RefKind() != nil {
				return
			}
		}
		if !isEmptyString(pass, args[0].Expression()) {
			return
		}
		if model != nil {
			if !predicate.IsStringMethod(model.SymbolOf(n), "Join") {
				return
			}
		} else if !isStringTypeName(m.Expression) {
			return
		}
		pass.ReportNode(m.Name, "Call 'string.Concat' instead of 'string.Join'", offer(nodeFix("Call 'string.Concat'", region(n), n,
			func(cur *syntax.Node) (*syntax.Node, error) {
				m, ok := match.MemberInvocationExpression(cur)
				if !ok {
					return nil, rewrite.ErrNoMatch
				}
				return rewrite.ConcatForJoin(m)
			}), n))
	},
}

func isEmptyString(pass *Pass, expr *syntax.Node) bool {
	expr = astutil.WalkDownParentheses(expr)
	if expr.Kind() == syntax.StringLiteralExpression {
		return expr.Token().Text() == `""` || expr.Token().Text() == `@""`
	}
	if expr.Kind() == syntax.SimpleMemberAccessExpression && expr.Name().Identifier().Text() == "Empty" &&
		isStringTypeName(expr.Expression()) {
		return true
	}
	if model := pass.Model(); model != nil {
		v, ok := model.ConstantValue(expr)
		s, isString := v.(string)
		return ok && isString && s == ""
	}
	return false
}

func isStringTypeName(n *syntax.Node) bool {
	switch strings.Join(strings.Fields(n.Text()), "") {
	case "string", "String", "System.String":
		return true
	}
	return false
}

// AnalyzerSimplifyLinqMethodChain reports Where followed by a method that
// takes the predicate itself.
var AnalyzerSimplifyLinqMethodChain = &Analyzer{
	Name:  "simplify-linq-method-chain",
	Doc:   "Simplify a LINQ method chain.\n\n`xs.Where(p).Any()` becomes `xs.Any(p)`, and likewise for Count, First, FirstOrDefault, Last, LastOrDefault, Single and SingleOrDefault.",
	Kinds: []syntax.Kind{syntax.InvocationExpression},
	Visit: func(pass *Pass, n *syntax.Node) {
		model, wk := pass.Model(), pass.WellKnown()
		w, ok := match.WhereChainOf(n, model, wk)
		if !ok {
			return
		}
		span := text.FromBounds(w.Where.Name.SpanStart(), n.Span().End)
		pass.ReportSpan(span, "Simplify method chain", offer(nodeFix("Simplify method chain", region(n), n,
			func(cur *syntax.Node) (*syntax.Node, error) {
				w, ok := match.WhereChainOf(cur, model, wk)
				if !ok {
					return nil, rewrite.ErrNoMatch
				}
				return rewrite.SimplifyWhereChain(w)
			}), n))
	},
}

// AnalyzerCallThenByInsteadOfOrderBy reports OrderBy called on a sequence
// that is already ordered.
var AnalyzerCallThenByInsteadOfOrderBy = &Analyzer{
	Name:  "call-then-by-instead-of-order-by",
	Doc:   "Call ThenBy instead of OrderBy.\n\n`xs.OrderBy(a).OrderBy(b)` sorts by b alone and discards the first ordering. It becomes `xs.OrderBy(a).ThenBy(b)`; OrderByDescending becomes ThenByDescending.",
	Kinds: []syntax.Kind{syntax.InvocationExpression},
	Visit: func(pass *Pass, n *syntax.Node) {
		model, wk := pass.Model(), pass.WellKnown()
		c, ok := match.OrderByChainOf(n, model, wk)
		if !ok {
			return
		}
		name := c.ThenByName()
		pass.ReportNode(c.Outer.Name, fmt.Sprintf("Call '%s' instead of '%s'", name, c.Outer.NameText()),
			offer(nodeFix(fmt.Sprintf("Call '%s'", name), region(n), n,
				func(cur *syntax.Node) (*syntax.Node, error) {
					c, ok := match.OrderByChainOf(cur, model, wk)
					if !ok {
						return nil, rewrite.ErrNoMatch
					}
					return rewrite.ThenByForOrderBy(c)
				}), c.Outer.Name))
	},
}

// offer returns fix unless the region from the first to the last of nodes
// holds a directive.
func offer(fix *Fix, nodes ...*syntax.Node) *Fix {
	first, last := nodes[0], nodes[len(nodes)-1]
	span := text.FromBounds(first.SpanStart(), last.Span().End)
	if trivia.ClassifySpan(first.Root(), span).Veto() {
		return nil
	}
	return fix
}

// DefaultAnalyzers returns the built-in set of lint checks.
func DefaultAnalyzers() []*Analyzer {
	return []*Analyzer{
		AnalyzerRemoveRedundantAssignment,
		AnalyzerUseConditionalAccess,
		AnalyzerUseCoalesceExpression,
		AnalyzerJoinStringExpressions,
		AnalyzerAvoidBoxingOfValueType,
		AnalyzerCompositeEnumValueContainsUndefinedFlag,
		AnalyzerAddBraces,
		AnalyzerRemoveBracesFromIfElse,
		AnalyzerAddEmptyLineAfterEmbeddedStatement,
		AnalyzerFormatEachStatementOnSeparateLine,
		AnalyzerFormatBinaryOperatorOnNextLine,
		AnalyzerSimplifyBooleanComparison,
		AnalyzerAvoidWhileTrue,
		AnalyzerReplaceDoWithWhile,
		AnalyzerAvoidEmptyCatchClause,
		AnalyzerImplementExceptionConstructors,
		AnalyzerRemoveRedundantFieldInitialization,
		AnalyzerUseConstantInsteadOfField,
		AnalyzerRemoveEmptyNamespaceDeclaration,
		AnalyzerDeclareEachAttributeSeparately,
		AnalyzerUseElementAccessInsteadOfLast,
		AnalyzerCallStringConcatInsteadOfStringJoin,
		AnalyzerSimplifyLinqMethodChain,
		AnalyzerCallThenByInsteadOfOrderBy,
		AnalyzerAddStaticModifierToAllPartialClassDeclarations,
		AnalyzerFormatDeclarationBraces,
		AnalyzerUseCRLFNewline,
	}
}

// Lookup returns the default analyzer with the given name.
func Lookup(name string) (*Analyzer, bool) {
	for _, a := range DefaultAnalyzers() {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// AnalyzerNames returns a sorted list of all default analyzer names.
func AnalyzerNames() []string {
	analyzers := DefaultAnalyzers()
	names := make([]string, len(analyzers))
	for i, a := range analyzers {
		names[i] = a.Name
	}
	sort.Strings(names)
	return names
}

// AnalyzerDoc returns a formatted documentation string for all analyzers.
func AnalyzerDoc() string {
	var b strings.Builder
	for _, a := range DefaultAnalyzers() {
		fmt.Fprintf(&b, "  %s\n", a.Name)
		lines := strings.Split(a.Doc, "\n")
		fmt.Fprintf(&b, "    %s\n\n", lines[0])
	}
	return b.String()
}
