// Copyright © 2024 The ELPS authors

package rewrite

import (
	"strings"

	"github.com/luthersystems/fixkit/match"
	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
)

// JoinStrings replaces a concatenation chain by a single string. Literal
// chains become one literal and chains holding interpolated strings or
// other expressions become one interpolated string. Verbatim and regular
// operands are never mixed.
//
// With multiline set, a chain of regular literals spread over several
// lines whose operands end in \n becomes a verbatim literal with real line
// breaks.
func JoinStrings(m match.StringConcatenation, multiline bool) (*syntax.Node, error) {
	if m.ContainsRegular() && m.ContainsVerbatim() {
		return nil, ErrUnsupported
	}
	verbatim := m.ContainsVerbatim()
	var repl *syntax.Node
	switch {
	case !m.ContainsNonLiteral():
		s, ok := "", false
		if multiline && !verbatim && spansLines(m.Expression) {
			s, ok = multilineLiteral(m.Operands)
		}
		if !ok {
			s = joinLiterals(m.Operands, verbatim)
		}
		repl = syntax.StringLiteral(s)
	default:
		repl = joinInterpolated(m.Operands, verbatim)
	}
	return Replace(m.Expression, repl)
}

func spansLines(n *syntax.Node) bool {
	return strings.Contains(n.Text(), "\n")
}

// literalBody returns the text between the quotes of a string literal.
func literalBody(lit *syntax.Node) string {
	s := lit.Token().Text()
	if semantic.IsVerbatimString(s) {
		return s[2 : len(s)-1]
	}
	return s[1 : len(s)-1]
}

func joinLiterals(ops []*syntax.Node, verbatim bool) string {
	var sb strings.Builder
	if verbatim {
		sb.WriteByte('@')
	}
	sb.WriteByte('"')
	for _, op := range ops {
		sb.WriteString(literalBody(op))
	}
	sb.WriteByte('"')
	return sb.String()
}

// multilineLiteral converts regular literals into one verbatim literal.
// Every operand but the last must end in \n, and only the \n, \r, \" and \\
// escapes may appear.
func multilineLiteral(ops []*syntax.Node) (string, bool) {
	var sb strings.Builder
	sb.WriteString(`@"`)
	for i, op := range ops {
		body := literalBody(op)
		if i < len(ops)-1 && !strings.HasSuffix(body, `\n`) {
			return "", false
		}
		for j := 0; j < len(body); j++ {
			c := body[j]
			switch {
			case c == '"':
				sb.WriteString(`""`)
			case c != '\\':
				sb.WriteByte(c)
			case j+1 < len(body):
				j++
				switch body[j] {
				case 'n':
					sb.WriteByte('\n')
				case 'r':
					sb.WriteByte('\r')
				case '"':
					sb.WriteString(`""`)
				case '\\':
					sb.WriteByte('\\')
				default:
					return "", false
				}
			default:
				return "", false
			}
		}
	}
	sb.WriteByte('"')
	return sb.String(), true
}

// joinInterpolated merges the operands into the contents of a single
// interpolated string.
func joinInterpolated(ops []*syntax.Node, verbatim bool) *syntax.Node {
	var contents []*syntax.Node
	var pending strings.Builder
	flush := func() {
		if pending.Len() > 0 {
			contents = append(contents, syntax.InterpolatedText(pending.String()))
			pending.Reset()
		}
	}
	for _, op := range ops {
		switch op.Kind() {
		case syntax.StringLiteralExpression:
			pending.WriteString(escapeBraces(literalBody(op)))
		case syntax.InterpolatedStringExpression:
			for _, c := range op.Contents() {
				if c.Kind() == syntax.InterpolatedStringText {
					pending.WriteString(c.Token().Text())
					continue
				}
				flush()
				contents = append(contents, c)
			}
		default:
			flush()
			expr := op.WithoutTrivia()
			if expr.Kind() == syntax.ConditionalExpression {
				expr = syntax.Parenthesized(expr)
			}
			contents = append(contents, syntax.InterpolationOf(expr))
		}
	}
	flush()
	return syntax.InterpolatedString(verbatim, contents...)
}

func escapeBraces(s string) string {
	return strings.NewReplacer("{", "{{", "}", "}}").Replace(s)
}
