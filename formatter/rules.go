// Copyright © 2024 The ELPS authors

package formatter

import (
	"github.com/luthersystems/fixkit/astutil"
	"github.com/luthersystems/fixkit/syntax"
)

// newlineBefore reports whether cur starts a new line. Braces go on their
// own lines, every statement and member starts a line, and so do else,
// catch and finally clauses.
func newlineBefore(prev, cur *syntax.Node) bool {
	switch cur.Kind() {
	case syntax.EndOfFileToken:
		return true
	case syntax.OpenBraceToken, syntax.CloseBraceToken:
		if cur.Parent().Kind() != syntax.Interpolation {
			return true
		}
	case syntax.WhileKeyword:
		if do := cur.Parent(); do.Kind() == syntax.DoStatement {
			return do.Statement().Kind() != syntax.Block
		}
	}
	for n := cur.Parent(); n != nil && n.FirstToken().SameNode(cur); n = n.Parent() {
		if startsLine(n) {
			return true
		}
	}
	if prev.Kind() == syntax.CloseBracketToken {
		if al := prev.Parent(); al.Kind() == syntax.AttributeList && al.Parent().Kind() == syntax.List {
			return true
		}
	}
	return false
}

// startsLine reports whether n is laid out at the start of a line.
func startsLine(n *syntax.Node) bool {
	switch n.Kind() {
	case syntax.ElseClause, syntax.CatchClause, syntax.FinallyClause:
		return true
	}
	if astutil.IsEmbeddedStatement(n) {
		return true
	}
	p := n.Parent()
	if p.Kind() == syntax.List && p.Parent().Kind() == syntax.CompilationUnit {
		return true
	}
	return p.Kind().IsList() && indentsList(p)
}

// indentsList reports whether the elements of list are each on their own
// line, one level deeper than the list's owner.
func indentsList(list *syntax.Node) bool {
	owner := list.Parent()
	switch owner.Kind() {
	case syntax.Block, syntax.SwitchSection:
		return list.Index() == 1
	case syntax.SwitchStatement:
		return true
	case syntax.NamespaceDeclaration, syntax.ClassDeclaration, syntax.StructDeclaration,
		syntax.InterfaceDeclaration, syntax.EnumDeclaration:
		return list.SameNode(owner.Members())
	}
	return false
}

// level returns the indentation depth of n.
func level(n *syntax.Node) int {
	lvl := 0
	for c := n; c.Parent() != nil; c = c.Parent() {
		p := c.Parent()
		if p.Kind().IsList() {
			if indentsList(p) {
				lvl++
			}
		} else if astutil.IsEmbeddedStatement(c) {
			lvl++
		}
	}
	return lvl
}

// spaceBetween reports whether one space separates prev and cur on a
// line.
func spaceBetween(prev, cur *syntax.Node) bool {
	pk, ck := prev.Kind(), cur.Kind()
	switch pk {
	case syntax.InterpolatedStringStartToken, syntax.InterpolatedStringTextToken,
		syntax.OpenParenToken, syntax.OpenBracketToken, syntax.DotToken, syntax.ExclamationToken:
		return false
	case syntax.MinusToken:
		if prev.Parent().Kind() == syntax.UnaryMinusExpression {
			return false
		}
	case syntax.QuestionToken:
		if prev.Parent().Kind() == syntax.ConditionalAccessExpression {
			return false
		}
	case syntax.OpenBraceToken, syntax.CloseBraceToken:
		if prev.Parent().Kind() == syntax.Interpolation {
			return false
		}
	}
	switch ck {
	case syntax.InterpolatedStringEndToken, syntax.InterpolatedStringTextToken,
		syntax.SemicolonToken, syntax.CommaToken, syntax.CloseParenToken, syntax.CloseBracketToken,
		syntax.DotToken:
		return false
	case syntax.OpenBraceToken, syntax.CloseBraceToken:
		return cur.Parent().Kind() != syntax.Interpolation
	case syntax.QuestionToken:
		return cur.Parent().Kind() != syntax.ConditionalAccessExpression
	case syntax.ColonToken:
		return !cur.Parent().Is(syntax.CaseSwitchLabel, syntax.DefaultSwitchLabel)
	case syntax.OpenParenToken:
		switch pk {
		case syntax.IdentifierToken, syntax.CloseParenToken, syntax.CloseBracketToken,
			syntax.ThisKeyword, syntax.BaseKeyword:
			return false
		}
	case syntax.OpenBracketToken:
		switch pk {
		case syntax.IdentifierToken, syntax.CloseParenToken, syntax.CloseBracketToken:
			return false
		}
	}
	return true
}
