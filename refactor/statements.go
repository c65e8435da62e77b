// Copyright © 2024 The ELPS authors

package refactor

import (
	"fmt"

	"github.com/luthersystems/fixkit/astutil"
	"github.com/luthersystems/fixkit/match"
	"github.com/luthersystems/fixkit/rewrite"
	"github.com/luthersystems/fixkit/selection"
	"github.com/luthersystems/fixkit/syntax"
)

// WrapInElseClause moves the statements that follow an if statement into a
// new else clause. Every branch of the if must end with a jump, so that the
// moved statements only ran when no branch was taken.
var WrapInElseClause = &Refactoring{
	Name:  "wrap-in-else-clause",
	Title: "Wrap in else clause",
	Doc:   "Wrap the statements that follow an if statement in an else clause.\n\nThe selection must start right after an if statement without an else whose branches all end with return, throw, break or continue. Locals declared in the selection must not be used after it.",
	apply: wrapInElse,
}

func wrapInElse(req *Request) (*Result, error) {
	s, err := selection.SelectStatements(req.Root, req.Span, 1, selection.Unbounded)
	if err != nil {
		return nil, err
	}
	if s.First == 0 {
		return nil, ErrNotApplicable
	}
	ifStmt := s.List.Child(s.First - 1)
	c, ok := match.IfChainOf(ifStmt)
	if !ok || c.HasElse {
		return nil, ErrNotApplicable
	}
	block := false
	for _, st := range c.Statements {
		if !astutil.EndsWithJump(st) {
			return nil, ErrNotApplicable
		}
		block = block || st.Kind() == syntax.Block
	}
	if declaresUsedLater(s) {
		return nil, fmt.Errorf("%w: a local declared in the selection is used after it", ErrNotApplicable)
	}

	nodes := s.Nodes()
	var body *syntax.Node
	if len(nodes) == 1 && !block && nodes[0].Kind() != syntax.LocalDeclarationStatement {
		body = nodes[0]
	} else {
		body = syntax.BlockOf(nodes...)
	}
	det := ifStmt.Detach()
	last := det
	for last.Else() != nil {
		last = last.Else().Statement()
	}
	det = syntax.ReplaceNode(last, last.WithChild(elseSlot, syntax.Else(body)))
	root, err := rewrite.ReplaceStatements(ifStmt, s.Len()+1, det.WithoutTrivia())
	if err != nil {
		return nil, err
	}
	return &Result{Root: root}, nil
}

// elseSlot is the slot of the else clause in an if statement.
const elseSlot = 5

// WrapInTryCatch wraps the selected statements in a try statement that
// catches System.Exception.
var WrapInTryCatch = &Refactoring{
	Name:  "wrap-in-try-catch",
	Title: "Wrap in try-catch",
	Doc:   "Wrap the selected statements in try-catch.\n\nThe catch clause declares a System.Exception variable named ex, or ex2, ex3 and so on when ex is taken. Locals declared in the selection must not be used after it.",
	apply: wrapInTryCatch,
}

func wrapInTryCatch(req *Request) (*Result, error) {
	s, err := selection.SelectStatements(req.Root, req.Span, 1, selection.Unbounded)
	if err != nil {
		return nil, err
	}
	if declaresUsedLater(s) {
		return nil, fmt.Errorf("%w: a local declared in the selection is used after it", ErrNotApplicable)
	}
	scope := astutil.ContainingMember(s.List)
	if scope == nil {
		scope = s.List.Root()
	}
	name := uniqueName(astutil.UserDefined(scope), "ex")
	catch := syntax.Catch(syntax.CatchDeclarationOf(syntax.NameOf("System.Exception"), name), syntax.BlockOf())
	try := syntax.Try(syntax.BlockOf(s.Nodes()...), []*syntax.Node{catch}, nil)
	root, err := rewrite.ReplaceStatements(s.FirstNode(), s.Len(), try)
	if err != nil {
		return nil, err
	}
	return &Result{Root: root}, nil
}

// declaresUsedLater reports whether a local declared by a selected
// statement is referenced by a statement after the selection.
func declaresUsedLater(s selection.Statements) bool {
	declared := make(map[string]bool)
	for _, st := range s.Nodes() {
		if st.Kind() != syntax.LocalDeclarationStatement {
			continue
		}
		for _, v := range st.Declaration().Variables() {
			declared[v.Identifier().Text()] = true
		}
	}
	if len(declared) == 0 {
		return false
	}
	after := s.List.Children()[s.Last+1:]
	for _, st := range after {
		for _, n := range st.DescendantsOfKind(syntax.IdentifierName) {
			if declared[n.Identifier().Text()] {
				return true
			}
		}
	}
	return false
}

// uniqueName returns base, or base followed by the first number from 2 on,
// that is not in taken.
func uniqueName(taken map[string]bool, base string) string {
	if !taken[base] {
		return base
	}
	for i := 2; ; i++ {
		name := fmt.Sprintf("%s%d", base, i)
		if !taken[name] {
			return name
		}
	}
}
