// Copyright © 2024 The ELPS authors

package match

import (
	"github.com/luthersystems/fixkit/astutil"
	"github.com/luthersystems/fixkit/predicate"
	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/trivia"
)

// SimpleAssignment is a simple assignment, x = y, that forms an expression
// statement on its own.
type SimpleAssignment struct {
	Statement  *syntax.Node
	Assignment *syntax.Node
	// Left and Right are the operands without enclosing parentheses.
	Left  *syntax.Node
	Right *syntax.Node
}

// SimpleAssignmentStatement matches an expression statement whose
// expression is a simple assignment.
func SimpleAssignmentStatement(stmt *syntax.Node) (SimpleAssignment, bool) {
	if stmt.Kind() != syntax.ExpressionStatement {
		return SimpleAssignment{}, false
	}
	return SimpleAssignmentExpression(stmt.Expression())
}

// SimpleAssignmentExpression matches a simple assignment that is the
// expression of an expression statement.
func SimpleAssignmentExpression(assignment *syntax.Node) (SimpleAssignment, bool) {
	if assignment.Kind() != syntax.SimpleAssignmentExpression || !valid(assignment) {
		return SimpleAssignment{}, false
	}
	stmt := assignment.Parent()
	if stmt.Kind() != syntax.ExpressionStatement {
		return SimpleAssignment{}, false
	}
	left, right := unparen(assignment.Left()), unparen(assignment.Right())
	if !valid(left) || !valid(right) {
		return SimpleAssignment{}, false
	}
	return SimpleAssignment{
		Statement:  stmt,
		Assignment: assignment,
		Left:       left,
		Right:      right,
	}, true
}

// RedundantAssignment is an assignment to a local immediately followed by
// a return of the same local:
//
//	x = Compute();
//	return x;
type RedundantAssignment struct {
	SimpleAssignment
	Return *syntax.Node
	// Name is the assigned identifier.
	Name *syntax.Node
}

// RedundantAssignmentReturn matches a simple assignment whose statement is
// followed by a return of the assigned identifier. The assigned symbol must
// be a local or a parameter passed by value. Without a model the symbol is
// resolved against the declarations of the enclosing member: a parameter
// declared ref, out or in, or a name the member does not declare, never
// matches.
func RedundantAssignmentReturn(assignment *syntax.Node, model semantic.Model) (RedundantAssignment, bool) {
	a, ok := SimpleAssignmentExpression(assignment)
	if !ok {
		return RedundantAssignment{}, false
	}
	if spanHasDirective(a.Statement) || trivia.ClassifyTrivia(a.Statement.TrailingTrivia()).Veto() {
		return RedundantAssignment{}, false
	}
	if a.Left.Kind() != syntax.IdentifierName {
		return RedundantAssignment{}, false
	}
	next := astutil.NextStatement(a.Statement)
	if next.Kind() != syntax.ReturnStatement || !valid(next) {
		return RedundantAssignment{}, false
	}
	if spanHasDirective(next) || trivia.ClassifyTrivia(next.LeadingTrivia()).Veto() {
		return RedundantAssignment{}, false
	}
	ret := unparen(next.Expression())
	name := a.Left.Identifier().Text()
	if !astutil.IsSimpleName(ret, name) {
		return RedundantAssignment{}, false
	}
	if model != nil {
		if !predicate.IsLocalOrByValueParameter(model.SymbolOf(a.Left)) {
			return RedundantAssignment{}, false
		}
	} else if !declaredByValue(a.Statement, name) {
		return RedundantAssignment{}, false
	}
	return RedundantAssignment{SimpleAssignment: a, Return: next, Name: a.Left}, true
}

// declaredByValue reports whether the member around n declares name as a
// local or as a parameter without ref, out or in.
func declaredByValue(n *syntax.Node, name string) bool {
	member := astutil.ContainingMember(n)
	if member == nil {
		return false
	}
	for _, p := range member.Parameters() {
		if p.Identifier().Text() != name {
			continue
		}
		return !p.HasModifier(syntax.RefKeyword) &&
			!p.HasModifier(syntax.OutKeyword) &&
			!p.HasModifier(syntax.InKeyword)
	}
	found := false
	member.Body().Walk(func(d *syntax.Node) bool {
		if found {
			return false
		}
		if d.Kind() == syntax.VariableDeclarator && d.Identifier().Text() == name {
			found = true
		}
		return true
	})
	return found
}
