// Copyright © 2024 The ELPS authors

package match

import (
	"github.com/luthersystems/fixkit/astutil"
	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/text"
	"github.com/luthersystems/fixkit/trivia"
)

// CoalesceIf is an initialization followed by a null check that assigns a
// fallback:
//
//	var x = a;            x = a;
//	if (x == null)        if (x == null)
//	    x = b;                x = b;
type CoalesceIf struct {
	// Previous is the local declaration or assignment statement.
	Previous *syntax.Node
	If       *syntax.Node
	// Value is the initial value a in Previous.
	Value      *syntax.Node
	NullCheck  NullCheck
	Assignment SimpleAssignment
}

// CoalesceIfStatement matches an if statement without else that assigns to
// the null-checked expression, preceded by a statement that initializes
// that expression. An if that is the first of exactly two statements
// followed by a return is lazy initialization and does not match. With a
// model the checked expression must have a reference type.
func CoalesceIfStatement(ifStmt *syntax.Node, model semantic.Model) (CoalesceIf, bool) {
	if !isSimpleIf(ifStmt) || !valid(ifStmt) || spanHasDirective(ifStmt) {
		return CoalesceIf{}, false
	}
	list := astutil.StatementList(ifStmt)
	if list == nil {
		return CoalesceIf{}, false
	}
	stmts := list.Children()
	if len(stmts) == 2 && ifStmt.Index() == 0 && stmts[1].Kind() == syntax.ReturnStatement {
		return CoalesceIf{}, false
	}
	nc, ok := NullCheckOf(ifStmt.Condition(), CheckingNull)
	if !ok {
		return CoalesceIf{}, false
	}
	a, ok := SimpleAssignmentStatement(singleNonBlockStatement(ifStmt.Statement()))
	if !ok || !a.Left.IsEquivalentTo(nc.Expression) || !astutil.IsSingleLine(a.Right) {
		return CoalesceIf{}, false
	}
	prev := astutil.PreviousStatement(ifStmt)
	if !valid(prev) {
		return CoalesceIf{}, false
	}
	var value *syntax.Node
	switch prev.Kind() {
	case syntax.LocalDeclarationStatement:
		vars := prev.Declaration().Variables()
		if len(vars) != 1 || !astutil.IsSimpleName(nc.Expression, vars[0].Identifier().Text()) {
			return CoalesceIf{}, false
		}
		value = vars[0].Initializer().Value()
	case syntax.ExpressionStatement:
		pa, ok := SimpleAssignmentStatement(prev)
		if !ok || !pa.Left.IsEquivalentTo(nc.Expression) {
			return CoalesceIf{}, false
		}
		value = pa.Assignment.Right()
	}
	if !valid(value) {
		return CoalesceIf{}, false
	}
	between := text.FromBounds(value.Span().End, ifStmt.SpanStart())
	if trivia.ClassifySpan(list, between).Veto() {
		return CoalesceIf{}, false
	}
	if model != nil && !model.TypeOf(nc.Expression).IsReferenceType() {
		return CoalesceIf{}, false
	}
	return CoalesceIf{Previous: prev, If: ifStmt, Value: value, NullCheck: nc, Assignment: a}, true
}

// CoalesceConditional is a conditional expression that yields the checked
// expression unless it is null: x != null ? x : y, or x == null ? y : x.
type CoalesceConditional struct {
	Conditional *syntax.Node
	NullCheck   NullCheck
	// Expression is x and Alternative is y.
	Expression  *syntax.Node
	Alternative *syntax.Node
}

// CoalesceConditionalOf matches a conditional expression over a null check
// whose non-null branch is equivalent to the checked expression.
func CoalesceConditionalOf(cond *syntax.Node) (CoalesceConditional, bool) {
	if cond.Kind() != syntax.ConditionalExpression || !valid(cond) || spanHasDirective(cond) {
		return CoalesceConditional{}, false
	}
	nc, ok := NullCheckOf(cond.Condition(), AllNullChecks)
	if !ok {
		return CoalesceConditional{}, false
	}
	same, alt := cond.WhenFalse(), cond.WhenTrue()
	if nc.IsCheckingNotNull() {
		same, alt = alt, same
	}
	if !unparen(same).IsEquivalentTo(nc.Expression) || !valid(alt) {
		return CoalesceConditional{}, false
	}
	return CoalesceConditional{Conditional: cond, NullCheck: nc, Expression: nc.Expression, Alternative: alt}, true
}
