// Copyright © 2024 The ELPS authors

package match

import (
	"strings"

	"github.com/luthersystems/fixkit/predicate"
	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
)

// predicateMethods are the LINQ methods with an overload taking the
// predicate of a preceding Where.
var predicateMethods = map[string]bool{
	"Any":             true,
	"Count":           true,
	"First":           true,
	"FirstOrDefault":  true,
	"Last":            true,
	"LastOrDefault":   true,
	"Single":          true,
	"SingleOrDefault": true,
}

// WhereChain is a Where call followed by a parameterless LINQ call:
// xs.Where(p).Any().
type WhereChain struct {
	// Outer is the final call and Where the inner one.
	Outer MemberInvocation
	Where MemberInvocation
	// Predicate is the argument of Where.
	Predicate *syntax.Node
}

// WhereChainOf matches x.Where(p).M() where M is Any, Count, First,
// FirstOrDefault, Last, LastOrDefault, Single or SingleOrDefault. With a
// model both calls must resolve to System.Linq.Enumerable methods.
func WhereChainOf(inv *syntax.Node, model semantic.Model, wk semantic.WellKnown) (WhereChain, bool) {
	outer, ok := MemberInvocationExpression(inv)
	if !ok || !predicateMethods[outer.NameText()] || len(inv.Arguments()) != 0 {
		return WhereChain{}, false
	}
	where, ok := MemberInvocationExpression(outer.Expression)
	if !ok || where.NameText() != "Where" {
		return WhereChain{}, false
	}
	args := where.Invocation.Arguments()
	if len(args) != 1 || args[0].RefKind() != nil {
		return WhereChain{}, false
	}
	if spanHasDirective(inv) {
		return WhereChain{}, false
	}
	if model != nil {
		if !predicate.IsEnumerableMethod(model.SymbolOf(inv), wk, outer.NameText()) ||
			!predicate.IsEnumerableMethod(model.SymbolOf(where.Invocation), wk, "Where") {
			return WhereChain{}, false
		}
	}
	return WhereChain{Outer: outer, Where: where, Predicate: args[0].Expression()}, true
}

// orderingMethods are the LINQ calls that return an ordered sequence.
var orderingMethods = map[string]bool{
	"OrderBy":           true,
	"OrderByDescending": true,
	"ThenBy":            true,
	"ThenByDescending":  true,
}

// OrderByChain is OrderBy or OrderByDescending called on a sequence that is
// already ordered: xs.OrderBy(a).OrderBy(b).
type OrderByChain struct {
	Outer MemberInvocation
	Inner MemberInvocation
}

// ThenByName returns the ThenBy method matching the direction of the outer
// call.
func (c OrderByChain) ThenByName() string {
	return "ThenBy" + strings.TrimPrefix(c.Outer.NameText(), "OrderBy")
}

// OrderByChainOf matches x.M(a).OrderBy(b) and x.M(a).OrderByDescending(b)
// where M is one of the ordering methods. With a model both calls must
// resolve to System.Linq.Enumerable methods.
func OrderByChainOf(inv *syntax.Node, model semantic.Model, wk semantic.WellKnown) (OrderByChain, bool) {
	outer, ok := MemberInvocationExpression(inv)
	if !ok || (outer.NameText() != "OrderBy" && outer.NameText() != "OrderByDescending") {
		return OrderByChain{}, false
	}
	if n := len(inv.Arguments()); n < 1 || n > 2 {
		return OrderByChain{}, false
	}
	inner, ok := MemberInvocationExpression(outer.Expression)
	if !ok || !orderingMethods[inner.NameText()] {
		return OrderByChain{}, false
	}
	if model != nil {
		if !predicate.IsEnumerableMethod(model.SymbolOf(inv), wk, outer.NameText()) ||
			!predicate.IsEnumerableMethod(model.SymbolOf(inner.Invocation), wk, inner.NameText()) {
			return OrderByChain{}, false
		}
	}
	return OrderByChain{Outer: outer, Inner: inner}, true
}
