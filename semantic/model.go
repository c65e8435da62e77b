// Copyright © 2024 The ELPS authors

// Package semantic defines the read-only semantic oracle that rules consult
// for types, symbols and constant values.
//
// The oracle is external to the rule engine: a host binds it once per
// compilation and shares it between every concurrently running analyzer.
// Every query answers "unknown" (nil or false) rather than failing, and
// callers treat unknown as "predicate not satisfied".
//
// Table is an in-memory Model built from host-supplied facts. It is what
// the command line tool and the tests use.
package semantic

import "github.com/luthersystems/fixkit/syntax"

// Model answers semantic questions about nodes of one syntax tree.
// Implementations must be safe for concurrent use.
type Model interface {
	// TypeOf returns the type of an expression or type syntax, or nil.
	TypeOf(n *syntax.Node) *Type
	// SymbolOf returns the symbol an expression refers to or a declaration
	// declares, or nil.
	SymbolOf(n *syntax.Node) *Symbol
	// ConstantValue returns the compile-time value of n. The value is one
	// of int64, uint64, float64, string, rune, bool or nil (the null
	// literal).
	ConstantValue(n *syntax.Node) (any, bool)
	// IsAccessible reports whether sym may be referenced at pos.
	IsAccessible(pos int, sym *Symbol) bool
}

// WellKnown holds framework types resolved once per compilation and passed
// explicitly to the code that needs them. Any field may be nil when the
// compilation does not reference the type.
type WellKnown struct {
	Exception      *Type // System.Exception
	FlagsAttribute *Type // System.FlagsAttribute
	Enumerable     *Type // System.Linq.Enumerable
	String         *Type // System.String
	Object         *Type // System.Object
}
