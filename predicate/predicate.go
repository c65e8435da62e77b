// Copyright © 2024 The ELPS authors

// Package predicate provides total boolean predicates over symbols and
// types. A nil symbol or type never satisfies a predicate: missing semantic
// information means "no", never an error.
package predicate

import (
	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
)

// IsBuiltinStringConcatOperator reports whether sym is the language's
// built-in string + operator.
func IsBuiltinStringConcatOperator(sym *semantic.Symbol) bool {
	return sym != nil &&
		sym.Kind == semantic.SymMethod &&
		sym.MethodKind == semantic.MethodBuiltinOperator &&
		sym.Name == "op_Addition" &&
		sym.ContainingType != nil &&
		sym.ContainingType.Special == semantic.SpecialString
}

// SupportsCompileTimeConstant reports whether a field of type t may be
// declared const.
func SupportsCompileTimeConstant(t *semantic.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind == semantic.TypeEnum {
		return true
	}
	switch t.Special {
	case semantic.SpecialBoolean, semantic.SpecialChar, semantic.SpecialString,
		semantic.SpecialSingle, semantic.SpecialDouble, semantic.SpecialDecimal:
		return true
	}
	return t.Special.IsIntegral()
}

// IsOrDerivesFrom reports whether t is base or inherits from it.
func IsOrDerivesFrom(t, base *semantic.Type) bool {
	if base == nil {
		return false
	}
	for c := t; c != nil; c = c.BaseType {
		if c.SameDefinition(base) {
			return true
		}
	}
	return false
}

// DerivesFrom reports whether t inherits from base and is not base itself.
func DerivesFrom(t, base *semantic.Type) bool {
	return t != nil && !t.SameDefinition(base) && IsOrDerivesFrom(t, base)
}

// IsOrDerivesFromException reports whether t is the framework's base
// exception type or one of its descendants.
func IsOrDerivesFromException(t *semantic.Type, wk semantic.WellKnown) bool {
	return IsOrDerivesFrom(t, wk.Exception)
}

// IsException reports whether t is exactly the base exception type.
func IsException(t *semantic.Type, wk semantic.WellKnown) bool {
	return t != nil && t.SameDefinition(wk.Exception)
}

// ImplementsAnyOf reports whether t is, or implements, any of the given
// interfaces.
func ImplementsAnyOf(t *semantic.Type, interfaces ...*semantic.Type) bool {
	if t == nil {
		return false
	}
	all := t.AllInterfaces()
	for _, want := range interfaces {
		if t.SameDefinition(want) {
			return true
		}
		for _, i := range all {
			if i.SameDefinition(want) {
				return true
			}
		}
	}
	return false
}

// ImplementsAnyNamed is ImplementsAnyOf by full interface names.
func ImplementsAnyNamed(t *semantic.Type, fullNames ...string) bool {
	if t == nil {
		return false
	}
	all := append([]*semantic.Type{t}, t.AllInterfaces()...)
	for _, i := range all {
		for _, name := range fullNames {
			if i.FullName() == name {
				return true
			}
		}
	}
	return false
}

// IsLocalOrByValueParameter reports whether sym is a local variable or a
// parameter passed without ref, out or in.
func IsLocalOrByValueParameter(sym *semantic.Symbol) bool {
	if sym == nil {
		return false
	}
	switch sym.Kind {
	case semantic.SymLocal:
		return true
	case semantic.SymParameter:
		return sym.RefKind == semantic.RefNone
	}
	return false
}

// IsEnumerableMethod reports whether sym is the LINQ extension method name
// from System.Linq.Enumerable, called with instance syntax or statically.
func IsEnumerableMethod(sym *semantic.Symbol, wk semantic.WellKnown, name string) bool {
	return sym != nil &&
		sym.Kind == semantic.SymMethod &&
		sym.Name == name &&
		sym.ContainingType != nil &&
		sym.ContainingType.SameDefinition(wk.Enumerable)
}

// IsString reports whether t is System.String.
func IsString(t *semantic.Type) bool {
	return t != nil && t.Special == semantic.SpecialString
}

// IsBoolean reports whether t is System.Boolean.
func IsBoolean(t *semantic.Type) bool {
	return t != nil && t.Special == semantic.SpecialBoolean
}

// IsStringMethod reports whether sym is the static string method name.
func IsStringMethod(sym *semantic.Symbol, name string) bool {
	return sym != nil && sym.Kind == semantic.SymMethod && sym.Name == name &&
		sym.IsStatic && IsString(sym.ContainingType)
}

// HasFlagsAttribute reports whether enum type t is marked with the flags
// attribute.
func HasFlagsAttribute(t *semantic.Type, wk semantic.WellKnown) bool {
	return t != nil && t.Kind == semantic.TypeEnum && wk.FlagsAttribute != nil && t.HasAttribute(wk.FlagsAttribute)
}

// CountProperty returns the name of the Count or Length property of an
// indexable type, or "".
func CountProperty(t *semantic.Type) string {
	if t == nil {
		return ""
	}
	if t.Kind == semantic.TypeArray || IsString(t) {
		return "Length"
	}
	if !t.HasIndexer {
		return ""
	}
	for _, name := range []string{"Count", "Length"} {
		if m := t.LookupMember(name, -1); m != nil && m.Kind == semantic.SymProperty {
			return name
		}
	}
	for _, i := range t.AllInterfaces() {
		if i.HasIndexer && i.LookupMember("Count", -1) != nil {
			return "Count"
		}
	}
	return ""
}

// IsStaticReadOnlyField reports whether sym is a static readonly field that
// is not already const.
func IsStaticReadOnlyField(sym *semantic.Symbol) bool {
	return sym != nil && sym.Kind == semantic.SymField && sym.IsStatic && sym.IsReadOnly && !sym.IsConst
}

// IsDefaultValue reports whether value, the constant initializer of a
// variable of type t, equals the default value of t. Null is the default of
// reference types; an enum's default is zero.
func IsDefaultValue(t *semantic.Type, value any) bool {
	if t == nil {
		return false
	}
	if value == nil {
		return t.IsReferenceType()
	}
	if t.Kind == semantic.TypeEnum {
		v, ok := semantic.Uint64Value(value)
		return ok && v == 0
	}
	if !t.IsValueType() {
		return false
	}
	return semantic.IsDefaultValue(value)
}

// IsValueTypeOperand reports whether expr has a value type other than a
// string, which boxes when passed as object.
func IsValueTypeOperand(model semantic.Model, expr *syntax.Node) bool {
	if model == nil {
		return false
	}
	t := model.TypeOf(expr)
	return t.IsValueType() && t.Special != semantic.SpecialVoid
}

// IsConstant reports whether expr has a compile-time value.
func IsConstant(model semantic.Model, expr *syntax.Node) bool {
	if model == nil {
		return false
	}
	_, ok := model.ConstantValue(expr)
	return ok
}

// ConstantBool returns the boolean value of a constant expression.
func ConstantBool(model semantic.Model, expr *syntax.Node) (value, ok bool) {
	if model == nil {
		switch expr.Kind() {
		case syntax.TrueLiteralExpression:
			return true, true
		case syntax.FalseLiteralExpression:
			return false, true
		}
		return false, false
	}
	v, ok := model.ConstantValue(expr)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}
