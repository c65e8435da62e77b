// Copyright © 2024 The ELPS authors

package predicate

import (
	"testing"

	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
	"github.com/stretchr/testify/assert"
)

func stdTable() *semantic.Table {
	t := semantic.NewTable()
	t.AddStandardLibrary()
	return t
}

func TestUnknownIsFalse(t *testing.T) {
	var wk semantic.WellKnown
	assert.False(t, IsBuiltinStringConcatOperator(nil))
	assert.False(t, SupportsCompileTimeConstant(nil))
	assert.False(t, IsOrDerivesFromException(nil, wk))
	assert.False(t, IsOrDerivesFromException(&semantic.Type{Name: "E"}, wk))
	assert.False(t, ImplementsAnyOf(nil))
	assert.False(t, IsLocalOrByValueParameter(nil))
	assert.False(t, IsEnumerableMethod(nil, wk, "Last"))
	assert.False(t, HasFlagsAttribute(nil, wk))
	assert.Equal(t, "", CountProperty(nil))
	assert.False(t, IsDefaultValue(nil, int64(0)))
	assert.False(t, IsValueTypeOperand(nil, nil))
	assert.False(t, IsConstant(nil, syntax.NumericLiteral("1")))
}

func TestStringConcatOperator(t *testing.T) {
	tbl := stdTable()
	sum := syntax.Binary(syntax.AddExpression, syntax.StringLiteral(`"a"`), syntax.NumericLiteral("1"))
	assert.True(t, IsBuiltinStringConcatOperator(tbl.SymbolOf(sum)))
	user := &semantic.Symbol{Name: "op_Addition", Kind: semantic.SymMethod, MethodKind: semantic.MethodUserOperator,
		ContainingType: tbl.Special(semantic.SpecialString)}
	assert.False(t, IsBuiltinStringConcatOperator(user))
}

func TestCompileTimeConstant(t *testing.T) {
	tbl := stdTable()
	for _, s := range []semantic.SpecialType{semantic.SpecialInt32, semantic.SpecialString, semantic.SpecialBoolean, semantic.SpecialDecimal, semantic.SpecialByte} {
		assert.True(t, SupportsCompileTimeConstant(tbl.Special(s)), s.String())
	}
	assert.False(t, SupportsCompileTimeConstant(tbl.Special(semantic.SpecialObject)))
	assert.False(t, SupportsCompileTimeConstant(tbl.LookupType("List")))
	assert.True(t, SupportsCompileTimeConstant(&semantic.Type{Name: "E", Kind: semantic.TypeEnum}))
}

func TestExceptions(t *testing.T) {
	tbl := stdTable()
	wk := tbl.WellKnown()
	custom := tbl.AddType(&semantic.Type{Name: "MyException", Kind: semantic.TypeClass, BaseType: wk.Exception})
	assert.True(t, IsOrDerivesFromException(wk.Exception, wk))
	assert.True(t, IsOrDerivesFromException(custom, wk))
	assert.True(t, DerivesFrom(custom, wk.Exception))
	assert.False(t, DerivesFrom(wk.Exception, wk.Exception))
	assert.True(t, IsException(wk.Exception, wk))
	assert.False(t, IsException(custom, wk))
	assert.False(t, IsOrDerivesFromException(tbl.Special(semantic.SpecialString), wk))
}

func TestInterfaces(t *testing.T) {
	tbl := stdTable()
	list := tbl.LookupType("List")
	assert.True(t, ImplementsAnyOf(list, tbl.LookupType("IReadOnlyList")))
	assert.True(t, ImplementsAnyNamed(list, "System.Collections.Generic.IEnumerable"))
	assert.False(t, ImplementsAnyNamed(tbl.Special(semantic.SpecialInt32), "System.Collections.Generic.IEnumerable"))
	assert.Equal(t, "Count", CountProperty(list))
	assert.Equal(t, "Length", CountProperty(tbl.Special(semantic.SpecialString)))
	assert.Equal(t, "", CountProperty(tbl.LookupType("IEnumerable")))
}

func TestSymbols(t *testing.T) {
	assert.True(t, IsLocalOrByValueParameter(&semantic.Symbol{Kind: semantic.SymLocal}))
	assert.True(t, IsLocalOrByValueParameter(&semantic.Symbol{Kind: semantic.SymParameter}))
	for _, rk := range []semantic.RefKind{semantic.RefRef, semantic.RefOut, semantic.RefIn} {
		assert.False(t, IsLocalOrByValueParameter(&semantic.Symbol{Kind: semantic.SymParameter, RefKind: rk}))
	}
	assert.False(t, IsLocalOrByValueParameter(&semantic.Symbol{Kind: semantic.SymField}))

	assert.True(t, IsStaticReadOnlyField(&semantic.Symbol{Kind: semantic.SymField, IsStatic: true, IsReadOnly: true}))
	assert.False(t, IsStaticReadOnlyField(&semantic.Symbol{Kind: semantic.SymField, IsReadOnly: true}))
}

func TestEnumerableMethod(t *testing.T) {
	tbl := stdTable()
	tbl.AddSymbol(&semantic.Symbol{Name: "xs", Kind: semantic.SymLocal, Type: tbl.LookupType("List")})
	last := syntax.Invocation(syntax.MemberAccess(syntax.IdentifierNameOf("xs"), "Last"))
	assert.True(t, IsEnumerableMethod(tbl.SymbolOf(last), tbl.WellKnown(), "Last"))
	assert.False(t, IsEnumerableMethod(tbl.SymbolOf(last), tbl.WellKnown(), "First"))
}

func TestFlagsAttribute(t *testing.T) {
	tbl := stdTable()
	wk := tbl.WellKnown()
	enum := &semantic.Type{Name: "E", Kind: semantic.TypeEnum, Attributes: []*semantic.Type{wk.FlagsAttribute}}
	assert.True(t, HasFlagsAttribute(enum, wk))
	assert.False(t, HasFlagsAttribute(&semantic.Type{Name: "F", Kind: semantic.TypeEnum}, wk))
}

func TestDefaultValues(t *testing.T) {
	tbl := stdTable()
	integer := tbl.Special(semantic.SpecialInt32)
	assert.True(t, IsDefaultValue(integer, int64(0)))
	assert.False(t, IsDefaultValue(integer, int64(1)))
	assert.True(t, IsDefaultValue(tbl.Special(semantic.SpecialString), nil))
	assert.False(t, IsDefaultValue(tbl.Special(semantic.SpecialString), ""))
	assert.True(t, IsDefaultValue(tbl.Special(semantic.SpecialBoolean), false))
	assert.True(t, IsDefaultValue(&semantic.Type{Kind: semantic.TypeEnum}, int64(0)))
	assert.False(t, IsDefaultValue(integer, nil))
}

func TestConstantBool(t *testing.T) {
	v, ok := ConstantBool(nil, syntax.True())
	assert.True(t, ok)
	assert.True(t, v)
	v, ok = ConstantBool(stdTable(), syntax.False())
	assert.True(t, ok)
	assert.False(t, v)
	_, ok = ConstantBool(stdTable(), syntax.IdentifierNameOf("b"))
	assert.False(t, ok)
	assert.True(t, IsValueTypeOperand(stdTable(), syntax.NumericLiteral("1")))
	assert.False(t, IsValueTypeOperand(stdTable(), syntax.StringLiteral(`"s"`)))
}
