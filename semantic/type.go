// Copyright © 2024 The ELPS authors

package semantic

import (
	"strings"

	"github.com/luthersystems/fixkit/text"
)

// TypeKind classifies a type.
type TypeKind int

const (
	TypeClass TypeKind = iota
	TypeStruct
	TypeInterface
	TypeEnum
	TypeArray
	TypeTypeParameter
	TypeError
)

var typeKindNames = []string{"class", "struct", "interface", "enum", "array", "type-parameter", "error"}

func (k TypeKind) String() string {
	if k < 0 || int(k) >= len(typeKindNames) {
		return "unknown"
	}
	return typeKindNames[k]
}

// ParseTypeKind is the inverse of TypeKind.String.
func ParseTypeKind(s string) (TypeKind, bool) {
	for i, name := range typeKindNames {
		if name == s {
			return TypeKind(i), true
		}
	}
	return 0, false
}

// SpecialType identifies the types the language gives keywords or literal
// syntax to.
type SpecialType int

const (
	SpecialNone SpecialType = iota
	SpecialObject
	SpecialVoid
	SpecialBoolean
	SpecialChar
	SpecialSByte
	SpecialByte
	SpecialInt16
	SpecialUInt16
	SpecialInt32
	SpecialUInt32
	SpecialInt64
	SpecialUInt64
	SpecialSingle
	SpecialDouble
	SpecialDecimal
	SpecialString
	specialCount
)

var specialNames = [...]string{
	SpecialNone:    "",
	SpecialObject:  "Object",
	SpecialVoid:    "Void",
	SpecialBoolean: "Boolean",
	SpecialChar:    "Char",
	SpecialSByte:   "SByte",
	SpecialByte:    "Byte",
	SpecialInt16:   "Int16",
	SpecialUInt16:  "UInt16",
	SpecialInt32:   "Int32",
	SpecialUInt32:  "UInt32",
	SpecialInt64:   "Int64",
	SpecialUInt64:  "UInt64",
	SpecialSingle:  "Single",
	SpecialDouble:  "Double",
	SpecialDecimal: "Decimal",
	SpecialString:  "String",
}

// String returns the framework name of the special type, such as "Int32".
func (s SpecialType) String() string {
	if s < 0 || s >= specialCount {
		return ""
	}
	return specialNames[s]
}

// ParseSpecialType is the inverse of SpecialType.String.
func ParseSpecialType(s string) (SpecialType, bool) {
	for i, name := range specialNames {
		if name == s {
			return SpecialType(i), true
		}
	}
	return 0, false
}

// IsIntegral reports whether s is one of the eight integer types.
func (s SpecialType) IsIntegral() bool {
	return s >= SpecialSByte && s <= SpecialUInt64
}

// IsNumeric reports whether s is an integral or floating point type.
func (s SpecialType) IsNumeric() bool {
	return s.IsIntegral() || s == SpecialSingle || s == SpecialDouble || s == SpecialDecimal
}

// IsUnsigned reports whether s is an unsigned integer type.
func (s SpecialType) IsUnsigned() bool {
	switch s {
	case SpecialByte, SpecialUInt16, SpecialUInt32, SpecialUInt64:
		return true
	}
	return false
}

// Bits returns the width of an integral type, or 0.
func (s SpecialType) Bits() int {
	switch s {
	case SpecialSByte, SpecialByte:
		return 8
	case SpecialInt16, SpecialUInt16:
		return 16
	case SpecialInt32, SpecialUInt32:
		return 32
	case SpecialInt64, SpecialUInt64:
		return 64
	}
	return 0
}

// Type describes a named or constructed type.
type Type struct {
	Name      string
	Namespace string
	Kind      TypeKind
	Special   SpecialType
	BaseType  *Type
	// Interfaces lists the interfaces the type implements directly.
	Interfaces []*Type
	// Attributes lists the attribute classes applied to the type.
	Attributes     []*Type
	Members        []*Symbol
	EnumUnderlying *Type
	// TypeArguments of a constructed generic type, or the element type of an
	// array.
	TypeArguments []*Type
	HasIndexer    bool
	IsStatic      bool
	// Span is the declaration span of a type declared in the analyzed
	// document, used for accessibility checks. It is empty otherwise.
	Span text.Span
}

// FullName returns the namespace-qualified name without type arguments.
func (t *Type) FullName() string {
	if t == nil {
		return ""
	}
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	if len(t.TypeArguments) == 0 || t.Kind == TypeArray {
		if t.Kind == TypeArray && len(t.TypeArguments) == 1 {
			return t.TypeArguments[0].String() + "[]"
		}
		return t.FullName()
	}
	args := make([]string, len(t.TypeArguments))
	for i, a := range t.TypeArguments {
		args[i] = a.String()
	}
	return t.FullName() + "<" + strings.Join(args, ", ") + ">"
}

// SameDefinition reports whether t and o are the same type definition,
// ignoring type arguments.
func (t *Type) SameDefinition(o *Type) bool {
	if t == nil || o == nil {
		return false
	}
	return t == o || t.FullName() == o.FullName()
}

// IsValueType reports whether t is a struct or enum. Unknown types are not
// value types.
func (t *Type) IsValueType() bool {
	return t != nil && (t.Kind == TypeStruct || t.Kind == TypeEnum)
}

// IsReferenceType reports whether t is a class, interface or array.
func (t *Type) IsReferenceType() bool {
	return t != nil && (t.Kind == TypeClass || t.Kind == TypeInterface || t.Kind == TypeArray)
}

// MembersNamed returns the members of t, not its base types, with the
// given name.
func (t *Type) MembersNamed(name string) []*Symbol {
	if t == nil {
		return nil
	}
	var out []*Symbol
	for _, m := range t.Members {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// LookupMember returns the first member named name of t or its base types
// whose parameter count is arity. A negative arity matches any member.
func (t *Type) LookupMember(name string, arity int) *Symbol {
	for c := t; c != nil; c = c.BaseType {
		for _, m := range c.MembersNamed(name) {
			if arity < 0 || m.Kind != SymMethod || len(m.Parameters) == arity {
				return m
			}
		}
	}
	return nil
}

// HasAttribute reports whether an attribute with the same definition as
// attr is applied to t.
func (t *Type) HasAttribute(attr *Type) bool {
	if t == nil {
		return false
	}
	for _, a := range t.Attributes {
		if a.SameDefinition(attr) {
			return true
		}
	}
	return false
}

// AllInterfaces returns the interfaces of t, its base types and the
// interfaces they extend, without duplicates.
func (t *Type) AllInterfaces() []*Type {
	var out []*Type
	seen := make(map[string]bool)
	var visit func(*Type)
	visit = func(i *Type) {
		if i == nil || seen[i.FullName()] {
			return
		}
		seen[i.FullName()] = true
		out = append(out, i)
		for _, b := range i.Interfaces {
			visit(b)
		}
	}
	for c := t; c != nil; c = c.BaseType {
		for _, i := range c.Interfaces {
			visit(i)
		}
	}
	return out
}
