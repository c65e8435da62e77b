// Copyright © 2024 The ELPS authors

package semantic

// SymbolKind classifies a symbol definition.
type SymbolKind int

const (
	SymLocal     SymbolKind = iota // local variable or foreach variable
	SymParameter                   // method or constructor parameter
	SymField                       // field or enum member
	SymProperty                    // property or indexer
	SymMethod                      // method, constructor or operator
	SymType                        // named type
	SymNamespace                   // namespace
)

func (k SymbolKind) String() string {
	switch k {
	case SymLocal:
		return "local"
	case SymParameter:
		return "parameter"
	case SymField:
		return "field"
	case SymProperty:
		return "property"
	case SymMethod:
		return "method"
	case SymType:
		return "type"
	case SymNamespace:
		return "namespace"
	default:
		return "unknown"
	}
}

// ParseSymbolKind is the inverse of SymbolKind.String.
func ParseSymbolKind(s string) (SymbolKind, bool) {
	for k := SymLocal; k <= SymNamespace; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// RefKind is the passing mode of a parameter.
type RefKind int

const (
	RefNone RefKind = iota
	RefRef
	RefOut
	RefIn
)

var refKindNames = []string{"none", "ref", "out", "in"}

func (k RefKind) String() string {
	if k < 0 || int(k) >= len(refKindNames) {
		return "unknown"
	}
	return refKindNames[k]
}

// ParseRefKind is the inverse of RefKind.String. The empty string is
// RefNone.
func ParseRefKind(s string) (RefKind, bool) {
	if s == "" {
		return RefNone, true
	}
	for i, name := range refKindNames {
		if name == s {
			return RefKind(i), true
		}
	}
	return 0, false
}

// MethodKind classifies method symbols.
type MethodKind int

const (
	MethodOrdinary MethodKind = iota
	MethodConstructor
	MethodBuiltinOperator // operator implemented by the language, such as string +
	MethodUserOperator
	MethodReducedExtension // extension method called with instance syntax
)

var methodKindNames = []string{"ordinary", "constructor", "builtin-operator", "user-operator", "reduced-extension"}

func (k MethodKind) String() string {
	if k < 0 || int(k) >= len(methodKindNames) {
		return "unknown"
	}
	return methodKindNames[k]
}

// ParseMethodKind is the inverse of MethodKind.String. The empty string is
// MethodOrdinary.
func ParseMethodKind(s string) (MethodKind, bool) {
	if s == "" {
		return MethodOrdinary, true
	}
	for i, name := range methodKindNames {
		if name == s {
			return MethodKind(i), true
		}
	}
	return 0, false
}

// Accessibility is the declared accessibility of a symbol.
type Accessibility int

const (
	Private Accessibility = iota
	Protected
	Internal
	Public
)

var accessibilityNames = []string{"private", "protected", "internal", "public"}

func (a Accessibility) String() string {
	if a < 0 || int(a) >= len(accessibilityNames) {
		return "unknown"
	}
	return accessibilityNames[a]
}

// ParseAccessibility is the inverse of Accessibility.String. The empty
// string is Private.
func ParseAccessibility(s string) (Accessibility, bool) {
	if s == "" {
		return Private, true
	}
	for i, name := range accessibilityNames {
		if name == s {
			return Accessibility(i), true
		}
	}
	return 0, false
}

// Symbol represents a declared entity.
type Symbol struct {
	Name string
	Kind SymbolKind
	// Type is the declared type of a local, parameter, field or property,
	// the return type of a method, and the type itself for SymType.
	Type           *Type
	ContainingType *Type
	RefKind        RefKind
	MethodKind     MethodKind
	Parameters     []*Symbol
	IsStatic       bool
	IsReadOnly     bool
	IsConst        bool
	IsExtension    bool
	// Constant holds the value of a constant field or enum member when
	// HasConstant is set. See ConstantValue for the value representation.
	Constant      any
	HasConstant   bool
	Accessibility Accessibility
}

// String returns the symbol's qualified display name.
func (s *Symbol) String() string {
	if s == nil {
		return "<nil>"
	}
	if s.ContainingType != nil {
		return s.ContainingType.FullName() + "." + s.Name
	}
	return s.Name
}

// Arity returns the number of parameters.
func (s *Symbol) Arity() int {
	if s == nil {
		return 0
	}
	return len(s.Parameters)
}

// IsMethodNamed reports whether s is a method with the given name declared
// by a type with the given full name.
func (s *Symbol) IsMethodNamed(typeFullName, name string) bool {
	return s != nil && s.Kind == SymMethod && s.Name == name &&
		s.ContainingType != nil && s.ContainingType.FullName() == typeFullName
}
