// Copyright © 2024 The ELPS authors

package semantic

// AddStandardLibrary registers the framework types the rule catalog refers
// to and records them as well known: System.Exception, System.Attribute,
// System.FlagsAttribute, the generic collection interfaces, List,
// System.Linq.Enumerable and the string members used by the string rules.
func (t *Table) AddStandardLibrary() {
	object := t.special[SpecialObject]
	str := t.special[SpecialString]
	boolean := t.special[SpecialBoolean]
	integer := t.special[SpecialInt32]

	t.AddMember(object, &Symbol{Name: "ToString", Kind: SymMethod, Type: str, Accessibility: Public})
	t.AddMember(object, &Symbol{Name: "Equals", Kind: SymMethod, Type: boolean, Accessibility: Public,
		Parameters: []*Symbol{param("obj", object)}})
	t.AddMember(object, &Symbol{Name: "GetHashCode", Kind: SymMethod, Type: integer, Accessibility: Public})
	valueType := t.AddType(&Type{Name: "ValueType", Namespace: "System", Kind: TypeClass, BaseType: object})
	for s := SpecialBoolean; s < specialCount; s++ {
		if s != SpecialString {
			t.special[s].BaseType = valueType
		}
	}

	enumerableT := t.AddType(&Type{Name: "IEnumerable", Namespace: "System.Collections.Generic", Kind: TypeInterface})
	readOnlyList := t.AddType(&Type{Name: "IReadOnlyList", Namespace: "System.Collections.Generic",
		Kind: TypeInterface, Interfaces: []*Type{enumerableT}, HasIndexer: true,
		Members: []*Symbol{{Name: "Count", Kind: SymProperty, Type: integer, Accessibility: Public}}})
	list := t.AddType(&Type{Name: "IList", Namespace: "System.Collections.Generic",
		Kind: TypeInterface, Interfaces: []*Type{enumerableT}, HasIndexer: true,
		Members: []*Symbol{{Name: "Count", Kind: SymProperty, Type: integer, Accessibility: Public}}})
	t.AddType(&Type{Name: "List", Namespace: "System.Collections.Generic", Kind: TypeClass,
		BaseType: object, Interfaces: []*Type{list, readOnlyList}, HasIndexer: true,
		Members: []*Symbol{
			{Name: "Count", Kind: SymProperty, Type: integer, Accessibility: Public},
			{Name: "Add", Kind: SymMethod, Type: t.special[SpecialVoid], Accessibility: Public,
				Parameters: []*Symbol{param("item", object)}},
		}})

	str.Interfaces = append(str.Interfaces, enumerableT)
	str.HasIndexer = true
	t.AddMember(str, &Symbol{Name: "Length", Kind: SymProperty, Type: integer, Accessibility: Public})
	t.AddMember(str, &Symbol{Name: "Join", Kind: SymMethod, Type: str, IsStatic: true, Accessibility: Public,
		Parameters: []*Symbol{param("separator", str), param("values", enumerableT)}})
	t.AddMember(str, &Symbol{Name: "Concat", Kind: SymMethod, Type: str, IsStatic: true, Accessibility: Public,
		Parameters: []*Symbol{param("values", enumerableT)}})
	t.AddMember(str, &Symbol{Name: "Empty", Kind: SymField, Type: str, IsStatic: true, IsReadOnly: true, Accessibility: Public})

	linq := t.AddType(&Type{Name: "Enumerable", Namespace: "System.Linq", Kind: TypeClass, IsStatic: true, BaseType: object})
	predicate := t.AddType(&Type{Name: "Func", Namespace: "System", Kind: TypeClass, BaseType: object})
	for _, name := range []string{"Any", "Count", "First", "FirstOrDefault", "Last", "LastOrDefault", "Single", "SingleOrDefault", "Where"} {
		ret := object
		switch name {
		case "Any":
			ret = boolean
		case "Count":
			ret = integer
		case "Where":
			ret = enumerableT
		}
		if name != "Where" {
			t.AddMember(linq, &Symbol{Name: name, Kind: SymMethod, Type: ret, IsStatic: true, IsExtension: true,
				Accessibility: Public, Parameters: []*Symbol{param("source", enumerableT)}})
		}
		t.AddMember(linq, &Symbol{Name: name, Kind: SymMethod, Type: ret, IsStatic: true, IsExtension: true,
			Accessibility: Public, Parameters: []*Symbol{param("source", enumerableT), param("predicate", predicate)}})
	}

	exception := t.AddType(&Type{Name: "Exception", Namespace: "System", Kind: TypeClass, BaseType: object})
	for _, params := range [][]*Symbol{nil, {param("message", str)}, {param("message", str), param("innerException", exception)}} {
		t.AddMember(exception, &Symbol{Name: ".ctor", Kind: SymMethod, MethodKind: MethodConstructor,
			Accessibility: Public, Parameters: params})
	}
	t.AddMember(exception, &Symbol{Name: "Message", Kind: SymProperty, Type: str, Accessibility: Public})

	attribute := t.AddType(&Type{Name: "Attribute", Namespace: "System", Kind: TypeClass, BaseType: object})
	flags := t.AddType(&Type{Name: "FlagsAttribute", Namespace: "System", Kind: TypeClass, BaseType: attribute})
	t.types["Flags"] = flags

	t.SetWellKnown(WellKnown{
		Exception:      exception,
		FlagsAttribute: flags,
		Enumerable:     linq,
	})
}

func param(name string, ty *Type) *Symbol {
	return &Symbol{Name: name, Kind: SymParameter, Type: ty}
}
