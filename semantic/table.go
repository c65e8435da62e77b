// Copyright © 2024 The ELPS authors

package semantic

import (
	"strings"

	"github.com/luthersystems/fixkit/astutil"
	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/text"
)

// Fact binds semantic information to the node with the given span and
// kind. Facts take precedence over name-based resolution.
type Fact struct {
	Span        text.Span
	Kind        syntax.Kind
	Symbol      *Symbol
	Type        *Type
	Constant    any
	HasConstant bool
}

type factKey struct {
	span text.Span
	kind syntax.Kind
}

// Table is an in-memory Model. It is populated with AddType, AddSymbol and
// AddFact and must not be modified once it is shared; after that every
// method is safe for concurrent use.
//
// Nodes without a fact resolve by name: identifiers through the locals and
// parameters of the enclosing member, then the members of the enclosing
// type, then every declared symbol and type; member access through the
// receiver type and its base types, falling back to extension methods of
// static types.
type Table struct {
	facts        map[factKey]Fact
	symbols      map[string][]*Symbol
	types        map[string]*Type
	typeSymbols  map[*Type]*Symbol
	extensions   map[string][]*Symbol
	special      [specialCount]*Type
	stringConcat *Symbol
	wellKnown    WellKnown
}

var _ Model = (*Table)(nil)

// NewTable returns a table that knows the special types.
func NewTable() *Table {
	t := &Table{
		facts:       make(map[factKey]Fact),
		symbols:     make(map[string][]*Symbol),
		types:       make(map[string]*Type),
		typeSymbols: make(map[*Type]*Symbol),
		extensions:  make(map[string][]*Symbol),
	}
	for s := SpecialObject; s < specialCount; s++ {
		kind := TypeStruct
		if s == SpecialObject || s == SpecialString {
			kind = TypeClass
		}
		t.special[s] = t.AddType(&Type{Name: s.String(), Namespace: "System", Kind: kind, Special: s})
	}
	str := t.special[SpecialString]
	str.BaseType = t.special[SpecialObject]
	t.stringConcat = &Symbol{
		Name:           "op_Addition",
		Kind:           SymMethod,
		MethodKind:     MethodBuiltinOperator,
		ContainingType: str,
		Type:           str,
		IsStatic:       true,
		Accessibility:  Public,
		Parameters: []*Symbol{
			{Name: "left", Kind: SymParameter, Type: str},
			{Name: "right", Kind: SymParameter, Type: str},
		},
	}
	t.wellKnown = WellKnown{String: str, Object: t.special[SpecialObject]}
	return t
}

// AddType registers a type under its simple and full names and returns
// it. Members without a containing type are assigned ty.
func (t *Table) AddType(ty *Type) *Type {
	if _, ok := t.types[ty.Name]; !ok {
		t.types[ty.Name] = ty
	}
	t.types[ty.FullName()] = ty
	t.typeSymbols[ty] = &Symbol{Name: ty.Name, Kind: SymType, Type: ty, Accessibility: Public}
	for _, m := range ty.Members {
		if m.ContainingType == nil {
			m.ContainingType = ty
		}
		if m.IsExtension {
			t.extensions[m.Name] = append(t.extensions[m.Name], m)
		}
	}
	return ty
}

// AddMember appends m to ty's members.
func (t *Table) AddMember(ty *Type, m *Symbol) *Symbol {
	m.ContainingType = ty
	ty.Members = append(ty.Members, m)
	if m.IsExtension {
		t.extensions[m.Name] = append(t.extensions[m.Name], m)
	}
	return m
}

// AddSymbol registers a symbol that is resolved by name, typically a local
// or parameter.
func (t *Table) AddSymbol(s *Symbol) *Symbol {
	t.symbols[s.Name] = append(t.symbols[s.Name], s)
	return s
}

// AddFact binds information to one node.
func (t *Table) AddFact(f Fact) {
	key := factKey{f.Span, f.Kind}
	old := t.facts[key]
	if f.Symbol == nil {
		f.Symbol = old.Symbol
	}
	if f.Type == nil {
		f.Type = old.Type
	}
	if !f.HasConstant && old.HasConstant {
		f.Constant, f.HasConstant = old.Constant, true
	}
	t.facts[key] = f
}

// BindSymbol binds sym to node n.
func (t *Table) BindSymbol(n *syntax.Node, sym *Symbol) {
	t.AddFact(Fact{Span: n.Span(), Kind: n.Kind(), Symbol: sym})
}

// BindType binds ty to node n.
func (t *Table) BindType(n *syntax.Node, ty *Type) {
	t.AddFact(Fact{Span: n.Span(), Kind: n.Kind(), Type: ty})
}

// LookupType returns the type registered under a simple or full name.
func (t *Table) LookupType(name string) *Type { return t.types[name] }

// Special returns the special type s.
func (t *Table) Special(s SpecialType) *Type {
	if s <= SpecialNone || s >= specialCount {
		return nil
	}
	return t.special[s]
}

// SetWellKnown records the framework types. Nil String and Object fields
// keep the table's special types.
func (t *Table) SetWellKnown(w WellKnown) {
	if w.String == nil {
		w.String = t.wellKnown.String
	}
	if w.Object == nil {
		w.Object = t.wellKnown.Object
	}
	t.wellKnown = w
}

// WellKnown returns the framework types.
func (t *Table) WellKnown() WellKnown { return t.wellKnown }

// Types returns the distinct registered types.
func (t *Table) Types() []*Type {
	out := make([]*Type, 0, len(t.typeSymbols))
	seen := make(map[*Type]bool)
	for _, ty := range t.types {
		if !seen[ty] {
			seen[ty] = true
			out = append(out, ty)
		}
	}
	return out
}

func (t *Table) fact(n *syntax.Node) (Fact, bool) {
	if len(t.facts) == 0 {
		return Fact{}, false
	}
	f, ok := t.facts[factKey{n.Span(), n.Kind()}]
	return f, ok
}

var keywordSpecial = map[syntax.Kind]SpecialType{
	syntax.ObjectKeyword:  SpecialObject,
	syntax.VoidKeyword:    SpecialVoid,
	syntax.BoolKeyword:    SpecialBoolean,
	syntax.CharKeyword:    SpecialChar,
	syntax.SByteKeyword:   SpecialSByte,
	syntax.ByteKeyword:    SpecialByte,
	syntax.ShortKeyword:   SpecialInt16,
	syntax.UShortKeyword:  SpecialUInt16,
	syntax.IntKeyword:     SpecialInt32,
	syntax.UIntKeyword:    SpecialUInt32,
	syntax.LongKeyword:    SpecialInt64,
	syntax.ULongKeyword:   SpecialUInt64,
	syntax.FloatKeyword:   SpecialSingle,
	syntax.DoubleKeyword:  SpecialDouble,
	syntax.DecimalKeyword: SpecialDecimal,
	syntax.StringKeyword:  SpecialString,
}

// SpecialKeyword returns the keyword that names s.
func SpecialKeyword(s SpecialType) (syntax.Kind, bool) {
	for k, sp := range keywordSpecial {
		if sp == s {
			return k, true
		}
	}
	return 0, false
}

// TypeOf implements Model.
func (t *Table) TypeOf(n *syntax.Node) *Type {
	if n == nil {
		return nil
	}
	if f, ok := t.fact(n); ok && f.Type != nil {
		return f.Type
	}
	k := n.Kind()
	switch {
	case k == syntax.NumericLiteralExpression:
		return t.Special(NumericLiteralType(n.Token().Text()))
	case k == syntax.StringLiteralExpression, k == syntax.InterpolatedStringExpression:
		return t.special[SpecialString]
	case k == syntax.CharacterLiteralExpression:
		return t.special[SpecialChar]
	case k == syntax.TrueLiteralExpression, k == syntax.FalseLiteralExpression,
		k == syntax.LogicalNotExpression, k == syntax.IsPatternExpression,
		k == syntax.EqualsExpression, k == syntax.NotEqualsExpression,
		k == syntax.LessThanExpression, k == syntax.LessThanOrEqualExpression,
		k == syntax.GreaterThanExpression, k == syntax.GreaterThanOrEqualExpression,
		k == syntax.LogicalAndExpression, k == syntax.LogicalOrExpression:
		return t.special[SpecialBoolean]
	case k == syntax.NullLiteralExpression:
		return nil
	case k == syntax.PredefinedType:
		return t.Special(keywordSpecial[n.Token().Kind()])
	case k == syntax.ParenthesizedExpression:
		return t.TypeOf(n.Expression())
	case k == syntax.AddExpression:
		l, r := t.TypeOf(n.Left()), t.TypeOf(n.Right())
		if l.SameDefinition(t.special[SpecialString]) || r.SameDefinition(t.special[SpecialString]) {
			return t.special[SpecialString]
		}
		return t.arithmetic(l, r)
	case k == syntax.SubtractExpression, k == syntax.MultiplyExpression, k == syntax.DivideExpression,
		k == syntax.ModuloExpression, k == syntax.BitwiseAndExpression, k == syntax.BitwiseOrExpression,
		k == syntax.ExclusiveOrExpression:
		return t.arithmetic(t.TypeOf(n.Left()), t.TypeOf(n.Right()))
	case k == syntax.CoalesceExpression, k.IsAssignmentExpression():
		return t.TypeOf(n.Left())
	case k == syntax.UnaryMinusExpression:
		return t.TypeOf(n.Operand())
	case k == syntax.ConditionalExpression:
		if ty := t.TypeOf(n.WhenTrue()); ty != nil {
			return ty
		}
		return t.TypeOf(n.WhenFalse())
	case k == syntax.ObjectCreationExpression:
		return t.TypeOf(n.Type())
	case k == syntax.ThisExpression:
		return t.containingType(n)
	case k == syntax.BaseExpression:
		if ct := t.containingType(n); ct != nil {
			return ct.BaseType
		}
		return nil
	case k == syntax.ConditionalAccessExpression:
		return t.TypeOf(n.WhenNotNull())
	case k == syntax.ElementAccessExpression:
		recv := t.TypeOf(n.Expression())
		if recv != nil && (recv.Kind == TypeArray || recv.HasIndexer) && len(recv.TypeArguments) == 1 {
			return recv.TypeArguments[0]
		}
		if recv.SameDefinition(t.special[SpecialString]) {
			return t.special[SpecialChar]
		}
		return nil
	}
	if sym := t.SymbolOf(n); sym != nil {
		return sym.Type
	}
	return nil
}

// arithmetic returns the result type of a binary numeric or enum
// operation, or nil.
func (t *Table) arithmetic(l, r *Type) *Type {
	if l == nil || r == nil {
		return nil
	}
	if l.SameDefinition(r) && (l.Kind == TypeEnum || l.Special.IsNumeric() && l.Special >= SpecialInt32) {
		return l
	}
	if !l.Special.IsNumeric() || !r.Special.IsNumeric() {
		return nil
	}
	s := l.Special
	if r.Special > s {
		s = r.Special
	}
	if s < SpecialInt32 {
		s = SpecialInt32
	}
	return t.special[s]
}

// SymbolOf implements Model.
func (t *Table) SymbolOf(n *syntax.Node) *Symbol {
	if n == nil {
		return nil
	}
	if f, ok := t.fact(n); ok && f.Symbol != nil {
		return f.Symbol
	}
	switch n.Kind() {
	case syntax.IdentifierName:
		return t.resolveName(n)
	case syntax.QualifiedName:
		if ty := t.types[strings.Join(strings.Fields(n.Text()), "")]; ty != nil {
			return t.typeSymbols[ty]
		}
	case syntax.PredefinedType:
		return t.typeSymbols[t.TypeOf(n)]
	case syntax.SimpleMemberAccessExpression, syntax.MemberBindingExpression:
		return t.SymbolOf(n.Name())
	case syntax.InvocationExpression:
		return t.SymbolOf(astutil.WalkDownParentheses(n.Expression()))
	case syntax.ParenthesizedExpression:
		return t.SymbolOf(n.Expression())
	case syntax.AddExpression:
		l, r := t.TypeOf(n.Left()), t.TypeOf(n.Right())
		str := t.special[SpecialString]
		if l.SameDefinition(str) || r.SameDefinition(str) {
			return t.stringConcat
		}
	case syntax.ObjectCreationExpression:
		return t.TypeOf(n.Type()).LookupMember(".ctor", len(n.Arguments()))
	case syntax.VariableDeclarator:
		name := n.Identifier().Text()
		if n.FirstAncestor(syntax.FieldDeclaration) != nil {
			return t.containingType(n).LookupMember(name, -1)
		}
		return t.lookupLocal(name)
	case syntax.Parameter, syntax.ForEachStatement, syntax.CatchDeclaration:
		return t.lookupLocal(n.Identifier().Text())
	case syntax.MethodDeclaration:
		return t.containingType(n).LookupMember(n.Identifier().Text(), len(n.Parameters()))
	case syntax.ConstructorDeclaration:
		return t.containingType(n).LookupMember(".ctor", len(n.Parameters()))
	case syntax.EnumMemberDeclaration:
		return t.containingType(n).LookupMember(n.Identifier().Text(), -1)
	case syntax.ClassDeclaration, syntax.StructDeclaration, syntax.InterfaceDeclaration, syntax.EnumDeclaration:
		return t.typeSymbols[t.types[n.Identifier().Text()]]
	}
	return nil
}

func (t *Table) lookupLocal(name string) *Symbol {
	for _, s := range t.symbols[name] {
		if s.Kind == SymLocal || s.Kind == SymParameter {
			return s
		}
	}
	return nil
}

// containingType returns the declared type enclosing n.
func (t *Table) containingType(n *syntax.Node) *Type {
	decl := n.FirstAncestor(syntax.ClassDeclaration, syntax.StructDeclaration,
		syntax.InterfaceDeclaration, syntax.EnumDeclaration)
	if decl == nil {
		return nil
	}
	return t.types[decl.Identifier().Text()]
}

// invokedArity returns the argument count when name is the invoked member of
// an invocation, or -1.
func invokedArity(member *syntax.Node) int {
	if inv := member.Parent(); inv.Kind() == syntax.InvocationExpression && inv.Expression().SameNode(member) {
		return len(inv.Arguments())
	}
	return -1
}

func (t *Table) resolveName(n *syntax.Node) *Symbol {
	name := n.Identifier().Text()
	p := n.Parent()
	switch {
	case p.Kind() == syntax.SimpleMemberAccessExpression && p.Name().SameNode(n):
		return t.resolveMember(p.Expression(), name, invokedArity(p))
	case p.Kind() == syntax.MemberBindingExpression:
		ca := p.FirstAncestor(syntax.ConditionalAccessExpression)
		if ca == nil {
			return nil
		}
		return t.resolveMember(ca.Expression(), name, invokedArity(p))
	}
	if member := astutil.ContainingMember(n); member != nil && astutil.UserDefined(member)[name] {
		if s := t.lookupLocal(name); s != nil {
			return s
		}
	}
	if s := t.containingType(n).LookupMember(name, -1); s != nil {
		return s
	}
	if ss := t.symbols[name]; len(ss) > 0 {
		return ss[0]
	}
	if ty := t.types[name]; ty != nil {
		return t.typeSymbols[ty]
	}
	return nil
}

// resolveMember looks up name on the type of receiver, or on the type it
// names for static access.
func (t *Table) resolveMember(receiver *syntax.Node, name string, arity int) *Symbol {
	var recv *Type
	if s := t.SymbolOf(receiver); s != nil && s.Kind == SymType {
		recv = s.Type
	} else {
		recv = t.TypeOf(receiver)
	}
	if recv == nil {
		return nil
	}
	if m := recv.LookupMember(name, arity); m != nil {
		return m
	}
	if recv.Kind == TypeInterface || recv.Kind == TypeClass || recv.Kind == TypeStruct || recv.Kind == TypeArray {
		if obj := t.special[SpecialObject]; !recv.SameDefinition(obj) {
			if m := obj.LookupMember(name, arity); m != nil {
				return m
			}
		}
	}
	if arity < 0 {
		return nil
	}
	for _, ext := range t.extensions[name] {
		if len(ext.Parameters) != arity+1 || !assignable(recv, ext.Parameters[0].Type) {
			continue
		}
		reduced := *ext
		reduced.MethodKind = MethodReducedExtension
		reduced.Parameters = ext.Parameters[1:]
		return &reduced
	}
	return nil
}

// assignable reports whether a value of type from converts implicitly to
// type to by identity, inheritance or interface implementation.
func assignable(from, to *Type) bool {
	if from == nil || to == nil {
		return false
	}
	if to.Special == SpecialObject {
		return true
	}
	for c := from; c != nil; c = c.BaseType {
		if c.SameDefinition(to) {
			return true
		}
	}
	for _, i := range from.AllInterfaces() {
		if i.SameDefinition(to) {
			return true
		}
	}
	return from.Kind == TypeArray && to.FullName() == "System.Collections.Generic.IEnumerable"
}

// ConstantValue implements Model.
func (t *Table) ConstantValue(n *syntax.Node) (any, bool) {
	if n == nil {
		return nil, false
	}
	if f, ok := t.fact(n); ok && f.HasConstant {
		return f.Constant, true
	}
	switch k := n.Kind(); {
	case k.IsLiteralExpression():
		return LiteralValue(n)
	case k == syntax.ParenthesizedExpression:
		return t.ConstantValue(n.Expression())
	case k == syntax.UnaryMinusExpression:
		v, ok := t.ConstantValue(n.Operand())
		if !ok {
			return nil, false
		}
		switch x := v.(type) {
		case int64:
			return -x, true
		case uint64:
			if x <= 1<<63 {
				return -int64(x), true
			}
		case float64:
			return -x, true
		}
		return nil, false
	case k == syntax.BitwiseOrExpression, k == syntax.BitwiseAndExpression, k == syntax.ExclusiveOrExpression:
		return t.foldBitwise(n)
	case k == syntax.AddExpression:
		l, lok := t.ConstantValue(n.Left())
		r, rok := t.ConstantValue(n.Right())
		if !lok || !rok {
			return nil, false
		}
		switch lv := l.(type) {
		case string:
			if rv, ok := r.(string); ok {
				return lv + rv, true
			}
		case int64:
			if rv, ok := r.(int64); ok {
				return lv + rv, true
			}
		}
		return nil, false
	case k == syntax.IdentifierName, k == syntax.SimpleMemberAccessExpression:
		if s := t.SymbolOf(n); s != nil && s.HasConstant {
			return s.Constant, true
		}
	}
	return nil, false
}

func (t *Table) foldBitwise(n *syntax.Node) (any, bool) {
	l, lok := t.ConstantValue(n.Left())
	r, rok := t.ConstantValue(n.Right())
	if !lok || !rok {
		return nil, false
	}
	lu, lok := Uint64Value(l)
	ru, rok := Uint64Value(r)
	if !lok || !rok {
		return nil, false
	}
	var v uint64
	switch n.Kind() {
	case syntax.BitwiseOrExpression:
		v = lu | ru
	case syntax.BitwiseAndExpression:
		v = lu & ru
	default:
		v = lu ^ ru
	}
	_, lsigned := l.(int64)
	_, rsigned := r.(int64)
	if lsigned && rsigned {
		return int64(v), true
	}
	return v, true
}

// IsAccessible implements Model. Public and internal symbols are always
// accessible; private and protected symbols only inside the declaration
// of their containing type.
func (t *Table) IsAccessible(pos int, sym *Symbol) bool {
	if sym == nil {
		return false
	}
	switch sym.Accessibility {
	case Public, Internal:
		return true
	}
	ct := sym.ContainingType
	return ct != nil && !ct.Span.IsEmpty() && ct.Span.Contains(pos)
}
