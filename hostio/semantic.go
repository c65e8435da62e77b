// Copyright © 2024 The ELPS authors

package hostio

import (
	"encoding/json"
	"fmt"
	"strconv"

	"fortio.org/safecast"
	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/text"
)

// Table builds the semantic model of the document on top of the standard
// library. Type references name a type id of the document first and a
// registered type second. A type with a special name adds its members and
// interfaces to the table's special type.
func (d *Document) Table() (*semantic.Table, error) {
	l := &linker{
		doc:     d,
		table:   semantic.NewTable(),
		types:   make(map[string]*semantic.Type, len(d.Types)),
		symbols: make(map[string]*semantic.Symbol, len(d.Symbols)),
	}
	l.table.AddStandardLibrary()
	steps := []func() error{l.declare, l.linkTypes, l.linkSymbols, l.register, l.addFacts, l.setWellKnown}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return l.table, nil
}

type linker struct {
	doc     *Document
	table   *semantic.Table
	types   map[string]*semantic.Type
	symbols map[string]*semantic.Symbol
	// members collects the members of document types in declaration order.
	members map[*semantic.Type][]*semantic.Symbol
}

// declare creates a shell for every type and symbol so that references may
// point forward.
func (l *linker) declare() error {
	for i, ti := range l.doc.Types {
		path := "types/" + strconv.Itoa(i)
		if ti.ID == "" {
			return fmt.Errorf("%s: %w: type without id", path, ErrMalformed)
		}
		if _, dup := l.types[ti.ID]; dup {
			return fmt.Errorf("%s: %w: duplicate type id %q", path, ErrMalformed, ti.ID)
		}
		if ti.Special != "" {
			s, ok := semantic.ParseSpecialType(ti.Special)
			if !ok || s == semantic.SpecialNone {
				return fmt.Errorf("%s: %w: special type %q", path, ErrUnknownKind, ti.Special)
			}
			l.types[ti.ID] = l.table.Special(s)
			continue
		}
		kind := semantic.TypeClass
		if ti.Kind != "" {
			k, ok := semantic.ParseTypeKind(ti.Kind)
			if !ok {
				return fmt.Errorf("%s: %w: type kind %q", path, ErrUnknownKind, ti.Kind)
			}
			kind = k
		}
		span, err := spanOf(ti.Span)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		l.types[ti.ID] = &semantic.Type{
			Name:       ti.Name,
			Namespace:  ti.Namespace,
			Kind:       kind,
			HasIndexer: ti.HasIndexer,
			IsStatic:   ti.IsStatic,
			Span:       span,
		}
	}
	for i, si := range l.doc.Symbols {
		path := "symbols/" + strconv.Itoa(i)
		if si.ID == "" {
			return fmt.Errorf("%s: %w: symbol without id", path, ErrMalformed)
		}
		if _, dup := l.symbols[si.ID]; dup {
			return fmt.Errorf("%s: %w: duplicate symbol id %q", path, ErrMalformed, si.ID)
		}
		sym := &semantic.Symbol{
			Name:        si.Name,
			IsStatic:    si.IsStatic,
			IsReadOnly:  si.IsReadOnly,
			IsConst:     si.IsConst,
			IsExtension: si.IsExtension,
			HasConstant: si.HasConstant || si.Constant != nil,
		}
		var ok bool
		if sym.Kind, ok = semantic.ParseSymbolKind(si.Kind); !ok {
			return fmt.Errorf("%s: %w: symbol kind %q", path, ErrUnknownKind, si.Kind)
		}
		if sym.RefKind, ok = semantic.ParseRefKind(si.RefKind); !ok {
			return fmt.Errorf("%s: %w: ref kind %q", path, ErrUnknownKind, si.RefKind)
		}
		if sym.MethodKind, ok = semantic.ParseMethodKind(si.MethodKind); !ok {
			return fmt.Errorf("%s: %w: method kind %q", path, ErrUnknownKind, si.MethodKind)
		}
		if sym.Accessibility, ok = semantic.ParseAccessibility(si.Accessibility); !ok {
			return fmt.Errorf("%s: %w: accessibility %q", path, ErrUnknownKind, si.Accessibility)
		}
		if sym.HasConstant {
			v, err := constantOf(si.Constant)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			sym.Constant = v
		}
		l.symbols[si.ID] = sym
	}
	return nil
}

func (l *linker) typeRef(ref, path string) (*semantic.Type, error) {
	if ref == "" {
		return nil, nil
	}
	if ty, ok := l.types[ref]; ok {
		return ty, nil
	}
	if ty := l.table.LookupType(ref); ty != nil {
		return ty, nil
	}
	return nil, fmt.Errorf("%s: %w: unknown type %q", path, ErrMalformed, ref)
}

func (l *linker) typeRefs(refs []string, path string) ([]*semantic.Type, error) {
	var out []*semantic.Type
	for i, ref := range refs {
		ty, err := l.typeRef(ref, path+"/"+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		out = append(out, ty)
	}
	return out, nil
}

func (l *linker) symbolRef(ref, path string) (*semantic.Symbol, error) {
	if ref == "" {
		return nil, nil
	}
	if sym, ok := l.symbols[ref]; ok {
		return sym, nil
	}
	return nil, fmt.Errorf("%s: %w: unknown symbol %q", path, ErrMalformed, ref)
}

func (l *linker) linkTypes() error {
	l.members = make(map[*semantic.Type][]*semantic.Symbol)
	for i, ti := range l.doc.Types {
		path := "types/" + strconv.Itoa(i)
		ty := l.types[ti.ID]
		base, err := l.typeRef(ti.Base, path+"/base")
		if err != nil {
			return err
		}
		ifaces, err := l.typeRefs(ti.Interfaces, path+"/interfaces")
		if err != nil {
			return err
		}
		attrs, err := l.typeRefs(ti.Attributes, path+"/attributes")
		if err != nil {
			return err
		}
		ty.Interfaces = append(ty.Interfaces, ifaces...)
		ty.Attributes = append(ty.Attributes, attrs...)
		if ti.HasIndexer {
			ty.HasIndexer = true
		}
		for j, ref := range ti.Members {
			m, err := l.symbolRef(ref, path+"/members/"+strconv.Itoa(j))
			if err != nil {
				return err
			}
			m.ContainingType = ty
			l.members[ty] = append(l.members[ty], m)
		}
		if ti.Special != "" {
			continue
		}
		if base == nil && ty.Kind != semantic.TypeInterface {
			base = l.table.Special(semantic.SpecialObject)
		}
		ty.BaseType = base
		if ty.EnumUnderlying, err = l.typeRef(ti.EnumUnderlying, path+"/enumUnderlying"); err != nil {
			return err
		}
		if ty.Kind == semantic.TypeEnum && ty.EnumUnderlying == nil {
			ty.EnumUnderlying = l.table.Special(semantic.SpecialInt32)
		}
		if ty.TypeArguments, err = l.typeRefs(ti.TypeArguments, path+"/typeArguments"); err != nil {
			return err
		}
	}
	return nil
}

func (l *linker) linkSymbols() error {
	for i, si := range l.doc.Symbols {
		path := "symbols/" + strconv.Itoa(i)
		sym := l.symbols[si.ID]
		var err error
		if sym.Type, err = l.typeRef(si.Type, path+"/type"); err != nil {
			return err
		}
		ct, err := l.typeRef(si.ContainingType, path+"/containingType")
		if err != nil {
			return err
		}
		if ct != nil && sym.ContainingType == nil {
			sym.ContainingType = ct
			l.members[ct] = append(l.members[ct], sym)
		}
		for j, ref := range si.Parameters {
			p, err := l.symbolRef(ref, path+"/parameters/"+strconv.Itoa(j))
			if err != nil {
				return err
			}
			sym.Parameters = append(sym.Parameters, p)
		}
	}
	return nil
}

// register adds the document types to the table once their members are
// known, and the members of existing types through AddMember.
func (l *linker) register() error {
	fresh := make(map[*semantic.Type]bool)
	for _, ti := range l.doc.Types {
		if ti.Special == "" {
			fresh[l.types[ti.ID]] = true
		}
	}
	for _, ti := range l.doc.Types {
		ty := l.types[ti.ID]
		if fresh[ty] {
			ty.Members = append(ty.Members, l.members[ty]...)
			l.table.AddType(ty)
			delete(l.members, ty)
		}
	}
	// Members of special and standard library types, in document order.
	for _, si := range l.doc.Symbols {
		sym := l.symbols[si.ID]
		ct := sym.ContainingType
		if ct == nil || fresh[ct] {
			continue
		}
		for _, m := range l.members[ct] {
			if m == sym {
				l.table.AddMember(ct, sym)
				break
			}
		}
	}
	for _, si := range l.doc.Symbols {
		sym := l.symbols[si.ID]
		switch {
		case sym.Kind == semantic.SymLocal, sym.Kind == semantic.SymParameter:
			l.table.AddSymbol(sym)
		case sym.ContainingType == nil && sym.Kind != semantic.SymType:
			l.table.AddSymbol(sym)
		}
	}
	return nil
}

func (l *linker) addFacts() error {
	for i, fi := range l.doc.Facts {
		path := "facts/" + strconv.Itoa(i)
		k, ok := syntax.KindFromString(fi.Kind)
		if !ok || k == syntax.None {
			return fmt.Errorf("%s: %w %q", path, ErrUnknownKind, fi.Kind)
		}
		if fi.End < fi.Start || fi.Start < 0 {
			return fmt.Errorf("%s: %w: span [%d, %d)", path, ErrMalformed, fi.Start, fi.End)
		}
		f := semantic.Fact{Span: text.FromBounds(fi.Start, fi.End), Kind: k}
		var err error
		if f.Symbol, err = l.symbolRef(fi.Symbol, path+"/symbol"); err != nil {
			return err
		}
		if f.Type, err = l.typeRef(fi.Type, path+"/type"); err != nil {
			return err
		}
		if fi.HasConstant || fi.Constant != nil {
			if f.Constant, err = constantOf(fi.Constant); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			f.HasConstant = true
		}
		l.table.AddFact(f)
	}
	return nil
}

func (l *linker) setWellKnown() error {
	info := l.doc.WellKnown
	if info == nil {
		return nil
	}
	wk := l.table.WellKnown()
	fields := []struct {
		ref  string
		name string
		dst  **semantic.Type
	}{
		{info.Exception, "exception", &wk.Exception},
		{info.FlagsAttribute, "flagsAttribute", &wk.FlagsAttribute},
		{info.Enumerable, "enumerable", &wk.Enumerable},
		{info.String, "string", &wk.String},
		{info.Object, "object", &wk.Object},
	}
	for _, f := range fields {
		if f.ref == "" {
			continue
		}
		ty, err := l.typeRef(f.ref, "wellKnown/"+f.name)
		if err != nil {
			return err
		}
		*f.dst = ty
	}
	l.table.SetWellKnown(wk)
	return nil
}

func spanOf(bounds []int) (text.Span, error) {
	switch {
	case len(bounds) == 0:
		return text.Span{}, nil
	case len(bounds) != 2 || bounds[0] < 0 || bounds[1] < bounds[0]:
		return text.Span{}, fmt.Errorf("%w: span %v", ErrMalformed, bounds)
	}
	return text.FromBounds(bounds[0], bounds[1]), nil
}

// constantOf normalizes a decoded constant to the value representation of
// the semantic model: int64 when the value fits, then uint64, then float64.
func constantOf(v any) (any, error) {
	switch x := v.(type) {
	case nil, string, bool, int64, float64:
		return x, nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		if u, err := strconv.ParseUint(string(x), 10, 64); err == nil {
			return u, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: constant %s", ErrMalformed, x)
		}
		return f, nil
	case uint64:
		if i, err := safecast.Conv[int64](x); err == nil {
			return i, nil
		}
		return x, nil
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case float32:
		return float64(x), nil
	}
	return nil, fmt.Errorf("%w: constant of type %T", ErrMalformed, v)
}
