// Copyright © 2024 The ELPS authors

package rewrite

import (
	"strconv"
	"strings"

	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
)

// DeclareEnumMember inserts name = value before the member at index of an
// enum declaration. A negative value is written with unary minus.
func DeclareEnumMember(enum *syntax.Node, index int, name, value string) (*syntax.Node, error) {
	if enum.Kind() != syntax.EnumDeclaration {
		return nil, ErrUnsupported
	}
	var lit *syntax.Node
	if v, ok := strings.CutPrefix(value, "-"); ok {
		lit = syntax.UnaryMinus(syntax.NumericLiteral(v))
	} else {
		lit = syntax.NumericLiteral(value)
	}
	members := insertSeparated(enum.Members(), index, syntax.EnumMember(name, lit))
	return Replace(enum, enum.WithChild(6, members).WithoutTrivia())
}

// UniqueMemberName returns base, or base followed by the smallest number
// from 2 up, whichever names no member of decl.
func UniqueMemberName(decl *syntax.Node, base string) string {
	taken := make(map[string]bool)
	for _, m := range decl.Members().Elements() {
		if id := m.Identifier(); id != nil {
			taken[id.Text()] = true
		}
		if d := m.Declaration(); d != nil {
			for _, v := range d.Variables() {
				taken[v.Identifier().Text()] = true
			}
		}
	}
	name := base
	for i := 2; taken[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	return name
}

// insertSeparated returns a copy of the SeparatedList list with item
// inserted at element index.
func insertSeparated(list *syntax.Node, index int, item *syntax.Node) *syntax.Node {
	slots := list.Children()
	at := 2 * index
	var out []*syntax.Node
	if at >= len(slots) {
		out = append(out, slots...)
		if len(slots)%2 == 1 {
			out = append(out, syntax.Token(syntax.CommaToken))
		}
		out = append(out, item)
	} else {
		out = append(out, slots[:at]...)
		out = append(out, item, syntax.Token(syntax.CommaToken))
		out = append(out, slots[at:]...)
	}
	return syntax.NewNode(syntax.SeparatedList, out...)
}

// AddExceptionConstructors declares in class one public constructor per
// base constructor, each forwarding its parameters to base. They go after
// the last constructor of the class, or first when it has none.
func AddExceptionConstructors(class *syntax.Node, base []*semantic.Symbol) (*syntax.Node, error) {
	if len(base) == 0 {
		return nil, ErrNoMatch
	}
	name := class.Identifier().Text()
	ctors := make([]*syntax.Node, 0, len(base))
	for _, b := range base {
		var params, args []*syntax.Node
		for _, p := range b.Parameters {
			typ, err := TypeSyntax(p.Type)
			if err != nil {
				return nil, err
			}
			params = append(params, syntax.Param(nil, typ, p.Name))
			args = append(args, syntax.IdentifierNameOf(p.Name))
		}
		ctors = append(ctors, syntax.Constructor([]syntax.Kind{syntax.PublicKeyword}, name, params,
			syntax.ConstructorInitializerOf(syntax.BaseKeyword, args...), syntax.BlockOf()))
	}
	members := class.Members().Children()
	if len(members) == 0 {
		det := class.WithChild(6, syntax.NewList(ctors...))
		return Replace(class, det.WithoutTrivia())
	}
	var anchor *syntax.Node
	for _, m := range members {
		if m.Kind() == syntax.ConstructorDeclaration {
			anchor = m
		}
	}
	if anchor == nil {
		return InsertMembersBefore(members[0], ctors...)
	}
	return InsertMembersAfter(anchor, ctors...)
}

// InsertMembersAfter inserts members after anchor, each separated from its
// predecessor by an empty line.
func InsertMembersAfter(anchor *syntax.Node, members ...*syntax.Node) (*syntax.Node, error) {
	indent, newline := LineOf(anchor.FirstToken())
	if firstEndOfLine(anchor.LastToken().TrailingTrivia()) < 0 {
		return nil, ErrUnsupported
	}
	out := make([]*syntax.Node, len(members))
	for i, m := range members {
		out[i] = Annotate(m.WithLeadingTrivia(syntax.EndOfLine(newline), syntax.Whitespace(indent)).
			WithTrailingTrivia(syntax.EndOfLine(newline)))
	}
	return syntax.InsertAfter(anchor, out...), nil
}

// InsertMembersBefore inserts members before anchor, followed by an empty
// line.
func InsertMembersBefore(anchor *syntax.Node, members ...*syntax.Node) (*syntax.Node, error) {
	indent, newline := LineOf(anchor.FirstToken())
	if lastEndOfLine(anchor.FirstToken().LeadingTrivia()) < 0 {
		if prev := anchor.FirstToken().PreviousToken(); prev == nil || lastEndOfLine(prev.TrailingTrivia()) < 0 {
			return nil, ErrUnsupported
		}
	}
	out := make([]*syntax.Node, len(members))
	for i, m := range members {
		out[i] = Annotate(m.WithLeadingTrivia(syntax.Whitespace(indent)).
			WithTrailingTrivia(syntax.EndOfLine(newline), syntax.EndOfLine(newline)))
	}
	return syntax.InsertBefore(anchor, out...), nil
}

// TypeSyntax returns the syntax naming t: a keyword for the special types
// and the simple name otherwise. Constructed and array types are not
// supported.
func TypeSyntax(t *semantic.Type) (*syntax.Node, error) {
	if t == nil || len(t.TypeArguments) > 0 {
		return nil, ErrUnsupported
	}
	if k, ok := semantic.SpecialKeyword(t.Special); ok {
		return syntax.PredefinedTypeOf(k), nil
	}
	return syntax.NameOf(t.Name), nil
}

// RemoveFieldInitializer drops the = value part of a declarator.
func RemoveFieldInitializer(declarator *syntax.Node) (*syntax.Node, error) {
	if declarator.Initializer() == nil {
		return nil, ErrNoMatch
	}
	repl := syntax.NewNode(syntax.VariableDeclarator, declarator.Identifier().WithoutTrivia(), nil)
	return Replace(declarator, repl)
}

// UseConstant turns a static readonly field into a const field. The const
// keyword follows the accessibility modifiers.
func UseConstant(field *syntax.Node) (*syntax.Node, error) {
	if !field.HasModifier(syntax.StaticKeyword) || !field.HasModifier(syntax.ReadOnlyKeyword) {
		return nil, ErrNoMatch
	}
	var mods []*syntax.Node
	at := 0
	for _, m := range field.Modifiers().Children() {
		switch m.Kind() {
		case syntax.StaticKeyword, syntax.ReadOnlyKeyword:
			continue
		case syntax.PublicKeyword, syntax.PrivateKeyword, syntax.ProtectedKeyword, syntax.InternalKeyword:
			at = len(mods) + 1
		}
		mods = append(mods, m)
	}
	mods = append(mods[:at], append([]*syntax.Node{syntax.Token(syntax.ConstKeyword)}, mods[at:]...)...)
	det := field.WithChild(1, syntax.NewList(mods...))
	return Replace(field, det.WithoutTrivia())
}

// InsertModifier adds the modifier keyword k to decl after its
// accessibility modifiers. decl must already carry a modifier.
func InsertModifier(decl *syntax.Node, k syntax.Kind) (*syntax.Node, error) {
	if decl.HasModifier(k) {
		return nil, ErrNoMatch
	}
	old := decl.Modifiers().Children()
	if len(old) == 0 {
		return nil, ErrUnsupported
	}
	at := 0
	for i, m := range old {
		switch m.Kind() {
		case syntax.PublicKeyword, syntax.PrivateKeyword, syntax.ProtectedKeyword, syntax.InternalKeyword:
			at = i + 1
		}
	}
	mods := make([]*syntax.Node, 0, len(old)+1)
	mods = append(mods, old[:at]...)
	mods = append(mods, syntax.Token(k))
	mods = append(mods, old[at:]...)
	return Replace(decl.Modifiers(), syntax.NewList(mods...))
}

// SplitAttributes rewrites [A, B] as [A] [B]. The lists go on separate
// lines except on parameters.
func SplitAttributes(list *syntax.Node) (*syntax.Node, error) {
	attrs := list.SeparatedChildren().Elements()
	if len(attrs) < 2 {
		return nil, ErrNoMatch
	}
	inline := list.FirstAncestor(syntax.Parameter) != nil
	lists := make([]*syntax.Node, len(attrs))
	for i, a := range attrs {
		lists[i] = syntax.AttributeListOf(a.WithoutTrivia())
		if inline && i < len(attrs)-1 {
			lists[i] = lists[i].WithTrailingTrivia(syntax.Space())
		}
	}
	return ReplaceStatements(list, 1, lists...)
}
