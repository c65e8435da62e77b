// Copyright © 2024 The ELPS authors

package lint

import (
	"github.com/luthersystems/fixkit/astutil"
	"github.com/luthersystems/fixkit/flags"
	"github.com/luthersystems/fixkit/predicate"
	"github.com/luthersystems/fixkit/rewrite"
	"github.com/luthersystems/fixkit/semantic"
	"github.com/luthersystems/fixkit/syntax"
	"github.com/luthersystems/fixkit/trivia"
)

// AnalyzerCompositeEnumValueContainsUndefinedFlag reports composite members
// of a [Flags] enum that combine a bit no member declares.
var AnalyzerCompositeEnumValueContainsUndefinedFlag = &Analyzer{
	Name:  "composite-enum-value-contains-undefined-flag",
	Doc:   "Composite enum value contains an undefined flag.\n\nIn a [Flags] enum every bit of a composite value should be declared by a member of its own. The fix declares the missing flag before the composite member. Requires semantic information.",
	Kinds: []syntax.Kind{syntax.EnumDeclaration},
	Visit: func(pass *Pass, n *syntax.Node) {
		model := pass.Model()
		if model == nil {
			return
		}
		sym := model.SymbolOf(n)
		if sym == nil || !predicate.HasFlagsAttribute(sym.Type, pass.WellKnown()) {
			return
		}
		members := n.Members().Elements()
		values, ok := enumValues(model, members)
		if !ok {
			return
		}
		underlying := semantic.SpecialNone
		if u := sym.Type.EnumUnderlying; u != nil {
			underlying = u.Special
		}
		findings, err := flags.UndefinedFlags(underlying, values)
		if err != nil {
			return
		}
		for _, f := range findings {
			f := f
			member := members[f.Index]
			var fix *Fix
			if member.Value() != nil {
				fix = offer(nodeFix("Declare enum member", region(n), n, func(cur *syntax.Node) (*syntax.Node, error) {
					return rewrite.DeclareEnumMember(cur, f.Index, rewrite.UniqueMemberName(cur, "EnumMember"), f.Value)
				}), n)
			}
			pass.ReportWithProperties(member, "Composite enum value contains undefined flag "+f.Value,
				map[string]string{"Value": f.Value}, fix)
		}
	},
}

// enumValues returns the constant of every member. A member without a
// value follows its predecessor, and the first one is zero.
func enumValues(model semantic.Model, members []*syntax.Node) ([]any, bool) {
	values := make([]any, len(members))
	var prev any
	for i, m := range members {
		var v any
		if sym := model.SymbolOf(m); sym != nil && sym.HasConstant {
			v = sym.Constant
		} else if clause := m.Value(); clause != nil {
			c, ok := model.ConstantValue(clause.Value())
			if !ok {
				return nil, false
			}
			v = c
		} else {
			switch p := prev.(type) {
			case nil:
				if i > 0 {
					return nil, false
				}
				v = int64(0)
			case int64:
				v = p + 1
			case uint64:
				v = p + 1
			default:
				return nil, false
			}
		}
		values[i] = v
		prev = v
	}
	return values, true
}

// AnalyzerAvoidEmptyCatchClause reports empty catch clauses that catch
// System.Exception.
var AnalyzerAvoidEmptyCatchClause = &Analyzer{
	Name:  "avoid-empty-catch-clause-that-catches-system-exception",
	Doc:   "Avoid an empty catch clause that catches System.Exception.\n\nSwallowing every exception hides failures. Catch a more specific type or handle the exception. Requires semantic information.",
	Kinds: []syntax.Kind{syntax.CatchClause},
	Visit: func(pass *Pass, n *syntax.Node) {
		model := pass.Model()
		if model == nil {
			return
		}
		decl := n.Declaration()
		if decl == nil || len(n.Block().Statements().Children()) != 0 {
			return
		}
		if !predicate.IsException(model.TypeOf(decl.Type()), pass.WellKnown()) {
			return
		}
		pass.ReportNode(n.Keyword(), "Avoid empty catch clause that catches System.Exception", nil)
	},
}

// AnalyzerImplementExceptionConstructors reports exception classes that
// lack constructors of their base class.
var AnalyzerImplementExceptionConstructors = &Analyzer{
	Name:  "implement-exception-constructors",
	Doc:   "Implement exception constructors.\n\nA class deriving from System.Exception should offer every accessible constructor of its base class. The fix adds each missing one, forwarding its parameters to base. Requires semantic information.",
	Kinds: []syntax.Kind{syntax.ClassDeclaration},
	Visit: func(pass *Pass, n *syntax.Node) {
		model, wk := pass.Model(), pass.WellKnown()
		if model == nil {
			return
		}
		missing := missingConstructors(model, wk, n)
		if len(missing) == 0 {
			return
		}
		pass.ReportNode(n.Identifier(), "Implement exception constructors", offer(nodeFix("Generate constructors", region(n), n,
			func(cur *syntax.Node) (*syntax.Node, error) {
				missing := missingConstructors(model, wk, cur)
				if len(missing) == 0 {
					return nil, rewrite.ErrNoMatch
				}
				return rewrite.AddExceptionConstructors(cur, missing)
			}), n))
	},
}

// missingConstructors returns the public and internal constructors of the
// base exception of class that class does not declare.
func missingConstructors(model semantic.Model, wk semantic.WellKnown, class *syntax.Node) []*semantic.Symbol {
	sym := model.SymbolOf(class)
	if sym == nil || sym.Type == nil || !predicate.IsOrDerivesFromException(sym.Type.BaseType, wk) {
		return nil
	}
	var declared [][]*semantic.Type
	for _, m := range class.Members().Elements() {
		if m.Kind() != syntax.ConstructorDeclaration {
			continue
		}
		var params []*semantic.Type
		for _, p := range m.Parameters() {
			params = append(params, model.TypeOf(p.Type()))
		}
		declared = append(declared, params)
	}
	var missing []*semantic.Symbol
	for _, ctor := range sym.Type.BaseType.MembersNamed(".ctor") {
		if ctor.Accessibility == semantic.Private || ctor.Accessibility == semantic.Protected {
			continue
		}
		if !hasSignature(declared, ctor) {
			missing = append(missing, ctor)
		}
	}
	return missing
}

func hasSignature(declared [][]*semantic.Type, ctor *semantic.Symbol) bool {
outer:
	for _, params := range declared {
		if len(params) != len(ctor.Parameters) {
			continue
		}
		for i, p := range ctor.Parameters {
			if !params[i].SameDefinition(p.Type) {
				continue outer
			}
		}
		return true
	}
	return false
}

// AnalyzerRemoveRedundantFieldInitialization reports fields initialized
// to the default value of their type.
var AnalyzerRemoveRedundantFieldInitialization = &Analyzer{
	Name:  "remove-redundant-field-initialization",
	Doc:   "Remove redundant field initialization.\n\n`int x = 0;` and `string s = null;` initialize a field to the value it has anyway. Requires semantic information.",
	Kinds: []syntax.Kind{syntax.FieldDeclaration},
	Visit: func(pass *Pass, n *syntax.Node) {
		model := pass.Model()
		if model == nil || n.HasModifier(syntax.ConstKeyword) {
			return
		}
		decl := n.Declaration()
		typ := model.TypeOf(decl.Type())
		for _, v := range decl.Variables() {
			init := v.Initializer()
			if init == nil {
				continue
			}
			c, ok := model.ConstantValue(init.Value())
			if !ok || !predicate.IsDefaultValue(typ, c) || trivia.Classify(v).Veto() {
				continue
			}
			pass.ReportFadeOut(init, []*syntax.Node{init}, "Remove redundant field initialization",
				nodeFix("Remove initialization", region(v), v, rewrite.RemoveFieldInitializer))
		}
	},
}

// AnalyzerUseConstantInsteadOfField reports static read-only fields whose
// value is a compile-time constant.
var AnalyzerUseConstantInsteadOfField = &Analyzer{
	Name:  "use-constant-instead-of-field",
	Doc:   "Use a constant instead of a static read-only field.\n\nThe field type must support constants and every declarator must have a constant initializer. Fields assigned in a constructor are not reported. Requires semantic information.",
	Kinds: []syntax.Kind{syntax.FieldDeclaration},
	Visit: func(pass *Pass, n *syntax.Node) {
		model := pass.Model()
		if model == nil {
			return
		}
		if !n.HasModifier(syntax.StaticKeyword) || !n.HasModifier(syntax.ReadOnlyKeyword) ||
			n.HasModifier(syntax.ConstKeyword) || n.HasModifier(syntax.NewKeyword) {
			return
		}
		decl := n.Declaration()
		if !predicate.SupportsCompileTimeConstant(model.TypeOf(decl.Type())) {
			return
		}
		vars := decl.Variables()
		for _, v := range vars {
			init := v.Initializer()
			if init == nil || !predicate.IsConstant(model, init.Value()) || assignedInConstructor(n, v.Identifier().Text()) {
				return
			}
		}
		pass.ReportNode(vars[0].Identifier(), "Use constant instead of field",
			offer(nodeFix("Use constant", region(n), n, rewrite.UseConstant), n))
	},
}

// assignedInConstructor reports whether a constructor of the type declaring
// field assigns name.
func assignedInConstructor(field *syntax.Node, name string) bool {
	typ := field.Parent().Parent()
	for _, m := range typ.Members().Elements() {
		if m.Kind() != syntax.ConstructorDeclaration {
			continue
		}
		for _, a := range m.DescendantsOfKind(syntax.SimpleAssignmentExpression) {
			left := astutil.WalkDownParentheses(a.Left())
			if left.Kind() == syntax.SimpleMemberAccessExpression {
				left = left.Name()
			}
			if astutil.IsSimpleName(left, name) {
				return true
			}
		}
	}
	return false
}

// AnalyzerRemoveEmptyNamespaceDeclaration reports namespaces without
// members.
var AnalyzerRemoveEmptyNamespaceDeclaration = &Analyzer{
	Name:  "remove-empty-namespace-declaration",
	Doc:   "Remove an empty namespace declaration.\n\nA namespace whose braces hold nothing but whitespace is removed.",
	Kinds: []syntax.Kind{syntax.NamespaceDeclaration},
	Visit: func(pass *Pass, n *syntax.Node) {
		if len(n.Members().Children()) != 0 {
			return
		}
		if !trivia.ClassifyBetween(n.OpenBrace(), n.CloseBrace()).CanDiscard() {
			return
		}
		pass.ReportNode(n, "Remove empty namespace declaration",
			offer(nodeFix("Remove namespace", region(n), n, rewrite.Remove), n))
	},
}

// AnalyzerDeclareEachAttributeSeparately reports attribute lists holding
// more than one attribute.
var AnalyzerDeclareEachAttributeSeparately = &Analyzer{
	Name:  "declare-each-attribute-separately",
	Doc:   "Declare each attribute separately.\n\n`[A, B]` becomes `[A]` and `[B]`, each on its own line unless the attributes decorate a parameter.",
	Kinds: []syntax.Kind{syntax.AttributeList},
	Visit: func(pass *Pass, n *syntax.Node) {
		if len(n.SeparatedChildren().Elements()) < 2 || n.Parent().Kind() != syntax.List {
			return
		}
		pass.ReportNode(n, "Declare each attribute separately",
			offer(nodeFix("Split attributes", region(n), n, rewrite.SplitAttributes), n))
	},
}

// AnalyzerAddStaticModifierToAllPartialClassDeclarations reports parts of a
// static partial class declared without the static modifier.
var AnalyzerAddStaticModifierToAllPartialClassDeclarations = &Analyzer{
	Name:  "add-static-modifier-to-all-partial-class-declarations",
	Doc:   "Add the static modifier to all partial class declarations.\n\nWhen one part of a partial class is static, every part declared next to it gets the modifier. With semantic information a class the model marks static is reported as well.",
	Kinds: []syntax.Kind{syntax.ClassDeclaration},
	Visit: func(pass *Pass, n *syntax.Node) {
		if !n.HasModifier(syntax.PartialKeyword) || n.HasModifier(syntax.StaticKeyword) {
			return
		}
		if !hasStaticPart(pass.Model(), n) {
			return
		}
		pass.ReportNode(n.Identifier(), "Add 'static' modifier to all partial class declarations",
			offer(nodeFix("Add 'static' modifier", region(n.Modifiers()), n,
				func(cur *syntax.Node) (*syntax.Node, error) {
					return rewrite.InsertModifier(cur, syntax.StaticKeyword)
				}), n.Modifiers()))
	},
}

// hasStaticPart reports whether a sibling declaration of the partial class
// is static, or the model marks the class static.
func hasStaticPart(model semantic.Model, class *syntax.Node) bool {
	if model != nil {
		if sym := model.SymbolOf(class); sym != nil && sym.Type != nil && sym.Type.IsStatic {
			return true
		}
	}
	name := class.Identifier().Text()
	for _, m := range class.Parent().Children() {
		if m.Kind() != syntax.ClassDeclaration || m.SameNode(class) || m.Identifier().Text() != name {
			continue
		}
		if m.HasModifier(syntax.PartialKeyword) && m.HasModifier(syntax.StaticKeyword) {
			return true
		}
	}
	return false
}
