// Copyright © 2024 The ELPS authors

package syntax

import "fmt"

// The constructors in this file build detached nodes without trivia. Slot
// layouts are documented in slots.go; hostio builds trees with the same
// layouts.

// Token returns a token of a fixed-spelling kind.
func Token(k Kind) *Node {
	s, ok := DefaultText(k)
	if !ok {
		panic(fmt.Sprintf("syntax: %s has no fixed spelling", k))
	}
	return detached(newGreenToken(k, s, nil, nil, false))
}

// TokenWithText returns a token with explicit text and trivia.
func TokenWithText(k Kind, s string, leading, trailing []Trivia) *Node {
	return detached(newGreenToken(k, s, leading, trailing, false))
}

// MissingToken returns a zero-width token marking a parse error.
func MissingToken(k Kind) *Node {
	return detached(newGreenToken(k, "", nil, nil, true))
}

// Identifier returns an identifier token.
func Identifier(name string) *Node {
	return detached(newGreenToken(IdentifierToken, name, nil, nil, false))
}

// NewNode returns a node of kind k with the given slots. Nil slots are
// absent optional children.
func NewNode(k Kind, slots ...*Node) *Node {
	gs := make([]*green, len(slots))
	for i, s := range slots {
		gs[i] = greenOf(s)
	}
	return detached(newGreenNode(k, gs))
}

// NewList returns a List of items.
func NewList(items ...*Node) *Node { return NewNode(List, items...) }

// NewSeparatedList returns a SeparatedList of items separated by commas.
func NewSeparatedList(items ...*Node) *Node {
	slots := make([]*Node, 0, 2*len(items))
	for i, it := range items {
		if i > 0 {
			slots = append(slots, Token(CommaToken))
		}
		slots = append(slots, it)
	}
	return NewNode(SeparatedList, slots...)
}

func modifierList(mods []Kind) *Node {
	toks := make([]*Node, len(mods))
	for i, m := range mods {
		toks[i] = Token(m)
	}
	return NewList(toks...)
}

func optionalIdentifier(name string) *Node {
	if name == "" {
		return nil
	}
	return Identifier(name)
}

// Names and types

// IdentifierNameOf returns an IdentifierName for name.
func IdentifierNameOf(name string) *Node {
	return NewNode(IdentifierName, Identifier(name))
}

// PredefinedTypeOf returns a PredefinedType for a type keyword such as
// IntKeyword.
func PredefinedTypeOf(k Kind) *Node {
	return NewNode(PredefinedType, Token(k))
}

// NameOf returns an IdentifierName or a chain of QualifiedName nodes for a
// dotted name such as "System.Exception".
func NameOf(dotted string) *Node {
	var out *Node
	start := 0
	for i := 0; i <= len(dotted); i++ {
		if i < len(dotted) && dotted[i] != '.' {
			continue
		}
		part := IdentifierNameOf(dotted[start:i])
		if out == nil {
			out = part
		} else {
			out = NewNode(QualifiedName, out, Token(DotToken), part)
		}
		start = i + 1
	}
	return out
}

// TypeOf returns a PredefinedType when name is a type keyword and a name
// otherwise.
func TypeOf(name string) *Node {
	if k, ok := KeywordKind(name); ok && k.IsPredefinedTypeKeyword() {
		return PredefinedTypeOf(k)
	}
	if name == "var" {
		return IdentifierNameOf("var")
	}
	return NameOf(name)
}

// Literals

// NumericLiteral returns a numeric literal expression with the given text.
func NumericLiteral(s string) *Node {
	return NewNode(NumericLiteralExpression, TokenWithText(NumericLiteralToken, s, nil, nil))
}

// StringLiteral returns a string literal expression. s is the literal as it
// appears in source, including quotes and any @ prefix.
func StringLiteral(s string) *Node {
	return NewNode(StringLiteralExpression, TokenWithText(StringLiteralToken, s, nil, nil))
}

// CharacterLiteral returns a character literal expression with source text s.
func CharacterLiteral(s string) *Node {
	return NewNode(CharacterLiteralExpression, TokenWithText(CharacterLiteralToken, s, nil, nil))
}

// True returns the literal true.
func True() *Node { return NewNode(TrueLiteralExpression, Token(TrueKeyword)) }

// False returns the literal false.
func False() *Node { return NewNode(FalseLiteralExpression, Token(FalseKeyword)) }

// Null returns the literal null.
func Null() *Node { return NewNode(NullLiteralExpression, Token(NullKeyword)) }

// InterpolatedString returns an interpolated string expression. contents are
// InterpolatedStringText and Interpolation nodes.
func InterpolatedString(verbatim bool, contents ...*Node) *Node {
	start := `$"`
	if verbatim {
		start = `$@"`
	}
	return NewNode(InterpolatedStringExpression,
		TokenWithText(InterpolatedStringStartToken, start, nil, nil),
		NewList(contents...),
		Token(InterpolatedStringEndToken))
}

// InterpolatedText returns literal text inside an interpolated string.
func InterpolatedText(s string) *Node {
	return NewNode(InterpolatedStringText, TokenWithText(InterpolatedStringTextToken, s, nil, nil))
}

// InterpolationOf returns an {expr} hole.
func InterpolationOf(expr *Node) *Node {
	return NewNode(Interpolation, Token(OpenBraceToken), expr, Token(CloseBraceToken))
}

// Expressions

// Parenthesized returns (expr).
func Parenthesized(expr *Node) *Node {
	return NewNode(ParenthesizedExpression, Token(OpenParenToken), expr, Token(CloseParenToken))
}

// Binary returns a binary expression of kind k.
func Binary(k Kind, left, right *Node) *Node {
	op := OperatorToken(k)
	if op == None {
		panic("syntax: not a binary expression kind: " + k.String())
	}
	return NewNode(k, left, Token(op), right)
}

// Assignment returns an assignment expression of kind k.
func Assignment(k Kind, left, right *Node) *Node {
	return Binary(k, left, right)
}

// LogicalNot returns !operand.
func LogicalNot(operand *Node) *Node {
	return NewNode(LogicalNotExpression, Token(ExclamationToken), operand)
}

// UnaryMinus returns -operand.
func UnaryMinus(operand *Node) *Node {
	return NewNode(UnaryMinusExpression, Token(MinusToken), operand)
}

// MemberAccess returns expr.name.
func MemberAccess(expr *Node, name string) *Node {
	return NewNode(SimpleMemberAccessExpression, expr, Token(DotToken), IdentifierNameOf(name))
}

// ConditionalAccess returns expr?whenNotNull, where whenNotNull starts with
// a member binding.
func ConditionalAccess(expr, whenNotNull *Node) *Node {
	return NewNode(ConditionalAccessExpression, expr, Token(QuestionToken), whenNotNull)
}

// MemberBinding returns the .name part of a conditional access.
func MemberBinding(name string) *Node {
	return NewNode(MemberBindingExpression, Token(DotToken), IdentifierNameOf(name))
}

// ArgumentOf wraps expr in an Argument.
func ArgumentOf(expr *Node) *Node { return NewNode(Argument, nil, expr) }

// RefArgument returns an argument passed with a ref, out or in keyword.
func RefArgument(k Kind, expr *Node) *Node { return NewNode(Argument, Token(k), expr) }

func arguments(args []*Node) []*Node {
	out := make([]*Node, len(args))
	for i, a := range args {
		if a.Kind() != Argument {
			a = ArgumentOf(a)
		}
		out[i] = a
	}
	return out
}

// ArgumentListOf returns (args). Expressions are wrapped in Argument nodes.
func ArgumentListOf(args ...*Node) *Node {
	return NewNode(ArgumentList, Token(OpenParenToken), NewSeparatedList(arguments(args)...), Token(CloseParenToken))
}

// BracketedArgumentListOf returns [args].
func BracketedArgumentListOf(args ...*Node) *Node {
	return NewNode(BracketedArgumentList, Token(OpenBracketToken), NewSeparatedList(arguments(args)...), Token(CloseBracketToken))
}

// Invocation returns expr(args).
func Invocation(expr *Node, args ...*Node) *Node {
	return NewNode(InvocationExpression, expr, ArgumentListOf(args...))
}

// ElementAccess returns expr[args].
func ElementAccess(expr *Node, args ...*Node) *Node {
	return NewNode(ElementAccessExpression, expr, BracketedArgumentListOf(args...))
}

// ObjectCreation returns new typ(args).
func ObjectCreation(typ *Node, args ...*Node) *Node {
	return NewNode(ObjectCreationExpression, Token(NewKeyword), typ, ArgumentListOf(args...))
}

// Conditional returns cond ? whenTrue : whenFalse.
func Conditional(cond, whenTrue, whenFalse *Node) *Node {
	return NewNode(ConditionalExpression, cond, Token(QuestionToken), whenTrue, Token(ColonToken), whenFalse)
}

// IsPattern returns expr is pattern.
func IsPattern(expr, pattern *Node) *Node {
	return NewNode(IsPatternExpression, expr, Token(IsKeyword), pattern)
}

// ConstantPatternOf returns a constant pattern matching expr.
func ConstantPatternOf(expr *Node) *Node { return NewNode(ConstantPattern, expr) }

// NotPatternOf returns not pattern.
func NotPatternOf(pattern *Node) *Node {
	return NewNode(NotPattern, Token(NotKeyword), pattern)
}

// This returns the this expression.
func This() *Node { return NewNode(ThisExpression, Token(ThisKeyword)) }

// Base returns the base expression.
func Base() *Node { return NewNode(BaseExpression, Token(BaseKeyword)) }

// Statements

// BlockOf returns { statements }.
func BlockOf(statements ...*Node) *Node {
	return NewNode(Block, Token(OpenBraceToken), NewList(statements...), Token(CloseBraceToken))
}

// EqualsValue returns = value.
func EqualsValue(value *Node) *Node {
	return NewNode(EqualsValueClause, Token(EqualsToken), value)
}

func optionalEqualsValue(value *Node) *Node {
	if value == nil {
		return nil
	}
	return EqualsValue(value)
}

// Declarator returns name [= init].
func Declarator(name string, init *Node) *Node {
	return NewNode(VariableDeclarator, Identifier(name), optionalEqualsValue(init))
}

// VariableDeclarationOf returns typ declarators.
func VariableDeclarationOf(typ *Node, declarators ...*Node) *Node {
	return NewNode(VariableDeclaration, typ, NewSeparatedList(declarators...))
}

// LocalDeclaration returns typ name [= init];.
func LocalDeclaration(typ *Node, name string, init *Node) *Node {
	return NewNode(LocalDeclarationStatement,
		NewList(),
		VariableDeclarationOf(typ, Declarator(name, init)),
		Token(SemicolonToken))
}

// ExpressionStatementOf returns expr;.
func ExpressionStatementOf(expr *Node) *Node {
	return NewNode(ExpressionStatement, expr, Token(SemicolonToken))
}

// Return returns return [expr];.
func Return(expr *Node) *Node {
	return NewNode(ReturnStatement, Token(ReturnKeyword), expr, Token(SemicolonToken))
}

// If returns if (cond) statement [else].
func If(cond, statement, elseClause *Node) *Node {
	return NewNode(IfStatement, Token(IfKeyword), Token(OpenParenToken), cond, Token(CloseParenToken), statement, elseClause)
}

// Else returns else statement.
func Else(statement *Node) *Node {
	return NewNode(ElseClause, Token(ElseKeyword), statement)
}

// While returns while (cond) statement.
func While(cond, statement *Node) *Node {
	return NewNode(WhileStatement, Token(WhileKeyword), Token(OpenParenToken), cond, Token(CloseParenToken), statement)
}

// Do returns do statement while (cond);.
func Do(statement, cond *Node) *Node {
	return NewNode(DoStatement, Token(DoKeyword), statement, Token(WhileKeyword),
		Token(OpenParenToken), cond, Token(CloseParenToken), Token(SemicolonToken))
}

// For returns for (declaration; cond; incrementor) statement. Any of
// declaration, cond and incrementor may be nil.
func For(declaration, cond, incrementor, statement *Node) *Node {
	var incs []*Node
	if incrementor != nil {
		incs = append(incs, incrementor)
	}
	return NewNode(ForStatement, Token(ForKeyword), Token(OpenParenToken), declaration,
		NewSeparatedList(), Token(SemicolonToken), cond, Token(SemicolonToken),
		NewSeparatedList(incs...), Token(CloseParenToken), statement)
}

// ForEach returns foreach (typ name in expr) statement.
func ForEach(typ *Node, name string, expr, statement *Node) *Node {
	return NewNode(ForEachStatement, Token(ForEachKeyword), Token(OpenParenToken), typ,
		Identifier(name), Token(InKeyword), expr, Token(CloseParenToken), statement)
}

// Using returns using (expr) statement.
func Using(expr, statement *Node) *Node {
	return NewNode(UsingStatement, Token(UsingKeyword), Token(OpenParenToken), nil, expr, Token(CloseParenToken), statement)
}

// Lock returns lock (expr) statement.
func Lock(expr, statement *Node) *Node {
	return NewNode(LockStatement, Token(LockKeyword), Token(OpenParenToken), expr, Token(CloseParenToken), statement)
}

// Fixed returns fixed (declaration) statement.
func Fixed(declaration, statement *Node) *Node {
	return NewNode(FixedStatement, Token(FixedKeyword), Token(OpenParenToken), declaration, Token(CloseParenToken), statement)
}

// Try returns try block catches [finally].
func Try(block *Node, catches []*Node, finally *Node) *Node {
	return NewNode(TryStatement, Token(TryKeyword), block, NewList(catches...), finally)
}

// Catch returns catch [declaration] block.
func Catch(declaration, block *Node) *Node {
	return NewNode(CatchClause, Token(CatchKeyword), declaration, block)
}

// CatchDeclarationOf returns (typ [name]).
func CatchDeclarationOf(typ *Node, name string) *Node {
	return NewNode(CatchDeclaration, Token(OpenParenToken), typ, optionalIdentifier(name), Token(CloseParenToken))
}

// Finally returns finally block.
func Finally(block *Node) *Node {
	return NewNode(FinallyClause, Token(FinallyKeyword), block)
}

// Throw returns throw [expr];.
func Throw(expr *Node) *Node {
	return NewNode(ThrowStatement, Token(ThrowKeyword), expr, Token(SemicolonToken))
}

// Break returns break;.
func Break() *Node { return NewNode(BreakStatement, Token(BreakKeyword), Token(SemicolonToken)) }

// Continue returns continue;.
func Continue() *Node {
	return NewNode(ContinueStatement, Token(ContinueKeyword), Token(SemicolonToken))
}

// Switch returns switch (expr) { sections }.
func Switch(expr *Node, sections ...*Node) *Node {
	return NewNode(SwitchStatement, Token(SwitchKeyword), Token(OpenParenToken), expr, Token(CloseParenToken),
		Token(OpenBraceToken), NewList(sections...), Token(CloseBraceToken))
}

// Section returns a switch section.
func Section(labels []*Node, statements ...*Node) *Node {
	return NewNode(SwitchSection, NewList(labels...), NewList(statements...))
}

// CaseLabel returns case value:.
func CaseLabel(value *Node) *Node {
	return NewNode(CaseSwitchLabel, Token(CaseKeyword), value, Token(ColonToken))
}

// DefaultLabel returns default:.
func DefaultLabel() *Node {
	return NewNode(DefaultSwitchLabel, Token(DefaultKeyword), Token(ColonToken))
}

// Empty returns the empty statement.
func Empty() *Node { return NewNode(EmptyStatement, Token(SemicolonToken)) }

// Declarations

// Compilation returns a compilation unit.
func Compilation(members ...*Node) *Node {
	return NewNode(CompilationUnit, NewList(members...), Token(EndOfFileToken))
}

// Namespace returns namespace name { members }.
func Namespace(name string, members ...*Node) *Node {
	return NewNode(NamespaceDeclaration, Token(NamespaceKeyword), NameOf(name),
		Token(OpenBraceToken), NewList(members...), Token(CloseBraceToken))
}

// TypeDeclarationOf returns a class, struct or interface declaration.
func TypeDeclarationOf(k Kind, attrs []*Node, mods []Kind, name string, bases []*Node, members ...*Node) *Node {
	var kw Kind
	switch k {
	case ClassDeclaration:
		kw = ClassKeyword
	case StructDeclaration:
		kw = StructKeyword
	case InterfaceDeclaration:
		kw = InterfaceKeyword
	default:
		panic("syntax: not a type declaration kind: " + k.String())
	}
	return NewNode(k, NewList(attrs...), modifierList(mods), Token(kw), Identifier(name),
		baseListOf(bases), Token(OpenBraceToken), NewList(members...), Token(CloseBraceToken))
}

// Class returns a class declaration.
func Class(mods []Kind, name string, bases []*Node, members ...*Node) *Node {
	return TypeDeclarationOf(ClassDeclaration, nil, mods, name, bases, members...)
}

func baseListOf(types []*Node) *Node {
	if len(types) == 0 {
		return nil
	}
	return NewNode(BaseList, Token(ColonToken), NewSeparatedList(types...))
}

// Enum returns an enum declaration. underlying may be nil.
func Enum(attrs []*Node, mods []Kind, name string, underlying *Node, members ...*Node) *Node {
	var bases []*Node
	if underlying != nil {
		bases = append(bases, underlying)
	}
	return NewNode(EnumDeclaration, NewList(attrs...), modifierList(mods), Token(EnumKeyword), Identifier(name),
		baseListOf(bases), Token(OpenBraceToken), NewSeparatedList(members...), Token(CloseBraceToken))
}

// EnumMember returns name [= value].
func EnumMember(name string, value *Node) *Node {
	return NewNode(EnumMemberDeclaration, NewList(), Identifier(name), optionalEqualsValue(value))
}

// AttributeListOf returns [attrs].
func AttributeListOf(attrs ...*Node) *Node {
	return NewNode(AttributeList, Token(OpenBracketToken), NewSeparatedList(attrs...), Token(CloseBracketToken))
}

// AttributeOf returns an attribute; without args it has no argument list.
func AttributeOf(name string, args ...*Node) *Node {
	var argList *Node
	if len(args) > 0 {
		argList = ArgumentListOf(args...)
	}
	return NewNode(Attribute, NameOf(name), argList)
}

// Field returns mods typ name [= init];.
func Field(attrs []*Node, mods []Kind, typ *Node, name string, init *Node) *Node {
	return NewNode(FieldDeclaration, NewList(attrs...), modifierList(mods),
		VariableDeclarationOf(typ, Declarator(name, init)), Token(SemicolonToken))
}

// Method returns a method declaration with a block body.
func Method(mods []Kind, returnType *Node, name string, params []*Node, body *Node) *Node {
	return NewNode(MethodDeclaration, NewList(), modifierList(mods), returnType, Identifier(name),
		ParameterListOf(params...), body, nil)
}

// Constructor returns a constructor declaration.
func Constructor(mods []Kind, name string, params []*Node, initializer, body *Node) *Node {
	return NewNode(ConstructorDeclaration, NewList(), modifierList(mods), Identifier(name),
		ParameterListOf(params...), initializer, body)
}

// ConstructorInitializerOf returns : base(args) or : this(args).
func ConstructorInitializerOf(k Kind, args ...*Node) *Node {
	return NewNode(ConstructorInitializer, Token(ColonToken), Token(k), ArgumentListOf(args...))
}

// ParameterListOf returns (params).
func ParameterListOf(params ...*Node) *Node {
	return NewNode(ParameterList, Token(OpenParenToken), NewSeparatedList(params...), Token(CloseParenToken))
}

// Param returns mods typ name.
func Param(mods []Kind, typ *Node, name string) *Node {
	return NewNode(Parameter, NewList(), modifierList(mods), typ, Identifier(name), nil)
}
