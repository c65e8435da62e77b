// Copyright © 2024 The ELPS authors

package syntax

import "strings"

// Kind identifies the grammatical category of a token or node. The set is
// closed: every tree the host produces is built from these kinds only.
type Kind uint16

const (
	None Kind = iota

	// Tokens

	IdentifierToken
	NumericLiteralToken
	StringLiteralToken
	CharacterLiteralToken
	InterpolatedStringStartToken // $" or $@"
	InterpolatedStringEndToken
	InterpolatedStringTextToken
	OpenBraceToken
	CloseBraceToken
	OpenParenToken
	CloseParenToken
	OpenBracketToken
	CloseBracketToken
	SemicolonToken
	CommaToken
	DotToken
	ColonToken
	QuestionToken
	QuestionQuestionToken
	EqualsToken
	EqualsEqualsToken
	ExclamationEqualsToken
	ExclamationToken
	PlusToken
	MinusToken
	AsteriskToken
	SlashToken
	PercentToken
	BarToken
	AmpersandToken
	CaretToken
	BarBarToken
	AmpersandAmpersandToken
	LessThanToken
	LessThanEqualsToken
	GreaterThanToken
	GreaterThanEqualsToken
	PlusEqualsToken
	MinusEqualsToken
	EndOfFileToken

	// Keywords

	TrueKeyword
	FalseKeyword
	NullKeyword
	ThisKeyword
	BaseKeyword
	IfKeyword
	ElseKeyword
	ReturnKeyword
	WhileKeyword
	DoKeyword
	ForKeyword
	ForEachKeyword
	InKeyword
	UsingKeyword
	LockKeyword
	FixedKeyword
	TryKeyword
	CatchKeyword
	FinallyKeyword
	ThrowKeyword
	BreakKeyword
	ContinueKeyword
	SwitchKeyword
	CaseKeyword
	DefaultKeyword
	NewKeyword
	IsKeyword
	NotKeyword
	VarKeyword
	ClassKeyword
	StructKeyword
	InterfaceKeyword
	EnumKeyword
	NamespaceKeyword
	PublicKeyword
	PrivateKeyword
	ProtectedKeyword
	InternalKeyword
	StaticKeyword
	PartialKeyword
	ReadOnlyKeyword
	ConstKeyword
	RefKeyword
	OutKeyword
	ParamsKeyword
	VoidKeyword
	BoolKeyword
	ByteKeyword
	SByteKeyword
	ShortKeyword
	UShortKeyword
	IntKeyword
	UIntKeyword
	LongKeyword
	ULongKeyword
	CharKeyword
	FloatKeyword
	DoubleKeyword
	DecimalKeyword
	StringKeyword
	ObjectKeyword

	// Nodes

	List
	SeparatedList

	CompilationUnit
	NamespaceDeclaration
	ClassDeclaration
	StructDeclaration
	InterfaceDeclaration
	EnumDeclaration
	EnumMemberDeclaration
	BaseList
	AttributeList
	Attribute
	FieldDeclaration
	MethodDeclaration
	ConstructorDeclaration
	ConstructorInitializer
	ParameterList
	Parameter
	VariableDeclaration
	VariableDeclarator
	EqualsValueClause

	Block
	LocalDeclarationStatement
	ExpressionStatement
	ReturnStatement
	IfStatement
	ElseClause
	WhileStatement
	DoStatement
	ForStatement
	ForEachStatement
	UsingStatement
	LockStatement
	FixedStatement
	TryStatement
	CatchClause
	CatchDeclaration
	FinallyClause
	ThrowStatement
	BreakStatement
	ContinueStatement
	SwitchStatement
	SwitchSection
	CaseSwitchLabel
	DefaultSwitchLabel
	EmptyStatement

	IdentifierName
	PredefinedType
	QualifiedName
	NumericLiteralExpression
	StringLiteralExpression
	CharacterLiteralExpression
	TrueLiteralExpression
	FalseLiteralExpression
	NullLiteralExpression
	InterpolatedStringExpression
	InterpolatedStringText
	Interpolation
	ParenthesizedExpression
	AddExpression
	SubtractExpression
	MultiplyExpression
	DivideExpression
	ModuloExpression
	EqualsExpression
	NotEqualsExpression
	LessThanExpression
	LessThanOrEqualExpression
	GreaterThanExpression
	GreaterThanOrEqualExpression
	LogicalAndExpression
	LogicalOrExpression
	BitwiseAndExpression
	BitwiseOrExpression
	ExclusiveOrExpression
	CoalesceExpression
	IsPatternExpression
	ConstantPattern
	NotPattern
	LogicalNotExpression
	UnaryMinusExpression
	SimpleAssignmentExpression
	AddAssignmentExpression
	SubtractAssignmentExpression
	SimpleMemberAccessExpression
	ConditionalAccessExpression
	MemberBindingExpression
	InvocationExpression
	ArgumentList
	BracketedArgumentList
	Argument
	ElementAccessExpression
	ObjectCreationExpression
	ConditionalExpression
	ThisExpression
	BaseExpression

	kindCount
)

const (
	firstKeyword = TrueKeyword
	lastKeyword  = ObjectKeyword
	firstNode    = List
)

var kindNames = [...]string{
	None:                         "None",
	IdentifierToken:              "IdentifierToken",
	NumericLiteralToken:          "NumericLiteralToken",
	StringLiteralToken:           "StringLiteralToken",
	CharacterLiteralToken:        "CharacterLiteralToken",
	InterpolatedStringStartToken: "InterpolatedStringStartToken",
	InterpolatedStringEndToken:   "InterpolatedStringEndToken",
	InterpolatedStringTextToken:  "InterpolatedStringTextToken",
	OpenBraceToken:               "OpenBraceToken",
	CloseBraceToken:              "CloseBraceToken",
	OpenParenToken:               "OpenParenToken",
	CloseParenToken:              "CloseParenToken",
	OpenBracketToken:             "OpenBracketToken",
	CloseBracketToken:            "CloseBracketToken",
	SemicolonToken:               "SemicolonToken",
	CommaToken:                   "CommaToken",
	DotToken:                     "DotToken",
	ColonToken:                   "ColonToken",
	QuestionToken:                "QuestionToken",
	QuestionQuestionToken:        "QuestionQuestionToken",
	EqualsToken:                  "EqualsToken",
	EqualsEqualsToken:            "EqualsEqualsToken",
	ExclamationEqualsToken:       "ExclamationEqualsToken",
	ExclamationToken:             "ExclamationToken",
	PlusToken:                    "PlusToken",
	MinusToken:                   "MinusToken",
	AsteriskToken:                "AsteriskToken",
	SlashToken:                   "SlashToken",
	PercentToken:                 "PercentToken",
	BarToken:                     "BarToken",
	AmpersandToken:               "AmpersandToken",
	CaretToken:                   "CaretToken",
	BarBarToken:                  "BarBarToken",
	AmpersandAmpersandToken:      "AmpersandAmpersandToken",
	LessThanToken:                "LessThanToken",
	LessThanEqualsToken:          "LessThanEqualsToken",
	GreaterThanToken:             "GreaterThanToken",
	GreaterThanEqualsToken:       "GreaterThanEqualsToken",
	PlusEqualsToken:              "PlusEqualsToken",
	MinusEqualsToken:             "MinusEqualsToken",
	EndOfFileToken:               "EndOfFileToken",
	TrueKeyword:                  "TrueKeyword",
	FalseKeyword:                 "FalseKeyword",
	NullKeyword:                  "NullKeyword",
	ThisKeyword:                  "ThisKeyword",
	BaseKeyword:                  "BaseKeyword",
	IfKeyword:                    "IfKeyword",
	ElseKeyword:                  "ElseKeyword",
	ReturnKeyword:                "ReturnKeyword",
	WhileKeyword:                 "WhileKeyword",
	DoKeyword:                    "DoKeyword",
	ForKeyword:                   "ForKeyword",
	ForEachKeyword:               "ForEachKeyword",
	InKeyword:                    "InKeyword",
	UsingKeyword:                 "UsingKeyword",
	LockKeyword:                  "LockKeyword",
	FixedKeyword:                 "FixedKeyword",
	TryKeyword:                   "TryKeyword",
	CatchKeyword:                 "CatchKeyword",
	FinallyKeyword:               "FinallyKeyword",
	ThrowKeyword:                 "ThrowKeyword",
	BreakKeyword:                 "BreakKeyword",
	ContinueKeyword:              "ContinueKeyword",
	SwitchKeyword:                "SwitchKeyword",
	CaseKeyword:                  "CaseKeyword",
	DefaultKeyword:               "DefaultKeyword",
	NewKeyword:                   "NewKeyword",
	IsKeyword:                    "IsKeyword",
	NotKeyword:                   "NotKeyword",
	VarKeyword:                   "VarKeyword",
	ClassKeyword:                 "ClassKeyword",
	StructKeyword:                "StructKeyword",
	InterfaceKeyword:             "InterfaceKeyword",
	EnumKeyword:                  "EnumKeyword",
	NamespaceKeyword:             "NamespaceKeyword",
	PublicKeyword:                "PublicKeyword",
	PrivateKeyword:               "PrivateKeyword",
	ProtectedKeyword:             "ProtectedKeyword",
	InternalKeyword:              "InternalKeyword",
	StaticKeyword:                "StaticKeyword",
	PartialKeyword:               "PartialKeyword",
	ReadOnlyKeyword:              "ReadOnlyKeyword",
	ConstKeyword:                 "ConstKeyword",
	RefKeyword:                   "RefKeyword",
	OutKeyword:                   "OutKeyword",
	ParamsKeyword:                "ParamsKeyword",
	VoidKeyword:                  "VoidKeyword",
	BoolKeyword:                  "BoolKeyword",
	ByteKeyword:                  "ByteKeyword",
	SByteKeyword:                 "SByteKeyword",
	ShortKeyword:                 "ShortKeyword",
	UShortKeyword:                "UShortKeyword",
	IntKeyword:                   "IntKeyword",
	UIntKeyword:                  "UIntKeyword",
	LongKeyword:                  "LongKeyword",
	ULongKeyword:                 "ULongKeyword",
	CharKeyword:                  "CharKeyword",
	FloatKeyword:                 "FloatKeyword",
	DoubleKeyword:                "DoubleKeyword",
	DecimalKeyword:               "DecimalKeyword",
	StringKeyword:                "StringKeyword",
	ObjectKeyword:                "ObjectKeyword",
	List:                         "List",
	SeparatedList:                "SeparatedList",
	CompilationUnit:              "CompilationUnit",
	NamespaceDeclaration:         "NamespaceDeclaration",
	ClassDeclaration:             "ClassDeclaration",
	StructDeclaration:            "StructDeclaration",
	InterfaceDeclaration:         "InterfaceDeclaration",
	EnumDeclaration:              "EnumDeclaration",
	EnumMemberDeclaration:        "EnumMemberDeclaration",
	BaseList:                     "BaseList",
	AttributeList:                "AttributeList",
	Attribute:                    "Attribute",
	FieldDeclaration:             "FieldDeclaration",
	MethodDeclaration:            "MethodDeclaration",
	ConstructorDeclaration:       "ConstructorDeclaration",
	ConstructorInitializer:       "ConstructorInitializer",
	ParameterList:                "ParameterList",
	Parameter:                    "Parameter",
	VariableDeclaration:          "VariableDeclaration",
	VariableDeclarator:           "VariableDeclarator",
	EqualsValueClause:            "EqualsValueClause",
	Block:                        "Block",
	LocalDeclarationStatement:    "LocalDeclarationStatement",
	ExpressionStatement:          "ExpressionStatement",
	ReturnStatement:              "ReturnStatement",
	IfStatement:                  "IfStatement",
	ElseClause:                   "ElseClause",
	WhileStatement:               "WhileStatement",
	DoStatement:                  "DoStatement",
	ForStatement:                 "ForStatement",
	ForEachStatement:             "ForEachStatement",
	UsingStatement:               "UsingStatement",
	LockStatement:                "LockStatement",
	FixedStatement:               "FixedStatement",
	TryStatement:                 "TryStatement",
	CatchClause:                  "CatchClause",
	CatchDeclaration:             "CatchDeclaration",
	FinallyClause:                "FinallyClause",
	ThrowStatement:               "ThrowStatement",
	BreakStatement:               "BreakStatement",
	ContinueStatement:            "ContinueStatement",
	SwitchStatement:              "SwitchStatement",
	SwitchSection:                "SwitchSection",
	CaseSwitchLabel:              "CaseSwitchLabel",
	DefaultSwitchLabel:           "DefaultSwitchLabel",
	EmptyStatement:               "EmptyStatement",
	IdentifierName:               "IdentifierName",
	PredefinedType:               "PredefinedType",
	QualifiedName:                "QualifiedName",
	NumericLiteralExpression:     "NumericLiteralExpression",
	StringLiteralExpression:      "StringLiteralExpression",
	CharacterLiteralExpression:   "CharacterLiteralExpression",
	TrueLiteralExpression:        "TrueLiteralExpression",
	FalseLiteralExpression:       "FalseLiteralExpression",
	NullLiteralExpression:        "NullLiteralExpression",
	InterpolatedStringExpression: "InterpolatedStringExpression",
	InterpolatedStringText:       "InterpolatedStringText",
	Interpolation:                "Interpolation",
	ParenthesizedExpression:      "ParenthesizedExpression",
	AddExpression:                "AddExpression",
	SubtractExpression:           "SubtractExpression",
	MultiplyExpression:           "MultiplyExpression",
	DivideExpression:             "DivideExpression",
	ModuloExpression:             "ModuloExpression",
	EqualsExpression:             "EqualsExpression",
	NotEqualsExpression:          "NotEqualsExpression",
	LessThanExpression:           "LessThanExpression",
	LessThanOrEqualExpression:    "LessThanOrEqualExpression",
	GreaterThanExpression:        "GreaterThanExpression",
	GreaterThanOrEqualExpression: "GreaterThanOrEqualExpression",
	LogicalAndExpression:         "LogicalAndExpression",
	LogicalOrExpression:          "LogicalOrExpression",
	BitwiseAndExpression:         "BitwiseAndExpression",
	BitwiseOrExpression:          "BitwiseOrExpression",
	ExclusiveOrExpression:        "ExclusiveOrExpression",
	CoalesceExpression:           "CoalesceExpression",
	IsPatternExpression:          "IsPatternExpression",
	ConstantPattern:              "ConstantPattern",
	NotPattern:                   "NotPattern",
	LogicalNotExpression:         "LogicalNotExpression",
	UnaryMinusExpression:         "UnaryMinusExpression",
	SimpleAssignmentExpression:   "SimpleAssignmentExpression",
	AddAssignmentExpression:      "AddAssignmentExpression",
	SubtractAssignmentExpression: "SubtractAssignmentExpression",
	SimpleMemberAccessExpression: "SimpleMemberAccessExpression",
	ConditionalAccessExpression:  "ConditionalAccessExpression",
	MemberBindingExpression:      "MemberBindingExpression",
	InvocationExpression:         "InvocationExpression",
	ArgumentList:                 "ArgumentList",
	BracketedArgumentList:        "BracketedArgumentList",
	Argument:                     "Argument",
	ElementAccessExpression:      "ElementAccessExpression",
	ObjectCreationExpression:     "ObjectCreationExpression",
	ConditionalExpression:        "ConditionalExpression",
	ThisExpression:               "ThisExpression",
	BaseExpression:               "BaseExpression",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) || kindNames[k] == "" {
		return "Unknown"
	}
	return kindNames[k]
}

// KindFromString returns the kind with the given name.
func KindFromString(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for i, name := range kindNames {
		if name != "" {
			m[name] = Kind(i)
		}
	}
	return m
}()

// IsToken reports whether k is a token kind.
func (k Kind) IsToken() bool { return k > None && k < firstNode }

// IsKeyword reports whether k is a keyword token kind.
func (k Kind) IsKeyword() bool { return k >= firstKeyword && k <= lastKeyword }

// IsList reports whether k is one of the list kinds.
func (k Kind) IsList() bool { return k == List || k == SeparatedList }

// IsStatement reports whether k is a statement kind.
func (k Kind) IsStatement() bool {
	switch k {
	case Block,
		LocalDeclarationStatement,
		ExpressionStatement,
		ReturnStatement,
		IfStatement,
		WhileStatement,
		DoStatement,
		ForStatement,
		ForEachStatement,
		UsingStatement,
		LockStatement,
		FixedStatement,
		TryStatement,
		ThrowStatement,
		BreakStatement,
		ContinueStatement,
		SwitchStatement,
		EmptyStatement:
		return true
	}
	return false
}

// IsMemberDeclaration reports whether k declares a namespace or type member.
func (k Kind) IsMemberDeclaration() bool {
	switch k {
	case NamespaceDeclaration,
		ClassDeclaration,
		StructDeclaration,
		InterfaceDeclaration,
		EnumDeclaration,
		FieldDeclaration,
		MethodDeclaration,
		ConstructorDeclaration:
		return true
	}
	return false
}

// IsTypeDeclaration reports whether k declares a class, struct or interface.
func (k Kind) IsTypeDeclaration() bool {
	return k == ClassDeclaration || k == StructDeclaration || k == InterfaceDeclaration
}

// IsBinaryExpression reports whether k is a binary operator expression.
func (k Kind) IsBinaryExpression() bool {
	_, ok := binaryOperators[k]
	return ok
}

// IsLiteralExpression reports whether k is a literal expression.
func (k Kind) IsLiteralExpression() bool {
	switch k {
	case NumericLiteralExpression,
		StringLiteralExpression,
		CharacterLiteralExpression,
		TrueLiteralExpression,
		FalseLiteralExpression,
		NullLiteralExpression:
		return true
	}
	return false
}

// IsAssignmentExpression reports whether k is an assignment expression.
func (k Kind) IsAssignmentExpression() bool {
	return k == SimpleAssignmentExpression || k == AddAssignmentExpression || k == SubtractAssignmentExpression
}

// IsPredefinedTypeKeyword reports whether k names a built-in type.
func (k Kind) IsPredefinedTypeKeyword() bool {
	return k >= VoidKeyword && k <= ObjectKeyword
}

// IsModifier reports whether k is a declaration modifier keyword.
func (k Kind) IsModifier() bool {
	switch k {
	case PublicKeyword,
		PrivateKeyword,
		ProtectedKeyword,
		InternalKeyword,
		StaticKeyword,
		PartialKeyword,
		ReadOnlyKeyword,
		ConstKeyword,
		RefKeyword,
		OutKeyword,
		InKeyword,
		ParamsKeyword:
		return true
	}
	return false
}

var binaryOperators = map[Kind]Kind{
	AddExpression:                PlusToken,
	SubtractExpression:           MinusToken,
	MultiplyExpression:           AsteriskToken,
	DivideExpression:             SlashToken,
	ModuloExpression:             PercentToken,
	EqualsExpression:             EqualsEqualsToken,
	NotEqualsExpression:          ExclamationEqualsToken,
	LessThanExpression:           LessThanToken,
	LessThanOrEqualExpression:    LessThanEqualsToken,
	GreaterThanExpression:        GreaterThanToken,
	GreaterThanOrEqualExpression: GreaterThanEqualsToken,
	LogicalAndExpression:         AmpersandAmpersandToken,
	LogicalOrExpression:          BarBarToken,
	BitwiseAndExpression:         AmpersandToken,
	BitwiseOrExpression:          BarToken,
	ExclusiveOrExpression:        CaretToken,
	CoalesceExpression:           QuestionQuestionToken,
}

var assignmentOperators = map[Kind]Kind{
	SimpleAssignmentExpression:   EqualsToken,
	AddAssignmentExpression:      PlusEqualsToken,
	SubtractAssignmentExpression: MinusEqualsToken,
}

// OperatorToken returns the operator token kind of a binary or assignment
// expression kind, or None.
func OperatorToken(k Kind) Kind {
	if t, ok := binaryOperators[k]; ok {
		return t
	}
	return assignmentOperators[k]
}

var tokenTexts = map[Kind]string{
	InterpolatedStringStartToken: `$"`,
	InterpolatedStringEndToken:   `"`,
	OpenBraceToken:               "{",
	CloseBraceToken:              "}",
	OpenParenToken:               "(",
	CloseParenToken:              ")",
	OpenBracketToken:             "[",
	CloseBracketToken:            "]",
	SemicolonToken:               ";",
	CommaToken:                   ",",
	DotToken:                     ".",
	ColonToken:                   ":",
	QuestionToken:                "?",
	QuestionQuestionToken:        "??",
	EqualsToken:                  "=",
	EqualsEqualsToken:            "==",
	ExclamationEqualsToken:       "!=",
	ExclamationToken:             "!",
	PlusToken:                    "+",
	MinusToken:                   "-",
	AsteriskToken:                "*",
	SlashToken:                   "/",
	PercentToken:                 "%",
	BarToken:                     "|",
	AmpersandToken:               "&",
	CaretToken:                   "^",
	BarBarToken:                  "||",
	AmpersandAmpersandToken:      "&&",
	LessThanToken:                "<",
	LessThanEqualsToken:          "<=",
	GreaterThanToken:             ">",
	GreaterThanEqualsToken:       ">=",
	PlusEqualsToken:              "+=",
	MinusEqualsToken:             "-=",
	EndOfFileToken:               "",
	TrueKeyword:                  "true",
	FalseKeyword:                 "false",
	NullKeyword:                  "null",
	ThisKeyword:                  "this",
	BaseKeyword:                  "base",
	IfKeyword:                    "if",
	ElseKeyword:                  "else",
	ReturnKeyword:                "return",
	WhileKeyword:                 "while",
	DoKeyword:                    "do",
	ForKeyword:                   "for",
	ForEachKeyword:               "foreach",
	InKeyword:                    "in",
	UsingKeyword:                 "using",
	LockKeyword:                  "lock",
	FixedKeyword:                 "fixed",
	TryKeyword:                   "try",
	CatchKeyword:                 "catch",
	FinallyKeyword:               "finally",
	ThrowKeyword:                 "throw",
	BreakKeyword:                 "break",
	ContinueKeyword:              "continue",
	SwitchKeyword:                "switch",
	CaseKeyword:                  "case",
	DefaultKeyword:               "default",
	NewKeyword:                   "new",
	IsKeyword:                    "is",
	NotKeyword:                   "not",
	VarKeyword:                   "var",
	ClassKeyword:                 "class",
	StructKeyword:                "struct",
	InterfaceKeyword:             "interface",
	EnumKeyword:                  "enum",
	NamespaceKeyword:             "namespace",
	PublicKeyword:                "public",
	PrivateKeyword:               "private",
	ProtectedKeyword:             "protected",
	InternalKeyword:              "internal",
	StaticKeyword:                "static",
	PartialKeyword:               "partial",
	ReadOnlyKeyword:              "readonly",
	ConstKeyword:                 "const",
	RefKeyword:                   "ref",
	OutKeyword:                   "out",
	ParamsKeyword:                "params",
	VoidKeyword:                  "void",
	BoolKeyword:                  "bool",
	ByteKeyword:                  "byte",
	SByteKeyword:                 "sbyte",
	ShortKeyword:                 "short",
	UShortKeyword:                "ushort",
	IntKeyword:                   "int",
	UIntKeyword:                  "uint",
	LongKeyword:                  "long",
	ULongKeyword:                 "ulong",
	CharKeyword:                  "char",
	FloatKeyword:                 "float",
	DoubleKeyword:                "double",
	DecimalKeyword:               "decimal",
	StringKeyword:                "string",
	ObjectKeyword:                "object",
}

// DefaultText returns the fixed spelling of a punctuation or keyword token
// kind, and false for kinds whose text varies (identifiers, literals).
func DefaultText(k Kind) (string, bool) {
	s, ok := tokenTexts[k]
	return s, ok
}

// WellFormedLiteral reports whether text is delimited the way a literal
// token of kind k must be: string literals in double quotes, optionally
// verbatim, and character literals in single quotes. Other kinds are
// always well formed.
func WellFormedLiteral(k Kind, text string) bool {
	switch k {
	case StringLiteralToken:
		body := strings.TrimPrefix(text, "@")
		return len(body) >= 2 && body[0] == '"' && body[len(body)-1] == '"'
	case CharacterLiteralToken:
		return len(text) >= 3 && text[0] == '\'' && text[len(text)-1] == '\''
	}
	return true
}

var keywordsByText = func() map[string]Kind {
	m := make(map[string]Kind)
	for k := firstKeyword; k <= lastKeyword; k++ {
		m[tokenTexts[k]] = k
	}
	return m
}()

// KeywordKind returns the keyword kind spelled s.
func KeywordKind(s string) (Kind, bool) {
	k, ok := keywordsByText[s]
	return k, ok
}
