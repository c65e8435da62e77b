// Copyright © 2024 The ELPS authors

package syntax

// Slot layouts. Optional slots are nil when absent.
//
//	CompilationUnit           members EOF
//	NamespaceDeclaration      namespace name { members }
//	Class/Struct/Interface    attrs mods keyword identifier baseList? { members }
//	EnumDeclaration           attrs mods enum identifier baseList? { members(separated) }
//	EnumMemberDeclaration     attrs identifier equalsValue?
//	BaseList                  : types(separated)
//	AttributeList             [ attributes(separated) ]
//	Attribute                 name argumentList?
//	FieldDeclaration          attrs mods declaration ;
//	MethodDeclaration         attrs mods returnType identifier parameterList body? ;?
//	ConstructorDeclaration    attrs mods identifier parameterList initializer? body
//	ConstructorInitializer    : base|this argumentList
//	ParameterList             ( parameters(separated) )
//	Parameter                 attrs mods type identifier default?
//	VariableDeclaration       type declarators(separated)
//	VariableDeclarator        identifier equalsValue?
//	EqualsValueClause         = value
//
//	Block                     { statements }
//	LocalDeclarationStatement mods declaration ;
//	ExpressionStatement       expression ;
//	ReturnStatement           return expression? ;
//	IfStatement               if ( condition ) statement else?
//	ElseClause                else statement
//	WhileStatement            while ( condition ) statement
//	DoStatement               do statement while ( condition ) ;
//	ForStatement              for ( declaration? initializers ; condition? ; incrementors ) statement
//	ForEachStatement          foreach ( type identifier in expression ) statement
//	UsingStatement            using ( declaration? expression? ) statement
//	LockStatement             lock ( expression ) statement
//	FixedStatement            fixed ( declaration ) statement
//	TryStatement              try block catches finally?
//	CatchClause               catch declaration? block
//	CatchDeclaration          ( type identifier? )
//	FinallyClause             finally block
//	ThrowStatement            throw expression? ;
//	Break/ContinueStatement   keyword ;
//	SwitchStatement           switch ( expression ) { sections }
//	SwitchSection             labels statements
//	CaseSwitchLabel           case value :
//	DefaultSwitchLabel        default :
//	EmptyStatement            ;
//
//	IdentifierName            identifier
//	PredefinedType            keyword
//	QualifiedName             left . right
//	literals                  token
//	InterpolatedString        start contents end
//	InterpolatedStringText    text
//	Interpolation             { expression }
//	ParenthesizedExpression   ( expression )
//	binary and assignment     left operator right
//	IsPatternExpression       expression is pattern
//	ConstantPattern           expression
//	NotPattern                not pattern
//	LogicalNot/UnaryMinus     operator operand
//	SimpleMemberAccess        expression . name
//	ConditionalAccess         expression ? whenNotNull
//	MemberBindingExpression   . name
//	InvocationExpression      expression argumentList
//	ArgumentList and brackets open arguments(separated) close
//	Argument                  refKind? expression
//	ElementAccessExpression   expression bracketedArgumentList
//	ObjectCreationExpression  new type argumentList?
//	ConditionalExpression     condition ? whenTrue : whenFalse
//	This/BaseExpression       keyword

type slotTable map[Kind]int

func (n *Node) slot(t slotTable) *Node {
	i, ok := t[n.Kind()]
	if !ok {
		return nil
	}
	return n.Child(i)
}

func typeDecl(i int) slotTable {
	return slotTable{
		ClassDeclaration:     i,
		StructDeclaration:    i,
		InterfaceDeclaration: i,
		EnumDeclaration:      i,
	}
}

var (
	membersSlots = func() slotTable {
		t := typeDecl(6)
		t[CompilationUnit] = 0
		t[NamespaceDeclaration] = 3
		return t
	}()
	openBraceSlots = func() slotTable {
		t := typeDecl(5)
		t[NamespaceDeclaration] = 2
		t[Block] = 0
		t[SwitchStatement] = 4
		t[Interpolation] = 0
		return t
	}()
	closeBraceSlots = func() slotTable {
		t := typeDecl(7)
		t[NamespaceDeclaration] = 4
		t[Block] = 2
		t[SwitchStatement] = 6
		t[Interpolation] = 2
		return t
	}()
	identifierSlots = func() slotTable {
		t := typeDecl(3)
		t[EnumMemberDeclaration] = 1
		t[MethodDeclaration] = 3
		t[ConstructorDeclaration] = 2
		t[Parameter] = 3
		t[VariableDeclarator] = 0
		t[ForEachStatement] = 3
		t[CatchDeclaration] = 2
		t[IdentifierName] = 0
		return t
	}()
	attributeListsSlots = func() slotTable {
		t := typeDecl(0)
		t[EnumMemberDeclaration] = 0
		t[FieldDeclaration] = 0
		t[MethodDeclaration] = 0
		t[ConstructorDeclaration] = 0
		t[Parameter] = 0
		return t
	}()
	modifiersSlots = func() slotTable {
		t := typeDecl(1)
		t[FieldDeclaration] = 1
		t[MethodDeclaration] = 1
		t[ConstructorDeclaration] = 1
		t[Parameter] = 1
		t[LocalDeclarationStatement] = 0
		return t
	}()
	baseListSlots = typeDecl(4)
	nameSlots     = slotTable{
		NamespaceDeclaration:         1,
		Attribute:                    0,
		SimpleMemberAccessExpression: 2,
		MemberBindingExpression:      1,
	}
	declarationSlots = slotTable{
		FieldDeclaration:          2,
		LocalDeclarationStatement: 1,
		ForStatement:              2,
		UsingStatement:            2,
		FixedStatement:            2,
		CatchClause:               1,
	}
	typeSlots = slotTable{
		Parameter:                1,
		VariableDeclaration:      0,
		ForEachStatement:         2,
		CatchDeclaration:         1,
		ObjectCreationExpression: 1,
	}
	initializerSlots = slotTable{
		VariableDeclarator:     1,
		ConstructorDeclaration: 4,
	}
	valueSlots = slotTable{
		EnumMemberDeclaration: 2,
		EqualsValueClause:     1,
		CaseSwitchLabel:       1,
	}
	bodySlots = slotTable{
		MethodDeclaration:      5,
		ConstructorDeclaration: 5,
	}
	parameterListSlots = slotTable{
		MethodDeclaration:      4,
		ConstructorDeclaration: 3,
	}
	conditionSlots = slotTable{
		IfStatement:           2,
		WhileStatement:        2,
		DoStatement:           4,
		ForStatement:          5,
		ConditionalExpression: 0,
	}
	statementSlots = slotTable{
		IfStatement:      4,
		ElseClause:       1,
		WhileStatement:   4,
		DoStatement:      1,
		ForStatement:     9,
		ForEachStatement: 7,
		UsingStatement:   5,
		LockStatement:    4,
		FixedStatement:   4,
	}
	semicolonSlots = slotTable{
		FieldDeclaration:          3,
		MethodDeclaration:         6,
		LocalDeclarationStatement: 2,
		ExpressionStatement:       1,
		ReturnStatement:           2,
		DoStatement:               6,
		ThrowStatement:            2,
		BreakStatement:            1,
		ContinueStatement:         1,
		EmptyStatement:            0,
	}
	openParenSlots = slotTable{
		IfStatement:             1,
		WhileStatement:          1,
		DoStatement:             3,
		ForStatement:            1,
		ForEachStatement:        1,
		UsingStatement:          1,
		LockStatement:           1,
		FixedStatement:          1,
		SwitchStatement:         1,
		CatchDeclaration:        0,
		ParenthesizedExpression: 0,
		ParameterList:           0,
		ArgumentList:            0,
		BracketedArgumentList:   0,
		AttributeList:           0,
	}
	closeParenSlots = slotTable{
		IfStatement:             3,
		WhileStatement:          3,
		DoStatement:             5,
		ForStatement:            8,
		ForEachStatement:        6,
		UsingStatement:          4,
		LockStatement:           3,
		FixedStatement:          3,
		SwitchStatement:         3,
		CatchDeclaration:        3,
		ParenthesizedExpression: 2,
		ParameterList:           2,
		ArgumentList:            2,
		BracketedArgumentList:   2,
		AttributeList:           2,
	}
	blockSlots = slotTable{
		TryStatement:  1,
		CatchClause:   2,
		FinallyClause: 1,
	}
	expressionSlots = slotTable{
		ExpressionStatement:          0,
		ReturnStatement:              1,
		ThrowStatement:               1,
		ForEachStatement:             5,
		UsingStatement:               3,
		LockStatement:                2,
		SwitchStatement:              2,
		Interpolation:                1,
		ParenthesizedExpression:      1,
		IsPatternExpression:          0,
		ConstantPattern:              0,
		SimpleMemberAccessExpression: 0,
		ConditionalAccessExpression:  0,
		InvocationExpression:         0,
		ElementAccessExpression:      0,
		Argument:                     1,
	}
	argumentListSlots = slotTable{
		Attribute:                1,
		InvocationExpression:     1,
		ElementAccessExpression:  1,
		ObjectCreationExpression: 2,
		ConstructorInitializer:   2,
	}
	separatedSlots = slotTable{
		BaseList:              1,
		AttributeList:         1,
		ParameterList:         1,
		VariableDeclaration:   1,
		ArgumentList:          1,
		BracketedArgumentList: 1,
	}
)

// Members returns the member list of a compilation unit, namespace or type
// declaration. For enums it is a SeparatedList.
func (n *Node) Members() *Node { return n.slot(membersSlots) }

// Statements returns the statement List of a block or switch section.
func (n *Node) Statements() *Node {
	switch n.Kind() {
	case Block:
		return n.Child(1)
	case SwitchSection:
		return n.Child(1)
	}
	return nil
}

// OpenBrace returns the { token of n.
func (n *Node) OpenBrace() *Node { return n.slot(openBraceSlots) }

// CloseBrace returns the } token of n.
func (n *Node) CloseBrace() *Node { return n.slot(closeBraceSlots) }

// OpenParen returns the opening parenthesis or bracket of n.
func (n *Node) OpenParen() *Node { return n.slot(openParenSlots) }

// CloseParen returns the closing parenthesis or bracket of n.
func (n *Node) CloseParen() *Node { return n.slot(closeParenSlots) }

// Identifier returns the identifier token of a declaration, declarator or
// identifier name.
func (n *Node) Identifier() *Node { return n.slot(identifierSlots) }

// Name returns the name node of a namespace, attribute, member access or
// member binding.
func (n *Node) Name() *Node { return n.slot(nameSlots) }

// AttributeLists returns the attribute List of a declaration.
func (n *Node) AttributeLists() *Node { return n.slot(attributeListsSlots) }

// Modifiers returns the modifier List of a declaration.
func (n *Node) Modifiers() *Node { return n.slot(modifiersSlots) }

// HasModifier reports whether n carries the modifier keyword k.
func (n *Node) HasModifier(k Kind) bool {
	for _, m := range n.Modifiers().Children() {
		if m.Kind() == k {
			return true
		}
	}
	return false
}

// BaseList returns the base list of a type declaration.
func (n *Node) BaseList() *Node { return n.slot(baseListSlots) }

// Declaration returns the variable or catch declaration of n.
func (n *Node) Declaration() *Node { return n.slot(declarationSlots) }

// Type returns the type syntax of n.
func (n *Node) Type() *Node { return n.slot(typeSlots) }

// ReturnType returns the return type of a method.
func (n *Node) ReturnType() *Node {
	if n.Kind() != MethodDeclaration {
		return nil
	}
	return n.Child(2)
}

// Variables returns the declarators of a variable declaration.
func (n *Node) Variables() []*Node {
	if n.Kind() != VariableDeclaration {
		return nil
	}
	return n.Child(1).Elements()
}

// Initializer returns the equals-value clause of a declarator or the
// initializer of a constructor.
func (n *Node) Initializer() *Node { return n.slot(initializerSlots) }

// Value returns the value of an equals-value clause or case label, or the
// equals-value clause of an enum member.
func (n *Node) Value() *Node { return n.slot(valueSlots) }

// Body returns the block body of a method or constructor.
func (n *Node) Body() *Node { return n.slot(bodySlots) }

// ParameterList returns the parameter list of a method or constructor.
func (n *Node) ParameterList() *Node { return n.slot(parameterListSlots) }

// Parameters returns the parameters of a method or constructor.
func (n *Node) Parameters() []*Node {
	return n.ParameterList().Child(1).Elements()
}

// Condition returns the condition of an if, while, do, for or conditional
// expression.
func (n *Node) Condition() *Node { return n.slot(conditionSlots) }

// Statement returns the embedded statement of n.
func (n *Node) Statement() *Node { return n.slot(statementSlots) }

// Else returns the else clause of an if statement.
func (n *Node) Else() *Node {
	if n.Kind() != IfStatement {
		return nil
	}
	return n.Child(5)
}

// Semicolon returns the terminating ; of n.
func (n *Node) Semicolon() *Node { return n.slot(semicolonSlots) }

// Keyword returns the leading keyword token of a statement, clause or
// type declaration.
func (n *Node) Keyword() *Node {
	k := n.Kind()
	switch {
	case k.IsTypeDeclaration() || k == EnumDeclaration:
		return n.Child(2)
	case k == DoStatement, k == IfStatement, k == ElseClause, k == WhileStatement,
		k == ForStatement, k == ForEachStatement, k == UsingStatement, k == LockStatement,
		k == FixedStatement, k == TryStatement, k == CatchClause, k == FinallyClause,
		k == ThrowStatement, k == ReturnStatement, k == BreakStatement,
		k == ContinueStatement, k == SwitchStatement, k == CaseSwitchLabel,
		k == DefaultSwitchLabel, k == NamespaceDeclaration, k == ThisExpression,
		k == BaseExpression, k == PredefinedType:
		return n.Child(0)
	case k == ConstructorInitializer:
		return n.Child(1)
	}
	return nil
}

// WhileKeyword returns the while keyword of a do statement.
func (n *Node) WhileKeyword() *Node {
	if n.Kind() != DoStatement {
		return nil
	}
	return n.Child(2)
}

// Block returns the block of a try statement, catch or finally clause.
func (n *Node) Block() *Node { return n.slot(blockSlots) }

// Catches returns the catch clauses of a try statement.
func (n *Node) Catches() []*Node {
	if n.Kind() != TryStatement {
		return nil
	}
	return n.Child(2).Children()
}

// Finally returns the finally clause of a try statement.
func (n *Node) Finally() *Node {
	if n.Kind() != TryStatement {
		return nil
	}
	return n.Child(3)
}

// Sections returns the sections of a switch statement.
func (n *Node) Sections() []*Node {
	if n.Kind() != SwitchStatement {
		return nil
	}
	return n.Child(5).Children()
}

// Labels returns the labels of a switch section.
func (n *Node) Labels() []*Node {
	if n.Kind() != SwitchSection {
		return nil
	}
	return n.Child(0).Children()
}

// Expression returns the primary expression of n.
func (n *Node) Expression() *Node { return n.slot(expressionSlots) }

// Left returns the left operand of a binary or assignment expression, or
// the left part of a qualified name.
func (n *Node) Left() *Node {
	k := n.Kind()
	if k.IsBinaryExpression() || k.IsAssignmentExpression() || k == QualifiedName {
		return n.Child(0)
	}
	return nil
}

// Right returns the right operand of a binary or assignment expression, or
// the right part of a qualified name.
func (n *Node) Right() *Node {
	k := n.Kind()
	if k.IsBinaryExpression() || k.IsAssignmentExpression() || k == QualifiedName {
		return n.Child(2)
	}
	return nil
}

// OperatorTok returns the operator token of a binary, assignment or unary
// expression, or the dot of a member access.
func (n *Node) OperatorTok() *Node {
	k := n.Kind()
	switch {
	case k.IsBinaryExpression() || k.IsAssignmentExpression() || k == SimpleMemberAccessExpression ||
		k == QualifiedName || k == ConditionalAccessExpression || k == IsPatternExpression:
		return n.Child(1)
	case k == LogicalNotExpression || k == UnaryMinusExpression || k == MemberBindingExpression ||
		k == NotPattern:
		return n.Child(0)
	}
	return nil
}

// Operand returns the operand of a unary expression.
func (n *Node) Operand() *Node {
	if !n.Is(LogicalNotExpression, UnaryMinusExpression) {
		return nil
	}
	return n.Child(1)
}

// Pattern returns the pattern of an is-pattern or not-pattern.
func (n *Node) Pattern() *Node {
	switch n.Kind() {
	case IsPatternExpression:
		return n.Child(2)
	case NotPattern:
		return n.Child(1)
	}
	return nil
}

// WhenNotNull returns the part of a conditional access evaluated when the
// receiver is not null.
func (n *Node) WhenNotNull() *Node {
	if n.Kind() != ConditionalAccessExpression {
		return nil
	}
	return n.Child(2)
}

// WhenTrue returns the true branch of a conditional expression.
func (n *Node) WhenTrue() *Node {
	if n.Kind() != ConditionalExpression {
		return nil
	}
	return n.Child(2)
}

// WhenFalse returns the false branch of a conditional expression.
func (n *Node) WhenFalse() *Node {
	if n.Kind() != ConditionalExpression {
		return nil
	}
	return n.Child(4)
}

// ArgumentList returns the argument list of an invocation, element access,
// object creation, attribute or constructor initializer.
func (n *Node) ArgumentList() *Node { return n.slot(argumentListSlots) }

// Arguments returns the Argument nodes of n's argument list.
func (n *Node) Arguments() []*Node {
	return n.ArgumentList().Child(1).Elements()
}

// Args returns the expressions of n's arguments.
func (n *Node) Args() []*Node {
	args := n.Arguments()
	out := make([]*Node, len(args))
	for i, a := range args {
		out[i] = a.Expression()
	}
	return out
}

// RefKind returns the ref, out or in keyword of an argument, or nil.
func (n *Node) RefKind() *Node {
	if n.Kind() != Argument {
		return nil
	}
	return n.Child(0)
}

// Contents returns the text and interpolation parts of an interpolated
// string.
func (n *Node) Contents() []*Node {
	if n.Kind() != InterpolatedStringExpression {
		return nil
	}
	return n.Child(1).Children()
}

// StartToken returns the $" token of an interpolated string.
func (n *Node) StartToken() *Node {
	if n.Kind() != InterpolatedStringExpression {
		return nil
	}
	return n.Child(0)
}

// EndToken returns the closing quote of an interpolated string, or the end
// of file token of a compilation unit.
func (n *Node) EndToken() *Node {
	switch n.Kind() {
	case InterpolatedStringExpression:
		return n.Child(2)
	case CompilationUnit:
		return n.Child(1)
	}
	return nil
}

// Token returns the single token of a literal, identifier name, predefined
// type or interpolated text node.
func (n *Node) Token() *Node {
	k := n.Kind()
	if k.IsLiteralExpression() || k == IdentifierName || k == PredefinedType || k == InterpolatedStringText {
		return n.Child(0)
	}
	return nil
}

// SeparatedChildren returns the separated list of a base list, attribute
// list, parameter list, variable declaration or argument list.
func (n *Node) SeparatedChildren() *Node { return n.slot(separatedSlots) }

// Elements returns the non-separator elements of a SeparatedList, or the
// children of a List.
func (n *Node) Elements() []*Node {
	switch n.Kind() {
	case List:
		return n.Children()
	case SeparatedList:
		out := make([]*Node, 0, (len(n.slots)+1)/2)
		for i := 0; i < len(n.slots); i += 2 {
			out = append(out, n.slots[i])
		}
		return out
	}
	return nil
}

// Separators returns the separator tokens of a SeparatedList.
func (n *Node) Separators() []*Node {
	if n.Kind() != SeparatedList {
		return nil
	}
	out := make([]*Node, 0, len(n.slots)/2)
	for i := 1; i < len(n.slots); i += 2 {
		out = append(out, n.slots[i])
	}
	return out
}
