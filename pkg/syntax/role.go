package syntax

// Role names a child slot of a node. The slot layout of each kind is fixed;
// absent optional children are stored as nil.
type Role uint8

const (
	RoleNone Role = iota
	Token         // the token of single-token nodes (literals)
	Identifier
	Keyword
	Modifiers
	OpenBrace
	CloseBrace
	OpenParen
	CloseParen
	OpenBracket
	CloseBracket
	LessThan
	GreaterThan
	Semicolon
	Colon
	Dot
	Tilde
	Arrow
	Question
	EqualsToken
	Operator
	InKeyword
	ImplicitOrExplicit
	Usings
	Members
	EndOfFile
	Name
	BaseList
	Types
	Type
	ReturnType
	Declaration
	Variables
	Initializer
	Value
	ParameterList
	Parameters
	Default
	Body
	ExpressionBody
	AccessorList
	Accessors
	Expression
	Statements
	Condition
	Statement
	Else
	Block
	Catches
	Finally
	Left
	Right
	Operand
	ArgumentList
	Arguments
	RefKind
	TypeArgumentList
	TypeArguments
	WhenTrue
	WhenFalse
	ElementType

	roleCount
)

var roleNames = [...]string{
	RoleNone: "None", Token: "Token", Identifier: "Identifier", Keyword: "Keyword",
	Modifiers: "Modifiers", OpenBrace: "OpenBrace", CloseBrace: "CloseBrace",
	OpenParen: "OpenParen", CloseParen: "CloseParen", OpenBracket: "OpenBracket",
	CloseBracket: "CloseBracket", LessThan: "LessThan", GreaterThan: "GreaterThan",
	Semicolon: "Semicolon", Colon: "Colon", Dot: "Dot", Tilde: "Tilde", Arrow: "Arrow",
	Question: "Question", EqualsToken: "EqualsToken", Operator: "Operator",
	InKeyword: "InKeyword", ImplicitOrExplicit: "ImplicitOrExplicit", Usings: "Usings",
	Members: "Members", EndOfFile: "EndOfFile", Name: "Name", BaseList: "BaseList",
	Types: "Types", Type: "Type", ReturnType: "ReturnType", Declaration: "Declaration",
	Variables: "Variables", Initializer: "Initializer", Value: "Value",
	ParameterList: "ParameterList", Parameters: "Parameters", Default: "Default",
	Body: "Body", ExpressionBody: "ExpressionBody", AccessorList: "AccessorList",
	Accessors: "Accessors", Expression: "Expression", Statements: "Statements",
	Condition: "Condition", Statement: "Statement", Else: "Else", Block: "Block",
	Catches: "Catches", Finally: "Finally", Left: "Left", Right: "Right",
	Operand: "Operand", ArgumentList: "ArgumentList", Arguments: "Arguments",
	RefKind: "RefKind", TypeArgumentList: "TypeArgumentList",
	TypeArguments: "TypeArguments", WhenTrue: "WhenTrue", WhenFalse: "WhenFalse",
	ElementType: "ElementType",
}

func (r Role) String() string {
	if r < roleCount {
		return roleNames[r]
	}
	return "Role?"
}

// typeDeclLayout is shared by class, struct and interface declarations.
var typeDeclLayout = []Role{Modifiers, Keyword, Identifier, BaseList, OpenBrace, Members, CloseBrace}

// methodBodyRoles are the trailing slots shared by every base method declaration.
var methodBodyRoles = []Role{Body, ExpressionBody, Semicolon}

func withBody(roles ...Role) []Role {
	return append(roles, methodBodyRoles...)
}

// layouts lists the child slots of every composite kind in source order.
var layouts = [kindCount][]Role{
	KindCompilationUnit:      {Usings, Members, EndOfFile},
	KindUsingDirective:       {Keyword, Name, Semicolon},
	KindNamespaceDeclaration: {Keyword, Name, OpenBrace, Usings, Members, CloseBrace},

	KindClassDeclaration:      typeDeclLayout,
	KindStructDeclaration:     typeDeclLayout,
	KindInterfaceDeclaration:  typeDeclLayout,
	KindEnumDeclaration:       typeDeclLayout,
	KindEnumMemberDeclaration: {Identifier, Initializer},
	KindDelegateDeclaration:   {Modifiers, Keyword, ReturnType, Identifier, ParameterList, Semicolon},
	KindBaseList:              {Colon, Types},

	KindFieldDeclaration:              {Modifiers, Declaration, Semicolon},
	KindEventFieldDeclaration:         {Modifiers, Keyword, Declaration, Semicolon},
	KindVariableDeclaration:           {Type, Variables},
	KindVariableDeclarator:            {Identifier, Initializer},
	KindEqualsValueClause:             {EqualsToken, Value},
	KindMethodDeclaration:             withBody(Modifiers, ReturnType, Identifier, ParameterList),
	KindConstructorDeclaration:        withBody(Modifiers, Identifier, ParameterList, Initializer),
	KindConstructorInitializer:        {Colon, Keyword, ArgumentList},
	KindDestructorDeclaration:         withBody(Modifiers, Tilde, Identifier, ParameterList),
	KindOperatorDeclaration:           withBody(Modifiers, ReturnType, Keyword, Operator, ParameterList),
	KindConversionOperatorDeclaration: withBody(Modifiers, ImplicitOrExplicit, Keyword, Type, ParameterList),
	KindPropertyDeclaration:           {Modifiers, Type, Identifier, AccessorList, ExpressionBody, Initializer, Semicolon},
	KindIndexerDeclaration:            {Modifiers, Type, Keyword, ParameterList, AccessorList, ExpressionBody, Semicolon},
	KindAccessorList:                  {OpenBrace, Accessors, CloseBrace},
	KindGetAccessorDeclaration:        withBody(Modifiers, Keyword),
	KindSetAccessorDeclaration:        withBody(Modifiers, Keyword),
	KindArrowExpressionClause:         {Arrow, Expression},
	KindParameterList:                 {OpenParen, Parameters, CloseParen},
	KindBracketedParameterList:        {OpenBracket, Parameters, CloseBracket},
	KindParameter:                     {Modifiers, Type, Identifier, Default},

	KindBlock:                     {OpenBrace, Statements, CloseBrace},
	KindLocalDeclarationStatement: {Modifiers, Declaration, Semicolon},
	KindExpressionStatement:       {Expression, Semicolon},
	KindIfStatement:               {Keyword, OpenParen, Condition, CloseParen, Statement, Else},
	KindElseClause:                {Keyword, Statement},
	KindReturnStatement:           {Keyword, Expression, Semicolon},
	KindThrowStatement:            {Keyword, Expression, Semicolon},
	KindTryStatement:              {Keyword, Block, Catches, Finally},
	KindCatchClause:               {Keyword, Declaration, Block},
	KindCatchDeclaration:          {OpenParen, Type, Identifier, CloseParen},
	KindFinallyClause:             {Keyword, Block},
	KindWhileStatement:            {Keyword, OpenParen, Condition, CloseParen, Statement},
	KindForEachStatement:          {Keyword, OpenParen, Type, Identifier, InKeyword, Expression, CloseParen, Statement},
	KindEmptyStatement:            {Semicolon},

	KindIdentifierName:   {Identifier},
	KindGenericName:      {Identifier, TypeArgumentList},
	KindTypeArgumentList: {LessThan, TypeArguments, GreaterThan},
	KindQualifiedName:    {Left, Dot, Right},
	KindPredefinedType:   {Keyword},
	KindArrayType:        {ElementType, OpenBracket, CloseBracket},

	KindLiteralExpression:        {Token},
	KindThisExpression:           {Keyword},
	KindBaseExpression:           {Keyword},
	KindParenthesizedExpression:  {OpenParen, Expression, CloseParen},
	KindMemberAccessExpression:   {Expression, Dot, Name},
	KindInvocationExpression:     {Expression, ArgumentList},
	KindElementAccessExpression:  {Expression, ArgumentList},
	KindArgumentList:             {OpenParen, Arguments, CloseParen},
	KindBracketedArgumentList:    {OpenBracket, Arguments, CloseBracket},
	KindArgument:                 {RefKind, Expression},
	KindObjectCreationExpression: {Keyword, Type, ArgumentList},
	KindBinaryExpression:         {Left, Operator, Right},
	KindPrefixUnaryExpression:    {Operator, Operand},
	KindPostfixUnaryExpression:   {Operand, Operator},
	KindAssignmentExpression:     {Left, Operator, Right},
	KindConditionalExpression:    {Condition, Question, WhenTrue, Colon, WhenFalse},
}

// Layout returns the slot roles of kind k, or nil for tokens and lists.
func Layout(k Kind) []Role {
	if k >= kindCount {
		return nil
	}
	return layouts[k]
}

// slotIndex returns the child index of role r in kind k, or -1.
func slotIndex(k Kind, r Role) int {
	for i, role := range Layout(k) {
		if role == r {
			return i
		}
	}
	return -1
}
