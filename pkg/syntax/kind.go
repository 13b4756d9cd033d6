// Package syntax implements an immutable, trivia-preserving syntax tree.
//
// Nodes carry no parent pointers. Navigation with parents goes through
// Cursor values, which are cheap to create and are rebuilt after every
// rewrite. Rewrites return a new root that shares all unchanged subtrees
// with the old one.
package syntax

import "fmt"

// Kind identifies the syntactic category of a node.
type Kind uint16

const (
	KindInvalid Kind = iota

	// Leaves and lists
	KindToken
	KindList          // items
	KindSeparatedList // item, separator, item, ...

	// Compilation unit and namespaces
	KindCompilationUnit
	KindUsingDirective
	KindNamespaceDeclaration

	// Type declarations
	KindClassDeclaration
	KindStructDeclaration
	KindInterfaceDeclaration
	KindEnumDeclaration
	KindEnumMemberDeclaration
	KindDelegateDeclaration
	KindBaseList

	// Members
	KindFieldDeclaration
	KindEventFieldDeclaration
	KindVariableDeclaration
	KindVariableDeclarator
	KindEqualsValueClause
	KindMethodDeclaration
	KindConstructorDeclaration
	KindConstructorInitializer
	KindDestructorDeclaration
	KindOperatorDeclaration
	KindConversionOperatorDeclaration
	KindPropertyDeclaration
	KindIndexerDeclaration
	KindAccessorList
	KindGetAccessorDeclaration
	KindSetAccessorDeclaration
	KindArrowExpressionClause
	KindParameterList
	KindBracketedParameterList
	KindParameter

	// Statements
	KindBlock
	KindLocalDeclarationStatement
	KindExpressionStatement
	KindIfStatement
	KindElseClause
	KindReturnStatement
	KindThrowStatement
	KindTryStatement
	KindCatchClause
	KindCatchDeclaration
	KindFinallyClause
	KindWhileStatement
	KindForEachStatement
	KindEmptyStatement

	// Names and types
	KindIdentifierName
	KindGenericName
	KindTypeArgumentList
	KindQualifiedName
	KindPredefinedType
	KindArrayType

	// Expressions
	KindLiteralExpression
	KindThisExpression
	KindBaseExpression
	KindParenthesizedExpression
	KindMemberAccessExpression
	KindInvocationExpression
	KindElementAccessExpression
	KindArgumentList
	KindBracketedArgumentList
	KindArgument
	KindObjectCreationExpression
	KindBinaryExpression
	KindPrefixUnaryExpression
	KindPostfixUnaryExpression
	KindAssignmentExpression
	KindConditionalExpression

	kindCount
)

var kindNames = [...]string{
	KindInvalid:                       "Invalid",
	KindToken:                         "Token",
	KindList:                          "List",
	KindSeparatedList:                 "SeparatedList",
	KindCompilationUnit:               "CompilationUnit",
	KindUsingDirective:                "UsingDirective",
	KindNamespaceDeclaration:          "NamespaceDeclaration",
	KindClassDeclaration:              "ClassDeclaration",
	KindStructDeclaration:             "StructDeclaration",
	KindInterfaceDeclaration:          "InterfaceDeclaration",
	KindEnumDeclaration:               "EnumDeclaration",
	KindEnumMemberDeclaration:         "EnumMemberDeclaration",
	KindDelegateDeclaration:           "DelegateDeclaration",
	KindBaseList:                      "BaseList",
	KindFieldDeclaration:              "FieldDeclaration",
	KindEventFieldDeclaration:         "EventFieldDeclaration",
	KindVariableDeclaration:           "VariableDeclaration",
	KindVariableDeclarator:            "VariableDeclarator",
	KindEqualsValueClause:             "EqualsValueClause",
	KindMethodDeclaration:             "MethodDeclaration",
	KindConstructorDeclaration:        "ConstructorDeclaration",
	KindConstructorInitializer:        "ConstructorInitializer",
	KindDestructorDeclaration:         "DestructorDeclaration",
	KindOperatorDeclaration:           "OperatorDeclaration",
	KindConversionOperatorDeclaration: "ConversionOperatorDeclaration",
	KindPropertyDeclaration:           "PropertyDeclaration",
	KindIndexerDeclaration:            "IndexerDeclaration",
	KindAccessorList:                  "AccessorList",
	KindGetAccessorDeclaration:        "GetAccessorDeclaration",
	KindSetAccessorDeclaration:        "SetAccessorDeclaration",
	KindArrowExpressionClause:         "ArrowExpressionClause",
	KindParameterList:                 "ParameterList",
	KindBracketedParameterList:        "BracketedParameterList",
	KindParameter:                     "Parameter",
	KindBlock:                         "Block",
	KindLocalDeclarationStatement:     "LocalDeclarationStatement",
	KindExpressionStatement:           "ExpressionStatement",
	KindIfStatement:                   "IfStatement",
	KindElseClause:                    "ElseClause",
	KindReturnStatement:               "ReturnStatement",
	KindThrowStatement:                "ThrowStatement",
	KindTryStatement:                  "TryStatement",
	KindCatchClause:                   "CatchClause",
	KindCatchDeclaration:              "CatchDeclaration",
	KindFinallyClause:                 "FinallyClause",
	KindWhileStatement:                "WhileStatement",
	KindForEachStatement:              "ForEachStatement",
	KindEmptyStatement:                "EmptyStatement",
	KindIdentifierName:                "IdentifierName",
	KindGenericName:                   "GenericName",
	KindTypeArgumentList:              "TypeArgumentList",
	KindQualifiedName:                 "QualifiedName",
	KindPredefinedType:                "PredefinedType",
	KindArrayType:                     "ArrayType",
	KindLiteralExpression:             "LiteralExpression",
	KindThisExpression:                "ThisExpression",
	KindBaseExpression:                "BaseExpression",
	KindParenthesizedExpression:       "ParenthesizedExpression",
	KindMemberAccessExpression:        "MemberAccessExpression",
	KindInvocationExpression:          "InvocationExpression",
	KindElementAccessExpression:       "ElementAccessExpression",
	KindArgumentList:                  "ArgumentList",
	KindBracketedArgumentList:         "BracketedArgumentList",
	KindArgument:                      "Argument",
	KindObjectCreationExpression:      "ObjectCreationExpression",
	KindBinaryExpression:              "BinaryExpression",
	KindPrefixUnaryExpression:         "PrefixUnaryExpression",
	KindPostfixUnaryExpression:        "PostfixUnaryExpression",
	KindAssignmentExpression:          "AssignmentExpression",
	KindConditionalExpression:         "ConditionalExpression",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// KindCount is the number of defined kinds. Dispatch tables indexed by Kind use it as length.
const KindCount = int(kindCount)

// IsTypeDeclaration reports whether k declares a named type.
func (k Kind) IsTypeDeclaration() bool {
	switch k {
	case KindClassDeclaration, KindStructDeclaration, KindInterfaceDeclaration,
		KindEnumDeclaration, KindDelegateDeclaration:
		return true
	}
	return false
}

// IsStatement reports whether k is a statement kind.
func (k Kind) IsStatement() bool {
	return k >= KindBlock && k <= KindEmptyStatement && k != KindElseClause &&
		k != KindCatchClause && k != KindCatchDeclaration && k != KindFinallyClause
}

// IsExpression reports whether k can appear in expression position.
func (k Kind) IsExpression() bool {
	switch k {
	case KindArgumentList, KindBracketedArgumentList, KindArgument, KindTypeArgumentList:
		return false
	}
	return k >= KindIdentifierName && k < kindCount
}

// IsMemberDeclaration reports whether k can appear in a type's member list.
func (k Kind) IsMemberDeclaration() bool {
	switch k {
	case KindFieldDeclaration, KindEventFieldDeclaration, KindMethodDeclaration,
		KindConstructorDeclaration, KindDestructorDeclaration, KindOperatorDeclaration,
		KindConversionOperatorDeclaration, KindPropertyDeclaration, KindIndexerDeclaration:
		return true
	}
	return k.IsTypeDeclaration()
}

// IsBaseMethod reports whether k declares something with a parameter list and a body.
func (k Kind) IsBaseMethod() bool {
	switch k {
	case KindMethodDeclaration, KindConstructorDeclaration, KindDestructorDeclaration,
		KindOperatorDeclaration, KindConversionOperatorDeclaration:
		return true
	}
	return false
}
