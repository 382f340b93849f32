package ast

// Kind tags a node with its syntactic category.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindProgram
	KindExpressionStatement
	KindBlockStatement
	KindReturnStatement
	KindIfStatement
	KindEmptyStatement
	KindVariableDeclaration
	KindVariableDeclarator
	KindFunctionDeclaration
	KindClassDeclaration
	KindClassMethod
	KindExportDefaultDeclaration
	KindExportNamedDeclaration
	KindIdentifier
	KindStringLiteral
	KindNumericLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindThisExpression
	KindCallExpression
	KindNewExpression
	KindMemberExpression
	KindFunctionExpression
	KindBinaryExpression
	KindLogicalExpression
	KindUnaryExpression
	KindAssignmentExpression
	KindConditionalExpression
	KindArrayExpression
	KindObjectExpression
	KindProperty
	KindForStatement
	KindForInStatement
	KindWhileStatement
	KindDoWhileStatement
	KindTryStatement
	KindCatchClause
	KindThrowStatement
	KindBreakStatement
	KindContinueStatement
	KindSwitchStatement
	KindSwitchCase
	KindLabeledStatement
	KindDebuggerStatement
	KindRegExpLiteral
	KindTemplateLiteral
	KindTaggedTemplateExpression
	KindSuper
	KindArrowFunctionExpression
	KindClassExpression
	KindUpdateExpression
	KindSequenceExpression
	KindSpreadElement
	KindAwaitExpression
	KindYieldExpression
	KindObjectPattern
	KindArrayPattern
	KindAssignmentPattern
	KindRestElement
)

var kindNames = [...]string{
	KindInvalid:                  "Invalid",
	KindProgram:                  "Program",
	KindExpressionStatement:      "ExpressionStatement",
	KindBlockStatement:           "BlockStatement",
	KindReturnStatement:          "ReturnStatement",
	KindIfStatement:              "IfStatement",
	KindEmptyStatement:           "EmptyStatement",
	KindVariableDeclaration:      "VariableDeclaration",
	KindVariableDeclarator:       "VariableDeclarator",
	KindFunctionDeclaration:      "FunctionDeclaration",
	KindClassDeclaration:         "ClassDeclaration",
	KindClassMethod:              "ClassMethod",
	KindExportDefaultDeclaration: "ExportDefaultDeclaration",
	KindExportNamedDeclaration:   "ExportNamedDeclaration",
	KindIdentifier:               "Identifier",
	KindStringLiteral:            "StringLiteral",
	KindNumericLiteral:           "NumericLiteral",
	KindBooleanLiteral:           "BooleanLiteral",
	KindNullLiteral:              "NullLiteral",
	KindThisExpression:           "ThisExpression",
	KindCallExpression:           "CallExpression",
	KindNewExpression:            "NewExpression",
	KindMemberExpression:         "MemberExpression",
	KindFunctionExpression:       "FunctionExpression",
	KindBinaryExpression:         "BinaryExpression",
	KindLogicalExpression:        "LogicalExpression",
	KindUnaryExpression:          "UnaryExpression",
	KindAssignmentExpression:     "AssignmentExpression",
	KindConditionalExpression:    "ConditionalExpression",
	KindArrayExpression:          "ArrayExpression",
	KindObjectExpression:         "ObjectExpression",
	KindProperty:                 "Property",
	KindForStatement:             "ForStatement",
	KindForInStatement:           "ForInStatement",
	KindWhileStatement:           "WhileStatement",
	KindDoWhileStatement:         "DoWhileStatement",
	KindTryStatement:             "TryStatement",
	KindCatchClause:              "CatchClause",
	KindThrowStatement:           "ThrowStatement",
	KindBreakStatement:           "BreakStatement",
	KindContinueStatement:        "ContinueStatement",
	KindSwitchStatement:          "SwitchStatement",
	KindSwitchCase:               "SwitchCase",
	KindLabeledStatement:         "LabeledStatement",
	KindDebuggerStatement:        "DebuggerStatement",
	KindRegExpLiteral:            "RegExpLiteral",
	KindTemplateLiteral:          "TemplateLiteral",
	KindTaggedTemplateExpression: "TaggedTemplateExpression",
	KindSuper:                    "Super",
	KindArrowFunctionExpression:  "ArrowFunctionExpression",
	KindClassExpression:          "ClassExpression",
	KindUpdateExpression:         "UpdateExpression",
	KindSequenceExpression:       "SequenceExpression",
	KindSpreadElement:            "SpreadElement",
	KindAwaitExpression:          "AwaitExpression",
	KindYieldExpression:          "YieldExpression",
	KindObjectPattern:            "ObjectPattern",
	KindArrayPattern:             "ArrayPattern",
	KindAssignmentPattern:        "AssignmentPattern",
	KindRestElement:              "RestElement",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Invalid"
}

// IsDeclaration reports whether k introduces a named binding as a statement.
func (k Kind) IsDeclaration() bool {
	return k == KindVariableDeclaration || k == KindFunctionDeclaration || k == KindClassDeclaration
}

func (*Program) Kind() Kind                  { return KindProgram }
func (*ExpressionStatement) Kind() Kind      { return KindExpressionStatement }
func (*BlockStatement) Kind() Kind           { return KindBlockStatement }
func (*ReturnStatement) Kind() Kind          { return KindReturnStatement }
func (*IfStatement) Kind() Kind              { return KindIfStatement }
func (*EmptyStatement) Kind() Kind           { return KindEmptyStatement }
func (*VariableDeclaration) Kind() Kind      { return KindVariableDeclaration }
func (*VariableDeclarator) Kind() Kind       { return KindVariableDeclarator }
func (*FunctionDeclaration) Kind() Kind      { return KindFunctionDeclaration }
func (*ClassDeclaration) Kind() Kind         { return KindClassDeclaration }
func (*ClassMethod) Kind() Kind              { return KindClassMethod }
func (*ExportDefaultDeclaration) Kind() Kind { return KindExportDefaultDeclaration }
func (*ExportNamedDeclaration) Kind() Kind   { return KindExportNamedDeclaration }
func (*Identifier) Kind() Kind               { return KindIdentifier }
func (*StringLiteral) Kind() Kind            { return KindStringLiteral }
func (*NumericLiteral) Kind() Kind           { return KindNumericLiteral }
func (*BooleanLiteral) Kind() Kind           { return KindBooleanLiteral }
func (*NullLiteral) Kind() Kind              { return KindNullLiteral }
func (*ThisExpression) Kind() Kind           { return KindThisExpression }
func (*CallExpression) Kind() Kind           { return KindCallExpression }
func (*NewExpression) Kind() Kind            { return KindNewExpression }
func (*MemberExpression) Kind() Kind         { return KindMemberExpression }
func (*FunctionExpression) Kind() Kind       { return KindFunctionExpression }
func (*BinaryExpression) Kind() Kind         { return KindBinaryExpression }
func (*LogicalExpression) Kind() Kind        { return KindLogicalExpression }
func (*UnaryExpression) Kind() Kind          { return KindUnaryExpression }
func (*AssignmentExpression) Kind() Kind     { return KindAssignmentExpression }
func (*ConditionalExpression) Kind() Kind    { return KindConditionalExpression }
func (*ArrayExpression) Kind() Kind          { return KindArrayExpression }
func (*ObjectExpression) Kind() Kind         { return KindObjectExpression }
func (*Property) Kind() Kind                 { return KindProperty }
func (*ForStatement) Kind() Kind             { return KindForStatement }
func (*ForInStatement) Kind() Kind           { return KindForInStatement }
func (*WhileStatement) Kind() Kind           { return KindWhileStatement }
func (*DoWhileStatement) Kind() Kind         { return KindDoWhileStatement }
func (*TryStatement) Kind() Kind             { return KindTryStatement }
func (*CatchClause) Kind() Kind              { return KindCatchClause }
func (*ThrowStatement) Kind() Kind           { return KindThrowStatement }
func (*BreakStatement) Kind() Kind           { return KindBreakStatement }
func (*ContinueStatement) Kind() Kind        { return KindContinueStatement }
func (*SwitchStatement) Kind() Kind          { return KindSwitchStatement }
func (*SwitchCase) Kind() Kind               { return KindSwitchCase }
func (*LabeledStatement) Kind() Kind         { return KindLabeledStatement }
func (*DebuggerStatement) Kind() Kind        { return KindDebuggerStatement }
func (*RegExpLiteral) Kind() Kind            { return KindRegExpLiteral }
func (*TemplateLiteral) Kind() Kind          { return KindTemplateLiteral }
func (*TaggedTemplateExpression) Kind() Kind { return KindTaggedTemplateExpression }
func (*Super) Kind() Kind                    { return KindSuper }
func (*ArrowFunctionExpression) Kind() Kind  { return KindArrowFunctionExpression }
func (*ClassExpression) Kind() Kind          { return KindClassExpression }
func (*UpdateExpression) Kind() Kind         { return KindUpdateExpression }
func (*SequenceExpression) Kind() Kind       { return KindSequenceExpression }
func (*SpreadElement) Kind() Kind            { return KindSpreadElement }
func (*AwaitExpression) Kind() Kind          { return KindAwaitExpression }
func (*YieldExpression) Kind() Kind          { return KindYieldExpression }
func (*ObjectPattern) Kind() Kind            { return KindObjectPattern }
func (*ArrayPattern) Kind() Kind             { return KindArrayPattern }
func (*AssignmentPattern) Kind() Kind        { return KindAssignmentPattern }
func (*RestElement) Kind() Kind              { return KindRestElement }
