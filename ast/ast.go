package ast

// Node is implemented by every syntax tree node. The set of implementations
// is closed: only types in this package satisfy it.
type Node interface {
	Kind() Kind
	node()
}

// Statement is a node that may appear in a statement list.
type Statement interface {
	Node
	stmt()
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expr()
}

// Pattern is a binding target: an *Identifier, *ObjectPattern,
// *ArrayPattern, *AssignmentPattern or *RestElement.
type Pattern interface {
	Node
	pattern()
}

// ObjectMember is an entry of an object literal or object pattern: a
// *Property, a *SpreadElement in literals or a *RestElement in patterns.
type ObjectMember interface {
	Node
	member()
}

// SourceType is the parse goal of a program.
type SourceType uint8

const (
	SourceScript SourceType = iota
	SourceModule
)

func (s SourceType) String() string {
	if s == SourceModule {
		return "module"
	}
	return "script"
}

// DeclKind is the keyword of a variable declaration.
type DeclKind uint8

const (
	DeclVar DeclKind = iota
	DeclLet
	DeclConst
)

func (k DeclKind) String() string {
	switch k {
	case DeclLet:
		return "let"
	case DeclConst:
		return "const"
	}
	return "var"
}

// MethodKind distinguishes plain methods from accessors.
type MethodKind uint8

const (
	MethodPlain MethodKind = iota
	MethodGet
	MethodSet
)

func (k MethodKind) String() string {
	switch k {
	case MethodGet:
		return "get"
	case MethodSet:
		return "set"
	}
	return ""
}

// Program is the root of a parsed source unit.
type Program struct {
	Body       []Statement
	SourceType SourceType
}

type (
	ExpressionStatement struct {
		Expression Expression
	}

	BlockStatement struct {
		Body []Statement
	}

	// ReturnStatement.Argument is nil for a bare return.
	ReturnStatement struct {
		Argument Expression
	}

	IfStatement struct {
		Test       Expression
		Consequent Statement
		Alternate  Statement
	}

	EmptyStatement struct{}

	VariableDeclaration struct {
		Declarations []*VariableDeclarator
		DeclKind     DeclKind
	}

	VariableDeclarator struct {
		ID   Pattern
		Init Expression
	}

	// FunctionDeclaration.ID is nil only under export default.
	FunctionDeclaration struct {
		ID        *Identifier
		Body      *BlockStatement
		Params    []Pattern
		Async     bool
		Generator bool
	}

	// ClassDeclaration.ID is nil only under export default.
	ClassDeclaration struct {
		ID         *Identifier
		SuperClass Expression
		Body       []*ClassMethod
	}

	// ClassMethod.Key is an *Identifier, *StringLiteral or *NumericLiteral
	// unless Computed is set.
	ClassMethod struct {
		Key        Expression
		Body       *BlockStatement
		Params     []Pattern
		MethodKind MethodKind
		Computed   bool
		Static     bool
		Async      bool
		Generator  bool
	}

	// ExportDefaultDeclaration.Declaration is an Expression, a
	// *FunctionDeclaration or a *ClassDeclaration.
	ExportDefaultDeclaration struct {
		Declaration Node
	}

	// ExportNamedDeclaration.Declaration is a *VariableDeclaration,
	// *FunctionDeclaration or *ClassDeclaration.
	ExportNamedDeclaration struct {
		Declaration Statement
	}

	// ForStatement.Init is nil, an Expression or a *VariableDeclaration.
	ForStatement struct {
		Init   Node
		Test   Expression
		Update Expression
		Body   Statement
	}

	// ForInStatement is a for-in loop, or a for-of loop when Of is set.
	// Left is a *VariableDeclaration with one declarator and no
	// initializer, or an assignment target expression.
	ForInStatement struct {
		Left  Node
		Right Expression
		Body  Statement
		Of    bool
	}

	WhileStatement struct {
		Test Expression
		Body Statement
	}

	DoWhileStatement struct {
		Body Statement
		Test Expression
	}

	// TryStatement has a Handler, a Finalizer or both.
	TryStatement struct {
		Block     *BlockStatement
		Handler   *CatchClause
		Finalizer *BlockStatement
	}

	// CatchClause.Param is nil for an optional catch binding.
	CatchClause struct {
		Param Pattern
		Body  *BlockStatement
	}

	ThrowStatement struct {
		Argument Expression
	}

	// Labels are not bindings, so jump targets are kept as plain strings.
	BreakStatement struct {
		Label string
	}

	ContinueStatement struct {
		Label string
	}

	SwitchStatement struct {
		Discriminant Expression
		Cases        []*SwitchCase
	}

	// SwitchCase.Test is nil for the default clause.
	SwitchCase struct {
		Test       Expression
		Consequent []Statement
	}

	LabeledStatement struct {
		Label string
		Body  Statement
	}

	DebuggerStatement struct{}
)

type (
	Identifier struct {
		Name string
	}

	// StringLiteral.Raw keeps the source quoting; it may be empty for
	// synthesized literals.
	StringLiteral struct {
		Value string
		Raw   string
	}

	NumericLiteral struct {
		Raw   string
		Value float64
	}

	BooleanLiteral struct {
		Value bool
	}

	NullLiteral struct{}

	RegExpLiteral struct {
		Pattern string
		Flags   string
	}

	// TemplateLiteral.Quasis holds the raw text around each substitution;
	// it always has one more entry than Expressions.
	TemplateLiteral struct {
		Quasis      []string
		Expressions []Expression
	}

	TaggedTemplateExpression struct {
		Tag   Expression
		Quasi *TemplateLiteral
	}

	ThisExpression struct{}

	// Super only appears as a callee or member object inside a class.
	Super struct{}

	// CallExpression.Optional marks a call written as callee?.(args).
	CallExpression struct {
		Callee    Expression
		Arguments []Expression
		Optional  bool
	}

	NewExpression struct {
		Callee    Expression
		Arguments []Expression
	}

	// MemberExpression.Property is an *Identifier unless Computed is set.
	// Optional marks access written with ?.
	MemberExpression struct {
		Object   Expression
		Property Expression
		Computed bool
		Optional bool
	}

	FunctionExpression struct {
		ID        *Identifier
		Body      *BlockStatement
		Params    []Pattern
		Async     bool
		Generator bool
	}

	// ArrowFunctionExpression.Body is a *BlockStatement or an Expression.
	ArrowFunctionExpression struct {
		Body   Node
		Params []Pattern
		Async  bool
	}

	// ClassExpression.ID is nil for an anonymous class.
	ClassExpression struct {
		ID         *Identifier
		SuperClass Expression
		Body       []*ClassMethod
	}

	BinaryExpression struct {
		Left     Expression
		Right    Expression
		Operator string
	}

	LogicalExpression struct {
		Left     Expression
		Right    Expression
		Operator string
	}

	UnaryExpression struct {
		Argument Expression
		Operator string
	}

	// UpdateExpression is ++ or -- on an identifier or member.
	UpdateExpression struct {
		Argument Expression
		Operator string
		Prefix   bool
	}

	AssignmentExpression struct {
		Left     Expression
		Right    Expression
		Operator string
	}

	ConditionalExpression struct {
		Test       Expression
		Consequent Expression
		Alternate  Expression
	}

	SequenceExpression struct {
		Expressions []Expression
	}

	// ArrayExpression.Elements may contain nil for holes.
	ArrayExpression struct {
		Elements []Expression
	}

	ObjectExpression struct {
		Properties []ObjectMember
	}

	// Property.Key is an *Identifier, *StringLiteral or *NumericLiteral
	// unless Computed is set. Value is an Expression in literals and a
	// Pattern in object patterns. Methods and accessors carry a
	// *FunctionExpression value.
	Property struct {
		Key        Expression
		Value      Node
		MethodKind MethodKind
		Computed   bool
		Shorthand  bool
		Method     bool
	}

	// SpreadElement is only valid as a call argument, array element or
	// object literal member.
	SpreadElement struct {
		Argument Expression
	}

	AwaitExpression struct {
		Argument Expression
	}

	// YieldExpression.Argument is nil for a bare yield.
	YieldExpression struct {
		Argument Expression
		Delegate bool
	}
)

type (
	// ObjectPattern.Properties holds *Property entries whose values are
	// patterns, optionally ending in a *RestElement.
	ObjectPattern struct {
		Properties []ObjectMember
	}

	// ArrayPattern.Elements may contain nil for holes and may end in a
	// *RestElement.
	ArrayPattern struct {
		Elements []Pattern
	}

	AssignmentPattern struct {
		Left  Pattern
		Right Expression
	}

	RestElement struct {
		Argument Pattern
	}
)

func (*Program) node()                  {}
func (*ExpressionStatement) node()      {}
func (*BlockStatement) node()           {}
func (*ReturnStatement) node()          {}
func (*IfStatement) node()              {}
func (*EmptyStatement) node()           {}
func (*VariableDeclaration) node()      {}
func (*VariableDeclarator) node()       {}
func (*FunctionDeclaration) node()      {}
func (*ClassDeclaration) node()         {}
func (*ClassMethod) node()              {}
func (*ExportDefaultDeclaration) node() {}
func (*ExportNamedDeclaration) node()   {}
func (*ForStatement) node()             {}
func (*ForInStatement) node()           {}
func (*WhileStatement) node()           {}
func (*DoWhileStatement) node()         {}
func (*TryStatement) node()             {}
func (*CatchClause) node()              {}
func (*ThrowStatement) node()           {}
func (*BreakStatement) node()           {}
func (*ContinueStatement) node()        {}
func (*SwitchStatement) node()          {}
func (*SwitchCase) node()               {}
func (*LabeledStatement) node()         {}
func (*DebuggerStatement) node()        {}
func (*Identifier) node()               {}
func (*StringLiteral) node()            {}
func (*NumericLiteral) node()           {}
func (*BooleanLiteral) node()           {}
func (*NullLiteral) node()              {}
func (*RegExpLiteral) node()            {}
func (*TemplateLiteral) node()          {}
func (*TaggedTemplateExpression) node() {}
func (*ThisExpression) node()           {}
func (*Super) node()                    {}
func (*CallExpression) node()           {}
func (*NewExpression) node()            {}
func (*MemberExpression) node()         {}
func (*FunctionExpression) node()       {}
func (*ArrowFunctionExpression) node()  {}
func (*ClassExpression) node()          {}
func (*BinaryExpression) node()         {}
func (*LogicalExpression) node()        {}
func (*UnaryExpression) node()          {}
func (*UpdateExpression) node()         {}
func (*AssignmentExpression) node()     {}
func (*ConditionalExpression) node()    {}
func (*SequenceExpression) node()       {}
func (*ArrayExpression) node()          {}
func (*ObjectExpression) node()         {}
func (*Property) node()                 {}
func (*SpreadElement) node()            {}
func (*AwaitExpression) node()          {}
func (*YieldExpression) node()          {}
func (*ObjectPattern) node()            {}
func (*ArrayPattern) node()             {}
func (*AssignmentPattern) node()        {}
func (*RestElement) node()              {}

func (*ExpressionStatement) stmt()      {}
func (*BlockStatement) stmt()           {}
func (*ReturnStatement) stmt()          {}
func (*IfStatement) stmt()              {}
func (*EmptyStatement) stmt()           {}
func (*VariableDeclaration) stmt()      {}
func (*FunctionDeclaration) stmt()      {}
func (*ClassDeclaration) stmt()         {}
func (*ExportDefaultDeclaration) stmt() {}
func (*ExportNamedDeclaration) stmt()   {}
func (*ForStatement) stmt()             {}
func (*ForInStatement) stmt()           {}
func (*WhileStatement) stmt()           {}
func (*DoWhileStatement) stmt()         {}
func (*TryStatement) stmt()             {}
func (*ThrowStatement) stmt()           {}
func (*BreakStatement) stmt()           {}
func (*ContinueStatement) stmt()        {}
func (*SwitchStatement) stmt()          {}
func (*LabeledStatement) stmt()         {}
func (*DebuggerStatement) stmt()        {}

func (*Identifier) expr()               {}
func (*StringLiteral) expr()            {}
func (*NumericLiteral) expr()           {}
func (*BooleanLiteral) expr()           {}
func (*NullLiteral) expr()              {}
func (*RegExpLiteral) expr()            {}
func (*TemplateLiteral) expr()          {}
func (*TaggedTemplateExpression) expr() {}
func (*ThisExpression) expr()           {}
func (*Super) expr()                    {}
func (*CallExpression) expr()           {}
func (*NewExpression) expr()            {}
func (*MemberExpression) expr()         {}
func (*FunctionExpression) expr()       {}
func (*ArrowFunctionExpression) expr()  {}
func (*ClassExpression) expr()          {}
func (*BinaryExpression) expr()         {}
func (*LogicalExpression) expr()        {}
func (*UnaryExpression) expr()          {}
func (*UpdateExpression) expr()         {}
func (*AssignmentExpression) expr()     {}
func (*ConditionalExpression) expr()    {}
func (*SequenceExpression) expr()       {}
func (*ArrayExpression) expr()          {}
func (*ObjectExpression) expr()         {}
func (*SpreadElement) expr()            {}
func (*AwaitExpression) expr()          {}
func (*YieldExpression) expr()          {}

func (*Identifier) pattern()        {}
func (*ObjectPattern) pattern()     {}
func (*ArrayPattern) pattern()      {}
func (*AssignmentPattern) pattern() {}
func (*RestElement) pattern()       {}

func (*Property) member()      {}
func (*SpreadElement) member() {}
func (*RestElement) member()   {}
