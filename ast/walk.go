package ast

// Children returns the direct children of n in source order.
// Absent optional children (nil pointers, nil interfaces, array holes) are
// omitted.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if !isNil(c) {
			out = append(out, c)
		}
	}
	addPatterns := func(ps []Pattern) {
		for _, p := range ps {
			add(p)
		}
	}
	addMembers := func(ms []ObjectMember) {
		for _, m := range ms {
			add(m)
		}
	}
	addStmts := func(ss []Statement) {
		for _, s := range ss {
			add(s)
		}
	}
	addExprs := func(es []Expression) {
		for _, e := range es {
			add(e)
		}
	}

	switch n := n.(type) {
	case *Program:
		addStmts(n.Body)
	case *ExpressionStatement:
		add(n.Expression)
	case *BlockStatement:
		addStmts(n.Body)
	case *ReturnStatement:
		add(n.Argument)
	case *IfStatement:
		add(n.Test)
		add(n.Consequent)
		add(n.Alternate)
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			add(d)
		}
	case *VariableDeclarator:
		add(n.ID)
		add(n.Init)
	case *FunctionDeclaration:
		add(n.ID)
		addPatterns(n.Params)
		add(n.Body)
	case *ClassDeclaration:
		add(n.ID)
		add(n.SuperClass)
		for _, m := range n.Body {
			add(m)
		}
	case *ClassExpression:
		add(n.ID)
		add(n.SuperClass)
		for _, m := range n.Body {
			add(m)
		}
	case *ClassMethod:
		add(n.Key)
		addPatterns(n.Params)
		add(n.Body)
	case *ExportDefaultDeclaration:
		add(n.Declaration)
	case *ExportNamedDeclaration:
		add(n.Declaration)
	case *ForStatement:
		add(n.Init)
		add(n.Test)
		add(n.Update)
		add(n.Body)
	case *ForInStatement:
		add(n.Left)
		add(n.Right)
		add(n.Body)
	case *WhileStatement:
		add(n.Test)
		add(n.Body)
	case *DoWhileStatement:
		add(n.Body)
		add(n.Test)
	case *TryStatement:
		add(n.Block)
		add(n.Handler)
		add(n.Finalizer)
	case *CatchClause:
		add(n.Param)
		add(n.Body)
	case *ThrowStatement:
		add(n.Argument)
	case *SwitchStatement:
		add(n.Discriminant)
		for _, c := range n.Cases {
			add(c)
		}
	case *SwitchCase:
		add(n.Test)
		addStmts(n.Consequent)
	case *LabeledStatement:
		add(n.Body)
	case *TemplateLiteral:
		addExprs(n.Expressions)
	case *TaggedTemplateExpression:
		add(n.Tag)
		add(n.Quasi)
	case *CallExpression:
		add(n.Callee)
		addExprs(n.Arguments)
	case *NewExpression:
		add(n.Callee)
		addExprs(n.Arguments)
	case *MemberExpression:
		add(n.Object)
		add(n.Property)
	case *FunctionExpression:
		add(n.ID)
		addPatterns(n.Params)
		add(n.Body)
	case *ArrowFunctionExpression:
		addPatterns(n.Params)
		add(n.Body)
	case *BinaryExpression:
		add(n.Left)
		add(n.Right)
	case *LogicalExpression:
		add(n.Left)
		add(n.Right)
	case *UnaryExpression:
		add(n.Argument)
	case *UpdateExpression:
		add(n.Argument)
	case *AssignmentExpression:
		add(n.Left)
		add(n.Right)
	case *ConditionalExpression:
		add(n.Test)
		add(n.Consequent)
		add(n.Alternate)
	case *SequenceExpression:
		addExprs(n.Expressions)
	case *ArrayExpression:
		addExprs(n.Elements)
	case *ObjectExpression:
		addMembers(n.Properties)
	case *Property:
		add(n.Key)
		add(n.Value)
	case *SpreadElement:
		add(n.Argument)
	case *AwaitExpression:
		add(n.Argument)
	case *YieldExpression:
		add(n.Argument)
	case *ObjectPattern:
		addMembers(n.Properties)
	case *ArrayPattern:
		addPatterns(n.Elements)
	case *AssignmentPattern:
		add(n.Left)
		add(n.Right)
	case *RestElement:
		add(n.Argument)
	}
	return out
}

// Inspect traverses the tree rooted at n in depth-first pre-order. If fn
// returns false the children of the current node are skipped.
func Inspect(n Node, fn func(Node) bool) {
	if isNil(n) || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, fn)
	}
}

// isNil catches typed nil pointers stored in an interface.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Identifier:
		return v == nil
	case *BlockStatement:
		return v == nil
	case *VariableDeclarator:
		return v == nil
	case *ClassMethod:
		return v == nil
	case *Property:
		return v == nil
	case *FunctionDeclaration:
		return v == nil
	case *ClassDeclaration:
		return v == nil
	case *VariableDeclaration:
		return v == nil
	case *CatchClause:
		return v == nil
	case *SwitchCase:
		return v == nil
	case *TemplateLiteral:
		return v == nil
	case *RestElement:
		return v == nil
	}
	return false
}
