package ast

// Inspect traverses the tree rooted at n depth-first, calling fn on every
// node. Children are visited only when fn returns true.
func Inspect(n Node, fn func(Node) bool) {
	if IsNil(n) || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, fn)
	}
}

// Children returns the direct, non-nil children of n in source order.
// Declarations reached through references (DeclRefExpr.Decl, member
// targets, resolved operators) are not children.
func Children(n Node) []Node {
	var out []Node
	add := func(cs ...Node) {
		for _, c := range cs {
			if !IsNil(c) {
				out = append(out, c)
			}
		}
	}
	addExprs := func(es []Expr) {
		for _, e := range es {
			add(e)
		}
	}
	addDecls := func(ds []Decl) {
		for _, d := range ds {
			add(d)
		}
	}

	switch x := n.(type) {
	case *TranslationUnit:
		addDecls(x.Decls)
	case *NamespaceDecl:
		addDecls(x.Decls)
	case *VarDecl:
		add(x.Init)
	case *ParmVarDecl:
		add(x.Default)
	case *FunctionDecl:
		for _, p := range x.Params {
			add(p)
		}
		for _, in := range x.Inits {
			if in != nil {
				add(in.Init)
			}
		}
		add(x.Body)
	case *RecordDecl:
		addDecls(x.Decls)
	case *FieldDecl:
		add(x.Init)
	case *EnumDecl:
		for _, c := range x.Constants {
			add(c)
		}
	case *EnumConstantDecl:
		add(x.Init)
	case *StaticAssertDecl:
		add(x.Cond)
	case *FunctionTemplateDecl:
		add(x.Templated)
		for _, s := range x.Specializations {
			add(s)
		}
	case *ClassTemplateDecl:
		add(x.Templated)
		for _, s := range x.Specializations {
			add(s)
		}

	case *CompoundStmt:
		for _, s := range x.Stmts {
			add(s)
		}
	case *DeclStmt:
		addDecls(x.Decls)
	case *ReturnStmt:
		add(x.Value)
	case *IfStmt:
		add(x.Init, x.CondVar, x.Cond, x.Then, x.Else)
	case *ForStmt:
		add(x.Init, x.Cond, x.Inc, x.Body)
	case *ForRangeStmt:
		add(x.Init, x.Range, x.Begin, x.End, x.Cond, x.Inc, x.LoopVar, x.Body)
	case *WhileStmt:
		add(x.CondVar, x.Cond, x.Body)
	case *DoStmt:
		add(x.Body, x.Cond)
	case *SwitchStmt:
		add(x.Init, x.CondVar, x.Cond, x.Body)
	case *CaseStmt:
		add(x.Value, x.Sub)
	case *DefaultStmt:
		add(x.Sub)
	case *TryStmt:
		add(x.Body)
		for _, h := range x.Handlers {
			add(h)
		}
	case *CatchStmt:
		add(x.Param, x.Body)

	case *ImplicitCastExpr:
		add(x.Sub)
	case *ExplicitCastExpr:
		add(x.Sub)
	case *BinaryOperator:
		add(x.LHS, x.RHS)
	case *UnaryOperator:
		add(x.Operand)
	case *ConditionalOperator:
		add(x.Cond, x.True, x.False)
	case *ParenExpr:
		add(x.Sub)
	case *CallExpr:
		add(x.Callee)
		addExprs(x.Args)
	case *MemberCallExpr:
		add(x.Callee)
		addExprs(x.Args)
	case *OperatorCallExpr:
		addExprs(x.Args)
	case *MemberExpr:
		add(x.Base)
	case *ConstructExpr:
		addExprs(x.Args)
	case *InitListExpr:
		addExprs(x.Inits)
		add(x.Filler)
	case *MaterializeTemporaryExpr:
		add(x.Sub)
	case *ExprWithCleanups:
		add(x.Sub)
	case *BindTemporaryExpr:
		add(x.Sub)
	case *ConstantExpr:
		add(x.Sub)
	case *LambdaExpr:
		for _, c := range x.Captures {
			if c.InitExpr {
				add(c.Var)
			}
		}
		add(x.CallOp)
	case *ArraySubscriptExpr:
		add(x.Base, x.Index)
	case *NewExpr:
		addExprs(x.Placement)
		add(x.Size, x.Init)
	case *DeleteExpr:
		add(x.Arg)
	case *SizeOfExpr:
		add(x.Arg)
	case *ThrowExpr:
		add(x.Sub)
	}
	return out
}

// IsNil reports whether n is nil or an interface holding a nil pointer.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	switch x := n.(type) {
	case *CompoundStmt:
		return x == nil
	case *VarDecl:
		return x == nil
	case *ParmVarDecl:
		return x == nil
	case *FunctionDecl:
		return x == nil
	case *RecordDecl:
		return x == nil
	case *MemberExpr:
		return x == nil
	case *EnumConstantDecl:
		return x == nil
	case *CatchStmt:
		return x == nil
	}
	return false
}
