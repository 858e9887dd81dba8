package ast

import (
	"gopkg.in/yaml.v3"
)

var (
	stmtKinds map[string]func(*loader, fields) Stmt
	exprKinds map[string]func(*loader, fields) Expr
)

func init() {
	stmtKinds = map[string]func(*loader, fields) Stmt{
		"CompoundStmt": func(l *loader, f fields) Stmt {
			c := &CompoundStmt{}
			if v, ok := f.m["stmts"]; ok {
				for _, s := range v.Content {
					c.Stmts = append(c.Stmts, l.stmt(s))
				}
			}
			return c
		},
		"DeclStmt":   func(l *loader, f fields) Stmt { return &DeclStmt{Decls: l.decls(f, "decls")} },
		"ReturnStmt": func(l *loader, f fields) Stmt { return &ReturnStmt{Value: l.optExpr(f, "value")} },
		"IfStmt": func(l *loader, f fields) Stmt {
			return &IfStmt{Init: l.optStmt(f, "init"), CondVar: l.varDecl(f, "condVar"), Cond: l.optExpr(f, "cond"),
				Then: l.optStmt(f, "then"), Else: l.optStmt(f, "else"), Constexpr: l.boolean(f, "constexpr")}
		},
		"ForStmt": func(l *loader, f fields) Stmt {
			return &ForStmt{Init: l.optStmt(f, "init"), Cond: l.optExpr(f, "cond"), Inc: l.optExpr(f, "inc"), Body: l.optStmt(f, "body")}
		},
		"CXXForRangeStmt": func(l *loader, f fields) Stmt {
			return &ForRangeStmt{Loc: l.loc(f), Init: l.optStmt(f, "init"),
				Range: l.varDecl(f, "range"), Begin: l.varDecl(f, "begin"), End: l.varDecl(f, "end"),
				Cond: l.optExpr(f, "cond"), Inc: l.optExpr(f, "inc"), LoopVar: l.varDecl(f, "loopVar"),
				Body: l.optStmt(f, "body"), CXX11: l.boolean(f, "cxx11")}
		},
		"WhileStmt": func(l *loader, f fields) Stmt {
			return &WhileStmt{CondVar: l.varDecl(f, "condVar"), Cond: l.optExpr(f, "cond"), Body: l.optStmt(f, "body")}
		},
		"DoStmt": func(l *loader, f fields) Stmt {
			return &DoStmt{Body: l.optStmt(f, "body"), Cond: l.optExpr(f, "cond")}
		},
		"SwitchStmt": func(l *loader, f fields) Stmt {
			return &SwitchStmt{Init: l.optStmt(f, "init"), CondVar: l.varDecl(f, "condVar"), Cond: l.optExpr(f, "cond"), Body: l.optStmt(f, "body")}
		},
		"CaseStmt":     func(l *loader, f fields) Stmt { return &CaseStmt{Value: l.optExpr(f, "value"), Sub: l.optStmt(f, "sub")} },
		"DefaultStmt":  func(l *loader, f fields) Stmt { return &DefaultStmt{Sub: l.optStmt(f, "sub")} },
		"BreakStmt":    func(l *loader, f fields) Stmt { return &BreakStmt{} },
		"ContinueStmt": func(l *loader, f fields) Stmt { return &ContinueStmt{} },
		"NullStmt":     func(l *loader, f fields) Stmt { return &NullStmt{} },
		"CXXTryStmt": func(l *loader, f fields) Stmt {
			t := &TryStmt{Body: l.compound(f, "body")}
			if v, ok := f.m["handlers"]; ok {
				for _, h := range v.Content {
					hf := l.fields(h)
					t.Handlers = append(t.Handlers, &CatchStmt{Param: l.varDecl(hf, "param"), Body: l.compound(hf, "body")})
				}
			}
			return t
		},
	}

	exprKinds = map[string]func(*loader, fields) Expr{
		"IntegerLiteral": func(l *loader, f fields) Expr {
			return &IntegerLiteral{BaseExpr: l.exprBase(f), Value: f.str("value")}
		},
		"FloatingLiteral": func(l *loader, f fields) Expr {
			return &FloatingLiteral{BaseExpr: l.exprBase(f), Value: f.str("value")}
		},
		"StringLiteral": func(l *loader, f fields) Expr {
			return &StringLiteral{BaseExpr: l.exprBase(f), Value: f.str("value")}
		},
		"CharacterLiteral": func(l *loader, f fields) Expr {
			return &CharacterLiteral{BaseExpr: l.exprBase(f), Value: f.str("value")}
		},
		"CXXBoolLiteralExpr": func(l *loader, f fields) Expr {
			return &BoolLiteral{BaseExpr: l.exprBase(f), Value: l.boolean(f, "value")}
		},
		"CXXNullPtrLiteralExpr": func(l *loader, f fields) Expr { return &NullPtrLiteral{BaseExpr: l.exprBase(f)} },
		"DeclRefExpr": func(l *loader, f fields) Expr {
			e := &DeclRefExpr{BaseExpr: l.exprBase(f), Name: f.str("name"), Qualifier: f.str("qualifier"),
				TemplateArgs: l.templateArgs(f, "templateArgs")}
			declRef(l, f, "decl", &e.Decl)
			return e
		},
		"ImplicitCastExpr": func(l *loader, f fields) Expr {
			return &ImplicitCastExpr{BaseExpr: l.exprBase(f), CastKind: CastKind(f.str("castKind")),
				Sub: l.optExpr(f, "sub"), PartOfExplicitCast: l.boolean(f, "partOfExplicitCast")}
		},
		"ExplicitCastExpr":       explicitCast(-1),
		"CStyleCastExpr":         explicitCast(CastCStyle),
		"CXXStaticCastExpr":      explicitCast(CastStatic),
		"CXXDynamicCastExpr":     explicitCast(CastDynamic),
		"CXXReinterpretCastExpr": explicitCast(CastReinterpret),
		"CXXConstCastExpr":       explicitCast(CastConst),
		"CXXFunctionalCastExpr":  explicitCast(CastFunctional),
		"BinaryOperator":         binary,
		"CompoundAssignOperator": binary,
		"UnaryOperator": func(l *loader, f fields) Expr {
			return &UnaryOperator{BaseExpr: l.exprBase(f), Op: f.str("op"), Postfix: l.boolean(f, "postfix"), Operand: l.optExpr(f, "operand")}
		},
		"ConditionalOperator": func(l *loader, f fields) Expr {
			return &ConditionalOperator{BaseExpr: l.exprBase(f), Cond: l.optExpr(f, "cond"), True: l.optExpr(f, "true"), False: l.optExpr(f, "false")}
		},
		"ParenExpr": func(l *loader, f fields) Expr { return &ParenExpr{BaseExpr: l.exprBase(f), Sub: l.optExpr(f, "sub")} },
		"CallExpr": func(l *loader, f fields) Expr {
			return &CallExpr{BaseExpr: l.exprBase(f), Callee: l.optExpr(f, "callee"), Args: l.exprs(f, "args")}
		},
		"CXXMemberCallExpr": func(l *loader, f fields) Expr {
			e := &MemberCallExpr{BaseExpr: l.exprBase(f), Args: l.exprs(f, "args")}
			if callee := l.optExpr(f, "callee"); callee != nil {
				m, ok := callee.(*MemberExpr)
				if !ok {
					l.fail(f.m["callee"], "callee: expected MemberExpr, got %s", callee.Kind())
				}
				e.Callee = m
			}
			return e
		},
		"CXXOperatorCallExpr": func(l *loader, f fields) Expr {
			e := &OperatorCallExpr{BaseExpr: l.exprBase(f), Op: f.str("op"), Args: l.exprs(f, "args")}
			declRef(l, f, "method", &e.Method)
			return e
		},
		"MemberExpr": func(l *loader, f fields) Expr {
			e := &MemberExpr{BaseExpr: l.exprBase(f), Base: l.optExpr(f, "base"), Arrow: l.boolean(f, "arrow"), Name: f.str("name")}
			declRef(l, f, "member", &e.Member)
			return e
		},
		"CXXThisExpr": func(l *loader, f fields) Expr {
			return &ThisExpr{BaseExpr: l.exprBase(f), Implicit: l.boolean(f, "implicit")}
		},
		"CXXConstructExpr":       construct(false),
		"CXXTemporaryObjectExpr": construct(true),
		"InitListExpr": func(l *loader, f fields) Expr {
			return &InitListExpr{BaseExpr: l.exprBase(f), Inits: l.exprs(f, "inits"), Filler: l.optExpr(f, "filler")}
		},
		"ImplicitValueInitExpr": func(l *loader, f fields) Expr { return &ImplicitValueInitExpr{BaseExpr: l.exprBase(f)} },
		"MaterializeTemporaryExpr": func(l *loader, f fields) Expr {
			return &MaterializeTemporaryExpr{BaseExpr: l.exprBase(f), Sub: l.optExpr(f, "sub")}
		},
		"ExprWithCleanups": func(l *loader, f fields) Expr {
			return &ExprWithCleanups{BaseExpr: l.exprBase(f), Sub: l.optExpr(f, "sub")}
		},
		"CXXBindTemporaryExpr": func(l *loader, f fields) Expr {
			return &BindTemporaryExpr{BaseExpr: l.exprBase(f), Sub: l.optExpr(f, "sub")}
		},
		"ConstantExpr": func(l *loader, f fields) Expr {
			return &ConstantExpr{BaseExpr: l.exprBase(f), Sub: l.optExpr(f, "sub"), Value: f.str("value"), HasValue: f.has("value")}
		},
		"LambdaExpr": func(l *loader, f fields) Expr { return l.lambda(f) },
		"ArraySubscriptExpr": func(l *loader, f fields) Expr {
			return &ArraySubscriptExpr{BaseExpr: l.exprBase(f), Base: l.optExpr(f, "base"), Index: l.optExpr(f, "index")}
		},
		"CXXNewExpr": func(l *loader, f fields) Expr {
			return &NewExpr{BaseExpr: l.exprBase(f), Alloc: l.typeField(f, "alloc"), Array: l.boolean(f, "array"),
				Size: l.optExpr(f, "size"), Init: l.optExpr(f, "init"), Placement: l.exprs(f, "placement")}
		},
		"CXXDeleteExpr": func(l *loader, f fields) Expr {
			return &DeleteExpr{BaseExpr: l.exprBase(f), Array: l.boolean(f, "array"), Arg: l.optExpr(f, "arg")}
		},
		"UnaryExprOrTypeTraitExpr": func(l *loader, f fields) Expr {
			e := &SizeOfExpr{BaseExpr: l.exprBase(f), Arg: l.optExpr(f, "arg"), AlignOf: f.str("trait") == "alignof"}
			if f.has("argType") {
				e.ArgType = l.typeField(f, "argType")
			}
			return e
		},
		"CXXDefaultArgExpr": func(l *loader, f fields) Expr {
			e := &DefaultArgExpr{BaseExpr: l.exprBase(f)}
			declRef(l, f, "param", &e.Param)
			return e
		},
		"CXXDefaultInitExpr": func(l *loader, f fields) Expr {
			e := &DefaultInitExpr{BaseExpr: l.exprBase(f)}
			declRef(l, f, "field", &e.Field)
			return e
		},
		"CXXThrowExpr": func(l *loader, f fields) Expr { return &ThrowExpr{BaseExpr: l.exprBase(f), Sub: l.optExpr(f, "sub")} },
	}
}

var castStyles = map[string]CastStyle{
	"c": CastCStyle, "static": CastStatic, "dynamic": CastDynamic,
	"reinterpret": CastReinterpret, "const": CastConst, "functional": CastFunctional,
}

func explicitCast(style CastStyle) func(*loader, fields) Expr {
	return func(l *loader, f fields) Expr {
		e := &ExplicitCastExpr{BaseExpr: l.exprBase(f), Style: style, CastKind: CastKind(f.str("castKind")), Sub: l.optExpr(f, "sub")}
		if style < 0 {
			s, ok := castStyles[f.str("style")]
			if !ok {
				l.fail(f.node, "unknown cast style %q", f.str("style"))
			}
			e.Style = s
		}
		return e
	}
}

func binary(l *loader, f fields) Expr {
	return &BinaryOperator{BaseExpr: l.exprBase(f), Op: f.str("op"), LHS: l.optExpr(f, "lhs"), RHS: l.optExpr(f, "rhs")}
}

func construct(temporary bool) func(*loader, fields) Expr {
	return func(l *loader, f fields) Expr {
		e := &ConstructExpr{BaseExpr: l.exprBase(f), Args: l.exprs(f, "args"), List: l.boolean(f, "list"),
			Temporary: temporary || l.boolean(f, "temporary"), Elidable: l.boolean(f, "elidable")}
		declRef(l, f, "ctor", &e.Ctor)
		return e
	}
}

func (l *loader) exprBase(f fields) BaseExpr {
	if !f.has("type") {
		return BaseExpr{}
	}
	return BaseExpr{Type: l.typeField(f, "type")}
}

var captureKinds = map[string]CaptureKind{
	"copy": CaptureByCopy, "ref": CaptureByRef, "this": CaptureThis, "*this": CaptureStarThis,
}

func (l *loader) lambda(f fields) *LambdaExpr {
	e := &LambdaExpr{BaseExpr: l.exprBase(f), Loc: l.loc(f), Mutable: l.boolean(f, "mutable"), Generic: l.boolean(f, "generic")}
	switch f.str("default") {
	case "", "none":
	case "copy", "=":
		e.Default = CaptureDefaultCopy
	case "ref", "&":
		e.Default = CaptureDefaultRef
	default:
		l.fail(f.m["default"], "unknown capture default %q", f.str("default"))
	}
	if v, ok := f.m["captures"]; ok {
		e.Captures = make([]LambdaCapture, len(v.Content))
		for i, c := range v.Content {
			cf := l.fields(c)
			kind, ok := captureKinds[cf.str("kind")]
			if !ok {
				l.fail(c, "unknown capture kind %q", cf.str("kind"))
			}
			e.Captures[i] = LambdaCapture{Kind: kind, InitExpr: l.boolean(cf, "init"), Implicit: l.boolean(cf, "implicit"),
				Type: l.typeField(cf, "type")}
			declRef(l, cf, "var", &e.Captures[i].Var)
		}
	}
	declRef(l, f, "class", &e.Class)
	declRef(l, f, "callOp", &e.CallOp)
	if e.Class == nil && !f.has("class") {
		e.Class = &RecordDecl{BaseDecl: BaseDecl{Loc: e.Loc, Implicit: true}, Tag: TagClass, Lambda: true, Complete: true}
	}
	if e.CallOp != nil && e.CallOp.Parent == nil && e.Class != nil {
		e.CallOp.Parent = e.Class
	}
	return e
}

var typeKinds = map[string]TypeKind{
	"builtin": TypeBuiltin, "record": TypeRecord, "enum": TypeEnum, "pointer": TypePointer,
	"lref": TypeLValueRef, "rref": TypeRValueRef, "array": TypeArray, "incomplete_array": TypeIncompleteArray,
	"function": TypeFunction, "typedef": TypeTypedef, "param": TypeTemplateParam, "auto": TypeAuto,
}

func (l *loader) typeField(f fields, key string) *Type {
	v, ok := f.m[key]
	if !ok {
		return nil
	}
	return l.typ(v)
}

// typ decodes a type. A scalar is shorthand for a builtin type.
func (l *loader) typ(n *yaml.Node) *Type {
	if l.err != nil || n == nil {
		return nil
	}
	if n.Kind == yaml.ScalarNode {
		return &Type{Kind: TypeBuiltin, Name: n.Value}
	}
	f := l.fields(n)
	kind, ok := typeKinds[f.str("kind")]
	if !ok {
		l.fail(n, "unknown type kind %q", f.str("kind"))
		return nil
	}
	t := &Type{
		Kind:     kind,
		Name:     f.str("name"),
		Const:    l.boolean(f, "const"),
		Volatile: l.boolean(f, "volatile"),
		Elem:     l.typeField(f, "elem"),
		Size:     l.integer(f, "size"),
		Variadic: l.boolean(f, "variadic"),
		Args:     l.templateArgs(f, "args"),
	}
	if kind == TypeAuto && f.has("deduced") {
		t.Elem = l.typeField(f, "deduced")
	}
	if v, ok := f.m["params"]; ok {
		for _, p := range v.Content {
			t.Params = append(t.Params, l.typ(p))
		}
	}
	if f.has("record") {
		declRef(l, f, "record", &t.Record)
		l.fixups = append(l.fixups, func() {
			if t.Record != nil && t.Name == "" {
				t.Name = t.Record.Name
			}
		})
	}
	return t
}

var argKinds = map[string]TemplateArgKind{
	"type": ArgType, "integral": ArgIntegral, "expr": ArgExpression, "pack": ArgPack,
	"nullptr": ArgNullPtr, "decl": ArgDeclaration, "template": ArgTemplate,
}

func (l *loader) templateArgs(f fields, key string) []TemplateArgument {
	v, ok := f.m[key]
	if !ok {
		return nil
	}
	return l.templateArgList(v)
}

func (l *loader) templateArgList(v *yaml.Node) []TemplateArgument {
	if v.Kind != yaml.SequenceNode {
		l.fail(v, "template arguments: expected a list")
		return nil
	}
	out := make([]TemplateArgument, len(v.Content))
	for i, a := range v.Content {
		if a.Kind == yaml.ScalarNode {
			out[i] = TemplateArgument{Kind: ArgType, Type: l.typ(a)}
			continue
		}
		af := l.fields(a)
		kind, ok := argKinds[af.str("kind")]
		if !ok {
			l.fail(a, "unknown template argument kind %q", af.str("kind"))
			return nil
		}
		arg := TemplateArgument{Kind: kind, Value: af.str("value"), Name: af.str("name")}
		if af.has("type") {
			arg.Type = l.typeField(af, "type")
		}
		arg.Expr = l.optExpr(af, "expr")
		if p, ok := af.m["pack"]; ok {
			arg.Pack = l.templateArgList(p)
		}
		out[i] = arg
		declRef(l, af, "decl", &out[i].Decl)
	}
	return out
}
