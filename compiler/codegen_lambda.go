package compiler

import (
	"strings"

	"github.com/rubiojr/insights/ast"
)

// insertLambda replaces a lambda expression with an object of its closure
// class. The class itself goes to the innermost lambda frame, which
// places it in front of the statement using it. Without a frame, or when
// the innermost frame is the buffer being written, the lambda opens its
// own.
func (g *Generator) insertLambda(e *ast.LambdaExpr) {
	if top := g.lambdas.back(); top == nil || top.buf == g.out {
		scope := g.lambdaScope(LambdaCallerLambdaExpr)
		defer scope.Close()
	}
	frame := g.lambdas.back()
	name := closureName(e)

	g.insertClosureClass(e, frame, name)
	g.out.Append(name, "{")
	frame.insertInits(g.out)
	g.out.Append("}")
}

func closureName(e *ast.LambdaExpr) string {
	if e.Class != nil && e.Class.Loc != (ast.Loc{}) {
		return recordName(e.Class)
	}
	return lambdaName(e.Loc)
}

// capturedMember is what one capture contributes to the closure class
// and to the expression creating the closure object.
type capturedMember struct {
	field string // data member declaration
	param string // constructor parameter
	init  string // member initializer
	use   string // constructor argument at the use site
}

func lvalueRef(t *ast.Type) *ast.Type {
	return &ast.Type{Kind: ast.TypeLValueRef, Elem: t}
}

// stripRef returns the referenced type of a reference, t otherwise.
func stripRef(t *ast.Type) *ast.Type {
	if t != nil && (t.Kind == ast.TypeLValueRef || t.Kind == ast.TypeRValueRef) {
		return t.Elem
	}
	return t
}

func (g *Generator) capturedMember(c ast.LambdaCapture) capturedMember {
	switch c.Kind {
	case ast.CaptureThis:
		ptr := &ast.Type{Kind: ast.TypePointer, Elem: c.Type}
		return capturedMember{
			field: g.declarator(ptr, "__this"),
			param: g.declarator(ptr, "_this"),
			init:  "__this{_this}",
			use:   "this",
		}
	case ast.CaptureStarThis:
		return capturedMember{
			field: g.declarator(c.Type, "__this"),
			param: g.declarator(lvalueRef(c.Type), "_this"),
			init:  "__this{_this}",
			use:   "*this",
		}
	}

	name := c.Var.Name
	base := stripRef(c.Var.Type)
	m := capturedMember{
		init: name + "{_" + name + "}",
		use:  name,
	}
	if c.Kind == ast.CaptureByRef {
		m.field = g.declarator(lvalueRef(base), name)
		m.param = g.declarator(lvalueRef(base), "_"+name)
	} else {
		m.field = g.declarator(base, name)
		m.param = g.declarator(lvalueRef(base), "_"+name)
	}
	if c.InitExpr && c.Var.Init != nil {
		if c.Kind == ast.CaptureByCopy {
			m.param = g.declarator(base, "_"+name)
		}
		m.use = g.out.Capture(func() { g.InsertArg(c.Var.Init) })
	}
	return m
}

// insertClosureClass writes the class of e into frame and queues the
// constructor arguments for the use site.
func (g *Generator) insertClosureClass(e *ast.LambdaExpr, frame *lambdaFrame, name string) {
	// Captures first: a lambda inside an init-capture needs its class
	// defined before this one.
	members := make([]capturedMember, 0, len(e.Captures))
	copied := false
	for _, c := range e.Captures {
		members = append(members, g.capturedMember(c))
		if c.Kind == ast.CaptureStarThis {
			copied = true
		}
	}

	out := frame.buf
	lg := g.child(out, Flags{SkipAccess: true, ShowConstantExprValue: g.flags.ShowConstantExprValue}, lambdaRules{copied: copied})

	out.AppendNewLine("class ", name)
	out.OpenScope()
	out.AppendNewLine("public: ")
	op := lg.callOperator(e)
	lg.insertFunction(op)
	out.NewLine()

	if len(e.Captures) == 0 && !e.Generic {
		lg.insertInvoker(e, op, name)
	}

	if len(members) > 0 {
		out.AppendNewLine("private: ")
		for _, m := range members {
			out.AppendSemiNewLine(m.field)
		}
		out.NewLine()
		out.AppendNewLine("public: ")
		params := make([]string, len(members))
		inits := make([]string, len(members))
		for i, m := range members {
			params[i] = m.param
			inits[i] = m.init
		}
		out.AppendNewLine(name, "(", strings.Join(params, ", "), ")")
		out.AppendNewLine(": ", strings.Join(inits, ", "))
		out.AppendNewLine("{}")
		out.NewLine()
	}

	out.CloseScopeWithSemi()
	out.NewLine()
	out.NewLine()

	for _, m := range members {
		frame.addInit(m.use)
	}
}

// callOperator returns the closure's function call operator as it is
// declared in the class.
func (g *Generator) callOperator(e *ast.LambdaExpr) *ast.FunctionDecl {
	op := *e.CallOp
	op.Name = "operator()"
	op.FuncKind = ast.FuncMethod
	op.Inline = true
	op.Const = !e.Mutable
	op.Access = ast.AccessNone
	op.Specialized = false
	if op.Return == nil {
		op.Return = &ast.Type{Kind: ast.TypeAuto}
	}
	if e.Generic {
		if params := genericParams(op.Params); len(params) > 0 {
			g.out.AppendNewLine(g.templateParams(params))
		}
	}
	return &op
}

// genericParams collects the invented template parameters of a generic
// lambda from its parameter types.
func genericParams(params []*ast.ParmVarDecl) []ast.TemplateParam {
	var out []ast.TemplateParam
	seen := make(map[string]bool)
	for _, p := range params {
		for t := p.Type; t != nil; t = t.Elem {
			if t.Kind == ast.TypeTemplateParam && !seen[t.Name] {
				seen[t.Name] = true
				out = append(out, ast.TemplateParam{Name: t.Name})
			}
		}
	}
	return out
}

// insertInvoker adds what makes a captureless lambda convertible to a
// function pointer: the conversion operator and the static function it
// returns.
func (g *Generator) insertInvoker(e *ast.LambdaExpr, op *ast.FunctionDecl, name string) {
	out := g.out
	retType := retTypeName(e.Loc)

	paramTypes := make([]*ast.Type, len(op.Params))
	args := make([]string, len(op.Params))
	for i, p := range op.Params {
		paramTypes[i] = p.Type
		args[i] = p.Name
	}
	fn := &ast.Type{Kind: ast.TypePointer, Elem: &ast.Type{Kind: ast.TypeFunction, Elem: op.Return, Params: paramTypes, Variadic: op.Variadic}}

	out.AppendSemiNewLine("using ", retType, " = ", g.typeName(fn))
	out.AppendNewLine("inline constexpr operator ", retType, " () const noexcept")
	out.OpenScope()
	out.AppendSemiNewLine("return __invoke")
	out.CloseScopeWithSemi()
	out.NewLine()
	out.NewLine()

	out.AppendNewLine("private: ")
	out.AppendNewLine("static inline ", g.declarator(op.Return, "__invoke("+g.params(op)+")"))
	out.OpenScope()
	call := name + "{}.operator()(" + strings.Join(args, ", ") + ")"
	if isVoid(op.Return) {
		out.AppendSemiNewLine(call)
	} else {
		out.AppendSemiNewLine("return ", call)
	}
	out.CloseScope()
	out.NewLine()
	out.NewLine()
}

func isVoid(t *ast.Type) bool {
	c := t.Canonical()
	return c != nil && c.Kind == ast.TypeBuiltin && c.Name == "void"
}
