package compiler

import (
	"strings"

	"github.com/rubiojr/insights/ast"
)

// insertDecls renders a declaration context, one blank line between
// declarations.
func (g *Generator) insertDecls(decls []ast.Decl) {
	first := true
	for _, d := range decls {
		if silent(d) {
			continue
		}
		if !first {
			g.out.NewLine()
		}
		first = false
		g.InsertArg(d)
		if !g.out.atLineStart() {
			g.out.NewLine()
		}
	}
}

// silent reports declarations that produce no text at declaration scope.
func silent(d ast.Decl) bool {
	switch x := d.(type) {
	case *ast.EmptyDecl, *ast.UnknownNode:
		return true
	case *ast.FunctionDecl:
		return x.Implicit
	case *ast.RecordDecl:
		return x.Implicit
	}
	return false
}

func (g *Generator) insertNamespace(n *ast.NamespaceDecl) {
	if n.Inline {
		g.out.Append("inline ")
	}
	g.out.Append("namespace")
	if n.Name != "" {
		g.out.Append(" ", n.Name)
		g.pass.pushScope(n.Name)
		defer g.pass.popScope()
	}
	g.out.NewLine()
	g.out.OpenScope()
	g.insertDecls(n.Decls)
	g.out.NewLine()
	g.out.CloseScope()
	g.out.NewLine()
}

func (g *Generator) insertVarDecl(v *ast.VarDecl) {
	scope := g.lambdaScope(LambdaCallerVarDecl)
	defer scope.Close()

	if needsGuard(v) {
		g.insertGuardedStatic(v)
		return
	}

	if g.rules.insertComma() {
		g.out.Append(", ")
	}
	if !g.flags.SkipVarDecl && g.rules.insertVarDecl() {
		g.out.Append(varSpecifiers(g, v), g.declarator(v.Type, v.Name))
	} else {
		g.out.Append(g.declaratorOnly(v.Type, v.Name))
	}

	if v.Init != nil {
		g.out.Append(" = ")
		g.insertInit(v.Init, v.InitStyle == ast.InitList)
	}

	switch {
	case g.flags.SkipVarDecl:
	case g.flags.UseCommaInsteadOfSemi:
		g.out.Append(", ")
	case g.rules.insertSemi():
		g.out.AppendSemiNewLine()
	}
}

func varSpecifiers(g *Generator, v *ast.VarDecl) string {
	var sb strings.Builder
	if v.AlignAs != nil {
		sb.WriteString("alignas(" + g.typeName(v.AlignAs) + ") ")
	}
	switch v.Storage {
	case ast.StorageStatic:
		sb.WriteString("static ")
	case ast.StorageExtern:
		sb.WriteString("extern ")
	}
	if v.ThreadLocal {
		sb.WriteString("thread_local ")
	}
	if v.Inline {
		sb.WriteString("inline ")
	}
	if v.Constexpr {
		sb.WriteString("constexpr ")
	}
	return sb.String()
}

// declaratorOnly renders the declarator of t without the type it starts
// from, for the second and later names of one declaration.
func (g *Generator) declaratorOnly(t *ast.Type, name string) string {
	full := g.declarator(t, name)
	base := g.typeName(innermostType(t))
	return strings.TrimSpace(strings.TrimPrefix(full, base))
}

func innermostType(t *ast.Type) *ast.Type {
	for t != nil && t.Elem != nil {
		switch t.Kind {
		case ast.TypePointer, ast.TypeLValueRef, ast.TypeRValueRef,
			ast.TypeArray, ast.TypeIncompleteArray, ast.TypeFunction:
			t = t.Elem
		default:
			return t
		}
	}
	return t
}

// insertInit renders an initializer. List initialization keeps its
// braces unless the initializer brings its own.
func (g *Generator) insertInit(init ast.Expr, list bool) {
	if !list || bracedInit(init) {
		g.InsertArg(init)
		return
	}
	g.out.Append("{")
	g.InsertArg(init)
	g.out.Append("}")
}

func bracedInit(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.InitListExpr, *ast.ParenExpr, *ast.DefaultArgExpr:
		return true
	case *ast.ConstructExpr:
		return x.List
	case *ast.ExprWithCleanups:
		return bracedInit(x.Sub)
	}
	return false
}

func (g *Generator) param(p *ast.ParmVarDecl) string {
	s := g.declarator(p.Type, p.Name)
	if p.Default != nil {
		s += " = " + g.out.Capture(func() { g.InsertArg(p.Default) })
	}
	return s
}

// params renders a parameter list. An inheriting constructor has the
// parameters of the constructor it inherits.
func (g *Generator) params(f *ast.FunctionDecl) string {
	src := f.Params
	variadic := f.Variadic
	if f.Inherited != nil {
		src = f.Inherited.Params
		variadic = f.Inherited.Variadic
	}
	parts := make([]string, 0, len(src)+1)
	for _, p := range src {
		parts = append(parts, g.param(p))
	}
	if variadic {
		parts = append(parts, "...")
	}
	return strings.Join(parts, ", ")
}

// functionHeader renders everything of a function declaration up to the
// body: specifiers, return type, name, parameters and trailing
// qualifiers.
func (g *Generator) functionHeader(f *ast.FunctionDecl) string {
	var sb strings.Builder
	if f.Specialized {
		sb.WriteString("template<>\n")
	}
	if f.Inline {
		sb.WriteString("inline ")
	}
	switch f.Storage {
	case ast.StorageStatic:
		sb.WriteString("static ")
	case ast.StorageExtern:
		sb.WriteString("extern ")
	}
	if f.Virtual {
		sb.WriteString("virtual ")
	}
	if f.Explicit {
		sb.WriteString("explicit ")
	}
	if f.Consteval {
		sb.WriteString("consteval ")
	} else if f.Constexpr {
		sb.WriteString("constexpr ")
	}

	name := g.pass.removeCurrentScope(f.Qualifier) + g.functionName(f)
	if f.Specialized && len(f.TemplateArgs) > 0 {
		name += g.templateArgs(f.TemplateArgs)
	}
	sig := name + "(" + g.params(f) + ")"
	switch f.FuncKind {
	case ast.FuncConstructor, ast.FuncDestructor, ast.FuncConversion:
		sb.WriteString(sig)
	default:
		sb.WriteString(g.declarator(f.Return, sig))
	}

	if f.Const {
		sb.WriteString(" const")
	}
	if f.Noexcept {
		sb.WriteString(" noexcept")
	}
	if f.Override {
		sb.WriteString(" override")
	}
	if f.Defaulted {
		sb.WriteString(" = default")
	} else if f.Deleted {
		sb.WriteString(" = delete")
	}
	return sb.String()
}

func (g *Generator) insertFunction(f *ast.FunctionDecl) {
	scope := g.lambdaScope(LambdaCallerMethodDecl)
	defer scope.Close()

	if f.Parent != nil && f.Access != ast.AccessNone && !g.flags.SkipAccess {
		g.out.AppendNewLine(f.Access.String(), ": ")
	}
	g.out.Append(g.functionHeader(f))

	if f.Body == nil || f.Defaulted || f.Deleted {
		g.out.AppendSemiNewLine()
		return
	}
	g.out.NewLine()
	if len(f.Inits) > 0 {
		g.out.Append(": ")
		for i, init := range f.Inits {
			if i > 0 {
				g.out.Append(", ")
			}
			g.insertCtorInit(init)
		}
		g.out.NewLine()
	}
	scope.Close()

	g.insertCompound(f.Body)
	g.out.NewLine()
}

func (g *Generator) insertCtorInit(init *ast.CtorInitializer) {
	name := init.Member
	if name == "" {
		name = g.typeName(init.Base)
	}
	g.out.Append(name)
	switch x := init.Init.(type) {
	case *ast.InitListExpr:
		g.InsertArg(x)
	case *ast.ConstructExpr:
		g.out.Append("{")
		g.insertArgs(x.Args)
		g.out.Append("}")
	case nil:
		g.out.Append("{}")
	default:
		g.out.Append("{")
		g.InsertArg(x)
		g.out.Append("}")
	}
}

func (g *Generator) insertRecord(r *ast.RecordDecl) {
	name := recordName(r)
	if r.Specialized && len(r.TemplateArgs) > 0 {
		name += g.templateArgs(r.TemplateArgs)
	}
	if !r.Complete {
		g.out.AppendSemiNewLine(r.Tag.String(), " ", name)
		return
	}
	if r.Specialized {
		g.out.AppendNewLine("template<>")
	}
	g.out.Append(r.Tag.String(), " ", name)
	for i, b := range r.Bases {
		if i == 0 {
			g.out.Append(" : ")
		} else {
			g.out.Append(", ")
		}
		if b.Access != ast.AccessNone {
			g.out.Append(b.Access.String(), " ")
		}
		if b.Virtual {
			g.out.Append("virtual ")
		}
		g.out.Append(g.typeName(b.Type))
	}
	g.out.NewLine()
	g.out.OpenScope()

	g.pass.pushScope(name)
	for _, d := range r.Decls {
		g.insertRecordMember(d)
	}
	g.pass.popScope()

	g.out.CloseScopeWithSemi()
	g.out.NewLine()
}

func (g *Generator) insertRecordMember(d ast.Decl) {
	switch m := d.(type) {
	case *ast.FunctionDecl:
		if m.Implicit {
			g.insertImplicitMember(m)
			return
		}
		g.insertFunction(m)
		if m.Body != nil && !m.Defaulted && !m.Deleted {
			g.out.NewLine()
		}
		return
	case *ast.RecordDecl:
		if m.Implicit {
			return
		}
	case *ast.FieldDecl:
		if m.Implicit {
			return
		}
	}
	g.InsertArg(d)
	if !g.out.atLineStart() {
		g.out.NewLine()
	}
}

// insertImplicitMember shows a special member the compiler declared as a
// comment, since it has no source of its own.
func (g *Generator) insertImplicitMember(f *ast.FunctionDecl) {
	g.out.AppendNewLine("// ", g.functionHeader(f), ";")
}

func (g *Generator) insertField(f *ast.FieldDecl) {
	if f.Static {
		g.out.Append("static ")
	}
	if f.Mutable {
		g.out.Append("mutable ")
	}
	g.out.Append(g.declarator(f.Type, f.Name))
	if f.Init != nil {
		g.out.Append(" = ")
		g.InsertArg(f.Init)
	}
	g.out.AppendSemiNewLine()
}

func (g *Generator) insertTypedef(t *ast.TypedefDecl) {
	if t.Alias {
		g.out.AppendSemiNewLine("using ", t.Name, " = ", g.typeName(t.Type))
		return
	}
	g.out.AppendSemiNewLine("typedef ", g.declarator(t.Type, t.Name))
}

func (g *Generator) insertEnum(e *ast.EnumDecl) {
	g.out.Append("enum")
	if e.Scoped {
		g.out.Append(" class")
	}
	if e.Name != "" {
		g.out.Append(" ", e.Name)
	}
	if e.Underlying != nil {
		g.out.Append(" : ", g.typeName(e.Underlying))
	}
	g.out.NewLine()
	g.out.OpenScope()
	for i, c := range e.Constants {
		if i > 0 {
			g.out.AppendNewLine(",")
		}
		g.insertEnumConstant(c)
	}
	g.out.CloseScopeWithSemi()
	g.out.NewLine()
}

func (g *Generator) insertEnumConstant(c *ast.EnumConstantDecl) {
	g.out.Append(c.Name)
	if c.Init != nil {
		g.out.Append(" = ")
		g.InsertArg(c.Init)
	}
}

// insertStaticAssert shows an assertion that held; a failing one never
// reaches the generator.
func (g *Generator) insertStaticAssert(s *ast.StaticAssertDecl) {
	g.out.Append("/* PASSED: static_assert(")
	g.InsertArg(s.Cond)
	if s.Message != "" {
		g.out.Append(`, "`, s.Message, `"`)
	}
	g.out.AppendNewLine("); */")
}

func (g *Generator) templateParams(params []ast.TemplateParam) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		kind := "typename"
		if p.NonType != nil {
			kind = g.typeName(p.NonType)
		}
		if p.Pack {
			kind += "..."
		}
		parts = append(parts, kind+" "+p.Name)
	}
	return "template<" + strings.Join(parts, ", ") + ">"
}

// insertFunctionTemplate renders the primary template followed by its
// specializations. Instantiations are guarded so the output still
// compiles when the compiler instantiates them again.
func (g *Generator) insertFunctionTemplate(t *ast.FunctionTemplateDecl) {
	g.out.AppendNewLine(g.templateParams(t.Params))
	g.insertFunction(t.Templated)
	for _, spec := range t.Specializations {
		g.out.NewLine()
		if !spec.Explicitly {
			g.out.AppendNewLine("#ifdef INSIGHTS_USE_TEMPLATE")
		}
		g.insertFunction(spec)
		if !spec.Explicitly {
			g.out.AppendNewLine("#endif")
		}
	}
}

func (g *Generator) insertClassTemplate(t *ast.ClassTemplateDecl) {
	g.out.AppendNewLine(g.templateParams(t.Params))
	g.insertRecord(t.Templated)
	for _, spec := range t.Specializations {
		g.out.NewLine()
		g.insertRecord(spec)
	}
}
