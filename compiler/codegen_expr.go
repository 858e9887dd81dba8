package compiler

import (
	"strconv"
	"strings"

	"github.com/rubiojr/insights/ast"
)

// maxArrayFill caps how many values an initializer list shows for a
// large array before the rest is summarized in a comment.
const maxArrayFill = 100

func (g *Generator) insertFloating(x *ast.FloatingLiteral) {
	v := x.Value
	if !strings.ContainsAny(v, ".eEpxX") && !strings.Contains(v, "inf") && !strings.Contains(v, "nan") {
		v += ".0"
	}
	g.out.Append(v, floatingSuffix(x.Type))
}

func (g *Generator) insertDeclRef(x *ast.DeclRefExpr) {
	if v, ok := x.Decl.(*ast.VarDecl); ok && needsGuard(v) {
		g.InsertArg(g.guardedStaticRef(v))
		return
	}

	name := x.Name
	if x.Decl != nil {
		if n := g.declName(x.Decl); n != "" {
			name = n
		}
	}
	if x.Qualifier != "" {
		name = g.pass.removeCurrentScope(x.Qualifier+name)
	}
	g.out.Append(name)
	if len(x.TemplateArgs) > 0 {
		g.out.Append(g.templateArgs(x.TemplateArgs))
	}
}

// shownCasts are the implicit conversions that change the value or its
// representation. The others only matter with ShowAllImplicitCasts.
var shownCasts = map[ast.CastKind]bool{
	"IntegralCast":           true,
	"IntegralToBoolean":      true,
	"IntegralToPointer":      true,
	"PointerToIntegral":      true,
	"BitCast":                true,
	"UncheckedDerivedToBase": true,
	"DerivedToBase":          true,
	"BaseToDerived":          true,
	"UserDefinedConversion":  true,
	"FloatingCast":           true,
	"IntegralToFloating":     true,
	"FloatingToIntegral":     true,
	"FloatingToBoolean":      true,
	"PointerToBoolean":       true,
	"ToUnion":                true,
	"AtomicToNonAtomic":      true,
	"NonAtomicToAtomic":      true,
}

var reinterpretCasts = map[ast.CastKind]bool{
	"BitCast":           true,
	"IntegralToPointer": true,
	"PointerToIntegral": true,
}

func (g *Generator) castShown(x *ast.ImplicitCastExpr) bool {
	if x.PartOfExplicitCast {
		return false
	}
	return shownCasts[x.CastKind] || g.pass.opts.ShowAllImplicitCasts
}

func (g *Generator) insertImplicitCast(x *ast.ImplicitCastExpr) {
	if !g.castShown(x) {
		g.InsertArg(x.Sub)
		return
	}
	name := "static_cast"
	if reinterpretCasts[x.CastKind] {
		name = "reinterpret_cast"
	}
	g.insertNamedCast(name, x.Type, x.Sub)
}

func (g *Generator) insertNamedCast(name string, t *ast.Type, sub ast.Expr) {
	g.out.Append(name, "<", g.typeName(t), ">(")
	g.InsertArg(sub)
	g.out.Append(")")
}

// insertExplicitCast renders every cast with the named cast that has the
// same effect.
func (g *Generator) insertExplicitCast(x *ast.ExplicitCastExpr) {
	switch x.Style {
	case ast.CastStatic:
		g.insertNamedCast("static_cast", x.Type, x.Sub)
	case ast.CastDynamic:
		g.insertNamedCast("dynamic_cast", x.Type, x.Sub)
	case ast.CastReinterpret:
		g.insertNamedCast("reinterpret_cast", x.Type, x.Sub)
	case ast.CastConst:
		g.insertNamedCast("const_cast", x.Type, x.Sub)
	case ast.CastFunctional:
		switch sub := skipCleanups(x.Sub).(type) {
		case *ast.ConstructExpr:
			g.InsertArg(sub)
		case *ast.InitListExpr:
			g.out.Append(g.typeName(x.Type))
			g.InsertArg(sub)
		default:
			g.out.Append(g.typeName(x.Type), "(")
			g.InsertArg(x.Sub)
			g.out.Append(")")
		}
	default:
		name := "static_cast"
		switch {
		case reinterpretCasts[x.CastKind]:
			name = "reinterpret_cast"
		case x.CastKind == "NoOp":
			name = "const_cast"
		}
		g.insertNamedCast(name, x.Type, x.Sub)
	}
}

func skipCleanups(e ast.Expr) ast.Expr {
	for {
		switch x := e.(type) {
		case *ast.ExprWithCleanups:
			e = x.Sub
		case *ast.MaterializeTemporaryExpr:
			e = x.Sub
		case *ast.BindTemporaryExpr:
			e = x.Sub
		default:
			return e
		}
	}
}

func (g *Generator) insertBinary(x *ast.BinaryOperator) {
	scope := g.lambdaScope(LambdaCallerBinaryOperator)
	defer scope.Close()

	g.InsertArg(x.LHS)
	if x.Op == "," {
		g.out.Append(", ")
	} else {
		g.out.Append(" ", x.Op, " ")
	}
	g.InsertArg(x.RHS)
}

func (g *Generator) insertUnary(x *ast.UnaryOperator) {
	if x.Postfix {
		g.insertWithParens(posUnaryOperand, x.Operand)
		g.out.Append(x.Op)
		return
	}
	g.out.Append(x.Op)
	if isWordOperator(x.Op) {
		g.out.Append(" ")
	}
	g.insertUnaryOperand(x)
}

func isWordOperator(op string) bool {
	return op != "" && (op[0] >= 'a' && op[0] <= 'z' || op[0] == '_')
}

// insertUnaryOperand keeps "- -x" from turning into a decrement.
func (g *Generator) insertUnaryOperand(x *ast.UnaryOperator) {
	if inner, ok := g.visible(x.Operand).(*ast.UnaryOperator); ok && !inner.Postfix &&
		inner.Op != "" && x.Op != "" && inner.Op[0] == x.Op[len(x.Op)-1] && (x.Op == "-" || x.Op == "+") {
		g.out.Append("(")
		g.InsertArg(x.Operand)
		g.out.Append(")")
		return
	}
	g.insertWithParens(posUnaryOperand, x.Operand)
}

func (g *Generator) insertCall(x *ast.CallExpr) {
	scope := g.lambdaScope(LambdaCallerCallExpr)
	defer scope.Close()

	g.insertWithParens(posCallee, x.Callee)
	g.out.Append("(")
	g.insertArgs(x.Args)
	g.out.Append(")")
}

func (g *Generator) insertMemberCall(x *ast.MemberCallExpr) {
	scope := g.lambdaScope(LambdaCallerMemberCallExpr)
	defer scope.Close()

	g.insertMember(x.Callee)
	g.out.Append("(")
	g.insertArgs(x.Args)
	g.out.Append(")")
}

func operatorName(op string) string {
	if isWordOperator(op) {
		return "operator " + op
	}
	return "operator" + op
}

// insertOperatorCall spells an overloaded operator as the call it is: a
// member call on the first operand, or a call of the free function.
func (g *Generator) insertOperatorCall(x *ast.OperatorCallExpr) {
	scope := g.lambdaScope(LambdaCallerOperatorCallExpr)
	defer scope.Close()

	if x.Method != nil && x.Method.IsMethod() && len(x.Args) > 0 {
		g.insertWithParens(posMemberBase, x.Args[0])
		g.out.Append(".", operatorName(x.Op), "(")
		g.insertArgs(x.Args[1:])
		g.out.Append(")")
		return
	}
	g.out.Append(operatorName(x.Op), "(")
	g.insertArgs(x.Args)
	g.out.Append(")")
}

func (g *Generator) insertMember(x *ast.MemberExpr) {
	g.insertWithParens(posMemberBase, x.Base)
	arrow := x.Arrow
	if this, ok := x.Base.(*ast.ThisExpr); ok && this.Implicit {
		arrow = true
	}
	if arrow {
		g.out.Append("->")
	} else {
		g.out.Append(".")
	}
	name := x.Name
	if x.Member != nil {
		if n := g.declName(x.Member); n != "" {
			name = n
		}
	}
	g.out.Append(name)
}

// insertConstruct renders a constructor call with the class name, so
// implicit copies and conversions become visible.
func (g *Generator) insertConstruct(x *ast.ConstructExpr) {
	if x.Elidable && len(x.Args) == 1 {
		g.InsertArg(x.Args[0])
		return
	}
	g.out.Append(g.constructedType(x))
	if x.List {
		g.out.Append("{")
		g.withFlags(func(f *Flags) { f.NoEmptyInitList = true }).insertArgs(x.Args)
		g.out.Append("}")
		return
	}
	g.out.Append("(")
	g.insertArgs(x.Args)
	g.out.Append(")")
}

func (g *Generator) constructedType(x *ast.ConstructExpr) string {
	if x.Type != nil {
		return g.typeName(x.Type)
	}
	if x.Ctor != nil && x.Ctor.Parent != nil {
		return g.pass.removeCurrentScope(recordName(x.Ctor.Parent))
	}
	return ""
}

func (g *Generator) insertInitList(x *ast.InitListExpr) {
	if len(x.Inits) == 0 && g.flags.NoEmptyInitList && !g.needsFill(x) {
		return
	}
	inner := g.withFlags(func(f *Flags) { f.NoEmptyInitList = false })
	g.out.Append("{")
	inner.insertArgs(x.Inits)
	if g.needsFill(x) {
		t := x.Type.Canonical()
		value := inner.fillValue(x.Filler, t.Elem)
		g.out.Append(fillArray(len(x.Inits), t.Size, value))
	}
	g.out.Append("}")
}

// needsFill reports whether an array initializer leaves elements to be
// value initialized.
func (g *Generator) needsFill(x *ast.InitListExpr) bool {
	t := x.Type.Canonical()
	return t != nil && t.Kind == ast.TypeArray && t.Size > int64(len(x.Inits))
}

func (g *Generator) fillValue(filler ast.Expr, elem *ast.Type) string {
	if filler == nil {
		return g.valueInit(elem)
	}
	if v, ok := filler.(*ast.ImplicitValueInitExpr); ok {
		t := v.Type
		if t == nil {
			t = elem
		}
		return g.valueInit(t)
	}
	return g.out.Capture(func() { g.InsertArg(filler) })
}

// fillArray renders the implicit elements after the explicit ones, up to
// maxArrayFill values in total.
func fillArray(explicit int, size int64, value string) string {
	var sb strings.Builder
	shown := size
	if shown > maxArrayFill {
		shown = maxArrayFill
	}
	if int64(explicit) > shown {
		shown = int64(explicit)
	}
	for i := int64(explicit); i < shown; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(value)
	}
	if size > shown {
		sb.WriteString(" /* ... " + strconv.FormatInt(size-shown, 10) + " more elements elided */")
	}
	return sb.String()
}

// valueInit spells the value a value-initialized object of type t has.
func (g *Generator) valueInit(t *ast.Type) string {
	c := t.Canonical()
	switch {
	case c == nil:
		return "{}"
	case c.IsPointer():
		return "nullptr"
	case c.IsBool():
		return "false"
	case c.IsIntegral():
		if c.Kind == ast.TypeEnum {
			return "static_cast<" + g.typeName(t) + ">(0)"
		}
		return "0" + integerSuffix(c)
	case c.IsFloating():
		return "0.0" + floatingSuffix(c)
	case c.Kind == ast.TypeArray:
		return "{" + fillArray(0, c.Size, g.valueInit(c.Elem)) + "}"
	case c.Kind == ast.TypeRecord:
		return g.typeName(t) + "{}"
	}
	return "{}"
}

func (g *Generator) insertConstant(x *ast.ConstantExpr) {
	g.InsertArg(x.Sub)
	if g.flags.ShowConstantExprValue && x.HasValue {
		g.out.Append(" /* = ", x.Value, " */")
	}
}

func (g *Generator) insertNew(x *ast.NewExpr) {
	g.out.Append("new ")
	if len(x.Placement) > 0 {
		g.out.Append("(")
		g.insertArgs(x.Placement)
		g.out.Append(")")
	}
	if x.Array {
		g.out.Append(g.typeName(x.Alloc), "[")
		if x.Size != nil {
			g.InsertArg(x.Size)
		}
		g.out.Append("]")
	} else {
		g.out.Append(g.typeName(x.Alloc))
	}

	switch init := skipCleanups(x.Init).(type) {
	case nil:
	case *ast.ConstructExpr:
		if init.List {
			g.out.Append("{")
			g.insertArgs(init.Args)
			g.out.Append("}")
		} else {
			g.out.Append("(")
			g.insertArgs(init.Args)
			g.out.Append(")")
		}
	case *ast.InitListExpr:
		g.InsertArg(init)
	case *ast.ParenExpr:
		g.InsertArg(init)
	default:
		g.out.Append("(")
		g.InsertArg(init)
		g.out.Append(")")
	}
}

func (g *Generator) insertSizeOf(x *ast.SizeOfExpr) {
	if x.AlignOf {
		g.out.Append("alignof(")
	} else {
		g.out.Append("sizeof(")
	}
	if x.ArgType != nil {
		g.out.Append(g.typeName(x.ArgType))
	} else if x.Arg != nil {
		g.InsertArg(x.Arg)
	}
	g.out.Append(")")
}
