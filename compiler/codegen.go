package compiler

import (
	"github.com/rubiojr/insights/ast"
	"github.com/rubiojr/insights/errors"
	"github.com/rubiojr/insights/logger"
)

// Generator renders one subtree into a Buffer. Special positions (a
// lambda's call operator, a for-init declaration list) use a child
// generator with different flags or rules that shares the pass and the
// lambda stack.
type Generator struct {
	out     *Buffer
	pass    *Pass
	lambdas *lambdaStack
	flags   Flags
	rules   rules
}

// NewGenerator returns a generator writing to out.
func NewGenerator(out *Buffer, pass *Pass) *Generator {
	return &Generator{
		out:     out,
		pass:    pass,
		lambdas: &lambdaStack{},
		flags:   pass.opts.Flags,
		rules:   baseRules{},
	}
}

// child returns a generator for a special position.
func (g *Generator) child(out *Buffer, flags Flags, r rules) *Generator {
	return &Generator{out: out, pass: g.pass, lambdas: g.lambdas, flags: flags, rules: r}
}

// withFlags returns a generator writing to the same buffer with flags
// changed by fn.
func (g *Generator) withFlags(fn func(*Flags)) *Generator {
	flags := g.flags
	fn(&flags)
	return g.child(g.out, flags, g.rules)
}

// lambdaScope opens a lambda frame for caller on this generator's buffer.
func (g *Generator) lambdaScope(caller LambdaCaller) *lambdaScope {
	return g.lambdas.enter(caller, g.out)
}

// InsertArg renders n at the current position. A nil node is a broken
// tree and aborts the translation; kinds without a rule are skipped.
func (g *Generator) InsertArg(n ast.Node) {
	if ast.IsNil(n) {
		panic(errors.AssertionFailedf("InsertArg: nil node"))
	}

	switch x := n.(type) {
	// declarations
	case *ast.TranslationUnit:
		g.insertDecls(x.Decls)
	case *ast.NamespaceDecl:
		g.insertNamespace(x)
	case *ast.VarDecl:
		g.insertVarDecl(x)
	case *ast.ParmVarDecl:
		g.out.Append(g.param(x))
	case *ast.FunctionDecl:
		g.insertFunction(x)
	case *ast.RecordDecl:
		g.insertRecord(x)
	case *ast.FieldDecl:
		g.insertField(x)
	case *ast.AccessSpecDecl:
		g.out.AppendNewLine(x.Access.String(), ": ")
	case *ast.TypedefDecl:
		g.insertTypedef(x)
	case *ast.EnumDecl:
		g.insertEnum(x)
	case *ast.EnumConstantDecl:
		g.insertEnumConstant(x)
	case *ast.UsingDirectiveDecl:
		g.out.AppendSemiNewLine("using namespace ", x.Namespace)
	case *ast.StaticAssertDecl:
		g.insertStaticAssert(x)
	case *ast.FunctionTemplateDecl:
		g.insertFunctionTemplate(x)
	case *ast.ClassTemplateDecl:
		g.insertClassTemplate(x)
	case *ast.EmptyDecl:

	// statements
	case *ast.CompoundStmt:
		g.insertCompound(x)
	case *ast.DeclStmt:
		g.insertDeclStmt(x)
	case *ast.ReturnStmt:
		g.insertReturn(x)
	case *ast.IfStmt:
		g.insertIf(x)
	case *ast.ForStmt:
		g.insertFor(x)
	case *ast.ForRangeStmt:
		g.insertForRange(x)
	case *ast.WhileStmt:
		g.insertWhile(x)
	case *ast.DoStmt:
		g.insertDo(x)
	case *ast.SwitchStmt:
		g.insertSwitch(x)
	case *ast.CaseStmt:
		g.insertCase(x)
	case *ast.DefaultStmt:
		g.out.AppendNewLine("default:")
		g.insertSub(x.Sub)
	case *ast.BreakStmt:
		g.out.Append("break")
	case *ast.ContinueStmt:
		g.out.Append("continue")
	case *ast.NullStmt:
	case *ast.TryStmt:
		g.insertTry(x)
	case *ast.CatchStmt:
		g.insertCatch(x)
	case *ast.Comment:
		g.out.AppendNewLine("/* ", x.Text, " */")

	// expressions
	case *ast.IntegerLiteral:
		g.out.Append(x.Value, integerSuffix(x.Type))
	case *ast.FloatingLiteral:
		g.insertFloating(x)
	case *ast.StringLiteral:
		g.out.Append(`"`, x.Value, `"`)
	case *ast.CharacterLiteral:
		g.out.Append(x.Value)
	case *ast.BoolLiteral:
		g.out.Append(boolText(x.Value))
	case *ast.NullPtrLiteral:
		g.out.Append("nullptr")
	case *ast.DeclRefExpr:
		g.insertDeclRef(x)
	case *ast.ImplicitCastExpr:
		g.insertImplicitCast(x)
	case *ast.ExplicitCastExpr:
		g.insertExplicitCast(x)
	case *ast.BinaryOperator:
		g.insertBinary(x)
	case *ast.UnaryOperator:
		g.insertUnary(x)
	case *ast.ConditionalOperator:
		g.InsertArg(x.Cond)
		g.out.Append(" ? ")
		g.InsertArg(x.True)
		g.out.Append(" : ")
		g.InsertArg(x.False)
	case *ast.ParenExpr:
		g.out.Append("(")
		g.InsertArg(x.Sub)
		g.out.Append(")")
	case *ast.CallExpr:
		g.insertCall(x)
	case *ast.MemberCallExpr:
		g.insertMemberCall(x)
	case *ast.OperatorCallExpr:
		g.insertOperatorCall(x)
	case *ast.MemberExpr:
		g.insertMember(x)
	case *ast.ThisExpr:
		g.rules.insertThis(g, x)
	case *ast.ConstructExpr:
		g.insertConstruct(x)
	case *ast.InitListExpr:
		g.insertInitList(x)
	case *ast.ImplicitValueInitExpr:
		g.out.Append(g.valueInit(x.Type))
	case *ast.MaterializeTemporaryExpr:
		g.InsertArg(x.Sub)
	case *ast.ExprWithCleanups:
		g.InsertArg(x.Sub)
	case *ast.BindTemporaryExpr:
		g.InsertArg(x.Sub)
	case *ast.ConstantExpr:
		g.insertConstant(x)
	case *ast.LambdaExpr:
		g.insertLambda(x)
	case *ast.ArraySubscriptExpr:
		g.insertWithParens(posSubscriptBase, x.Base)
		g.out.Append("[")
		g.InsertArg(x.Index)
		g.out.Append("]")
	case *ast.NewExpr:
		g.insertNew(x)
	case *ast.DeleteExpr:
		if x.Array {
			g.out.Append("delete[] ")
		} else {
			g.out.Append("delete ")
		}
		g.InsertArg(x.Arg)
	case *ast.SizeOfExpr:
		g.insertSizeOf(x)
	case *ast.DefaultArgExpr:
		if x.Param != nil && x.Param.Default != nil {
			g.InsertArg(x.Param.Default)
		}
	case *ast.DefaultInitExpr:
		if x.Field != nil && x.Field.Init != nil {
			g.InsertArg(x.Field.Init)
		}
	case *ast.ThrowExpr:
		g.out.Append("throw")
		if x.Sub != nil {
			g.out.Append(" ")
			g.InsertArg(x.Sub)
		}

	case *ast.UnknownNode:
		logger.Logger.Debugw("skipping node without a rule", "kind", x.Name)
	default:
		logger.Logger.Debugw("skipping node without a rule", "kind", n.Kind())
	}
}

// insertArgs renders a comma separated argument list.
func (g *Generator) insertArgs(args []ast.Expr) {
	for i, a := range args {
		if i > 0 {
			g.out.Append(", ")
		}
		g.InsertArg(a)
	}
}

func boolText(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
