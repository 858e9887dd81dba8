package compiler

import "github.com/rubiojr/insights/ast"

// position is a syntactic slot whose operand may need parentheses.
type position int

const (
	posMemberBase position = iota
	posCallee
	posSubscriptBase
	posUnaryOperand
)

// visible returns the expression that actually shows at e's position,
// looking through nodes that render as their operand.
func (g *Generator) visible(e ast.Expr) ast.Expr {
	for {
		switch x := e.(type) {
		case *ast.ImplicitCastExpr:
			if g.castShown(x) {
				return e
			}
			e = x.Sub
		case *ast.MaterializeTemporaryExpr:
			e = x.Sub
		case *ast.ExprWithCleanups:
			e = x.Sub
		case *ast.BindTemporaryExpr:
			e = x.Sub
		case *ast.ConstantExpr:
			if g.flags.ShowConstantExprValue && x.HasValue {
				return e
			}
			e = x.Sub
		case *ast.ConstructExpr:
			if x.Elidable && len(x.Args) == 1 {
				e = x.Args[0]
				continue
			}
			return e
		default:
			return e
		}
	}
}

// needsParens decides from the kinds of the parent position and the child
// alone. Parentheses from the source are kept as ParenExpr nodes, so this
// only adds the ones a rewritten child requires.
func (g *Generator) needsParens(pos position, e ast.Expr) bool {
	switch x := g.visible(e).(type) {
	case *ast.BinaryOperator, *ast.ConditionalOperator:
		return true
	case *ast.ConstantExpr:
		// shows a trailing comment
		return pos != posUnaryOperand
	case *ast.UnaryOperator, *ast.NewExpr, *ast.DeleteExpr, *ast.ThrowExpr:
		return pos != posUnaryOperand
	case *ast.DeclRefExpr:
		v, ok := x.Decl.(*ast.VarDecl)
		return ok && needsGuard(v) && pos != posUnaryOperand
	}
	return false
}

func (g *Generator) insertWithParens(pos position, e ast.Expr) {
	if !g.needsParens(pos, e) {
		g.InsertArg(e)
		return
	}
	g.out.Append("(")
	g.InsertArg(e)
	g.out.Append(")")
}
