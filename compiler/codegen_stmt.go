package compiler

import (
	"github.com/rubiojr/insights/ast"
)

func (g *Generator) insertCompound(c *ast.CompoundStmt) {
	g.out.OpenScope()
	for _, s := range c.Stmts {
		g.insertStmt(s)
	}
	g.out.CloseScope()
}

// insertStmt renders one statement of a block on its own line(s),
// terminating it where C++ requires a semicolon. Closure classes the
// statement needs are placed in front of all of it.
func (g *Generator) insertStmt(s ast.Stmt) {
	g.out.BeginStatement()
	defer g.out.EndStatement()

	g.InsertArg(s)
	if needsSemi(s) {
		g.out.Append(";")
	}
	if !g.out.atLineStart() {
		g.out.NewLine()
	}
}

func needsSemi(s ast.Stmt) bool {
	switch s.(type) {
	case ast.Expr:
		_, unknown := s.(*ast.UnknownNode)
		return !unknown
	case *ast.ReturnStmt, *ast.BreakStmt, *ast.ContinueStmt, *ast.DoStmt, *ast.NullStmt:
		return true
	}
	return false
}

// insertBody renders the body of a control statement, always in braces.
func (g *Generator) insertBody(s ast.Stmt) {
	if c, ok := s.(*ast.CompoundStmt); ok {
		g.insertCompound(c)
		return
	}
	g.out.OpenScope()
	if s != nil {
		g.insertStmt(s)
	}
	g.out.CloseScope()
}

// insertSub renders the statement a label applies to.
func (g *Generator) insertSub(s ast.Stmt) {
	if s == nil {
		return
	}
	g.out.IncreaseIndent()
	g.insertStmt(s)
	g.out.DecreaseIndent()
}

func (g *Generator) insertDeclStmt(s *ast.DeclStmt) {
	for _, d := range s.Decls {
		g.InsertArg(d)
		if !g.out.atLineStart() {
			g.out.NewLine()
		}
	}
}

func (g *Generator) insertReturn(s *ast.ReturnStmt) {
	scope := g.lambdaScope(LambdaCallerReturnStmt)
	defer scope.Close()

	g.out.Append("return")
	if s.Value != nil {
		g.out.Append(" ")
		g.InsertArg(s.Value)
	}
}

// openInitScope starts the extra scope that keeps an init-statement or a
// condition variable local to its if or switch.
func (g *Generator) openInitScope(init ast.Stmt, condVar *ast.VarDecl) bool {
	if init == nil && condVar == nil {
		return false
	}
	g.out.OpenScope()
	if init != nil {
		g.insertStmt(init)
	}
	if condVar != nil {
		g.InsertArg(condVar)
	}
	return true
}

// insertCond renders a condition, falling back to the condition variable.
func (g *Generator) insertCond(cond ast.Expr, condVar *ast.VarDecl) {
	if cond != nil {
		g.InsertArg(cond)
		return
	}
	if condVar != nil {
		g.out.Append(condVar.Name)
	}
}

func (g *Generator) insertIf(s *ast.IfStmt) {
	scoped := g.openInitScope(s.Init, s.CondVar)
	if scoped {
		g.out.BeginStatement()
	}

	g.out.Append("if")
	if s.Constexpr {
		g.out.Append(" constexpr")
	}
	g.out.Append("(")
	g.insertCond(s.Cond, s.CondVar)
	g.out.Append(") ")
	g.insertBody(s.Then)
	if s.Else != nil {
		g.out.Append(" else ")
		if elif, ok := s.Else.(*ast.IfStmt); ok && elif.Init == nil && elif.CondVar == nil {
			g.insertIf(elif)
		} else {
			g.insertBody(s.Else)
		}
	}

	if scoped {
		g.out.EndStatement()
		g.out.CloseScope()
	}
}

func (g *Generator) insertSwitch(s *ast.SwitchStmt) {
	scoped := g.openInitScope(s.Init, s.CondVar)
	if scoped {
		g.out.BeginStatement()
	}

	g.out.Append("switch(")
	g.insertCond(s.Cond, s.CondVar)
	g.out.Append(") ")
	g.insertBody(s.Body)

	if scoped {
		g.out.EndStatement()
		g.out.CloseScope()
	}
}

func (g *Generator) insertCase(s *ast.CaseStmt) {
	g.out.Append("case ")
	g.InsertArg(s.Value)
	g.out.AppendNewLine(":")
	g.insertSub(s.Sub)
}

func (g *Generator) insertFor(s *ast.ForStmt) {
	g.out.Append("for(")
	switch init := s.Init.(type) {
	case nil:
		g.out.Append("; ")
	case *ast.DeclStmt:
		md := g.multiDecl()
		for _, d := range init.Decls {
			md.InsertArg(d)
		}
		md.Close()
	default:
		g.InsertArg(init)
		g.out.Append("; ")
	}
	if s.Cond != nil {
		g.InsertArg(s.Cond)
	}
	g.out.Append("; ")
	if s.Inc != nil {
		g.InsertArg(s.Inc)
	}
	g.out.Append(") ")
	g.insertBody(s.Body)
}

// insertForRange expands a range-based for loop into the iterator loop the
// compiler generates: the range, begin and end variables in an enclosing
// scope and the loop variable bound inside the body.
func (g *Generator) insertForRange(s *ast.ForRangeStmt) {
	g.out.OpenScope()
	if s.Init != nil {
		g.insertStmt(s.Init)
	}
	if s.Range != nil {
		g.InsertArg(s.Range)
	}

	if s.CXX11 {
		g.out.Append("for(")
		g.withFlags(func(f *Flags) { f.UseCommaInsteadOfSemi = true }).InsertArg(s.Begin)
		g.withFlags(func(f *Flags) { f.SkipVarDecl = true }).InsertArg(s.End)
		g.out.Append("; ")
	} else {
		if s.Begin != nil {
			g.InsertArg(s.Begin)
		}
		if s.End != nil {
			g.InsertArg(s.End)
		}
		g.out.Append("for(; ")
	}
	if s.Cond != nil {
		g.InsertArg(s.Cond)
	}
	g.out.Append("; ")
	if s.Inc != nil {
		g.InsertArg(s.Inc)
	}
	g.out.Append(") ")

	g.out.OpenScope()
	if s.LoopVar != nil {
		g.InsertArg(s.LoopVar)
	}
	if body, ok := s.Body.(*ast.CompoundStmt); ok {
		for _, st := range body.Stmts {
			g.insertStmt(st)
		}
	} else if s.Body != nil {
		g.insertStmt(s.Body)
	}
	g.out.CloseScope()
	g.out.NewLine()

	g.out.CloseScope()
}

func (g *Generator) insertWhile(s *ast.WhileStmt) {
	g.out.Append("while(")
	g.insertCond(s.Cond, s.CondVar)
	g.out.Append(") ")
	g.insertBody(s.Body)
}

func (g *Generator) insertDo(s *ast.DoStmt) {
	g.out.Append("do ")
	g.insertBody(s.Body)
	g.out.Append(" while(")
	g.InsertArg(s.Cond)
	g.out.Append(")")
}

func (g *Generator) insertTry(s *ast.TryStmt) {
	g.out.Append("try ")
	g.insertCompound(s.Body)
	for _, h := range s.Handlers {
		g.out.Append(" ")
		g.insertCatch(h)
	}
}

func (g *Generator) insertCatch(c *ast.CatchStmt) {
	g.out.Append("catch(")
	if c.Param == nil {
		g.out.Append("...")
	} else {
		g.out.Append(g.declarator(c.Param.Type, c.Param.Name))
	}
	g.out.Append(") ")
	g.insertCompound(c.Body)
}
