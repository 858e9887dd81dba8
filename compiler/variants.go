package compiler

import "github.com/rubiojr/insights/ast"

// rules are the points where a specialized generator renders differently
// from the base one.
type rules interface {
	insertThis(g *Generator, e *ast.ThisExpr)
	// insertVarDecl reports whether the next variable gets its type.
	insertVarDecl() bool
	// insertComma reports whether the next variable is preceded by ", ".
	insertComma() bool
	// insertSemi reports whether a variable declaration ends with ";".
	insertSemi() bool
}

type baseRules struct{}

func (baseRules) insertThis(g *Generator, _ *ast.ThisExpr) { g.out.Append("this") }
func (baseRules) insertVarDecl() bool                      { return true }
func (baseRules) insertComma() bool                        { return false }
func (baseRules) insertSemi() bool                         { return true }

// lambdaRules render the body of a closure's call operator, where this
// names the captured object stored in the __this field.
type lambdaRules struct {
	baseRules
	// copied is set for a *this capture: the field holds the object, not
	// a pointer to it.
	copied bool
}

func (r lambdaRules) insertThis(g *Generator, _ *ast.ThisExpr) {
	if r.copied {
		g.out.Append("(&__this)")
		return
	}
	g.out.Append("__this")
}

// onceTrue is true on its first query and false afterwards.
type onceTrue struct{ used bool }

func (o *onceTrue) next() bool {
	if o.used {
		return false
	}
	o.used = true
	return true
}

// onceFalse is false on its first query and true afterwards.
type onceFalse struct{ used bool }

func (o *onceFalse) next() bool {
	if o.used {
		return true
	}
	o.used = true
	return false
}

// multiDeclRules render a declaration with several declarators as one
// declaration: the type is written once, declarators are separated by
// commas and the caller terminates the whole list.
type multiDeclRules struct {
	baseRules
	declare   onceTrue
	separator onceFalse
}

func (r *multiDeclRules) insertVarDecl() bool { return r.declare.next() }
func (r *multiDeclRules) insertComma() bool   { return r.separator.next() }
func (r *multiDeclRules) insertSemi() bool    { return false }

// MultiDeclGenerator renders the declarations of one DeclStmt as a single
// declaration, as needed in a for-init.
type MultiDeclGenerator struct {
	*Generator
}

func (g *Generator) multiDecl() *MultiDeclGenerator {
	return &MultiDeclGenerator{g.child(g.out, g.flags, &multiDeclRules{})}
}

// Close terminates the declaration.
func (m *MultiDeclGenerator) Close() {
	m.out.Append("; ")
}
