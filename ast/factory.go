package ast

// Factory centralizes creation of synthesized nodes. The generator uses
// it to build expansions (static guards, range-for desugaring) as trees
// and then renders those trees like any other input.
type Factory struct{}

// NewFactory returns a new Factory.
func NewFactory() *Factory { return &Factory{} }

// --- Types ---

// Builtin returns the builtin type with the given spelling.
func (f *Factory) Builtin(name string) *Type {
	return &Type{Kind: TypeBuiltin, Name: name}
}

// PointerTo returns a pointer to t.
func (f *Factory) PointerTo(t *Type) *Type {
	return &Type{Kind: TypePointer, Elem: t}
}

// ArrayOf returns an array of elem whose bound is the expression size.
func (f *Factory) ArrayOf(elem *Type, size Expr) *Type {
	return &Type{Kind: TypeArray, Elem: elem, SizeExpr: size}
}

// --- Declarations ---

// Var creates a variable declaration without initializer.
func (f *Factory) Var(name string, t *Type) *VarDecl {
	return &VarDecl{Name: name, Type: t}
}

// StaticLocal creates a function-scope static variable. The result is
// marked evaluatable so it never triggers a guard expansion itself.
func (f *Factory) StaticLocal(name string, t *Type) *VarDecl {
	return &VarDecl{Name: name, Type: t, Storage: StorageStatic, Local: true, Evaluatable: true}
}

// --- Statements ---

// Compound creates a compound statement.
func (f *Factory) Compound(stmts ...Stmt) *CompoundStmt {
	return &CompoundStmt{Stmts: stmts}
}

// DeclStmtOf wraps declarations in a declaration statement.
func (f *Factory) DeclStmtOf(decls ...Decl) *DeclStmt {
	return &DeclStmt{Decls: decls}
}

// If creates an if statement without else branch.
func (f *Factory) If(cond Expr, then Stmt) *IfStmt {
	return &IfStmt{Cond: cond, Then: then}
}

// TryCatchAll creates try { body } catch(...) { handler }.
func (f *Factory) TryCatchAll(body, handler *CompoundStmt) *TryStmt {
	return &TryStmt{Body: body, Handlers: []*CatchStmt{{Body: handler}}}
}

// Rethrow creates throw;.
func (f *Factory) Rethrow() *ThrowExpr {
	return &ThrowExpr{}
}

// CommentStmt creates a block comment statement.
func (f *Factory) CommentStmt(text string) *Comment {
	return &Comment{Text: text}
}

// --- Expressions ---

// Ref creates a reference to a declaration.
func (f *Factory) Ref(d Decl) *DeclRefExpr {
	return &DeclRefExpr{Decl: d}
}

// Named creates a reference to a name the tree does not declare, such as
// a runtime support function.
func (f *Factory) Named(name string) *DeclRefExpr {
	return &DeclRefExpr{Name: name}
}

// Int creates an int literal.
func (f *Factory) Int(value string) *IntegerLiteral {
	return &IntegerLiteral{BaseExpr: BaseExpr{Type: f.Builtin("int")}, Value: value}
}

// Bool creates a bool literal.
func (f *Factory) Bool(v bool) *BoolLiteral {
	return &BoolLiteral{BaseExpr: BaseExpr{Type: f.Builtin("bool")}, Value: v}
}

// Binary creates a binary operator expression.
func (f *Factory) Binary(op string, lhs, rhs Expr) *BinaryOperator {
	return &BinaryOperator{Op: op, LHS: lhs, RHS: rhs}
}

// AddrOf creates &e.
func (f *Factory) AddrOf(e Expr) *UnaryOperator {
	return &UnaryOperator{Op: "&", Operand: e}
}

// Deref creates *e.
func (f *Factory) Deref(e Expr) *UnaryOperator {
	return &UnaryOperator{Op: "*", Operand: e}
}

// Paren creates (e).
func (f *Factory) Paren(e Expr) *ParenExpr {
	return &ParenExpr{Sub: e}
}

// Call creates a call to fn with args.
func (f *Factory) Call(fn Expr, args ...Expr) *CallExpr {
	return &CallExpr{Callee: fn, Args: args}
}

// SizeOf creates sizeof(t).
func (f *Factory) SizeOf(t *Type) *SizeOfExpr {
	return &SizeOfExpr{ArgType: t}
}

// PlacementNew creates new (where) T init.
func (f *Factory) PlacementNew(where Expr, t *Type, init Expr) *NewExpr {
	return &NewExpr{BaseExpr: BaseExpr{Type: f.PointerTo(t)}, Alloc: t, Init: init, Placement: []Expr{where}}
}

// Reinterpret creates reinterpret_cast<t>(e).
func (f *Factory) Reinterpret(t *Type, e Expr) *ExplicitCastExpr {
	return &ExplicitCastExpr{BaseExpr: BaseExpr{Type: t}, Style: CastReinterpret, CastKind: "BitCast", Sub: e}
}
