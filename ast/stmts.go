package ast

// CompoundStmt represents { stmts }.
type CompoundStmt struct {
	Stmts []Stmt
}

// DeclStmt wraps one or more declarations that share a declaration
// statement (int a = 1, b = 2;).
type DeclStmt struct {
	Decls []Decl
}

// ReturnStmt represents return [value];.
type ReturnStmt struct {
	Value Expr
}

// IfStmt represents if [constexpr] ([init;] cond) then [else].
type IfStmt struct {
	Init      Stmt
	CondVar   *VarDecl
	Cond      Expr
	Then      Stmt
	Else      Stmt
	Constexpr bool
}

// ForStmt represents a classic for loop.
type ForStmt struct {
	Init Stmt
	Cond Expr
	Inc  Expr
	Body Stmt
}

// ForRangeStmt represents a range-based for loop together with the
// variables the front end synthesized for it.
type ForRangeStmt struct {
	Loc     Loc
	Init    Stmt
	Range   *VarDecl // __range1
	Begin   *VarDecl // __begin1
	End     *VarDecl // __end1
	Cond    Expr
	Inc     Expr
	LoopVar *VarDecl
	Body    Stmt
	CXX11   bool // begin and end share one declaration
}

// WhileStmt represents while (cond) body.
type WhileStmt struct {
	CondVar *VarDecl
	Cond    Expr
	Body    Stmt
}

// DoStmt represents do body while (cond);.
type DoStmt struct {
	Body Stmt
	Cond Expr
}

// SwitchStmt represents switch ([init;] cond) body.
type SwitchStmt struct {
	Init    Stmt
	CondVar *VarDecl
	Cond    Expr
	Body    Stmt
}

// CaseStmt represents case value: sub.
type CaseStmt struct {
	Value Expr
	Sub   Stmt
}

// DefaultStmt represents default: sub.
type DefaultStmt struct {
	Sub Stmt
}

type BreakStmt struct{}
type ContinueStmt struct{}
type NullStmt struct{}

func (*CompoundStmt) node() {}
func (*DeclStmt) node()     {}
func (*ReturnStmt) node()   {}
func (*IfStmt) node()       {}
func (*ForStmt) node()      {}
func (*ForRangeStmt) node() {}
func (*WhileStmt) node()    {}
func (*DoStmt) node()       {}
func (*SwitchStmt) node()   {}
func (*CaseStmt) node()     {}
func (*DefaultStmt) node()  {}
func (*BreakStmt) node()    {}
func (*ContinueStmt) node() {}
func (*NullStmt) node()     {}

func (*CompoundStmt) stmt() {}
func (*DeclStmt) stmt()     {}
func (*ReturnStmt) stmt()   {}
func (*IfStmt) stmt()       {}
func (*ForStmt) stmt()      {}
func (*ForRangeStmt) stmt() {}
func (*WhileStmt) stmt()    {}
func (*DoStmt) stmt()       {}
func (*SwitchStmt) stmt()   {}
func (*CaseStmt) stmt()     {}
func (*DefaultStmt) stmt()  {}
func (*BreakStmt) stmt()    {}
func (*ContinueStmt) stmt() {}
func (*NullStmt) stmt()     {}

func (*CompoundStmt) Kind() string { return "CompoundStmt" }
func (*DeclStmt) Kind() string     { return "DeclStmt" }
func (*ReturnStmt) Kind() string   { return "ReturnStmt" }
func (*IfStmt) Kind() string       { return "IfStmt" }
func (*ForStmt) Kind() string      { return "ForStmt" }
func (*ForRangeStmt) Kind() string { return "CXXForRangeStmt" }
func (*WhileStmt) Kind() string    { return "WhileStmt" }
func (*DoStmt) Kind() string       { return "DoStmt" }
func (*SwitchStmt) Kind() string   { return "SwitchStmt" }
func (*CaseStmt) Kind() string     { return "CaseStmt" }
func (*DefaultStmt) Kind() string  { return "DefaultStmt" }
func (*BreakStmt) Kind() string    { return "BreakStmt" }
func (*ContinueStmt) Kind() string { return "ContinueStmt" }
func (*NullStmt) Kind() string     { return "NullStmt" }

// TryStmt represents try { body } followed by its handlers.
type TryStmt struct {
	Body     *CompoundStmt
	Handlers []*CatchStmt
}

// CatchStmt is one handler; a nil Param is catch(...).
type CatchStmt struct {
	Param *VarDecl
	Body  *CompoundStmt
}

// Comment is a synthesized statement rendered as a block comment.
type Comment struct {
	Text string
}

func (*TryStmt) node()   {}
func (*CatchStmt) node() {}
func (*Comment) node()   {}

func (*TryStmt) stmt()   {}
func (*CatchStmt) stmt() {}
func (*Comment) stmt()   {}

func (*TryStmt) Kind() string   { return "CXXTryStmt" }
func (*CatchStmt) Kind() string { return "CXXCatchStmt" }
func (*Comment) Kind() string   { return "Comment" }
