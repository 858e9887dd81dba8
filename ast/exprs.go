package ast

// BaseExpr provides the resolved type every expression carries.
type BaseExpr struct {
	Type *Type
}

func (b *BaseExpr) ExprType() *Type { return b.Type }

// IntegerLiteral holds the literal's digits; the suffix is derived from
// its type when rendered.
type IntegerLiteral struct {
	BaseExpr
	Value string
}

type FloatingLiteral struct {
	BaseExpr
	Value string
}

// StringLiteral holds the escaped contents without quotes.
type StringLiteral struct {
	BaseExpr
	Value string
}

// CharacterLiteral holds the spelling including quotes, e.g. 'a'.
type CharacterLiteral struct {
	BaseExpr
	Value string
}

type BoolLiteral struct {
	BaseExpr
	Value bool
}

type NullPtrLiteral struct {
	BaseExpr
}

// DeclRefExpr references a resolved declaration.
type DeclRefExpr struct {
	BaseExpr
	Decl         Decl
	Name         string // spelling, used when Decl is nil
	Qualifier    string
	TemplateArgs []TemplateArgument
}

// CastKind names the conversion the front end applied, e.g. "IntegralCast".
type CastKind string

// ImplicitCastExpr is a conversion the author never wrote.
type ImplicitCastExpr struct {
	BaseExpr
	CastKind           CastKind
	Sub                Expr
	PartOfExplicitCast bool
}

// CastStyle is the spelling of an explicit cast.
type CastStyle int

const (
	CastCStyle CastStyle = iota
	CastStatic
	CastDynamic
	CastReinterpret
	CastConst
	CastFunctional
)

// ExplicitCastExpr is a cast written in the source.
type ExplicitCastExpr struct {
	BaseExpr
	Style    CastStyle
	CastKind CastKind
	Sub      Expr
}

type BinaryOperator struct {
	BaseExpr
	Op  string
	LHS Expr
	RHS Expr
}

type UnaryOperator struct {
	BaseExpr
	Op      string
	Postfix bool
	Operand Expr
}

type ConditionalOperator struct {
	BaseExpr
	Cond  Expr
	True  Expr
	False Expr
}

type ParenExpr struct {
	BaseExpr
	Sub Expr
}

type CallExpr struct {
	BaseExpr
	Callee Expr
	Args   []Expr
}

// MemberCallExpr is a call through a member expression, obj.f(args).
type MemberCallExpr struct {
	BaseExpr
	Callee *MemberExpr
	Args   []Expr
}

// OperatorCallExpr is an overloaded operator call. Method is the
// resolved operator function.
type OperatorCallExpr struct {
	BaseExpr
	Op     string
	Method *FunctionDecl
	Args   []Expr
}

type MemberExpr struct {
	BaseExpr
	Base   Expr
	Arrow  bool
	Member Decl
	Name   string
}

type ThisExpr struct {
	BaseExpr
	Implicit bool
}

// ConstructExpr is a constructor call. Temporary marks T(args) or T{args}
// written as an expression.
type ConstructExpr struct {
	BaseExpr
	Ctor      *FunctionDecl
	Args      []Expr
	List      bool
	Temporary bool
	Elidable  bool
}

// InitListExpr is a braced initializer. Filler is the value-initializer
// for array elements without an explicit initializer.
type InitListExpr struct {
	BaseExpr
	Inits  []Expr
	Filler Expr
}

type ImplicitValueInitExpr struct {
	BaseExpr
}

type MaterializeTemporaryExpr struct {
	BaseExpr
	Sub Expr
}

type ExprWithCleanups struct {
	BaseExpr
	Sub Expr
}

type BindTemporaryExpr struct {
	BaseExpr
	Sub Expr
}

// ConstantExpr wraps an expression the front end evaluated.
type ConstantExpr struct {
	BaseExpr
	Sub      Expr
	Value    string
	HasValue bool
}

// CaptureKind is how a lambda captures an entity.
type CaptureKind int

const (
	CaptureByCopy CaptureKind = iota
	CaptureByRef
	CaptureThis
	CaptureStarThis
)

// CaptureDefault is the capture-default of a lambda introducer.
type CaptureDefault int

const (
	CaptureDefaultNone CaptureDefault = iota
	CaptureDefaultCopy
	CaptureDefaultRef
)

// LambdaCapture is one captured entity. For init-captures Var.Init holds
// the initializer. Type is the class type for this and *this captures.
type LambdaCapture struct {
	Kind     CaptureKind
	Var      *VarDecl
	Type     *Type
	InitExpr bool
	Implicit bool
}

// LambdaExpr is a lambda literal. Class is the closure type the front end
// synthesized; CallOp its function call operator.
type LambdaExpr struct {
	BaseExpr
	Loc      Loc
	Class    *RecordDecl
	CallOp   *FunctionDecl
	Captures []LambdaCapture
	Default  CaptureDefault
	Mutable  bool
	Generic  bool
}

type ArraySubscriptExpr struct {
	BaseExpr
	Base  Expr
	Index Expr
}

type NewExpr struct {
	BaseExpr
	Alloc     *Type
	Array     bool
	Size      Expr
	Init      Expr
	Placement []Expr
}

type DeleteExpr struct {
	BaseExpr
	Array bool
	Arg   Expr
}

// SizeOfExpr is sizeof/alignof over a type (ArgType) or an expression.
type SizeOfExpr struct {
	BaseExpr
	ArgType *Type
	Arg     Expr
	AlignOf bool
}

// DefaultArgExpr is a use of a parameter's default argument.
type DefaultArgExpr struct {
	BaseExpr
	Param *ParmVarDecl
}

// DefaultInitExpr is a use of a field's default member initializer.
type DefaultInitExpr struct {
	BaseExpr
	Field *FieldDecl
}

func (*IntegerLiteral) node()           {}
func (*FloatingLiteral) node()          {}
func (*StringLiteral) node()            {}
func (*CharacterLiteral) node()         {}
func (*BoolLiteral) node()              {}
func (*NullPtrLiteral) node()           {}
func (*DeclRefExpr) node()              {}
func (*ImplicitCastExpr) node()         {}
func (*ExplicitCastExpr) node()         {}
func (*BinaryOperator) node()           {}
func (*UnaryOperator) node()            {}
func (*ConditionalOperator) node()      {}
func (*ParenExpr) node()                {}
func (*CallExpr) node()                 {}
func (*MemberCallExpr) node()           {}
func (*OperatorCallExpr) node()         {}
func (*MemberExpr) node()               {}
func (*ThisExpr) node()                 {}
func (*ConstructExpr) node()            {}
func (*InitListExpr) node()             {}
func (*ImplicitValueInitExpr) node()    {}
func (*MaterializeTemporaryExpr) node() {}
func (*ExprWithCleanups) node()         {}
func (*BindTemporaryExpr) node()        {}
func (*ConstantExpr) node()             {}
func (*LambdaExpr) node()               {}
func (*ArraySubscriptExpr) node()       {}
func (*NewExpr) node()                  {}
func (*DeleteExpr) node()               {}
func (*SizeOfExpr) node()               {}
func (*DefaultArgExpr) node()           {}
func (*DefaultInitExpr) node()          {}

func (*IntegerLiteral) stmt()           {}
func (*FloatingLiteral) stmt()          {}
func (*StringLiteral) stmt()            {}
func (*CharacterLiteral) stmt()         {}
func (*BoolLiteral) stmt()              {}
func (*NullPtrLiteral) stmt()           {}
func (*DeclRefExpr) stmt()              {}
func (*ImplicitCastExpr) stmt()         {}
func (*ExplicitCastExpr) stmt()         {}
func (*BinaryOperator) stmt()           {}
func (*UnaryOperator) stmt()            {}
func (*ConditionalOperator) stmt()      {}
func (*ParenExpr) stmt()                {}
func (*CallExpr) stmt()                 {}
func (*MemberCallExpr) stmt()           {}
func (*OperatorCallExpr) stmt()         {}
func (*MemberExpr) stmt()               {}
func (*ThisExpr) stmt()                 {}
func (*ConstructExpr) stmt()            {}
func (*InitListExpr) stmt()             {}
func (*ImplicitValueInitExpr) stmt()    {}
func (*MaterializeTemporaryExpr) stmt() {}
func (*ExprWithCleanups) stmt()         {}
func (*BindTemporaryExpr) stmt()        {}
func (*ConstantExpr) stmt()             {}
func (*LambdaExpr) stmt()               {}
func (*ArraySubscriptExpr) stmt()       {}
func (*NewExpr) stmt()                  {}
func (*DeleteExpr) stmt()               {}
func (*SizeOfExpr) stmt()               {}
func (*DefaultArgExpr) stmt()           {}
func (*DefaultInitExpr) stmt()          {}

func (*IntegerLiteral) expr()           {}
func (*FloatingLiteral) expr()          {}
func (*StringLiteral) expr()            {}
func (*CharacterLiteral) expr()         {}
func (*BoolLiteral) expr()              {}
func (*NullPtrLiteral) expr()           {}
func (*DeclRefExpr) expr()              {}
func (*ImplicitCastExpr) expr()         {}
func (*ExplicitCastExpr) expr()         {}
func (*BinaryOperator) expr()           {}
func (*UnaryOperator) expr()            {}
func (*ConditionalOperator) expr()      {}
func (*ParenExpr) expr()                {}
func (*CallExpr) expr()                 {}
func (*MemberCallExpr) expr()           {}
func (*OperatorCallExpr) expr()         {}
func (*MemberExpr) expr()               {}
func (*ThisExpr) expr()                 {}
func (*ConstructExpr) expr()            {}
func (*InitListExpr) expr()             {}
func (*ImplicitValueInitExpr) expr()    {}
func (*MaterializeTemporaryExpr) expr() {}
func (*ExprWithCleanups) expr()         {}
func (*BindTemporaryExpr) expr()        {}
func (*ConstantExpr) expr()             {}
func (*LambdaExpr) expr()               {}
func (*ArraySubscriptExpr) expr()       {}
func (*NewExpr) expr()                  {}
func (*DeleteExpr) expr()               {}
func (*SizeOfExpr) expr()               {}
func (*DefaultArgExpr) expr()           {}
func (*DefaultInitExpr) expr()          {}

func (*IntegerLiteral) Kind() string           { return "IntegerLiteral" }
func (*FloatingLiteral) Kind() string          { return "FloatingLiteral" }
func (*StringLiteral) Kind() string            { return "StringLiteral" }
func (*CharacterLiteral) Kind() string         { return "CharacterLiteral" }
func (*BoolLiteral) Kind() string              { return "CXXBoolLiteralExpr" }
func (*NullPtrLiteral) Kind() string           { return "CXXNullPtrLiteralExpr" }
func (*DeclRefExpr) Kind() string              { return "DeclRefExpr" }
func (*ImplicitCastExpr) Kind() string         { return "ImplicitCastExpr" }
func (*ExplicitCastExpr) Kind() string         { return "ExplicitCastExpr" }
func (*BinaryOperator) Kind() string           { return "BinaryOperator" }
func (*UnaryOperator) Kind() string            { return "UnaryOperator" }
func (*ConditionalOperator) Kind() string      { return "ConditionalOperator" }
func (*ParenExpr) Kind() string                { return "ParenExpr" }
func (*CallExpr) Kind() string                 { return "CallExpr" }
func (*MemberCallExpr) Kind() string           { return "CXXMemberCallExpr" }
func (*OperatorCallExpr) Kind() string         { return "CXXOperatorCallExpr" }
func (*MemberExpr) Kind() string               { return "MemberExpr" }
func (*ThisExpr) Kind() string                 { return "CXXThisExpr" }
func (*ConstructExpr) Kind() string            { return "CXXConstructExpr" }
func (*InitListExpr) Kind() string             { return "InitListExpr" }
func (*ImplicitValueInitExpr) Kind() string    { return "ImplicitValueInitExpr" }
func (*MaterializeTemporaryExpr) Kind() string { return "MaterializeTemporaryExpr" }
func (*ExprWithCleanups) Kind() string         { return "ExprWithCleanups" }
func (*BindTemporaryExpr) Kind() string        { return "CXXBindTemporaryExpr" }
func (*ConstantExpr) Kind() string             { return "ConstantExpr" }
func (*LambdaExpr) Kind() string               { return "LambdaExpr" }
func (*ArraySubscriptExpr) Kind() string       { return "ArraySubscriptExpr" }
func (*NewExpr) Kind() string                  { return "CXXNewExpr" }
func (*DeleteExpr) Kind() string               { return "CXXDeleteExpr" }
func (*SizeOfExpr) Kind() string               { return "UnaryExprOrTypeTraitExpr" }
func (*DefaultArgExpr) Kind() string           { return "CXXDefaultArgExpr" }
func (*DefaultInitExpr) Kind() string          { return "CXXDefaultInitExpr" }

// ThrowExpr is throw [sub]; a nil Sub rethrows.
type ThrowExpr struct {
	BaseExpr
	Sub Expr
}

func (*ThrowExpr) node()         {}
func (*ThrowExpr) stmt()         {}
func (*ThrowExpr) expr()         {}
func (*ThrowExpr) Kind() string { return "CXXThrowExpr" }
