package ast

// Node is the interface for all resolved tree nodes.
type Node interface {
	node()
	Kind() string
}

// Decl is the interface for declaration nodes.
type Decl interface {
	Node
	decl()
	Location() Loc
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmt()
}

// Expr is the interface for expression nodes. Every expression can stand
// as a statement.
type Expr interface {
	Stmt
	expr()
	ExprType() *Type
}

// Loc is a source location as reported by the front end.
type Loc struct {
	Line int
	Col  int
}

// Access is a member access specifier.
type Access int

const (
	AccessNone Access = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	}
	return ""
}

// StorageClass is the declared storage of a variable or function.
type StorageClass int

const (
	StorageNone StorageClass = iota
	StorageStatic
	StorageExtern
)

// BaseDecl provides common fields for all declarations.
type BaseDecl struct {
	Loc      Loc
	Access   Access
	Implicit bool // synthesized by the front end
}

func (b *BaseDecl) Location() Loc { return b.Loc }

// TranslationUnit is the root node.
type TranslationUnit struct {
	BaseDecl
	Name  string // display path of the source file
	Decls []Decl
}

// NamespaceDecl represents namespace Name { ... }.
type NamespaceDecl struct {
	BaseDecl
	Name   string
	Inline bool
	Decls  []Decl
}

// InitStyle is the syntactic form of a variable initializer.
type InitStyle int

const (
	InitC    InitStyle = iota // T x = init
	InitCall                  // T x(args)
	InitList                  // T x{args}
)

// VarDecl represents a variable declaration.
type VarDecl struct {
	BaseDecl
	Name        string
	Type        *Type
	Init        Expr
	InitStyle   InitStyle
	Storage     StorageClass
	Local       bool // declared at function scope
	Constexpr   bool
	Inline      bool
	ThreadLocal bool
	Evaluatable bool  // the initializer was evaluated at compile time
	AlignAs     *Type // alignas(T)
}

// IsStaticLocal reports whether v is a function-scope static.
func (v *VarDecl) IsStaticLocal() bool {
	return v.Local && v.Storage == StorageStatic
}

// ParmVarDecl represents a function parameter.
type ParmVarDecl struct {
	BaseDecl
	Name    string
	Type    *Type
	Default Expr
}

// FuncKind distinguishes the flavors of function declarations.
type FuncKind int

const (
	FuncPlain FuncKind = iota
	FuncMethod
	FuncConstructor
	FuncDestructor
	FuncConversion
)

// CtorInitializer is one entry of a constructor's member initializer list.
type CtorInitializer struct {
	Member string // field name, empty for a base initializer
	Base   *Type  // base class being initialized
	Init   Expr
}

// FunctionDecl represents a function, method, constructor, destructor or
// conversion operator.
type FunctionDecl struct {
	BaseDecl
	Name         string
	Qualifier    string // e.g. "Foo::" for out-of-line definitions
	FuncKind     FuncKind
	Return       *Type
	Params       []*ParmVarDecl
	Body         *CompoundStmt
	Storage      StorageClass
	Inline       bool
	Virtual      bool
	Explicit     bool
	Constexpr    bool
	Consteval    bool
	Const        bool
	Noexcept     bool
	Override     bool
	Defaulted    bool
	Deleted      bool
	Variadic     bool
	Specialized  bool // template instantiation or explicit specialization
	Explicitly   bool // explicit specialization written by the user
	TemplateArgs []TemplateArgument
	Inits        []*CtorInitializer
	Inherited    *FunctionDecl // constructor this one inherits
	Parent       *RecordDecl
}

// IsMethod reports whether f is a member function of any flavor.
func (f *FunctionDecl) IsMethod() bool {
	return f.FuncKind != FuncPlain
}

// TagKind is the class-key of a record.
type TagKind int

const (
	TagClass TagKind = iota
	TagStruct
	TagUnion
)

func (t TagKind) String() string {
	switch t {
	case TagStruct:
		return "struct"
	case TagUnion:
		return "union"
	}
	return "class"
}

// BaseSpecifier is one base class of a record.
type BaseSpecifier struct {
	Type    *Type
	Access  Access
	Virtual bool
}

// RecordDecl represents a class, struct or union.
type RecordDecl struct {
	BaseDecl
	Name                  string
	Tag                   TagKind
	Bases                 []BaseSpecifier
	Decls                 []Decl
	Complete              bool
	Lambda                bool // closure type of a lambda expression
	Specialized           bool
	TemplateArgs          []TemplateArgument
	NonTrivialDefaultCtor bool
	NonTrivialDtor        bool
}

// FieldDecl represents a data member.
type FieldDecl struct {
	BaseDecl
	Name    string
	Type    *Type
	Init    Expr
	Mutable bool
	Static  bool
}

// AccessSpecDecl represents public:, protected: or private: inside a record.
type AccessSpecDecl struct {
	BaseDecl
}

// TypedefDecl represents typedef T Name; or using Name = T;.
type TypedefDecl struct {
	BaseDecl
	Name  string
	Type  *Type
	Alias bool
}

// EnumDecl represents an enumeration.
type EnumDecl struct {
	BaseDecl
	Name       string
	Scoped     bool
	Underlying *Type
	Constants  []*EnumConstantDecl
}

// EnumConstantDecl is one enumerator.
type EnumConstantDecl struct {
	BaseDecl
	Name  string
	Init  Expr
	Value string
}

// UsingDirectiveDecl represents using namespace N;.
type UsingDirectiveDecl struct {
	BaseDecl
	Namespace string
}

// StaticAssertDecl represents static_assert(cond, "message");.
type StaticAssertDecl struct {
	BaseDecl
	Cond    Expr
	Message string
}

// TemplateParam is one parameter of a template declaration.
type TemplateParam struct {
	Name    string
	NonType *Type // set for non-type parameters
	Pack    bool
}

// FunctionTemplateDecl represents a function template and the
// instantiations the front end produced for it.
type FunctionTemplateDecl struct {
	BaseDecl
	Params          []TemplateParam
	Templated       *FunctionDecl
	Specializations []*FunctionDecl
}

// ClassTemplateDecl represents a class template and its instantiations.
type ClassTemplateDecl struct {
	BaseDecl
	Params          []TemplateParam
	Templated       *RecordDecl
	Specializations []*RecordDecl
}

// EmptyDecl represents a stray semicolon at declaration scope.
type EmptyDecl struct {
	BaseDecl
}

// UnknownNode stands for any node kind the tree dump carries but this
// package does not model. It has no surface syntax.
type UnknownNode struct {
	BaseDecl
	Name string
}

func (n *UnknownNode) ExprType() *Type { return nil }

func (*TranslationUnit) node()      {}
func (*NamespaceDecl) node()        {}
func (*VarDecl) node()              {}
func (*ParmVarDecl) node()          {}
func (*FunctionDecl) node()         {}
func (*RecordDecl) node()           {}
func (*FieldDecl) node()            {}
func (*AccessSpecDecl) node()       {}
func (*TypedefDecl) node()          {}
func (*EnumDecl) node()             {}
func (*EnumConstantDecl) node()     {}
func (*UsingDirectiveDecl) node()   {}
func (*StaticAssertDecl) node()     {}
func (*FunctionTemplateDecl) node() {}
func (*ClassTemplateDecl) node()    {}
func (*EmptyDecl) node()            {}
func (*UnknownNode) node()          {}

func (*TranslationUnit) decl()      {}
func (*NamespaceDecl) decl()        {}
func (*VarDecl) decl()              {}
func (*ParmVarDecl) decl()          {}
func (*FunctionDecl) decl()         {}
func (*RecordDecl) decl()           {}
func (*FieldDecl) decl()            {}
func (*AccessSpecDecl) decl()       {}
func (*TypedefDecl) decl()          {}
func (*EnumDecl) decl()             {}
func (*EnumConstantDecl) decl()     {}
func (*UsingDirectiveDecl) decl()   {}
func (*StaticAssertDecl) decl()     {}
func (*FunctionTemplateDecl) decl() {}
func (*ClassTemplateDecl) decl()    {}
func (*EmptyDecl) decl()            {}
func (*UnknownNode) decl()          {}

func (*UnknownNode) stmt() {}
func (*UnknownNode) expr() {}

func (*TranslationUnit) Kind() string      { return "TranslationUnitDecl" }
func (*NamespaceDecl) Kind() string        { return "NamespaceDecl" }
func (*VarDecl) Kind() string              { return "VarDecl" }
func (*ParmVarDecl) Kind() string          { return "ParmVarDecl" }
func (*FunctionDecl) Kind() string         { return "FunctionDecl" }
func (*RecordDecl) Kind() string           { return "CXXRecordDecl" }
func (*FieldDecl) Kind() string            { return "FieldDecl" }
func (*AccessSpecDecl) Kind() string       { return "AccessSpecDecl" }
func (*TypedefDecl) Kind() string          { return "TypedefDecl" }
func (*EnumDecl) Kind() string             { return "EnumDecl" }
func (*EnumConstantDecl) Kind() string     { return "EnumConstantDecl" }
func (*UsingDirectiveDecl) Kind() string   { return "UsingDirectiveDecl" }
func (*StaticAssertDecl) Kind() string     { return "StaticAssertDecl" }
func (*FunctionTemplateDecl) Kind() string { return "FunctionTemplateDecl" }
func (*ClassTemplateDecl) Kind() string    { return "ClassTemplateDecl" }
func (*EmptyDecl) Kind() string            { return "EmptyDecl" }
func (n *UnknownNode) Kind() string        { return n.Name }
