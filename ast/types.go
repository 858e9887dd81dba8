package ast

// TypeKind classifies a resolved type.
type TypeKind int

const (
	TypeBuiltin TypeKind = iota
	TypeRecord
	TypeEnum
	TypePointer
	TypeLValueRef
	TypeRValueRef
	TypeArray
	TypeIncompleteArray
	TypeFunction
	TypeTypedef
	TypeTemplateParam
	TypeAuto
)

// Type is a resolved, qualified type. Elem is the pointee, referenced,
// element, return, deduced or underlying type depending on Kind.
type Type struct {
	Kind     TypeKind
	Name     string
	Const    bool
	Volatile bool
	Elem     *Type
	Size     int64
	SizeExpr Expr // array bound that is not a plain number
	Params   []*Type
	Variadic bool
	Record   *RecordDecl
	Args     []TemplateArgument
}

// Canonical strips typedefs and deduced auto, keeping the outermost
// qualifiers.
func (t *Type) Canonical() *Type {
	cur := t
	for cur != nil && (cur.Kind == TypeTypedef || cur.Kind == TypeAuto) && cur.Elem != nil {
		next := *cur.Elem
		next.Const = next.Const || cur.Const
		next.Volatile = next.Volatile || cur.Volatile
		cur = &next
	}
	return cur
}

// IsPointer reports whether t is a pointer after desugaring.
func (t *Type) IsPointer() bool {
	c := t.Canonical()
	return c != nil && c.Kind == TypePointer
}

// IsReference reports whether t is an lvalue or rvalue reference.
func (t *Type) IsReference() bool {
	c := t.Canonical()
	return c != nil && (c.Kind == TypeLValueRef || c.Kind == TypeRValueRef)
}

// IsArray reports whether t is an array of known or unknown bound.
func (t *Type) IsArray() bool {
	c := t.Canonical()
	return c != nil && (c.Kind == TypeArray || c.Kind == TypeIncompleteArray)
}

// IsBool reports whether t is the builtin bool.
func (t *Type) IsBool() bool {
	c := t.Canonical()
	return c != nil && c.Kind == TypeBuiltin && c.Name == "bool"
}

var integralNames = map[string]bool{
	"char": true, "signed char": true, "unsigned char": true,
	"wchar_t": true, "char8_t": true, "char16_t": true, "char32_t": true,
	"short": true, "unsigned short": true,
	"int": true, "unsigned int": true,
	"long": true, "unsigned long": true,
	"long long": true, "unsigned long long": true,
	"__int128": true, "unsigned __int128": true,
}

var floatingNames = map[string]bool{
	"float": true, "double": true, "long double": true,
}

// IsIntegral reports whether t is a builtin integer or enumeration type.
func (t *Type) IsIntegral() bool {
	c := t.Canonical()
	if c == nil {
		return false
	}
	if c.Kind == TypeEnum {
		return true
	}
	return c.Kind == TypeBuiltin && integralNames[c.Name]
}

// IsFloating reports whether t is a builtin floating point type.
func (t *Type) IsFloating() bool {
	c := t.Canonical()
	return c != nil && c.Kind == TypeBuiltin && floatingNames[c.Name]
}

// AsRecord returns the record declaration behind t, or nil.
func (t *Type) AsRecord() *RecordDecl {
	c := t.Canonical()
	if c == nil || c.Kind != TypeRecord {
		return nil
	}
	return c.Record
}

// TemplateArgKind classifies a template argument.
type TemplateArgKind int

const (
	ArgType TemplateArgKind = iota
	ArgIntegral
	ArgExpression
	ArgPack
	ArgNullPtr
	ArgDeclaration
	ArgTemplate
)

// TemplateArgument is one argument of a template specialization.
type TemplateArgument struct {
	Kind  TemplateArgKind
	Type  *Type  // ArgType, and the value type of ArgIntegral
	Value string // ArgIntegral
	Expr  Expr   // ArgExpression
	Pack  []TemplateArgument
	Decl  Decl   // ArgDeclaration
	Name  string // ArgTemplate
}
