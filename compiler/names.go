package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rubiojr/insights/ast"
)

// lineColumnName builds the synthesized names of closure types, return
// type aliases and anonymous records: prefix + line + "_" + column.
func lineColumnName(prefix string, loc ast.Loc) string {
	return fmt.Sprintf("%s%d_%d", prefix, loc.Line, loc.Col)
}

func lambdaName(loc ast.Loc) string  { return lineColumnName("__lambda_", loc) }
func retTypeName(loc ast.Loc) string { return lineColumnName("retType_", loc) }
func anonName(loc ast.Loc) string    { return lineColumnName("__anon_", loc) }

// internalVarName is the name of a variable the expansion introduces
// next to a user variable.
func internalVarName(name string) string { return "__" + name }

// recordName returns the name a record is spelled with, synthesizing one
// for closure types and anonymous records.
func recordName(rec *ast.RecordDecl) string {
	switch {
	case rec.Lambda:
		return lambdaName(rec.Loc)
	case rec.Name == "":
		return anonName(rec.Loc)
	}
	return rec.Name
}

// typeName renders t as it is spelled without a declarator.
func (g *Generator) typeName(t *ast.Type) string {
	return g.declarator(t, "")
}

// declarator renders t around inner (usually a variable name), following
// C++ declarator syntax: "int * p", "int a[3]", "int (*fp)(char)".
func (g *Generator) declarator(t *ast.Type, inner string) string {
	if t == nil {
		return inner
	}
	switch t.Kind {
	case ast.TypePointer, ast.TypeLValueRef, ast.TypeRValueRef:
		sym := "*"
		if t.Kind == ast.TypeLValueRef {
			sym = "&"
		} else if t.Kind == ast.TypeRValueRef {
			sym = "&&"
		}
		if t.Const {
			sym += "const"
		}
		if t.Elem != nil && (t.Elem.Kind == ast.TypeArray || t.Elem.Kind == ast.TypeIncompleteArray || t.Elem.Kind == ast.TypeFunction) {
			return g.declarator(t.Elem, "("+sym+inner+")")
		}
		switch {
		case inner == "":
		case inner[0] == '*' || inner[0] == '&':
			sym += inner
		default:
			sym += " " + inner
		}
		return g.declarator(t.Elem, sym)
	case ast.TypeArray:
		return g.declarator(t.Elem, inner+"["+g.arraySize(t)+"]")
	case ast.TypeIncompleteArray:
		return g.declarator(t.Elem, inner+"[]")
	case ast.TypeFunction:
		params := make([]string, 0, len(t.Params)+1)
		for _, p := range t.Params {
			params = append(params, g.typeName(p))
		}
		if t.Variadic {
			params = append(params, "...")
		}
		return g.declarator(t.Elem, inner+"("+strings.Join(params, ", ")+")")
	case ast.TypeAuto:
		if t.Elem != nil {
			deduced := *t.Elem
			deduced.Const = deduced.Const || t.Const
			deduced.Volatile = deduced.Volatile || t.Volatile
			return g.declarator(&deduced, inner)
		}
	}

	base := qualifiers(t) + g.baseTypeName(t)
	if inner == "" {
		return base
	}
	return base + " " + inner
}

func qualifiers(t *ast.Type) string {
	var q string
	if t.Const {
		q += "const "
	}
	if t.Volatile {
		q += "volatile "
	}
	return q
}

func (g *Generator) baseTypeName(t *ast.Type) string {
	switch t.Kind {
	case ast.TypeAuto:
		return "auto"
	case ast.TypeRecord:
		if t.Record != nil && (t.Record.Lambda || t.Record.Name == "") {
			return recordName(t.Record)
		}
		name := t.Name
		if name == "" && t.Record != nil {
			name = t.Record.Name
		}
		args := t.Args
		if len(args) == 0 && t.Record != nil && t.Record.Specialized {
			args = t.Record.TemplateArgs
		}
		if len(args) > 0 {
			name += g.templateArgs(args)
		}
		return g.pass.removeCurrentScope(name)
	case ast.TypeEnum, ast.TypeTypedef:
		return g.pass.removeCurrentScope(t.Name)
	}
	return t.Name
}

func (g *Generator) arraySize(t *ast.Type) string {
	if t.SizeExpr != nil {
		return g.out.Capture(func() { g.InsertArg(t.SizeExpr) })
	}
	return strconv.FormatInt(t.Size, 10)
}

// templateArgs renders <args>. When the last argument itself ends in '>'
// a space separates the two closing brackets.
func (g *Generator) templateArgs(args []ast.TemplateArgument) string {
	var sb strings.Builder
	sb.WriteString("<")
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(g.templateArg(a))
	}
	if strings.HasSuffix(sb.String(), ">") {
		sb.WriteString(" ")
	}
	sb.WriteString(">")
	return sb.String()
}

func (g *Generator) templateArg(a ast.TemplateArgument) string {
	switch a.Kind {
	case ast.ArgType:
		return g.typeName(a.Type)
	case ast.ArgIntegral:
		if a.Type != nil && a.Type.IsBool() {
			if a.Value == "0" || a.Value == "false" {
				return "false"
			}
			return "true"
		}
		return a.Value + integerSuffix(a.Type)
	case ast.ArgExpression:
		return g.out.Capture(func() { g.InsertArg(a.Expr) })
	case ast.ArgPack:
		parts := make([]string, 0, len(a.Pack))
		for _, p := range a.Pack {
			parts = append(parts, g.templateArg(p))
		}
		return strings.Join(parts, ", ")
	case ast.ArgNullPtr:
		return "nullptr"
	case ast.ArgDeclaration:
		if a.Decl != nil {
			return "&" + g.declName(a.Decl)
		}
	case ast.ArgTemplate:
		return a.Name
	}
	return ""
}

// integerSuffix returns the literal suffix that keeps the literal's type.
func integerSuffix(t *ast.Type) string {
	c := t.Canonical()
	if c == nil || c.Kind != ast.TypeBuiltin {
		return ""
	}
	switch c.Name {
	case "unsigned int":
		return "U"
	case "long":
		return "L"
	case "unsigned long":
		return "UL"
	case "long long":
		return "LL"
	case "unsigned long long":
		return "ULL"
	}
	return ""
}

// floatingSuffix returns the literal suffix for a floating point type.
func floatingSuffix(t *ast.Type) string {
	c := t.Canonical()
	if c == nil || c.Kind != ast.TypeBuiltin {
		return ""
	}
	switch c.Name {
	case "float":
		return "f"
	case "long double":
		return "L"
	}
	return ""
}

// declName is the name a reference to d is spelled with.
func (g *Generator) declName(d ast.Decl) string {
	switch x := d.(type) {
	case *ast.VarDecl:
		return x.Name
	case *ast.ParmVarDecl:
		return x.Name
	case *ast.FieldDecl:
		return x.Name
	case *ast.FunctionDecl:
		return g.functionName(x)
	case *ast.EnumConstantDecl:
		return x.Name
	case *ast.RecordDecl:
		return recordName(x)
	case *ast.TypedefDecl:
		return x.Name
	case *ast.EnumDecl:
		return x.Name
	case *ast.NamespaceDecl:
		return x.Name
	}
	return ""
}

// functionName is the unqualified name of f as spelled in a declaration.
func (g *Generator) functionName(f *ast.FunctionDecl) string {
	switch f.FuncKind {
	case ast.FuncConstructor:
		if f.Parent != nil {
			return recordName(f.Parent)
		}
	case ast.FuncDestructor:
		if f.Parent != nil {
			return "~" + recordName(f.Parent)
		}
	case ast.FuncConversion:
		if f.Name == "" {
			return "operator " + g.typeName(f.Return)
		}
	}
	return f.Name
}
