package ast

import (
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rubiojr/insights/errors"
)

// LoadFile reads a tree dump (YAML or JSON) from path.
func LoadFile(path string) (*TranslationUnit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	return Load(f, path)
}

// Load decodes a tree dump produced by a C++ front end. The dump is a
// mapping with an optional name and a list of top-level decls; every
// node is a mapping with a kind. Declarations may carry an id and be
// referenced elsewhere as {ref: id}. name is used in error messages.
func Load(r io.Reader, name string) (*TranslationUnit, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.Newf("%s: empty tree dump", name)
		}
		return nil, errors.Wrapf(err, "%s: decoding tree dump", name)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	l := &loader{name: name, ids: make(map[string]Decl)}
	tu := l.translationUnit(root)
	for _, fix := range l.fixups {
		if l.err != nil {
			break
		}
		fix()
	}
	if l.err != nil {
		return nil, l.err
	}
	return tu, nil
}

// loader decodes yaml nodes into tree nodes. The first error sticks and
// turns every later call into a no-op.
type loader struct {
	name   string
	ids    map[string]Decl
	fixups []func()
	err    error
}

type fields struct {
	node *yaml.Node
	m    map[string]*yaml.Node
}

func (l *loader) fail(n *yaml.Node, format string, args ...interface{}) {
	if l.err != nil {
		return
	}
	msg := errors.Newf(format, args...)
	if n != nil {
		l.err = errors.Wrapf(msg, "%s:%d:%d", l.name, n.Line, n.Column)
		return
	}
	l.err = errors.Wrapf(msg, "%s", l.name)
}

func (l *loader) fields(n *yaml.Node) fields {
	f := fields{node: n, m: map[string]*yaml.Node{}}
	if n == nil || l.err != nil {
		return f
	}
	if n.Kind != yaml.MappingNode {
		l.fail(n, "expected a mapping")
		return f
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		f.m[n.Content[i].Value] = n.Content[i+1]
	}
	return f
}

// single wraps a list element so it can go through the keyed helpers.
func single(n *yaml.Node) fields {
	return fields{node: n, m: map[string]*yaml.Node{"s": n}}
}

func (f fields) has(key string) bool {
	v, ok := f.m[key]
	return ok && !(v.Kind == yaml.ScalarNode && v.Tag == "!!null")
}

func (f fields) str(key string) string {
	if v, ok := f.m[key]; ok && v.Kind == yaml.ScalarNode {
		return v.Value
	}
	return ""
}

func (l *loader) boolean(f fields, key string) bool {
	v, ok := f.m[key]
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v.Value)
	if err != nil {
		l.fail(v, "%s: expected a boolean, got %q", key, v.Value)
	}
	return b
}

func (l *loader) integer(f fields, key string) int64 {
	v, ok := f.m[key]
	if !ok {
		return 0
	}
	i, err := strconv.ParseInt(v.Value, 0, 64)
	if err != nil {
		l.fail(v, "%s: expected an integer, got %q", key, v.Value)
	}
	return i
}

func (l *loader) loc(f fields) Loc {
	v, ok := f.m["loc"]
	if !ok {
		return Loc{}
	}
	line, col, found := strings.Cut(v.Value, ":")
	ln, err1 := strconv.Atoi(line)
	cl, err2 := strconv.Atoi(col)
	if !found || err1 != nil || err2 != nil {
		l.fail(v, "loc: expected line:col, got %q", v.Value)
	}
	return Loc{Line: ln, Col: cl}
}

func (l *loader) access(f fields) Access {
	switch f.str("access") {
	case "":
		return AccessNone
	case "public":
		return AccessPublic
	case "protected":
		return AccessProtected
	case "private":
		return AccessPrivate
	default:
		l.fail(f.m["access"], "unknown access %q", f.str("access"))
	}
	return AccessNone
}

func (l *loader) base(f fields) BaseDecl {
	return BaseDecl{Loc: l.loc(f), Access: l.access(f), Implicit: l.boolean(f, "implicit")}
}

func (l *loader) storage(f fields) StorageClass {
	switch f.str("storage") {
	case "static":
		return StorageStatic
	case "extern":
		return StorageExtern
	}
	return StorageNone
}

func (l *loader) register(f fields, d Decl) {
	id := f.str("id")
	if id == "" {
		return
	}
	if _, dup := l.ids[id]; dup {
		l.fail(f.m["id"], "duplicate id %q", id)
		return
	}
	l.ids[id] = d
}

// declRef resolves key either as {ref: id}, deferred until every id is
// known, or as an inline declaration.
func declRef[T Decl](l *loader, f fields, key string, dst *T) {
	v, ok := f.m[key]
	if !ok || l.err != nil {
		return
	}
	assign := func(d Decl) {
		t, ok := d.(T)
		if !ok {
			l.fail(v, "%s: %s is not a valid target", key, d.Kind())
			return
		}
		*dst = t
	}
	if v.Kind == yaml.MappingNode {
		vf := l.fields(v)
		if id := vf.str("ref"); id != "" && len(vf.m) == 1 {
			l.fixups = append(l.fixups, func() {
				d, ok := l.ids[id]
				if !ok {
					l.fail(v, "%s: unresolved ref %q", key, id)
					return
				}
				assign(d)
			})
			return
		}
	}
	if d := l.decl(v); d != nil {
		assign(d)
	}
}

func (l *loader) translationUnit(n *yaml.Node) *TranslationUnit {
	f := l.fields(n)
	tu := &TranslationUnit{Name: f.str("name"), Decls: l.decls(f, "decls")}
	if tu.Name == "" {
		tu.Name = l.name
	}
	return tu
}

func (l *loader) decls(f fields, key string) []Decl {
	v, ok := f.m[key]
	if !ok {
		return nil
	}
	if v.Kind != yaml.SequenceNode {
		l.fail(v, "%s: expected a list", key)
		return nil
	}
	out := make([]Decl, 0, len(v.Content))
	for _, c := range v.Content {
		out = append(out, l.decl(c))
	}
	return out
}

func (l *loader) exprs(f fields, key string) []Expr {
	v, ok := f.m[key]
	if !ok {
		return nil
	}
	if v.Kind != yaml.SequenceNode {
		l.fail(v, "%s: expected a list", key)
		return nil
	}
	out := make([]Expr, 0, len(v.Content))
	for _, c := range v.Content {
		out = append(out, l.expr(c))
	}
	return out
}

func (l *loader) decl(n *yaml.Node) Decl {
	node := l.node(n)
	if node == nil {
		return nil
	}
	d, ok := node.(Decl)
	if !ok {
		l.fail(n, "%s is not a declaration", node.Kind())
		return nil
	}
	return d
}

func (l *loader) stmt(n *yaml.Node) Stmt {
	node := l.node(n)
	if node == nil {
		return nil
	}
	if d, ok := node.(Decl); ok {
		if _, unknown := d.(*UnknownNode); !unknown {
			return &DeclStmt{Decls: []Decl{d}}
		}
	}
	s, ok := node.(Stmt)
	if !ok {
		l.fail(n, "%s is not a statement", node.Kind())
		return nil
	}
	return s
}

func (l *loader) expr(n *yaml.Node) Expr {
	node := l.node(n)
	if node == nil {
		return nil
	}
	e, ok := node.(Expr)
	if !ok {
		l.fail(n, "%s is not an expression", node.Kind())
		return nil
	}
	return e
}

func (l *loader) optExpr(f fields, key string) Expr {
	if !f.has(key) {
		return nil
	}
	return l.expr(f.m[key])
}

func (l *loader) optStmt(f fields, key string) Stmt {
	if !f.has(key) {
		return nil
	}
	return l.stmt(f.m[key])
}

func (l *loader) compound(f fields, key string) *CompoundStmt {
	if !f.has(key) {
		return nil
	}
	s := l.stmt(f.m[key])
	if s == nil {
		return nil
	}
	c, ok := s.(*CompoundStmt)
	if !ok {
		l.fail(f.m[key], "%s: expected CompoundStmt, got %s", key, s.Kind())
	}
	return c
}

func (l *loader) varDecl(f fields, key string) *VarDecl {
	var v *VarDecl
	if f.has(key) {
		declRef(l, f, key, &v)
	}
	return v
}

func (l *loader) node(n *yaml.Node) Node {
	if l.err != nil || n == nil {
		return nil
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil
	}
	f := l.fields(n)
	kind := f.str("kind")
	if kind == "" {
		l.fail(n, "node without kind")
		return nil
	}
	if build, ok := declKinds[kind]; ok {
		d := build(l, f)
		l.register(f, d)
		return d
	}
	if build, ok := stmtKinds[kind]; ok {
		return build(l, f)
	}
	if build, ok := exprKinds[kind]; ok {
		return build(l, f)
	}
	u := &UnknownNode{BaseDecl: BaseDecl{Loc: l.loc(f)}, Name: kind}
	l.register(f, u)
	return u
}

var declKinds map[string]func(*loader, fields) Decl

func init() {
	function := func(kind FuncKind) func(*loader, fields) Decl {
		return func(l *loader, f fields) Decl { return l.function(f, kind) }
	}
	record := func(l *loader, f fields) Decl { return l.record(f) }

	declKinds = map[string]func(*loader, fields) Decl{
		"NamespaceDecl": func(l *loader, f fields) Decl {
			return &NamespaceDecl{BaseDecl: l.base(f), Name: f.str("name"), Inline: l.boolean(f, "inline"), Decls: l.decls(f, "decls")}
		},
		"VarDecl": func(l *loader, f fields) Decl { return l.variable(f) },
		"ParmVarDecl": func(l *loader, f fields) Decl {
			return &ParmVarDecl{BaseDecl: l.base(f), Name: f.str("name"), Type: l.typeField(f, "type"), Default: l.optExpr(f, "default")}
		},
		"FunctionDecl":       function(FuncPlain),
		"CXXMethodDecl":      function(FuncMethod),
		"CXXConstructorDecl": function(FuncConstructor),
		"CXXDestructorDecl":  function(FuncDestructor),
		"CXXConversionDecl":  function(FuncConversion),
		"CXXRecordDecl":      record,
		"RecordDecl":         record,
		"FieldDecl": func(l *loader, f fields) Decl {
			return &FieldDecl{BaseDecl: l.base(f), Name: f.str("name"), Type: l.typeField(f, "type"),
				Init: l.optExpr(f, "init"), Mutable: l.boolean(f, "mutable"), Static: l.boolean(f, "static")}
		},
		"AccessSpecDecl": func(l *loader, f fields) Decl { return &AccessSpecDecl{BaseDecl: l.base(f)} },
		"TypedefDecl": func(l *loader, f fields) Decl {
			return &TypedefDecl{BaseDecl: l.base(f), Name: f.str("name"), Type: l.typeField(f, "type")}
		},
		"TypeAliasDecl": func(l *loader, f fields) Decl {
			return &TypedefDecl{BaseDecl: l.base(f), Name: f.str("name"), Type: l.typeField(f, "type"), Alias: true}
		},
		"EnumDecl": func(l *loader, f fields) Decl { return l.enum(f) },
		"EnumConstantDecl": func(l *loader, f fields) Decl {
			return &EnumConstantDecl{BaseDecl: l.base(f), Name: f.str("name"), Init: l.optExpr(f, "init"), Value: f.str("value")}
		},
		"UsingDirectiveDecl": func(l *loader, f fields) Decl {
			return &UsingDirectiveDecl{BaseDecl: l.base(f), Namespace: f.str("namespace")}
		},
		"StaticAssertDecl": func(l *loader, f fields) Decl {
			return &StaticAssertDecl{BaseDecl: l.base(f), Cond: l.optExpr(f, "cond"), Message: f.str("message")}
		},
		"FunctionTemplateDecl": func(l *loader, f fields) Decl { return l.functionTemplate(f) },
		"ClassTemplateDecl":    func(l *loader, f fields) Decl { return l.classTemplate(f) },
		"EmptyDecl":            func(l *loader, f fields) Decl { return &EmptyDecl{BaseDecl: l.base(f)} },
	}
}

func (l *loader) variable(f fields) *VarDecl {
	v := &VarDecl{
		BaseDecl:    l.base(f),
		Name:        f.str("name"),
		Type:        l.typeField(f, "type"),
		Storage:     l.storage(f),
		Local:       l.boolean(f, "local"),
		Constexpr:   l.boolean(f, "constexpr"),
		Inline:      l.boolean(f, "inline"),
		ThreadLocal: l.boolean(f, "threadLocal"),
		Evaluatable: l.boolean(f, "evaluatable"),
	}
	if f.has("alignAs") {
		v.AlignAs = l.typeField(f, "alignAs")
	}
	switch f.str("initStyle") {
	case "", "c":
		v.InitStyle = InitC
	case "call":
		v.InitStyle = InitCall
	case "list":
		v.InitStyle = InitList
	default:
		l.fail(f.m["initStyle"], "unknown initStyle %q", f.str("initStyle"))
	}
	v.Init = l.optExpr(f, "init")
	return v
}

func (l *loader) function(f fields, kind FuncKind) *FunctionDecl {
	fn := &FunctionDecl{
		BaseDecl:     l.base(f),
		Name:         f.str("name"),
		Qualifier:    f.str("qualifier"),
		FuncKind:     kind,
		Storage:      l.storage(f),
		Inline:       l.boolean(f, "inline"),
		Virtual:      l.boolean(f, "virtual"),
		Explicit:     l.boolean(f, "explicit"),
		Constexpr:    l.boolean(f, "constexpr"),
		Consteval:    l.boolean(f, "consteval"),
		Const:        l.boolean(f, "const"),
		Noexcept:     l.boolean(f, "noexcept"),
		Override:     l.boolean(f, "override"),
		Defaulted:    l.boolean(f, "defaulted"),
		Deleted:      l.boolean(f, "deleted"),
		Variadic:     l.boolean(f, "variadic"),
		Specialized:  l.boolean(f, "specialized"),
		Explicitly:   l.boolean(f, "explicitSpecialization"),
		TemplateArgs: l.templateArgs(f, "templateArgs"),
	}
	if f.has("return") {
		fn.Return = l.typeField(f, "return")
	}
	if v, ok := f.m["params"]; ok {
		for _, p := range v.Content {
			d := l.decl(p)
			pv, ok := d.(*ParmVarDecl)
			if !ok && d != nil {
				l.fail(p, "params: expected ParmVarDecl, got %s", d.Kind())
			}
			fn.Params = append(fn.Params, pv)
		}
	}
	if v, ok := f.m["inits"]; ok {
		for _, in := range v.Content {
			inf := l.fields(in)
			ci := &CtorInitializer{Member: inf.str("member"), Init: l.optExpr(inf, "init")}
			if inf.has("base") {
				ci.Base = l.typeField(inf, "base")
			}
			fn.Inits = append(fn.Inits, ci)
		}
	}
	declRef(l, f, "inherited", &fn.Inherited)
	declRef(l, f, "parent", &fn.Parent)
	fn.Body = l.compound(f, "body")
	return fn
}

func (l *loader) record(f fields) *RecordDecl {
	rec := &RecordDecl{
		BaseDecl:              l.base(f),
		Name:                  f.str("name"),
		Complete:              !f.has("complete") || l.boolean(f, "complete"),
		Lambda:                l.boolean(f, "lambda"),
		Specialized:           l.boolean(f, "specialized"),
		TemplateArgs:          l.templateArgs(f, "templateArgs"),
		NonTrivialDefaultCtor: l.boolean(f, "nonTrivialDefaultCtor"),
		NonTrivialDtor:        l.boolean(f, "nonTrivialDtor"),
	}
	switch f.str("tag") {
	case "", "class":
		rec.Tag = TagClass
	case "struct":
		rec.Tag = TagStruct
	case "union":
		rec.Tag = TagUnion
	default:
		l.fail(f.m["tag"], "unknown tag %q", f.str("tag"))
	}
	if v, ok := f.m["bases"]; ok {
		for _, b := range v.Content {
			bf := l.fields(b)
			rec.Bases = append(rec.Bases, BaseSpecifier{Type: l.typeField(bf, "type"), Access: l.access(bf), Virtual: l.boolean(bf, "virtual")})
		}
	}
	rec.Decls = l.decls(f, "decls")
	for _, d := range rec.Decls {
		if fn, ok := d.(*FunctionDecl); ok && fn.Parent == nil {
			fn.Parent = rec
		}
	}
	return rec
}

func (l *loader) enum(f fields) *EnumDecl {
	e := &EnumDecl{BaseDecl: l.base(f), Name: f.str("name"), Scoped: l.boolean(f, "scoped")}
	if f.has("underlying") {
		e.Underlying = l.typeField(f, "underlying")
	}
	for _, d := range l.decls(f, "constants") {
		c, ok := d.(*EnumConstantDecl)
		if !ok {
			l.fail(f.m["constants"], "constants: expected EnumConstantDecl")
			break
		}
		e.Constants = append(e.Constants, c)
	}
	return e
}

func (l *loader) templateParams(f fields) []TemplateParam {
	v, ok := f.m["params"]
	if !ok {
		return nil
	}
	var out []TemplateParam
	for _, p := range v.Content {
		if p.Kind == yaml.ScalarNode {
			out = append(out, TemplateParam{Name: p.Value})
			continue
		}
		pf := l.fields(p)
		tp := TemplateParam{Name: pf.str("name"), Pack: l.boolean(pf, "pack")}
		if pf.has("type") {
			tp.NonType = l.typeField(pf, "type")
		}
		out = append(out, tp)
	}
	return out
}

func (l *loader) functionTemplate(f fields) *FunctionTemplateDecl {
	ft := &FunctionTemplateDecl{BaseDecl: l.base(f), Params: l.templateParams(f)}
	declRef(l, f, "templated", &ft.Templated)
	if v, ok := f.m["specializations"]; ok {
		// Refs resolve later through pointers into the slice, so it is
		// sized once up front.
		ft.Specializations = make([]*FunctionDecl, len(v.Content))
		for i, s := range v.Content {
			declRef(l, single(s), "s", &ft.Specializations[i])
		}
	}
	return ft
}

func (l *loader) classTemplate(f fields) *ClassTemplateDecl {
	ct := &ClassTemplateDecl{BaseDecl: l.base(f), Params: l.templateParams(f)}
	declRef(l, f, "templated", &ct.Templated)
	if v, ok := f.m["specializations"]; ok {
		ct.Specializations = make([]*RecordDecl, len(v.Content))
		for i, s := range v.Content {
			declRef(l, single(s), "s", &ct.Specializations[i])
		}
	}
	return ct
}
