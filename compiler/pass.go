package compiler

import (
	"strings"

	"github.com/rubiojr/insights/ast"
)

// Pass holds the state shared by every generator working on one
// translation unit. Independent translations use independent passes.
type Pass struct {
	opts    Options
	factory *ast.Factory

	// haveLocalStatic is set when a function-local static needed a
	// guarded initialization. Read once when the pass ends.
	haveLocalStatic bool

	// scopes is the namespace/class nesting currently being generated.
	scopes []string
}

// NewPass returns a pass for one translation unit.
func NewPass(opts Options) *Pass {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = defaultIndentWidth
	}
	return &Pass{opts: opts, factory: ast.NewFactory()}
}

// NeedsNewHeader reports whether the output uses placement new and the
// guard variables of a local static expansion.
func (p *Pass) NeedsNewHeader() bool { return p.haveLocalStatic }

func (p *Pass) pushScope(name string) { p.scopes = append(p.scopes, name) }

func (p *Pass) popScope() {
	if len(p.scopes) > 0 {
		p.scopes = p.scopes[:len(p.scopes)-1]
	}
}

// removeCurrentScope shortens a qualified name by the scope currently
// being generated. Inside ns::Foo, "ns::Foo::Bar" becomes "Bar" and
// "ns::Baz" becomes "Baz". Member pointers keep their qualifier.
func (p *Pass) removeCurrentScope(name string) string {
	for i := len(p.scopes); i > 0; i-- {
		prefix := strings.Join(p.scopes[:i], "::") + "::"
		idx := qualifierIndex(name, prefix)
		if idx < 0 {
			continue
		}
		rest := name[idx+len(prefix):]
		if strings.HasPrefix(rest, "*") {
			return name
		}
		return name[:idx] + rest
	}
	return name
}

// qualifierIndex finds prefix in name where it starts a qualified name
// rather than the tail of a longer identifier.
func qualifierIndex(name, prefix string) int {
	from := 0
	for {
		i := strings.Index(name[from:], prefix)
		if i < 0 {
			return -1
		}
		i += from
		if i == 0 || !isIdentByte(name[i-1]) && name[i-1] != ':' {
			return i
		}
		from = i + 1
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
