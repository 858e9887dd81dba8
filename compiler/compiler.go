package compiler

import (
	"strings"

	"github.com/rubiojr/insights/ast"
	"github.com/rubiojr/insights/errors"
	"github.com/rubiojr/insights/logger"
)

// Result holds the output of one translation.
type Result struct {
	Source         string
	NeedsNewHeader bool
	// Name is the translation unit's display path.
	Name string

	emitHeaders bool
}

const newHeaders = "#include <new> // for thread-safe static's placement new\n" +
	"#include <stdint.h> // for uint64_t under Linux/GCC\n\n"

// String returns the generated source including the includes it depends
// on.
func (r *Result) String() string {
	if r.NeedsNewHeader && r.emitHeaders {
		return newHeaders + r.Source
	}
	return r.Source
}

// Translate renders tu as explanatory C++ source. The tree is checked
// first; a contract violation found while generating aborts the pass and
// no partial output is returned.
func Translate(tu *ast.TranslationUnit, opts Options) (res *Result, err error) {
	if tu == nil {
		return nil, errors.AssertionFailedf("translate: nil translation unit")
	}
	if err := ast.DefaultChecks().Run(tu); err != nil {
		return nil, errors.Wrapf(err, "%s", tu.Name)
	}

	pass := NewPass(opts)
	out := NewBuffer(pass.opts.IndentWidth)
	g := NewGenerator(out, pass)

	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(error)
			if !ok || !errors.HasAssertionFailure(perr) {
				panic(r)
			}
			res, err = nil, errors.Wrapf(perr, "%s", tu.Name)
		}
	}()

	logger.Logger.Debugw("translate", "unit", tu.Name, "decls", len(tu.Decls))
	g.InsertArg(tu)
	logger.Logger.Debugw("translated", "unit", tu.Name, "bytes", out.Len(), "localStatic", pass.NeedsNewHeader())

	return &Result{
		Source:         out.String(),
		NeedsNewHeader: pass.NeedsNewHeader(),
		Name:           tu.Name,
		emitHeaders:    pass.opts.EmitHeaders,
	}, nil
}

// Compiler loads tree dumps and translates them with fixed options.
type Compiler struct {
	Options Options
}

// Compile loads the dump at path and translates it.
func (c *Compiler) Compile(path string) (*Result, error) {
	tu, err := ast.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Translate(tu, c.Options)
}

// Emit returns the complete generated source for the dump at path.
func (c *Compiler) Emit(path string) (string, error) {
	res, err := c.Compile(path)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

// TranslateString is a convenience for tests and tools: it loads a dump
// from a string.
func TranslateString(dump string, opts Options) (*Result, error) {
	tu, err := ast.Load(strings.NewReader(dump), "<string>")
	if err != nil {
		return nil, errors.Wrap(err, "loading dump")
	}
	return Translate(tu, opts)
}
