package compiler

import (
	"fmt"

	"github.com/rubiojr/insights/ast"
)

// needsGuard reports whether v is a function-local static whose
// initialization the compiler protects with a guard variable.
func needsGuard(v *ast.VarDecl) bool {
	if v == nil || !v.IsStaticLocal() || v.Evaluatable || v.Type == nil {
		return false
	}
	rec := v.Type.AsRecord()
	return rec != nil && (rec.NonTrivialDtor || rec.NonTrivialDefaultCtor)
}

func guardName(v *ast.VarDecl) string   { return internalVarName(v.Name) + "Guard" }
func storageName(v *ast.VarDecl) string { return internalVarName(v.Name) }

// guardedStaticRef is how the object is reached once it lives in raw
// storage: *reinterpret_cast<T*>(__x).
func (g *Generator) guardedStaticRef(v *ast.VarDecl) ast.Expr {
	f := g.pass.factory
	storage := f.Named(storageName(v))
	return f.Deref(f.Reinterpret(f.PointerTo(v.Type), storage))
}

// canThrow reports whether constructing from init may throw.
func canThrow(init ast.Expr) bool {
	switch x := skipCleanups(init).(type) {
	case nil:
		return false
	case *ast.ConstructExpr:
		return x.Ctor == nil || !x.Ctor.Noexcept
	}
	return true
}

// insertGuardedStatic renders the thread-safe initialization of a local
// static: a guard word, raw storage, and placement new under the
// __cxa_guard protocol.
func (g *Generator) insertGuardedStatic(v *ast.VarDecl) {
	g.pass.haveLocalStatic = true
	f := g.pass.factory

	guard := f.StaticLocal(guardName(v), f.Builtin("uint64_t"))
	storage := f.StaticLocal(storageName(v), f.ArrayOf(f.Builtin("char"), f.SizeOf(v.Type)))
	storage.AlignAs = v.Type

	g.InsertArg(guard)
	g.InsertArg(storage)
	g.out.NewLine()

	guardAddr := func() ast.Expr { return f.AddrOf(f.Ref(guard)) }

	construct := []ast.Stmt{
		f.PlacementNew(f.AddrOf(f.Ref(storage)), v.Type, v.Init),
		f.Binary("=", f.Ref(guard), f.Bool(true)),
	}
	var body []ast.Stmt
	if canThrow(v.Init) {
		body = append(body, f.TryCatchAll(
			f.Compound(construct...),
			f.Compound(f.Call(f.Named("__cxa_guard_abort"), guardAddr()), f.Rethrow()),
		))
	} else {
		body = append(body, construct...)
	}
	body = append(body, f.Call(f.Named("__cxa_guard_release"), guardAddr()))

	if rec := v.Type.AsRecord(); rec != nil && rec.NonTrivialDtor {
		t := g.typeName(v.Type)
		body = append(body, f.CommentStmt(fmt.Sprintf("__cxa_atexit(%s::~%s, &%s, &__dso_handle);",
			t, recordName(rec), storageName(v))))
	}

	acquire := f.If(f.Call(f.Named("__cxa_guard_acquire"), guardAddr()), f.Compound(body...))
	unset := f.Binary("==", f.Paren(f.Binary("&", f.Ref(guard), f.Int("0xff"))), f.Int("0"))
	g.InsertArg(f.If(unset, f.Compound(acquire)))
	g.out.NewLine()
}
