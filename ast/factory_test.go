package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryStaticLocal(t *testing.T) {
	f := NewFactory()
	v := f.StaticLocal("__sGuard", f.Builtin("uint64_t"))

	assert.True(t, v.IsStaticLocal())
	assert.True(t, v.Evaluatable, "synthesized statics never need a guard themselves")
	assert.Equal(t, "uint64_t", v.Type.Name)
}

func TestFactoryTypes(t *testing.T) {
	f := NewFactory()
	rec := &Type{Kind: TypeRecord, Name: "S"}

	p := f.PointerTo(rec)
	assert.True(t, p.IsPointer())
	assert.Same(t, rec, p.Elem)

	size := f.SizeOf(rec)
	arr := f.ArrayOf(f.Builtin("char"), size)
	assert.Equal(t, TypeArray, arr.Kind)
	assert.Same(t, size, arr.SizeExpr.(*SizeOfExpr))
}

func TestFactoryTryCatchAll(t *testing.T) {
	f := NewFactory()
	body := f.Compound(f.Call(f.Named("work")))
	handler := f.Compound(f.Rethrow())

	try := f.TryCatchAll(body, handler)
	require.Len(t, try.Handlers, 1)
	assert.Nil(t, try.Handlers[0].Param, "catch(...) has no parameter")
	assert.Same(t, handler, try.Handlers[0].Body)
	assert.Empty(t, MissingChild(try))
}

func TestFactoryExpressions(t *testing.T) {
	f := NewFactory()
	v := f.Var("x", f.Builtin("int"))

	ref := f.Ref(v)
	assert.Same(t, v, ref.Decl.(*VarDecl))

	addr := f.AddrOf(ref)
	assert.Equal(t, "&", addr.Op)
	assert.Equal(t, "*", f.Deref(addr).Op)

	assert.Equal(t, "int", f.Int("0xff").Type.Name)
	assert.True(t, f.Bool(true).Type.IsBool())

	cast := f.Reinterpret(f.PointerTo(v.Type), ref)
	assert.Equal(t, CastReinterpret, cast.Style)

	n := f.PlacementNew(addr, v.Type, nil)
	require.Len(t, n.Placement, 1)
	assert.True(t, n.ExprType().IsPointer())
}

func TestFactoryTreesPassChecks(t *testing.T) {
	f := NewFactory()
	guard := f.StaticLocal("__g", f.Builtin("uint64_t"))
	stmt := f.If(
		f.Binary("==", f.Paren(f.Binary("&", f.Ref(guard), f.Int("0xff"))), f.Int("0")),
		f.Compound(f.CommentStmt("done")),
	)
	fn := &FunctionDecl{Name: "f", Return: f.Builtin("void"), Body: f.Compound(f.DeclStmtOf(guard), stmt)}

	require.NoError(t, DefaultChecks().Run(&TranslationUnit{Decls: []Decl{fn}}))
}
