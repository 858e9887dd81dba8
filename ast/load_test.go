package ast

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, dump string) *TranslationUnit {
	t.Helper()
	tu, err := Load(strings.NewReader(dump), "test.yaml")
	require.NoError(t, err)
	return tu
}

func TestLoadResolvesRefs(t *testing.T) {
	tu := load(t, `
name: refs.cpp
decls:
  - kind: FunctionDecl
    name: f
    return: int
    body:
      kind: CompoundStmt
      stmts:
        - kind: ReturnStmt
          value: {kind: DeclRefExpr, decl: {ref: later}}
  - {kind: VarDecl, id: later, name: g, type: int}
`)

	assert.Equal(t, "refs.cpp", tu.Name)
	require.Len(t, tu.Decls, 2)
	fn := tu.Decls[0].(*FunctionDecl)
	ret := fn.Body.Stmts[0].(*ReturnStmt)
	ref := ret.Value.(*DeclRefExpr)
	assert.Same(t, tu.Decls[1], ref.Decl, "refs may point forward")
}

func TestLoadNameDefaultsToSource(t *testing.T) {
	tu := load(t, "decls: []")
	assert.Equal(t, "test.yaml", tu.Name)
	assert.Empty(t, tu.Decls)
}

func TestLoadTypes(t *testing.T) {
	tu := load(t, `
decls:
  - {kind: CXXRecordDecl, id: S, name: Widget}
  - kind: VarDecl
    name: v
    type:
      kind: pointer
      const: true
      elem: {kind: record, record: {ref: S}}
  - kind: VarDecl
    name: a
    type: {kind: auto, deduced: {kind: array, elem: unsigned long, size: 3}}
  - kind: VarDecl
    name: m
    type: {kind: record, name: map, args: [int, {kind: integral, value: "2", type: int}]}
`)

	v := tu.Decls[1].(*VarDecl)
	assert.True(t, v.Type.Const)
	assert.Equal(t, "Widget", v.Type.Elem.Name, "record types take the record's name")
	assert.Same(t, tu.Decls[0], v.Type.Elem.Record)

	a := tu.Decls[2].(*VarDecl)
	c := a.Type.Canonical()
	assert.Equal(t, TypeArray, c.Kind)
	assert.Equal(t, int64(3), c.Size)
	assert.Equal(t, "unsigned long", c.Elem.Name)

	m := tu.Decls[3].(*VarDecl)
	require.Len(t, m.Type.Args, 2)
	assert.Equal(t, ArgType, m.Type.Args[0].Kind)
	assert.Equal(t, ArgIntegral, m.Type.Args[1].Kind)
	assert.Equal(t, "2", m.Type.Args[1].Value)
}

func TestLoadWrapsDeclarationsInStatements(t *testing.T) {
	tu := load(t, `
decls:
  - kind: FunctionDecl
    name: f
    return: void
    body:
      kind: CompoundStmt
      stmts:
        - {kind: VarDecl, name: x, local: true, type: int}
        - {kind: SEHTryStmt}
`)

	body := tu.Decls[0].(*FunctionDecl).Body
	require.Len(t, body.Stmts, 2)
	ds, ok := body.Stmts[0].(*DeclStmt)
	require.True(t, ok)
	assert.Equal(t, "x", ds.Decls[0].(*VarDecl).Name)

	u, ok := body.Stmts[1].(*UnknownNode)
	require.True(t, ok, "unknown kinds load as placeholders")
	assert.Equal(t, "SEHTryStmt", u.Name)
}

func TestLoadRecordMembersKnowTheirParent(t *testing.T) {
	tu := load(t, `
decls:
  - kind: CXXRecordDecl
    name: Foo
    tag: struct
    decls:
      - {kind: CXXConstructorDecl}
      - {kind: CXXMethodDecl, name: get, return: int, access: public}
`)

	rec := tu.Decls[0].(*RecordDecl)
	assert.Equal(t, TagStruct, rec.Tag)
	assert.True(t, rec.Complete)
	for _, d := range rec.Decls {
		assert.Same(t, rec, d.(*FunctionDecl).Parent)
	}
	assert.Equal(t, AccessPublic, rec.Decls[1].(*FunctionDecl).Access)
}

func TestLoadLambda(t *testing.T) {
	tu := load(t, `
decls:
  - kind: VarDecl
    name: l
    type: {kind: auto}
    init:
      kind: LambdaExpr
      loc: "7:3"
      default: "="
      captures:
        - {kind: "*this", type: {kind: record, name: Foo}}
      callOp: {kind: CXXMethodDecl, name: operator(), return: void}
`)

	e := tu.Decls[0].(*VarDecl).Init.(*LambdaExpr)
	assert.Equal(t, Loc{Line: 7, Col: 3}, e.Loc)
	assert.Equal(t, CaptureDefaultCopy, e.Default)
	require.Len(t, e.Captures, 1)
	assert.Equal(t, CaptureStarThis, e.Captures[0].Kind)

	require.NotNil(t, e.Class, "a closure class is synthesized when the dump has none")
	assert.True(t, e.Class.Lambda)
	assert.Equal(t, e.Loc, e.Class.Loc)
	assert.Same(t, e.Class, e.CallOp.Parent)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		dump string
		want string
	}{
		{"empty", "", "empty tree dump"},
		{"not yaml", "decls: [", "decoding tree dump"},
		{"no kind", "decls:\n  - {name: x}\n", "test.yaml:2:5: node without kind"},
		{"unresolved ref", "decls:\n  - {kind: VarDecl, name: x, type: int, init: {kind: DeclRefExpr, decl: {ref: nowhere}}}\n", `decl: unresolved ref "nowhere"`},
		{"duplicate id", "decls:\n  - {kind: VarDecl, id: a, name: x, type: int}\n  - {kind: VarDecl, id: a, name: y, type: int}\n", `duplicate id "a"`},
		{"bad loc", "decls:\n  - {kind: EmptyDecl, loc: here}\n", "expected line:col"},
		{"bad bool", "decls:\n  - {kind: VarDecl, name: x, type: int, local: maybe}\n", "local: expected a boolean"},
		{"statement as decl", "decls:\n  - {kind: BreakStmt}\n", "BreakStmt is not a declaration"},
		{"wrong ref target", "decls:\n  - {kind: EmptyDecl, id: e}\n  - {kind: FunctionDecl, name: f, return: int, parent: {ref: e}}\n", "parent: EmptyDecl is not a valid target"},
		{"unknown capture", "decls:\n  - {kind: VarDecl, name: l, type: int, init: {kind: LambdaExpr, captures: [{kind: all}]}}\n", `unknown capture kind "all"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.dump), "test.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFileAcceptsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unit.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"decls": [{"kind": "VarDecl", "name": "x", "type": "int"}]}`), 0644))

	tu, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, tu.Name)
	assert.Equal(t, "x", tu.Decls[0].(*VarDecl).Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
