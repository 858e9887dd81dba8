package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/insights/errors"
)

func TestRequiredChildren(t *testing.T) {
	intT := &Type{Kind: TypeBuiltin, Name: "int"}
	tests := []struct {
		name string
		decl Decl
		want string
	}{
		{
			name: "variable without type",
			decl: &VarDecl{Name: "x"},
			want: "TranslationUnitDecl > VarDecl: Type",
		},
		{
			name: "function without return type",
			decl: &FunctionDecl{Name: "f"},
			want: "FunctionDecl: Return",
		},
		{
			name: "nested statement",
			decl: &FunctionDecl{Name: "f", Return: intT, Body: &CompoundStmt{Stmts: []Stmt{
				&IfStmt{Cond: &BoolLiteral{Value: true}},
			}}},
			want: "FunctionDecl > CompoundStmt > IfStmt: Then",
		},
		{
			name: "catch without body",
			decl: &FunctionDecl{Name: "f", Return: intT, Body: &CompoundStmt{Stmts: []Stmt{
				&TryStmt{Body: &CompoundStmt{}, Handlers: []*CatchStmt{{}}},
			}}},
			want: "CXXTryStmt > CXXCatchStmt: Body",
		},
		{
			name: "binary operator without operand",
			decl: &VarDecl{Name: "x", Type: intT, Init: &BinaryOperator{Op: "+", LHS: &IntegerLiteral{Value: "1"}}},
			want: "VarDecl > BinaryOperator: RHS",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequiredChildren{}.Check(&TranslationUnit{Decls: []Decl{tt.decl}})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingChild))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRequiredChildrenAcceptsCompleteTree(t *testing.T) {
	intT := &Type{Kind: TypeBuiltin, Name: "int"}
	tu := &TranslationUnit{Decls: []Decl{
		&FunctionDecl{Name: "f", Return: intT, Body: &CompoundStmt{Stmts: []Stmt{
			&ReturnStmt{},
			&NullStmt{},
		}}},
		&RecordDecl{Name: "S", Decls: []Decl{&FunctionDecl{FuncKind: FuncConstructor}}},
	}}

	assert.NoError(t, DefaultChecks().Run(tu))
	assert.Error(t, RequiredChildren{}.Check(nil))
}

func TestLambdaShape(t *testing.T) {
	intT := &Type{Kind: TypeBuiltin, Name: "int"}
	op := &FunctionDecl{Name: "operator()", FuncKind: FuncMethod, Return: intT}
	wrap := func(e *LambdaExpr) *TranslationUnit {
		return &TranslationUnit{Decls: []Decl{&VarDecl{Name: "l", Type: intT, Init: e}}}
	}

	err := DefaultChecks().Run(wrap(&LambdaExpr{Loc: Loc{Line: 3, Col: 9}}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check lambda-shape")
	assert.Contains(t, err.Error(), "lambda at 3:9 has no call operator")

	err = LambdaShape{}.Check(wrap(&LambdaExpr{CallOp: op, Captures: []LambdaCapture{{Kind: CaptureByRef}}}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capture 0 has no variable")

	assert.NoError(t, LambdaShape{}.Check(wrap(&LambdaExpr{CallOp: op, Captures: []LambdaCapture{{Kind: CaptureThis}}})))
}

func TestChildrenOrder(t *testing.T) {
	cond := &DeclRefExpr{Name: "c"}
	then := &BreakStmt{}
	els := &ContinueStmt{}
	s := &IfStmt{Cond: cond, Then: then, Else: els}

	assert.Equal(t, []Node{cond, then, els}, Children(s))

	var kinds []string
	Inspect(&TranslationUnit{Decls: []Decl{&VarDecl{Name: "x", Init: &ParenExpr{Sub: cond}}}}, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})
	assert.Equal(t, []string{"TranslationUnitDecl", "VarDecl", "ParenExpr", "DeclRefExpr"}, kinds)
}

func TestIsNil(t *testing.T) {
	var v *VarDecl
	var c *CompoundStmt
	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(v))
	assert.True(t, IsNil(c))
	assert.False(t, IsNil(&VarDecl{}))
}
