package ast

import (
	"strings"

	"github.com/rubiojr/insights/errors"
)

// Check validates a tree without modifying it.
type Check interface {
	Name() string
	Check(tu *TranslationUnit) error
}

// CheckChain runs checks in order, stopping at the first error.
type CheckChain []Check

// Run executes each check in sequence. Returns nil if all pass.
func (cc CheckChain) Run(tu *TranslationUnit) error {
	for _, c := range cc {
		if err := c.Check(tu); err != nil {
			return errors.Wrapf(err, "check %s", c.Name())
		}
	}
	return nil
}

// DefaultChecks are run before every generation pass.
func DefaultChecks() CheckChain {
	return CheckChain{RequiredChildren{}, LambdaShape{}}
}

// ErrMissingChild marks a node whose required child is nil.
var ErrMissingChild = errors.New("required child missing")

// RequiredChildren reports the first node whose required child is nil.
// A nil required child is a contract violation by whoever produced the
// tree; generation must not run over it.
type RequiredChildren struct{}

func (RequiredChildren) Name() string { return "required-children" }

func (RequiredChildren) Check(tu *TranslationUnit) error {
	if tu == nil {
		return errors.Wrap(ErrMissingChild, "translation unit is nil")
	}
	return walkPath(tu, nil, func(n Node, path []string) error {
		if field := MissingChild(n); field != "" {
			return errors.Wrapf(ErrMissingChild, "%s: %s", strings.Join(path, " > "), field)
		}
		return nil
	})
}

// LambdaShape reports lambdas that lack their call operator or carry an
// init-capture without variable.
type LambdaShape struct{}

func (LambdaShape) Name() string { return "lambda-shape" }

func (LambdaShape) Check(tu *TranslationUnit) error {
	return walkPath(tu, nil, func(n Node, path []string) error {
		l, ok := n.(*LambdaExpr)
		if !ok {
			return nil
		}
		if l.CallOp == nil {
			return errors.Newf("%s: lambda at %d:%d has no call operator", strings.Join(path, " > "), l.Loc.Line, l.Loc.Col)
		}
		for i, c := range l.Captures {
			if c.Kind != CaptureThis && c.Kind != CaptureStarThis && c.Var == nil {
				return errors.Newf("%s: lambda at %d:%d capture %d has no variable", strings.Join(path, " > "), l.Loc.Line, l.Loc.Col, i)
			}
		}
		return nil
	})
}

func walkPath(n Node, path []string, fn func(Node, []string) error) error {
	if IsNil(n) {
		return nil
	}
	path = append(path, n.Kind())
	if err := fn(n, path); err != nil {
		return err
	}
	for _, c := range Children(n) {
		if err := walkPath(c, path, fn); err != nil {
			return err
		}
	}
	return nil
}

// MissingChild returns the name of the first required child of n that is
// nil, or "" when n is complete.
func MissingChild(n Node) string {
	switch x := n.(type) {
	case *TranslationUnit:
		return nilDecl(x.Decls, "Decls")
	case *NamespaceDecl:
		return nilDecl(x.Decls, "Decls")
	case *RecordDecl:
		return nilDecl(x.Decls, "Decls")
	case *VarDecl:
		if x.Type == nil {
			return "Type"
		}
	case *ParmVarDecl:
		if x.Type == nil {
			return "Type"
		}
	case *FieldDecl:
		if x.Type == nil {
			return "Type"
		}
	case *FunctionDecl:
		if x.Return == nil && (x.FuncKind == FuncPlain || x.FuncKind == FuncMethod || x.FuncKind == FuncConversion) {
			return "Return"
		}
		for _, p := range x.Params {
			if p == nil {
				return "Params"
			}
		}
		for _, in := range x.Inits {
			if in == nil || in.Init == nil {
				return "Inits"
			}
		}
	case *TypedefDecl:
		if x.Type == nil {
			return "Type"
		}
	case *StaticAssertDecl:
		if x.Cond == nil {
			return "Cond"
		}
	case *FunctionTemplateDecl:
		if x.Templated == nil {
			return "Templated"
		}
	case *ClassTemplateDecl:
		if x.Templated == nil {
			return "Templated"
		}

	case *CompoundStmt:
		for _, s := range x.Stmts {
			if s == nil {
				return "Stmts"
			}
		}
	case *DeclStmt:
		if len(x.Decls) == 0 {
			return "Decls"
		}
		return nilDecl(x.Decls, "Decls")
	case *IfStmt:
		if x.Cond == nil && x.CondVar == nil {
			return "Cond"
		}
		if x.Then == nil {
			return "Then"
		}
	case *ForStmt:
		if x.Body == nil {
			return "Body"
		}
	case *ForRangeStmt:
		switch {
		case x.Range == nil:
			return "Range"
		case x.Begin == nil:
			return "Begin"
		case x.End == nil:
			return "End"
		case x.LoopVar == nil:
			return "LoopVar"
		case x.Body == nil:
			return "Body"
		}
	case *WhileStmt:
		if x.Cond == nil && x.CondVar == nil {
			return "Cond"
		}
		if x.Body == nil {
			return "Body"
		}
	case *DoStmt:
		if x.Body == nil {
			return "Body"
		}
		if x.Cond == nil {
			return "Cond"
		}
	case *SwitchStmt:
		if x.Body == nil {
			return "Body"
		}
	case *CaseStmt:
		if x.Value == nil {
			return "Value"
		}
	case *TryStmt:
		if x.Body == nil {
			return "Body"
		}
		for _, h := range x.Handlers {
			if h == nil {
				return "Handlers"
			}
		}
	case *CatchStmt:
		if x.Body == nil {
			return "Body"
		}

	case *ImplicitCastExpr:
		if x.Sub == nil {
			return "Sub"
		}
	case *ExplicitCastExpr:
		if x.Sub == nil {
			return "Sub"
		}
	case *BinaryOperator:
		if x.LHS == nil {
			return "LHS"
		}
		if x.RHS == nil {
			return "RHS"
		}
	case *UnaryOperator:
		if x.Operand == nil {
			return "Operand"
		}
	case *ConditionalOperator:
		if x.Cond == nil || x.True == nil || x.False == nil {
			return "Cond/True/False"
		}
	case *ParenExpr:
		if x.Sub == nil {
			return "Sub"
		}
	case *CallExpr:
		if x.Callee == nil {
			return "Callee"
		}
		return nilExpr(x.Args, "Args")
	case *MemberCallExpr:
		if x.Callee == nil {
			return "Callee"
		}
		return nilExpr(x.Args, "Args")
	case *OperatorCallExpr:
		if len(x.Args) == 0 {
			return "Args"
		}
		return nilExpr(x.Args, "Args")
	case *MemberExpr:
		if x.Base == nil {
			return "Base"
		}
	case *ConstructExpr:
		return nilExpr(x.Args, "Args")
	case *InitListExpr:
		return nilExpr(x.Inits, "Inits")
	case *MaterializeTemporaryExpr:
		if x.Sub == nil {
			return "Sub"
		}
	case *ExprWithCleanups:
		if x.Sub == nil {
			return "Sub"
		}
	case *BindTemporaryExpr:
		if x.Sub == nil {
			return "Sub"
		}
	case *ConstantExpr:
		if x.Sub == nil {
			return "Sub"
		}
	case *ArraySubscriptExpr:
		if x.Base == nil || x.Index == nil {
			return "Base/Index"
		}
	case *NewExpr:
		if x.Alloc == nil {
			return "Alloc"
		}
	case *DeleteExpr:
		if x.Arg == nil {
			return "Arg"
		}
	case *SizeOfExpr:
		if x.Arg == nil && x.ArgType == nil {
			return "Arg"
		}
	case *DefaultArgExpr:
		if x.Param == nil || x.Param.Default == nil {
			return "Param"
		}
	case *DefaultInitExpr:
		if x.Field == nil || x.Field.Init == nil {
			return "Field"
		}
	}
	return ""
}

func nilDecl(ds []Decl, field string) string {
	for _, d := range ds {
		if IsNil(d) {
			return field
		}
	}
	return ""
}

func nilExpr(es []Expr, field string) string {
	for _, e := range es {
		if e == nil {
			return field
		}
	}
	return ""
}
