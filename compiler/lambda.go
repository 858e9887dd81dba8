package compiler

import (
	"strings"
)

// LambdaCaller tags the syntactic position that opened a lambda frame.
type LambdaCaller int

const (
	LambdaCallerVarDecl LambdaCaller = iota
	LambdaCallerCallExpr
	LambdaCallerOperatorCallExpr
	LambdaCallerMemberCallExpr
	LambdaCallerLambdaExpr
	LambdaCallerReturnStmt
	LambdaCallerBinaryOperator
	LambdaCallerMethodDecl
)

var lambdaCallerNames = [...]string{
	LambdaCallerVarDecl:          "VarDecl",
	LambdaCallerCallExpr:         "CallExpr",
	LambdaCallerOperatorCallExpr: "OperatorCallExpr",
	LambdaCallerMemberCallExpr:   "MemberCallExpr",
	LambdaCallerLambdaExpr:       "LambdaExpr",
	LambdaCallerReturnStmt:       "ReturnStmt",
	LambdaCallerBinaryOperator:   "BinaryOperator",
	LambdaCallerMethodDecl:       "MethodDecl",
}

func (c LambdaCaller) String() string {
	if int(c) < len(lambdaCallerNames) {
		return lambdaCallerNames[c]
	}
	return "LambdaCaller(?)"
}

// lambdaFrame collects closure type definitions generated while its
// construct is rendered. They are spliced into host at pos once the
// construct is done, so each closure type precedes its first use.
type lambdaFrame struct {
	caller LambdaCaller
	buf    *Buffer
	host   *Buffer
	pos    int
	inits  strings.Builder
}

// insertInits writes the pending capture initializers to out.
func (f *lambdaFrame) insertInits(out *Buffer) {
	if f.inits.Len() > 0 {
		out.Append(f.inits.String())
		f.inits.Reset()
	}
}

// addInit appends one capture initializer, comma separated.
func (f *lambdaFrame) addInit(text string) {
	if f.inits.Len() > 0 {
		f.inits.WriteString(", ")
	}
	f.inits.WriteString(text)
}

// lambdaStack is the stack of open frames, innermost last. Generators
// working on the same translation unit share one stack.
type lambdaStack struct {
	frames []*lambdaFrame
}

func (s *lambdaStack) empty() bool { return len(s.frames) == 0 }

func (s *lambdaStack) back() *lambdaFrame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func (s *lambdaStack) push(f *lambdaFrame) { s.frames = append(s.frames, f) }

func (s *lambdaStack) pop() {
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
}

// lambdaScope is the handle returned by enter. Close must run on every
// exit path, so callers defer it right away.
type lambdaScope struct {
	stack  *lambdaStack
	frame  *lambdaFrame
	active *Buffer
	closed bool
}

// enter pushes a frame for caller. The frame's host is the innermost open
// frame's buffer, or active when no frame is open, which makes nested
// frames resolve inside-out.
func (s *lambdaStack) enter(caller LambdaCaller, active *Buffer) *lambdaScope {
	host := active
	if top := s.back(); top != nil {
		host = top.buf
	}
	f := &lambdaFrame{caller: caller, buf: NewBuffer(host.width), host: host, pos: host.AnchorPos()}
	f.buf.InheritIndent(host)
	s.push(f)
	return &lambdaScope{stack: s, frame: f, active: active}
}

// Close splices the frame into its host, flushes capture initializers
// nobody consumed and pops the frame.
func (sc *lambdaScope) Close() {
	if sc.closed {
		return
	}
	sc.closed = true
	f := sc.frame
	if !f.buf.Empty() {
		f.host.InsertAt(f.pos, f.buf.String())
	}
	f.insertInits(sc.active)
	if sc.stack.back() == f {
		sc.stack.pop()
	}
}
