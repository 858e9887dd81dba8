package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferLazyIndent(t *testing.T) {
	b := NewBuffer(2)
	b.Append("int main()")
	b.NewLine()
	b.OpenScope()
	b.AppendSemiNewLine("return 0")
	b.CloseScope()
	b.NewLine()

	assert.Equal(t, "int main()\n{\n  return 0;\n}\n", b.String())
}

func TestBufferBlankLinesNotIndented(t *testing.T) {
	b := NewBuffer(4)
	b.OpenScope()
	b.AppendNewLine("a")
	b.NewLine()
	b.AppendNewLine("b")
	b.CloseScopeWithSemi()

	assert.Equal(t, "{\n    a\n\n    b\n};", b.String())
}

func TestBufferCloseScopeEndsOpenLine(t *testing.T) {
	b := NewBuffer(2)
	b.OpenScope()
	b.Append("x")
	b.CloseScope()

	assert.Equal(t, "{\n  x\n}", b.String())
}

func TestBufferAnchorIsLineStart(t *testing.T) {
	b := NewBuffer(2)
	b.AppendNewLine("first")
	assert.Equal(t, 6, b.AnchorPos())

	b.Append("second")
	assert.Equal(t, 6, b.AnchorPos(), "anchor stays at the start of the current line")
}

func TestBufferInsertAtKeepsCallOrder(t *testing.T) {
	b := NewBuffer(2)
	b.AppendNewLine("head")
	pos := b.AnchorPos()
	b.AppendNewLine("use")

	b.InsertAt(pos, "one\n")
	b.InsertAt(pos, "two\n")

	assert.Equal(t, "head\none\ntwo\nuse\n", b.String())
}

func TestBufferInsertAtLeavesEarlierText(t *testing.T) {
	b := NewBuffer(2)
	b.Append("abc")
	b.InsertAt(1, "X")
	assert.Equal(t, "aXbc", b.String())

	b.InsertAt(1, "")
	assert.Equal(t, "aXbc", b.String())

	b.InsertAt(100, "Z")
	assert.Equal(t, "aXbcZ", b.String(), "positions past the end append")
}

func TestBufferCaptureRestores(t *testing.T) {
	b := NewBuffer(2)
	b.OpenScope()
	b.Append("x = ")

	got := b.Capture(func() { b.Append("value") })
	assert.Equal(t, "value", got, "captured text continues the line and is not indented")
	assert.Equal(t, "{\n  x = ", b.String())
}

func TestBufferInheritIndent(t *testing.T) {
	parent := NewBuffer(3)
	parent.IncreaseIndent()

	child := NewBuffer(0)
	child.InheritIndent(parent)
	child.AppendNewLine("x")

	assert.Equal(t, "   x\n", child.String())

	parent.Append("y = ")
	child = NewBuffer(0)
	child.InheritIndent(parent)
	child.AppendNewLine("x")
	assert.Equal(t, "   x\n", child.String(), "a fragment starts a line even when the parent is mid-line")
}

func TestBufferStatementAnchor(t *testing.T) {
	b := NewBuffer(2)
	b.OpenScope()
	b.BeginStatement()
	b.Append("do ")
	b.OpenScope()
	b.AppendNewLine("break;")
	b.CloseScope()
	b.Append(" while(")
	assert.Equal(t, len("{\n"), b.AnchorPos(), "the anchor is where the statement starts, not the line")

	frame := NewBuffer(0)
	frame.InheritIndent(b)
	frame.AppendNewLine("class C {};")
	b.InsertAt(b.AnchorPos(), frame.String())
	b.Append("C{})")
	b.EndStatement()

	assert.Equal(t, "{\n  class C {};\n  do {\n    break;\n  } while(C{})", b.String())
	assert.Equal(t, b.Len()-len("  } while(C{})"), b.AnchorPos(), "outside statements the anchor is the line start")
}

func TestBufferStatementAnchorIndent(t *testing.T) {
	b := NewBuffer(2)
	b.BeginStatement()
	b.OpenScope()
	b.AppendNewLine("int a = 1;")

	frame := NewBuffer(0)
	frame.InheritIndent(b)
	frame.AppendNewLine("class C {};")
	assert.Equal(t, "class C {};\n", frame.String(), "the fragment takes the indentation of the statement it precedes")

	b.BeginStatement()
	frame = NewBuffer(0)
	frame.InheritIndent(b)
	frame.AppendNewLine("class D {};")
	b.EndStatement()
	b.EndStatement()
	assert.Equal(t, "  class D {};\n", frame.String())
}

func TestBufferInsertShiftsLaterStatements(t *testing.T) {
	b := NewBuffer(2)
	b.AppendNewLine("a;")
	b.BeginStatement()
	b.Append("b")
	b.InsertAt(0, "x;\n")
	b.Append(";")

	assert.Equal(t, len("x;\na;\n"), b.AnchorPos(), "the open statement still starts at b")
	b.InsertAt(b.AnchorPos(), "y;\n")
	assert.Equal(t, "x;\na;\ny;\nb;", b.String())
}

func TestBufferHelpers(t *testing.T) {
	b := NewBuffer(0)
	assert.True(t, b.Empty())
	assert.Equal(t, byte(0), b.LastByte())

	b.Append("a;")
	assert.False(t, b.Empty())
	assert.Equal(t, byte(';'), b.LastByte())
	assert.True(t, b.EndsWith(";"))
	assert.Equal(t, 2, b.Len())

	b.DecreaseIndent()
	b.NewLine()
	b.Append("b")
	assert.Equal(t, "a;\nb", b.String(), "indent never goes below zero")
}
