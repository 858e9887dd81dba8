package compiler

import (
	"bytes"
	"strings"
)

const defaultIndentWidth = 2

// Buffer is the sink for generated source. It appends text with lazy
// indentation (a line is indented when its first byte is written) and
// supports retroactive insertion at a previously captured position.
type Buffer struct {
	buf    []byte
	indent int
	width  int
	// midLine marks an empty buffer whose first write continues a line
	// started elsewhere, so it must not be indented.
	midLine bool
	// inserted tracks how much text InsertAt already placed at each
	// captured position, so repeated insertions keep call order.
	inserted map[int]int
	// stmts holds the statements being written, innermost last.
	stmts []stmtMark
}

// stmtMark is where a statement starts and the indentation it starts at.
type stmtMark struct {
	pos    int
	indent int
}

// NewBuffer returns an empty buffer indenting by width spaces per level.
func NewBuffer(width int) *Buffer {
	if width <= 0 {
		width = defaultIndentWidth
	}
	return &Buffer{width: width}
}

// InheritIndent makes b continue at parent's indentation level, so text
// generated into b lines up once it is spliced into parent at
// parent.AnchorPos(). b still starts at the beginning of a line: it is
// spliced in front of whole lines.
func (b *Buffer) InheritIndent(parent *Buffer) {
	b.indent = parent.indent
	if n := len(parent.stmts); n > 0 {
		b.indent = parent.stmts[n-1].indent
	}
	b.width = parent.width
}

// Append writes raw text, indenting it if it starts a line.
func (b *Buffer) Append(parts ...string) {
	for _, p := range parts {
		b.write(p)
	}
}

// AppendNewLine writes parts followed by a newline.
func (b *Buffer) AppendNewLine(parts ...string) {
	b.Append(parts...)
	b.NewLine()
}

// AppendSemiNewLine writes parts followed by ";" and a newline.
func (b *Buffer) AppendSemiNewLine(parts ...string) {
	b.Append(parts...)
	b.Append(";")
	b.NewLine()
}

// NewLine ends the current line.
func (b *Buffer) NewLine() {
	b.buf = append(b.buf, '\n')
}

// OpenScope writes "{" and indents the following lines.
func (b *Buffer) OpenScope() {
	b.Append("{")
	b.NewLine()
	b.indent++
}

// CloseScope dedents and writes "}" on its own line.
func (b *Buffer) CloseScope() {
	b.closeScope("}")
}

// CloseScopeWithSemi dedents and writes "};" on its own line.
func (b *Buffer) CloseScopeWithSemi() {
	b.closeScope("};")
}

func (b *Buffer) closeScope(text string) {
	if !b.atLineStart() {
		b.NewLine()
	}
	b.DecreaseIndent()
	b.Append(text)
}

func (b *Buffer) IncreaseIndent() { b.indent++ }

func (b *Buffer) DecreaseIndent() {
	if b.indent > 0 {
		b.indent--
	}
}

// Pos returns the current write position.
func (b *Buffer) Pos() int { return len(b.buf) }

// AnchorPos returns where a fragment that must precede the code being
// written belongs: the start of the innermost statement in progress, or
// the start of the current line outside statements. A statement line may
// begin with the brace closing an earlier block ("} else if(", "} while("),
// so the line start is not always in the statement's scope.
func (b *Buffer) AnchorPos() int {
	if len(b.stmts) > 0 {
		return b.stmts[len(b.stmts)-1].pos
	}
	return b.lineStart()
}

func (b *Buffer) lineStart() int {
	return bytes.LastIndexByte(b.buf, '\n') + 1
}

// BeginStatement marks the start of a statement. Every call is paired
// with EndStatement.
func (b *Buffer) BeginStatement() {
	b.stmts = append(b.stmts, stmtMark{pos: b.lineStart(), indent: b.indent})
}

func (b *Buffer) EndStatement() {
	if len(b.stmts) > 0 {
		b.stmts = b.stmts[:len(b.stmts)-1]
	}
}

// InsertAt inserts text at a position captured earlier. Text before pos
// is untouched. Several insertions at the same captured position appear
// in the order they were made.
func (b *Buffer) InsertAt(pos int, text string) {
	if text == "" {
		return
	}
	if b.inserted == nil {
		b.inserted = make(map[int]int)
	}
	at := pos + b.inserted[pos]
	if at > len(b.buf) {
		at = len(b.buf)
	}
	b.buf = append(b.buf[:at], append([]byte(text), b.buf[at:]...)...)
	b.inserted[pos] += len(text)
	for i := range b.stmts {
		if b.stmts[i].pos > at {
			b.stmts[i].pos += len(text)
		}
	}
}

// String returns the accumulated output.
func (b *Buffer) String() string { return string(b.buf) }

func (b *Buffer) Len() int { return len(b.buf) }

func (b *Buffer) Empty() bool { return len(b.buf) == 0 }

// LastByte returns the last byte written, or 0 for an empty buffer.
func (b *Buffer) LastByte() byte {
	if len(b.buf) == 0 {
		return 0
	}
	return b.buf[len(b.buf)-1]
}

// EndsWith reports whether the output ends with s.
func (b *Buffer) EndsWith(s string) bool {
	return bytes.HasSuffix(b.buf, []byte(s))
}

// Capture runs fn while writing to a temporary buffer that continues the
// current line, then restores the original content and returns what fn
// wrote.
func (b *Buffer) Capture(fn func()) string {
	saved, savedMid, savedIns, savedStmts := b.buf, b.midLine, b.inserted, b.stmts
	b.buf, b.midLine, b.inserted, b.stmts = nil, true, nil, nil
	fn()
	result := string(b.buf)
	b.buf, b.midLine, b.inserted, b.stmts = saved, savedMid, savedIns, savedStmts
	return result
}

func (b *Buffer) atLineStart() bool {
	if len(b.buf) == 0 {
		return !b.midLine
	}
	return b.buf[len(b.buf)-1] == '\n'
}

func (b *Buffer) write(s string) {
	for s != "" {
		if b.atLineStart() && s[0] != '\n' && b.indent > 0 {
			b.buf = append(b.buf, strings.Repeat(" ", b.indent*b.width)...)
		}
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			b.buf = append(b.buf, s...)
			return
		}
		b.buf = append(b.buf, s[:i+1]...)
		s = s[i+1:]
	}
}
