package printer

import "strings"

type Buffer struct {
	b      strings.Builder
	unit   string
	level  int
	atLine bool
}

func newBuffer(unit string) *Buffer {
	return &Buffer{unit: unit, atLine: true}
}

// WriteString writes s, indenting first if s starts a new line.
func (b *Buffer) WriteString(s string) {
	if s == "" {
		return
	}
	if b.atLine {
		for i := 0; i < b.level; i++ {
			b.b.WriteString(b.unit)
		}
		b.atLine = false
	}
	b.b.WriteString(s)
}

func (b *Buffer) Newline() {
	b.b.WriteByte('\n')
	b.atLine = true
}

func (b *Buffer) Indent() { b.level++ }

func (b *Buffer) Dedent() {
	if b.level > 0 {
		b.level--
	}
}

func (b *Buffer) String() string {
	return b.b.String()
}
