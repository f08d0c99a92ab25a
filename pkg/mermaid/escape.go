package mermaid

import (
	"io"
	"strings"
)

// Escaper filters text written through it so the result can be embedded
// inside a double-quoted mermaid label without breaking the surrounding
// syntax. Double quotes and backslashes get a leading backslash; newlines
// become the two-character sequence `\l` (mermaid's left-justified line
// break). Everything else passes through unchanged, so text free of those
// three characters is emitted verbatim.
type Escaper struct {
	w io.Writer
}

// NewEscaper wraps w with label escaping.
func NewEscaper(w io.Writer) *Escaper {
	return &Escaper{w: w}
}

// Write escapes p and writes the result to the underlying writer.
// The returned count refers to p, not to the escaped expansion. A write
// failure from the underlying writer is returned verbatim.
func (e *Escaper) Write(p []byte) (int, error) {
	// The escaped form is at most twice the input.
	buf := make([]byte, 0, 2*len(p))
	for _, c := range p {
		switch c {
		case '"', '\\':
			buf = append(buf, '\\', c)
		case '\n':
			buf = append(buf, '\\', 'l')
		default:
			buf = append(buf, c)
		}
	}
	if _, err := e.w.Write(buf); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Escape returns s rewritten for safe embedding in a quoted label.
func Escape(s string) string {
	var b strings.Builder
	e := Escaper{w: &b}
	_, _ = e.Write([]byte(s)) // a strings.Builder write cannot fail
	return b.String()
}
