// Package cursor implements the byte-level scanning cursor shared by every
// parser in pkg/parser. It tracks line/column for error reporting and
// supports nested, scoped checkpoints so a failed speculative parse can
// roll the cursor back bit-exact.
package cursor

import (
	"fmt"

	"github.com/njalerikson/tomlkit/pkg/errors"
)

// EOF is the sentinel byte value returned by Current once the input is
// exhausted. 0x00 never appears in valid UTF-8 TOML source.
const EOF byte = 0

// Cursor scans src one byte at a time, tracking idx/line/column.
type Cursor struct {
	src  []byte
	idx  int
	line int
	col  int
}

// New creates a cursor over src, positioned at the first byte.
func New(src []byte) *Cursor {
	return &Cursor{src: src, idx: 0, line: 1, col: 1}
}

// snapshot is an opaque saved cursor position.
type snapshot struct {
	idx, line, col int
}

// Idx returns the current byte offset.
func (c *Cursor) Idx() int { return c.idx }

// Line returns the current 1-based line number.
func (c *Cursor) Line() int { return c.line }

// Column returns the current 1-based column number.
func (c *Cursor) Column() int { return c.col }

// AtEOF reports whether the cursor has consumed all input.
func (c *Cursor) AtEOF() bool { return c.idx >= len(c.src) }

// Current returns the byte at the cursor, or EOF if exhausted.
func (c *Cursor) Current() byte {
	if c.AtEOF() {
		return EOF
	}
	return c.src[c.idx]
}

// Peek returns the byte n positions ahead of the cursor (0 == Current),
// or EOF if that position is past the end of input.
func (c *Cursor) Peek(n int) byte {
	i := c.idx + n
	if i < 0 || i >= len(c.src) {
		return EOF
	}
	return c.src[i]
}

// Inc advances the cursor by one byte. If raiseOnEOF is true and the
// cursor is already at EOF, it returns an UnexpectedEof error instead of
// advancing.
func (c *Cursor) Inc(raiseOnEOF bool) error {
	if c.AtEOF() {
		if raiseOnEOF {
			return c.ParseError(errors.UnexpectedEof, "unexpected end of input")
		}
		return nil
	}
	if c.src[c.idx] == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	c.idx++
	return nil
}

// Charset is a predicate over a single byte, used by Consume.
type Charset func(b byte) bool

// Consume advances the cursor while Current() satisfies cs, stopping
// after at most max bytes (max < 0 means unbounded). It returns
// UnexpectedChar if fewer than min bytes were consumed.
func (c *Cursor) Consume(cs Charset, min, max int) (string, error) {
	start := c.idx
	n := 0
	for (max < 0 || n < max) && cs(c.Current()) {
		if err := c.Inc(false); err != nil {
			return "", err
		}
		n++
	}
	if n < min {
		return "", c.ParseError(errors.UnexpectedChar, "expected at least %d matching characters", min)
	}
	return string(c.src[start:c.idx]), nil
}

// Slice returns the raw bytes between two offsets previously obtained
// from Idx, as a string (the just-consumed lexeme).
func (c *Cursor) Slice(a, b int) string {
	if a < 0 {
		a = 0
	}
	if b > len(c.src) {
		b = len(c.src)
	}
	if a >= b {
		return ""
	}
	return string(c.src[a:b])
}

// mark saves the current position.
func (c *Cursor) mark() snapshot {
	return snapshot{idx: c.idx, line: c.line, col: c.col}
}

// restore resets the cursor to a previously saved position.
func (c *Cursor) restore(s snapshot) {
	c.idx, c.line, c.col = s.idx, s.line, s.col
}

// Try runs fn under a scoped checkpoint: if fn returns a non-nil error,
// the cursor is restored to the position it had before fn ran and the
// error is returned; otherwise the advance made by fn is committed.
// Checkpoints nest naturally, since Try may call Try recursively and each
// call only ever restores its own snapshot.
func (c *Cursor) Try(fn func() error) error {
	snap := c.mark()
	if err := fn(); err != nil {
		c.restore(snap)
		return err
	}
	return nil
}

// ParseError builds a positioned error at the cursor's current location.
func (c *Cursor) ParseError(kind errors.Kind, format string, args ...any) *errors.ParseError {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return errors.New(kind, errors.Position{Line: c.line, Column: c.col, Offset: c.idx}, msg)
}
