package parser

import (
	"strings"

	"github.com/njalerikson/tomlkit/pkg/cursor"
	"github.com/njalerikson/tomlkit/pkg/errors"
	"github.com/njalerikson/tomlkit/pkg/items"
)

// parseStringLiteral parses a basic (literal==false) or literal
// (literal==true) string, single- or triple-quoted, per spec.md §4.2.
func (p *Parser) parseStringLiteral(literal bool) (*items.Scalar, error) {
	quote := byte('"')
	if literal {
		quote = '\''
	}
	start := p.cur.Idx()

	if p.cur.Current() != quote {
		return nil, p.cur.ParseError(errors.UnexpectedChar, "expected quote")
	}
	if err := p.cur.Inc(true); err != nil {
		return nil, err
	}

	multiLine := false
	if p.cur.Current() == quote && p.cur.Peek(1) == quote {
		multiLine = true
		if err := p.cur.Inc(true); err != nil {
			return nil, err
		}
		if err := p.cur.Inc(true); err != nil {
			return nil, err
		}
		// a multi-line string trims one immediately following newline
		if p.cur.Current() == '\r' && p.cur.Peek(1) == '\n' {
			if err := p.cur.Inc(true); err != nil {
				return nil, err
			}
			if err := p.cur.Inc(true); err != nil {
				return nil, err
			}
		} else if p.cur.Current() == '\n' {
			if err := p.cur.Inc(true); err != nil {
				return nil, err
			}
		}
	}

	var sb strings.Builder
	for {
		c := p.cur.Current()
		if c == cursor.EOF {
			return nil, p.cur.ParseError(errors.UnexpectedEof, "unterminated string")
		}
		if c == quote {
			if !multiLine {
				break
			}
			if p.cur.Peek(1) == quote && p.cur.Peek(2) == quote {
				break
			}
			sb.WriteByte(c)
			if err := p.cur.Inc(false); err != nil {
				return nil, err
			}
			continue
		}
		if !multiLine && (c == '\n' || c == '\r') {
			return nil, p.cur.ParseError(errors.InvalidCharInString, "raw newline in single-line string")
		}
		if c < 0x20 && c != '\t' && !(multiLine && (c == '\n' || c == '\r')) {
			return nil, p.cur.ParseError(errors.InvalidCharInString, "disallowed control character")
		}
		if !literal && c == '\\' {
			if err := p.cur.Inc(false); err != nil {
				return nil, err
			}
			esc := p.cur.Current()
			switch esc {
			case 'b':
				sb.WriteByte('\b')
				if err := p.cur.Inc(false); err != nil {
					return nil, err
				}
			case 't':
				sb.WriteByte('\t')
				if err := p.cur.Inc(false); err != nil {
					return nil, err
				}
			case 'n':
				sb.WriteByte('\n')
				if err := p.cur.Inc(false); err != nil {
					return nil, err
				}
			case 'f':
				sb.WriteByte('\f')
				if err := p.cur.Inc(false); err != nil {
					return nil, err
				}
			case 'r':
				sb.WriteByte('\r')
				if err := p.cur.Inc(false); err != nil {
					return nil, err
				}
			case '"':
				sb.WriteByte('"')
				if err := p.cur.Inc(false); err != nil {
					return nil, err
				}
			case '\\':
				sb.WriteByte('\\')
				if err := p.cur.Inc(false); err != nil {
					return nil, err
				}
			case 'u':
				r, err := p.parseUnicodeEscape(4)
				if err != nil {
					return nil, err
				}
				sb.WriteRune(r)
			case 'U':
				r, err := p.parseUnicodeEscape(8)
				if err != nil {
					return nil, err
				}
				sb.WriteRune(r)
			case '\n', '\r', ' ', '\t':
				if !multiLine {
					return nil, p.cur.ParseError(errors.InvalidCharInString, "line continuation outside multi-line string")
				}
				// line-continuation: backslash + all following whitespace
				// (including newlines) up to the next non-whitespace.
				for isSpaceOrTab(p.cur.Current()) || p.cur.Current() == '\n' || p.cur.Current() == '\r' {
					if err := p.cur.Inc(false); err != nil {
						return nil, err
					}
				}
			default:
				return nil, p.cur.ParseError(errors.InvalidCharInString, "invalid escape sequence")
			}
			continue
		}
		sb.WriteByte(c)
		if err := p.cur.Inc(false); err != nil {
			return nil, err
		}
	}

	if multiLine {
		if err := p.cur.Inc(false); err != nil { // closing quote x3
			return nil, err
		}
		if err := p.cur.Inc(false); err != nil {
			return nil, err
		}
		if err := p.cur.Inc(false); err != nil {
			return nil, err
		}
	} else {
		if err := p.cur.Inc(false); err != nil { // closing quote x1
			return nil, err
		}
	}

	style := items.StyleBasic
	if literal {
		style = items.StyleLiteral
	}
	raw := p.cur.Slice(start, p.cur.Idx())
	return items.NewString(sb.String(), style, multiLine).WithRaw(raw), nil
}

// parseUnicodeEscape consumes n (4 or 8) hex digits following a \u or \U
// and returns the decoded rune.
func (p *Parser) parseUnicodeEscape(n int) (rune, error) {
	if err := p.cur.Inc(false); err != nil { // consume 'u'/'U'
		return 0, err
	}
	digits, err := p.cur.Consume(isHexDigit, n, n)
	if err != nil {
		return 0, err
	}
	var v rune
	for _, c := range digits {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			v |= rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= rune(c-'A') + 10
		}
	}
	return v, nil
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
