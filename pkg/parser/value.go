package parser

import (
	"github.com/njalerikson/tomlkit/pkg/container"
	"github.com/njalerikson/tomlkit/pkg/cursor"
	"github.com/njalerikson/tomlkit/pkg/errors"
	"github.com/njalerikson/tomlkit/pkg/items"
)

// parseValue picks a production from the current character: a quote
// starts a string, '{' an inline table, '[' an array, and anything else
// a number/date/time. Only the bool literal is tried under a checkpoint:
// a 't'/'f' that does not spell true/false falls through to the
// number/date parser. Errors from the chosen parser are returned; no
// other production is tried.
func (p *Parser) parseValue() (any, error) {
	switch c := p.cur.Current(); {
	case c == '"' || c == '\'':
		return p.parseStringLiteral(c == '\'')
	case c == '{':
		return p.parseInlineTable()
	case c == '[':
		return p.parseArray()
	case c == 't' || c == 'f':
		if v, ok := p.tryBool(); ok {
			return v, nil
		}
	}
	return p.parseNumberOrDate()
}

func (p *Parser) tryBool() (*items.Scalar, bool) {
	if p.matchLiteral("true") {
		return items.NewBool(true).WithRaw("true"), true
	}
	if p.matchLiteral("false") {
		return items.NewBool(false).WithRaw("false"), true
	}
	return nil, false
}

// matchLiteral consumes lit if it appears at the cursor and is not
// followed by another bare-key character (so "truee" doesn't parse as
// "true" + garbage).
func (p *Parser) matchLiteral(lit string) bool {
	ok := false
	_ = p.cur.Try(func() error {
		for i := 0; i < len(lit); i++ {
			if p.cur.Current() != lit[i] {
				return errBacktrack
			}
			if err := p.cur.Inc(false); err != nil {
				return err
			}
		}
		if isBareKeyChar(p.cur.Current()) {
			return errBacktrack
		}
		ok = true
		return nil
	})
	return ok
}

var errBacktrack = errors.NewNoPos(errors.UnexpectedChar, "literal did not match")

// parseArray parses `[ ... ]` (spec.md §4.3): elements separated by
// commas, with optional whitespace/newlines/comments between them and
// an optional trailing comma.
func (p *Parser) parseArray() (*container.Array, error) {
	if p.cur.Current() != '[' {
		return nil, p.cur.ParseError(errors.UnexpectedChar, "expected '['")
	}
	if err := p.cur.Inc(true); err != nil {
		return nil, err
	}
	arr := container.NewArray()

	first := true
	for {
		p.skipArrayLayout(arr)
		if p.cur.Current() == ']' {
			break
		}
		if !first {
			if p.cur.Current() != ',' {
				return nil, p.cur.ParseError(errors.UnexpectedChar, "expected ',' or ']'")
			}
			if err := p.cur.Inc(true); err != nil {
				return nil, err
			}
			p.skipArrayLayout(arr)
		}
		if p.cur.Current() == ']' {
			break
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if err := arr.Append(val); err != nil {
			return nil, err
		}
		first = false

		// an inline trailing comment attaches to the value just parsed
		// (spec.md §4.3: "inline comments at end-of-line after a value
		// attach to that value").
		p.skipInlineWhitespace()
		if p.cur.Current() == '#' {
			text, err := p.parseCommentBody()
			if err != nil {
				return nil, err
			}
			if link := lastArrayElementLink(arr); link != nil {
				link.InlineComment = items.NewComment(text)
			}
		}
	}
	if err := p.cur.Inc(true); err != nil { // consume ']'
		return nil, err
	}
	return arr, nil
}

// lastArrayElementLink returns the Link most recently appended to arr
// for an element value, so a trailing inline comment can be attached to
// it after the fact.
func lastArrayElementLink(arr *container.Array) *container.Link {
	links := arr.Links()
	for i := len(links) - 1; i >= 0; i-- {
		if links[i].Kind == container.KeyValueLink {
			return links[i]
		}
	}
	return nil
}

// skipArrayLayout consumes whitespace, newlines, and comment lines
// between array elements, attaching comments to arr's own comment list.
func (p *Parser) skipArrayLayout(arr *container.Array) {
	for {
		switch p.cur.Current() {
		case ' ', '\t':
			p.skipInlineWhitespace()
		case '\n':
			_ = p.cur.Inc(false)
		case '\r':
			_ = p.cur.Inc(false)
			if p.cur.Current() == '\n' {
				_ = p.cur.Inc(false)
			}
		case '#':
			text, err := p.parseCommentBody()
			if err == nil {
				arr.AppendComment(text)
			}
		default:
			return
		}
	}
}

// parseInlineTable parses `{ k = v, ... }` (spec.md §4.3): no newlines,
// no trailing comma, no comments. The result is pinned explicit so an
// empty inline table still renders as `{}`.
func (p *Parser) parseInlineTable() (*container.Table, error) {
	if p.cur.Current() != '{' {
		return nil, p.cur.ParseError(errors.UnexpectedChar, "expected '{'")
	}
	if err := p.cur.Inc(true); err != nil {
		return nil, err
	}
	tbl := container.NewTable()
	tbl.PinExplicit(true)

	p.skipInlineWhitespace()
	first := true
	for p.cur.Current() != '}' {
		if !first {
			if p.cur.Current() != ',' {
				return nil, p.cur.ParseError(errors.UnexpectedChar, "expected ',' or '}'")
			}
			if err := p.cur.Inc(true); err != nil {
				return nil, err
			}
			p.skipInlineWhitespace()
		}
		path, err := p.parseKeyPath('=')
		if err != nil {
			return nil, err
		}
		if len(path) == 0 {
			return nil, p.cur.ParseError(errors.EmptyKey, "empty key")
		}
		if err := p.cur.Inc(true); err != nil { // consume '='
			return nil, err
		}
		p.skipInlineWhitespace()
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		cur := tbl
		for _, k := range path[:len(path)-1] {
			next, err := resolveIntermediateDotted(cur, k.Text)
			if err != nil {
				return nil, err
			}
			cur = next
		}
		last := path[len(path)-1]
		if cur.Contains(last.Text) {
			return nil, p.cur.ParseError(errors.DuplicateKey, "duplicate key: "+last.Text)
		}
		if err := cur.Set(last.Text, val); err != nil {
			return nil, err
		}
		p.skipInlineWhitespace()
		first = false
	}
	if err := p.cur.Inc(true); err != nil { // consume '}'
		return nil, err
	}
	if p.cur.Current() == cursor.EOF {
		return tbl, nil
	}
	return tbl, nil
}
