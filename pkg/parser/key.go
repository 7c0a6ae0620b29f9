package parser

import (
	"github.com/njalerikson/tomlkit/pkg/errors"
	"github.com/njalerikson/tomlkit/pkg/items"
)

// parseKey parses a single key: a bare-key run, or a single-line
// quoted (basic/literal) string (spec.md §4.2).
func (p *Parser) parseKey() (items.Key, error) {
	switch p.cur.Current() {
	case '"':
		s, err := p.parseStringLiteral(false)
		if err != nil {
			return items.Key{}, err
		}
		return items.NewKeyStyled(s.StringVal, items.BasicKey), nil
	case '\'':
		s, err := p.parseStringLiteral(true)
		if err != nil {
			return items.Key{}, err
		}
		return items.NewKeyStyled(s.StringVal, items.LiteralKey), nil
	default:
		text, err := p.cur.Consume(isBareKeyChar, 1, -1)
		if err != nil {
			return items.Key{}, err
		}
		return items.NewKeyStyled(text, items.BareKey), nil
	}
}

// parseKeyPath parses a dotted sequence of keys, surrounded by optional
// inline whitespace around each '.', stopping before terminator (which
// is not consumed). An empty path (terminator seen immediately) is
// returned as a zero-length slice; the caller raises EmptyKey/
// EmptyTableName as appropriate.
func (p *Parser) parseKeyPath(terminator byte) ([]items.Key, error) {
	path, _, err := p.parseKeyPathSep(terminator)
	return path, err
}

// parseKeyPathSep is parseKeyPath plus the cursor offset immediately
// after the last key segment's text, i.e. before the whitespace/
// terminator run that follows it — the start of a `key = value` link's
// preserved separator text (SPEC_FULL.md §11 trivia).
func (p *Parser) parseKeyPathSep(terminator byte) ([]items.Key, int, error) {
	var path []items.Key
	p.skipInlineWhitespace()
	if p.cur.Current() == terminator {
		return path, p.cur.Idx(), nil
	}
	sepStart := p.cur.Idx()
	for {
		k, err := p.parseKey()
		if err != nil {
			return nil, 0, err
		}
		path = append(path, k)
		sepStart = p.cur.Idx()
		p.skipInlineWhitespace()
		if p.cur.Current() != '.' {
			break
		}
		if err := p.cur.Inc(true); err != nil {
			return nil, 0, err
		}
		p.skipInlineWhitespace()
	}
	if p.cur.Current() != terminator {
		return nil, 0, p.cur.ParseError(errors.UnexpectedChar, "expected '%c'", terminator)
	}
	return path, sepStart, nil
}
