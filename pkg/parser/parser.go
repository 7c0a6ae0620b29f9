// Package parser implements the tokenizing recursive-descent TOML v0.5
// parser (spec.md §4.1–§4.4): a set of per-grammar-rule parsers sharing
// one pkg/cursor.Cursor. A value's production is chosen from its first
// character; an error from the chosen parser is returned as is, with no
// fallback to another production.
//
// Grounded on the teacher's Parser/advance/peek shape
// (elioetibr-golang-yaml v1/pkg/parser/parser.go), adapted to drive
// directly off the byte cursor rather than a separate lexer/token
// stream — this spec's own wording ("each scalar parser exposes
// check(src) ... and parse(src, parent, key)") calls for a parser-
// combinator style closer to tomlkit/parser.py than to a token-pipeline
// compiler front end.
package parser

import (
	"github.com/njalerikson/tomlkit/pkg/container"
	"github.com/njalerikson/tomlkit/pkg/cursor"
	"github.com/njalerikson/tomlkit/pkg/errors"
	"github.com/njalerikson/tomlkit/pkg/items"
)

// Parser drives the whole document grammar over one cursor.
type Parser struct {
	cur *cursor.Cursor
}

// New creates a parser over src.
func New(src []byte) *Parser {
	return &Parser{cur: cursor.New(src)}
}

// Parse consumes the entire document and returns its root table, always
// complex (invariant 5) and explicit.
func Parse(src []byte) (*container.Table, error) {
	p := New(src)
	return p.ParseDocument()
}

func isSpaceOrTab(b byte) bool { return b == ' ' || b == '\t' }
func isDigit(b byte) bool      { return b >= '0' && b <= '9' }
func isBareKeyChar(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || isDigit(b) || b == '_' || b == '-'
}

// skipInlineWhitespace consumes a run of spaces/tabs (not newlines).
func (p *Parser) skipInlineWhitespace() {
	_, _ = p.cur.Consume(isSpaceOrTab, 0, -1)
}

// atLineEnd reports whether the cursor sits at '\n', the start of
// "\r\n", a comment, or EOF — the set of things that may legally follow
// a key = value pair before its terminator.
func (p *Parser) atLineEnd() bool {
	c := p.cur.Current()
	return c == cursor.EOF || c == '\n' || c == '\r' || c == '#'
}

// consumeNewline consumes "\r\n" or "\n".
func (p *Parser) consumeNewline() error {
	if p.cur.Current() == '\r' {
		if err := p.cur.Inc(true); err != nil {
			return err
		}
	}
	if p.cur.Current() != '\n' {
		return p.cur.ParseError(errors.UnexpectedChar, "expected newline")
	}
	return p.cur.Inc(true)
}

// ParseDocument is the top-level table-parser entry point (spec.md
// §4.4): it builds the root table and repeatedly consumes blank lines,
// comments, table headers, and key/value lines until EOF.
func (p *Parser) ParseDocument() (*container.Table, error) {
	root := container.NewRoot()
	current := root

	var pending []string // "#" lines not yet attached anywhere

	flushPending := func(t *container.Table) {
		for _, text := range pending {
			t.AppendComment(text)
		}
		pending = nil
	}

	for !p.cur.AtEOF() {
		// 1. blank lines
		if p.cur.Current() == '\n' || p.cur.Current() == '\r' {
			flushPending(current)
			n := 0
			for p.cur.Current() == '\n' || p.cur.Current() == '\r' {
				if err := p.consumeNewline(); err != nil {
					return nil, err
				}
				n++
			}
			current.AppendBlankLine(n)
			continue
		}

		indentStart := p.cur.Idx()
		p.skipInlineWhitespace()
		indent := p.cur.Slice(indentStart, p.cur.Idx())

		if p.cur.Current() == cursor.EOF {
			break
		}

		// 2. standalone comment: buffered until we know whether it
		// precedes a table header (head comment) or ordinary content
		// (body comment, flushed below).
		if p.cur.Current() == '#' {
			text, err := p.parseCommentBody()
			if err != nil {
				return nil, err
			}
			pending = append(pending, text)
			if _, _, err := p.consumeLineEnd(); err != nil {
				return nil, err
			}
			continue
		}

		// 3. table header: buffered comments become the new table's
		// head-comments rather than the old table's body comments. A
		// trailing "# ..." on the header line itself attaches to the new
		// table as its header comment.
		if p.cur.Current() == '[' {
			newCurrent, err := p.parseTableHeader(root)
			if err != nil {
				return nil, err
			}
			for _, text := range pending {
				newCurrent.AppendHeadComment(text)
			}
			pending = nil
			current = newCurrent
			comment, hasComment, err := p.consumeLineEnd()
			if err != nil {
				return nil, err
			}
			if hasComment {
				newCurrent.SetHeaderComment(comment)
			}
			continue
		}

		// 4. key = value
		flushPending(current)
		if err := p.parseKeyValueLine(current, indent); err != nil {
			return nil, err
		}
	}

	flushPending(current)
	return root, nil
}

// consumeLineEnd consumes trailing inline whitespace, then an optional
// trailing "# ..." comment (returned, with hasComment reporting whether
// one was present — its text may legally be empty), then a newline or
// EOF.
func (p *Parser) consumeLineEnd() (comment string, hasComment bool, err error) {
	p.skipInlineWhitespace()
	if p.cur.AtEOF() {
		return "", false, nil
	}
	if p.cur.Current() == '#' {
		text, err := p.parseCommentBody()
		if err != nil {
			return "", false, err
		}
		comment, hasComment = text, true
	}
	if p.cur.AtEOF() {
		return comment, hasComment, nil
	}
	return comment, hasComment, p.consumeNewline()
}

// parseCommentBody consumes a leading '#' and the remainder of the
// line, returning the text without the '#'.
func (p *Parser) parseCommentBody() (string, error) {
	if p.cur.Current() != '#' {
		return "", p.cur.ParseError(errors.UnexpectedChar, "expected '#'")
	}
	if err := p.cur.Inc(false); err != nil {
		return "", err
	}
	start := p.cur.Idx()
	for p.cur.Current() != '\n' && p.cur.Current() != '\r' && p.cur.Current() != cursor.EOF {
		if err := p.cur.Inc(false); err != nil {
			return "", err
		}
	}
	return p.cur.Slice(start, p.cur.Idx()), nil
}

// parseTableHeader parses `[key.path]` or `[[key.path]]`, resolving (or
// creating) the target table from root and returning it as the new
// "current" table the document driver appends subsequent lines to.
func (p *Parser) parseTableHeader(root *container.Table) (*container.Table, error) {
	if err := p.cur.Inc(true); err != nil { // consume '['
		return nil, err
	}
	isArrayTable := false
	if p.cur.Current() == '[' {
		isArrayTable = true
		if err := p.cur.Inc(true); err != nil {
			return nil, err
		}
	}

	path, err := p.parseKeyPath(']')
	if err != nil {
		return nil, err
	}
	if len(path) == 0 {
		kind := errors.EmptyTableName
		return nil, p.cur.ParseError(kind, "empty table name")
	}

	if p.cur.Current() != ']' {
		return nil, p.cur.ParseError(errors.UnexpectedChar, "expected ']'")
	}
	if err := p.cur.Inc(true); err != nil {
		return nil, err
	}
	if isArrayTable {
		if p.cur.Current() != ']' {
			return nil, p.cur.ParseError(errors.UnexpectedChar, "expected ']]'")
		}
		if err := p.cur.Inc(true); err != nil {
			return nil, err
		}
	}

	cur := root
	for _, k := range path[:len(path)-1] {
		next, err := resolveIntermediate(cur, k.Text)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	lastKey := path[len(path)-1]

	var target *container.Table
	if isArrayTable {
		v, ok := cur.Get(lastKey.Text)
		var arr *container.Array
		if !ok {
			arr = container.NewArray()
			if err := arr.PinComplex(true); err != nil {
				return nil, err
			}
			if err := cur.Set(lastKey.Text, arr); err != nil {
				return nil, err
			}
		} else {
			var ok2 bool
			arr, ok2 = v.(*container.Array)
			if !ok2 {
				return nil, p.cur.ParseError(errors.DuplicateKey, "key already set to a non-array value")
			}
		}
		target = arr.AppendTable()
	} else {
		if cur.Contains(lastKey.Text) {
			v, _ := cur.Get(lastKey.Text)
			tbl, ok := v.(*container.Table)
			if !ok || tbl.Explicit() {
				return nil, p.cur.ParseError(errors.DuplicateKey, "duplicate table header")
			}
			tbl.PinExplicit(true)
			target = tbl
		} else {
			created, err := cur.CreateTable(lastKey.Text)
			if err != nil {
				return nil, err
			}
			target = created
		}
	}

	// A table reached through its own `[header]`/`[[header]]` line always
	// renders as its own headered block, independent of how few children
	// it happens to have (spec.md §4.4 step 3: "pin the new table
	// explicit and complex").
	if err := target.PinComplex(true); err != nil {
		return nil, err
	}
	return target, nil
}

// resolveIntermediate implements setdefault-with-inference (spec.md
// §4.4) for a [header]/[[header]] path: create a non-explicit child
// table if key is absent, else descend into it if it already is one,
// else fail.
func resolveIntermediate(t *container.Table, key string) (*container.Table, error) {
	return resolveIntermediateKind(t, key, false)
}

// resolveIntermediateDotted is resolveIntermediate for a key = value
// line or an inline-table's own key path: any table it creates is
// marked dotted, so the emitter reproduces the original "a.b.c = 1"
// surface form instead of re-nesting it as an inline-table literal.
func resolveIntermediateDotted(t *container.Table, key string) (*container.Table, error) {
	return resolveIntermediateKind(t, key, true)
}

func resolveIntermediateKind(t *container.Table, key string, dotted bool) (*container.Table, error) {
	if v, ok := t.Get(key); ok {
		if tbl, ok := v.(*container.Table); ok {
			return tbl, nil
		}
		if arr, ok := v.(*container.Array); ok {
			n := arr.Len()
			if n == 0 {
				return nil, errors.NewNoPos(errors.UnexpectedChar, "key "+key+" is an empty array of tables")
			}
			last, _ := arr.Get(n - 1)
			if tbl, ok := last.(*container.Table); ok {
				return tbl, nil
			}
		}
		return nil, errors.NewNoPos(errors.UnexpectedChar, "key "+key+" is not a table")
	}
	child, err := t.CreateTable(key)
	if err != nil {
		return nil, err
	}
	child.PinExplicit(false)
	if dotted {
		child.MarkDotted()
	}
	return child, nil
}

// parseKeyValueLine parses `key = value [# comment] (newline|EOF)` and
// sets it on tbl. indent is the leading whitespace already consumed
// before this line by the caller, preserved on the resulting link so
// the emitter can reproduce it (SPEC_FULL.md §11).
func (p *Parser) parseKeyValueLine(tbl *container.Table, indent string) error {
	path, sepStart, err := p.parseKeyPathSep('=')
	if err != nil {
		return err
	}
	if len(path) == 0 {
		return p.cur.ParseError(errors.EmptyKey, "empty key")
	}
	if p.cur.Current() != '=' {
		return p.cur.ParseError(errors.UnexpectedChar, "expected '='")
	}
	if err := p.cur.Inc(true); err != nil {
		return err
	}
	p.skipInlineWhitespace()
	sepEnd := p.cur.Idx()

	value, err := p.parseValue()
	if err != nil {
		return err
	}

	cur := tbl
	for _, k := range path[:len(path)-1] {
		next, err := resolveIntermediateDotted(cur, k.Text)
		if err != nil {
			return err
		}
		cur = next
	}
	last := path[len(path)-1]
	if cur.Contains(last.Text) {
		return p.cur.ParseError(errors.DuplicateKey, "duplicate key: "+last.Text)
	}
	if err := cur.Set(last.Text, value); err != nil {
		return err
	}
	if link := linkFor(cur, last.Text); link != nil {
		link.RawSeparator = p.cur.Slice(sepStart, sepEnd)
		link.Indent = indent
	}

	p.skipInlineWhitespace()
	if p.cur.Current() == '#' {
		text, err := p.parseCommentBody()
		if err != nil {
			return err
		}
		if link := linkFor(cur, last.Text); link != nil {
			link.InlineComment = items.NewComment(text)
		}
	}
	if p.cur.AtEOF() {
		return nil
	}
	return p.consumeNewline()
}

func linkFor(t *container.Table, key string) *container.Link {
	for _, l := range t.Links() {
		if l.Kind == container.KeyValueLink && !l.Key.Hidden && l.Key.Text == key {
			return l
		}
	}
	return nil
}
