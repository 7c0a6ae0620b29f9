// Package items defines the leaf value types of a TOML document: keys,
// typed scalars (bool, string, integer, float, date, time, datetime), and
// the hidden layout items (comments, blank lines) that containers attach
// for round-trip preservation.
//
// Every type here is a plain value plus optional raw-lexeme/style
// metadata (spec.md §3) — there is deliberately no shared Node interface
// with virtual dispatch; pkg/container and pkg/emitter address these
// through a small tagged union (a type switch over the concrete types),
// following the teacher's BaseNode/Style-enum shape
// (elioetibr-golang-yaml v1/pkg/node/node.go) without its Visitor
// interface, which this domain has no use for.
package items

import (
	"regexp"

	"github.com/google/uuid"
)

// KeyStyle is the textual quoting style of a Key.
type KeyStyle int

const (
	// BareKey is unquoted: [A-Za-z0-9_-]+.
	BareKey KeyStyle = iota
	// BasicKey is double-quoted.
	BasicKey
	// LiteralKey is single-quoted.
	LiteralKey
)

var bareKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Key is a textual key with a style tag. A hidden key (Hidden == true)
// carries no textual form and is used only to address array elements
// internally; its Text/Style are meaningless.
type Key struct {
	Text   string
	Style  KeyStyle
	Hidden bool
	id     string // unique only when Hidden
}

// NewKey builds a Key, deriving its style from the text when style is not
// explicitly chosen by the caller: bare if the characters allow it, else
// basic.
func NewKey(text string) Key {
	if bareKeyPattern.MatchString(text) {
		return Key{Text: text, Style: BareKey}
	}
	return Key{Text: text, Style: BasicKey}
}

// NewKeyStyled builds a Key with an explicit style, used when the parser
// has seen the original quoting and must preserve it verbatim.
func NewKeyStyled(text string, style KeyStyle) Key {
	return Key{Text: text, Style: style}
}

// NewHiddenKey returns a process-wide unique hidden key for addressing an
// array element that has no textual key of its own. Invariant 6 (spec.md
// §3) requires global uniqueness; a UUID is the library's job here, not a
// hand-rolled counter.
func NewHiddenKey() Key {
	return Key{Hidden: true, id: uuid.NewString()}
}

// ID returns the hidden key's unique identifier, or "" for a textual key.
func (k Key) ID() string { return k.id }

// Equal reports whether two keys refer to the same slot: same hidden id,
// or same text for textual keys.
func (k Key) Equal(other Key) bool {
	if k.Hidden || other.Hidden {
		return k.Hidden && other.Hidden && k.id == other.id
	}
	return k.Text == other.Text
}
