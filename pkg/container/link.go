// Package container implements the mutable document tree: Table and
// Array nodes that behave like an ordinary nested mapping/sequence while
// retaining ordered links, comments, blank lines, and per-node style
// metadata (spec.md §3).
//
// Grounded on the teacher's MappingNode/SequenceNode/BaseNode shape
// (elioetibr-golang-yaml v1/pkg/node/node.go) and its comment-group
// bookkeeping (pkg/node/comment.go), generalized from YAML's
// block/flow duality to TOML's inline/headered duality, and on
// tomlkit/items/container.py (original_source) for the link-list +
// by-key map + scope model this spec calls for.
package container

import "github.com/njalerikson/tomlkit/pkg/items"

// LinkKind tags what a Link slot holds.
type LinkKind int

const (
	// KeyValueLink is a keyed value slot (scalar, Table, or Array).
	KeyValueLink LinkKind = iota
	// CommentLink is a standalone "#" comment line.
	CommentLink
	// NewlineLink is n>=1 consecutive blank lines.
	NewlineLink
)

// Link is an ordered slot in a container's link list: either a keyed
// value or a hidden item (comment/blank line). Value, when Kind is
// KeyValueLink, holds *items.Scalar, *Table, or *Array — a tagged union
// realized as a plain `any` plus a type switch at every use site, per
// design note 9 ("avoid virtual dispatch for the value hierarchy; use a
// tagged union").
type Link struct {
	Kind LinkKind

	Key   items.Key
	Value any

	Comment *items.Comment
	Newline *items.Newline

	// InlineComment is an end-of-line "# ..." attached to a KeyValueLink.
	InlineComment *items.Comment

	// RawSeparator preserves the exact whitespace/'=' spacing around a
	// KeyValueLink's assignment when the link is unmutated (SPEC_FULL.md
	// §11, supplemented from tomlkit's per-item trivia). Empty means "use
	// the emitter's canonical ' = '".
	RawSeparator string

	// Indent preserves the leading whitespace before a key = value line
	// (SPEC_FULL.md §11). Empty means no leading whitespace.
	Indent string
}

func newKeyValueLink(key items.Key, value any) *Link {
	return &Link{Kind: KeyValueLink, Key: key, Value: value}
}

func newCommentLink(c *items.Comment) *Link {
	return &Link{Kind: CommentLink, Comment: c}
}

func newNewlineLink(n *items.Newline) *Link {
	return &Link{Kind: NewlineLink, Newline: n}
}

// valueTypeTag classifies a link Value for the array element-type lock
// (spec.md §3 invariant 4): containers (*Table, *Array) are exempt since
// they are not scalars.
func valueTypeTag(v any) (kind items.ScalarKind, isScalar bool) {
	if s, ok := v.(*items.Scalar); ok {
		return s.Kind, true
	}
	return 0, false
}
