// Package tomlkit is the public entry point of a style-preserving TOML
// v0.5 codec: parse a document into a mutable tree, edit it with the
// ordinary container operations, and emit it back to text that
// reproduces the original bytes wherever the tree was left unmutated
// (spec.md §8's round-trip law).
//
// Mirrors the teacher's top-level convenience surface
// (elioetibr-golang-yaml v1's parser.ParseString / serializer.
// SerializeToString) and the Python original's tomlkit.parse/tomlkit.
// dumps package-root names (SPEC_FULL.md §11), so callers working with
// whole documents never need to reach into pkg/parser/pkg/emitter
// directly.
package tomlkit

import (
	"io"

	"github.com/njalerikson/tomlkit/pkg/container"
	"github.com/njalerikson/tomlkit/pkg/emitter"
	"github.com/njalerikson/tomlkit/pkg/merge"
	"github.com/njalerikson/tomlkit/pkg/parser"
	"github.com/njalerikson/tomlkit/pkg/transform"
)

// Document is the parsed root table of a TOML document (always complex
// and explicit, invariant 5). It is a type alias rather than a wrapper
// so every container.Table method (Get, Set, SetPath, Update, ...) is
// usable directly on a parsed or constructed Document.
type Document = container.Table

// Parse reads src in full and parses it into a Document.
func Parse(src []byte) (*Document, error) {
	return parser.Parse(src)
}

// ParseString is Parse over a string, for callers holding text rather
// than bytes.
func ParseString(src string) (*Document, error) {
	return parser.Parse([]byte(src))
}

// ParseReader reads r to completion, then parses it.
func ParseReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parser.Parse(data)
}

// New returns an empty, explicit, complex Document ready to be built up
// with Set/SetPath/CreateTable and emitted.
func New() *Document {
	return container.NewRoot()
}

// Emit renders doc to its canonical TOML text. For a Document returned
// by Parse, unmutated, this reproduces the input byte-for-byte.
func Emit(doc *Document) string {
	return emitter.Emit(doc)
}

// String is Emit as a method-shaped call for callers that prefer
// doc.String() / fmt.Stringer-style usage. Document being a type alias
// for container.Table (not a distinct defined type) means this cannot
// be a method in Go; String is the free-function equivalent.
func String(doc *Document) string { return emitter.Emit(doc) }

// FromNative lifts a plain Go value (bool, string, int64-family, float,
// items.Date/Time/DateTime, map[string]any, []any) into the node type
// pkg/container stores — a *items.Scalar, *container.Table, or
// *container.Array, as appropriate. The result is detached until it is
// stored in a Document with Set/Append.
func FromNative(value any) (any, error) {
	return transform.FromNative(nil, value)
}

// ToNative strips a node's style metadata, producing a plain
// bool/string/int64/float64/items.Date-family/map[string]any/[]any
// value tree.
func ToNative(node any) any {
	return transform.ToNative(node)
}

// Merge combines base and override into a new Document under opts
// (merge.DefaultOptions() if nil), leaving both inputs untouched.
func Merge(base, override *Document, opts *merge.Options) (*Document, error) {
	return merge.NewMerger(opts).Merge(base, override)
}
