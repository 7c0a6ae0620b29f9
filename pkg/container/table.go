package container

import (
	"github.com/njalerikson/tomlkit/pkg/errors"
	"github.com/njalerikson/tomlkit/pkg/items"
)

// Table maps keys to values in insertion order (spec.md §3).
type Table struct {
	parent *Table // self for the root table (invariant 5)
	root   *Table // cached pointer to the document root

	handle []items.Key // dotted path from root that reaches this table

	links    []*Link
	byKey    map[string]int // textual key -> index into links
	byHidden map[string]int // hidden key id -> index into links

	headComments  []*items.Comment
	headerComment *items.Comment // trailing "# ..." on this table's own [header] line

	complexPin *bool // nil = derive, non-nil true = pinned complex
	explicit   bool  // declared via [header] / inline-table literal / PinExplicit

	// dotted marks a table implicitly created by a dotted-key assignment
	// (a.b.c = 1) rather than an inline-table literal or a [header] line,
	// so a non-complex dotted table renders back as "a.b.c = 1" instead
	// of "a = { b = { c = 1 } }" (spec.md §8's round-trip law;
	// original_source tomlkit preserves this surface form verbatim).
	dotted bool

	// order is the document/creation sequence number stamped when this
	// table was attached to its parent. Non-root tables use it, together
	// with Explicit, to compute the root-mirrored emission order without
	// physically maintaining a second link list (see DESIGN.md).
	order int

	// orderSeq is only meaningful on the root: the running counter handed
	// out to every newly created Table/Array anywhere in the tree.
	orderSeq int
}

// NewRoot creates a new, empty root table. The root is always complex
// (invariant 5) and always explicit.
func NewRoot() *Table {
	t := &Table{byKey: map[string]int{}, byHidden: map[string]int{}, explicit: true}
	t.parent = t
	t.root = t
	return t
}

// NewTable creates an empty, detached, non-explicit table. It has no
// parent or root until it is attached to one via Table.Set/SetPath or
// Array.Append (which stamp parent/root/handle/order in place) — used
// by pkg/transform to build a table from a Go map literal before it is
// assigned anywhere.
func NewTable() *Table {
	return &Table{byKey: map[string]int{}, byHidden: map[string]int{}}
}

// Unwrap projects the table into a plain map[string]any, recursively
// stripping style metadata from every value (SPEC_FULL.md §11, the
// container-level primitive spec.md §6's to_native is built from).
func (t *Table) Unwrap() map[string]any {
	out := make(map[string]any, len(t.links))
	for _, l := range t.links {
		if l.Kind != KeyValueLink {
			continue
		}
		out[l.Key.Text] = unwrapValue(l.Value)
	}
	return out
}

func unwrapValue(v any) any {
	switch n := v.(type) {
	case *items.Scalar:
		return n.Native()
	case *Table:
		return n.Unwrap()
	case *Array:
		return n.Unwrap()
	default:
		return nil
	}
}

// newChild creates an empty table owned by parent, stamping the next
// document-order sequence number from the root.
func newChild(parent *Table) *Table {
	root := parent.Root()
	root.orderSeq++
	return &Table{
		parent:   parent,
		root:     root,
		byKey:    map[string]int{},
		byHidden: map[string]int{},
		order:    root.orderSeq,
	}
}

// Root returns the document root reachable from this table.
func (t *Table) Root() *Table { return t.root }

// IsRoot reports whether this table is the document root (invariant 5).
func (t *Table) IsRoot() bool { return t.parent == t }

// Parent returns the immediate parent table, or itself for the root.
func (t *Table) Parent() *Table { return t.parent }

// Handle returns the dotted key path from the root to this table.
func (t *Table) Handle() []items.Key { return append([]items.Key(nil), t.handle...) }

// Explicit reports whether this table was declared via a [header] line,
// is an inline-table literal, or had PinExplicit(true) called on it.
func (t *Table) Explicit() bool { return t.explicit }

// PinExplicit marks (or unmarks) the table as explicit.
func (t *Table) PinExplicit(v bool) { t.explicit = v }

// PinnedComplex reports whether this table's complexity was pinned
// true explicitly (as opposed to merely derived from its content), so
// callers can tell a deliberately-promoted table apart from one that
// only looks complex because of what it contains.
func (t *Table) PinnedComplex() bool { return t.complexPin != nil && *t.complexPin }

// MarkDotted flags this table as created via a dotted-key assignment.
// Called by the parser when a.b.c = 1 implicitly creates intermediate
// tables a and a.b, so the emitter can reproduce the dotted-key surface
// form rather than an inline-table literal.
func (t *Table) MarkDotted() { t.dotted = true }

// Dotted reports whether this table was created via a dotted-key
// assignment rather than a [header] line or an inline-table literal.
func (t *Table) Dotted() bool { return t.dotted }

// PinComplex pins (v==true) or unpins (v==false) this table's complexity.
// Unpinning the root, or unpinning a table that has a complex child, is
// disallowed (design note 9: "Some(false) is disallowed ... cannot
// pin-inline a document root or a table with complex children").
func (t *Table) PinComplex(v bool) error {
	if v {
		pin := true
		t.complexPin = &pin
		return nil
	}
	if t.IsRoot() {
		return errors.NewNoPos(errors.UnexpectedChar, "cannot unpin the document root's complexity")
	}
	if t.hasComplexChild() {
		return errors.NewNoPos(errors.UnexpectedChar, "cannot pin-inline a table with a complex child")
	}
	t.complexPin = nil
	return nil
}

// Complex reports the table's derived-or-pinned complexity (spec.md
// §4.4): the root is always complex; otherwise pinned-true wins, else it
// is derived from content (head comments, own comment/blank-line links,
// more than three children, or any complex child).
func (t *Table) Complex() bool {
	if t.IsRoot() {
		return true
	}
	if t.complexPin != nil && *t.complexPin {
		return true
	}
	return t.derivedComplex()
}

func (t *Table) derivedComplex() bool {
	if len(t.headComments) > 0 {
		return true
	}
	childCount := 0
	for _, l := range t.links {
		switch l.Kind {
		case CommentLink, NewlineLink:
			return true
		case KeyValueLink:
			childCount++
		}
	}
	if childCount > 3 {
		return true
	}
	return t.hasComplexChild()
}

func (t *Table) hasComplexChild() bool {
	for _, l := range t.links {
		if l.Kind != KeyValueLink {
			continue
		}
		switch v := l.Value.(type) {
		case *Table:
			if v.Complex() {
				return true
			}
		case *Array:
			if v.Complex() {
				return true
			}
		}
	}
	return false
}

// AppendHeadComment appends a comment rendered above the table's header
// line.
func (t *Table) AppendHeadComment(text string) {
	t.headComments = append(t.headComments, items.NewComment(text))
}

// HeadComments returns the table's head comments.
func (t *Table) HeadComments() []*items.Comment { return t.headComments }

// SetHeaderComment attaches a trailing "# ..." comment to this table's
// own [header]/[[header]] line.
func (t *Table) SetHeaderComment(text string) { t.headerComment = items.NewComment(text) }

// HeaderComment returns the table's header-line trailing comment, or
// nil if none was present.
func (t *Table) HeaderComment() *items.Comment { return t.headerComment }

// AppendComment appends a standalone comment line to the table's own
// body (not a head comment).
func (t *Table) AppendComment(text string) {
	t.links = append(t.links, newCommentLink(items.NewComment(text)))
}

// AppendBlankLine appends n consecutive blank lines to the table's body.
func (t *Table) AppendBlankLine(n int) {
	t.links = append(t.links, newNewlineLink(items.NewNewline(n)))
}

// Links returns the table's own ordered link list (structural children
// plus attached comments/blank lines).
func (t *Table) Links() []*Link { return t.links }

// Order returns this table's document/creation sequence number (0 for
// the root, which has none).
func (t *Table) Order() int { return t.order }

// --- lookup / mutation -----------------------------------------------

func keyIndex(text string, byKey map[string]int) (int, bool) {
	i, ok := byKey[text]
	return i, ok
}

// Get looks up a single key in this table (not a dotted path).
func (t *Table) Get(key string) (any, bool) {
	if i, ok := t.byKey[key]; ok {
		return t.links[i].Value, true
	}
	return nil, false
}

// GetPath walks a dotted path of keys through nested tables.
func (t *Table) GetPath(path ...string) (any, bool) {
	cur := t
	for i, k := range path {
		v, ok := cur.Get(k)
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		next, ok := v.(*Table)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// Contains reports whether key is set directly on this table.
func (t *Table) Contains(key string) bool {
	_, ok := t.byKey[key]
	return ok
}

// ContainsPath reports whether a dotted path resolves to a value.
func (t *Table) ContainsPath(path ...string) bool {
	_, ok := t.GetPath(path...)
	return ok
}

// Set assigns value to key, replacing any existing link's value in
// place (so unrelated links keep their position) or appending a new
// link. value may already be a *items.Scalar/*Table/*Array, or a plain
// Go native value understood by pkg/transform.FromNative.
func (t *Table) Set(key string, value any) error {
	node, err := t.coerce(value)
	if err != nil {
		return err
	}
	if i, ok := t.byKey[key]; ok {
		// Replacing the link's value (rather than mutating the old node)
		// is what keeps raw-lexeme semantics correct: the old scalar's
		// raw string, if any, is simply discarded with the old node.
		t.links[i].Value = node
		t.stampHandle(node, t.links[i].Key)
		return nil
	}
	k := items.NewKey(key)
	t.links = append(t.links, newKeyValueLink(k, node))
	t.byKey[key] = len(t.links) - 1
	t.stampHandle(node, k)
	return nil
}

// SetPath assigns value at a dotted path, creating intermediate tables
// as needed (never arrays — array-of-tables creation is explicit).
func (t *Table) SetPath(value any, path ...string) error {
	if len(path) == 0 {
		return errors.NewNoPos(errors.EmptyKey, "empty key path")
	}
	cur := t
	for _, k := range path[:len(path)-1] {
		next, err := cur.setdefaultTable(k)
		if err != nil {
			return err
		}
		cur = next
	}
	return cur.Set(path[len(path)-1], value)
}

// setdefaultTable resolves key to an existing table child, creating one
// if absent. A conflict (key exists but is not a table) is a parse/
// mutation error.
func (t *Table) setdefaultTable(key string) (*Table, error) {
	if v, ok := t.Get(key); ok {
		if tbl, ok := v.(*Table); ok {
			return tbl, nil
		}
		return nil, errors.NewNoPos(errors.UnexpectedChar, "key "+key+" is not a table")
	}
	child := newChild(t)
	child.handle = append(append([]items.Key(nil), t.handle...), items.NewKey(key))
	k := items.NewKey(key)
	t.links = append(t.links, newKeyValueLink(k, child))
	t.byKey[key] = len(t.links) - 1
	return child, nil
}

// SetDefault returns the existing value for key if present, else sets it
// to value and returns that.
func (t *Table) SetDefault(key string, value any) (any, error) {
	if v, ok := t.Get(key); ok {
		return v, nil
	}
	node, err := t.coerce(value)
	if err != nil {
		return nil, err
	}
	if err := t.Set(key, node); err != nil {
		return nil, err
	}
	return node, nil
}

// CreateTable declares a new, empty, explicit child table under key,
// returning a DuplicateKey error if key is already set. This is the
// operation the table parser uses for a [header] / [[header]] line.
func (t *Table) CreateTable(key string) (*Table, error) {
	if t.Contains(key) {
		return nil, errors.NewNoPos(errors.DuplicateKey, "duplicate key: "+key)
	}
	child := newChild(t)
	child.handle = append(append([]items.Key(nil), t.handle...), items.NewKey(key))
	child.explicit = true
	k := items.NewKey(key)
	t.links = append(t.links, newKeyValueLink(k, child))
	t.byKey[key] = len(t.links) - 1
	return child, nil
}

// Delete removes key from this table. A removed table is cleared, and so
// are its nested tables, recursively; a removed array keeps its elements.
func (t *Table) Delete(key string) bool {
	i, ok := t.byKey[key]
	if !ok {
		return false
	}
	if tbl, ok := t.links[i].Value.(*Table); ok {
		tbl.Clear()
	}
	t.links = append(t.links[:i:i], t.links[i+1:]...)
	delete(t.byKey, key)
	for k, idx := range t.byKey {
		if idx > i {
			t.byKey[k] = idx - 1
		}
	}
	return true
}

// Pop removes and returns key's value.
func (t *Table) Pop(key string) (any, bool) {
	v, ok := t.Get(key)
	if !ok {
		return nil, false
	}
	t.Delete(key)
	return v, true
}

// PopItem removes and returns the table's last inserted key/value pair.
func (t *Table) PopItem() (string, any, bool) {
	for i := len(t.links) - 1; i >= 0; i-- {
		if t.links[i].Kind == KeyValueLink {
			key := t.links[i].Key.Text
			v := t.links[i].Value
			t.Delete(key)
			return key, v, true
		}
	}
	return "", nil, false
}

// Clear removes every link from this table.
func (t *Table) Clear() {
	for _, l := range t.links {
		if l.Kind == KeyValueLink {
			if tbl, ok := l.Value.(*Table); ok {
				tbl.Clear()
			}
		}
	}
	t.links = nil
	t.byKey = map[string]int{}
	t.byHidden = map[string]int{}
}

// Update sets every key/value pair from other onto t, in other's order,
// overwriting any key t already has in place (spec.md §6's `update`).
// Values are cloned rather than moved, so other is left untouched. For a
// strategy-driven merge (deep/shallow/override, array append vs.
// replace) see pkg/merge, which is built on Get/Set/Items rather than
// reaching into Table's unexported fields.
func (t *Table) Update(other *Table) error {
	for _, it := range other.Items() {
		if err := t.Set(it.Key, cloneValue(it.Value)); err != nil {
			return err
		}
	}
	return nil
}

// CloneValue deep-copies a link value (*items.Scalar, *Table, or
// *Array) into a fresh, unattached node. Exported for pkg/merge, which
// builds new trees out of two existing ones and must never let the
// result share nodes with either input.
func CloneValue(v any) any { return cloneValue(v) }

// cloneValue deep-copies a link value so Update never lets two tables
// share (and fight over re-parenting) the same node.
func cloneValue(v any) any {
	switch n := v.(type) {
	case *items.Scalar:
		cp := *n
		return &cp
	case *Table:
		cp := NewTable()
		_ = cp.Update(n)
		cp.headComments = append([]*items.Comment(nil), n.headComments...)
		if n.complexPin != nil {
			pin := *n.complexPin
			cp.complexPin = &pin
		}
		cp.explicit = n.explicit
		cp.dotted = n.dotted
		return cp
	case *Array:
		cp := NewArray()
		for _, elem := range n.Values() {
			_ = cp.Append(cloneValue(elem))
		}
		return cp
	default:
		return v
	}
}

// Keys returns the table's keys in insertion order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.links))
	for _, l := range t.links {
		if l.Kind == KeyValueLink {
			keys = append(keys, l.Key.Text)
		}
	}
	return keys
}

// Values returns the table's values in insertion order.
func (t *Table) Values() []any {
	vals := make([]any, 0, len(t.links))
	for _, l := range t.links {
		if l.Kind == KeyValueLink {
			vals = append(vals, l.Value)
		}
	}
	return vals
}

// Item is a single key/value pair as returned by Items.
type Item struct {
	Key   string
	Value any
}

// Items returns the table's key/value pairs in insertion order.
func (t *Table) Items() []Item {
	items := make([]Item, 0, len(t.links))
	for _, l := range t.links {
		if l.Kind == KeyValueLink {
			items = append(items, Item{Key: l.Key.Text, Value: l.Value})
		}
	}
	return items
}

// Len returns the number of keyed values directly in this table.
func (t *Table) Len() int { return len(t.Keys()) }

func (t *Table) stampHandle(node any, key items.Key) {
	switch v := node.(type) {
	case *Table:
		v.parent = t
		v.root = t.Root()
		v.handle = append(append([]items.Key(nil), t.handle...), key)
		if r := t.Root(); r != nil {
			r.orderSeq++
			v.order = r.orderSeq
		}
	case *Array:
		v.owner = t
		v.ownerKey = key
		if r := t.Root(); r != nil {
			r.orderSeq++
			v.order = r.orderSeq
		}
	}
}

// coerce turns a Go native value or an already-built node into a value
// suitable for storage in a Link. It delegates to pkg/transform for
// native Go values through FromNativeFunc, which pkg/transform sets so
// container need not import it (pkg/transform builds nodes with
// container.NewTable/NewArray; see transform/native.go).
func (t *Table) coerce(value any) (any, error) {
	switch v := value.(type) {
	case *items.Scalar, *Table, *Array:
		if tbl, ok := v.(*Table); ok {
			tbl.parent = t
			tbl.root = t.Root()
		}
		if arr, ok := v.(*Array); ok {
			arr.owner = t
		}
		return v, nil
	default:
		return FromNativeFunc(t, value)
	}
}

// FromNativeFunc is set by pkg/transform at package-init time (via its
// init function) so Table.Set/SetDefault can lift plain Go values
// without pkg/container importing pkg/transform (which itself imports
// pkg/container to build Table/Array nodes).
var FromNativeFunc func(owner *Table, value any) (any, error)
