package container

import (
	"github.com/njalerikson/tomlkit/pkg/errors"
	"github.com/njalerikson/tomlkit/pkg/items"
)

// Array is an ordered list of values (spec.md §3). Internally it reuses
// the same Link-list shape as Table (KeyValueLink for elements, using a
// hidden key since array elements have no textual key; CommentLink /
// NewlineLink for layout items attached between elements), keeping the
// container family visually and structurally consistent rather than
// inventing a second representation for what is, at the link-list level,
// the same ordered-slots-plus-trivia problem Table solves.
type Array struct {
	owner    *Table    // the table holding the key this array is assigned to
	ownerKey items.Key // the key under which owner stores this array

	links []*Link

	// elemKind is nil until the first scalar element is inserted; once
	// set it locks the array to that scalar Kind (invariant 4). Container
	// elements (Table/Array) are exempt.
	elemKind *items.ScalarKind

	complexPin *bool
	order      int
}

// NewArray creates an empty array. Owner/ownerKey are stamped by the
// table that stores it (Table.stampHandle).
func NewArray() *Array { return &Array{} }

// Owner returns the table that holds this array's key, or nil if the
// array has not yet been attached anywhere.
func (a *Array) Owner() *Table { return a.owner }

// Handle returns the dotted path from the root that reaches this array.
func (a *Array) Handle() []items.Key {
	if a.owner == nil {
		return nil
	}
	return append(a.owner.Handle(), a.ownerKey)
}

// Order returns this array's document/creation sequence number.
func (a *Array) Order() int { return a.order }

// PinComplex pins (v==true) or unpins (v==false) this array's complexity.
// Unlike Table.PinComplex it never fails: unpinning simply returns the
// array to its derived complexity.
func (a *Array) PinComplex(v bool) error {
	if v {
		pin := true
		a.complexPin = &pin
		return nil
	}
	a.complexPin = nil
	return nil
}

// Complex reports whether this array renders as a sequence of
// `[[path]]` table blocks rather than an inline `[ ... ]` literal
// (spec.md §4.4): true when pinned, or when every element is a Table and
// at least one of them is itself complex.
func (a *Array) Complex() bool {
	if a.complexPin != nil && *a.complexPin {
		return true
	}
	if !a.allElementsAreTables() {
		return false
	}
	for _, v := range a.Values() {
		if tbl, ok := v.(*Table); ok && tbl.Complex() {
			return true
		}
	}
	return false
}

func (a *Array) allElementsAreTables() bool {
	found := false
	for _, l := range a.links {
		if l.Kind != KeyValueLink {
			continue
		}
		if _, ok := l.Value.(*Table); !ok {
			return false
		}
		found = true
	}
	return found
}

// Links returns the array's own ordered link list.
func (a *Array) Links() []*Link { return a.links }

// Len returns the number of elements (excluding comments/blank lines).
func (a *Array) Len() int { return len(a.Values()) }

// Values returns the array's elements in order.
func (a *Array) Values() []any {
	vals := make([]any, 0, len(a.links))
	for _, l := range a.links {
		if l.Kind == KeyValueLink {
			vals = append(vals, l.Value)
		}
	}
	return vals
}

// Get returns the element at index.
func (a *Array) Get(index int) (any, bool) {
	vals := a.Values()
	if index < 0 || index >= len(vals) {
		return nil, false
	}
	return vals[index], true
}

// GetPath walks a nested index path through nested arrays.
func (a *Array) GetPath(path ...int) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}
	cur := a
	for i, idx := range path {
		v, ok := cur.Get(idx)
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		next, ok := v.(*Array)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

func (a *Array) linkIndexForElement(n int) (int, bool) {
	count := -1
	for i, l := range a.links {
		if l.Kind != KeyValueLink {
			continue
		}
		count++
		if count == n {
			return i, true
		}
	}
	return 0, false
}

// checkType enforces invariant 4 (mixed scalar types forbidden; Table
// and Array elements are exempt) and locks elemKind on first insertion.
func (a *Array) checkType(v any) error {
	kind, isScalar := valueTypeTag(v)
	if !isScalar {
		return nil
	}
	if a.elemKind == nil {
		a.elemKind = &kind
		return nil
	}
	if *a.elemKind != kind {
		return errors.NewNoPos(errors.MixedArrayTypes, "array element type mismatch")
	}
	return nil
}

func (a *Array) coerce(value any) (any, error) {
	switch v := value.(type) {
	case *items.Scalar, *Table, *Array:
		a.stampElement(v)
		return v, nil
	default:
		node, err := FromNativeFunc(a.owner, value)
		if err != nil {
			return nil, err
		}
		a.stampElement(node)
		return node, nil
	}
}

// stampElement re-parents a Table/Array element into this array's
// context (same handle as the array itself, since every element of an
// array-of-tables shares one key path) and stamps a fresh document-order
// sequence number from the root, mirroring Table.stampHandle.
func (a *Array) stampElement(node any) {
	switch v := node.(type) {
	case *Table:
		if a.owner != nil {
			v.parent = a.owner
			v.root = a.owner.Root()
			v.handle = a.Handle()
			a.owner.Root().orderSeq++
			v.order = a.owner.Root().orderSeq
		}
	case *Array:
		if a.owner != nil {
			a.owner.Root().orderSeq++
			v.order = a.owner.Root().orderSeq
		}
	}
}

// Append adds value at the end of the array.
func (a *Array) Append(value any) error {
	node, err := a.coerce(value)
	if err != nil {
		return err
	}
	if err := a.checkType(node); err != nil {
		return err
	}
	a.links = append(a.links, newKeyValueLink(items.NewHiddenKey(), node))
	return nil
}

// AppendTable appends a new, empty, explicit table element — the
// operation backing `[[path]]` growth (spec.md §8 scenario 6).
func (a *Array) AppendTable() *Table {
	owner := a.owner
	if owner == nil {
		owner = NewRoot()
	}
	child := newChild(owner)
	child.explicit = true
	child.handle = a.Handle()
	a.links = append(a.links, newKeyValueLink(items.NewHiddenKey(), child))
	a.elemKind = nil // containers are exempt from the scalar lock
	return child
}

// Insert adds value at position index, shifting later elements right.
func (a *Array) Insert(index int, value any) error {
	node, err := a.coerce(value)
	if err != nil {
		return err
	}
	if err := a.checkType(node); err != nil {
		return err
	}
	li, ok := a.linkIndexForElement(index)
	if !ok {
		return a.Append(value)
	}
	link := newKeyValueLink(items.NewHiddenKey(), node)
	a.links = append(a.links[:li], append([]*Link{link}, a.links[li:]...)...)
	return nil
}

// Extend appends every element of values in order.
func (a *Array) Extend(values []any) error {
	for _, v := range values {
		if err := a.Append(v); err != nil {
			return err
		}
	}
	return nil
}

// Set replaces the element at index.
func (a *Array) Set(index int, value any) error {
	node, err := a.coerce(value)
	if err != nil {
		return err
	}
	if err := a.checkType(node); err != nil {
		return err
	}
	li, ok := a.linkIndexForElement(index)
	if !ok {
		return errors.NewNoPos(errors.UnexpectedChar, "array index out of range")
	}
	a.links[li].Value = node
	return nil
}

// Delete removes the element at index.
func (a *Array) Delete(index int) bool {
	li, ok := a.linkIndexForElement(index)
	if !ok {
		return false
	}
	a.links = append(a.links[:li:li], a.links[li+1:]...)
	if len(a.Values()) == 0 {
		a.elemKind = nil
	}
	return true
}

// Pop removes and returns the element at index.
func (a *Array) Pop(index int) (any, bool) {
	v, ok := a.Get(index)
	if !ok {
		return nil, false
	}
	a.Delete(index)
	return v, true
}

// Clear removes every element, comment, and blank line.
func (a *Array) Clear() {
	a.links = nil
	a.elemKind = nil
}

// AppendComment appends a standalone comment line to the array's body.
func (a *Array) AppendComment(text string) {
	a.links = append(a.links, newCommentLink(items.NewComment(text)))
}

// AppendBlankLine appends n consecutive blank lines to the array's body.
func (a *Array) AppendBlankLine(n int) {
	a.links = append(a.links, newNewlineLink(items.NewNewline(n)))
}

// Unwrap projects the array into a plain []any, recursively stripping
// style metadata from every element (SPEC_FULL.md §11).
func (a *Array) Unwrap() []any {
	vals := a.Values()
	out := make([]any, len(vals))
	for i, v := range vals {
		switch n := v.(type) {
		case *items.Scalar:
			out[i] = n.Native()
		case *Table:
			out[i] = n.Unwrap()
		case *Array:
			out[i] = n.Unwrap()
		}
	}
	return out
}
