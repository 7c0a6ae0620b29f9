// Package emitter implements the flatten/emit traversal (spec.md §4.5):
// a pure function from a pkg/container tree to bytes, reproducing the
// original lexeme wherever one survives and reformatting from value +
// style metadata otherwise.
//
// Grounded on the teacher's serializer traversal shape
// (elioetibr-golang-yaml pkg/serializer/serializer.go), generalized from
// YAML's block/flow duality to TOML's headered/inline duality, with the
// root-link-mirroring behaviour (spec.md §4.4) implemented as a
// document-order stamp plus a global sort rather than a physically
// duplicated link list (see DESIGN.md) — an equivalent-output, simpler
// substitute for the literal "mirror into the root's link list" wording.
package emitter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/njalerikson/tomlkit/pkg/container"
	"github.com/njalerikson/tomlkit/pkg/items"
)

// Emit renders root to its canonical TOML text. For an unmutated parse
// result this reproduces the input byte-for-byte (spec.md §8's
// round-trip law).
func Emit(root *container.Table) string {
	var out strings.Builder

	units := collectUnits(root)
	sort.SliceStable(units, func(i, j int) bool { return units[i].order < units[j].order })

	writeBody(&out, root)

	for _, u := range units {
		for _, c := range u.table.HeadComments() {
			out.WriteString(renderComment(c))
			out.WriteByte('\n')
		}
		out.WriteString(renderHeader(u))
		if c := u.table.HeaderComment(); c != nil {
			out.WriteString("  " + renderComment(c))
		}
		out.WriteByte('\n')
		writeBody(&out, u.table)
	}

	return out.String()
}

// renderUnit is a table that renders as its own `[header]`/`[[header]]`
// block rather than inline within its parent's body.
type renderUnit struct {
	handle        []items.Key
	arrayOfTables bool
	table         *container.Table
	order         int
}

// collectUnits walks the tree from root and gathers every complex,
// non-root table as a render unit — the "mirrored into the root" set
// spec.md §4.4 describes, computed instead of physically duplicated.
// A non-complex table can never contain a complex descendant (pinning a
// table non-complex while it has a complex child is rejected at
// mutation time), so the walk need not recurse past a non-complex node.
func collectUnits(t *container.Table) []renderUnit {
	var units []renderUnit
	for _, l := range t.Links() {
		if l.Kind != container.KeyValueLink {
			continue
		}
		switch v := l.Value.(type) {
		case *container.Table:
			if v.Complex() {
				if needsOwnUnit(v) {
					units = append(units, renderUnit{handle: v.Handle(), table: v, order: v.Order()})
				}
				units = append(units, collectUnits(v)...)
			}
		case *container.Array:
			if v.Complex() {
				for _, elem := range v.Values() {
					if et, ok := elem.(*container.Table); ok {
						units = append(units, renderUnit{handle: et.Handle(), arrayOfTables: true, table: et, order: et.Order()})
						units = append(units, collectUnits(et)...)
					}
				}
			}
		}
	}
	return units
}

// needsOwnUnit reports whether a complex table should render its own
// `[header]` line. A table that only became complex because one of its
// children did — an implicit "super table" reached purely by a dotted
// header path such as [tool.poetry]/[tool.black], never itself given a
// [tool] line or any content of its own — renders no header at all;
// only its complex children do (original_source's
// test_toml_document_without_super_tables: "[tool.poetry]\nname =
// \"foo\"\n" round-trips with no "[tool]" line). A table that was
// itself explicitly declared, pinned complex, or carries any content of
// its own (a direct non-complex child, or its own comments/blank lines)
// still gets one.
func needsOwnUnit(t *container.Table) bool {
	if t.Explicit() || t.PinnedComplex() {
		return true
	}
	if len(t.HeadComments()) > 0 {
		return true
	}
	for _, l := range t.Links() {
		switch l.Kind {
		case container.CommentLink, container.NewlineLink:
			return true
		case container.KeyValueLink:
			if !isComplexChild(l.Value) {
				return true
			}
		}
	}
	return false
}

func renderHeader(u renderUnit) string {
	path := renderHandle(u.handle)
	if u.arrayOfTables {
		return "[[" + path + "]]"
	}
	return "[" + path + "]"
}

func renderHandle(handle []items.Key) string {
	parts := make([]string, len(handle))
	for i, k := range handle {
		parts[i] = renderKey(k)
	}
	return strings.Join(parts, ".")
}

// writeBody renders t's own link list in order, skipping any child
// that is itself a render unit (printed separately, in document
// order, by Emit).
func writeBody(out *strings.Builder, t *container.Table) {
	for _, l := range t.Links() {
		switch l.Kind {
		case container.NewlineLink:
			for i := 0; i < l.Newline.N; i++ {
				out.WriteByte('\n')
			}
		case container.CommentLink:
			out.WriteString(renderComment(l.Comment))
			out.WriteByte('\n')
		case container.KeyValueLink:
			if isComplexChild(l.Value) {
				continue
			}
			if tbl, ok := l.Value.(*container.Table); ok && tbl.Dotted() {
				entries := flattenEntries([]items.Key{l.Key}, tbl)
				if len(entries) == 0 {
					entries = []string{renderKeyValue(l)}
				}
				for _, entry := range entries {
					out.WriteString(entry)
					out.WriteByte('\n')
				}
				continue
			}
			out.WriteString(renderKeyValue(l))
			out.WriteByte('\n')
		}
	}
}

// flattenEntries expands t's own key/value links into rendered
// "key[.key...] = value" strings, recursively flattening any nested
// table that was itself created by a dotted-key assignment (spec.md §8;
// preserves the original dotted-key surface form instead of re-nesting
// it as an inline-table literal).
func flattenEntries(prefix []items.Key, t *container.Table) []string {
	var out []string
	for _, l := range t.Links() {
		if l.Kind != container.KeyValueLink {
			continue
		}
		path := append(append([]items.Key(nil), prefix...), l.Key)
		if sub, ok := l.Value.(*container.Table); ok && sub.Dotted() && !sub.Complex() {
			out = append(out, flattenEntries(path, sub)...)
			continue
		}
		sep := l.RawSeparator
		if sep == "" {
			sep = " = "
		}
		entry := l.Indent + renderHandle(path) + sep + renderValue(l.Value)
		if l.InlineComment != nil {
			entry += "  " + renderComment(l.InlineComment)
		}
		out = append(out, entry)
	}
	return out
}

// isComplexChild reports whether v is a container rendered elsewhere as
// its own header block (or as an array-of-tables sequence of them)
// rather than inline here.
func isComplexChild(v any) bool {
	switch n := v.(type) {
	case *container.Table:
		return n.Complex()
	case *container.Array:
		return n.Complex()
	}
	return false
}

func renderKeyValue(l *container.Link) string {
	sep := l.RawSeparator
	if sep == "" {
		sep = " = "
	}
	s := l.Indent + renderKey(l.Key) + sep + renderValue(l.Value)
	if l.InlineComment != nil {
		s += "  " + renderComment(l.InlineComment)
	}
	return s
}

func renderKey(k items.Key) string {
	switch k.Style {
	case items.BasicKey:
		return quoteBasicString(k.Text)
	case items.LiteralKey:
		return "'" + k.Text + "'"
	default:
		return k.Text
	}
}

func renderComment(c *items.Comment) string {
	return c.Render()
}

func renderValue(v any) string {
	switch n := v.(type) {
	case *items.Scalar:
		return renderScalar(n)
	case *container.Table:
		return renderTableInline(n)
	case *container.Array:
		return renderArrayInline(n)
	default:
		return ""
	}
}

func renderTableInline(t *container.Table) string {
	var parts []string
	for _, l := range t.Links() {
		if l.Kind != container.KeyValueLink {
			continue
		}
		if sub, ok := l.Value.(*container.Table); ok && sub.Dotted() && !sub.Complex() {
			parts = append(parts, flattenEntries([]items.Key{l.Key}, sub)...)
			continue
		}
		parts = append(parts, renderKey(l.Key)+" = "+renderValue(l.Value))
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func renderArrayInline(a *container.Array) string {
	var parts []string
	hasComment := false
	hasInline := false
	for _, l := range a.Links() {
		switch l.Kind {
		case container.KeyValueLink:
			parts = append(parts, renderValue(l.Value))
			if l.InlineComment != nil {
				hasInline = true
			}
		case container.CommentLink, container.NewlineLink:
			hasComment = true
		}
	}
	// a value's inline comment forces the multi-line form: it cannot be
	// represented in a single-line literal without commenting out the
	// rest of the array.
	if !hasComment && !hasInline && len(parts) <= 8 {
		return "[" + strings.Join(parts, ", ") + "]"
	}
	// A value followed immediately by its comment leaves no room for a
	// trailing comma on the same line (the comment runs to end of line),
	// so the multi-line form always uses a leading-comma layout: the
	// comma for element N+1 opens its own line rather than closing
	// element N's. This is the only layout that
	// reparses an inline comment back onto the same element instead of
	// demoting it to a standalone comment between elements.
	var out strings.Builder
	out.WriteString("[\n")
	firstElem := true
	for _, l := range a.Links() {
		switch l.Kind {
		case container.KeyValueLink:
			out.WriteString("  ")
			if !firstElem {
				out.WriteString(", ")
			}
			firstElem = false
			out.WriteString(renderValue(l.Value))
			if l.InlineComment != nil {
				out.WriteString("  " + renderComment(l.InlineComment))
			}
			out.WriteString("\n")
		case container.CommentLink:
			out.WriteString("  " + renderComment(l.Comment) + "\n")
		case container.NewlineLink:
			for i := 0; i < l.Newline.N; i++ {
				out.WriteByte('\n')
			}
		}
	}
	out.WriteString("]")
	return out.String()
}

func renderScalar(s *items.Scalar) string {
	if s.HasRaw {
		return s.Raw
	}
	switch s.Kind {
	case items.KindBool:
		if s.BoolVal {
			return "true"
		}
		return "false"
	case items.KindString:
		return renderString(s)
	case items.KindInteger:
		return renderInteger(s)
	case items.KindFloat:
		return renderFloat(s)
	case items.KindDate:
		return s.DateVal.String()
	case items.KindTime:
		return s.TimeVal.String()
	case items.KindDateTime:
		return s.DateTimeVal.String()
	default:
		return ""
	}
}

func renderString(s *items.Scalar) string {
	if s.StringStyle == items.StyleLiteral {
		return "'" + s.StringVal + "'"
	}
	return quoteBasicString(s.StringVal)
}

func quoteBasicString(v string) string {
	var out strings.Builder
	out.WriteByte('"')
	for _, r := range v {
		switch r {
		case '\\':
			out.WriteString(`\\`)
		case '"':
			out.WriteString(`\"`)
		case '\b':
			out.WriteString(`\b`)
		case '\t':
			out.WriteString(`\t`)
		case '\n':
			out.WriteString(`\n`)
		case '\f':
			out.WriteString(`\f`)
		case '\r':
			out.WriteString(`\r`)
		default:
			if r < 0x20 {
				out.WriteString("\\u" + pad4(int(r)))
			} else {
				out.WriteRune(r)
			}
		}
	}
	out.WriteByte('"')
	return out.String()
}

func pad4(v int) string {
	s := strconv.FormatInt(int64(v), 16)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

func renderInteger(s *items.Scalar) string {
	neg := s.IntVal < 0
	v := s.IntVal
	if neg {
		v = -v
	}
	var digits string
	prefix := ""
	switch s.IntBase {
	case 16:
		digits = strconv.FormatInt(v, 16)
		prefix = "0x"
	case 8:
		digits = strconv.FormatInt(v, 8)
		prefix = "0o"
	case 2:
		digits = strconv.FormatInt(v, 2)
		prefix = "0b"
	default:
		digits = strconv.FormatInt(v, 10)
	}
	if s.IntThousands && s.IntBase == 10 {
		digits = groupDigits(digits, 3)
	}
	sign := ""
	if neg {
		sign = "-"
	}
	return sign + prefix + digits
}

func groupDigits(digits string, n int) string {
	if len(digits) <= n {
		return digits
	}
	var parts []string
	for len(digits) > n {
		parts = append([]string{digits[len(digits)-n:]}, parts...)
		digits = digits[:len(digits)-n]
	}
	parts = append([]string{digits}, parts...)
	return strings.Join(parts, "_")
}

func renderFloat(s *items.Scalar) string {
	if tok, ok := s.IsFloatSpecial(); ok {
		return tok
	}
	format := byte('f')
	if s.FloatScientific {
		format = 'e'
	}
	out := strconv.FormatFloat(s.FloatVal, format, -1, 64)
	if format == 'f' && !strings.Contains(out, ".") {
		out += ".0"
	}
	if s.FloatThousands {
		if i := strings.IndexByte(out, '.'); i >= 0 {
			out = groupDigits(out[:i], 3) + out[i:]
		} else {
			out = groupDigits(out, 3)
		}
	}
	return out
}
