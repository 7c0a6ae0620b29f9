package items

import (
	"math"
	"strings"
)

// ScalarKind identifies the value domain of a Scalar.
type ScalarKind int

const (
	KindBool ScalarKind = iota
	KindString
	KindInteger
	KindFloat
	KindDate
	KindTime
	KindDateTime
)

// StringStyle is the quoting style of a String scalar.
type StringStyle int

const (
	StyleBasic StringStyle = iota
	StyleLiteral
)

// Scalar is a typed leaf value plus the style metadata needed to
// reformat it when no raw lexeme is available, and the raw lexeme itself
// when one is — the preservation hinge described in spec.md §3.
type Scalar struct {
	Kind ScalarKind

	// Raw, when HasRaw is true, is emitted verbatim instead of being
	// recomputed from Value+style. Assigning a new scalar with Table.Set
	// discards the old node and its Raw, and ClearRaw drops it in place;
	// re-reading the same value through Get/Set preserves it.
	Raw    string
	HasRaw bool

	BoolVal bool

	StringVal   string
	StringStyle StringStyle
	MultiLine   bool

	IntVal       int64
	IntBase      int // 2, 8, 10, or 16
	IntThousands bool

	FloatVal        float64
	FloatThousands  bool
	FloatScientific bool

	DateVal     Date
	TimeVal     Time
	DateTimeVal DateTime
}

// NewBool builds a bool scalar.
func NewBool(v bool) *Scalar { return &Scalar{Kind: KindBool, BoolVal: v} }

// NewString builds a string scalar with the given quoting style.
func NewString(v string, style StringStyle, multiLine bool) *Scalar {
	return &Scalar{Kind: KindString, StringVal: v, StringStyle: style, MultiLine: multiLine}
}

// NewInteger builds an integer scalar in the given base (2, 8, 10, 16).
func NewInteger(v int64, base int, thousands bool) *Scalar {
	if base == 0 {
		base = 10
	}
	return &Scalar{Kind: KindInteger, IntVal: v, IntBase: base, IntThousands: thousands}
}

// NewFloat builds a float scalar, including the IEEE specials.
func NewFloat(v float64, thousands, scientific bool) *Scalar {
	return &Scalar{Kind: KindFloat, FloatVal: v, FloatThousands: thousands, FloatScientific: scientific}
}

// NewDate, NewTime, NewDateTime build the calendar scalar kinds.
func NewDate(d Date) *Scalar         { return &Scalar{Kind: KindDate, DateVal: d} }
func NewTime(t Time) *Scalar         { return &Scalar{Kind: KindTime, TimeVal: t} }
func NewDateTime(dt DateTime) *Scalar { return &Scalar{Kind: KindDateTime, DateTimeVal: dt} }

// WithRaw attaches the original lexeme so the emitter reproduces it
// verbatim.
func (s *Scalar) WithRaw(raw string) *Scalar {
	s.Raw = raw
	s.HasRaw = true
	return s
}

// ClearRaw drops the raw lexeme, forcing the emitter to reformat from
// Value+style on the next emit. Used whenever a mutation replaces the
// value a link carries (spec.md §3 "Lifecycles").
func (s *Scalar) ClearRaw() {
	s.Raw = ""
	s.HasRaw = false
}

// Native projects the scalar into a plain Go value, stripping all style
// metadata (the to_native operation, spec.md §6, applied to a single
// leaf).
func (s *Scalar) Native() any {
	switch s.Kind {
	case KindBool:
		return s.BoolVal
	case KindString:
		return s.StringVal
	case KindInteger:
		return s.IntVal
	case KindFloat:
		return s.FloatVal
	case KindDate:
		return s.DateVal
	case KindTime:
		return s.TimeVal
	case KindDateTime:
		return s.DateTimeVal
	default:
		return nil
	}
}

// TypeTag identifies the scalar's type for the purposes of an array's
// element-type lock (spec.md §3 invariant 4): two scalars of different
// Kind may never coexist in the same typed array.
func (s *Scalar) TypeTag() ScalarKind { return s.Kind }

// IsFloatSpecial reports whether the float is +inf, -inf, or NaN, which
// render as bare tokens rather than digits.
func (s *Scalar) IsFloatSpecial() (token string, ok bool) {
	if s.Kind != KindFloat {
		return "", false
	}
	switch {
	case math.IsNaN(s.FloatVal):
		return "nan", true
	case math.IsInf(s.FloatVal, 1):
		return "inf", true
	case math.IsInf(s.FloatVal, -1):
		return "-inf", true
	default:
		return "", false
	}
}

// LiteralRepresentable reports whether this string can be written as a
// literal (single-quoted) string. TOML strings are always quoted (no
// plain style exists, unlike YAML), so this only distinguishes basic vs.
// literal applicability: literal strings cannot represent a single quote
// or a backslash-requiring control character. It is false for
// non-string scalars.
func (s *Scalar) LiteralRepresentable() bool {
	if s.Kind != KindString {
		return false
	}
	if strings.ContainsRune(s.StringVal, '\'') {
		return false
	}
	for _, r := range s.StringVal {
		if r < 0x20 && r != '\t' {
			return false
		}
	}
	return true
}
