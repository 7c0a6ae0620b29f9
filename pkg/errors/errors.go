// Package errors defines the positioned error taxonomy shared by the
// cursor, parsers, and container mutation operations.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Position locates a byte within the original source text.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Kind enumerates the parse/mutation error taxonomy.
type Kind int

const (
	// UnexpectedChar means a character did not fit the current production.
	UnexpectedChar Kind = iota
	// UnexpectedEof means input ended mid-production.
	UnexpectedEof
	// InvalidCharInString means a raw newline in a single-line string, a
	// bad escape, or a disallowed control character.
	InvalidCharInString
	// MixedArrayTypes means a scalar of another type was inserted into a
	// typed array.
	MixedArrayTypes
	// LeadingZero means a multi-digit integer or float integer-part began
	// with '0'.
	LeadingZero
	// DuplicateKey means a key was set more than once in a table.
	DuplicateKey
	// EmptyKey means an empty dotted key path was given for an item key.
	EmptyKey
	// EmptyTableName means an empty dotted key path was given for a table
	// header.
	EmptyTableName
)

func (k Kind) String() string {
	switch k {
	case UnexpectedChar:
		return "UnexpectedChar"
	case UnexpectedEof:
		return "UnexpectedEof"
	case InvalidCharInString:
		return "InvalidCharInString"
	case MixedArrayTypes:
		return "MixedArrayTypes"
	case LeadingZero:
		return "LeadingZero"
	case DuplicateKey:
		return "DuplicateKey"
	case EmptyKey:
		return "EmptyKey"
	case EmptyTableName:
		return "EmptyTableName"
	default:
		return "Unknown"
	}
}

// ParseError carries the position and kind of a single parse or mutation
// failure. Mutation-side errors (duplicate key, mixed type, bad scalar
// value) reuse the same taxonomy without position info (Position is the
// zero value in that case).
type ParseError struct {
	Pos     Position
	Kind    Kind
	Message string
}

func (e *ParseError) Error() string {
	if e.Pos.Line == 0 && e.Pos.Column == 0 {
		return fmt.Sprintf("toml: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("toml: line %d, column %d: %s: %s", e.Pos.Line, e.Pos.Column, e.Kind, e.Message)
}

// New builds a positioned error of the given kind.
func New(kind Kind, pos Position, msg string) *ParseError {
	return &ParseError{Pos: pos, Kind: kind, Message: msg}
}

// NewNoPos builds a mutation-side error without position info.
func NewNoPos(kind Kind, msg string) *ParseError {
	return &ParseError{Kind: kind, Message: msg}
}

// Is reports whether err is a *ParseError of the given kind.
func Is(err error, kind Kind) bool {
	var pe *ParseError
	if stderrors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}
