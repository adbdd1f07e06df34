// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package millijson

import (
	"errors"
	"fmt"
)

// Kind classifies the failures reported by the parser.
type Kind byte

// Constants defining the valid Kind values.
const (
	NoError              Kind = iota // not an error from this package
	EmptyInput                       // no bytes, or only whitespace
	UnexpectedEnd                    // input ended inside a value
	UnexpectedByte                   // a byte not valid at this point in the grammar
	InvalidEscape                    // unknown \-escape in a string
	InvalidUnicodeEscape             // non-hex digit in a \u escape
	ControlCharacter                 // unescaped control byte in a string
	DuplicateKey                     // repeated key in one object
	TrailingContent                  // non-space bytes after the value
	IOError                          // open or read failure of the input
)

var kindStr = [...]string{
	NoError:              "no error",
	EmptyInput:           "empty input",
	UnexpectedEnd:        "unexpected end of input",
	UnexpectedByte:       "unexpected byte",
	InvalidEscape:        "invalid escape",
	InvalidUnicodeEscape: "invalid unicode escape",
	ControlCharacter:     "control character in string",
	DuplicateKey:         "duplicate key",
	TrailingContent:      "trailing content",
	IOError:              "I/O error",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return fmt.Sprintf("Kind(%d)", v)
	}
	return kindStr[v]
}

// Error is the concrete type of errors reported by the parse and validate
// functions of this package.
type Error struct {
	Kind    Kind
	Offset  int64  // the 0-based offset the error refers to, or -1
	Message string // human-readable, includes the 1-based position if known

	err error
}

// Error satisfies the error interface.
func (e *Error) Error() string { return e.Message }

// Unwrap supports error wrapping. It reports the underlying I/O error, if
// any.
func (e *Error) Unwrap() error { return e.err }

// Position reports the 1-based offset of e, or 0 if no offset is known.
func (e *Error) Position() int64 { return e.Offset + 1 }

// KindOf reports the Kind of err, if err is or wraps an *Error.
// Otherwise it returns NoError.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return NoError
}

// newError constructs an *Error whose message ends with the 1-based
// position of offset.
func newError(kind Kind, offset int64, msg string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Offset:  offset,
		Message: fmt.Sprintf(msg, args...) + fmt.Sprintf(" at position %d", offset+1),
	}
}
