// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package millijson

import (
	"fmt"

	"github.com/creachadair/mds/stack"
)

// A parser consumes a single JSON value from a Source, constructing values
// with a Provisioner. Errors are reported by panicking with an *Error, which
// recoverError converts back into an ordinary return.
type parser[V any] struct {
	src      Source
	prov     Provisioner[V]
	asString bool   // report numbers as NumberString
	buf      []byte // scratch space for strings and numbers
}

func (p *parser[V]) fail(kind Kind, offset int64, msg string, args ...any) {
	panic(newError(kind, offset, msg, args...))
}

// A frame records the state of an array or object whose contents are still
// being parsed.
type frame[V any] struct {
	value  V
	object bool
	key    string // the key of the pending member (objects only)
	keyAt  int64  // offset of the pending key
	start  int64  // offset of the opening bracket
}

func (f *frame[V]) label() string {
	if f.object {
		return "object"
	}
	return "array"
}

// parse consumes exactly one value surrounded by optional whitespace.
func (p *parser[V]) parse() V {
	if !p.skipSpace() {
		p.fail(EmptyInput, p.src.Offset(), "invalid JSON with no contents")
	}
	v := p.parseValue()
	if p.skipSpace() {
		p.fail(TrailingContent, p.src.Offset(), "invalid JSON with trailing non-space characters")
	}
	return v
}

// parseValue parses a value starting at the current byte, which must not be
// whitespace. Containers are tracked on an explicit stack rather than by
// recursion, so the depth of nesting is limited only by memory.
func (p *parser[V]) parseValue() V {
	stk := stack.New[*frame[V]]()
	for {
		out, f := p.next()
		if f != nil {
			stk.Push(f)
			continue
		}

		// A value is complete. Add it to its enclosing container, and keep
		// going outward as long as that closes the container too.
		for {
			top, ok := stk.Peek(0)
			if !ok {
				return out
			}
			if !p.attach(top, out) {
				break
			}
			stk.Pop()
			out = top.value
		}
	}
}

// next begins a value at the current byte. If the value is complete, next
// returns it with a nil frame. Otherwise it returns a new frame for a
// non-empty container, positioned at the start of the first element.
func (p *parser[V]) next() (V, *frame[V]) {
	var zero V
	start := p.src.Offset()
	switch c := p.src.Byte(); {
	case c == 't':
		p.literal("true")
		return p.prov.NewBoolean(true), nil
	case c == 'f':
		p.literal("false")
		return p.prov.NewBoolean(false), nil
	case c == 'n':
		p.literal("null")
		return p.prov.NewNothing(), nil
	case c == '"':
		return p.prov.NewString(p.lexString()), nil
	case c == '-':
		if !p.src.Advance() {
			p.fail(UnexpectedEnd, start, "incomplete number starting")
		} else if !isDigit(p.src.Byte()) {
			p.fail(UnexpectedByte, start, "invalid number with '-' not followed by a digit")
		}
		return p.lexNumber(start, true), nil
	case isDigit(c):
		return p.lexNumber(start, false), nil
	case c == '[':
		if !p.advanceSpace() {
			p.fail(UnexpectedEnd, start, "unterminated array starting")
		}
		if p.src.Byte() == ']' {
			p.src.Advance()
			return p.prov.NewArray(), nil
		}
		return zero, &frame[V]{value: p.prov.NewArray(), start: start}
	case c == '{':
		if !p.advanceSpace() {
			p.fail(UnexpectedEnd, start, "unterminated object starting")
		}
		if p.src.Byte() == '}' {
			p.src.Advance()
			return p.prov.NewObject(), nil
		}
		f := &frame[V]{value: p.prov.NewObject(), object: true, start: start}
		p.member(f)
		return zero, f
	default:
		p.fail(UnexpectedByte, start, "unknown type starting with '%c'", c)
		panic("unreachable")
	}
}

// member reads an object key and its separator, and records the key as
// pending in f. On return the input is positioned at the member value.
func (p *parser[V]) member(f *frame[V]) {
	keyAt := p.src.Offset()
	if p.src.Byte() != '"' {
		p.fail(UnexpectedByte, keyAt, "expected a string as the object key")
	}
	f.key, f.keyAt = p.lexString(), keyAt
	if !p.skipSpace() {
		p.fail(UnexpectedEnd, f.start, "unterminated object starting")
	} else if p.src.Byte() != ':' {
		p.fail(UnexpectedByte, p.src.Offset(), "expected ':' to separate keys and values")
	}
	if !p.advanceSpace() {
		p.fail(UnexpectedEnd, f.start, "unterminated object starting")
	}
}

// attach adds v to the container of f, then consumes the separator or
// closing bracket that follows it. It reports whether the container closed.
// A repeated key is reported only once its value is complete.
func (p *parser[V]) attach(f *frame[V], v V) bool {
	if f.object {
		if p.prov.Has(f.value, f.key) {
			p.fail(DuplicateKey, f.keyAt, "duplicate key %q in object", f.key)
		}
		p.prov.Insert(f.value, f.key, v)
	} else {
		p.prov.Append(f.value, v)
	}

	if !p.skipSpace() {
		p.fail(UnexpectedEnd, f.start, "unterminated %s starting", f.label())
	}
	switch c := p.src.Byte(); {
	case (c == ']' && !f.object) || (c == '}' && f.object):
		p.src.Advance()
		return true
	case c == ',':
		if !p.advanceSpace() {
			p.fail(UnexpectedEnd, f.start, "unterminated %s starting", f.label())
		}
		if f.object {
			p.member(f)
		}
		return false
	default:
		p.fail(UnexpectedByte, p.src.Offset(), "unknown character '%c' in %s", c, f.label())
		panic("unreachable")
	}
}

// recoverError is deferred by the entry points. It converts a panic from
// the parser into an error, and reports a read failure of the source in
// preference to any other outcome. If an error is reported, *vp is zeroed.
func (p *parser[V]) recoverError(vp *V, errp *error) {
	if x := recover(); x != nil {
		e, ok := x.(*Error)
		if !ok {
			panic(x)
		}
		*errp = e
	}
	if es, ok := p.src.(errSource); ok {
		if rerr := es.Err(); rerr != nil {
			off := p.src.Offset()
			*errp = &Error{
				Kind:    IOError,
				Offset:  off,
				Message: fmt.Sprintf("failed to read input at position %d: %v", off+1, rerr),
				err:     rerr,
			}
		}
	}
	if *errp != nil {
		var zero V
		*vp = zero
	}
}
