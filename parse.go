// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package millijson

import (
	"fmt"
	"io"
	"os"
)

// ParseWith parses a single JSON value from src, constructing its contents
// with prov. The value may be surrounded by whitespace, but no other input
// may follow it. If an error occurs, the zero V is returned along with an
// error of concrete type *Error.
//
// If src reports read errors via an Err method, as a *ReaderSource does, a
// read error takes precedence over any other outcome of the parse.
func ParseWith[V any](src Source, prov Provisioner[V], opts *Options) (v V, err error) {
	p := &parser[V]{src: src, prov: prov, asString: opts.numberAsString()}
	defer p.recoverError(&v, &err)
	return p.parse(), nil
}

// Parse parses a single JSON value from src and returns it as a tree.
func Parse(src Source, opts *Options) (Value, error) { return ParseWith[Value](src, Tree{}, opts) }

// Validate checks that src contains a single valid JSON value, without
// constructing a tree, and reports the type of the value. If the input is
// not valid, Validate reports an error of the same form as Parse.
func Validate(src Source, opts *Options) (Type, error) {
	var c Checker
	m, err := ParseWith[Mark](src, c, opts)
	if err != nil {
		return Invalid, err
	}
	return c.Type(m), nil
}

// ParseBytes parses a JSON value from the contents of data.
func ParseBytes(data []byte, opts *Options) (Value, error) {
	return Parse(NewBytesSource(data), opts)
}

// ParseString parses a JSON value from the contents of s.
func ParseString(s string, opts *Options) (Value, error) {
	return Parse(NewStringSource(s), opts)
}

// ParseReader parses a JSON value from the contents of r, which is read
// through a buffer of opts.BufferSize bytes.
func ParseReader(r io.Reader, opts *Options) (Value, error) {
	return Parse(NewReaderSource(r, opts.bufferSize()), opts)
}

// ParseFile parses a JSON value from the contents of the named file.
func ParseFile(path string, opts *Options) (Value, error) {
	return withFile(path, opts, func(src Source) (Value, error) { return Parse(src, opts) })
}

// ValidateBytes validates the contents of data.
func ValidateBytes(data []byte, opts *Options) (Type, error) {
	return Validate(NewBytesSource(data), opts)
}

// ValidateString validates the contents of s.
func ValidateString(s string, opts *Options) (Type, error) {
	return Validate(NewStringSource(s), opts)
}

// ValidateReader validates the contents of r.
func ValidateReader(r io.Reader, opts *Options) (Type, error) {
	return Validate(NewReaderSource(r, opts.bufferSize()), opts)
}

// ValidateFile validates the contents of the named file.
func ValidateFile(path string, opts *Options) (Type, error) {
	return withFile(path, opts, func(src Source) (Type, error) { return Validate(src, opts) })
}

// withFile opens the named file and calls f with a source that reads it.
// The file is closed before withFile returns.
func withFile[T any](path string, opts *Options, f func(Source) (T, error)) (T, error) {
	fd, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, &Error{
			Kind:    IOError,
			Offset:  -1,
			Message: fmt.Sprintf("failed to open file at '%s': %v", path, err),
			err:     err,
		}
	}
	defer fd.Close()
	return f(NewReaderSource(fd, opts.bufferSize()))
}
