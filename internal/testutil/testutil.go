// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/millijson"
	"github.com/tailscale/hujson"
)

// Nested returns a document of depth nested containers, each opened with
// open and closed with close, surrounding the given core value.
func Nested(depth int, open, core, close string) string {
	var sb strings.Builder
	sb.Grow(depth*(len(open)+len(close)) + len(core))
	for range depth {
		sb.WriteString(open)
	}
	sb.WriteString(core)
	for range depth {
		sb.WriteString(close)
	}
	return sb.String()
}

// Reformat returns two variants of the JSON document in input that differ
// from it only in whitespace: one indented for reading, and one with all
// optional whitespace removed. It fails the test if input is not valid.
//
// Formatting decodes escaped strings, so each string is quoted again to
// keep characters such as DEL escaped.
func Reformat(t *testing.T, input string) (pretty, compact string) {
	t.Helper()
	v, err := hujson.Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse %q: %v", input, err)
	}
	v.Format()
	for elt := range v.All() {
		if lit, ok := elt.Value.(hujson.Literal); ok && lit.Kind() == '"' {
			elt.Value = hujson.Literal(millijson.Quote(lit.String()))
		}
	}
	v.UpdateOffsets()
	pretty = string(v.Pack())
	v.Minimize()
	compact = string(v.Pack())
	return pretty, compact
}

// FailingReader returns a reader that delivers the contents of s and then
// reports err. If chunked is true, the contents are delivered one byte per
// call to Read.
func FailingReader(s string, err error, chunked bool) io.Reader {
	var r io.Reader = strings.NewReader(s)
	if chunked {
		r = iotest.OneByteReader(r)
	}
	return io.MultiReader(r, iotest.ErrReader(err))
}
