// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package millijson

// DefaultBufferSize is the read-ahead size used for reader and file sources
// when Options does not specify one.
const DefaultBufferSize = 65536

// Options control the behavior of the parse and validate functions.
// A nil *Options is ready for use and provides default values.
type Options struct {
	// If true, numbers are reported as the exact text of the input
	// (NumberString) instead of being converted to float64 (Number).
	// This avoids precision loss for values that do not fit a double.
	NumberAsString bool

	// The size in bytes of the read buffer for reader and file sources.
	// If zero or negative, DefaultBufferSize is used. It has no effect on
	// in-memory sources.
	BufferSize int
}

func (o *Options) numberAsString() bool { return o != nil && o.NumberAsString }

func (o *Options) bufferSize() int {
	if o == nil || o.BufferSize <= 0 {
		return DefaultBufferSize
	}
	return o.BufferSize
}
