// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package millijson

import (
	"io"

	"go4.org/mem"
)

// A Source is a forward-only cursor over the bytes of an input.
//
// The parser reads the current byte with Byte, which is only valid while
// More reports true, and moves forward with Advance. Offset is used only for
// diagnostics.
type Source interface {
	Byte() byte    // Returns the current byte
	More() bool    // Reports whether a current byte is available
	Advance() bool // Moves forward one byte and reports whether More is true
	Offset() int64 // Returns the 0-based offset of the current byte
}

// errSource is implemented by sources that can fail while reading.
type errSource interface {
	Err() error
}

// memSource is a Source over an in-memory byte slice or string.
type memSource struct {
	data mem.RO
	pos  int
}

// NewBytesSource returns a Source that reads the contents of data.
// The caller must not modify data while the source is in use.
func NewBytesSource(data []byte) Source { return &memSource{data: mem.B(data)} }

// NewStringSource returns a Source that reads the contents of s.
func NewStringSource(s string) Source { return &memSource{data: mem.S(s)} }

func (m *memSource) Byte() byte    { return m.data.At(m.pos) }
func (m *memSource) More() bool    { return m.pos < m.data.Len() }
func (m *memSource) Offset() int64 { return int64(m.pos) }

func (m *memSource) Advance() bool {
	m.pos++
	return m.pos < m.data.Len()
}

// maxEmptyReads is the number of consecutive empty reads a ReaderSource
// tolerates before giving up with io.ErrNoProgress.
const maxEmptyReads = 100

// A ReaderSource is a Source that reads from an io.Reader through a fixed
// size buffer, refilling the buffer as it is consumed.
//
// A read error other than io.EOF ends the input as if it were exhausted;
// the error is reported by Err.
type ReaderSource struct {
	r    io.Reader
	buf  []byte
	n, i int   // bytes in buf, index of the current byte
	base int64 // offset of buf[0] in the input
	done bool  // no further reads will be made
	err  error
}

// NewReaderSource constructs a ReaderSource that consumes r with a buffer of
// the given size. If size <= 0, DefaultBufferSize is used. The first buffer
// is filled before NewReaderSource returns.
func NewReaderSource(r io.Reader, size int) *ReaderSource {
	if size <= 0 {
		size = DefaultBufferSize
	}
	s := &ReaderSource{r: r, buf: make([]byte, size)}
	s.fill()
	return s
}

// Byte returns the current byte. It is only valid when More reports true.
func (s *ReaderSource) Byte() byte { return s.buf[s.i] }

// More reports whether a current byte is available.
func (s *ReaderSource) More() bool { return s.i < s.n }

// Offset returns the 0-based offset of the current byte from the start of the
// input.
func (s *ReaderSource) Offset() int64 { return s.base + int64(s.i) }

// Advance moves to the next byte, refilling the buffer if needed, and reports
// whether a byte is available.
func (s *ReaderSource) Advance() bool {
	s.i++
	if s.i < s.n {
		return true
	}
	s.fill()
	return s.i < s.n
}

// Err reports the first read error other than io.EOF, or nil.
func (s *ReaderSource) Err() error { return s.err }

func (s *ReaderSource) fill() {
	s.base += int64(s.n)
	s.i, s.n = 0, 0
	for empty := 0; s.n == 0 && !s.done; empty++ {
		if empty == maxEmptyReads {
			s.done, s.err = true, io.ErrNoProgress
			break
		}
		nr, err := s.r.Read(s.buf)
		s.n = nr
		if err == io.EOF {
			s.done = true
		} else if err != nil {
			s.done, s.err = true, err
		}
	}
}
