package millijson

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column+1) }

// Locate reads r up to the given 0-based byte offset and reports the line and
// column of that offset. An offset at the end of the input is allowed, and
// refers to the position just past the last byte.
func Locate(r io.Reader, offset int64) (LineCol, error) {
	br := bufio.NewReader(r)
	lc := LineCol{Line: 1}
	for pos := int64(0); pos < offset; pos++ {
		b, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return lc, fmt.Errorf("offset %d is beyond the end of input (%d bytes)", offset, pos)
		} else if err != nil {
			return lc, err
		}
		if b == '\n' {
			lc.Line++
			lc.Column = 0
		} else {
			lc.Column++
		}
	}
	return lc, nil
}
