// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import "go4.org/mem"

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// AppendQuote appends the JSON string encoding of src to dst, including the
// enclosing double quotation marks, and returns the extended slice.
//
// Control bytes (including DEL) are escaped. Bytes at or above 0x80 are
// copied verbatim, whether or not they form valid UTF-8, so that any string
// produced by the parser survives a round trip.
func AppendQuote(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')
	for i := 0; i < src.Len(); i++ {
		b := src.At(i)
		switch {
		case b < ' ':
			if c := controlEsc[b]; c != 0 {
				dst = append(dst, '\\', c)
			} else {
				dst = append(dst, '\\', 'u', '0', '0', hexDigit[b>>4], hexDigit[b&15])
			}
		case b == 0x7f:
			dst = append(dst, `\u007f`...)
		case b == '\\' || b == '"':
			dst = append(dst, '\\', b)
		default:
			dst = append(dst, b)
		}
	}
	return append(dst, '"')
}
