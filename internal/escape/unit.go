// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles the escape sequences of JSON strings.
package escape

// Simple returns the byte denoted by the single-character escape \c, and
// reports whether c names such an escape. The \u escape is not simple.
func Simple(c byte) (byte, bool) {
	switch c {
	case '"', '\\', '/':
		return c, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// HexValue returns the value of the hexadecimal digit c, and reports whether
// c is a hexadecimal digit. Both letter cases are accepted.
func HexValue(c byte) (uint16, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint16(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint16(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return uint16(c-'A') + 10, true
	}
	return 0, false
}

// AppendUnit appends the UTF-8 encoding of the 16-bit code unit u to dst,
// using the shortest of the 1, 2 or 3 byte forms that holds its value.
//
// Surrogate halves are not combined: each is encoded on its own as a 3-byte
// sequence, which is not well-formed UTF-8.
func AppendUnit(dst []byte, u uint16) []byte {
	switch {
	case u <= 0x7f:
		return append(dst, byte(u))
	case u <= 0x7ff:
		return append(dst, byte(u>>6)|0xc0, byte(u&0x3f)|0x80)
	default:
		return append(dst, byte(u>>12)|0xe0, byte(u>>6)&0x3f|0x80, byte(u&0x3f)|0x80)
	}
}
