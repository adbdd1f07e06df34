// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package millijson

import (
	"math"

	"github.com/creachadair/millijson/internal/escape"
)

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }
func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// isTerminator reports whether c may follow the last byte of a number.
func isTerminator(c byte) bool { return c == ',' || c == ']' || c == '}' || isSpace(c) }

// skipSpace advances past whitespace and reports whether any input remains.
func (p *parser[V]) skipSpace() bool {
	for p.src.More() {
		if !isSpace(p.src.Byte()) {
			return true
		}
		p.src.Advance()
	}
	return false
}

// advanceSpace advances past the current byte and any whitespace following
// it, and reports whether any input remains.
func (p *parser[V]) advanceSpace() bool {
	p.src.Advance()
	return p.skipSpace()
}

// literal consumes the keyword word, starting at the current byte.
func (p *parser[V]) literal(word string) {
	start := p.src.Offset()
	for i := 0; i < len(word); i++ {
		if !p.src.More() {
			p.fail(UnexpectedEnd, start, "expected a '%s' string", word)
		} else if p.src.Byte() != word[i] {
			p.fail(UnexpectedByte, start, "expected a '%s' string", word)
		}
		p.src.Advance()
	}
}

// lexString consumes a quoted string starting at the current byte, which
// must be '"', and returns its decoded contents.
func (p *parser[V]) lexString() string {
	start := p.src.Offset()
	p.buf = p.buf[:0]
	for {
		if !p.src.Advance() {
			p.fail(UnexpectedEnd, start, "unterminated string")
		}
		switch c := p.src.Byte(); {
		case c == '"':
			p.src.Advance()
			return string(p.buf)
		case c == '\\':
			p.lexEscape(start)
		case c < ' ' || c == 0x7f:
			p.fail(ControlCharacter, p.src.Offset(), "string contains ASCII control character")
		default:
			p.buf = append(p.buf, c)
		}
	}
}

// lexEscape decodes the escape sequence whose backslash is the current byte,
// leaving the input at the last byte of the sequence.
func (p *parser[V]) lexEscape(start int64) {
	if !p.src.Advance() {
		p.fail(UnexpectedEnd, start, "unterminated string")
	}
	c := p.src.Byte()
	if b, ok := escape.Simple(c); ok {
		p.buf = append(p.buf, b)
		return
	} else if c != 'u' {
		p.fail(InvalidEscape, start, "unrecognized escape '\\%c'", c)
	}

	var u uint16
	for range 4 {
		if !p.src.Advance() {
			p.fail(UnexpectedEnd, start, "unterminated string")
		}
		d, ok := escape.HexValue(p.src.Byte())
		if !ok {
			p.fail(InvalidUnicodeEscape, p.src.Offset(), "invalid unicode escape detected")
		}
		u = u<<4 | d
	}
	p.buf = escape.AppendUnit(p.buf, u)
}

// number accumulates the value of a numeric literal. When text is set, the
// input bytes are recorded verbatim and no arithmetic is done.
type number struct {
	text   bool
	buf    []byte
	value  float64
	scale  float64 // divisor of the next fractional digit
	exp    float64
	negExp bool
}

func (n *number) keep(c byte) {
	if n.text {
		n.buf = append(n.buf, c)
	}
}

func (n *number) intDigit(c byte) {
	n.keep(c)
	if !n.text {
		n.value = n.value*10 + float64(c-'0')
	}
}

func (n *number) fracDigit(c byte) {
	n.keep(c)
	if !n.text {
		n.scale *= 10
		n.value += float64(c-'0') / n.scale
	}
}

func (n *number) expDigit(c byte) {
	n.keep(c)
	if !n.text {
		n.exp = n.exp*10 + float64(c-'0')
	}
}

func (n *number) result() float64 {
	if n.exp == 0 {
		return n.value
	}
	e := n.exp
	if n.negExp {
		e = -e
	}
	return n.value * math.Pow(10, e)
}

// lexNumber consumes the digits of a number starting at the current byte,
// which must be a digit. If neg is true, a minus sign has already been
// consumed at offset start.
func (p *parser[V]) lexNumber(start int64, neg bool) V {
	n := &number{text: p.asString, buf: p.buf[:0]}
	if neg {
		n.keep('-')
	}

	// Integer part. A leading zero must stand alone.
	lead := p.src.Byte()
	n.intDigit(lead)
	var c byte
	var more bool
	if lead == '0' {
		if more = p.src.Advance(); more {
			c = p.src.Byte()
			if c != '.' && c != 'e' && c != 'E' && !isTerminator(c) {
				p.fail(UnexpectedByte, start, "invalid number starting with 0")
			}
		}
	} else {
		c, more = p.digits(n.intDigit)
	}

	// Fractional part: at least one digit must follow the point.
	if more && c == '.' {
		n.keep(c)
		if !p.src.Advance() {
			p.fail(UnexpectedEnd, start, "invalid number with trailing '.'")
		} else if c = p.src.Byte(); !isDigit(c) {
			p.fail(UnexpectedByte, start, "'.' must be followed by at least one digit")
		}
		n.scale = 1
		n.fracDigit(c)
		c, more = p.digits(n.fracDigit)
	}

	// Exponent: an optional sign and at least one digit.
	if more && (c == 'e' || c == 'E') {
		n.keep(c)
		if !p.src.Advance() {
			p.fail(UnexpectedEnd, start, "invalid number with trailing 'e/E'")
		}
		c = p.src.Byte()
		if c == '-' || c == '+' {
			n.negExp = c == '-'
			n.keep(c)
			if !p.src.Advance() {
				p.fail(UnexpectedEnd, start, "invalid number with trailing exponent sign")
			} else if c = p.src.Byte(); !isDigit(c) {
				p.fail(UnexpectedByte, start, "exponent sign must be followed by at least one digit in number")
			}
		} else if !isDigit(c) {
			p.fail(UnexpectedByte, start, "'e/E' should be followed by a sign or digit in number")
		}
		n.expDigit(c)
		c, more = p.digits(n.expDigit)
	}

	if more && !isTerminator(c) {
		p.fail(UnexpectedByte, start, "invalid number containing '%c'", c)
	}
	p.buf = n.buf // retain the buffer for reuse

	if n.text {
		return p.prov.NewNumberString(string(n.buf))
	}
	v := n.result()
	if neg {
		v = -v
	}
	return p.prov.NewNumber(v)
}

// digits advances past the current byte and any decimal digits following it,
// passing each digit to add. It returns the first non-digit byte and true, or
// false if the input ends first.
func (p *parser[V]) digits(add func(byte)) (byte, bool) {
	for p.src.Advance() {
		c := p.src.Byte()
		if !isDigit(c) {
			return c, true
		}
		add(c)
	}
	return 0, false
}
