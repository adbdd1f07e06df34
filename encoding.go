// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package millijson

import (
	"fmt"

	"github.com/creachadair/millijson/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.AppendQuote(nil, mem.S(src))) }

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
// Surrounding whitespace is permitted. Unquote reports an error if src is
// not exactly one well-formed JSON string.
func Unquote(src string) (string, error) {
	v, err := ParseString(src, nil)
	if err != nil {
		return "", err
	}
	s, ok := v.(String)
	if !ok {
		return "", fmt.Errorf("input is %v, not string", v.Type())
	}
	return string(s), nil
}
