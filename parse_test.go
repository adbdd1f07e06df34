// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package millijson_test

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/creachadair/millijson"
	"github.com/creachadair/millijson/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type (
	V = millijson.Value
	N = millijson.Number
	S = millijson.String
	B = millijson.Bool
)

var null = millijson.Null{}

func arr(vs ...V) *millijson.Array { return &millijson.Array{Values: vs} }

func obj(kvs ...any) *millijson.Object {
	o := &millijson.Object{Members: make(map[string]V)}
	for i := 0; i+1 < len(kvs); i += 2 {
		o.Members[kvs[i].(string)] = kvs[i+1].(V)
	}
	return o
}

// valueOpts compare trees, allowing for rounding in the last digits of
// numbers converted from decimal.
var valueOpts = cmp.Options{
	cmpopts.EquateEmpty(),
	cmp.Comparer(func(a, b N) bool {
		x, y := float64(a), float64(b)
		return x == y || math.Abs(x-y) <= 1e-12*math.Max(math.Abs(x), math.Abs(y))
	}),
}

func mustParse(t *testing.T, input string, opts *millijson.Options) V {
	t.Helper()
	v, err := millijson.ParseString(input, opts)
	if err != nil {
		t.Fatalf("Parse %q: unexpected error: %v", input, err)
	}
	return v
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		input string
		want  V
	}{
		// Literals
		{"null", null},
		{"true", B(true)},
		{" false\n", B(false)},

		// Strings
		{`"aaron was here"`, S("aaron was here")},
		{`""`, S("")},
		{`"do\"you\nbelieve\tin\rlife\fafter\blove\\ \/"`, S("do\"you\nbelieve\tin\rlife\fafter\blove\\ /")},
		{`"I \u2665 NATALIE PORTMAN"`, S("I ♥ NATALIE PORTMAN")},
		{`"I ♥ NATALIE PORTMAN"`, S("I ♥ NATALIE PORTMAN")},
		{`"\u0041aron"`, S("Aaron")},
		{`"sebasti\u00e8n"`, S("sebastièn")},
		{`"Fu\u00DFball"`, S("Fußball")},
		{`"\u0000"`, S("\x00")},

		// Integers
		{"1234567890", N(1234567890)},
		{" 123", N(123)},
		{"-789", N(-789)},
		{"[12345]", arr(N(12345))},
		{"[12345,null]", arr(N(12345), null)},
		{`{"a":12345}`, obj("a", N(12345))},

		// Fractions
		{"123456.7890", N(123456.789)},
		{"\t512.00", N(512)},
		{" 123.456 ", N(123.456)},
		{" 123.456\n", N(123.456)},
		{" 123.456\r", N(123.456)},
		{" 123.456\t", N(123.456)},
		{"[12.345]", arr(N(12.345))},
		{"[12.345,null]", arr(N(12.345), null)},
		{`{"a":12.345}`, obj("a", N(12.345))},
		{" -0.123456 ", N(-0.123456)},

		// Exponents
		{" 1e+2 ", N(100)},
		{" 1e-2 ", N(0.01)},
		{" 1e+002 ", N(100)},
		{"9876.5432e+1", N(98765.432)},
		{"\n9e+0", N(9)},
		{"2e3", N(2000)},
		{"2e002", N(200)},
		{" 1.918E+2 ", N(191.8)},
		{" 123e-1", N(12.3)},
		{"123e-1\r", N(12.3)},
		{"[12.3e2]", arr(N(1230))},
		{"[12.3e2,null]", arr(N(1230), null)},
		{`{"a":12.3e2}`, obj("a", N(1230))},

		// Zeroes
		{"0", N(0)},
		{" 0", N(0)},
		{"-0", N(0)},
		{"0.000", N(0)},
		{"0E2", N(0)},
		{"0e-2", N(0)},
		{"0\n", N(0)},
		{"[0]", arr(N(0))},
		{"[0,null]", arr(N(0), null)},
		{`{"a":0}`, obj("a", N(0))},

		// Arrays
		{"[100, 200.00, 3.00e+2]", arr(N(100), N(200), N(300))},
		{`[ true , false , null , "[true, false, null]" ]`,
			arr(B(true), B(false), null, S("[true, false, null]"))},
		{"[null,false,true]", arr(null, B(false), B(true))},
		{"[]", arr()},
		{"[   ]", arr()},
		{"[[], [[]]]", arr(arr(), arr(arr()))},

		// Objects
		{`{"foo": 1, "bar":2, "whee":3}`, obj("foo", N(1), "bar", N(2), "whee", N(3))},
		{`{ "foo" :true , "bar": false, "whee" : null }`, obj("foo", B(true), "bar", B(false), "whee", null)},
		{`{"aaron":"lun","jayaram":"kancherla"}`, obj("aaron", S("lun"), "jayaram", S("kancherla"))},
		{"{ }", obj()},
		{"{}", obj()},
		{`{"a":{"a":{}}, "b":[{}]}`, obj("a", obj("a", obj()), "b", arr(obj()))},
		{`[ { "foo": "bar" }, 1e-2, [ null, 98765 ], "advancer" ]`,
			arr(obj("foo", S("bar")), N(0.01), arr(null, N(98765)), S("advancer"))},
	}
	for _, test := range tests {
		got := mustParse(t, test.input, nil)
		if diff := cmp.Diff(test.want, got, valueOpts); diff != "" {
			t.Errorf("Parse %q: (-want, +got)\n%s", test.input, diff)
		}
	}

	for i := 1; i <= 9; i++ {
		input := fmt.Sprint(i)
		if got := millijson.AsNumber(mustParse(t, input, nil)); got != float64(i) {
			t.Errorf("Parse %q: got %v, want %d", input, got, i)
		}
	}
}

func TestNegativeZero(t *testing.T) {
	got := millijson.AsNumber(mustParse(t, "-0", nil))
	if got != 0 || !math.Signbit(got) {
		t.Errorf("Parse -0: got %v, want negative zero", got)
	}
}

func TestExtremeNumbers(t *testing.T) {
	tests := []struct {
		input string
		check func(float64) bool
	}{
		{"1e400", func(f float64) bool { return math.IsInf(f, 1) }},
		{"-1e400", func(f float64) bool { return math.IsInf(f, -1) }},
		{"1e-400", func(f float64) bool { return f == 0 }},
		{"0e400", math.IsNaN},
	}
	for _, test := range tests {
		got := millijson.AsNumber(mustParse(t, test.input, nil))
		if !test.check(got) {
			t.Errorf("Parse %q: got %v", test.input, got)
		}
	}

	// Negative zero keeps its sign, and NaN is encoded as null.
	for input, want := range map[string]string{"-0": "-0", "0e400": "null", "[-0.0, 0e400]": "[-0,null]"} {
		if got := mustParse(t, input, nil).JSON(); got != want {
			t.Errorf("JSON %q: got %s, want %s", input, got, want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	const (
		end   = millijson.UnexpectedEnd
		bad   = millijson.UnexpectedByte
		empty = millijson.EmptyInput
		trail = millijson.TrailingContent
	)
	tests := []struct {
		input string
		kind  millijson.Kind
		want  string // substring of the error message
	}{
		{"", empty, "no contents"},
		{" \t\r\n", empty, "no contents"},

		// Literals
		{"none", bad, "expected a 'null'"},
		{"nully", trail, "trailing"},
		{"nul", end, "expected a 'null'"},
		{"fals", end, "expected a 'false'"},
		{"falsy", bad, "expected a 'false'"},
		{"falsey", trail, "trailing"},
		{"tru", end, "expected a 'true'"},
		{"truthy", bad, "expected a 'true'"},
		{"true-ish", trail, "trailing"},
		{"True", bad, "unknown type starting with 'T'"},

		// Strings
		{` "asdasdaasd `, end, "unterminated string"},
		{` "asdasdaasd\`, end, "unterminated string"},
		{` "asdasdaasd\a`, millijson.InvalidEscape, "unrecognized escape"},
		{` "asdas\uasdasd`, millijson.InvalidUnicodeEscape, "invalid unicode"},
		{` "asdas\u00`, end, "unterminated string"},
		{" \"0sdasd\nasdasd\"", millijson.ControlCharacter, "string contains ASCII control character at position 9"},
		{" \"sdasd\tasdasd\"", millijson.ControlCharacter, "string contains ASCII control character at position 8"},
		{"\"a\x7f\"", millijson.ControlCharacter, "control character at position 3"},
		{"'single'", bad, "unknown type starting with '''"},

		// Numbers
		{" 1234L ", bad, "containing 'L'"},
		{" 0123456 ", bad, "starting with 0"},
		{" 00.12345 ", bad, "starting with 0"},
		{" 1.", end, "trailing '.'"},
		{" -", end, "incomplete number"},
		{" -a", bad, "invalid number"},
		{" 1.e2 ", bad, "must be followed"},
		{" .12345 ", bad, "starting with '.'"},
		{" 12.34f ", bad, "containing 'f'"},
		{" 1e", end, "trailing 'e/E'"},
		{" 1e ", bad, "'e/E' should be followed"},
		{" 1e+", end, "trailing exponent sign"},
		{" 1e+ ", bad, "must be followed by at least one digit"},
		{" 1e+1a", bad, "containing 'a'"},
		{"+1", bad, "unknown type starting with '+'"},

		// Arrays
		{" [", end, "unterminated array"},
		{" [ 1,", end, "unterminated array"},
		{" [ 1 ", end, "unterminated array"},
		{" [ 1, ", end, "unterminated array"},
		{" [ 1, ]", bad, "unknown type starting with ']'"},
		{" [ 1 1 ]", bad, "unknown character '1'"},
		{" [ , ]", bad, "unknown type starting with ','"},
		{"[1}", bad, "unknown character '}' in array"},

		// Objects
		{" {", end, "unterminated object"},
		{` { "foo"`, end, "unterminated object"},
		{` { "foo" :`, end, "unterminated object"},
		{` { "foo" : "bar"`, end, "unterminated object"},
		{` { "foo" : "bar", `, end, "unterminated object"},
		{" { true", bad, "expected a string"},
		{` { "foo" , "bar" }`, bad, "expected ':'"},
		{` { "foo": "bar", }`, bad, "expected a string"},
		{` { "foo": "bar": "stuff" }`, bad, "unknown character ':'"},
		{` { "foo": "bar", "foo": "stuff" }`, millijson.DuplicateKey, "duplicate"},
		{`{"a":1]`, bad, "unknown character ']' in object"},

		// Trailing content
		{"1 2", trail, "trailing non-space"},
		{"[] []", trail, "trailing non-space"},
		{`{"a":1}}`, trail, "trailing non-space"},
	}
	for _, test := range tests {
		v, err := millijson.ParseString(test.input, nil)
		if err == nil {
			t.Errorf("Parse %q: got %v, wanted error", test.input, v)
			continue
		}
		if v != nil {
			t.Errorf("Parse %q: got value %v with error", test.input, v)
		}
		if got := millijson.KindOf(err); got != test.kind {
			t.Errorf("Parse %q: got kind %v, want %v (%v)", test.input, got, test.kind, err)
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("Parse %q: got error %q, want %q", test.input, err, test.want)
		}

		// Validation must agree with parsing.
		if _, verr := millijson.ValidateString(test.input, nil); verr == nil {
			t.Errorf("Validate %q: got nil, want %v", test.input, err)
		} else if diff := cmp.Diff(err.Error(), verr.Error()); diff != "" {
			t.Errorf("Validate %q: error (-parse, +validate)\n%s", test.input, diff)
		}
	}
}

func TestErrorPositions(t *testing.T) {
	tests := []struct {
		input string
		want  string
		pos   int64
	}{
		{"   ", "invalid JSON with no contents at position 4", 4},
		{"1 2", "invalid JSON with trailing non-space characters at position 3", 3},
		{` "abc`, "unterminated string at position 2", 2},
		{`"ab\qc"`, `unrecognized escape '\q' at position 1`, 1},
		{` "asdas\uasdasd`, "invalid unicode escape detected at position 11", 11},
		{"[tru]", "expected a 'true' string at position 2", 2},
		{" 1234L ", "invalid number containing 'L' at position 2", 2},
		{"[1, -x]", "invalid number with '-' not followed by a digit at position 5", 5},
		{" [ 1 1 ]", "unknown character '1' in array at position 6", 6},
		{" [ 1, ]", "unknown type starting with ']' at position 7", 7},
		{"[1,[2,[3", "unterminated array starting at position 7", 7},
		{`{"a": {"b": 1`, "unterminated object starting at position 7", 7},
		{`{"a":1,"a":2}`, `duplicate key "a" in object at position 8`, 8},
		{`{"a":1, "b":{"c":[]}, "a" : [1, 2]}`, `duplicate key "a" in object at position 23`, 23},

		// A repeated key is not checked until its value is complete.
		{`{"a":1,"a"}`, "expected ':' to separate keys and values at position 11", 11},
		{`{"a":1,"a":tru}`, "expected a 'true' string at position 12", 12},
		{`{"a":1,"a":[1 2]}`, "unknown character '2' in array at position 15", 15},
		{`{"a":1,"a":`, "unterminated object starting at position 1", 1},
		{`{"a" 1}`, "expected ':' to separate keys and values at position 6", 6},
		{`{"a":1, 2}`, "expected a string as the object key at position 9", 9},
	}
	for _, test := range tests {
		_, err := millijson.ParseString(test.input, nil)
		var perr *millijson.Error
		if !errors.As(err, &perr) {
			t.Errorf("Parse %q: got %v, want *Error", test.input, err)
			continue
		}
		if got := perr.Error(); got != test.want {
			t.Errorf("Parse %q: got error %q, want %q", test.input, got, test.want)
		}
		if got := perr.Position(); got != test.pos {
			t.Errorf("Parse %q: got position %d, want %d", test.input, got, test.pos)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		input string
		want  millijson.Type
	}{
		{`[ { "foo": "bar" }, 1e-2, [ null, 98765 ], "advancer" ]`, millijson.TypeArray},
		{"false", millijson.TypeBoolean},
		{"1.323e48", millijson.TypeNumber},
		{`"ur mum"`, millijson.TypeString},
		{`{ "a": "b" }`, millijson.TypeObject},
		{"null", millijson.TypeNothing},
		{" [] ", millijson.TypeArray},
		{"{}", millijson.TypeObject},
		{`{"a": {"a": 1}, "b": {"a": 2}}`, millijson.TypeObject},
	}
	for _, test := range tests {
		got, err := millijson.ValidateString(test.input, nil)
		if err != nil {
			t.Errorf("Validate %q: unexpected error: %v", test.input, err)
		} else if got != test.want {
			t.Errorf("Validate %q: got %v, want %v", test.input, got, test.want)
		}
	}

	t.Run("Errors", func(t *testing.T) {
		if _, err := millijson.ValidateString("{", nil); err == nil || !strings.Contains(err.Error(), "unterminated object") {
			t.Errorf("Validate {: got %v, want unterminated object", err)
		}
		if _, err := millijson.ValidateBytes(nil, nil); err == nil || !strings.Contains(err.Error(), "no contents") {
			t.Errorf("Validate nil: got %v, want no contents", err)
		}
		got, err := millijson.ValidateString(`{"x": 1, "x": 2}`, nil)
		if millijson.KindOf(err) != millijson.DuplicateKey {
			t.Errorf("Validate duplicate: got %v, want %v", err, millijson.DuplicateKey)
		}
		if got != millijson.Invalid {
			t.Errorf("Validate duplicate: got type %v, want %v", got, millijson.Invalid)
		}
	})
}

func TestNumberAsString(t *testing.T) {
	opts := &millijson.Options{NumberAsString: true}
	type NS = millijson.NumberString
	tests := []struct {
		input string
		want  V
	}{
		{"0", NS("0")},
		{"-0", NS("-0")},
		{" 1234567890123456789012345 ", NS("1234567890123456789012345")},
		{"-0.123e+10", NS("-0.123e+10")},
		{"1E-002", NS("1E-002")},
		{"[1, 2.50, 3e3]", arr(NS("1"), NS("2.50"), NS("3e3"))},
		{`{"a": -12.5, "b": "12.5"}`, obj("a", NS("-12.5"), "b", S("12.5"))},
	}
	for _, test := range tests {
		got := mustParse(t, test.input, opts)
		if diff := cmp.Diff(test.want, got, valueOpts); diff != "" {
			t.Errorf("Parse %q: (-want, +got)\n%s", test.input, diff)
		}
	}

	t.Run("Float64", func(t *testing.T) {
		f, err := NS("-0.125e+1").Float64()
		if err != nil {
			t.Fatalf("Float64: unexpected error: %v", err)
		}
		if f != -1.25 {
			t.Errorf("Float64: got %v, want -1.25", f)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		got, err := millijson.ValidateString("1.5", opts)
		if err != nil {
			t.Fatalf("Validate: unexpected error: %v", err)
		}
		if got != millijson.TypeNumberString {
			t.Errorf("Validate: got %v, want %v", got, millijson.TypeNumberString)
		}
	})

	t.Run("Errors", func(t *testing.T) {
		for _, input := range []string{"01", "1.", "1e", "1e+", "-", "1x"} {
			if v, err := millijson.ParseString(input, opts); err == nil {
				t.Errorf("Parse %q: got %v, wanted error", input, v)
			}
		}
	})
}

func TestDeepNesting(t *testing.T) {
	const depth = 200000

	t.Run("Array", func(t *testing.T) {
		input := testutil.Nested(depth, "[", "1", "]")
		v := mustParse(t, input, nil)
		for i := 0; i < depth; i++ {
			elts := millijson.AsArray(v)
			if len(elts) != 1 {
				t.Fatalf("Depth %d: got %d elements, want 1", i, len(elts))
			}
			v = elts[0]
		}
		if got := millijson.AsNumber(v); got != 1 {
			t.Errorf("Innermost: got %v, want 1", got)
		}
	})

	t.Run("Object", func(t *testing.T) {
		input := testutil.Nested(depth, `{"a":`, "null", "}")
		got, err := millijson.ValidateString(input, nil)
		if err != nil {
			t.Fatalf("Validate: unexpected error: %v", err)
		}
		if got != millijson.TypeObject {
			t.Errorf("Validate: got %v, want %v", got, millijson.TypeObject)
		}
	})

	t.Run("Unbalanced", func(t *testing.T) {
		input := testutil.Nested(depth, "[", "", "]")
		_, err := millijson.ValidateString(input[:len(input)-1], nil)
		if millijson.KindOf(err) != millijson.UnexpectedEnd {
			t.Errorf("Validate: got %v, want %v", err, millijson.UnexpectedEnd)
		}
	})
}

var roundTripInputs = []string{
	`null`,
	`[true, false, null, "x\ty", -1.5e-3, 0]`,
	`{"name": "è\"\\", "list": [[], {}, [{"a": 1}]], "n": 123456789}`,
	`[ { "foo": "bar" }, 1e-2, [ null, 98765 ], "advancer" ]`,
	`{"\u0001\u001f": "\u007f", "": [""]}`,
	`["\u007f\u0000", {"\u001b": "\\\"\/"}]`,
}

func TestRoundTrip(t *testing.T) {
	for _, input := range roundTripInputs {
		v := mustParse(t, input, nil)
		w := mustParse(t, v.JSON(), nil)
		if diff := cmp.Diff(v, w, valueOpts); diff != "" {
			t.Errorf("Round trip %q: (-want, +got)\n%s", input, diff)
		}
	}
}

func TestWhitespace(t *testing.T) {
	for _, input := range roundTripInputs {
		want := mustParse(t, input, nil)
		pretty, compact := testutil.Reformat(t, input)
		for _, alt := range []string{pretty, compact, "\r\n\t " + compact + "\n\n"} {
			got := mustParse(t, alt, nil)
			if diff := cmp.Diff(want, got, valueOpts); diff != "" {
				t.Errorf("Parse %q: (-want, +got)\n%s", alt, diff)
			}
		}
	}
}

// typeCounter is a Provisioner that records only types, and counts how
// many values of each type it has constructed.
type typeCounter map[millijson.Type]int

func (c typeCounter) add(t millijson.Type) millijson.Type { c[t]++; return t }

func (c typeCounter) NewBoolean(bool) millijson.Type { return c.add(millijson.TypeBoolean) }
func (c typeCounter) NewNumber(float64) millijson.Type { return c.add(millijson.TypeNumber) }
func (c typeCounter) NewNumberString(string) millijson.Type {
	return c.add(millijson.TypeNumberString)
}
func (c typeCounter) NewString(string) millijson.Type { return c.add(millijson.TypeString) }
func (c typeCounter) NewNothing() millijson.Type { return c.add(millijson.TypeNothing) }
func (c typeCounter) NewArray() millijson.Type { return c.add(millijson.TypeArray) }
func (c typeCounter) NewObject() millijson.Type { return c.add(millijson.TypeObject) }
func (typeCounter) Type(t millijson.Type) millijson.Type { return t }
func (typeCounter) Append(_, _ millijson.Type) {}
func (typeCounter) Has(millijson.Type, string) bool { return false }
func (typeCounter) Insert(_ millijson.Type, _ string, _ millijson.Type) {}

func TestParseWith(t *testing.T) {
	c := make(typeCounter)
	src := millijson.NewStringSource(`{"a": [1, 2, "three", null], "b": {"c": true}, "d": []}`)
	got, err := millijson.ParseWith[millijson.Type](src, c, nil)
	if err != nil {
		t.Fatalf("ParseWith: unexpected error: %v", err)
	}
	if got != millijson.TypeObject {
		t.Errorf("ParseWith: got %v, want %v", got, millijson.TypeObject)
	}
	want := typeCounter{
		millijson.TypeObject:  2,
		millijson.TypeArray:   2,
		millijson.TypeNumber:  2,
		millijson.TypeString:  1,
		millijson.TypeNothing: 1,
		millijson.TypeBoolean: 1,
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Counts (-want, +got):\n%s", diff)
	}
}

func TestErrorKinds(t *testing.T) {
	_, err := millijson.ParseString("[1,", nil)
	wrapped := fmt.Errorf("loading config: %w", err)
	if got := millijson.KindOf(wrapped); got != millijson.UnexpectedEnd {
		t.Errorf("KindOf: got %v, want %v", got, millijson.UnexpectedEnd)
	}
	if got := millijson.KindOf(errors.New("other")); got != millijson.NoError {
		t.Errorf("KindOf: got %v, want %v", got, millijson.NoError)
	}
	if got := millijson.KindOf(nil); got != millijson.NoError {
		t.Errorf("KindOf(nil): got %v, want %v", got, millijson.NoError)
	}
	if got, want := millijson.DuplicateKey.String(), "duplicate key"; got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
}
