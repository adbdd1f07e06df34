// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package millijson implements a small streaming JSON parser and validator.
//
// # Parsing
//
// The parser consumes its input one byte at a time from a Source, and reads
// exactly one JSON value, optionally surrounded by whitespace. Use Parse (or
// one of its convenience forms) to construct a tree of values:
//
//	v, err := millijson.ParseString(`{"name": "x", "sizes": [1, 2, 3]}`, nil)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//	fmt.Println(millijson.AsObject(v)["name"].JSON())
//
// The concrete type of a Value is one of Number, NumberString, String, Bool,
// Null, *Array, or *Object. Objects do not preserve the order of their keys,
// and a repeated key in the same object is reported as an error.
//
// Numbers are converted to float64 by default. Set Options.NumberAsString
// to report the exact text of each number as a NumberString instead.
//
// # Validation
//
// Validate checks an input without constructing a tree, and reports the
// type of its top-level value:
//
//	t, err := millijson.ValidateFile("config.json", nil)
//	if err != nil {
//	   log.Fatalf("Invalid input: %v", err)
//	}
//	log.Printf("Input is a JSON %v", t)
//
// # Errors
//
// All errors reported by this package have concrete type *Error. The Kind
// field classifies the failure, and the message includes the 1-based byte
// position of the problem. Use KindOf to extract the kind from a wrapped
// error.
//
// # Sources
//
// A Source is a forward-only cursor over bytes. NewBytesSource and
// NewStringSource read from memory; NewReaderSource reads an io.Reader in
// fixed-size chunks, so that a large file need not be held in memory.
//
// # Provisioners
//
// Parse and Validate share a single engine, parameterized by a Provisioner
// that constructs the values it reports. Tree builds Value nodes, and
// Checker records only types. Use ParseWith to supply a custom Provisioner.
//
// The parser does not recurse, so the depth of nested arrays and objects is
// limited only by available memory.
package millijson
