// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package millijson

import "github.com/creachadair/mds/mapset"

// A Provisioner constructs the values reported by the parser. The type
// parameter V is the handle type for values; the parser does not inspect
// handles except through the methods of the Provisioner.
//
// The parser creates a container with NewArray or NewObject when its opening
// bracket is seen, and adds each child with Append or Insert once the child
// is complete. Before inserting an object member the parser calls Has, and
// reports an error if the key is already present.
type Provisioner[V any] interface {
	NewBoolean(b bool) V
	NewNumber(x float64) V
	NewNumberString(text string) V
	NewString(s string) V
	NewNothing() V
	NewArray() V
	NewObject() V

	// Type reports the type tag of v.
	Type(v V) Type

	// Append adds elem to the end of array.
	Append(array, elem V)

	// Has reports whether object already has a member with the given key.
	Has(object V, key string) bool

	// Insert adds a member to object with the given key and value.
	Insert(object V, key string, elem V)
}

// Tree is a Provisioner that builds a complete tree of Value nodes.
type Tree struct{}

var _ Provisioner[Value] = Tree{}

func (Tree) NewBoolean(b bool) Value { return Bool(b) }
func (Tree) NewNumber(x float64) Value { return Number(x) }
func (Tree) NewNumberString(text string) Value { return NumberString(text) }
func (Tree) NewString(s string) Value { return String(s) }
func (Tree) NewNothing() Value { return Null{} }
func (Tree) NewArray() Value { return new(Array) }
func (Tree) NewObject() Value { return &Object{Members: make(map[string]Value)} }
func (Tree) Type(v Value) Type { return v.Type() }

func (Tree) Append(array, elem Value) {
	a := array.(*Array)
	a.Values = append(a.Values, elem)
}

func (Tree) Has(object Value, key string) bool {
	_, ok := object.(*Object).Members[key]
	return ok
}

func (Tree) Insert(object Value, key string, elem Value) { object.(*Object).Members[key] = elem }

// A Mark is the handle type of a Checker. It records only the type of a
// value, and for objects, the set of keys seen so far.
type Mark struct {
	typ  Type
	keys mapset.Set[string]
}

// Type reports the type tag of m.
func (m Mark) Type() Type { return m.typ }

// Checker is a Provisioner that does not construct values. It records just
// enough to detect duplicate object keys, so that parsing with a Checker
// validates the input without building a tree.
type Checker struct{}

var _ Provisioner[Mark] = Checker{}

func (Checker) NewBoolean(bool) Mark { return Mark{typ: TypeBoolean} }
func (Checker) NewNumber(float64) Mark { return Mark{typ: TypeNumber} }
func (Checker) NewNumberString(string) Mark { return Mark{typ: TypeNumberString} }
func (Checker) NewString(string) Mark { return Mark{typ: TypeString} }
func (Checker) NewNothing() Mark { return Mark{typ: TypeNothing} }
func (Checker) NewArray() Mark { return Mark{typ: TypeArray} }
func (Checker) NewObject() Mark { return Mark{typ: TypeObject, keys: mapset.New[string]()} }
func (Checker) Type(m Mark) Type { return m.typ }
func (Checker) Append(Mark, Mark) {}
func (Checker) Has(obj Mark, key string) bool { return obj.keys.Has(key) }
func (Checker) Insert(obj Mark, key string, _ Mark) { obj.keys.Add(key) }
