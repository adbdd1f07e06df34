// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package millijson

import "fmt"

// Path traverses a sequence of nested values starting from v, and returns
// the value found at the end of the path. Each element of path must be one
// of the following:
//
//   - A string, which selects the member of an *Object with that key.
//   - An int, which selects the element of an *Array at that index. A
//     negative index counts backward from the end, so -1 is the last element.
//   - A func(Value) (Value, error), which is called with the current value
//     and whose result replaces it.
//
// If the path cannot be followed, Path returns v and an error describing
// the element that failed.
func Path(v Value, path ...any) (Value, error) {
	cur := v
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			obj, ok := cur.(*Object)
			if !ok {
				return v, fmt.Errorf("cannot traverse %v with %q", typeOf(cur), t)
			}
			next := obj.Find(t)
			if next == nil {
				return v, fmt.Errorf("key %q not found", t)
			}
			cur = next
		case int:
			arr, ok := cur.(*Array)
			if !ok {
				return v, fmt.Errorf("cannot traverse %v with %d", typeOf(cur), t)
			}
			i, ok := fixArrayBound(arr.Len(), t)
			if !ok {
				return v, fmt.Errorf("array index %d out of bounds (n=%d)", t, arr.Len())
			}
			cur = arr.Values[i]
		case func(Value) (Value, error):
			next, err := t(cur)
			if err != nil {
				return v, err
			}
			cur = next
		default:
			return v, fmt.Errorf("invalid path element %T", elt)
		}
	}
	return cur, nil
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

func typeOf(v Value) Type {
	if v == nil {
		return Invalid
	}
	return v.Type()
}
