// Package shape implements the array-shape detector: given an array's
// direct children, choose exactly one of the five encoding shapes.
// The decision only looks at direct children (§9: "shape detection vs
// recursion"), never at what's nested inside them, and shapes are
// checked in a fixed order so the choice is deterministic.
package shape

import "github.com/tooncodec/toon-go/internal/tvalue"

// Kind identifies which of the five array shapes applies.
type Kind int

const (
	// Empty: xs = [].
	Empty Kind = iota
	// InlinePrimitive: every element is a primitive.
	InlinePrimitive
	// NestedPrimitiveArrays: every element is an Array of only primitives.
	NestedPrimitiveArrays
	// Tabular: every element is an Object, sharing the same key set,
	// with only primitive values.
	Tabular
	// ExpandedList: the fallback shape.
	ExpandedList
)

// Decision is the outcome of shape detection: which Kind, and for
// Tabular, the column order (taken from the first element's keys).
type Decision struct {
	Kind   Kind
	Fields []string
}

// Detect chooses the shape for xs, checking 1–5 in order so the first
// matching shape wins.
func Detect(xs []tvalue.Value) Decision {
	if len(xs) == 0 {
		return Decision{Kind: Empty}
	}
	if allPrimitive(xs) {
		return Decision{Kind: InlinePrimitive}
	}
	if allPrimitiveArrays(xs) {
		return Decision{Kind: NestedPrimitiveArrays}
	}
	if fields, ok := detectTabular(xs); ok {
		return Decision{Kind: Tabular, Fields: fields}
	}
	return Decision{Kind: ExpandedList}
}

func allPrimitive(xs []tvalue.Value) bool {
	for _, v := range xs {
		if !tvalue.IsPrimitive(v) {
			return false
		}
	}
	return true
}

func allPrimitiveArrays(xs []tvalue.Value) bool {
	for _, v := range xs {
		arr, ok := tvalue.OrNull(v).(tvalue.Array)
		if !ok {
			return false
		}
		for _, item := range arr {
			if !tvalue.IsPrimitive(item) {
				return false
			}
		}
	}
	return true
}

func detectTabular(xs []tvalue.Value) ([]string, bool) {
	first, ok := tvalue.OrNull(xs[0]).(tvalue.Object)
	if !ok || first.IsEmpty() {
		return nil, false
	}
	fields := make([]string, len(first.Fields))
	fieldSet := make(map[string]struct{}, len(first.Fields))
	for i, f := range first.Fields {
		if !tvalue.IsPrimitive(f.Value) {
			return nil, false
		}
		fields[i] = f.Key
		fieldSet[f.Key] = struct{}{}
	}
	for _, v := range xs[1:] {
		obj, ok := tvalue.OrNull(v).(tvalue.Object)
		if !ok || len(obj.Fields) != len(fields) {
			return nil, false
		}
		seen := make(map[string]struct{}, len(fields))
		for _, f := range obj.Fields {
			if _, want := fieldSet[f.Key]; !want || !tvalue.IsPrimitive(f.Value) {
				return nil, false
			}
			seen[f.Key] = struct{}{}
		}
		if len(seen) != len(fields) {
			return nil, false
		}
	}
	return fields, true
}

// IsPrimitiveArray reports whether every element of xs is a primitive,
// vacuously true for an empty slice. Used by the encoder to decide
// whether a nested array can be written directly on a list item's
// hyphen line (shape Empty and InlinePrimitive both qualify).
func IsPrimitiveArray(xs []tvalue.Value) bool {
	return allPrimitive(xs)
}
