// Package types implements the value types of the minic language.
// This package provides type representations without AST dependencies.
package types

// Type is the interface implemented by all types.
//
// The set of types is closed: *Basic and *Array are the only
// implementations.
type Type interface {
	// String returns the source form of the type, e.g. "int[3]".
	String() string

	// aType is a marker method to restrict implementations to this package.
	aType()
}

// typ is a base struct for all type implementations.
type typ struct{}

func (typ) aType() {}

// TypeString returns the source form of t.
// A nil type, or a nil *Basic or *Array, renders as "<nil>".
func TypeString(t Type) string {
	if IsNil(t) {
		return "<nil>"
	}
	return t.String()
}

// IsNil reports whether t is nil or a nil pointer to a type.
func IsNil(t Type) bool {
	switch t := t.(type) {
	case nil:
		return true
	case *Basic:
		return t == nil
	case *Array:
		return t == nil
	}
	return false
}
