package types

import "strconv"

// Array represents a fixed-size array type Elem[Len].
type Array struct {
	typ
	elem Type
	len  int64
}

// NewArray creates a new array type with the given element type and length.
// The length is not checked; producers must keep it non-negative.
func NewArray(elem Type, len int64) *Array {
	return &Array{elem: elem, len: len}
}

// Len returns the array length.
func (a *Array) Len() int64 {
	return a.len
}

// Elem returns the array element type.
func (a *Array) Elem() Type {
	return a.elem
}

// String implements Type.
//
// The size bracket is appended after the element's own rendering, so
// NewArray(NewArray(Typ[Int], 3), 4) prints as "int[3][4]".
func (a *Array) String() string {
	return TypeString(a.elem) + "[" + strconv.FormatInt(a.len, 10) + "]"
}
