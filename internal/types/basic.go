package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	Invalid BasicKind = iota // invalid type

	Int
	Bool
	Char
	Float
	String
)

// Basic represents a basic type: int, bool, char, float or string.
type Basic struct {
	typ
	kind BasicKind
	name string
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Name returns the name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the predeclared basic types, indexed by BasicKind.
// Typ[Invalid] is nil, representing an invalid type.
var Typ = []*Basic{
	Invalid: nil,
	Int:     {kind: Int, name: "int"},
	Bool:    {kind: Bool, name: "bool"},
	Char:    {kind: Char, name: "char"},
	Float:   {kind: Float, name: "float"},
	String:  {kind: String, name: "string"},
}
