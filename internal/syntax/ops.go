package syntax

import "fmt"

// UnaryOp is a prefix operator.
type UnaryOp uint

const (
	Pos   UnaryOp = iota // identity plus, printed as nothing
	Neg                  // -
	Not                  // !
	Compl                // ~

	unaryOpCount
)

var unaryOpNames = [...]string{
	Pos:   "",
	Neg:   "-",
	Not:   "!",
	Compl: "~",
}

// String returns the source symbol of the operator.
// Pos has an empty symbol.
func (op UnaryOp) String() string {
	if op < unaryOpCount {
		return unaryOpNames[op]
	}
	return fmt.Sprintf("UnaryOp(%d)", op)
}

// BinaryOp is an infix operator.
type BinaryOp uint

const (
	// Arithmetic
	Add BinaryOp = iota // +
	Sub                 // -
	Mul                 // *
	Div                 // /
	Rem                 // %

	// Relational
	Eql // ==
	Neq // !=
	Lss // <
	Gtr // >
	Leq // <=
	Geq // >=

	// Logical
	AndAnd // &&
	OrOr   // ||

	binaryOpCount
)

var binaryOpNames = [...]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Rem: "%",

	Eql: "==",
	Neq: "!=",
	Lss: "<",
	Gtr: ">",
	Leq: "<=",
	Geq: ">=",

	AndAnd: "&&",
	OrOr:   "||",
}

// String returns the source symbol of the operator.
func (op BinaryOp) String() string {
	if op < binaryOpCount {
		return binaryOpNames[op]
	}
	return fmt.Sprintf("BinaryOp(%d)", op)
}
