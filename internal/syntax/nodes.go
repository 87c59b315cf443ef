// Package syntax defines the syntax tree of the minic language and
// renders trees back into source text.
package syntax

import (
	"reflect"

	"github.com/you-not-fish/minic/internal/types"
)

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 3 main classes of nodes: Expressions, Statements, and Declarations.
// All nodes implement the Node interface. Expression, Statement, and Declaration
// nodes further implement their respective interfaces.
//
// Trees are built once by a producer and never modified afterwards. A node
// is owned by its single parent; trees must be acyclic.

// Node is the interface implemented by all syntax tree nodes.
type Node interface {
	aNode() // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Decl is the interface for all declaration nodes.
type Decl interface {
	Node
	aDecl()
}

// ----------------------------------------------------------------------------
// Base node types

type node struct{}

func (*node) aNode() {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// decl is embedded in all declaration nodes.
type decl struct{ node }

func (*decl) aDecl() {}

// isNil reports whether n is nil or a nil pointer to a node type.
// Producers may leave a child as a typed nil; consumers treat it like nil.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// ----------------------------------------------------------------------------
// Declarations

// Program is a whole translation unit: global variables followed by
// function definitions.
type Program struct {
	node
	Globals []*VarDecl
	Funcs   []*FuncDecl
}

// VarDecl binds a name to a type. It is used for globals, locals and
// formal parameters alike.
type VarDecl struct {
	decl
	Type types.Type
	Name string
}

// FuncDecl represents a function definition.
// Result Name(Params) { Locals Body }
type FuncDecl struct {
	decl
	Result types.Type
	Name   string
	Params []*VarDecl
	Locals []*VarDecl
	Body   []Stmt
}

// ----------------------------------------------------------------------------
// Expressions

// IntLit is an integer literal.
type IntLit struct {
	expr
	Value int64
}

// BoolLit is a boolean literal.
type BoolLit struct {
	expr
	Value bool
}

// CharLit is a character literal.
type CharLit struct {
	expr
	Value rune
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	expr
	Value float64
}

// StringLit is a string literal. Value holds the decoded text.
type StringLit struct {
	expr
	Value string
}

// Id is a reference to a variable.
type Id struct {
	expr
	Name string
}

// IndexExpr reads an array element: Name[Index]
type IndexExpr struct {
	expr
	Name  string
	Index Expr
}

// UnaryExpr applies a prefix operator: Op X
type UnaryExpr struct {
	expr
	Op UnaryOp
	X  Expr
}

// BinaryExpr applies an infix operator: X Op Y
// The tree carries the grouping; there is no precedence.
type BinaryExpr struct {
	expr
	X  Expr
	Op BinaryOp
	Y  Expr
}

// CastExpr converts X to Type: Type(X)
type CastExpr struct {
	expr
	Type types.Type
	X    Expr
}

// CallExpr calls a named function: Name(Args...)
type CallExpr struct {
	expr
	Name string
	Args []Expr
}

// LenExpr queries the length of a named array: len (Name)
type LenExpr struct {
	expr
	Name string
}

// ----------------------------------------------------------------------------
// Statements

// BlockStmt is a sequence of statements executed in order.
type BlockStmt struct {
	stmt
	Stmts []Stmt
}

// IfStmt represents if (Cond) Then [else Else].
type IfStmt struct {
	stmt
	Cond Expr
	Then Stmt
	Else Stmt // nil (or a nil pointer) if there is no else branch
}

// WhileStmt represents while (Cond) Body.
type WhileStmt struct {
	stmt
	Cond Expr
	Body Stmt
}

// ForStmt is a counted loop: Var starts at Init and advances by Step
// while it does not exceed Bound.
type ForStmt struct {
	stmt
	Var   string
	Init  Expr
	Bound Expr
	Step  Expr
	Body  Stmt
}

// ForEachStmt iterates Var over the elements of the named array.
type ForEachStmt struct {
	stmt
	Var   string
	Array string
	Body  Stmt
}

// RepeatStmt runs Body until Cond holds, testing after each iteration.
type RepeatStmt struct {
	stmt
	Body Stmt
	Cond Expr
}

// AssignStmt represents Name = Value.
type AssignStmt struct {
	stmt
	Name  string
	Value Expr
}

// ArrayAssignStmt represents Name[Index] = Value.
type ArrayAssignStmt struct {
	stmt
	Name  string
	Index Expr
	Value Expr
}

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	stmt
	X Expr
}

// ReturnStmt represents return Result.
type ReturnStmt struct {
	stmt
	Result Expr
}
