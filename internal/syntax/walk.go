package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses a syntax tree in depth-first order, visiting children
// in source order. If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if isNil(node) || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, g := range n.Globals {
			Walk(g, v)
		}
		for _, f := range n.Funcs {
			Walk(f, v)
		}

	case *FuncDecl:
		for _, p := range n.Params {
			Walk(p, v)
		}
		for _, l := range n.Locals {
			Walk(l, v)
		}
		for _, s := range n.Body {
			Walk(s, v)
		}

	case *BlockStmt:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *IfStmt:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		Walk(n.Else, v)

	case *WhileStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *ForStmt:
		Walk(n.Init, v)
		Walk(n.Bound, v)
		Walk(n.Step, v)
		Walk(n.Body, v)

	case *ForEachStmt:
		Walk(n.Body, v)

	case *RepeatStmt:
		Walk(n.Body, v)
		Walk(n.Cond, v)

	case *AssignStmt:
		Walk(n.Value, v)

	case *ArrayAssignStmt:
		Walk(n.Index, v)
		Walk(n.Value, v)

	case *ExprStmt:
		Walk(n.X, v)

	case *ReturnStmt:
		Walk(n.Result, v)

	case *IndexExpr:
		Walk(n.Index, v)

	case *UnaryExpr:
		Walk(n.X, v)

	case *BinaryExpr:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *CastExpr:
		Walk(n.X, v)

	case *CallExpr:
		for _, a := range n.Args {
			Walk(a, v)
		}

	// Leaf nodes: VarDecl, literals, Id, LenExpr
	// No children to visit
	}
}

// Inspect traverses a syntax tree and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
