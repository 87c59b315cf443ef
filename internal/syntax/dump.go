package syntax

import (
	"fmt"
	"io"
	"strings"

	"github.com/you-not-fish/minic/internal/types"
)

// Dump writes an indented, one-node-per-line representation of the tree
// rooted at node to w. It is meant for debugging, not for re-parsing.
func Dump(w io.Writer, node Node) error {
	d := &dumper{w: w}
	d.dump(node)
	return d.err
}

type dumper struct {
	w      io.Writer
	indent int
	err    error
}

func (d *dumper) printf(format string, args ...interface{}) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s%s", strings.Repeat("  ", d.indent), fmt.Sprintf(format, args...))
}

// field dumps a labelled child one level deeper.
func (d *dumper) field(label string, node Node) {
	d.printf("%s:\n", label)
	d.indent++
	d.dump(node)
	d.indent--
}

func (d *dumper) dump(node Node) {
	if isNil(node) {
		d.printf("<nil>\n")
		return
	}

	switch n := node.(type) {
	case *Program:
		d.printf("Program\n")
		d.indent++
		for _, g := range n.Globals {
			d.dump(g)
		}
		for _, f := range n.Funcs {
			d.dump(f)
		}
		d.indent--

	case *VarDecl:
		d.printf("VarDecl %s %s\n", n.Name, types.TypeString(n.Type))

	case *FuncDecl:
		d.printf("FuncDecl %s\n", n.Name)
		d.indent++
		d.printf("Result: %s\n", types.TypeString(n.Result))
		if len(n.Params) > 0 {
			d.printf("Params:\n")
			d.indent++
			for _, f := range n.Params {
				d.binding(f)
			}
			d.indent--
		}
		if len(n.Locals) > 0 {
			d.printf("Locals:\n")
			d.indent++
			for _, l := range n.Locals {
				d.binding(l)
			}
			d.indent--
		}
		if len(n.Body) > 0 {
			d.printf("Body:\n")
			d.indent++
			for _, s := range n.Body {
				d.dump(s)
			}
			d.indent--
		}
		d.indent--

	case *BlockStmt:
		d.printf("BlockStmt\n")
		d.indent++
		for _, s := range n.Stmts {
			d.dump(s)
		}
		d.indent--

	case *IfStmt:
		d.printf("IfStmt\n")
		d.indent++
		d.field("Cond", n.Cond)
		d.field("Then", n.Then)
		if !isNil(n.Else) {
			d.field("Else", n.Else)
		}
		d.indent--

	case *WhileStmt:
		d.printf("WhileStmt\n")
		d.indent++
		d.field("Cond", n.Cond)
		d.field("Body", n.Body)
		d.indent--

	case *ForStmt:
		d.printf("ForStmt %s\n", n.Var)
		d.indent++
		d.field("Init", n.Init)
		d.field("Bound", n.Bound)
		d.field("Step", n.Step)
		d.field("Body", n.Body)
		d.indent--

	case *ForEachStmt:
		d.printf("ForEachStmt %s in %s\n", n.Var, n.Array)
		d.indent++
		d.field("Body", n.Body)
		d.indent--

	case *RepeatStmt:
		d.printf("RepeatStmt\n")
		d.indent++
		d.field("Body", n.Body)
		d.field("Cond", n.Cond)
		d.indent--

	case *AssignStmt:
		d.printf("AssignStmt %s\n", n.Name)
		d.indent++
		d.dump(n.Value)
		d.indent--

	case *ArrayAssignStmt:
		d.printf("ArrayAssignStmt %s\n", n.Name)
		d.indent++
		d.field("Index", n.Index)
		d.field("Value", n.Value)
		d.indent--

	case *ExprStmt:
		d.printf("ExprStmt\n")
		d.indent++
		d.dump(n.X)
		d.indent--

	case *ReturnStmt:
		d.printf("ReturnStmt\n")
		d.indent++
		d.dump(n.Result)
		d.indent--

	case *IntLit:
		d.printf("IntLit %d\n", n.Value)

	case *BoolLit:
		d.printf("BoolLit %t\n", n.Value)

	case *CharLit:
		d.printf("CharLit %q\n", n.Value)

	case *FloatLit:
		d.printf("FloatLit %s\n", formatFloat(n.Value))

	case *StringLit:
		d.printf("StringLit %q\n", n.Value)

	case *Id:
		d.printf("Id %s\n", n.Name)

	case *IndexExpr:
		d.printf("IndexExpr %s\n", n.Name)
		d.indent++
		d.dump(n.Index)
		d.indent--

	case *UnaryExpr:
		d.printf("UnaryExpr %s\n", unaryOpName(n.Op))
		d.indent++
		d.dump(n.X)
		d.indent--

	case *BinaryExpr:
		d.printf("BinaryExpr %s\n", n.Op)
		d.indent++
		d.dump(n.X)
		d.dump(n.Y)
		d.indent--

	case *CastExpr:
		d.printf("CastExpr %s\n", types.TypeString(n.Type))
		d.indent++
		d.dump(n.X)
		d.indent--

	case *CallExpr:
		d.printf("CallExpr %s\n", n.Name)
		d.indent++
		for _, a := range n.Args {
			d.dump(a)
		}
		d.indent--

	case *LenExpr:
		d.printf("LenExpr %s\n", n.Name)

	default:
		d.printf("<%T>\n", node)
	}
}

// binding dumps a parameter or local as "name type".
func (d *dumper) binding(v *VarDecl) {
	if v == nil {
		d.printf("<nil>\n")
		return
	}
	d.printf("%s %s\n", v.Name, types.TypeString(v.Type))
}

// unaryOpName is like UnaryOp.String but spells out identity plus,
// whose source symbol is empty.
func unaryOpName(op UnaryOp) string {
	if op == Pos {
		return "pos"
	}
	return op.String()
}
