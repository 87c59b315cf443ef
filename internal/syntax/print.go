package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/you-not-fish/minic/internal/types"
)

// Fprint writes the source form of node to w.
// It returns the first error reported by w.
func Fprint(w io.Writer, node Node) error {
	p := &printer{w: w}
	p.print(node)
	return p.err
}

// String returns the source form of node.
func String(node Node) string {
	var b strings.Builder
	p := &printer{w: &b}
	p.print(node)
	return b.String()
}

// printer accumulates output in w. After the first write error all
// further output is dropped.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) str(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) print(node Node) {
	if isNil(node) {
		p.str("<nil>")
		return
	}

	switch n := node.(type) {
	// Declarations

	case *Program:
		for _, g := range n.Globals {
			p.print(g)
		}
		p.str("\n")
		for i, f := range n.Funcs {
			if i > 0 {
				p.str("\n")
			}
			p.print(f)
		}

	case *VarDecl:
		p.str(types.TypeString(n.Type))
		p.str(" ")
		p.str(n.Name)
		p.str(";\n")

	case *FuncDecl:
		p.str(types.TypeString(n.Result))
		p.str(" ")
		p.str(n.Name)
		p.str("(")
		for i, param := range n.Params {
			if i > 0 {
				p.str(", ")
			}
			if param == nil {
				p.str("<nil>")
				continue
			}
			p.str(types.TypeString(param.Type))
			p.str(" ")
			p.str(param.Name)
		}
		p.str(") {\n")
		for _, l := range n.Locals {
			p.print(l)
		}
		for _, s := range n.Body {
			p.print(s)
		}
		p.str("}\n")

	// Statements

	case *BlockStmt:
		p.str("{\n")
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.str("}\n")

	case *IfStmt:
		p.str("if (")
		p.print(n.Cond)
		p.str(")\n")
		p.print(n.Then)
		if !isNil(n.Else) {
			p.str("else\n")
			p.print(n.Else)
		}

	case *WhileStmt:
		p.str("while (")
		p.print(n.Cond)
		p.str(") ")
		p.print(n.Body)

	case *ForStmt:
		// The bound test and the increment always name the counter i,
		// whatever Var is.
		p.str("for (")
		p.str(n.Var)
		p.str(" = ")
		p.print(n.Init)
		p.str("; i <= ")
		p.print(n.Bound)
		p.str("; i = i + ")
		p.print(n.Step)
		p.str(")\n")
		p.print(n.Body)

	case *ForEachStmt:
		p.str(" for (")
		p.str(n.Var)
		p.str(" : ")
		p.str(n.Array)
		p.str(")\n")
		p.print(n.Body)

	case *RepeatStmt:
		p.str("do\n")
		p.print(n.Body)
		p.str("while (")
		p.print(n.Cond)
		p.str(");\n")

	case *AssignStmt:
		p.str(n.Name)
		p.str(" = ")
		p.print(n.Value)
		p.str(";\n")

	case *ArrayAssignStmt:
		p.str(n.Name)
		p.str("[")
		p.print(n.Index)
		p.str("] = ")
		p.print(n.Value)
		p.str(";\n")

	case *ExprStmt:
		p.print(n.X)
		p.str(";\n")

	case *ReturnStmt:
		p.str("return ")
		p.print(n.Result)
		p.str(";\n")

	// Expressions

	case *IntLit:
		p.str(strconv.FormatInt(n.Value, 10))

	case *BoolLit:
		p.str(strconv.FormatBool(n.Value))

	case *CharLit:
		p.str("'" + string(n.Value) + "'")

	case *FloatLit:
		p.str(formatFloat(n.Value))

	case *StringLit:
		p.str(`"` + n.Value + `"`)

	case *Id:
		p.str(n.Name)

	case *IndexExpr:
		p.str(n.Name)
		p.str("[")
		p.print(n.Index)
		p.str("]")

	case *UnaryExpr:
		// The operand is never parenthesized.
		p.str(n.Op.String())
		p.print(n.X)

	case *BinaryExpr:
		p.str("(")
		p.print(n.X)
		p.str(" ")
		p.str(n.Op.String())
		p.str(" ")
		p.print(n.Y)
		p.str(")")

	case *CastExpr:
		p.str(types.TypeString(n.Type))
		p.str("(")
		p.print(n.X)
		p.str(")")

	case *CallExpr:
		p.str(n.Name)
		p.str("(")
		for i, a := range n.Args {
			if i > 0 {
				p.str(", ")
			}
			p.print(a)
		}
		p.str(")")

	case *LenExpr:
		p.str("len (")
		p.str(n.Name)
		p.str(")")

	default:
		panic(fmt.Sprintf("syntax: unexpected node %T", node))
	}
}

// formatFloat renders f in its shortest exact form, keeping a decimal
// point so that integral values still read as floats.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}
