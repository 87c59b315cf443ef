package syntax

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/you-not-fish/minic/internal/types"
)

// ----------------------------------------------------------------------------
// Test helpers

func intLit(v int64) *IntLit { return &IntLit{Value: v} }
func id(name string) *Id { return &Id{Name: name} }
func not(x Expr) *UnaryExpr { return &UnaryExpr{Op: Not, X: x} }
func neg(x Expr) *UnaryExpr { return &UnaryExpr{Op: Neg, X: x} }
func ret(x Expr) *ReturnStmt { return &ReturnStmt{Result: x} }
func block(stmts ...Stmt) *BlockStmt { return &BlockStmt{Stmts: stmts} }

func bin(x Expr, op BinaryOp, y Expr) *BinaryExpr {
	return &BinaryExpr{X: x, Op: op, Y: y}
}

func call(name string, args ...Expr) *CallExpr {
	return &CallExpr{Name: name, Args: args}
}

func assign(name string, x Expr) *AssignStmt {
	return &AssignStmt{Name: name, Value: x}
}

func varDecl(t types.Type, name string) *VarDecl {
	return &VarDecl{Type: t, Name: name}
}

var (
	tInt   = types.Typ[types.Int]
	tFloat = types.Typ[types.Float]
)

type printTest struct {
	name string
	node Node
	want string
}

func runPrintTests(t *testing.T, tests []printTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.node); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Expressions

func TestPrintLiterals(t *testing.T) {
	runPrintTests(t, []printTest{
		{"int", intLit(42), "42"},
		{"negative int", intLit(-7), "-7"},
		{"zero", intLit(0), "0"},
		{"true", &BoolLit{Value: true}, "true"},
		{"false", &BoolLit{Value: false}, "false"},
		{"char", &CharLit{Value: 'a'}, "'a'"},
		{"char quote unescaped", &CharLit{Value: '\''}, "'''"},
		{"char non-ascii", &CharLit{Value: 'é'}, "'é'"},
		{"float", &FloatLit{Value: 3.14}, "3.14"},
		{"float half", &FloatLit{Value: 0.5}, "0.5"},
		{"float integral", &FloatLit{Value: 1}, "1.0"},
		{"float large integral", &FloatLit{Value: 100000}, "100000.0"},
		{"float exponent", &FloatLit{Value: 1e21}, "1e+21"},
		{"float small", &FloatLit{Value: 1e-7}, "1e-07"},
		{"float negative", &FloatLit{Value: -2.5}, "-2.5"},
		{"string", &StringLit{Value: "hello"}, `"hello"`},
		{"string empty", &StringLit{Value: ""}, `""`},
		{"string quote unescaped", &StringLit{Value: `say "hi"`}, `"say "hi""`},
	})
}

func TestPrintExpressions(t *testing.T) {
	runPrintTests(t, []printTest{
		{"id", id("x"), "x"},
		{"index", &IndexExpr{Name: "a", Index: bin(id("i"), Add, intLit(1))}, "a[(i + 1)]"},
		{"index nested", &IndexExpr{Name: "a", Index: &IndexExpr{Name: "b", Index: intLit(0)}}, "a[b[0]]"},
		{"pos", &UnaryExpr{Op: Pos, X: id("x")}, "x"},
		{"neg", neg(id("x")), "-x"},
		{"not", not(id("b")), "!b"},
		{"compl", &UnaryExpr{Op: Compl, X: id("m")}, "~m"},
		{"neg neg", neg(neg(id("x"))), "--x"},
		{"neg binary", neg(bin(id("a"), Add, id("b"))), "-(a + b)"},
		{"scenario 1", bin(intLit(1), Add, bin(intLit(2), Mul, intLit(3))), "(1 + (2 * 3))"},
		{"left nested", bin(bin(id("a"), Sub, id("b")), Sub, id("c")), "((a - b) - c)"},
		{"logical", bin(bin(id("a"), Lss, id("b")), AndAnd, not(id("c"))), "((a < b) && !c)"},
		{"relational", bin(id("a"), Geq, &FloatLit{Value: 2}), "(a >= 2.0)"},
		{"binary neg operand", bin(id("a"), Sub, neg(intLit(1))), "(a - -1)"},
		{"cast", &CastExpr{Type: tFloat, X: id("i")}, "float(i)"},
		{"cast binary", &CastExpr{Type: tInt, X: bin(id("f"), Div, intLit(2))}, "int((f / 2))"},
		{"cast nested array", &CastExpr{Type: types.NewArray(types.NewArray(tInt, 3), 4), X: id("a")}, "int[3][4](a)"},
		{"scenario 2", call("max", id("a"), intLit(0)), "max(a, 0)"},
		{"call no args", call("f"), "f()"},
		{"call one arg", call("print", &StringLit{Value: "x"}), `print("x")`},
		{"call nested", call("f", call("g", id("x")), bin(id("y"), Rem, intLit(2))), "f(g(x), (y % 2))"},
		{"len", &LenExpr{Name: "arr"}, "len (arr)"},
	})
}

func TestPrintBinaryOperators(t *testing.T) {
	for op := BinaryOp(0); op < binaryOpCount; op++ {
		t.Run(op.String(), func(t *testing.T) {
			want := "(a " + op.String() + " b)"
			if got := String(bin(id("a"), op, id("b"))); got != want {
				t.Errorf("String() = %q, want %q", got, want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Statements

func TestPrintStatements(t *testing.T) {
	runPrintTests(t, []printTest{
		{"scenario 3", block(assign("x", intLit(5)), ret(id("x"))), "{\nx = 5;\nreturn x;\n}\n"},
		{"empty block", block(), "{\n}\n"},
		{"nested block", block(block(assign("x", intLit(1)))), "{\n{\nx = 1;\n}\n}\n"},
		{
			"if",
			&IfStmt{Cond: bin(id("x"), Gtr, intLit(0)), Then: assign("y", intLit(1))},
			"if ((x > 0))\ny = 1;\n",
		},
		{
			"if else",
			&IfStmt{Cond: id("b"), Then: block(ret(intLit(1))), Else: block(ret(intLit(0)))},
			"if (b)\n{\nreturn 1;\n}\nelse\n{\nreturn 0;\n}\n",
		},
		{
			"else if",
			&IfStmt{
				Cond: id("a"),
				Then: ret(intLit(1)),
				Else: &IfStmt{Cond: id("b"), Then: ret(intLit(2)), Else: ret(intLit(3))},
			},
			"if (a)\nreturn 1;\nelse\nif (b)\nreturn 2;\nelse\nreturn 3;\n",
		},
		{
			"while",
			&WhileStmt{Cond: bin(id("i"), Lss, id("n")), Body: block(assign("i", bin(id("i"), Add, intLit(1))))},
			"while ((i < n)) {\ni = (i + 1);\n}\n",
		},
		{
			"while simple body",
			&WhileStmt{Cond: &BoolLit{Value: true}, Body: &ExprStmt{X: call("tick")}},
			"while (true) tick();\n",
		},
		{
			"for",
			&ForStmt{Var: "i", Init: intLit(0), Bound: id("n"), Step: intLit(1), Body: &ExprStmt{X: call("print", id("i"))}},
			"for (i = 0; i <= n; i = i + 1)\nprint(i);\n",
		},
		{
			// The counter in the test and increment is always i.
			"for other var",
			&ForStmt{Var: "k", Init: intLit(1), Bound: bin(id("n"), Sub, intLit(1)), Step: intLit(2), Body: block()},
			"for (k = 1; i <= (n - 1); i = i + 2)\n{\n}\n",
		},
		{
			"foreach",
			&ForEachStmt{Var: "x", Array: "xs", Body: &ExprStmt{X: call("print", id("x"))}},
			" for (x : xs)\nprint(x);\n",
		},
		{
			"repeat",
			&RepeatStmt{Body: block(assign("i", bin(id("i"), Sub, intLit(1)))), Cond: bin(id("i"), Eql, intLit(0))},
			"do\n{\ni = (i - 1);\n}\nwhile ((i == 0));\n",
		},
		{"assign", assign("x", &FloatLit{Value: 0.25}), "x = 0.25;\n"},
		{
			"array assign",
			&ArrayAssignStmt{Name: "a", Index: bin(id("i"), Add, intLit(1)), Value: intLit(0)},
			"a[(i + 1)] = 0;\n",
		},
		{"expr", &ExprStmt{X: call("f", intLit(1), intLit(2))}, "f(1, 2);\n"},
		{"return", ret(bin(id("a"), Mul, id("b"))), "return (a * b);\n"},
		{"return len", ret(&LenExpr{Name: "xs"}), "return len (xs);\n"},
	})
}

// ----------------------------------------------------------------------------
// Declarations

func TestPrintDeclarations(t *testing.T) {
	maxFunc := &FuncDecl{
		Result: tInt,
		Name:   "max",
		Params: []*VarDecl{varDecl(tInt, "a"), varDecl(tInt, "b")},
		Locals: []*VarDecl{varDecl(tInt, "m")},
		Body: []Stmt{
			&IfStmt{Cond: bin(id("a"), Gtr, id("b")), Then: assign("m", id("a")), Else: assign("m", id("b"))},
			ret(id("m")),
		},
	}
	mainFunc := &FuncDecl{
		Result: tInt,
		Name:   "main",
		Body:   []Stmt{ret(call("max", id("n"), intLit(0)))},
	}
	maxText := "int max(int a, int b) {\nint m;\nif ((a > b))\nm = a;\nelse\nm = b;\nreturn m;\n}\n"
	mainText := "int main() {\nreturn max(n, 0);\n}\n"

	runPrintTests(t, []printTest{
		{"var", varDecl(tInt, "n"), "int n;\n"},
		{"var array", varDecl(types.NewArray(types.Typ[types.Char], 10), "buf"), "char[10] buf;\n"},
		{"var nested array", varDecl(types.NewArray(types.NewArray(tInt, 3), 4), "grid"), "int[3][4] grid;\n"},
		{"func", maxFunc, maxText},
		{"func no params", mainFunc, mainText},
		{
			"func array param",
			&FuncDecl{
				Result: types.Typ[types.Bool],
				Name:   "empty",
				Params: []*VarDecl{varDecl(types.NewArray(types.Typ[types.String], 2), "xs")},
				Body:   []Stmt{ret(bin(&LenExpr{Name: "xs"}, Eql, intLit(0)))},
			},
			"bool empty(string[2] xs) {\nreturn (len (xs) == 0);\n}\n",
		},
		{"program scenario", &Program{Globals: []*VarDecl{varDecl(tInt, "n")}}, "int n;\n\n"},
		{"empty program", &Program{}, "\n"},
		{"program one func", &Program{Funcs: []*FuncDecl{mainFunc}}, "\n" + mainText},
		{
			"program",
			&Program{
				Globals: []*VarDecl{varDecl(tInt, "n"), varDecl(types.NewArray(tFloat, 4), "xs")},
				Funcs:   []*FuncDecl{maxFunc, mainFunc},
			},
			"int n;\nfloat[4] xs;\n\n" + maxText + "\n" + mainText,
		},
	})
}

func TestPrintNilChild(t *testing.T) {
	runPrintTests(t, []printTest{
		{"nil node", nil, "<nil>"},
		{"nil operand", bin(id("a"), Add, nil), "(a + <nil>)"},
		{"nil type", varDecl(nil, "x"), "<nil> x;\n"},
		{"nil pointer node", (*IfStmt)(nil), "<nil>"},
		{"nil pointer operand", bin(id("a"), Add, (*Id)(nil)), "(a + <nil>)"},
		{"nil pointer index", &IndexExpr{Name: "a", Index: (*IntLit)(nil)}, "a[<nil>]"},
		{"nil pointer body", &WhileStmt{Cond: id("c"), Body: (*BlockStmt)(nil)}, "while (c) <nil>"},
		// A nil pointer else branch is the same as no else branch.
		{"nil pointer else", &IfStmt{Cond: id("c"), Then: ret(id("x")), Else: (*BlockStmt)(nil)}, "if (c)\nreturn x;\n"},
		{"nil pointer type", &CastExpr{Type: (*types.Array)(nil), X: id("x")}, "<nil>(x)"},
		{"nil param", &FuncDecl{Result: tInt, Name: "f", Params: []*VarDecl{nil, varDecl(tInt, "y")}}, "int f(<nil>, int y) {\n}\n"},
		{"nil global", &Program{Globals: []*VarDecl{nil}}, "<nil>\n"},
	})
}

// ----------------------------------------------------------------------------
// Fprint

type errWriter struct {
	n   int // successful writes before failing
	err error
}

func (w *errWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, w.err
	}
	w.n--
	return len(p), nil
}

func TestFprint(t *testing.T) {
	node := block(assign("x", intLit(5)), ret(id("x")))

	var b strings.Builder
	if err := Fprint(&b, node); err != nil {
		t.Fatalf("Fprint error: %v", err)
	}
	if b.String() != String(node) {
		t.Errorf("Fprint wrote %q, String returned %q", b.String(), String(node))
	}
}

func TestFprintWriteError(t *testing.T) {
	errBoom := errors.New("boom")
	w := &errWriter{n: 3, err: errBoom}
	err := Fprint(w, block(assign("x", intLit(5)), ret(id("x"))))
	if !errors.Is(err, errBoom) {
		t.Fatalf("Fprint error = %v, want %v", err, errBoom)
	}
}

// ----------------------------------------------------------------------------
// Properties over generated trees

// treeGen builds random well-formed trees of bounded depth. Names and
// text literals are plain letters so the output holds no stray brackets.
type treeGen struct {
	r *rand.Rand
}

func (g *treeGen) name() string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	n := 1 + g.r.Intn(3)
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[g.r.Intn(len(letters))]
	}
	return string(b)
}

func (g *treeGen) typ(depth int) types.Type {
	if depth > 0 && g.r.Intn(4) == 0 {
		return types.NewArray(g.typ(depth-1), int64(g.r.Intn(16)))
	}
	return types.Typ[types.Int+types.BasicKind(g.r.Intn(5))]
}

func (g *treeGen) expr(depth int) Expr {
	if depth <= 0 {
		switch g.r.Intn(7) {
		case 0:
			return intLit(int64(g.r.Intn(1000)))
		case 1:
			return &BoolLit{Value: g.r.Intn(2) == 0}
		case 2:
			return &CharLit{Value: rune('a' + g.r.Intn(26))}
		case 3:
			return &FloatLit{Value: float64(g.r.Intn(1000)) / 8}
		case 4:
			return &StringLit{Value: g.name()}
		case 5:
			return &LenExpr{Name: g.name()}
		default:
			return id(g.name())
		}
	}
	switch g.r.Intn(5) {
	case 0:
		return &IndexExpr{Name: g.name(), Index: g.expr(depth - 1)}
	case 1:
		return &UnaryExpr{Op: UnaryOp(g.r.Intn(int(unaryOpCount))), X: g.expr(depth - 1)}
	case 2:
		return &CastExpr{Type: g.typ(2), X: g.expr(depth - 1)}
	case 3:
		args := make([]Expr, g.r.Intn(4))
		for i := range args {
			args[i] = g.expr(depth - 1)
		}
		return call(g.name(), args...)
	default:
		return bin(g.expr(depth-1), BinaryOp(g.r.Intn(int(binaryOpCount))), g.expr(depth-1))
	}
}

func (g *treeGen) stmt(depth int) Stmt {
	if depth <= 0 {
		switch g.r.Intn(4) {
		case 0:
			return assign(g.name(), g.expr(2))
		case 1:
			return &ArrayAssignStmt{Name: g.name(), Index: g.expr(1), Value: g.expr(2)}
		case 2:
			return &ExprStmt{X: g.expr(2)}
		default:
			return ret(g.expr(2))
		}
	}
	switch g.r.Intn(7) {
	case 0:
		stmts := make([]Stmt, g.r.Intn(4))
		for i := range stmts {
			stmts[i] = g.stmt(depth - 1)
		}
		return block(stmts...)
	case 1:
		s := &IfStmt{Cond: g.expr(2), Then: g.stmt(depth - 1)}
		if g.r.Intn(2) == 0 {
			s.Else = g.stmt(depth - 1)
		}
		return s
	case 2:
		return &WhileStmt{Cond: g.expr(2), Body: g.stmt(depth - 1)}
	case 3:
		return &ForStmt{Var: g.name(), Init: g.expr(1), Bound: g.expr(1), Step: g.expr(1), Body: g.stmt(depth - 1)}
	case 4:
		return &ForEachStmt{Var: g.name(), Array: g.name(), Body: g.stmt(depth - 1)}
	case 5:
		return &RepeatStmt{Body: g.stmt(depth - 1), Cond: g.expr(2)}
	default:
		return g.stmt(0)
	}
}

func (g *treeGen) program() *Program {
	p := &Program{}
	for i := g.r.Intn(3); i > 0; i-- {
		p.Globals = append(p.Globals, varDecl(g.typ(2), g.name()))
	}
	for i := g.r.Intn(3); i > 0; i-- {
		f := &FuncDecl{Result: g.typ(1), Name: g.name()}
		for j := g.r.Intn(3); j > 0; j-- {
			f.Params = append(f.Params, varDecl(g.typ(1), g.name()))
		}
		for j := g.r.Intn(3); j > 0; j-- {
			f.Locals = append(f.Locals, varDecl(g.typ(1), g.name()))
		}
		for j := g.r.Intn(4); j > 0; j-- {
			f.Body = append(f.Body, g.stmt(3))
		}
		p.Funcs = append(p.Funcs, f)
	}
	return p
}

// topLevelCount counts occurrences of sub at parenthesis depth 1.
func topLevelCount(s, sub string) int {
	count, depth := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		default:
			if depth == 1 && strings.HasPrefix(s[i:], sub) {
				count++
			}
		}
	}
	return count
}

func TestBinaryParenthesization(t *testing.T) {
	g := &treeGen{r: rand.New(rand.NewSource(1))}
	for i := 0; i < 500; i++ {
		e := g.expr(4)
		Inspect(e, func(n Node) bool {
			b, ok := n.(*BinaryExpr)
			if !ok {
				return true
			}
			s := String(b)
			if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
				t.Fatalf("binary rendering %q is not parenthesized", s)
			}
			if c := topLevelCount(s, " "+b.Op.String()+" "); c != 1 {
				t.Fatalf("binary rendering %q has %d top-level %q, want 1", s, c, b.Op)
			}
			return true
		})
	}
}

func TestStatementSeparators(t *testing.T) {
	g := &treeGen{r: rand.New(rand.NewSource(2))}
	for i := 0; i < 500; i++ {
		s := g.stmt(3)
		Inspect(s, func(n Node) bool {
			switch n.(type) {
			case *AssignStmt, *ArrayAssignStmt, *ExprStmt, *ReturnStmt:
				if text := String(n); !strings.HasSuffix(text, ";\n") {
					t.Fatalf("%T rendering %q does not end with \";\\n\"", n, text)
				}
			case *BlockStmt:
				if text := String(n); !strings.HasPrefix(text, "{\n") || !strings.HasSuffix(text, "}\n") {
					t.Fatalf("block rendering %q is not braced", text)
				}
			}
			return true
		})
	}
}

func TestPrintTotalAndDeterministic(t *testing.T) {
	g := &treeGen{r: rand.New(rand.NewSource(3))}
	for i := 0; i < 200; i++ {
		p := g.program()
		first := String(p)
		if second := String(p); first != second {
			t.Fatalf("rendering differs between calls:\n%s\n---\n%s", first, second)
		}
		var b strings.Builder
		if err := Fprint(&b, p); err != nil {
			t.Fatalf("Fprint error: %v", err)
		}
		if b.String() != first {
			t.Fatalf("Fprint and String disagree")
		}
		if !strings.Contains(first, "\n") {
			t.Fatalf("program rendering %q has no global separator", first)
		}
	}
}

func TestPrintConcurrent(t *testing.T) {
	g := &treeGen{r: rand.New(rand.NewSource(4))}
	p := g.program()
	want := String(p)

	done := make(chan string)
	for i := 0; i < 8; i++ {
		go func() { done <- String(p) }()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; got != want {
			t.Errorf("concurrent rendering differs")
		}
	}
}
