package syntax

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/you-not-fish/minic/internal/types"
)

// FprintJSON writes a JSON representation of the tree to w.
// Each node is an object whose "type" member names its kind.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if isNil(node) {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		return map[string]interface{}{
			"type":    "Program",
			"globals": mapSlice(n.Globals, func(d *VarDecl) interface{} { return toJSON(d) }),
			"funcs":   mapSlice(n.Funcs, func(f *FuncDecl) interface{} { return toJSON(f) }),
		}

	case *VarDecl:
		return map[string]interface{}{
			"type":    "VarDecl",
			"name":    n.Name,
			"vartype": typeJSON(n.Type),
		}

	case *FuncDecl:
		return map[string]interface{}{
			"type":   "FuncDecl",
			"name":   n.Name,
			"result": typeJSON(n.Result),
			"params": mapSlice(n.Params, func(d *VarDecl) interface{} { return toJSON(d) }),
			"locals": mapSlice(n.Locals, func(d *VarDecl) interface{} { return toJSON(d) }),
			"body":   mapSlice(n.Body, func(s Stmt) interface{} { return toJSON(s) }),
		}

	case *BlockStmt:
		return map[string]interface{}{
			"type":  "BlockStmt",
			"stmts": mapSlice(n.Stmts, func(s Stmt) interface{} { return toJSON(s) }),
		}

	case *IfStmt:
		m := map[string]interface{}{
			"type": "IfStmt",
			"cond": toJSON(n.Cond),
			"then": toJSON(n.Then),
		}
		if !isNil(n.Else) {
			m["else"] = toJSON(n.Else)
		}
		return m

	case *WhileStmt:
		return map[string]interface{}{
			"type": "WhileStmt",
			"cond": toJSON(n.Cond),
			"body": toJSON(n.Body),
		}

	case *ForStmt:
		return map[string]interface{}{
			"type":  "ForStmt",
			"var":   n.Var,
			"init":  toJSON(n.Init),
			"bound": toJSON(n.Bound),
			"step":  toJSON(n.Step),
			"body":  toJSON(n.Body),
		}

	case *ForEachStmt:
		return map[string]interface{}{
			"type":  "ForEachStmt",
			"var":   n.Var,
			"array": n.Array,
			"body":  toJSON(n.Body),
		}

	case *RepeatStmt:
		return map[string]interface{}{
			"type": "RepeatStmt",
			"body": toJSON(n.Body),
			"cond": toJSON(n.Cond),
		}

	case *AssignStmt:
		return map[string]interface{}{
			"type":  "AssignStmt",
			"name":  n.Name,
			"value": toJSON(n.Value),
		}

	case *ArrayAssignStmt:
		return map[string]interface{}{
			"type":  "ArrayAssignStmt",
			"name":  n.Name,
			"index": toJSON(n.Index),
			"value": toJSON(n.Value),
		}

	case *ExprStmt:
		return map[string]interface{}{
			"type": "ExprStmt",
			"x":    toJSON(n.X),
		}

	case *ReturnStmt:
		return map[string]interface{}{
			"type":   "ReturnStmt",
			"result": toJSON(n.Result),
		}

	case *IntLit:
		return map[string]interface{}{
			"type":  "IntLit",
			"value": n.Value,
		}

	case *BoolLit:
		return map[string]interface{}{
			"type":  "BoolLit",
			"value": n.Value,
		}

	case *CharLit:
		return map[string]interface{}{
			"type":  "CharLit",
			"value": string(n.Value),
		}

	case *FloatLit:
		return map[string]interface{}{
			"type":  "FloatLit",
			"value": floatJSON(n.Value),
		}

	case *StringLit:
		return map[string]interface{}{
			"type":  "StringLit",
			"value": n.Value,
		}

	case *Id:
		return map[string]interface{}{
			"type": "Id",
			"name": n.Name,
		}

	case *IndexExpr:
		return map[string]interface{}{
			"type":  "IndexExpr",
			"name":  n.Name,
			"index": toJSON(n.Index),
		}

	case *UnaryExpr:
		return map[string]interface{}{
			"type": "UnaryExpr",
			"op":   unaryOpName(n.Op),
			"x":    toJSON(n.X),
		}

	case *BinaryExpr:
		return map[string]interface{}{
			"type": "BinaryExpr",
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
			"y":    toJSON(n.Y),
		}

	case *CastExpr:
		return map[string]interface{}{
			"type":     "CastExpr",
			"casttype": typeJSON(n.Type),
			"x":        toJSON(n.X),
		}

	case *CallExpr:
		return map[string]interface{}{
			"type": "CallExpr",
			"name": n.Name,
			"args": mapSlice(n.Args, func(e Expr) interface{} { return toJSON(e) }),
		}

	case *LenExpr:
		return map[string]interface{}{
			"type": "LenExpr",
			"name": n.Name,
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

// floatJSON spells non-finite values as strings ("+Inf", "-Inf", "NaN"),
// which JSON numbers cannot hold.
func floatJSON(f float64) interface{} {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return f
}

func typeJSON(t types.Type) interface{} {
	if types.IsNil(t) {
		return nil
	}
	switch t := t.(type) {
	case *types.Basic:
		return map[string]interface{}{
			"type": "Basic",
			"name": t.Name(),
		}
	case *types.Array:
		return map[string]interface{}{
			"type": "Array",
			"len":  t.Len(),
			"elem": typeJSON(t.Elem()),
		}
	}
	return nil
}

// Helper functions to map slices

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}

// ----------------------------------------------------------------------------
// Decoding

// A DecodeError reports a malformed JSON tree.
// Path locates the offending value, e.g. "$.funcs[0].body[1].cond".
type DecodeError struct {
	Path string
	Msg  string
}

func (e *DecodeError) Error() string {
	return e.Path + ": " + e.Msg
}

func errorf(path, format string, args ...interface{}) error {
	return &DecodeError{Path: path, Msg: fmt.Sprintf(format, args...)}
}

// ReadJSON decodes a tree written by FprintJSON.
func ReadJSON(r io.Reader) (Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errorf("$", "empty tree")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errorf("$", "unexpected data after tree")
	}
	return decodeNode("$", v)
}

var unaryOpByName = map[string]UnaryOp{
	"pos": Pos,
	"-":   Neg,
	"!":   Not,
	"~":   Compl,
}

var binaryOpByName map[string]BinaryOp

func init() {
	binaryOpByName = make(map[string]BinaryOp, binaryOpCount)
	for op := BinaryOp(0); op < binaryOpCount; op++ {
		binaryOpByName[op.String()] = op
	}
}

type object struct {
	path string
	m    map[string]interface{}
}

func asObject(path string, v interface{}) (object, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return object{}, errorf(path, "expected object, found %s", describe(v))
	}
	return object{path: path, m: m}, nil
}

func describe(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

func (o object) sub(key string) string {
	return o.path + "." + key
}

func (o object) str(key string) (string, error) {
	s, ok := o.m[key].(string)
	if !ok {
		return "", errorf(o.sub(key), "expected string, found %s", describe(o.m[key]))
	}
	return s, nil
}

func (o object) boolean(key string) (bool, error) {
	b, ok := o.m[key].(bool)
	if !ok {
		return false, errorf(o.sub(key), "expected boolean, found %s", describe(o.m[key]))
	}
	return b, nil
}

func (o object) number(key string) (json.Number, error) {
	n, ok := o.m[key].(json.Number)
	if !ok {
		return "", errorf(o.sub(key), "expected number, found %s", describe(o.m[key]))
	}
	return n, nil
}

func (o object) integer(key string) (int64, error) {
	n, err := o.number(key)
	if err != nil {
		return 0, err
	}
	i, err := strconv.ParseInt(string(n), 10, 64)
	if err != nil {
		return 0, errorf(o.sub(key), "invalid integer %s", n)
	}
	return i, nil
}

func (o object) float(key string) (float64, error) {
	var text string
	switch v := o.m[key].(type) {
	case json.Number:
		text = string(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || !(math.IsInf(f, 0) || math.IsNaN(f)) {
			return 0, errorf(o.sub(key), "invalid float %q", v)
		}
		return f, nil
	default:
		return 0, errorf(o.sub(key), "expected number, found %s", describe(v))
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errorf(o.sub(key), "invalid float %s", text)
	}
	return f, nil
}

// list returns the elements of an array member. A missing or null member
// is an empty list.
func (o object) list(key string) ([]interface{}, error) {
	switch v := o.m[key].(type) {
	case nil:
		return nil, nil
	case []interface{}:
		return v, nil
	default:
		return nil, errorf(o.sub(key), "expected array, found %s", describe(v))
	}
}

func (o object) expr(key string) (Expr, error) {
	return decodeExpr(o.sub(key), o.m[key])
}

func (o object) stmt(key string) (Stmt, error) {
	return decodeStmt(o.sub(key), o.m[key])
}

func (o object) typ(key string) (types.Type, error) {
	return decodeType(o.sub(key), o.m[key])
}

func (o object) exprs(key string) ([]Expr, error) {
	vs, err := o.list(key)
	if err != nil {
		return nil, err
	}
	var out []Expr
	for i, v := range vs {
		e, err := decodeExpr(fmt.Sprintf("%s[%d]", o.sub(key), i), v)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (o object) stmts(key string) ([]Stmt, error) {
	vs, err := o.list(key)
	if err != nil {
		return nil, err
	}
	var out []Stmt
	for i, v := range vs {
		s, err := decodeStmt(fmt.Sprintf("%s[%d]", o.sub(key), i), v)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (o object) varDecls(key string) ([]*VarDecl, error) {
	vs, err := o.list(key)
	if err != nil {
		return nil, err
	}
	var out []*VarDecl
	for i, v := range vs {
		path := fmt.Sprintf("%s[%d]", o.sub(key), i)
		n, err := decodeNode(path, v)
		if err != nil {
			return nil, err
		}
		d, ok := n.(*VarDecl)
		if !ok {
			return nil, errorf(path, "expected VarDecl, found %T", n)
		}
		out = append(out, d)
	}
	return out, nil
}

func decodeExpr(path string, v interface{}) (Expr, error) {
	n, err := decodeNode(path, v)
	if err != nil {
		return nil, err
	}
	e, ok := n.(Expr)
	if !ok {
		return nil, errorf(path, "expected expression, found %T", n)
	}
	return e, nil
}

func decodeStmt(path string, v interface{}) (Stmt, error) {
	n, err := decodeNode(path, v)
	if err != nil {
		return nil, err
	}
	s, ok := n.(Stmt)
	if !ok {
		return nil, errorf(path, "expected statement, found %T", n)
	}
	return s, nil
}

func decodeType(path string, v interface{}) (types.Type, error) {
	o, err := asObject(path, v)
	if err != nil {
		return nil, err
	}
	kind, err := o.str("type")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "Basic":
		name, err := o.str("name")
		if err != nil {
			return nil, err
		}
		b := types.LookupBasic(name)
		if b == nil {
			return nil, errorf(o.sub("name"), "unknown basic type %q", name)
		}
		return b, nil
	case "Array":
		n, err := o.integer("len")
		if err != nil {
			return nil, err
		}
		elem, err := o.typ("elem")
		if err != nil {
			return nil, err
		}
		return types.NewArray(elem, n), nil
	}
	return nil, errorf(o.sub("type"), "unknown type kind %q", kind)
}

func decodeNode(path string, v interface{}) (Node, error) {
	o, err := asObject(path, v)
	if err != nil {
		return nil, err
	}
	kind, err := o.str("type")
	if err != nil {
		return nil, err
	}

	switch kind {
	case "Program":
		n := &Program{}
		if n.Globals, err = o.varDecls("globals"); err != nil {
			return nil, err
		}
		funcs, err := o.list("funcs")
		if err != nil {
			return nil, err
		}
		for i, fv := range funcs {
			fpath := fmt.Sprintf("%s[%d]", o.sub("funcs"), i)
			fn, err := decodeNode(fpath, fv)
			if err != nil {
				return nil, err
			}
			f, ok := fn.(*FuncDecl)
			if !ok {
				return nil, errorf(fpath, "expected FuncDecl, found %T", fn)
			}
			n.Funcs = append(n.Funcs, f)
		}
		return n, nil

	case "VarDecl":
		n := &VarDecl{}
		if n.Name, err = o.str("name"); err != nil {
			return nil, err
		}
		if n.Type, err = o.typ("vartype"); err != nil {
			return nil, err
		}
		return n, nil

	case "FuncDecl":
		n := &FuncDecl{}
		if n.Name, err = o.str("name"); err != nil {
			return nil, err
		}
		if n.Result, err = o.typ("result"); err != nil {
			return nil, err
		}
		if n.Params, err = o.varDecls("params"); err != nil {
			return nil, err
		}
		if n.Locals, err = o.varDecls("locals"); err != nil {
			return nil, err
		}
		if n.Body, err = o.stmts("body"); err != nil {
			return nil, err
		}
		return n, nil

	case "BlockStmt":
		n := &BlockStmt{}
		if n.Stmts, err = o.stmts("stmts"); err != nil {
			return nil, err
		}
		return n, nil

	case "IfStmt":
		n := &IfStmt{}
		if n.Cond, err = o.expr("cond"); err != nil {
			return nil, err
		}
		if n.Then, err = o.stmt("then"); err != nil {
			return nil, err
		}
		if o.m["else"] != nil {
			if n.Else, err = o.stmt("else"); err != nil {
				return nil, err
			}
		}
		return n, nil

	case "WhileStmt":
		n := &WhileStmt{}
		if n.Cond, err = o.expr("cond"); err != nil {
			return nil, err
		}
		if n.Body, err = o.stmt("body"); err != nil {
			return nil, err
		}
		return n, nil

	case "ForStmt":
		n := &ForStmt{}
		if n.Var, err = o.str("var"); err != nil {
			return nil, err
		}
		if n.Init, err = o.expr("init"); err != nil {
			return nil, err
		}
		if n.Bound, err = o.expr("bound"); err != nil {
			return nil, err
		}
		if n.Step, err = o.expr("step"); err != nil {
			return nil, err
		}
		if n.Body, err = o.stmt("body"); err != nil {
			return nil, err
		}
		return n, nil

	case "ForEachStmt":
		n := &ForEachStmt{}
		if n.Var, err = o.str("var"); err != nil {
			return nil, err
		}
		if n.Array, err = o.str("array"); err != nil {
			return nil, err
		}
		if n.Body, err = o.stmt("body"); err != nil {
			return nil, err
		}
		return n, nil

	case "RepeatStmt":
		n := &RepeatStmt{}
		if n.Body, err = o.stmt("body"); err != nil {
			return nil, err
		}
		if n.Cond, err = o.expr("cond"); err != nil {
			return nil, err
		}
		return n, nil

	case "AssignStmt":
		n := &AssignStmt{}
		if n.Name, err = o.str("name"); err != nil {
			return nil, err
		}
		if n.Value, err = o.expr("value"); err != nil {
			return nil, err
		}
		return n, nil

	case "ArrayAssignStmt":
		n := &ArrayAssignStmt{}
		if n.Name, err = o.str("name"); err != nil {
			return nil, err
		}
		if n.Index, err = o.expr("index"); err != nil {
			return nil, err
		}
		if n.Value, err = o.expr("value"); err != nil {
			return nil, err
		}
		return n, nil

	case "ExprStmt":
		n := &ExprStmt{}
		if n.X, err = o.expr("x"); err != nil {
			return nil, err
		}
		return n, nil

	case "ReturnStmt":
		n := &ReturnStmt{}
		if n.Result, err = o.expr("result"); err != nil {
			return nil, err
		}
		return n, nil

	case "IntLit":
		n := &IntLit{}
		if n.Value, err = o.integer("value"); err != nil {
			return nil, err
		}
		return n, nil

	case "BoolLit":
		n := &BoolLit{}
		if n.Value, err = o.boolean("value"); err != nil {
			return nil, err
		}
		return n, nil

	case "CharLit":
		s, err := o.str("value")
		if err != nil {
			return nil, err
		}
		if utf8.RuneCountInString(s) != 1 {
			return nil, errorf(o.sub("value"), "character literal must hold one character, found %q", s)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return &CharLit{Value: r}, nil

	case "FloatLit":
		n := &FloatLit{}
		if n.Value, err = o.float("value"); err != nil {
			return nil, err
		}
		return n, nil

	case "StringLit":
		n := &StringLit{}
		if n.Value, err = o.str("value"); err != nil {
			return nil, err
		}
		return n, nil

	case "Id":
		n := &Id{}
		if n.Name, err = o.str("name"); err != nil {
			return nil, err
		}
		return n, nil

	case "IndexExpr":
		n := &IndexExpr{}
		if n.Name, err = o.str("name"); err != nil {
			return nil, err
		}
		if n.Index, err = o.expr("index"); err != nil {
			return nil, err
		}
		return n, nil

	case "UnaryExpr":
		n := &UnaryExpr{}
		name, err := o.str("op")
		if err != nil {
			return nil, err
		}
		op, ok := unaryOpByName[name]
		if !ok {
			return nil, errorf(o.sub("op"), "unknown unary operator %q", name)
		}
		n.Op = op
		if n.X, err = o.expr("x"); err != nil {
			return nil, err
		}
		return n, nil

	case "BinaryExpr":
		n := &BinaryExpr{}
		name, err := o.str("op")
		if err != nil {
			return nil, err
		}
		op, ok := binaryOpByName[name]
		if !ok {
			return nil, errorf(o.sub("op"), "unknown binary operator %q", name)
		}
		n.Op = op
		if n.X, err = o.expr("x"); err != nil {
			return nil, err
		}
		if n.Y, err = o.expr("y"); err != nil {
			return nil, err
		}
		return n, nil

	case "CastExpr":
		n := &CastExpr{}
		if n.Type, err = o.typ("casttype"); err != nil {
			return nil, err
		}
		if n.X, err = o.expr("x"); err != nil {
			return nil, err
		}
		return n, nil

	case "CallExpr":
		n := &CallExpr{}
		if n.Name, err = o.str("name"); err != nil {
			return nil, err
		}
		if n.Args, err = o.exprs("args"); err != nil {
			return nil, err
		}
		return n, nil

	case "LenExpr":
		n := &LenExpr{}
		if n.Name, err = o.str("name"); err != nil {
			return nil, err
		}
		return n, nil
	}

	return nil, errorf(o.sub("type"), "unknown node type %q", kind)
}
