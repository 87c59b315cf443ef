// Package main implements minicfmt, which renders minic syntax trees
// stored as JSON back into source text.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/you-not-fish/minic/internal/syntax"
)

// Command flags
var (
	emitAST   = flag.Bool("emit-ast", false, "Output the syntax tree instead of source text")
	astFormat = flag.String("ast-format", "text", "AST output format (text or json)")
	output    = flag.String("o", "", "Output file")
	version   = flag.Bool("version", false, "Print version")
	trace     = flag.Bool("trace", false, "Output timing trace")
)

// Version information
const Version = "0.1.0-dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "minicfmt %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: minicfmt [options] <file.json | ->\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("minicfmt version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintln(os.Stderr, "usage: minicfmt [options] <file.json | ->")
		os.Exit(1)
	}

	filename := args[0]

	if *emitAST {
		os.Exit(runEmitAST(filename))
	}
	os.Exit(runFormat(filename))
}

// runFormat decodes the tree in filename and writes its source form.
func runFormat(filename string) int {
	node, err := readTree(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	return writeOutput(func(w io.Writer) error {
		defer phase("render")()
		return syntax.Fprint(w, node)
	})
}

// runEmitAST decodes the tree in filename and dumps it.
func runEmitAST(filename string) int {
	node, err := readTree(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	var emit func(io.Writer, syntax.Node) error
	switch *astFormat {
	case "json":
		emit = syntax.FprintJSON
	case "text":
		emit = syntax.Dump
	default:
		fmt.Fprintf(os.Stderr, "error: unknown AST format %q\n", *astFormat)
		return 1
	}

	return writeOutput(func(w io.Writer) error {
		defer phase("emit-ast")()
		return emit(w, node)
	})
}

// readTree decodes a JSON tree from filename, or from stdin if filename is "-".
func readTree(filename string) (syntax.Node, error) {
	defer phase("decode")()

	var r io.Reader = os.Stdin
	if filename != "-" {
		f, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	node, err := syntax.ReadJSON(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return node, nil
}

// writeOutput runs write against the -o file, or stdout if none was given.
func writeOutput(write func(io.Writer) error) int {
	if *output == "" {
		if err := write(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	f, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if err := write(f); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// phase starts timing a named phase. The returned function reports the
// elapsed time on stderr when -trace is set.
func phase(name string) func() {
	if !*trace {
		return func() {}
	}
	start := time.Now()
	return func() {
		fmt.Fprintf(os.Stderr, "trace: %-8s %v\n", name, time.Since(start))
	}
}
