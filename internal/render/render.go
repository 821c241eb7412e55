package render

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/roach88/buildergen/internal/ir"
)

// Header marks rendered files as generated.
const Header = "// Code generated by buildergen. DO NOT EDIT."

// DefaultRuntimePath is the import path of the runtime package.
const DefaultRuntimePath = "github.com/roach88/buildergen/pkg/opt"

// DefaultOutputSuffix replaces ".go" in the source file name.
const DefaultOutputSuffix = "_builder.go"

// Options configures rendering.
type Options struct {
	RuntimePath  string
	Runtime      string // qualifier used by the synthesized code
	OutputSuffix string
}

// DefaultOptions imports the runtime as opt.
func DefaultOptions() Options {
	return Options{
		RuntimePath:  DefaultRuntimePath,
		Runtime:      "opt",
		OutputSuffix: DefaultOutputSuffix,
	}
}

// OutputPath returns the companion file path for a source file:
// command.go becomes command_builder.go in the same directory.
func OutputPath(source string, opts Options) string {
	suffix := opts.OutputSuffix
	if suffix == "" {
		suffix = DefaultOutputSuffix
	}
	dir, base := filepath.Split(source)
	return filepath.Join(dir, strings.TrimSuffix(base, ".go")+suffix)
}

// File renders the companion file for the given artifacts, which must all
// come from file.
func File(file *ir.SourceFile, artifacts []*ir.Artifact, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Header + "\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", file.Package)
	imps, err := requiredImports(file, artifacts, opts)
	if err != nil {
		return nil, err
	}
	buf.WriteString(importBlock(imps))

	for _, a := range artifacts {
		decls, err := Decls(a)
		if err != nil {
			return nil, err
		}
		buf.WriteString("\n")
		buf.Write(decls)
	}

	out, err := imports.Process(OutputPath(file.Path, opts), buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", file.Path, err)
	}
	return out, nil
}

// Decls renders an artifact's declarations with their doc comments,
// separated by blank lines.
func Decls(a *ir.Artifact) ([]byte, error) {
	var buf bytes.Buffer
	for i, d := range a.Decls() {
		if i > 0 {
			buf.WriteString("\n")
		}
		if err := decl(&buf, d); err != nil {
			return nil, fmt.Errorf("render %s: %w", d.Name, err)
		}
	}
	return buf.Bytes(), nil
}

func decl(buf *bytes.Buffer, d ir.Decl) error {
	writeDoc(buf, d.Doc)

	fset := token.NewFileSet()
	if err := format.Node(buf, fset, multiline(fset, d.Node)); err != nil {
		return err
	}
	buf.WriteString("\n")
	return nil
}

func writeDoc(buf *bytes.Buffer, doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(doc, "\n") {
		if line == "" {
			buf.WriteString("//\n")
			continue
		}
		buf.WriteString("// " + line + "\n")
	}
}

// Nodes built without positions let the printer collapse short function
// bodies onto one line. multiline gives function bodies braces on distinct
// lines of a placeholder file so they always print as blocks, and spreads a
// returned composite literal one element per line. The placeholder lives far
// above any base a parsed source file would get, so positions carried over
// from source type expressions never resolve into it.
const placeholderBase = 1 << 30

func multiline(fset *token.FileSet, node ast.Decl) ast.Decl {
	fn, ok := node.(*ast.FuncDecl)
	if !ok || fn.Body == nil {
		return node
	}
	lit := returnedLit(fn.Body)
	lines := 2
	if lit != nil {
		lines = len(lit.Elts) + 4
	}
	f := fset.AddFile("", placeholderBase, lines)
	offsets := make([]int, lines)
	for i := range offsets {
		offsets[i] = i
	}
	f.SetLines(offsets)

	body := *fn.Body
	body.Lbrace = f.Pos(0)
	body.Rbrace = f.Pos(lines - 1)
	if lit != nil {
		ret := *body.List[0].(*ast.ReturnStmt)
		addr := *ret.Results[0].(*ast.UnaryExpr)
		addr.X = spread(f, 1, lit)
		ret.Results = []ast.Expr{&addr}
		body.List = []ast.Stmt{&ret}
	}
	out := *fn
	out.Body = &body
	return &out
}

// returnedLit matches a body that is a single return &T{k: v, ...}.
func returnedLit(body *ast.BlockStmt) *ast.CompositeLit {
	if len(body.List) != 1 {
		return nil
	}
	ret, ok := body.List[0].(*ast.ReturnStmt)
	if !ok || len(ret.Results) != 1 {
		return nil
	}
	addr, ok := ret.Results[0].(*ast.UnaryExpr)
	if !ok || addr.Op != token.AND {
		return nil
	}
	lit, ok := addr.X.(*ast.CompositeLit)
	if !ok || len(lit.Elts) == 0 {
		return nil
	}
	return lit
}

// spread places lit's opening brace on line and each key: value element on
// the lines after it.
func spread(f *token.File, line int, lit *ast.CompositeLit) *ast.CompositeLit {
	out := *lit
	out.Lbrace = f.Pos(line)
	out.Elts = make([]ast.Expr, len(lit.Elts))
	for i, elt := range lit.Elts {
		pos := f.Pos(line + 1 + i)
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			out.Elts[i] = elt
			continue
		}
		placed := *kv
		if key, ok := kv.Key.(*ast.Ident); ok {
			k := *key
			k.NamePos = pos
			placed.Key = &k
		}
		placed.Colon = pos
		if c, ok := kv.Value.(*ast.CallExpr); ok {
			v := *c
			v.Lparen = pos
			v.Rparen = pos
			placed.Value = &v
		}
		out.Elts[i] = &placed
	}
	out.Rbrace = f.Pos(line + 1 + len(lit.Elts))
	return &out
}
