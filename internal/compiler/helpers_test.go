package compiler

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
)

// parseSpec parses src as the body of a Go file in package p and returns
// the type declaration called name.
func parseSpec(t *testing.T, src, name string) *ast.TypeSpec {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "input.go", "package p\n\n"+src, 0)
	require.NoError(t, err)

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			if ts := spec.(*ast.TypeSpec); ts.Name.Name == name {
				return ts
			}
		}
	}
	t.Fatalf("type %s not found", name)
	return nil
}

func mustExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, err := parser.ParseExpr(src)
	require.NoError(t, err)
	return expr
}

const commandSrc = `
import "github.com/roach88/buildergen/pkg/opt"

type Command struct {
	executable string
	args       []string
	currentDir opt.Option[string]
}
`
