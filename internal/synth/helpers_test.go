package synth

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/buildergen/internal/compiler"
	"github.com/roach88/buildergen/internal/ir"
)

const commandSrc = `package command

import "github.com/roach88/buildergen/pkg/opt"

type Command struct {
	executable string
	args       []string
	currentDir opt.Option[string]
}
`

const entrySrc = `package cache

import (
	"time"

	"github.com/roach88/buildergen/pkg/opt"
)

type Entry[K comparable, V any] struct {
	Key   K
	Value V
	TTL   opt.Option[time.Duration]
}
`

// compile parses src and compiles the type called name with default
// options.
func compile(t *testing.T, src, name string) *ir.Descriptor {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "input.go", src, 0)
	require.NoError(t, err)

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			if ts.Name.Name != name {
				continue
			}
			desc, err := compiler.Compile(ts, fset.Position(ts.Pos()), compiler.DefaultOptions())
			require.NoError(t, err)
			return desc
		}
	}
	t.Fatalf("type %s not found", name)
	return nil
}

// exprs renders every expression of a list, for compact assertions.
func exprs(list []ast.Expr) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = ir.TypeString(e)
	}
	return out
}
