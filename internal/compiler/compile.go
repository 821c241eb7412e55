package compiler

import (
	"go/ast"
	"go/token"

	"github.com/roach88/buildergen/internal/ir"
)

// Options configures Compile.
type Options struct {
	Wrapper Unwrapper
	Naming  Naming
}

// DefaultOptions recognises opt.Option and uses the default names.
func DefaultOptions() Options {
	return Options{
		Wrapper: DefaultWrapper,
		Naming:  DefaultNaming(),
	}
}

// Compile runs extraction, classification and validation for one type
// declaration. Any error is a *CompileError.
func Compile(spec *ast.TypeSpec, pos token.Position, opts Options) (*ir.Descriptor, error) {
	rec, err := Extract(spec, pos)
	if err != nil {
		return nil, err
	}

	fields := Classify(rec, opts.Wrapper)
	if err := Validate(rec, fields, opts.Wrapper, opts.Naming); err != nil {
		return nil, err
	}

	return &ir.Descriptor{
		Record:   rec,
		Fields:   fields,
		Builder:  opts.Naming.Builder(rec.Name),
		Factory:  opts.Naming.Factory(rec.Name),
		Finalize: opts.Naming.Finalize,
	}, nil
}
