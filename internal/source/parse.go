package source

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"

	"golang.org/x/tools/go/packages"

	"github.com/roach88/buildergen/internal/ir"
)

// ParseFile parses one Go file. src may be nil, in which case the file is
// read from path. A generated file yields (nil, nil).
func ParseFile(fset *token.FileSet, path string, src any, sel Selection) (*ir.SourceFile, error) {
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if ast.IsGenerated(file) {
		return nil, nil
	}
	return fromAST(fset, path, file, sel), nil
}

// ParseFiles parses each path in turn and drops generated files. It stops
// at the first parse error.
func ParseFiles(fset *token.FileSet, paths []string, sel Selection) ([]*ir.SourceFile, error) {
	if len(paths) == 0 {
		return nil, ErrNoGoFiles
	}
	var out []*ir.SourceFile
	for _, p := range paths {
		sf, err := ParseFile(fset, p, nil, sel)
		if err != nil {
			return nil, err
		}
		if sf != nil {
			out = append(out, sf)
		}
	}
	return out, nil
}

// PackageError collects the errors go/packages reported for one package.
type PackageError struct {
	Package string
	Errs    []packages.Error
}

func (e *PackageError) Error() string {
	msg := fmt.Sprintf("load %s: %s", e.Package, e.Errs[0].Msg)
	if n := len(e.Errs) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more)", n)
	}
	return msg
}

// LoadPackages loads the packages matching patterns, relative to dir, and
// returns one SourceFile per non-generated file. Types are not checked; only
// syntax is needed.
func LoadPackages(ctx context.Context, dir string, patterns []string, sel Selection) ([]*ir.SourceFile, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	fset := token.NewFileSet()
	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Fset:    fset,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax |
			packages.NeedImports | packages.NeedDeps,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	var out []*ir.SourceFile
	sawFiles := false
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			if len(pkg.GoFiles) == 0 && len(pkg.CompiledGoFiles) == 0 {
				continue
			}
			return nil, &PackageError{Package: pkg.PkgPath, Errs: pkg.Errors}
		}
		// Syntax is parallel to CompiledGoFiles.
		for i, file := range pkg.Syntax {
			sawFiles = true
			if ast.IsGenerated(file) || i >= len(pkg.CompiledGoFiles) {
				continue
			}
			sf := fromAST(fset, pkg.CompiledGoFiles[i], file, sel)
			for j := range sf.Imports {
				if dep, ok := pkg.Imports[sf.Imports[j].Path]; ok {
					sf.Imports[j].Package = dep.Name
				}
			}
			out = append(out, sf)
		}
	}
	if !sawFiles {
		return nil, ErrNoGoFiles
	}
	return out, nil
}
