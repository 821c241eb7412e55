package source

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"golang.org/x/tools/go/packages"

	"github.com/roach88/buildergen/internal/ir"
)

// ResolveImports fills in Import.Package for files parsed without
// go/packages. A file is looked up only when it has selected records and
// either one of their qualifiers matches no import, or one of its imports
// has an uncertain name. Lookups run from each file's directory, so the
// file's module decides what the paths mean. Imports that cannot be looked up
// keep their guessed names.
func ResolveImports(ctx context.Context, files []*ir.SourceFile) error {
	byDir := map[string][]*ir.SourceFile{}
	for _, f := range files {
		if needsResolve(f) {
			dir := filepath.Dir(f.Path)
			byDir[dir] = append(byDir[dir], f)
		}
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	for _, dir := range dirs {
		group := byDir[dir]
		paths := unverifiedPaths(group)
		if len(paths) == 0 {
			continue
		}
		names, err := packageNames(ctx, dir, paths)
		if err != nil {
			return err
		}
		for _, f := range group {
			for i := range f.Imports {
				imp := &f.Imports[i]
				if !imp.Verified() {
					imp.Package = names[imp.Path]
				}
			}
		}
	}
	return nil
}

// packageNames maps import paths to the names their packages declare.
// Paths that cannot be loaded are left out, and so is everything when dir is
// outside any module; only cancellation is an error.
func packageNames(ctx context.Context, dir string, paths []string) (map[string]string, error) {
	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    packages.NeedName,
	}
	pkgs, err := packages.Load(cfg, paths...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("resolve imports in %s: %w", dir, ctx.Err())
		}
		return map[string]string{}, nil
	}
	names := make(map[string]string, len(pkgs))
	for _, pkg := range pkgs {
		if pkg.Name != "" {
			names[pkg.PkgPath] = pkg.Name
		}
	}
	return names, nil
}

func needsResolve(f *ir.SourceFile) bool {
	if len(f.Specs) == 0 {
		return false
	}
	known := map[string]bool{}
	for _, imp := range f.Imports {
		if imp.Path == "C" {
			continue
		}
		if imp.Uncertain() {
			return true
		}
		known[ir.ImportName(imp)] = true
	}
	for _, q := range specQualifiers(f) {
		if !known[q] {
			return true
		}
	}
	return false
}

// specQualifiers lists the package qualifiers used by the selected
// records' fields and type parameter constraints.
func specQualifiers(f *ir.SourceFile) []string {
	var out []string
	for _, spec := range f.Specs {
		out = append(out, ir.Qualifiers(spec.Type)...)
		if spec.TypeParams != nil {
			for _, field := range spec.TypeParams.List {
				out = append(out, ir.Qualifiers(field.Type)...)
			}
		}
	}
	return out
}

func unverifiedPaths(files []*ir.SourceFile) []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range files {
		for _, imp := range f.Imports {
			if imp.Verified() || imp.Path == "C" || seen[imp.Path] {
				continue
			}
			seen[imp.Path] = true
			out = append(out, imp.Path)
		}
	}
	sort.Strings(out)
	return out
}
