package render

import (
	"fmt"
	"go/ast"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/roach88/buildergen/internal/compiler"
	"github.com/roach88/buildergen/internal/ir"
)

// RuntimeQualifier picks the name generated code uses for the runtime
// package. A source file that already imports the runtime keeps its name for
// it; otherwise the preferred name is used unless another import of the file,
// a type parameter or unqualified type name of a selected record, or an
// identifier the generated methods declare claims it.
func RuntimeQualifier(file *ir.SourceFile, runtimePath, preferred string) string {
	taken := map[string]bool{}
	for name := range compiler.ReservedIdents {
		taken[name] = true
	}
	for _, spec := range file.Specs {
		for name := range localIdents(spec) {
			taken[name] = true
		}
	}

	for _, imp := range file.Imports {
		if imp.Path != runtimePath {
			taken[ir.ImportName(imp)] = true
		}
	}
	if existing := ImportedAs(file, runtimePath); existing != "" && !taken[existing] {
		return existing
	}

	name := preferred
	for i := 2; taken[name]; i++ {
		name = preferred + strconv.Itoa(i)
	}
	return name
}

// ImportedAs returns the name file refers to importPath by, or "" when the
// file does not import it under a usable name.
func ImportedAs(file *ir.SourceFile, importPath string) string {
	for _, imp := range file.Imports {
		if imp.Path != importPath {
			continue
		}
		if name := ir.ImportName(imp); name != "_" && name != "." {
			return name
		}
	}
	return ""
}

// localIdents returns the type parameter names of spec and the unqualified
// identifiers its field types refer to.
func localIdents(spec *ast.TypeSpec) map[string]bool {
	out := map[string]bool{}
	if spec.TypeParams != nil {
		for _, field := range spec.TypeParams.List {
			for _, n := range field.Names {
				out[n.Name] = true
			}
		}
	}
	st, ok := spec.Type.(*ast.StructType)
	if !ok || st.Fields == nil {
		return out
	}
	for _, field := range st.Fields.List {
		ast.Inspect(field.Type, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.SelectorExpr:
				return false
			case *ast.Ident:
				out[n.Name] = true
			}
			return true
		})
	}
	return out
}

// UnresolvedError reports a package qualifier in a record's field types
// that no import of the source file is known to declare.
type UnresolvedError struct {
	File      string
	Qualifier string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%s: no import is known to declare package %s; give its import an explicit name", e.File, e.Qualifier)
}

// requiredImports returns the runtime import followed by every source import
// referenced from the builders' slot types or type parameter constraints.
// Imports the builders do not mention are dropped.
//
// A qualifier that matches no import's name is matched against the last
// element of unverified imports, which are then imported under that name
// explicitly (v1 "k8s.io/api/core/v1"). Anything else is an
// UnresolvedError.
func requiredImports(file *ir.SourceFile, artifacts []*ir.Artifact, opts Options) ([]ir.Import, error) {
	var order []string
	used := map[string]bool{}
	use := func(expr ast.Expr) {
		for _, q := range ir.Qualifiers(expr) {
			if !used[q] {
				used[q] = true
				order = append(order, q)
			}
		}
	}
	for _, a := range artifacts {
		for _, s := range a.Type.Slots {
			use(s.Type)
		}
		for _, tp := range a.Record.TypeParams {
			use(tp.Constraint)
		}
	}

	runtime := ir.Import{Path: opts.RuntimePath}
	if ir.ImportName(runtime) != opts.Runtime {
		runtime.Name = opts.Runtime
	}
	out := []ir.Import{runtime}
	resolved := map[string]bool{opts.Runtime: true}
	seen := map[string]bool{}

	for _, imp := range file.Imports {
		name := ir.ImportName(imp)
		if !used[name] || resolved[name] {
			continue
		}
		seen[imp.Path] = true
		resolved[name] = true
		out = append(out, imp)
	}

	for _, q := range order {
		if resolved[q] {
			continue
		}
		imp, ok := byLastElement(file, q, seen)
		if !ok {
			return nil, &UnresolvedError{File: file.Path, Qualifier: q}
		}
		seen[imp.Path] = true
		resolved[q] = true
		imp.Name = q
		out = append(out, imp)
	}
	return out, nil
}

// byLastElement finds an unverified, unused import whose path ends in
// name.
func byLastElement(file *ir.SourceFile, name string, seen map[string]bool) (ir.Import, bool) {
	for _, imp := range file.Imports {
		if !imp.Verified() && !seen[imp.Path] && path.Base(imp.Path) == name {
			return imp, true
		}
	}
	return ir.Import{}, false
}

// importBlock prints an import declaration with standard library imports
// first.
func importBlock(imports []ir.Import) string {
	var std, other []ir.Import
	for _, imp := range imports {
		if isStd(imp.Path) {
			std = append(std, imp)
		} else {
			other = append(other, imp)
		}
	}
	sortImports(std)
	sortImports(other)

	var sb strings.Builder
	if len(imports) == 1 {
		sb.WriteString("import ")
		writeImport(&sb, imports[0])
		return sb.String()
	}
	sb.WriteString("import (\n")
	for _, imp := range std {
		sb.WriteString("\t")
		writeImport(&sb, imp)
	}
	if len(std) > 0 && len(other) > 0 {
		sb.WriteString("\n")
	}
	for _, imp := range other {
		sb.WriteString("\t")
		writeImport(&sb, imp)
	}
	sb.WriteString(")\n")
	return sb.String()
}

func writeImport(sb *strings.Builder, imp ir.Import) {
	if imp.Name != "" {
		sb.WriteString(imp.Name + " ")
	}
	sb.WriteString(`"` + imp.Path + `"` + "\n")
}

func sortImports(imports []ir.Import) {
	sort.Slice(imports, func(i, j int) bool {
		if imports[i].Path != imports[j].Path {
			return imports[i].Path < imports[j].Path
		}
		return imports[i].Name < imports[j].Name
	})
}

// isStd reports whether path looks like a standard library import: its
// first element has no dot.
func isStd(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}
