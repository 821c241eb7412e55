package source

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"github.com/roach88/buildergen/internal/ir"
)

// DefaultDirective marks a type for generation: a comment line
// "//buildergen:builder" directly above the declaration.
const DefaultDirective = "buildergen:builder"

// ErrNoGoFiles is returned when the inputs contain no Go files at all.
var ErrNoGoFiles = errors.New("no Go files")

// Selection decides which type declarations of a file are records to
// generate for. When Types is set only those names are selected and the
// directive is ignored.
type Selection struct {
	Types     []string
	Directive string
}

// NotFoundError reports a --type name that no input declares.
type NotFoundError struct {
	Type string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("type %s not found", e.Type)
}

func (s Selection) directive() string {
	if s.Directive == "" {
		return DefaultDirective
	}
	return s.Directive
}

func (s Selection) selects(gen *ast.GenDecl, spec *ast.TypeSpec) bool {
	if len(s.Types) > 0 {
		for _, name := range s.Types {
			if spec.Name.Name == name {
				return true
			}
		}
		return false
	}
	if hasDirective(spec.Doc, s.directive()) {
		return true
	}
	// A lone declaration attaches its comment to the GenDecl.
	return !gen.Lparen.IsValid() && hasDirective(gen.Doc, s.directive())
}

func hasDirective(doc *ast.CommentGroup, directive string) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		// Directives have no space after the slashes.
		if strings.TrimRight(c.Text, " \t") == "//"+directive {
			return true
		}
	}
	return false
}

// Check reports the first selected type name that none of files declares.
// It is a no-op for directive selection.
func (s Selection) Check(files []*ir.SourceFile) error {
	found := map[string]bool{}
	for _, f := range files {
		for _, spec := range f.Specs {
			found[spec.Name.Name] = true
		}
	}
	for _, name := range s.Types {
		if !found[name] {
			return &NotFoundError{Type: name}
		}
	}
	return nil
}

// fromAST builds the SourceFile for a parsed file.
func fromAST(fset *token.FileSet, path string, file *ast.File, sel Selection) *ir.SourceFile {
	sf := &ir.SourceFile{
		Path:    path,
		Package: file.Name.Name,
		Fset:    fset,
	}

	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		i := ir.Import{Path: p}
		if imp.Name != nil {
			i.Name = imp.Name.Name
		}
		sf.Imports = append(sf.Imports, i)
	}

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			if sel.selects(gen, ts) {
				sf.Specs = append(sf.Specs, ts)
			}
		}
	}
	return sf
}
