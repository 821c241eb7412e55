package ir

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"
	"path"
	"strings"
)

// TypeString renders a type expression the way it would appear in source.
func TypeString(expr ast.Expr) string {
	if expr == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, token.NewFileSet(), expr); err != nil {
		return "<invalid>"
	}
	return buf.String()
}

// Qualifiers returns the package qualifiers referenced by expr, such as
// "time" for time.Duration, in first-seen order.
func Qualifiers(expr ast.Expr) []string {
	var out []string
	seen := map[string]bool{}
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok && !seen[id.Name] {
			seen[id.Name] = true
			out = append(out, id.Name)
		}
		return false
	})
	return out
}

// ImportName returns the name an import is referred to by in code: the
// explicit rename, the declared package name when known, or else a guess
// from the last path element without a major version suffix or "go-"
// prefix.
func ImportName(imp Import) string {
	if imp.Name != "" {
		return imp.Name
	}
	if imp.Package != "" {
		return imp.Package
	}
	elems := strings.Split(imp.Path, "/")
	name := elems[len(elems)-1]
	if isMajorVersion(name) && len(elems) > 1 {
		name = elems[len(elems)-2]
	}
	if i := strings.Index(name, ".v"); i > 0 && isMajorVersion(name[i+1:]) {
		name = name[:i]
	}
	name = strings.TrimPrefix(name, "go-")
	name = strings.TrimSuffix(name, "-go")
	return strings.ReplaceAll(name, "-", "")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Verified reports whether ImportName is known rather than guessed.
func (imp Import) Verified() bool {
	return imp.Name != "" || imp.Package != ""
}

// Uncertain reports whether the guessed name of an unverified import
// differs from its last path element, as with k8s.io/api/core/v1 or
// gopkg.in/yaml.v3. Such packages often declare a name other than the
// guess.
func (imp Import) Uncertain() bool {
	return !imp.Verified() && path.Base(imp.Path) != ImportName(imp)
}
