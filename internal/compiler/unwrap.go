package compiler

import "go/ast"

// Unwrapper recognises optional wrapper types.
//
// Unwrap reports whether expr is a wrapper instantiated with exactly one
// type argument and, if so, returns that argument.
type Unwrapper interface {
	Unwrap(expr ast.Expr) (inner ast.Expr, ok bool)
}

// NamedWrapper matches a generic type by name: Name[T] when Qualifier is
// empty, Qualifier.Name[T] otherwise.
//
// Matching is purely structural. The name is not resolved, so a local type
// that happens to share the wrapper's name is treated as the wrapper.
type NamedWrapper struct {
	Qualifier string
	Name      string
}

// Unwrap implements Unwrapper.
func (w NamedWrapper) Unwrap(expr ast.Expr) (ast.Expr, bool) {
	// Several type arguments parse as *ast.IndexListExpr and never match.
	idx, ok := expr.(*ast.IndexExpr)
	if !ok || !w.matches(idx.X) {
		return nil, false
	}
	return idx.Index, true
}

func (w NamedWrapper) matches(x ast.Expr) bool {
	switch x := x.(type) {
	case *ast.Ident:
		return w.Qualifier == "" && x.Name == w.Name
	case *ast.SelectorExpr:
		pkg, ok := x.X.(*ast.Ident)
		return ok && pkg.Name == w.Qualifier && x.Sel.Name == w.Name
	default:
		return false
	}
}

func (w NamedWrapper) String() string {
	if w.Qualifier == "" {
		return w.Name
	}
	return w.Qualifier + "." + w.Name
}

// Wrappers tries each Unwrapper in order; the first match wins.
type Wrappers []Unwrapper

// Unwrap implements Unwrapper.
func (ws Wrappers) Unwrap(expr ast.Expr) (ast.Expr, bool) {
	for _, w := range ws {
		if inner, ok := w.Unwrap(expr); ok {
			return inner, true
		}
	}
	return nil, false
}

// DefaultWrapper is opt.Option[T] from the runtime package.
var DefaultWrapper = NamedWrapper{Qualifier: "opt", Name: "Option"}
