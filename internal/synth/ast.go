package synth

import (
	"go/ast"
	"go/token"
	"strconv"

	"github.com/roach88/buildergen/internal/ir"
)

// Identifiers declared by generated methods. compiler.ReservedIdents keeps
// type parameters from shadowing them.
const (
	recvName   = "b"
	paramName  = "value"
	recordName = "record"
)

func ident(name string) *ast.Ident {
	return ast.NewIdent(name)
}

func selector(x ast.Expr, name string) *ast.SelectorExpr {
	return &ast.SelectorExpr{X: x, Sel: ident(name)}
}

// runtimeRef refers to an identifier of the runtime package, e.g. opt.Some.
func runtimeRef(rt, name string) *ast.SelectorExpr {
	return selector(ident(rt), name)
}

// optionOf builds rt.Option[t].
func optionOf(rt string, t ast.Expr) ast.Expr {
	return &ast.IndexExpr{X: runtimeRef(rt, "Option"), Index: t}
}

// instance builds Name, Name[T] or Name[K, V] for a possibly generic type.
func instance(name string, params []ir.TypeParam) ast.Expr {
	switch len(params) {
	case 0:
		return ident(name)
	case 1:
		return &ast.IndexExpr{X: ident(name), Index: ident(params[0].Name)}
	default:
		indices := make([]ast.Expr, len(params))
		for i, p := range params {
			indices[i] = ident(p.Name)
		}
		return &ast.IndexListExpr{X: ident(name), Indices: indices}
	}
}

// typeParams declares the record's type parameters, or nil.
func typeParams(params []ir.TypeParam) *ast.FieldList {
	if len(params) == 0 {
		return nil
	}
	list := make([]*ast.Field, len(params))
	for i, p := range params {
		list[i] = &ast.Field{Names: []*ast.Ident{ident(p.Name)}, Type: p.Constraint}
	}
	return &ast.FieldList{List: list}
}

// receiver declares (b *Builder[...]).
func receiver(desc *ir.Descriptor) *ast.FieldList {
	return &ast.FieldList{List: []*ast.Field{{
		Names: []*ast.Ident{ident(recvName)},
		Type:  builderPtr(desc),
	}}}
}

func builderPtr(desc *ir.Descriptor) ast.Expr {
	return &ast.StarExpr{X: instance(desc.Builder, desc.Record.TypeParams)}
}

func results(types ...ast.Expr) *ast.FieldList {
	list := make([]*ast.Field, len(types))
	for i, t := range types {
		list[i] = &ast.Field{Type: t}
	}
	return &ast.FieldList{List: list}
}

func assign(lhs, rhs ast.Expr) ast.Stmt {
	return &ast.AssignStmt{Lhs: []ast.Expr{lhs}, Tok: token.ASSIGN, Rhs: []ast.Expr{rhs}}
}

func call(fun ast.Expr, args ...ast.Expr) *ast.CallExpr {
	return &ast.CallExpr{Fun: fun, Args: args}
}

func ret(exprs ...ast.Expr) ast.Stmt {
	return &ast.ReturnStmt{Results: exprs}
}

func stringLit(s string) *ast.BasicLit {
	return &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(s)}
}

// slotRef builds b.<slot>.
func slotRef(f ir.Field) *ast.SelectorExpr {
	return selector(ident(recvName), f.Slot)
}
