package synth

import (
	"fmt"
	"go/ast"

	"github.com/roach88/buildergen/internal/ir"
)

// Setters synthesizes one chained setter per field. The parameter has the
// field's visible type, so optional fields take the inner type.
func Setters(desc *ir.Descriptor, opts Options) []ir.Decl {
	decls := make([]ir.Decl, 0, len(desc.Fields))
	for _, f := range desc.Fields {
		decls = append(decls, setter(desc, f, opts))
	}
	return decls
}

func setter(desc *ir.Descriptor, f ir.Field, opts Options) ir.Decl {
	decl := &ast.FuncDecl{
		Recv: receiver(desc),
		Name: ident(f.Setter),
		Type: &ast.FuncType{
			Params: &ast.FieldList{List: []*ast.Field{{
				Names: []*ast.Ident{ident(paramName)},
				Type:  f.VisibleType,
			}}},
			Results: results(builderPtr(desc)),
		},
		Body: &ast.BlockStmt{List: []ast.Stmt{
			assign(slotRef(f), call(runtimeRef(opts.Runtime, "Some"), ident(paramName))),
			ret(ident(recvName)),
		}},
	}

	doc := fmt.Sprintf("%s sets %s.", f.Setter, f.Name)
	if f.Optional {
		doc = fmt.Sprintf("%s sets the optional %s.", f.Setter, f.Name)
	}
	return ir.Decl{Name: f.Setter, Doc: doc, Node: decl}
}
