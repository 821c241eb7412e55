package synth

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/roach88/buildergen/internal/ir"
)

// Finalize synthesizes the validating build method.
//
// Mandatory slots are checked in declaration order before anything is
// moved, so a failed call leaves the builder as it was. On success every
// slot is taken, which leaves the builder empty: mandatory slots are
// unwrapped, optional slots are assigned as options and yield the empty
// option when unset.
func Finalize(desc *ir.Descriptor, opts Options) ir.Decl {
	recordType := instance(desc.Record.Name, desc.Record.TypeParams)

	var body []ast.Stmt
	for _, f := range desc.Mandatory() {
		body = append(body, &ast.IfStmt{
			Cond: call(selector(slotRef(f), "IsNone")),
			Body: &ast.BlockStmt{List: []ast.Stmt{
				ret(
					&ast.CompositeLit{Type: instance(desc.Record.Name, desc.Record.TypeParams)},
					call(runtimeRef(opts.Runtime, "Missing"), stringLit(f.Name)),
				),
			}},
		})
	}

	body = append(body, &ast.DeclStmt{Decl: &ast.GenDecl{
		Tok: token.VAR,
		Specs: []ast.Spec{&ast.ValueSpec{
			Names: []*ast.Ident{ident(recordName)},
			Type:  recordType,
		}},
	}})

	for _, f := range desc.Fields {
		var value ast.Expr = call(selector(slotRef(f), "Take"))
		if !f.Optional {
			value = call(selector(value, "Unwrap"))
		}
		body = append(body, assign(selector(ident(recordName), f.Name), value))
	}
	body = append(body, ret(ident(recordName), ident("nil")))

	decl := &ast.FuncDecl{
		Recv: receiver(desc),
		Name: ident(desc.Finalize),
		Type: &ast.FuncType{
			Params:  &ast.FieldList{},
			Results: results(instance(desc.Record.Name, desc.Record.TypeParams), ident("error")),
		},
		Body: &ast.BlockStmt{List: body},
	}

	doc := fmt.Sprintf(`%s moves the staged values into a new %s.
It fails without consuming anything when a mandatory field is unset, naming
the first such field in declaration order. After a successful call every
field is unset again.`, desc.Finalize, desc.Record.Name)
	return ir.Decl{Name: desc.Finalize, Doc: doc, Node: decl}
}
