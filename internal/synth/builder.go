package synth

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/roach88/buildergen/internal/ir"
)

// BuilderType synthesizes the builder struct. Every field gets a slot of
// type Option[visible type], optional or not, in declaration order.
func BuilderType(desc *ir.Descriptor, opts Options) (ir.BuilderType, ir.Decl) {
	bt := ir.BuilderType{Name: desc.Builder}
	list := make([]*ast.Field, 0, len(desc.Fields))

	for _, f := range desc.Fields {
		slot := ir.Slot{
			Name:  f.Slot,
			Field: f.Name,
			Type:  optionOf(opts.Runtime, f.VisibleType),
		}
		bt.Slots = append(bt.Slots, slot)
		list = append(list, &ast.Field{
			Names: []*ast.Ident{ident(slot.Name)},
			Type:  slot.Type,
		})
	}

	decl := &ast.GenDecl{
		Tok: token.TYPE,
		Specs: []ast.Spec{&ast.TypeSpec{
			Name:       ident(desc.Builder),
			TypeParams: typeParams(desc.Record.TypeParams),
			Type:       &ast.StructType{Fields: &ast.FieldList{List: list}},
		}},
	}

	doc := fmt.Sprintf("%s accumulates field values until %s is called.", desc.Builder, desc.Finalize)
	return bt, ir.Decl{Name: desc.Builder, Doc: doc, Node: decl}
}

// Factory synthesizes the zero-argument constructor. Each slot is set to
// the empty option explicitly.
func Factory(desc *ir.Descriptor, opts Options) ir.Decl {
	lit := &ast.CompositeLit{Type: instance(desc.Builder, desc.Record.TypeParams)}
	for _, f := range desc.Fields {
		none := &ast.IndexExpr{X: runtimeRef(opts.Runtime, "None"), Index: f.VisibleType}
		lit.Elts = append(lit.Elts, &ast.KeyValueExpr{Key: ident(f.Slot), Value: call(none)})
	}
	body := []ast.Stmt{ret(&ast.UnaryExpr{Op: token.AND, X: lit})}

	decl := &ast.FuncDecl{
		Name: ident(desc.Factory),
		Type: &ast.FuncType{
			TypeParams: typeParams(desc.Record.TypeParams),
			Params:     &ast.FieldList{},
			Results:    results(builderPtr(desc)),
		},
		Body: &ast.BlockStmt{List: body},
	}

	doc := fmt.Sprintf("%s returns an empty %s.", desc.Factory, desc.Builder)
	return ir.Decl{Name: desc.Factory, Doc: doc, Node: decl}
}
