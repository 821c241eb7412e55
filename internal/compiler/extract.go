package compiler

import (
	"go/ast"
	"go/token"

	"github.com/roach88/buildergen/internal/ir"
)

// Extract normalises a type declaration into a Record.
//
// Only struct types whose fields all have names are accepted. Grouped
// declarations such as "a, b int" become separate fields in declaration
// order. Embedded and blank fields are rejected because a builder cannot
// name a setter or a storage slot after them.
func Extract(spec *ast.TypeSpec, pos token.Position) (*ir.Record, error) {
	name := spec.Name.Name

	st, ok := spec.Type.(*ast.StructType)
	if !ok {
		return nil, &CompileError{
			Reason:  ReasonNotARecord,
			Type:    name,
			Message: "only structs are supported",
			Pos:     pos,
		}
	}

	rec := &ir.Record{Name: name, Pos: pos}

	if spec.TypeParams != nil {
		for _, group := range spec.TypeParams.List {
			for _, n := range group.Names {
				rec.TypeParams = append(rec.TypeParams, ir.TypeParam{
					Name:       n.Name,
					Constraint: group.Type,
				})
			}
		}
	}

	for _, group := range st.Fields.List {
		if len(group.Names) == 0 {
			return nil, &CompileError{
				Reason:  ReasonUnnamedFields,
				Type:    name,
				Field:   ir.TypeString(group.Type),
				Message: "only named fields are supported",
				Pos:     pos,
			}
		}
		for _, n := range group.Names {
			if n.Name == "_" {
				return nil, &CompileError{
					Reason:  ReasonUnnamedFields,
					Type:    name,
					Field:   "_",
					Message: "only named fields are supported",
					Pos:     pos,
				}
			}
			rec.Fields = append(rec.Fields, ir.RawField{
				Name: n.Name,
				Type: group.Type,
			})
		}
	}

	return rec, nil
}
