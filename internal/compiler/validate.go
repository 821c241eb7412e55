package compiler

import (
	"fmt"

	"github.com/roach88/buildergen/internal/ir"
)

// Validate rejects classified fields whose synthesized declarations would
// not be well-formed Go. It stops at the first problem.
//
// Checks, in order, per field:
//   - the inner type of an optional field must not itself be a wrapper
//   - slot and setter names must be unique across the record
//   - a setter or slot may not reuse the finalize method's name
//   - a slot may not share its setter's name (fields starting with an
//     uncased letter)
//
// Type parameters may not reuse the identifiers generated code declares.
func Validate(rec *ir.Record, fields []ir.Field, w Unwrapper, names Naming) error {
	for _, tp := range rec.TypeParams {
		if ReservedIdents[tp.Name] {
			return &CompileError{
				Reason:  ReasonNameCollision,
				Type:    rec.Name,
				Message: fmt.Sprintf("type parameter %s shadows an identifier used by the generated code", tp.Name),
				Pos:     rec.Pos,
			}
		}
	}

	slots := make(map[string]string, len(fields))
	setters := make(map[string]string, len(fields))

	for _, f := range fields {
		if f.Optional {
			if _, nested := w.Unwrap(f.VisibleType); nested {
				return &CompileError{
					Reason:  ReasonNestedOptional,
					Type:    rec.Name,
					Field:   f.Name,
					Message: fmt.Sprintf("optional wrapper nested inside another: %s", ir.TypeString(f.DeclaredType)),
					Pos:     rec.Pos,
				}
			}
		}

		if prev, ok := slots[f.Slot]; ok {
			return collision(rec, f, fmt.Sprintf("builder slot %q is also used by field %s", f.Slot, prev))
		}
		slots[f.Slot] = f.Name

		if prev, ok := setters[f.Setter]; ok {
			return collision(rec, f, fmt.Sprintf("setter %s is also generated for field %s", f.Setter, prev))
		}
		setters[f.Setter] = f.Name

		switch names.Finalize {
		case f.Setter:
			return collision(rec, f, fmt.Sprintf("setter %s clashes with the %s method", f.Setter, names.Finalize))
		case f.Slot:
			return collision(rec, f, fmt.Sprintf("builder slot %s clashes with the %s method", f.Slot, names.Finalize))
		}

		if f.Slot == f.Setter {
			return collision(rec, f, fmt.Sprintf("setter and builder slot would both be named %s", f.Setter))
		}
	}

	return nil
}

// ReservedIdents are the receiver, parameter and local names used in
// synthesized methods.
var ReservedIdents = map[string]bool{
	"b":      true,
	"value":  true,
	"record": true,
}

func collision(rec *ir.Record, f ir.Field, msg string) error {
	return &CompileError{
		Reason:  ReasonNameCollision,
		Type:    rec.Name,
		Field:   f.Name,
		Message: msg,
		Pos:     rec.Pos,
	}
}
